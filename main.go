package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sitekit/config"
	"sitekit/cron"
	"sitekit/database"
	reservationRepo "sitekit/database/repository/reservation"
	siteRepo "sitekit/database/repository/site"
	"sitekit/handlers"
	"sitekit/middleware"
	"sitekit/routes"
	"sitekit/services/reservation"
	"sitekit/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitPaymentCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	resRepo := reservationRepo.NewMongoReservationRepo()
	sitesRepo := siteRepo.NewMongoSiteRepo()

	// task queue client for payment hold expiry.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepDB,
	})
	defer taskClient.Close()

	// services.
	reservationService := &reservation.DefaultService{
		Reservations: resRepo,
		Sites:        sitesRepo,
		Payments:     reservation.NewStripeProcessor(logger),
		Cache:        utils.GetCacheClient(),
		PaymentCache: utils.GetPaymentCacheClient(),
		Tasks:        taskClient,
		Logger:       logger,
	}

	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(reservationService, logger),
		Settings: handlers.NewSettingsHandler(reservationService, logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background worker releasing abandoned payment holds.
	cron.InitHoldSweepWorker(reservationService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
