package routes

import (
	"net/http"
	"time"

	"sitekit/handlers"
	"sitekit/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Settings *handlers.SettingsHandler
}

// RegisterPublicRoutes registers the widget-facing endpoints. These are
// embedded on arbitrary tenant sites, so they carry no auth.
func RegisterPublicRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/public/:site")
	{
		api.GET("/slots", hb.Booking.ListSlotsHandler)
		api.POST("/reservations", hb.Booking.CreateReservationHandler)
		api.POST("/payment/cancel", hb.Booking.CancelPaymentHandler)
	}
}

// RegisterSettingsRoutes registers the site editor endpoints.
func RegisterSettingsRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/sites/:site/booking")
	{
		api.Use(middleware.SiteAuthMiddleware())
		api.GET("/settings", hb.Settings.GetSettingsHandler)
		api.PUT("/settings", hb.Settings.SaveSettingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes applies CORS and registers all route groups.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// The widget is embedded on arbitrary origins, so CORS stays open.
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterPublicRoutes(r, hb)
	RegisterSettingsRoutes(r, hb)
	RegisterHealthRoute(r)
}
