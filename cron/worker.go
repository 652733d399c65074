package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"sitekit/config"
	"sitekit/services/reservation"

	"github.com/hibiken/asynq"
)

// InitHoldSweepWorker runs the async worker that releases payment holds
// whose checkout was abandoned.
func InitHoldSweepWorker(svc reservation.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(reservation.TypeHoldExpire, handleHoldExpireTask(svc))

	// Start async worker with retry logic
	go func() {
		log.Println("[HoldSweep] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[HoldSweep] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[HoldSweep] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleHoldExpireTask(svc reservation.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p reservation.HoldExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[HoldSweep] invalid payload: %v", err)
			return err
		}
		return svc.ReleaseExpiredHold(ctx, p.ReservationID)
	}
}
