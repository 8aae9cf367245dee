package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rentvehicle/config"
	"rentvehicle/models"
	"rentvehicle/services/tasks"
	"rentvehicle/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitMailWorker runs the booking mail worker in background.
func InitMailWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendMail, handleMailTask)

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[MailWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MailWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MailWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleMailTask(ctx context.Context, task *asynq.Task) error {
	var event models.MailEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		utils.GetLogger().Error("MailWorker: invalid payload", zap.Error(err))
		return err
	}

	if err := utils.SendBookingEmail(event.Email, event.FullName, event.Subject, event.Body); err != nil {
		utils.GetLogger().Error("MailWorker: failed to send mail",
			zap.String("bookingId", event.BookingID), zap.Error(err))
		return err
	}

	utils.GetLogger().Info("MailWorker: booking mail delivered",
		zap.String("bookingId", event.BookingID),
		zap.String("email", event.Email),
		zap.String("subject", event.Subject))
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[MailWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
