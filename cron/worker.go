package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"festa/config"
	"festa/errs"
	"festa/services/booking"

	"github.com/hibiken/asynq"
)

const TypeBookingComplete = "booking:complete"

// completionPayload is the task body scheduled for a booking's event date.
type completionPayload struct {
	BookingID string `json:"bookingId"`
	EventDate string `json:"eventDate"`
}

// CompletionScheduler enqueues a completion task that fires once the event
// date has passed.
type CompletionScheduler struct {
	client *asynq.Client
}

// NewCompletionScheduler creates a scheduler on the configured Redis.
func NewCompletionScheduler() *CompletionScheduler {
	return &CompletionScheduler{
		client: asynq.NewClient(redisOpts()),
	}
}

var _ booking.CompletionScheduler = (*CompletionScheduler)(nil)

// ScheduleCompletion enqueues the task to run the morning after the event.
func (s *CompletionScheduler) ScheduleCompletion(bookingID, eventDate string) error {
	date, err := time.Parse("2006-01-02", eventDate)
	if err != nil {
		return fmt.Errorf("invalid event date %q: %w", eventDate, err)
	}

	payload, err := json.Marshal(completionPayload{BookingID: bookingID, EventDate: eventDate})
	if err != nil {
		return fmt.Errorf("failed to marshal completion payload: %w", err)
	}

	task := asynq.NewTask(TypeBookingComplete, payload)
	processAt := date.AddDate(0, 0, 1)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(processAt), asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("failed to enqueue completion task: %w", err)
	}
	return nil
}

// InitCompletionWorker runs the async worker in background.
func InitCompletionWorker(bookingSvc booking.BookingService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingComplete, handleCompletionTask(bookingSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[CompletionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CompletionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CompletionWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleCompletionTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p completionPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CompletionHandler] invalid payload: %v", err)
			return err
		}

		_, err := bookingSvc.CompleteEvent(ctx, p.BookingID)
		if errs.IsInvalidState(err) || errs.IsNotFound(err) {
			// Rejected/cancelled in the meantime; nothing to complete.
			log.Printf("[CompletionHandler] skipping booking %s: %v", p.BookingID, err)
			return nil
		}
		if err != nil {
			log.Printf("[CompletionHandler] failed to complete booking %s: %v", p.BookingID, err)
		}
		return err
	}
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
}
