package tasks

import (
	"encoding/json"
	"fmt"

	"rentvehicle/config"
	"rentvehicle/models"

	"github.com/hibiken/asynq"
)

const TypeSendMail = "mail:send"

// NewMailTask builds the asynq task for a booking mail event.
func NewMailTask(event models.MailEvent) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendMail, b)
	opts := []asynq.Option{asynq.MaxRetry(5)}

	return task, opts, nil
}

// Mailer enqueues booking mail events onto the Redis-backed queue.
type Mailer struct {
	Client *asynq.Client
}

// NewMailer opens an asynq client against the mail queue database.
func NewMailer() *Mailer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})
	return &Mailer{Client: client}
}

// EnqueueMail queues one booking mail event for the background worker.
func (m *Mailer) EnqueueMail(event models.MailEvent) error {
	if m.Client == nil {
		return fmt.Errorf("mailer has no asynq client")
	}
	task, opts, err := NewMailTask(event)
	if err != nil {
		return fmt.Errorf("failed to build mail task: %w", err)
	}
	if _, err := m.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue mail task: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (m *Mailer) Close() error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Close()
}
