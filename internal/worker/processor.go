package worker

import (
	"context"

	"github.com/hibiken/asynq"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/notification"
	"github.com/rs/zerolog/log"
)

/*
 This file contains code that will pick up the tasks from the Redis queue and process them.
*/

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// Inbox stores in-app notifications.
type Inbox interface {
	Push(ctx context.Context, n notification.Notification) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, to []string, subject string, body string) error
}

// Announcer posts a message to the admins' channel.
type Announcer interface {
	Announce(ctx context.Context, message string) error
}

type RedisTaskProcessor struct {
	server    *asynq.Server
	store     db.Store
	inbox     Inbox
	mailer    EmailSender // optional
	announcer Announcer   // optional
}

func NewRedisTaskProcessor(
	redisOpt asynq.RedisClientOpt,
	store db.Store,
	inbox Inbox,
	mailer EmailSender,
	announcer Announcer,
) *RedisTaskProcessor {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				QueueCritical: 10,
				QueueDefault:  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).
					Bytes("payload", task.Payload()).Msg("process task failed")
			}),
			Logger: NewLogger(),
		},
	)

	return &RedisTaskProcessor{
		server:    server,
		store:     store,
		inbox:     inbox,
		mailer:    mailer,
		announcer: announcer,
	}
}

// Start registers the task handlers for the mux, attaches the mux to the asynq server, and starts the server.
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskSendNotification, processor.ProcessTaskSendNotification)
	mux.HandleFunc(TaskAuctionClosed, processor.ProcessTaskAuctionClosed)

	return processor.server.Start(mux)
}

// Shutdown stops pulling tasks and waits for in-flight handlers.
func (processor *RedisTaskProcessor) Shutdown() {
	processor.server.Shutdown()
}
