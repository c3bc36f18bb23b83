package notification

import (
	"context"
	"encoding/json"

	"leavedesk/internal/events"
	"leavedesk/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier records intent to notify someone about a state transition.
// Notify returns nothing: a notification failure must never fail the
// operation that triggered it, so implementations log and move on.
type Notifier interface {
	Notify(ctx context.Context, event events.LeaveNotification)
}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns the no-op dispatcher: it only records that a
// notification would have been sent.
func NewLogNotifier(logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.log")
	}
	return &logNotifier{logger: l}
}

func (n *logNotifier) Notify(_ context.Context, event events.LeaveNotification) {
	n.logger.Info("notification recorded",
		zap.String("kind", event.Kind),
		zap.String("request_id", event.RequestID),
		zap.String("recipient", event.RecipientEmail),
	)
}

type outboxNotifier struct {
	repo   kafka.OutboxRepository
	logger *zap.Logger
}

// NewOutboxNotifier enqueues notifications for the Kafka worker. Enqueue
// errors are logged and dropped.
func NewOutboxNotifier(repo kafka.OutboxRepository, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &outboxNotifier{repo: repo, logger: l}
}

func (n *outboxNotifier) Notify(ctx context.Context, event events.LeaveNotification) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("encode notification failed",
			zap.String("kind", event.Kind),
			zap.Error(err),
		)
		return
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave_request",
		AggregateID:   event.RequestID,
		EventType:     event.Kind,
		Topic:         events.LeaveNotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}

	if err := n.repo.Create(ctx, outboxEvent); err != nil {
		n.logger.Error("enqueue notification failed",
			zap.String("kind", event.Kind),
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
		return
	}

	n.logger.Debug("notification enqueued",
		zap.String("kind", event.Kind),
		zap.String("request_id", event.RequestID),
	)
}
