package notification

import (
	"context"
	"encoding/json"

	"leavedesk/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveNotifications formats and dispatches one email per leave
// notification event. Undecodable messages are committed and skipped;
// mailer failures leave the message uncommitted for redelivery.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	mailer Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notification")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		var event events.LeaveNotification
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave notification failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.RecipientEmail == "" {
			log.Warn("leave notification without recipient, skipping",
				zap.String("kind", event.Kind),
				zap.String("request_id", event.RequestID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject, body := FormatEmail(event)
		if err := mailer.Send(ctx, event.RecipientEmail, subject, body); err != nil {
			log.Error("send notification email failed",
				zap.String("kind", event.Kind),
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
			continue
		}

		log.Info("leave notification delivered",
			zap.String("kind", event.Kind),
			zap.String("request_id", event.RequestID),
			zap.String("recipient", event.RecipientEmail),
		)
	}
}
