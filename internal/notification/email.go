package notification

import (
	"context"
	"fmt"

	"leavedesk/internal/events"

	"go.uber.org/zap"
)

// Mailer delivers a formatted message. Production would plug an SMTP or
// provider client in here; the default implementation only logs.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type logMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger ...*zap.Logger) Mailer {
	l := zap.L().Named("notification.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mailer")
	}
	return &logMailer{logger: l}
}

func (m *logMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("email intent recorded",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_length", len(body)),
	)
	return nil
}

// FormatEmail builds the subject and body for a leave notification kind.
func FormatEmail(event events.LeaveNotification) (subject, body string) {
	period := fmt.Sprintf("%s to %s", event.StartDate, event.EndDate)

	switch event.Kind {
	case events.KindLeaveRequestCreated:
		subject = fmt.Sprintf("Leave request from %s awaiting your review", event.RequesterName)
		body = fmt.Sprintf(
			"Hi %s,\n\n%s requested %s leave (%s).\n\nPlease review it in the approvals queue.",
			event.RecipientName, event.RequesterName, event.LeaveTypeName, period,
		)
	case events.KindLeaveApproved:
		subject = fmt.Sprintf("Your %s leave request was approved", event.LeaveTypeName)
		body = fmt.Sprintf(
			"Hi %s,\n\nYour %s leave (%s) has been approved.",
			event.RecipientName, event.LeaveTypeName, period,
		)
	case events.KindLeaveRejected:
		subject = fmt.Sprintf("Your %s leave request was rejected", event.LeaveTypeName)
		body = fmt.Sprintf(
			"Hi %s,\n\nYour %s leave (%s) has been rejected.",
			event.RecipientName, event.LeaveTypeName, period,
		)
	default:
		subject = "Leave request update"
		body = fmt.Sprintf("Hi %s,\n\nThere is an update on leave request %s.", event.RecipientName, event.RequestID)
	}

	if event.Comment != "" {
		body += fmt.Sprintf("\n\nManager comment: %s", event.Comment)
	}
	return subject, body
}
