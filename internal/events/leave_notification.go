package events

import "time"

const LeaveNotificationTopic = "leave.notification.v1"

const (
	KindLeaveRequestCreated = "leave-request-created"
	KindLeaveApproved       = "leave-approved"
	KindLeaveRejected       = "leave-rejected"
)

type LeaveNotification struct {
	Kind           string    `json:"kind"`
	RequestID      string    `json:"request_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`
	RequesterName  string    `json:"requester_name"`
	LeaveTypeName  string    `json:"leave_type_name"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Comment        string    `json:"comment,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
