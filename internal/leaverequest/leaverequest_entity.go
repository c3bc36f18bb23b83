package leaverequest

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_requests_user_status"`
	ManagerID   *uuid.UUID `gorm:"type:uuid;index:idx_leave_requests_manager_status"`
	LeaveTypeID uuid.UUID  `gorm:"column:leave_type_id;type:uuid;not null"`

	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text;not null"`

	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_user_status;index:idx_leave_requests_manager_status"`
	RequestedAt time.Time `gorm:"not null"`

	ReviewedBy        *uuid.UUID `gorm:"type:uuid"`
	ManagerReviewedAt *time.Time
	ManagerComment    *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
