package stats

import (
	"time"

	"github.com/google/uuid"
)

// LeaveRecord is the entitlement for one user, leave type and academic
// year, provisioned out-of-band. Usage is always derived from approved
// requests at read time, never stored, so the two can never drift.
type LeaveRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveTypeID  uuid.UUID `gorm:"column:leave_type_id;type:uuid;not null"`
	AcademicYear string    `gorm:"column:academic_year;type:varchar(20);not null"`
	TotalDays    int       `gorm:"column:total_days;type:int;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
