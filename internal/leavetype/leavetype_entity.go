package leavetype

import (
	"time"

	"github.com/google/uuid"
)

// LeaveType is reference data (annual, sick, ...) maintained out-of-band.
type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	DaysPerYear int       `gorm:"column:days_per_year;type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
