package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee    = "employee"
	RoleManager     = "manager"
	RoleCoordinator = "coordinator"
)

// User is provisioned out-of-band by an administrator. This service only
// ever reads it.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	FullName     string     `gorm:"column:full_name;type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:'employee';index"`
	ManagerID    *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
