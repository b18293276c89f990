package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusTerminated = "TERMINATED"
	StatusOnLeave    = "ON_LEAVE"
	StatusSuspended  = "SUSPENDED"
)

type Employee struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeNumber  string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName        string     `gorm:"size:255;not null"`
	Email           string     `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Phone           string     `gorm:"size:30"`
	DepartmentID    *uuid.UUID `gorm:"type:uuid;index"`
	PositionID      *uuid.UUID `gorm:"type:uuid"`
	DirectManagerID *uuid.UUID `gorm:"type:uuid;index"`
	HireDate        time.Time  `gorm:"type:date;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:ACTIVE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
