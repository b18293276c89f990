package leavepolicy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeavePolicy defines one leave type's rules. Department and position
// scoping are optional; nil means the policy applies to everyone.
type LeavePolicy struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                 string          `gorm:"size:100;not null;uniqueIndex:uq_leave_policy_name"`
	AnnualAllowanceDays  decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	MaxCarryForwardDays  decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	MaxConsecutiveDays   int             `gorm:"not null;default:0"`
	MinAdvanceNoticeDays int             `gorm:"not null;default:0"`
	RequiresDocument     bool            `gorm:"not null;default:false"`
	IsPaid               bool            `gorm:"not null;default:true"`
	DepartmentID         *uuid.UUID      `gorm:"type:uuid"`
	PositionID           *uuid.UUID      `gorm:"type:uuid"`
	MinTenureMonths      int             `gorm:"not null;default:0"`
	IsActive             bool            `gorm:"not null;default:true"`
	EffectiveFrom        time.Time       `gorm:"type:date;not null"`
	EffectiveTo          *time.Time      `gorm:"type:date"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}

// AppliesTo reports whether the policy's scoping matches the employee's
// department and position. Nil scope matches everything.
func (p LeavePolicy) AppliesTo(departmentID, positionID *uuid.UUID) bool {
	if p.DepartmentID != nil {
		if departmentID == nil || *departmentID != *p.DepartmentID {
			return false
		}
	}
	if p.PositionID != nil {
		if positionID == nil || *positionID != *p.PositionID {
			return false
		}
	}
	return true
}

// CoversYear reports whether the policy's effective window overlaps the
// calendar year.
func (p LeavePolicy) CoversYear(year int) bool {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	if p.EffectiveFrom.After(yearEnd) {
		return false
	}
	if p.EffectiveTo != nil && p.EffectiveTo.Before(yearStart) {
		return false
	}
	return true
}
