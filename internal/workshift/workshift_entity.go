package workshift

import (
	"time"

	"go-hrm/internal/shared/workcal"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusTemporary = "TEMPORARY"
)

// WorkShift times are stored as minutes from midnight so lateness and
// overtime arithmetic never touches string parsing.
type WorkShift struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name               string             `gorm:"size:100;not null;uniqueIndex:uq_work_shift_name"`
	StartMinutes       int                `gorm:"not null"`
	EndMinutes         int                `gorm:"not null"`
	BreakStartMinutes  *int               `gorm:""`
	BreakEndMinutes    *int               `gorm:""`
	WorkingMinutes     int                `gorm:"not null"`
	FlexibleMinutes    int                `gorm:"not null;default:0"`
	AllowOvertime      bool               `gorm:"not null;default:false"`
	OvertimeCapMinutes int                `gorm:"not null;default:0"`
	ApplicableDays     workcal.WeekdaySet `gorm:"type:smallint;not null"`
	IsNightShift       bool               `gorm:"not null;default:false"`
	Status             string             `gorm:"type:varchar(20);not null;default:ACTIVE"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (WorkShift) TableName() string {
	return "work_shifts"
}

// ShiftAssignment links an employee to a shift for an effective range.
// Overlapping assignments for one employee are closed out when a new one
// starts; (employee, shift, effective_from) is unique.
type ShiftAssignment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_shift_assignment,priority:1"`
	ShiftID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_shift_assignment,priority:2"`
	EffectiveFrom  time.Time  `gorm:"type:date;not null;uniqueIndex:uq_shift_assignment,priority:3"`
	EffectiveTo    *time.Time `gorm:"type:date"`
	IsDefaultShift bool       `gorm:"not null;default:false"`
	RotationOrder  int        `gorm:"not null;default:0"`
	RotationCycle  int        `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}

// WorkSchedule is a planned work date; unique per (employee, work date).
type WorkSchedule struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_work_schedule_day,priority:1"`
	ShiftID     uuid.UUID  `gorm:"type:uuid;not null"`
	WorkDate    time.Time  `gorm:"type:date;not null;uniqueIndex:uq_work_schedule_day,priority:2"`
	ActualStart *time.Time `gorm:"type:timestamptz"`
	ActualEnd   *time.Time `gorm:"type:timestamptz"`
	Notes       *string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}
