package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending    = "PENDING"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusCancelled  = "CANCELLED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

const (
	StepPending  = "PENDING"
	StepApproved = "APPROVED"
	StepRejected = "REJECTED"
)

// LeaveRequest is an employee's request for a date range under one
// policy. RequestedDays is a decimal so half-day adjustments do not
// drift. Mutable only while PENDING.
type LeaveRequest struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PolicyID        uuid.UUID       `gorm:"type:uuid;not null"`
	StartDate       time.Time       `gorm:"type:date;not null"`
	EndDate         time.Time       `gorm:"type:date;not null"`
	RequestedDays   decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Reason          string          `gorm:"type:text;not null"`
	AttachmentPath  *string         `gorm:"type:text"`
	CoverEmployeeID *uuid.UUID      `gorm:"type:uuid"`
	Status          string          `gorm:"type:varchar(20);not null"`
	ApprovedBy      *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt      *time.Time      `gorm:"type:timestamptz"`
	RejectionNote   *string         `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveApprovalWorkflow is one approver step. Steps are processed in
// ascending StepOrder; the request becomes APPROVED only when the last
// pending step approves.
type LeaveApprovalWorkflow struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LeaveRequestID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_workflow_step_order,priority:1"`
	ApproverID     uuid.UUID  `gorm:"type:uuid;not null"`
	StepOrder      int        `gorm:"not null;uniqueIndex:uq_workflow_step_order,priority:2"`
	Status         string     `gorm:"type:varchar(20);not null"`
	Comments       *string    `gorm:"type:text"`
	ProcessedAt    *time.Time `gorm:"type:timestamptz"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (LeaveApprovalWorkflow) TableName() string {
	return "leave_approval_workflows"
}

// EmployeeLeaveBalance is one row per (employee, policy, year).
// RemainingDays is derived, never stored.
type EmployeeLeaveBalance struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_policy_year,priority:1"`
	PolicyID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_policy_year,priority:2"`
	Year               int             `gorm:"not null;uniqueIndex:uq_leave_balance_policy_year,priority:3"`
	AllocatedDays      decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	UsedDays           decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarriedForwardDays decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	AdjustmentDays     decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (EmployeeLeaveBalance) TableName() string {
	return "employee_leave_balances"
}

func (b EmployeeLeaveBalance) RemainingDays() decimal.Decimal {
	return b.AllocatedDays.
		Add(b.CarriedForwardDays).
		Add(b.AdjustmentDays).
		Sub(b.UsedDays)
}
