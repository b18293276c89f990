package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/scope"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateRequest(ctx context.Context, r *LeaveRequest) error
	FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error)
	UpdateRequest(ctx context.Context, r *LeaveRequest) error
	DeleteRequest(ctx context.Context, id string) error
	FindRequestsByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	CountOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (int64, error)
	FindRequestsInRange(ctx context.Context, start, end time.Time, departmentID string, statuses []string) ([]LeaveRequest, error)
	SumApprovedDaysStartingInMonth(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) (decimal.Decimal, error)

	CreateWorkflowStep(ctx context.Context, step *LeaveApprovalWorkflow) error
	FindStepsByRequest(ctx context.Context, requestID string) ([]LeaveApprovalWorkflow, error)
	FindPendingStep(ctx context.Context, requestID, approverID string) (*LeaveApprovalWorkflow, error)
	FindNextPendingStep(ctx context.Context, requestID string, afterOrder int) (*LeaveApprovalWorkflow, error)
	UpdateWorkflowStep(ctx context.Context, step *LeaveApprovalWorkflow) error
	DeletePendingSteps(ctx context.Context, requestID string) error
	DeleteStepsByRequest(ctx context.Context, requestID string) error

	CreateBalance(ctx context.Context, b *EmployeeLeaveBalance) error
	FindBalance(ctx context.Context, employeeID, policyID string, year int) (*EmployeeLeaveBalance, error)
	UpdateBalance(ctx context.Context, b *EmployeeLeaveBalance) error
	FindBalancesByEmployeeYear(ctx context.Context, employeeID string, year int) ([]EmployeeLeaveBalance, error)
	FindBalancesByDepartmentYear(ctx context.Context, departmentID string, year int) ([]EmployeeLeaveBalance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository to tx so every statement runs on that
// transaction instead of the pooled connection.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) CreateRequest(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) UpdateRequest(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) DeleteRequest(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id).Error
}

func (r *repository) FindRequestsByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

// CountOverlapping counts requests in blocking statuses whose inclusive
// range overlaps [start, end]. Overlap: NOT (end < start OR start > end).
func (r *repository) CountOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(scope.ByEmployee(employeeID)).
		Where("status IN ?", []string{StatusPending, StatusApproved, StatusInProgress}).
		Where("NOT (end_date < ? OR start_date > ?)", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *repository) FindRequestsInRange(ctx context.Context, start, end time.Time, departmentID string, statuses []string) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).
		Where("NOT (end_date < ? OR start_date > ?)", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if departmentID != "" {
		q = q.Joins("JOIN employees ON employees.id = leave_requests.employee_id").
			Where("employees.department_id = ?", departmentID)
	}

	var requests []LeaveRequest
	err := q.Order("start_date ASC").Find(&requests).Error
	return requests, err
}

// SumApprovedDaysStartingInMonth keys each request to the month its start
// date falls in; requests spanning a month boundary count entirely toward
// the starting month.
func (r *repository) SumApprovedDaysStartingInMonth(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("SUM(requested_days)").
		Scopes(scope.ByEmployee(employeeID), scope.DateBetween("start_date", monthStart, monthEnd)).
		Where("status = ?", StatusApproved).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *repository) CreateWorkflowStep(ctx context.Context, step *LeaveApprovalWorkflow) error {
	return r.db.WithContext(ctx).Create(step).Error
}

func (r *repository) FindStepsByRequest(ctx context.Context, requestID string) ([]LeaveApprovalWorkflow, error) {
	var steps []LeaveApprovalWorkflow
	err := r.db.WithContext(ctx).
		Where("leave_request_id = ?", requestID).
		Order("step_order ASC").
		Find(&steps).Error
	return steps, err
}

func (r *repository) FindPendingStep(ctx context.Context, requestID, approverID string) (*LeaveApprovalWorkflow, error) {
	var step LeaveApprovalWorkflow
	err := r.db.WithContext(ctx).
		Where("leave_request_id = ?", requestID).
		Where("approver_id = ?", approverID).
		Where("status = ?", StepPending).
		First(&step).Error
	return &step, err
}

func (r *repository) FindNextPendingStep(ctx context.Context, requestID string, afterOrder int) (*LeaveApprovalWorkflow, error) {
	var step LeaveApprovalWorkflow
	err := r.db.WithContext(ctx).
		Where("leave_request_id = ?", requestID).
		Where("step_order > ?", afterOrder).
		Where("status = ?", StepPending).
		Order("step_order ASC").
		First(&step).Error
	return &step, err
}

func (r *repository) UpdateWorkflowStep(ctx context.Context, step *LeaveApprovalWorkflow) error {
	return r.db.WithContext(ctx).Save(step).Error
}

func (r *repository) DeletePendingSteps(ctx context.Context, requestID string) error {
	return r.db.WithContext(ctx).
		Where("leave_request_id = ?", requestID).
		Where("status = ?", StepPending).
		Delete(&LeaveApprovalWorkflow{}).Error
}

func (r *repository) DeleteStepsByRequest(ctx context.Context, requestID string) error {
	return r.db.WithContext(ctx).
		Where("leave_request_id = ?", requestID).
		Delete(&LeaveApprovalWorkflow{}).Error
}

func (r *repository) CreateBalance(ctx context.Context, b *EmployeeLeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindBalance(ctx context.Context, employeeID, policyID string, year int) (*EmployeeLeaveBalance, error) {
	var b EmployeeLeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Where("policy_id = ?", policyID).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

func (r *repository) UpdateBalance(ctx context.Context, b *EmployeeLeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) FindBalancesByEmployeeYear(ctx context.Context, employeeID string, year int) ([]EmployeeLeaveBalance, error) {
	var balances []EmployeeLeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Where("year = ?", year).
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindBalancesByDepartmentYear(ctx context.Context, departmentID string, year int) ([]EmployeeLeaveBalance, error) {
	var balances []EmployeeLeaveBalance
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = employee_leave_balances.employee_id").
		Where("employees.department_id = ?", departmentID).
		Where("year = ?", year).
		Find(&balances).Error
	return balances, err
}
