package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/leavepolicy"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/workcal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HolidayCalendar supplies the holiday dates the day-counting rules
// exclude. The holiday service satisfies it.
type HolidayCalendar interface {
	DatesInRange(ctx context.Context, start, end time.Time) (workcal.DateSet, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	CanRequestLeave(ctx context.Context, employeeID, policyID, startDate, endDate string) (bool, error)
	CalculateRequestedDays(ctx context.Context, startDate, endDate string, includeWeekends bool) (decimal.Decimal, error)
	HasLeaveConflict(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)

	CreateRequest(ctx context.Context, employeeID string, req CreateLeaveRequestDTO) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	SetupApprovalWorkflow(ctx context.Context, requestID string, approverIDs []string) (LeaveRequestResponse, error)
	ProcessApproval(ctx context.Context, approverID string, req ProcessApprovalRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, requestID string) error
	Delete(ctx context.Context, requestID string) error

	GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
	AdjustBalance(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error)
	InitializeBalancesForYear(ctx context.Context, year int) (processed int, failed int, err error)
	InitializeBalancesForEmployee(ctx context.Context, employeeID string, year int) error

	// ApprovedLeaveDaysInMonth feeds the attendance monthly summary.
	ApprovedLeaveDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (decimal.Decimal, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	policies  leavepolicy.Repository
	employees employee.Repository
	holidays  HolidayCalendar
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	policies leavepolicy.Repository,
	employees employee.Repository,
	holidays HolidayCalendar,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		policies:  policies,
		employees: employees,
		holidays:  holidays,
		outbox:    outbox,
		logger:    l,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CanRequestLeave answers eligibility as a plain boolean. Rule failures
// map to false; infrastructure failures surface as errors.
func (s *service) CanRequestLeave(ctx context.Context, employeeID, policyID, startDate, endDate string) (bool, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return false, err
	}

	_, err = s.checkEligibility(ctx, s.repo, employeeID, policyID, start, end, false)
	if err != nil {
		if isRuleViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) CalculateRequestedDays(ctx context.Context, startDate, endDate string, includeWeekends bool) (decimal.Decimal, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return decimal.Zero, err
	}

	holidays, err := s.holidays.DatesInRange(ctx, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return workcal.CountRequestedDays(start, end, includeWeekends, holidays), nil
}

func (s *service) HasLeaveConflict(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	count, err := s.repo.CountOverlapping(ctx, employeeID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *service) CreateRequest(ctx context.Context, employeeID string, req CreateLeaveRequestDTO) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("policy_id", req.PolicyID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	policy, err := s.policies.FindByID(ctx, req.PolicyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrPolicyNotAvailable
		}
		return LeaveRequestResponse{}, err
	}
	if policy.RequiresDocument && (req.AttachmentPath == nil || *req.AttachmentPath == "") {
		return LeaveRequestResponse{}, leaveerrors.ErrDocumentRequired
	}

	requestedDays, err := s.checkEligibility(ctx, qtx, employeeID, req.PolicyID, start, end, req.IncludeWeekends)
	if err != nil {
		s.logger.Warn("create leave request eligibility failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	conflict, err := qtx.CountOverlapping(ctx, employeeID, start, end, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if conflict > 0 {
		s.logger.Warn("create leave request conflict detected",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveConflict
	}

	request := &LeaveRequest{
		ID:              uuid.New(),
		EmployeeID:      uuid.MustParse(employeeID),
		PolicyID:        policy.ID,
		StartDate:       start,
		EndDate:         end,
		RequestedDays:   requestedDays,
		Reason:          req.Reason,
		AttachmentPath:  req.AttachmentPath,
		CoverEmployeeID: uuidPtr(req.CoverEmployeeID),
		Status:          StatusPending,
	}
	if err := qtx.CreateRequest(ctx, request); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	// The direct manager is seeded as the sole approver. Employees without
	// a manager get zero steps; HR sets the workflow up explicitly before
	// the request can move.
	managerID, err := s.employees.DirectManagerID(ctx, employeeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	var steps []LeaveApprovalWorkflow
	if managerID != "" {
		step := LeaveApprovalWorkflow{
			ID:             uuid.New(),
			LeaveRequestID: request.ID,
			ApproverID:     uuid.MustParse(managerID),
			StepOrder:      1,
			Status:         StepPending,
		}
		if err := qtx.CreateWorkflowStep(ctx, &step); err != nil {
			s.logger.Error("create leave request workflow persist failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		steps = append(steps, step)
	}

	if err := s.queueStatusEvent(ctx, tx, rid, request, "leave_requested"); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_id", request.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("requested_days", requestedDays.String()),
	)
	return mapRequestToResponse(*request, steps), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveRequestResponse, error) {
	request, err := s.repo.FindRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveRequestResponse{}, err
	}

	steps, err := s.repo.FindStepsByRequest(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	return mapRequestToResponse(*request, steps), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindRequestsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveRequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapRequestToResponse(r, nil)
	}
	return resp, nil
}

// SetupApprovalWorkflow replaces any still-pending steps with the given
// approver chain, ordered 1..n. Processed steps are kept.
func (s *service) SetupApprovalWorkflow(ctx context.Context, requestID string, approverIDs []string) (LeaveRequestResponse, error) {
	if len(approverIDs) == 0 {
		return LeaveRequestResponse{}, leaveerrors.ErrNoApprovers
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("setup workflow begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if request.Status != StatusPending {
		return LeaveRequestResponse{}, leaveerrors.ErrRequestNotPending
	}

	if err := qtx.DeletePendingSteps(ctx, requestID); err != nil {
		return LeaveRequestResponse{}, err
	}

	existing, err := qtx.FindStepsByRequest(ctx, requestID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	nextOrder := 1
	for _, step := range existing {
		if step.StepOrder >= nextOrder {
			nextOrder = step.StepOrder + 1
		}
	}

	steps := existing
	for i, approverID := range approverIDs {
		step := LeaveApprovalWorkflow{
			ID:             uuid.New(),
			LeaveRequestID: request.ID,
			ApproverID:     uuid.MustParse(approverID),
			StepOrder:      nextOrder + i,
			Status:         StepPending,
		}
		if err := qtx.CreateWorkflowStep(ctx, &step); err != nil {
			s.logger.Error("setup workflow persist failed",
				zap.String("leave_id", requestID),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
		steps = append(steps, step)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("setup workflow commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("setup workflow success",
		zap.String("leave_id", requestID),
		zap.Int("steps", len(approverIDs)),
	)
	return mapRequestToResponse(*request, steps), nil
}

func (s *service) ProcessApproval(ctx context.Context, approverID string, req ProcessApprovalRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("process leave approval requested",
		zap.String("request_id", rid),
		zap.String("leave_id", req.LeaveRequestID),
		zap.String("approver_id", approverID),
		zap.String("decision", req.Decision),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("process approval begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	step, err := qtx.FindPendingStep(ctx, req.LeaveRequestID, approverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrStepNotFound
		}
		return LeaveRequestResponse{}, err
	}

	// Steps are consumed in ascending order; a later approver has to wait
	// until every step before theirs is resolved.
	first, err := qtx.FindNextPendingStep(ctx, req.LeaveRequestID, 0)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if first.StepOrder != step.StepOrder {
		return LeaveRequestResponse{}, leaveerrors.ErrStepOutOfOrder
	}

	request, err := qtx.FindRequestByID(ctx, req.LeaveRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveRequestResponse{}, err
	}

	now := s.now()
	step.Comments = req.Comments
	step.ProcessedAt = &now

	switch req.Decision {
	case StepRejected:
		// Rejection short-circuits the remaining steps.
		step.Status = StepRejected
		request.Status = StatusRejected
		request.RejectionNote = req.Comments
		if err := qtx.UpdateWorkflowStep(ctx, step); err != nil {
			return LeaveRequestResponse{}, err
		}
		if err := qtx.UpdateRequest(ctx, request); err != nil {
			return LeaveRequestResponse{}, err
		}

	case StepApproved:
		step.Status = StepApproved
		if err := qtx.UpdateWorkflowStep(ctx, step); err != nil {
			return LeaveRequestResponse{}, err
		}

		_, err := qtx.FindNextPendingStep(ctx, req.LeaveRequestID, step.StepOrder)
		switch {
		case err == nil:
			// Another approver is still in line; the request stays PENDING.
		case errors.Is(err, gorm.ErrRecordNotFound):
			approverUUID := uuid.MustParse(approverID)
			request.Status = StatusApproved
			request.ApprovedBy = &approverUUID
			request.ApprovedAt = &now
			if err := qtx.UpdateRequest(ctx, request); err != nil {
				return LeaveRequestResponse{}, err
			}

			// Final approval consumes the balance, exactly once: the step
			// just moved off PENDING so a replay finds nothing to process.
			balance, err := qtx.FindBalance(ctx, request.EmployeeID.String(), request.PolicyID.String(), request.StartDate.Year())
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return LeaveRequestResponse{}, leaveerrors.ErrBalanceNotFound
				}
				return LeaveRequestResponse{}, err
			}
			balance.UsedDays = balance.UsedDays.Add(request.RequestedDays)
			if err := qtx.UpdateBalance(ctx, balance); err != nil {
				return LeaveRequestResponse{}, err
			}
		default:
			return LeaveRequestResponse{}, err
		}
	}

	if request.Status != StatusPending {
		if err := s.queueStatusEvent(ctx, tx, rid, request, "leave_status_changed"); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("process approval commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("process leave approval success",
		zap.String("leave_id", req.LeaveRequestID),
		zap.String("approver_id", approverID),
		zap.String("decision", req.Decision),
		zap.String("status", request.Status),
	)

	steps, err := s.repo.FindStepsByRequest(ctx, req.LeaveRequestID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	return mapRequestToResponse(*request, steps), nil
}

func (s *service) Cancel(ctx context.Context, requestID string) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	if request.Status == StatusCompleted {
		return leaveerrors.ErrCannotCancel
	}

	request.Status = StatusCancelled
	if err := qtx.UpdateRequest(ctx, request); err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_id", requestID), zap.Error(err))
		return err
	}

	if err := s.queueStatusEvent(ctx, tx, rid, request, "leave_status_changed"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("cancel leave success", zap.String("leave_id", requestID))
	return nil
}

func (s *service) Delete(ctx context.Context, requestID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	switch request.Status {
	case StatusPending, StatusRejected, StatusCancelled:
	default:
		return leaveerrors.ErrCannotDelete
	}

	if err := qtx.DeleteStepsByRequest(ctx, requestID); err != nil {
		return err
	}
	if err := qtx.DeleteRequest(ctx, requestID); err != nil {
		s.logger.Error("delete leave persist failed", zap.String("leave_id", requestID), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete leave success", zap.String("leave_id", requestID))
	return nil
}

func (s *service) GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error) {
	balances, err := s.repo.FindBalancesByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapBalanceToResponse(b)
	}
	return resp, nil
}

func (s *service) AdjustBalance(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error) {
	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidDayAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	balance, err := qtx.FindBalance(ctx, req.EmployeeID, req.PolicyID, req.Year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leaveerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}

	balance.AdjustmentDays = balance.AdjustmentDays.Add(delta)
	if err := qtx.UpdateBalance(ctx, balance); err != nil {
		s.logger.Error("adjust balance persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("adjust balance success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("policy_id", req.PolicyID),
		zap.Int("year", req.Year),
		zap.String("delta", delta.String()),
	)
	return mapBalanceToResponse(*balance), nil
}

// InitializeBalancesForYear fills missing balance rows for every active
// employee and applicable policy. Existing rows are never touched, so the
// batch is idempotent. Failures are per employee, counted and logged.
func (s *service) InitializeBalancesForYear(ctx context.Context, year int) (int, int, error) {
	s.logger.Info("initialize leave balances started", zap.Int("year", year))

	employees, err := s.employees.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("initialize balances list employees failed", zap.Error(err))
		return 0, 0, err
	}
	policies, err := s.policies.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("initialize balances list policies failed", zap.Error(err))
		return 0, 0, err
	}

	processed, failed := 0, 0
	for _, empl := range employees {
		if err := s.initializeEmployeeBalances(ctx, s.repo, empl, policies, year); err != nil {
			failed++
			s.logger.Error("initialize balances employee failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Int("year", year),
				zap.Error(err),
			)
			continue
		}
		processed++
	}

	s.logger.Info("initialize leave balances finished",
		zap.Int("year", year),
		zap.Int("processed", processed),
		zap.Int("failed", failed),
	)
	return processed, failed, nil
}

// InitializeBalancesForEmployee seeds one employee's balances, used when a
// new hire event arrives mid-year.
func (s *service) InitializeBalancesForEmployee(ctx context.Context, employeeID string, year int) error {
	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrEmployeeNotFound
		}
		return err
	}

	policies, err := s.policies.FindAllActive(ctx)
	if err != nil {
		return err
	}
	return s.initializeEmployeeBalances(ctx, s.repo, *empl, policies, year)
}

func (s *service) initializeEmployeeBalances(ctx context.Context, repo Repository, empl employee.Employee, policies []leavepolicy.LeavePolicy, year int) error {
	for _, policy := range policies {
		if !policy.CoversYear(year) {
			continue
		}
		if !policy.AppliesTo(empl.DepartmentID, empl.PositionID) {
			continue
		}
		if tenureMonths(year, empl.HireDate) < policy.MinTenureMonths {
			continue
		}

		if _, err := repo.FindBalance(ctx, empl.ID.String(), policy.ID.String(), year); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		carried := decimal.Zero
		if prev, err := repo.FindBalance(ctx, empl.ID.String(), policy.ID.String(), year-1); err == nil {
			carried = prev.RemainingDays()
			if carried.GreaterThan(policy.MaxCarryForwardDays) {
				carried = policy.MaxCarryForwardDays
			}
			if carried.IsNegative() {
				carried = decimal.Zero
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		balance := &EmployeeLeaveBalance{
			ID:                 uuid.New(),
			EmployeeID:         empl.ID,
			PolicyID:           policy.ID,
			Year:               year,
			AllocatedDays:      policy.AnnualAllowanceDays,
			UsedDays:           decimal.Zero,
			CarriedForwardDays: carried,
			AdjustmentDays:     decimal.Zero,
		}
		if err := repo.CreateBalance(ctx, balance); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) ApprovedLeaveDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (decimal.Decimal, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	return s.repo.SumApprovedDaysStartingInMonth(ctx, employeeID, monthStart, monthEnd)
}

// checkEligibility runs the eligibility rule chain and returns the computed
// requested days. Rule failures come back as apperror sentinels.
func (s *service) checkEligibility(ctx context.Context, repo Repository, employeeID, policyID string, start, end time.Time, includeWeekends bool) (decimal.Decimal, error) {
	policy, err := s.policies.FindByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, leaveerrors.ErrPolicyNotAvailable
		}
		return decimal.Zero, err
	}
	if !policy.IsActive {
		return decimal.Zero, leaveerrors.ErrPolicyNotAvailable
	}

	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, leaveerrors.ErrEmployeeNotFound
		}
		return decimal.Zero, err
	}

	today := workcal.DateOnly(s.now())
	noticeDays := int(workcal.DateOnly(start).Sub(today).Hours() / 24)
	if noticeDays < policy.MinAdvanceNoticeDays {
		return decimal.Zero, leaveerrors.ErrInsufficientNotice
	}

	holidays, err := s.holidays.DatesInRange(ctx, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	requestedDays := workcal.CountRequestedDays(start, end, includeWeekends, holidays)
	if requestedDays.IsZero() {
		return decimal.Zero, leaveerrors.ErrNoRequestedDays
	}
	if policy.MaxConsecutiveDays > 0 &&
		requestedDays.GreaterThan(decimal.NewFromInt(int64(policy.MaxConsecutiveDays))) {
		return decimal.Zero, leaveerrors.ErrExceedsMaxConsecutive
	}

	balance, err := repo.FindBalance(ctx, employeeID, policyID, start.Year())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, leaveerrors.ErrBalanceNotFound
		}
		return decimal.Zero, err
	}
	if balance.RemainingDays().LessThan(requestedDays) {
		return decimal.Zero, leaveerrors.ErrInsufficientBalance
	}

	return requestedDays, nil
}

func (s *service) queueStatusEvent(ctx context.Context, tx *sql.Tx, rid string, request *LeaveRequest, eventType string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveStatusChangedEvent{
		EventType:  eventType,
		RequestID:  rid,
		LeaveID:    request.ID.String(),
		EmployeeID: request.EmployeeID.String(),
		Status:     request.Status,
		OccurredAt: s.now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   request.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func isRuleViolation(err error) bool {
	switch {
	case errors.Is(err, leaveerrors.ErrPolicyNotAvailable),
		errors.Is(err, leaveerrors.ErrEmployeeNotFound),
		errors.Is(err, leaveerrors.ErrInsufficientNotice),
		errors.Is(err, leaveerrors.ErrExceedsMaxConsecutive),
		errors.Is(err, leaveerrors.ErrInsufficientBalance),
		errors.Is(err, leaveerrors.ErrNoRequestedDays),
		errors.Is(err, leaveerrors.ErrBalanceNotFound):
		return true
	}
	return false
}

// tenureMonths counts whole employment months credited toward year:
// full years since hire plus the months remaining in the hire year.
func tenureMonths(year int, hireDate time.Time) int {
	months := (year-hireDate.Year())*12 + (12 - int(hireDate.Month()) + 1)
	if months < 0 {
		return 0
	}
	return months
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func uuidPtr(v string) *uuid.UUID {
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func timePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapRequestToResponse(r LeaveRequest, steps []LeaveApprovalWorkflow) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             r.ID.String(),
		EmployeeID:     r.EmployeeID.String(),
		PolicyID:       r.PolicyID.String(),
		StartDate:      r.StartDate.Format("2006-01-02"),
		EndDate:        r.EndDate.Format("2006-01-02"),
		RequestedDays:  r.RequestedDays.String(),
		Reason:         r.Reason,
		AttachmentPath: r.AttachmentPath,
		Status:         r.Status,
		ApprovedAt:     timePtr(r.ApprovedAt),
	}
	if r.CoverEmployeeID != nil {
		resp.CoverEmployeeID = r.CoverEmployeeID.String()
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	for _, step := range steps {
		resp.Workflow = append(resp.Workflow, WorkflowStepResponse{
			ID:          step.ID.String(),
			ApproverID:  step.ApproverID.String(),
			StepOrder:   step.StepOrder,
			Status:      step.Status,
			Comments:    step.Comments,
			ProcessedAt: timePtr(step.ProcessedAt),
		})
	}
	return resp
}

func mapBalanceToResponse(b EmployeeLeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:                 b.ID.String(),
		EmployeeID:         b.EmployeeID.String(),
		PolicyID:           b.PolicyID.String(),
		Year:               b.Year,
		AllocatedDays:      b.AllocatedDays.String(),
		UsedDays:           b.UsedDays.String(),
		CarriedForwardDays: b.CarriedForwardDays.String(),
		AdjustmentDays:     b.AdjustmentDays.String(),
		RemainingDays:      b.RemainingDays().String(),
	}
}
