package leave

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"
	"time"

	"go-hrm/internal/employee"
	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/leavepolicy"
	"go-hrm/internal/shared/workcal"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakeLeaveRepo keeps requests, steps and balances in memory so multi-step
// scenarios can run end to end without a database.
type fakeLeaveRepo struct {
	requests map[string]*LeaveRequest
	steps    map[string]*LeaveApprovalWorkflow
	balances map[string]*EmployeeLeaveBalance
	overlaps int64
	sumDays  decimal.Decimal
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		requests: map[string]*LeaveRequest{},
		steps:    map[string]*LeaveApprovalWorkflow{},
		balances: map[string]*EmployeeLeaveBalance{},
	}
}

func balanceKey(employeeID, policyID string, year int) string {
	return fmt.Sprintf("%s|%s|%d", employeeID, policyID, year)
}

func (f *fakeLeaveRepo) putBalance(b *EmployeeLeaveBalance) {
	f.balances[balanceKey(b.EmployeeID.String(), b.PolicyID.String(), b.Year)] = b
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeLeaveRepo) CreateRequest(ctx context.Context, r *LeaveRequest) error {
	f.requests[r.ID.String()] = r
	return nil
}

func (f *fakeLeaveRepo) FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeLeaveRepo) UpdateRequest(ctx context.Context, r *LeaveRequest) error {
	f.requests[r.ID.String()] = r
	return nil
}

func (f *fakeLeaveRepo) DeleteRequest(ctx context.Context, id string) error {
	delete(f.requests, id)
	return nil
}

func (f *fakeLeaveRepo) FindRequestsByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID.String() == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) CountOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (int64, error) {
	return f.overlaps, nil
}

func (f *fakeLeaveRepo) FindRequestsInRange(ctx context.Context, start, end time.Time, departmentID string, statuses []string) ([]LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) SumApprovedDaysStartingInMonth(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) (decimal.Decimal, error) {
	return f.sumDays, nil
}

func (f *fakeLeaveRepo) CreateWorkflowStep(ctx context.Context, step *LeaveApprovalWorkflow) error {
	f.steps[step.ID.String()] = step
	return nil
}

func (f *fakeLeaveRepo) stepsOf(requestID string) []*LeaveApprovalWorkflow {
	var out []*LeaveApprovalWorkflow
	for _, s := range f.steps {
		if s.LeaveRequestID.String() == requestID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepOrder < out[j].StepOrder })
	return out
}

func (f *fakeLeaveRepo) FindStepsByRequest(ctx context.Context, requestID string) ([]LeaveApprovalWorkflow, error) {
	var out []LeaveApprovalWorkflow
	for _, s := range f.stepsOf(requestID) {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeLeaveRepo) FindPendingStep(ctx context.Context, requestID, approverID string) (*LeaveApprovalWorkflow, error) {
	for _, s := range f.stepsOf(requestID) {
		if s.ApproverID.String() == approverID && s.Status == StepPending {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepo) FindNextPendingStep(ctx context.Context, requestID string, afterOrder int) (*LeaveApprovalWorkflow, error) {
	for _, s := range f.stepsOf(requestID) {
		if s.StepOrder > afterOrder && s.Status == StepPending {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepo) UpdateWorkflowStep(ctx context.Context, step *LeaveApprovalWorkflow) error {
	f.steps[step.ID.String()] = step
	return nil
}

func (f *fakeLeaveRepo) DeletePendingSteps(ctx context.Context, requestID string) error {
	for id, s := range f.steps {
		if s.LeaveRequestID.String() == requestID && s.Status == StepPending {
			delete(f.steps, id)
		}
	}
	return nil
}

func (f *fakeLeaveRepo) DeleteStepsByRequest(ctx context.Context, requestID string) error {
	for id, s := range f.steps {
		if s.LeaveRequestID.String() == requestID {
			delete(f.steps, id)
		}
	}
	return nil
}

func (f *fakeLeaveRepo) CreateBalance(ctx context.Context, b *EmployeeLeaveBalance) error {
	f.putBalance(b)
	return nil
}

func (f *fakeLeaveRepo) FindBalance(ctx context.Context, employeeID, policyID string, year int) (*EmployeeLeaveBalance, error) {
	b, ok := f.balances[balanceKey(employeeID, policyID, year)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeLeaveRepo) UpdateBalance(ctx context.Context, b *EmployeeLeaveBalance) error {
	f.putBalance(b)
	return nil
}

func (f *fakeLeaveRepo) FindBalancesByEmployeeYear(ctx context.Context, employeeID string, year int) ([]EmployeeLeaveBalance, error) {
	var out []EmployeeLeaveBalance
	for _, b := range f.balances {
		if b.EmployeeID.String() == employeeID && b.Year == year {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) FindBalancesByDepartmentYear(ctx context.Context, departmentID string, year int) ([]EmployeeLeaveBalance, error) {
	return nil, nil
}

type fakePolicyRepo struct {
	policies map[string]*leavepolicy.LeavePolicy
}

func (f *fakePolicyRepo) WithTx(tx *sql.Tx) leavepolicy.Repository { return f }
func (f *fakePolicyRepo) Create(ctx context.Context, p *leavepolicy.LeavePolicy) error {
	f.policies[p.ID.String()] = p
	return nil
}
func (f *fakePolicyRepo) FindAll(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
	return f.FindAllActive(ctx)
}
func (f *fakePolicyRepo) FindAllActive(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
	var out []leavepolicy.LeavePolicy
	for _, p := range f.policies {
		out = append(out, *p)
	}
	return out, nil
}
func (f *fakePolicyRepo) FindByID(ctx context.Context, id string) (*leavepolicy.LeavePolicy, error) {
	p, ok := f.policies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
func (f *fakePolicyRepo) Update(ctx context.Context, p *leavepolicy.LeavePolicy) error { return nil }
func (f *fakePolicyRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakePolicyRepo) CountBalanceReferences(ctx context.Context, policyID string) (int64, error) {
	return 0, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
	managerID string
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return f.FindAllActive(ctx)
}
func (f *fakeEmployeeRepo) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, nil
}
func (f *fakeEmployeeRepo) ActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	var out []string
	for id := range f.employees {
		out = append(out, id)
	}
	return out, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}
func (f *fakeEmployeeRepo) DirectManagerID(ctx context.Context, id string) (string, error) {
	return f.managerID, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, empl *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeHolidays struct {
	set workcal.DateSet
}

func (f *fakeHolidays) DatesInRange(ctx context.Context, start, end time.Time) (workcal.DateSet, error) {
	return f.set, nil
}

type leaveFixture struct {
	db        *sql.DB
	mock      sqlmock.Sqlmock
	repo      *fakeLeaveRepo
	policies  *fakePolicyRepo
	employees *fakeEmployeeRepo
	holidays  *fakeHolidays
	svc       *service

	employeeID uuid.UUID
	managerID  uuid.UUID
	policyID   uuid.UUID
}

// newLeaveFixture seeds an active employee hired 2023-01-15, their manager,
// a 12-day policy with a 3-day notice rule, and a 2026 balance of 10 days.
// The clock is pinned to 2026-03-01.
func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	f := &leaveFixture{
		db:         db,
		mock:       mock,
		repo:       newFakeLeaveRepo(),
		holidays:   &fakeHolidays{},
		employeeID: uuid.New(),
		managerID:  uuid.New(),
		policyID:   uuid.New(),
	}

	f.policies = &fakePolicyRepo{policies: map[string]*leavepolicy.LeavePolicy{
		f.policyID.String(): {
			ID:                   f.policyID,
			Name:                 "Annual Leave",
			AnnualAllowanceDays:  decimal.NewFromInt(12),
			MaxCarryForwardDays:  decimal.NewFromInt(5),
			MinAdvanceNoticeDays: 3,
			IsActive:             true,
			EffectiveFrom:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}}

	f.employees = &fakeEmployeeRepo{
		managerID: f.managerID.String(),
		employees: map[string]*employee.Employee{
			f.employeeID.String(): {
				ID:       f.employeeID,
				HireDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
				Status:   "ACTIVE",
			},
		},
	}

	f.repo.putBalance(&EmployeeLeaveBalance{
		ID:            uuid.New(),
		EmployeeID:    f.employeeID,
		PolicyID:      f.policyID,
		Year:          2026,
		AllocatedDays: decimal.NewFromInt(10),
	})

	f.svc = NewService(db, f.repo, f.policies, f.employees, f.holidays, nil).(*service)
	f.svc.now = func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }
	return f
}

func (f *leaveFixture) createRequest(t *testing.T, start, end string) LeaveRequestResponse {
	t.Helper()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	resp, err := f.svc.CreateRequest(context.Background(), f.employeeID.String(), CreateLeaveRequestDTO{
		PolicyID:  f.policyID.String(),
		StartDate: start,
		EndDate:   end,
		Reason:    "family matters",
	})
	assert.NoError(t, err)
	return resp
}

func TestService_CreateRequest_ExcludesWeekendsAndHolidays(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()

	// 2026-03-09 is a Monday; Wednesday the 11th is a public holiday.
	f.holidays.set = workcal.NewDateSet([]time.Time{
		time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
	})

	resp := f.createRequest(t, "2026-03-09", "2026-03-13")
	assert.Equal(t, "4", resp.RequestedDays)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Len(t, resp.Workflow, 1)
	assert.Equal(t, f.managerID.String(), resp.Workflow[0].ApproverID)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_CreateRequest_NoManagerMeansNoSteps(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()
	f.employees.managerID = ""

	resp := f.createRequest(t, "2026-03-09", "2026-03-10")
	assert.Empty(t, resp.Workflow)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_CreateRequest_Conflict(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()
	f.repo.overlaps = 1

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err := f.svc.CreateRequest(context.Background(), f.employeeID.String(), CreateLeaveRequestDTO{
		PolicyID:  f.policyID.String(),
		StartDate: "2026-03-09",
		EndDate:   "2026-03-10",
		Reason:    "family matters",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveConflict)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_CreateRequest_DocumentRequired(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()
	f.policies.policies[f.policyID.String()].RequiresDocument = true

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err := f.svc.CreateRequest(context.Background(), f.employeeID.String(), CreateLeaveRequestDTO{
		PolicyID:  f.policyID.String(),
		StartDate: "2026-03-09",
		EndDate:   "2026-03-10",
		Reason:    "medical",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrDocumentRequired)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_CanRequestLeave(t *testing.T) {
	t.Run("insufficient balance", func(t *testing.T) {
		f := newLeaveFixture(t)
		defer f.db.Close()

		balance, _ := f.repo.FindBalance(context.Background(), f.employeeID.String(), f.policyID.String(), 2026)
		balance.AllocatedDays = decimal.NewFromInt(3)

		// Monday through Thursday is 4 business days against 3 remaining.
		ok, err := f.svc.CanRequestLeave(context.Background(), f.employeeID.String(), f.policyID.String(), "2026-03-09", "2026-03-12")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("insufficient notice", func(t *testing.T) {
		f := newLeaveFixture(t)
		defer f.db.Close()

		ok, err := f.svc.CanRequestLeave(context.Background(), f.employeeID.String(), f.policyID.String(), "2026-03-02", "2026-03-03")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("max consecutive exceeded", func(t *testing.T) {
		f := newLeaveFixture(t)
		defer f.db.Close()
		f.policies.policies[f.policyID.String()].MaxConsecutiveDays = 3

		ok, err := f.svc.CanRequestLeave(context.Background(), f.employeeID.String(), f.policyID.String(), "2026-03-09", "2026-03-13")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("eligible", func(t *testing.T) {
		f := newLeaveFixture(t)
		defer f.db.Close()

		ok, err := f.svc.CanRequestLeave(context.Background(), f.employeeID.String(), f.policyID.String(), "2026-03-09", "2026-03-13")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("inactive policy", func(t *testing.T) {
		f := newLeaveFixture(t)
		defer f.db.Close()
		f.policies.policies[f.policyID.String()].IsActive = false

		ok, err := f.svc.CanRequestLeave(context.Background(), f.employeeID.String(), f.policyID.String(), "2026-03-09", "2026-03-13")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_TwoStepApproval_ConsumesBalanceOnce(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()

	created := f.createRequest(t, "2026-03-09", "2026-03-13")

	hrApprover := uuid.New()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err := f.svc.SetupApprovalWorkflow(context.Background(), created.ID, []string{
		f.managerID.String(), hrApprover.String(),
	})
	assert.NoError(t, err)

	// Manager approves first; an HR step is still pending so the request
	// stays PENDING and the balance is untouched.
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	resp, err := f.svc.ProcessApproval(context.Background(), f.managerID.String(), ProcessApprovalRequest{
		LeaveRequestID: created.ID,
		Decision:       StepApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)

	balance, _ := f.repo.FindBalance(context.Background(), f.employeeID.String(), f.policyID.String(), 2026)
	assert.True(t, balance.UsedDays.IsZero())

	// HR approves last; the request flips to APPROVED and 5 days are
	// consumed exactly once.
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	resp, err = f.svc.ProcessApproval(context.Background(), hrApprover.String(), ProcessApprovalRequest{
		LeaveRequestID: created.ID,
		Decision:       StepApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovedAt)

	balance, _ = f.repo.FindBalance(context.Background(), f.employeeID.String(), f.policyID.String(), 2026)
	assert.Equal(t, "5", balance.UsedDays.String())

	// A replayed approval finds no pending step.
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err = f.svc.ProcessApproval(context.Background(), hrApprover.String(), ProcessApprovalRequest{
		LeaveRequestID: created.ID,
		Decision:       StepApproved,
	})
	assert.ErrorIs(t, err, leaveerrors.ErrStepNotFound)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_ApprovalOutOfOrder_Rejected(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()

	created := f.createRequest(t, "2026-03-09", "2026-03-13")

	hrApprover := uuid.New()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err := f.svc.SetupApprovalWorkflow(context.Background(), created.ID, []string{
		f.managerID.String(), hrApprover.String(),
	})
	assert.NoError(t, err)

	// The HR step is second in line and cannot act while the manager
	// step is still pending.
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err = f.svc.ProcessApproval(context.Background(), hrApprover.String(), ProcessApprovalRequest{
		LeaveRequestID: created.ID,
		Decision:       StepApproved,
	})
	assert.ErrorIs(t, err, leaveerrors.ErrStepOutOfOrder)

	resp, err := f.svc.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)

	balance, _ := f.repo.FindBalance(context.Background(), f.employeeID.String(), f.policyID.String(), 2026)
	assert.True(t, balance.UsedDays.IsZero())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_Rejection_ShortCircuits(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()

	created := f.createRequest(t, "2026-03-09", "2026-03-13")

	note := "coverage gap that week"
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	resp, err := f.svc.ProcessApproval(context.Background(), f.managerID.String(), ProcessApprovalRequest{
		LeaveRequestID: created.ID,
		Decision:       StepRejected,
		Comments:       &note,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, resp.Status)

	balance, _ := f.repo.FindBalance(context.Background(), f.employeeID.String(), f.policyID.String(), 2026)
	assert.True(t, balance.UsedDays.IsZero())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_Cancel(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()

	created := f.createRequest(t, "2026-03-09", "2026-03-13")

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	assert.NoError(t, f.svc.Cancel(context.Background(), created.ID))

	stored, _ := f.repo.FindRequestByID(context.Background(), created.ID)
	assert.Equal(t, StatusCancelled, stored.Status)

	stored.Status = StatusCompleted
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	assert.ErrorIs(t, f.svc.Cancel(context.Background(), created.ID), leaveerrors.ErrCannotCancel)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_Delete_OnlyInactiveStatuses(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()

	created := f.createRequest(t, "2026-03-09", "2026-03-13")

	stored, _ := f.repo.FindRequestByID(context.Background(), created.ID)
	stored.Status = StatusApproved

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	assert.ErrorIs(t, f.svc.Delete(context.Background(), created.ID), leaveerrors.ErrCannotDelete)

	stored.Status = StatusRejected
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	assert.NoError(t, f.svc.Delete(context.Background(), created.ID))

	_, err := f.repo.FindRequestByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, f.repo.stepsOf(created.ID))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_InitializeBalancesForYear(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()

	// Previous year's balance leaves 8 days unused; the policy caps
	// carry-forward at 5.
	f.repo.putBalance(&EmployeeLeaveBalance{
		ID:            uuid.New(),
		EmployeeID:    f.employeeID,
		PolicyID:      f.policyID,
		Year:          2026,
		AllocatedDays: decimal.NewFromInt(12),
		UsedDays:      decimal.NewFromInt(4),
	})

	processed, failed, err := f.svc.InitializeBalancesForYear(context.Background(), 2027)
	assert.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 0, failed)

	balance, err := f.repo.FindBalance(context.Background(), f.employeeID.String(), f.policyID.String(), 2027)
	assert.NoError(t, err)
	assert.Equal(t, "12", balance.AllocatedDays.String())
	assert.Equal(t, "5", balance.CarriedForwardDays.String())

	// Running the batch again leaves the existing row untouched.
	balance.UsedDays = decimal.NewFromInt(2)
	processed, failed, err = f.svc.InitializeBalancesForYear(context.Background(), 2027)
	assert.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 0, failed)

	again, _ := f.repo.FindBalance(context.Background(), f.employeeID.String(), f.policyID.String(), 2027)
	assert.Equal(t, "2", again.UsedDays.String())
}

func TestService_InitializeBalances_TenureRule(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()
	f.policies.policies[f.policyID.String()].MinTenureMonths = 6

	hired := uuid.New()
	f.employees.employees[hired.String()] = &employee.Employee{
		ID:       hired,
		HireDate: time.Date(2027, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:   "ACTIVE",
	}

	assert.NoError(t, f.svc.InitializeBalancesForEmployee(context.Background(), hired.String(), 2027))

	// Hired in October: 3 months of tenure in 2027, below the 6 month bar.
	_, err := f.repo.FindBalance(context.Background(), hired.String(), f.policyID.String(), 2027)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestService_AdjustBalance(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	resp, err := f.svc.AdjustBalance(context.Background(), AdjustBalanceRequest{
		EmployeeID: f.employeeID.String(),
		PolicyID:   f.policyID.String(),
		Year:       2026,
		Delta:      "-1.5",
	})
	assert.NoError(t, err)
	assert.Equal(t, "-1.5", resp.AdjustmentDays)
	assert.Equal(t, "8.5", resp.RemainingDays)

	_, err = f.svc.AdjustBalance(context.Background(), AdjustBalanceRequest{
		EmployeeID: f.employeeID.String(),
		PolicyID:   f.policyID.String(),
		Year:       2026,
		Delta:      "one",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDayAmount)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_CalculateRequestedDays_InvalidRange(t *testing.T) {
	f := newLeaveFixture(t)
	defer f.db.Close()

	_, err := f.svc.CalculateRequestedDays(context.Background(), "2026-03-13", "2026-03-09", false)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)

	_, err = f.svc.CalculateRequestedDays(context.Background(), "13/03/2026", "2026-03-14", false)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
}
