package workshift

import (
	"context"
	"database/sql"
	"testing"
	"time"

	workshifterrors "go-hrm/internal/workshift/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeShiftRepo struct {
	shifts      map[string]*WorkShift
	assignments map[string]*ShiftAssignment
	schedules   map[string]*WorkSchedule
	refCount    int64
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{
		shifts:      map[string]*WorkShift{},
		assignments: map[string]*ShiftAssignment{},
		schedules:   map[string]*WorkSchedule{},
	}
}

func (f *fakeShiftRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeShiftRepo) CreateShift(ctx context.Context, shift *WorkShift) error {
	f.shifts[shift.ID.String()] = shift
	return nil
}

func (f *fakeShiftRepo) FindAllShifts(ctx context.Context) ([]WorkShift, error) {
	var out []WorkShift
	for _, sh := range f.shifts {
		out = append(out, *sh)
	}
	return out, nil
}

func (f *fakeShiftRepo) FindShiftByID(ctx context.Context, id string) (*WorkShift, error) {
	sh, ok := f.shifts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sh, nil
}

func (f *fakeShiftRepo) UpdateShift(ctx context.Context, shift *WorkShift) error {
	f.shifts[shift.ID.String()] = shift
	return nil
}

func (f *fakeShiftRepo) DeleteShift(ctx context.Context, id string) error {
	delete(f.shifts, id)
	return nil
}

func (f *fakeShiftRepo) CountShiftReferences(ctx context.Context, shiftID string) (int64, error) {
	return f.refCount, nil
}

func (f *fakeShiftRepo) CreateAssignment(ctx context.Context, a *ShiftAssignment) error {
	f.assignments[a.ID.String()] = a
	return nil
}

func (f *fakeShiftRepo) FindOpenAssignments(ctx context.Context, employeeID string, from time.Time) ([]ShiftAssignment, error) {
	var out []ShiftAssignment
	for _, a := range f.assignments {
		if a.EmployeeID.String() != employeeID {
			continue
		}
		if a.EffectiveTo == nil || !a.EffectiveTo.Before(from) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) FindDefaultAssignmentForDate(ctx context.Context, employeeID string, date time.Time) (*ShiftAssignment, error) {
	for _, a := range f.assignments {
		if a.EmployeeID.String() != employeeID || !a.IsDefaultShift {
			continue
		}
		if a.EffectiveFrom.After(date) {
			continue
		}
		if a.EffectiveTo != nil && a.EffectiveTo.Before(date) {
			continue
		}
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeShiftRepo) FindAssignmentsByEmployee(ctx context.Context, employeeID string) ([]ShiftAssignment, error) {
	var out []ShiftAssignment
	for _, a := range f.assignments {
		if a.EmployeeID.String() == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) UpdateAssignment(ctx context.Context, a *ShiftAssignment) error {
	f.assignments[a.ID.String()] = a
	return nil
}

func (f *fakeShiftRepo) CreateSchedule(ctx context.Context, s *WorkSchedule) error {
	f.schedules[s.ID.String()] = s
	return nil
}

func (f *fakeShiftRepo) FindScheduleForDate(ctx context.Context, employeeID string, date time.Time) (*WorkSchedule, error) {
	for _, sched := range f.schedules {
		if sched.EmployeeID.String() == employeeID &&
			sched.WorkDate.Format("2006-01-02") == date.Format("2006-01-02") {
			return sched, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestService_CreateShift(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := newFakeShiftRepo()
	svc := NewService(db, repo)

	t.Run("day shift defaults", func(t *testing.T) {
		resp, err := svc.CreateShift(context.Background(), CreateWorkShiftRequest{
			Name:      "Office Day",
			StartTime: "09:00",
			EndTime:   "18:00",
		})
		assert.NoError(t, err)
		assert.Equal(t, 540, resp.WorkingMinutes)
		assert.Equal(t, StatusActive, resp.Status)
		assert.Equal(t, []string{"monday", "tuesday", "wednesday", "thursday", "friday"}, resp.ApplicableDays)
	})

	t.Run("break deducted", func(t *testing.T) {
		breakStart, breakEnd := "12:00", "13:00"
		resp, err := svc.CreateShift(context.Background(), CreateWorkShiftRequest{
			Name:       "Office Day With Lunch",
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: &breakStart,
			BreakEnd:   &breakEnd,
		})
		assert.NoError(t, err)
		assert.Equal(t, 480, resp.WorkingMinutes)
	})

	t.Run("night shift spans midnight", func(t *testing.T) {
		resp, err := svc.CreateShift(context.Background(), CreateWorkShiftRequest{
			Name:         "Night Watch",
			StartTime:    "22:00",
			EndTime:      "06:00",
			IsNightShift: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, 480, resp.WorkingMinutes)
	})

	t.Run("invalid clock", func(t *testing.T) {
		_, err := svc.CreateShift(context.Background(), CreateWorkShiftRequest{
			Name:      "Broken",
			StartTime: "9am",
			EndTime:   "18:00",
		})
		assert.ErrorIs(t, err, workshifterrors.ErrInvalidTimeFormat)
	})
}

func TestService_DeleteShift_InUse(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := newFakeShiftRepo()
	svc := NewService(db, repo)

	resp, err := svc.CreateShift(context.Background(), CreateWorkShiftRequest{
		Name:      "Office Day",
		StartTime: "09:00",
		EndTime:   "18:00",
	})
	assert.NoError(t, err)

	repo.refCount = 2
	assert.ErrorIs(t, svc.DeleteShift(context.Background(), resp.ID), workshifterrors.ErrShiftInUse)

	repo.refCount = 0
	assert.NoError(t, svc.DeleteShift(context.Background(), resp.ID))
	_, err = svc.GetShiftByID(context.Background(), resp.ID)
	assert.ErrorIs(t, err, workshifterrors.ErrShiftNotFound)
}

func TestService_AssignShift_ClosesOverlappingAssignment(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := newFakeShiftRepo()
	svc := NewService(db, repo)

	shift, err := svc.CreateShift(context.Background(), CreateWorkShiftRequest{
		Name:      "Office Day",
		StartTime: "09:00",
		EndTime:   "18:00",
	})
	assert.NoError(t, err)

	employeeID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.AssignShift(context.Background(), AssignShiftRequest{
		EmployeeID:     employeeID,
		ShiftID:        shift.ID,
		EffectiveFrom:  "2026-01-01",
		IsDefaultShift: true,
	})
	assert.NoError(t, err)
	assert.Nil(t, first.EffectiveTo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.AssignShift(context.Background(), AssignShiftRequest{
		EmployeeID:     employeeID,
		ShiftID:        shift.ID,
		EffectiveFrom:  "2026-06-01",
		IsDefaultShift: true,
	})
	assert.NoError(t, err)

	closed := repo.assignments[first.ID]
	assert.NotNil(t, closed.EffectiveTo)
	assert.Equal(t, "2026-05-31", closed.EffectiveTo.Format("2006-01-02"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ResolveShiftForDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := newFakeShiftRepo()
	svc := NewService(db, repo)

	defaultShift, err := svc.CreateShift(context.Background(), CreateWorkShiftRequest{
		Name:      "Office Day",
		StartTime: "09:00",
		EndTime:   "18:00",
	})
	assert.NoError(t, err)
	overrideShift, err := svc.CreateShift(context.Background(), CreateWorkShiftRequest{
		Name:         "Night Watch",
		StartTime:    "22:00",
		EndTime:      "06:00",
		IsNightShift: true,
	})
	assert.NoError(t, err)

	employeeID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.AssignShift(context.Background(), AssignShiftRequest{
		EmployeeID:     employeeID,
		ShiftID:        defaultShift.ID,
		EffectiveFrom:  "2026-01-01",
		IsDefaultShift: true,
	})
	assert.NoError(t, err)

	_, err = svc.CreateSchedule(context.Background(), CreateScheduleRequest{
		EmployeeID: employeeID,
		ShiftID:    overrideShift.ID,
		WorkDate:   "2026-03-10",
	})
	assert.NoError(t, err)

	t.Run("schedule overrides default", func(t *testing.T) {
		resolved, err := svc.ResolveShiftForDate(context.Background(), employeeID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.Equal(t, overrideShift.ID, resolved.Shift.ID.String())
		assert.NotNil(t, resolved.ScheduleID)
	})

	t.Run("default assignment without schedule", func(t *testing.T) {
		resolved, err := svc.ResolveShiftForDate(context.Background(), employeeID, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.Equal(t, defaultShift.ID, resolved.Shift.ID.String())
		assert.Nil(t, resolved.ScheduleID)
	})

	t.Run("no shift for date", func(t *testing.T) {
		_, err := svc.ResolveShiftForDate(context.Background(), uuid.New().String(), time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, workshifterrors.ErrNoShiftForDate)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DeactivateShift(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := newFakeShiftRepo()
	svc := NewService(db, repo)

	resp, err := svc.CreateShift(context.Background(), CreateWorkShiftRequest{
		Name:      "Office Day",
		StartTime: "09:00",
		EndTime:   "18:00",
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeactivateShift(context.Background(), resp.ID))
	stored := repo.shifts[resp.ID]
	assert.Equal(t, StatusInactive, stored.Status)
}
