package workshift

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrm/internal/shared/workcal"
	workshifterrors "go-hrm/internal/workshift/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minutesPerDay = 24 * 60

// ResolvedShift is the shift the attendance engine should measure a day
// against, together with where it came from.
type ResolvedShift struct {
	Shift      WorkShift
	ScheduleID *uuid.UUID
}

//go:generate mockgen -source=workshift_service.go -destination=mock/workshift_service_mock.go -package=mock
type Service interface {
	CreateShift(ctx context.Context, req CreateWorkShiftRequest) (WorkShiftResponse, error)
	GetShifts(ctx context.Context) ([]WorkShiftResponse, error)
	GetShiftByID(ctx context.Context, id string) (WorkShiftResponse, error)
	UpdateShift(ctx context.Context, id string, req UpdateWorkShiftRequest) (WorkShiftResponse, error)
	DeactivateShift(ctx context.Context, id string) error
	DeleteShift(ctx context.Context, id string) error

	AssignShift(ctx context.Context, req AssignShiftRequest) (ShiftAssignmentResponse, error)
	GetAssignmentsByEmployee(ctx context.Context, employeeID string) ([]ShiftAssignmentResponse, error)

	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (WorkScheduleResponse, error)
	ResolveShiftForDate(ctx context.Context, employeeID string, date time.Time) (ResolvedShift, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workshift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workshift.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateShift(ctx context.Context, req CreateWorkShiftRequest) (WorkShiftResponse, error) {
	shift, err := buildShift(uuid.New(), req.Name, req.StartTime, req.EndTime, req.BreakStart, req.BreakEnd,
		req.FlexibleMinutes, req.AllowOvertime, req.OvertimeCapMinutes, req.ApplicableDays, req.IsNightShift, req.Status)
	if err != nil {
		return WorkShiftResponse{}, err
	}

	if err := s.repo.CreateShift(ctx, shift); err != nil {
		s.logger.Error("create work shift failed", zap.String("name", req.Name), zap.Error(err))
		return WorkShiftResponse{}, mapShiftRepositoryError(err)
	}

	s.logger.Info("create work shift success",
		zap.String("shift_id", shift.ID.String()),
		zap.String("name", shift.Name),
	)
	return mapShiftToResponse(*shift), nil
}

func (s *service) GetShifts(ctx context.Context) ([]WorkShiftResponse, error) {
	shifts, err := s.repo.FindAllShifts(ctx)
	if err != nil {
		s.logger.Error("list work shifts failed", zap.Error(err))
		return nil, mapShiftRepositoryError(err)
	}

	resp := make([]WorkShiftResponse, len(shifts))
	for i, sh := range shifts {
		resp[i] = mapShiftToResponse(sh)
	}
	return resp, nil
}

func (s *service) GetShiftByID(ctx context.Context, id string) (WorkShiftResponse, error) {
	shift, err := s.repo.FindShiftByID(ctx, id)
	if err != nil {
		return WorkShiftResponse{}, mapShiftRepositoryError(err)
	}
	return mapShiftToResponse(*shift), nil
}

func (s *service) UpdateShift(ctx context.Context, id string, req UpdateWorkShiftRequest) (WorkShiftResponse, error) {
	existing, err := s.repo.FindShiftByID(ctx, id)
	if err != nil {
		return WorkShiftResponse{}, mapShiftRepositoryError(err)
	}

	updated, err := buildShift(existing.ID, req.Name, req.StartTime, req.EndTime, req.BreakStart, req.BreakEnd,
		req.FlexibleMinutes, req.AllowOvertime, req.OvertimeCapMinutes, req.ApplicableDays, req.IsNightShift, req.Status)
	if err != nil {
		return WorkShiftResponse{}, err
	}
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateShift(ctx, updated); err != nil {
		s.logger.Error("update work shift failed", zap.String("shift_id", id), zap.Error(err))
		return WorkShiftResponse{}, mapShiftRepositoryError(err)
	}

	s.logger.Info("update work shift success", zap.String("shift_id", id))
	return mapShiftToResponse(*updated), nil
}

// DeactivateShift retires a shift without touching historical assignments
// or attendance that reference it.
func (s *service) DeactivateShift(ctx context.Context, id string) error {
	shift, err := s.repo.FindShiftByID(ctx, id)
	if err != nil {
		return mapShiftRepositoryError(err)
	}

	shift.Status = StatusInactive
	if err := s.repo.UpdateShift(ctx, shift); err != nil {
		s.logger.Error("deactivate work shift failed", zap.String("shift_id", id), zap.Error(err))
		return mapShiftRepositoryError(err)
	}

	s.logger.Info("deactivate work shift success", zap.String("shift_id", id))
	return nil
}

func (s *service) DeleteShift(ctx context.Context, id string) error {
	if _, err := s.repo.FindShiftByID(ctx, id); err != nil {
		return mapShiftRepositoryError(err)
	}

	refs, err := s.repo.CountShiftReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return workshifterrors.ErrShiftInUse
	}

	if err := s.repo.DeleteShift(ctx, id); err != nil {
		s.logger.Error("delete work shift failed", zap.String("shift_id", id), zap.Error(err))
		return mapShiftRepositoryError(err)
	}

	s.logger.Info("delete work shift success", zap.String("shift_id", id))
	return nil
}

func (s *service) AssignShift(ctx context.Context, req AssignShiftRequest) (ShiftAssignmentResponse, error) {
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return ShiftAssignmentResponse{}, workshifterrors.ErrInvalidDateFormat
	}

	var effectiveTo *time.Time
	if req.EffectiveTo != "" {
		to, err := time.Parse("2006-01-02", req.EffectiveTo)
		if err != nil {
			return ShiftAssignmentResponse{}, workshifterrors.ErrInvalidDateFormat
		}
		if to.Before(effectiveFrom) {
			return ShiftAssignmentResponse{}, workshifterrors.ErrInvalidDateFormat
		}
		effectiveTo = &to
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign shift begin tx failed", zap.Error(err))
		return ShiftAssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindShiftByID(ctx, req.ShiftID); err != nil {
		return ShiftAssignmentResponse{}, mapShiftRepositoryError(err)
	}

	// A new assignment supersedes any still-open one, so close overlapping
	// ranges the day before the new range starts.
	open, err := qtx.FindOpenAssignments(ctx, req.EmployeeID, effectiveFrom)
	if err != nil {
		return ShiftAssignmentResponse{}, err
	}
	closeDate := effectiveFrom.AddDate(0, 0, -1)
	for i := range open {
		if !open[i].EffectiveFrom.After(effectiveFrom) {
			prev := open[i]
			prev.EffectiveTo = &closeDate
			if err := qtx.UpdateAssignment(ctx, &prev); err != nil {
				s.logger.Error("close overlapping assignment failed",
					zap.String("assignment_id", prev.ID.String()),
					zap.Error(err),
				)
				return ShiftAssignmentResponse{}, err
			}
		}
	}

	assignment := &ShiftAssignment{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(req.EmployeeID),
		ShiftID:        uuid.MustParse(req.ShiftID),
		EffectiveFrom:  effectiveFrom,
		EffectiveTo:    effectiveTo,
		IsDefaultShift: req.IsDefaultShift,
		RotationOrder:  req.RotationOrder,
		RotationCycle:  req.RotationCycle,
	}

	if err := qtx.CreateAssignment(ctx, assignment); err != nil {
		s.logger.Error("assign shift persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return ShiftAssignmentResponse{}, mapAssignmentRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign shift commit failed", zap.Error(err))
		return ShiftAssignmentResponse{}, err
	}

	s.logger.Info("assign shift success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("shift_id", req.ShiftID),
		zap.String("effective_from", req.EffectiveFrom),
	)
	return mapAssignmentToResponse(*assignment), nil
}

func (s *service) GetAssignmentsByEmployee(ctx context.Context, employeeID string) ([]ShiftAssignmentResponse, error) {
	assignments, err := s.repo.FindAssignmentsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]ShiftAssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = mapAssignmentToResponse(a)
	}
	return resp, nil
}

func (s *service) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (WorkScheduleResponse, error) {
	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return WorkScheduleResponse{}, workshifterrors.ErrInvalidDateFormat
	}

	if _, err := s.repo.FindShiftByID(ctx, req.ShiftID); err != nil {
		return WorkScheduleResponse{}, mapShiftRepositoryError(err)
	}

	schedule := &WorkSchedule{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(req.EmployeeID),
		ShiftID:    uuid.MustParse(req.ShiftID),
		WorkDate:   workDate,
		Notes:      req.Notes,
	}

	if err := s.repo.CreateSchedule(ctx, schedule); err != nil {
		s.logger.Error("create schedule failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("work_date", req.WorkDate),
			zap.Error(err),
		)
		return WorkScheduleResponse{}, mapScheduleRepositoryError(err)
	}

	s.logger.Info("create schedule success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("work_date", req.WorkDate),
	)
	return mapScheduleToResponse(*schedule), nil
}

// ResolveShiftForDate answers "which shift applies to this employee on
// this date". An explicit schedule wins; otherwise the default assignment
// whose effective range covers the date.
func (s *service) ResolveShiftForDate(ctx context.Context, employeeID string, date time.Time) (ResolvedShift, error) {
	schedule, err := s.repo.FindScheduleForDate(ctx, employeeID, date)
	if err == nil {
		shift, err := s.repo.FindShiftByID(ctx, schedule.ShiftID.String())
		if err != nil {
			return ResolvedShift{}, mapShiftRepositoryError(err)
		}
		scheduleID := schedule.ID
		return ResolvedShift{Shift: *shift, ScheduleID: &scheduleID}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ResolvedShift{}, err
	}

	assignment, err := s.repo.FindDefaultAssignmentForDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolvedShift{}, workshifterrors.ErrNoShiftForDate
		}
		return ResolvedShift{}, err
	}

	shift, err := s.repo.FindShiftByID(ctx, assignment.ShiftID.String())
	if err != nil {
		return ResolvedShift{}, mapShiftRepositoryError(err)
	}
	return ResolvedShift{Shift: *shift}, nil
}

func buildShift(
	id uuid.UUID,
	name, startTime, endTime string,
	breakStart, breakEnd *string,
	flexibleMinutes int,
	allowOvertime bool,
	overtimeCapMinutes int,
	applicableDays []string,
	isNightShift bool,
	status string,
) (*WorkShift, error) {
	startMinutes, err := parseClock(startTime)
	if err != nil {
		return nil, err
	}
	endMinutes, err := parseClock(endTime)
	if err != nil {
		return nil, err
	}
	if !isNightShift && endMinutes <= startMinutes {
		return nil, workshifterrors.ErrInvalidTimeRange
	}

	var breakStartMinutes, breakEndMinutes *int
	breakMinutes := 0
	if breakStart != nil && breakEnd != nil {
		bs, err := parseClock(*breakStart)
		if err != nil {
			return nil, err
		}
		be, err := parseClock(*breakEnd)
		if err != nil {
			return nil, err
		}
		if be <= bs {
			return nil, workshifterrors.ErrInvalidTimeRange
		}
		breakStartMinutes, breakEndMinutes = &bs, &be
		breakMinutes = be - bs
	}

	days, err := parseWeekdays(applicableDays)
	if err != nil {
		return nil, err
	}
	if days.IsEmpty() {
		days = workcal.MondayToFriday()
	}

	span := endMinutes - startMinutes
	if isNightShift && span <= 0 {
		span += minutesPerDay
	}

	if status == "" {
		status = StatusActive
	}

	return &WorkShift{
		ID:                 id,
		Name:               name,
		StartMinutes:       startMinutes,
		EndMinutes:         endMinutes,
		BreakStartMinutes:  breakStartMinutes,
		BreakEndMinutes:    breakEndMinutes,
		WorkingMinutes:     span - breakMinutes,
		FlexibleMinutes:    flexibleMinutes,
		AllowOvertime:      allowOvertime,
		OvertimeCapMinutes: overtimeCapMinutes,
		ApplicableDays:     days,
		IsNightShift:       isNightShift,
		Status:             status,
	}, nil
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, workshifterrors.ErrInvalidTimeFormat
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	minutes %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekdays(names []string) (workcal.WeekdaySet, error) {
	var set workcal.WeekdaySet
	for _, n := range names {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, workshifterrors.ErrInvalidWeekday
		}
		set = set.Add(d)
	}
	return set, nil
}

func clockPtr(minutes *int) *string {
	if minutes == nil {
		return nil
	}
	v := formatClock(*minutes)
	return &v
}

func mapShiftToResponse(shift WorkShift) WorkShiftResponse {
	days := make([]string, 0, 7)
	for _, d := range shift.ApplicableDays.Weekdays() {
		days = append(days, strings.ToLower(d.String()))
	}
	return WorkShiftResponse{
		ID:                 shift.ID.String(),
		Name:               shift.Name,
		StartTime:          formatClock(shift.StartMinutes),
		EndTime:            formatClock(shift.EndMinutes),
		BreakStart:         clockPtr(shift.BreakStartMinutes),
		BreakEnd:           clockPtr(shift.BreakEndMinutes),
		WorkingMinutes:     shift.WorkingMinutes,
		FlexibleMinutes:    shift.FlexibleMinutes,
		AllowOvertime:      shift.AllowOvertime,
		OvertimeCapMinutes: shift.OvertimeCapMinutes,
		ApplicableDays:     days,
		IsNightShift:       shift.IsNightShift,
		Status:             shift.Status,
	}
}

func mapAssignmentToResponse(a ShiftAssignment) ShiftAssignmentResponse {
	var effectiveTo *string
	if a.EffectiveTo != nil {
		v := a.EffectiveTo.Format("2006-01-02")
		effectiveTo = &v
	}
	return ShiftAssignmentResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		ShiftID:        a.ShiftID.String(),
		EffectiveFrom:  a.EffectiveFrom.Format("2006-01-02"),
		EffectiveTo:    effectiveTo,
		IsDefaultShift: a.IsDefaultShift,
		RotationOrder:  a.RotationOrder,
		RotationCycle:  a.RotationCycle,
	}
}

func mapScheduleToResponse(s WorkSchedule) WorkScheduleResponse {
	return WorkScheduleResponse{
		ID:         s.ID.String(),
		EmployeeID: s.EmployeeID.String(),
		ShiftID:    s.ShiftID.String(),
		WorkDate:   s.WorkDate.Format("2006-01-02"),
		Notes:      s.Notes,
	}
}
