package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/shared/workcal"
	"go-hrm/internal/workshift"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const standardMinutesPerDay = 8 * 60

// ShiftResolver answers which shift governs an employee's day. The
// workshift service satisfies it.
type ShiftResolver interface {
	ResolveShiftForDate(ctx context.Context, employeeID string, date time.Time) (workshift.ResolvedShift, error)
}

// EmployeeDirectory is the slice of the employee repository the monthly
// summary batch needs.
type EmployeeDirectory interface {
	ActiveEmployeeIDs(ctx context.Context) ([]string, error)
}

// LeaveDaysSource reports approved leave days inside a month so the
// summary can carry the breakdown. Optional; nil means zero.
type LeaveDaysSource interface {
	ApprovedLeaveDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (decimal.Decimal, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error)
	RecordBreak(ctx context.Context, employeeID string, req RecordBreakRequest) (AttendanceResponse, error)
	Approve(ctx context.Context, approverID string, req ApproveRequest) (int, error)
	DailyStatus(ctx context.Context, employeeID, date string) (DailyStatusResponse, error)
	GetSummary(ctx context.Context, employeeID string, year, month int) (SummaryResponse, error)

	// GenerateMonthlySummary recomputes every active employee's summary
	// for the period. Failures on individual employees are counted and
	// logged, not fatal to the batch.
	GenerateMonthlySummary(ctx context.Context, year, month int) (processed int, failed int, err error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	shifts    ShiftResolver
	directory EmployeeDirectory
	leaveDays LeaveDaysSource
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	shifts ShiftResolver,
	directory EmployeeDirectory,
	leaveDays LeaveDaysSource,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		shifts:    shifts,
		directory: directory,
		leaveDays: leaveDays,
		logger:    l,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error) {
	at, err := s.eventTime(req.Time)
	if err != nil {
		return AttendanceResponse{}, err
	}
	day := workcal.DateOnly(at)

	s.logger.Debug("check-in requested",
		zap.String("employee_id", employeeID),
		zap.Time("at", at),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	switch {
	case err == nil:
		if existing.CheckInTime != nil {
			s.logger.Warn("check-in rejected, already checked in",
				zap.String("employee_id", employeeID),
				zap.String("date", day.Format("2006-01-02")),
			)
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = nil
	default:
		return AttendanceResponse{}, err
	}

	resolved, err := s.shifts.ResolveShiftForDate(ctx, employeeID, day)
	if err != nil {
		s.logger.Warn("check-in shift resolution failed",
			zap.String("employee_id", employeeID),
			zap.String("date", day.Format("2006-01-02")),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}
	shift := resolved.Shift

	allowedStart := day.Add(time.Duration(shift.StartMinutes+shift.FlexibleMinutes) * time.Minute)
	lateMinutes := workcal.MinutesBetween(allowedStart, at)

	status := StatusOnTime
	if lateMinutes > 0 {
		status = StatusLate
	}

	record := existing
	if record == nil {
		record = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     uuid.MustParse(employeeID),
			AttendanceDate: day,
		}
	}
	record.ShiftID = shift.ID
	record.ScheduleID = resolved.ScheduleID
	record.CheckInTime = &at
	record.CheckInLatitude = req.Latitude
	record.CheckInLongitude = req.Longitude
	record.CheckInPhotoPath = req.PhotoPath
	record.CheckInNotes = req.Notes
	record.LateMinutes = lateMinutes
	record.Status = status
	record.ComputedStatus = status

	if existing == nil {
		err = qtx.Create(ctx, record)
	} else {
		err = qtx.Update(ctx, record)
	}
	if err != nil {
		s.logger.Error("check-in persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := qtx.CreateDetail(ctx, s.detail(record.ID, EventCheckIn, at, req.Latitude, req.Longitude, req.PhotoPath, req.DeviceInfo, req.Notes)); err != nil {
		s.logger.Error("check-in audit persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("employee_id", employeeID),
		zap.String("date", day.Format("2006-01-02")),
		zap.Int("late_minutes", lateMinutes),
		zap.String("status", status),
	)
	return mapToResponse(*record), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error) {
	at, err := s.eventTime(req.Time)
	if err != nil {
		return AttendanceResponse{}, err
	}
	day := workcal.DateOnly(at)

	s.logger.Debug("check-out requested",
		zap.String("employee_id", employeeID),
		zap.Time("at", at),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, err
		}
		// A night shift spills past midnight, so a punch after 00:00 can
		// still belong to the previous day's open record.
		record, day, err = s.openNightShiftRecord(ctx, qtx, employeeID, day)
		if err != nil {
			return AttendanceResponse{}, err
		}
	}
	if record.CheckInTime == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
	}
	if record.CheckOutTime != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	resolved, err := s.shifts.ResolveShiftForDate(ctx, employeeID, day)
	if err != nil {
		return AttendanceResponse{}, err
	}
	shift := resolved.Shift

	breakMinutes := 0
	if record.BreakStartTime != nil && record.BreakEndTime != nil {
		breakMinutes = workcal.MinutesBetween(*record.BreakStartTime, *record.BreakEndTime)
	}

	total := workcal.MinutesBetween(*record.CheckInTime, at) - breakMinutes
	if total < 0 {
		total = 0
	}

	shiftEnd := day.Add(time.Duration(shift.EndMinutes) * time.Minute)
	if shift.IsNightShift && shift.EndMinutes <= shift.StartMinutes {
		shiftEnd = shiftEnd.Add(24 * time.Hour)
	}
	allowedEnd := shiftEnd.Add(-time.Duration(shift.FlexibleMinutes) * time.Minute)

	earlyLeaveMinutes := 0
	if at.Before(allowedEnd) {
		earlyLeaveMinutes = workcal.MinutesBetween(at, allowedEnd)
		// Late set at check-in is never downgraded.
		if record.Status != StatusLate {
			record.Status = StatusEarly
		}
	}

	overtimeMinutes := 0
	if shift.AllowOvertime && at.After(shiftEnd) {
		overtimeMinutes = workcal.MinutesBetween(shiftEnd, at)
		if shift.OvertimeCapMinutes > 0 && overtimeMinutes > shift.OvertimeCapMinutes {
			overtimeMinutes = shift.OvertimeCapMinutes
		}
		if record.Status == StatusOnTime {
			record.Status = StatusOvertime
		}
	}

	record.CheckOutTime = &at
	record.CheckOutLatitude = req.Latitude
	record.CheckOutLongitude = req.Longitude
	record.CheckOutPhotoPath = req.PhotoPath
	record.BreakMinutes = breakMinutes
	record.TotalWorkingMinutes = total
	record.EarlyLeaveMinutes = earlyLeaveMinutes
	record.OvertimeMinutes = overtimeMinutes
	record.ComputedStatus = record.Status

	if err := qtx.Update(ctx, record); err != nil {
		s.logger.Error("check-out persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := qtx.CreateDetail(ctx, s.detail(record.ID, EventCheckOut, at, req.Latitude, req.Longitude, req.PhotoPath, req.DeviceInfo, nil)); err != nil {
		s.logger.Error("check-out audit persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("check-out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out success",
		zap.String("employee_id", employeeID),
		zap.String("date", day.Format("2006-01-02")),
		zap.Int("total_working_minutes", total),
		zap.String("status", record.Status),
	)
	return mapToResponse(*record), nil
}

func (s *service) RecordBreak(ctx context.Context, employeeID string, req RecordBreakRequest) (AttendanceResponse, error) {
	if req.EventType != EventBreakStart && req.EventType != EventBreakEnd {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEventType
	}

	at, err := s.eventTime(req.Time)
	if err != nil {
		return AttendanceResponse{}, err
	}
	day := workcal.DateOnly(at)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record break begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if record.CheckInTime == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
	}

	switch req.EventType {
	case EventBreakStart:
		if record.BreakStartTime != nil {
			return AttendanceResponse{}, attendanceerrors.ErrBreakAlreadyStarted
		}
		record.BreakStartTime = &at
	case EventBreakEnd:
		if record.BreakStartTime == nil {
			return AttendanceResponse{}, attendanceerrors.ErrBreakNotStarted
		}
		if record.BreakEndTime != nil {
			return AttendanceResponse{}, attendanceerrors.ErrBreakAlreadyEnded
		}
		record.BreakEndTime = &at
	}

	if err := qtx.Update(ctx, record); err != nil {
		s.logger.Error("record break persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := qtx.CreateDetail(ctx, s.detail(record.ID, req.EventType, at, nil, nil, nil, req.DeviceInfo, nil)); err != nil {
		s.logger.Error("record break audit persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("record break commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("record break success",
		zap.String("employee_id", employeeID),
		zap.String("event_type", req.EventType),
	)
	return mapToResponse(*record), nil
}

// Approve overwrites Status to APPROVED on each targeted row. The punch
// derived value survives in ComputedStatus.
func (s *service) Approve(ctx context.Context, approverID string, req ApproveRequest) (int, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return 0, attendanceerrors.ErrAttendanceNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve begin tx failed", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()

	approved := 0
	for _, id := range req.AttendanceIDs {
		record, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, attendanceerrors.ErrAttendanceNotFound
			}
			return 0, err
		}

		if record.Status != StatusApproved {
			record.ComputedStatus = record.Status
		}
		record.Status = StatusApproved
		record.ManagerNotes = req.ManagerNotes
		record.ApprovedBy = &approverUUID
		record.ApprovedAt = &now

		if err := qtx.Update(ctx, record); err != nil {
			s.logger.Error("approve persist failed", zap.String("attendance_id", id), zap.Error(err))
			return 0, err
		}
		approved++
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve commit failed", zap.Error(err))
		return 0, err
	}

	s.logger.Info("approve attendance success",
		zap.String("approver_id", approverID),
		zap.Int("count", approved),
	)
	return approved, nil
}

// DailyStatus recomputes the day's state. NO_SHOW is returned, never
// persisted, when no check-in exists.
func (s *service) DailyStatus(ctx context.Context, employeeID, date string) (DailyStatusResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return DailyStatusResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	record, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DailyStatusResponse{
				EmployeeID:     employeeID,
				AttendanceDate: date,
				Status:         StatusNoShow,
			}, nil
		}
		return DailyStatusResponse{}, err
	}
	if record.CheckInTime == nil {
		return DailyStatusResponse{
			EmployeeID:     employeeID,
			AttendanceDate: date,
			Status:         StatusNoShow,
		}, nil
	}

	resp := mapToResponse(*record)
	return DailyStatusResponse{
		EmployeeID:     employeeID,
		AttendanceDate: date,
		Status:         record.Status,
		Record:         &resp,
	}, nil
}

func (s *service) GetSummary(ctx context.Context, employeeID string, year, month int) (SummaryResponse, error) {
	summary, err := s.repo.FindSummary(ctx, employeeID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return SummaryResponse{}, err
	}
	return mapSummaryToResponse(*summary), nil
}

func (s *service) GenerateMonthlySummary(ctx context.Context, year, month int) (int, int, error) {
	s.logger.Info("generate monthly summary started",
		zap.Int("year", year),
		zap.Int("month", month),
	)

	employeeIDs, err := s.directory.ActiveEmployeeIDs(ctx)
	if err != nil {
		s.logger.Error("generate monthly summary list employees failed", zap.Error(err))
		return 0, 0, err
	}

	m := time.Month(month)
	monthStart := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	workingDays := workcal.WeekdaysInMonth(year, m)

	processed, failed := 0, 0
	for _, employeeID := range employeeIDs {
		if err := s.summarizeEmployee(ctx, employeeID, year, m, monthStart, monthEnd, workingDays); err != nil {
			failed++
			s.logger.Error("generate monthly summary employee failed",
				zap.String("employee_id", employeeID),
				zap.Int("year", year),
				zap.Int("month", month),
				zap.Error(err),
			)
			continue
		}
		processed++
	}

	s.logger.Info("generate monthly summary finished",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("processed", processed),
		zap.Int("failed", failed),
	)
	return processed, failed, nil
}

func (s *service) summarizeEmployee(ctx context.Context, employeeID string, year int, month time.Month, monthStart, monthEnd time.Time, workingDays int) error {
	rows, err := s.repo.FindByEmployeeBetween(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return err
	}

	summary := AttendanceSummary{
		ID:                     uuid.New(),
		EmployeeID:             uuid.MustParse(employeeID),
		Year:                   year,
		Month:                  int(month),
		TotalWorkingDays:       workingDays,
		StandardWorkingMinutes: workingDays * standardMinutesPerDay,
		LeaveDays:              decimal.Zero,
	}

	for _, row := range rows {
		if row.CheckInTime == nil {
			continue
		}
		summary.ActualWorkingDays++
		summary.TotalWorkingMinutes += row.TotalWorkingMinutes
		summary.TotalLateMinutes += row.LateMinutes
		summary.TotalEarlyLeaveMinutes += row.EarlyLeaveMinutes
		summary.TotalOvertimeMinutes += row.OvertimeMinutes
		if row.LateMinutes > 0 {
			summary.LateDays++
		}
		if row.EarlyLeaveMinutes > 0 {
			summary.EarlyLeaveDays++
		}
	}

	summary.AbsentDays = workingDays - summary.ActualWorkingDays
	if summary.AbsentDays < 0 {
		summary.AbsentDays = 0
	}

	if s.leaveDays != nil {
		days, err := s.leaveDays.ApprovedLeaveDaysInMonth(ctx, employeeID, year, month)
		if err != nil {
			return err
		}
		summary.LeaveDays = days
	}

	return s.repo.UpsertSummary(ctx, &summary)
}

func (s *service) eventTime(v string) (time.Time, error) {
	if v == "" {
		return s.now(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidTimeFormat
	}
	return t.UTC(), nil
}

// openNightShiftRecord looks one day back for an open record whose shift runs
// past midnight. Returns ErrNotCheckedIn when there is nothing to close.
func (s *service) openNightShiftRecord(ctx context.Context, repo Repository, employeeID string, day time.Time) (*Attendance, time.Time, error) {
	prevDay := day.AddDate(0, 0, -1)

	record, err := repo.FindByEmployeeAndDate(ctx, employeeID, prevDay)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, day, attendanceerrors.ErrNotCheckedIn
		}
		return nil, day, err
	}
	if record.CheckInTime == nil || record.CheckOutTime != nil {
		return nil, day, attendanceerrors.ErrNotCheckedIn
	}

	resolved, err := s.shifts.ResolveShiftForDate(ctx, employeeID, prevDay)
	if err != nil {
		return nil, day, err
	}
	if !resolved.Shift.IsNightShift {
		return nil, day, attendanceerrors.ErrNotCheckedIn
	}
	return record, prevDay, nil
}

func (s *service) detail(attendanceID uuid.UUID, eventType string, at time.Time, lat, lng *float64, photoPath, deviceInfo, notes *string) *AttendanceDetail {
	return &AttendanceDetail{
		ID:           uuid.New(),
		AttendanceID: attendanceID,
		EventType:    eventType,
		EventTime:    at,
		Latitude:     lat,
		Longitude:    lng,
		PhotoPath:    photoPath,
		DeviceInfo:   deviceInfo,
		Notes:        notes,
	}
}

func timePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                  a.ID.String(),
		EmployeeID:          a.EmployeeID.String(),
		AttendanceDate:      a.AttendanceDate.Format("2006-01-02"),
		ShiftID:             a.ShiftID.String(),
		CheckInTime:         timePtr(a.CheckInTime),
		CheckOutTime:        timePtr(a.CheckOutTime),
		BreakStartTime:      timePtr(a.BreakStartTime),
		BreakEndTime:        timePtr(a.BreakEndTime),
		TotalWorkingMinutes: a.TotalWorkingMinutes,
		BreakMinutes:        a.BreakMinutes,
		LateMinutes:         a.LateMinutes,
		EarlyLeaveMinutes:   a.EarlyLeaveMinutes,
		OvertimeMinutes:     a.OvertimeMinutes,
		Status:              a.Status,
		ComputedStatus:      a.ComputedStatus,
		ManagerNotes:        a.ManagerNotes,
	}
	if a.ApprovedBy != nil {
		v := a.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	resp.ApprovedAt = timePtr(a.ApprovedAt)
	return resp
}

func mapSummaryToResponse(s AttendanceSummary) SummaryResponse {
	return SummaryResponse{
		EmployeeID:             s.EmployeeID.String(),
		Year:                   s.Year,
		Month:                  s.Month,
		TotalWorkingDays:       s.TotalWorkingDays,
		ActualWorkingDays:      s.ActualWorkingDays,
		AbsentDays:             s.AbsentDays,
		LateDays:               s.LateDays,
		EarlyLeaveDays:         s.EarlyLeaveDays,
		TotalWorkingMinutes:    s.TotalWorkingMinutes,
		TotalLateMinutes:       s.TotalLateMinutes,
		TotalEarlyLeaveMinutes: s.TotalEarlyLeaveMinutes,
		TotalOvertimeMinutes:   s.TotalOvertimeMinutes,
		StandardWorkingMinutes: s.StandardWorkingMinutes,
		LeaveDays:              s.LeaveDays.String(),
	}
}
