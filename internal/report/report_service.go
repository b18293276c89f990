package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hrm/internal/attendance"
	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/leave"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/workcal"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const dailyReportTTL = 5 * time.Minute

var errInvalidDate = apperror.New(
	apperror.CodeInvalidInput,
	"invalid date format, expected YYYY-MM-DD",
	400,
)

// HolidayCalendar supplies holiday dates for the calendar view.
type HolidayCalendar interface {
	DatesInRange(ctx context.Context, start, end time.Time) (workcal.DateSet, error)
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	DailyReport(ctx context.Context, date, departmentID string) (DailyAttendanceReport, error)
	EmployeeHistory(ctx context.Context, employeeID, startDate, endDate string) (EmployeeHistoryReport, error)
	DepartmentLeaveBalances(ctx context.Context, departmentID string, year int) (DepartmentLeaveBalanceReport, error)
	LeaveCalendar(ctx context.Context, startDate, endDate, departmentID string) (LeaveCalendarReport, error)
}

type service struct {
	attendances attendance.Repository
	leaves      leave.Repository
	employees   employee.Repository
	holidays    HolidayCalendar
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	attendances attendance.Repository,
	leaves leave.Repository,
	employees employee.Repository,
	holidays HolidayCalendar,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		attendances: attendances,
		leaves:      leaves,
		employees:   employees,
		holidays:    holidays,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

// DailyReport is cached per (date, department) since dashboards poll it.
func (s *service) DailyReport(ctx context.Context, date, departmentID string) (DailyAttendanceReport, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return DailyAttendanceReport{}, errInvalidDate
	}

	cacheKey := fmt.Sprintf("reports:daily:%s:%s", date, departmentID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var report DailyAttendanceReport
			if json.Unmarshal([]byte(cached), &report) == nil {
				return report, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		report, err := s.buildDailyReport(ctx, day, date, departmentID)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(report); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, dailyReportTTL).Err()
			}
		}
		return report, nil
	})
	if err != nil {
		return DailyAttendanceReport{}, err
	}
	return v.(DailyAttendanceReport), nil
}

func (s *service) buildDailyReport(ctx context.Context, day time.Time, date, departmentID string) (DailyAttendanceReport, error) {
	rows, err := s.attendances.FindAllByDate(ctx, day, departmentID)
	if err != nil {
		s.logger.Error("daily report query failed", zap.String("date", date), zap.Error(err))
		return DailyAttendanceReport{}, err
	}

	activeIDs, err := s.employees.ActiveEmployeeIDs(ctx)
	if err != nil {
		return DailyAttendanceReport{}, err
	}

	report := DailyAttendanceReport{
		Date:         date,
		DepartmentID: departmentID,
		Records:      make([]DailyAttendanceEntry, 0, len(rows)),
	}
	for _, row := range rows {
		if row.CheckInTime == nil {
			continue
		}
		report.TotalPresent++
		if row.LateMinutes > 0 {
			report.TotalLate++
		}
		if row.EarlyLeaveMinutes > 0 {
			report.TotalEarly++
		}
		report.Records = append(report.Records, mapEntry(row))
	}

	// Absence is measured against the active headcount; a department
	// filter narrows the present side only, so the company-wide number is
	// reported when no filter applies.
	if departmentID == "" {
		report.TotalAbsent = len(activeIDs) - report.TotalPresent
		if report.TotalAbsent < 0 {
			report.TotalAbsent = 0
		}
	}
	return report, nil
}

// EmployeeHistory recomputes the aggregate from raw rows; it does not
// read the persisted monthly summaries.
func (s *service) EmployeeHistory(ctx context.Context, employeeID, startDate, endDate string) (EmployeeHistoryReport, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return EmployeeHistoryReport{}, errInvalidDate
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return EmployeeHistoryReport{}, errInvalidDate
	}

	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeHistoryReport{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeHistoryReport{}, err
	}

	rows, err := s.attendances.FindByEmployeeBetween(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Error("employee history query failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return EmployeeHistoryReport{}, err
	}

	report := EmployeeHistoryReport{
		EmployeeID:         employeeID,
		StartDate:          startDate,
		EndDate:            endDate,
		WorkingDaysInRange: workcal.CountBusinessDays(start, end, nil),
		Records:            make([]DailyAttendanceEntry, 0, len(rows)),
	}
	for _, row := range rows {
		if row.CheckInTime == nil {
			continue
		}
		report.DaysPresent++
		report.TotalWorkingMinutes += row.TotalWorkingMinutes
		report.TotalLateMinutes += row.LateMinutes
		report.TotalEarlyLeaveMinutes += row.EarlyLeaveMinutes
		report.TotalOvertimeMinutes += row.OvertimeMinutes
		if row.LateMinutes > 0 {
			report.DaysLate++
		}
		if row.EarlyLeaveMinutes > 0 {
			report.DaysEarly++
		}
		report.Records = append(report.Records, mapEntry(row))
	}
	return report, nil
}

func (s *service) DepartmentLeaveBalances(ctx context.Context, departmentID string, year int) (DepartmentLeaveBalanceReport, error) {
	balances, err := s.leaves.FindBalancesByDepartmentYear(ctx, departmentID, year)
	if err != nil {
		s.logger.Error("department balances query failed",
			zap.String("department_id", departmentID),
			zap.Error(err),
		)
		return DepartmentLeaveBalanceReport{}, err
	}

	report := DepartmentLeaveBalanceReport{
		DepartmentID: departmentID,
		Year:         year,
		Balances:     make([]LeaveBalanceEntry, len(balances)),
	}
	for i, b := range balances {
		report.Balances[i] = LeaveBalanceEntry{
			EmployeeID:         b.EmployeeID.String(),
			PolicyID:           b.PolicyID.String(),
			AllocatedDays:      b.AllocatedDays.String(),
			UsedDays:           b.UsedDays.String(),
			CarriedForwardDays: b.CarriedForwardDays.String(),
			AdjustmentDays:     b.AdjustmentDays.String(),
			RemainingDays:      b.RemainingDays().String(),
		}
	}
	return report, nil
}

func (s *service) LeaveCalendar(ctx context.Context, startDate, endDate, departmentID string) (LeaveCalendarReport, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return LeaveCalendarReport{}, errInvalidDate
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return LeaveCalendarReport{}, errInvalidDate
	}

	holidays, err := s.holidays.DatesInRange(ctx, start, end)
	if err != nil {
		return LeaveCalendarReport{}, err
	}

	requests, err := s.leaves.FindRequestsInRange(ctx, start, end, departmentID,
		[]string{leave.StatusApproved, leave.StatusInProgress})
	if err != nil {
		s.logger.Error("leave calendar query failed", zap.Error(err))
		return LeaveCalendarReport{}, err
	}

	report := LeaveCalendarReport{
		StartDate:    startDate,
		EndDate:      endDate,
		DepartmentID: departmentID,
	}
	for d := workcal.DateOnly(start); !d.After(workcal.DateOnly(end)); d = d.AddDate(0, 0, 1) {
		day := LeaveCalendarDay{
			Date:      d.Format("2006-01-02"),
			IsWeekend: workcal.IsWeekend(d),
			IsHoliday: holidays.Contains(d),
			OnLeave:   []string{},
		}
		for _, req := range requests {
			if !d.Before(workcal.DateOnly(req.StartDate)) && !d.After(workcal.DateOnly(req.EndDate)) {
				day.OnLeave = append(day.OnLeave, req.EmployeeID.String())
			}
		}
		report.Days = append(report.Days, day)
	}
	return report, nil
}

func mapEntry(row attendance.Attendance) DailyAttendanceEntry {
	entry := DailyAttendanceEntry{
		AttendanceID:        row.ID.String(),
		EmployeeID:          row.EmployeeID.String(),
		LateMinutes:         row.LateMinutes,
		EarlyLeaveMinutes:   row.EarlyLeaveMinutes,
		OvertimeMinutes:     row.OvertimeMinutes,
		TotalWorkingMinutes: row.TotalWorkingMinutes,
		Status:              row.Status,
	}
	if row.CheckInTime != nil {
		entry.CheckInTime = row.CheckInTime.Format(time.RFC3339)
	}
	if row.CheckOutTime != nil {
		entry.CheckOutTime = row.CheckOutTime.Format(time.RFC3339)
	}
	return entry
}
