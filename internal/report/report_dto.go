package report

type DailyAttendanceReport struct {
	Date         string                 `json:"date"`
	DepartmentID string                 `json:"department_id,omitempty"`
	TotalPresent int                    `json:"total_present"`
	TotalAbsent  int                    `json:"total_absent"`
	TotalLate    int                    `json:"total_late"`
	TotalEarly   int                    `json:"total_early"`
	Records      []DailyAttendanceEntry `json:"records"`
}

type DailyAttendanceEntry struct {
	AttendanceID        string `json:"attendance_id"`
	EmployeeID          string `json:"employee_id"`
	CheckInTime         string `json:"check_in_time,omitempty"`
	CheckOutTime        string `json:"check_out_time,omitempty"`
	LateMinutes         int    `json:"late_minutes"`
	EarlyLeaveMinutes   int    `json:"early_leave_minutes"`
	OvertimeMinutes     int    `json:"overtime_minutes"`
	TotalWorkingMinutes int    `json:"total_working_minutes"`
	Status              string `json:"status"`
}

type EmployeeHistoryReport struct {
	EmployeeID             string                 `json:"employee_id"`
	StartDate              string                 `json:"start_date"`
	EndDate                string                 `json:"end_date"`
	WorkingDaysInRange     int                    `json:"working_days_in_range"`
	DaysPresent            int                    `json:"days_present"`
	DaysLate               int                    `json:"days_late"`
	DaysEarly              int                    `json:"days_early"`
	TotalWorkingMinutes    int                    `json:"total_working_minutes"`
	TotalLateMinutes       int                    `json:"total_late_minutes"`
	TotalEarlyLeaveMinutes int                    `json:"total_early_leave_minutes"`
	TotalOvertimeMinutes   int                    `json:"total_overtime_minutes"`
	Records                []DailyAttendanceEntry `json:"records"`
}

type DepartmentLeaveBalanceReport struct {
	DepartmentID string              `json:"department_id"`
	Year         int                 `json:"year"`
	Balances     []LeaveBalanceEntry `json:"balances"`
}

type LeaveBalanceEntry struct {
	EmployeeID         string `json:"employee_id"`
	PolicyID           string `json:"policy_id"`
	AllocatedDays      string `json:"allocated_days"`
	UsedDays           string `json:"used_days"`
	CarriedForwardDays string `json:"carried_forward_days"`
	AdjustmentDays     string `json:"adjustment_days"`
	RemainingDays      string `json:"remaining_days"`
}

type LeaveCalendarReport struct {
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	DepartmentID string             `json:"department_id,omitempty"`
	Days         []LeaveCalendarDay `json:"days"`
}

type LeaveCalendarDay struct {
	Date      string   `json:"date"`
	IsWeekend bool     `json:"is_weekend"`
	IsHoliday bool     `json:"is_holiday"`
	OnLeave   []string `json:"on_leave"`
}
