package attendance

type CheckInRequest struct {
	Time       string   `json:"time"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	PhotoPath  *string  `json:"photo_path"`
	DeviceInfo *string  `json:"device_info"`
	Notes      *string  `json:"notes"`
}

type CheckOutRequest struct {
	Time       string   `json:"time"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	PhotoPath  *string  `json:"photo_path"`
	DeviceInfo *string  `json:"device_info"`
}

type RecordBreakRequest struct {
	EventType  string  `json:"event_type" binding:"required,oneof=BREAK_START BREAK_END"`
	Time       string  `json:"time"`
	DeviceInfo *string `json:"device_info"`
}

type ApproveRequest struct {
	AttendanceIDs []string `json:"attendance_ids" binding:"required,min=1,dive,uuid"`
	ManagerNotes  *string  `json:"manager_notes"`
}

type AttendanceResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	AttendanceDate      string  `json:"attendance_date"`
	ShiftID             string  `json:"shift_id"`
	CheckInTime         *string `json:"check_in_time,omitempty"`
	CheckOutTime        *string `json:"check_out_time,omitempty"`
	BreakStartTime      *string `json:"break_start_time,omitempty"`
	BreakEndTime        *string `json:"break_end_time,omitempty"`
	TotalWorkingMinutes int     `json:"total_working_minutes"`
	BreakMinutes        int     `json:"break_minutes"`
	LateMinutes         int     `json:"late_minutes"`
	EarlyLeaveMinutes   int     `json:"early_leave_minutes"`
	OvertimeMinutes     int     `json:"overtime_minutes"`
	Status              string  `json:"status"`
	ComputedStatus      string  `json:"computed_status"`
	ManagerNotes        *string `json:"manager_notes,omitempty"`
	ApprovedBy          *string `json:"approved_by,omitempty"`
	ApprovedAt          *string `json:"approved_at,omitempty"`
}

type DailyStatusResponse struct {
	EmployeeID     string              `json:"employee_id"`
	AttendanceDate string              `json:"attendance_date"`
	Status         string              `json:"status"`
	Record         *AttendanceResponse `json:"record,omitempty"`
}

type SummaryResponse struct {
	EmployeeID             string `json:"employee_id"`
	Year                   int    `json:"year"`
	Month                  int    `json:"month"`
	TotalWorkingDays       int    `json:"total_working_days"`
	ActualWorkingDays      int    `json:"actual_working_days"`
	AbsentDays             int    `json:"absent_days"`
	LateDays               int    `json:"late_days"`
	EarlyLeaveDays         int    `json:"early_leave_days"`
	TotalWorkingMinutes    int    `json:"total_working_minutes"`
	TotalLateMinutes       int    `json:"total_late_minutes"`
	TotalEarlyLeaveMinutes int    `json:"total_early_leave_minutes"`
	TotalOvertimeMinutes   int    `json:"total_overtime_minutes"`
	StandardWorkingMinutes int    `json:"standard_working_minutes"`
	LeaveDays              string `json:"leave_days"`
}

type GenerateSummaryRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2100"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

type GenerateSummaryResponse struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

type PhotoUploadResponse struct {
	Path string `json:"path"`
}
