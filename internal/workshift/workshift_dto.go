package workshift

type CreateWorkShiftRequest struct {
	Name               string   `json:"name" binding:"required"`
	StartTime          string   `json:"start_time" binding:"required"`
	EndTime            string   `json:"end_time" binding:"required"`
	BreakStart         *string  `json:"break_start"`
	BreakEnd           *string  `json:"break_end"`
	FlexibleMinutes    int      `json:"flexible_minutes" binding:"min=0"`
	AllowOvertime      bool     `json:"allow_overtime"`
	OvertimeCapMinutes int      `json:"overtime_cap_minutes" binding:"min=0"`
	ApplicableDays     []string `json:"applicable_days"`
	IsNightShift       bool     `json:"is_night_shift"`
	Status             string   `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE TEMPORARY"`
}

type UpdateWorkShiftRequest struct {
	Name               string   `json:"name" binding:"required"`
	StartTime          string   `json:"start_time" binding:"required"`
	EndTime            string   `json:"end_time" binding:"required"`
	BreakStart         *string  `json:"break_start"`
	BreakEnd           *string  `json:"break_end"`
	FlexibleMinutes    int      `json:"flexible_minutes" binding:"min=0"`
	AllowOvertime      bool     `json:"allow_overtime"`
	OvertimeCapMinutes int      `json:"overtime_cap_minutes" binding:"min=0"`
	ApplicableDays     []string `json:"applicable_days"`
	IsNightShift       bool     `json:"is_night_shift"`
	Status             string   `json:"status" binding:"required,oneof=ACTIVE INACTIVE TEMPORARY"`
}

type AssignShiftRequest struct {
	EmployeeID     string `json:"employee_id" binding:"required,uuid"`
	ShiftID        string `json:"shift_id" binding:"required,uuid"`
	EffectiveFrom  string `json:"effective_from" binding:"required"`
	EffectiveTo    string `json:"effective_to"`
	IsDefaultShift bool   `json:"is_default_shift"`
	RotationOrder  int    `json:"rotation_order" binding:"min=0"`
	RotationCycle  int    `json:"rotation_cycle" binding:"min=0"`
}

type CreateScheduleRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	ShiftID    string  `json:"shift_id" binding:"required,uuid"`
	WorkDate   string  `json:"work_date" binding:"required"`
	Notes      *string `json:"notes"`
}

type WorkShiftResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	StartTime          string   `json:"start_time"`
	EndTime            string   `json:"end_time"`
	BreakStart         *string  `json:"break_start,omitempty"`
	BreakEnd           *string  `json:"break_end,omitempty"`
	WorkingMinutes     int      `json:"working_minutes"`
	FlexibleMinutes    int      `json:"flexible_minutes"`
	AllowOvertime      bool     `json:"allow_overtime"`
	OvertimeCapMinutes int      `json:"overtime_cap_minutes"`
	ApplicableDays     []string `json:"applicable_days"`
	IsNightShift       bool     `json:"is_night_shift"`
	Status             string   `json:"status"`
}

type ShiftAssignmentResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	ShiftID        string  `json:"shift_id"`
	EffectiveFrom  string  `json:"effective_from"`
	EffectiveTo    *string `json:"effective_to,omitempty"`
	IsDefaultShift bool    `json:"is_default_shift"`
	RotationOrder  int     `json:"rotation_order"`
	RotationCycle  int     `json:"rotation_cycle"`
}

type WorkScheduleResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	ShiftID    string  `json:"shift_id"`
	WorkDate   string  `json:"work_date"`
	Notes      *string `json:"notes,omitempty"`
}
