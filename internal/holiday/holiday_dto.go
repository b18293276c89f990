package holiday

type CreateHolidayRequest struct {
	Name         string  `json:"name" binding:"required"`
	HolidayDate  string  `json:"holiday_date" binding:"required"`
	IsRecurring  bool    `json:"is_recurring"`
	DepartmentID string  `json:"department_id" binding:"omitempty,uuid"`
	IsPaid       *bool   `json:"is_paid"`
	IsMandatory  *bool   `json:"is_mandatory"`
	Description  *string `json:"description"`
}

type HolidayResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	HolidayDate  string  `json:"holiday_date"`
	IsRecurring  bool    `json:"is_recurring"`
	DepartmentID string  `json:"department_id,omitempty"`
	IsPaid       bool    `json:"is_paid"`
	IsMandatory  bool    `json:"is_mandatory"`
	IsActive     bool    `json:"is_active"`
	Description  *string `json:"description,omitempty"`
}
