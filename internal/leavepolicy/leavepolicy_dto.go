package leavepolicy

type CreatePolicyRequest struct {
	Name                 string  `json:"name" binding:"required"`
	AnnualAllowanceDays  string  `json:"annual_allowance_days" binding:"required"`
	MaxCarryForwardDays  string  `json:"max_carry_forward_days"`
	MaxConsecutiveDays   int     `json:"max_consecutive_days" binding:"min=0"`
	MinAdvanceNoticeDays int     `json:"min_advance_notice_days" binding:"min=0"`
	RequiresDocument     bool    `json:"requires_document"`
	IsPaid               *bool   `json:"is_paid"`
	DepartmentID         string  `json:"department_id" binding:"omitempty,uuid"`
	PositionID           string  `json:"position_id" binding:"omitempty,uuid"`
	MinTenureMonths      int     `json:"min_tenure_months" binding:"min=0"`
	EffectiveFrom        string  `json:"effective_from" binding:"required"`
	EffectiveTo          *string `json:"effective_to"`
}

type UpdatePolicyRequest struct {
	Name                 string  `json:"name" binding:"required"`
	AnnualAllowanceDays  string  `json:"annual_allowance_days" binding:"required"`
	MaxCarryForwardDays  string  `json:"max_carry_forward_days"`
	MaxConsecutiveDays   int     `json:"max_consecutive_days" binding:"min=0"`
	MinAdvanceNoticeDays int     `json:"min_advance_notice_days" binding:"min=0"`
	RequiresDocument     bool    `json:"requires_document"`
	IsPaid               *bool   `json:"is_paid"`
	DepartmentID         string  `json:"department_id" binding:"omitempty,uuid"`
	PositionID           string  `json:"position_id" binding:"omitempty,uuid"`
	MinTenureMonths      int     `json:"min_tenure_months" binding:"min=0"`
	IsActive             *bool   `json:"is_active"`
	EffectiveFrom        string  `json:"effective_from" binding:"required"`
	EffectiveTo          *string `json:"effective_to"`
}

type PolicyResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	AnnualAllowanceDays  string  `json:"annual_allowance_days"`
	MaxCarryForwardDays  string  `json:"max_carry_forward_days"`
	MaxConsecutiveDays   int     `json:"max_consecutive_days"`
	MinAdvanceNoticeDays int     `json:"min_advance_notice_days"`
	RequiresDocument     bool    `json:"requires_document"`
	IsPaid               bool    `json:"is_paid"`
	DepartmentID         string  `json:"department_id,omitempty"`
	PositionID           string  `json:"position_id,omitempty"`
	MinTenureMonths      int     `json:"min_tenure_months"`
	IsActive             bool    `json:"is_active"`
	EffectiveFrom        string  `json:"effective_from"`
	EffectiveTo          *string `json:"effective_to,omitempty"`
}
