package leave

type CreateLeaveRequestDTO struct {
	PolicyID        string  `json:"policy_id" binding:"required,uuid"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         string  `json:"end_date" binding:"required"`
	Reason          string  `json:"reason" binding:"required"`
	IncludeWeekends bool    `json:"include_weekends"`
	AttachmentPath  *string `json:"attachment_path"`
	CoverEmployeeID string  `json:"cover_employee_id" binding:"omitempty,uuid"`
}

type ProcessApprovalRequest struct {
	LeaveRequestID string  `json:"leave_request_id" binding:"required,uuid"`
	Decision       string  `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comments       *string `json:"comments"`
}

type SetupWorkflowRequest struct {
	ApproverIDs []string `json:"approver_ids" binding:"required,min=1,dive,uuid"`
}

type AdjustBalanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	PolicyID   string `json:"policy_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
	Delta      string `json:"delta" binding:"required"`
}

type InitializeBalancesRequest struct {
	Year int `json:"year" binding:"required,min=2000,max=2100"`
}

type InitializeBalancesResponse struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

type LeaveRequestResponse struct {
	ID              string                 `json:"id"`
	EmployeeID      string                 `json:"employee_id"`
	PolicyID        string                 `json:"policy_id"`
	StartDate       string                 `json:"start_date"`
	EndDate         string                 `json:"end_date"`
	RequestedDays   string                 `json:"requested_days"`
	Reason          string                 `json:"reason"`
	AttachmentPath  *string                `json:"attachment_path,omitempty"`
	CoverEmployeeID string                 `json:"cover_employee_id,omitempty"`
	Status          string                 `json:"status"`
	ApprovedBy      *string                `json:"approved_by,omitempty"`
	ApprovedAt      *string                `json:"approved_at,omitempty"`
	Workflow        []WorkflowStepResponse `json:"workflow,omitempty"`
}

type WorkflowStepResponse struct {
	ID          string  `json:"id"`
	ApproverID  string  `json:"approver_id"`
	StepOrder   int     `json:"step_order"`
	Status      string  `json:"status"`
	Comments    *string `json:"comments,omitempty"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

type BalanceResponse struct {
	ID                 string `json:"id"`
	EmployeeID         string `json:"employee_id"`
	PolicyID           string `json:"policy_id"`
	Year               int    `json:"year"`
	AllocatedDays      string `json:"allocated_days"`
	UsedDays           string `json:"used_days"`
	CarriedForwardDays string `json:"carried_forward_days"`
	AdjustmentDays     string `json:"adjustment_days"`
	RemainingDays      string `json:"remaining_days"`
}

type EligibilityResponse struct {
	Eligible bool `json:"eligible"`
}

type AttachmentUploadResponse struct {
	Path string `json:"path"`
}
