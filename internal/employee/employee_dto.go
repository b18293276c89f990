package employee

type CreateEmployeeRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	EmployeeNumber  string `json:"employee_number"`
	DepartmentID    string `json:"department_id" binding:"omitempty,uuid"`
	PositionID      string `json:"position_id" binding:"omitempty,uuid"`
	DirectManagerID string `json:"direct_manager_id" binding:"omitempty,uuid"`
	HireDate        string `json:"hire_date" binding:"required"`
	Status          string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE TERMINATED ON_LEAVE SUSPENDED"`
}

type UpdateEmployeeRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	DepartmentID    string `json:"department_id" binding:"omitempty,uuid"`
	PositionID      string `json:"position_id" binding:"omitempty,uuid"`
	DirectManagerID string `json:"direct_manager_id" binding:"omitempty,uuid"`
	HireDate        string `json:"hire_date" binding:"required"`
	Status          string `json:"status" binding:"required,oneof=ACTIVE INACTIVE TERMINATED ON_LEAVE SUSPENDED"`
}

type EmployeeResponse struct {
	ID              string `json:"id"`
	EmployeeNumber  string `json:"employee_number"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	DepartmentID    string `json:"department_id,omitempty"`
	PositionID      string `json:"position_id,omitempty"`
	DirectManagerID string `json:"direct_manager_id,omitempty"`
	HireDate        string `json:"hire_date"`
	Status          string `json:"status"`
}
