package domain

// Built-in roles. Custom roles can still be added through the rbac tables;
// these four are seeded at install time and referenced by route guards.
const (
	RoleEmployee  = "EMPLOYEE"
	RoleManager   = "MANAGER"
	RoleHRManager = "HR_MANAGER"
	RoleAdmin     = "ADMIN"
)

type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type AssignRoleRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	RoleName   string `json:"role_name" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type PermissionResponse struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Label    string `json:"label"`
	Category string `json:"category"`
}
