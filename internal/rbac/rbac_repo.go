package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRoles() ([]EmployeeRoleRow, error)
	GetRolePermissions() ([]RolePermissionRow, error)

	ListRoles() ([]RoleRow, error)
	GetRoleByName(name string) (*RoleRow, error)
	AssignRole(employeeID, roleID string) error
	ListPermissions() ([]PermissionRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type RoleRow struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string `gorm:"uniqueIndex"`
	Description string
}

func (RoleRow) TableName() string { return "roles" }

type PermissionRow struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Resource string
	Action   string
	Label    string
	Category string
}

func (PermissionRow) TableName() string { return "permissions" }

type EmployeeRoleRow struct {
	EmployeeID string
	RoleName   string
}

type RolePermissionRow struct {
	RoleName string
	Resource string
	Action   string
}

func (r *repository) GetEmployeeRoles() ([]EmployeeRoleRow, error) {
	var result []EmployeeRoleRow

	err := r.db.
		Table("employee_roles").
		Select("employee_roles.employee_id, roles.name AS role_name").
		Joins("JOIN roles ON roles.id = employee_roles.role_id").
		Scan(&result).Error

	return result, err
}

func (r *repository) GetRolePermissions() ([]RolePermissionRow, error) {
	var result []RolePermissionRow

	err := r.db.
		Table("role_permissions").
		Select("roles.name AS role_name, permissions.resource, permissions.action").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Scan(&result).Error

	return result, err
}

func (r *repository) ListRoles() ([]RoleRow, error) {
	var result []RoleRow
	err := r.db.Order("name ASC").Find(&result).Error
	return result, err
}

func (r *repository) GetRoleByName(name string) (*RoleRow, error) {
	var result RoleRow
	err := r.db.First(&result, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) AssignRole(employeeID, roleID string) error {
	return r.db.Exec(`
		INSERT INTO employee_roles (employee_id, role_id)
		VALUES (?, ?)
		ON CONFLICT (employee_id, role_id) DO NOTHING
	`, employeeID, roleID).Error
}

func (r *repository) ListPermissions() ([]PermissionRow, error) {
	var result []PermissionRow
	err := r.db.Order("category ASC, resource ASC, action ASC").Find(&result).Error
	return result, err
}
