package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindAllActive(ctx context.Context) ([]Employee, error)
	ActiveEmployeeIDs(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	DirectManagerID(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository to tx so every statement runs on that
// transaction instead of the pooled connection.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("employee_number ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindAllActive(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Order("employee_number ASC").
		Find(&employees).Error
	return employees, err
}

// ActiveEmployeeIDs feeds the batch jobs that iterate every active
// employee without loading whole rows.
func (r *repository) ActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("status = ?", StatusActive).
		Order("employee_number ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

// DirectManagerID returns "" when the employee has no manager.
func (r *repository) DirectManagerID(ctx context.Context, id string) (string, error) {
	var managerID *string
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("direct_manager_id").
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Scan(&managerID).Error
	if err != nil || managerID == nil {
		return "", err
	}
	return *managerID, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
