package leavepolicy

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavepolicy_repo.go -destination=mock/leavepolicy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *LeavePolicy) error
	FindAll(ctx context.Context) ([]LeavePolicy, error)
	FindAllActive(ctx context.Context) ([]LeavePolicy, error)
	FindByID(ctx context.Context, id string) (*LeavePolicy, error)
	Update(ctx context.Context, p *LeavePolicy) error
	Delete(ctx context.Context, id string) error
	CountBalanceReferences(ctx context.Context, policyID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).Order("name ASC").Find(&policies).Error
	return policies, err
}

func (r *repository) FindAllActive(ctx context.Context) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeavePolicy{}, "id = ?", id).Error
}

// CountBalanceReferences counts employee balance rows keyed to the policy.
// The balances table is owned by the leave package; only the table name is
// shared here.
func (r *repository) CountBalanceReferences(ctx context.Context, policyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employee_leave_balances").
		Where("policy_id = ?", policyID).
		Count(&count).Error
	return count, err
}
