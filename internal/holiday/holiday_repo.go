package holiday

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *PublicHoliday) error
	FindByYear(ctx context.Context, year int) ([]PublicHoliday, error)
	FindByID(ctx context.Context, id string) (*PublicHoliday, error)
	Delete(ctx context.Context, id string) error
	FindInRange(ctx context.Context, start, end time.Time) ([]PublicHoliday, error)
	FindRecurring(ctx context.Context) ([]PublicHoliday, error)
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

func (r *repository) Create(ctx context.Context, h *PublicHoliday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByYear(ctx context.Context, year int) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(r.db.Where("holiday_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
			Or("is_recurring = ?", true)).
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PublicHoliday, error) {
	var h PublicHoliday
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&PublicHoliday{}, "id = ?", id).Error
}

func (r *repository) FindInRange(ctx context.Context, start, end time.Time) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("holiday_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindRecurring(ctx context.Context) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("is_recurring = ?", true).
		Find(&holidays).Error
	return holidays, err
}
