package workshift

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=workshift_repo.go -destination=mock/workshift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateShift(ctx context.Context, shift *WorkShift) error
	FindAllShifts(ctx context.Context) ([]WorkShift, error)
	FindShiftByID(ctx context.Context, id string) (*WorkShift, error)
	UpdateShift(ctx context.Context, shift *WorkShift) error
	DeleteShift(ctx context.Context, id string) error
	CountShiftReferences(ctx context.Context, shiftID string) (int64, error)

	CreateAssignment(ctx context.Context, a *ShiftAssignment) error
	FindOpenAssignments(ctx context.Context, employeeID string, from time.Time) ([]ShiftAssignment, error)
	FindDefaultAssignmentForDate(ctx context.Context, employeeID string, date time.Time) (*ShiftAssignment, error)
	FindAssignmentsByEmployee(ctx context.Context, employeeID string) ([]ShiftAssignment, error)
	UpdateAssignment(ctx context.Context, a *ShiftAssignment) error

	CreateSchedule(ctx context.Context, s *WorkSchedule) error
	FindScheduleForDate(ctx context.Context, employeeID string, date time.Time) (*WorkSchedule, error)
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

func (r *repository) CreateShift(ctx context.Context, shift *WorkShift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *repository) FindAllShifts(ctx context.Context) ([]WorkShift, error) {
	var shifts []WorkShift
	err := r.db.WithContext(ctx).Order("name ASC").Find(&shifts).Error
	return shifts, err
}

func (r *repository) FindShiftByID(ctx context.Context, id string) (*WorkShift, error) {
	var shift WorkShift
	err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error
	return &shift, err
}

func (r *repository) UpdateShift(ctx context.Context, shift *WorkShift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

func (r *repository) DeleteShift(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&WorkShift{}, "id = ?", id).Error
}

// CountShiftReferences counts assignments and schedules pointing at the
// shift. Attendance rows reference the shift only through schedules and
// assignments, so these two cover the delete guard.
func (r *repository) CountShiftReferences(ctx context.Context, shiftID string) (int64, error) {
	var assignments int64
	if err := r.db.WithContext(ctx).
		Model(&ShiftAssignment{}).
		Where("shift_id = ?", shiftID).
		Count(&assignments).Error; err != nil {
		return 0, err
	}

	var schedules int64
	if err := r.db.WithContext(ctx).
		Model(&WorkSchedule{}).
		Where("shift_id = ?", shiftID).
		Count(&schedules).Error; err != nil {
		return 0, err
	}

	return assignments + schedules, nil
}

func (r *repository) CreateAssignment(ctx context.Context, a *ShiftAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindOpenAssignments returns assignments for the employee that are still
// open (no effective_to) or end on/after the given date.
func (r *repository) FindOpenAssignments(ctx context.Context, employeeID string, from time.Time) ([]ShiftAssignment, error) {
	var assignments []ShiftAssignment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("effective_to IS NULL OR effective_to >= ?", from.Format("2006-01-02")).
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) FindDefaultAssignmentForDate(ctx context.Context, employeeID string, date time.Time) (*ShiftAssignment, error) {
	var a ShiftAssignment
	day := date.Format("2006-01-02")
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("is_default_shift = ?", true).
		Where("effective_from <= ?", day).
		Where("effective_to IS NULL OR effective_to >= ?", day).
		Order("effective_from DESC").
		First(&a).Error
	return &a, err
}

func (r *repository) FindAssignmentsByEmployee(ctx context.Context, employeeID string) ([]ShiftAssignment, error) {
	var assignments []ShiftAssignment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) UpdateAssignment(ctx context.Context, a *ShiftAssignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) CreateSchedule(ctx context.Context, s *WorkSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindScheduleForDate(ctx context.Context, employeeID string, date time.Time) (*WorkSchedule, error) {
	var s WorkSchedule
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&s).Error
	return &s, err
}
