package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
	FindAllByDate(ctx context.Context, date time.Time, departmentID string) ([]Attendance, error)

	CreateDetail(ctx context.Context, d *AttendanceDetail) error
	FindDetailsByAttendance(ctx context.Context, attendanceID string) ([]AttendanceDetail, error)

	UpsertSummary(ctx context.Context, s *AttendanceSummary) error
	FindSummary(ctx context.Context, employeeID string, year, month int) (*AttendanceSummary, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID), scope.DateBetween("attendance_date", start, end)).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByDate(ctx context.Context, date time.Time, departmentID string) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Where("attendance_date = ?", date.Format("2006-01-02"))
	if departmentID != "" {
		q = q.Joins("JOIN employees ON employees.id = attendances.employee_id").
			Where("employees.department_id = ?", departmentID)
	}

	var rows []Attendance
	err := q.Order("attendances.created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) CreateDetail(ctx context.Context, d *AttendanceDetail) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindDetailsByAttendance(ctx context.Context, attendanceID string) ([]AttendanceDetail, error) {
	var details []AttendanceDetail
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", attendanceID).
		Order("event_time ASC").
		Find(&details).Error
	return details, err
}

func (r *repository) UpsertSummary(ctx context.Context, s *AttendanceSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_working_days", "actual_working_days", "absent_days",
				"late_days", "early_leave_days", "total_working_minutes",
				"total_late_minutes", "total_early_leave_minutes",
				"total_overtime_minutes", "standard_working_minutes",
				"leave_days", "updated_at",
			}),
		}).
		Create(s).Error
}

func (r *repository) FindSummary(ctx context.Context, employeeID string, year, month int) (*AttendanceSummary, error) {
	var s AttendanceSummary
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Where("year = ? AND month = ?", year, month).
		First(&s).Error
	return &s, err
}
