package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusOnTime   = "ON_TIME"
	StatusLate     = "LATE"
	StatusEarly    = "EARLY"
	StatusOvertime = "OVERTIME"
	StatusNoShow   = "NO_SHOW"
	StatusApproved = "APPROVED"
)

const (
	EventCheckIn    = "CHECK_IN"
	EventCheckOut   = "CHECK_OUT"
	EventBreakStart = "BREAK_START"
	EventBreakEnd   = "BREAK_END"
)

// Attendance is the single row per employee per calendar date. Minute
// fields are derived at punch time; Status carries the manager-visible
// state while ComputedStatus keeps the punch-derived value even after
// approval overwrites Status.
type Attendance struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_day,priority:1"`
	AttendanceDate time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendance_day,priority:2"`
	ShiftID        uuid.UUID  `gorm:"type:uuid;not null"`
	ScheduleID     *uuid.UUID `gorm:"type:uuid"`

	CheckInTime       *time.Time `gorm:"type:timestamptz"`
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckInPhotoPath  *string `gorm:"type:text"`
	CheckInNotes      *string `gorm:"type:text"`
	CheckOutTime      *time.Time `gorm:"type:timestamptz"`
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutPhotoPath *string `gorm:"type:text"`

	BreakStartTime *time.Time `gorm:"type:timestamptz"`
	BreakEndTime   *time.Time `gorm:"type:timestamptz"`

	TotalWorkingMinutes int `gorm:"not null;default:0"`
	BreakMinutes        int `gorm:"not null;default:0"`
	LateMinutes         int `gorm:"not null;default:0"`
	EarlyLeaveMinutes   int `gorm:"not null;default:0"`
	OvertimeMinutes     int `gorm:"not null;default:0"`

	Status         string     `gorm:"type:varchar(20);not null"`
	ComputedStatus string     `gorm:"type:varchar(20);not null"`
	ManagerNotes   *string    `gorm:"type:text"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt     *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Attendance) TableName() string {
	return "attendances"
}

// AttendanceDetail is the append-only punch audit trail. Rows are never
// updated or deleted.
type AttendanceDetail struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AttendanceID uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType    string    `gorm:"type:varchar(20);not null"`
	EventTime    time.Time `gorm:"type:timestamptz;not null"`
	Latitude     *float64
	Longitude    *float64
	PhotoPath    *string `gorm:"type:text"`
	DeviceInfo   *string `gorm:"type:text"`
	Notes        *string `gorm:"type:text"`
	CreatedAt    time.Time
}

func (AttendanceDetail) TableName() string {
	return "attendance_details"
}

// AttendanceSummary is the monthly rollup, one row per employee per
// (year, month), regenerated wholesale by the batch job.
type AttendanceSummary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_summary,priority:1"`
	Year       int       `gorm:"not null;uniqueIndex:uq_attendance_summary,priority:2"`
	Month      int       `gorm:"not null;uniqueIndex:uq_attendance_summary,priority:3"`

	TotalWorkingDays       int `gorm:"not null;default:0"`
	ActualWorkingDays      int `gorm:"not null;default:0"`
	AbsentDays             int `gorm:"not null;default:0"`
	LateDays               int `gorm:"not null;default:0"`
	EarlyLeaveDays         int `gorm:"not null;default:0"`
	TotalWorkingMinutes    int `gorm:"not null;default:0"`
	TotalLateMinutes       int `gorm:"not null;default:0"`
	TotalEarlyLeaveMinutes int `gorm:"not null;default:0"`
	TotalOvertimeMinutes   int `gorm:"not null;default:0"`
	StandardWorkingMinutes int `gorm:"not null;default:0"`

	LeaveDays decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AttendanceSummary) TableName() string {
	return "attendance_summaries"
}
