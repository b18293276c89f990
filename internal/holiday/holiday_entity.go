package holiday

import (
	"time"

	"github.com/google/uuid"
)

// PublicHoliday marks a calendar date as non-working. A nil DepartmentID
// means company-wide. Recurring holidays repeat on the same month and day
// every year.
type PublicHoliday struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"size:150;not null"`
	HolidayDate  time.Time  `gorm:"type:date;not null;uniqueIndex:uq_public_holiday_date"`
	IsRecurring  bool       `gorm:"not null;default:false"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	IsPaid       bool       `gorm:"not null;default:true"`
	IsMandatory  bool       `gorm:"not null;default:true"`
	IsActive     bool       `gorm:"not null;default:true"`
	Description  *string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PublicHoliday) TableName() string {
	return "public_holidays"
}
