package workcal

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is the set of weekdays a work shift applies to. It is stored
// as a 7-bit mask (bit 0 = Sunday, matching time.Weekday) but callers only
// see set operations.
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// MondayToFriday is the default applicability for office shifts.
func MondayToFriday() WeekdaySet {
	return NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
}

func (s WeekdaySet) Add(d time.Weekday) WeekdaySet {
	return s | (1 << uint(d))
}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

func (s WeekdaySet) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s WeekdaySet) String() string {
	parts := make([]string, 0, 7)
	for _, d := range s.Weekdays() {
		parts = append(parts, d.String()[:3])
	}
	return strings.Join(parts, ",")
}

// Value / Scan keep gorm persisting the mask as a smallint.

func (s WeekdaySet) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *WeekdaySet) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*s = WeekdaySet(v)
		return nil
	case []byte:
		var n int64
		if _, err := fmt.Sscanf(string(v), "%d", &n); err != nil {
			return fmt.Errorf("scan weekday set: %w", err)
		}
		*s = WeekdaySet(n)
		return nil
	default:
		return fmt.Errorf("scan weekday set: unsupported type %T", src)
	}
}
