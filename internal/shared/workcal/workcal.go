// Package workcal holds the calendar arithmetic shared by the attendance
// and leave engines. Everything here is pure: holiday dates are passed in,
// never queried.
package workcal

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateOnly truncates t to midnight UTC so calendar dates compare cleanly
// regardless of the wall-clock component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DateSet is a set of calendar dates keyed by "2006-01-02".
type DateSet map[string]struct{}

func NewDateSet(dates []time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[d.Format("2006-01-02")] = struct{}{}
	}
	return set
}

func (s DateSet) Contains(t time.Time) bool {
	if s == nil {
		return false
	}
	_, ok := s[t.Format("2006-01-02")]
	return ok
}

// CountRequestedDays counts the leave days inside [start, end] inclusive.
// Weekends are skipped unless includeWeekends is set; holidays are always
// skipped. The result is a whole-day decimal so callers can layer half-day
// adjustments on top without float drift.
func CountRequestedDays(start, end time.Time, includeWeekends bool, holidays DateSet) decimal.Decimal {
	start = DateOnly(start)
	end = DateOnly(end)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !includeWeekends && IsWeekend(d) {
			continue
		}
		if holidays.Contains(d) {
			continue
		}
		count++
	}
	return decimal.NewFromInt(int64(count))
}

// CountBusinessDays counts weekdays in [start, end] inclusive, excluding
// holidays.
func CountBusinessDays(start, end time.Time, holidays DateSet) int {
	start = DateOnly(start)
	end = DateOnly(end)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) || holidays.Contains(d) {
			continue
		}
		count++
	}
	return count
}

// WeekdaysInMonth counts Monday..Friday dates of the month. Public holidays
// are intentionally not excluded here: the monthly attendance summary uses
// the plain weekday count.
func WeekdaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	count := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			count++
		}
	}
	return count
}

// MinutesBetween returns whole minutes from a to b, truncated, never
// negative.
func MinutesBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a) / time.Minute)
}
