package workcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountRequestedDays(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := date(2026, time.March, 2)
	friday := date(2026, time.March, 6)
	sunday := date(2026, time.March, 8)

	t.Run("business days only", func(t *testing.T) {
		got := CountRequestedDays(monday, friday, false, nil)
		assert.Equal(t, "5", got.String())
	})

	t.Run("weekend skipped by default", func(t *testing.T) {
		got := CountRequestedDays(monday, sunday, false, nil)
		assert.Equal(t, "5", got.String())
	})

	t.Run("weekend counted when requested", func(t *testing.T) {
		got := CountRequestedDays(monday, sunday, true, nil)
		assert.Equal(t, "7", got.String())
	})

	t.Run("holiday inside range excluded", func(t *testing.T) {
		holidays := NewDateSet([]time.Time{date(2026, time.March, 4)})
		got := CountRequestedDays(monday, friday, false, holidays)
		assert.Equal(t, "4", got.String())
	})

	t.Run("single day", func(t *testing.T) {
		got := CountRequestedDays(monday, monday, false, nil)
		assert.Equal(t, "1", got.String())
	})

	t.Run("wall clock ignored", func(t *testing.T) {
		got := CountRequestedDays(
			time.Date(2026, time.March, 2, 23, 59, 0, 0, time.UTC),
			time.Date(2026, time.March, 6, 0, 1, 0, 0, time.UTC),
			false, nil,
		)
		assert.Equal(t, "5", got.String())
	})
}

func TestCountBusinessDays(t *testing.T) {
	holidays := NewDateSet([]time.Time{date(2026, time.March, 4)})
	got := CountBusinessDays(date(2026, time.March, 2), date(2026, time.March, 8), holidays)
	assert.Equal(t, 4, got)
}

func TestWeekdaysInMonth(t *testing.T) {
	assert.Equal(t, 22, WeekdaysInMonth(2026, time.March))
	assert.Equal(t, 20, WeekdaysInMonth(2026, time.February))
	// Holidays are not excluded from the weekday count.
	assert.Equal(t, 23, WeekdaysInMonth(2026, time.July))
}

func TestMinutesBetween(t *testing.T) {
	a := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 65, MinutesBetween(a, a.Add(65*time.Minute)))
	assert.Equal(t, 0, MinutesBetween(a, a))
	assert.Equal(t, 0, MinutesBetween(a.Add(time.Minute), a))
	// Truncated, not rounded.
	assert.Equal(t, 4, MinutesBetween(a, a.Add(4*time.Minute+59*time.Second)))
}

func TestDateSet(t *testing.T) {
	set := NewDateSet([]time.Time{date(2026, time.January, 1)})

	assert.True(t, set.Contains(time.Date(2026, time.January, 1, 15, 30, 0, 0, time.UTC)))
	assert.False(t, set.Contains(date(2026, time.January, 2)))

	var empty DateSet
	assert.False(t, empty.Contains(date(2026, time.January, 1)))
}

func TestWeekdaySet(t *testing.T) {
	s := MondayToFriday()

	assert.True(t, s.Contains(time.Wednesday))
	assert.False(t, s.Contains(time.Saturday))
	assert.Len(t, s.Weekdays(), 5)
	assert.Equal(t, "Mon,Tue,Wed,Thu,Fri", s.String())

	v, err := s.Value()
	assert.NoError(t, err)

	var back WeekdaySet
	assert.NoError(t, back.Scan(v))
	assert.Equal(t, s, back)
}
