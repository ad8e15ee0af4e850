package models

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical yyyy-MM-dd layout used to bucket records by day
const DateKeyLayout = "2006-01-02"

// DateKey identifies a calendar day independent of any time zone
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DateKeyOf returns the day an instant falls on in loc
func DateKeyOf(t time.Time, loc *time.Location) DateKey {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return DateKey{Year: y, Month: m, Day: d}
}

// ParseDateKey parses a yyyy-MM-dd string
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(DateKeyLayout, s)
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// MustParseDateKey is ParseDateKey for literals known to be valid
func MustParseDateKey(s string) DateKey {
	k, err := ParseDateKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

func (k DateKey) IsZero() bool {
	return k == DateKey{}
}

// Start returns midnight of the day in loc
func (k DateKey) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// At combines the day with the wall-clock time of clock, both read in loc
func (k DateKey) At(clock time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	c := clock.In(loc)
	return time.Date(k.Year, k.Month, k.Day, c.Hour(), c.Minute(), c.Second(), c.Nanosecond(), loc)
}

// AddDays returns the key n days later (or earlier for negative n)
func (k DateKey) AddDays(n int) DateKey {
	return DateKeyOf(k.Start(time.UTC).AddDate(0, 0, n), time.UTC)
}

// Before reports whether k is an earlier day than other
func (k DateKey) Before(other DateKey) bool {
	return k.Start(time.UTC).Before(other.Start(time.UTC))
}

// MonthKey returns the first day of k's month
func (k DateKey) MonthKey() DateKey {
	return DateKey{Year: k.Year, Month: k.Month, Day: 1}
}

// DaysInMonth returns every day of k's month in order
func (k DateKey) DaysInMonth() []DateKey {
	first := k.MonthKey()
	days := make([]DateKey, 0, 31)
	for d := first; d.Month == first.Month; d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

func (k DateKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DateKey) UnmarshalText(b []byte) error {
	parsed, err := ParseDateKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseMonthKey parses a yyyy-MM string into the first day of that month
func ParseMonthKey(s string) (DateKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return DateKey{Year: t.Year(), Month: t.Month(), Day: 1}, nil
}
