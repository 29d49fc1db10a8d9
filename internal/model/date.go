package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by the hotel portal
// (MM/DD/YYYY). All dates in requests, results and dedup keys use it.
const DateLayout = "01/02/2006"

// Date is a single calendar day, normalized to midnight UTC. It encodes
// to JSON as MM/DD/YYYY to match the portal's wire format.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	return NewDate(time.Now().UTC())
}

// ParseDate parses a MM/DD/YYYY string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want MM/DD/YYYY): %w", s, err)
	}
	return NewDate(t), nil
}

// String formats the date as MM/DD/YYYY.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// ISO formats the date as YYYY-MM-DD for interop with tools that do
// not read the portal's MM/DD/YYYY format.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return NewDate(d.AddDate(0, 0, n))
}

// Next returns the following day. For a one-night stay this is the
// checkout date.
func (d Date) Next() Date {
	return d.AddDays(1)
}

// DaysUntil counts the days from d to other, inclusive of both ends.
// Returns 0 when other precedes d.
func (d Date) DaysUntil(other Date) int {
	days := int(other.Sub(d.Time).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// Min returns the earlier of the two dates.
func (d Date) Min(other Date) Date {
	if other.Before(d.Time) {
		return other
	}
	return d
}

// MarshalJSON encodes the date as a MM/DD/YYYY string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a MM/DD/YYYY string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Time.IsZero()
}
