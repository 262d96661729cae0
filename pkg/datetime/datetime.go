package datetime

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the YYYY-MM-DD format used for task due dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the YYYY-MM-DD HH:MM format used for calendar arguments and stamps.
	DateTimeLayout = "2006-01-02 15:04"
)

// ResolveLocation returns the named zone and true, or time.Local and false when the name
// cannot be resolved on this system.
func ResolveLocation(name string) (*time.Location, bool) {
	if strings.TrimSpace(name) == "" {
		return time.Local, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local, false
	}
	return loc, true
}

// LoadLocation is ResolveLocation without the flag. It never fails.
func LoadLocation(name string) *time.Location {
	loc, _ := ResolveLocation(name)
	return loc
}

// Stamp formats t as YYYY-MM-DD HH:MM.
func Stamp(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// ParseDateTime reads a YYYY-MM-DD HH:MM value in loc.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q, expected YYYY-MM-DD HH:MM: %w", value, err)
	}
	return t, nil
}

// NormalizeFutureDate pushes a YYYY-MM-DD date forward so it never lies in the past:
// a year earlier than today's becomes today's year, and a date still before today
// moves one more year ahead. Dates on or after today are returned unchanged.
func NormalizeFutureDate(value string, today time.Time) (string, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), today.Location())
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}

	y, m, day := today.Date()
	midnight := time.Date(y, m, day, 0, 0, 0, 0, today.Location())

	if d.Year() < y {
		d = withYear(d, y)
	}
	if d.Before(midnight) {
		d = withYear(d, d.Year()+1)
	}
	return d.Format(DateLayout), nil
}

// withYear moves d to year, clamping Feb 29 to Feb 28 in non-leap years.
func withYear(d time.Time, year int) time.Time {
	day := d.Day()
	if d.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, d.Month(), day, 0, 0, 0, 0, d.Location())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
