package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the wire format used by every date parameter and JSON field.
const DateTimeLayout = "2006-01-02 15:04:05"

const (
	// Minimum lead time between "now" and the event date.
	hoursBeforeStartAdmin = 1
	hoursBeforeStartUser  = 2
)

// ParseDateTime parses a timestamp in the wire format.
func ParseDateTime(value string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q, expected format %q", value, DateTimeLayout)
	}
	return t, nil
}

// FormatDateTime renders a timestamp in the wire format.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// CheckEndAfterStart validates an optional [start, end] window.
// Zero values mean "not provided" and are skipped.
func CheckEndAfterStart(start, end time.Time) error {
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return fmt.Errorf("the start date cannot be later than the end date")
	}
	return nil
}

// CheckPeriodBeforeStartDate validates the lead time before an event date.
// Admins may publish closer to the start than owners may schedule.
func CheckPeriodBeforeStartDate(eventDate time.Time, isAdmin bool) error {
	hours := hoursBeforeStartUser
	if isAdmin {
		hours = hoursBeforeStartAdmin
	}

	minStartDate := time.Now().Add(time.Duration(hours) * time.Hour)
	if eventDate.Before(minStartDate) {
		return fmt.Errorf("before the event less than %d hours", hours)
	}
	return nil
}

// DateTime is a time.Time that marshals to/from JSON in the wire format.
type DateTime struct {
	time.Time
}

// NewDateTime wraps a time.Time for wire serialization.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
