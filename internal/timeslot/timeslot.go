// Package timeslot canonicalizes booking dates and times. A slot is a
// (calendar day, minute-of-day) pair; seconds and finer units never
// distinguish two slots, so every value is truncated to the minute before
// it is stored or compared.
package timeslot

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical calendar-day form.
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical minute-granular slot form.
	TimeLayout = "15:04"
)

// Normalize returns t with seconds and sub-second precision zeroed,
// preserving the hour and minute.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// ParseTime parses a time-of-day string in "15:04" or "15:04:05" form.
// The result is already normalized to minute granularity.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", TimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return Normalize(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM or HH:MM:SS", s)
}

// ParseDate parses a calendar day in "2006-01-02" form.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}

// FormatTime renders t as a canonical minute slot.
func FormatTime(t time.Time) string {
	return Normalize(t).Format(TimeLayout)
}

// FormatDate renders t's calendar day.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CanonicalTime parses and re-renders a time-of-day string, collapsing
// second-level noise: "14:00:45" and "14:00" both canonicalize to "14:00".
func CanonicalTime(s string) (string, error) {
	t, err := ParseTime(s)
	if err != nil {
		return "", err
	}
	return FormatTime(t), nil
}

// CanonicalDate parses and re-renders a calendar-day string.
func CanonicalDate(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(d), nil
}
