// Package dates converts between wire instants (RFC 3339 strings) and the
// calendar dates the user actually picked. Only the date portion survives a
// round trip; time-of-day is normalized away and callers must not rely on it.
package dates

import (
	"fmt"
	"time"
)

// Normalize maps t to midnight UTC of its calendar date. Sending normalized
// instants keeps the picked date stable regardless of the user's timezone.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToWire renders t's calendar date as an RFC 3339 instant.
func ToWire(t time.Time) string {
	return Normalize(t).Format(time.RFC3339)
}

// FromWire parses an RFC 3339 instant as produced by ToWire or the server.
func FromWire(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing wire date %q: %w", s, err)
	}

	return t, nil
}

// FormatDate formats a time.Time into YYYY-MM-DD for display.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD string as entered in date fields.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return t, nil
}
