// Package timeutil bridges the two datetime forms the persistence layer
// speaks: the canonical space-separated wire format written by this service
// and ISO-8601 values that may come back from older rows or external tools.
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for date-only fields.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the canonical wire format for datetime fields.
	DateTimeLayout = "2006-01-02 15:04:05"
)

var ErrUnparseable = errors.New("timeutil: unparseable datetime value")

// lenientLayouts are tried in order by ParseLenient. Layouts without a zone
// marker are interpreted as UTC.
var lenientLayouts = []string{
	time.RFC3339,
	DateTimeLayout,
	"2006-01-02T15:04:05",
	DateLayout,
}

// DateOnly returns the YYYY-MM-DD portion of a datetime-ish string. Values
// separated by 'T' or a space keep only the date prefix. Empty input yields
// an empty string. Idempotent: DateOnly(DateOnly(s)) == DateOnly(s).
func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}
	return s
}

// Canonical formats t in the canonical wire format, in UTC.
func Canonical(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

// ParseLenient parses a canonical, ISO, or date-only string. Values lacking
// a zone marker are coerced to UTC rather than the local zone.
func ParseLenient(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseable
	}
	for _, layout := range lenientLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
}

// NormalizeDateTime rewrites any accepted datetime form into the canonical
// wire format. Returns ErrUnparseable when the value cannot be interpreted.
func NormalizeDateTime(s string) (string, error) {
	t, err := ParseLenient(s)
	if err != nil {
		return "", err
	}
	return Canonical(t), nil
}

// MinutesOfDay parses an HH:MM clock string into whole minutes past
// midnight. Used for shift start comparisons.
func MinutesOfDay(hhmm string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("timeutil: invalid clock value %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("timeutil: invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("timeutil: invalid minute in %q", hhmm)
	}
	return h*60 + m, nil
}
