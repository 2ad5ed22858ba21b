// Package dateutils provides date normalization for the ingestion pipeline.
// Statement cells rarely contain a bare date; the helpers here extract a
// Brazilian DD/MM/YYYY pattern from whatever text surrounds it.
package dateutils

import (
	"regexp"
	"time"
)

// Date format constants used throughout the application
const (
	DateLayoutISO         = "2006-01-02"
	DateLayoutBrazilian   = "02/01/2006"
	DateLayoutBrazilian2Y = "02/01/06"
)

// datePattern matches a DD/MM/YYYY or DD/MM/YY run inside arbitrary text.
var datePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4}|\d{2})`)

// NormalizeDate extracts the first DD/MM/YYYY or DD/MM/YY occurrence from
// the input and returns the corresponding calendar date. Two-digit years
// expand per the standard century window (69..99 -> 19xx, 00..68 -> 20xx).
// When no pattern is found, or the matched digits do not form a valid date,
// the reference date is returned. Total function, never errors.
func NormalizeDate(raw string, now time.Time) time.Time {
	fallback := Truncate(now)

	m := datePattern.FindStringSubmatch(raw)
	if m == nil {
		return fallback
	}

	layout := DateLayoutBrazilian
	if len(m[3]) == 2 {
		layout = DateLayoutBrazilian2Y
	}

	t, err := time.Parse(layout, m[0])
	if err != nil {
		return fallback
	}
	return t
}

// NormalizeDateString is the convenience variant of NormalizeDate that uses
// the current wall clock as the reference date.
func NormalizeDateString(raw string) time.Time {
	return NormalizeDate(raw, time.Now())
}

// Truncate strips the time-of-day component, keeping the calendar date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// ToBrazilianFormat formats a time.Time as DD/MM/YYYY.
func ToBrazilianFormat(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayoutBrazilian)
}
