package utils

import "time"

// Wizard dates travel as ISO calendar strings ("2006-01-02"); parsing is
// timezone-agnostic so a snapshot round-trips without shifting a day.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns the current calendar date truncated to midnight UTC,
// comparable against ParseDate results.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveDays is the whole-day trip duration between two calendar dates:
// a same-day trip counts as 1. Returns 0 when either date is missing or the
// range is inverted; never negative.
func InclusiveDays(start, end string) int {
	s, ok := ParseDate(start)
	if !ok {
		return 0
	}
	e, ok := ParseDate(end)
	if !ok {
		return 0
	}
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
