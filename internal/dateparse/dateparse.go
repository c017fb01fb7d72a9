// Package dateparse resolves the date expressions accepted by list filters
// into ISO 8601 (YYYY-MM-DD) calendar dates.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the calendar date format used throughout the panel
const Layout = "2006-01-02"

// Resolve turns input into a calendar date relative to the current time.
//
// Accepted forms:
//   - Calendar dates: "2024-03-01"
//   - Offsets in days, weeks, months or years: "-7d", "+2w", "-1m", "-1y"
//   - Keywords: "today", "yesterday", "tomorrow", "week-start",
//     "month-start", "year-start"
//   - Weekday names, meaning the most recent such day on or before today
func Resolve(input string) (string, error) {
	return ResolveAt(input, time.Now())
}

// ResolveAt is Resolve with an explicit reference time
func ResolveAt(input string, now time.Time) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", fmt.Errorf("empty date")
	}

	if t, err := time.Parse(Layout, input); err == nil {
		return t.Format(Layout), nil
	}

	if d, ok := keyword(input, now); ok {
		return d.Format(Layout), nil
	}

	if input[0] == '+' || input[0] == '-' {
		d, err := offset(input, now)
		if err != nil {
			return "", err
		}
		return d.Format(Layout), nil
	}

	if wd, ok := weekdays[input]; ok {
		back := (int(now.Weekday()) - int(wd) + 7) % 7
		return now.AddDate(0, 0, -back).Format(Layout), nil
	}

	return "", fmt.Errorf("unrecognized date %q", input)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func keyword(input string, now time.Time) (time.Time, bool) {
	y, m, _ := now.Date()
	switch input {
	case "today":
		return now, true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	case "tomorrow":
		return now.AddDate(0, 0, 1), true
	case "week-start":
		// weeks start on Monday
		back := (int(now.Weekday()) + 6) % 7
		return now.AddDate(0, 0, -back), true
	case "month-start":
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), true
	case "year-start":
		return time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// offset parses [+-]N[dwmy]
func offset(input string, now time.Time) (time.Time, error) {
	if len(input) < 3 {
		return time.Time{}, fmt.Errorf("invalid offset %q", input)
	}
	n, err := strconv.Atoi(input[1 : len(input)-1])
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("invalid offset %q", input)
	}
	if input[0] == '-' {
		n = -n
	}
	switch unit := input[len(input)-1]; unit {
	case 'd':
		return now.AddDate(0, 0, n), nil
	case 'w':
		return now.AddDate(0, 0, 7*n), nil
	case 'm':
		return now.AddDate(0, n, 0), nil
	case 'y':
		return now.AddDate(n, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown unit %q in %q (use d, w, m or y)", string(unit), input)
	}
}

// Range is an inclusive pair of calendar dates; an empty bound is open
type Range struct {
	From string
	To   string
}

// ResolveRange resolves both bounds against now. Empty inputs stay open.
func ResolveRange(from, to string, now time.Time) (Range, error) {
	var r Range
	var err error
	if from != "" {
		if r.From, err = ResolveAt(from, now); err != nil {
			return Range{}, fmt.Errorf("from: %w", err)
		}
	}
	if to != "" {
		if r.To, err = ResolveAt(to, now); err != nil {
			return Range{}, fmt.Errorf("to: %w", err)
		}
	}
	if r.From != "" && r.To != "" && r.From > r.To {
		return Range{}, fmt.Errorf("date range %s..%s is empty", r.From, r.To)
	}
	return r, nil
}

// Contains reports whether date (YYYY-MM-DD) lies within the range
func (r Range) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

// IsZero reports whether both bounds are open
func (r Range) IsZero() bool { return r.From == "" && r.To == "" }
