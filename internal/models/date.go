// ABOUTME: Date parsing and formatting for record keys.
// ABOUTME: Accepts "today" or a hyphenated year-month-day with integer parts.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout dates are written to the table with.
const DateLayout = "2006-01-02"

// TodayToken is the literal accepted in place of a date.
const TodayToken = "today"

// ErrInvalidDate is returned when input cannot be turned into a calendar date.
var ErrInvalidDate = errors.New("invalid date")

// storedLayouts are tried, in order, when reading a date back from the table.
var storedLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate renders the calendar date of t as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses user input into a calendar date in now's location.
// "today" (any case) maps to the date of now. Anything else must be three
// integer components separated by "-" that form a real calendar date, so
// "2024-2-5" is accepted and "2024-02-30" is not.
func ParseDate(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if strings.EqualFold(s, TodayToken) {
		return DateOf(now), nil
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q: want yyyy-mm-dd", ErrInvalidDate, input)
	}

	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: component %q is not an integer", ErrInvalidDate, input, p)
		}
		n[i] = v
	}

	return calendarDate(n[0], n[1], n[2], now.Location(), input)
}

// ParseStoredDate parses a date cell as read back from the table. The
// spreadsheet may reformat user-entered dates, so a few layouts are accepted.
func ParseStoredDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range storedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BeforeDate reports whether a's calendar day is earlier than b's.
func BeforeDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

func calendarDate(year, month, day int, loc *time.Location, input string) (time.Time, error) {
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("%w: %q: year out of range", ErrInvalidDate, input)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %q: month out of range", ErrInvalidDate, input)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalises overflow (Feb 30 becomes Mar 1), so compare back.
	if day < 1 || t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %q: day out of range", ErrInvalidDate, input)
	}
	return t, nil
}
