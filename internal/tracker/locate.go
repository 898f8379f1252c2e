// ABOUTME: Row location and date classification for the data table.
// ABOUTME: Pure functions over the date column, no table access.
package tracker

import (
	"time"

	"github.com/harperreed/bodymetrics/internal/models"
)

// Action is what a height update does to the table.
type Action int

const (
	// ActionBackfill rewrites the height of an existing record and every row after it.
	ActionBackfill Action = iota + 1
	// ActionInsertPast appends a height-only record for a past date.
	ActionInsertPast
	// ActionMergeToday appends today's full record with the new height.
	ActionMergeToday
	// ActionRejectFuture refuses to touch a date after today.
	ActionRejectFuture
	// ActionDailyEntry appends today's metrics with the carried height.
	ActionDailyEntry
)

func (a Action) String() string {
	switch a {
	case ActionBackfill:
		return "backfill"
	case ActionInsertPast:
		return "insert_past"
	case ActionMergeToday:
		return "merge_today"
	case ActionRejectFuture:
		return "reject_future"
	case ActionDailyEntry:
		return "daily_entry"
	default:
		return "unknown"
	}
}

// NextRow returns the first unused row: the number of non-empty dates plus
// one. The date column is assumed to have no gaps.
func NextRow(dates []string) int {
	return len(nonEmpty(dates)) + 1
}

// Classify decides how a height update for date is applied, checking in
// order: an existing record, a past date, today, and finally a future date.
// For ActionBackfill the returned row is the row of the existing record;
// for the appending actions it is the next empty row.
func Classify(dates []string, date, today time.Time) (Action, int) {
	present := nonEmpty(dates)

	if i := indexOfDate(present, date); i >= 0 {
		return ActionBackfill, i + 1
	}

	endRow := len(present) + 1
	switch {
	case models.BeforeDate(date, today):
		return ActionInsertPast, endRow
	case models.SameDate(date, today):
		return ActionMergeToday, endRow
	default:
		return ActionRejectFuture, 0
	}
}

// indexOfDate finds date in values by calendar day. Values that do not
// parse as dates (a header, say) never match.
func indexOfDate(values []string, date time.Time) int {
	for i, v := range values {
		if d, err := models.ParseStoredDate(v); err == nil && models.SameDate(d, date) {
			return i
		}
	}
	return -1
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
