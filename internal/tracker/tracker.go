// ABOUTME: Tracker applies daily entries and height edits to the data table.
// ABOUTME: Every operation re-reads the table before writing.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/bodymetrics/internal/models"
	"github.com/harperreed/bodymetrics/internal/table"
	"go.uber.org/zap"
)

var (
	// ErrFutureDate is returned when a height edit targets a date after today.
	ErrFutureDate = errors.New("a future record cannot be edited")

	// ErrMetricsRequired is returned when today's record must be created but
	// no daily metrics were supplied.
	ErrMetricsRequired = errors.New("daily metrics are required to create today's record")

	// ErrNoRecords is returned when the table holds no records.
	ErrNoRecords = errors.New("no records found")
)

// MetricsFunc supplies today's metrics when a height edit turns out to
// create today's record. It is not called for any other case.
type MetricsFunc func() (models.Metrics, error)

// Result describes a completed write.
type Result struct {
	Action  Action
	Date    time.Time
	Rows    []int
	Message string
}

// Tracker records measurements into a table.
type Tracker struct {
	table  table.Table
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Tracker writing to t.
func New(t table.Table, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		table:  t,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the clock used to decide what "today" is.
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// Today returns the current local date.
func (t *Tracker) Today() time.Time {
	return models.DateOf(t.now())
}

// NextRow reads the date column and returns the first unused row.
func (t *Tracker) NextRow(ctx context.Context) (int, error) {
	dates, err := t.dates(ctx)
	if err != nil {
		return 0, err
	}
	return NextRow(dates), nil
}

// AddDailyEntry appends today's metrics. The height is carried forward from
// the row above; on row 1 there is no previous row and the height is left
// empty.
func (t *Tracker) AddDailyEntry(ctx context.Context, m models.Metrics) (*Result, error) {
	today := t.Today()

	row, err := t.NextRow(ctx)
	if err != nil {
		return nil, err
	}

	height := ""
	if row > 1 {
		height, err = t.table.Cell(ctx, row-1, int(models.ColumnHeight))
		if err != nil {
			return nil, fmt.Errorf("read previous height: %w", err)
		}
	}

	rec := models.NewRecord(today, height, m)
	if err := t.writeRecord(ctx, row, rec); err != nil {
		return nil, err
	}

	t.logger.Debug("daily entry recorded",
		zap.Int("row", row),
		zap.String("date", rec.RawDate),
		zap.Bool("carried_height", height != ""))

	return &Result{
		Action:  ActionDailyEntry,
		Date:    today,
		Rows:    []int{row},
		Message: "Today's metrics have been entered.",
	}, nil
}

// UpdateHeight sets a new height from date onward.
//
// If date already has a record, the height of that row and every later
// populated row is rewritten; other columns are untouched. A past date with
// no record gets a height-only row appended. Today with no record gets a
// full row appended, using metrics to obtain the daily values. A future
// date returns ErrFutureDate without writing anything.
func (t *Tracker) UpdateHeight(ctx context.Context, date time.Time, height string, metrics MetricsFunc) (*Result, error) {
	dates, err := t.dates(ctx)
	if err != nil {
		return nil, err
	}
	endRow := NextRow(dates)

	action, row := Classify(dates, date, t.Today())
	t.logger.Debug("height update classified",
		zap.String("date", models.FormatDate(date)),
		zap.Stringer("action", action),
		zap.Int("row", row),
		zap.Int("end_row", endRow))

	res := &Result{Action: action, Date: models.DateOf(date)}

	switch action {
	case ActionBackfill:
		// endRow is the empty row, so the range stops at the last record.
		for r := row; r < endRow; r++ {
			if err := t.table.UpdateCell(ctx, r, int(models.ColumnHeight), height); err != nil {
				return nil, fmt.Errorf("backfill height: %w", err)
			}
			res.Rows = append(res.Rows, r)
		}
		res.Message = fmt.Sprintf("Past records have been updated to reflect height change from %s.", models.FormatDate(date))

	case ActionInsertPast:
		if err := t.table.UpdateCell(ctx, row, int(models.ColumnDate), models.FormatDate(date)); err != nil {
			return nil, fmt.Errorf("write date: %w", err)
		}
		if err := t.table.UpdateCell(ctx, row, int(models.ColumnHeight), height); err != nil {
			return nil, fmt.Errorf("write height: %w", err)
		}
		res.Rows = []int{row}
		res.Message = fmt.Sprintf("A new height-only record was created on %s.", models.FormatDate(date))

	case ActionMergeToday:
		if metrics == nil {
			return nil, ErrMetricsRequired
		}
		m, err := metrics()
		if err != nil {
			return nil, err
		}
		if err := t.writeRecord(ctx, row, models.NewRecord(date, height, m)); err != nil {
			return nil, err
		}
		res.Rows = []int{row}
		res.Message = "Today's metrics and height have been entered."

	default:
		return nil, fmt.Errorf("%w: %s", ErrFutureDate, models.FormatDate(date))
	}

	return res, nil
}

// Records returns up to limit records, newest row first. A limit of zero
// or less returns every record.
func (t *Tracker) Records(ctx context.Context, limit int) ([]*models.Record, error) {
	rows, err := t.table.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	var records []*models.Record
	for i := len(rows) - 1; i >= 0; i-- {
		if len(rows[i]) == 0 || rows[i][0] == "" {
			continue
		}
		records = append(records, models.RecordFromRow(i+1, rows[i]))
		if limit > 0 && len(records) == limit {
			break
		}
	}
	return records, nil
}

// Latest returns the newest record in the table.
func (t *Tracker) Latest(ctx context.Context) (*models.Record, error) {
	records, err := t.Records(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records[0], nil
}

func (t *Tracker) dates(ctx context.Context) ([]string, error) {
	dates, err := t.table.ColumnValues(ctx, int(models.ColumnDate))
	if err != nil {
		return nil, fmt.Errorf("read dates: %w", err)
	}
	return dates, nil
}

// writeRecord writes all six cells of rec at row, in column order.
func (t *Tracker) writeRecord(ctx context.Context, row int, rec *models.Record) error {
	for i, v := range rec.Cells() {
		col := i + 1
		if err := t.table.UpdateCell(ctx, row, col, v); err != nil {
			return fmt.Errorf("write %s: %w", models.ColumnNames[models.Column(col)], err)
		}
	}
	return nil
}
