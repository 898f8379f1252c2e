// ABOUTME: Record model for one row of the body metrics table.
// ABOUTME: Defines the fixed column layout and the daily metric set.
package models

import (
	"time"
)

// Column is a 1-based column index in the data table.
type Column int

const (
	ColumnDate    Column = 1
	ColumnHeight  Column = 2
	ColumnMass    Column = 3
	ColumnBodyFat Column = 4
	ColumnWater   Column = 5
	ColumnMuscle  Column = 6
)

// ColumnCount is the number of columns a full record occupies.
const ColumnCount = 6

// ColumnNames maps columns to their display names.
var ColumnNames = map[Column]string{
	ColumnDate:    "date",
	ColumnHeight:  "height",
	ColumnMass:    "mass",
	ColumnBodyFat: "body_fat",
	ColumnWater:   "water",
	ColumnMuscle:  "muscle",
}

// Metrics holds the four values measured every day. Values are stored
// verbatim; nothing here is parsed as a number.
type Metrics struct {
	Mass    string `json:"mass"`
	BodyFat string `json:"body_fat"`
	Water   string `json:"water"`
	Muscle  string `json:"muscle"`
}

// Complete reports whether all four metrics were supplied.
func (m Metrics) Complete() bool {
	return m.Mass != "" && m.BodyFat != "" && m.Water != "" && m.Muscle != ""
}

// Record represents one row of the table.
type Record struct {
	Row     int       `json:"row"`
	Date    time.Time `json:"-"`
	RawDate string    `json:"date"`
	Height  string    `json:"height"`
	Metrics
}

// NewRecord creates a full record for the given date.
func NewRecord(date time.Time, height string, m Metrics) *Record {
	return &Record{
		Date:    DateOf(date),
		RawDate: FormatDate(date),
		Height:  height,
		Metrics: m,
	}
}

// Cells returns the record's values in column order.
func (r *Record) Cells() []string {
	return []string{r.RawDate, r.Height, r.Mass, r.BodyFat, r.Water, r.Muscle}
}

// RecordFromRow builds a record from the raw cell values of a table row.
// Missing trailing cells are left empty.
func RecordFromRow(row int, cells []string) *Record {
	get := func(c Column) string {
		if int(c) <= len(cells) {
			return cells[c-1]
		}
		return ""
	}

	r := &Record{
		Row:     row,
		RawDate: get(ColumnDate),
		Height:  get(ColumnHeight),
		Metrics: Metrics{
			Mass:    get(ColumnMass),
			BodyFat: get(ColumnBodyFat),
			Water:   get(ColumnWater),
			Muscle:  get(ColumnMuscle),
		},
	}
	if d, err := ParseStoredDate(r.RawDate); err == nil {
		r.Date = d
	}
	return r
}

// HeightOnly reports whether the record carries a height but no metrics.
func (r *Record) HeightOnly() bool {
	return r.Mass == "" && r.BodyFat == "" && r.Water == "" && r.Muscle == ""
}
