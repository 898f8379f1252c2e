// ABOUTME: Table interface for the remote body metrics grid.
// ABOUTME: Defines 1-based column reads, cell reads, and cell writes.
package table

import (
	"context"
	"errors"
)

// ErrOutOfRange is returned when a row or column index is below 1.
var ErrOutOfRange = errors.New("cell out of range")

// Table is a row/column grid addressed with 1-based indices.
// This interface allows swapping implementations (e.g., for testing).
type Table interface {
	// ColumnValues returns every value of col from row 1 down to the last
	// non-empty cell. Empty cells before that point are returned as "".
	ColumnValues(ctx context.Context, col int) ([]string, error)

	// Cell returns the value at (row, col), or "" when the cell is empty.
	Cell(ctx context.Context, row, col int) (string, error)

	// UpdateCell writes value at (row, col).
	UpdateCell(ctx context.Context, row, col int, value string) error

	// Rows returns all populated rows, starting at row 1.
	Rows(ctx context.Context) ([][]string, error)
}

func checkCell(row, col int) error {
	if row < 1 || col < 1 {
		return ErrOutOfRange
	}
	return nil
}
