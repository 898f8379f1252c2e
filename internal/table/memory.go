// ABOUTME: In-memory Table implementation.
// ABOUTME: Backs tests and records every cell write in order.
package table

import (
	"context"
	"fmt"
	"sync"
)

// Write is a single recorded cell update.
type Write struct {
	Row   int
	Col   int
	Value string
}

type cellKey struct {
	row, col int
}

// Memory is a thread-safe in-process grid.
type Memory struct {
	mu     sync.RWMutex
	cells  map[cellKey]string
	writes []Write
}

// NewMemory creates a grid seeded with rows, starting at row 1.
func NewMemory(rows ...[]string) *Memory {
	m := &Memory{cells: make(map[cellKey]string)}
	for i, row := range rows {
		for j, v := range row {
			if v != "" {
				m.cells[cellKey{i + 1, j + 1}] = v
			}
		}
	}
	return m
}

// ColumnValues returns the values of col down to its last non-empty cell.
func (m *Memory) ColumnValues(ctx context.Context, col int) ([]string, error) {
	if err := checkCell(1, col); err != nil {
		return nil, fmt.Errorf("column %d: %w", col, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	last := 0
	for k := range m.cells {
		if k.col == col && k.row > last {
			last = k.row
		}
	}

	values := make([]string, last)
	for row := 1; row <= last; row++ {
		values[row-1] = m.cells[cellKey{row, col}]
	}
	return values, nil
}

// Cell returns the value at (row, col).
func (m *Memory) Cell(ctx context.Context, row, col int) (string, error) {
	if err := checkCell(row, col); err != nil {
		return "", fmt.Errorf("cell R%dC%d: %w", row, col, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cells[cellKey{row, col}], nil
}

// UpdateCell stores value at (row, col) and records the write.
func (m *Memory) UpdateCell(ctx context.Context, row, col int, value string) error {
	if err := checkCell(row, col); err != nil {
		return fmt.Errorf("update cell R%dC%d: %w", row, col, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if value == "" {
		delete(m.cells, cellKey{row, col})
	} else {
		m.cells[cellKey{row, col}] = value
	}
	m.writes = append(m.writes, Write{Row: row, Col: col, Value: value})
	return nil
}

// Rows returns every row up to the last populated one, each trimmed of
// trailing empty cells.
func (m *Memory) Rows(ctx context.Context) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lastRow := 0
	for k := range m.cells {
		if k.row > lastRow {
			lastRow = k.row
		}
	}

	rows := make([][]string, lastRow)
	for k := range m.cells {
		if len(rows[k.row-1]) < k.col {
			grown := make([]string, k.col)
			copy(grown, rows[k.row-1])
			rows[k.row-1] = grown
		}
		rows[k.row-1][k.col-1] = m.cells[k]
	}
	return rows, nil
}

// Writes returns a copy of all recorded writes in the order they happened.
func (m *Memory) Writes() []Write {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Write, len(m.writes))
	copy(out, m.writes)
	return out
}

// ResetWrites clears the write log without touching the grid.
func (m *Memory) ResetWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = nil
}
