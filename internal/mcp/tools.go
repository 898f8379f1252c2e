// ABOUTME: MCP tool implementations for body metrics.
// ABOUTME: Provides daily entry, height update, next row, and record listing.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/bodymetrics/internal/models"
	"github.com/harperreed/bodymetrics/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const defaultListLimit = 20

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_daily_entry",
		Description: "Append today's record (mass, body fat, water, muscle) carrying the height from the previous row",
	}, s.handleAddDailyEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_height",
		Description: "Change the height from a date onward, create a height-only record for a past date, or create today's record (metrics required)",
	}, s.handleUpdateHeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "next_row",
		Description: "Return the row number the next record will be written to",
	}, s.handleNextRow)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List the most recent records, newest first",
	}, s.handleListRecords)
}

// Tool input/output types

type addDailyEntryInput struct {
	Mass    string `json:"mass" jsonschema:"Current mass in kg"`
	BodyFat string `json:"body_fat" jsonschema:"Current body fat percentage"`
	Water   string `json:"water" jsonschema:"Current water composition percentage"`
	Muscle  string `json:"muscle" jsonschema:"Current muscle composition percentage"`
}

type updateHeightInput struct {
	Date    string `json:"date" jsonschema:"Date to edit from, yyyy-mm-dd or today"`
	Height  string `json:"height" jsonschema:"The new height"`
	Mass    string `json:"mass,omitempty" jsonschema:"Current mass in kg, needed only when the date is today and has no record"`
	BodyFat string `json:"body_fat,omitempty" jsonschema:"Current body fat percentage, needed only for today"`
	Water   string `json:"water,omitempty" jsonschema:"Current water composition percentage, needed only for today"`
	Muscle  string `json:"muscle,omitempty" jsonschema:"Current muscle composition percentage, needed only for today"`
}

type writeOutput struct {
	Action  string `json:"action"`
	Date    string `json:"date"`
	Rows    []int  `json:"rows"`
	Message string `json:"message"`
}

type nextRowInput struct{}

type nextRowOutput struct {
	Row int `json:"row"`
}

type listRecordsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type recordOutput struct {
	Row     int    `json:"row"`
	Date    string `json:"date"`
	Height  string `json:"height"`
	Mass    string `json:"mass"`
	BodyFat string `json:"body_fat"`
	Water   string `json:"water"`
	Muscle  string `json:"muscle"`
}

type listRecordsOutput struct {
	Records []recordOutput `json:"records"`
	Count   int            `json:"count"`
	Message string         `json:"message,omitempty"`
}

func toRecordOutput(r *models.Record) recordOutput {
	return recordOutput{
		Row:     r.Row,
		Date:    r.RawDate,
		Height:  r.Height,
		Mass:    r.Mass,
		BodyFat: r.BodyFat,
		Water:   r.Water,
		Muscle:  r.Muscle,
	}
}

func toWriteOutput(res *tracker.Result) writeOutput {
	return writeOutput{
		Action:  res.Action.String(),
		Date:    models.FormatDate(res.Date),
		Rows:    res.Rows,
		Message: res.Message,
	}
}

// Tool handlers

func (s *Server) handleAddDailyEntry(ctx context.Context, req *mcp.CallToolRequest, input addDailyEntryInput) (*mcp.CallToolResult, writeOutput, error) {
	m := models.Metrics{Mass: input.Mass, BodyFat: input.BodyFat, Water: input.Water, Muscle: input.Muscle}

	res, err := s.tracker.AddDailyEntry(ctx, m)
	if err != nil {
		return nil, writeOutput{}, fmt.Errorf("failed to add daily entry: %w", err)
	}

	s.logger.Debug("tool add_daily_entry", zap.Ints("rows", res.Rows))
	return nil, toWriteOutput(res), nil
}

func (s *Server) handleUpdateHeight(ctx context.Context, req *mcp.CallToolRequest, input updateHeightInput) (*mcp.CallToolResult, writeOutput, error) {
	date, err := models.ParseDate(input.Date, s.tracker.Today())
	if err != nil {
		return nil, writeOutput{}, fmt.Errorf("date must be yyyy-mm-dd or today: %w", err)
	}

	metrics := func() (models.Metrics, error) {
		m := models.Metrics{Mass: input.Mass, BodyFat: input.BodyFat, Water: input.Water, Muscle: input.Muscle}
		if !m.Complete() {
			return models.Metrics{}, tracker.ErrMetricsRequired
		}
		return m, nil
	}

	res, err := s.tracker.UpdateHeight(ctx, date, input.Height, metrics)
	if err != nil {
		return nil, writeOutput{}, fmt.Errorf("failed to update height: %w", err)
	}

	s.logger.Debug("tool update_height",
		zap.String("action", res.Action.String()),
		zap.Ints("rows", res.Rows),
	)
	return nil, toWriteOutput(res), nil
}

func (s *Server) handleNextRow(ctx context.Context, req *mcp.CallToolRequest, input nextRowInput) (*mcp.CallToolResult, nextRowOutput, error) {
	row, err := s.tracker.NextRow(ctx)
	if err != nil {
		return nil, nextRowOutput{}, fmt.Errorf("failed to locate next row: %w", err)
	}
	return nil, nextRowOutput{Row: row}, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, listRecordsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	records, err := s.tracker.Records(ctx, input.Limit)
	if err != nil {
		return nil, listRecordsOutput{}, fmt.Errorf("failed to list records: %w", err)
	}

	out := listRecordsOutput{Records: make([]recordOutput, 0, len(records)), Count: len(records)}
	for _, r := range records {
		out.Records = append(out.Records, toRecordOutput(r))
	}
	if len(records) == 0 {
		out.Message = "No records found."
	}
	return nil, out, nil
}
