// ABOUTME: Tests for the Google Sheets Table implementation.
// ABOUTME: Runs the real API client against an httptest fake of the REST endpoints.
package table

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
)

const testSpreadsheetID = "sheet-123"

// fakeSheetsAPI serves canned values responses keyed by A1 range and
// records every values update it receives.
type fakeSheetsAPI struct {
	mu         sync.Mutex
	files      []string
	worksheets []string
	values     map[string][][]interface{}
	updates    []fakeUpdate
	driveQuery string
}

type fakeUpdate struct {
	Range      string
	ValueInput string
	Values     [][]interface{}
}

func newFakeSheetsAPI() *fakeSheetsAPI {
	return &fakeSheetsAPI{
		files:      []string{testSpreadsheetID},
		worksheets: []string{"Data Table"},
		values:     make(map[string][][]interface{}),
	}
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	valuesPrefix := "/v4/spreadsheets/" + testSpreadsheetID + "/values/"

	switch {
	case strings.HasSuffix(r.URL.Path, "/files"):
		f.driveQuery = r.URL.Query().Get("q")
		files := make([]map[string]string, 0, len(f.files))
		for _, id := range f.files {
			files = append(files, map[string]string{"id": id, "name": "Body Metrics"})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"files": files})

	case strings.HasPrefix(r.URL.Path, valuesPrefix) && r.Method == http.MethodGet:
		rng := strings.TrimPrefix(r.URL.Path, valuesPrefix)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"range":  rng,
			"values": f.values[rng],
		})

	case strings.HasPrefix(r.URL.Path, valuesPrefix) && r.Method == http.MethodPut:
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		f.updates = append(f.updates, fakeUpdate{
			Range:      strings.TrimPrefix(r.URL.Path, valuesPrefix),
			ValueInput: r.URL.Query().Get("valueInputOption"),
			Values:     body.Values,
		})
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": testSpreadsheetID, "updatedCells": 1})

	case r.URL.Path == "/v4/spreadsheets/"+testSpreadsheetID:
		sheets := make([]map[string]interface{}, 0, len(f.worksheets))
		for _, title := range f.worksheets {
			sheets = append(sheets, map[string]interface{}{"properties": map[string]string{"title": title}})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": testSpreadsheetID, "sheets": sheets})

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
	}
}

func setupTestSheets(t *testing.T, api *fakeSheetsAPI, cfg SheetsConfig) (*Sheets, error) {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	if cfg.Worksheet == "" {
		cfg.Worksheet = "Data Table"
	}
	return openSheets(context.Background(), cfg, nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
}

func TestOpenSheetsResolvesName(t *testing.T) {
	api := newFakeSheetsAPI()

	s, err := setupTestSheets(t, api, SheetsConfig{Spreadsheet: "Body Metrics"})
	if err != nil {
		t.Fatalf("openSheets failed: %v", err)
	}
	if s.SpreadsheetID() != testSpreadsheetID {
		t.Errorf("SpreadsheetID() = %q, want %q", s.SpreadsheetID(), testSpreadsheetID)
	}
	if !strings.Contains(api.driveQuery, "name = 'Body Metrics'") {
		t.Errorf("unexpected drive query: %q", api.driveQuery)
	}
	if s.valueInput != "USER_ENTERED" {
		t.Errorf("valueInput = %q, want USER_ENTERED", s.valueInput)
	}
}

func TestOpenSheetsWithExplicitID(t *testing.T) {
	api := newFakeSheetsAPI()
	api.files = nil

	s, err := setupTestSheets(t, api, SheetsConfig{SpreadsheetID: testSpreadsheetID, ValueInputOption: "RAW"})
	if err != nil {
		t.Fatalf("openSheets failed: %v", err)
	}
	if api.driveQuery != "" {
		t.Errorf("expected no drive lookup, got query %q", api.driveQuery)
	}
	if s.valueInput != "RAW" {
		t.Errorf("valueInput = %q, want RAW", s.valueInput)
	}
}

func TestOpenSheetsSpreadsheetNotFound(t *testing.T) {
	api := newFakeSheetsAPI()
	api.files = nil

	_, err := setupTestSheets(t, api, SheetsConfig{Spreadsheet: "Missing"})
	if !errors.Is(err, ErrSpreadsheetNotFound) {
		t.Errorf("expected ErrSpreadsheetNotFound, got %v", err)
	}
}

func TestOpenSheetsUnknownSpreadsheetID(t *testing.T) {
	api := newFakeSheetsAPI()

	_, err := setupTestSheets(t, api, SheetsConfig{SpreadsheetID: "other-id"})
	if !errors.Is(err, ErrSpreadsheetNotFound) {
		t.Errorf("expected ErrSpreadsheetNotFound, got %v", err)
	}
}

func TestOpenSheetsWorksheetNotFound(t *testing.T) {
	api := newFakeSheetsAPI()
	api.worksheets = []string{"Sheet1"}

	_, err := setupTestSheets(t, api, SheetsConfig{SpreadsheetID: testSpreadsheetID})
	if !errors.Is(err, ErrWorksheetNotFound) {
		t.Errorf("expected ErrWorksheetNotFound, got %v", err)
	}
}

func TestOpenSheetsRequiresName(t *testing.T) {
	api := newFakeSheetsAPI()

	if _, err := setupTestSheets(t, api, SheetsConfig{}); err == nil {
		t.Error("expected error without spreadsheet name or ID")
	}
}

func TestOpenSheetsBadCredentials(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenSheets(context.Background(), SheetsConfig{
		CredentialsFile: filepath.Join(dir, "missing.json"),
		Spreadsheet:     "Body Metrics",
		Worksheet:       "Data Table",
	}, nil)
	if err == nil {
		t.Error("expected error for missing credentials file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err = OpenSheets(context.Background(), SheetsConfig{
		CredentialsFile: bad,
		Spreadsheet:     "Body Metrics",
		Worksheet:       "Data Table",
	}, nil)
	if err == nil {
		t.Error("expected error for malformed credentials file")
	}
}

func TestSheetsColumnValues(t *testing.T) {
	api := newFakeSheetsAPI()
	api.values["'Data Table'!A:A"] = [][]interface{}{{"2024-01-01", "2024-01-02", "", "2024-01-04"}}

	s, err := setupTestSheets(t, api, SheetsConfig{SpreadsheetID: testSpreadsheetID})
	if err != nil {
		t.Fatalf("openSheets failed: %v", err)
	}

	got, err := s.ColumnValues(context.Background(), 1)
	if err != nil {
		t.Fatalf("ColumnValues failed: %v", err)
	}
	want := []string{"2024-01-01", "2024-01-02", "", "2024-01-04"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ColumnValues = %v, want %v", got, want)
	}

	empty, err := s.ColumnValues(context.Background(), 2)
	if err != nil {
		t.Fatalf("ColumnValues on empty column failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty column, got %v", empty)
	}
}

func TestSheetsCell(t *testing.T) {
	api := newFakeSheetsAPI()
	api.values["'Data Table'!B3"] = [][]interface{}{{float64(181)}}

	s, err := setupTestSheets(t, api, SheetsConfig{SpreadsheetID: testSpreadsheetID})
	if err != nil {
		t.Fatalf("openSheets failed: %v", err)
	}

	got, err := s.Cell(context.Background(), 3, 2)
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if got != "181" {
		t.Errorf("Cell(3, 2) = %q, want 181", got)
	}

	blank, err := s.Cell(context.Background(), 9, 2)
	if err != nil {
		t.Fatalf("Cell on blank cell failed: %v", err)
	}
	if blank != "" {
		t.Errorf("expected blank cell, got %q", blank)
	}

	if _, err := s.Cell(context.Background(), 0, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for row 0, got %v", err)
	}
}

func TestSheetsUpdateCell(t *testing.T) {
	api := newFakeSheetsAPI()

	s, err := setupTestSheets(t, api, SheetsConfig{SpreadsheetID: testSpreadsheetID})
	if err != nil {
		t.Fatalf("openSheets failed: %v", err)
	}

	if err := s.UpdateCell(context.Background(), 4, 3, "82.5"); err != nil {
		t.Fatalf("UpdateCell failed: %v", err)
	}

	if len(api.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(api.updates))
	}
	u := api.updates[0]
	if u.Range != "'Data Table'!C4" {
		t.Errorf("update range = %q, want 'Data Table'!C4", u.Range)
	}
	if u.ValueInput != "USER_ENTERED" {
		t.Errorf("valueInputOption = %q, want USER_ENTERED", u.ValueInput)
	}
	if len(u.Values) != 1 || len(u.Values[0]) != 1 || u.Values[0][0] != "82.5" {
		t.Errorf("update values = %v, want [[82.5]]", u.Values)
	}

	if err := s.UpdateCell(context.Background(), 1, 0, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for column 0, got %v", err)
	}
}

func TestSheetsRows(t *testing.T) {
	api := newFakeSheetsAPI()
	api.values["'Data Table'!A:F"] = [][]interface{}{
		{"2024-01-01", "180", "82", "18", "55", "40"},
		{"2024-01-02", "181"},
	}

	s, err := setupTestSheets(t, api, SheetsConfig{SpreadsheetID: testSpreadsheetID})
	if err != nil {
		t.Fatalf("openSheets failed: %v", err)
	}

	rows, err := s.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[1]) != 2 || rows[1][1] != "181" {
		t.Errorf("unexpected second row: %v", rows[1])
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{6, "F"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}

	for _, tt := range tests {
		if got := columnLetter(tt.col); got != tt.want {
			t.Errorf("columnLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestRangeNotation(t *testing.T) {
	if got := cellRange("Data Table", 3, 2); got != "'Data Table'!B3" {
		t.Errorf("cellRange = %q", got)
	}
	if got := columnRange("Data Table", 1); got != "'Data Table'!A:A" {
		t.Errorf("columnRange = %q", got)
	}
	if got := quoteSheet("Bob's Data"); got != "'Bob''s Data'" {
		t.Errorf("quoteSheet = %q", got)
	}
}

func TestEscapeQuery(t *testing.T) {
	if got := escapeQuery(`Bob's \ Metrics`); got != `Bob\'s \\ Metrics` {
		t.Errorf("escapeQuery = %q", got)
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{float64(82.5), "82.5"},
		{float64(180), "180"},
		{true, "true"},
	}

	for _, tt := range tests {
		if got := cellString(tt.in); got != tt.want {
			t.Errorf("cellString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
