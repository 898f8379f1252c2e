// ABOUTME: Google Sheets backed Table implementation.
// ABOUTME: Authenticates with a service-account key and addresses one worksheet by name.
package table

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/harperreed/bodymetrics/internal/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const spreadsheetMIMEType = "application/vnd.google-apps.spreadsheet"

// Scopes are the OAuth scopes requested for the service account. Drive
// metadata access is only needed to find the spreadsheet by name.
var Scopes = []string{
	sheetsapi.SpreadsheetsScope,
	drive.DriveMetadataReadonlyScope,
}

var (
	// ErrSpreadsheetNotFound is returned when no spreadsheet matches the configured name or ID.
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

	// ErrWorksheetNotFound is returned when the spreadsheet has no worksheet with the configured title.
	ErrWorksheetNotFound = errors.New("worksheet not found")
)

// SheetsConfig identifies the spreadsheet, worksheet, and credentials to use.
type SheetsConfig struct {
	CredentialsFile  string
	Spreadsheet      string
	SpreadsheetID    string
	Worksheet        string
	ValueInputOption string
}

// Sheets implements Table on top of the Google Sheets API.
type Sheets struct {
	service       *sheetsapi.Service
	spreadsheetID string
	worksheet     string
	valueInput    string
	logger        *zap.Logger
}

// OpenSheets reads the service-account key in cfg.CredentialsFile and opens
// the configured worksheet. It fails if the key is unusable, the spreadsheet
// cannot be found, or the worksheet does not exist.
func OpenSheets(ctx context.Context, cfg SheetsConfig, logger *zap.Logger) (*Sheets, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", cfg.CredentialsFile, err)
	}

	jwt, err := google.JWTConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", cfg.CredentialsFile, err)
	}

	return openSheets(ctx, cfg, logger, option.WithTokenSource(jwt.TokenSource(ctx)))
}

func openSheets(ctx context.Context, cfg SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*Sheets, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Worksheet == "" {
		return nil, fmt.Errorf("worksheet must not be empty")
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	id := cfg.SpreadsheetID
	if id == "" {
		id, err = findSpreadsheet(ctx, cfg.Spreadsheet, logger, opts...)
		if err != nil {
			return nil, err
		}
	}

	s := &Sheets{
		service:       service,
		spreadsheetID: id,
		worksheet:     cfg.Worksheet,
		valueInput:    cfg.ValueInputOption,
		logger:        logger,
	}
	if s.valueInput == "" {
		s.valueInput = "USER_ENTERED"
	}

	if err := s.checkWorksheet(ctx); err != nil {
		return nil, err
	}

	logger.Debug("worksheet opened",
		zap.String("spreadsheet_id", id),
		zap.String("worksheet", cfg.Worksheet))
	return s, nil
}

// findSpreadsheet resolves a spreadsheet name to its ID through the Drive API.
// When several files share the name the first one returned is used.
func findSpreadsheet(ctx context.Context, name string, logger *zap.Logger, opts ...option.ClientOption) (string, error) {
	if name == "" {
		return "", fmt.Errorf("spreadsheet name or ID must be provided")
	}

	gdrive, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to initialize drive client: %w", err)
	}

	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(name), spreadsheetMIMEType)
	list, err := gdrive.Files.List().Q(q).Fields("files(id, name)").PageSize(10).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("search spreadsheet %q: %w", name, err)
	}

	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, name)
	}
	if len(list.Files) > 1 {
		logger.Warn("several spreadsheets share the configured name, using the first",
			zap.String("name", name), zap.Int("matches", len(list.Files)))
	}
	return list.Files[0].Id, nil
}

func (s *Sheets) checkWorksheet(ctx context.Context) error {
	ss, err := s.service.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", ErrSpreadsheetNotFound, s.spreadsheetID)
		}
		return fmt.Errorf("fetch spreadsheet %s: %w", s.spreadsheetID, err)
	}

	for _, sheet := range ss.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == s.worksheet {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrWorksheetNotFound, s.worksheet)
}

// SpreadsheetID returns the resolved spreadsheet ID.
func (s *Sheets) SpreadsheetID() string {
	return s.spreadsheetID
}

// ColumnValues reads a whole column. The API omits trailing empty cells.
func (s *Sheets) ColumnValues(ctx context.Context, col int) ([]string, error) {
	if err := checkCell(1, col); err != nil {
		return nil, fmt.Errorf("column %d: %w", col, err)
	}

	rng := columnRange(s.worksheet, col)
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		MajorDimension("COLUMNS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", rng, err)
	}

	if len(resp.Values) == 0 {
		return []string{}, nil
	}
	return cellStrings(resp.Values[0]), nil
}

// Cell reads a single cell.
func (s *Sheets) Cell(ctx context.Context, row, col int) (string, error) {
	if err := checkCell(row, col); err != nil {
		return "", fmt.Errorf("cell R%dC%d: %w", row, col, err)
	}

	rng := cellRange(s.worksheet, row, col)
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read range %s: %w", rng, err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return cellString(resp.Values[0][0]), nil
}

// UpdateCell writes a single cell using the configured value input option.
func (s *Sheets) UpdateCell(ctx context.Context, row, col int, value string) error {
	if err := checkCell(row, col); err != nil {
		return fmt.Errorf("update cell R%dC%d: %w", row, col, err)
	}

	rng := cellRange(s.worksheet, row, col)
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}

	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, rng, payload).
		ValueInputOption(s.valueInput).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update cell %s: %w", rng, err)
	}

	s.logger.Debug("cell updated", zap.String("range", rng), zap.String("value", value))
	return nil
}

// Rows reads every populated row across the record columns.
func (s *Sheets) Rows(ctx context.Context) ([][]string, error) {
	rng := fmt.Sprintf("%s!A:%s", quoteSheet(s.worksheet), columnLetter(models.ColumnCount))
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", rng, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = cellStrings(row)
	}
	return rows, nil
}

// columnLetter converts a 1-based column index to A1 letters (1 = A, 27 = AA).
func columnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// quoteSheet quotes a worksheet title for use in A1 notation.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func columnRange(sheet string, col int) string {
	letter := columnLetter(col)
	return fmt.Sprintf("%s!%s:%s", quoteSheet(sheet), letter, letter)
}

func cellRange(sheet string, row, col int) string {
	return fmt.Sprintf("%s!%s%d", quoteSheet(sheet), columnLetter(col), row)
}

// escapeQuery escapes a literal for a Drive files.list query.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func cellStrings(values []interface{}) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = cellString(v)
	}
	return out
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func isNotFound(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && gErr.Code == http.StatusNotFound
}
