// ABOUTME: Bodymetrics configuration management with table factory.
// ABOUTME: Loads JSON settings, applies environment overrides, and opens the worksheet.

package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/bodymetrics/internal/table"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DefaultCredentials = "manager_credentials.json"
	DefaultSpreadsheet = "Body Metrics"
	DefaultWorksheet   = "Data Table"
	DefaultValueInput  = "USER_ENTERED"
)

// Environment variables that override the config file.
const (
	EnvCredentials   = "BODYMETRICS_CREDENTIALS"
	EnvSpreadsheet   = "BODYMETRICS_SPREADSHEET"
	EnvSpreadsheetID = "BODYMETRICS_SPREADSHEET_ID"
	EnvWorksheet     = "BODYMETRICS_WORKSHEET"
	EnvValueInput    = "BODYMETRICS_VALUE_INPUT"
)

// Config stores bodymetrics configuration.
type Config struct {
	// Credentials is the path to the service-account JSON key.
	// Supports ~ expansion. Defaults to manager_credentials.json in the working directory.
	Credentials string `json:"credentials,omitempty"`

	// Spreadsheet is the document name, looked up through Drive.
	Spreadsheet string `json:"spreadsheet,omitempty"`

	// SpreadsheetID skips the name lookup when set.
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`

	// Worksheet is the tab holding the data table.
	Worksheet string `json:"worksheet,omitempty"`

	// ValueInput is the Sheets value input option: USER_ENTERED or RAW.
	ValueInput string `json:"value_input,omitempty"`
}

// GetCredentials returns the credentials path with ~ expanded.
func (c *Config) GetCredentials() string {
	if c.Credentials == "" {
		return DefaultCredentials
	}
	return ExpandPath(c.Credentials)
}

// GetSpreadsheet returns the configured document name.
func (c *Config) GetSpreadsheet() string {
	if c.Spreadsheet == "" {
		return DefaultSpreadsheet
	}
	return c.Spreadsheet
}

// GetWorksheet returns the configured worksheet title.
func (c *Config) GetWorksheet() string {
	if c.Worksheet == "" {
		return DefaultWorksheet
	}
	return c.Worksheet
}

// GetValueInput returns the value input option, normalised to upper case.
func (c *Config) GetValueInput() string {
	if c.ValueInput == "" {
		return DefaultValueInput
	}
	return strings.ToUpper(c.ValueInput)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// SheetsConfig returns the settings needed to open the worksheet.
func (c *Config) SheetsConfig() table.SheetsConfig {
	return table.SheetsConfig{
		CredentialsFile:  c.GetCredentials(),
		Spreadsheet:      c.GetSpreadsheet(),
		SpreadsheetID:    c.SpreadsheetID,
		Worksheet:        c.GetWorksheet(),
		ValueInputOption: c.GetValueInput(),
	}
}

// OpenTable authenticates and opens the configured worksheet.
func (c *Config) OpenTable(ctx context.Context, logger *zap.Logger) (table.Table, error) {
	return table.OpenSheets(ctx, c.SheetsConfig(), logger)
}

// ApplyEnv overrides fields with any BODYMETRICS_* variables that are set.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{EnvCredentials, &c.Credentials},
		{EnvSpreadsheet, &c.Spreadsheet},
		{EnvSpreadsheetID, &c.SpreadsheetID},
		{EnvWorksheet, &c.Worksheet},
		{EnvValueInput, &c.ValueInput},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "bodymetrics", "config.json")
}

// Load reads config from the default path, then applies a .env file in the
// working directory (if any) and the environment on top.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	// Ignore the returned error here; a missing .env file is the common case.
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
