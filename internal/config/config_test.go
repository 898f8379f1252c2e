// ABOUTME: Tests for bodymetrics configuration management.
// ABOUTME: Covers load, save, defaults, environment overrides, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every override so the host environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvCredentials, EnvSpreadsheet, EnvSpreadsheetID, EnvWorksheet, EnvValueInput} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetCredentials(); got != "manager_credentials.json" {
		t.Errorf("GetCredentials() = %q, want %q", got, "manager_credentials.json")
	}
	if got := cfg.GetSpreadsheet(); got != "Body Metrics" {
		t.Errorf("GetSpreadsheet() = %q, want %q", got, "Body Metrics")
	}
	if got := cfg.GetWorksheet(); got != "Data Table" {
		t.Errorf("GetWorksheet() = %q, want %q", got, "Data Table")
	}
	if got := cfg.GetValueInput(); got != "USER_ENTERED" {
		t.Errorf("GetValueInput() = %q, want %q", got, "USER_ENTERED")
	}
}

func TestExplicitValues(t *testing.T) {
	cfg := &Config{
		Credentials: "/etc/bodymetrics/key.json",
		Spreadsheet: "Tracking",
		Worksheet:   "Raw",
		ValueInput:  "raw",
	}

	if got := cfg.GetCredentials(); got != "/etc/bodymetrics/key.json" {
		t.Errorf("GetCredentials() = %q", got)
	}
	if got := cfg.GetSpreadsheet(); got != "Tracking" {
		t.Errorf("GetSpreadsheet() = %q", got)
	}
	if got := cfg.GetWorksheet(); got != "Raw" {
		t.Errorf("GetWorksheet() = %q", got)
	}
	if got := cfg.GetValueInput(); got != "RAW" {
		t.Errorf("GetValueInput() = %q, want RAW", got)
	}
}

func TestGetCredentialsExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{Credentials: "~/keys/sa.json"}
	want := filepath.Join(home, "keys/sa.json")
	if got := cfg.GetCredentials(); got != want {
		t.Errorf("GetCredentials() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/key.json", filepath.Join(home, "data/key.json")},
		{"data/key.json", "data/key.json"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSheetsConfig(t *testing.T) {
	cfg := &Config{SpreadsheetID: "abc123", ValueInput: "raw"}
	sc := cfg.SheetsConfig()

	if sc.CredentialsFile != DefaultCredentials {
		t.Errorf("CredentialsFile = %q", sc.CredentialsFile)
	}
	if sc.Spreadsheet != DefaultSpreadsheet {
		t.Errorf("Spreadsheet = %q", sc.Spreadsheet)
	}
	if sc.SpreadsheetID != "abc123" {
		t.Errorf("SpreadsheetID = %q", sc.SpreadsheetID)
	}
	if sc.Worksheet != DefaultWorksheet {
		t.Errorf("Worksheet = %q", sc.Worksheet)
	}
	if sc.ValueInputOption != "RAW" {
		t.Errorf("ValueInputOption = %q", sc.ValueInputOption)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Spreadsheet != "" || cfg.Worksheet != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		Credentials:   "~/keys/sa.json",
		Spreadsheet:   "Tracking",
		SpreadsheetID: "abc123",
		Worksheet:     "Raw",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{Worksheet: "Raw"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "bodymetrics")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "bodymetrics")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")

	if err := (&Config{Spreadsheet: "From File", Worksheet: "File Tab"}).SaveTo(path); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	t.Setenv(EnvSpreadsheet, "From Env")
	t.Setenv(EnvSpreadsheetID, "env-id")
	t.Setenv(EnvValueInput, "RAW")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if cfg.Spreadsheet != "From Env" {
		t.Errorf("Spreadsheet = %q, want %q", cfg.Spreadsheet, "From Env")
	}
	if cfg.SpreadsheetID != "env-id" {
		t.Errorf("SpreadsheetID = %q, want %q", cfg.SpreadsheetID, "env-id")
	}
	if cfg.Worksheet != "File Tab" {
		t.Errorf("Worksheet = %q, want value from file", cfg.Worksheet)
	}
	if cfg.GetValueInput() != "RAW" {
		t.Errorf("GetValueInput() = %q, want RAW", cfg.GetValueInput())
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "bodymetrics", "config.json")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}

func TestConfigJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(&Config{SpreadsheetID: "abc", ValueInput: "RAW"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"spreadsheet_id":"abc","value_input":"RAW"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
