// ABOUTME: Per-command session wiring config, logger, table, and tracker.
// ABOUTME: Built once by each command and closed when it returns.
package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/bodymetrics/internal/config"
	"github.com/harperreed/bodymetrics/internal/logger"
	"github.com/harperreed/bodymetrics/internal/tracker"
	"go.uber.org/zap"
)

type session struct {
	logger  *zap.Logger
	tracker *tracker.Tracker
}

func newSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	base, err := logger.New(flagDebug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := base.With(zap.String("session", uuid.NewString()))

	tbl, err := cfg.OpenTable(ctx, logger.Named(log, "table.sheets"))
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to open worksheet: %w", err)
	}

	log.Debug("session started",
		zap.String("spreadsheet", cfg.GetSpreadsheet()),
		zap.String("worksheet", cfg.GetWorksheet()))

	return &session{
		logger:  log,
		tracker: tracker.New(tbl, logger.Named(log, "tracker")),
	}, nil
}

// Close flushes buffered log entries.
func (s *session) Close() {
	_ = s.logger.Sync()
}

// loadConfig reads the config file, then lets command-line flags override it.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFrom(config.ExpandPath(flagConfig))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyFlags(cfg)
	return cfg, nil
}

func applyFlags(cfg *config.Config) {
	if flagCredentials != "" {
		cfg.Credentials = flagCredentials
	}
	if flagSpreadsheet != "" {
		cfg.Spreadsheet = flagSpreadsheet
	}
	if flagSpreadsheetID != "" {
		cfg.SpreadsheetID = flagSpreadsheetID
	}
	if flagWorksheet != "" {
		cfg.Worksheet = flagWorksheet
	}
}
