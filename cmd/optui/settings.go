package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/benaskins/optui/internal/audit"
	"github.com/benaskins/optui/internal/config"
	"github.com/benaskins/optui/internal/logging"
	"github.com/benaskins/optui/internal/op"
)

var (
	configPath string
	logLevel   string
	opPath     string
	auditPath  string
)

// cfg is the config file contents, loaded once in setup.
var cfg = &config.Config{}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath(), "Path to config file")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from $"+logging.EnvVar+" or config, else warn)")
	pf.StringVar(&opPath, "op-path", "", "Path to the 1Password CLI binary (default \"op\" on PATH)")
	pf.StringVar(&auditPath, "audit-log", "", "Append a record of every copied secret (never the value) to this file")
}

// setup loads the config file and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded

	level := firstNonEmpty(logLevel, os.Getenv(logging.EnvVar), cfg.LogLevel, logging.DefaultLevel)
	logger, err := logging.New(level, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// resolveCachePath picks the cache file: positional argument, then config,
// then the per-user default (whose directory is created on demand).
func resolveCachePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.CachePath != "" {
		return cfg.CachePath, nil
	}
	return defaultCachePath()
}

func resolveOpPath() string {
	return firstNonEmpty(opPath, cfg.OpPath, op.DefaultBin)
}

// openAudit opens the audit log if one is configured. A nil logger is
// valid and discards entries.
func openAudit() (*audit.Logger, error) {
	path := firstNonEmpty(auditPath, cfg.AuditLog)
	if path == "" {
		return nil, nil
	}
	return audit.NewLogger(path)
}

// firstNonEmpty returns the first non-empty value, layering
// flag > environment > config > default.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
