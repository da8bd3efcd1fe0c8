package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel overrides the level picked from the command line.
const EnvLogLevel = "NBHEADER_LOG_LEVEL"

// New builds the CLI logger. Output goes to stderr; verbose lowers the level
// to debug, which is where per-notebook messages are logged.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level(verbose, os.Getenv(EnvLogLevel)))
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func level(verbose bool, raw string) zapcore.Level {
	if lvl, err := zapcore.ParseLevel(strings.TrimSpace(raw)); err == nil && strings.TrimSpace(raw) != "" {
		return lvl
	}
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}
