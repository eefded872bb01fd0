package logging

import (
	"log/slog"
)

// SetupMCPMode initializes logging for MCP server mode and installs the
// logger as the slog default.
//
// MCP requires stdout to be used exclusively for JSON-RPC. Any other write
// to stdout corrupts the protocol stream, and clients surface stderr noise as
// server errors, so this logs only to the rotating file.
func SetupMCPMode(level string) (*slog.Logger, func(), error) {
	return setupMCPMode(level, DefaultLogPath())
}

func setupMCPMode(level, path string) (*slog.Logger, func(), error) {
	cfg := Config{
		Level:         level,
		FilePath:      path,
		MaxSizeMB:     10,
		MaxFiles:      5,
		WriteToStderr: false,
	}

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		return nil, nil, err
	}

	slog.SetDefault(logger)

	logger.Info("MCP mode logging initialized",
		slog.String("log_file", cfg.FilePath),
		slog.String("level", cfg.Level),
		slog.Bool("stderr_disabled", true))

	return logger, cleanup, nil
}
