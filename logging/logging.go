// Package logging builds the zap logger from the logging configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sambeau/unitconv/config"
)

// New creates a logger for cfg. Output "stderr" (or empty) writes to
// stderr, "stdout" to stdout, anything else is a file path opened for
// append. The returned close function syncs the logger and closes the
// file, if any.
func New(cfg config.LoggingConfig, stdout, stderr io.Writer) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	case "text", "":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, nil, fmt.Errorf("invalid log format %q (must be json or text)", cfg.Format)
	}

	var (
		sink      zapcore.WriteSyncer
		closeFile = func() error { return nil }
	)
	switch cfg.Output {
	case "stderr", "":
		sink = zapcore.AddSync(stderr)
	case "stdout":
		sink = zapcore.AddSync(stdout)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		sink = zapcore.AddSync(f)
		closeFile = f.Close
	}

	logger := zap.New(zapcore.NewCore(encoder, sink, level))
	return logger, func() error {
		_ = logger.Sync()
		return closeFile()
	}, nil
}
