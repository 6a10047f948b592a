package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// buildLogger maps the -v counter to a log level: 0 warnings, 1 info,
// 2 or more debug. Logs go to stderr so stdout stays clean for the
// rendered report.
func buildLogger(verbosity int) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	switch {
	case verbosity == 1:
		level = zapcore.InfoLevel
	case verbosity >= 2:
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
