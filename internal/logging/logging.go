// Package logging builds the process logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskdeck/internal/config"
)

// New returns a logger for cfg.
//
// With a log file configured, logs go to that file as JSON (debug level
// with --debug, info otherwise). Without one, --debug logs to stderr with
// the console encoder and everything else is discarded: stdout and stderr
// belong to the command output and the terminal UI.
func New(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	switch {
	case cfg.LogFile != "":
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		zc.OutputPaths = []string{cfg.LogFile}
		zc.ErrorOutputPaths = []string{cfg.LogFile}
		zc.EncoderConfig.TimeKey = "time"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return zc.Build()
	case cfg.Debug:
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		zc.OutputPaths = []string{"stderr"}
		zc.DisableStacktrace = true
		return zc.Build()
	default:
		return zap.NewNop(), nil
	}
}

// Install makes logger the global zap logger and returns a func that
// flushes it and restores the previous global.
func Install(logger *zap.Logger) func() {
	restore := zap.ReplaceGlobals(logger)
	return func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
		restore()
	}
}
