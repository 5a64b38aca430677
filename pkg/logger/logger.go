// Package logger builds the zap loggers handed to every long-lived
// component. Hot paths never log per event; components log startup,
// shutdown, fatal conditions and periodic summaries.
package logger

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production logger at the given level ("debug", "info",
// "warn", "error"). Output is one JSON line per entry on stderr, keeping
// stdout free for the stats line and the live book table.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.WithMessage(err, "parse log level")
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return nil, errors.WithMessage(err, "build logger")
	}
	return log, nil
}

// Must is New for main functions; panics on a bad level.
func Must(level string) *zap.Logger {
	log, err := New(level)
	if err != nil {
		panic(err)
	}
	return log
}
