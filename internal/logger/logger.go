// Package logger holds the banking service's global zap logger. Every layer
// (repositories, services, middlewares, the seeder) logs through logger.Log.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared SugaredLogger. It starts as a no-op so packages can log
// before Initialize runs (or in tests that never call it).
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Initialize replaces Log with a production logger at the given level.
func Initialize(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = logger.Sugar()
	return nil
}
