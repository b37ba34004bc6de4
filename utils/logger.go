package utils

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// InitLogger configures the global logger for the given environment.
// Production gets JSON output, everything else the development console format.
func InitLogger(environment string) error {
	var (
		l   *zap.Logger
		err error
	)

	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
	return nil
}

// Logger returns the global logger, falling back to a no-op logger when
// InitLogger has not been called (e.g. in tests).
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()

	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// SyncLogger flushes buffered log entries. Called on shutdown.
func SyncLogger() {
	loggerMu.RLock()
	defer loggerMu.RUnlock()

	if logger != nil {
		_ = logger.Sync()
	}
}
