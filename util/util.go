package util

import (
	"sync"

	"go.uber.org/zap"
)

// Logging is a clumsy switch that affects what Logf does.
//
// If Logging is true, then Logf writes to the Logger at debug level.
var Logging = false

var (
	logger   *zap.SugaredLogger
	loggerMu sync.Mutex
)

// SetLogger replaces the Logger.  A nil logger discards everything.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Sugar()
}

// Logger returns the current logger.  If none has been set, Logger
// makes a development logger (or, if that fails, a no-op one).
func Logger() *zap.SugaredLogger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l.Sugar()
	}
	return logger
}

// Logf is a silly utility function that logs at debug level if
// Logging is true.
func Logf(format string, args ...interface{}) {
	if !Logging {
		return
	}
	Logger().Debugf(format, args...)
}
