package utils

import (
	"github.com/iotaledger/hive.go/logger"
)

// WrappedLogger logs through a logger if one was passed and is silent otherwise.
type WrappedLogger struct {
	logger *logger.Logger
}

// NewWrappedLogger creates a new WrappedLogger. log may be nil.
func NewWrappedLogger(log *logger.Logger) *WrappedLogger {
	return &WrappedLogger{logger: log}
}

// Logger returns the underlying logger, or nil.
func (l *WrappedLogger) Logger() *logger.Logger {
	return l.logger
}

func (l *WrappedLogger) LogDebugf(template string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Debugf(template, args...)
	}
}

func (l *WrappedLogger) LogInfof(template string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Infof(template, args...)
	}
}

func (l *WrappedLogger) LogWarnf(template string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Warnf(template, args...)
	}
}

func (l *WrappedLogger) LogErrorf(template string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Errorf(template, args...)
	}
}
