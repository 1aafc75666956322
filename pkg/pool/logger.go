package pool

import (
	"fmt"
	"log"
	"os"
)

// Logger is the logging surface the pool writes diagnostic output
// through. It can be swapped for any structured logger the embedding
// program already uses by implementing this interface.
type Logger interface {
	Errorf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// defaultLogger implements Logger on top of the standard log package.
type defaultLogger struct {
	errorLogger *log.Logger
	warnLogger  *log.Logger
	infoLogger  *log.Logger
	debugLogger *log.Logger
}

// NewDefaultLogger returns the Logger used when no Logger option is
// supplied to New.
func NewDefaultLogger() Logger {
	return &defaultLogger{
		errorLogger: log.New(os.Stderr, "[pool][ERROR] ", log.LstdFlags),
		warnLogger:  log.New(os.Stderr, "[pool][WARN] ", log.LstdFlags),
		infoLogger:  log.New(os.Stdout, "[pool][INFO] ", log.LstdFlags),
		debugLogger: log.New(os.Stdout, "[pool][DEBUG] ", log.LstdFlags),
	}
}

func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	l.errorLogger.Output(2, fmt.Sprintf(format, args...))
}

func (l *defaultLogger) Warnf(format string, args ...interface{}) {
	l.warnLogger.Output(2, fmt.Sprintf(format, args...))
}

func (l *defaultLogger) Infof(format string, args ...interface{}) {
	l.infoLogger.Output(2, fmt.Sprintf(format, args...))
}

func (l *defaultLogger) Debugf(format string, args ...interface{}) {
	l.debugLogger.Output(2, fmt.Sprintf(format, args...))
}

// noopLogger discards everything; used only in tests that don't want
// pool diagnostics on stdout/stderr.
type noopLogger struct{}

func (noopLogger) Errorf(string, ...interface{}) {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Debugf(string, ...interface{}) {}
