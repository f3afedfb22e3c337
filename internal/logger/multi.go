package logger

import "github.com/harrison/combiner/internal/models"

// Logger is the set of calls every logger in this package supports
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogSummary(report *models.Report)
}

// MultiLogger forwards every call to each of its loggers in order
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger, dropping nil entries
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

func (ml *MultiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

func (ml *MultiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

func (ml *MultiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

func (ml *MultiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

func (ml *MultiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

func (ml *MultiLogger) LogSummary(report *models.Report) {
	for _, l := range ml.loggers {
		l.LogSummary(report)
	}
}
