package elasticsearch

import (
	"go.uber.org/zap"
)

// errorLogger bridges the elastic client's error log onto zap.
type errorLogger struct {
	sugar *zap.SugaredLogger
}

func newErrorLogger(logger *zap.Logger) *errorLogger {
	return &errorLogger{sugar: logger.Named("elastic").Sugar()}
}

func (l *errorLogger) Printf(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}
