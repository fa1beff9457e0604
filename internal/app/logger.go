package app

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger interface and implementations
type Logger interface {
	Debugf(component string, format string, args ...interface{})
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Debugf(component, format string, args ...interface{}) {}
func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// LogrusLogger tags every entry with a component field.
type LogrusLogger struct{ log *logrus.Logger }

func NewLogrusLogger(w io.Writer, debug bool) LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return LogrusLogger{log: l}
}

func (l LogrusLogger) Debugf(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Debugf(format, args...)
}

func (l LogrusLogger) Infof(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Infof(format, args...)
}

func (l LogrusLogger) Errorf(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Errorf(format, args...)
}
