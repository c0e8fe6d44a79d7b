package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Level comes from LOG_LEVEL (default
// info); production gets JSON output for log shippers.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if os.Getenv("APP_ENV") == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return l
}
