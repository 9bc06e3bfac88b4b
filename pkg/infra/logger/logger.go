package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the service logger: JSON lines to stdout, level taken from
// configuration with an env override for quick debugging.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})

	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	logger.SetOutput(os.Stdout)

	return logger
}
