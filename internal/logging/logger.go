package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the logger shared by every worker.
type Logger = *logrus.Logger

// Fields represents structured logging fields
type Fields = logrus.Fields

// NewLogger creates a JSON logger whose level comes from LOG_LEVEL.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(LevelFromEnv())
	return logger
}

// NewLoggerWithService creates a logger that stamps every entry with the worker name.
func NewLoggerWithService(serviceName string) *logrus.Logger {
	logger := NewLogger()
	logger.AddHook(serviceHook{service: serviceName})
	return logger
}

// LevelFromEnv maps LOG_LEVEL to a logrus level, defaulting to info.
func LevelFromEnv() logrus.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

type serviceHook struct {
	service string
}

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}
