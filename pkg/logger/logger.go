package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/vventirozos/GhostAgent-v2/pkg/config"
)

var defaultLogger = newNopLogger()

// Init initializes the package logger from the global configuration.
// The TUI owns the terminal, so all output goes to a log file.
func Init() error {
	settings := config.Get()

	logPath := settings.Logging.LogFile
	if !filepath.IsAbs(logPath) {
		logPath = config.BuildSettingsPath(filepath.Base(logPath))
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if settings.Logging.Preserve {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(logPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	log := logrus.New()
	log.SetOutput(file)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	level, err := logrus.ParseLevel(settings.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	defaultLogger = log
	return nil
}

func newNopLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Get returns the package logger
func Get() *logrus.Logger {
	return defaultLogger
}

// WithComponent returns an entry tagged with a component name
func WithComponent(name string) *logrus.Entry {
	return defaultLogger.WithField("component", name)
}

// Package-level convenience functions

func Debug(format string, args ...interface{}) {
	defaultLogger.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	defaultLogger.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	defaultLogger.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	defaultLogger.Errorf(format, args...)
}
