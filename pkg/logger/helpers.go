package logger

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"biliscraper/pkg/errors"
)

// LoggerWithCaller adds caller information to the logger
func LoggerWithCaller(skip int) Logger {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return GetLogger()
	}

	// Extract just the filename without the full path
	parts := strings.Split(file, "/")
	filename := parts[len(parts)-1]

	return GetLogger().WithField("caller", fmt.Sprintf("%s:%d", filename, line))
}

// LogNavigation logs a page navigation with its outcome
func LogNavigation(url string, duration time.Duration, err error) {
	fields := map[string]interface{}{
		"url":         url,
		"duration_ms": float64(duration.Milliseconds()),
	}

	if err != nil {
		GetLogger().WithFields(fields).WithError(err).Error("Navigation failed")
		return
	}
	GetLogger().DebugWithFields("Navigation completed", fields)
}

// LogExtractionStop logs why extraction ended for an author. A missing
// element is the normal end of the listing and stays at debug level;
// anything else is worth a warning.
func LogExtractionStop(authorID string, rank int, err error) {
	fields := map[string]interface{}{
		"author_id": authorID,
		"rank":      rank,
	}

	if errors.IsNotFound(err) {
		GetLogger().DebugWithFields("End of listing reached", fields)
		return
	}
	GetLogger().WithFields(fields).WithError(err).Warn("Extraction stopped early")
}

// LogRunSummary logs the end-of-run totals
func LogRunSummary(authors, records int, duration time.Duration) {
	GetLogger().InfoWithFields("Run completed", map[string]interface{}{
		"authors":  authors,
		"records":  records,
		"duration": duration,
	})
}

// LogComponentStart logs when a component starts
func LogComponentStart(component string, config map[string]interface{}) {
	logger := GetLogger().WithField("component", component)

	if len(config) > 0 {
		logger = logger.WithFields(config)
	}

	logger.Info("Component started")
}

// LogComponentStop logs when a component stops
func LogComponentStop(component string, reason string) {
	GetLogger().WithFields(map[string]interface{}{
		"component": component,
		"reason":    reason,
	}).Info("Component stopped")
}

// MustGetLogger gets the logger or panics if it fails
func MustGetLogger() Logger {
	logger := GetLogger()
	if logger == nil {
		panic("logger not initialized")
	}
	return logger
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return &nopLogger{}
}

// nopLogger is a logger that does nothing (useful for testing)
type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) Fatal(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) WithContext(ctx context.Context) Logger                    { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) FatalWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
