// Package logger provides a structured logging interface for the collector.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors on stderr
// - Optional JSON file output
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "biliscraper/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	    File:  "biliscraper.log",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	logger.Info("Run starting")
//	logger.WithField("author_id", "1234567").Info("Collecting author")
//	logger.WithError(err).Error("Failed to write outputs")
//
// Advanced Usage:
//
//	// Create a logger instance with fields
//	log := logger.GetLogger().
//	    WithField("component", "collector").
//	    WithField("author_id", "1234567")
//
//	// Use structured logging
//	log.InfoWithFields("Author finished", map[string]interface{}{
//	    "records":  12,
//	    "duration": time.Second * 40,
//	})
//
// The logger supports the following configuration options:
// - Level: Log level (debug, info, warn, error, fatal)
// - File: Path to log file (empty for console only)
package logger
