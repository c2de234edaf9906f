package logger

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// TestLogger captures log messages for assertions in tests
type TestLogger struct {
	mu       sync.Mutex
	messages []LogMessage
	buffer   *bytes.Buffer
	zerolog  *zerolog.Logger
}

// LogMessage represents a captured log message
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
	Error   error
}

// NewTestLogger creates a new test logger
func NewTestLogger() *TestLogger {
	nop := zerolog.Nop()
	return &TestLogger{
		messages: make([]LogMessage, 0),
		buffer:   &bytes.Buffer{},
		zerolog:  &nop,
	}
}

func (l *TestLogger) record(level, msg string, fields map[string]interface{}, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, LogMessage{
		Level:   level,
		Message: msg,
		Fields:  fields,
		Error:   err,
	})

	fmt.Fprintf(l.buffer, "[%s] %s", level, msg)
	if len(fields) > 0 {
		fmt.Fprintf(l.buffer, " fields=%v", fields)
	}
	if err != nil {
		fmt.Fprintf(l.buffer, " error=%v", err)
	}
	fmt.Fprintln(l.buffer)
}

func (l *TestLogger) Debug(msg string) { l.record("DEBUG", msg, nil, nil) }
func (l *TestLogger) Info(msg string)  { l.record("INFO", msg, nil, nil) }
func (l *TestLogger) Warn(msg string)  { l.record("WARN", msg, nil, nil) }
func (l *TestLogger) Error(msg string) { l.record("ERROR", msg, nil, nil) }
func (l *TestLogger) Fatal(msg string) { l.record("FATAL", msg, nil, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.record("DEBUG", msg, fields, nil)
}
func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.record("INFO", msg, fields, nil)
}
func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.record("WARN", msg, fields, nil)
}
func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.record("ERROR", msg, fields, nil)
}
func (l *TestLogger) FatalWithFields(msg string, fields map[string]interface{}) {
	l.record("FATAL", msg, fields, nil)
}

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return &testLoggerContext{parent: l, fields: map[string]interface{}{key: value}}
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	return &testLoggerContext{parent: l, fields: fields}
}

func (l *TestLogger) WithError(err error) Logger {
	return &testLoggerContext{parent: l, err: err}
}

func (l *TestLogger) WithContext(ctx context.Context) Logger { return l }

func (l *TestLogger) GetZerolog() *zerolog.Logger { return l.zerolog }

// GetMessages returns a copy of all captured log messages
func (l *TestLogger) GetMessages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	messages := make([]LogMessage, len(l.messages))
	copy(messages, l.messages)
	return messages
}

// GetMessagesByLevel returns all messages of a specific level
func (l *TestLogger) GetMessagesByLevel(level string) []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	var filtered []LogMessage
	for _, msg := range l.messages {
		if msg.Level == level {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// HasMessage checks if a message with the given text was logged
func (l *TestLogger) HasMessage(text string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, msg := range l.messages {
		if msg.Message == text {
			return true
		}
	}
	return false
}

// HasError checks if an error was logged
func (l *TestLogger) HasError() bool {
	return len(l.GetMessagesByLevel("ERROR")) > 0
}

// Clear clears all captured messages
func (l *TestLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = l.messages[:0]
	l.buffer.Reset()
}

// String returns all log messages as a string
func (l *TestLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.buffer.String()
}

// testLoggerContext carries accumulated fields and an error back to the
// parent recorder
type testLoggerContext struct {
	parent *TestLogger
	fields map[string]interface{}
	err    error
}

func (c *testLoggerContext) merged(extra map[string]interface{}) map[string]interface{} {
	if len(c.fields) == 0 && len(extra) == 0 {
		return nil
	}
	merged := make(map[string]interface{}, len(c.fields)+len(extra))
	for k, v := range c.fields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

func (c *testLoggerContext) Debug(msg string) { c.parent.record("DEBUG", msg, c.merged(nil), c.err) }
func (c *testLoggerContext) Info(msg string)  { c.parent.record("INFO", msg, c.merged(nil), c.err) }
func (c *testLoggerContext) Warn(msg string)  { c.parent.record("WARN", msg, c.merged(nil), c.err) }
func (c *testLoggerContext) Error(msg string) { c.parent.record("ERROR", msg, c.merged(nil), c.err) }
func (c *testLoggerContext) Fatal(msg string) { c.parent.record("FATAL", msg, c.merged(nil), c.err) }

func (c *testLoggerContext) DebugWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("DEBUG", msg, c.merged(fields), c.err)
}
func (c *testLoggerContext) InfoWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("INFO", msg, c.merged(fields), c.err)
}
func (c *testLoggerContext) WarnWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("WARN", msg, c.merged(fields), c.err)
}
func (c *testLoggerContext) ErrorWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("ERROR", msg, c.merged(fields), c.err)
}
func (c *testLoggerContext) FatalWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("FATAL", msg, c.merged(fields), c.err)
}

func (c *testLoggerContext) WithField(key string, value interface{}) Logger {
	return &testLoggerContext{
		parent: c.parent,
		fields: c.merged(map[string]interface{}{key: value}),
		err:    c.err,
	}
}

func (c *testLoggerContext) WithFields(fields map[string]interface{}) Logger {
	return &testLoggerContext{parent: c.parent, fields: c.merged(fields), err: c.err}
}

func (c *testLoggerContext) WithError(err error) Logger {
	return &testLoggerContext{parent: c.parent, fields: c.fields, err: err}
}

func (c *testLoggerContext) WithContext(ctx context.Context) Logger { return c }

func (c *testLoggerContext) GetZerolog() *zerolog.Logger { return c.parent.zerolog }
