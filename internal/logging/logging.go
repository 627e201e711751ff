package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Logger is a deliberately small, framework-agnostic logging interface.
// Implementations live in this package so internal modules can swap loggers freely.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning.
	Warn(msg string, fields ...Field)

	// Error logs an error.
	Error(msg string, fields ...Field)

	// With returns a child logger with persistent fields.
	With(fields ...Field) Logger
}

// Field is a simple key/value pair for structured logging fields.
type Field struct {
	Key   string
	Value interface{}
}

// StdoutLogger is a tiny, structured logger used during development.
// It implements Logger and prints JSON lines to its writer (stdout by default).
type StdoutLogger struct {
	component string
	out       io.Writer
}

// NewStdoutLogger creates a new StdoutLogger. component is optional and
// will be included on every line and inherited by With().
func NewStdoutLogger(component string) *StdoutLogger {
	return &StdoutLogger{component: component, out: os.Stdout}
}

func (s *StdoutLogger) log(level string, msg string, fields ...Field) {
	type outEntry struct {
		Level     string         `json:"level"`
		Msg       string         `json:"msg"`
		Component string         `json:"component,omitempty"`
		Time      string         `json:"time"`
		Fields    map[string]any `json:"fields,omitempty"`
	}
	m := make(map[string]any)
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	entry := outEntry{
		Level:     level,
		Msg:       msg,
		Component: s.component,
		Time:      time.Now().UTC().Format(time.RFC3339),
		Fields:    m,
	}
	enc, err := json.Marshal(entry)
	if err != nil {
		// Fallback simple formatting if JSON marshal fails
		fmt.Fprintf(s.out, "%s %s %v\n", level, msg, m)
		return
	}
	fmt.Fprintln(s.out, string(enc))
}

func (s *StdoutLogger) Debug(msg string, fields ...Field) {
	s.log("debug", msg, fields...)
}

func (s *StdoutLogger) Info(msg string, fields ...Field) {
	s.log("info", msg, fields...)
}

func (s *StdoutLogger) Warn(msg string, fields ...Field) {
	s.log("warn", msg, fields...)
}

func (s *StdoutLogger) Error(msg string, fields ...Field) {
	s.log("error", msg, fields...)
}

func (s *StdoutLogger) With(fields ...Field) Logger {
	child := &StdoutLogger{component: s.component, out: s.out}
	// If fields include a component key, prefer that as the component name
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
			}
		}
	}
	return child
}

// NopLogger discards everything. Useful as a constructor default when the
// caller does not care about log output.
type NopLogger struct{}

func (NopLogger) Debug(msg string, fields ...Field) {}
func (NopLogger) Info(msg string, fields ...Field)  {}
func (NopLogger) Warn(msg string, fields ...Field)  {}
func (NopLogger) Error(msg string, fields ...Field) {}
func (n NopLogger) With(fields ...Field) Logger     { return n }
