// Package testutil holds shared test doubles.
package testutil

import (
	"sync"

	"github.com/avel9n/privacylens/internal/logging"
)

// Entry is one captured log call.
type Entry struct {
	Level   string
	Message string
	Fields  []logging.Field
}

type entrySink struct {
	mu      sync.Mutex
	entries []Entry
}

// DummyLogger records every log call for assertions. Loggers derived via With
// share the same sink.
type DummyLogger struct {
	sink *entrySink
	with []logging.Field
}

// NewDummyLogger returns an empty recording logger.
func NewDummyLogger() *DummyLogger {
	return &DummyLogger{sink: &entrySink{}}
}

func (d *DummyLogger) log(level, msg string, fields []logging.Field) {
	all := append(append([]logging.Field{}, d.with...), fields...)
	d.sink.mu.Lock()
	defer d.sink.mu.Unlock()
	d.sink.entries = append(d.sink.entries, Entry{Level: level, Message: msg, Fields: all})
}

func (d *DummyLogger) Debug(msg string, fields ...logging.Field) { d.log("debug", msg, fields) }
func (d *DummyLogger) Info(msg string, fields ...logging.Field)  { d.log("info", msg, fields) }
func (d *DummyLogger) Warn(msg string, fields ...logging.Field)  { d.log("warn", msg, fields) }
func (d *DummyLogger) Error(msg string, fields ...logging.Field) { d.log("error", msg, fields) }

// With returns a logger writing to the same sink with fields attached.
func (d *DummyLogger) With(fields ...logging.Field) logging.Logger {
	return &DummyLogger{
		sink: d.sink,
		with: append(append([]logging.Field{}, d.with...), fields...),
	}
}

// Entries returns a copy of everything logged so far.
func (d *DummyLogger) Entries() []Entry {
	d.sink.mu.Lock()
	defer d.sink.mu.Unlock()
	return append([]Entry{}, d.sink.entries...)
}
