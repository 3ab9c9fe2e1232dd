// Package observability carries events out of the storage engine. Stores
// never log directly: they emit Events to an Observer, and the Observer
// decides where the events go (slog, zap, a test recorder, nowhere).
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level is event severity. Values follow the OpenTelemetry SeverityNumber
// ranges so events can be forwarded without translation.
type Level int

const (
	LevelVerbose Level = 5  // per-field traffic, cache hits and misses
	LevelInfo    Level = 9  // instance lifecycle
	LevelWarning Level = 13 // skipped work, degraded reads
	LevelError   Level = 17 // failed writes and deletes
)

// String returns the severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel maps l to the slog level used on emission.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType names an event, dot-separated by subsystem
// (e.g. "store.field.store").
type EventType string

// Event is one observable occurrence. Source identifies the emitter, usually
// the store handle; Data holds flat attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// NewEvent stamps an Event with the current time.
func NewEvent(typ EventType, level Level, source string, data map[string]any) Event {
	return Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	}
}

// Observer receives events. Implementations must be safe for concurrent use.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
