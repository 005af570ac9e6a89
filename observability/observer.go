// Package observability carries structured events out of total maps and
// their codecs. Producers build an Event and hand it to an Observer;
// SlogObserver renders events through log/slog, Recorder keeps them in
// memory, and MultiObserver fans them out.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level is the severity of an event.
type Level int

const (
	LevelVerbose Level = iota // routine mutations
	LevelInfo                 // bulk operations such as decode or clear
	LevelWarning              // invariant repairs
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "VERBOSE"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SlogLevel maps the level to the slog level used when logging it.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= LevelVerbose:
		return slog.LevelDebug
	case l == LevelInfo:
		return slog.LevelInfo
	case l == LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType names an event. Each producing package declares its own
// constants ("totalmap.insert", "totalmap.sweep").
type EventType string

// Event is a single observation. Source identifies the emitting instance
// and Data carries event-specific attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events. Implementations must not call back into the
// producer that emitted the event.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
