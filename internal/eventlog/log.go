// Package eventlog keeps an append-only, capped ring of engine events for
// audit and timelapse reconstruction. It is exported and imported alongside
// the snapshot.
package eventlog

import (
	"github.com/google/uuid"

	"github.com/mindmirror/mindmirror/internal/domain"
)

// MaxEvents is the ring capacity; the oldest entries are dropped first.
const MaxEvents = 10000

type Log struct {
	events []domain.Event
	max    int
}

func New() *Log {
	return &Log{max: MaxEvents}
}

// Append records an event at the given timestamp (epoch-ms), evicting the
// oldest entries once the cap is exceeded.
func (l *Log) Append(t domain.EventType, data map[string]any, timestamp int64) {
	l.events = append(l.events, domain.Event{
		ID:        uuid.New().String(),
		Timestamp: timestamp,
		Type:      t,
		Data:      data,
	})
	if len(l.events) > l.max {
		l.events = l.events[len(l.events)-l.max:]
	}
}

// Range returns the events with start <= timestamp <= end, in append order.
func (l *Log) Range(start, end int64) []domain.Event {
	var out []domain.Event
	for _, e := range l.events {
		if e.Timestamp >= start && e.Timestamp <= end {
			out = append(out, e)
		}
	}
	return out
}

func (l *Log) Len() int {
	return len(l.events)
}

func (l *Log) Clear() {
	l.events = nil
}

// Export copies out all events.
func (l *Log) Export() []domain.Event {
	out := make([]domain.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Import replaces the log's contents, re-applying the cap.
func (l *Log) Import(events []domain.Event) {
	l.events = make([]domain.Event, len(events))
	copy(l.events, events)
	if len(l.events) > l.max {
		l.events = l.events[len(l.events)-l.max:]
	}
}

// TimelapseEvent is an event replayed on a compressed clock.
type TimelapseEvent struct {
	domain.Event
	TimelapseTime float64 // ms since timelapse start, after compression
}

// Timelapse is a replayable compressed window of the log.
type Timelapse struct {
	Events          []TimelapseEvent
	Duration        float64 // ms, after compression
	SpeedMultiplier float64
}

// BuildTimelapse compresses the [start, end] window by the given speed
// multiplier (a multiplier of 10 replays ten minutes in one).
func (l *Log) BuildTimelapse(start, end int64, speedMultiplier float64) Timelapse {
	if speedMultiplier <= 0 {
		speedMultiplier = 10
	}
	window := l.Range(start, end)
	events := make([]TimelapseEvent, 0, len(window))
	for _, e := range window {
		events = append(events, TimelapseEvent{
			Event:         e,
			TimelapseTime: float64(e.Timestamp-start) / speedMultiplier,
		})
	}
	return Timelapse{
		Events:          events,
		Duration:        float64(end-start) / speedMultiplier,
		SpeedMultiplier: speedMultiplier,
	}
}
