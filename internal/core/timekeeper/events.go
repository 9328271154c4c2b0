package timekeeper

import "time"

// State represents the current TimeKeeper mode.
type State string

const (
	StateIdle  State = "idle"
	StateWork  State = "work"
	StateBreak State = "break"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventProgress      EventType = "progress"
	EventStopRequested EventType = "stop_requested"
	EventStopCancelled EventType = "stop_cancelled"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining time.Duration
	Progress  float64
	At        time.Time
}
