package scheduler

import "time"

// Phase represents the current scheduler mode.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseCountingDown Phase = "counting_down"
	PhaseOnBreak      Phase = "on_break"
)

// EventType defines the type of scheduler event.
type EventType string

const (
	EventBreakStarted EventType = "break_started"
	EventBreakEnded   EventType = "break_ended"
	EventRescheduled  EventType = "rescheduled"
	EventPaused       EventType = "paused"
)

// Event represents a scheduler update for observers.
type Event struct {
	Type EventType
	// Duration is the break length for EventBreakStarted.
	Duration time.Duration
	// Deadline is the next phase-ending instant, zero when paused.
	Deadline time.Time
	At       time.Time
}

// Status is a point-in-time copy of the scheduler state.
type Status struct {
	Phase         Phase
	Paused        bool
	Deadline      time.Time
	Remaining     time.Duration
	BreakDuration time.Duration
}
