package scheduler

import "time"

type (
	// Clock provides the current wall-clock time.
	Clock func() time.Time

	// Timer is a cancellable one-shot wake-up.
	Timer interface {
		Stop() bool
	}

	// AfterFunc arms a Timer that calls fn once delay has elapsed.
	AfterFunc func(delay time.Duration, fn func()) Timer
)

// SystemAfterFunc arms a runtime timer.
func SystemAfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

// Logger is the minimal logging interface used by the scheduler.
type Logger interface {
	Printf(format string, args ...any)
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}
