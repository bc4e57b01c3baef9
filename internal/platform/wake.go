package platform

import (
	"context"
	"errors"
	"time"
)

// ErrWakeUnsupported indicates the OS offers no resume notification here.
var ErrWakeUnsupported = errors.New("wake notifications unsupported")

// GapDetector reports host suspension by watching the wall clock jump
// between ticks. Runtime tickers stop while the host sleeps, so a tick that
// arrives far later than its interval by the wall clock means a resume.
type GapDetector struct {
	interval time.Duration
	clock    func() time.Time
	onWake   func(gap time.Duration)
	last     time.Time
}

// NewGapDetector creates a detector polling every interval.
func NewGapDetector(interval time.Duration, onWake func(gap time.Duration)) *GapDetector {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &GapDetector{
		interval: interval,
		clock:    time.Now,
		onWake:   onWake,
	}
}

// Run polls until ctx is cancelled.
func (detector *GapDetector) Run(ctx context.Context) {
	ticker := time.NewTicker(detector.interval)
	defer ticker.Stop()

	detector.Observe(detector.clock())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			detector.Observe(detector.clock())
		}
	}
}

// Observe records a tick and reports whether it revealed a suspension gap.
// A wall clock stepping backwards also counts, since deadlines need rechecking.
func (detector *GapDetector) Observe(now time.Time) bool {
	now = now.Round(0)
	if detector.last.IsZero() {
		detector.last = now
		return false
	}
	elapsed := now.Sub(detector.last)
	detector.last = now
	if elapsed >= 0 && elapsed <= 2*detector.interval {
		return false
	}
	if detector.onWake != nil {
		detector.onWake(elapsed - detector.interval)
	}
	return true
}
