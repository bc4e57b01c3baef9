package scheduler

import (
	"math"
	"sync"
	"time"

	"eyebreak/internal/core/model"
)

// fireTolerance is how early, by the wall clock, a countdown timer may fire
// and still start the break. Anything earlier is re-armed for the remainder.
const fireTolerance = time.Second

// maxDelay caps how far out a break can be pushed so the deadline stays
// representable next to any wall-clock instant.
const maxDelay = 100 * 365 * 24 * time.Hour

// Options contains runtime collaborators for the Scheduler.
type Options struct {
	Clock Clock
	// AfterFunc must never invoke fn synchronously.
	AfterFunc AfterFunc
	Logger    Logger
}

// Scheduler is the single authority for when the next break happens.
// All state transitions are serialized behind mu; every armed timer is
// tagged with the generation it was armed under so stale fires are no-ops.
type Scheduler struct {
	mu         sync.Mutex
	config     model.SchedulerConfig
	clock      Clock
	afterFunc  AfterFunc
	logger     Logger
	phase      Phase
	paused     bool
	nextBreak  time.Time
	breakEnd   time.Time
	timer      Timer
	generation uint64
	events     []chan Event
	stopped    bool
}

// New creates an idle Scheduler. Call Start to begin the first countdown.
func New(config model.SchedulerConfig, options Options) *Scheduler {
	if options.Clock == nil {
		options.Clock = time.Now
	}
	if options.AfterFunc == nil {
		options.AfterFunc = SystemAfterFunc
	}
	if options.Logger == nil {
		options.Logger = discardLogger{}
	}

	return &Scheduler{
		config:    config.Normalize(),
		clock:     options.Clock,
		afterFunc: options.AfterFunc,
		logger:    options.Logger,
		phase:     PhaseIdle,
	}
}

// Subscribe registers a new observer channel.
// Sends never block: a full channel misses the event.
func (scheduler *Scheduler) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.stopped {
		close(ch)
		return ch
	}
	scheduler.events = append(scheduler.events, ch)
	return ch
}

// Start begins the countdown from Idle, or resumes after PauseUntilResume.
func (scheduler *Scheduler) Start() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.stopped {
		return
	}
	if scheduler.phase == PhaseIdle || scheduler.phase == PhaseCountingDown && scheduler.paused {
		scheduler.rescheduleLocked(scheduler.now(), scheduler.config.Interval)
	}
}

// Stop cancels the armed timer and closes observers.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	if scheduler.stopped {
		scheduler.mu.Unlock()
		return
	}
	scheduler.stopped = true
	scheduler.disarmLocked()
	scheduler.phase = PhaseIdle
	scheduler.paused = false
	scheduler.nextBreak = time.Time{}
	scheduler.breakEnd = time.Time{}
	events := scheduler.events
	scheduler.events = nil
	scheduler.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Reschedule sets the next break to now+delay, clamping negative delays to zero.
// Ignored while on break.
func (scheduler *Scheduler) Reschedule(delay time.Duration) {
	scheduler.withCountdown(func(now time.Time) {
		scheduler.rescheduleLocked(now, delay)
	})
}

// Extend pushes the current deadline back by the given amount.
func (scheduler *Scheduler) Extend(by time.Duration) {
	scheduler.withCountdown(func(now time.Time) {
		if scheduler.phase != PhaseCountingDown || scheduler.paused {
			return
		}
		remaining := scheduler.nextBreak.Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		scheduler.rescheduleLocked(now, addSaturated(remaining, by))
	})
}

// PauseFor postpones the next break by exactly duration from now.
func (scheduler *Scheduler) PauseFor(duration time.Duration) {
	scheduler.withCountdown(func(now time.Time) {
		scheduler.logger.Printf("scheduler: paused for %s", duration)
		scheduler.rescheduleLocked(now, duration)
	})
}

// PauseUntilResume disarms the countdown until Start is called.
func (scheduler *Scheduler) PauseUntilResume() {
	scheduler.withCountdown(func(now time.Time) {
		if scheduler.phase == PhaseCountingDown && scheduler.paused {
			return
		}
		scheduler.disarmLocked()
		scheduler.phase = PhaseCountingDown
		scheduler.paused = true
		scheduler.nextBreak = time.Time{}
		scheduler.logger.Printf("scheduler: paused until resume")
		scheduler.emitLocked(Event{Type: EventPaused, At: now})
	})
}

// SkipNextBreak restarts the countdown from the full interval.
func (scheduler *Scheduler) SkipNextBreak() {
	scheduler.withCountdown(func(now time.Time) {
		scheduler.rescheduleLocked(now, scheduler.config.Interval)
	})
}

// TakeBreakNow starts a full break immediately, discarding the countdown.
func (scheduler *Scheduler) TakeBreakNow() {
	scheduler.withCountdown(func(now time.Time) {
		scheduler.enterBreakLocked(now)
	})
}

// EndBreakNow ends the running break and restarts the countdown.
// Ignored when not on break.
func (scheduler *Scheduler) EndBreakNow() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.stopped || scheduler.phase != PhaseOnBreak {
		return
	}
	scheduler.endBreakLocked(scheduler.now())
}

// WakeSignal re-arms the pending timer from the recorded wall-clock deadline
// after the host was suspended. Deadlines that passed during suspension are
// acted on immediately. Calling it repeatedly is harmless.
func (scheduler *Scheduler) WakeSignal() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.stopped {
		return
	}

	now := scheduler.now()
	switch scheduler.phase {
	case PhaseIdle:
		scheduler.rescheduleLocked(now, scheduler.config.Interval)
	case PhaseCountingDown:
		if scheduler.paused {
			return
		}
		remaining := scheduler.nextBreak.Sub(now)
		if remaining <= 0 {
			scheduler.logger.Printf("scheduler: wake after missed break (%s late)", -remaining)
			scheduler.enterBreakLocked(now)
			return
		}
		scheduler.armLocked(remaining, scheduler.onCountdownTimer)
	case PhaseOnBreak:
		remaining := scheduler.breakEnd.Sub(now)
		if remaining <= 0 {
			scheduler.logger.Printf("scheduler: wake after break elapsed")
			scheduler.endBreakLocked(now)
			return
		}
		scheduler.armLocked(remaining, scheduler.onBreakTimer)
	}
}

// TimeRemaining returns the time until the current deadline, never negative.
// It is zero while idle or paused until resume.
func (scheduler *Scheduler) TimeRemaining() time.Duration {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.remainingLocked(scheduler.now())
}

// Status returns a snapshot of the scheduler state.
func (scheduler *Scheduler) Status() Status {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	status := Status{
		Phase:         scheduler.phase,
		Paused:        scheduler.paused,
		Remaining:     scheduler.remainingLocked(scheduler.now()),
		BreakDuration: scheduler.config.BreakDuration,
	}
	switch scheduler.phase {
	case PhaseCountingDown:
		status.Deadline = scheduler.nextBreak
	case PhaseOnBreak:
		status.Deadline = scheduler.breakEnd
	}
	return status
}

// withCountdown runs fn for commands that only apply outside of a break.
func (scheduler *Scheduler) withCountdown(fn func(now time.Time)) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.stopped || scheduler.phase == PhaseOnBreak {
		return
	}
	fn(scheduler.now())
}

// now strips the monotonic reading: deadlines must be compared on the wall
// clock, which keeps advancing while the host is suspended.
func (scheduler *Scheduler) now() time.Time {
	return scheduler.clock().Round(0)
}

func (scheduler *Scheduler) remainingLocked(now time.Time) time.Duration {
	var remaining time.Duration
	switch scheduler.phase {
	case PhaseCountingDown:
		if scheduler.paused {
			return 0
		}
		remaining = scheduler.nextBreak.Sub(now)
	case PhaseOnBreak:
		remaining = scheduler.breakEnd.Sub(now)
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (scheduler *Scheduler) rescheduleLocked(now time.Time, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	if delay > maxDelay {
		delay = maxDelay
	}
	scheduler.phase = PhaseCountingDown
	scheduler.paused = false
	scheduler.breakEnd = time.Time{}
	scheduler.nextBreak = now.Add(delay)
	scheduler.armLocked(delay, scheduler.onCountdownTimer)

	scheduler.logger.Printf("scheduler: next break in %s", delay)
	scheduler.emitLocked(Event{
		Type:     EventRescheduled,
		Deadline: scheduler.nextBreak,
		At:       now,
	})
}

func addSaturated(a, b time.Duration) time.Duration {
	sum := a + b
	if b > 0 && sum < a {
		return math.MaxInt64
	}
	if b < 0 && sum > a {
		return math.MinInt64
	}
	return sum
}

func (scheduler *Scheduler) enterBreakLocked(now time.Time) {
	scheduler.phase = PhaseOnBreak
	scheduler.paused = false
	scheduler.nextBreak = time.Time{}
	scheduler.breakEnd = now.Add(scheduler.config.BreakDuration)
	scheduler.armLocked(scheduler.config.BreakDuration, scheduler.onBreakTimer)

	scheduler.logger.Printf("scheduler: break started for %s", scheduler.config.BreakDuration)
	scheduler.emitLocked(Event{
		Type:     EventBreakStarted,
		Duration: scheduler.config.BreakDuration,
		Deadline: scheduler.breakEnd,
		At:       now,
	})
}

func (scheduler *Scheduler) endBreakLocked(now time.Time) {
	scheduler.disarmLocked()
	scheduler.phase = PhaseCountingDown
	scheduler.breakEnd = time.Time{}

	scheduler.logger.Printf("scheduler: break ended")
	scheduler.emitLocked(Event{Type: EventBreakEnded, At: now})
	scheduler.rescheduleLocked(now, scheduler.config.Interval)
}

// armLocked replaces the pending timer. The previous one is stopped and its
// generation retired in the same critical section.
func (scheduler *Scheduler) armLocked(delay time.Duration, fire func(generation uint64)) {
	scheduler.disarmLocked()
	generation := scheduler.generation
	scheduler.timer = scheduler.afterFunc(delay, func() {
		fire(generation)
	})
}

func (scheduler *Scheduler) disarmLocked() {
	if scheduler.timer != nil {
		scheduler.timer.Stop()
		scheduler.timer = nil
	}
	scheduler.generation++
}

func (scheduler *Scheduler) onCountdownTimer(generation uint64) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if !scheduler.currentLocked(generation, PhaseCountingDown) || scheduler.paused {
		return
	}
	scheduler.timer = nil

	now := scheduler.now()
	if remaining := scheduler.nextBreak.Sub(now); remaining > fireTolerance {
		scheduler.logger.Printf("scheduler: countdown fired %s early, re-arming", remaining)
		scheduler.armLocked(remaining, scheduler.onCountdownTimer)
		return
	}
	scheduler.enterBreakLocked(now)
}

func (scheduler *Scheduler) onBreakTimer(generation uint64) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if !scheduler.currentLocked(generation, PhaseOnBreak) {
		return
	}
	scheduler.timer = nil

	now := scheduler.now()
	if remaining := scheduler.breakEnd.Sub(now); remaining > fireTolerance {
		scheduler.armLocked(remaining, scheduler.onBreakTimer)
		return
	}
	scheduler.endBreakLocked(now)
}

func (scheduler *Scheduler) currentLocked(generation uint64, phase Phase) bool {
	if scheduler.stopped || generation != scheduler.generation || scheduler.phase != phase {
		scheduler.logger.Printf("scheduler: discarded stale timer (generation %d, current %d)", generation, scheduler.generation)
		return false
	}
	return true
}

func (scheduler *Scheduler) emitLocked(event Event) {
	for _, ch := range scheduler.events {
		select {
		case ch <- event:
		default:
		}
	}
}
