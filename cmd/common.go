package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eyebreak/internal/config"
	"eyebreak/internal/core/scheduler"
	"eyebreak/internal/platform"
)

// session bundles what both front-ends need: the settings, the single
// scheduler instance, and the instance lock.
type session struct {
	settings  config.Settings
	scheduler *scheduler.Scheduler
	guard     *platform.InstanceGuard
}

func openSession(logger *log.Logger) (*session, error) {
	settings, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return nil, fmt.Errorf("single instance: %w", err)
	}

	keeper := scheduler.New(settings.SchedulerConfig(), scheduler.Options{Logger: logger})
	return &session{settings: settings, scheduler: keeper, guard: guard}, nil
}

func (s *session) Close() {
	s.scheduler.Stop()
	_ = s.guard.Release()
}

// watchWake forwards OS resume notifications and wall-clock gaps to the
// scheduler. Both sources may report the same resume; WakeSignal is idempotent.
func watchWake(ctx context.Context, s *session, logger *log.Logger) {
	if err := platform.WatchSleep(ctx, s.scheduler.WakeSignal); err != nil {
		if errors.Is(err, platform.ErrWakeUnsupported) {
			logger.Printf("wake: %v, relying on clock gap detection", err)
		} else {
			logger.Printf("wake: logind unavailable: %v", err)
		}
	}

	detector := platform.NewGapDetector(s.settings.WakeCheckInterval, func(gap time.Duration) {
		logger.Printf("wake: wall clock jumped by %s", gap.Round(time.Second))
		s.scheduler.WakeSignal()
	})
	go detector.Run(ctx)
}
