//go:build linux

package platform

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	login1Path           = "/org/freedesktop/login1"
	login1Manager        = "org.freedesktop.login1.Manager"
	prepareForSleep      = "PrepareForSleep"
	prepareForSleepEvent = login1Manager + "." + prepareForSleep
)

// WatchSleep calls onWake each time logind reports the system resumed.
// The subscription lives until ctx is cancelled.
func WatchSleep(ctx context.Context, onWake func()) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(login1Path),
		dbus.WithMatchInterface(login1Manager),
		dbus.WithMatchMember(prepareForSleep),
	); err != nil {
		_ = conn.Close()
		return fmt.Errorf("subscribe %s: %w", prepareForSleepEvent, err)
	}

	signals := make(chan *dbus.Signal, 4)
	conn.Signal(signals)

	go func() {
		defer func() {
			conn.RemoveSignal(signals)
			_ = conn.Close()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case signal, ok := <-signals:
				if !ok {
					return
				}
				if isResumeSignal(signal) {
					onWake()
				}
			}
		}
	}()
	return nil
}

// PrepareForSleep carries true before suspend and false after resume.
func isResumeSignal(signal *dbus.Signal) bool {
	if signal == nil || signal.Name != prepareForSleepEvent || len(signal.Body) == 0 {
		return false
	}
	starting, ok := signal.Body[0].(bool)
	return ok && !starting
}
