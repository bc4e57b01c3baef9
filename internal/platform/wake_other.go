//go:build !linux

package platform

import "context"

// WatchSleep is only implemented on Linux; the GapDetector covers the rest.
func WatchSleep(context.Context, func()) error {
	return ErrWakeUnsupported
}
