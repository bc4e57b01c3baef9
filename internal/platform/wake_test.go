package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGapDetectorIgnoresRegularTicks(t *testing.T) {
	var gaps []time.Duration
	detector := NewGapDetector(10*time.Second, func(gap time.Duration) {
		gaps = append(gaps, gap)
	})
	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	assert.False(t, detector.Observe(start))
	assert.False(t, detector.Observe(start.Add(10*time.Second)))
	assert.False(t, detector.Observe(start.Add(25*time.Second)))
	assert.Empty(t, gaps)
}

func TestGapDetectorReportsSuspension(t *testing.T) {
	var gaps []time.Duration
	detector := NewGapDetector(10*time.Second, func(gap time.Duration) {
		gaps = append(gaps, gap)
	})
	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	detector.Observe(start)
	assert.True(t, detector.Observe(start.Add(2*time.Hour)))
	assert.Equal(t, []time.Duration{2*time.Hour - 10*time.Second}, gaps)

	// the next regular tick is measured from the resumed time
	assert.False(t, detector.Observe(start.Add(2*time.Hour+10*time.Second)))
}

func TestGapDetectorReportsBackwardsStep(t *testing.T) {
	calls := 0
	detector := NewGapDetector(10*time.Second, func(time.Duration) { calls++ })
	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	detector.Observe(start)
	assert.True(t, detector.Observe(start.Add(-time.Minute)))
	assert.Equal(t, 1, calls)
}
