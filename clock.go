package particlefx

import "time"

const (
	defaultFrameRate = 60
	// deltas above this are clamped so a stalled frame does not teleport
	// particles through their bounds
	maxFrameDelta = 0.1
)

// FrameClock measures the time between ticks.
type FrameClock struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

func NewFrameClock(now time.Time) *FrameClock {
	return &FrameClock{Time: now}
}

// Tick records now and returns the clamped delta in seconds.
func (c *FrameClock) Tick(now time.Time) float32 {
	c.Dt = now.Sub(c.Time)
	c.Time = now
	c.Frame++

	delta := float32(c.Dt.Seconds())
	if delta < 0 {
		return 0
	}
	if delta > maxFrameDelta {
		return maxFrameDelta
	}
	return delta
}
