package sim

import "time"

const (
	// TickRate is the fixed simulation rate, independent of render FPS.
	TickRate = 60
	// TickInterval is the duration of one fixed step.
	TickInterval = time.Second / TickRate
	// maxFrameTime caps a single frame's contribution so a stalled
	// frame doesn't trigger a runaway catch-up spiral.
	maxFrameTime = 250 * time.Millisecond
)

// Clock is a fixed-timestep accumulator. Feed it real elapsed frame time;
// it answers how many fixed ticks to run, carrying the remainder forward.
type Clock struct {
	acc time.Duration
}

// Advance adds elapsed frame time and returns the number of fixed ticks
// now due.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > maxFrameTime {
		elapsed = maxFrameTime
	}
	c.acc += elapsed

	n := 0
	for c.acc >= TickInterval {
		c.acc -= TickInterval
		n++
	}
	return n
}
