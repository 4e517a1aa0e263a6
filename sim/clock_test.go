package sim

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	var c Clock

	if n := c.Advance(TickInterval); n != 1 {
		t.Fatalf("one interval = %d ticks, want 1", n)
	}
	if n := c.Advance(TickInterval / 2); n != 0 {
		t.Fatalf("half interval = %d ticks, want 0", n)
	}
	// The remainder carries forward and completes here.
	if n := c.Advance(TickInterval / 2); n != 1 {
		t.Fatalf("second half interval = %d ticks, want 1", n)
	}
}

func TestClockMultipleTicksPerFrame(t *testing.T) {
	var c Clock
	if n := c.Advance(2*TickInterval + TickInterval/2); n != 2 {
		t.Fatalf("2.5 intervals = %d ticks, want 2", n)
	}
	if n := c.Advance(TickInterval / 2); n != 1 {
		t.Fatalf("carried remainder = %d ticks, want 1", n)
	}
}

func TestClockClampsLongFrames(t *testing.T) {
	var c Clock
	// A multi-second stall contributes at most the frame cap, so a hitch
	// doesn't snowball into a catch-up spiral.
	n := c.Advance(5 * time.Second)
	want := int(maxFrameTime / TickInterval)
	if n != want {
		t.Fatalf("stalled frame = %d ticks, want %d", n, want)
	}
}

func TestClockIgnoresNegativeElapsed(t *testing.T) {
	var c Clock
	if n := c.Advance(-time.Second); n != 0 {
		t.Fatalf("negative elapsed = %d ticks, want 0", n)
	}
	// The accumulator was not pushed negative.
	if n := c.Advance(TickInterval); n != 1 {
		t.Fatalf("next interval = %d ticks, want 1", n)
	}
}
