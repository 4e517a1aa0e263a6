package sim

import (
	"testing"
	"time"

	"github.com/milk9111/spikevale/geom"
	"github.com/milk9111/spikevale/level"
)

func checkpoint(x, y, w, h float64) *level.Object {
	return &level.Object{Rect: geom.Rect{X: x, Y: y, W: w, H: h}, Kind: level.KindCheckpoint}
}

// walkUntil drives the body horizontally until cond holds.
func walkUntil(t *testing.T, s *Simulation, moveX float64, cond func() bool) {
	t.Helper()
	for i := 0; i < 300; i++ {
		s.Tick(Input{MoveX: moveX}, t0)
		if cond() {
			return
		}
	}
	t.Fatalf("condition never reached: body at (%.1f, %.1f)", s.Body.X, s.Body.Y)
}

func TestCheckpointHandoff(t *testing.T) {
	first := checkpoint(0, 0, 100, 100)
	second := checkpoint(150, 0, 100, 100)
	lvl := testLevel(level.Defaults(),
		spawnAt(50, 50),
		ground(0, 100, 300, 20),
		first, second,
	)
	s := newTestSim(t, lvl)
	settle(t, s)

	if first.Checkpoint != level.CheckpointActive {
		t.Fatal("first checkpoint not active at spawn")
	}
	if kinds := drainKinds(s); kinds[EventCheckpoint] != 1 {
		t.Fatalf("checkpoint events = %d, want 1", kinds[EventCheckpoint])
	}

	// Reaching the second checkpoint demotes the first to touched.
	walkUntil(t, s, 1, func() bool { return second.Checkpoint == level.CheckpointActive })
	if first.Checkpoint != level.CheckpointTouched {
		t.Fatalf("first checkpoint state = %v, want touched", first.Checkpoint)
	}
	if kinds := drainKinds(s); kinds[EventCheckpoint] != 1 {
		t.Fatalf("checkpoint events = %d, want 1 for the new checkpoint", kinds[EventCheckpoint])
	}

	// Coming back reactivates the first, silently: only first-ever touches
	// emit an event.
	walkUntil(t, s, -1, func() bool { return first.Checkpoint == level.CheckpointActive })
	if second.Checkpoint != level.CheckpointTouched {
		t.Fatalf("second checkpoint state = %v, want touched", second.Checkpoint)
	}
	if kinds := drainKinds(s); kinds[EventCheckpoint] != 0 {
		t.Fatalf("checkpoint events = %d, want 0 on re-touch", kinds[EventCheckpoint])
	}
}

func TestGoalEndsRun(t *testing.T) {
	goal := &level.Object{Rect: geom.Rect{X: 150, Y: 0, W: 40, H: 100}, Kind: level.KindGoal}
	lvl := testLevel(level.Defaults(),
		spawnAt(50, 50),
		ground(0, 100, 300, 20),
		goal,
	)
	s := newTestSim(t, lvl)
	settle(t, s)

	finish := t0.Add(90 * time.Second)
	for i := 0; i < 300 && !s.Ended(); i++ {
		s.Tick(Input{MoveX: 1}, finish)
	}
	if !s.Ended() {
		t.Fatal("run never ended at the goal")
	}
	if s.Elapsed() != 90*time.Second {
		t.Fatalf("elapsed = %v, want 90s", s.Elapsed())
	}
	if kinds := drainKinds(s); kinds[EventGoal] != 1 {
		t.Fatalf("goal events = %d, want 1", kinds[EventGoal])
	}

	// An ended run is frozen.
	x := s.Body.X
	tickN(s, 10, Input{MoveX: 1}, finish)
	if s.Body.X != x {
		t.Fatal("body moved after the run ended")
	}
}

func TestQuickTurnRefillsJumps(t *testing.T) {
	cp := checkpoint(0, 0, 300, 120)
	lvl := testLevel(level.Defaults(),
		spawnAt(50, 50),
		ground(0, 100, 300, 20),
		cp,
	)
	s := newTestSim(t, lvl)
	settle(t, s)
	if cp.Checkpoint != level.CheckpointActive {
		t.Fatal("checkpoint not active")
	}
	b := s.Body

	b.JumpsRemaining = 0

	// Two rapid reversals inside the window refill the jumps.
	s.Tick(Input{MoveX: 1}, t0)
	s.Tick(Input{MoveX: -1}, t0.Add(100*time.Millisecond))
	s.Tick(Input{MoveX: 1}, t0.Add(200*time.Millisecond))

	if b.JumpsRemaining != b.MaxJumps {
		t.Fatalf("jumps remaining = %d, want refilled %d", b.JumpsRemaining, b.MaxJumps)
	}
}

func TestQuickTurnWindowExpires(t *testing.T) {
	cp := checkpoint(0, 0, 300, 120)
	lvl := testLevel(level.Defaults(),
		spawnAt(50, 50),
		ground(0, 100, 300, 20),
		cp,
	)
	s := newTestSim(t, lvl)
	settle(t, s)
	b := s.Body

	b.JumpsRemaining = 0

	// The second reversal lands outside the window: no refill, but it
	// starts a fresh window that the third completes.
	s.Tick(Input{MoveX: 1}, t0)
	s.Tick(Input{MoveX: -1}, t0.Add(100*time.Millisecond))
	s.Tick(Input{MoveX: 1}, t0.Add(700*time.Millisecond))
	if b.JumpsRemaining != 0 {
		t.Fatalf("jumps remaining = %d, want 0 after the window expired", b.JumpsRemaining)
	}

	s.Tick(Input{MoveX: -1}, t0.Add(800*time.Millisecond))
	if b.JumpsRemaining != b.MaxJumps {
		t.Fatalf("jumps remaining = %d, want refilled %d", b.JumpsRemaining, b.MaxJumps)
	}
}

func TestQuickTurnRequiresActiveCheckpoint(t *testing.T) {
	lvl := testLevel(level.Defaults(),
		spawnAt(50, 50),
		ground(0, 100, 300, 20),
	)
	s := newTestSim(t, lvl)
	settle(t, s)
	b := s.Body

	b.JumpsRemaining = 0

	s.Tick(Input{MoveX: 1}, t0)
	s.Tick(Input{MoveX: -1}, t0.Add(100*time.Millisecond))
	s.Tick(Input{MoveX: 1}, t0.Add(200*time.Millisecond))

	if b.JumpsRemaining != 0 {
		t.Fatal("quick turn refilled jumps outside a checkpoint")
	}
}
