package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/spikevale/geom"
	"github.com/milk9111/spikevale/hook"
	"github.com/milk9111/spikevale/level"
)

var t0 = time.Unix(1700000000, 0)

func ground(x, y, w, h float64) *level.Object {
	return &level.Object{Rect: geom.Rect{X: x, Y: y, W: w, H: h}, Kind: level.KindGround, Solid: true}
}

// spawnAt builds a spawn object whose rect is centered on (cx, cy), so the
// body starts with its ground box centered there.
func spawnAt(cx, cy float64) *level.Object {
	return &level.Object{Rect: geom.Rect{X: cx - 10, Y: cy - 10, W: 20, H: 20}, Kind: level.KindSpawn}
}

func hazard(x, y, w, h float64, o level.Orientation) *level.Object {
	return &level.Object{Rect: geom.Rect{X: x, Y: y, W: w, H: h}, Kind: level.KindHazard, Orientation: o}
}

func testLevel(cfg level.Config, objects ...*level.Object) *level.Level {
	return &level.Level{Objects: objects, Config: cfg}
}

func newTestSim(t *testing.T, lvl *level.Level) *Simulation {
	t.Helper()
	s, err := New(lvl, hook.NewBus(), t0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func tickN(s *Simulation, n int, in Input, now time.Time) {
	for i := 0; i < n; i++ {
		s.Tick(in, now)
	}
}

// settle ticks with no input until the body is grounded.
func settle(t *testing.T, s *Simulation) {
	t.Helper()
	for i := 0; i < 120; i++ {
		s.Tick(Input{}, t0)
		if s.Body.OnGround {
			return
		}
	}
	t.Fatalf("body never landed: pos (%.1f, %.1f)", s.Body.X, s.Body.Y)
}

func drainKinds(s *Simulation) map[EventKind]int {
	kinds := map[EventKind]int{}
	for _, evt := range s.Events.Drain() {
		kinds[evt.Kind]++
	}
	return kinds
}

func TestNewRequiresSpawn(t *testing.T) {
	lvl := testLevel(level.Defaults(), ground(0, 100, 100, 20))
	if _, err := New(lvl, hook.NewBus(), t0); !errors.Is(err, level.ErrNoSpawn) {
		t.Fatalf("err = %v, want ErrNoSpawn", err)
	}
}

func TestNewPlacesBodyAtSpawn(t *testing.T) {
	bus := hook.NewBus()
	var initCount int
	bus.On(hook.PlayerInit, func(ctx *hook.Context) hook.Result {
		initCount++
		return hook.Result{}
	})

	lvl := testLevel(level.Defaults(), spawnAt(50, 50))
	s, err := New(lvl, bus, t0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b := s.Body
	if b.X != 38 || b.Y != 34 {
		t.Fatalf("body at (%v, %v), want (38, 34)", b.X, b.Y)
	}
	if initCount != 1 {
		t.Fatalf("player.init dispatched %d times, want 1", initCount)
	}
	if b.MaxJumps != 1 || b.JumpsRemaining != 1 {
		t.Fatalf("jumps = %d/%d, want 1/1", b.JumpsRemaining, b.MaxJumps)
	}
}

func TestAdvanceRunsFixedTicks(t *testing.T) {
	lvl := testLevel(level.Defaults(), spawnAt(50, 50))
	s := newTestSim(t, lvl)

	if n := s.Advance(Input{}, 3*TickInterval, t0); n != 3 {
		t.Fatalf("Advance = %d ticks, want 3", n)
	}
	// Three gravity steps were integrated.
	var wantVY float64
	for i := 0; i < 3; i++ {
		wantVY += lvl.Config.Gravity
	}
	if s.Body.VY != wantVY {
		t.Fatalf("VY = %v, want %v", s.Body.VY, wantVY)
	}

	// A half interval carries over and completes on the next call.
	if n := s.Advance(Input{}, TickInterval/2, t0); n != 0 {
		t.Fatalf("Advance = %d ticks, want 0", n)
	}
	if n := s.Advance(Input{}, TickInterval/2, t0); n != 1 {
		t.Fatalf("Advance = %d ticks, want 1", n)
	}
}

func TestRestartClearsRunState(t *testing.T) {
	cp := &level.Object{Rect: geom.Rect{X: 30, Y: 60, W: 40, H: 40}, Kind: level.KindCheckpoint}
	lvl := testLevel(level.Defaults(), spawnAt(50, 50), ground(0, 100, 100, 20), cp)
	s := newTestSim(t, lvl)

	settle(t, s)
	if cp.Checkpoint != level.CheckpointActive {
		t.Fatal("checkpoint not activated")
	}

	s.Body.VX = 3
	s.Restart(t0.Add(time.Minute))

	if cp.Checkpoint != level.CheckpointDefault {
		t.Fatal("checkpoint state survived restart")
	}
	b := s.Body
	if b.X != 38 || b.Y != 34 || b.VX != 0 || b.VY != 0 {
		t.Fatalf("body not reset: pos (%v, %v), vel (%v, %v)", b.X, b.Y, b.VX, b.VY)
	}
	if s.Ended() || s.Elapsed() != 0 {
		t.Fatal("run state survived restart")
	}
}

func TestPlayerUpdateSkipPhysics(t *testing.T) {
	lvl := testLevel(level.Defaults(), spawnAt(50, 50))
	bus := hook.NewBus()
	vx, vy := 2.0, 0.0
	bus.On(hook.PlayerUpdate, func(ctx *hook.Context) hook.Result {
		return hook.Result{SkipPhysics: true, VX: &vx, VY: &vy}
	})
	s, err := New(lvl, bus, t0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	startX, startY := s.Body.X, s.Body.Y
	tickN(s, 5, Input{}, t0)

	if s.Body.X != startX+10 {
		t.Fatalf("X = %v, want %v", s.Body.X, startX+10)
	}
	// Gravity is suspended while a handler owns movement.
	if s.Body.Y != startY {
		t.Fatalf("Y = %v, want unchanged %v", s.Body.Y, startY)
	}
}

func TestFlyingBodySkipsGravity(t *testing.T) {
	lvl := testLevel(level.Defaults(), spawnAt(50, 50))
	s := newTestSim(t, lvl)
	s.Body.Flying = true

	startY := s.Body.Y
	tickN(s, 10, Input{}, t0)
	if s.Body.Y != startY || s.Body.VY != 0 {
		t.Fatalf("flying body moved: Y %v, VY %v", s.Body.Y, s.Body.VY)
	}
}
