// Package sim is the movement, collision, and hazard-resolution engine: a
// single body advanced by a fixed-timestep loop over a read-mostly level
// snapshot. Rendering, editing, and persistence live elsewhere; the engine
// only exposes state and transient events.
package sim

import (
	"time"

	"github.com/milk9111/spikevale/geom"
	"github.com/milk9111/spikevale/hook"
	"github.com/milk9111/spikevale/level"
)

// Simulation advances one body through one level. It owns no goroutines;
// the caller drives it with Advance or Tick. Multiple simulations can run
// side by side, there is no shared state between them.
type Simulation struct {
	Level  *level.Level
	Body   *Body
	Bus    *hook.Bus
	Events EventQueue

	// NoHazard skips the hazard-damage pass; used by non-lethal
	// preview modes.
	NoHazard bool

	clock          Clock
	started        time.Time
	ended          bool
	elapsed        time.Duration
	lastTeleport   time.Time
	jumpedThisTick bool
}

// New builds a simulation for the level with the body at the spawn point.
// It fails with level.ErrNoSpawn before the loop ever starts if the level
// has no spawn; that is the only structurally fatal condition.
func New(lvl *level.Level, bus *hook.Bus, now time.Time) (*Simulation, error) {
	if bus == nil {
		bus = hook.NewBus()
	}
	spawn, ok := lvl.Spawn()
	if !ok {
		return nil, level.ErrNoSpawn
	}

	s := &Simulation{
		Level:   lvl,
		Bus:     bus,
		started: now,
	}
	s.Body = NewBody(0, 0, lvl.Config.MaxJumps)
	x, y := s.placeAt(spawn.Rect)
	s.Body.X, s.Body.Y = x, y

	bus.Execute(hook.PlayerInit, s.context())
	return s, nil
}

// Ended reports whether the run reached the goal.
func (s *Simulation) Ended() bool {
	return s.ended
}

// Elapsed returns the run time recorded when the goal was reached.
func (s *Simulation) Elapsed() time.Duration {
	return s.elapsed
}

// Restart begins a fresh run: checkpoint state cleared, body back at
// spawn, clock restarted.
func (s *Simulation) Restart(now time.Time) {
	s.Level.ResetRuntimeState()
	spawn, _ := s.Level.Spawn()
	x, y := s.placeAt(spawn.Rect)
	s.Body.Reset(x, y)
	s.started = now
	s.ended = false
	s.elapsed = 0
	s.lastTeleport = time.Time{}
	s.clock = Clock{}
}

// Advance accumulates elapsed frame time and runs as many fixed ticks as
// it allows, returning the tick count.
func (s *Simulation) Advance(in Input, elapsed time.Duration, now time.Time) int {
	n := s.clock.Advance(elapsed)
	for i := 0; i < n; i++ {
		s.Tick(in, now)
	}
	return n
}

// Tick runs one fixed simulation step. A tick always runs to completion;
// there is no mid-tick cancellation.
func (s *Simulation) Tick(in Input, now time.Time) {
	if s.ended {
		return
	}
	b := s.Body

	// A death is resolved on the tick after it happened.
	if b.Dead {
		s.respawn()
		return
	}

	s.jumpedThisTick = false

	res := s.Bus.Execute(hook.PlayerUpdate, s.context())

	cfg := s.Level.Config
	if res.SkipPhysics {
		// A plugin owns movement this tick; collisions still resolve
		// against whatever velocity it supplied.
		if res.VX != nil {
			b.VX = *res.VX
		}
		if res.VY != nil {
			b.VY = *res.VY
		}
	} else {
		b.VX = in.MoveX * cfg.Speed
		if !b.Flying {
			b.VY += cfg.Gravity
		}
	}

	s.handleJump(in, now)
	s.resolveCollisions(now)

	if !s.NoHazard {
		s.applyHazardDamage()
	}
	if !b.Dead && b.Y > cfg.DieLine {
		s.kill()
	}
	if b.Dead {
		return
	}

	s.updateCheckpoints(in, now)
	if s.ended {
		return
	}
	s.applyTeleports(now)
}

// placeAt returns the body position that centers the ground box on the
// rectangle's center.
func (s *Simulation) placeAt(r geom.Rect) (float64, float64) {
	cx, cy := r.Center()
	box := s.Body.GroundBox
	return cx - box.X - box.W/2, cy - box.Y - box.H/2
}

func (s *Simulation) kill() {
	b := s.Body
	b.Dead = true
	cx, cy := b.GroundRect().Center()
	s.Events.Push(Event{Kind: EventDeath, X: cx, Y: cy})
}

func (s *Simulation) respawn() {
	target, _ := s.Level.Spawn()
	if cp, ok := s.Level.ActiveCheckpoint(); ok {
		target = cp
	}
	x, y := s.placeAt(target.Rect)
	s.Body.Reset(x, y)
	s.Bus.Execute(hook.PlayerRespawn, s.context())
	s.Events.Push(Event{Kind: EventRespawn, X: x, Y: y})
}

func (s *Simulation) context() *hook.Context {
	b := s.Body
	return &hook.Context{
		X:              b.X,
		Y:              b.Y,
		VX:             b.VX,
		VY:             b.VY,
		OnGround:       b.OnGround,
		JumpsRemaining: b.JumpsRemaining,
		CanJump:        b.CanJump,
	}
}
