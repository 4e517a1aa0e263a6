package sim

import (
	"time"

	"github.com/milk9111/spikevale/hook"
)

const (
	// coyoteGrace is how long after walking off a ledge a jump is still
	// honored as if grounded.
	coyoteGrace = 250 * time.Millisecond
	// jumpCutFactor clamps upward velocity when the jump control is
	// released mid-ascent, enabling short hops.
	jumpCutFactor = 0.4
)

// handleJump runs the jump controller for one tick: debounce, consumption,
// coyote grace, variable height, and the plugin escape hatch for denied
// jumps.
func (s *Simulation) handleJump(in Input, now time.Time) {
	b := s.Body
	cfg := s.Level.Config

	// The control must be released before another jump can fire.
	if !in.JumpHeld {
		b.CanJump = true
	}

	// Short hop: releasing mid-ascent clamps the remaining impulse.
	if !in.JumpHeld && b.VY < 0 {
		limit := cfg.JumpImpulse * jumpCutFactor
		if b.VY < limit {
			b.VY = limit
		}
	}

	if !in.JumpPressed || !b.CanJump {
		return
	}

	withinCoyote := !b.CoyoteDeadline.IsZero() && now.Before(b.CoyoteDeadline)

	switch {
	case b.JumpsRemaining > 0:
		s.jump()
		b.JumpsRemaining--
	case withinCoyote:
		// Consuming the grace counts as the ground jump, not an
		// extra one.
		s.jump()
		b.JumpsRemaining = b.MaxJumps - 1
	default:
		// Out of jumps. A plugin may still grant one.
		ctx := s.context()
		ctx.CanJump = false
		res := s.Bus.Execute(hook.PlayerJump, ctx)
		if res.Handled {
			s.jump()
		}
	}
}

func (s *Simulation) jump() {
	b := s.Body
	b.VY = s.Level.Config.JumpImpulse
	b.CanJump = false
	b.OnGround = false
	b.CoyoteDeadline = time.Time{}
	s.jumpedThisTick = true

	ctx := s.context()
	ctx.CanJump = true
	s.Bus.Execute(hook.PlayerJump, ctx)
}

// landed is called on the airborne-to-grounded transition.
func (s *Simulation) landed() {
	b := s.Body
	b.JumpsRemaining = b.MaxJumps
	b.CoyoteDeadline = time.Time{}
	s.Bus.Execute(hook.PlayerLand, s.context())
}

// maybeStartCoyote opens the post-ledge grace window when the body walks
// off without jumping. One jump is pre-spent so a jump inside the window
// counts as the ground jump; if the window expires unused, it stays spent.
func (s *Simulation) maybeStartCoyote(now time.Time) {
	b := s.Body
	if s.Level.Config.AirJump {
		return
	}
	if b.JumpsRemaining != b.MaxJumps {
		return
	}
	b.CoyoteDeadline = now.Add(coyoteGrace)
	b.JumpsRemaining = b.MaxJumps - 1
}
