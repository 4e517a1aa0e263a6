package sim

import (
	"time"

	"github.com/milk9111/spikevale/geom"
	"github.com/milk9111/spikevale/hook"
	"github.com/milk9111/spikevale/level"
)

// solidRects collects everything the ground box collides with this tick:
// solid ground objects plus hazard flat zones per touch mode. Portals,
// zones, and marker objects never collide.
func (s *Simulation) solidRects() []geom.Rect {
	cfg := s.Level.Config
	out := make([]geom.Rect, 0, len(s.Level.Objects))
	for _, o := range s.Level.Objects {
		switch o.Kind {
		case level.KindGround:
			if o.Solid {
				out = append(out, o.Rect)
			}
		case level.KindHazard:
			mode := o.EffectiveTouchMode(cfg)
			g := ResolveHazard(o, mode)
			if g.Flat.Empty() {
				continue
			}
			// A hazard sitting on separate solid ground gets no
			// collision of its own; the ground underneath handles
			// support. Resolving both makes the body jitter on
			// the seam.
			if mode != level.TouchGround && s.flatEdgeSupported(o) {
				continue
			}
			out = append(out, g.Flat)
		}
	}
	return out
}

func (s *Simulation) flatEdgeSupported(o *level.Object) bool {
	probe := flatEdgeRect(o)
	for _, g := range s.Level.Objects {
		if g.Kind == level.KindGround && g.Solid && probe.Intersects(g.Rect) {
			return true
		}
	}
	return false
}

// resolveCollisions integrates the velocity and clamps the ground box
// against solid geometry one axis at a time. Horizontal resolution always
// runs before vertical; doing it the other way round catches on corners
// asymmetrically.
func (s *Simulation) resolveCollisions(now time.Time) {
	b := s.Body
	solids := s.solidRects()

	b.X += b.VX
	r := b.GroundRect()
	for _, sr := range solids {
		if !r.Intersects(sr) {
			continue
		}
		if b.VX > 0 {
			b.X = sr.X - b.GroundBox.X - b.GroundBox.W
		} else if b.VX < 0 {
			b.X = sr.Right() - b.GroundBox.X
		}
		b.VX = 0
		r = b.GroundRect()
	}

	wasOnGround := b.OnGround
	b.OnGround = false
	b.Y += b.VY
	r = b.GroundRect()
	for _, sr := range solids {
		if !r.Intersects(sr) {
			continue
		}
		if b.VY > 0 {
			b.Y = sr.Y - b.GroundBox.Y - b.GroundBox.H
			b.VY = 0
			b.OnGround = true
		} else if b.VY < 0 {
			b.Y = sr.Bottom() - b.GroundBox.Y
			b.VY = 0
		}
		r = b.GroundRect()
	}

	if b.OnGround && !wasOnGround {
		s.landed()
	}
	if wasOnGround && !b.OnGround && !s.jumpedThisTick {
		s.maybeStartCoyote(now)
	}
}

// applyHazardDamage tests the hazard box against every hazard's damaging
// region. The first damaging hit dispatches player.damage; unless a plugin
// prevents the default, the body dies.
func (s *Simulation) applyHazardDamage() {
	b := s.Body
	cfg := s.Level.Config
	hr := b.HazardRect()

	for _, o := range s.Level.Objects {
		if o.Kind != level.KindHazard {
			continue
		}
		mode := o.EffectiveTouchMode(cfg)
		g := ResolveHazard(o, mode)

		var hit bool
		switch mode {
		case level.TouchFull:
			hit = hr.Intersects(g.Danger)
		case level.TouchTip:
			hit = hr.Intersects(g.Tip)
		case level.TouchNormal:
			hit = hr.Intersects(g.Danger)
		default:
			// air, ground, and flag never damage
			continue
		}
		if !hit {
			continue
		}
		if o.EffectiveFallingOnly(cfg) && !dangerousVelocity(o.Orientation, b.VX, b.VY) {
			continue
		}

		res := s.Bus.Execute(hook.PlayerDamage, s.context())
		if !res.PreventDefault {
			s.kill()
		}
		return
	}
}
