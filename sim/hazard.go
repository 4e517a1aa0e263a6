package sim

import (
	"github.com/milk9111/spikevale/geom"
	"github.com/milk9111/spikevale/level"
)

// Hazard zone tuning. Fractions of the hazard rectangle: the flat (safe)
// strip along the base edge, the danger area covering the outer half toward
// the tip, and the small tip region at the very point. These are tunables,
// not guarantees.
const (
	flatDepthFrac   = 0.35
	dangerDepthFrac = 0.50
	dangerInsetFrac = 0.20
	tipDepthFrac    = 0.10
	tipWidthFrac    = 0.30
)

// HazardGeometry is the derived sub-rectangle split of one hazard. Absent
// zones are empty rectangles.
type HazardGeometry struct {
	Flat   geom.Rect
	Danger geom.Rect
	Tip    geom.Rect
}

// zoneFunc derives the three sub-zones of a hazard rectangle for one
// orientation. The four entries replace per-kind rotation switches.
type zoneFunc func(r geom.Rect) HazardGeometry

var zoneTable = map[level.Orientation]zoneFunc{
	level.TipUp: func(r geom.Rect) HazardGeometry {
		return HazardGeometry{
			Flat:   geom.Rect{X: r.X, Y: r.Y + r.H*(1-flatDepthFrac), W: r.W, H: r.H * flatDepthFrac},
			Danger: geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H * dangerDepthFrac}.Inset(r.W*dangerInsetFrac, 0),
			Tip:    geom.Rect{X: r.X + r.W*(1-tipWidthFrac)/2, Y: r.Y, W: r.W * tipWidthFrac, H: r.H * tipDepthFrac},
		}
	},
	level.TipRight: func(r geom.Rect) HazardGeometry {
		return HazardGeometry{
			Flat:   geom.Rect{X: r.X, Y: r.Y, W: r.W * flatDepthFrac, H: r.H},
			Danger: geom.Rect{X: r.X + r.W*(1-dangerDepthFrac), Y: r.Y, W: r.W * dangerDepthFrac, H: r.H}.Inset(0, r.H*dangerInsetFrac),
			Tip:    geom.Rect{X: r.X + r.W*(1-tipDepthFrac), Y: r.Y + r.H*(1-tipWidthFrac)/2, W: r.W * tipDepthFrac, H: r.H * tipWidthFrac},
		}
	},
	level.TipDown: func(r geom.Rect) HazardGeometry {
		return HazardGeometry{
			Flat:   geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H * flatDepthFrac},
			Danger: geom.Rect{X: r.X, Y: r.Y + r.H*(1-dangerDepthFrac), W: r.W, H: r.H * dangerDepthFrac}.Inset(r.W*dangerInsetFrac, 0),
			Tip:    geom.Rect{X: r.X + r.W*(1-tipWidthFrac)/2, Y: r.Y + r.H*(1-tipDepthFrac), W: r.W * tipWidthFrac, H: r.H * tipDepthFrac},
		}
	},
	level.TipLeft: func(r geom.Rect) HazardGeometry {
		return HazardGeometry{
			Flat:   geom.Rect{X: r.X + r.W*(1-flatDepthFrac), Y: r.Y, W: r.W * flatDepthFrac, H: r.H},
			Danger: geom.Rect{X: r.X, Y: r.Y, W: r.W * dangerDepthFrac, H: r.H}.Inset(0, r.H*dangerInsetFrac),
			Tip:    geom.Rect{X: r.X, Y: r.Y + r.H*(1-tipWidthFrac)/2, W: r.W * tipDepthFrac, H: r.H * tipWidthFrac},
		}
	},
}

// ResolveHazard derives the flat/danger/tip split of a hazard for the given
// touch mode. Pure: same inputs always produce the same rectangles.
func ResolveHazard(obj *level.Object, mode level.TouchMode) HazardGeometry {
	var g HazardGeometry
	if obj == nil || mode == level.TouchAir {
		return g
	}
	switch mode {
	case level.TouchFull:
		g.Danger = obj.Rect
	case level.TouchGround:
		g.Flat = obj.Rect
	case level.TouchFlag:
		g.Flat = zoneTable[obj.Orientation](obj.Rect).Flat
	case level.TouchTip:
		zones := zoneTable[obj.Orientation](obj.Rect)
		g.Flat = zones.Flat
		g.Tip = zones.Tip
	default: // normal
		zones := zoneTable[obj.Orientation](obj.Rect)
		g.Flat = zones.Flat
		g.Danger = zones.Danger
	}
	return g
}

// flatEdgeRect returns a thin probe strip just outside the hazard's flat
// edge, used to detect a separate solid object supporting the hazard.
func flatEdgeRect(obj *level.Object) geom.Rect {
	const probe = 1.0
	r := obj.Rect
	switch obj.Orientation {
	case level.TipRight: // flat left edge
		return geom.Rect{X: r.X - probe, Y: r.Y, W: probe, H: r.H}
	case level.TipDown: // flat top edge
		return geom.Rect{X: r.X, Y: r.Y - probe, W: r.W, H: probe}
	case level.TipLeft: // flat right edge
		return geom.Rect{X: r.Right(), Y: r.Y, W: probe, H: r.H}
	default: // TipUp, flat bottom edge
		return geom.Rect{X: r.X, Y: r.Bottom(), W: r.W, H: probe}
	}
}

// dangerousVelocity reports whether the velocity points toward the hazard's
// tip, for the "only hurts when falling onto it" rule. A tip-up spike only
// damages a body moving downward onto it.
func dangerousVelocity(o level.Orientation, vx, vy float64) bool {
	switch o {
	case level.TipRight:
		return vx < 0
	case level.TipDown:
		return vy < 0
	case level.TipLeft:
		return vx > 0
	default: // TipUp
		return vy > 0
	}
}
