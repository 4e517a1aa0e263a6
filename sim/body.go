package sim

import (
	"time"

	"github.com/milk9111/spikevale/geom"
)

// Default body collision boxes, relative to the body position. The ground
// box is the broad one used against solid geometry; the hazard box is the
// narrower, lower one used for damage detection so brushing a spike with a
// shoulder pixel doesn't kill.
var (
	defaultGroundBox = geom.Rect{X: 0, Y: 0, W: 24, H: 32}
	defaultHazardBox = geom.Rect{X: 6, Y: 12, W: 12, H: 20}
)

// Body is the simulated actor.
type Body struct {
	X, Y   float64
	VX, VY float64

	// GroundBox and HazardBox are offsets and sizes relative to (X, Y).
	GroundBox geom.Rect
	HazardBox geom.Rect

	OnGround bool
	// CanJump debounces the jump control: the input must be released
	// before another jump can fire.
	CanJump        bool
	JumpsRemaining int
	MaxJumps       int
	// CoyoteDeadline is the wall-clock end of the post-ledge grace
	// window. Zero means no grace is active.
	CoyoteDeadline time.Time

	Flying bool
	Dead   bool

	// Direction-change tracking for the checkpoint quick-turn reset.
	lastDirection int
	reversals     int
	reversalStart time.Time
}

// NewBody creates a body at (x, y) with full jumps.
func NewBody(x, y float64, maxJumps int) *Body {
	if maxJumps < 1 {
		maxJumps = 1
	}
	return &Body{
		X:              x,
		Y:              y,
		GroundBox:      defaultGroundBox,
		HazardBox:      defaultHazardBox,
		CanJump:        true,
		JumpsRemaining: maxJumps,
		MaxJumps:       maxJumps,
	}
}

// GroundRect returns the ground collision box in world coordinates.
func (b *Body) GroundRect() geom.Rect {
	return b.GroundBox.Translate(b.X, b.Y)
}

// HazardRect returns the hazard-damage box in world coordinates.
func (b *Body) HazardRect() geom.Rect {
	return b.HazardBox.Translate(b.X, b.Y)
}

// Reset places the body at (x, y) and restores it to a fresh state. The
// body value is reused across deaths, never reallocated.
func (b *Body) Reset(x, y float64) {
	b.X = x
	b.Y = y
	b.VX = 0
	b.VY = 0
	b.OnGround = false
	b.CanJump = true
	b.JumpsRemaining = b.MaxJumps
	b.CoyoteDeadline = time.Time{}
	b.Dead = false
	b.lastDirection = 0
	b.reversals = 0
	b.reversalStart = time.Time{}
}
