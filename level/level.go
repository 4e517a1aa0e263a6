package level

import (
	"encoding/json"
	"fmt"

	"github.com/milk9111/spikevale/geom"
)

// Kind identifies what a placed object is.
type Kind string

const (
	KindGround     Kind = "ground"
	KindHazard     Kind = "hazard"
	KindCheckpoint Kind = "checkpoint"
	KindSpawn      Kind = "spawn"
	KindGoal       Kind = "goal"
	KindPortal     Kind = "portal"
	KindZone       Kind = "zone"
)

func (k Kind) valid() bool {
	switch k {
	case KindGround, KindHazard, KindCheckpoint, KindSpawn, KindGoal, KindPortal, KindZone:
		return true
	}
	return false
}

// TouchMode selects how much of a hazard's rectangle collides and damages.
type TouchMode string

const (
	TouchNormal TouchMode = "normal"
	TouchFull   TouchMode = "full"
	TouchTip    TouchMode = "tip"
	TouchGround TouchMode = "ground"
	TouchFlag   TouchMode = "flag"
	TouchAir    TouchMode = "air"
)

func (m TouchMode) valid() bool {
	switch m {
	case TouchNormal, TouchFull, TouchTip, TouchGround, TouchFlag, TouchAir:
		return true
	}
	return false
}

// Orientation is one of the four cardinal rotations of a hazard. It names
// the edge the hazard's tip points toward; the flat (solid) edge is the
// opposite one.
type Orientation int

const (
	TipUp    Orientation = iota // flat bottom edge
	TipRight                    // flat left edge
	TipDown                     // flat top edge
	TipLeft                     // flat right edge
)

// Degrees returns the rotation the editor stores for this orientation.
func (o Orientation) Degrees() int {
	return int(o) * 90
}

// OrientationFromDegrees maps an editor rotation to an Orientation.
// Unknown values fall back to TipUp.
func OrientationFromDegrees(deg int) Orientation {
	switch deg {
	case 90:
		return TipRight
	case 180:
		return TipDown
	case 270:
		return TipLeft
	default:
		return TipUp
	}
}

// MarshalJSON stores the orientation as integer degrees.
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Degrees())
}

// UnmarshalJSON accepts integer degrees, defaulting to 0 on unknown values.
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var deg int
	if err := json.Unmarshal(data, &deg); err != nil {
		return fmt.Errorf("level: orientation: %w", err)
	}
	*o = OrientationFromDegrees(deg)
	return nil
}

// CheckpointState is the runtime state of a checkpoint object. It is the
// only object state the simulation mutates.
type CheckpointState int

const (
	CheckpointDefault CheckpointState = iota
	CheckpointTouched
	CheckpointActive
)

// Link is one normalized teleport link entry. Older level files stored
// links as bare target strings; those decode as enabled entries.
type Link struct {
	Target  string `json:"target"`
	Enabled bool   `json:"enabled"`
}

// UnmarshalJSON accepts either a target string or a {target, enabled}
// object so legacy level files keep loading.
func (l *Link) UnmarshalJSON(data []byte) error {
	var target string
	if err := json.Unmarshal(data, &target); err == nil {
		l.Target = target
		l.Enabled = true
		return nil
	}
	type plain Link
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("level: link: %w", err)
	}
	*l = Link(p)
	return nil
}

// Object is one placed entity in a level.
type Object struct {
	Rect        geom.Rect   `json:"rect"`
	Kind        Kind        `json:"kind"`
	Solid       bool        `json:"solid,omitempty"`
	Orientation Orientation `json:"orientation,omitempty"`

	// TouchMode and FallingOnly override the world defaults when set.
	TouchMode   *TouchMode `json:"touch_mode,omitempty"`
	FallingOnly *bool      `json:"falling_only,omitempty"`

	// Name is required for portals and zones; the two namespaces are
	// independent, so a zone may share a name with a portal.
	Name     string `json:"name,omitempty"`
	Color    string `json:"color,omitempty"`
	Outgoing []Link `json:"outgoing,omitempty"`
	Incoming []Link `json:"incoming,omitempty"`

	// Checkpoint is runtime-only state and never serialized.
	Checkpoint CheckpointState `json:"-"`
}

// EffectiveTouchMode resolves the per-object override against the world
// default.
func (o *Object) EffectiveTouchMode(cfg Config) TouchMode {
	if o.TouchMode != nil && o.TouchMode.valid() {
		return *o.TouchMode
	}
	return cfg.TouchMode
}

// EffectiveFallingOnly resolves the per-object override against the world
// default.
func (o *Object) EffectiveFallingOnly(cfg Config) bool {
	if o.FallingOnly != nil {
		return *o.FallingOnly
	}
	return cfg.FallingOnly
}

// Config holds the world tunables.
type Config struct {
	Gravity     float64   `json:"gravity"`
	JumpImpulse float64   `json:"jump_impulse"` // negative is upward
	Speed       float64   `json:"speed"`
	MaxJumps    int       `json:"max_jumps"`
	AirJump     bool      `json:"air_jump"`
	TouchMode   TouchMode `json:"touch_mode"`
	FallingOnly bool      `json:"falling_only"`
	DieLine     float64   `json:"die_line"`
}

// Defaults returns the documented fallback tunables.
func Defaults() Config {
	return Config{
		Gravity:     0.8,
		JumpImpulse: -14,
		Speed:       5,
		MaxJumps:    1,
		TouchMode:   TouchNormal,
		DieLine:     2000,
	}
}

// sanitize replaces out-of-range values with their defaults. Malformed
// tunables are never fatal; the editor shouldn't produce them but the
// core stays defensive.
func (c *Config) sanitize() {
	def := Defaults()
	if c.Gravity <= 0 || c.Gravity > 100 {
		c.Gravity = def.Gravity
	}
	if c.JumpImpulse >= 0 || c.JumpImpulse < -1000 {
		c.JumpImpulse = def.JumpImpulse
	}
	if c.Speed <= 0 || c.Speed > 1000 {
		c.Speed = def.Speed
	}
	if c.MaxJumps < 1 || c.MaxJumps > 100 {
		c.MaxJumps = def.MaxJumps
	}
	if !c.TouchMode.valid() {
		c.TouchMode = def.TouchMode
	}
	if c.DieLine <= 0 {
		c.DieLine = def.DieLine
	}
}

// Level is a full level snapshot: placed objects plus world tunables.
type Level struct {
	Objects []*Object `json:"objects"`
	Config  Config    `json:"config"`
}

// Spawn returns the first spawn object, if any.
func (l *Level) Spawn() (*Object, bool) {
	for _, o := range l.Objects {
		if o.Kind == KindSpawn {
			return o, true
		}
	}
	return nil, false
}

// PortalByName returns the portal with the given name, if any.
func (l *Level) PortalByName(name string) (*Object, bool) {
	for _, o := range l.Objects {
		if o.Kind == KindPortal && o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// ActiveCheckpoint returns the checkpoint currently marked active, if any.
func (l *Level) ActiveCheckpoint() (*Object, bool) {
	for _, o := range l.Objects {
		if o.Kind == KindCheckpoint && o.Checkpoint == CheckpointActive {
			return o, true
		}
	}
	return nil, false
}

// ResetRuntimeState clears the per-object state the simulation mutates.
func (l *Level) ResetRuntimeState() {
	for _, o := range l.Objects {
		o.Checkpoint = CheckpointDefault
	}
}
