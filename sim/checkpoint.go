package sim

import (
	"time"

	"github.com/milk9111/spikevale/common"
	"github.com/milk9111/spikevale/level"
)

const (
	// quickTurnWindow is the rolling window for checkpoint quick-turn
	// direction reversals.
	quickTurnWindow = 500 * time.Millisecond
	// quickTurnReversals is how many reversals inside the window refill
	// the body's jumps.
	quickTurnReversals = 2
)

// updateCheckpoints handles checkpoint touch state, the goal, and the
// quick-turn jump reset evaluated while standing in an active checkpoint.
func (s *Simulation) updateCheckpoints(in Input, now time.Time) {
	b := s.Body
	r := b.GroundRect()
	overActive := false

	for _, o := range s.Level.Objects {
		switch o.Kind {
		case level.KindCheckpoint:
			if !r.Intersects(o.Rect) {
				continue
			}
			if o.Checkpoint != level.CheckpointActive {
				firstTouch := o.Checkpoint == level.CheckpointDefault
				if prev, ok := s.Level.ActiveCheckpoint(); ok && prev != o {
					prev.Checkpoint = level.CheckpointTouched
				}
				o.Checkpoint = level.CheckpointActive
				if firstTouch {
					cx, cy := o.Rect.Center()
					s.Events.Push(Event{Kind: EventCheckpoint, X: cx, Y: cy, Color: o.Color})
				}
			}
			overActive = true
		case level.KindGoal:
			if r.Intersects(o.Rect) {
				s.ended = true
				s.elapsed = now.Sub(s.started)
				s.Events.Push(Event{Kind: EventGoal, Elapsed: s.elapsed})
				return
			}
		}
	}

	s.trackQuickTurn(in, overActive, now)
}

// trackQuickTurn counts rapid left/right reversals while over an active
// checkpoint; two inside the rolling window refill the jumps.
func (s *Simulation) trackQuickTurn(in Input, overActive bool, now time.Time) {
	b := s.Body
	dir := common.Sign(in.MoveX)

	if !overActive {
		b.lastDirection = dir
		b.reversals = 0
		return
	}

	if dir != 0 && b.lastDirection != 0 && dir != b.lastDirection {
		if b.reversals == 0 || now.Sub(b.reversalStart) > quickTurnWindow {
			b.reversalStart = now
			b.reversals = 1
		} else {
			b.reversals++
		}
		if b.reversals >= quickTurnReversals {
			b.JumpsRemaining = b.MaxJumps
			b.reversals = 0
		}
	}
	if dir != 0 {
		b.lastDirection = dir
	}
}
