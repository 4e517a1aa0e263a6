package sim

import (
	"time"

	"github.com/milk9111/spikevale/level"
)

// teleportCooldown blocks re-entry oscillation: after a teleport the body
// is standing inside the destination portal, which must not fire back
// immediately.
const teleportCooldown = 500 * time.Millisecond

// applyTeleports checks the body against every portal and takes the first
// valid outgoing link, in list order. A link is valid only when enabled on
// both ends: A lists B outgoing-enabled and B lists A incoming-enabled.
// One-way or disabled entries are informational and never teleport; a link
// naming a nonexistent portal is inert.
func (s *Simulation) applyTeleports(now time.Time) {
	if !s.lastTeleport.IsZero() && now.Sub(s.lastTeleport) < teleportCooldown {
		return
	}

	hr := s.Body.HazardRect()
	for _, o := range s.Level.Objects {
		if o.Kind != level.KindPortal {
			continue
		}
		if !hr.Intersects(o.Rect) {
			continue
		}
		for _, link := range o.Outgoing {
			if !link.Enabled {
				continue
			}
			dest, ok := s.Level.PortalByName(link.Target)
			if !ok || dest == o {
				continue
			}
			if !linkedBack(dest, o.Name) {
				continue
			}

			x, y := s.placeAt(dest.Rect)
			s.Body.X, s.Body.Y = x, y
			s.lastTeleport = now

			cx, cy := dest.Rect.Center()
			s.Events.Push(Event{Kind: EventTeleport, X: cx, Y: cy, Color: o.Color, Target: dest.Name})
			return
		}
	}
}

func linkedBack(dest *level.Object, from string) bool {
	for _, l := range dest.Incoming {
		if l.Enabled && l.Target == from {
			return true
		}
	}
	return false
}
