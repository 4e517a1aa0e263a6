package sim

import (
	"testing"
	"time"

	"github.com/milk9111/spikevale/geom"
	"github.com/milk9111/spikevale/level"
)

func portal(name string, x, y float64) *level.Object {
	return &level.Object{
		Rect: geom.Rect{X: x, Y: y, W: 40, H: 60},
		Kind: level.KindPortal,
		Name: name,
	}
}

// portalPair builds two portals linked in both directions, with the body
// spawning inside portal a.
func portalPair() (a, b *level.Object, lvl *level.Level) {
	a = portal("a", 30, 30)
	b = portal("b", 200, 30)
	a.Outgoing = []level.Link{{Target: "b", Enabled: true}}
	b.Incoming = []level.Link{{Target: "a", Enabled: true}}
	lvl = testLevel(level.Defaults(), spawnAt(50, 50), a, b)
	return a, b, lvl
}

func TestTeleportThroughLinkedPortals(t *testing.T) {
	_, b, lvl := portalPair()
	s := newTestSim(t, lvl)

	s.Tick(Input{}, t0)

	cx, _ := b.Rect.Center()
	wantX := cx - s.Body.GroundBox.W/2
	if s.Body.X != wantX {
		t.Fatalf("X = %v, want destination %v", s.Body.X, wantX)
	}

	events := s.Events.Drain()
	var teleports int
	for _, evt := range events {
		if evt.Kind == EventTeleport {
			teleports++
			if evt.Target != "b" {
				t.Fatalf("teleport target = %q, want b", evt.Target)
			}
		}
	}
	if teleports != 1 {
		t.Fatalf("teleport events = %d, want 1", teleports)
	}
}

func TestTeleportRequiresBothDirections(t *testing.T) {
	cases := []struct {
		name string
		wire func(a, b *level.Object)
	}{
		{"no_incoming_entry", func(a, b *level.Object) {
			b.Incoming = nil
		}},
		{"incoming_disabled", func(a, b *level.Object) {
			b.Incoming = []level.Link{{Target: "a", Enabled: false}}
		}},
		{"outgoing_disabled", func(a, b *level.Object) {
			a.Outgoing = []level.Link{{Target: "b", Enabled: false}}
		}},
		{"incoming_names_other_portal", func(a, b *level.Object) {
			b.Incoming = []level.Link{{Target: "c", Enabled: true}}
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, b, lvl := portalPair()
			c.wire(a, b)
			s := newTestSim(t, lvl)

			startX := s.Body.X
			s.Tick(Input{}, t0)

			if s.Body.X != startX {
				t.Fatalf("one-way link teleported: X %v -> %v", startX, s.Body.X)
			}
		})
	}
}

func TestTeleportEnabledMidRun(t *testing.T) {
	_, b, lvl := portalPair()
	b.Incoming = []level.Link{{Target: "a", Enabled: false}}
	s := newTestSim(t, lvl)

	startX := s.Body.X
	s.Tick(Input{}, t0)
	if s.Body.X != startX {
		t.Fatal("disabled link teleported")
	}

	// Flipping the incoming side on takes effect on the next tick.
	b.Incoming[0].Enabled = true
	s.Tick(Input{}, t0)

	cx, _ := b.Rect.Center()
	if want := cx - s.Body.GroundBox.W/2; s.Body.X != want {
		t.Fatalf("X = %v, want %v after enabling the link", s.Body.X, want)
	}
}

func TestTeleportCooldown(t *testing.T) {
	a, b, lvl := portalPair()
	// Fully bidirectional: either end can fire.
	b.Outgoing = []level.Link{{Target: "a", Enabled: true}}
	a.Incoming = []level.Link{{Target: "b", Enabled: true}}
	s := newTestSim(t, lvl)

	s.Tick(Input{}, t0)
	cx, _ := b.Rect.Center()
	if want := cx - s.Body.GroundBox.W/2; s.Body.X != want {
		t.Fatalf("X = %v, want %v after first teleport", s.Body.X, want)
	}
	arrivedX := s.Body.X

	// Standing inside the destination must not bounce straight back.
	s.Tick(Input{}, t0.Add(100*time.Millisecond))
	if s.Body.X != arrivedX {
		t.Fatalf("X = %v, teleported again inside the cooldown", s.Body.X)
	}

	// Once the cooldown lapses the return trip fires.
	s.Tick(Input{}, t0.Add(600*time.Millisecond))
	acx, _ := a.Rect.Center()
	if want := acx - s.Body.GroundBox.W/2; s.Body.X != want {
		t.Fatalf("X = %v, want %v after the cooldown", s.Body.X, want)
	}
}

func TestTeleportIgnoresSelfAndMissingTargets(t *testing.T) {
	a := portal("a", 30, 30)
	a.Outgoing = []level.Link{
		{Target: "a", Enabled: true},     // self
		{Target: "ghost", Enabled: true}, // nonexistent
	}
	a.Incoming = []level.Link{{Target: "a", Enabled: true}}
	lvl := testLevel(level.Defaults(), spawnAt(50, 50), a)
	s := newTestSim(t, lvl)

	startX := s.Body.X
	s.Tick(Input{}, t0)
	if s.Body.X != startX {
		t.Fatalf("X = %v, want %v (no valid link)", s.Body.X, startX)
	}
}

func TestTeleportTakesFirstValidLink(t *testing.T) {
	a := portal("a", 30, 30)
	b := portal("b", 200, 30)
	c := portal("c", 400, 30)
	a.Outgoing = []level.Link{
		{Target: "b", Enabled: false}, // disabled, skipped
		{Target: "c", Enabled: true},
	}
	c.Incoming = []level.Link{{Target: "a", Enabled: true}}
	lvl := testLevel(level.Defaults(), spawnAt(50, 50), a, b, c)
	s := newTestSim(t, lvl)

	s.Tick(Input{}, t0)

	ccx, _ := c.Rect.Center()
	if want := ccx - s.Body.GroundBox.W/2; s.Body.X != want {
		t.Fatalf("X = %v, want %v (first valid link)", s.Body.X, want)
	}
}
