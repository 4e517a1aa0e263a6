package sim

import "time"

// EventKind identifies transient simulation events.
type EventKind string

const (
	// EventCheckpoint fires on the first-ever touch of a checkpoint, for
	// particle feedback.
	EventCheckpoint EventKind = "checkpoint"
	// EventTeleport fires when the body is moved through a portal.
	EventTeleport EventKind = "teleport"
	// EventDeath fires when the body dies.
	EventDeath EventKind = "death"
	// EventRespawn fires when the body respawns.
	EventRespawn EventKind = "respawn"
	// EventGoal fires once when the goal is reached.
	EventGoal EventKind = "goal"
)

// Event is one transient simulation event. The renderer drains these for
// particles and overlays; the core never reads them back.
type Event struct {
	Kind    EventKind
	X, Y    float64
	Color   string
	Target  string
	Elapsed time.Duration
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
