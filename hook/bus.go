// Package hook implements the named extension points the simulation calls
// into. The core has no compile-time knowledge of what is attached; optional
// abilities plug in here without touching engine code.
package hook

// Name identifies one extension point.
type Name string

const (
	PlayerInit    Name = "player.init"
	PlayerUpdate  Name = "player.update"
	PlayerJump    Name = "player.jump"
	PlayerLand    Name = "player.land"
	PlayerDamage  Name = "player.damage"
	PlayerRespawn Name = "player.respawn"
	InputKeyDown  Name = "input.keydown"
	InputKeyUp    Name = "input.keyup"
	InputUpdate   Name = "input.update"
)

// Context is the state snapshot every handler of a dispatch receives.
// Not every field is meaningful for every hook; Data carries anything a
// specific dispatch wants to add.
type Context struct {
	Hook           Name
	X, Y           float64
	VX, VY         float64
	OnGround       bool
	JumpsRemaining int
	CanJump        bool
	Key            string
	Data           map[string]any
}

// Result is what a dispatch returns, aggregated over all handlers.
type Result struct {
	// Handled means some handler took ownership of the action, e.g. a
	// plugin granted a jump the core was about to refuse.
	Handled bool
	// PreventDefault cancels the core's default behavior, e.g. death on
	// a damaging hit.
	PreventDefault bool
	// SkipPhysics lets a handler own movement for this tick. The core
	// still resolves collisions against whatever velocity it set.
	SkipPhysics bool
	// VX/VY carry a handler-supplied velocity when non-nil.
	VX, VY *float64
}

func (r *Result) merge(o Result) {
	r.Handled = r.Handled || o.Handled
	r.PreventDefault = r.PreventDefault || o.PreventDefault
	r.SkipPhysics = r.SkipPhysics || o.SkipPhysics
	if o.VX != nil {
		r.VX = o.VX
	}
	if o.VY != nil {
		r.VY = o.VY
	}
}

// Func handles one dispatch of one hook.
type Func func(ctx *Context) Result

// Bus holds handlers per hook in registration order. It is owned by whoever
// runs the simulation; there is no global instance.
type Bus struct {
	handlers map[Name][]Func
}

func NewBus() *Bus {
	return &Bus{handlers: map[Name][]Func{}}
}

// On registers a handler for a hook. Handlers run in registration order.
func (b *Bus) On(name Name, fn Func) {
	if b == nil || fn == nil {
		return
	}
	b.handlers[name] = append(b.handlers[name], fn)
}

// Execute dispatches ctx to every handler of name and aggregates their
// results: any handler setting a boolean flag wins, the last velocity
// supplied wins. A panicking handler counts as "no effect" so a broken
// plugin cannot corrupt the tick.
func (b *Bus) Execute(name Name, ctx *Context) Result {
	var out Result
	if b == nil || ctx == nil {
		return out
	}
	ctx.Hook = name
	for _, fn := range b.handlers[name] {
		out.merge(safeCall(fn, ctx))
	}
	return out
}

func safeCall(fn Func, ctx *Context) (res Result) {
	defer func() {
		if recover() != nil {
			res = Result{}
		}
	}()
	return fn(ctx)
}
