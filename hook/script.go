package hook

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptDispatch is appended to every plugin script. The script itself
// defines `handles` (the hook names it wants) and `on_hook(name, ctx)`
// returning a map of result flags.
const scriptDispatch = `
__result := {}
if __hook != "" {
	__result = on_hook(__hook, __ctx)
}
`

// Script is a tengo plugin attached to the bus. Each dispatch re-executes
// the compiled program, so an ability carries state across ticks in the
// `__state` map, which the host owns and passes back in on every run.
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	handles  []Name
}

// NewScript compiles a plugin script. The source must define a `handles`
// array of hook names and an `on_hook(name, ctx)` function.
func NewScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte(scriptDispatch)...))
	_ = script.Add("__hook", "")
	_ = script.Add("__ctx", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("hook: compile script %s: %w", name, err)
	}

	state := &tengo.Map{Value: map[string]tengo.Object{}}
	if err := compiled.Set("__state", state); err != nil {
		return nil, fmt.Errorf("hook: init script %s: %w", name, err)
	}

	// First run with an empty hook name resolves `handles` without
	// dispatching anything.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("hook: init script %s: %w", name, err)
	}
	if !compiled.IsDefined("handles") {
		return nil, fmt.Errorf("hook: script %s defines no handles", name)
	}

	s := &Script{name: name, compiled: compiled, state: state}
	raw, _ := compiled.Get("handles").Value().([]any)
	for _, entry := range raw {
		hookName, ok := entry.(string)
		if !ok {
			continue
		}
		hookName = strings.TrimSpace(hookName)
		if hookName != "" {
			s.handles = append(s.handles, Name(hookName))
		}
	}
	if len(s.handles) == 0 {
		return nil, fmt.Errorf("hook: script %s defines no handles", name)
	}
	return s, nil
}

// Handles returns the hook names the script subscribed to.
func (s *Script) Handles() []Name {
	return append([]Name(nil), s.handles...)
}

// Attach registers the script on the bus for every hook it handles.
func (s *Script) Attach(b *Bus) {
	for _, name := range s.handles {
		b.On(name, s.dispatch)
	}
}

func (s *Script) dispatch(ctx *Context) Result {
	if err := s.compiled.Set("__hook", string(ctx.Hook)); err != nil {
		return Result{}
	}
	if err := s.compiled.Set("__ctx", contextMap(ctx)); err != nil {
		return Result{}
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return Result{}
	}
	if err := s.compiled.Run(); err != nil {
		// A failing script is treated the same as a panicking Go
		// handler: no effect.
		return Result{}
	}
	out, _ := s.compiled.Get("__result").Value().(map[string]any)
	return resultFromMap(out)
}

func contextMap(ctx *Context) map[string]any {
	m := map[string]any{
		"x":               ctx.X,
		"y":               ctx.Y,
		"vx":              ctx.VX,
		"vy":              ctx.VY,
		"on_ground":       ctx.OnGround,
		"jumps_remaining": ctx.JumpsRemaining,
		"can_jump":        ctx.CanJump,
		"key":             ctx.Key,
	}
	for k, v := range ctx.Data {
		m[k] = v
	}
	return m
}

func resultFromMap(m map[string]any) Result {
	var res Result
	if m == nil {
		return res
	}
	res.Handled = asBool(m["handled"])
	res.PreventDefault = asBool(m["prevent_default"])
	res.SkipPhysics = asBool(m["skip_physics"])
	if v, ok := asFloat(m["vx"]); ok {
		res.VX = &v
	}
	if v, ok := asFloat(m["vy"]); ok {
		res.VY = &v
	}
	return res
}

func asBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
