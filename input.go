package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/spikevale/hook"
	"github.com/milk9111/spikevale/sim"
)

// Input polls the keyboard and gamepad into the simulation's input state
// and mirrors key edges onto the input.* hooks so plugins can react to raw
// controls.
type Input struct {
	state sim.Input

	gamepadIDs []ebiten.GamepadID

	prevLeft  bool
	prevRight bool
	prevJump  bool
}

func NewInput() *Input {
	return &Input{}
}

// State returns the input state captured by the last Update.
func (i *Input) State() sim.Input {
	return i.state
}

// Update polls devices and dispatches input hooks on bus.
func (i *Input) Update(bus *hook.Bus) {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)
	jumpHeld := ebiten.IsKeyPressed(ebiten.KeySpace)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	// Gamepad: left stick or dpad for movement, primary button to jump.
	i.gamepadIDs = ebiten.AppendGamepadIDs(i.gamepadIDs[:0])
	if len(i.gamepadIDs) > 0 {
		gid := i.gamepadIDs[0]
		axis := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if axis < -0.3 {
			left = true
		} else if axis > 0.3 {
			right = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			left = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			right = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			jumpPressed = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			jumpHeld = true
		}
	}

	var moveX float64
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	i.state = sim.Input{
		MoveX:       moveX,
		JumpPressed: jumpPressed,
		JumpHeld:    jumpHeld,
	}

	i.dispatchEdges(bus, "left", left, &i.prevLeft)
	i.dispatchEdges(bus, "right", right, &i.prevRight)
	i.dispatchEdges(bus, "jump", jumpHeld, &i.prevJump)
	bus.Execute(hook.InputUpdate, &hook.Context{})
}

func (i *Input) dispatchEdges(bus *hook.Bus, key string, down bool, prev *bool) {
	if down && !*prev {
		bus.Execute(hook.InputKeyDown, &hook.Context{Key: key})
	}
	if !down && *prev {
		bus.Execute(hook.InputKeyUp, &hook.Context{Key: key})
	}
	*prev = down
}
