package sim

// Input holds the control state for one tick.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true only on the tick the jump control went down.
	JumpPressed bool
	// JumpHeld is true while the jump control stays down.
	JumpHeld bool
}
