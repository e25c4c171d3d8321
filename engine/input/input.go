package input

import (
	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSpeed is the distance in world units the camera moves per frame while a control is held.
const DefaultSpeed float32 = 0.2

type inputImpl struct {
	speed    float32
	bindings Bindings
	held     [actionCount]bool
}

// Input accumulates held-key state from raw key events and applies it to a camera once per frame.
// Each control is a level ("is currently held"), not a one-shot event, so several controls may be
// active together. Not safe for concurrent use; owned by the render loop.
type Input interface {
	// Speed returns the per-frame movement distance.
	//
	// Returns:
	//   - float32: world units moved per frame while a control is held
	Speed() float32

	// Bindings returns a copy of the key binding table.
	//
	// Returns:
	//   - Bindings: key code to action table
	Bindings() Bindings

	// Held reports whether the control for the given action is currently held.
	//
	// Parameters:
	//   - a: the action to query
	//
	// Returns:
	//   - bool: true if held
	Held(a Action) bool

	// OnKeyEvent records a key press or release. The key is looked up in the binding table
	// and the matching control is set to pressed. Unbound keys are ignored.
	//
	// Parameters:
	//   - pressed: true for a press (or repeat), false for a release
	//   - keyCode: the GLFW key code
	//
	// Returns:
	//   - bool: true if the key is bound to an action
	OnKeyEvent(pressed bool, keyCode uint32) bool

	// Release clears every held control, e.g. when the window loses focus and release events
	// would otherwise be lost.
	Release()

	// ApplyTo moves the camera according to the held controls. Forward and backward translate
	// eye and target together along the pre-update view direction. Strafe and lift move only
	// the target, re-aiming the camera; lift moves against the camera's up vector.
	//
	// Parameters:
	//   - cam: the camera to update
	ApplyTo(cam camera.Camera)
}

var _ Input = &inputImpl{}

// NewInput creates an Input with all controls released.
// Defaults: speed DefaultSpeed, bindings DefaultBindings().
//
// Parameters:
//   - options: functional options to configure the input state
//
// Returns:
//   - Input: the newly created input state
func NewInput(options ...InputBuilderOption) Input {
	in := &inputImpl{
		speed:    DefaultSpeed,
		bindings: DefaultBindings(),
	}
	for _, option := range options {
		option(in)
	}
	return in
}

func (in *inputImpl) Speed() float32 {
	return in.speed
}

func (in *inputImpl) Bindings() Bindings {
	return in.bindings.Clone()
}

func (in *inputImpl) Held(a Action) bool {
	if !a.Valid() {
		return false
	}
	return in.held[a]
}

func (in *inputImpl) OnKeyEvent(pressed bool, keyCode uint32) bool {
	action, ok := in.bindings[keyCode]
	if !ok || !action.Valid() {
		return false
	}
	in.held[action] = pressed
	return true
}

func (in *inputImpl) Release() {
	in.held = [actionCount]bool{}
}

func (in *inputImpl) ApplyTo(cam camera.Camera) {
	// forward is captured once; a degenerate camera yields the zero vector so only lift applies.
	var forward mgl32.Vec3
	if !cam.Degenerate() {
		forward = cam.Target().Sub(cam.Eye()).Normalize()
	}

	if in.held[ActionMoveForward] {
		cam.Translate(forward.Mul(in.speed))
	}
	if in.held[ActionMoveBackward] {
		cam.Translate(forward.Mul(-in.speed))
	}

	up := cam.Up()
	right := forward.Cross(up)

	if in.held[ActionStrafeRight] {
		cam.TranslateTarget(right.Mul(in.speed))
	}
	if in.held[ActionStrafeLeft] {
		cam.TranslateTarget(right.Mul(-in.speed))
	}
	if in.held[ActionLiftUp] {
		cam.TranslateTarget(up.Mul(-in.speed))
	}
	if in.held[ActionLiftDown] {
		cam.TranslateTarget(up.Mul(in.speed))
	}
}
