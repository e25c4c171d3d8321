package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCamera(t *testing.T) camera.Camera {
	t.Helper()
	cam, err := camera.NewCamera(800, 600)
	require.NoError(t, err)
	return cam
}

func TestNewInput_Defaults(t *testing.T) {
	in := NewInput()
	assert.Equal(t, DefaultSpeed, in.Speed())
	for _, a := range Actions() {
		assert.False(t, in.Held(a), "%s held at construction", a)
	}
	assert.Equal(t, DefaultBindings(), in.Bindings())
}

func TestWithSpeed_IgnoresNonPositive(t *testing.T) {
	assert.Equal(t, float32(1.5), NewInput(WithSpeed(1.5)).Speed())
	assert.Equal(t, DefaultSpeed, NewInput(WithSpeed(0)).Speed())
	assert.Equal(t, DefaultSpeed, NewInput(WithSpeed(-3)).Speed())
}

func TestOnKeyEvent_DefaultTable(t *testing.T) {
	cases := []struct {
		key    uint32
		action Action
	}{
		{common.KeySpace, ActionMoveForward},
		{common.KeyLeftShift, ActionMoveBackward},
		{common.KeyW, ActionLiftUp},
		{common.KeyUp, ActionLiftUp},
		{common.KeyS, ActionLiftDown},
		{common.KeyDown, ActionLiftDown},
		{common.KeyA, ActionStrafeLeft},
		{common.KeyLeft, ActionStrafeLeft},
		{common.KeyD, ActionStrafeRight},
		{common.KeyRight, ActionStrafeRight},
	}
	for _, c := range cases {
		in := NewInput()
		assert.True(t, in.OnKeyEvent(true, c.key))
		for _, a := range Actions() {
			assert.Equal(t, a == c.action, in.Held(a), "key %d action %s", c.key, a)
		}
		assert.True(t, in.OnKeyEvent(false, c.key))
		assert.False(t, in.Held(c.action))
	}
}

func TestOnKeyEvent_UnknownKeyIgnored(t *testing.T) {
	in := NewInput()
	assert.False(t, in.OnKeyEvent(true, common.KeyQ))
	assert.False(t, in.OnKeyEvent(true, 99999))
	for _, a := range Actions() {
		assert.False(t, in.Held(a))
	}
}

func TestOnKeyEvent_FlagsIndependent(t *testing.T) {
	in := NewInput()
	in.OnKeyEvent(true, common.KeySpace)
	in.OnKeyEvent(true, common.KeyD)
	in.OnKeyEvent(true, common.KeyW)

	assert.True(t, in.Held(ActionMoveForward))
	assert.True(t, in.Held(ActionStrafeRight))
	assert.True(t, in.Held(ActionLiftUp))

	in.OnKeyEvent(false, common.KeyD)
	assert.True(t, in.Held(ActionMoveForward))
	assert.False(t, in.Held(ActionStrafeRight))
	assert.True(t, in.Held(ActionLiftUp))
}

func TestOnKeyEvent_RepeatIsIdempotent(t *testing.T) {
	in := NewInput()
	in.OnKeyEvent(true, common.KeySpace)
	in.OnKeyEvent(true, common.KeySpace)
	assert.True(t, in.Held(ActionMoveForward))
	in.OnKeyEvent(false, common.KeySpace)
	assert.False(t, in.Held(ActionMoveForward))
}

func TestRelease(t *testing.T) {
	in := NewInput()
	for _, k := range []uint32{common.KeySpace, common.KeyA, common.KeyS} {
		in.OnKeyEvent(true, k)
	}
	in.Release()
	for _, a := range Actions() {
		assert.False(t, in.Held(a))
	}
}

func TestWithBindings_Rebind(t *testing.T) {
	in := NewInput(WithBindings(Bindings{common.KeyE: ActionMoveForward}))
	assert.False(t, in.OnKeyEvent(true, common.KeySpace))
	assert.True(t, in.OnKeyEvent(true, common.KeyE))
	assert.True(t, in.Held(ActionMoveForward))
}

func TestWithBinding_AddsToDefaults(t *testing.T) {
	in := NewInput(WithBinding(common.KeyE, ActionLiftUp))
	assert.True(t, in.OnKeyEvent(true, common.KeyE))
	assert.True(t, in.Held(ActionLiftUp))
	assert.True(t, in.OnKeyEvent(true, common.KeySpace))
}

func TestBindings_CopyIsIndependent(t *testing.T) {
	in := NewInput()
	b := in.Bindings()
	delete(b, common.KeySpace)
	assert.True(t, in.OnKeyEvent(true, common.KeySpace))
}

func TestApplyTo_NoFlags(t *testing.T) {
	cam := newCamera(t)
	in := NewInput()

	eye, target := cam.Eye(), cam.Target()
	in.ApplyTo(cam)
	assert.Equal(t, eye, cam.Eye())
	assert.Equal(t, target, cam.Target())
}

func TestApplyTo_MoveForward(t *testing.T) {
	cam := newCamera(t)
	in := NewInput(WithSpeed(0.2))

	eye0, target0 := cam.Eye(), cam.Target()
	forward := target0.Sub(eye0).Normalize()

	in.OnKeyEvent(true, common.KeySpace)
	in.ApplyTo(cam)

	assert.Equal(t, eye0.Add(forward.Mul(0.2)), cam.Eye())
	assert.Equal(t, target0.Add(forward.Mul(0.2)), cam.Target())
	assert.InDelta(t, 0.2, cam.Eye().Sub(eye0).Len(), 1e-5)

	after := cam.Target().Sub(cam.Eye()).Normalize()
	for i := range 3 {
		assert.InDelta(t, forward[i], after[i], 1e-5)
	}

	// Released: no further motion.
	in.OnKeyEvent(false, common.KeySpace)
	eye1, target1 := cam.Eye(), cam.Target()
	in.ApplyTo(cam)
	assert.Equal(t, eye1, cam.Eye())
	assert.Equal(t, target1, cam.Target())
}

func TestApplyTo_MoveBackward(t *testing.T) {
	cam := newCamera(t)
	in := NewInput()

	eye0, target0 := cam.Eye(), cam.Target()
	forward := target0.Sub(eye0).Normalize()

	in.OnKeyEvent(true, common.KeyLeftShift)
	in.ApplyTo(cam)

	assert.Equal(t, eye0.Add(forward.Mul(-DefaultSpeed)), cam.Eye())
	assert.Equal(t, target0.Add(forward.Mul(-DefaultSpeed)), cam.Target())
}

func TestApplyTo_ForwardAndBackwardCancel(t *testing.T) {
	cam := newCamera(t)
	in := NewInput()

	eye0 := cam.Eye()
	in.OnKeyEvent(true, common.KeySpace)
	in.OnKeyEvent(true, common.KeyLeftShift)
	in.ApplyTo(cam)

	for i := range 3 {
		assert.InDelta(t, eye0[i], cam.Eye()[i], 1e-5)
	}
}

func TestApplyTo_StrafeMovesTargetOnly(t *testing.T) {
	cam := newCamera(t)
	in := NewInput()

	eye0, target0 := cam.Eye(), cam.Target()
	right := target0.Sub(eye0).Normalize().Cross(cam.Up())

	in.OnKeyEvent(true, common.KeyD)
	in.ApplyTo(cam)
	assert.Equal(t, eye0, cam.Eye())
	assert.Equal(t, target0.Add(right.Mul(DefaultSpeed)), cam.Target())

	in.OnKeyEvent(false, common.KeyD)
	in.OnKeyEvent(true, common.KeyA)
	target1 := cam.Target()
	right1 := target1.Sub(eye0).Normalize().Cross(cam.Up())
	in.ApplyTo(cam)
	assert.Equal(t, eye0, cam.Eye())
	assert.Equal(t, target1.Add(right1.Mul(-DefaultSpeed)), cam.Target())
}

func TestApplyTo_LiftIsInvertedAgainstUp(t *testing.T) {
	cam := newCamera(t)
	in := NewInput()
	up := cam.Up()
	require.Equal(t, mgl32.Vec3{0, -1, 0}, up)

	eye0, target0 := cam.Eye(), cam.Target()
	in.OnKeyEvent(true, common.KeyW)
	in.ApplyTo(cam)
	assert.Equal(t, eye0, cam.Eye())
	assert.Equal(t, target0.Add(up.Mul(-DefaultSpeed)), cam.Target())
	// With the inverted up vector, lifting raises the target in world Y.
	assert.Greater(t, cam.Target().Y(), target0.Y())

	in.OnKeyEvent(false, common.KeyW)
	in.OnKeyEvent(true, common.KeyS)
	target1 := cam.Target()
	in.ApplyTo(cam)
	assert.Equal(t, eye0, cam.Eye())
	assert.Equal(t, target1.Add(up.Mul(DefaultSpeed)), cam.Target())
}

func TestApplyTo_RightUsesPreStrafeForward(t *testing.T) {
	cam := newCamera(t)
	in := NewInput()

	eye0, target0 := cam.Eye(), cam.Target()
	forward := target0.Sub(eye0).Normalize()
	up := cam.Up()
	right := forward.Cross(up)

	// Forward + strafe + lift in one frame: strafe and lift use the forward captured before any move.
	in.OnKeyEvent(true, common.KeySpace)
	in.OnKeyEvent(true, common.KeyD)
	in.OnKeyEvent(true, common.KeyW)
	in.ApplyTo(cam)

	wantEye := eye0.Add(forward.Mul(DefaultSpeed))
	wantTarget := target0.Add(forward.Mul(DefaultSpeed)).
		Add(right.Mul(DefaultSpeed)).
		Add(up.Mul(-DefaultSpeed))
	assert.Equal(t, wantEye, cam.Eye())
	assert.Equal(t, wantTarget, cam.Target())
}

func TestApplyTo_DegenerateOnlyLifts(t *testing.T) {
	cam, err := camera.NewCamera(100, 100, camera.WithEye(0, 0, 1), camera.WithTarget(0, 0, 0))
	require.NoError(t, err)
	cam.TranslateTarget(mgl32.Vec3{0, 0, 1})
	require.True(t, cam.Degenerate())

	in := NewInput()
	for _, k := range []uint32{common.KeySpace, common.KeyD} {
		in.OnKeyEvent(true, k)
	}
	in.ApplyTo(cam)
	assert.True(t, cam.Degenerate())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, cam.Eye())

	in.OnKeyEvent(true, common.KeyW)
	in.ApplyTo(cam)
	assert.False(t, cam.Degenerate())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, cam.Eye())
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[string][]string{
		"forward":     {"space", "E"},
		"strafe_left": {"a", "left"},
	})
	require.NoError(t, err)
	assert.Equal(t, Bindings{
		common.KeySpace: ActionMoveForward,
		common.KeyE:     ActionMoveForward,
		common.KeyA:     ActionStrafeLeft,
		common.KeyLeft:  ActionStrafeLeft,
	}, b)
	assert.ElementsMatch(t, []uint32{common.KeySpace, common.KeyE}, b.Keys(ActionMoveForward))
}

func TestParseBindings_Errors(t *testing.T) {
	_, err := ParseBindings(map[string][]string{"jump": {"space"}})
	assert.ErrorContains(t, err, "unknown action")

	_, err = ParseBindings(map[string][]string{"forward": {"f13"}})
	assert.ErrorContains(t, err, "unknown key")

	_, err = ParseBindings(map[string][]string{
		"forward":  {"space"},
		"backward": {"space"},
	})
	assert.ErrorContains(t, err, "bound to both")
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "forward", ActionMoveForward.String())
	assert.Equal(t, "lift_down", ActionLiftDown.String())
	assert.Equal(t, "Action(42)", Action(42).String())
	assert.False(t, Action(-1).Valid())
}
