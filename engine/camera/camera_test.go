package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCamera_Defaults(t *testing.T) {
	cam, err := NewCamera(800, 600)
	require.NoError(t, err)

	assert.Equal(t, DefaultEye, cam.Eye())
	assert.Equal(t, DefaultTarget, cam.Target())
	assert.Equal(t, DefaultUp, cam.Up())
	assert.Equal(t, DefaultFov, cam.Fov())
	assert.Equal(t, float32(800)/float32(600), cam.Aspect())
	assert.InDelta(t, 1.3333333, cam.Aspect(), 1e-6)
	assert.False(t, cam.Degenerate())
}

func TestNewCamera_AspectMatchesViewport(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1920, 1080}, {600, 1200}, {3, 7}, {4096, 1}}
	for _, s := range sizes {
		cam, err := NewCamera(s[0], s[1])
		require.NoError(t, err)
		assert.Equal(t, float32(s[0])/float32(s[1]), cam.Aspect(), "viewport %dx%d", s[0], s[1])
	}
}

func TestNewCamera_ZeroHeight(t *testing.T) {
	cam, err := NewCamera(800, 0)
	assert.Nil(t, cam)
	assert.ErrorIs(t, err, ErrDegenerateAspect)
}

func TestNewCamera_NonPositiveWidth(t *testing.T) {
	_, err := NewCamera(0, 600)
	assert.ErrorIs(t, err, ErrDegenerateAspect)

	_, err = NewCamera(-10, 600)
	assert.ErrorIs(t, err, ErrDegenerateAspect)
}

func TestNewCamera_Options(t *testing.T) {
	cam, err := NewCamera(100, 100,
		WithEye(0, 0, 5),
		WithTarget(0, 0, 0),
		WithUp(0, 1, 0),
		WithFov(60),
	)
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{0, 0, 5}, cam.Eye())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Target())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Up())
	assert.Equal(t, float32(60), cam.Fov())
}

func TestNewCamera_DegenerateView(t *testing.T) {
	_, err := NewCamera(100, 100, WithEye(1, 2, 3), WithTarget(1, 2, 3))
	assert.ErrorIs(t, err, ErrDegenerateView)
}

func TestNewCamera_InvalidFov(t *testing.T) {
	_, err := NewCamera(100, 100, WithFov(0))
	assert.ErrorIs(t, err, ErrInvalidFov)

	_, err = NewCamera(100, 100, WithFov(-45))
	assert.ErrorIs(t, err, ErrInvalidFov)
}

func TestResize_OnlyChangesAspect(t *testing.T) {
	cam, err := NewCamera(800, 600)
	require.NoError(t, err)

	eye, target, up, fov := cam.Eye(), cam.Target(), cam.Up(), cam.Fov()

	require.NoError(t, cam.Resize(1024, 256))
	assert.Equal(t, float32(4), cam.Aspect())
	assert.Equal(t, eye, cam.Eye())
	assert.Equal(t, target, cam.Target())
	assert.Equal(t, up, cam.Up())
	assert.Equal(t, fov, cam.Fov())

	// Repeated resizes are idempotent on everything but aspect.
	for i := 1; i <= 10; i++ {
		require.NoError(t, cam.Resize(i*100, 100))
		assert.Equal(t, float32(i), cam.Aspect())
	}
	assert.Equal(t, eye, cam.Eye())
	assert.Equal(t, target, cam.Target())
}

func TestResize_ZeroHeightKeepsState(t *testing.T) {
	cam, err := NewCamera(800, 600)
	require.NoError(t, err)

	err = cam.Resize(800, 0)
	assert.ErrorIs(t, err, ErrDegenerateAspect)
	assert.Equal(t, float32(800)/float32(600), cam.Aspect())
}

func TestTranslate(t *testing.T) {
	cam, err := NewCamera(100, 100, WithEye(0, 0, 5), WithTarget(0, 0, 0))
	require.NoError(t, err)

	cam.Translate(mgl32.Vec3{1, 2, 3})
	assert.Equal(t, mgl32.Vec3{1, 2, 8}, cam.Eye())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Target())

	cam.TranslateTarget(mgl32.Vec3{-1, 0, 0})
	assert.Equal(t, mgl32.Vec3{1, 2, 8}, cam.Eye())
	assert.Equal(t, mgl32.Vec3{0, 2, 3}, cam.Target())
}

func TestViewMatrix_IsTransposedLookAt(t *testing.T) {
	cam, err := NewCamera(800, 600)
	require.NoError(t, err)

	view := cam.ViewMatrix()
	assert.Equal(t, mgl32.LookAtV(cam.Eye(), cam.Target(), cam.Up()), view.Transpose())
}

func TestViewMatrix_MapsEyeAndTarget(t *testing.T) {
	cam, err := NewCamera(800, 600)
	require.NoError(t, err)

	lookAt := cam.ViewMatrix().Transpose()

	eyeView := lookAt.Mul4x1(cam.Eye().Vec4(1))
	assert.InDelta(t, 0, eyeView.X(), 1e-4)
	assert.InDelta(t, 0, eyeView.Y(), 1e-4)
	assert.InDelta(t, 0, eyeView.Z(), 1e-4)

	// Right-handed: the target lies on the negative Z axis in view space.
	dist := cam.Target().Sub(cam.Eye()).Len()
	targetView := lookAt.Mul4x1(cam.Target().Vec4(1))
	assert.InDelta(t, 0, targetView.X(), 1e-4)
	assert.InDelta(t, 0, targetView.Y(), 1e-4)
	assert.InDelta(t, -dist, targetView.Z(), 1e-4)
}

func TestViewMatrix_Pure(t *testing.T) {
	cam, err := NewCamera(800, 600)
	require.NoError(t, err)

	first := cam.ViewMatrix()
	second := cam.ViewMatrix()
	assert.Equal(t, first, second)
	assert.Equal(t, DefaultEye, cam.Eye())
}

func TestViewMatrix_IgnoresAspect(t *testing.T) {
	cam, err := NewCamera(800, 600)
	require.NoError(t, err)

	before := cam.ViewMatrix()
	require.NoError(t, cam.Resize(300, 900))
	assert.Equal(t, before, cam.ViewMatrix())
}

func TestViewMatrix_DegenerateIsIdentity(t *testing.T) {
	cam, err := NewCamera(100, 100, WithEye(0, 0, 1), WithTarget(0, 0, 0))
	require.NoError(t, err)

	cam.TranslateTarget(mgl32.Vec3{0, 0, 1})
	require.True(t, cam.Degenerate())
	assert.Equal(t, mgl32.Ident4(), cam.ViewMatrix())
}
