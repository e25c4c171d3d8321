package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrDegenerateAspect is returned when a viewport size would produce a non-finite or non-positive aspect ratio.
	ErrDegenerateAspect = errors.New("degenerate aspect ratio")

	// ErrDegenerateView is returned when the eye and target coincide, leaving the view direction undefined.
	ErrDegenerateView = errors.New("eye and target coincide")

	// ErrInvalidFov is returned when the field of view is not a positive finite number of degrees.
	ErrInvalidFov = errors.New("invalid field of view")
)

// Default viewpoint used when no options override it.
var (
	DefaultEye    = mgl32.Vec3{31, 11, 27}
	DefaultTarget = mgl32.Vec3{23, 9, 20}
	// DefaultUp points down the world Y axis; the ray-march shader's screen-space Y runs downward
	// and the lift controls are inverted to match.
	DefaultUp = mgl32.Vec3{0, -1, 0}
)

// DefaultFov is the vertical field of view in degrees.
const DefaultFov float32 = 45.0

type cameraImpl struct {
	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	aspect float32
	fov    float32 // degrees
}

// Camera defines the interface for the free-flying viewer camera.
// The camera holds the viewpoint (eye, target, up) and the frame shape (aspect, fov)
// and derives the view matrix on demand. It is owned by the render loop and is not
// safe for concurrent use.
type Camera interface {
	// Eye returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Eye() mgl32.Vec3

	// Target returns the world-space look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// Degenerate reports whether eye and target coincide.
	//
	// Returns:
	//   - bool: true if the view direction is undefined
	Degenerate() bool

	// Translate moves both eye and target by delta, preserving the look direction.
	//
	// Parameters:
	//   - delta: the world-space offset
	Translate(delta mgl32.Vec3)

	// TranslateTarget moves only the target by delta, re-aiming the camera.
	//
	// Parameters:
	//   - delta: the world-space offset
	TranslateTarget(delta mgl32.Vec3)

	// Resize recomputes the aspect ratio from new viewport dimensions. No other field changes.
	// A viewport that would produce a non-finite aspect ratio (for example a minimized window
	// with zero height) leaves the camera untouched and returns ErrDegenerateAspect.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	//
	// Returns:
	//   - error: ErrDegenerateAspect if the dimensions are unusable
	Resize(width, height int) error

	// ViewMatrix returns the right-handed look-at matrix built from eye, target and up,
	// transposed. Read as column-major by WGSL, the result rotates camera-space ray
	// directions into world space. Returns the identity matrix when the camera is degenerate.
	//
	// Returns:
	//   - mgl32.Mat4: the transposed look-at matrix
	ViewMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera for a viewport of the given size.
// Defaults: eye DefaultEye, target DefaultTarget, up DefaultUp, fov DefaultFov.
//
// Parameters:
//   - width: initial viewport width in pixels
//   - height: initial viewport height in pixels
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
//   - error: ErrDegenerateAspect, ErrDegenerateView or ErrInvalidFov if the configuration is unusable
func NewCamera(width, height int, options ...CameraBuilderOption) (Camera, error) {
	c := &cameraImpl{
		eye:    DefaultEye,
		target: DefaultTarget,
		up:     DefaultUp,
		fov:    DefaultFov,
	}
	for _, option := range options {
		option(c)
	}

	aspect, err := aspectRatio(width, height)
	if err != nil {
		return nil, err
	}
	c.aspect = aspect

	if c.fov <= 0 || math32.IsInf(c.fov, 0) || math32.IsNaN(c.fov) {
		return nil, fmt.Errorf("%w: %v degrees", ErrInvalidFov, c.fov)
	}
	if c.Degenerate() {
		return nil, fmt.Errorf("%w: eye=%v target=%v", ErrDegenerateView, c.eye, c.target)
	}
	return c, nil
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	return c.eye
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Degenerate() bool {
	return c.eye == c.target
}

func (c *cameraImpl) Translate(delta mgl32.Vec3) {
	c.eye = c.eye.Add(delta)
	c.target = c.target.Add(delta)
}

func (c *cameraImpl) TranslateTarget(delta mgl32.Vec3) {
	c.target = c.target.Add(delta)
}

func (c *cameraImpl) Resize(width, height int) error {
	aspect, err := aspectRatio(width, height)
	if err != nil {
		return err
	}
	c.aspect = aspect
	return nil
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	if c.Degenerate() {
		return mgl32.Ident4()
	}
	return mgl32.LookAtV(c.eye, c.target, c.up).Transpose()
}

// aspectRatio computes width / height, rejecting sizes that do not give a positive finite ratio.
func aspectRatio(width, height int) (float32, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: viewport %dx%d", ErrDegenerateAspect, width, height)
	}
	aspect := float32(width) / float32(height)
	if math32.IsInf(aspect, 0) || math32.IsNaN(aspect) || aspect <= 0 {
		return 0, fmt.Errorf("%w: viewport %dx%d", ErrDegenerateAspect, width, height)
	}
	return aspect, nil
}
