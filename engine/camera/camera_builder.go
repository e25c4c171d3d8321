package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option for configuring a Camera in NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithEye sets the camera's initial world-space position.
//
// Parameters:
//   - x, y, z: eye position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the eye position
func WithEye(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the camera's initial look-at point.
//
// Parameters:
//   - x, y, z: target position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the target position
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithUp sets the camera's up vector. The lift controls move the target against this vector,
// so flipping its sign flips the lift direction too.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = mgl32.Vec3{x, y, z}
	}
}

// WithFov sets the vertical field of view in degrees.
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = degrees
	}
}
