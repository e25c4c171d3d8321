package viewer

import (
	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/Carmen-Shannon/oxy-march/engine/input"
)

// viewerConfig collects builder options before the camera and input state are constructed.
type viewerConfig struct {
	cam           camera.Camera
	input         input.Input
	cameraOptions []camera.CameraBuilderOption
	inputOptions  []input.InputBuilderOption
}

// ViewerBuilderOption is a functional option for configuring a Viewer in NewViewer.
type ViewerBuilderOption func(*viewerConfig)

// WithCamera uses a prebuilt camera. Camera options are ignored when set.
//
// Parameters:
//   - cam: the camera to drive
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithCamera(cam camera.Camera) ViewerBuilderOption {
	return func(c *viewerConfig) {
		c.cam = cam
	}
}

// WithCameraOptions forwards options to camera.NewCamera.
//
// Parameters:
//   - options: camera options
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithCameraOptions(options ...camera.CameraBuilderOption) ViewerBuilderOption {
	return func(c *viewerConfig) {
		c.cameraOptions = append(c.cameraOptions, options...)
	}
}

// WithInput uses a prebuilt input state. Input options are ignored when set.
//
// Parameters:
//   - in: the input state
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithInput(in input.Input) ViewerBuilderOption {
	return func(c *viewerConfig) {
		c.input = in
	}
}

// WithInputOptions forwards options to input.NewInput.
//
// Parameters:
//   - options: input options
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithInputOptions(options ...input.InputBuilderOption) ViewerBuilderOption {
	return func(c *viewerConfig) {
		c.inputOptions = append(c.inputOptions, options...)
	}
}
