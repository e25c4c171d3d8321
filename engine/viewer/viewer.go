package viewer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/Carmen-Shannon/oxy-march/engine/event"
	"github.com/Carmen-Shannon/oxy-march/engine/input"
)

// ErrClosed is returned from HandleEvent and Dispatch once a close event has been handled.
var ErrClosed = errors.New("viewer closed")

// FrameTarget is the rendering side of the viewer: it owns the GPU surface, the uniform buffer and
// the draw call. The renderer package implements it.
type FrameTarget interface {
	// Resize reconfigures the surface for a new framebuffer size.
	Resize(width, height int)

	// WriteFrameUniform uploads the marshaled GPUFrameUniform into the uniform buffer.
	WriteFrameUniform(data []byte)

	// DrawFrame encodes and presents one frame using the last uploaded uniform block.
	DrawFrame() error

	// ReloadShader rebuilds the render pipeline from the current shader source.
	ReloadShader() error
}

type viewerImpl struct {
	target FrameTarget
	cam    camera.Camera
	input  input.Input

	// uniform is the session's frame block, overwritten in place each frame.
	uniform camera.GPUFrameUniform
	frames  uint64
	closed  bool

	handlers map[event.Kind]func(event.Event) error
}

// Viewer ties the camera, the input state and the per-frame uniform block to a FrameTarget.
// Events are handled strictly in the order given: every key event dispatched before a redraw is
// applied to the input state before that frame updates the camera, and the camera is updated before
// the uniform block is captured. Not safe for concurrent use.
type Viewer interface {
	// Camera returns the viewer's camera.
	Camera() camera.Camera

	// Input returns the viewer's input state.
	Input() input.Input

	// FrameUniform returns a copy of the block captured by the most recent frame.
	FrameUniform() camera.GPUFrameUniform

	// Frames returns the number of frames drawn so far.
	Frames() uint64

	// HandleEvent routes a single event to the handler for its kind.
	//
	// Parameters:
	//   - e: the event to handle
	//
	// Returns:
	//   - error: ErrClosed after a close event, or the error from a failed frame
	HandleEvent(e event.Event) error

	// Dispatch handles events in order and stops at the first error.
	//
	// Parameters:
	//   - events: the events to handle
	//
	// Returns:
	//   - error: the first handler error
	Dispatch(events ...event.Event) error

	// Frame runs one update: input to camera, camera to uniform block, upload, draw.
	//
	// Returns:
	//   - error: the draw error, if any
	Frame() error
}

var _ Viewer = &viewerImpl{}

// NewViewer creates a Viewer for a framebuffer of the given size.
// The camera and input state are built from the camera and input options; pass WithCamera or
// WithInput to supply prebuilt ones instead.
//
// Parameters:
//   - target: the FrameTarget that uploads and draws
//   - width: initial framebuffer width in pixels
//   - height: initial framebuffer height in pixels
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the newly created viewer
//   - error: error if the camera cannot be constructed for the given size
func NewViewer(target FrameTarget, width, height int, options ...ViewerBuilderOption) (Viewer, error) {
	if target == nil {
		return nil, errors.New("viewer requires a frame target")
	}
	v := &viewerImpl{target: target}
	cfg := &viewerConfig{}
	for _, option := range options {
		option(cfg)
	}

	v.cam = cfg.cam
	if v.cam == nil {
		cam, err := camera.NewCamera(width, height, cfg.cameraOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to create camera: %w", err)
		}
		v.cam = cam
	}
	v.input = cfg.input
	if v.input == nil {
		v.input = input.NewInput(cfg.inputOptions...)
	}

	v.handlers = map[event.Kind]func(event.Event) error{
		event.KindKey:          v.handleKey,
		event.KindResize:       v.handleResize,
		event.KindFocus:        v.handleFocus,
		event.KindRedraw:       v.handleRedraw,
		event.KindShaderReload: v.handleShaderReload,
		event.KindClose:        v.handleClose,
	}

	v.uniform = camera.CaptureFrameUniform(v.cam)
	target.WriteFrameUniform(v.uniform.Marshal())
	return v, nil
}

func (v *viewerImpl) Camera() camera.Camera {
	return v.cam
}

func (v *viewerImpl) Input() input.Input {
	return v.input
}

func (v *viewerImpl) FrameUniform() camera.GPUFrameUniform {
	return v.uniform
}

func (v *viewerImpl) Frames() uint64 {
	return v.frames
}

func (v *viewerImpl) HandleEvent(e event.Event) error {
	if v.closed {
		return ErrClosed
	}
	h, ok := v.handlers[e.Kind]
	if !ok {
		common.Logger().Debug("viewer: unhandled event", "event", e.String())
		return nil
	}
	return h(e)
}

func (v *viewerImpl) Dispatch(events ...event.Event) error {
	for _, e := range events {
		if err := v.HandleEvent(e); err != nil {
			return err
		}
	}
	return nil
}

func (v *viewerImpl) Frame() error {
	v.input.ApplyTo(v.cam)
	v.uniform = camera.CaptureFrameUniform(v.cam)
	v.target.WriteFrameUniform(v.uniform.Marshal())
	if err := v.target.DrawFrame(); err != nil {
		return fmt.Errorf("failed to draw frame %d: %w", v.frames, err)
	}
	v.frames++
	return nil
}

func (v *viewerImpl) handleKey(e event.Event) error {
	if !v.input.OnKeyEvent(e.Pressed, e.Key) {
		common.Logger().Debug("viewer: unbound key", "key", e.Key, "name", common.KeyName(e.Key))
	}
	return nil
}

// handleResize reconfigures the surface, then updates the camera aspect.
func (v *viewerImpl) handleResize(e event.Event) error {
	if e.Width <= 0 || e.Height <= 0 {
		common.Logger().Debug("viewer: ignoring empty framebuffer", "width", e.Width, "height", e.Height)
		return nil
	}
	v.target.Resize(e.Width, e.Height)
	if err := v.cam.Resize(e.Width, e.Height); err != nil {
		common.Logger().Warn("viewer: camera resize rejected", "error", err)
	}
	return nil
}

func (v *viewerImpl) handleFocus(e event.Event) error {
	if !e.Focused {
		v.input.Release()
	}
	return nil
}

func (v *viewerImpl) handleRedraw(event.Event) error {
	return v.Frame()
}

// handleShaderReload keeps the previous pipeline when the new source fails to build.
func (v *viewerImpl) handleShaderReload(event.Event) error {
	if err := v.target.ReloadShader(); err != nil {
		common.Logger().Error("viewer: shader reload failed, keeping previous pipeline", "error", err)
		return nil
	}
	common.Logger().Info("viewer: shader reloaded")
	return nil
}

func (v *viewerImpl) handleClose(event.Event) error {
	v.closed = true
	return ErrClosed
}
