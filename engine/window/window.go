package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the platform window the viewer draws into.
// It owns the OS event pump and forwards key, resize and focus changes to the registered callbacks
// on the thread that calls ProcessMessages.
type Window interface {
	// SetUpdateCallback sets the function called once per message loop iteration, after pending
	// platform events have been delivered.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer size changes.
	//
	// Parameters:
	//   - callback: function receiving the new framebuffer width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events. Auto-repeat is reported as a press.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetFocusCallback sets the callback for focus changes.
	//
	// Parameters:
	//   - callback: function receiving true when the window gains focus
	SetFocusCallback(callback func(focused bool))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor for the window, built by the wgpuglfw bridge.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: true if window is running, false once closed or asked to close
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// ProcessMessages runs the window message loop on the calling thread.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow holds window configuration, GLFW state and event callbacks.
type engineWindow struct {
	title string

	// Size limits applied while the user resizes the window.
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height track the framebuffer, not the window, so they are pixel-accurate on high-DPI displays.
	width  int
	height int

	// closeKey closes the window when pressed; 0 disables it.
	closeKey uint32

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
	onFocus   func(focused bool)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a Window with the specified options.
// Must be called from the main goroutine; the calling OS thread stays locked to it.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     DefaultTitle,
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
		closeKey:  common.KeyEsc,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetFocusCallback(callback func(focused bool)) {
	w.onFocus = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
