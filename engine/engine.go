package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/Carmen-Shannon/oxy-march/engine/event"
	"github.com/Carmen-Shannon/oxy-march/engine/profiler"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-march/engine/viewer"
	"github.com/Carmen-Shannon/oxy-march/engine/window"
)

// engine implements the Engine interface.
// Everything except the shader watcher runs on the thread that calls Run.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	viewer   viewer.Viewer
	queue    *event.Queue
	watcher  *shader.Watcher

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	// err is the first non-close error returned by the viewer; Run reports it.
	err error
}

// Engine drives the viewer from the window's message loop.
// Window callbacks enqueue key, resize and focus events; each loop iteration enqueues a redraw,
// drains the queue in arrival order into the viewer, ticks the profiler and honours the frame limit.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Viewer returns the viewer events are dispatched to.
	//
	// Returns:
	//   - viewer.Viewer: the viewer instance
	Viewer() viewer.Viewer

	// Queue returns the event queue. Producers on other goroutines may push into it.
	//
	// Returns:
	//   - *event.Queue: the event queue
	Queue() *event.Queue

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run runs the message loop on the calling thread until the window closes or the viewer stops.
	// The viewer always receives a close event before Run releases the watcher, renderer and window.
	//
	// Returns:
	//   - error: the first error the viewer reported, or nil on a clean close
	Run() error

	// Quit asks the loop to stop by enqueuing a close event. Safe to call from any goroutine.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine from a window and a viewer and registers the window callbacks.
//
// Parameters:
//   - options: functional options for engine configuration (window, viewer, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if the window or viewer is missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		profiler: profiler.NewProfiler(time.Second),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, fmt.Errorf("engine requires a window")
	}
	if e.viewer == nil {
		return nil, fmt.Errorf("engine requires a viewer")
	}
	if e.queue == nil {
		e.queue = event.NewQueue()
	}

	e.window.SetKeyDownCallback(func(keyCode uint32) {
		e.queue.Push(event.Key(keyCode, true))
	})
	e.window.SetKeyUpCallback(func(keyCode uint32) {
		e.queue.Push(event.Key(keyCode, false))
	})
	e.window.SetResizeCallback(func(width, height int) {
		e.queue.Push(event.Resize(width, height))
	})
	e.window.SetFocusCallback(func(focused bool) {
		e.queue.Push(event.Focus(focused))
	})
	e.window.SetUpdateCallback(e.update)

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Viewer() viewer.Viewer {
	return e.viewer
}

func (e *engine) Queue() *event.Queue {
	return e.queue
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Run() error {
	common.Logger().Info("engine: running", "width", e.window.Width(), "height", e.window.Height())
	e.window.ProcessMessages()

	// The window may have been closed by the platform; the viewer still gets its close event.
	if err := e.viewer.Dispatch(event.Close()); err != nil && !errors.Is(err, viewer.ErrClosed) {
		e.fail(err)
	}
	e.shutdown()
	common.Logger().Info("engine: stopped", "frames", e.viewer.Frames())
	return e.err
}

func (e *engine) Quit() {
	e.queue.Push(event.Close())
}

// update runs one loop iteration. It is the window's update callback.
func (e *engine) update() {
	start := time.Now()

	e.queue.Push(event.Redraw())
	if err := e.viewer.Dispatch(e.queue.Drain()...); err != nil {
		if !errors.Is(err, viewer.ErrClosed) {
			e.fail(err)
		}
		e.window.RequestClose()
		return
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) fail(err error) {
	common.Logger().Error("engine: viewer stopped", "error", err)
	if e.err == nil {
		e.err = err
	}
}

// shutdown releases resources in reverse creation order.
func (e *engine) shutdown() {
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			common.Logger().Warn("engine: failed to close shader watcher", "error", err)
		}
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
	if err := e.window.Close(); err != nil {
		common.Logger().Warn("engine: failed to close window", "error", err)
	}
}
