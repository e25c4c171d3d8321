package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-march/engine/event"
	"github.com/Carmen-Shannon/oxy-march/engine/profiler"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-march/engine/viewer"
	"github.com/Carmen-Shannon/oxy-march/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerInterval sets how often profiling stats are logged. Values <= 0 use one second.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(interval)
	}
}

// WithWindow sets the window whose message loop drives the engine. Required.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithViewer sets the viewer events are dispatched to. Required.
//
// Parameters:
//   - v: the viewer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewer(v viewer.Viewer) EngineBuilderOption {
	return func(e *engine) {
		e.viewer = v
	}
}

// WithRenderer hands the renderer to the engine so it is released when Run returns.
//
// Parameters:
//   - r: the renderer backing the viewer's frame target
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithQueue sets the event queue, typically one a shader watcher already pushes into.
//
// Parameters:
//   - q: the event queue
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithQueue(q *event.Queue) EngineBuilderOption {
	return func(e *engine) {
		e.queue = q
	}
}

// WithShaderWatcher hands a running shader watcher to the engine so it is closed when Run returns.
//
// Parameters:
//   - w: the watcher
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithShaderWatcher(w *shader.Watcher) EngineBuilderOption {
	return func(e *engine) {
		e.watcher = w
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}
