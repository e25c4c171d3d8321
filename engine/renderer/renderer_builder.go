package renderer

import (
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the color the surface is cleared to before the ray-march pass.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithClearColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithShaderValidation enables or disables naga's IR validation and SPIR-V generation before the
// shader reaches the device. Enabled by default; disable it for WGSL features naga's back end does
// not implement yet. Parsing and lowering always run because they drive the shader's reflection.
//
// Parameters:
//   - enabled: whether to validate
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithShaderValidation(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.validate = enabled
	}
}

// WithPipelineOptions forwards fixed-function options to every pipeline the renderer builds.
//
// Parameters:
//   - options: pipeline options
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPipelineOptions(options ...pipeline.PipelineBuilderOption) RendererBuilderOption {
	return func(r *renderer) {
		r.pipelineOptions = append(r.pipelineOptions, options...)
	}
}
