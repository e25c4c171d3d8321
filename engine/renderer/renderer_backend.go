package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-march/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// Falls back to VSync when the surface does not support immediate presentation.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// ParsePresentMode resolves "vsync" or "uncapped" (case-insensitive) to a PresentMode.
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - PresentMode: the parsed mode
//   - error: error if the name is not recognized
func ParsePresentMode(name string) (PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vsync", "fifo", "":
		return PresentModeVSync, nil
	case "uncapped", "immediate":
		return PresentModeUncapped, nil
	default:
		return PresentModeVSync, fmt.Errorf("unknown present mode %q", name)
	}
}

// RendererBackend is the GPU API the Renderer drives. wgpuRendererBackendImpl is the only implementation.
type RendererBackend interface {
	// ConfigureSurface configures the swap chain for a framebuffer size. Zero sizes are skipped and
	// leave the surface unconfigured until the next non-zero size.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	ConfigureSurface(width, height int)

	// SurfaceConfigured reports whether the surface currently has a non-zero configuration.
	SurfaceConfigured() bool

	// SetPresentMode changes the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the render pass clears to.
	SetClearColor(color wgpu.Color)

	// BuildRenderPipeline creates the GPU pipeline for p from its shader and stores it on p.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: error if the shader module, layout or pipeline cannot be created
	BuildRenderPipeline(p pipeline.Pipeline) error

	// InitBindGroup creates the layout, uniform buffers and bind group for a provider from its descriptor.
	//
	// Parameters:
	//   - provider: the provider to populate
	//
	// Returns:
	//   - error: error if any GPU object cannot be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider) error

	// WriteBuffers queues buffer writes. Invalid writes are skipped.
	//
	// Parameters:
	//   - writes: the writes to queue
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// DrawFullScreen records one render pass that clears the surface, binds the groups in order
	// and draws p's vertex count, then submits and presents.
	//
	// Parameters:
	//   - p: the built pipeline
	//   - bindGroups: providers bound at groups 0..n-1
	//
	// Returns:
	//   - bool: false if the frame was skipped because no surface texture was available
	//   - error: error if command encoding or submission fails
	DrawFullScreen(p pipeline.Pipeline, bindGroups []bind_group_provider.BindGroupProvider) (bool, error)

	// Release releases the device, surface and instance.
	Release()
}
