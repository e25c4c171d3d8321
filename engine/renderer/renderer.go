package renderer

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-march/engine/viewer"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultClearColor is the background behind every ray the shader discards.
var DefaultClearColor = wgpu.Color{R: 0, G: 1, B: 0, A: 1}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backend RendererBackend

	shader   shader.Shader
	pipeline pipeline.Pipeline
	frame    bind_group_provider.BindGroupProvider

	// bindings is the uniform layout the bind group was created for; reloads must keep it.
	bindings []shader.UniformBinding

	// Pre-creation config collected from builder options.
	forceFallbackAdapter bool
	presentMode          PresentMode
	clearColor           wgpu.Color
	validate             bool
	pipelineOptions      []pipeline.PipelineBuilderOption

	frames  uint64
	skipped uint64
}

// Renderer draws the full-screen ray-march pass into a window surface. It owns a single pipeline built
// from one WGSL module and a single bind group holding the per-frame uniform buffer, and it is the
// viewer's FrameTarget.
type Renderer interface {
	viewer.FrameTarget

	// Shader returns the shader the pipeline is built from.
	Shader() shader.Shader

	// Pipeline returns the render pipeline description.
	Pipeline() pipeline.Pipeline

	// FrameBindGroup returns the provider holding the uniform buffer at group 0.
	FrameBindGroup() bind_group_provider.BindGroupProvider

	// Frames returns the number of frames presented.
	Frames() uint64

	// Release releases every GPU resource. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the device, surface, uniform bind group and pipeline for the given shader,
// and configures the surface for the initial framebuffer size.
//
// Parameters:
//   - surfaceDescriptor: the window's surface descriptor
//   - width: initial framebuffer width in pixels
//   - height: initial framebuffer height in pixels
//   - s: the shader to build the pipeline from
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: error if validation or any GPU object creation fails
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, s shader.Shader, options ...RendererBuilderOption) (Renderer, error) {
	if s == nil {
		return nil, fmt.Errorf("renderer requires a shader")
	}
	r := &renderer{
		shader:      s,
		presentMode: PresentModeVSync,
		clearColor:  DefaultClearColor,
		validate:    true,
	}
	for _, opt := range options {
		opt(r)
	}

	if r.validate {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer backend: %w", err)
	}
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	r.backend.ConfigureSurface(width, height)

	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}
	common.Logger().Info("renderer: ready", "shader", s.Key(), "present", r.presentMode.String(), "width", width, "height", height)
	return r, nil
}

// init creates the frame bind group and the pipeline.
func (r *renderer) init() error {
	if err := checkBindings(r.shader.UniformBindings()); err != nil {
		return err
	}
	r.bindings = r.shader.UniformBindings()

	r.frame = bind_group_provider.NewBindGroupProvider("frame", r.shader.BindGroupLayoutDescriptor(0))
	if err := r.backend.InitBindGroup(r.frame); err != nil {
		return fmt.Errorf("failed to create frame bind group: %w", err)
	}

	r.pipeline = pipeline.NewPipeline(r.shader.Key(), r.shader, r.pipelineOptions...)
	if err := r.backend.BuildRenderPipeline(r.pipeline); err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	return nil
}

// checkBindings accepts only uniforms the renderer can fill: the FrameUniform at group 0.
func checkBindings(bindings []shader.UniformBinding) error {
	for _, b := range bindings {
		if b.Group != 0 || b.Type != shader.FrameUniformType {
			return fmt.Errorf("unsupported uniform %q at @group(%d) @binding(%d): only %s at group 0 is provided",
				b.Name, b.Group, b.Binding, shader.FrameUniformType)
		}
	}
	return nil
}

func (r *renderer) Shader() shader.Shader {
	return r.shader
}

func (r *renderer) Pipeline() pipeline.Pipeline {
	return r.pipeline
}

func (r *renderer) FrameBindGroup() bind_group_provider.BindGroupProvider {
	return r.frame
}

func (r *renderer) Frames() uint64 {
	return r.frames
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
	common.Logger().Debug("renderer: surface resized", "width", width, "height", height)
}

func (r *renderer) WriteFrameUniform(data []byte) {
	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: r.frame, Binding: 0, Offset: 0, Data: data},
	})
}

func (r *renderer) DrawFrame() error {
	drawn, err := r.backend.DrawFullScreen(r.pipeline, []bind_group_provider.BindGroupProvider{r.frame})
	if err != nil {
		return err
	}
	if drawn {
		r.frames++
	} else {
		r.skipped++
	}
	return nil
}

// ReloadShader re-reads the shader file and rebuilds the pipeline. The new source is validated,
// checked against the bound uniform layout and built into a pipeline before it replaces anything,
// so a broken edit leaves both the running pipeline and the shader's source untouched.
func (r *renderer) ReloadShader() error {
	var next pipeline.Pipeline
	accept := func(candidate shader.Shader) error {
		if r.validate {
			if err := candidate.Validate(); err != nil {
				return err
			}
		}
		if !slices.Equal(candidate.UniformBindings(), r.bindings) {
			return fmt.Errorf("shader %q changed its uniform bindings; restart to apply", candidate.Key())
		}
		p := pipeline.NewPipeline(candidate.Key(), candidate, r.pipelineOptions...)
		if err := r.backend.BuildRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to rebuild pipeline: %w", err)
		}
		next = p
		return nil
	}

	var err error
	if r.shader.Path() != "" {
		err = r.shader.Reload(accept)
	} else {
		err = accept(r.shader)
	}
	if err != nil {
		return err
	}

	old := r.pipeline
	r.pipeline = next
	old.Release()
	return nil
}

func (r *renderer) Release() {
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.frame != nil {
		r.frame.Release()
		r.frame = nil
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
	common.Logger().Debug("renderer: released", "frames", r.frames, "skipped", r.skipped)
}
