package pipeline

import (
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	shader      shader.Shader

	// GPU objects, set by the renderer once the pipeline is built.
	renderPipeline   *wgpu.RenderPipeline
	bindGroupLayouts []*wgpu.BindGroupLayout

	// Fixed-function state applied at creation.
	cullMode    wgpu.CullMode
	topology    wgpu.PrimitiveTopology
	frontFace   wgpu.FrontFace
	writeMask   wgpu.ColorWriteMask
	vertexCount uint32
}

// Pipeline describes the full-screen render pipeline: the shader module holding both stages, the
// fixed-function state, the vertex count of the procedural draw and, once built, the GPU objects.
// No vertex buffers are bound; the vertex shader derives positions from the vertex index.
type Pipeline interface {
	// PipelineKey returns the label used for the GPU objects.
	PipelineKey() string

	// Shader returns the WGSL module both stages are taken from.
	Shader() shader.Shader

	// RenderPipeline returns the built GPU pipeline, or nil before the renderer has built it.
	RenderPipeline() *wgpu.RenderPipeline

	// BindGroupLayouts returns the layouts the pipeline was built with, indexed by group.
	BindGroupLayouts() []*wgpu.BindGroupLayout

	// CullMode returns the configured cull mode.
	CullMode() wgpu.CullMode

	// Topology returns the configured primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the configured front face winding order.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask of the single color target.
	WriteMask() wgpu.ColorWriteMask

	// VertexCount returns the number of vertices issued per draw.
	VertexCount() uint32

	// SetRenderPipeline stores the built GPU pipeline and the layouts it was created with.
	// Any previously stored pipeline and layouts are released.
	//
	// Parameters:
	//   - rp: the render pipeline
	//   - layouts: the bind group layouts, indexed by group
	SetRenderPipeline(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout)

	// Release releases the GPU pipeline and its layouts.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline description for the given shader. The GPU pipeline is built by the renderer.
//
// Parameters:
//   - pipelineKey: label for the GPU objects
//   - s: the shader module providing both stages
//   - opts: functional options to configure fixed-function state
//
// Returns:
//   - Pipeline: the new pipeline description
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		shader:      s,
		cullMode:    wgpu.CullModeNone,
		topology:    wgpu.PrimitiveTopologyTriangleList,
		frontFace:   wgpu.FrontFaceCCW,
		writeMask:   wgpu.ColorWriteMaskAll,
		vertexCount: FullScreenVertexCount,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BindGroupLayouts() []*wgpu.BindGroupLayout {
	return p.bindGroupLayouts
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) VertexCount() uint32 {
	return p.vertexCount
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout) {
	p.Release()
	p.renderPipeline = rp
	p.bindGroupLayouts = layouts
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	for _, l := range p.bindGroupLayouts {
		if l != nil {
			l.Release()
		}
	}
	p.bindGroupLayouts = nil
}
