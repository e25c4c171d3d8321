package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	label string

	// descriptor describes the layout the renderer creates GPU objects from.
	descriptor wgpu.BindGroupLayoutDescriptor

	// GPU resources below are populated by the renderer and released by Release.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
}

// BindGroupProvider holds one bind group, its layout and the buffers bound into it.
// The renderer fills it from Descriptor and binds BindGroup for every draw; the viewer's
// per-frame uniform block is written into Buffer(0).
type BindGroupProvider interface {
	// Release releases the bind group, the layout and every buffer.
	Release()

	// Label returns the debug label used for the GPU objects.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Descriptor returns the bind group layout descriptor this provider was created for.
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
	Descriptor() wgpu.BindGroupLayoutDescriptor

	// BindGroup returns the created bind group, or nil before initialization.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout, or nil before initialization.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at a binding index, or nil if none was created.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns every buffer keyed by binding index.
	Buffers() map[int]*wgpu.Buffer

	// Initialized reports whether the bind group has been created.
	Initialized() bool

	// SetBindGroup stores the created bind group.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the created bind group layout.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores the buffer created for a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty BindGroupProvider for the given layout descriptor.
//
// Parameters:
//   - label: debug label for the GPU objects
//   - descriptor: the layout the renderer builds the bind group from
//   - options: functional options to configure the provider
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, descriptor wgpu.BindGroupLayoutDescriptor, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:      label,
		descriptor: descriptor,
		buffers:    make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Descriptor() wgpu.BindGroupLayoutDescriptor {
	return p.descriptor
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) Initialized() bool {
	return p.bindGroup != nil
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
}
