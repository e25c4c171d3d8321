package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBindGroupLayout reuses an existing bind group layout instead of creating one from the descriptor,
// typically the layout the render pipeline was built with.
//
// Parameters:
//   - bgl: the bind group layout to use
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
	}
}

// WithBuffer binds an existing buffer at a binding index instead of letting the renderer create one.
//
// Parameters:
//   - binding: the binding index
//   - buf: the buffer to bind
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}
