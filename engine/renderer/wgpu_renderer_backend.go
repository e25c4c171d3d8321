package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuRendererBackendImpl drives cogentcore/webgpu: one instance, adapter, device and surface.
type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	presentMode   PresentMode
	clearColor    wgpu.Color

	width      uint32
	height     uint32
	configured bool
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter and device.
// The surface format is resolved here so pipelines can be built before the first resize.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuRendererBackendImpl, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("renderer requires a surface descriptor")
	}
	runtime.LockOSThread()

	b := &wgpuRendererBackendImpl{
		mu:         &sync.Mutex{},
		instance:   wgpu.CreateInstance(nil),
		clearColor: DefaultClearColor,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "oxy-march device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		b.Release()
		return nil, errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = &capabilities.Formats[0]

	common.Logger().Info("renderer: device ready", "fallback", forceFallbackAdapter, "format", *b.surfaceFormat)
	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.configureSurface(width, height)
}

// configureSurface requires b.mu to be held.
func (b *wgpuRendererBackendImpl) configureSurface(width, height int) {
	if width <= 0 || height <= 0 {
		b.configured = false
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.resolvePresentMode(capabilities.PresentModes),
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.width, b.height = uint32(width), uint32(height)
	b.configured = true
}

// resolvePresentMode maps the requested mode onto what the surface supports. Fifo is always available.
func (b *wgpuRendererBackendImpl) resolvePresentMode(supported []wgpu.PresentMode) wgpu.PresentMode {
	if b.presentMode == PresentModeUncapped {
		for _, candidate := range []wgpu.PresentMode{wgpu.PresentModeImmediate, wgpu.PresentModeMailbox} {
			if slices.Contains(supported, candidate) {
				return candidate
			}
		}
		common.Logger().Warn("renderer: uncapped present mode unsupported, using vsync")
	}
	return wgpu.PresentModeFifo
}

func (b *wgpuRendererBackendImpl) SurfaceConfigured() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.configured
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *wgpuRendererBackendImpl) SetClearColor(color wgpu.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearColor = color
}

func (b *wgpuRendererBackendImpl) BuildRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := p.Shader()
	if s == nil {
		return errors.New("pipeline has no shader")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: s.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shader module %q: %w", s.Key(), err)
	}
	defer module.Release()

	desc := s.BindGroupLayoutDescriptor(0)
	layout, err := b.device.CreateBindGroupLayout(&desc)
	if err != nil {
		return fmt.Errorf("failed to create bind group layout for group 0: %w", err)
	}
	layouts := []*wgpu.BindGroupLayout{layout}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: layouts,
	})
	if err != nil {
		layout.Release()
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.VertexEntryPoint(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: p.WriteMask(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		layout.Release()
		return fmt.Errorf("failed to create render pipeline %q: %w", p.PipelineKey(), err)
	}

	p.SetRenderPipeline(created, layouts)
	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	descriptor := provider.Descriptor()
	if len(descriptor.Entries) == 0 {
		return nil
	}

	layout := provider.BindGroupLayout()
	if layout == nil {
		var err error
		layout, err = b.device.CreateBindGroupLayout(&descriptor)
		if err != nil {
			return fmt.Errorf("failed to create bind group layout %q: %w", provider.Label(), err)
		}
		provider.SetBindGroupLayout(layout)
	}

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
			return fmt.Errorf("binding %d of %q is not a uniform buffer", entry.Binding, provider.Label())
		}
		if entry.Buffer.MinBindingSize == 0 {
			return fmt.Errorf("binding %d of %q has an unknown size", entry.Binding, provider.Label())
		}
		binding := int(entry.Binding)

		buf := provider.Buffer(binding)
		if buf == nil {
			var err error
			buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: fmt.Sprintf("%s binding %d", provider.Label(), binding),
				Size:  entry.Buffer.MinBindingSize,
				Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return fmt.Errorf("failed to create uniform buffer %d of %q: %w", binding, provider.Label(), err)
			}
			provider.SetBuffer(binding, buf)
		}
		entries[i] = wgpu.BindGroupEntry{
			Binding: entry.Binding,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group %q: %w", provider.Label(), err)
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		if !w.Valid() {
			continue
		}
		b.queue.WriteBuffer(w.Provider.Buffer(w.Binding), w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) DrawFullScreen(p pipeline.Pipeline, bindGroups []bind_group_provider.BindGroupProvider) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return false, nil
	}
	rp := p.RenderPipeline()
	if rp == nil {
		return false, fmt.Errorf("pipeline %q has not been built", p.PipelineKey())
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		// Outdated or lost swap chain: reconfigure at the current size and skip this frame.
		common.Logger().Warn("renderer: surface texture unavailable, reconfiguring", "error", err)
		b.configureSurface(int(b.width), int(b.height))
		return false, nil
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return false, fmt.Errorf("failed to create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return false, fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: b.clearColor,
			},
		},
	})
	pass.SetPipeline(rp)
	for i, bg := range bindGroups {
		pass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}
	pass.Draw(p.VertexCount(), 1, 0, 0)
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return false, fmt.Errorf("failed to finish command encoder: %w", err)
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return true, nil
}

func (b *wgpuRendererBackendImpl) Release() {
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
