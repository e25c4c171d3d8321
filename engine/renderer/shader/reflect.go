package shader

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// FrameUniformType is the WGSL struct name the viewer uploads its per-frame block into.
const FrameUniformType = "FrameUniform"

// uniformSizes maps the uniform struct types the viewer knows how to fill to their buffer size.
var uniformSizes = map[string]uint64{
	FrameUniformType: camera.FrameUniformSize,
}

// UniformBinding is one `var<uniform>` declaration found in a shader.
type UniformBinding struct {
	Group   int
	Binding int
	Name    string
	// Type is the declared struct name, or empty for unnamed types such as vec4<f32>.
	Type string
	// Size is the buffer size in bytes, or 0 for non-struct types.
	Size uint64
}

type reflection struct {
	vertexEntry   string
	fragmentEntry string
	bindings      []UniformBinding
}

// lower parses and lowers a WGSL module into naga's IR.
func lower(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("lowering error: %w", err)
	}
	return module, nil
}

// reflectModule finds the entry points and uniform declarations of a lowered module.
// The module must have a @vertex and a @fragment entry point and bind a FrameUniform at group 0.
func reflectModule(module *ir.Module) (reflection, error) {
	var r reflection
	for _, ep := range module.EntryPoints {
		switch {
		case ep.Stage == ir.StageVertex && r.vertexEntry == "":
			r.vertexEntry = ep.Name
		case ep.Stage == ir.StageFragment && r.fragmentEntry == "":
			r.fragmentEntry = ep.Name
		}
	}
	if r.vertexEntry == "" {
		return r, errors.New("no @vertex entry point")
	}
	if r.fragmentEntry == "" {
		return r, errors.New("no @fragment entry point")
	}

	r.bindings = uniformBindings(module)
	for _, b := range r.bindings {
		if b.Group == 0 && b.Type == FrameUniformType {
			return r, nil
		}
	}
	return r, ErrNoFrameUniform
}

// uniformBindings collects every uniform-space global with a resource binding, sorted by group then binding.
func uniformBindings(module *ir.Module) []UniformBinding {
	var out []UniformBinding
	for _, gv := range module.GlobalVariables {
		if gv.Space != ir.SpaceUniform || gv.Binding == nil {
			continue
		}
		b := UniformBinding{
			Group:   int(gv.Binding.Group),
			Binding: int(gv.Binding.Binding),
			Name:    gv.Name,
		}
		if int(gv.Type) < len(module.Types) {
			t := module.Types[gv.Type]
			b.Type = t.Name
			if st, ok := t.Inner.(ir.StructType); ok {
				b.Size = uint64(st.Span)
			}
			if size, ok := uniformSizes[t.Name]; ok {
				b.Size = size
			}
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Binding < out[j].Binding
	})
	return out
}

// declaresFrameUniform reports whether the module defines the FrameUniform struct itself.
func declaresFrameUniform(module *ir.Module) bool {
	for _, t := range module.Types {
		if _, ok := t.Inner.(ir.StructType); ok && t.Name == FrameUniformType {
			return true
		}
	}
	return false
}

// bindGroupLayoutDescriptor builds a layout for one group. Every uniform is visible to both stages
// because the vertex and fragment entry points live in the same module.
func bindGroupLayoutDescriptor(key string, group int, bindings []UniformBinding) wgpu.BindGroupLayoutDescriptor {
	desc := wgpu.BindGroupLayoutDescriptor{
		Label: fmt.Sprintf("%s group %d", key, group),
	}
	for _, b := range bindings {
		if b.Group != group {
			continue
		}
		desc.Entries = append(desc.Entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(b.Binding),
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: b.Size,
			},
		})
	}
	return desc
}
