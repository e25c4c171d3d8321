package pipeline

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// FullScreenVertexCount is the vertex count of the two-triangle full-screen draw.
const FullScreenVertexCount = 6

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithCullMode sets the cull mode for this pipeline.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology for this pipeline.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the front face winding order for this pipeline.
//
// Parameters:
//   - frontFace: the winding order
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithWriteMask sets the color write mask for this pipeline.
//
// Parameters:
//   - writeMask: the color write mask
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = writeMask
	}
}

// WithVertexCount overrides the number of vertices issued per draw. Zero is ignored.
//
// Parameters:
//   - count: vertices per draw
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithVertexCount(count uint32) PipelineBuilderOption {
	return func(p *pipeline) {
		if count > 0 {
			p.vertexCount = count
		}
	}
}

// ParseCullMode parses a cull mode name: "none", "front" or "back". An empty name is "none".
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - wgpu.CullMode: the parsed mode
//   - error: error if the name is not recognized
func ParseCullMode(name string) (wgpu.CullMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return wgpu.CullModeNone, nil
	case "front":
		return wgpu.CullModeFront, nil
	case "back":
		return wgpu.CullModeBack, nil
	default:
		return wgpu.CullModeNone, fmt.Errorf("unknown cull mode %q", name)
	}
}

// ParseFrontFace parses a winding order name: "ccw" or "cw". An empty name is "ccw".
//
// Parameters:
//   - name: the winding order name
//
// Returns:
//   - wgpu.FrontFace: the parsed winding order
//   - error: error if the name is not recognized
func ParseFrontFace(name string) (wgpu.FrontFace, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ccw", "":
		return wgpu.FrontFaceCCW, nil
	case "cw":
		return wgpu.FrontFaceCW, nil
	default:
		return wgpu.FrontFaceCCW, fmt.Errorf("unknown front face %q", name)
	}
}

// ParseTopology parses a triangle topology name: "triangle-list" or "triangle-strip".
// An empty name is "triangle-list".
//
// Parameters:
//   - name: the topology name
//
// Returns:
//   - wgpu.PrimitiveTopology: the parsed topology
//   - error: error if the name is not recognized
func ParseTopology(name string) (wgpu.PrimitiveTopology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "triangle-list", "":
		return wgpu.PrimitiveTopologyTriangleList, nil
	case "triangle-strip":
		return wgpu.PrimitiveTopologyTriangleStrip, nil
	default:
		return wgpu.PrimitiveTopologyTriangleList, fmt.Errorf("unknown topology %q", name)
	}
}

// ParseWriteMask parses a color write mask written as channel letters, e.g. "rgba" or "rgb".
// An empty string writes every channel.
//
// Parameters:
//   - channels: any combination of r, g, b and a
//
// Returns:
//   - wgpu.ColorWriteMask: the parsed mask
//   - error: error if a letter is not a channel
func ParseWriteMask(channels string) (wgpu.ColorWriteMask, error) {
	channels = strings.ToLower(strings.TrimSpace(channels))
	if channels == "" {
		return wgpu.ColorWriteMaskAll, nil
	}
	var mask wgpu.ColorWriteMask
	for _, c := range channels {
		switch c {
		case 'r':
			mask |= wgpu.ColorWriteMaskRed
		case 'g':
			mask |= wgpu.ColorWriteMaskGreen
		case 'b':
			mask |= wgpu.ColorWriteMaskBlue
		case 'a':
			mask |= wgpu.ColorWriteMaskAlpha
		default:
			return wgpu.ColorWriteMaskAll, fmt.Errorf("unknown color channel %q in write mask %q", c, channels)
		}
	}
	return mask, nil
}
