package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUFrameUniformSource is the canonical WGSL definition of the FrameUniform struct.
// Matches GPUFrameUniform layout exactly (96 bytes, WGSL uniform aligned).
//
//go:embed assets/frame_uniform.wgsl
var GPUFrameUniformSource string

// Byte offsets of each GPUFrameUniform field in the marshaled block.
const (
	FrameUniformViewOffset   = 0
	FrameUniformEyeOffset    = 64
	FrameUniformAspectOffset = 80
	FrameUniformFovOffset    = 84
	FrameUniformSize         = 96
)

// GPUFrameUniform is the GPU-aligned snapshot of the camera uploaded once per frame.
// Matches the WGSL FrameUniform struct layout exactly (see GPUFrameUniformSource).
// New fields may only be appended after FieldOfView, replacing padding.
// Size: 96 bytes (mat4x4 + vec4 + vec2, struct size rounded up to 16).
type GPUFrameUniform struct {
	View        [16]float32 // offset  0: camera.ViewMatrix() (mat4x4<f32>)
	Eye         [4]float32  // offset 64: world-space eye position, w = 1 (vec4<f32>)
	AspectRatio float32     // offset 80: width / height (camera.x)
	FieldOfView float32     // offset 84: vertical fov in degrees (camera.y)
	_pad        [2]float32  // offset 88: padding to 96 bytes
}

// CaptureFrameUniform builds a fully populated GPUFrameUniform from the camera's current state.
// The block owns no state of its own; call it every frame after the camera has been updated.
//
// Parameters:
//   - cam: the camera to snapshot
//
// Returns:
//   - GPUFrameUniform: the new uniform block
func CaptureFrameUniform(cam Camera) GPUFrameUniform {
	eye := cam.Eye()
	return GPUFrameUniform{
		View:        cam.ViewMatrix(),
		Eye:         [4]float32{eye[0], eye[1], eye[2], 1},
		AspectRatio: cam.Aspect(),
		FieldOfView: cam.Fov(),
	}
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPUFrameUniform) Size() int {
	return FrameUniformSize
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
// The layout is written field by field in little-endian order and does not depend on Go's
// in-memory struct layout.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[FrameUniformViewOffset+i*4:], math.Float32bits(g.View[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[FrameUniformEyeOffset+i*4:], math.Float32bits(g.Eye[i]))
	}
	binary.LittleEndian.PutUint32(buf[FrameUniformAspectOffset:], math.Float32bits(g.AspectRatio))
	binary.LittleEndian.PutUint32(buf[FrameUniformFovOffset:], math.Float32bits(g.FieldOfView))
	// bytes 88..95 stay zero (_pad)
	return buf
}
