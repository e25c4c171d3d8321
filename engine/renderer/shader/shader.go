package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
	"github.com/mitchellh/go-homedir"
)

// DefaultKey labels the embedded ray-march shader.
const DefaultKey = "raymarch"

//go:embed assets/raymarch.wgsl
var raymarchSource string

// ErrNoFrameUniform is returned when a shader source does not bind a FrameUniform at group 0.
var ErrNoFrameUniform = errors.New("shader does not bind a FrameUniform at @group(0)")

// shader is the implementation of the Shader interface.
type shader struct {
	mu sync.RWMutex

	key  string
	path string

	// source is the full WGSL module, FrameUniform declaration included.
	source   string
	vsEntry  string
	fsEntry  string
	bindings []UniformBinding
}

// Shader is a single WGSL module holding both the vertex and fragment stage of the full-screen ray marcher.
// Its source comes from the embedded asset or from a file that can be reloaded while the viewer runs.
type Shader interface {
	// Key retrieves the label used for GPU objects created from this shader.
	//
	// Returns:
	//   - string: the shader's key
	Key() string

	// Path retrieves the file the shader was loaded from, or an empty string for the embedded source.
	//
	// Returns:
	//   - string: the expanded file path
	Path() string

	// Source retrieves the complete WGSL source, FrameUniform struct included.
	//
	// Returns:
	//   - string: the WGSL source code
	Source() string

	// VertexEntryPoint retrieves the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint retrieves the name of the @fragment function.
	FragmentEntryPoint() string

	// UniformBindings retrieves the uniform declarations found in the source, sorted by group then binding.
	//
	// Returns:
	//   - []UniformBinding: the uniform bindings
	UniformBindings() []UniformBinding

	// BindGroupLayoutDescriptor builds the layout descriptor for the given group from the uniform declarations.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, with no entries if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// Validate compiles the source with naga and reports the first compile error.
	//
	// Returns:
	//   - error: the compile error, or nil if the module compiles
	Validate() error

	// Reload re-reads the source from Path. The new source is loaded into a candidate shader and
	// every check runs against it before anything is swapped in. On any error the previous source stays in place.
	//
	// Parameters:
	//   - checks: extra acceptance checks run on the candidate, in order
	//
	// Returns:
	//   - error: error if the shader has no path, the new source is unusable or a check rejects it
	Reload(checks ...ReloadCheck) error
}

// ReloadCheck inspects a reloaded candidate before it replaces the running source.
// Returning an error rejects the candidate.
type ReloadCheck func(candidate Shader) error

var _ Shader = &shader{}

// NewShader creates a Shader from the embedded ray-march source, or from a file when WithPath is given.
//
// Parameters:
//   - options: functional options to configure the shader
//
// Returns:
//   - Shader: the loaded shader
//   - error: error if the file cannot be read or the source lacks entry points or the FrameUniform binding
func NewShader(options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key:    DefaultKey,
		source: raymarchSource,
	}
	for _, opt := range options {
		opt(s)
	}

	if s.path != "" {
		expanded, err := homedir.Expand(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand shader path %q: %w", s.path, err)
		}
		s.path = expanded
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read shader %q: %w", s.path, err)
		}
		s.source = string(data)
	}

	if err := s.apply(s.source); err != nil {
		return nil, fmt.Errorf("failed to load shader %q: %w", s.key, err)
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Path() string {
	return s.path
}

func (s *shader) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vsEntry
}

func (s *shader) FragmentEntryPoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fsEntry
}

func (s *shader) UniformBindings() []UniformBinding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UniformBinding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return bindGroupLayoutDescriptor(s.key, group, s.UniformBindings())
}

func (s *shader) Validate() error {
	if _, err := naga.Compile(s.Source()); err != nil {
		return fmt.Errorf("failed to compile shader %q: %w", s.key, err)
	}
	return nil
}

func (s *shader) Reload(checks ...ReloadCheck) error {
	if s.path == "" {
		return errors.New("shader has no source file to reload")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read shader %q: %w", s.path, err)
	}

	candidate := &shader{key: s.key, path: s.path}
	if err := candidate.apply(string(data)); err != nil {
		return fmt.Errorf("failed to reload shader %q: %w", s.key, err)
	}
	for _, check := range checks {
		if err := check(candidate); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.source = candidate.source
	s.vsEntry = candidate.vsEntry
	s.fsEntry = candidate.fsEntry
	s.bindings = candidate.bindings
	s.mu.Unlock()

	common.Logger().Debug("shader: source reloaded", "key", s.key, "path", s.path)
	return nil
}

// apply lowers src with naga, prepending the FrameUniform declaration when src does not define it,
// and swaps the result in only if reflection succeeds.
func (s *shader) apply(src string) error {
	full, r, err := prepare(src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = full
	s.vsEntry = r.vertexEntry
	s.fsEntry = r.fragmentEntry
	s.bindings = r.bindings
	return nil
}

// prepare returns the complete module source and its reflection. A source that lowers on its own
// and defines FrameUniform is used as is; anything else gets camera.GPUFrameUniformSource in front.
func prepare(src string) (string, reflection, error) {
	if module, err := lower(src); err == nil && declaresFrameUniform(module) {
		r, err := reflectModule(module)
		return src, r, err
	}

	var b strings.Builder
	b.Grow(len(camera.GPUFrameUniformSource) + len(src) + 1)
	b.WriteString(camera.GPUFrameUniformSource)
	b.WriteString("\n")
	b.WriteString(src)
	full := b.String()

	module, err := lower(full)
	if err != nil {
		return "", reflection{}, err
	}
	r, err := reflectModule(module)
	return full, r, err
}
