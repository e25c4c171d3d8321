package shader

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithKey sets the label used for GPU objects created from this shader.
//
// Parameters:
//   - key: the shader key
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithKey(key string) ShaderBuilderOption {
	return func(s *shader) {
		if key != "" {
			s.key = key
		}
	}
}

// WithPath loads the shader from a WGSL file instead of the embedded source. A leading ~ is expanded.
// Only file-backed shaders can be reloaded.
//
// Parameters:
//   - path: the WGSL file path
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithPath(path string) ShaderBuilderOption {
	return func(s *shader) {
		s.path = path
	}
}

// WithSource uses the given WGSL source instead of the embedded one. Ignored when WithPath is also given.
//
// Parameters:
//   - source: the WGSL source code
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithSource(source string) ShaderBuilderOption {
	return func(s *shader) {
		s.source = source
	}
}
