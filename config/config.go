package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/Carmen-Shannon/oxy-march/engine/input"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-march/engine/window"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config path is given. A missing file there is not an error.
const DefaultPath = "~/.config/oxy-march/config.yaml"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk viewer configuration. Zero fields fall back to the component defaults.
type Config struct {
	Window    WindowConfig   `yaml:"window"`
	Camera    CameraConfig   `yaml:"camera"`
	Input     InputConfig    `yaml:"input"`
	Renderer  RendererConfig `yaml:"renderer"`
	Pipeline  PipelineConfig `yaml:"pipeline"`
	Shader    ShaderConfig   `yaml:"shader"`
	LogLevel  string         `yaml:"log_level"`
	Profiling bool           `yaml:"profiling"`

	// ProfilerInterval is how often profiling stats are logged; zero means one second.
	ProfilerInterval time.Duration `yaml:"profiler_interval"`
	FPSLimit         float64       `yaml:"fps_limit"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
	MaxWidth  int    `yaml:"max_width"`
	MaxHeight int    `yaml:"max_height"`
}

type CameraConfig struct {
	Eye    []float32 `yaml:"eye"`
	Target []float32 `yaml:"target"`
	Up     []float32 `yaml:"up"`
	Fov    float32   `yaml:"fov"`
}

type InputConfig struct {
	Speed float32 `yaml:"speed"`
	// Bindings maps action names to key names. When set it replaces the default table.
	Bindings map[string][]string `yaml:"bindings"`
	// ExtraBindings adds keys on top of the active table, overriding any action a key already had.
	ExtraBindings map[string][]string `yaml:"extra_bindings"`
}

type RendererConfig struct {
	PresentMode string `yaml:"present_mode"`
	Software    bool   `yaml:"software"`
	// ClearColor is RGBA in [0, 1].
	ClearColor []float64 `yaml:"clear_color"`
	// Validate is a pointer so an absent key keeps validation on.
	Validate *bool `yaml:"validate"`
}

// PipelineConfig is the fixed-function state of the full-screen pass. A custom vertex stage that
// draws one oversized triangle, for example, sets vertex_count to 3.
type PipelineConfig struct {
	CullMode    string `yaml:"cull_mode"`
	FrontFace   string `yaml:"front_face"`
	Topology    string `yaml:"topology"`
	WriteMask   string `yaml:"write_mask"`
	VertexCount uint32 `yaml:"vertex_count"`
}

type ShaderConfig struct {
	Path     string        `yaml:"path"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - *Config: a config populated with every component default
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     window.DefaultTitle,
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 240,
			MaxWidth:  3840,
			MaxHeight: 2160,
		},
		Camera: CameraConfig{
			Eye:    clone3(camera.DefaultEye),
			Target: clone3(camera.DefaultTarget),
			Up:     clone3(camera.DefaultUp),
			Fov:    camera.DefaultFov,
		},
		Input: InputConfig{
			Speed: input.DefaultSpeed,
		},
		Renderer: RendererConfig{
			PresentMode: renderer.PresentModeVSync.String(),
		},
		Shader: ShaderConfig{
			Debounce: shader.DefaultDebounce,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config on top of the defaults and validates the result.
// An empty path reads DefaultPath, which may be missing. Paths may start with "~".
//
// Parameters:
//   - path: the config file path, or "" for DefaultPath
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if the file cannot be read or parsed, or the result is invalid
func Load(path string) (*Config, error) {
	optional := path == ""
	path = common.Coalesce(path, DefaultPath)

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %q: %w", path, err)
	}

	cfg := Default()
	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
	case optional && errors.Is(err, os.ErrNotExist):
		common.Logger().Debug("config: no config file, using defaults", "path", expanded)
		return cfg, nil
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate checks every section. Errors wrap ErrInvalidConfig.
//
// Returns:
//   - error: the first problem found, or nil
func (c *Config) Validate() error {
	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		return invalid("window size %dx%d must be positive", w.Width, w.Height)
	}
	if w.MinWidth > w.MaxWidth || w.MinHeight > w.MaxHeight {
		return invalid("window min size %dx%d exceeds max size %dx%d", w.MinWidth, w.MinHeight, w.MaxWidth, w.MaxHeight)
	}

	for name, v := range map[string][]float32{"eye": c.Camera.Eye, "target": c.Camera.Target, "up": c.Camera.Up} {
		if len(v) != 3 {
			return invalid("camera.%s needs 3 components, got %d", name, len(v))
		}
		for _, f := range v {
			if math32.IsNaN(f) || math32.IsInf(f, 0) {
				return invalid("camera.%s has a non-finite component", name)
			}
		}
	}
	if vec3(c.Camera.Eye) == vec3(c.Camera.Target) {
		return invalid("camera eye and target coincide")
	}
	if !(c.Camera.Fov > 0 && c.Camera.Fov < 180) {
		return invalid("camera.fov %v must be in (0, 180)", c.Camera.Fov)
	}

	if c.Input.Speed <= 0 {
		return invalid("input.speed %v must be positive", c.Input.Speed)
	}
	if _, err := c.InputBindings(); err != nil {
		return invalid("input.bindings: %v", err)
	}
	if _, err := input.ParseBindings(c.Input.ExtraBindings); err != nil {
		return invalid("input.extra_bindings: %v", err)
	}

	if _, err := renderer.ParsePresentMode(c.Renderer.PresentMode); err != nil {
		return invalid("renderer.present_mode: %v", err)
	}
	if n := len(c.Renderer.ClearColor); n != 0 && n != 4 {
		return invalid("renderer.clear_color needs 4 components, got %d", n)
	}

	if _, err := c.PipelineOptions(); err != nil {
		return invalid("pipeline: %v", err)
	}

	if c.Shader.Debounce < 0 {
		return invalid("shader.debounce %v must not be negative", c.Shader.Debounce)
	}
	if _, err := common.ParseLogLevel(c.LogLevel); err != nil {
		return invalid("log_level: %v", err)
	}
	if c.ProfilerInterval < 0 {
		return invalid("profiler_interval %v must not be negative", c.ProfilerInterval)
	}
	if c.FPSLimit < 0 {
		return invalid("fps_limit %v must not be negative", c.FPSLimit)
	}
	return nil
}

// InputBindings resolves the configured key table, or returns nil when the defaults apply.
//
// Returns:
//   - input.Bindings: the parsed table or nil
//   - error: error if an action or key name is unknown
func (c *Config) InputBindings() (input.Bindings, error) {
	if len(c.Input.Bindings) == 0 {
		return nil, nil
	}
	return input.ParseBindings(c.Input.Bindings)
}

// WindowOptions converts the window section into builder options.
func (c *Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithSize(c.Window.Width, c.Window.Height),
		window.WithMinSize(c.Window.MinWidth, c.Window.MinHeight),
		window.WithMaxSize(c.Window.MaxWidth, c.Window.MaxHeight),
	}
}

// CameraOptions converts the camera section into builder options. Call Validate first.
func (c *Config) CameraOptions() []camera.CameraBuilderOption {
	eye, target, up := c.Camera.Eye, c.Camera.Target, c.Camera.Up
	return []camera.CameraBuilderOption{
		camera.WithEye(eye[0], eye[1], eye[2]),
		camera.WithTarget(target[0], target[1], target[2]),
		camera.WithUp(up[0], up[1], up[2]),
		camera.WithFov(c.Camera.Fov),
	}
}

// InputOptions converts the input section into builder options.
//
// Returns:
//   - []input.InputBuilderOption: the options
//   - error: error if the bindings do not parse
func (c *Config) InputOptions() ([]input.InputBuilderOption, error) {
	opts := []input.InputBuilderOption{input.WithSpeed(c.Input.Speed)}
	bindings, err := c.InputBindings()
	if err != nil {
		return nil, err
	}
	if bindings != nil {
		opts = append(opts, input.WithBindings(bindings))
	}

	extra, err := input.ParseBindings(c.Input.ExtraBindings)
	if err != nil {
		return nil, err
	}
	for _, keyCode := range slices.Sorted(maps.Keys(extra)) {
		opts = append(opts, input.WithBinding(keyCode, extra[keyCode]))
	}
	return opts, nil
}

// RendererOptions converts the renderer and pipeline sections into builder options.
//
// Returns:
//   - []renderer.RendererBuilderOption: the options
//   - error: error if the present mode or a pipeline setting is unknown
func (c *Config) RendererOptions() ([]renderer.RendererBuilderOption, error) {
	mode, err := renderer.ParsePresentMode(c.Renderer.PresentMode)
	if err != nil {
		return nil, err
	}
	pipelineOpts, err := c.PipelineOptions()
	if err != nil {
		return nil, err
	}
	opts := []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithForceSoftwareRenderer(c.Renderer.Software),
		renderer.WithPipelineOptions(pipelineOpts...),
	}
	if cc := c.Renderer.ClearColor; len(cc) == 4 {
		opts = append(opts, renderer.WithClearColor(wgpu.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}))
	}
	if c.Renderer.Validate != nil {
		opts = append(opts, renderer.WithShaderValidation(*c.Renderer.Validate))
	}
	return opts, nil
}

// PipelineOptions converts the pipeline section into fixed-function options.
//
// Returns:
//   - []pipeline.PipelineBuilderOption: the options
//   - error: error if a name does not parse
func (c *Config) PipelineOptions() ([]pipeline.PipelineBuilderOption, error) {
	p := c.Pipeline
	cull, err := pipeline.ParseCullMode(p.CullMode)
	if err != nil {
		return nil, err
	}
	face, err := pipeline.ParseFrontFace(p.FrontFace)
	if err != nil {
		return nil, err
	}
	topology, err := pipeline.ParseTopology(p.Topology)
	if err != nil {
		return nil, err
	}
	mask, err := pipeline.ParseWriteMask(p.WriteMask)
	if err != nil {
		return nil, err
	}
	return []pipeline.PipelineBuilderOption{
		pipeline.WithCullMode(cull),
		pipeline.WithFrontFace(face),
		pipeline.WithTopology(topology),
		pipeline.WithWriteMask(mask),
		pipeline.WithVertexCount(p.VertexCount),
	}, nil
}

// ShaderOptions converts the shader section into builder options. An empty path keeps the embedded shader.
func (c *Config) ShaderOptions() []shader.ShaderBuilderOption {
	if c.Shader.Path == "" {
		return nil
	}
	return []shader.ShaderBuilderOption{shader.WithPath(c.Shader.Path)}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func clone3(v [3]float32) []float32 {
	return []float32{v[0], v[1], v[2]}
}

func vec3(v []float32) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}
