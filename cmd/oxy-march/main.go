// Command oxy-march opens a window and ray-marches the scene described by a WGSL fragment shader,
// with a keyboard-driven camera.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/Carmen-Shannon/oxy-march/config"
	"github.com/Carmen-Shannon/oxy-march/engine"
	"github.com/Carmen-Shannon/oxy-march/engine/event"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer"
	"github.com/Carmen-Shannon/oxy-march/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-march/engine/viewer"
	"github.com/Carmen-Shannon/oxy-march/engine/window"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "oxy-march:", err)
		os.Exit(1)
	}
}

// run builds every component from the config and flags, then blocks in the window loop.
func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	level, err := common.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// ── Shader ──────────────────────────────────────────────────────────
	s, err := shader.NewShader(cfg.ShaderOptions()...)
	if err != nil {
		return err
	}

	// ── Window ──────────────────────────────────────────────────────────
	w := window.NewWindow(cfg.WindowOptions()...)

	// ── Renderer ────────────────────────────────────────────────────────
	rendererOpts, err := cfg.RendererOptions()
	if err != nil {
		w.Close()
		return err
	}
	r, err := renderer.NewRenderer(w.SurfaceDescriptor(), w.Width(), w.Height(), s, rendererOpts...)
	if err != nil {
		w.Close()
		return err
	}

	// ── Viewer ──────────────────────────────────────────────────────────
	inputOpts, err := cfg.InputOptions()
	if err != nil {
		r.Release()
		w.Close()
		return err
	}
	v, err := viewer.NewViewer(r, w.Width(), w.Height(),
		viewer.WithCameraOptions(cfg.CameraOptions()...),
		viewer.WithInputOptions(inputOpts...),
	)
	if err != nil {
		r.Release()
		w.Close()
		return err
	}

	// ── Engine ──────────────────────────────────────────────────────────
	queue := event.NewQueue()
	opts := []engine.EngineBuilderOption{
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithViewer(v),
		engine.WithQueue(queue),
		engine.WithProfiling(cfg.Profiling),
		engine.WithProfilerInterval(cfg.ProfilerInterval),
		engine.WithRenderFrameLimit(cfg.FPSLimit),
	}

	if cfg.Shader.Watch {
		if s.Path() == "" {
			common.Logger().Warn("shader watch requested for the embedded shader; ignoring")
		} else {
			validate := cfg.Renderer.Validate == nil || *cfg.Renderer.Validate
			watcher, err := shader.Watch(s.Path(), cfg.Shader.Debounce, func() {
				queue.Push(event.ShaderReload())
			}, shader.WithPrecheck(validate))
			if err != nil {
				r.Release()
				w.Close()
				return err
			}
			opts = append(opts, engine.WithShaderWatcher(watcher))
		}
	}

	eng, err := engine.NewEngine(opts...)
	if err != nil {
		r.Release()
		w.Close()
		return err
	}
	return eng.Run()
}

// loadConfig reads the config file named by -config and applies every flag that was set on top of it.
func loadConfig(args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("oxy-march", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "config file (default "+config.DefaultPath+" if present)")
		shaderPath = fs.String("shader", "", "WGSL shader file; empty uses the built-in scene")
		watch      = fs.Bool("watch", false, "reload the shader when its file changes")
		width      = fs.Int("width", 0, "initial framebuffer width")
		height     = fs.Int("height", 0, "initial framebuffer height")
		vsync      = fs.Bool("vsync", true, "wait for vertical sync; false presents uncapped")
		software   = fs.Bool("software", false, "force the software fallback adapter")
		logLevel   = fs.String("log-level", "", "debug, info, warn or error")
		profile    = fs.Bool("profile", false, "log frame rate and memory statistics every second")
		fpsLimit   = fs.Float64("fps-limit", 0, "cap the frame rate; 0 is uncapped")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shader":
			cfg.Shader.Path = *shaderPath
		case "watch":
			cfg.Shader.Watch = *watch
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "vsync":
			if *vsync {
				cfg.Renderer.PresentMode = renderer.PresentModeVSync.String()
			} else {
				cfg.Renderer.PresentMode = renderer.PresentModeUncapped.String()
			}
		case "software":
			cfg.Renderer.Software = *software
		case "log-level":
			cfg.LogLevel = *logLevel
		case "profile":
			cfg.Profiling = *profile
		case "fps-limit":
			cfg.FPSLimit = *fpsLimit
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
