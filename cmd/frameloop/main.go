// Command frameloop opens a window and draws a shader-generated triangle
// every frame until the window is closed.
//
// Usage:
//
//	frameloop [-config frameloop.yaml] [-backend native] [-shader tri.wgsl]
//	          [-v] [-log-file frameloop.log] [-frames N]
//
// With -backend headless no window is opened and the loop renders
// -frames frames (default 60) into an in-memory surface.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/backend"
	_ "github.com/gogpu/frameloop/backend/headless"
	_ "github.com/gogpu/frameloop/backend/native"
	_ "github.com/gogpu/frameloop/backend/rust"
	"github.com/gogpu/frameloop/shader"
	"github.com/gogpu/frameloop/window"
	"github.com/gogpu/frameloop/window/glfw"
)

// defaultHeadlessFrames is the frame budget of a headless run without -frames.
const defaultHeadlessFrames = 60

type flags struct {
	config  string
	backend string
	shader  string
	verbose bool
	logFile string
	frames  uint64
}

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "", "YAML config file")
	flag.StringVar(&f.backend, "backend", "", "GPU backend (rust, native, headless); empty picks the best available")
	flag.StringVar(&f.shader, "shader", "", "WGSL shader file (vs_main/fs_main)")
	flag.BoolVar(&f.verbose, "v", false, "debug logging")
	flag.StringVar(&f.logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	flag.Uint64Var(&f.frames, "frames", 0, "stop after this many frames (0 = until closed)")
	flag.Parse()

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "frameloop: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	log, closeLog := newLogger(f)
	defer closeLog()
	frameloop.SetLogger(log)

	cfg := frameloop.DefaultConfig()
	if f.config != "" {
		loaded, err := frameloop.LoadConfig(f.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if f.backend != "" {
		cfg.Backend = f.backend
	}
	if f.shader != "" {
		art, err := shader.Load(f.shader)
		if err != nil {
			return err
		}
		cfg.Shader = art
	}
	if f.frames > 0 {
		cfg.MaxFrames = f.frames
	}
	cfg.Logger = log

	win, err := openWindow(&cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := win.Close(); err != nil {
			log.Warn("close window", "err", err)
		}
	}()

	app, err := frameloop.New(win, frameloop.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openWindow opens a GLFW window, or a scripted one when the headless
// backend is selected.
func openWindow(cfg *frameloop.Config, log *slog.Logger) (window.Window, error) {
	if cfg.Backend == backend.BackendHeadless {
		if cfg.MaxFrames == 0 {
			cfg.MaxFrames = defaultHeadlessFrames
		}
		cfg.Continuous = true
		return window.NewScripted(cfg.Window.Width, cfg.Window.Height).Endless(), nil
	}
	win, err := glfw.Open(glfw.Config{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: true,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}
	return win, nil
}

func newLogger(f flags) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	var out io.Writer = os.Stderr
	closeFn := func() {}
	if f.logFile != "" {
		lj := &lumberjack.Logger{
			Filename:   f.logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		out = lj
		closeFn = func() { _ = lj.Close() }
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closeFn
}
