// Package glfw provides an OS window backed by GLFW.
//
// GLFW must be driven from the main OS thread. Callers lock it with
// runtime.LockOSThread before calling [Open] and run the frame loop on the
// same goroutine.
//
// The window is created without a client API so a WebGPU surface can be
// attached to its native handle.
package glfw

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/frameloop/event"
	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/internal/logging"
)

// ErrClosed is returned when a closed window is used.
var ErrClosed = errors.New("glfw: window closed")

// Config describes the window to open.
type Config struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	Logger    *slog.Logger
}

// DefaultConfig returns an 800x600 resizable window.
func DefaultConfig() Config {
	return Config{
		Title:     "frameloop",
		Width:     800,
		Height:    600,
		Resizable: true,
	}
}

// Window is a GLFW window. It converts GLFW callbacks into [event.Event]
// values delivered by Poll.
//
// All methods except RequestRedraw must be called from the thread that
// called Open.
type Window struct {
	win *glfw.Window
	log *slog.Logger

	mu     sync.Mutex
	queue  []event.Event
	redraw bool
	closed bool
}

// Open initializes GLFW and creates a window.
func Open(cfg Config) (*Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: create window: %w", err)
	}

	w := &Window{
		win:    win,
		log:    logging.OrNop(cfg.Logger),
		redraw: true,
	}
	w.registerCallbacks()

	fw, fh := win.GetFramebufferSize()
	w.log.Debug("glfw: window opened", "title", cfg.Title, "width", fw, "height", fh)
	return w, nil
}

func (w *Window) registerCallbacks() {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(event.Resized{Width: width, Height: height})
	})
	w.win.SetCloseCallback(func(_ *glfw.Window) {
		w.push(event.CloseRequested{})
	})
	w.win.SetRefreshCallback(func(_ *glfw.Window) {
		w.RequestRedraw()
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.push(event.CloseRequested{})
			return
		}
		w.push(event.Other{Name: fmt.Sprintf("Key(%d,%d)", key, action)})
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.push(event.Other{Name: fmt.Sprintf("Focus(%t)", focused)})
	})
}

func (w *Window) push(ev event.Event) {
	w.mu.Lock()
	w.queue = append(w.queue, ev)
	w.mu.Unlock()
}

// Poll processes pending GLFW events and returns them followed by
// [event.EventsCleared]. With wait set and no redraw pending it blocks
// until an event arrives.
func (w *Window) Poll(wait bool) []event.Event {
	if w.isClosed() {
		return []event.Event{event.CloseRequested{}}
	}

	w.mu.Lock()
	pending := w.redraw
	w.mu.Unlock()

	if wait && !pending {
		glfw.WaitEvents()
	} else {
		glfw.PollEvents()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.queue
	w.queue = nil
	if w.redraw {
		w.redraw = false
		out = append(out, event.RedrawRequested{})
	}
	return append(out, event.EventsCleared{})
}

// RequestRedraw schedules a RedrawRequested for the next poll. It may be
// called from any goroutine.
func (w *Window) RequestRedraw() {
	w.mu.Lock()
	w.redraw = true
	closed := w.closed
	w.mu.Unlock()
	if !closed {
		glfw.PostEmptyEvent()
	}
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (int, int) {
	if w.isClosed() {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

// NativeWindow returns the handles a WebGPU surface is created from.
func (w *Window) NativeWindow() (gpucore.NativeWindow, error) {
	if w.isClosed() {
		return gpucore.NativeWindow{}, ErrClosed
	}
	return nativeWindow(w.win)
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	w.win.Destroy()
	glfw.Terminate()
	w.log.Debug("glfw: window closed")
	return nil
}

func (w *Window) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}
