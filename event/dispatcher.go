package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/frameloop/internal/logging"
)

// Flow tells the loop whether to keep going.
type Flow uint8

// Control flow values.
const (
	FlowContinue Flow = iota
	FlowExit
)

// String returns the flow name.
func (f Flow) String() string {
	if f == FlowExit {
		return "Exit"
	}
	return "Continue"
}

// Options configures a Dispatcher.
type Options struct {
	// Continuous requests a redraw whenever a batch of events is cleared,
	// so frames are rendered back to back. Without it frames are rendered
	// only on RedrawRequested and the loop blocks waiting for events.
	Continuous bool

	// MaxFrames exits the loop after this many presented frames. Frames a
	// [FrameCounter] handler skips do not count. Zero means no limit.
	MaxFrames uint64

	Logger *slog.Logger
}

// Dispatcher maps events to handler actions.
//
// Dispatcher is not safe for concurrent use.
type Dispatcher struct {
	handler Handler
	source  Source
	opts    Options
	log     *slog.Logger

	exited bool
	frames uint64
}

// NewDispatcher creates a dispatcher that acts on h and requests redraws
// from src.
func NewDispatcher(h Handler, src Source, opts Options) *Dispatcher {
	return &Dispatcher{
		handler: h,
		source:  src,
		opts:    opts,
		log:     logging.OrNop(opts.Logger),
	}
}

// Frames returns the number of frames presented through the dispatcher.
// For handlers that are not a [FrameCounter] every successful RenderFrame
// call counts.
func (d *Dispatcher) Frames() uint64 { return d.frames }

// Exited reports whether an exit was dispatched.
func (d *Dispatcher) Exited() bool { return d.exited }

// Dispatch handles one event. After FlowExit every further event is
// ignored and FlowExit returned again.
func (d *Dispatcher) Dispatch(ev Event) (Flow, error) {
	if d.exited {
		return FlowExit, nil
	}

	switch e := ev.(type) {
	case CloseRequested:
		d.log.Debug("event: close requested")
		d.exited = true
		return FlowExit, nil

	case Resized:
		if err := d.handler.Resize(e.Width, e.Height); err != nil {
			return FlowExit, fmt.Errorf("event: resize %dx%d: %w", e.Width, e.Height, err)
		}
		return FlowContinue, nil

	case RedrawRequested:
		counter, counted := d.handler.(FrameCounter)
		var before uint64
		if counted {
			before = counter.PresentedFrames()
		}
		if err := d.handler.RenderFrame(); err != nil {
			return FlowExit, fmt.Errorf("event: render: %w", err)
		}
		if counted {
			d.frames += counter.PresentedFrames() - before
		} else {
			d.frames++
		}
		if d.opts.MaxFrames > 0 && d.frames >= d.opts.MaxFrames {
			d.log.Debug("event: frame budget reached", "frames", d.frames)
			d.exited = true
			return FlowExit, nil
		}
		return FlowContinue, nil

	case EventsCleared:
		if d.opts.Continuous {
			d.source.RequestRedraw()
		}
		return FlowContinue, nil

	default:
		d.log.Debug("event: ignored", "event", Name(ev))
		return FlowContinue, nil
	}
}

// Run polls src and dispatches every event in order until an exit is
// dispatched, a handler fails or ctx is cancelled. Cancellation is treated
// like a close request and returns nil.
func Run(ctx context.Context, src Source, d *Dispatcher) error {
	for {
		if ctx.Err() != nil {
			d.exited = true
			return nil
		}
		for _, ev := range src.Poll(!d.opts.Continuous) {
			flow, err := d.Dispatch(ev)
			if err != nil {
				return err
			}
			if flow == FlowExit {
				return nil
			}
		}
	}
}
