// Package event routes window lifecycle events to the frame loop.
//
// The windowing system is consumed through [Source]: it delivers batches of
// [Event] values and accepts redraw requests. A [Dispatcher] maps each event
// to one action on a [Handler]:
//
//	CloseRequested  -> exit the loop
//	Resized         -> Handler.Resize
//	RedrawRequested -> Handler.RenderFrame
//	EventsCleared   -> Source.RequestRedraw (continuous mode)
//	anything else   -> ignored
//
// Handler errors are fatal and stop the loop.
package event

import "fmt"

// Event is a window event. The concrete types are listed in this package.
type Event interface {
	eventName() string
}

// CloseRequested is sent when the user asks to close the window.
type CloseRequested struct{}

// Resized is sent when the window framebuffer size changes.
// Either dimension may be zero, for example while minimized.
type Resized struct {
	Width  int
	Height int
}

// RedrawRequested is sent when the window should draw a frame.
type RedrawRequested struct{}

// EventsCleared is sent after the last pending event of a batch, when the
// application may schedule its next frame.
type EventsCleared struct{}

// Other is any event the frame loop does not act on, such as input.
type Other struct {
	Name string
}

func (CloseRequested) eventName() string  { return "CloseRequested" }
func (Resized) eventName() string         { return "Resized" }
func (RedrawRequested) eventName() string { return "RedrawRequested" }
func (EventsCleared) eventName() string   { return "EventsCleared" }
func (o Other) eventName() string         { return "Other(" + o.Name + ")" }

// String returns the event name.
func (r Resized) String() string { return fmt.Sprintf("Resized(%dx%d)", r.Width, r.Height) }

// Name returns a short description of ev for logs.
func Name(ev Event) string {
	if ev == nil {
		return "<nil>"
	}
	if r, ok := ev.(Resized); ok {
		return r.String()
	}
	return ev.eventName()
}

// Source delivers window events.
type Source interface {
	// Poll returns the next batch of events. With wait set it blocks until
	// at least one event arrives; otherwise it may return an empty batch.
	Poll(wait bool) []Event

	// RequestRedraw asks the source to deliver a RedrawRequested event.
	RequestRedraw()
}

// Handler performs the actions events map to.
type Handler interface {
	// Resize applies a new framebuffer size. Zero sizes must be tolerated.
	Resize(width, height int) error

	// RenderFrame draws and presents one frame.
	RenderFrame() error
}

// FrameCounter is implemented by handlers whose RenderFrame may succeed
// without presenting, for example on a zero-sized or timed-out surface.
// The dispatcher then counts only presented frames toward MaxFrames.
type FrameCounter interface {
	// PresentedFrames returns the running total of presented frames.
	PresentedFrames() uint64
}
