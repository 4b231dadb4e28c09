// Package window defines the window the frame loop presents to and provides
// a scripted implementation for headless runs.
//
// Real OS windows live in subpackages, see window/glfw.
package window

import (
	"sync"

	"github.com/gogpu/frameloop/event"
	"github.com/gogpu/frameloop/gpucore"
)

// Window is a presentable window that is also its own event source.
type Window interface {
	gpucore.WindowHandle
	event.Source

	// Size returns the current framebuffer size in pixels.
	Size() (width, height int)

	// Close destroys the window.
	Close() error
}

// Scripted is a window with no OS counterpart. It replays pre-recorded
// batches of events and reports [gpucore.PlatformHeadless].
//
// Scripted is safe for concurrent use.
type Scripted struct {
	mu      sync.Mutex
	width   int
	height  int
	batches [][]event.Event
	redraw  bool
	endless bool
	closed  bool
	polls   int
}

// NewScripted creates a scripted window of the given size that will
// deliver batches in order. Once they are exhausted every poll returns
// [event.CloseRequested].
func NewScripted(width, height int, batches ...[]event.Event) *Scripted {
	return &Scripted{width: width, height: height, batches: batches}
}

// Endless makes the window report [event.EventsCleared] instead of a close
// once the batches run out, so a continuous loop keeps rendering.
func (s *Scripted) Endless() *Scripted {
	s.mu.Lock()
	s.endless = true
	s.mu.Unlock()
	return s
}

// Push appends a batch of events.
func (s *Scripted) Push(events ...event.Event) {
	s.mu.Lock()
	s.batches = append(s.batches, events)
	s.mu.Unlock()
}

// NativeWindow implements [gpucore.WindowHandle].
func (s *Scripted) NativeWindow() (gpucore.NativeWindow, error) {
	return gpucore.NativeWindow{Platform: gpucore.PlatformHeadless}, nil
}

// Size returns the size last set by a delivered Resized event.
func (s *Scripted) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Poll returns the next batch with a pending RedrawRequested, if any,
// placed after the batch's other events and before its EventsCleared, the
// order an OS window reports them in. Resizes in a batch are therefore
// applied before the redraw. The wait flag is ignored.
func (s *Scripted) Poll(bool) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++

	if s.closed {
		return []event.Event{event.CloseRequested{}}
	}

	redraw := s.redraw
	s.redraw = false
	if len(s.batches) == 0 {
		switch {
		case s.endless && redraw:
			return []event.Event{event.RedrawRequested{}, event.EventsCleared{}}
		case s.endless:
			return []event.Event{event.EventsCleared{}}
		case redraw:
			return []event.Event{event.RedrawRequested{}}
		default:
			return []event.Event{event.CloseRequested{}}
		}
	}

	batch := s.batches[0]
	s.batches = s.batches[1:]
	out := make([]event.Event, 0, len(batch)+1)
	for _, ev := range batch {
		switch e := ev.(type) {
		case event.Resized:
			s.width, s.height = e.Width, e.Height
		case event.EventsCleared:
			if redraw {
				out = append(out, event.RedrawRequested{})
				redraw = false
			}
		}
		out = append(out, ev)
	}
	if redraw {
		out = append(out, event.RedrawRequested{})
	}
	return out
}

// RequestRedraw schedules a RedrawRequested for the next poll.
func (s *Scripted) RequestRedraw() {
	s.mu.Lock()
	s.redraw = true
	s.mu.Unlock()
}

// Polls returns how many times Poll was called.
func (s *Scripted) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// Close makes every further poll report a close request.
func (s *Scripted) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
