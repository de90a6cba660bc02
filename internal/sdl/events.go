package sdl

import (
	"time"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
)

// WaitEvent blocks until an event is available and pops it.
func (s *System) WaitEvent() (native.Event, error) {
	var ev native.Event
	if s.API().WaitEvent(&ev) == 0 {
		return ev, s.Fail("SDL_WaitEvent")
	}
	return ev, nil
}

// WaitEventTimeout waits at most d for an event. It reports false when the
// timeout expired, which SDL does not distinguish from an error.
func (s *System) WaitEventTimeout(d time.Duration) (native.Event, bool) {
	var ev native.Event
	ms := max(d.Milliseconds(), 0)
	ok := s.API().WaitEventTimeout(&ev, int32(min(ms, 1<<31-1))) == 1
	return ev, ok
}

// PushEvent queues ev. It reports false without an error when the event
// filter dropped it.
func (s *System) PushEvent(ev native.Event) (bool, error) {
	switch n := s.API().PushEvent(&ev); {
	case n < 0:
		return false, s.Fail("SDL_PushEvent")
	case n == 0:
		return false, nil
	}
	return true, nil
}

// AddEvents appends events to the back of the queue without running the
// filter or watches.
func (s *System) AddEvents(events []native.Event) (int, error) {
	n := s.API().PeepEvents(events, native.PeepAdd, native.EventFirst, native.EventLast)
	if n < 0 {
		return 0, s.Fail("SDL_PeepEvents")
	}
	return int(n), nil
}

// PeekEvents returns up to n queued events with a type in
// [minType, maxType] and leaves them queued.
func (s *System) PeekEvents(n int, minType, maxType uint32) ([]native.Event, error) {
	return s.peep(n, native.PeepPeek, minType, maxType)
}

// GetEvents removes and returns up to n queued events with a type in
// [minType, maxType].
func (s *System) GetEvents(n int, minType, maxType uint32) ([]native.Event, error) {
	return s.peep(n, native.PeepGet, minType, maxType)
}

func (s *System) peep(n int, action int32, minType, maxType uint32) ([]native.Event, error) {
	if n <= 0 {
		return nil, nil
	}
	events := make([]native.Event, n)
	got := s.API().PeepEvents(events, action, minType, maxType)
	if got < 0 {
		return nil, s.Fail("SDL_PeepEvents")
	}
	return events[:got], nil
}

// FlushEvents drops queued events with a type in [minType, maxType].
func (s *System) FlushEvents(minType, maxType uint32) {
	s.API().FlushEvents(minType, maxType)
}

// PumpEvents gathers pending input from devices into the queue.
func (s *System) PumpEvents() { s.API().PumpEvents() }

func (s *System) HasEvents(minType, maxType uint32) bool {
	return s.API().HasEvents(minType, maxType)
}

// RegisterEvents reserves n consecutive user event types and returns the
// first.
func (s *System) RegisterEvents(n int) (uint32, error) {
	if n <= 0 {
		return 0, &resource.OperationError{Op: "SDL_RegisterEvents", Diagnostic: "count must be positive"}
	}
	first := s.API().RegisterEvents(int32(n))
	if first == 0xFFFFFFFF {
		return 0, &resource.OperationError{Op: "SDL_RegisterEvents", Diagnostic: "not enough user event types left"}
	}
	return first, nil
}
