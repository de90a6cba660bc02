package nativetest

import (
	"fmt"
	"slices"

	"github.com/tinyrange/gosdl/internal/native"
)

// queueLimit matches SDL_MAX_QUEUED_EVENTS.
const queueLimit = 65535

type watch struct {
	key uintptr
	cb  native.EventFilter
}

func inRange(ev *native.Event, minType, maxType uint32) bool {
	t := ev.Type()
	return t >= minType && t <= maxType
}

// pop removes the first queued event into ev. The caller holds f.mu.
func (f *Fake) pop(ev *native.Event) int32 {
	if len(f.events) == 0 {
		return 0
	}
	if ev != nil {
		*ev = f.events[0]
	}
	f.events = f.events[1:]
	return 1
}

// WaitEvent never blocks: an empty queue is reported as an error.
func (f *Fake) WaitEvent(ev *native.Event) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("WaitEvent") {
		return 0
	}
	if f.pop(ev) == 0 {
		f.err = "fake: WaitEvent on an empty queue would block forever"
		return 0
	}
	return 1
}

// WaitEventTimeout advances the fake clock by timeout when the queue is empty.
func (f *Fake) WaitEventTimeout(ev *native.Event, timeout int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waits = append(f.waits, timeout)
	if f.pop(ev) == 1 {
		return 1
	}
	if timeout > 0 {
		f.ticks += uint64(timeout)
	}
	return 0
}

// PushEvent runs the filter and the watches outside the lock so that
// callbacks may call back into the fake.
func (f *Fake) PushEvent(ev *native.Event) int32 {
	f.mu.Lock()
	if f.failing("PushEvent") {
		f.mu.Unlock()
		return -1
	}
	filter := f.filter
	watches := slices.Clone(f.watches)
	f.mu.Unlock()

	if filter != nil && filter(ev) == 0 {
		return 0
	}
	for _, w := range watches {
		w.cb(ev)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) >= queueLimit {
		f.err = "Event queue is full"
		return -1
	}
	f.events = append(f.events, *ev)
	return 1
}

func (f *Fake) PeepEvents(events []native.Event, action int32, minType, maxType uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("PeepEvents") {
		return -1
	}
	switch action {
	case native.PeepAdd:
		if len(f.events)+len(events) > queueLimit {
			f.err = "Event queue is full"
			return -1
		}
		f.events = append(f.events, events...)
		return int32(len(events))
	case native.PeepPeek, native.PeepGet:
		n := 0
		kept := f.events[:0:0]
		for i := range f.events {
			ev := &f.events[i]
			if n < len(events) && inRange(ev, minType, maxType) {
				events[n] = *ev
				n++
				if action == native.PeepGet {
					continue
				}
			}
			kept = append(kept, *ev)
		}
		f.events = kept
		return int32(n)
	default:
		f.err = fmt.Sprintf("fake: unknown peep action %d", action)
		return -1
	}
}

func (f *Fake) FlushEvents(minType, maxType uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = slices.DeleteFunc(f.events, func(ev native.Event) bool {
		return inRange(&ev, minType, maxType)
	})
}

func (f *Fake) PumpEvents() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pumps++
}

func (f *Fake) HasEvents(minType, maxType uint32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.events {
		if inRange(&f.events[i], minType, maxType) {
			return true
		}
	}
	return false
}

// RegisterEvents hands out consecutive types starting at EventUser.
func (f *Fake) RegisterEvents(n int32) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	first := native.EventUser + f.userEvents
	if n <= 0 || first+uint32(n)-1 > native.EventLast {
		return 0xFFFFFFFF
	}
	f.userEvents += uint32(n)
	return first
}

func (f *Fake) AddEventWatch(cb native.EventFilter) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("AddEventWatch") {
		return 0
	}
	f.nextWatch++
	f.watches = append(f.watches, watch{key: f.nextWatch, cb: cb})
	return f.nextWatch
}

// DelEventWatch records the removal. Removing an unknown key is a violation.
func (f *Fake) DelEventWatch(key uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.watches, func(w watch) bool { return w.key == key })
	if i < 0 {
		f.violations = append(f.violations, fmt.Sprintf("DelEventWatch: unknown watch %#x", key))
		return
	}
	f.watches = slices.Delete(f.watches, i, i+1)
	f.released[KindEventWatch] = append(f.released[KindEventWatch], key)
}

func (f *Fake) SetEventFilter(cb native.EventFilter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter = cb
}

// Watches returns the number of installed event watches.
func (f *Fake) Watches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watches)
}

// HasFilter reports whether an event filter is installed.
func (f *Fake) HasFilter() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter != nil
}

// Queued returns the number of events waiting in the queue.
func (f *Fake) Queued() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// Pumps returns how many times PumpEvents was called.
func (f *Fake) Pumps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pumps
}

// Waits returns the timeouts passed to WaitEventTimeout.
func (f *Fake) Waits() []int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.waits)
}
