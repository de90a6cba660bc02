// Package timer runs Go callbacks from SDL timers.
//
// SDL invokes timer callbacks on a thread of its own. Callbacks are looked up
// through a shared handle table so that a timer removed from Go is never
// dispatched again, even if SDL fires it once more before noticing.
package timer

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

const Kind = "timer"

// Func receives the current interval and returns the next one. Returning zero
// or a negative duration cancels the timer.
type Func func(interval time.Duration) time.Duration

var callbacks = resource.NewTable[Func]()

// Timer owns an SDL_TimerID.
type Timer struct {
	sys     *sdl.System
	h       *resource.Unique[native.TimerID]
	slot    resource.Handle
	stopped *atomic.Bool
}

// New schedules fn to run after interval.
func New(sys *sdl.System, interval time.Duration, fn Func) (*Timer, error) {
	api := sys.API()
	slot := callbacks.Insert(fn)
	stopped := new(atomic.Bool)
	id := api.AddTimer(millis(interval), func(ms uint32) uint32 {
		if stopped.Load() {
			return 0
		}
		return dispatch(slot, ms)
	})
	if id == 0 {
		callbacks.Remove(slot)
		return nil, sys.CreationFailed(Kind, "SDL_AddTimer")
	}

	t := &Timer{sys: sys, slot: slot, stopped: stopped}
	t.h = resource.New(Kind, id, func(id native.TimerID) { t.cancel(api, id) })
	t.h.DependOn(sys.Lifetime())
	return t, nil
}

// cancel stops dispatch, removes the native timer and only then frees the
// slot, so a slot reused by a new timer never sees the old timer fire.
func (t *Timer) cancel(api native.SDL, id native.TimerID) bool {
	t.stopped.Store(true)
	removed := api.RemoveTimer(id)
	callbacks.Remove(t.slot)
	return removed
}

func dispatch(slot resource.Handle, ms uint32) (next uint32) {
	fn, ok := callbacks.Get(slot)
	if !ok {
		return 0
	}
	defer func() {
		if r := recover(); r != nil {
			resource.Logger().Error("timer callback panicked", zap.Any("panic", r))
			next = 0
		}
	}()
	return millis(fn(time.Duration(ms) * time.Millisecond))
}

// ID returns the SDL timer id.
func (t *Timer) ID() native.TimerID { return t.h.Get("ID") }

func (t *Timer) Valid() bool { return t.h.Valid() }

// Remove cancels the timer and reports whether SDL still had it scheduled.
// The wrapper is empty afterwards.
func (t *Timer) Remove() bool {
	if !t.h.Valid() {
		return false
	}
	api := t.sys.API()
	id, _ := t.h.Detach()
	return t.cancel(api, id)
}

// Close cancels the timer if it is still scheduled.
func (t *Timer) Close() { t.h.Close() }

// Delay blocks the calling thread for at least d.
func Delay(sys *sdl.System, d time.Duration) { sys.API().Delay(millis(d)) }

// Ticks returns the time since SDL was initialised.
func Ticks(sys *sdl.System) time.Duration {
	return time.Duration(sys.API().GetTicks()) * time.Millisecond
}

func PerfCounter(sys *sdl.System) uint64   { return sys.API().GetPerformanceCounter() }
func PerfFrequency(sys *sdl.System) uint64 { return sys.API().GetPerformanceFrequency() }

// Since converts the difference between two PerfCounter readings to a
// duration.
func Since(sys *sdl.System, start uint64) time.Duration {
	freq := PerfFrequency(sys)
	if freq == 0 {
		return 0
	}
	delta := PerfCounter(sys) - start
	return time.Duration(delta/freq*uint64(time.Second) + delta%freq*uint64(time.Second)/freq)
}

func millis(d time.Duration) uint32 {
	ms := d.Milliseconds()
	switch {
	case ms <= 0:
		return 0
	case ms > 0xffffffff:
		return 0xffffffff
	}
	return uint32(ms)
}
