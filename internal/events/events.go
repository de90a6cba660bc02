// Package events installs Go callbacks on the SDL event queue.
//
// Watches observe every pushed event and the filter may drop them. SDL calls
// both on whichever thread pushes the event, so callbacks are looked up
// through a shared handle table and a removed callback is never dispatched
// again.
package events

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

const (
	KindWatch  = "event watch"
	KindFilter = "event filter"
)

// Func receives a pushed event. For a filter, returning false drops the
// event; watches cannot drop events and their result is ignored.
type Func func(ev *native.Event) bool

var callbacks = resource.NewTable[Func]()

func dispatch(slot resource.Handle, stopped *atomic.Bool, ev *native.Event) (keep int32) {
	if stopped.Load() {
		return 1
	}
	fn, ok := callbacks.Get(slot)
	if !ok {
		return 1
	}
	defer func() {
		if r := recover(); r != nil {
			resource.Logger().Error("event callback panicked", zap.Uint32("type", ev.Type()), zap.Any("panic", r))
			keep = 1
		}
	}()
	if fn(ev) {
		return 1
	}
	return 0
}

// Watch owns a callback registered with SDL_AddEventWatch.
type Watch struct {
	h       *resource.Unique[uintptr]
	slot    resource.Handle
	stopped *atomic.Bool
}

// AddWatch calls fn for every event pushed onto the queue until the watch is
// closed.
func AddWatch(sys *sdl.System, fn Func) (*Watch, error) {
	api := sys.API()
	slot := callbacks.Insert(fn)
	stopped := new(atomic.Bool)
	key := api.AddEventWatch(func(ev *native.Event) int32 {
		dispatch(slot, stopped, ev)
		return 1
	})
	if key == 0 {
		callbacks.Remove(slot)
		return nil, sys.CreationFailed(KindWatch, "SDL_AddEventWatch")
	}

	w := &Watch{slot: slot, stopped: stopped}
	w.h = resource.New(KindWatch, key, func(key uintptr) {
		stopped.Store(true)
		api.DelEventWatch(key)
	})
	w.h.BindParent(sys.Lifetime())
	return w, nil
}

func (w *Watch) Valid() bool { return w.h.Valid() }

// Close removes the watch. SDL_Quit already drops every watch, so a watch
// closed after its System only frees the callback. Closing twice is a no-op.
func (w *Watch) Close() {
	if !w.h.Valid() {
		return
	}
	w.h.Close()
	w.stopped.Store(true)
	callbacks.Remove(w.slot)
}

// SDL keeps a single filter; installed tracks which Filter owns it.
var (
	filterMu  sync.Mutex
	installed *Filter
)

// Filter owns the callback installed with SDL_SetEventFilter.
type Filter struct {
	h       *resource.Unique[resource.Handle]
	stopped *atomic.Bool
}

// SetFilter installs fn as the queue filter, replacing any previous one. A
// replaced Filter stops dispatching but must still be closed.
func SetFilter(sys *sdl.System, fn Func) *Filter {
	api := sys.API()
	slot := callbacks.Insert(fn)
	stopped := new(atomic.Bool)

	flt := &Filter{stopped: stopped}
	flt.h = resource.New(KindFilter, slot, func(resource.Handle) {
		filterMu.Lock()
		defer filterMu.Unlock()
		if installed == flt {
			api.SetEventFilter(nil)
		}
	})
	flt.h.BindParent(sys.Lifetime())

	filterMu.Lock()
	defer filterMu.Unlock()
	if installed != nil {
		installed.stopped.Store(true)
	}
	api.SetEventFilter(func(ev *native.Event) int32 {
		return dispatch(slot, stopped, ev)
	})
	installed = flt
	return flt
}

func (f *Filter) Valid() bool { return f.h.Valid() }

// Installed reports whether f is still the active filter.
func (f *Filter) Installed() bool {
	filterMu.Lock()
	defer filterMu.Unlock()
	return f.h.Valid() && installed == f
}

// Close removes the filter if it is still installed and frees its callback.
// Closing twice is a no-op.
func (f *Filter) Close() {
	if !f.h.Valid() {
		return
	}
	slot := f.h.Raw()
	f.h.Close()
	f.stopped.Store(true)

	filterMu.Lock()
	if installed == f {
		installed = nil
	}
	filterMu.Unlock()
	callbacks.Remove(slot)
}
