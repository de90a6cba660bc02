package events

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/native/nativetest"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

func newSystem(t *testing.T) (*nativetest.Fake, *sdl.System) {
	t.Helper()
	f := nativetest.New()
	sys, err := sdl.Init(f, native.InitEvents)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(sys.Close)
	return f, sys
}

func push(t *testing.T, sys *sdl.System, ev native.Event) bool {
	t.Helper()
	ok, err := sys.PushEvent(ev)
	if err != nil {
		t.Fatal(err)
	}
	return ok
}

func TestWatchSeesPushedEvents(t *testing.T) {
	f, sys := newSystem(t)
	before := callbacks.Len()

	var seen []uint32
	w, err := AddWatch(sys, func(ev *native.Event) bool {
		seen = append(seen, ev.Type())
		return false
	})
	if err != nil {
		t.Fatal(err)
	}

	// A watch cannot drop events.
	if !push(t, sys, native.NewQuitEvent()) || !push(t, sys, native.NewKeyEvent(4, true, false)) {
		t.Fatal("watch dropped an event")
	}
	if len(seen) != 2 || seen[0] != native.EventQuit || seen[1] != native.EventKeyDown {
		t.Fatalf("seen = %#x", seen)
	}

	w.Close()
	w.Close()
	push(t, sys, native.NewQuitEvent())
	if len(seen) != 2 {
		t.Fatalf("closed watch still called: %#x", seen)
	}
	if f.Watches() != 0 || len(f.Released(nativetest.KindEventWatch)) != 1 {
		t.Fatalf("watches = %d, released = %v", f.Watches(), f.Released(nativetest.KindEventWatch))
	}
	if callbacks.Len() != before {
		t.Fatal("callback slot leaked")
	}
	if v := f.Violations(); len(v) != 0 {
		t.Fatalf("violations: %v", v)
	}
}

func TestWatchCreationFailure(t *testing.T) {
	f, sys := newSystem(t)
	before := callbacks.Len()
	f.Fail("AddEventWatch", "Out of memory")

	w, err := AddWatch(sys, func(*native.Event) bool { return true })
	if w != nil || !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("w = %v, err = %v", w, err)
	}
	if callbacks.Len() != before {
		t.Fatal("callback slot leaked")
	}
}

func TestWatchClosedDuringDispatch(t *testing.T) {
	_, sys := newSystem(t)

	var b *Watch
	bCalls := 0
	a, err := AddWatch(sys, func(*native.Event) bool {
		b.Close()
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err = AddWatch(sys, func(*native.Event) bool {
		bCalls++
		return true
	})
	if err != nil {
		t.Fatal(err)
	}

	push(t, sys, native.NewQuitEvent())
	if bCalls != 0 {
		t.Fatalf("watch closed mid-dispatch was called %d times", bCalls)
	}
}

func TestFilterDropsEvents(t *testing.T) {
	f, sys := newSystem(t)
	flt := SetFilter(sys, func(ev *native.Event) bool {
		return ev.Type() != native.EventKeyDown
	})
	if !flt.Installed() || !f.HasFilter() {
		t.Fatal("filter not installed")
	}

	if push(t, sys, native.NewKeyEvent(4, true, false)) {
		t.Fatal("key event not dropped")
	}
	if !push(t, sys, native.NewQuitEvent()) {
		t.Fatal("quit dropped")
	}
	if f.Queued() != 1 {
		t.Fatalf("queued = %d", f.Queued())
	}

	flt.Close()
	flt.Close()
	if f.HasFilter() || flt.Installed() {
		t.Fatal("filter still installed after close")
	}
	if !push(t, sys, native.NewKeyEvent(4, true, false)) {
		t.Fatal("event dropped without a filter")
	}
}

func TestReplacedFilter(t *testing.T) {
	f, sys := newSystem(t)
	aCalls := 0
	a := SetFilter(sys, func(*native.Event) bool {
		aCalls++
		return true
	})
	b := SetFilter(sys, func(*native.Event) bool { return false })

	if a.Installed() || !b.Installed() {
		t.Fatal("second filter must replace the first")
	}
	if push(t, sys, native.NewQuitEvent()) || aCalls != 0 {
		t.Fatalf("replaced filter ran %d times", aCalls)
	}

	// Closing the replaced filter leaves the active one alone.
	a.Close()
	if !f.HasFilter() || !b.Installed() {
		t.Fatal("closing a replaced filter removed the active one")
	}
	b.Close()
	if f.HasFilter() {
		t.Fatal("filter still installed")
	}
}

func TestCallbackPanicKeepsEvent(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	resource.SetLogger(zap.New(core))
	defer resource.SetLogger(nil)

	f, sys := newSystem(t)
	flt := SetFilter(sys, func(*native.Event) bool { panic("boom") })
	defer flt.Close()

	if !push(t, sys, native.NewQuitEvent()) || f.Queued() != 1 {
		t.Fatal("event lost after a panicking filter")
	}
	if logs.FilterMessage("event callback panicked").Len() != 1 {
		t.Fatalf("logs = %v", logs.All())
	}
}

func TestCloseAfterSystem(t *testing.T) {
	f, sys := newSystem(t)
	before := callbacks.Len()
	w, err := AddWatch(sys, func(*native.Event) bool { return true })
	if err != nil {
		t.Fatal(err)
	}
	flt := SetFilter(sys, func(*native.Event) bool { return true })

	sys.Close()
	w.Close()
	flt.Close()
	if len(f.Released(nativetest.KindEventWatch)) != 0 {
		t.Fatal("watch removed after SDL_Quit")
	}
	if callbacks.Len() != before {
		t.Fatal("callback slots leaked")
	}
	if w.Valid() || flt.Valid() {
		t.Fatal("wrappers must be empty after close")
	}
}
