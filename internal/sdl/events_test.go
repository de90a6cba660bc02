package sdl

import (
	"errors"
	"testing"
	"time"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/native/nativetest"
	"github.com/tinyrange/gosdl/internal/resource"
)

func newEventSystem(t *testing.T) (*nativetest.Fake, *System) {
	t.Helper()
	f := nativetest.New()
	sys, err := Init(f, native.InitEvents)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(sys.Close)
	return f, sys
}

func TestWaitEvent(t *testing.T) {
	f, sys := newEventSystem(t)
	f.Push(native.NewQuitEvent())

	ev, err := sys.WaitEvent()
	if err != nil || ev.Type() != native.EventQuit {
		t.Fatalf("ev = %#x, err = %v", ev.Type(), err)
	}
	if _, err := sys.WaitEvent(); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}
}

func TestWaitEventTimeout(t *testing.T) {
	f, sys := newEventSystem(t)
	if _, ok := sys.WaitEventTimeout(250 * time.Millisecond); ok {
		t.Fatal("empty queue returned an event")
	}
	if _, ok := sys.WaitEventTimeout(-time.Second); ok {
		t.Fatal("empty queue returned an event")
	}
	f.Push(native.NewKeyEvent(4, true, false))
	ev, ok := sys.WaitEventTimeout(time.Second)
	if !ok || ev.Type() != native.EventKeyDown {
		t.Fatalf("ev = %#x, ok = %v", ev.Type(), ok)
	}

	want := []int32{250, 0, 1000}
	got := f.Waits()
	if len(got) != len(want) {
		t.Fatalf("waits = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("waits = %v, want %v", got, want)
		}
	}
}

func TestPushEvent(t *testing.T) {
	f, sys := newEventSystem(t)
	ok, err := sys.PushEvent(native.NewQuitEvent())
	if !ok || err != nil {
		t.Fatalf("push = %v, %v", ok, err)
	}
	if !sys.HasEvents(native.EventQuit, native.EventQuit) {
		t.Fatal("quit not queued")
	}

	f.SetEventFilter(func(*native.Event) int32 { return 0 })
	ok, err = sys.PushEvent(native.NewQuitEvent())
	if ok || err != nil {
		t.Fatalf("filtered push = %v, %v", ok, err)
	}
	f.SetEventFilter(nil)

	f.Fail("PushEvent", "Event queue is full")
	if _, err := sys.PushEvent(native.NewQuitEvent()); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}
	if f.Queued() != 1 {
		t.Fatalf("queued = %d", f.Queued())
	}
}

func TestPeepEvents(t *testing.T) {
	f, sys := newEventSystem(t)
	n, err := sys.AddEvents([]native.Event{
		native.NewKeyEvent(4, true, false),
		native.NewMouseMotionEvent(1, 2, 0, 0),
		native.NewKeyEvent(4, false, false),
		native.NewQuitEvent(),
	})
	if n != 4 || err != nil {
		t.Fatalf("add = %d, %v", n, err)
	}

	keys, err := sys.PeekEvents(8, native.EventKeyDown, native.EventKeyUp)
	if err != nil || len(keys) != 2 {
		t.Fatalf("peek = %d, %v", len(keys), err)
	}
	if f.Queued() != 4 {
		t.Fatal("peek removed events")
	}

	first, err := sys.GetEvents(1, native.EventKeyDown, native.EventKeyUp)
	if err != nil || len(first) != 1 || first[0].Type() != native.EventKeyDown {
		t.Fatalf("get = %v, %v", first, err)
	}
	if f.Queued() != 3 {
		t.Fatalf("queued = %d", f.Queued())
	}

	sys.FlushEvents(native.EventMouseMotion, native.EventMouseWheel)
	if sys.HasEvents(native.EventMouseMotion, native.EventMouseWheel) {
		t.Fatal("motion not flushed")
	}
	ev, ok := sys.PollEvent()
	if !ok || ev.Type() != native.EventKeyUp {
		t.Fatalf("next = %#x", ev.Type())
	}

	if got, err := sys.GetEvents(0, native.EventFirst, native.EventLast); got != nil || err != nil {
		t.Fatalf("zero count = %v, %v", got, err)
	}
	f.Fail("PeepEvents", "Couldn't lock event queue")
	if _, err := sys.PeekEvents(1, native.EventFirst, native.EventLast); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}
}

func TestPumpAndRegisterEvents(t *testing.T) {
	f, sys := newEventSystem(t)
	sys.PumpEvents()
	sys.PumpEvents()
	if f.Pumps() != 2 {
		t.Fatalf("pumps = %d", f.Pumps())
	}

	first, err := sys.RegisterEvents(2)
	if err != nil || first != native.EventUser {
		t.Fatalf("first = %#x, %v", first, err)
	}
	next, err := sys.RegisterEvents(1)
	if err != nil || next != native.EventUser+2 {
		t.Fatalf("next = %#x, %v", next, err)
	}
	if _, err := sys.RegisterEvents(0); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}
	if _, err := sys.RegisterEvents(native.EventLast); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}
}
