package sdl

import (
	"errors"
	"testing"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/native/nativetest"
	"github.com/tinyrange/gosdl/internal/resource"
)

func TestInitAndClose(t *testing.T) {
	f := nativetest.New()
	sys, err := Init(f, native.InitVideo|native.InitEvents)
	if err != nil {
		t.Fatal(err)
	}
	if sys.WasInit(native.InitVideo) != native.InitVideo {
		t.Fatal("video not initialised")
	}
	life := sys.Lifetime()
	sys.Close()
	sys.Close()
	if life.Alive() {
		t.Fatal("lifetime alive after close")
	}
	if f.WasInit(0) != 0 {
		t.Fatal("SDL_Quit not called")
	}

	defer func() {
		if _, ok := recover().(*resource.UseAfterReleaseError); !ok {
			t.Fatal("API after Close must panic with UseAfterReleaseError")
		}
	}()
	sys.API()
}

func TestInitFailure(t *testing.T) {
	f := nativetest.New()
	f.Fail("Init", "No available video device")
	sys, err := Init(f, native.InitVideo)
	if sys != nil {
		t.Fatal("expected nil system")
	}
	var ce *resource.CreationError
	if !errors.As(err, &ce) || ce.Diagnostic != "No available video device" {
		t.Fatalf("err = %v", err)
	}
	if f.GetError() != "" {
		t.Fatal("error string must be cleared")
	}
}

func TestFailAndCheck(t *testing.T) {
	f := nativetest.New()
	sys, _ := Init(f, 0)
	defer sys.Close()

	f.SetError("Invalid renderer")
	err := sys.Check("SDL_RenderClear", -1)
	if err == nil || err.Error() != "SDL_RenderClear failed: Invalid renderer" {
		t.Fatalf("err = %v", err)
	}
	if !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatal("not an operation error")
	}
	if sys.Check("x", 0) != nil {
		t.Fatal("status 0 is success")
	}
}

func TestHintsAndEvents(t *testing.T) {
	f := nativetest.New()
	sys, _ := Init(f, 0)
	defer sys.Close()

	if err := sys.SetHint("SDL_RENDER_VSYNC", "1"); err != nil {
		t.Fatal(err)
	}
	if f.Hint("SDL_RENDER_VSYNC") != "1" {
		t.Fatal("hint not forwarded")
	}

	f.Push(native.NewQuitEvent())
	ev, ok := sys.PollEvent()
	if !ok || ev.Type() != native.EventQuit {
		t.Fatalf("event %#x %v", ev.Type(), ok)
	}
	if _, ok := sys.PollEvent(); ok {
		t.Fatal("queue should be empty")
	}
	if sys.Version() != "2.30.0" {
		t.Fatalf("version %q", sys.Version())
	}
}
