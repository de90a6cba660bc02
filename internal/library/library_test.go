package library

import (
	"errors"
	"runtime"
	"strings"
	"testing"

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

func TestOpenAndSymbol(t *testing.T) {
	f, sys := newSystem(t)
	f.AddLibrary("libdemo.so", map[string]uintptr{"add": 0x1000})

	lib, err := Open(sys, "libdemo.so")
	if err != nil {
		t.Fatal(err)
	}
	if lib.Name() != "libdemo.so" || lib.Handle() != 0x1 {
		t.Fatalf("lib = %s %#x", lib.Name(), lib.Handle())
	}
	addr, err := lib.Symbol("add")
	if err != nil || addr != 0x1000 {
		t.Fatalf("add = %#x, %v", addr, err)
	}

	_, err = lib.Symbol("sub")
	var oe *resource.OperationError
	if !errors.As(err, &oe) || oe.Op != "SDL_LoadFunction" ||
		oe.Diagnostic != "Failed loading sub: undefined symbol: sub" {
		t.Fatalf("err = %v", err)
	}

	moved := lib.Move()
	lib.Close()
	if len(f.Released(nativetest.KindObject)) != 0 {
		t.Fatal("moved-from close unloaded the object")
	}
	moved.Close()
	moved.Close()
	if f.ReleaseCount(nativetest.KindObject, 0x1) != 1 {
		t.Fatal("object must unload once")
	}

	defer func() {
		if _, ok := recover().(*resource.UseAfterReleaseError); !ok {
			t.Fatal("expected use after release panic")
		}
	}()
	moved.Symbol("add")
}

func TestOpenMissing(t *testing.T) {
	_, sys := newSystem(t)
	lib, err := Open(sys, "libmissing.so")
	if lib != nil {
		t.Fatal("expected nil library")
	}
	if !errors.Is(err, resource.ErrResourceCreation) ||
		err.Error() != "SDL_LoadObject failed: libmissing.so: cannot open shared object file: No such file or directory" {
		t.Fatalf("err = %v", err)
	}
}

func TestFunc(t *testing.T) {
	f, sys := newSystem(t)
	f.AddLibrary("libdemo.so", map[string]uintptr{"add": 0x1000})
	lib, err := Open(sys, "libdemo.so")
	if err != nil {
		t.Fatal(err)
	}
	defer lib.Close()

	var notFunc int
	if err := lib.Func("add", &notFunc); err == nil {
		t.Fatal("non-func target accepted")
	}
	var add func(a, b int32) int32
	if err := lib.Func("add", add); err == nil {
		t.Fatal("non-pointer target accepted")
	}
	if err := lib.Funcs(map[string]any{"missing": &add}); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}

	err = lib.Func("add", &add)
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		if err != nil || add == nil {
			t.Fatalf("bind: %v", err)
		}
	default:
		if !errors.Is(err, resource.ErrUnsupported) {
			t.Fatalf("err = %v", err)
		}
	}
}

func TestFuncsReportsFirstNameInOrder(t *testing.T) {
	f, sys := newSystem(t)
	f.AddLibrary("libdemo.so", map[string]uintptr{"add": 0x1000})
	lib, err := Open(sys, "libdemo.so")
	if err != nil {
		t.Fatal(err)
	}
	defer lib.Close()

	var a, b, c func()
	for range 20 {
		err := lib.Funcs(map[string]any{"zeta": &a, "beta": &b, "omega": &c})
		if err == nil || !strings.Contains(err.Error(), "undefined symbol: beta") {
			t.Fatalf("err = %v", err)
		}
	}
}

func TestFuncUnsupportedSignature(t *testing.T) {
	f, sys := newSystem(t)
	f.AddLibrary("libdemo.so", map[string]uintptr{"divmod": 0x1000})
	lib, err := Open(sys, "libdemo.so")
	if err != nil {
		t.Fatal(err)
	}
	defer lib.Close()

	var divmod func(a, b int32) (int32, int32)
	err = lib.Func("divmod", &divmod)
	if err == nil {
		t.Fatal("two return values accepted")
	}
	if divmod != nil {
		t.Fatal("function bound despite error")
	}
}
