// Package library loads shared objects through SDL_LoadObject and binds their
// exported functions to Go function variables.
package library

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

const Kind = "shared object"

// Library owns a shared object handle. Close unloads it; functions bound from
// it must not be called afterwards.
type Library struct {
	sys  *sdl.System
	name string
	h    *resource.Unique[native.Object]
}

// Open loads the shared object name.
func Open(sys *sdl.System, name string) (*Library, error) {
	api := sys.API()
	h := api.LoadObject(name)
	if h == 0 {
		return nil, sys.CreationFailed(Kind, "SDL_LoadObject")
	}
	u := resource.New(Kind, h, api.UnloadObject)
	u.DependOn(sys.Lifetime())
	return &Library{sys: sys, name: name, h: u}, nil
}

func (l *Library) Name() string          { return l.name }
func (l *Library) Handle() native.Object { return l.h.Raw() }
func (l *Library) Valid() bool           { return l.h.Valid() }

func (l *Library) Move() *Library {
	return &Library{sys: l.sys, name: l.name, h: l.h.Move()}
}

// Close unloads the shared object once.
func (l *Library) Close() { l.h.Close() }

// Symbol returns the address of the exported symbol name.
func (l *Library) Symbol(name string) (uintptr, error) {
	h := l.h.Get("SDL_LoadFunction")
	addr := l.sys.API().LoadFunction(h, name)
	if addr == 0 {
		return 0, l.sys.Fail("SDL_LoadFunction")
	}
	return addr, nil
}

// Func binds the exported function name to fptr, which must be a non-nil
// pointer to a func variable.
func (l *Library) Func(name string, fptr any) error {
	v := reflect.ValueOf(fptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Func {
		return fmt.Errorf("library: %s: want pointer to func, got %T", name, fptr)
	}
	addr, err := l.Symbol(name)
	if err != nil {
		return err
	}
	return register(fptr, addr)
}

// Funcs binds several functions in name order and stops at the first
// failure.
func (l *Library) Funcs(fns map[string]any) error {
	for _, name := range slices.Sorted(maps.Keys(fns)) {
		if err := l.Func(name, fns[name]); err != nil {
			return fmt.Errorf("library %s: %w", l.name, err)
		}
	}
	return nil
}
