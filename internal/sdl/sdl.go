// Package sdl owns the initialisation of the native library. Every other
// wrapper is created from a *System and is bound to its lifetime.
package sdl

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/tinyrange/gosdl/internal/config"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
)

// DefaultFlags initialises everything the wrappers in this module use.
const DefaultFlags = native.InitVideo | native.InitEvents | native.InitTimer |
	native.InitJoystick | native.InitGameController | native.InitHaptic

// System is an initialised SDL library. Close calls SDL_Quit exactly once.
type System struct {
	api    native.SDL
	init   *resource.Unique[uint32]
	thread bool
}

// Open loads the SDL2 shared library named by cfg, locks the calling goroutine
// to its OS thread and initialises the subsystems in flags.
func Open(cfg config.Config, flags uint32) (*System, error) {
	resource.SetDebug(cfg.Debug)

	api, err := native.Load(cfg.LibraryPath)
	if err != nil {
		return nil, err
	}

	// SDL requires video and event calls to come from the initialising thread.
	runtime.LockOSThread()

	sys, err := Init(api, flags)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	sys.thread = true

	for name, value := range cfg.Hints {
		if err := sys.SetHint(name, value); err != nil {
			resource.Logger().Warn("hint rejected", zap.String("hint", name), zap.Error(err))
		}
	}

	major, minor, patch := api.GetVersion()
	resource.Logger().Info("sdl initialised",
		zap.String("version", fmt.Sprintf("%d.%d.%d", major, minor, patch)),
		zap.String("platform", api.GetPlatform()),
		zap.String("video", api.GetCurrentVideoDriver()))
	return sys, nil
}

// Init initialises an already loaded API.
func Init(api native.SDL, flags uint32) (*System, error) {
	if api.Init(flags) < 0 {
		diag := api.GetError()
		api.ClearError()
		return nil, &resource.CreationError{Resource: "sdl", Op: "SDL_Init", Diagnostic: diag}
	}
	return &System{
		api:  api,
		init: resource.New("sdl", flags, func(uint32) { api.Quit() }),
	}, nil
}

// API returns the native entry points. It panics once the system is closed.
func (s *System) API() native.SDL {
	s.init.Get("API")
	return s.api
}

// Lifetime ends when Close is called. Top-level wrappers bind to it.
func (s *System) Lifetime() resource.Lifetime { return s.init.Lifetime() }

// Fail converts the pending SDL error into an *resource.OperationError and
// clears it.
func (s *System) Fail(op string) error {
	diag := s.api.GetError()
	s.api.ClearError()
	return &resource.OperationError{Op: op, Diagnostic: diag}
}

// CreationFailed is Fail for constructors.
func (s *System) CreationFailed(kind, op string) error {
	diag := s.api.GetError()
	s.api.ClearError()
	return &resource.CreationError{Resource: kind, Op: op, Diagnostic: diag}
}

// Check returns Fail(op) when status is negative.
func (s *System) Check(op string, status int32) error {
	if status < 0 {
		return s.Fail(op)
	}
	return nil
}

// WasInit returns the initialised subset of flags (all subsystems when 0).
func (s *System) WasInit(flags uint32) uint32 {
	return s.API().WasInit(flags)
}

// SetHint sets an SDL configuration hint.
func (s *System) SetHint(name, value string) error {
	if !s.API().SetHint(name, value) {
		return s.Fail("SDL_SetHint")
	}
	return nil
}

// PollEvent pops the next queued event.
func (s *System) PollEvent() (native.Event, bool) {
	var ev native.Event
	ok := s.API().PollEvent(&ev) == 1
	return ev, ok
}

// Version returns the linked SDL version as "major.minor.patch".
func (s *System) Version() string {
	major, minor, patch := s.API().GetVersion()
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}

// Close shuts the library down. Close is idempotent.
func (s *System) Close() {
	if !s.init.Valid() {
		return
	}
	s.init.Close()
	if s.thread {
		s.thread = false
		runtime.UnlockOSThread()
	}
}
