package input

import (
	"time"

	"go.uber.org/zap"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

// IsGameController reports whether the joystick at index has a controller
// mapping.
func IsGameController(sys *sdl.System, index int) bool {
	return sys.API().IsGameController(int32(index))
}

// GameControllerNameForIndex returns the mapped name of the device at index.
func GameControllerNameForIndex(sys *sdl.System, index int) (string, bool) {
	return sys.API().GameControllerNameForIndex(int32(index))
}

// AddMapping adds a controller mapping string. It reports false when the
// mapping replaced an existing one for the same GUID.
func AddMapping(sys *sdl.System, mapping string) (bool, error) {
	n := sys.API().GameControllerAddMapping(mapping)
	if n < 0 {
		return false, sys.Fail("SDL_GameControllerAddMapping")
	}
	return n == 1, nil
}

// LoadMappingDatabase adds every mapping in a gamecontrollerdb.txt file and
// returns how many were added.
func LoadMappingDatabase(sys *sdl.System, path string) (int, error) {
	n := sys.API().GameControllerAddMappingsFromFile(path)
	if n < 0 {
		return 0, sys.Fail("SDL_GameControllerAddMappingsFromFile")
	}
	return int(n), nil
}

// GameController owns or borrows an SDL_GameController.
type GameController struct {
	sys *sdl.System
	h   *resource.Unique[native.GameController]
}

// OpenGameController opens the joystick at index as a game controller.
func OpenGameController(sys *sdl.System, index int) (*GameController, error) {
	h := sys.API().GameControllerOpen(int32(index))
	if h == 0 {
		return nil, sys.CreationFailed(KindGameController, "SDL_GameControllerOpen")
	}
	return GameControllerFrom(sys, h, resource.Owned), nil
}

// GameControllerFromInstanceID returns a borrowed wrapper for an open
// controller.
func GameControllerFromInstanceID(sys *sdl.System, id int32) (*GameController, error) {
	h := sys.API().GameControllerFromInstanceID(id)
	if h == 0 {
		return nil, sys.CreationFailed(KindGameController, "SDL_GameControllerFromInstanceID")
	}
	return GameControllerFrom(sys, h, resource.Borrowed), nil
}

// GameControllerFrom wraps an existing handle.
func GameControllerFrom(sys *sdl.System, h native.GameController, o resource.Ownership) *GameController {
	u := resource.Adopt(KindGameController, h, o, sys.API().GameControllerClose)
	u.BindParent(sys.Lifetime())
	return &GameController{sys: sys, h: u}
}

// OpenAllGameControllers opens every attached device that has a controller
// mapping. Devices that fail to open are logged and skipped.
func OpenAllGameControllers(sys *sdl.System) []*GameController {
	n, err := NumJoysticks(sys)
	if err != nil {
		resource.Logger().Warn("cannot count joysticks", zap.Error(err))
		return nil
	}
	var out []*GameController
	for i := 0; i < n; i++ {
		if !IsGameController(sys, i) {
			continue
		}
		gc, err := OpenGameController(sys, i)
		if err != nil {
			resource.Logger().Warn("skipping game controller", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, gc)
	}
	return out
}

func (c *GameController) api(op string) (native.SDL, native.GameController) {
	h := c.h.Get(op)
	return c.sys.API(), h
}

func (c *GameController) Handle() native.GameController { return c.h.Raw() }
func (c *GameController) Valid() bool                   { return c.h.Valid() }
func (c *GameController) Owned() bool                   { return c.h.Owned() }

func (c *GameController) Move() *GameController {
	return &GameController{sys: c.sys, h: c.h.Move()}
}

// Close closes an owned controller together with its joystick.
func (c *GameController) Close() { c.h.Close() }

func (c *GameController) Name() (string, error) {
	api, h := c.api("SDL_GameControllerName")
	name, ok := api.GameControllerName(h)
	if !ok {
		return "", c.sys.Fail("SDL_GameControllerName")
	}
	return name, nil
}

func (c *GameController) Attached() bool {
	api, h := c.api("SDL_GameControllerGetAttached")
	return api.GameControllerGetAttached(h)
}

// Axis returns a native.ControllerAxis* value. Triggers range over
// [0, 32767], sticks over [-32768, 32767].
func (c *GameController) Axis(axis int32) int16 {
	api, h := c.api("SDL_GameControllerGetAxis")
	return api.GameControllerGetAxis(h, axis)
}

// Button reports whether a native.ControllerButton* is held.
func (c *GameController) Button(button int32) bool {
	api, h := c.api("SDL_GameControllerGetButton")
	return api.GameControllerGetButton(h, button) == 1
}

// Rumble starts the controller's rumble motors for d. Zero intensities stop
// any rumble in progress.
func (c *GameController) Rumble(low, high uint16, d time.Duration) error {
	api, h := c.api("SDL_GameControllerRumble")
	return c.sys.Check("SDL_GameControllerRumble", api.GameControllerRumble(h, low, high, millis(d)))
}

// Joystick returns the controller's underlying joystick. The wrapper is
// borrowed and becomes unusable once the controller is closed.
func (c *GameController) Joystick() (*Joystick, error) {
	api, h := c.api("SDL_GameControllerGetJoystick")
	jh := api.GameControllerGetJoystick(h)
	if jh == 0 {
		return nil, c.sys.CreationFailed(KindJoystick, "SDL_GameControllerGetJoystick")
	}
	j := &Joystick{sys: c.sys, h: resource.Adopt(KindJoystick, jh, resource.Borrowed, api.JoystickClose)}
	j.h.BindParent(c.h.Lifetime())
	return j, nil
}

// OpenHaptic opens the force feedback device of the controller's joystick.
// The haptic device must be closed before the controller.
func (c *GameController) OpenHaptic() (*Haptic, error) {
	j, err := c.Joystick()
	if err != nil {
		return nil, err
	}
	hp, err := OpenHapticFromJoystick(c.sys, j)
	if err != nil {
		return nil, err
	}
	hp.h.DependOn(c.h.Lifetime())
	return hp, nil
}
