// Package input wraps SDL joysticks, game controllers, haptic devices and
// cursors.
//
// Handles looked up by instance ID, and the joystick behind a game
// controller, are borrowed: closing the wrapper never closes the device.
package input

import (
	"time"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

const (
	KindJoystick       = "joystick"
	KindGameController = "game controller"
	KindHaptic         = "haptic"
	KindEffect         = "haptic effect"
	KindCursor         = "cursor"
)

// NumJoysticks returns the number of attached joysticks.
func NumJoysticks(sys *sdl.System) (int, error) {
	n := sys.API().NumJoysticks()
	if n < 0 {
		return 0, sys.Fail("SDL_NumJoysticks")
	}
	return int(n), nil
}

// JoystickNameForIndex returns the name of a device before it is opened.
func JoystickNameForIndex(sys *sdl.System, index int) (string, error) {
	name, ok := sys.API().JoystickNameForIndex(int32(index))
	if !ok {
		return "", sys.Fail("SDL_JoystickNameForIndex")
	}
	return name, nil
}

// Joystick owns or borrows an SDL_Joystick.
type Joystick struct {
	sys *sdl.System
	h   *resource.Unique[native.Joystick]
}

// OpenJoystick opens the device at index for use.
func OpenJoystick(sys *sdl.System, index int) (*Joystick, error) {
	h := sys.API().JoystickOpen(int32(index))
	if h == 0 {
		return nil, sys.CreationFailed(KindJoystick, "SDL_JoystickOpen")
	}
	return JoystickFrom(sys, h, resource.Owned), nil
}

// JoystickFromInstanceID returns a borrowed wrapper for a joystick that is
// already open, typically the one named by an event.
func JoystickFromInstanceID(sys *sdl.System, id int32) (*Joystick, error) {
	h := sys.API().JoystickFromInstanceID(id)
	if h == 0 {
		return nil, sys.CreationFailed(KindJoystick, "SDL_JoystickFromInstanceID")
	}
	return JoystickFrom(sys, h, resource.Borrowed), nil
}

// JoystickFrom wraps an existing handle.
func JoystickFrom(sys *sdl.System, h native.Joystick, o resource.Ownership) *Joystick {
	u := resource.Adopt(KindJoystick, h, o, sys.API().JoystickClose)
	u.BindParent(sys.Lifetime())
	return &Joystick{sys: sys, h: u}
}

func (j *Joystick) api(op string) (native.SDL, native.Joystick) {
	h := j.h.Get(op)
	return j.sys.API(), h
}

func (j *Joystick) Handle() native.Joystick     { return j.h.Raw() }
func (j *Joystick) Valid() bool                 { return j.h.Valid() }
func (j *Joystick) Owned() bool                 { return j.h.Owned() }
func (j *Joystick) Lifetime() resource.Lifetime { return j.h.Lifetime() }

func (j *Joystick) Move() *Joystick {
	return &Joystick{sys: j.sys, h: j.h.Move()}
}

// Close closes an owned joystick. Haptic devices opened from it must be
// closed first.
func (j *Joystick) Close() { j.h.Close() }

func (j *Joystick) Name() (string, error) {
	api, h := j.api("SDL_JoystickName")
	name, ok := api.JoystickName(h)
	if !ok {
		return "", j.sys.Fail("SDL_JoystickName")
	}
	return name, nil
}

func (j *Joystick) InstanceID() int32 {
	api, h := j.api("SDL_JoystickInstanceID")
	return api.JoystickInstanceID(h)
}

// Attached reports whether the device is still plugged in.
func (j *Joystick) Attached() bool {
	api, h := j.api("SDL_JoystickGetAttached")
	return api.JoystickGetAttached(h)
}

// PowerLevel returns one of the native.Power* constants.
func (j *Joystick) PowerLevel() int32 {
	api, h := j.api("SDL_JoystickCurrentPowerLevel")
	return api.JoystickCurrentPowerLevel(h)
}

func (j *Joystick) count(op string, get func(native.SDL, native.Joystick) int32) (int, error) {
	api, h := j.api(op)
	n := get(api, h)
	if n < 0 {
		return 0, j.sys.Fail(op)
	}
	return int(n), nil
}

func (j *Joystick) NumAxes() (int, error) {
	return j.count("SDL_JoystickNumAxes", native.SDL.JoystickNumAxes)
}

func (j *Joystick) NumButtons() (int, error) {
	return j.count("SDL_JoystickNumButtons", native.SDL.JoystickNumButtons)
}

func (j *Joystick) NumHats() (int, error) {
	return j.count("SDL_JoystickNumHats", native.SDL.JoystickNumHats)
}

func (j *Joystick) NumBalls() (int, error) {
	return j.count("SDL_JoystickNumBalls", native.SDL.JoystickNumBalls)
}

// Axis returns the position of an axis in [-32768, 32767].
func (j *Joystick) Axis(axis int) int16 {
	api, h := j.api("SDL_JoystickGetAxis")
	return api.JoystickGetAxis(h, int32(axis))
}

func (j *Joystick) Button(button int) bool {
	api, h := j.api("SDL_JoystickGetButton")
	return api.JoystickGetButton(h, int32(button)) == 1
}

// Hat returns a combination of the native.Hat* bits.
func (j *Joystick) Hat(hat int) uint8 {
	api, h := j.api("SDL_JoystickGetHat")
	return api.JoystickGetHat(h, int32(hat))
}

// Ball returns the motion of a trackball since the last call.
func (j *Joystick) Ball(ball int) (dx, dy int32, err error) {
	api, h := j.api("SDL_JoystickGetBall")
	dx, dy, status := api.JoystickGetBall(h, int32(ball))
	if status < 0 {
		return 0, 0, j.sys.Fail("SDL_JoystickGetBall")
	}
	return dx, dy, nil
}

// OpenHaptic opens the force feedback device of the joystick.
func (j *Joystick) OpenHaptic() (*Haptic, error) {
	return OpenHapticFromJoystick(j.sys, j)
}

// millis converts d to whole milliseconds, clamped to the uint32 range.
func millis(d time.Duration) uint32 {
	ms := d.Milliseconds()
	switch {
	case ms < 0:
		return 0
	case ms > 0xffffffff:
		return 0xffffffff
	}
	return uint32(ms)
}
