package input

import (
	"fmt"
	"time"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

// NumHaptics returns the number of force feedback devices.
func NumHaptics(sys *sdl.System) int {
	return int(sys.API().NumHaptics())
}

// HapticName returns the name of the haptic device at index.
func HapticName(sys *sdl.System, index int) (string, error) {
	name, ok := sys.API().HapticName(int32(index))
	if !ok {
		return "", sys.Fail("SDL_HapticName")
	}
	return name, nil
}

// Haptic owns an SDL_Haptic and the effects uploaded to it.
type Haptic struct {
	sys     *sdl.System
	h       *resource.Unique[native.Haptic]
	effects *resource.Table[*Effect]
}

// OpenHaptic opens the haptic device at index.
func OpenHaptic(sys *sdl.System, index int) (*Haptic, error) {
	h := sys.API().HapticOpen(int32(index))
	if h == 0 {
		return nil, sys.CreationFailed(KindHaptic, "SDL_HapticOpen")
	}
	return newHaptic(sys, h), nil
}

// OpenHapticFromJoystick opens the haptic device of j. It must be closed
// before j.
func OpenHapticFromJoystick(sys *sdl.System, j *Joystick) (*Haptic, error) {
	api := sys.API()
	h := api.HapticOpenFromJoystick(j.h.Get("SDL_HapticOpenFromJoystick"))
	if h == 0 {
		return nil, sys.CreationFailed(KindHaptic, "SDL_HapticOpenFromJoystick")
	}
	// Closing the joystick leaves the haptic device open.
	hp := newHaptic(sys, h)
	hp.h.DependOn(j.Lifetime())
	return hp, nil
}

func newHaptic(sys *sdl.System, h native.Haptic) *Haptic {
	hp := &Haptic{sys: sys, effects: resource.NewTable[*Effect]()}
	hp.h = resource.New(KindHaptic, h, hp.release)
	hp.h.BindParent(sys.Lifetime())
	return hp
}

// release destroys the remaining effects before closing the device.
func (hp *Haptic) release(h native.Haptic) {
	for _, e := range hp.effects.Drain() {
		e.h.Close()
	}
	hp.sys.API().HapticClose(h)
}

func (hp *Haptic) api(op string) (native.SDL, native.Haptic) {
	h := hp.h.Get(op)
	return hp.sys.API(), h
}

func (hp *Haptic) Handle() native.Haptic { return hp.h.Raw() }
func (hp *Haptic) Valid() bool           { return hp.h.Valid() }

// Close destroys every effect still uploaded and closes the device.
func (hp *Haptic) Close() { hp.h.Close() }

// Capabilities returns the native.Haptic* feature bits of the device.
func (hp *Haptic) Capabilities() uint32 {
	api, h := hp.api("SDL_HapticQuery")
	return api.HapticQuery(h)
}

// IsCapableOf reports whether every bit in features is supported.
func (hp *Haptic) IsCapableOf(features uint32) bool {
	return hp.Capabilities()&features == features
}

// NumEffects returns how many effects the device can store.
func (hp *Haptic) NumEffects() (int, error) {
	api, h := hp.api("SDL_HapticNumEffects")
	n := api.HapticNumEffects(h)
	if n < 0 {
		return 0, hp.sys.Fail("SDL_HapticNumEffects")
	}
	return int(n), nil
}

// SetGain sets the global gain in percent. The device must support
// native.HapticGain.
func (hp *Haptic) SetGain(percent int) error {
	api, h := hp.api("SDL_HapticSetGain")
	return hp.sys.Check("SDL_HapticSetGain", api.HapticSetGain(h, int32(percent)))
}

// RumbleInit prepares the simple rumble API.
func (hp *Haptic) RumbleInit() error {
	api, h := hp.api("SDL_HapticRumbleInit")
	return hp.sys.Check("SDL_HapticRumbleInit", api.HapticRumbleInit(h))
}

// RumblePlay rumbles at strength in [0, 1] for d.
func (hp *Haptic) RumblePlay(strength float32, d time.Duration) error {
	api, h := hp.api("SDL_HapticRumblePlay")
	return hp.sys.Check("SDL_HapticRumblePlay", api.HapticRumblePlay(h, strength, millis(d)))
}

func (hp *Haptic) RumbleStop() error {
	api, h := hp.api("SDL_HapticRumbleStop")
	return hp.sys.Check("SDL_HapticRumbleStop", api.HapticRumbleStop(h))
}

// NewEffect uploads spec. Effects the device cannot play fail with
// resource.ErrUnsupported without reaching the driver.
func (hp *Haptic) NewEffect(spec EffectSpec) (*Effect, error) {
	n := spec.Native()
	if !hp.IsCapableOf(uint32(n.Type)) {
		return nil, fmt.Errorf("haptic effect %#x: %w", n.Type, resource.ErrUnsupported)
	}
	api, h := hp.api("SDL_HapticNewEffect")
	id := api.HapticNewEffect(h, &n)
	if id < 0 {
		return nil, hp.sys.CreationFailed(KindEffect, "SDL_HapticNewEffect")
	}
	e := &Effect{hap: hp}
	e.h = resource.New(KindEffect, id, func(id int32) { api.HapticDestroyEffect(h, id) })
	e.h.BindParent(hp.h.Lifetime())
	e.slot = hp.effects.Insert(e)
	return e, nil
}

// EffectCount returns the number of effects uploaded and not yet removed.
func (hp *Haptic) EffectCount() int { return hp.effects.Len() }

// Effect is an effect uploaded to a haptic device.
type Effect struct {
	hap  *Haptic
	h    *resource.Unique[int32]
	slot resource.Handle
}

// ID returns the device-assigned effect identifier.
func (e *Effect) ID() int32 { return e.h.Get("ID") }

func (e *Effect) Valid() bool { return e.h.Valid() }

// Run plays the effect iterations times, or until stopped when iterations is
// native.HapticInfinity.
func (e *Effect) Run(iterations uint32) error {
	id := e.h.Get("SDL_HapticRunEffect")
	api, h := e.hap.api("SDL_HapticRunEffect")
	return e.hap.sys.Check("SDL_HapticRunEffect", api.HapticRunEffect(h, id, iterations))
}

func (e *Effect) Stop() error {
	id := e.h.Get("SDL_HapticStopEffect")
	api, h := e.hap.api("SDL_HapticStopEffect")
	return e.hap.sys.Check("SDL_HapticStopEffect", api.HapticStopEffect(h, id))
}

// Remove destroys the effect. Removing twice is a no-op.
func (e *Effect) Remove() {
	if !e.h.Valid() {
		return
	}
	e.hap.effects.Remove(e.slot)
	e.h.Close()
}
