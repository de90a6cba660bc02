package nativetest

import (
	"github.com/tinyrange/gosdl/internal/native"
)

func (f *Fake) NumJoysticks() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("NumJoysticks") {
		return -1
	}
	return int32(len(f.devices))
}

func (f *Fake) JoystickNameForIndex(index int32) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.device(index)
	if d == nil {
		f.err = "There are 0 joysticks available"
		return "", false
	}
	return d.Name, true
}

func (f *Fake) JoystickOpen(index int32) native.Joystick {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("JoystickOpen") {
		return 0
	}
	d := f.device(index)
	if d == nil {
		f.err = "Joystick index out of range"
		return 0
	}
	o := f.create(KindJoystick, 0)
	o.Device = d
	return native.Joystick(o.Handle)
}

func (f *Fake) JoystickClose(j native.Joystick) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release("JoystickClose", KindJoystick, uintptr(j))
}

func (f *Fake) joystick(op string, j native.Joystick) *Device {
	o := f.get(op, KindJoystick, uintptr(j))
	if o == nil {
		return nil
	}
	return o.Device
}

func (f *Fake) JoystickFromInstanceID(id int32) native.Joystick {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.deviceByInstance(id)
	if d == nil {
		return 0
	}
	return native.Joystick(f.openFor(KindJoystick, d))
}

func (f *Fake) JoystickInstanceID(j native.Joystick) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d := f.joystick("JoystickInstanceID", j); d != nil {
		return d.InstanceID
	}
	return -1
}

func (f *Fake) JoystickName(j native.Joystick) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d := f.joystick("JoystickName", j); d != nil {
		return d.Name, true
	}
	return "", false
}

func (f *Fake) JoystickGetAttached(j native.Joystick) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d := f.joystick("JoystickGetAttached", j); d != nil {
		return d.Attached
	}
	return false
}

func (f *Fake) JoystickNumAxes(j native.Joystick) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d := f.joystick("JoystickNumAxes", j); d != nil {
		return int32(len(d.Axes))
	}
	return -1
}

func (f *Fake) JoystickNumButtons(j native.Joystick) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d := f.joystick("JoystickNumButtons", j); d != nil {
		return int32(len(d.Buttons))
	}
	return -1
}

func (f *Fake) JoystickNumHats(j native.Joystick) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d := f.joystick("JoystickNumHats", j); d != nil {
		return int32(len(d.Hats))
	}
	return -1
}

func (f *Fake) JoystickNumBalls(j native.Joystick) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d := f.joystick("JoystickNumBalls", j); d != nil {
		return int32(len(d.Balls))
	}
	return -1
}

func (f *Fake) JoystickGetAxis(j native.Joystick, axis int32) int16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.joystick("JoystickGetAxis", j)
	if d == nil || axis < 0 || int(axis) >= len(d.Axes) {
		f.err = "Joystick only has a limited number of axes"
		return 0
	}
	return d.Axes[axis]
}

func (f *Fake) JoystickGetButton(j native.Joystick, button int32) uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.joystick("JoystickGetButton", j)
	if d == nil || button < 0 || int(button) >= len(d.Buttons) {
		f.err = "Joystick only has a limited number of buttons"
		return 0
	}
	return d.Buttons[button]
}

func (f *Fake) JoystickGetHat(j native.Joystick, hat int32) uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.joystick("JoystickGetHat", j)
	if d == nil || hat < 0 || int(hat) >= len(d.Hats) {
		f.err = "Joystick only has a limited number of hats"
		return 0
	}
	return d.Hats[hat]
}

func (f *Fake) JoystickGetBall(j native.Joystick, ball int32) (dx, dy, status int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.joystick("JoystickGetBall", j)
	if d == nil || ball < 0 || int(ball) >= len(d.Balls) {
		f.err = "Joystick only has a limited number of balls"
		return 0, 0, -1
	}
	b := d.Balls[ball]
	d.Balls[ball] = [2]int32{}
	return b[0], b[1], 0
}

func (f *Fake) JoystickCurrentPowerLevel(j native.Joystick) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d := f.joystick("JoystickCurrentPowerLevel", j); d != nil {
		return d.Power
	}
	return native.PowerUnknown
}

func (f *Fake) IsGameController(index int32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.device(index)
	return d != nil && d.Controller
}

func (f *Fake) GameControllerNameForIndex(index int32) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.device(index)
	if d == nil || !d.Controller {
		return "", false
	}
	return d.ControllerName, true
}

func (f *Fake) GameControllerOpen(index int32) native.GameController {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("GameControllerOpen") {
		return 0
	}
	d := f.device(index)
	if d == nil || !d.Controller {
		f.err = "There is no game controller mapping for this joystick"
		return 0
	}
	o := f.create(KindGameController, 0)
	o.Device = d
	return native.GameController(o.Handle)
}

func (f *Fake) GameControllerClose(gc native.GameController) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.release("GameControllerClose", KindGameController, uintptr(gc)) == nil {
		return
	}
	for h, o := range f.objects {
		if o.Kind == KindJoystick && o.Parent == uintptr(gc) {
			delete(f.objects, h)
		}
	}
}

func (f *Fake) controller(op string, gc native.GameController) *Object {
	return f.get(op, KindGameController, uintptr(gc))
}

func (f *Fake) GameControllerFromInstanceID(id int32) native.GameController {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.deviceByInstance(id)
	if d == nil {
		return 0
	}
	return native.GameController(f.openFor(KindGameController, d))
}

// GameControllerGetJoystick returns a joystick handle that the controller
// owns. Like SDL, the handle stays valid until the controller is closed and
// must not be closed separately.
func (f *Fake) GameControllerGetJoystick(gc native.GameController) native.Joystick {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.controller("GameControllerGetJoystick", gc)
	if o == nil {
		return 0
	}
	if h := f.openFor(KindJoystick, o.Device); h != 0 {
		return native.Joystick(h)
	}
	j := f.create(KindJoystick, o.Handle)
	j.Device = o.Device
	return native.Joystick(j.Handle)
}

func (f *Fake) GameControllerGetAttached(gc native.GameController) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.controller("GameControllerGetAttached", gc); o != nil {
		return o.Device.Attached
	}
	return false
}

func (f *Fake) GameControllerGetAxis(gc native.GameController, axis int32) int16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.controller("GameControllerGetAxis", gc)
	if o == nil || axis < 0 || int(axis) >= len(o.Device.Axes) {
		return 0
	}
	return o.Device.Axes[axis]
}

func (f *Fake) GameControllerGetButton(gc native.GameController, button int32) uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.controller("GameControllerGetButton", gc)
	if o == nil || button < 0 || int(button) >= len(o.Device.Buttons) {
		return 0
	}
	return o.Device.Buttons[button]
}

func (f *Fake) GameControllerName(gc native.GameController) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.controller("GameControllerName", gc); o != nil {
		return o.Device.ControllerName, true
	}
	return "", false
}

func (f *Fake) GameControllerRumble(gc native.GameController, low, high uint16, ms uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.controller("GameControllerRumble", gc)
	if o == nil || f.failing("GameControllerRumble") {
		return -1
	}
	o.Rumble = low != 0 || high != 0
	return 0
}

func (f *Fake) GameControllerAddMapping(mapping string) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("GameControllerAddMapping") {
		return -1
	}
	for _, m := range f.mappings {
		if m == mapping {
			return 0
		}
	}
	f.mappings = append(f.mappings, mapping)
	return 1
}

func (f *Fake) GameControllerAddMappingsFromFile(path string) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("GameControllerAddMappingsFromFile") {
		return -1
	}
	return 0
}

func (f *Fake) hapticDevices() []*Device {
	var out []*Device
	for _, d := range f.devices {
		if d.Haptic {
			out = append(out, d)
		}
	}
	return out
}

func (f *Fake) NumHaptics() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int32(len(f.hapticDevices()))
}

func (f *Fake) HapticName(index int32) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hs := f.hapticDevices()
	if index < 0 || int(index) >= len(hs) {
		f.err = "Haptic: There are 0 haptic devices available"
		return "", false
	}
	return hs[index].HapticName, true
}

func (f *Fake) openHaptic(d *Device) native.Haptic {
	o := f.create(KindHaptic, 0)
	o.Device = d
	o.Gain = 100
	o.Effects = make(map[int32]native.HapticEffect)
	o.Running = make(map[int32]uint32)
	return native.Haptic(o.Handle)
}

func (f *Fake) HapticOpen(index int32) native.Haptic {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("HapticOpen") {
		return 0
	}
	hs := f.hapticDevices()
	if index < 0 || int(index) >= len(hs) {
		f.err = "Haptic: There are 0 haptic devices available"
		return 0
	}
	return f.openHaptic(hs[index])
}

func (f *Fake) HapticOpenFromJoystick(j native.Joystick) native.Haptic {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.joystick("HapticOpenFromJoystick", j)
	if d == nil || f.failing("HapticOpenFromJoystick") {
		return 0
	}
	if !d.Haptic {
		f.err = "Haptic: Joystick isn't a haptic device."
		return 0
	}
	return f.openHaptic(d)
}

func (f *Fake) HapticClose(h native.Haptic) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.release("HapticClose", KindHaptic, uintptr(h))
	if o == nil {
		return
	}
	// Closing the device drops its effects without destroying them one by one.
	for id := range o.Effects {
		delete(o.Effects, id)
	}
}

func (f *Fake) haptic(op string, h native.Haptic) *Object {
	return f.get(op, KindHaptic, uintptr(h))
}

func (f *Fake) HapticQuery(h native.Haptic) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.haptic("HapticQuery", h); o != nil {
		return o.Device.Features
	}
	return 0
}

func (f *Fake) HapticNumEffects(h native.Haptic) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.haptic("HapticNumEffects", h); o != nil {
		return o.Device.MaxEffects
	}
	return -1
}

func (f *Fake) HapticNewEffect(h native.Haptic, effect *native.HapticEffect) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.haptic("HapticNewEffect", h)
	if o == nil || f.failing("HapticNewEffect") {
		return -1
	}
	if effect == nil || uint32(effect.Type)&o.Device.Features == 0 {
		f.err = "Haptic: Effect not supported by haptic device."
		return -1
	}
	if int32(len(o.Effects)) >= o.Device.MaxEffects {
		f.err = "Haptic: Device has no free space left."
		return -1
	}
	id := f.effectID
	f.effectID++
	o.Effects[id] = *effect
	return id
}

// Effect returns the parameters of an uploaded effect.
func (f *Fake) Effect(h uintptr, id int32) (native.HapticEffect, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.objects[h]
	if o == nil || o.Kind != KindHaptic {
		return native.HapticEffect{}, false
	}
	e, ok := o.Effects[id]
	return e, ok
}

// Running returns the iteration count of a running effect.
func (f *Fake) Running(h uintptr, id int32) (uint32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.objects[h]
	if o == nil || o.Kind != KindHaptic {
		return 0, false
	}
	n, ok := o.Running[id]
	return n, ok
}

func (f *Fake) effect(op string, h native.Haptic, id int32) *Object {
	o := f.haptic(op, h)
	if o == nil {
		return nil
	}
	if _, ok := o.Effects[id]; !ok {
		f.err = "Haptic: Invalid effect identifier."
		return nil
	}
	return o
}

func (f *Fake) HapticRunEffect(h native.Haptic, effect int32, iterations uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.effect("HapticRunEffect", h, effect)
	if o == nil || f.failing("HapticRunEffect") {
		return -1
	}
	o.Running[effect] = iterations
	return 0
}

func (f *Fake) HapticStopEffect(h native.Haptic, effect int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.effect("HapticStopEffect", h, effect)
	if o == nil {
		return -1
	}
	delete(o.Running, effect)
	return 0
}

func (f *Fake) HapticDestroyEffect(h native.Haptic, effect int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.haptic("HapticDestroyEffect", h)
	if o == nil {
		return
	}
	if _, ok := o.Effects[effect]; !ok {
		f.violations = append(f.violations, "HapticDestroyEffect: unknown effect")
		return
	}
	delete(o.Effects, effect)
	delete(o.Running, effect)
	f.released[KindHapticEffect] = append(f.released[KindHapticEffect], uintptr(effect))
}

func (f *Fake) HapticSetGain(h native.Haptic, gain int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.haptic("HapticSetGain", h)
	if o == nil {
		return -1
	}
	if o.Device.Features&native.HapticGain == 0 {
		f.err = "Haptic: Device does not support setting gain."
		return -1
	}
	if gain < 0 || gain > 100 {
		f.err = "Haptic: Gain must be between 0 and 100."
		return -1
	}
	o.Gain = gain
	return 0
}

func (f *Fake) HapticRumbleInit(h native.Haptic) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.haptic("HapticRumbleInit", h)
	if o == nil {
		return -1
	}
	if o.Device.Features&(native.HapticSine|native.HapticLeftRight) == 0 {
		f.err = "Haptic: Rumble not supported."
		return -1
	}
	o.Rumble = true
	return 0
}

func (f *Fake) HapticRumblePlay(h native.Haptic, strength float32, ms uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.haptic("HapticRumblePlay", h)
	if o == nil {
		return -1
	}
	if !o.Rumble {
		f.err = "Haptic: Rumble effect not initialized on haptic device"
		return -1
	}
	return 0
}

func (f *Fake) HapticRumbleStop(h native.Haptic) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.haptic("HapticRumbleStop", h)
	if o == nil || !o.Rumble {
		return -1
	}
	return 0
}

func (f *Fake) CreateSystemCursor(id int32) native.Cursor {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("CreateSystemCursor") {
		return 0
	}
	if id < native.SystemCursorArrow || id > native.SystemCursorHand {
		f.err = "Parameter 'id' is invalid"
		return 0
	}
	return native.Cursor(f.create(KindCursor, 0).Handle)
}

func (f *Fake) CreateColorCursor(s native.Surface, hotX, hotY int32) native.Cursor {
	f.mu.Lock()
	defer f.mu.Unlock()
	src := f.surface("CreateColorCursor", s)
	if src == nil || f.failing("CreateColorCursor") {
		return 0
	}
	if hotX < 0 || hotY < 0 || hotX >= src.W || hotY >= src.H {
		f.err = "Cursor hot spot doesn't lie within cursor"
		return 0
	}
	return native.Cursor(f.create(KindCursor, 0).Handle)
}

func (f *Fake) FreeCursor(c native.Cursor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.release("FreeCursor", KindCursor, uintptr(c)) != nil && f.cursor == uintptr(c) {
		f.cursor = 0
	}
}

func (f *Fake) SetCursor(c native.Cursor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c != 0 && f.get("SetCursor", KindCursor, uintptr(c)) == nil {
		return
	}
	f.cursor = uintptr(c)
}

func (f *Fake) ShowCursor(toggle int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch toggle {
	case native.CursorEnable:
		f.cursorShown = true
	case native.CursorDisable:
		f.cursorShown = false
	}
	if f.cursorShown {
		return native.CursorEnable
	}
	return native.CursorDisable
}

func (f *Fake) SetRelativeMouseMode(enabled bool) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("SetRelativeMouseMode") {
		return -1
	}
	f.relativeMouse = enabled
	return 0
}

func (f *Fake) GetRelativeMouseMode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.relativeMouse
}

func (f *Fake) WarpMouseInWindow(w native.Window, x, y int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w != 0 && f.window("WarpMouseInWindow", w) == nil {
		return
	}
	f.mouseX, f.mouseY = x, y
}

func (f *Fake) GetMouseState() (x, y int32, buttons uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mouseX, f.mouseY, f.mouseButtons
}
