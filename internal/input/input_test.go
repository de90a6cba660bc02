package input

import (
	"errors"
	"testing"
	"time"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/native/nativetest"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
	"github.com/tinyrange/gosdl/internal/video"
)

func newSystem(t *testing.T) (*nativetest.Fake, *sdl.System) {
	t.Helper()
	f := nativetest.New()
	sys, err := sdl.Init(f, native.InitJoystick|native.InitGameController|native.InitHaptic)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(sys.Close)
	return f, sys
}

func expectPanic[T error](t *testing.T, fn func()) T {
	t.Helper()
	var got T
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic")
			}
			err, ok := r.(T)
			if !ok {
				t.Fatalf("panic value %T (%v)", r, r)
			}
			got = err
		}()
		fn()
	}()
	return got
}

var pad = nativetest.Device{
	Name:    "Test Pad",
	Axes:    []int16{-100, 200},
	Buttons: []uint8{0, 1, 0},
	Hats:    []uint8{native.HatLeftUp},
	Power:   native.PowerFull,
}

func TestJoystickLifecycle(t *testing.T) {
	f, sys := newSystem(t)
	d := pad
	d.Balls = [][2]int32{{3, -4}}
	f.Plug(d)

	if n, err := NumJoysticks(sys); err != nil || n != 1 {
		t.Fatalf("NumJoysticks = %d, %v", n, err)
	}
	if name, err := JoystickNameForIndex(sys, 0); err != nil || name != "Test Pad" {
		t.Fatalf("name = %q, %v", name, err)
	}

	j, err := OpenJoystick(sys, 0)
	if err != nil {
		t.Fatal(err)
	}
	if j.Handle() != 0x1 {
		t.Fatalf("handle = %#x", j.Handle())
	}
	if name, _ := j.Name(); name != "Test Pad" {
		t.Fatalf("name = %q", name)
	}
	if n, _ := j.NumAxes(); n != 2 {
		t.Fatalf("axes = %d", n)
	}
	if n, _ := j.NumButtons(); n != 3 {
		t.Fatalf("buttons = %d", n)
	}
	if n, _ := j.NumHats(); n != 1 {
		t.Fatalf("hats = %d", n)
	}
	if n, _ := j.NumBalls(); n != 1 {
		t.Fatalf("balls = %d", n)
	}
	if j.Axis(1) != 200 || !j.Button(1) || j.Button(0) || j.Hat(0) != native.HatLeftUp {
		t.Fatal("state mismatch")
	}
	if dx, dy, err := j.Ball(0); err != nil || dx != 3 || dy != -4 {
		t.Fatalf("ball = %d,%d %v", dx, dy, err)
	}
	if dx, dy, _ := j.Ball(0); dx != 0 || dy != 0 {
		t.Fatal("ball motion must reset after a read")
	}
	if _, _, err := j.Ball(5); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}
	if j.PowerLevel() != native.PowerFull || !j.Attached() {
		t.Fatal("power or attachment")
	}

	f.Unplug(0)
	if j.Attached() {
		t.Fatal("still attached after unplug")
	}

	moved := j.Move()
	expectPanic[*resource.UseAfterReleaseError](t, func() { j.InstanceID() })
	moved.Close()
	j.Close()
	if f.ReleaseCount(nativetest.KindJoystick, 0x1) != 1 {
		t.Fatal("joystick must close once")
	}
	if len(f.Violations()) != 0 {
		t.Fatal(f.Violations())
	}
}

func TestJoystickOpenFailure(t *testing.T) {
	f, sys := newSystem(t)
	j, err := OpenJoystick(sys, 3)
	if j != nil {
		t.Fatal("expected nil joystick")
	}
	var ce *resource.CreationError
	if !errors.As(err, &ce) || ce.Diagnostic != "Joystick index out of range" {
		t.Fatalf("err = %v", err)
	}
	if len(f.Released(nativetest.KindJoystick)) != 0 {
		t.Fatal("nothing to release")
	}
}

func TestJoystickFromInstanceIDIsBorrowed(t *testing.T) {
	f, sys := newSystem(t)
	f.Plug(pad)
	owned, err := OpenJoystick(sys, 0)
	if err != nil {
		t.Fatal(err)
	}

	borrowed, err := JoystickFromInstanceID(sys, owned.InstanceID())
	if err != nil {
		t.Fatal(err)
	}
	if borrowed.Owned() || borrowed.Handle() != owned.Handle() {
		t.Fatal("lookup must borrow the open handle")
	}
	borrowed.Close()
	if len(f.Released(nativetest.KindJoystick)) != 0 {
		t.Fatal("borrowed close released the device")
	}
	owned.Close()
	if f.ReleaseCount(nativetest.KindJoystick, uintptr(0x1)) != 1 {
		t.Fatal("owner must release")
	}

	if _, err := JoystickFromInstanceID(sys, 999); !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("err = %v", err)
	}
}

var controller = nativetest.Device{
	Name:           "Raw Pad",
	Axes:           []int16{0, 0, 0, 0, 0, 32767},
	Buttons:        []uint8{1},
	Controller:     true,
	ControllerName: "Mapped Pad",
}

func TestGameController(t *testing.T) {
	f, sys := newSystem(t)
	f.Plug(controller)

	if !IsGameController(sys, 0) {
		t.Fatal("device has a mapping")
	}
	if name, ok := GameControllerNameForIndex(sys, 0); !ok || name != "Mapped Pad" {
		t.Fatalf("name = %q", name)
	}

	gc, err := OpenGameController(sys, 0)
	if err != nil {
		t.Fatal(err)
	}
	if name, _ := gc.Name(); name != "Mapped Pad" {
		t.Fatalf("name = %q", name)
	}
	if gc.Axis(native.ControllerAxisTriggerRight) != 32767 || !gc.Button(native.ControllerButtonA) {
		t.Fatal("state mismatch")
	}
	if err := gc.Rumble(0xffff, 0x8000, 250*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if !f.Object(uintptr(gc.Handle())).Rumble {
		t.Fatal("rumble not started")
	}

	j, err := gc.Joystick()
	if err != nil {
		t.Fatal(err)
	}
	if j.Owned() {
		t.Fatal("controller joystick must be borrowed")
	}
	if name, _ := j.Name(); name != "Raw Pad" {
		t.Fatalf("joystick name = %q", name)
	}
	j.Close()

	j, _ = gc.Joystick()
	gc.Close()
	if got := f.Released(nativetest.KindGameController); len(got) != 1 {
		t.Fatalf("released = %v", got)
	}
	if got := f.Released(nativetest.KindJoystick); len(got) != 0 {
		t.Fatalf("controller joystick closed separately: %v", got)
	}
	expectPanic[*resource.ParentReleasedError](t, func() { j.Name() })
}

func TestGameControllerFromInstanceID(t *testing.T) {
	f, sys := newSystem(t)
	f.Plug(controller)
	gc, err := OpenGameController(sys, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer gc.Close()

	j, _ := gc.Joystick()
	found, err := GameControllerFromInstanceID(sys, j.InstanceID())
	if err != nil {
		t.Fatal(err)
	}
	if found.Owned() || found.Handle() != gc.Handle() {
		t.Fatal("lookup must borrow")
	}
	found.Close()
	if len(f.Released(nativetest.KindGameController)) != 0 {
		t.Fatal("borrowed close released the controller")
	}
}

func TestOpenAllGameControllers(t *testing.T) {
	f, sys := newSystem(t)
	f.Plug(controller)
	f.Plug(pad)
	f.Plug(controller)

	all := OpenAllGameControllers(sys)
	if len(all) != 2 {
		t.Fatalf("opened %d controllers", len(all))
	}
	for _, gc := range all {
		gc.Close()
	}

	f.Fail("GameControllerOpen", "Couldn't open")
	if all := OpenAllGameControllers(sys); len(all) != 0 {
		t.Fatal("failures must be skipped")
	}
}

func TestMappings(t *testing.T) {
	f, sys := newSystem(t)
	const m = "030000005e0400008e02000014010000,Pad,a:b0,"
	if added, err := AddMapping(sys, m); err != nil || !added {
		t.Fatalf("added = %v, %v", added, err)
	}
	if added, _ := AddMapping(sys, m); added {
		t.Fatal("duplicate mapping reported as new")
	}
	if got := f.Mappings(); len(got) != 1 || got[0] != m {
		t.Fatalf("mappings = %v", got)
	}
	if _, err := LoadMappingDatabase(sys, "gamecontrollerdb.txt"); err != nil {
		t.Fatal(err)
	}
	f.Fail("GameControllerAddMappingsFromFile", "Couldn't open gamecontrollerdb.txt")
	if _, err := LoadMappingDatabase(sys, "gamecontrollerdb.txt"); err == nil ||
		err.Error() != "SDL_GameControllerAddMappingsFromFile failed: Couldn't open gamecontrollerdb.txt" {
		t.Fatalf("err = %v", err)
	}
}

var wheel = nativetest.Device{
	Name:       "Wheel",
	Haptic:     true,
	HapticName: "Wheel FF",
	Features:   native.HapticConstant | native.HapticLeftRight | native.HapticGain,
	MaxEffects: 2,
}

func TestHapticEffects(t *testing.T) {
	f, sys := newSystem(t)
	f.Plug(wheel)

	if NumHaptics(sys) != 1 {
		t.Fatal("haptic count")
	}
	if name, err := HapticName(sys, 0); err != nil || name != "Wheel FF" {
		t.Fatalf("name = %q, %v", name, err)
	}
	hp, err := OpenHaptic(sys, 0)
	if err != nil {
		t.Fatal(err)
	}
	h := uintptr(hp.Handle())
	if !hp.IsCapableOf(native.HapticConstant|native.HapticGain) || hp.IsCapableOf(native.HapticSine) {
		t.Fatalf("capabilities = %#x", hp.Capabilities())
	}
	if n, _ := hp.NumEffects(); n != 2 {
		t.Fatalf("num effects = %d", n)
	}
	if err := hp.SetGain(50); err != nil {
		t.Fatal(err)
	}
	if err := hp.SetGain(150); err == nil {
		t.Fatal("gain above 100 must fail")
	}

	push, err := hp.NewEffect(ConstantEffect{Replay: Replay{Length: time.Second}, Level: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if ne, ok := f.Effect(h, push.ID()); !ok || ne.Level != 1000 || ne.Length != 1000 {
		t.Fatalf("uploaded = %+v", ne)
	}
	if err := push.Run(3); err != nil {
		t.Fatal(err)
	}
	if n, ok := f.Running(h, push.ID()); !ok || n != 3 {
		t.Fatalf("running = %d, %v", n, ok)
	}
	if err := push.Stop(); err != nil {
		t.Fatal(err)
	}

	if _, err := hp.NewEffect(PeriodicEffect{Period: 100 * time.Millisecond}); !errors.Is(err, resource.ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
	rumble, err := hp.NewEffect(LeftRightEffect{Length: Infinite, Large: 0xffff})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := hp.NewEffect(ConstantEffect{}); !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("full device err = %v", err)
	}
	if hp.EffectCount() != 2 {
		t.Fatalf("count = %d", hp.EffectCount())
	}

	push.Remove()
	push.Remove()
	if hp.EffectCount() != 1 {
		t.Fatal("remove must drop the effect")
	}
	if got := f.Released(nativetest.KindHapticEffect); len(got) != 1 || got[0] != 0 {
		t.Fatalf("destroyed = %v", got)
	}

	hp.Close()
	if got := f.Released(nativetest.KindHapticEffect); len(got) != 2 || got[1] != 1 {
		t.Fatalf("close must destroy remaining effects first: %v", got)
	}
	if f.ReleaseCount(nativetest.KindHaptic, h) != 1 {
		t.Fatal("haptic not closed")
	}
	expectPanic[*resource.UseAfterReleaseError](t, func() { rumble.Run(1) })
	if len(f.Violations()) != 0 {
		t.Fatal(f.Violations())
	}
}

func TestHapticRumble(t *testing.T) {
	f, sys := newSystem(t)
	f.Plug(wheel)
	hp, err := OpenHaptic(sys, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer hp.Close()

	if err := hp.RumblePlay(0.5, time.Second); err == nil {
		t.Fatal("play before init must fail")
	}
	if err := hp.RumbleInit(); err != nil {
		t.Fatal(err)
	}
	if err := hp.RumblePlay(0.5, time.Second); err != nil {
		t.Fatal(err)
	}
	if err := hp.RumbleStop(); err != nil {
		t.Fatal(err)
	}
}

func TestHapticFromJoystick(t *testing.T) {
	f, sys := newSystem(t)
	f.Plug(pad)
	f.Plug(wheel)

	plain, err := OpenJoystick(sys, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer plain.Close()
	if _, err := plain.OpenHaptic(); !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("err = %v", err)
	}

	j, err := OpenJoystick(sys, 1)
	if err != nil {
		t.Fatal(err)
	}
	hp, err := j.OpenHaptic()
	if err != nil {
		t.Fatal(err)
	}
	h := hp.Handle()
	j.Close()
	expectPanic[*resource.ParentReleasedError](t, func() { hp.Capabilities() })

	// Closing the joystick leaves the device open, so it is still released.
	hp.Close()
	if n := f.ReleaseCount(nativetest.KindHaptic, uintptr(h)); n != 1 {
		t.Fatalf("haptic release count = %d, want 1", n)
	}
}

func TestControllerHaptic(t *testing.T) {
	f, sys := newSystem(t)
	d := controller
	d.Haptic, d.Features, d.MaxEffects = true, native.HapticLeftRight, 1
	f.Plug(d)

	gc, err := OpenGameController(sys, 0)
	if err != nil {
		t.Fatal(err)
	}
	hp, err := gc.OpenHaptic()
	if err != nil {
		t.Fatal(err)
	}
	if !hp.IsCapableOf(native.HapticLeftRight) {
		t.Fatal("capabilities")
	}
	hp.Close()
	gc.Close()
	if len(f.Violations()) != 0 {
		t.Fatal(f.Violations())
	}
}

func TestCursors(t *testing.T) {
	f, sys := newSystem(t)

	c, err := NewSystemCursor(sys, native.SystemCursorHand)
	if err != nil {
		t.Fatal(err)
	}
	c.Set()
	if f.CurrentCursor() != uintptr(c.Handle()) {
		t.Fatal("cursor not active")
	}
	h := uintptr(c.Handle())
	c.Close()
	c.Close()
	if f.ReleaseCount(nativetest.KindCursor, h) != 1 || f.CurrentCursor() != 0 {
		t.Fatal("cursor must be freed once")
	}
	if _, err := NewSystemCursor(sys, 99); !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("err = %v", err)
	}

	s, err := video.NewSurface(sys, 8, 8, native.PixelFormatARGB8888)
	if err != nil {
		t.Fatal(err)
	}
	cc, err := NewColorCursor(sys, s, geom.Pt(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	cc.Set()
	cc.Close()
	if _, err := NewColorCursor(sys, mustSurface(t, sys), geom.Pt(9, 0)); err == nil {
		t.Fatal("hot spot outside the surface must fail")
	}
	expectPanic[*resource.UseAfterReleaseError](t, func() { NewColorCursor(sys, s, geom.Pt(0, 0)) })
}

func mustSurface(t *testing.T, sys *sdl.System) *video.Surface {
	t.Helper()
	s, err := video.NewSurface(sys, 8, 8, native.PixelFormatARGB8888)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestMouse(t *testing.T) {
	f, sys := newSystem(t)

	HideCursor(sys)
	if CursorVisible(sys) {
		t.Fatal("cursor visible after hide")
	}
	ShowCursor(sys)
	if !CursorVisible(sys) {
		t.Fatal("cursor hidden after show")
	}

	if err := SetRelativeMouse(sys, true); err != nil || !RelativeMouse(sys) {
		t.Fatal("relative mode")
	}
	f.Fail("SetRelativeMouseMode", "Relative mouse mode not supported")
	if err := SetRelativeMouse(sys, false); err == nil {
		t.Fatal("expected failure")
	}

	f.SetMouse(5, 6, 1<<(native.ButtonLeft-1))
	p, buttons := MouseState(sys)
	if p != geom.Pt(5, 6) || buttons != 1 {
		t.Fatalf("state = %v %#x", p, buttons)
	}

	w, err := video.NewWindow(sys, "mouse", 100, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	WarpInWindow(w, geom.Pt(50, 40))
	if p, _ := MouseState(sys); p != geom.Pt(50, 40) {
		t.Fatalf("warp = %v", p)
	}
	w.Close()
	expectPanic[*resource.UseAfterReleaseError](t, func() { WarpInWindow(w, geom.Pt(0, 0)) })
}

func TestEffectSpecs(t *testing.T) {
	n := LeftRightEffect{Length: Infinite, Large: 1, Small: 2}.Native()
	if n.Type != native.HapticLeftRight || n.Length != native.HapticInfinity {
		t.Fatalf("left/right = %+v", n)
	}

	p := PeriodicEffect{
		Direction: Polar(9000),
		Replay:    Replay{Length: 2 * time.Second, Delay: 10 * time.Millisecond},
		Period:    100 * time.Millisecond,
		Magnitude: -5,
		Envelope:  Envelope{AttackLength: time.Hour, FadeLevel: 7},
	}.Native()
	if p.Type != native.HapticSine || p.Direction.Type != native.HapticPolar || p.Direction.Dir[0] != 9000 {
		t.Fatalf("periodic = %+v", p)
	}
	if p.Length != 2000 || p.Delay != 10 || p.Period != 100 || p.AttackLength != 0xffff || p.FadeLevel != 7 {
		t.Fatalf("periodic timing = %+v", p)
	}

	r := RampEffect{Direction: Cartesian(1, -1, 0), Start: -10, End: 10}.Native()
	if r.Type != native.HapticRamp || r.Direction.Dir != [3]int32{1, -1, 0} || r.Start != -10 {
		t.Fatalf("ramp = %+v", r)
	}

	c := ConditionEffect{Trigger: Trigger{Button: 2, Interval: time.Second}, Center: [3]int16{4}}.Native()
	if c.Type != native.HapticSpring || c.Button != 2 || c.Interval != 1000 || c.Center[0] != 4 {
		t.Fatalf("condition = %+v", c)
	}

	if millis(-time.Second) != 0 || millis(time.Hour*24*60) != 0xffffffff {
		t.Fatal("millis must clamp")
	}
}
