// Package nativetest provides an in-memory stand-in for the SDL2 and SDL2_ttf
// libraries. It hands out sequential handles starting at 0x1, keeps enough
// per-object state for the wrappers to be exercised, and records every release
// so tests can check that each handle was freed exactly once.
package nativetest

import (
	"fmt"
	"sort"
	"sync"
	"unsafe"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
)

var (
	_ native.SDL = (*Fake)(nil)
	_ native.TTF = (*Fake)(nil)
)

// Object kinds, also used as keys for Released.
const (
	KindWindow         = "window"
	KindRenderer       = "renderer"
	KindTexture        = "texture"
	KindSurface        = "surface"
	KindGLContext      = "glcontext"
	KindJoystick       = "joystick"
	KindGameController = "gamecontroller"
	KindHaptic         = "haptic"
	KindHapticEffect   = "hapticeffect"
	KindCursor         = "cursor"
	KindObject         = "object"
	KindFont           = "font"
	KindTimer          = "timer"
	KindEventWatch     = "eventwatch"
)

// Object is the state behind one handle. Tests may mutate it directly through
// Fake.Object.
type Object struct {
	Kind   string
	Handle uintptr
	Parent uintptr

	// window
	ID           uint32
	Title        string
	X, Y, W, H   int32
	Flags        uint32
	DisplayIndex int32
	Grab         bool
	Icon         uintptr

	// renderer
	DrawColor    geom.Color
	ClearColor   geom.Color
	Clip         geom.Rect
	ClipEnabled  bool
	IntegerScale bool
	Ops          []string

	// texture and surface
	Format    uint32
	Access    int32
	Pitch     int32
	Pixels    []byte
	Locked    bool
	BlendMode int32
	ColorMod  [3]uint8
	AlphaMod  uint8
	ColorKey  uint32
	HasKey    bool

	// joystick, controller and haptic
	Device  *Device
	Gain    int32
	Rumble  bool
	Effects map[int32]native.HapticEffect
	Running map[int32]uint32

	// shared object
	Symbols map[string]uintptr

	// font
	Size  int32
	Style int32
}

// Device describes a joystick plugged into the fake.
type Device struct {
	Name       string
	InstanceID int32
	Axes       []int16
	Buttons    []uint8
	Hats       []uint8
	Balls      [][2]int32
	Power      int32
	Attached   bool

	Controller     bool
	ControllerName string

	Haptic     bool
	HapticName string
	Features   uint32
	MaxEffects int32
}

type timer struct {
	interval uint32
	cb       native.TimerCallback
}

// Fake implements native.SDL and native.TTF.
type Fake struct {
	mu sync.Mutex

	next    uintptr
	objects map[uintptr]*Object

	err      string
	failures map[string]string

	released   map[string][]uintptr
	violations []string

	initFlags uint32
	ttfInit   int32
	hints     map[string]string
	events    []native.Event

	devices      []*Device
	nextInstance int32
	mappings     []string

	cursor        uintptr
	cursorShown   bool
	relativeMouse bool
	mouseX        int32
	mouseY        int32
	mouseButtons  uint32

	glCurrent  uintptr
	swapWindow []uintptr
	procs      map[string]uintptr
	dpi        map[int32]float32

	libraries map[string]map[string]uintptr

	nextTimer native.TimerID
	timers    map[native.TimerID]timer
	ticks     uint64

	windowID uint32
	effectID int32

	watches    []watch
	nextWatch  uintptr
	filter     native.EventFilter
	userEvents uint32
	pumps      int
	waits      []int32
}

// New returns an empty fake with no devices attached.
func New() *Fake {
	return &Fake{
		objects:      make(map[uintptr]*Object),
		failures:     make(map[string]string),
		released:     make(map[string][]uintptr),
		hints:        make(map[string]string),
		procs:        make(map[string]uintptr),
		dpi:          make(map[int32]float32),
		libraries:    make(map[string]map[string]uintptr),
		timers:       make(map[native.TimerID]timer),
		nextInstance: 100,
		cursorShown:  true,
	}
}

// Fail makes every later call to op fail with diag until Succeed is called.
// op is the method name, e.g. "CreateWindow".
func (f *Fake) Fail(op, diag string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = diag
}

// Succeed clears a failure installed with Fail.
func (f *Fake) Succeed(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failures, op)
}

// Released returns the handles of kind released so far, in order.
func (f *Fake) Released(kind string) []uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uintptr(nil), f.released[kind]...)
}

// ReleaseCount returns how many times handle h of kind was released.
func (f *Fake) ReleaseCount(kind string, h uintptr) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.released[kind] {
		if r == h {
			n++
		}
	}
	return n
}

// Violations lists calls made with dead or unknown handles.
func (f *Fake) Violations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.violations...)
}

// Live returns the live handles of kind in ascending order.
func (f *Fake) Live(kind string) []uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uintptr
	for h, o := range f.objects {
		if o.Kind == kind {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Object returns the state behind a live handle, or nil.
func (f *Fake) Object(h uintptr) *Object {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[h]
}

// Push queues an event for PollEvent.
func (f *Fake) Push(ev native.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

// Hint returns the value set with SetHint.
func (f *Fake) Hint(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hints[name]
}

// SetDPI sets the diagonal DPI reported for a display.
func (f *Fake) SetDPI(display int32, dpi float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dpi[display] = dpi
}

// SetProc makes GLGetProcAddress resolve name.
func (f *Fake) SetProc(name string, addr uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.procs[name] = addr
}

// AddLibrary makes LoadObject succeed for name with the given symbols.
func (f *Fake) AddLibrary(name string, symbols map[string]uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.libraries[name] = symbols
}

// Plug attaches a device and returns its device index.
func (f *Fake) Plug(d Device) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	dev := d
	dev.Attached = true
	dev.InstanceID = f.nextInstance
	f.nextInstance++
	f.devices = append(f.devices, &dev)
	return int32(len(f.devices) - 1)
}

// Unplug detaches the device at index. Open handles stay valid but report
// themselves as detached.
func (f *Fake) Unplug(index int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d := f.device(index); d != nil {
		d.Attached = false
	}
}

// Mappings returns the controller mappings added so far.
func (f *Fake) Mappings() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.mappings...)
}

// CurrentCursor returns the cursor installed with SetCursor.
func (f *Fake) CurrentCursor() uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor
}

// SetMouse sets the state returned by GetMouseState.
func (f *Fake) SetMouse(x, y int32, buttons uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mouseX, f.mouseY, f.mouseButtons = x, y, buttons
}

// Swaps returns the windows passed to GLSwapWindow.
func (f *Fake) Swaps() []uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uintptr(nil), f.swapWindow...)
}

// Timers returns the number of registered timers.
func (f *Fake) Timers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// FireTimers runs every timer callback once on the calling goroutine. A
// callback returning 0 removes its timer.
func (f *Fake) FireTimers() {
	f.mu.Lock()
	ids := make([]native.TimerID, 0, len(f.timers))
	for id := range f.timers {
		ids = append(ids, id)
	}
	f.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		f.mu.Lock()
		t, ok := f.timers[id]
		f.mu.Unlock()
		if !ok {
			continue
		}
		next := t.cb(t.interval)
		f.mu.Lock()
		if _, still := f.timers[id]; still {
			if next == 0 {
				delete(f.timers, id)
			} else {
				t.interval = next
				f.timers[id] = t
			}
		}
		f.mu.Unlock()
	}
}

// failing reports whether op is configured to fail and sets the error string.
// Callers hold f.mu.
func (f *Fake) failing(op string) bool {
	diag, ok := f.failures[op]
	if ok {
		f.err = diag
	}
	return ok
}

func (f *Fake) create(kind string, parent uintptr) *Object {
	f.next++
	o := &Object{Kind: kind, Handle: f.next, Parent: parent}
	f.objects[o.Handle] = o
	return o
}

func (f *Fake) get(op, kind string, h uintptr) *Object {
	o := f.objects[h]
	if o == nil || o.Kind != kind {
		f.violations = append(f.violations, fmt.Sprintf("%s: %s %#x is not live", op, kind, h))
		f.err = "Invalid " + kind
		return nil
	}
	return o
}

func (f *Fake) release(op, kind string, h uintptr) *Object {
	o := f.get(op, kind, h)
	if o == nil {
		return nil
	}
	if o.Parent != 0 && f.objects[o.Parent] == nil {
		// The native parent already freed this child; releasing it again is a
		// double free.
		f.violations = append(f.violations, fmt.Sprintf("%s: %s %#x released after its parent %#x", op, kind, h, o.Parent))
	}
	delete(f.objects, h)
	f.released[kind] = append(f.released[kind], h)
	return o
}

func (f *Fake) device(index int32) *Device {
	if index < 0 || int(index) >= len(f.devices) {
		return nil
	}
	return f.devices[index]
}

func (f *Fake) deviceByInstance(id int32) *Device {
	for _, d := range f.devices {
		if d.InstanceID == id {
			return d
		}
	}
	return nil
}

func (f *Fake) openFor(kind string, dev *Device) uintptr {
	for h, o := range f.objects {
		if o.Kind == kind && o.Device == dev {
			return h
		}
	}
	return 0
}

// Core

func (f *Fake) Init(flags uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("Init") {
		return -1
	}
	f.initFlags |= flags
	return 0
}

func (f *Fake) Quit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initFlags = 0
}

func (f *Fake) WasInit(flags uint32) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if flags == 0 {
		return f.initFlags
	}
	return f.initFlags & flags
}

func (f *Fake) GetError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Fake) ClearError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = ""
}

// SetError sets the string returned by GetError.
func (f *Fake) SetError(diag string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = diag
}

func (f *Fake) SetHint(name, value string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("SetHint") {
		return false
	}
	f.hints[name] = value
	return true
}

func (f *Fake) GetVersion() (major, minor, patch uint8) { return 2, 30, 0 }
func (f *Fake) GetPlatform() string                     { return "Fake" }

func (f *Fake) PollEvent(ev *native.Event) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pop(ev)
}

// Video

func (f *Fake) GetCurrentVideoDriver() string { return "fake" }
func (f *Fake) GetNumVideoDisplays() int32    { return 1 }

func (f *Fake) GetDisplayDPI(index int32) (ddpi, hdpi, vdpi float32, status int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("GetDisplayDPI") {
		return 0, 0, 0, -1
	}
	d, ok := f.dpi[index]
	if !ok {
		d = 96
	}
	return d, d, d, 0
}

func (f *Fake) CreateWindow(title string, x, y, w, h int32, flags uint32) native.Window {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("CreateWindow") {
		return 0
	}
	o := f.create(KindWindow, 0)
	f.windowID++
	o.ID = f.windowID
	o.Title, o.X, o.Y, o.W, o.H, o.Flags = title, x, y, w, h, flags
	return native.Window(o.Handle)
}

func (f *Fake) CreateWindowFrom(data uintptr) native.Window {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("CreateWindowFrom") || data == 0 {
		if data == 0 {
			f.err = "Invalid native window"
		}
		return 0
	}
	o := f.create(KindWindow, 0)
	f.windowID++
	o.ID = f.windowID
	o.Flags = native.WindowForeign
	return native.Window(o.Handle)
}

func (f *Fake) DestroyWindow(w native.Window) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release("DestroyWindow", KindWindow, uintptr(w))
}

func (f *Fake) window(op string, w native.Window) *Object {
	return f.get(op, KindWindow, uintptr(w))
}

func (f *Fake) GetWindowID(w native.Window) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("GetWindowID", w); o != nil {
		return o.ID
	}
	return 0
}

func (f *Fake) GetWindowSize(w native.Window) (width, height int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("GetWindowSize", w); o != nil {
		return o.W, o.H
	}
	return 0, 0
}

func (f *Fake) SetWindowSize(w native.Window, width, height int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("SetWindowSize", w); o != nil {
		o.W, o.H = width, height
	}
}

func (f *Fake) GetWindowPosition(w native.Window) (x, y int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("GetWindowPosition", w); o != nil {
		return o.X, o.Y
	}
	return 0, 0
}

func (f *Fake) SetWindowPosition(w native.Window, x, y int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("SetWindowPosition", w); o != nil {
		o.X, o.Y = x, y
	}
}

func (f *Fake) GetWindowTitle(w native.Window) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("GetWindowTitle", w); o != nil {
		return o.Title
	}
	return ""
}

func (f *Fake) SetWindowTitle(w native.Window, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("SetWindowTitle", w); o != nil {
		o.Title = title
	}
}

func (f *Fake) GetWindowFlags(w native.Window) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("GetWindowFlags", w); o != nil {
		return o.Flags
	}
	return 0
}

func (f *Fake) SetWindowFullscreen(w native.Window, flags uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.window("SetWindowFullscreen", w)
	if o == nil || f.failing("SetWindowFullscreen") {
		return -1
	}
	o.Flags = o.Flags&^native.WindowFullscreenDesktop | flags
	return 0
}

func (f *Fake) setWindowFlag(op string, w native.Window, set, clear uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window(op, w); o != nil {
		o.Flags = o.Flags&^clear | set
	}
}

func (f *Fake) ShowWindow(w native.Window) {
	f.setWindowFlag("ShowWindow", w, native.WindowShown, native.WindowHidden)
}

func (f *Fake) HideWindow(w native.Window) {
	f.setWindowFlag("HideWindow", w, native.WindowHidden, native.WindowShown)
}

func (f *Fake) RaiseWindow(w native.Window) {
	f.setWindowFlag("RaiseWindow", w, native.WindowInputFocus, 0)
}

func (f *Fake) MaximizeWindow(w native.Window) {
	f.setWindowFlag("MaximizeWindow", w, native.WindowMaximized, native.WindowMinimized)
}

func (f *Fake) MinimizeWindow(w native.Window) {
	f.setWindowFlag("MinimizeWindow", w, native.WindowMinimized, native.WindowMaximized)
}

func (f *Fake) RestoreWindow(w native.Window) {
	f.setWindowFlag("RestoreWindow", w, 0, native.WindowMinimized|native.WindowMaximized)
}

func (f *Fake) SetWindowGrab(w native.Window, grabbed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("SetWindowGrab", w); o != nil {
		o.Grab = grabbed
	}
}

func (f *Fake) GetWindowGrab(w native.Window) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.window("GetWindowGrab", w); o != nil {
		return o.Grab
	}
	return false
}

func (f *Fake) GetWindowDisplayIndex(w native.Window) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.window("GetWindowDisplayIndex", w)
	if o == nil || f.failing("GetWindowDisplayIndex") {
		return -1
	}
	return o.DisplayIndex
}

func (f *Fake) SetWindowIcon(w native.Window, icon native.Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.window("SetWindowIcon", w)
	if o != nil && f.get("SetWindowIcon", KindSurface, uintptr(icon)) != nil {
		o.Icon = uintptr(icon)
	}
}

func (f *Fake) GLSetAttribute(attr, value int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("GLSetAttribute") {
		return -1
	}
	return 0
}

func (f *Fake) GLCreateContext(w native.Window) native.GLContext {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.window("GLCreateContext", w)
	if o == nil || f.failing("GLCreateContext") {
		return 0
	}
	if o.Flags&native.WindowOpenGL == 0 {
		f.err = "The specified window isn't an OpenGL window"
		return 0
	}
	ctx := f.create(KindGLContext, 0)
	f.glCurrent = ctx.Handle
	return native.GLContext(ctx.Handle)
}

func (f *Fake) GLDeleteContext(ctx native.GLContext) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.release("GLDeleteContext", KindGLContext, uintptr(ctx)) != nil && f.glCurrent == uintptr(ctx) {
		f.glCurrent = 0
	}
}

func (f *Fake) GLMakeCurrent(w native.Window, ctx native.GLContext) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.window("GLMakeCurrent", w) == nil || f.failing("GLMakeCurrent") {
		return -1
	}
	if ctx != 0 && f.get("GLMakeCurrent", KindGLContext, uintptr(ctx)) == nil {
		return -1
	}
	f.glCurrent = uintptr(ctx)
	return 0
}

// CurrentGL returns the context made current last.
func (f *Fake) CurrentGL() uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.glCurrent
}

func (f *Fake) GLSwapWindow(w native.Window) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.window("GLSwapWindow", w) != nil {
		f.swapWindow = append(f.swapWindow, uintptr(w))
	}
}

func (f *Fake) GLSetSwapInterval(interval int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("GLSetSwapInterval") {
		return -1
	}
	return 0
}

func (f *Fake) GLGetProcAddress(name string) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.procs[name]
}

func (f *Fake) VulkanGetInstanceExtensions(w native.Window) ([]string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.window("VulkanGetInstanceExtensions", w)
	if o == nil {
		return nil, false
	}
	if o.Flags&native.WindowVulkan == 0 {
		f.err = "The specified window isn't a Vulkan window"
		return nil, false
	}
	return []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}, true
}

// Render

func (f *Fake) CreateRenderer(w native.Window, index int32, flags uint32) native.Renderer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.window("CreateRenderer", w) == nil || f.failing("CreateRenderer") {
		return 0
	}
	o := f.create(KindRenderer, uintptr(w))
	o.Flags = flags
	o.DrawColor = geom.Color{A: 0xff}
	return native.Renderer(o.Handle)
}

func (f *Fake) DestroyRenderer(r native.Renderer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release("DestroyRenderer", KindRenderer, uintptr(r))
}

func (f *Fake) renderer(op string, r native.Renderer) *Object {
	o := f.get(op, KindRenderer, uintptr(r))
	if o != nil && f.objects[o.Parent] == nil {
		f.violations = append(f.violations, fmt.Sprintf("%s: renderer %#x outlived its window", op, o.Handle))
	}
	return o
}

func (f *Fake) GetRendererOutputSize(r native.Renderer) (w, h, status int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.renderer("GetRendererOutputSize", r)
	if o == nil {
		return 0, 0, -1
	}
	if win := f.objects[o.Parent]; win != nil {
		return win.W, win.H, 0
	}
	return 0, 0, -1
}

func (f *Fake) SetRenderDrawColor(r native.Renderer, red, green, blue, alpha uint8) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.renderer("SetRenderDrawColor", r)
	if o == nil {
		return -1
	}
	o.DrawColor = geom.Color{R: red, G: green, B: blue, A: alpha}
	return 0
}

func (f *Fake) GetRenderDrawColor(r native.Renderer) (geom.Color, int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.renderer("GetRenderDrawColor", r)
	if o == nil {
		return geom.Color{}, -1
	}
	return o.DrawColor, 0
}

func (f *Fake) op(op string, r native.Renderer, name string) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.renderer(op, r)
	if o == nil || f.failing(op) {
		return -1
	}
	o.Ops = append(o.Ops, name)
	return 0
}

func (f *Fake) RenderClear(r native.Renderer) int32 {
	if st := f.op("RenderClear", r, "clear"); st != 0 {
		return st
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.objects[uintptr(r)]
	o.ClearColor = o.DrawColor
	return 0
}

func (f *Fake) RenderPresent(r native.Renderer) { f.op("RenderPresent", r, "present") }

func (f *Fake) RenderDrawLine(r native.Renderer, x1, y1, x2, y2 int32) int32 {
	return f.op("RenderDrawLine", r, "line")
}

func (f *Fake) RenderDrawLines(r native.Renderer, points []geom.Point) int32 {
	return f.op("RenderDrawLines", r, fmt.Sprintf("lines:%d", len(points)))
}

func (f *Fake) RenderDrawPoint(r native.Renderer, x, y int32) int32 {
	return f.op("RenderDrawPoint", r, "point")
}

func (f *Fake) RenderDrawPoints(r native.Renderer, points []geom.Point) int32 {
	return f.op("RenderDrawPoints", r, fmt.Sprintf("points:%d", len(points)))
}

func (f *Fake) RenderDrawRect(r native.Renderer, rect *geom.Rect) int32 {
	return f.op("RenderDrawRect", r, "rect")
}

func (f *Fake) RenderDrawRects(r native.Renderer, rects []geom.Rect) int32 {
	return f.op("RenderDrawRects", r, fmt.Sprintf("rects:%d", len(rects)))
}

func (f *Fake) RenderFillRect(r native.Renderer, rect *geom.Rect) int32 {
	return f.op("RenderFillRect", r, "fill")
}

func (f *Fake) RenderFillRects(r native.Renderer, rects []geom.Rect) int32 {
	return f.op("RenderFillRects", r, fmt.Sprintf("fills:%d", len(rects)))
}

func (f *Fake) RenderCopy(r native.Renderer, t native.Texture, src, dst *geom.Rect) int32 {
	f.mu.Lock()
	tex := f.get("RenderCopy", KindTexture, uintptr(t))
	f.mu.Unlock()
	if tex == nil {
		return -1
	}
	return f.op("RenderCopy", r, "copy")
}

func (f *Fake) RenderSetClipRect(r native.Renderer, rect *geom.Rect) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.renderer("RenderSetClipRect", r)
	if o == nil {
		return -1
	}
	if rect == nil {
		o.Clip, o.ClipEnabled = geom.Rect{}, false
	} else {
		o.Clip, o.ClipEnabled = *rect, true
	}
	return 0
}

func (f *Fake) RenderGetClipRect(r native.Renderer) geom.Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.renderer("RenderGetClipRect", r); o != nil {
		return o.Clip
	}
	return geom.Rect{}
}

func (f *Fake) RenderIsClipEnabled(r native.Renderer) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.renderer("RenderIsClipEnabled", r); o != nil {
		return o.ClipEnabled
	}
	return false
}

func (f *Fake) RenderSetIntegerScale(r native.Renderer, enable bool) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.renderer("RenderSetIntegerScale", r)
	if o == nil {
		return -1
	}
	o.IntegerScale = enable
	return 0
}

func (f *Fake) RenderGetIntegerScale(r native.Renderer) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.renderer("RenderGetIntegerScale", r); o != nil {
		return o.IntegerScale
	}
	return false
}

// RenderReadPixels fills the requested area with the last clear color.
func (f *Fake) RenderReadPixels(r native.Renderer, rect *geom.Rect, format uint32, pixels []byte, pitch int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.renderer("RenderReadPixels", r)
	if o == nil || f.failing("RenderReadPixels") {
		return -1
	}
	layout, ok := native.PackedLayout(format)
	if !ok {
		f.err = "Unsupported pixel format"
		return -1
	}
	var w, h int32
	if rect != nil {
		w, h = rect.W, rect.H
	} else if win := f.objects[o.Parent]; win != nil {
		w, h = win.W, win.H
	}
	bpp := int32(native.BytesPerPixel(format))
	if int(pitch*(h-1)+w*bpp) > len(pixels) {
		f.err = "Buffer too small"
		return -1
	}
	v := o.ClearColor.Pack(layout)
	writePixels(pixels, w, h, pitch, bpp, v)
	return 0
}

func writePixels(pixels []byte, w, h, pitch, bpp int32, v uint32) {
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			off := y*pitch + x*bpp
			for i := int32(0); i < bpp; i++ {
				pixels[off+i] = byte(v >> (8 * i))
			}
		}
	}
}

func (f *Fake) CreateTexture(r native.Renderer, format uint32, access, w, h int32) native.Texture {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.renderer("CreateTexture", r) == nil || f.failing("CreateTexture") {
		return 0
	}
	if w <= 0 || h <= 0 {
		f.err = "Texture dimensions can't be 0"
		return 0
	}
	o := f.create(KindTexture, uintptr(r))
	o.Format, o.Access, o.W, o.H = format, access, w, h
	o.Pitch = w * int32(native.BytesPerPixel(format))
	o.Pixels = make([]byte, o.Pitch*h)
	o.ColorMod = [3]uint8{0xff, 0xff, 0xff}
	o.AlphaMod = 0xff
	return native.Texture(o.Handle)
}

func (f *Fake) CreateTextureFromSurface(r native.Renderer, s native.Surface) native.Texture {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.renderer("CreateTextureFromSurface", r) == nil || f.failing("CreateTextureFromSurface") {
		return 0
	}
	src := f.get("CreateTextureFromSurface", KindSurface, uintptr(s))
	if src == nil {
		return 0
	}
	o := f.create(KindTexture, uintptr(r))
	o.Format, o.Access, o.W, o.H, o.Pitch = src.Format, native.TextureAccessStatic, src.W, src.H, src.Pitch
	o.Pixels = append([]byte(nil), src.Pixels...)
	o.ColorMod = [3]uint8{0xff, 0xff, 0xff}
	o.AlphaMod = 0xff
	return native.Texture(o.Handle)
}

func (f *Fake) DestroyTexture(t native.Texture) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release("DestroyTexture", KindTexture, uintptr(t))
}

func (f *Fake) texture(op string, t native.Texture) *Object {
	return f.get(op, KindTexture, uintptr(t))
}

func (f *Fake) QueryTexture(t native.Texture) (format uint32, access, w, h, status int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.texture("QueryTexture", t)
	if o == nil || f.failing("QueryTexture") {
		return 0, 0, 0, 0, -1
	}
	return o.Format, o.Access, o.W, o.H, 0
}

func (f *Fake) LockTexture(t native.Texture, rect *geom.Rect) (unsafe.Pointer, int32, int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.texture("LockTexture", t)
	if o == nil || f.failing("LockTexture") {
		return nil, 0, -1
	}
	if o.Access != native.TextureAccessStreaming {
		f.err = "SDL_LockTexture(): texture must be streaming"
		return nil, 0, -1
	}
	if o.Locked {
		f.err = "Texture is already locked"
		return nil, 0, -1
	}
	off := int32(0)
	if rect != nil {
		off = rect.Y*o.Pitch + rect.X*int32(native.BytesPerPixel(o.Format))
	}
	o.Locked = true
	return unsafe.Pointer(&o.Pixels[off]), o.Pitch, 0
}

func (f *Fake) UnlockTexture(t native.Texture) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.texture("UnlockTexture", t); o != nil {
		o.Locked = false
	}
}

func (f *Fake) UpdateTexture(t native.Texture, rect *geom.Rect, pixels []byte, pitch int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.texture("UpdateTexture", t)
	if o == nil || f.failing("UpdateTexture") {
		return -1
	}
	area := geom.R(0, 0, o.W, o.H)
	if rect != nil {
		area = *rect
	}
	bpp := int32(native.BytesPerPixel(o.Format))
	for y := int32(0); y < area.H; y++ {
		srcOff := y * pitch
		dstOff := (area.Y+y)*o.Pitch + area.X*bpp
		copy(o.Pixels[dstOff:dstOff+area.W*bpp], pixels[srcOff:srcOff+area.W*bpp])
	}
	return 0
}

func (f *Fake) SetTextureBlendMode(t native.Texture, mode int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.texture("SetTextureBlendMode", t)
	if o == nil {
		return -1
	}
	o.BlendMode = mode
	return 0
}

func (f *Fake) GetTextureBlendMode(t native.Texture) (int32, int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.texture("GetTextureBlendMode", t); o != nil {
		return o.BlendMode, 0
	}
	return 0, -1
}

func (f *Fake) SetTextureColorMod(t native.Texture, r, g, b uint8) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.texture("SetTextureColorMod", t)
	if o == nil {
		return -1
	}
	o.ColorMod = [3]uint8{r, g, b}
	return 0
}

func (f *Fake) GetTextureColorMod(t native.Texture) (r, g, b uint8, status int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.texture("GetTextureColorMod", t); o != nil {
		return o.ColorMod[0], o.ColorMod[1], o.ColorMod[2], 0
	}
	return 0, 0, 0, -1
}

func (f *Fake) SetTextureAlphaMod(t native.Texture, a uint8) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.texture("SetTextureAlphaMod", t)
	if o == nil {
		return -1
	}
	o.AlphaMod = a
	return 0
}

func (f *Fake) GetTextureAlphaMod(t native.Texture) (uint8, int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.texture("GetTextureAlphaMod", t); o != nil {
		return o.AlphaMod, 0
	}
	return 0, -1
}
