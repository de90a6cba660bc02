//go:build linux || darwin || windows

package native

import (
	"encoding/binary"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/tinyrange/gosdl/internal/geom"
)

func (l *lib) Init(flags uint32) int32         { return l.init(flags) }
func (l *lib) Quit()                           { l.quit() }
func (l *lib) WasInit(flags uint32) uint32     { return l.wasInit(flags) }
func (l *lib) GetError() string                { return l.getError() }
func (l *lib) ClearError()                     { l.clearError() }
func (l *lib) SetHint(name, value string) bool { return l.setHint(name, value) != 0 }
func (l *lib) GetPlatform() string             { return l.getPlatform() }
func (l *lib) PollEvent(ev *Event) int32       { return l.pollEvent(ev) }
func (l *lib) WaitEvent(ev *Event) int32       { return l.waitEvent(ev) }
func (l *lib) PushEvent(ev *Event) int32       { return l.pushEvent(ev) }
func (l *lib) PumpEvents()                     { l.pumpEvents() }
func (l *lib) RegisterEvents(n int32) uint32   { return l.registerEvents(n) }

func (l *lib) WaitEventTimeout(ev *Event, timeout int32) int32 {
	return l.waitEventTimeout(ev, timeout)
}

func (l *lib) PeepEvents(events []Event, action int32, minType, maxType uint32) int32 {
	var first *Event
	if len(events) > 0 {
		first = &events[0]
	}
	return l.peepEvents(first, int32(len(events)), action, minType, maxType)
}

func (l *lib) FlushEvents(minType, maxType uint32) { l.flushEvents(minType, maxType) }

func (l *lib) HasEvents(minType, maxType uint32) bool {
	return l.hasEvents(minType, maxType) != 0
}

func (l *lib) GetVersion() (major, minor, patch uint8) {
	var v [3]uint8
	l.getVersion(&v)
	return v[0], v[1], v[2]
}

func (l *lib) GetCurrentVideoDriver() string {
	s, _ := goString(l.getCurrentVideoDriver())
	return s
}

func (l *lib) GetNumVideoDisplays() int32 { return l.getNumVideoDisplays() }

func (l *lib) GetDisplayDPI(index int32) (ddpi, hdpi, vdpi float32, status int32) {
	status = l.getDisplayDPI(index, &ddpi, &hdpi, &vdpi)
	return
}

func (l *lib) CreateWindow(title string, x, y, w, h int32, flags uint32) Window {
	return l.createWindow(title, x, y, w, h, flags)
}

func (l *lib) CreateWindowFrom(data uintptr) Window { return l.createWindowFrom(data) }
func (l *lib) DestroyWindow(w Window)               { l.destroyWindow(w) }
func (l *lib) GetWindowID(w Window) uint32          { return l.getWindowID(w) }

func (l *lib) GetWindowSize(w Window) (width, height int32) {
	l.getWindowSize(w, &width, &height)
	return
}

func (l *lib) SetWindowSize(w Window, width, height int32) { l.setWindowSize(w, width, height) }

func (l *lib) GetWindowPosition(w Window) (x, y int32) {
	l.getWindowPosition(w, &x, &y)
	return
}

func (l *lib) SetWindowPosition(w Window, x, y int32)           { l.setWindowPosition(w, x, y) }
func (l *lib) GetWindowTitle(w Window) string                   { return l.getWindowTitle(w) }
func (l *lib) SetWindowTitle(w Window, title string)            { l.setWindowTitle(w, title) }
func (l *lib) GetWindowFlags(w Window) uint32                   { return l.getWindowFlags(w) }
func (l *lib) SetWindowFullscreen(w Window, flags uint32) int32 { return l.setWindowFullscreen(w, flags) }
func (l *lib) ShowWindow(w Window)                              { l.showWindow(w) }
func (l *lib) HideWindow(w Window)                              { l.hideWindow(w) }
func (l *lib) RaiseWindow(w Window)                             { l.raiseWindow(w) }
func (l *lib) MaximizeWindow(w Window)                          { l.maximizeWindow(w) }
func (l *lib) MinimizeWindow(w Window)                          { l.minimizeWindow(w) }
func (l *lib) RestoreWindow(w Window)                           { l.restoreWindow(w) }
func (l *lib) SetWindowGrab(w Window, grabbed bool)             { l.setWindowGrab(w, sdlBool(grabbed)) }
func (l *lib) GetWindowGrab(w Window) bool                      { return l.getWindowGrab(w) != 0 }
func (l *lib) GetWindowDisplayIndex(w Window) int32             { return l.getWindowDisplayIndex(w) }
func (l *lib) SetWindowIcon(w Window, icon Surface)             { l.setWindowIcon(w, icon) }

func (l *lib) GLSetAttribute(attr, value int32) int32      { return l.glSetAttribute(attr, value) }
func (l *lib) GLCreateContext(w Window) GLContext          { return l.glCreateContext(w) }
func (l *lib) GLDeleteContext(ctx GLContext)               { l.glDeleteContext(ctx) }
func (l *lib) GLMakeCurrent(w Window, ctx GLContext) int32 { return l.glMakeCurrent(w, ctx) }
func (l *lib) GLSwapWindow(w Window)                       { l.glSwapWindow(w) }
func (l *lib) GLSetSwapInterval(interval int32) int32      { return l.glSetSwapInterval(interval) }
func (l *lib) GLGetProcAddress(name string) uintptr        { return l.glGetProcAddress(name) }

func (l *lib) VulkanGetInstanceExtensions(w Window) ([]string, bool) {
	var count uint32
	if l.vulkanGetInstanceExtensions(w, &count, nil) == 0 {
		return nil, false
	}
	if count == 0 {
		return []string{}, true
	}
	names := make([]uintptr, count)
	if l.vulkanGetInstanceExtensions(w, &count, &names[0]) == 0 {
		return nil, false
	}
	out := make([]string, 0, count)
	for _, p := range names[:count] {
		s, _ := goString(p)
		out = append(out, s)
	}
	return out, true
}

func (l *lib) CreateRenderer(w Window, index int32, flags uint32) Renderer {
	return l.createRenderer(w, index, flags)
}

func (l *lib) DestroyRenderer(r Renderer) { l.destroyRenderer(r) }

func (l *lib) GetRendererOutputSize(r Renderer) (w, h, status int32) {
	status = l.getRendererOutputSize(r, &w, &h)
	return
}

func (l *lib) SetRenderDrawColor(r Renderer, red, green, blue, alpha uint8) int32 {
	return l.setRenderDrawColor(r, red, green, blue, alpha)
}

func (l *lib) GetRenderDrawColor(r Renderer) (c geom.Color, status int32) {
	status = l.getRenderDrawColor(r, &c.R, &c.G, &c.B, &c.A)
	return
}

func (l *lib) RenderClear(r Renderer) int32 { return l.renderClear(r) }
func (l *lib) RenderPresent(r Renderer)     { l.renderPresent(r) }

func (l *lib) RenderDrawLine(r Renderer, x1, y1, x2, y2 int32) int32 {
	return l.renderDrawLine(r, x1, y1, x2, y2)
}

func (l *lib) RenderDrawLines(r Renderer, points []geom.Point) int32 {
	if len(points) == 0 {
		return 0
	}
	return l.renderDrawLines(r, &points[0], int32(len(points)))
}

func (l *lib) RenderDrawPoint(r Renderer, x, y int32) int32 { return l.renderDrawPoint(r, x, y) }

func (l *lib) RenderDrawPoints(r Renderer, points []geom.Point) int32 {
	if len(points) == 0 {
		return 0
	}
	return l.renderDrawPoints(r, &points[0], int32(len(points)))
}

func (l *lib) RenderDrawRect(r Renderer, rect *geom.Rect) int32 { return l.renderDrawRect(r, rect) }

func (l *lib) RenderDrawRects(r Renderer, rects []geom.Rect) int32 {
	if len(rects) == 0 {
		return 0
	}
	return l.renderDrawRects(r, &rects[0], int32(len(rects)))
}

func (l *lib) RenderFillRect(r Renderer, rect *geom.Rect) int32 { return l.renderFillRect(r, rect) }

func (l *lib) RenderFillRects(r Renderer, rects []geom.Rect) int32 {
	if len(rects) == 0 {
		return 0
	}
	return l.renderFillRects(r, &rects[0], int32(len(rects)))
}

func (l *lib) RenderCopy(r Renderer, t Texture, src, dst *geom.Rect) int32 {
	return l.renderCopy(r, t, src, dst)
}

func (l *lib) RenderSetClipRect(r Renderer, rect *geom.Rect) int32 {
	return l.renderSetClipRect(r, rect)
}

func (l *lib) RenderGetClipRect(r Renderer) (rect geom.Rect) {
	l.renderGetClipRect(r, &rect)
	return
}

func (l *lib) RenderIsClipEnabled(r Renderer) bool { return l.renderIsClipEnabled(r) != 0 }

func (l *lib) RenderSetIntegerScale(r Renderer, enable bool) int32 {
	return l.renderSetIntegerScale(r, sdlBool(enable))
}

func (l *lib) RenderGetIntegerScale(r Renderer) bool { return l.renderGetIntegerScale(r) != 0 }

func (l *lib) RenderReadPixels(r Renderer, rect *geom.Rect, format uint32, pixels []byte, pitch int32) int32 {
	if len(pixels) == 0 {
		return l.renderReadPixels(r, rect, format, nil, pitch)
	}
	return l.renderReadPixels(r, rect, format, unsafe.Pointer(&pixels[0]), pitch)
}

func (l *lib) CreateTexture(r Renderer, format uint32, access, w, h int32) Texture {
	return l.createTexture(r, format, access, w, h)
}

func (l *lib) CreateTextureFromSurface(r Renderer, s Surface) Texture {
	return l.createTextureFromSurface(r, s)
}

func (l *lib) DestroyTexture(t Texture) { l.destroyTexture(t) }

func (l *lib) QueryTexture(t Texture) (format uint32, access, w, h, status int32) {
	status = l.queryTexture(t, &format, &access, &w, &h)
	return
}

func (l *lib) LockTexture(t Texture, rect *geom.Rect) (pixels unsafe.Pointer, pitch, status int32) {
	status = l.lockTexture(t, rect, &pixels, &pitch)
	return
}

func (l *lib) UnlockTexture(t Texture) { l.unlockTexture(t) }

func (l *lib) UpdateTexture(t Texture, rect *geom.Rect, pixels []byte, pitch int32) int32 {
	if len(pixels) == 0 {
		return l.updateTexture(t, rect, nil, pitch)
	}
	return l.updateTexture(t, rect, unsafe.Pointer(&pixels[0]), pitch)
}

func (l *lib) SetTextureBlendMode(t Texture, mode int32) int32 { return l.setTextureBlendMode(t, mode) }

func (l *lib) GetTextureBlendMode(t Texture) (mode, status int32) {
	status = l.getTextureBlendMode(t, &mode)
	return
}

func (l *lib) SetTextureColorMod(t Texture, r, g, b uint8) int32 {
	return l.setTextureColorMod(t, r, g, b)
}

func (l *lib) GetTextureColorMod(t Texture) (r, g, b uint8, status int32) {
	status = l.getTextureColorMod(t, &r, &g, &b)
	return
}

func (l *lib) SetTextureAlphaMod(t Texture, a uint8) int32 { return l.setTextureAlphaMod(t, a) }

func (l *lib) GetTextureAlphaMod(t Texture) (a uint8, status int32) {
	status = l.getTextureAlphaMod(t, &a)
	return
}

func (l *lib) CreateRGBSurfaceWithFormat(flags uint32, w, h, depth int32, format uint32) Surface {
	return l.createRGBSurfaceWithFormat(flags, w, h, depth, format)
}

func (l *lib) FreeSurface(s Surface) { l.freeSurface(s) }

// Offsets into SDL_Surface and SDL_PixelFormat on 64-bit targets.
const (
	surfaceFlagsOffset  = 0
	surfaceFormatOffset = 8
	surfaceWOffset      = 16
	surfaceHOffset      = 20
	surfacePitchOffset  = 24
	surfacePixelsOffset = 32
)

func (l *lib) SurfaceInfo(s Surface) SurfaceInfo {
	if s == 0 {
		return SurfaceInfo{}
	}
	base := unsafe.Pointer(uintptr(s))
	at := func(off uintptr) unsafe.Pointer { return unsafe.Add(base, off) }
	info := SurfaceInfo{
		Flags:  *(*uint32)(at(surfaceFlagsOffset)),
		W:      *(*int32)(at(surfaceWOffset)),
		H:      *(*int32)(at(surfaceHOffset)),
		Pitch:  *(*int32)(at(surfacePitchOffset)),
		Pixels: *(*unsafe.Pointer)(at(surfacePixelsOffset)),
	}
	if pf := *(*unsafe.Pointer)(at(surfaceFormatOffset)); pf != nil {
		info.Format = *(*uint32)(pf)
	}
	return info
}

func (l *lib) LockSurface(s Surface) int32 { return l.lockSurface(s) }
func (l *lib) UnlockSurface(s Surface)     { l.unlockSurface(s) }

func (l *lib) ConvertSurfaceFormat(s Surface, format uint32) Surface {
	return l.convertSurfaceFormat(s, format, 0)
}

func (l *lib) BlitSurface(src Surface, srcRect *geom.Rect, dst Surface, dstRect *geom.Rect) int32 {
	return l.upperBlit(src, srcRect, dst, dstRect)
}

func (l *lib) FillRect(s Surface, rect *geom.Rect, color uint32) int32 {
	return l.fillRect(s, rect, color)
}

func (l *lib) SetColorKey(s Surface, enable bool, key uint32) int32 {
	return l.setColorKey(s, sdlBool(enable), key)
}

func (l *lib) GetColorKey(s Surface) (key uint32, status int32) {
	status = l.getColorKey(s, &key)
	return
}

func (l *lib) SetSurfaceBlendMode(s Surface, mode int32) int32 { return l.setSurfaceBlendMode(s, mode) }

func (l *lib) GetSurfaceBlendMode(s Surface) (mode, status int32) {
	status = l.getSurfaceBlendMode(s, &mode)
	return
}

func (l *lib) SetSurfaceColorMod(s Surface, r, g, b uint8) int32 {
	return l.setSurfaceColorMod(s, r, g, b)
}

func (l *lib) GetSurfaceColorMod(s Surface) (r, g, b uint8, status int32) {
	status = l.getSurfaceColorMod(s, &r, &g, &b)
	return
}

func (l *lib) SetSurfaceAlphaMod(s Surface, a uint8) int32 { return l.setSurfaceAlphaMod(s, a) }

func (l *lib) GetSurfaceAlphaMod(s Surface) (a uint8, status int32) {
	status = l.getSurfaceAlphaMod(s, &a)
	return
}

func (l *lib) GetClipRect(s Surface) (rect geom.Rect) {
	l.getClipRect(s, &rect)
	return
}

func (l *lib) SetClipRect(s Surface, rect *geom.Rect) bool { return l.setClipRect(s, rect) != 0 }

func (l *lib) LoadBMP(file string) Surface {
	rw := l.rwFromFile(file, "rb")
	if rw == 0 {
		return 0
	}
	return l.loadBMPRW(rw, 1)
}

func (l *lib) SaveBMP(s Surface, file string) int32 {
	rw := l.rwFromFile(file, "wb")
	if rw == 0 {
		return -1
	}
	return l.saveBMPRW(s, rw, 1)
}

func (l *lib) NumJoysticks() int32 { return l.numJoysticks() }

func (l *lib) JoystickNameForIndex(index int32) (string, bool) {
	return goString(l.joystickNameForIndex(index))
}

func (l *lib) JoystickOpen(index int32) Joystick        { return l.joystickOpen(index) }
func (l *lib) JoystickClose(j Joystick)                 { l.joystickClose(j) }
func (l *lib) JoystickFromInstanceID(id int32) Joystick { return l.joystickFromInstanceID(id) }
func (l *lib) JoystickInstanceID(j Joystick) int32      { return l.joystickInstanceID(j) }
func (l *lib) JoystickName(j Joystick) (string, bool)   { return goString(l.joystickName(j)) }
func (l *lib) JoystickGetAttached(j Joystick) bool      { return l.joystickGetAttached(j) != 0 }
func (l *lib) JoystickNumAxes(j Joystick) int32         { return l.joystickNumAxes(j) }
func (l *lib) JoystickNumButtons(j Joystick) int32      { return l.joystickNumButtons(j) }
func (l *lib) JoystickNumHats(j Joystick) int32         { return l.joystickNumHats(j) }
func (l *lib) JoystickNumBalls(j Joystick) int32        { return l.joystickNumBalls(j) }

func (l *lib) JoystickGetAxis(j Joystick, axis int32) int16     { return l.joystickGetAxis(j, axis) }
func (l *lib) JoystickGetButton(j Joystick, button int32) uint8 { return l.joystickGetButton(j, button) }
func (l *lib) JoystickGetHat(j Joystick, hat int32) uint8       { return l.joystickGetHat(j, hat) }

func (l *lib) JoystickGetBall(j Joystick, ball int32) (dx, dy, status int32) {
	status = l.joystickGetBall(j, ball, &dx, &dy)
	return
}

func (l *lib) JoystickCurrentPowerLevel(j Joystick) int32 { return l.joystickCurrentPowerLevel(j) }

func (l *lib) IsGameController(index int32) bool { return l.isGameController(index) != 0 }

func (l *lib) GameControllerNameForIndex(index int32) (string, bool) {
	return goString(l.gameControllerNameForIndex(index))
}

func (l *lib) GameControllerOpen(index int32) GameController { return l.gameControllerOpen(index) }
func (l *lib) GameControllerClose(gc GameController)         { l.gameControllerClose(gc) }

func (l *lib) GameControllerFromInstanceID(id int32) GameController {
	return l.gameControllerFromInstanceID(id)
}

func (l *lib) GameControllerGetJoystick(gc GameController) Joystick {
	return l.gameControllerGetJoystick(gc)
}

func (l *lib) GameControllerGetAttached(gc GameController) bool {
	return l.gameControllerGetAttached(gc) != 0
}

func (l *lib) GameControllerGetAxis(gc GameController, axis int32) int16 {
	return l.gameControllerGetAxis(gc, axis)
}

func (l *lib) GameControllerGetButton(gc GameController, button int32) uint8 {
	return l.gameControllerGetButton(gc, button)
}

func (l *lib) GameControllerName(gc GameController) (string, bool) {
	return goString(l.gameControllerName(gc))
}

func (l *lib) GameControllerRumble(gc GameController, low, high uint16, ms uint32) int32 {
	return l.gameControllerRumble(gc, low, high, ms)
}

func (l *lib) GameControllerAddMapping(mapping string) int32 {
	return l.gameControllerAddMapping(mapping)
}

func (l *lib) GameControllerAddMappingsFromFile(path string) int32 {
	rw := l.rwFromFile(path, "rb")
	if rw == 0 {
		return -1
	}
	return l.gameControllerAddMappingsFromRW(rw, 1)
}

func (l *lib) NumHaptics() int32                        { return l.numHaptics() }
func (l *lib) HapticName(index int32) (string, bool)    { return goString(l.hapticName(index)) }
func (l *lib) HapticOpen(index int32) Haptic            { return l.hapticOpen(index) }
func (l *lib) HapticOpenFromJoystick(j Joystick) Haptic { return l.hapticOpenFromJoystick(j) }
func (l *lib) HapticClose(h Haptic)                     { l.hapticClose(h) }
func (l *lib) HapticQuery(h Haptic) uint32              { return l.hapticQuery(h) }
func (l *lib) HapticNumEffects(h Haptic) int32          { return l.hapticNumEffects(h) }

func (l *lib) HapticNewEffect(h Haptic, effect *HapticEffect) int32 {
	buf, ok := encodeHapticEffect(effect)
	if !ok {
		return -1
	}
	return l.hapticNewEffect(h, unsafe.Pointer(&buf[0]))
}

func (l *lib) HapticRunEffect(h Haptic, effect int32, iterations uint32) int32 {
	return l.hapticRunEffect(h, effect, iterations)
}

func (l *lib) HapticStopEffect(h Haptic, effect int32) int32 { return l.hapticStopEffect(h, effect) }
func (l *lib) HapticDestroyEffect(h Haptic, effect int32)    { l.hapticDestroyEffect(h, effect) }
func (l *lib) HapticSetGain(h Haptic, gain int32) int32      { return l.hapticSetGain(h, gain) }
func (l *lib) HapticRumbleInit(h Haptic) int32               { return l.hapticRumbleInit(h) }

func (l *lib) HapticRumblePlay(h Haptic, strength float32, ms uint32) int32 {
	return l.hapticRumblePlay(h, strength, ms)
}

func (l *lib) HapticRumbleStop(h Haptic) int32 { return l.hapticRumbleStop(h) }

// hapticEffectSize covers sizeof(SDL_HapticEffect) on every supported target.
const hapticEffectSize = 128

// encodeHapticEffect lays out e as an SDL_HapticEffect union. Custom effects
// carry a caller-owned sample buffer and are not supported.
func encodeHapticEffect(e *HapticEffect) ([]byte, bool) {
	buf := make([]byte, hapticEffectSize)
	le := binary.LittleEndian
	u16 := func(off int, v uint16) { le.PutUint16(buf[off:], v) }
	i16 := func(off int, v int16) { le.PutUint16(buf[off:], uint16(v)) }
	u32 := func(off int, v uint32) { le.PutUint32(buf[off:], v) }

	u16(0, e.Type)
	if e.Type == HapticLeftRight {
		u32(4, e.Length)
		u16(8, e.LargeMagnitude)
		u16(10, e.SmallMagnitude)
		return buf, true
	}

	// Header shared by constant, periodic, ramp and condition.
	buf[4] = e.Direction.Type
	for i, d := range e.Direction.Dir {
		u32(8+4*i, uint32(d))
	}
	u32(20, e.Length)
	u16(24, e.Delay)
	u16(26, e.Button)
	u16(28, e.Interval)

	envelope := func(off int) {
		u16(off, e.AttackLength)
		u16(off+2, e.AttackLevel)
		u16(off+4, e.FadeLength)
		u16(off+6, e.FadeLevel)
	}

	switch e.Type {
	case HapticConstant:
		i16(30, e.Level)
		envelope(32)
	case HapticSine, HapticTriangle, HapticSawtoothUp, HapticSawtoothDown:
		u16(30, e.Period)
		i16(32, e.Magnitude)
		i16(34, e.Offset)
		u16(36, e.Phase)
		envelope(38)
	case HapticRamp:
		i16(30, e.Start)
		i16(32, e.End)
		envelope(34)
	case HapticSpring, HapticDamper, HapticInertia, HapticFriction:
		for i := 0; i < 3; i++ {
			u16(30+2*i, e.RightSat[i])
			u16(36+2*i, e.LeftSat[i])
			i16(42+2*i, e.RightCoeff[i])
			i16(48+2*i, e.LeftCoeff[i])
			u16(54+2*i, e.Deadband[i])
			i16(60+2*i, e.Center[i])
		}
	default:
		return nil, false
	}
	return buf, true
}

func (l *lib) CreateSystemCursor(id int32) Cursor { return l.createSystemCursor(id) }

func (l *lib) CreateColorCursor(s Surface, hotX, hotY int32) Cursor {
	return l.createColorCursor(s, hotX, hotY)
}

func (l *lib) FreeCursor(c Cursor)                    { l.freeCursor(c) }
func (l *lib) SetCursor(c Cursor)                     { l.setCursor(c) }
func (l *lib) ShowCursor(toggle int32) int32          { return l.showCursor(toggle) }
func (l *lib) GetRelativeMouseMode() bool             { return l.getRelativeMouseMode() != 0 }
func (l *lib) WarpMouseInWindow(w Window, x, y int32) { l.warpMouseInWindow(w, x, y) }

func (l *lib) SetRelativeMouseMode(enabled bool) int32 {
	return l.setRelativeMouseMode(sdlBool(enabled))
}

func (l *lib) GetMouseState() (x, y int32, buttons uint32) {
	buttons = l.getMouseState(&x, &y)
	return
}

// Timer callbacks are routed through a single trampoline. purego callbacks are
// a finite resource, so the per-timer Go function is looked up by key.
var (
	trampolineOnce sync.Once
	trampoline     uintptr

	callbackMu   sync.Mutex
	callbackNext uintptr
	callbacks    = map[uintptr]TimerCallback{}
)

func timerTrampoline(interval, param uintptr) uintptr {
	callbackMu.Lock()
	cb := callbacks[param]
	callbackMu.Unlock()
	if cb == nil {
		return 0
	}
	next := cb(uint32(interval))
	if next == 0 {
		callbackMu.Lock()
		delete(callbacks, param)
		callbackMu.Unlock()
	}
	return uintptr(next)
}

func (l *lib) AddTimer(interval uint32, cb TimerCallback) TimerID {
	trampolineOnce.Do(func() {
		trampoline = purego.NewCallback(timerTrampoline)
	})

	callbackMu.Lock()
	callbackNext++
	key := callbackNext
	callbacks[key] = cb
	callbackMu.Unlock()

	id := l.addTimer(interval, trampoline, key)
	if id == 0 {
		callbackMu.Lock()
		delete(callbacks, key)
		callbackMu.Unlock()
		return 0
	}
	l.timerMu.Lock()
	l.timers[id] = key
	l.timerMu.Unlock()
	return id
}

func (l *lib) RemoveTimer(id TimerID) bool {
	ok := l.removeTimer(id) != 0

	l.timerMu.Lock()
	key, tracked := l.timers[id]
	delete(l.timers, id)
	l.timerMu.Unlock()
	if tracked {
		callbackMu.Lock()
		delete(callbacks, key)
		callbackMu.Unlock()
	}
	return ok
}

// Event watches and the event filter share one trampoline keyed like timers.
var (
	eventTrampolineOnce sync.Once
	eventTrampoline     uintptr

	eventMu      sync.Mutex
	eventNext    uintptr
	eventFilters = map[uintptr]EventFilter{}
)

func eventFilterTrampoline(param uintptr, ev *Event) int32 {
	eventMu.Lock()
	cb := eventFilters[param]
	eventMu.Unlock()
	if cb == nil {
		return 1
	}
	return cb(ev)
}

func addEventCallback(cb EventFilter) (tramp, key uintptr) {
	eventTrampolineOnce.Do(func() {
		eventTrampoline = purego.NewCallback(eventFilterTrampoline)
	})
	eventMu.Lock()
	eventNext++
	key = eventNext
	eventFilters[key] = cb
	eventMu.Unlock()
	return eventTrampoline, key
}

func dropEventCallback(key uintptr) {
	eventMu.Lock()
	delete(eventFilters, key)
	eventMu.Unlock()
}

func (l *lib) AddEventWatch(cb EventFilter) uintptr {
	tramp, key := addEventCallback(cb)
	l.addEventWatch(tramp, key)
	return key
}

func (l *lib) DelEventWatch(key uintptr) {
	l.delEventWatch(eventTrampoline, key)
	dropEventCallback(key)
}

func (l *lib) SetEventFilter(cb EventFilter) {
	l.filterMu.Lock()
	defer l.filterMu.Unlock()

	old := l.filterKey
	if cb == nil {
		l.setEventFilter(0, 0)
		l.filterKey = 0
	} else {
		tramp, key := addEventCallback(cb)
		l.setEventFilter(tramp, key)
		l.filterKey = key
	}
	if old != 0 {
		dropEventCallback(old)
	}
}

func (l *lib) Delay(ms uint32)                 { l.delay(ms) }
func (l *lib) GetTicks() uint32                { return l.getTicks() }
func (l *lib) GetPerformanceCounter() uint64   { return l.getPerformanceCounter() }
func (l *lib) GetPerformanceFrequency() uint64 { return l.getPerformanceFrequency() }

func (l *lib) LoadObject(name string) Object                { return l.loadObject(name) }
func (l *lib) LoadFunction(obj Object, name string) uintptr { return l.loadFunction(obj, name) }
func (l *lib) UnloadObject(obj Object)                      { l.unloadObject(obj) }
