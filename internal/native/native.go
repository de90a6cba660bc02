// Package native describes the SDL2 and SDL2_ttf entry points used by this
// module and loads them from the shared libraries at run time.
//
// The interfaces keep the C calling conventions: creation functions return a
// zero handle on failure, status-returning functions return a negative value,
// and the reason is retrieved afterwards with GetError. Wrapper packages turn
// those sentinels into Go errors; this package never does.
//
// Implementations are not safe for concurrent use. SDL expects video and event
// calls on the thread that initialised it.
package native

import (
	"unsafe"

	"github.com/tinyrange/gosdl/internal/geom"
)

// Opaque handles. Their values are never interpreted, only passed back.
type (
	Window         uintptr // SDL_Window*
	Renderer       uintptr // SDL_Renderer*
	Texture        uintptr // SDL_Texture*
	Surface        uintptr // SDL_Surface*
	GLContext      uintptr // SDL_GLContext
	Joystick       uintptr // SDL_Joystick*
	GameController uintptr // SDL_GameController*
	Haptic         uintptr // SDL_Haptic*
	Cursor         uintptr // SDL_Cursor*
	Object         uintptr // handle returned by SDL_LoadObject
	Font           uintptr // TTF_Font*
	TimerID        int32   // SDL_TimerID
)

// TimerCallback is invoked on a thread owned by SDL. The return value is the
// next interval in milliseconds, or 0 to cancel the timer.
type TimerCallback func(interval uint32) uint32

// EventFilter is invoked for every event pushed onto the queue, possibly on
// a thread other than the one that initialised SDL. A filter returning 0
// drops the event; the return value of an event watch is ignored.
type EventFilter func(ev *Event) int32

// PeepEvents actions (SDL_eventaction).
const (
	PeepAdd  = 0
	PeepPeek = 1
	PeepGet  = 2
)

// SurfaceInfo is the subset of SDL_Surface fields the wrappers read.
// Pixels is only meaningful while the surface is locked.
type SurfaceInfo struct {
	Flags  uint32
	Format uint32
	W, H   int32
	Pitch  int32
	Pixels unsafe.Pointer
}

// HapticDirection mirrors SDL_HapticDirection.
type HapticDirection struct {
	Type uint8
	Dir  [3]int32
}

// HapticEffect is a flattened SDL_HapticEffect. Type selects which fields the
// loader encodes into the native union.
type HapticEffect struct {
	Type      uint16
	Direction HapticDirection

	Length   uint32
	Delay    uint16
	Button   uint16
	Interval uint16

	// Constant
	Level int16

	// Periodic
	Period    uint16
	Magnitude int16
	Offset    int16
	Phase     uint16

	// Ramp
	Start int16
	End   int16

	// Condition
	RightSat   [3]uint16
	LeftSat    [3]uint16
	RightCoeff [3]int16
	LeftCoeff  [3]int16
	Deadband   [3]uint16
	Center     [3]int16

	// LeftRight
	LargeMagnitude uint16
	SmallMagnitude uint16

	AttackLength uint16
	AttackLevel  uint16
	FadeLength   uint16
	FadeLevel    uint16
}

// Core covers library initialisation, errors, hints and the event queue.
type Core interface {
	Init(flags uint32) int32
	Quit()
	WasInit(flags uint32) uint32
	GetError() string
	ClearError()
	SetHint(name, value string) bool
	GetVersion() (major, minor, patch uint8)
	GetPlatform() string
	PollEvent(ev *Event) int32
	WaitEvent(ev *Event) int32
	WaitEventTimeout(ev *Event, timeout int32) int32
	PushEvent(ev *Event) int32
	PeepEvents(events []Event, action int32, minType, maxType uint32) int32
	FlushEvents(minType, maxType uint32)
	PumpEvents()
	HasEvents(minType, maxType uint32) bool
	RegisterEvents(n int32) uint32

	// AddEventWatch returns a non-zero key identifying cb for DelEventWatch.
	AddEventWatch(cb EventFilter) uintptr
	DelEventWatch(key uintptr)
	// SetEventFilter replaces the queue filter; nil removes it.
	SetEventFilter(cb EventFilter)
}

// Video covers windows, displays and GL contexts.
type Video interface {
	GetCurrentVideoDriver() string
	GetNumVideoDisplays() int32
	GetDisplayDPI(index int32) (ddpi, hdpi, vdpi float32, status int32)

	CreateWindow(title string, x, y, w, h int32, flags uint32) Window
	CreateWindowFrom(data uintptr) Window
	DestroyWindow(w Window)
	GetWindowID(w Window) uint32
	GetWindowSize(w Window) (width, height int32)
	SetWindowSize(w Window, width, height int32)
	GetWindowPosition(w Window) (x, y int32)
	SetWindowPosition(w Window, x, y int32)
	GetWindowTitle(w Window) string
	SetWindowTitle(w Window, title string)
	GetWindowFlags(w Window) uint32
	SetWindowFullscreen(w Window, flags uint32) int32
	ShowWindow(w Window)
	HideWindow(w Window)
	RaiseWindow(w Window)
	MaximizeWindow(w Window)
	MinimizeWindow(w Window)
	RestoreWindow(w Window)
	SetWindowGrab(w Window, grabbed bool)
	GetWindowGrab(w Window) bool
	GetWindowDisplayIndex(w Window) int32
	SetWindowIcon(w Window, icon Surface)

	GLSetAttribute(attr, value int32) int32
	GLCreateContext(w Window) GLContext
	GLDeleteContext(ctx GLContext)
	GLMakeCurrent(w Window, ctx GLContext) int32
	GLSwapWindow(w Window)
	GLSetSwapInterval(interval int32) int32
	GLGetProcAddress(name string) uintptr

	VulkanGetInstanceExtensions(w Window) ([]string, bool)
}

// Render covers the 2D renderer and textures.
type Render interface {
	CreateRenderer(w Window, index int32, flags uint32) Renderer
	DestroyRenderer(r Renderer)
	GetRendererOutputSize(r Renderer) (w, h, status int32)
	SetRenderDrawColor(r Renderer, red, green, blue, alpha uint8) int32
	GetRenderDrawColor(r Renderer) (c geom.Color, status int32)
	RenderClear(r Renderer) int32
	RenderPresent(r Renderer)
	RenderDrawLine(r Renderer, x1, y1, x2, y2 int32) int32
	RenderDrawLines(r Renderer, points []geom.Point) int32
	RenderDrawPoint(r Renderer, x, y int32) int32
	RenderDrawPoints(r Renderer, points []geom.Point) int32
	RenderDrawRect(r Renderer, rect *geom.Rect) int32
	RenderDrawRects(r Renderer, rects []geom.Rect) int32
	RenderFillRect(r Renderer, rect *geom.Rect) int32
	RenderFillRects(r Renderer, rects []geom.Rect) int32
	RenderCopy(r Renderer, t Texture, src, dst *geom.Rect) int32
	RenderSetClipRect(r Renderer, rect *geom.Rect) int32
	RenderGetClipRect(r Renderer) geom.Rect
	RenderIsClipEnabled(r Renderer) bool
	RenderSetIntegerScale(r Renderer, enable bool) int32
	RenderGetIntegerScale(r Renderer) bool
	RenderReadPixels(r Renderer, rect *geom.Rect, format uint32, pixels []byte, pitch int32) int32

	CreateTexture(r Renderer, format uint32, access, w, h int32) Texture
	CreateTextureFromSurface(r Renderer, s Surface) Texture
	DestroyTexture(t Texture)
	QueryTexture(t Texture) (format uint32, access, w, h, status int32)
	LockTexture(t Texture, rect *geom.Rect) (pixels unsafe.Pointer, pitch, status int32)
	UnlockTexture(t Texture)
	UpdateTexture(t Texture, rect *geom.Rect, pixels []byte, pitch int32) int32
	SetTextureBlendMode(t Texture, mode int32) int32
	GetTextureBlendMode(t Texture) (mode, status int32)
	SetTextureColorMod(t Texture, r, g, b uint8) int32
	GetTextureColorMod(t Texture) (r, g, b uint8, status int32)
	SetTextureAlphaMod(t Texture, a uint8) int32
	GetTextureAlphaMod(t Texture) (a uint8, status int32)
}

// Surfaces covers software surfaces.
type Surfaces interface {
	CreateRGBSurfaceWithFormat(flags uint32, w, h, depth int32, format uint32) Surface
	FreeSurface(s Surface)
	SurfaceInfo(s Surface) SurfaceInfo
	LockSurface(s Surface) int32
	UnlockSurface(s Surface)
	ConvertSurfaceFormat(s Surface, format uint32) Surface
	BlitSurface(src Surface, srcRect *geom.Rect, dst Surface, dstRect *geom.Rect) int32
	FillRect(s Surface, rect *geom.Rect, color uint32) int32
	SetColorKey(s Surface, enable bool, key uint32) int32
	GetColorKey(s Surface) (key uint32, status int32)
	SetSurfaceBlendMode(s Surface, mode int32) int32
	GetSurfaceBlendMode(s Surface) (mode, status int32)
	SetSurfaceColorMod(s Surface, r, g, b uint8) int32
	GetSurfaceColorMod(s Surface) (r, g, b uint8, status int32)
	SetSurfaceAlphaMod(s Surface, a uint8) int32
	GetSurfaceAlphaMod(s Surface) (a uint8, status int32)
	GetClipRect(s Surface) geom.Rect
	SetClipRect(s Surface, rect *geom.Rect) bool
	LoadBMP(file string) Surface
	SaveBMP(s Surface, file string) int32
}

// Input covers joysticks, game controllers, haptics and the mouse.
type Input interface {
	NumJoysticks() int32
	JoystickNameForIndex(index int32) (string, bool)
	JoystickOpen(index int32) Joystick
	JoystickClose(j Joystick)
	JoystickFromInstanceID(id int32) Joystick
	JoystickInstanceID(j Joystick) int32
	JoystickName(j Joystick) (string, bool)
	JoystickGetAttached(j Joystick) bool
	JoystickNumAxes(j Joystick) int32
	JoystickNumButtons(j Joystick) int32
	JoystickNumHats(j Joystick) int32
	JoystickNumBalls(j Joystick) int32
	JoystickGetAxis(j Joystick, axis int32) int16
	JoystickGetButton(j Joystick, button int32) uint8
	JoystickGetHat(j Joystick, hat int32) uint8
	JoystickGetBall(j Joystick, ball int32) (dx, dy, status int32)
	JoystickCurrentPowerLevel(j Joystick) int32

	IsGameController(index int32) bool
	GameControllerNameForIndex(index int32) (string, bool)
	GameControllerOpen(index int32) GameController
	GameControllerClose(gc GameController)
	GameControllerFromInstanceID(id int32) GameController
	GameControllerGetJoystick(gc GameController) Joystick
	GameControllerGetAttached(gc GameController) bool
	GameControllerGetAxis(gc GameController, axis int32) int16
	GameControllerGetButton(gc GameController, button int32) uint8
	GameControllerName(gc GameController) (string, bool)
	GameControllerRumble(gc GameController, low, high uint16, ms uint32) int32
	GameControllerAddMapping(mapping string) int32
	GameControllerAddMappingsFromFile(path string) int32

	NumHaptics() int32
	HapticName(index int32) (string, bool)
	HapticOpen(index int32) Haptic
	HapticOpenFromJoystick(j Joystick) Haptic
	HapticClose(h Haptic)
	HapticQuery(h Haptic) uint32
	HapticNumEffects(h Haptic) int32
	HapticNewEffect(h Haptic, effect *HapticEffect) int32
	HapticRunEffect(h Haptic, effect int32, iterations uint32) int32
	HapticStopEffect(h Haptic, effect int32) int32
	HapticDestroyEffect(h Haptic, effect int32)
	HapticSetGain(h Haptic, gain int32) int32
	HapticRumbleInit(h Haptic) int32
	HapticRumblePlay(h Haptic, strength float32, ms uint32) int32
	HapticRumbleStop(h Haptic) int32

	CreateSystemCursor(id int32) Cursor
	CreateColorCursor(s Surface, hotX, hotY int32) Cursor
	FreeCursor(c Cursor)
	SetCursor(c Cursor)
	ShowCursor(toggle int32) int32
	SetRelativeMouseMode(enabled bool) int32
	GetRelativeMouseMode() bool
	WarpMouseInWindow(w Window, x, y int32)
	GetMouseState() (x, y int32, buttons uint32)
}

// Timers covers SDL timers and clocks.
type Timers interface {
	AddTimer(interval uint32, cb TimerCallback) TimerID
	RemoveTimer(id TimerID) bool
	Delay(ms uint32)
	GetTicks() uint32
	GetPerformanceCounter() uint64
	GetPerformanceFrequency() uint64
}

// Loader covers SDL's portable shared object loading.
type Loader interface {
	LoadObject(name string) Object
	LoadFunction(obj Object, name string) uintptr
	UnloadObject(obj Object)
}

// SDL is the full set of SDL2 entry points used by the wrappers.
type SDL interface {
	Core
	Video
	Render
	Surfaces
	Input
	Timers
	Loader
}

// TTF is the set of SDL2_ttf entry points used by the text package. Errors are
// reported through the SDL error string.
type TTF interface {
	TTFInit() int32
	TTFQuit()
	TTFWasInit() int32
	OpenFont(file string, ptsize int32) Font
	CloseFont(f Font)
	FontHeight(f Font) int32
	FontAscent(f Font) int32
	FontDescent(f Font) int32
	FontLineSkip(f Font) int32
	GetFontStyle(f Font) int32
	SetFontStyle(f Font, style int32)
	SizeUTF8(f Font, text string) (w, h, status int32)
	RenderUTF8Blended(f Font, text string, fg geom.Color) Surface
}
