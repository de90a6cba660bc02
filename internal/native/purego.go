//go:build linux || darwin || windows

package native

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/tinyrange/gosdl/internal/geom"
)

// binder resolves symbols from one library and records the first failure so a
// missing entry point is reported instead of panicking inside purego.
type binder struct {
	lib    string
	handle uintptr
	err    error
}

func (b *binder) bind(fptr any, name string) {
	if b.err != nil {
		return
	}
	addr, err := symbol(b.handle, name)
	if err != nil || addr == 0 {
		if err == nil {
			err = errors.New("symbol not found")
		}
		b.err = fmt.Errorf("native: %s: %s: %w", b.lib, name, err)
		return
	}
	purego.RegisterFunc(fptr, addr)
}

func open(path string, defaults []string) (uintptr, string, error) {
	names := defaults
	if path != "" {
		names = []string{path}
	}
	var errs []error
	for _, name := range names {
		h, err := openLibrary(name)
		if err == nil {
			return h, name, nil
		}
		errs = append(errs, err)
	}
	return 0, "", fmt.Errorf("native: unable to load %s: %w", strings.Join(names, ", "), errors.Join(errs...))
}

// goString copies a NUL-terminated C string. A zero pointer yields ok=false.
func goString(p uintptr) (string, bool) {
	if p == 0 {
		return "", false
	}
	var b []byte
	for ptr := p; ; ptr++ {
		c := *(*byte)(unsafe.Pointer(ptr))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b), true
}

func sdlBool(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

// lib binds the SDL2 entry points listed in the SDL interface.
type lib struct {
	handle uintptr

	init        func(uint32) int32
	quit        func()
	wasInit     func(uint32) uint32
	getError    func() string
	clearError  func()
	setHint     func(string, string) int32
	getVersion  func(*[3]uint8)
	getPlatform func() string
	pollEvent   func(*Event) int32

	waitEvent        func(*Event) int32
	waitEventTimeout func(*Event, int32) int32
	pushEvent        func(*Event) int32
	peepEvents       func(*Event, int32, int32, uint32, uint32) int32
	flushEvents      func(uint32, uint32)
	pumpEvents       func()
	hasEvents        func(uint32, uint32) int32
	registerEvents   func(int32) uint32
	addEventWatch    func(uintptr, uintptr)
	delEventWatch    func(uintptr, uintptr)
	setEventFilter   func(uintptr, uintptr)

	getCurrentVideoDriver func() uintptr
	getNumVideoDisplays   func() int32
	getDisplayDPI         func(int32, *float32, *float32, *float32) int32

	createWindow          func(string, int32, int32, int32, int32, uint32) Window
	createWindowFrom      func(uintptr) Window
	destroyWindow         func(Window)
	getWindowID           func(Window) uint32
	getWindowSize         func(Window, *int32, *int32)
	setWindowSize         func(Window, int32, int32)
	getWindowPosition     func(Window, *int32, *int32)
	setWindowPosition     func(Window, int32, int32)
	getWindowTitle        func(Window) string
	setWindowTitle        func(Window, string)
	getWindowFlags        func(Window) uint32
	setWindowFullscreen   func(Window, uint32) int32
	showWindow            func(Window)
	hideWindow            func(Window)
	raiseWindow           func(Window)
	maximizeWindow        func(Window)
	minimizeWindow        func(Window)
	restoreWindow         func(Window)
	setWindowGrab         func(Window, int32)
	getWindowGrab         func(Window) int32
	getWindowDisplayIndex func(Window) int32
	setWindowIcon         func(Window, Surface)

	glSetAttribute    func(int32, int32) int32
	glCreateContext   func(Window) GLContext
	glDeleteContext   func(GLContext)
	glMakeCurrent     func(Window, GLContext) int32
	glSwapWindow      func(Window)
	glSetSwapInterval func(int32) int32
	glGetProcAddress  func(string) uintptr

	vulkanGetInstanceExtensions func(Window, *uint32, *uintptr) int32

	createRenderer        func(Window, int32, uint32) Renderer
	destroyRenderer       func(Renderer)
	getRendererOutputSize func(Renderer, *int32, *int32) int32
	setRenderDrawColor    func(Renderer, uint8, uint8, uint8, uint8) int32
	getRenderDrawColor    func(Renderer, *uint8, *uint8, *uint8, *uint8) int32
	renderClear           func(Renderer) int32
	renderPresent         func(Renderer)
	renderDrawLine        func(Renderer, int32, int32, int32, int32) int32
	renderDrawLines       func(Renderer, *geom.Point, int32) int32
	renderDrawPoint       func(Renderer, int32, int32) int32
	renderDrawPoints      func(Renderer, *geom.Point, int32) int32
	renderDrawRect        func(Renderer, *geom.Rect) int32
	renderDrawRects       func(Renderer, *geom.Rect, int32) int32
	renderFillRect        func(Renderer, *geom.Rect) int32
	renderFillRects       func(Renderer, *geom.Rect, int32) int32
	renderCopy            func(Renderer, Texture, *geom.Rect, *geom.Rect) int32
	renderSetClipRect     func(Renderer, *geom.Rect) int32
	renderGetClipRect     func(Renderer, *geom.Rect)
	renderIsClipEnabled   func(Renderer) int32
	renderSetIntegerScale func(Renderer, int32) int32
	renderGetIntegerScale func(Renderer) int32
	renderReadPixels      func(Renderer, *geom.Rect, uint32, unsafe.Pointer, int32) int32

	createTexture            func(Renderer, uint32, int32, int32, int32) Texture
	createTextureFromSurface func(Renderer, Surface) Texture
	destroyTexture           func(Texture)
	queryTexture             func(Texture, *uint32, *int32, *int32, *int32) int32
	lockTexture              func(Texture, *geom.Rect, *unsafe.Pointer, *int32) int32
	unlockTexture            func(Texture)
	updateTexture            func(Texture, *geom.Rect, unsafe.Pointer, int32) int32
	setTextureBlendMode      func(Texture, int32) int32
	getTextureBlendMode      func(Texture, *int32) int32
	setTextureColorMod       func(Texture, uint8, uint8, uint8) int32
	getTextureColorMod       func(Texture, *uint8, *uint8, *uint8) int32
	setTextureAlphaMod       func(Texture, uint8) int32
	getTextureAlphaMod       func(Texture, *uint8) int32

	createRGBSurfaceWithFormat func(uint32, int32, int32, int32, uint32) Surface
	freeSurface                func(Surface)
	lockSurface                func(Surface) int32
	unlockSurface              func(Surface)
	convertSurfaceFormat       func(Surface, uint32, uint32) Surface
	upperBlit                  func(Surface, *geom.Rect, Surface, *geom.Rect) int32
	fillRect                   func(Surface, *geom.Rect, uint32) int32
	setColorKey                func(Surface, int32, uint32) int32
	getColorKey                func(Surface, *uint32) int32
	setSurfaceBlendMode        func(Surface, int32) int32
	getSurfaceBlendMode        func(Surface, *int32) int32
	setSurfaceColorMod         func(Surface, uint8, uint8, uint8) int32
	getSurfaceColorMod         func(Surface, *uint8, *uint8, *uint8) int32
	setSurfaceAlphaMod         func(Surface, uint8) int32
	getSurfaceAlphaMod         func(Surface, *uint8) int32
	getClipRect                func(Surface, *geom.Rect)
	setClipRect                func(Surface, *geom.Rect) int32
	rwFromFile                 func(string, string) uintptr
	loadBMPRW                  func(uintptr, int32) Surface
	saveBMPRW                  func(Surface, uintptr, int32) int32

	numJoysticks              func() int32
	joystickNameForIndex      func(int32) uintptr
	joystickOpen              func(int32) Joystick
	joystickClose             func(Joystick)
	joystickFromInstanceID    func(int32) Joystick
	joystickInstanceID        func(Joystick) int32
	joystickName              func(Joystick) uintptr
	joystickGetAttached       func(Joystick) int32
	joystickNumAxes           func(Joystick) int32
	joystickNumButtons        func(Joystick) int32
	joystickNumHats           func(Joystick) int32
	joystickNumBalls          func(Joystick) int32
	joystickGetAxis           func(Joystick, int32) int16
	joystickGetButton         func(Joystick, int32) uint8
	joystickGetHat            func(Joystick, int32) uint8
	joystickGetBall           func(Joystick, int32, *int32, *int32) int32
	joystickCurrentPowerLevel func(Joystick) int32

	isGameController                func(int32) int32
	gameControllerNameForIndex      func(int32) uintptr
	gameControllerOpen              func(int32) GameController
	gameControllerClose             func(GameController)
	gameControllerFromInstanceID    func(int32) GameController
	gameControllerGetJoystick       func(GameController) Joystick
	gameControllerGetAttached       func(GameController) int32
	gameControllerGetAxis           func(GameController, int32) int16
	gameControllerGetButton         func(GameController, int32) uint8
	gameControllerName              func(GameController) uintptr
	gameControllerRumble            func(GameController, uint16, uint16, uint32) int32
	gameControllerAddMapping        func(string) int32
	gameControllerAddMappingsFromRW func(uintptr, int32) int32

	numHaptics             func() int32
	hapticName             func(int32) uintptr
	hapticOpen             func(int32) Haptic
	hapticOpenFromJoystick func(Joystick) Haptic
	hapticClose            func(Haptic)
	hapticQuery            func(Haptic) uint32
	hapticNumEffects       func(Haptic) int32
	hapticNewEffect        func(Haptic, unsafe.Pointer) int32
	hapticRunEffect        func(Haptic, int32, uint32) int32
	hapticStopEffect       func(Haptic, int32) int32
	hapticDestroyEffect    func(Haptic, int32)
	hapticSetGain          func(Haptic, int32) int32
	hapticRumbleInit       func(Haptic) int32
	hapticRumblePlay       func(Haptic, float32, uint32) int32
	hapticRumbleStop       func(Haptic) int32

	createSystemCursor   func(int32) Cursor
	createColorCursor    func(Surface, int32, int32) Cursor
	freeCursor           func(Cursor)
	setCursor            func(Cursor)
	showCursor           func(int32) int32
	setRelativeMouseMode func(int32) int32
	getRelativeMouseMode func() int32
	warpMouseInWindow    func(Window, int32, int32)
	getMouseState        func(*int32, *int32) uint32

	addTimer                func(uint32, uintptr, uintptr) TimerID
	removeTimer             func(TimerID) int32
	delay                   func(uint32)
	getTicks                func() uint32
	getPerformanceCounter   func() uint64
	getPerformanceFrequency func() uint64

	loadObject   func(string) Object
	loadFunction func(Object, string) uintptr
	unloadObject func(Object)

	timerMu sync.Mutex
	timers  map[TimerID]uintptr

	filterMu  sync.Mutex
	filterKey uintptr
}

// Load opens the SDL2 shared library and binds every entry point. An empty
// path tries the platform's usual library names.
func Load(path string) (SDL, error) {
	handle, name, err := open(path, sdlLibraryNames)
	if err != nil {
		return nil, err
	}
	l := &lib{handle: handle, timers: make(map[TimerID]uintptr)}
	b := &binder{lib: name, handle: handle}
	register := b.bind

	register(&l.init, "SDL_Init")
	register(&l.quit, "SDL_Quit")
	register(&l.wasInit, "SDL_WasInit")
	register(&l.getError, "SDL_GetError")
	register(&l.clearError, "SDL_ClearError")
	register(&l.setHint, "SDL_SetHint")
	register(&l.getVersion, "SDL_GetVersion")
	register(&l.getPlatform, "SDL_GetPlatform")
	register(&l.pollEvent, "SDL_PollEvent")
	register(&l.waitEvent, "SDL_WaitEvent")
	register(&l.waitEventTimeout, "SDL_WaitEventTimeout")
	register(&l.pushEvent, "SDL_PushEvent")
	register(&l.peepEvents, "SDL_PeepEvents")
	register(&l.flushEvents, "SDL_FlushEvents")
	register(&l.pumpEvents, "SDL_PumpEvents")
	register(&l.hasEvents, "SDL_HasEvents")
	register(&l.registerEvents, "SDL_RegisterEvents")
	register(&l.addEventWatch, "SDL_AddEventWatch")
	register(&l.delEventWatch, "SDL_DelEventWatch")
	register(&l.setEventFilter, "SDL_SetEventFilter")

	register(&l.getCurrentVideoDriver, "SDL_GetCurrentVideoDriver")
	register(&l.getNumVideoDisplays, "SDL_GetNumVideoDisplays")
	register(&l.getDisplayDPI, "SDL_GetDisplayDPI")

	register(&l.createWindow, "SDL_CreateWindow")
	register(&l.createWindowFrom, "SDL_CreateWindowFrom")
	register(&l.destroyWindow, "SDL_DestroyWindow")
	register(&l.getWindowID, "SDL_GetWindowID")
	register(&l.getWindowSize, "SDL_GetWindowSize")
	register(&l.setWindowSize, "SDL_SetWindowSize")
	register(&l.getWindowPosition, "SDL_GetWindowPosition")
	register(&l.setWindowPosition, "SDL_SetWindowPosition")
	register(&l.getWindowTitle, "SDL_GetWindowTitle")
	register(&l.setWindowTitle, "SDL_SetWindowTitle")
	register(&l.getWindowFlags, "SDL_GetWindowFlags")
	register(&l.setWindowFullscreen, "SDL_SetWindowFullscreen")
	register(&l.showWindow, "SDL_ShowWindow")
	register(&l.hideWindow, "SDL_HideWindow")
	register(&l.raiseWindow, "SDL_RaiseWindow")
	register(&l.maximizeWindow, "SDL_MaximizeWindow")
	register(&l.minimizeWindow, "SDL_MinimizeWindow")
	register(&l.restoreWindow, "SDL_RestoreWindow")
	register(&l.setWindowGrab, "SDL_SetWindowGrab")
	register(&l.getWindowGrab, "SDL_GetWindowGrab")
	register(&l.getWindowDisplayIndex, "SDL_GetWindowDisplayIndex")
	register(&l.setWindowIcon, "SDL_SetWindowIcon")

	register(&l.glSetAttribute, "SDL_GL_SetAttribute")
	register(&l.glCreateContext, "SDL_GL_CreateContext")
	register(&l.glDeleteContext, "SDL_GL_DeleteContext")
	register(&l.glMakeCurrent, "SDL_GL_MakeCurrent")
	register(&l.glSwapWindow, "SDL_GL_SwapWindow")
	register(&l.glSetSwapInterval, "SDL_GL_SetSwapInterval")
	register(&l.glGetProcAddress, "SDL_GL_GetProcAddress")
	register(&l.vulkanGetInstanceExtensions, "SDL_Vulkan_GetInstanceExtensions")

	register(&l.createRenderer, "SDL_CreateRenderer")
	register(&l.destroyRenderer, "SDL_DestroyRenderer")
	register(&l.getRendererOutputSize, "SDL_GetRendererOutputSize")
	register(&l.setRenderDrawColor, "SDL_SetRenderDrawColor")
	register(&l.getRenderDrawColor, "SDL_GetRenderDrawColor")
	register(&l.renderClear, "SDL_RenderClear")
	register(&l.renderPresent, "SDL_RenderPresent")
	register(&l.renderDrawLine, "SDL_RenderDrawLine")
	register(&l.renderDrawLines, "SDL_RenderDrawLines")
	register(&l.renderDrawPoint, "SDL_RenderDrawPoint")
	register(&l.renderDrawPoints, "SDL_RenderDrawPoints")
	register(&l.renderDrawRect, "SDL_RenderDrawRect")
	register(&l.renderDrawRects, "SDL_RenderDrawRects")
	register(&l.renderFillRect, "SDL_RenderFillRect")
	register(&l.renderFillRects, "SDL_RenderFillRects")
	register(&l.renderCopy, "SDL_RenderCopy")
	register(&l.renderSetClipRect, "SDL_RenderSetClipRect")
	register(&l.renderGetClipRect, "SDL_RenderGetClipRect")
	register(&l.renderIsClipEnabled, "SDL_RenderIsClipEnabled")
	register(&l.renderSetIntegerScale, "SDL_RenderSetIntegerScale")
	register(&l.renderGetIntegerScale, "SDL_RenderGetIntegerScale")
	register(&l.renderReadPixels, "SDL_RenderReadPixels")

	register(&l.createTexture, "SDL_CreateTexture")
	register(&l.createTextureFromSurface, "SDL_CreateTextureFromSurface")
	register(&l.destroyTexture, "SDL_DestroyTexture")
	register(&l.queryTexture, "SDL_QueryTexture")
	register(&l.lockTexture, "SDL_LockTexture")
	register(&l.unlockTexture, "SDL_UnlockTexture")
	register(&l.updateTexture, "SDL_UpdateTexture")
	register(&l.setTextureBlendMode, "SDL_SetTextureBlendMode")
	register(&l.getTextureBlendMode, "SDL_GetTextureBlendMode")
	register(&l.setTextureColorMod, "SDL_SetTextureColorMod")
	register(&l.getTextureColorMod, "SDL_GetTextureColorMod")
	register(&l.setTextureAlphaMod, "SDL_SetTextureAlphaMod")
	register(&l.getTextureAlphaMod, "SDL_GetTextureAlphaMod")

	register(&l.createRGBSurfaceWithFormat, "SDL_CreateRGBSurfaceWithFormat")
	register(&l.freeSurface, "SDL_FreeSurface")
	register(&l.lockSurface, "SDL_LockSurface")
	register(&l.unlockSurface, "SDL_UnlockSurface")
	register(&l.convertSurfaceFormat, "SDL_ConvertSurfaceFormat")
	register(&l.upperBlit, "SDL_UpperBlit")
	register(&l.fillRect, "SDL_FillRect")
	register(&l.setColorKey, "SDL_SetColorKey")
	register(&l.getColorKey, "SDL_GetColorKey")
	register(&l.setSurfaceBlendMode, "SDL_SetSurfaceBlendMode")
	register(&l.getSurfaceBlendMode, "SDL_GetSurfaceBlendMode")
	register(&l.setSurfaceColorMod, "SDL_SetSurfaceColorMod")
	register(&l.getSurfaceColorMod, "SDL_GetSurfaceColorMod")
	register(&l.setSurfaceAlphaMod, "SDL_SetSurfaceAlphaMod")
	register(&l.getSurfaceAlphaMod, "SDL_GetSurfaceAlphaMod")
	register(&l.getClipRect, "SDL_GetClipRect")
	register(&l.setClipRect, "SDL_SetClipRect")
	register(&l.rwFromFile, "SDL_RWFromFile")
	register(&l.loadBMPRW, "SDL_LoadBMP_RW")
	register(&l.saveBMPRW, "SDL_SaveBMP_RW")

	register(&l.numJoysticks, "SDL_NumJoysticks")
	register(&l.joystickNameForIndex, "SDL_JoystickNameForIndex")
	register(&l.joystickOpen, "SDL_JoystickOpen")
	register(&l.joystickClose, "SDL_JoystickClose")
	register(&l.joystickFromInstanceID, "SDL_JoystickFromInstanceID")
	register(&l.joystickInstanceID, "SDL_JoystickInstanceID")
	register(&l.joystickName, "SDL_JoystickName")
	register(&l.joystickGetAttached, "SDL_JoystickGetAttached")
	register(&l.joystickNumAxes, "SDL_JoystickNumAxes")
	register(&l.joystickNumButtons, "SDL_JoystickNumButtons")
	register(&l.joystickNumHats, "SDL_JoystickNumHats")
	register(&l.joystickNumBalls, "SDL_JoystickNumBalls")
	register(&l.joystickGetAxis, "SDL_JoystickGetAxis")
	register(&l.joystickGetButton, "SDL_JoystickGetButton")
	register(&l.joystickGetHat, "SDL_JoystickGetHat")
	register(&l.joystickGetBall, "SDL_JoystickGetBall")
	register(&l.joystickCurrentPowerLevel, "SDL_JoystickCurrentPowerLevel")

	register(&l.isGameController, "SDL_IsGameController")
	register(&l.gameControllerNameForIndex, "SDL_GameControllerNameForIndex")
	register(&l.gameControllerOpen, "SDL_GameControllerOpen")
	register(&l.gameControllerClose, "SDL_GameControllerClose")
	register(&l.gameControllerFromInstanceID, "SDL_GameControllerFromInstanceID")
	register(&l.gameControllerGetJoystick, "SDL_GameControllerGetJoystick")
	register(&l.gameControllerGetAttached, "SDL_GameControllerGetAttached")
	register(&l.gameControllerGetAxis, "SDL_GameControllerGetAxis")
	register(&l.gameControllerGetButton, "SDL_GameControllerGetButton")
	register(&l.gameControllerName, "SDL_GameControllerName")
	register(&l.gameControllerRumble, "SDL_GameControllerRumble")
	register(&l.gameControllerAddMapping, "SDL_GameControllerAddMapping")
	register(&l.gameControllerAddMappingsFromRW, "SDL_GameControllerAddMappingsFromRW")

	register(&l.numHaptics, "SDL_NumHaptics")
	register(&l.hapticName, "SDL_HapticName")
	register(&l.hapticOpen, "SDL_HapticOpen")
	register(&l.hapticOpenFromJoystick, "SDL_HapticOpenFromJoystick")
	register(&l.hapticClose, "SDL_HapticClose")
	register(&l.hapticQuery, "SDL_HapticQuery")
	register(&l.hapticNumEffects, "SDL_HapticNumEffects")
	register(&l.hapticNewEffect, "SDL_HapticNewEffect")
	register(&l.hapticRunEffect, "SDL_HapticRunEffect")
	register(&l.hapticStopEffect, "SDL_HapticStopEffect")
	register(&l.hapticDestroyEffect, "SDL_HapticDestroyEffect")
	register(&l.hapticSetGain, "SDL_HapticSetGain")
	register(&l.hapticRumbleInit, "SDL_HapticRumbleInit")
	register(&l.hapticRumblePlay, "SDL_HapticRumblePlay")
	register(&l.hapticRumbleStop, "SDL_HapticRumbleStop")

	register(&l.createSystemCursor, "SDL_CreateSystemCursor")
	register(&l.createColorCursor, "SDL_CreateColorCursor")
	register(&l.freeCursor, "SDL_FreeCursor")
	register(&l.setCursor, "SDL_SetCursor")
	register(&l.showCursor, "SDL_ShowCursor")
	register(&l.setRelativeMouseMode, "SDL_SetRelativeMouseMode")
	register(&l.getRelativeMouseMode, "SDL_GetRelativeMouseMode")
	register(&l.warpMouseInWindow, "SDL_WarpMouseInWindow")
	register(&l.getMouseState, "SDL_GetMouseState")

	register(&l.addTimer, "SDL_AddTimer")
	register(&l.removeTimer, "SDL_RemoveTimer")
	register(&l.delay, "SDL_Delay")
	register(&l.getTicks, "SDL_GetTicks")
	register(&l.getPerformanceCounter, "SDL_GetPerformanceCounter")
	register(&l.getPerformanceFrequency, "SDL_GetPerformanceFrequency")

	register(&l.loadObject, "SDL_LoadObject")
	register(&l.loadFunction, "SDL_LoadFunction")
	register(&l.unloadObject, "SDL_UnloadObject")

	if b.err != nil {
		_ = closeLibrary(handle)
		return nil, b.err
	}
	return l, nil
}
