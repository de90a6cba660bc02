// Package video wraps SDL windows, renderers, textures, surfaces and GL
// contexts. Each wrapper owns its native handle through resource.Unique.
//
// Children must be closed before their parents: textures before their
// renderer, renderers and GL contexts before their window, and everything
// before the sdl.System. With debug checks enabled a call on a child whose
// parent is gone panics with *resource.ParentReleasedError.
package video

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

const (
	KindWindow    = "window"
	KindRenderer  = "renderer"
	KindTexture   = "texture"
	KindSurface   = "surface"
	KindGLContext = "gl context"
)

// Window owns an SDL_Window.
type Window struct {
	sys *sdl.System
	h   *resource.Unique[native.Window]
}

// NewWindow creates a window at an undefined position.
func NewWindow(sys *sdl.System, title string, w, h int32, flags uint32) (*Window, error) {
	return NewWindowAt(sys, title, geom.R(native.WindowPosUndefined, native.WindowPosUndefined, w, h), flags)
}

// NewWindowAt creates a window with the given position and size.
func NewWindowAt(sys *sdl.System, title string, r geom.Rect, flags uint32) (*Window, error) {
	h := sys.API().CreateWindow(title, r.X, r.Y, r.W, r.H, flags)
	if h == 0 {
		return nil, sys.CreationFailed(KindWindow, "SDL_CreateWindow")
	}
	return AdoptWindow(sys, h, resource.Owned), nil
}

// WindowFrom creates an SDL window around a window owned by the host
// toolkit. With resource.Borrowed the SDL window is never destroyed by this
// wrapper.
func WindowFrom(sys *sdl.System, foreign uintptr, o resource.Ownership) (*Window, error) {
	h := sys.API().CreateWindowFrom(foreign)
	if h == 0 {
		return nil, sys.CreationFailed(KindWindow, "SDL_CreateWindowFrom")
	}
	return AdoptWindow(sys, h, o), nil
}

// AdoptWindow wraps an existing SDL_Window handle.
func AdoptWindow(sys *sdl.System, h native.Window, o resource.Ownership) *Window {
	u := resource.Adopt(KindWindow, h, o, sys.API().DestroyWindow)
	u.BindParent(sys.Lifetime())
	return &Window{sys: sys, h: u}
}

func (w *Window) api(op string) (native.SDL, native.Window) {
	h := w.h.Get(op)
	return w.sys.API(), h
}

// System returns the library the window was created from.
func (w *Window) System() *sdl.System { return w.sys }

// Handle returns the raw SDL_Window pointer, or 0 when empty.
func (w *Window) Handle() native.Window { return w.h.Raw() }

func (w *Window) Valid() bool { return w.h.Valid() }
func (w *Window) Owned() bool { return w.h.Owned() }

// Lifetime ends when the window is closed.
func (w *Window) Lifetime() resource.Lifetime { return w.h.Lifetime() }

// Move transfers ownership to a new Window and leaves w empty.
func (w *Window) Move() *Window {
	return &Window{sys: w.sys, h: w.h.Move()}
}

// Replace closes w's window and takes over src's.
func (w *Window) Replace(src *Window) {
	if w == src {
		return
	}
	w.sys = src.sys
	w.h.Replace(src.h)
}

// Close destroys the window. Renderers and GL contexts must be closed first.
func (w *Window) Close() { w.h.Close() }

func (w *Window) ID() uint32 {
	api, h := w.api("SDL_GetWindowID")
	return api.GetWindowID(h)
}

func (w *Window) Size() (width, height int32) {
	api, h := w.api("SDL_GetWindowSize")
	return api.GetWindowSize(h)
}

func (w *Window) Resize(width, height int32) {
	api, h := w.api("SDL_SetWindowSize")
	api.SetWindowSize(h, width, height)
}

func (w *Window) Position() geom.Point {
	api, h := w.api("SDL_GetWindowPosition")
	x, y := api.GetWindowPosition(h)
	return geom.Pt(x, y)
}

func (w *Window) MoveTo(p geom.Point) {
	api, h := w.api("SDL_SetWindowPosition")
	api.SetWindowPosition(h, p.X, p.Y)
}

// MoveBy shifts the window by d.
func (w *Window) MoveBy(d geom.Point) {
	w.MoveTo(w.Position().Add(d))
}

func (w *Window) Title() string {
	api, h := w.api("SDL_GetWindowTitle")
	return api.GetWindowTitle(h)
}

func (w *Window) Rename(title string) {
	api, h := w.api("SDL_SetWindowTitle")
	api.SetWindowTitle(h, title)
}

func (w *Window) Flags() uint32 {
	api, h := w.api("SDL_GetWindowFlags")
	return api.GetWindowFlags(h)
}

// Fullscreen reports whether the window is in either fullscreen mode.
func (w *Window) Fullscreen() bool {
	return w.Flags()&native.WindowFullscreen != 0
}

// SetFullscreen switches modes: 0, native.WindowFullscreen or
// native.WindowFullscreenDesktop.
func (w *Window) SetFullscreen(flags uint32) error {
	api, h := w.api("SDL_SetWindowFullscreen")
	return w.sys.Check("SDL_SetWindowFullscreen", api.SetWindowFullscreen(h, flags))
}

// ToggleFullscreen switches between windowed and desktop fullscreen.
func (w *Window) ToggleFullscreen() error {
	if w.Fullscreen() {
		return w.SetFullscreen(0)
	}
	return w.SetFullscreen(native.WindowFullscreenDesktop)
}

func (w *Window) Show() {
	api, h := w.api("SDL_ShowWindow")
	api.ShowWindow(h)
}

func (w *Window) Hide() {
	api, h := w.api("SDL_HideWindow")
	api.HideWindow(h)
}

func (w *Window) Raise() {
	api, h := w.api("SDL_RaiseWindow")
	api.RaiseWindow(h)
}

func (w *Window) Maximize() {
	api, h := w.api("SDL_MaximizeWindow")
	api.MaximizeWindow(h)
}

func (w *Window) Minimize() {
	api, h := w.api("SDL_MinimizeWindow")
	api.MinimizeWindow(h)
}

func (w *Window) Restore() {
	api, h := w.api("SDL_RestoreWindow")
	api.RestoreWindow(h)
}

// Grab confines the mouse to the window.
func (w *Window) Grab(grabbed bool) {
	api, h := w.api("SDL_SetWindowGrab")
	api.SetWindowGrab(h, grabbed)
}

func (w *Window) Grabbed() bool {
	api, h := w.api("SDL_GetWindowGrab")
	return api.GetWindowGrab(h)
}

// DisplayIndex returns the display containing the window's center.
func (w *Window) DisplayIndex() (int32, error) {
	api, h := w.api("SDL_GetWindowDisplayIndex")
	idx := api.GetWindowDisplayIndex(h)
	if idx < 0 {
		return 0, w.sys.Fail("SDL_GetWindowDisplayIndex")
	}
	return idx, nil
}

// Scale returns the UI scale factor for the window. Scale environment
// variables win over the display DPI; 1.0 is returned when neither is known.
func (w *Window) Scale() float32 {
	var dpi float32
	if idx, err := w.DisplayIndex(); err == nil {
		ddpi, _, _, status := w.sys.API().GetDisplayDPI(idx)
		if status == 0 {
			dpi = ddpi
		} else {
			w.sys.API().ClearError()
		}
	}
	return calculateScale(dpi, getenv)
}

// SetIcon sets the window icon. The surface can be closed afterwards.
func (w *Window) SetIcon(icon *Surface) {
	api, h := w.api("SDL_SetWindowIcon")
	api.SetWindowIcon(h, icon.h.Get("SDL_SetWindowIcon"))
}

// IconSize is the edge length SetIconImage scales icons to.
const IconSize = 32

// SetIconImage scales img to IconSize and installs it as the window icon.
func (w *Window) SetIconImage(img image.Image) error {
	dst := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	s, err := SurfaceFromImage(w.sys, dst)
	if err != nil {
		return err
	}
	defer s.Close()
	w.SetIcon(s)
	return nil
}

// VulkanInstanceExtensions lists the instance extensions needed to create a
// Vulkan surface for the window.
func (w *Window) VulkanInstanceExtensions() ([]string, error) {
	api, h := w.api("SDL_Vulkan_GetInstanceExtensions")
	exts, ok := api.VulkanGetInstanceExtensions(h)
	if !ok {
		return nil, w.sys.Fail("SDL_Vulkan_GetInstanceExtensions")
	}
	return exts, nil
}

// GLSwap swaps the window's GL buffers.
func (w *Window) GLSwap() {
	api, h := w.api("SDL_GL_SwapWindow")
	api.GLSwapWindow(h)
}
