package input

import (
	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
	"github.com/tinyrange/gosdl/internal/video"
)

// Cursor owns an SDL_Cursor.
type Cursor struct {
	sys *sdl.System
	h   *resource.Unique[native.Cursor]
}

// NewSystemCursor creates one of the native.SystemCursor* shapes.
func NewSystemCursor(sys *sdl.System, id int32) (*Cursor, error) {
	h := sys.API().CreateSystemCursor(id)
	if h == 0 {
		return nil, sys.CreationFailed(KindCursor, "SDL_CreateSystemCursor")
	}
	return newCursor(sys, h), nil
}

// NewColorCursor creates a cursor from s with its hot spot at hot. The
// surface can be closed afterwards.
func NewColorCursor(sys *sdl.System, s *video.Surface, hot geom.Point) (*Cursor, error) {
	if !s.Valid() {
		panic(&resource.UseAfterReleaseError{Resource: video.KindSurface, Op: "SDL_CreateColorCursor"})
	}
	h := sys.API().CreateColorCursor(s.Handle(), hot.X, hot.Y)
	if h == 0 {
		return nil, sys.CreationFailed(KindCursor, "SDL_CreateColorCursor")
	}
	return newCursor(sys, h), nil
}

func newCursor(sys *sdl.System, h native.Cursor) *Cursor {
	c := &Cursor{sys: sys, h: resource.New(KindCursor, h, sys.API().FreeCursor)}
	c.h.BindParent(sys.Lifetime())
	return c
}

func (c *Cursor) Handle() native.Cursor { return c.h.Raw() }
func (c *Cursor) Valid() bool           { return c.h.Valid() }

// Set makes c the active cursor.
func (c *Cursor) Set() {
	h := c.h.Get("SDL_SetCursor")
	c.sys.API().SetCursor(h)
}

// Close frees the cursor. SDL falls back to the default cursor when the
// active cursor is freed.
func (c *Cursor) Close() { c.h.Close() }

func ShowCursor(sys *sdl.System) { sys.API().ShowCursor(native.CursorEnable) }
func HideCursor(sys *sdl.System) { sys.API().ShowCursor(native.CursorDisable) }

// CursorVisible reports whether the cursor is shown.
func CursorVisible(sys *sdl.System) bool {
	return sys.API().ShowCursor(native.CursorQuery) == native.CursorEnable
}

// SetRelativeMouse hides the cursor and reports only relative motion while
// enabled.
func SetRelativeMouse(sys *sdl.System, enabled bool) error {
	return sys.Check("SDL_SetRelativeMouseMode", sys.API().SetRelativeMouseMode(enabled))
}

func RelativeMouse(sys *sdl.System) bool {
	return sys.API().GetRelativeMouseMode()
}

// WarpInWindow moves the mouse to p inside w.
func WarpInWindow(w *video.Window, p geom.Point) {
	if !w.Valid() {
		panic(&resource.UseAfterReleaseError{Resource: video.KindWindow, Op: "SDL_WarpMouseInWindow"})
	}
	w.System().API().WarpMouseInWindow(w.Handle(), p.X, p.Y)
}

// MouseState returns the cursor position relative to the focused window and
// the pressed buttons as a native.Button* bit mask (bit n-1 for button n).
func MouseState(sys *sdl.System) (geom.Point, uint32) {
	x, y, buttons := sys.API().GetMouseState()
	return geom.Pt(x, y), buttons
}
