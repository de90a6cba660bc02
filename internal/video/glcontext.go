package video

import (
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

// SetGLAttribute sets an SDL_GL_* attribute. Attributes apply to windows and
// contexts created afterwards.
func SetGLAttribute(sys *sdl.System, attr, value int32) error {
	return sys.Check("SDL_GL_SetAttribute", sys.API().GLSetAttribute(attr, value))
}

// SetSwapInterval sets vsync for the current context: 0 immediate, 1 vsync,
// -1 adaptive.
func SetSwapInterval(sys *sdl.System, interval int32) error {
	return sys.Check("SDL_GL_SetSwapInterval", sys.API().GLSetSwapInterval(interval))
}

// GLContext owns an OpenGL context created for a window. The window must have
// been created with native.WindowOpenGL and must outlive the context.
type GLContext struct {
	sys *sdl.System
	win native.Window
	h   *resource.Unique[native.GLContext]
}

// NewGLContext creates a context for w and makes it current.
func (w *Window) NewGLContext() (*GLContext, error) {
	api, win := w.api("SDL_GL_CreateContext")
	h := api.GLCreateContext(win)
	if h == 0 {
		return nil, w.sys.CreationFailed(KindGLContext, "SDL_GL_CreateContext")
	}
	ctx := &GLContext{sys: w.sys, win: win, h: resource.New(KindGLContext, h, api.GLDeleteContext)}
	ctx.h.DependOn(w.Lifetime())
	return ctx, nil
}

func (c *GLContext) Handle() native.GLContext { return c.h.Raw() }
func (c *GLContext) Valid() bool              { return c.h.Valid() }

// MakeCurrent binds the context to its window on the calling thread.
func (c *GLContext) MakeCurrent() error {
	h := c.h.Get("SDL_GL_MakeCurrent")
	return c.sys.Check("SDL_GL_MakeCurrent", c.sys.API().GLMakeCurrent(c.win, h))
}

// ProcAddress resolves a GL entry point for the current context. It returns
// 0 when the driver does not export name.
func (c *GLContext) ProcAddress(name string) uintptr {
	c.h.Get("SDL_GL_GetProcAddress")
	return c.sys.API().GLGetProcAddress(name)
}

func (c *GLContext) Move() *GLContext {
	return &GLContext{sys: c.sys, win: c.win, h: c.h.Move()}
}

// Close deletes the context.
func (c *GLContext) Close() { c.h.Close() }
