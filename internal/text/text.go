// Package text renders strings with SDL2_ttf.
//
// An Engine holds one TTF_Init reference. Fonts are children of the engine
// and surfaces they render are ordinary video surfaces owned by the caller.
package text

import (
	"github.com/flopp/go-findfont"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

const (
	KindEngine = "ttf"
	KindFont   = "font"
)

// Engine is an initialised SDL2_ttf library. Close calls TTF_Quit once; every
// font opened from the engine must be closed first.
type Engine struct {
	sys *sdl.System
	ttf native.TTF
	h   *resource.Unique[int32]
}

// Init initialises SDL2_ttf. Errors are read from the SDL error string.
func Init(sys *sdl.System, ttf native.TTF) (*Engine, error) {
	sys.API()
	if ttf.TTFInit() < 0 {
		return nil, sys.CreationFailed(KindEngine, "TTF_Init")
	}
	e := &Engine{sys: sys, ttf: ttf}
	e.h = resource.New(KindEngine, ttf.TTFWasInit(), func(int32) { ttf.TTFQuit() })
	e.h.DependOn(sys.Lifetime())
	return e, nil
}

func (e *Engine) Valid() bool                 { return e.h.Valid() }
func (e *Engine) Lifetime() resource.Lifetime { return e.h.Lifetime() }
func (e *Engine) Close()                      { e.h.Close() }

// Open loads the font file at path at the given point size.
func (e *Engine) Open(path string, size int) (*Font, error) {
	e.h.Get("TTF_OpenFont")
	fh := e.ttf.OpenFont(path, int32(size))
	if fh == 0 {
		return nil, e.sys.CreationFailed(KindFont, "TTF_OpenFont")
	}
	f := &Font{
		eng:  e,
		path: path,
		size: size,
		h:    resource.New(KindFont, fh, e.ttf.CloseFont),
	}
	f.h.BindParent(e.h.Lifetime())
	return f, nil
}

// OpenByName looks name up in the system font directories, for example
// "DejaVuSans.ttf" or "Arial", and opens it.
func (e *Engine) OpenByName(name string, size int) (*Font, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return nil, &resource.CreationError{Resource: KindFont, Op: "findfont.Find", Diagnostic: err.Error()}
	}
	return e.Open(path, size)
}
