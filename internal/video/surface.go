package video

import (
	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

// Surface owns an SDL_Surface held in system memory.
type Surface struct {
	sys  *sdl.System
	h    *resource.Unique[native.Surface]
	lock *SurfaceLock
}

// NewSurface allocates a w x h surface in format.
func NewSurface(sys *sdl.System, w, h int32, format uint32) (*Surface, error) {
	api := sys.API()
	sh := api.CreateRGBSurfaceWithFormat(0, w, h, int32(native.BitsPerPixel(format)), format)
	if sh == 0 {
		return nil, sys.CreationFailed(KindSurface, "SDL_CreateRGBSurfaceWithFormat")
	}
	return AdoptSurface(sys, sh, resource.Owned), nil
}

// LoadBMP reads a Windows bitmap.
func LoadBMP(sys *sdl.System, path string) (*Surface, error) {
	sh := sys.API().LoadBMP(path)
	if sh == 0 {
		return nil, sys.CreationFailed(KindSurface, "SDL_LoadBMP")
	}
	return AdoptSurface(sys, sh, resource.Owned), nil
}

// AdoptSurface wraps a surface created elsewhere, such as by SDL_ttf.
func AdoptSurface(sys *sdl.System, h native.Surface, o resource.Ownership) *Surface {
	s := &Surface{sys: sys, h: resource.Adopt(KindSurface, h, o, sys.API().FreeSurface)}
	s.h.DependOn(sys.Lifetime())
	return s
}

func (s *Surface) api(op string) (native.SDL, native.Surface) {
	h := s.h.Get(op)
	return s.sys.API(), h
}

func (s *Surface) info(op string) native.SurfaceInfo {
	api, h := s.api(op)
	return api.SurfaceInfo(h)
}

func (s *Surface) Handle() native.Surface { return s.h.Raw() }
func (s *Surface) Valid() bool            { return s.h.Valid() }

// Move transfers the surface, including an active lock, to a new wrapper.
func (s *Surface) Move() *Surface {
	n := &Surface{sys: s.sys, h: s.h.Move(), lock: s.lock}
	if n.lock != nil {
		n.lock.surf = n
	}
	s.lock = nil
	return n
}

// Close frees the surface, unlocking it first if a lock is live.
func (s *Surface) Close() {
	if s.lock != nil {
		s.lock.Unlock()
	}
	s.h.Close()
}

func (s *Surface) Width() int32   { return s.info("Width").W }
func (s *Surface) Height() int32  { return s.info("Height").H }
func (s *Surface) Format() uint32 { return s.info("Format").Format }
func (s *Surface) Pitch() int32   { return s.info("Pitch").Pitch }

func (s *Surface) Size() (w, h int32) {
	info := s.info("Size")
	return info.W, info.H
}

// SaveBMP writes the surface as a Windows bitmap.
func (s *Surface) SaveBMP(path string) error {
	api, h := s.api("SDL_SaveBMP")
	return s.sys.Check("SDL_SaveBMP", api.SaveBMP(h, path))
}

// Convert returns a copy of the surface in format.
func (s *Surface) Convert(format uint32) (*Surface, error) {
	api, h := s.api("SDL_ConvertSurfaceFormat")
	out := api.ConvertSurfaceFormat(h, format)
	if out == 0 {
		return nil, s.sys.CreationFailed(KindSurface, "SDL_ConvertSurfaceFormat")
	}
	return AdoptSurface(s.sys, out, resource.Owned), nil
}

// ConvertTo returns a copy of the surface in other's format.
func (s *Surface) ConvertTo(other *Surface) (*Surface, error) {
	return s.Convert(other.Format())
}

// BlitOn copies src of s (everything when nil) onto dst at dstRect's origin
// (0,0 when nil).
func (s *Surface) BlitOn(dst *Surface, src, dstRect *geom.Rect) error {
	api, h := s.api("SDL_BlitSurface")
	return s.sys.Check("SDL_BlitSurface", api.BlitSurface(h, src, dst.h.Get("SDL_BlitSurface"), dstRect))
}

// FillRect fills rect (the clip rectangle when nil) with c. The surface must
// use a packed 32-bit format.
func (s *Surface) FillRect(rect *geom.Rect, c geom.Color) error {
	l, ok := native.PackedLayout(s.Format())
	if !ok {
		return resource.ErrUnsupported
	}
	return s.FillRaw(rect, c.Pack(l))
}

// FillRaw fills rect with a pixel value already encoded in the surface format.
func (s *Surface) FillRaw(rect *geom.Rect, value uint32) error {
	api, h := s.api("SDL_FillRect")
	return s.sys.Check("SDL_FillRect", api.FillRect(h, rect, value))
}

func (s *Surface) ColorKey() (uint32, error) {
	api, h := s.api("SDL_GetColorKey")
	key, status := api.GetColorKey(h)
	return key, s.sys.Check("SDL_GetColorKey", status)
}

// SetColorKey makes pixels equal to key transparent when blitting.
func (s *Surface) SetColorKey(key uint32) error {
	api, h := s.api("SDL_SetColorKey")
	return s.sys.Check("SDL_SetColorKey", api.SetColorKey(h, true, key))
}

// SetColorKeyColor is SetColorKey with c encoded in the surface format.
func (s *Surface) SetColorKeyColor(c geom.Color) error {
	l, ok := native.PackedLayout(s.Format())
	if !ok {
		return resource.ErrUnsupported
	}
	return s.SetColorKey(c.Pack(l))
}

func (s *Surface) DisableColorKey() error {
	api, h := s.api("SDL_SetColorKey")
	return s.sys.Check("SDL_SetColorKey", api.SetColorKey(h, false, 0))
}

func (s *Surface) BlendMode() (int32, error) {
	api, h := s.api("SDL_GetSurfaceBlendMode")
	mode, status := api.GetSurfaceBlendMode(h)
	return mode, s.sys.Check("SDL_GetSurfaceBlendMode", status)
}

func (s *Surface) SetBlendMode(mode int32) error {
	api, h := s.api("SDL_SetSurfaceBlendMode")
	return s.sys.Check("SDL_SetSurfaceBlendMode", api.SetSurfaceBlendMode(h, mode))
}

func (s *Surface) ColorMod() (geom.Color, error) {
	api, h := s.api("SDL_GetSurfaceColorMod")
	r, g, b, status := api.GetSurfaceColorMod(h)
	return geom.Color{R: r, G: g, B: b, A: 0xff}, s.sys.Check("SDL_GetSurfaceColorMod", status)
}

func (s *Surface) SetColorMod(c geom.Color) error {
	api, h := s.api("SDL_SetSurfaceColorMod")
	return s.sys.Check("SDL_SetSurfaceColorMod", api.SetSurfaceColorMod(h, c.R, c.G, c.B))
}

func (s *Surface) AlphaMod() (uint8, error) {
	api, h := s.api("SDL_GetSurfaceAlphaMod")
	a, status := api.GetSurfaceAlphaMod(h)
	return a, s.sys.Check("SDL_GetSurfaceAlphaMod", status)
}

func (s *Surface) SetAlphaMod(a uint8) error {
	api, h := s.api("SDL_SetSurfaceAlphaMod")
	return s.sys.Check("SDL_SetSurfaceAlphaMod", api.SetSurfaceAlphaMod(h, a))
}

func (s *Surface) ClipRect() geom.Rect {
	api, h := s.api("SDL_GetClipRect")
	return api.GetClipRect(h)
}

// SetClipRect limits blits and fills to rect, or removes the limit when rect
// is nil. It reports whether the resulting clip rectangle is non-empty.
func (s *Surface) SetClipRect(rect *geom.Rect) bool {
	api, h := s.api("SDL_SetClipRect")
	return api.SetClipRect(h, rect)
}

// Lock gives direct access to the surface pixels. Blits fail while the
// surface is locked.
func (s *Surface) Lock() (*SurfaceLock, error) {
	if err := s.h.TryLock("SDL_LockSurface"); err != nil {
		return nil, err
	}
	api, h := s.api("SDL_LockSurface")
	if status := api.LockSurface(h); status < 0 {
		s.h.Unlock()
		return nil, s.sys.Fail("SDL_LockSurface")
	}
	info := api.SurfaceInfo(h)
	l := &SurfaceLock{
		pixelView: newPixelView(KindSurface, info.Pixels, int(info.W), int(info.H), int(info.Pitch), info.Format),
		surf:      s,
	}
	s.lock = l
	return l, nil
}

// WithLock locks the surface, runs fn and unlocks on every path out of fn.
func (s *Surface) WithLock(fn func(*SurfaceLock) error) error {
	l, err := s.Lock()
	if err != nil {
		return err
	}
	defer l.Unlock()
	return fn(l)
}
