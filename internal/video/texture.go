package video

import (
	"fmt"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

// Texture owns an SDL_Texture. Format, access and size are queried once at
// creation.
type Texture struct {
	sys *sdl.System
	h   *resource.Unique[native.Texture]

	format uint32
	access int32
	width  int32
	height int32

	lock *TextureLock
}

// NewTexture creates a texture. Use native.TextureAccessStreaming for
// textures that will be locked.
func (r *Renderer) NewTexture(format uint32, access, w, h int32) (*Texture, error) {
	api, rh := r.api("SDL_CreateTexture")
	return r.adoptTexture("SDL_CreateTexture", api.CreateTexture(rh, format, access, w, h))
}

// TextureFromSurface uploads s into a new static texture. The surface can be
// closed afterwards.
func (r *Renderer) TextureFromSurface(s *Surface) (*Texture, error) {
	api, rh := r.api("SDL_CreateTextureFromSurface")
	th := api.CreateTextureFromSurface(rh, s.h.Get("SDL_CreateTextureFromSurface"))
	return r.adoptTexture("SDL_CreateTextureFromSurface", th)
}

func (r *Renderer) adoptTexture(op string, th native.Texture) (*Texture, error) {
	api := r.sys.API()
	if th == 0 {
		return nil, r.sys.CreationFailed(KindTexture, op)
	}
	format, access, w, h, status := api.QueryTexture(th)
	if status < 0 {
		err := r.sys.CreationFailed(KindTexture, "SDL_QueryTexture")
		api.DestroyTexture(th)
		return nil, err
	}
	t := &Texture{
		sys:    r.sys,
		h:      resource.New(KindTexture, th, api.DestroyTexture),
		format: format,
		access: access,
		width:  w,
		height: h,
	}
	t.h.BindParent(r.Lifetime())
	return t, nil
}

func (t *Texture) api(op string) (native.SDL, native.Texture) {
	h := t.h.Get(op)
	return t.sys.API(), h
}

func (t *Texture) Handle() native.Texture { return t.h.Raw() }
func (t *Texture) Valid() bool            { return t.h.Valid() }
func (t *Texture) Format() uint32         { return t.format }
func (t *Texture) Access() int32          { return t.access }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (w, h int32) { return t.width, t.height }

// Move transfers the texture, including an active lock, to a new wrapper.
func (t *Texture) Move() *Texture {
	n := &Texture{
		sys:    t.sys,
		h:      t.h.Move(),
		format: t.format,
		access: t.access,
		width:  t.width,
		height: t.height,
		lock:   t.lock,
	}
	if n.lock != nil {
		n.lock.tex = n
	}
	t.lock = nil
	return n
}

// Close destroys the texture, unlocking it first if a lock is live.
func (t *Texture) Close() {
	if t.lock != nil {
		t.lock.Unlock()
	}
	t.h.Close()
}

func (t *Texture) BlendMode() (int32, error) {
	api, h := t.api("SDL_GetTextureBlendMode")
	mode, status := api.GetTextureBlendMode(h)
	return mode, t.sys.Check("SDL_GetTextureBlendMode", status)
}

func (t *Texture) SetBlendMode(mode int32) error {
	api, h := t.api("SDL_SetTextureBlendMode")
	return t.sys.Check("SDL_SetTextureBlendMode", api.SetTextureBlendMode(h, mode))
}

// ColorMod returns the color modulation. The alpha channel is always opaque.
func (t *Texture) ColorMod() (geom.Color, error) {
	api, h := t.api("SDL_GetTextureColorMod")
	r, g, b, status := api.GetTextureColorMod(h)
	return geom.Color{R: r, G: g, B: b, A: 0xff}, t.sys.Check("SDL_GetTextureColorMod", status)
}

// SetColorMod sets the color modulation from c's RGB channels.
func (t *Texture) SetColorMod(c geom.Color) error {
	api, h := t.api("SDL_SetTextureColorMod")
	return t.sys.Check("SDL_SetTextureColorMod", api.SetTextureColorMod(h, c.R, c.G, c.B))
}

func (t *Texture) AlphaMod() (uint8, error) {
	api, h := t.api("SDL_GetTextureAlphaMod")
	a, status := api.GetTextureAlphaMod(h)
	return a, t.sys.Check("SDL_GetTextureAlphaMod", status)
}

func (t *Texture) SetAlphaMod(a uint8) error {
	api, h := t.api("SDL_SetTextureAlphaMod")
	return t.sys.Check("SDL_SetTextureAlphaMod", api.SetTextureAlphaMod(h, a))
}

// ColorAlphaMod combines ColorMod and AlphaMod.
func (t *Texture) ColorAlphaMod() (geom.Color, error) {
	c, err := t.ColorMod()
	if err != nil {
		return c, err
	}
	c.A, err = t.AlphaMod()
	return c, err
}

func (t *Texture) SetColorAlphaMod(c geom.Color) error {
	if err := t.SetColorMod(c); err != nil {
		return err
	}
	return t.SetAlphaMod(c.A)
}

// Update replaces rect (the whole texture when nil) with pixels laid out in
// the texture's format.
func (t *Texture) Update(rect *geom.Rect, pixels []byte, pitch int) error {
	area := geom.R(0, 0, t.width, t.height)
	if rect != nil {
		area = *rect
	}
	need := 0
	if !area.Empty() {
		need = pitch*int(area.H-1) + int(area.W)*native.BytesPerPixel(t.format)
	}
	if len(pixels) < need {
		return &resource.OperationError{
			Op:         "SDL_UpdateTexture",
			Diagnostic: fmt.Sprintf("pixel buffer holds %d bytes, need %d", len(pixels), need),
		}
	}
	api, h := t.api("SDL_UpdateTexture")
	return t.sys.Check("SDL_UpdateTexture", api.UpdateTexture(h, rect, pixels, int32(pitch)))
}

// Lock gives write-only access to rect (the whole texture when nil) of a
// streaming texture. The returned lock must be unlocked before the texture
// is drawn; a second Lock before that fails with *resource.ReentrantLockError.
func (t *Texture) Lock(rect *geom.Rect) (*TextureLock, error) {
	if err := t.h.TryLock("SDL_LockTexture"); err != nil {
		return nil, err
	}
	api, h := t.api("SDL_LockTexture")
	ptr, pitch, status := api.LockTexture(h, rect)
	if status < 0 {
		t.h.Unlock()
		return nil, t.sys.Fail("SDL_LockTexture")
	}
	area := geom.R(0, 0, t.width, t.height)
	if rect != nil {
		area = rect.Intersect(area)
	}
	l := &TextureLock{
		pixelView: newPixelView(KindTexture, ptr, int(area.W), int(area.H), int(pitch), t.format),
		tex:       t,
	}
	t.lock = l
	return l, nil
}

// WithLock locks rect, runs fn and unlocks on every path out of fn.
func (t *Texture) WithLock(rect *geom.Rect, fn func(*TextureLock) error) error {
	l, err := t.Lock(rect)
	if err != nil {
		return err
	}
	defer l.Unlock()
	return fn(l)
}
