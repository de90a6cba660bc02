package video

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/native/nativetest"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

func newSurface(t *testing.T, sys *sdl.System, w, h int32) *Surface {
	t.Helper()
	s, err := NewSurface(sys, w, h, native.PixelFormatARGB8888)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func pixelAt(t *testing.T, s *Surface, x, y int) geom.Color {
	t.Helper()
	var c geom.Color
	err := s.WithLock(func(l *SurfaceLock) error {
		var err error
		c, err = l.PixelAt(x, y)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSurfaceBasics(t *testing.T) {
	f, sys := newSystem(t)
	s := newSurface(t, sys, 4, 3)

	if w, h := s.Size(); w != 4 || h != 3 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if s.Format() != native.PixelFormatARGB8888 || s.Pitch() != 16 {
		t.Fatalf("format %#x pitch %d", s.Format(), s.Pitch())
	}
	if err := s.FillRect(nil, geom.Red); err != nil {
		t.Fatal(err)
	}
	if c := pixelAt(t, s, 3, 2); c != geom.Red {
		t.Fatalf("pixel = %v", c)
	}

	if err := s.SetBlendMode(native.BlendModeBlend); err != nil {
		t.Fatal(err)
	}
	if m, _ := s.BlendMode(); m != native.BlendModeBlend {
		t.Fatalf("blend = %d", m)
	}
	s.SetColorMod(geom.Color{R: 9, G: 8, B: 7})
	if c, _ := s.ColorMod(); c != (geom.Color{R: 9, G: 8, B: 7, A: 0xff}) {
		t.Fatalf("color mod = %v", c)
	}
	s.SetAlphaMod(0x80)
	if a, _ := s.AlphaMod(); a != 0x80 {
		t.Fatalf("alpha mod = %#x", a)
	}

	h := uintptr(s.Handle())
	s.Close()
	s.Close()
	if f.ReleaseCount(nativetest.KindSurface, h) != 1 {
		t.Fatal("surface must be freed once")
	}
	expectPanic[*resource.UseAfterReleaseError](t, func() { s.Width() })
}

func TestSurfaceCreationFailure(t *testing.T) {
	f, sys := newSystem(t)
	f.Fail("CreateRGBSurfaceWithFormat", "Out of memory")
	s, err := NewSurface(sys, 4, 4, native.PixelFormatARGB8888)
	if s != nil || err == nil || err.Error() != "SDL_CreateRGBSurfaceWithFormat failed: Out of memory" {
		t.Fatalf("surface = %v, err = %v", s, err)
	}
	if _, err := LoadBMP(sys, filepath.Join(t.TempDir(), "missing.bmp")); !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("err = %v", err)
	}
}

func TestSurfaceColorKeyBlit(t *testing.T) {
	f, sys := newSystem(t)
	src := newSurface(t, sys, 2, 2)
	dst := newSurface(t, sys, 2, 2)
	defer src.Close()
	defer dst.Close()

	src.FillRect(nil, geom.Red)
	dst.FillRect(nil, geom.Green)
	if _, err := src.ColorKey(); err == nil {
		t.Fatal("surface without key must report an error")
	}
	if err := src.SetColorKeyColor(geom.Red); err != nil {
		t.Fatal(err)
	}
	if err := src.BlitOn(dst, nil, nil); err != nil {
		t.Fatal(err)
	}
	if c := pixelAt(t, dst, 0, 0); c != geom.Green {
		t.Fatalf("keyed pixel copied: %v", c)
	}

	if err := src.DisableColorKey(); err != nil {
		t.Fatal(err)
	}
	at := geom.R(1, 1, 0, 0)
	if err := src.BlitOn(dst, &geom.Rect{W: 1, H: 1}, &at); err != nil {
		t.Fatal(err)
	}
	if pixelAt(t, dst, 1, 1) != geom.Red || pixelAt(t, dst, 0, 0) != geom.Green {
		t.Fatal("blit landed in the wrong place")
	}

	// Blits fail while a surface is locked.
	lock, err := dst.Lock()
	if err != nil {
		t.Fatal(err)
	}
	if err := src.BlitOn(dst, nil, nil); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}
	lock.Unlock()
	checkNoViolations(t, f)
}

func TestSurfaceClip(t *testing.T) {
	_, sys := newSystem(t)
	s := newSurface(t, sys, 4, 4)
	defer s.Close()

	if !s.SetClipRect(&geom.Rect{W: 2, H: 2}) {
		t.Fatal("clip should intersect")
	}
	if s.ClipRect() != geom.R(0, 0, 2, 2) {
		t.Fatalf("clip = %v", s.ClipRect())
	}
	s.FillRect(nil, geom.White)
	if pixelAt(t, s, 1, 1) != geom.White {
		t.Fatal("inside clip not filled")
	}
	if pixelAt(t, s, 3, 3) == geom.White {
		t.Fatal("outside clip filled")
	}
	if s.SetClipRect(&geom.Rect{X: 10, Y: 10, W: 1, H: 1}) {
		t.Fatal("clip outside the surface must report false")
	}
	s.SetClipRect(nil)
	if s.ClipRect() != geom.R(0, 0, 4, 4) {
		t.Fatal("nil clip must reset")
	}
}

func TestSurfaceLockReentry(t *testing.T) {
	f, sys := newSystem(t)
	s := newSurface(t, sys, 2, 2)

	lock, err := s.Lock()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Lock(); !errors.Is(err, resource.ErrReentrantLock) {
		t.Fatalf("err = %v", err)
	}
	lock.Unlock()

	lock, err = s.Lock()
	if err != nil {
		t.Fatal(err)
	}
	if len(lock.Bytes()) != 2*8 {
		t.Fatalf("bytes = %d", len(lock.Bytes()))
	}
	if _, err := lock.At(2, 0); !errors.Is(err, resource.ErrOutOfBounds) {
		t.Fatalf("err = %v", err)
	}
	h := uintptr(s.Handle())
	s.Close()
	if f.ReleaseCount(nativetest.KindSurface, h) != 1 {
		t.Fatal("surface not freed")
	}
	expectPanic[*resource.UseAfterReleaseError](t, func() { lock.At(0, 0) })
	checkNoViolations(t, f)
}

func TestSurfaceConvertAndImage(t *testing.T) {
	f, sys := newSystem(t)
	s := newSurface(t, sys, 3, 2)
	defer s.Close()
	s.FillRect(nil, geom.Color{R: 1, G: 2, B: 3, A: 4})

	conv, err := s.Convert(native.PixelFormatABGR8888)
	if err != nil {
		t.Fatal(err)
	}
	defer conv.Close()
	if conv.Format() != native.PixelFormatABGR8888 {
		t.Fatal("format not converted")
	}
	if c := pixelAt(t, conv, 2, 1); c != (geom.Color{R: 1, G: 2, B: 3, A: 4}) {
		t.Fatalf("pixel = %v", c)
	}

	before := len(f.Released(nativetest.KindSurface))
	img, err := s.Image()
	if err != nil {
		t.Fatal(err)
	}
	if img.RGBAAt(2, 1) != (color.RGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Fatalf("image pixel = %v", img.RGBAAt(2, 1))
	}
	if len(f.Released(nativetest.KindSurface)) != before+1 {
		t.Fatal("temporary conversion not freed")
	}

	f.Fail("ConvertSurfaceFormat", "Unknown pixel format")
	if _, err := s.ConvertTo(conv); !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("err = %v", err)
	}
}

func TestSurfaceBMPRoundTrip(t *testing.T) {
	_, sys := newSystem(t)
	s := newSurface(t, sys, 2, 2)
	defer s.Close()
	s.FillRect(nil, geom.Yellow)

	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := s.SaveBMP(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadBMP(sys, path)
	if err != nil {
		t.Fatal(err)
	}
	defer loaded.Close()
	if pixelAt(t, loaded, 1, 1) != geom.Yellow {
		t.Fatal("round trip lost pixels")
	}
}

func TestImageHelpers(t *testing.T) {
	f, sys := newSystem(t)

	src := image.NewNRGBA(image.Rect(10, 10, 13, 12))
	src.Set(12, 11, color.NRGBA{R: 0xff, G: 0x80, A: 0xff})

	s, err := SurfaceFromImage(sys, src)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if w, h := s.Size(); w != 3 || h != 2 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if c := pixelAt(t, s, 2, 1); c != (geom.Color{R: 0xff, G: 0x80, A: 0xff}) {
		t.Fatalf("pixel = %v", c)
	}

	path := filepath.Join(t.TempDir(), "img.png")
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(out, src); err != nil {
		t.Fatal(err)
	}
	out.Close()

	loaded, err := LoadImage(sys, path)
	if err != nil {
		t.Fatal(err)
	}
	defer loaded.Close()
	if c := pixelAt(t, loaded, 2, 1); c.R != 0xff || c.G != 0x80 {
		t.Fatalf("decoded pixel = %v", c)
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	os.WriteFile(bad, []byte("not an image"), 0o644)
	if _, err := LoadImage(sys, bad); !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("err = %v", err)
	}

	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()
	tex, err := r.TextureFromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Close()
	if mode, _ := tex.BlendMode(); mode != native.BlendModeBlend {
		t.Fatal("image textures blend")
	}
	obj := f.Object(uintptr(tex.Handle()))
	if obj.Pixels[1*12+2*4] != 0xff || obj.Pixels[1*12+2*4+1] != 0x80 {
		t.Fatalf("texture pixels = %v", obj.Pixels)
	}
}
