package video

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/native/nativetest"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

func newRenderer(t *testing.T, sys *sdl.System) (*Window, *Renderer) {
	t.Helper()
	w := newWindow(t, sys, 0)
	r, err := w.NewRenderer(-1, native.RendererAccelerated)
	if err != nil {
		t.Fatal(err)
	}
	return w, r
}

func TestRendererDrawing(t *testing.T) {
	f, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()

	if err := r.ClearWith(geom.Blue); err != nil {
		t.Fatal(err)
	}
	if c, err := r.DrawColor(); err != nil || c != geom.Blue {
		t.Fatalf("draw color = %v, %v", c, err)
	}
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 10), geom.Pt(20, 0)}
	steps := []func() error{
		func() error { return r.DrawLine(geom.Pt(0, 0), geom.Pt(5, 5)) },
		func() error { return r.DrawLines(pts) },
		func() error { return r.DrawRay(geom.Pt(1, 1), geom.Pt(3, 0)) },
		func() error { return r.DrawPoint(geom.Pt(2, 2)) },
		func() error { return r.DrawPoints(pts) },
		func() error { return r.DrawRect(geom.R(0, 0, 4, 4)) },
		func() error { return r.DrawRects([]geom.Rect{geom.R(0, 0, 1, 1)}) },
		func() error { return r.FillRect(nil) },
		func() error { return r.FillRects([]geom.Rect{geom.R(0, 0, 1, 1), geom.R(1, 1, 1, 1)}) },
		func() error { return r.DrawCircle(geom.Pt(50, 50), 1) },
		func() error { return r.FillCircle(geom.Pt(50, 50), 3) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	r.Present()

	want := []string{"clear", "line", "lines:3", "line", "point", "points:3", "rect", "rects:1", "fill", "fills:2", "points:8", "fills:7", "present"}
	got := f.Object(uintptr(r.Handle())).Ops
	if len(got) != len(want) {
		t.Fatalf("ops = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ops = %v, want %v", got, want)
		}
	}
	checkNoViolations(t, f)
}

func TestRendererFailure(t *testing.T) {
	f, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()

	f.Fail("RenderClear", "Renderer lost")
	err := r.Clear()
	if err == nil || err.Error() != "SDL_RenderClear failed: Renderer lost" {
		t.Fatalf("err = %v", err)
	}

	f.Fail("CreateRenderer", "Couldn't find matching render driver")
	if r2, err := w.NewRenderer(-1, 0); r2 != nil || !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("renderer = %v, err = %v", r2, err)
	}
}

func TestRendererClipAndScale(t *testing.T) {
	_, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()

	if r.ClipEnabled() {
		t.Fatal("clip enabled by default")
	}
	if err := r.SetClipRect(geom.R(1, 2, 3, 4)); err != nil {
		t.Fatal(err)
	}
	if !r.ClipEnabled() || r.ClipRect() != geom.R(1, 2, 3, 4) {
		t.Fatalf("clip = %v", r.ClipRect())
	}
	if err := r.DisableClip(); err != nil {
		t.Fatal(err)
	}
	if r.ClipEnabled() {
		t.Fatal("clip still enabled")
	}
	if err := r.SetIntegerScale(true); err != nil || !r.IntegerScale() {
		t.Fatal("integer scale")
	}
	width, height, err := r.OutputSize()
	if err != nil || width != 320 || height != 240 {
		t.Fatalf("output = %dx%d, %v", width, height, err)
	}
}

func TestRendererReadPixels(t *testing.T) {
	_, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()

	r.ClearWith(geom.Color{R: 10, G: 20, B: 30, A: 0xff})
	img, err := r.ReadPixels(nil)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if c := img.RGBAAt(100, 100); c != (color.RGBA{R: 10, G: 20, B: 30, A: 0xff}) {
		t.Fatalf("pixel = %v", c)
	}

	part, err := r.ReadPixels(&geom.Rect{X: 5, Y: 5, W: 2, H: 3})
	if err != nil || part.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("part = %v, %v", part.Bounds(), err)
	}
}

func TestTextureLifecycle(t *testing.T) {
	f, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()

	tex, err := r.NewTexture(native.PixelFormatARGB8888, native.TextureAccessStreaming, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Format() != native.PixelFormatARGB8888 || tex.Access() != native.TextureAccessStreaming {
		t.Fatal("query results not cached")
	}
	if width, height := tex.Size(); width != 8 || height != 4 {
		t.Fatalf("size = %dx%d", width, height)
	}

	if err := tex.SetColorAlphaMod(geom.Color{R: 1, G: 2, B: 3, A: 4}); err != nil {
		t.Fatal(err)
	}
	if c, err := tex.ColorAlphaMod(); err != nil || c != (geom.Color{R: 1, G: 2, B: 3, A: 4}) {
		t.Fatalf("mod = %v, %v", c, err)
	}
	if err := tex.SetBlendMode(native.BlendModeAdd); err != nil {
		t.Fatal(err)
	}
	if m, _ := tex.BlendMode(); m != native.BlendModeAdd {
		t.Fatalf("blend = %d", m)
	}
	if err := r.Copy(tex, nil, &geom.Rect{W: 8, H: 4}); err != nil {
		t.Fatal(err)
	}

	h := uintptr(tex.Handle())
	moved := tex.Move()
	moved.Close()
	tex.Close()
	if f.ReleaseCount(nativetest.KindTexture, h) != 1 {
		t.Fatal("texture must be destroyed exactly once")
	}
	checkNoViolations(t, f)
}

func TestTextureCreationFailures(t *testing.T) {
	f, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()

	if _, err := r.NewTexture(native.PixelFormatARGB8888, native.TextureAccessStatic, 0, 0); !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("err = %v", err)
	}

	// A texture whose format query fails is destroyed before the error returns.
	f.Fail("QueryTexture", "Invalid texture")
	tex, err := r.NewTexture(native.PixelFormatARGB8888, native.TextureAccessStatic, 2, 2)
	if tex != nil {
		t.Fatal("expected nil texture")
	}
	var ce *resource.CreationError
	if !errors.As(err, &ce) || ce.Op != "SDL_QueryTexture" {
		t.Fatalf("err = %v", err)
	}
	if len(f.Released(nativetest.KindTexture)) != 1 {
		t.Fatalf("released = %v", f.Released(nativetest.KindTexture))
	}
	if len(f.Live(nativetest.KindTexture)) != 0 {
		t.Fatal("partial texture leaked")
	}
}

func TestTextureLock(t *testing.T) {
	f, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()

	tex, err := r.NewTexture(native.PixelFormatARGB8888, native.TextureAccessStreaming, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Close()

	lock, err := tex.Lock(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tex.Lock(nil); !errors.Is(err, resource.ErrReentrantLock) {
		t.Fatalf("second lock err = %v", err)
	}
	if err := lock.SetPixel(3, 3, geom.Red); err != nil {
		t.Fatal(err)
	}
	if c, err := lock.PixelAt(3, 3); err != nil || c != geom.Red {
		t.Fatalf("pixel = %v, %v", c, err)
	}
	var be *resource.BoundsError
	if err := lock.SetPixel(4, 0, geom.Red); !errors.As(err, &be) || be.X != 4 || be.Width != 4 {
		t.Fatalf("bounds err = %v", err)
	}
	if _, err := lock.Row(-1); !errors.Is(err, resource.ErrOutOfBounds) {
		t.Fatalf("row err = %v", err)
	}
	lock.Unlock()
	lock.Unlock()
	expectPanic[*resource.UseAfterReleaseError](t, func() { lock.Bytes() })

	obj := f.Object(uintptr(tex.Handle()))
	if obj.Locked {
		t.Fatal("native texture still locked")
	}
	if v := obj.Pixels[3*obj.Pitch+3*4+2]; v != 0xff {
		t.Fatalf("red byte = %#x", v)
	}

	err = tex.WithLock(&geom.Rect{X: 1, Y: 1, W: 2, H: 2}, func(l *TextureLock) error {
		if l.Width() != 2 || l.Height() != 2 || l.Pitch() != 16 || l.BytesPerPixel() != 4 {
			t.Fatalf("view = %dx%d pitch %d", l.Width(), l.Height(), l.Pitch())
		}
		return l.Set(0, 0, 0xdeadbeef)
	})
	if err != nil {
		t.Fatal(err)
	}
	if raw := obj.Pixels[1*16+1*4]; raw != 0xef {
		t.Fatalf("byte = %#x", raw)
	}

	// A panic inside WithLock still unlocks.
	func() {
		defer func() { recover() }()
		tex.WithLock(nil, func(*TextureLock) error { panic("boom") })
	}()
	if _, err := tex.Lock(nil); err != nil {
		t.Fatalf("lock after panic: %v", err)
	}
	// Close with a live lock unlocks before destroying.
	tex.Close()
	if len(f.Live(nativetest.KindTexture)) != 0 {
		t.Fatal("texture not destroyed")
	}
	checkNoViolations(t, f)
}

func TestStaticTextureCannotLock(t *testing.T) {
	_, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()

	tex, err := r.NewTexture(native.PixelFormatARGB8888, native.TextureAccessStatic, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Close()
	if _, err := tex.Lock(nil); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}
	if _, err := tex.Lock(nil); errors.Is(err, resource.ErrReentrantLock) {
		t.Fatal("failed lock must not leave the texture marked locked")
	}
}

func TestTextureUpdate(t *testing.T) {
	f, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()
	defer r.Close()

	tex, err := r.NewTexture(native.PixelFormatRGBA32, native.TextureAccessStatic, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Close()

	if err := tex.Update(nil, make([]byte, 4), 8); err == nil {
		t.Fatal("short buffer must fail")
	}
	pix := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if err := tex.Update(nil, pix, 8); err != nil {
		t.Fatal(err)
	}
	if got := f.Object(uintptr(tex.Handle())).Pixels; got[15] != 16 {
		t.Fatalf("pixels = %v", got)
	}
}

func TestTextureClosedAfterRenderer(t *testing.T) {
	f, sys := newSystem(t)
	w, r := newRenderer(t, sys)
	defer w.Close()

	tex, err := r.NewTexture(native.PixelFormatARGB8888, native.TextureAccessStreaming, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	r.Close()
	tex.Close()

	if got := f.Released(nativetest.KindTexture); len(got) != 0 {
		t.Fatalf("texture freed with its renderer was destroyed again: %v", got)
	}
	if tex.Valid() {
		t.Fatal("texture must be empty after close")
	}
	checkNoViolations(t, f)
}

func TestCircleSpansLargeRadius(t *testing.T) {
	const radius = 50000
	spans := circleSpans(geom.Pt(0, 0), radius)
	if len(spans) != 2*radius+1 {
		t.Fatalf("got %d spans", len(spans))
	}
	if mid := spans[radius]; mid.W != 2*radius+1 || mid.X != -radius || mid.Y != 0 {
		t.Fatalf("middle span = %+v", mid)
	}
	for i, s := range spans {
		if s.W < 1 || s.W > 2*radius+1 || s.H != 1 {
			t.Fatalf("span %d = %+v", i, s)
		}
	}
	if top := spans[0]; top.W != 1 || top.Y != -radius {
		t.Fatalf("top span = %+v", top)
	}
}
