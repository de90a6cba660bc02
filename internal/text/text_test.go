package text

import (
	"errors"
	"image/color"
	"testing"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/native/nativetest"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
	"github.com/tinyrange/gosdl/internal/video"
)

func newEngine(t *testing.T) (*nativetest.Fake, *Engine) {
	t.Helper()
	f := nativetest.New()
	sys, err := sdl.Init(f, native.InitVideo)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(sys.Close)
	e, err := Init(sys, f)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return f, e
}

func openFont(t *testing.T, e *Engine) *Font {
	t.Helper()
	font, err := e.Open("mono.ttf", 16)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(font.Close)
	return font
}

func TestEngineLifecycle(t *testing.T) {
	f := nativetest.New()
	sys, err := sdl.Init(f, native.InitVideo)
	if err != nil {
		t.Fatal(err)
	}
	defer sys.Close()

	e, err := Init(sys, f)
	if err != nil {
		t.Fatal(err)
	}
	if f.TTFWasInit() != 1 {
		t.Fatal("TTF_Init not called")
	}
	font, err := e.Open("mono.ttf", 12)
	if err != nil {
		t.Fatal(err)
	}

	e.Close()
	e.Close()
	if f.TTFWasInit() != 0 {
		t.Fatal("TTF_Quit must run once")
	}
	defer func() {
		if _, ok := recover().(*resource.ParentReleasedError); !ok {
			t.Fatal("font used after engine close must panic")
		}
		font.Close()
	}()
	font.Height()
}

func TestInitFailure(t *testing.T) {
	f := nativetest.New()
	sys, err := sdl.Init(f, native.InitVideo)
	if err != nil {
		t.Fatal(err)
	}
	defer sys.Close()
	f.Fail("TTFInit", "FreeType init failed")

	e, err := Init(sys, f)
	if e != nil || err == nil || err.Error() != "TTF_Init failed: FreeType init failed" {
		t.Fatalf("engine = %v, err = %v", e, err)
	}
}

func TestFontMetrics(t *testing.T) {
	f, e := newEngine(t)
	font := openFont(t, e)

	if font.Path() != "mono.ttf" || font.PointSize() != 16 {
		t.Fatal("font identity")
	}
	if font.Height() != 20 || font.Ascent() != 16 || font.Descent() != -4 || font.LineSkip() != 21 {
		t.Fatalf("metrics = %d %d %d %d", font.Height(), font.Ascent(), font.Descent(), font.LineSkip())
	}

	font.SetStyle(native.FontStyleBold | native.FontStyleItalic)
	if font.Style() != native.FontStyleBold|native.FontStyleItalic {
		t.Fatalf("style = %#x", font.Style())
	}

	// "e" followed by a combining acute accent composes to a single rune.
	w, h, err := font.Size("héllo")
	if err != nil || w != 5*8 || h != 20 {
		t.Fatalf("size = %dx%d, %v", w, h, err)
	}

	f.Fail("SizeUTF8", "Text has zero width")
	if _, _, err := font.Size("x"); !errors.Is(err, resource.ErrSubsystemOperation) {
		t.Fatalf("err = %v", err)
	}
}

func TestFontRender(t *testing.T) {
	f, e := newEngine(t)
	font := openFont(t, e)

	s, err := font.Render("hi", geom.Color{R: 0xff, A: 0xff})
	if err != nil {
		t.Fatal(err)
	}
	if s.Width() != 16 || s.Height() != 20 {
		t.Fatalf("surface = %dx%d", s.Width(), s.Height())
	}
	img, err := s.Image()
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(3, 3); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("pixel = %v", got)
	}
	h := uintptr(s.Handle())
	s.Close()
	if f.ReleaseCount(nativetest.KindSurface, h) != 1 {
		t.Fatal("rendered surface must be freed once")
	}

	_, err = font.Render("", geom.Color{A: 0xff})
	var ce *resource.CreationError
	if !errors.As(err, &ce) || ce.Op != "TTF_RenderUTF8_Blended" || ce.Diagnostic != "Text has zero width" {
		t.Fatalf("err = %v", err)
	}
}

func TestFontClose(t *testing.T) {
	f, e := newEngine(t)
	font, err := e.Open("mono.ttf", 10)
	if err != nil {
		t.Fatal(err)
	}
	moved := font.Move()
	font.Close()
	moved.Close()
	moved.Close()
	if got := f.Released(nativetest.KindFont); len(got) != 1 {
		t.Fatalf("released = %v", got)
	}

	f.Fail("OpenFont", "Couldn't open mono.ttf")
	if _, err := e.Open("mono.ttf", 10); !errors.Is(err, resource.ErrResourceCreation) {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenByNameMissing(t *testing.T) {
	_, e := newEngine(t)
	_, err := e.OpenByName("no-such-font-f7a1c2.ttf", 12)
	var ce *resource.CreationError
	if !errors.As(err, &ce) || ce.Op != "findfont.Find" || ce.Resource != KindFont {
		t.Fatalf("err = %v", err)
	}
}

func newVideoRenderer(t *testing.T, e *Engine) *video.Renderer {
	t.Helper()
	w, err := video.NewWindow(e.sys, "text", 320, 240, 0)
	if err != nil {
		t.Fatal(err)
	}
	r, err := w.NewRenderer(-1, native.RendererAccelerated)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r
}

func TestRendererCache(t *testing.T) {
	f, e := newEngine(t)
	font := openFont(t, e)
	r := newVideoRenderer(t, e)

	tr := NewRenderer(r, font)
	white := geom.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	next, err := tr.Draw("ab\n\tcd", 10, 10, white)
	if err != nil {
		t.Fatal(err)
	}
	if next != 10+6*8 {
		t.Fatalf("next = %d", next)
	}
	if tr.Cached() != 2 {
		t.Fatalf("cached = %d", tr.Cached())
	}
	if _, err := tr.Draw("ab", 0, 0, white); err != nil {
		t.Fatal(err)
	}
	if tr.Cached() != 2 {
		t.Fatal("same string and color must hit the cache")
	}
	if _, err := tr.Draw("ab", 0, 0, geom.Color{A: 0xff}); err != nil {
		t.Fatal(err)
	}
	font.SetStyle(native.FontStyleUnderline)
	if _, err := tr.Draw("ab", 0, 0, white); err != nil {
		t.Fatal(err)
	}
	if tr.Cached() != 4 {
		t.Fatalf("cached = %d", tr.Cached())
	}

	ops := f.Object(uintptr(r.Handle())).Ops
	if len(ops) != 5 {
		t.Fatalf("ops = %v", ops)
	}

	w, h, err := tr.Measure("ab\ncdef")
	if err != nil || w != 32 || h != 21+20 {
		t.Fatalf("measure = %dx%d, %v", w, h, err)
	}

	tr.Close()
	if tr.Cached() != 0 || len(f.Live(nativetest.KindTexture)) != 0 {
		t.Fatal("close must destroy cached textures")
	}
	if len(f.Live(nativetest.KindSurface)) != 0 {
		t.Fatal("intermediate surfaces leaked")
	}
}

func TestRendererFlushesWhenFull(t *testing.T) {
	_, e := newEngine(t)
	font := openFont(t, e)
	tr := NewRenderer(newVideoRenderer(t, e), font)
	defer tr.Close()

	for i := 0; i <= MaxCached; i++ {
		if _, err := tr.Texture(string(rune('A'+i%26))+string(rune('a'+i/26)), geom.Color{A: 0xff}); err != nil {
			t.Fatal(err)
		}
	}
	if tr.Cached() != 1 {
		t.Fatalf("cached = %d", tr.Cached())
	}
}
