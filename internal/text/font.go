package text

import (
	"golang.org/x/text/unicode/norm"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/video"
)

// Font owns a TTF_Font. Text is NFC-normalised before it reaches SDL2_ttf so
// that decomposed input renders with precomposed glyphs.
type Font struct {
	eng  *Engine
	path string
	size int
	h    *resource.Unique[native.Font]
}

func (f *Font) handle(op string) native.Font { return f.h.Get(op) }

func (f *Font) Handle() native.Font { return f.h.Raw() }
func (f *Font) Valid() bool         { return f.h.Valid() }
func (f *Font) Path() string        { return f.path }
func (f *Font) PointSize() int      { return f.size }

func (f *Font) Move() *Font {
	return &Font{eng: f.eng, path: f.path, size: f.size, h: f.h.Move()}
}

func (f *Font) Close() { f.h.Close() }

// Height is the maximum pixel height of any glyph.
func (f *Font) Height() int32 { return f.eng.ttf.FontHeight(f.handle("TTF_FontHeight")) }

func (f *Font) Ascent() int32 { return f.eng.ttf.FontAscent(f.handle("TTF_FontAscent")) }

// Descent is negative for glyphs that reach below the baseline.
func (f *Font) Descent() int32 { return f.eng.ttf.FontDescent(f.handle("TTF_FontDescent")) }

// LineSkip is the recommended distance between two baselines.
func (f *Font) LineSkip() int32 { return f.eng.ttf.FontLineSkip(f.handle("TTF_FontLineSkip")) }

// Style returns a mask of native.FontStyle* bits.
func (f *Font) Style() int32 { return f.eng.ttf.GetFontStyle(f.handle("TTF_GetFontStyle")) }

func (f *Font) SetStyle(style int32) {
	f.eng.ttf.SetFontStyle(f.handle("TTF_SetFontStyle"), style)
}

// Size returns the dimensions s would have when rendered.
func (f *Font) Size(s string) (w, h int32, err error) {
	fh := f.handle("TTF_SizeUTF8")
	w, h, status := f.eng.ttf.SizeUTF8(fh, norm.NFC.String(s))
	if status < 0 {
		return 0, 0, f.eng.sys.Fail("TTF_SizeUTF8")
	}
	return w, h, nil
}

// Render draws s in c onto a new ARGB surface. Empty strings fail because
// SDL2_ttf cannot create a zero-width surface.
func (f *Font) Render(s string, c geom.Color) (*video.Surface, error) {
	fh := f.handle("TTF_RenderUTF8_Blended")
	sh := f.eng.ttf.RenderUTF8Blended(fh, norm.NFC.String(s), c)
	if sh == 0 {
		return nil, f.eng.sys.CreationFailed(video.KindSurface, "TTF_RenderUTF8_Blended")
	}
	return video.AdoptSurface(f.eng.sys, sh, resource.Owned), nil
}
