//go:build linux || darwin || windows

package native

import "github.com/tinyrange/gosdl/internal/geom"

// colorBytes packs an SDL_Color so its bytes land in R, G, B, A order.
var colorBytes = geom.Packed32{RShift: 0, GShift: 8, BShift: 16, AShift: 24, HasAlpha: true}

type ttfLib struct {
	handle uintptr

	init         func() int32
	quit         func()
	wasInit      func() int32
	openFont     func(string, int32) Font
	closeFont    func(Font)
	fontHeight   func(Font) int32
	fontAscent   func(Font) int32
	fontDescent  func(Font) int32
	fontLineSkip func(Font) int32
	getFontStyle func(Font) int32
	setFontStyle func(Font, int32)
	sizeUTF8     func(Font, string, *int32, *int32) int32

	// SDL_Color is passed by value; four bytes fit one integer register.
	renderUTF8Blended func(Font, string, uint32) Surface
}

// LoadTTF opens the SDL2_ttf shared library. SDL2 must already be loaded
// because SDL2_ttf links against it.
func LoadTTF(path string) (TTF, error) {
	handle, name, err := open(path, ttfLibraryNames)
	if err != nil {
		return nil, err
	}
	t := &ttfLib{handle: handle}
	b := &binder{lib: name, handle: handle}

	b.bind(&t.init, "TTF_Init")
	b.bind(&t.quit, "TTF_Quit")
	b.bind(&t.wasInit, "TTF_WasInit")
	b.bind(&t.openFont, "TTF_OpenFont")
	b.bind(&t.closeFont, "TTF_CloseFont")
	b.bind(&t.fontHeight, "TTF_FontHeight")
	b.bind(&t.fontAscent, "TTF_FontAscent")
	b.bind(&t.fontDescent, "TTF_FontDescent")
	b.bind(&t.fontLineSkip, "TTF_FontLineSkip")
	b.bind(&t.getFontStyle, "TTF_GetFontStyle")
	b.bind(&t.setFontStyle, "TTF_SetFontStyle")
	b.bind(&t.sizeUTF8, "TTF_SizeUTF8")
	b.bind(&t.renderUTF8Blended, "TTF_RenderUTF8_Blended")

	if b.err != nil {
		_ = closeLibrary(handle)
		return nil, b.err
	}
	return t, nil
}

func (t *ttfLib) TTFInit() int32                          { return t.init() }
func (t *ttfLib) TTFQuit()                                { t.quit() }
func (t *ttfLib) TTFWasInit() int32                       { return t.wasInit() }
func (t *ttfLib) OpenFont(file string, ptsize int32) Font { return t.openFont(file, ptsize) }
func (t *ttfLib) CloseFont(f Font)                        { t.closeFont(f) }
func (t *ttfLib) FontHeight(f Font) int32                 { return t.fontHeight(f) }
func (t *ttfLib) FontAscent(f Font) int32                 { return t.fontAscent(f) }
func (t *ttfLib) FontDescent(f Font) int32                { return t.fontDescent(f) }
func (t *ttfLib) FontLineSkip(f Font) int32               { return t.fontLineSkip(f) }
func (t *ttfLib) GetFontStyle(f Font) int32               { return t.getFontStyle(f) }
func (t *ttfLib) SetFontStyle(f Font, style int32)        { t.setFontStyle(f, style) }

func (t *ttfLib) SizeUTF8(f Font, text string) (w, h, status int32) {
	status = t.sizeUTF8(f, text, &w, &h)
	return
}

func (t *ttfLib) RenderUTF8Blended(f Font, text string, fg geom.Color) Surface {
	return t.renderUTF8Blended(f, text, fg.Pack(colorBytes))
}
