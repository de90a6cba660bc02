package nativetest

import (
	"unicode/utf8"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
)

func (f *Fake) AddTimer(interval uint32, cb native.TimerCallback) native.TimerID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("AddTimer") {
		return 0
	}
	f.nextTimer++
	f.timers[f.nextTimer] = timer{interval: interval, cb: cb}
	return f.nextTimer
}

func (f *Fake) RemoveTimer(id native.TimerID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.timers[id]; !ok {
		return false
	}
	delete(f.timers, id)
	f.released[KindTimer] = append(f.released[KindTimer], uintptr(id))
	return true
}

// Delay advances the fake clock without sleeping.
func (f *Fake) Delay(ms uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticks += uint64(ms)
}

func (f *Fake) GetTicks() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint32(f.ticks)
}

// GetPerformanceCounter counts microseconds of fake time.
func (f *Fake) GetPerformanceCounter() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ticks * 1000
}

func (f *Fake) GetPerformanceFrequency() uint64 { return 1000000 }

func (f *Fake) LoadObject(name string) native.Object {
	f.mu.Lock()
	defer f.mu.Unlock()
	syms, ok := f.libraries[name]
	if !ok {
		f.err = name + ": cannot open shared object file: No such file or directory"
		return 0
	}
	o := f.create(KindObject, 0)
	o.Title = name
	o.Symbols = syms
	return native.Object(o.Handle)
}

func (f *Fake) LoadFunction(obj native.Object, name string) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.get("LoadFunction", KindObject, uintptr(obj))
	if o == nil {
		return 0
	}
	addr, ok := o.Symbols[name]
	if !ok {
		f.err = "Failed loading " + name + ": undefined symbol: " + name
		return 0
	}
	return addr
}

func (f *Fake) UnloadObject(obj native.Object) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release("UnloadObject", KindObject, uintptr(obj))
}

// TTF

func (f *Fake) TTFInit() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("TTFInit") {
		return -1
	}
	f.ttfInit++
	return 0
}

func (f *Fake) TTFQuit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ttfInit > 0 {
		f.ttfInit--
	}
}

func (f *Fake) TTFWasInit() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ttfInit
}

// OpenFont succeeds for any file name unless OpenFont is set to fail. Glyphs
// are half the point size wide.
func (f *Fake) OpenFont(file string, ptsize int32) native.Font {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ttfInit == 0 {
		f.err = "Library not initialized"
		return 0
	}
	if f.failing("OpenFont") {
		return 0
	}
	o := f.create(KindFont, 0)
	o.Title = file
	o.Size = ptsize
	return native.Font(o.Handle)
}

func (f *Fake) CloseFont(font native.Font) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release("CloseFont", KindFont, uintptr(font))
}

func (f *Fake) font(op string, font native.Font) *Object {
	return f.get(op, KindFont, uintptr(font))
}

func (f *Fake) metric(op string, font native.Font, m func(size int32) int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.font(op, font); o != nil {
		return m(o.Size)
	}
	return 0
}

func (f *Fake) FontHeight(font native.Font) int32 {
	return f.metric("FontHeight", font, func(s int32) int32 { return s + s/4 })
}

func (f *Fake) FontAscent(font native.Font) int32 {
	return f.metric("FontAscent", font, func(s int32) int32 { return s })
}

func (f *Fake) FontDescent(font native.Font) int32 {
	return f.metric("FontDescent", font, func(s int32) int32 { return -s / 4 })
}

func (f *Fake) FontLineSkip(font native.Font) int32 {
	return f.metric("FontLineSkip", font, func(s int32) int32 { return s + s/4 + 1 })
}

func (f *Fake) GetFontStyle(font native.Font) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.font("GetFontStyle", font); o != nil {
		return o.Style
	}
	return 0
}

func (f *Fake) SetFontStyle(font native.Font, style int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.font("SetFontStyle", font); o != nil {
		o.Style = style
	}
}

func (f *Fake) SizeUTF8(font native.Font, text string) (w, h, status int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.font("SizeUTF8", font)
	if o == nil || f.failing("SizeUTF8") {
		return 0, 0, -1
	}
	return int32(utf8.RuneCountInString(text)) * (o.Size / 2), o.Size + o.Size/4, 0
}

// RenderUTF8Blended returns an ARGB8888 surface filled with fg.
func (f *Fake) RenderUTF8Blended(font native.Font, text string, fg geom.Color) native.Surface {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.font("RenderUTF8Blended", font)
	if o == nil || f.failing("RenderUTF8Blended") {
		return 0
	}
	if text == "" {
		f.err = "Text has zero width"
		return 0
	}
	w := int32(utf8.RuneCountInString(text)) * (o.Size / 2)
	h := o.Size + o.Size/4
	s := f.newSurface(w, h, native.PixelFormatARGB8888)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			setPixel(s, x, y, fg)
		}
	}
	return native.Surface(s.Handle)
}
