package nativetest

import (
	"encoding/binary"
	"os"
	"unsafe"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
)

func (f *Fake) newSurface(w, h int32, format uint32) *Object {
	o := f.create(KindSurface, 0)
	o.Format, o.W, o.H = format, w, h
	o.Pitch = (w*int32(native.BytesPerPixel(format)) + 3) &^ 3
	o.Pixels = make([]byte, o.Pitch*h)
	o.Clip = geom.R(0, 0, w, h)
	o.ColorMod = [3]uint8{0xff, 0xff, 0xff}
	o.AlphaMod = 0xff
	return o
}

func (f *Fake) CreateRGBSurfaceWithFormat(flags uint32, w, h, depth int32, format uint32) native.Surface {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing("CreateRGBSurfaceWithFormat") {
		return 0
	}
	if w < 0 || h < 0 {
		f.err = "Parameter 'width' is invalid"
		return 0
	}
	if native.IsFourCC(format) {
		f.err = "Unsupported pixel format"
		return 0
	}
	return native.Surface(f.newSurface(w, h, format).Handle)
}

func (f *Fake) FreeSurface(s native.Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release("FreeSurface", KindSurface, uintptr(s))
}

func (f *Fake) surface(op string, s native.Surface) *Object {
	return f.get(op, KindSurface, uintptr(s))
}

func (f *Fake) SurfaceInfo(s native.Surface) native.SurfaceInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.surface("SurfaceInfo", s)
	if o == nil {
		return native.SurfaceInfo{}
	}
	info := native.SurfaceInfo{Format: o.Format, W: o.W, H: o.H, Pitch: o.Pitch}
	if len(o.Pixels) > 0 {
		info.Pixels = unsafe.Pointer(&o.Pixels[0])
	}
	return info
}

func (f *Fake) LockSurface(s native.Surface) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.surface("LockSurface", s)
	if o == nil || f.failing("LockSurface") {
		return -1
	}
	o.Locked = true
	return 0
}

func (f *Fake) UnlockSurface(s native.Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.surface("UnlockSurface", s); o != nil {
		o.Locked = false
	}
}

// pixel reads the color at x, y of a 32-bit surface.
func pixel(o *Object, x, y int32) (geom.Color, bool) {
	l, ok := native.PackedLayout(o.Format)
	if !ok {
		return geom.Color{}, false
	}
	off := y*o.Pitch + x*4
	return geom.Unpack(binary.LittleEndian.Uint32(o.Pixels[off:]), l), true
}

func setPixel(o *Object, x, y int32, c geom.Color) bool {
	l, ok := native.PackedLayout(o.Format)
	if !ok {
		return false
	}
	off := y*o.Pitch + x*4
	binary.LittleEndian.PutUint32(o.Pixels[off:], c.Pack(l))
	return true
}

func (f *Fake) ConvertSurfaceFormat(s native.Surface, format uint32) native.Surface {
	f.mu.Lock()
	defer f.mu.Unlock()
	src := f.surface("ConvertSurfaceFormat", s)
	if src == nil || f.failing("ConvertSurfaceFormat") {
		return 0
	}
	if _, ok := native.PackedLayout(format); !ok {
		f.err = "Unsupported pixel format"
		return 0
	}
	if _, ok := native.PackedLayout(src.Format); !ok && src.W*src.H > 0 {
		f.err = "Unsupported pixel format"
		return 0
	}
	dst := f.newSurface(src.W, src.H, format)
	for y := int32(0); y < src.H; y++ {
		for x := int32(0); x < src.W; x++ {
			c, _ := pixel(src, x, y)
			setPixel(dst, x, y, c)
		}
	}
	return native.Surface(dst.Handle)
}

func (f *Fake) BlitSurface(src native.Surface, srcRect *geom.Rect, dst native.Surface, dstRect *geom.Rect) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	so := f.surface("BlitSurface", src)
	do := f.surface("BlitSurface", dst)
	if so == nil || do == nil || f.failing("BlitSurface") {
		return -1
	}
	if so.Locked || do.Locked {
		f.err = "Surfaces must not be locked during blit"
		return -1
	}
	sr := geom.R(0, 0, so.W, so.H)
	if srcRect != nil {
		sr = srcRect.Intersect(sr)
	}
	at := geom.Pt(0, 0)
	if dstRect != nil {
		at = dstRect.Min()
	}
	for y := int32(0); y < sr.H; y++ {
		for x := int32(0); x < sr.W; x++ {
			p := at.Add(geom.Pt(x, y))
			if !do.Clip.Contains(p) {
				continue
			}
			c, ok := pixel(so, sr.X+x, sr.Y+y)
			if !ok {
				f.err = "Unsupported pixel format"
				return -1
			}
			if so.HasKey && c.Pack(mustLayout(so.Format)) == so.ColorKey {
				continue
			}
			setPixel(do, p.X, p.Y, c)
		}
	}
	return 0
}

func mustLayout(format uint32) geom.Packed32 {
	l, _ := native.PackedLayout(format)
	return l
}

func (f *Fake) FillRect(s native.Surface, rect *geom.Rect, color uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.surface("FillRect", s)
	if o == nil || f.failing("FillRect") {
		return -1
	}
	area := o.Clip
	if rect != nil {
		area = rect.Intersect(o.Clip)
	}
	bpp := int32(native.BytesPerPixel(o.Format))
	for y := area.Y; y < area.Y+area.H; y++ {
		for x := area.X; x < area.X+area.W; x++ {
			off := y*o.Pitch + x*bpp
			for i := int32(0); i < bpp; i++ {
				o.Pixels[off+i] = byte(color >> (8 * i))
			}
		}
	}
	return 0
}

func (f *Fake) SetColorKey(s native.Surface, enable bool, key uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.surface("SetColorKey", s)
	if o == nil {
		return -1
	}
	o.HasKey, o.ColorKey = enable, key
	return 0
}

func (f *Fake) GetColorKey(s native.Surface) (uint32, int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.surface("GetColorKey", s)
	if o == nil {
		return 0, -1
	}
	if !o.HasKey {
		f.err = "Surface doesn't have a colorkey"
		return 0, -1
	}
	return o.ColorKey, 0
}

func (f *Fake) SetSurfaceBlendMode(s native.Surface, mode int32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.surface("SetSurfaceBlendMode", s)
	if o == nil {
		return -1
	}
	o.BlendMode = mode
	return 0
}

func (f *Fake) GetSurfaceBlendMode(s native.Surface) (int32, int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.surface("GetSurfaceBlendMode", s); o != nil {
		return o.BlendMode, 0
	}
	return 0, -1
}

func (f *Fake) SetSurfaceColorMod(s native.Surface, r, g, b uint8) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.surface("SetSurfaceColorMod", s)
	if o == nil {
		return -1
	}
	o.ColorMod = [3]uint8{r, g, b}
	return 0
}

func (f *Fake) GetSurfaceColorMod(s native.Surface) (r, g, b uint8, status int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.surface("GetSurfaceColorMod", s); o != nil {
		return o.ColorMod[0], o.ColorMod[1], o.ColorMod[2], 0
	}
	return 0, 0, 0, -1
}

func (f *Fake) SetSurfaceAlphaMod(s native.Surface, a uint8) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.surface("SetSurfaceAlphaMod", s)
	if o == nil {
		return -1
	}
	o.AlphaMod = a
	return 0
}

func (f *Fake) GetSurfaceAlphaMod(s native.Surface) (uint8, int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.surface("GetSurfaceAlphaMod", s); o != nil {
		return o.AlphaMod, 0
	}
	return 0, -1
}

func (f *Fake) GetClipRect(s native.Surface) geom.Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o := f.surface("GetClipRect", s); o != nil {
		return o.Clip
	}
	return geom.Rect{}
}

func (f *Fake) SetClipRect(s native.Surface, rect *geom.Rect) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.surface("SetClipRect", s)
	if o == nil {
		return false
	}
	full := geom.R(0, 0, o.W, o.H)
	if rect == nil {
		o.Clip = full
		return true
	}
	o.Clip = rect.Intersect(full)
	return !o.Clip.Empty()
}

// bmpMagic marks files written by SaveBMP. The fake stores raw pixels rather
// than a real bitmap.
const bmpMagic = "FAKEBMP1"

func (f *Fake) LoadBMP(file string) native.Surface {
	data, err := os.ReadFile(file)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.err = "Couldn't open " + file
		return 0
	}
	if len(data) < len(bmpMagic)+12 || string(data[:len(bmpMagic)]) != bmpMagic {
		f.err = "File is not a Windows BMP file"
		return 0
	}
	le := binary.LittleEndian
	hdr := data[len(bmpMagic):]
	w, h, format := int32(le.Uint32(hdr)), int32(le.Uint32(hdr[4:])), le.Uint32(hdr[8:])
	o := f.newSurface(w, h, format)
	copy(o.Pixels, hdr[12:])
	return native.Surface(o.Handle)
}

func (f *Fake) SaveBMP(s native.Surface, file string) int32 {
	f.mu.Lock()
	o := f.surface("SaveBMP", s)
	if o == nil || f.failing("SaveBMP") {
		f.mu.Unlock()
		return -1
	}
	data := make([]byte, 0, len(bmpMagic)+12+len(o.Pixels))
	data = append(data, bmpMagic...)
	data = binary.LittleEndian.AppendUint32(data, uint32(o.W))
	data = binary.LittleEndian.AppendUint32(data, uint32(o.H))
	data = binary.LittleEndian.AppendUint32(data, o.Format)
	data = append(data, o.Pixels...)
	f.mu.Unlock()

	if err := os.WriteFile(file, data, 0o644); err != nil {
		f.SetError("Couldn't open " + file)
		return -1
	}
	return 0
}
