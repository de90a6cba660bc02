package video

import (
	"encoding/binary"
	"unsafe"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
)

// pixelView addresses locked pixel memory. The memory belongs to SDL and is
// only valid until the owning lock is released; every accessor checks that.
type pixelView struct {
	kind   string
	data   []byte
	width  int
	height int
	pitch  int
	bpp    int
	format uint32
	done   bool
}

func newPixelView(kind string, ptr unsafe.Pointer, w, h, pitch int, format uint32) pixelView {
	v := pixelView{kind: kind, width: w, height: h, pitch: pitch, bpp: native.BytesPerPixel(format), format: format}
	if ptr != nil && h > 0 {
		v.data = unsafe.Slice((*byte)(ptr), pitch*(h-1)+w*v.bpp)
	}
	return v
}

func (v *pixelView) check(op string) {
	if v.done {
		panic(&resource.UseAfterReleaseError{Resource: v.kind + " lock", Op: op})
	}
}

func (v *pixelView) offset(op string, x, y int) (int, error) {
	v.check(op)
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return 0, &resource.BoundsError{Op: op, X: x, Y: y, Width: v.width, Height: v.height}
	}
	return y*v.pitch + x*v.bpp, nil
}

func (v *pixelView) Width() int         { return v.width }
func (v *pixelView) Height() int        { return v.height }
func (v *pixelView) Pitch() int         { return v.pitch }
func (v *pixelView) BytesPerPixel() int { return v.bpp }
func (v *pixelView) Format() uint32     { return v.format }

// Bytes returns the locked memory. The slice must not be kept after unlock.
func (v *pixelView) Bytes() []byte {
	v.check("Bytes")
	return v.data
}

// Row returns the bytes of row y, without pitch padding.
func (v *pixelView) Row(y int) ([]byte, error) {
	off, err := v.offset("Row", 0, y)
	if err != nil {
		return nil, err
	}
	return v.data[off : off+v.width*v.bpp], nil
}

// At returns the raw pixel value at x, y.
func (v *pixelView) At(x, y int) (uint32, error) {
	off, err := v.offset("At", x, y)
	if err != nil {
		return 0, err
	}
	var buf [4]byte
	copy(buf[:], v.data[off:off+v.bpp])
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Set stores a raw pixel value at x, y. Only the low BytesPerPixel bytes of
// value are written.
func (v *pixelView) Set(x, y int, value uint32) error {
	off, err := v.offset("Set", x, y)
	if err != nil {
		return err
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	copy(v.data[off:off+v.bpp], buf[:v.bpp])
	return nil
}

// PixelAt decodes the pixel at x, y. Only packed 32-bit formats are supported.
func (v *pixelView) PixelAt(x, y int) (geom.Color, error) {
	l, ok := native.PackedLayout(v.format)
	if !ok {
		return geom.Color{}, resource.ErrUnsupported
	}
	raw, err := v.At(x, y)
	if err != nil {
		return geom.Color{}, err
	}
	return geom.Unpack(raw, l), nil
}

// SetPixel encodes c at x, y. Only packed 32-bit formats are supported.
func (v *pixelView) SetPixel(x, y int, c geom.Color) error {
	l, ok := native.PackedLayout(v.format)
	if !ok {
		return resource.ErrUnsupported
	}
	return v.Set(x, y, c.Pack(l))
}

// TextureLock is write access to a streaming texture. Unlock uploads the
// pixels; it is safe to call more than once.
type TextureLock struct {
	pixelView
	tex *Texture
}

func (l *TextureLock) Unlock() {
	if l.done {
		return
	}
	l.done = true
	if l.tex.lock == l {
		l.tex.lock = nil
	}
	l.tex.sys.API().UnlockTexture(l.tex.h.Raw())
	l.tex.h.Unlock()
}

// SurfaceLock is direct access to a surface's pixels.
type SurfaceLock struct {
	pixelView
	surf *Surface
}

func (l *SurfaceLock) Unlock() {
	if l.done {
		return
	}
	l.done = true
	if l.surf.lock == l {
		l.surf.lock = nil
	}
	l.surf.sys.API().UnlockSurface(l.surf.h.Raw())
	l.surf.h.Unlock()
}
