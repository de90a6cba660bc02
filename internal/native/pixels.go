package native

import "github.com/tinyrange/gosdl/internal/geom"

// PackedLayout returns the channel layout of a packed 32-bit pixel format as
// read from a little-endian uint32.
func PackedLayout(format uint32) (geom.Packed32, bool) {
	switch format {
	case PixelFormatARGB8888:
		return geom.Packed32{AShift: 24, RShift: 16, GShift: 8, BShift: 0, HasAlpha: true}, true
	case PixelFormatXRGB8888:
		return geom.Packed32{RShift: 16, GShift: 8, BShift: 0}, true
	case PixelFormatABGR8888:
		return geom.Packed32{AShift: 24, BShift: 16, GShift: 8, RShift: 0, HasAlpha: true}, true
	case PixelFormatXBGR8888:
		return geom.Packed32{BShift: 16, GShift: 8, RShift: 0}, true
	case PixelFormatRGBA8888:
		return geom.Packed32{RShift: 24, GShift: 16, BShift: 8, AShift: 0, HasAlpha: true}, true
	case PixelFormatBGRA8888:
		return geom.Packed32{BShift: 24, GShift: 16, RShift: 8, AShift: 0, HasAlpha: true}, true
	}
	return geom.Packed32{}, false
}
