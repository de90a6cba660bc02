// Package geom holds the plain value types shared with the native library.
//
// The structs mirror the C layouts of SDL_Point, SDL_Rect and SDL_Color so a
// pointer to them can be handed straight to a native call. They are ordinary
// Go values: copying them is always fine.
package geom

import (
	"image"
	"image/color"
)

// Point is a 2D integer vector (SDL_Point).
type Point struct {
	X, Y int32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int32) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(k int32) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Image converts p to an image.Point.
func (p Point) Image() image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// Rect is an axis-aligned rectangle with its origin at the top left (SDL_Rect).
type Rect struct {
	X, Y, W, H int32
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h int32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromImage converts an image.Rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: int32(r.Min.X), Y: int32(r.Min.Y), W: int32(r.Dx()), H: int32(r.Dy())}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }
func (r Rect) Max() Point { return Point{X: r.X + r.W, Y: r.Y + r.H} }

// Size returns the width and height as a Point.
func (r Rect) Size() Point { return Point{X: r.W, Y: r.H} }

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersect returns the largest rectangle contained by both r and s. If they
// do not overlap the zero Rect is returned.
func (r Rect) Intersect(s Rect) Rect {
	x0, y0 := max(r.X, s.X), max(r.Y, s.Y)
	x1, y1 := min(r.X+r.W, s.X+s.W), min(r.Y+r.H, s.Y+s.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	x0, y0 := min(r.X, s.X), min(r.Y, s.Y)
	x1, y1 := max(r.X+r.W, s.X+s.W), max(r.Y+r.H, s.Y+s.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate moves r by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
}

// Color is a non-premultiplied 8-bit RGBA color (SDL_Color).
type Color struct {
	R, G, B, A uint8
}

var (
	Black       = Color{0, 0, 0, 0xff}
	White       = Color{0xff, 0xff, 0xff, 0xff}
	Red         = Color{0xff, 0, 0, 0xff}
	Green       = Color{0, 0xff, 0, 0xff}
	Blue        = Color{0, 0, 0xff, 0xff}
	Yellow      = Color{0xff, 0xff, 0, 0xff}
	Transparent = Color{}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// ColorFrom converts any color.Color.
func ColorFrom(c color.Color) Color {
	if gc, ok := c.(Color); ok {
		return gc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Packed32 describes where each channel sits inside a packed 32-bit pixel.
type Packed32 struct {
	RShift, GShift, BShift, AShift uint
	HasAlpha                       bool
}

// Pack encodes c with the given channel layout.
func (c Color) Pack(l Packed32) uint32 {
	v := uint32(c.R)<<l.RShift | uint32(c.G)<<l.GShift | uint32(c.B)<<l.BShift
	if l.HasAlpha {
		v |= uint32(c.A) << l.AShift
	}
	return v
}

// Unpack decodes a packed 32-bit pixel. Layouts without alpha yield opaque colors.
func Unpack(v uint32, l Packed32) Color {
	c := Color{
		R: uint8(v >> l.RShift),
		G: uint8(v >> l.GShift),
		B: uint8(v >> l.BShift),
		A: 0xff,
	}
	if l.HasAlpha {
		c.A = uint8(v >> l.AShift)
	}
	return c
}
