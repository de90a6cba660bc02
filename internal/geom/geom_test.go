package geom

import (
	"image"
	"image/color"
	"testing"
)

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", R(0, 0, 10, 10), R(5, 5, 10, 10), R(5, 5, 5, 5)},
		{"contained", R(0, 0, 10, 10), R(2, 2, 3, 3), R(2, 2, 3, 3)},
		{"disjoint", R(0, 0, 4, 4), R(10, 10, 4, 4), Rect{}},
		{"touching edge", R(0, 0, 4, 4), R(4, 0, 4, 4), Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Fatalf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	got := R(0, 0, 2, 2).Union(R(5, 5, 1, 1))
	if got != R(0, 0, 6, 6) {
		t.Fatalf("Union = %+v", got)
	}
	if got := (Rect{}).Union(R(1, 1, 1, 1)); got != R(1, 1, 1, 1) {
		t.Fatalf("Union with empty = %+v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := R(1, 1, 2, 2)
	if !r.Contains(Pt(1, 1)) || !r.Contains(Pt(2, 2)) {
		t.Fatal("expected interior points to be contained")
	}
	if r.Contains(Pt(3, 1)) || r.Contains(Pt(0, 1)) {
		t.Fatal("edges past W/H must be exclusive")
	}
}

func TestRectImageRoundTrip(t *testing.T) {
	ir := image.Rect(3, 4, 10, 12)
	if got := RectFromImage(ir).Image(); got != ir {
		t.Fatalf("got %v, want %v", got, ir)
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Pt(3, 4).Add(Pt(1, 1)).Sub(Pt(2, 2)).Scale(2)
	if p != Pt(4, 6) {
		t.Fatalf("got %+v", p)
	}
}

func TestColorPack(t *testing.T) {
	argb := Packed32{AShift: 24, RShift: 16, GShift: 8, BShift: 0, HasAlpha: true}
	c := Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}
	v := c.Pack(argb)
	if v != 0x44112233 {
		t.Fatalf("Pack = %#x", v)
	}
	if got := Unpack(v, argb); got != c {
		t.Fatalf("Unpack = %+v", got)
	}

	xrgb := Packed32{RShift: 16, GShift: 8, BShift: 0}
	if got := Unpack(c.Pack(xrgb), xrgb); got.A != 0xff {
		t.Fatalf("layout without alpha must decode opaque, got %+v", got)
	}
}

func TestColorFrom(t *testing.T) {
	got := ColorFrom(color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	if got != (Color{1, 2, 3, 4}) {
		t.Fatalf("got %+v", got)
	}
	if got := ColorFrom(Red); got != Red {
		t.Fatalf("got %+v", got)
	}
}
