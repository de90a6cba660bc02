package video

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

// toRGBA returns img as an *image.RGBA with bounds starting at 0,0. img is
// returned as is when it already has that shape.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file into a new
// surface.
func LoadImage(sys *sdl.System, path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &resource.CreationError{Resource: KindSurface, Op: "image.Decode", Diagnostic: err.Error()}
	}
	return SurfaceFromImage(sys, img)
}

// SurfaceFromImage copies img into a new RGBA32 surface.
func SurfaceFromImage(sys *sdl.System, img image.Image) (*Surface, error) {
	src := toRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	s, err := NewSurface(sys, int32(w), int32(h), native.PixelFormatRGBA32)
	if err != nil {
		return nil, err
	}
	err = s.WithLock(func(l *SurfaceLock) error {
		for y := 0; y < h; y++ {
			row, err := l.Row(y)
			if err != nil {
				return err
			}
			copy(row, src.Pix[y*src.Stride:y*src.Stride+w*4])
		}
		return nil
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Image copies the surface into a new image, converting it to RGBA32 first
// when needed.
func (s *Surface) Image() (*image.RGBA, error) {
	src := s
	if s.Format() != native.PixelFormatRGBA32 {
		conv, err := s.Convert(native.PixelFormatRGBA32)
		if err != nil {
			return nil, err
		}
		defer conv.Close()
		src = conv
	}
	w, h := src.Size()
	out := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	err := src.WithLock(func(l *SurfaceLock) error {
		for y := 0; y < int(h); y++ {
			row, err := l.Row(y)
			if err != nil {
				return err
			}
			copy(out.Pix[y*out.Stride:], row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TextureFromImage uploads img into a new static RGBA32 texture.
func (r *Renderer) TextureFromImage(img image.Image) (*Texture, error) {
	src := toRGBA(img)
	t, err := r.NewTexture(native.PixelFormatRGBA32, native.TextureAccessStatic, int32(src.Rect.Dx()), int32(src.Rect.Dy()))
	if err != nil {
		return nil, err
	}
	if err := t.Update(nil, src.Pix, src.Stride); err != nil {
		t.Close()
		return nil, err
	}
	if err := t.SetBlendMode(native.BlendModeBlend); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}
