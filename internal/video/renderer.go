package video

import (
	"image"
	"math"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

// Renderer owns an SDL_Renderer. It must be closed before its window.
type Renderer struct {
	sys *sdl.System
	h   *resource.Unique[native.Renderer]
}

// NewRenderer creates a renderer for w. index -1 picks the first driver that
// supports flags.
func (w *Window) NewRenderer(index int32, flags uint32) (*Renderer, error) {
	api, win := w.api("SDL_CreateRenderer")
	h := api.CreateRenderer(win, index, flags)
	if h == 0 {
		return nil, w.sys.CreationFailed(KindRenderer, "SDL_CreateRenderer")
	}
	r := &Renderer{sys: w.sys, h: resource.New(KindRenderer, h, api.DestroyRenderer)}
	r.h.BindParent(w.Lifetime())
	return r, nil
}

func (r *Renderer) api(op string) (native.SDL, native.Renderer) {
	h := r.h.Get(op)
	return r.sys.API(), h
}

func (r *Renderer) check(op string, status int32) error {
	return r.sys.Check(op, status)
}

func (r *Renderer) Handle() native.Renderer     { return r.h.Raw() }
func (r *Renderer) Valid() bool                 { return r.h.Valid() }
func (r *Renderer) Lifetime() resource.Lifetime { return r.h.Lifetime() }

func (r *Renderer) Move() *Renderer {
	return &Renderer{sys: r.sys, h: r.h.Move()}
}

// Close destroys the renderer. Its textures must be closed first.
func (r *Renderer) Close() { r.h.Close() }

func (r *Renderer) OutputSize() (w, h int32, err error) {
	api, rh := r.api("SDL_GetRendererOutputSize")
	w, h, status := api.GetRendererOutputSize(rh)
	if status < 0 {
		return 0, 0, r.sys.Fail("SDL_GetRendererOutputSize")
	}
	return w, h, nil
}

func (r *Renderer) DrawColor() (geom.Color, error) {
	api, rh := r.api("SDL_GetRenderDrawColor")
	c, status := api.GetRenderDrawColor(rh)
	return c, r.check("SDL_GetRenderDrawColor", status)
}

func (r *Renderer) SetDrawColor(c geom.Color) error {
	api, rh := r.api("SDL_SetRenderDrawColor")
	return r.check("SDL_SetRenderDrawColor", api.SetRenderDrawColor(rh, c.R, c.G, c.B, c.A))
}

func (r *Renderer) Clear() error {
	api, rh := r.api("SDL_RenderClear")
	return r.check("SDL_RenderClear", api.RenderClear(rh))
}

// ClearWith sets the draw color to c and clears. The draw color stays c.
func (r *Renderer) ClearWith(c geom.Color) error {
	if err := r.SetDrawColor(c); err != nil {
		return err
	}
	return r.Clear()
}

func (r *Renderer) Present() {
	api, rh := r.api("SDL_RenderPresent")
	api.RenderPresent(rh)
}

func (r *Renderer) DrawLine(a, b geom.Point) error {
	api, rh := r.api("SDL_RenderDrawLine")
	return r.check("SDL_RenderDrawLine", api.RenderDrawLine(rh, a.X, a.Y, b.X, b.Y))
}

// DrawLines draws a polyline through points.
func (r *Renderer) DrawLines(points []geom.Point) error {
	api, rh := r.api("SDL_RenderDrawLines")
	return r.check("SDL_RenderDrawLines", api.RenderDrawLines(rh, points))
}

// DrawRay draws a line from origin to origin+ray.
func (r *Renderer) DrawRay(origin, ray geom.Point) error {
	return r.DrawLine(origin, origin.Add(ray))
}

func (r *Renderer) DrawPoint(p geom.Point) error {
	api, rh := r.api("SDL_RenderDrawPoint")
	return r.check("SDL_RenderDrawPoint", api.RenderDrawPoint(rh, p.X, p.Y))
}

func (r *Renderer) DrawPoints(points []geom.Point) error {
	api, rh := r.api("SDL_RenderDrawPoints")
	return r.check("SDL_RenderDrawPoints", api.RenderDrawPoints(rh, points))
}

func (r *Renderer) DrawRect(rect geom.Rect) error {
	api, rh := r.api("SDL_RenderDrawRect")
	return r.check("SDL_RenderDrawRect", api.RenderDrawRect(rh, &rect))
}

func (r *Renderer) DrawRects(rects []geom.Rect) error {
	api, rh := r.api("SDL_RenderDrawRects")
	return r.check("SDL_RenderDrawRects", api.RenderDrawRects(rh, rects))
}

// FillRect fills rect, or the whole target when rect is nil.
func (r *Renderer) FillRect(rect *geom.Rect) error {
	api, rh := r.api("SDL_RenderFillRect")
	return r.check("SDL_RenderFillRect", api.RenderFillRect(rh, rect))
}

func (r *Renderer) FillRects(rects []geom.Rect) error {
	api, rh := r.api("SDL_RenderFillRects")
	return r.check("SDL_RenderFillRects", api.RenderFillRects(rh, rects))
}

// DrawCircle draws a circle outline using the midpoint algorithm.
func (r *Renderer) DrawCircle(center geom.Point, radius int32) error {
	if radius < 0 {
		return nil
	}
	var pts []geom.Point
	x, y, d := radius, int32(0), 1-radius
	for x >= y {
		pts = append(pts,
			center.Add(geom.Pt(x, y)), center.Add(geom.Pt(y, x)),
			center.Add(geom.Pt(-y, x)), center.Add(geom.Pt(-x, y)),
			center.Add(geom.Pt(-x, -y)), center.Add(geom.Pt(-y, -x)),
			center.Add(geom.Pt(y, -x)), center.Add(geom.Pt(x, -y)))
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
	return r.DrawPoints(pts)
}

// FillCircle fills a circle with one rectangle per scanline.
func (r *Renderer) FillCircle(center geom.Point, radius int32) error {
	if radius < 0 {
		return nil
	}
	return r.FillRects(circleSpans(center, radius))
}

// circleSpans returns one row per scanline of a filled circle. Squares are
// taken in int64 so large radii do not overflow.
func circleSpans(center geom.Point, radius int32) []geom.Rect {
	rects := make([]geom.Rect, 0, 2*int(radius)+1)
	r2 := int64(radius) * int64(radius)
	for dy := -radius; dy <= radius; dy++ {
		dx := int32(math.Sqrt(float64(r2 - int64(dy)*int64(dy))))
		rects = append(rects, geom.R(center.X-dx, center.Y+dy, 2*dx+1, 1))
	}
	return rects
}

// Copy draws src of t into dst. nil rectangles mean the whole texture or
// target.
func (r *Renderer) Copy(t *Texture, src, dst *geom.Rect) error {
	api, rh := r.api("SDL_RenderCopy")
	return r.check("SDL_RenderCopy", api.RenderCopy(rh, t.h.Get("SDL_RenderCopy"), src, dst))
}

func (r *Renderer) ClipRect() geom.Rect {
	api, rh := r.api("SDL_RenderGetClipRect")
	return api.RenderGetClipRect(rh)
}

func (r *Renderer) SetClipRect(rect geom.Rect) error {
	api, rh := r.api("SDL_RenderSetClipRect")
	return r.check("SDL_RenderSetClipRect", api.RenderSetClipRect(rh, &rect))
}

func (r *Renderer) DisableClip() error {
	api, rh := r.api("SDL_RenderSetClipRect")
	return r.check("SDL_RenderSetClipRect", api.RenderSetClipRect(rh, nil))
}

func (r *Renderer) ClipEnabled() bool {
	api, rh := r.api("SDL_RenderIsClipEnabled")
	return api.RenderIsClipEnabled(rh)
}

func (r *Renderer) IntegerScale() bool {
	api, rh := r.api("SDL_RenderGetIntegerScale")
	return api.RenderGetIntegerScale(rh)
}

func (r *Renderer) SetIntegerScale(enable bool) error {
	api, rh := r.api("SDL_RenderSetIntegerScale")
	return r.check("SDL_RenderSetIntegerScale", api.RenderSetIntegerScale(rh, enable))
}

// ReadPixels copies rect, or the whole output when rect is nil, into a new
// image. It is slow and meant for screenshots.
func (r *Renderer) ReadPixels(rect *geom.Rect) (*image.RGBA, error) {
	area := geom.Rect{}
	if rect != nil {
		area = *rect
	} else {
		w, h, err := r.OutputSize()
		if err != nil {
			return nil, err
		}
		area = geom.R(0, 0, w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(area.W), int(area.H)))
	if area.Empty() {
		return img, nil
	}
	api, rh := r.api("SDL_RenderReadPixels")
	status := api.RenderReadPixels(rh, rect, native.PixelFormatRGBA32, img.Pix, int32(img.Stride))
	if err := r.check("SDL_RenderReadPixels", status); err != nil {
		return nil, err
	}
	return img, nil
}
