package text

import (
	"strings"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/video"
)

// MaxCached bounds the number of textures a Renderer keeps. The cache is
// flushed when it is full.
const MaxCached = 256

type cacheKey struct {
	text  string
	color geom.Color
	style int32
}

// Renderer draws strings on a video.Renderer, keeping one texture per
// distinct string, color and style.
type Renderer struct {
	r     *video.Renderer
	font  *Font
	cache map[cacheKey]*video.Texture
}

// NewRenderer draws with font on r. Close the text renderer before either.
func NewRenderer(r *video.Renderer, font *Font) *Renderer {
	return &Renderer{r: r, font: font, cache: make(map[cacheKey]*video.Texture)}
}

func (tr *Renderer) Font() *Font { return tr.font }

// Texture returns the cached texture for s in c, rendering it on first use.
// The texture belongs to the cache.
func (tr *Renderer) Texture(s string, c geom.Color) (*video.Texture, error) {
	key := cacheKey{text: s, color: c, style: tr.font.Style()}
	if t, ok := tr.cache[key]; ok {
		return t, nil
	}
	if len(tr.cache) >= MaxCached {
		tr.Reset()
	}

	surf, err := tr.font.Render(s, c)
	if err != nil {
		return nil, err
	}
	defer surf.Close()
	t, err := tr.r.TextureFromSurface(surf)
	if err != nil {
		return nil, err
	}
	tr.cache[key] = t
	return t, nil
}

// Draw renders s with its top left corner at (x, y). Newlines start a new
// line LineSkip pixels lower and tabs advance four spaces. It returns the x
// coordinate following the last glyph drawn.
func (tr *Renderer) Draw(s string, x, y int32, c geom.Color) (int32, error) {
	skip := tr.font.LineSkip()
	next := x
	for i, line := range strings.Split(s, "\n") {
		line = expand(line)
		next = x
		if line == "" {
			continue
		}
		t, err := tr.Texture(line, c)
		if err != nil {
			return next, err
		}
		w, h := t.Size()
		dst := geom.R(x, y+int32(i)*skip, w, h)
		if err := tr.r.Copy(t, nil, &dst); err != nil {
			return next, err
		}
		next = x + w
	}
	return next, nil
}

// Measure returns the size of the block Draw would cover.
func (tr *Renderer) Measure(s string) (w, h int32, err error) {
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		line = expand(line)
		if line == "" {
			continue
		}
		lw, _, err := tr.font.Size(line)
		if err != nil {
			return 0, 0, err
		}
		w = max(w, lw)
	}
	return w, int32(len(lines)-1)*tr.font.LineSkip() + tr.font.Height(), nil
}

// Cached returns the number of textures held.
func (tr *Renderer) Cached() int { return len(tr.cache) }

// Reset destroys every cached texture.
func (tr *Renderer) Reset() {
	for k, t := range tr.cache {
		t.Close()
		delete(tr.cache, k)
	}
}

// Close releases the cache. The font and video renderer are left open.
func (tr *Renderer) Close() { tr.Reset() }

func expand(line string) string {
	return strings.ReplaceAll(strings.TrimSuffix(line, "\r"), "\t", "    ")
}
