//go:build linux || darwin || windows

package gl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
)

type openGL struct {
	clearColor     func(float32, float32, float32, float32)
	clear          func(uint32)
	viewport       func(int32, int32, int32, int32)
	enable         func(uint32)
	disable        func(uint32)
	blendFunc      func(uint32, uint32)
	genTextures    func(int32, *uint32)
	deleteTextures func(int32, *uint32)
	bindTexture    func(uint32, uint32)
	texImage2D     func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	texSubImage2D  func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	texParameteri  func(uint32, uint32, int32)
	pixelStorei    func(uint32, int32)
	begin          func(uint32)
	end            func()
	color4f        func(float32, float32, float32, float32)
	color4fv       func(*float32)
	texCoord2f     func(float32, float32)
	vertex2f       func(float32, float32)
	matrixMode     func(uint32)
	loadIdentity   func()
	ortho          func(float64, float64, float64, float64, float64, float64)
	readPixels     func(int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	getString      func(uint32) string
}

type entry struct {
	name string
	fptr any
}

func (gl *openGL) entries() []entry {
	return []entry{
		{"glClearColor", &gl.clearColor},
		{"glClear", &gl.clear},
		{"glViewport", &gl.viewport},
		{"glEnable", &gl.enable},
		{"glDisable", &gl.disable},
		{"glBlendFunc", &gl.blendFunc},
		{"glGenTextures", &gl.genTextures},
		{"glDeleteTextures", &gl.deleteTextures},
		{"glBindTexture", &gl.bindTexture},
		{"glTexImage2D", &gl.texImage2D},
		{"glTexSubImage2D", &gl.texSubImage2D},
		{"glTexParameteri", &gl.texParameteri},
		{"glPixelStorei", &gl.pixelStorei},
		{"glBegin", &gl.begin},
		{"glEnd", &gl.end},
		{"glColor4f", &gl.color4f},
		{"glColor4fv", &gl.color4fv},
		{"glTexCoord2f", &gl.texCoord2f},
		{"glVertex2f", &gl.vertex2f},
		{"glMatrixMode", &gl.matrixMode},
		{"glLoadIdentity", &gl.loadIdentity},
		{"glOrtho", &gl.ortho},
		{"glReadPixels", &gl.readPixels},
		{"glGetString", &gl.getString},
	}
}

// Load resolves every entry point with proc, typically
// (*video.GLContext).ProcAddress. Nothing is bound unless all symbols resolve.
func Load(proc func(name string) uintptr) (OpenGL, error) {
	gl := &openGL{}
	entries := gl.entries()
	addrs := make([]uintptr, len(entries))
	var missing []string
	for i, e := range entries {
		addrs[i] = proc(e.name)
		if addrs[i] == 0 {
			missing = append(missing, e.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSymbol, strings.Join(missing, ", "))
	}
	for i, e := range entries {
		purego.RegisterFunc(e.fptr, addrs[i])
	}
	return gl, nil
}

func (gl *openGL) ClearColor(r, g, b, a float32)      { gl.clearColor(r, g, b, a) }
func (gl *openGL) Clear(mask uint32)                  { gl.clear(mask) }
func (gl *openGL) Viewport(x, y, width, height int32) { gl.viewport(x, y, width, height) }
func (gl *openGL) Enable(cap uint32)                  { gl.enable(cap) }
func (gl *openGL) Disable(cap uint32)                 { gl.disable(cap) }
func (gl *openGL) BlendFunc(sfactor, dfactor uint32)  { gl.blendFunc(sfactor, dfactor) }

func (gl *openGL) GenTextures(n int32, textures *uint32)    { gl.genTextures(n, textures) }
func (gl *openGL) DeleteTextures(n int32, textures *uint32) { gl.deleteTextures(n, textures) }
func (gl *openGL) BindTexture(target, texture uint32)       { gl.bindTexture(target, texture) }

func (gl *openGL) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.texImage2D(target, level, internalFormat, width, height, border, format, xtype, pixels)
}

func (gl *openGL) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.texSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, pixels)
}

func (gl *openGL) TexParameteri(target, pname uint32, param int32) {
	gl.texParameteri(target, pname, param)
}

func (gl *openGL) PixelStorei(pname uint32, param int32) { gl.pixelStorei(pname, param) }

func (gl *openGL) Begin(mode uint32)          { gl.begin(mode) }
func (gl *openGL) End()                       { gl.end() }
func (gl *openGL) Color4f(r, g, b, a float32) { gl.color4f(r, g, b, a) }
func (gl *openGL) Color4fv(v *float32)        { gl.color4fv(v) }
func (gl *openGL) TexCoord2f(s, t float32)    { gl.texCoord2f(s, t) }
func (gl *openGL) Vertex2f(x, y float32)      { gl.vertex2f(x, y) }
func (gl *openGL) MatrixMode(mode uint32)     { gl.matrixMode(mode) }
func (gl *openGL) LoadIdentity()              { gl.loadIdentity() }

func (gl *openGL) Ortho(left, right, bottom, top, near, far float64) {
	gl.ortho(left, right, bottom, top, near, far)
}

func (gl *openGL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.readPixels(x, y, width, height, format, xtype, pixels)
}

func (gl *openGL) GetString(name uint32) string { return gl.getString(name) }
