// Package gl binds the fixed-function OpenGL 1.x subset used by the examples.
// Entry points are resolved through the window system's GetProcAddress, so an
// OpenGL value is only usable while the context it was loaded for is current.
package gl

import (
	"errors"
	"unsafe"
)

const (
	ColorBufferBit = 0x00004000

	Texture2D       = 0x0DE1
	UnpackAlignment = 0x0CF5

	TextureWrapS     = 0x2802
	TextureWrapT     = 0x2803
	TextureMinFilter = 0x2801
	TextureMagFilter = 0x2800
	Nearest          = 0x2600
	Linear           = 0x2601
	ClampToEdge      = 0x812F

	Alpha          = 0x1906
	RGBA           = 0x1908
	LuminanceAlpha = 0x190A
	UnsignedByte   = 0x1401

	Triangles     = 0x0004
	TriangleStrip = 0x0005
	Quads         = 0x0007

	Projection = 0x1701
	ModelView  = 0x1700

	Blend            = 0x0BE2
	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303

	// GetString names.
	Vendor   = 0x1F00
	Renderer = 0x1F01
	Version  = 0x1F02
)

// ErrMissingSymbol is returned by Load when an entry point cannot be resolved.
var ErrMissingSymbol = errors.New("gl: missing entry point")

// OpenGL is the loaded function table. All calls act on the context current
// on the calling thread.
type OpenGL interface {
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	Enable(cap uint32)
	Disable(cap uint32)
	BlendFunc(sfactor, dfactor uint32)

	GenTextures(n int32, textures *uint32)
	DeleteTextures(n int32, textures *uint32)
	BindTexture(target, texture uint32)
	// TexImage2D allocates storage without uploading when pixels is nil.
	TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
	TexParameteri(target, pname uint32, param int32)
	PixelStorei(pname uint32, param int32)

	// Immediate mode.
	Begin(mode uint32)
	End()
	Color4f(r, g, b, a float32)
	Color4fv(v *float32)
	TexCoord2f(s, t float32)
	Vertex2f(x, y float32)

	MatrixMode(mode uint32)
	LoadIdentity()
	Ortho(left, right, bottom, top, near, far float64)

	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)

	// GetString returns "" for unknown names or when no context is current.
	GetString(name uint32) string
}
