// Package graphics is a small immediate-mode frame loop over an SDL window
// and renderer.
package graphics

import (
	"errors"
	"image"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/sdl"
	"github.com/tinyrange/gosdl/internal/video"
)

// Stop can be returned from a Loop callback to end the loop without an error.
var Stop = errors.New("graphics: stop")

type KeyState int

const (
	// The key was pressed this frame
	KeyStatePressed KeyState = iota
	// The key is currently down
	KeyStateDown
	// The key was released this frame
	KeyStateReleased
	// The key is currently up
	KeyStateUp
	// The key is being held down (repeated)
	KeyStateRepeated
)

func (ks KeyState) IsDown() bool {
	return ks == KeyStatePressed || ks == KeyStateDown || ks == KeyStateRepeated
}

type ButtonState int

const (
	ButtonStatePressed ButtonState = iota
	ButtonStateDown
	ButtonStateReleased
	ButtonStateUp
)

func (bs ButtonState) IsDown() bool {
	return bs == ButtonStatePressed || bs == ButtonStateDown
}

// Key is a USB HID scancode as reported by SDL.
type Key int32

const (
	KeyUnknown Key = 0
	KeyA       Key = 4
	KeyD       Key = 7
	KeyQ       Key = 20
	KeyS       Key = 22
	KeyW       Key = 26
	KeyReturn  Key = 40
	KeyEscape  Key = 41
	KeySpace   Key = 44
	KeyRight   Key = 79
	KeyLeft    Key = 80
	KeyDown    Key = 81
	KeyUp      Key = 82
)

// Button is an SDL mouse button number.
type Button uint8

const (
	ButtonLeft   Button = native.ButtonLeft
	ButtonMiddle Button = native.ButtonMiddle
	ButtonRight  Button = native.ButtonRight
)

var (
	ColorWhite  = geom.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorYellow = geom.Color{R: 0xff, G: 0xff, A: 0xff}
)

type Frame interface {
	// WindowSize returns the drawable size in pixels.
	WindowSize() (width, height int)
	CursorPos() (x, y float32)

	GetKeyState(key Key) KeyState
	GetButtonState(button Button) ButtonState

	// RenderQuad draws tex stretched over the rectangle, tinted by c. A
	// failure ends the loop with that error once the callback returns.
	RenderQuad(x, y, width, height float32, tex Texture, c geom.Color)

	Screenshot() (image.Image, error)

	// Renderer gives direct access for drawing the helpers above do not cover.
	Renderer() *video.Renderer
}

type Texture interface {
	Size() (width, height int)
	Close()
}

type Window interface {
	System() *sdl.System
	Window() *video.Window
	Renderer() *video.Renderer

	// NewTexture uploads img. Textures are closed with the window.
	NewTexture(image.Image) (Texture, error)
	// AdoptTexture takes ownership of a texture created on Renderer.
	AdoptTexture(t *video.Texture) Texture

	// OnClose registers fn to run before the textures and renderer are
	// closed. Hooks run in reverse order of registration.
	OnClose(fn func())

	SetClear(enabled bool)
	SetClearColor(c geom.Color)

	// Scale is the display scale factor of the window.
	Scale() float32

	// Loop calls f once per frame until it returns an error, the window is
	// closed or SDL reports a quit request. The window is closed when Loop
	// returns.
	Loop(func(f Frame) error) error

	// Close runs the OnClose hooks, then closes every texture, the renderer
	// and the window.
	Close()
}
