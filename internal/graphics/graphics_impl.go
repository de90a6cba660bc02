package graphics

import (
	"errors"
	"image"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/input"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
	"github.com/tinyrange/gosdl/internal/timer"
	"github.com/tinyrange/gosdl/internal/video"
)

// FrameInterval is the minimum time between frames.
var FrameInterval = time.Second / 120

type sdlWindow struct {
	sys      *sdl.System
	win      *video.Window
	renderer *video.Renderer
	textures []*sdlTexture
	hooks    []func()

	clearEnabled bool
	clearColor   geom.Color

	cursor  [2]float32
	keys    map[Key]KeyState
	buttons map[Button]ButtonState
	winID   uint32
}

type sdlTexture struct {
	t *video.Texture
}

func (t *sdlTexture) Size() (int, int) {
	w, h := t.t.Size()
	return int(w), int(h)
}

func (t *sdlTexture) Close() { t.t.Close() }

// New opens a resizable high-DPI window with an accelerated renderer.
func New(sys *sdl.System, title string, width, height int) (Window, error) {
	win, err := video.NewWindow(sys, title, int32(width), int32(height),
		native.WindowShown|native.WindowResizable|native.WindowAllowHighDPI)
	if err != nil {
		return nil, err
	}
	r, err := win.NewRenderer(-1, native.RendererAccelerated|native.RendererPresentVSync)
	if err != nil {
		win.Close()
		return nil, err
	}

	pos, _ := input.MouseState(sys)
	return &sdlWindow{
		sys:          sys,
		win:          win,
		renderer:     r,
		clearEnabled: true,
		clearColor:   geom.Color{A: 0xff},
		cursor:       [2]float32{float32(pos.X), float32(pos.Y)},
		keys:         make(map[Key]KeyState),
		buttons:      make(map[Button]ButtonState),
		winID:        win.ID(),
	}, nil
}

func (w *sdlWindow) System() *sdl.System        { return w.sys }
func (w *sdlWindow) Window() *video.Window      { return w.win }
func (w *sdlWindow) Renderer() *video.Renderer  { return w.renderer }
func (w *sdlWindow) SetClear(enabled bool)      { w.clearEnabled = enabled }
func (w *sdlWindow) SetClearColor(c geom.Color) { w.clearColor = c }
func (w *sdlWindow) Scale() float32             { return w.win.Scale() }

func (w *sdlWindow) NewTexture(img image.Image) (Texture, error) {
	t, err := w.renderer.TextureFromImage(img)
	if err != nil {
		return nil, err
	}
	return w.AdoptTexture(t), nil
}

func (w *sdlWindow) AdoptTexture(t *video.Texture) Texture {
	tex := &sdlTexture{t: t}
	w.textures = append(w.textures, tex)
	return tex
}

func (w *sdlWindow) OnClose(fn func()) { w.hooks = append(w.hooks, fn) }

func (w *sdlWindow) Close() {
	for i := len(w.hooks) - 1; i >= 0; i-- {
		w.hooks[i]()
	}
	w.hooks = nil
	for _, t := range w.textures {
		t.Close()
	}
	w.textures = nil
	w.renderer.Close()
	w.win.Close()
}

func (w *sdlWindow) Loop(step func(f Frame) error) error {
	defer w.Close()

	for w.poll() {
		start := timer.Ticks(w.sys)
		if err := w.prepareFrame(); err != nil {
			return err
		}

		frame := &sdlFrame{w: w}
		err := step(frame)
		if errors.Is(err, Stop) {
			return nil
		}
		if err != nil {
			return err
		}
		if frame.err != nil {
			return frame.err
		}

		w.renderer.Present()
		if elapsed := timer.Ticks(w.sys) - start; elapsed < FrameInterval {
			timer.Delay(w.sys, FrameInterval-elapsed)
		}
	}
	return nil
}

// poll advances input state by one frame and drains the event queue. It
// returns false once the user asked to quit.
func (w *sdlWindow) poll() bool {
	for k, s := range w.keys {
		switch s {
		case KeyStatePressed, KeyStateRepeated:
			w.keys[k] = KeyStateDown
		case KeyStateReleased:
			delete(w.keys, k)
		}
	}
	for b, s := range w.buttons {
		switch s {
		case ButtonStatePressed:
			w.buttons[b] = ButtonStateDown
		case ButtonStateReleased:
			delete(w.buttons, b)
		}
	}

	running := true
	for {
		ev, ok := w.sys.PollEvent()
		if !ok {
			return running
		}
		switch ev.Type() {
		case native.EventQuit:
			running = false
		case native.EventWindow:
			we := ev.Window()
			if we.WindowID == w.winID && we.Event == native.WindowEventClose {
				running = false
			}
		case native.EventKeyDown:
			k := ev.Key()
			if k.Repeat {
				w.keys[Key(k.Scancode)] = KeyStateRepeated
			} else {
				w.keys[Key(k.Scancode)] = KeyStatePressed
			}
		case native.EventKeyUp:
			w.keys[Key(ev.Key().Scancode)] = KeyStateReleased
		case native.EventMouseButtonDown:
			w.buttons[Button(ev.MouseButton().Button)] = ButtonStatePressed
		case native.EventMouseButtonUp:
			w.buttons[Button(ev.MouseButton().Button)] = ButtonStateReleased
		case native.EventMouseMotion:
			m := ev.MouseMotion()
			w.cursor = [2]float32{float32(m.X), float32(m.Y)}
		}
	}
}

func (w *sdlWindow) prepareFrame() error {
	if !w.clearEnabled {
		return nil
	}
	return w.renderer.ClearWith(w.clearColor)
}

type sdlFrame struct {
	w   *sdlWindow
	err error
}

func (f *sdlFrame) WindowSize() (int, int) {
	width, height, err := f.w.renderer.OutputSize()
	if err != nil {
		resource.Logger().Warn("renderer output size", zap.Error(err))
		ww, wh := f.w.win.Size()
		return int(ww), int(wh)
	}
	return int(width), int(height)
}

func (f *sdlFrame) CursorPos() (float32, float32) {
	return f.w.cursor[0], f.w.cursor[1]
}

func (f *sdlFrame) GetKeyState(key Key) KeyState {
	if s, ok := f.w.keys[key]; ok {
		return s
	}
	return KeyStateUp
}

func (f *sdlFrame) GetButtonState(button Button) ButtonState {
	if s, ok := f.w.buttons[button]; ok {
		return s
	}
	return ButtonStateUp
}

func (f *sdlFrame) RenderQuad(x, y, width, height float32, tex Texture, c geom.Color) {
	if f.err != nil {
		return
	}
	t, ok := tex.(*sdlTexture)
	if !ok {
		return
	}
	if err := t.t.SetColorAlphaMod(c); err != nil {
		f.err = err
		return
	}
	dst := geom.R(round(x), round(y), round(width), round(height))
	if err := f.w.renderer.Copy(t.t, nil, &dst); err != nil {
		f.err = err
	}
}

func (f *sdlFrame) Screenshot() (image.Image, error) {
	return f.w.renderer.ReadPixels(nil)
}

func (f *sdlFrame) Renderer() *video.Renderer { return f.w.renderer }

func round(v float32) int32 { return int32(math.Round(float64(v))) }
