package native

import (
	"encoding/binary"
	"unsafe"
)

// Event types (SDL_EventType).
const (
	EventFirst                    = 0x000
	EventQuit                     = 0x100
	EventWindow                   = 0x200
	EventSysWM                    = 0x201
	EventKeyDown                  = 0x300
	EventKeyUp                    = 0x301
	EventTextEditing              = 0x302
	EventTextInput                = 0x303
	EventMouseMotion              = 0x400
	EventMouseButtonDown          = 0x401
	EventMouseButtonUp            = 0x402
	EventMouseWheel               = 0x403
	EventJoyAxisMotion            = 0x600
	EventJoyBallMotion            = 0x601
	EventJoyHatMotion             = 0x602
	EventJoyButtonDown            = 0x603
	EventJoyButtonUp              = 0x604
	EventJoyDeviceAdded           = 0x605
	EventJoyDeviceRemoved         = 0x606
	EventControllerAxisMotion     = 0x650
	EventControllerButtonDown     = 0x651
	EventControllerButtonUp       = 0x652
	EventControllerDeviceAdded    = 0x653
	EventControllerDeviceRemoved  = 0x654
	EventControllerDeviceRemapped = 0x655
	EventUser                     = 0x8000
	EventLast                     = 0xFFFF
)

// Window event ids carried by EventWindow (SDL_WindowEventID).
const (
	WindowEventShown       = 1
	WindowEventHidden      = 2
	WindowEventExposed     = 3
	WindowEventMoved       = 4
	WindowEventResized     = 5
	WindowEventSizeChanged = 6
	WindowEventMinimized   = 7
	WindowEventMaximized   = 8
	WindowEventRestored    = 9
	WindowEventEnter       = 10
	WindowEventLeave       = 11
	WindowEventFocusGained = 12
	WindowEventFocusLost   = 13
	WindowEventClose       = 14
)

// EventSize is sizeof(SDL_Event).
const EventSize = 56

// Event is the raw SDL_Event union. Storage is word aligned because several
// members carry 64-bit fields.
type Event struct {
	raw [EventSize / 8]uint64
}

// Bytes exposes the union memory.
func (e *Event) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&e.raw[0])), EventSize)
}

func (e *Event) u8(off int) uint8   { return e.Bytes()[off] }
func (e *Event) u16(off int) uint16 { return binary.LittleEndian.Uint16(e.Bytes()[off:]) }
func (e *Event) u32(off int) uint32 { return binary.LittleEndian.Uint32(e.Bytes()[off:]) }
func (e *Event) i32(off int) int32  { return int32(e.u32(off)) }

func (e *Event) put8(off int, v uint8)   { e.Bytes()[off] = v }
func (e *Event) put16(off int, v uint16) { binary.LittleEndian.PutUint16(e.Bytes()[off:], v) }
func (e *Event) put32(off int, v uint32) { binary.LittleEndian.PutUint32(e.Bytes()[off:], v) }

// Type returns the event type (first member of every union variant).
func (e *Event) Type() uint32 { return e.u32(0) }

// Timestamp returns the SDL tick count at which the event was queued.
func (e *Event) Timestamp() uint32 { return e.u32(4) }

// WindowEvent is the decoded SDL_WindowEvent.
type WindowEvent struct {
	WindowID     uint32
	Event        uint8
	Data1, Data2 int32
}

func (e *Event) Window() WindowEvent {
	return WindowEvent{WindowID: e.u32(8), Event: e.u8(12), Data1: e.i32(16), Data2: e.i32(20)}
}

// KeyEvent is the decoded SDL_KeyboardEvent.
type KeyEvent struct {
	WindowID uint32
	Down     bool
	Repeat   bool
	Scancode int32
	Keycode  int32
	Mod      uint16
}

func (e *Event) Key() KeyEvent {
	return KeyEvent{
		WindowID: e.u32(8),
		Down:     e.u8(12) == 1,
		Repeat:   e.u8(13) != 0,
		Scancode: e.i32(16),
		Keycode:  e.i32(20),
		Mod:      e.u16(24),
	}
}

// MouseButtonEvent is the decoded SDL_MouseButtonEvent.
type MouseButtonEvent struct {
	WindowID uint32
	Which    uint32
	Button   uint8
	Down     bool
	Clicks   uint8
	X, Y     int32
}

func (e *Event) MouseButton() MouseButtonEvent {
	return MouseButtonEvent{
		WindowID: e.u32(8),
		Which:    e.u32(12),
		Button:   e.u8(16),
		Down:     e.u8(17) == 1,
		Clicks:   e.u8(18),
		X:        e.i32(20),
		Y:        e.i32(24),
	}
}

// MouseMotionEvent is the decoded SDL_MouseMotionEvent.
type MouseMotionEvent struct {
	WindowID   uint32
	Which      uint32
	State      uint32
	X, Y       int32
	XRel, YRel int32
}

func (e *Event) MouseMotion() MouseMotionEvent {
	return MouseMotionEvent{
		WindowID: e.u32(8),
		Which:    e.u32(12),
		State:    e.u32(16),
		X:        e.i32(20),
		Y:        e.i32(24),
		XRel:     e.i32(28),
		YRel:     e.i32(32),
	}
}

// MouseWheelEvent is the decoded SDL_MouseWheelEvent.
type MouseWheelEvent struct {
	WindowID uint32
	Which    uint32
	X, Y     int32
}

func (e *Event) MouseWheel() MouseWheelEvent {
	return MouseWheelEvent{WindowID: e.u32(8), Which: e.u32(12), X: e.i32(16), Y: e.i32(20)}
}

// DeviceWhich returns the device index (added) or instance id (removed) of a
// joystick or controller device event.
func (e *Event) DeviceWhich() int32 { return e.i32(8) }

// JoyAxisEvent covers SDL_JoyAxisEvent and SDL_ControllerAxisEvent, which share a layout.
type JoyAxisEvent struct {
	Which int32
	Axis  uint8
	Value int16
}

func (e *Event) JoyAxis() JoyAxisEvent {
	return JoyAxisEvent{Which: e.i32(8), Axis: e.u8(12), Value: int16(e.u16(16))}
}

// JoyButtonEvent covers SDL_JoyButtonEvent and SDL_ControllerButtonEvent.
type JoyButtonEvent struct {
	Which  int32
	Button uint8
	Down   bool
}

func (e *Event) JoyButton() JoyButtonEvent {
	return JoyButtonEvent{Which: e.i32(8), Button: e.u8(12), Down: e.u8(13) == 1}
}

// UserEvent is the decoded SDL_UserEvent. The data pointers are not exposed.
type UserEvent struct {
	Type     uint32
	WindowID uint32
	Code     int32
}

func (e *Event) User() UserEvent {
	return UserEvent{Type: e.Type(), WindowID: e.u32(8), Code: e.i32(12)}
}

// NewUserEvent builds an event of a type returned by SDL_RegisterEvents.
func NewUserEvent(typ uint32, windowID uint32, code int32) Event {
	var e Event
	e.put32(0, typ)
	e.put32(8, windowID)
	e.put32(12, uint32(code))
	return e
}

// Encoders used by test doubles to queue events.

func NewQuitEvent() Event {
	var e Event
	e.put32(0, EventQuit)
	return e
}

func NewKeyEvent(scancode int32, down, repeat bool) Event {
	var e Event
	if down {
		e.put32(0, EventKeyDown)
		e.put8(12, 1)
	} else {
		e.put32(0, EventKeyUp)
	}
	if repeat {
		e.put8(13, 1)
	}
	e.put32(16, uint32(scancode))
	return e
}

func NewMouseButtonEvent(button uint8, down bool, x, y int32) Event {
	var e Event
	if down {
		e.put32(0, EventMouseButtonDown)
		e.put8(17, 1)
	} else {
		e.put32(0, EventMouseButtonUp)
	}
	e.put8(16, button)
	e.put8(18, 1)
	e.put32(20, uint32(x))
	e.put32(24, uint32(y))
	return e
}

func NewMouseMotionEvent(x, y, xrel, yrel int32) Event {
	var e Event
	e.put32(0, EventMouseMotion)
	e.put32(20, uint32(x))
	e.put32(24, uint32(y))
	e.put32(28, uint32(xrel))
	e.put32(32, uint32(yrel))
	return e
}

func NewWindowEvent(windowID uint32, id uint8, data1, data2 int32) Event {
	var e Event
	e.put32(0, EventWindow)
	e.put32(8, windowID)
	e.put8(12, id)
	e.put32(16, uint32(data1))
	e.put32(20, uint32(data2))
	return e
}

func NewDeviceEvent(typ uint32, which int32) Event {
	var e Event
	e.put32(0, typ)
	e.put32(8, uint32(which))
	return e
}
