package native

import "testing"

func TestEventKeyRoundTrip(t *testing.T) {
	e := NewKeyEvent(41, true, true)
	if e.Type() != EventKeyDown {
		t.Fatalf("type = %#x", e.Type())
	}
	k := e.Key()
	if !k.Down || !k.Repeat || k.Scancode != 41 {
		t.Fatalf("decoded %+v", k)
	}

	ev := NewKeyEvent(41, false, false)
	up := ev.Key()
	if up.Down || up.Repeat {
		t.Fatalf("decoded %+v", up)
	}
}

func TestEventMouseButton(t *testing.T) {
	e := NewMouseButtonEvent(ButtonRight, true, -5, 300)
	if e.Type() != EventMouseButtonDown {
		t.Fatalf("type = %#x", e.Type())
	}
	mb := e.MouseButton()
	if mb.Button != ButtonRight || !mb.Down || mb.X != -5 || mb.Y != 300 || mb.Clicks != 1 {
		t.Fatalf("decoded %+v", mb)
	}
}

func TestEventMouseMotion(t *testing.T) {
	e := NewMouseMotionEvent(10, 20, -1, 2)
	mm := e.MouseMotion()
	if mm.X != 10 || mm.Y != 20 || mm.XRel != -1 || mm.YRel != 2 {
		t.Fatalf("decoded %+v", mm)
	}
}

func TestEventWindowAndDevice(t *testing.T) {
	we := NewWindowEvent(7, WindowEventResized, 640, 480)
	w := we.Window()
	if w.WindowID != 7 || w.Event != WindowEventResized || w.Data1 != 640 || w.Data2 != 480 {
		t.Fatalf("decoded %+v", w)
	}

	d := NewDeviceEvent(EventJoyDeviceRemoved, 3)
	if d.Type() != EventJoyDeviceRemoved || d.DeviceWhich() != 3 {
		t.Fatalf("type %#x which %d", d.Type(), d.DeviceWhich())
	}
}

func TestEventUser(t *testing.T) {
	e := NewUserEvent(EventUser+2, 7, -3)
	u := e.User()
	if u.Type != EventUser+2 || u.WindowID != 7 || u.Code != -3 {
		t.Fatalf("decoded %+v", u)
	}
}

func TestPixelFormatHelpers(t *testing.T) {
	tests := []struct {
		format uint32
		bytes  int
		bits   int
		fourcc bool
	}{
		{PixelFormatARGB8888, 4, 32, false},
		{PixelFormatXRGB8888, 4, 24, false},
		{PixelFormatRGB24, 3, 24, false},
		{PixelFormatRGB565, 2, 16, false},
		{fourCC('Y', 'U', 'Y', '2'), 2, 0, true},
		{fourCC('I', 'Y', 'U', 'V'), 1, 0, true},
	}
	for _, tt := range tests {
		if got := BytesPerPixel(tt.format); got != tt.bytes {
			t.Errorf("BytesPerPixel(%#x) = %d, want %d", tt.format, got, tt.bytes)
		}
		if got := BitsPerPixel(tt.format); got != tt.bits {
			t.Errorf("BitsPerPixel(%#x) = %d, want %d", tt.format, got, tt.bits)
		}
		if got := IsFourCC(tt.format); got != tt.fourcc {
			t.Errorf("IsFourCC(%#x) = %v", tt.format, got)
		}
	}
}
