package native

// Subsystem flags for Init (SDL_INIT_*).
const (
	InitTimer          = 0x00000001
	InitAudio          = 0x00000010
	InitVideo          = 0x00000020
	InitJoystick       = 0x00000200
	InitHaptic         = 0x00001000
	InitGameController = 0x00002000
	InitEvents         = 0x00004000
	InitSensor         = 0x00008000
	InitEverything     = InitTimer | InitAudio | InitVideo | InitEvents |
		InitJoystick | InitHaptic | InitGameController | InitSensor
)

// Window flags (SDL_WINDOW_*).
const (
	WindowFullscreen        = 0x00000001
	WindowOpenGL            = 0x00000002
	WindowShown             = 0x00000004
	WindowHidden            = 0x00000008
	WindowBorderless        = 0x00000010
	WindowResizable         = 0x00000020
	WindowMinimized         = 0x00000040
	WindowMaximized         = 0x00000080
	WindowInputGrabbed      = 0x00000100
	WindowInputFocus        = 0x00000200
	WindowMouseFocus        = 0x00000400
	WindowForeign           = 0x00000800
	WindowFullscreenDesktop = WindowFullscreen | 0x00001000
	WindowAllowHighDPI      = 0x00002000
	WindowVulkan            = 0x10000000
)

// Window position sentinels.
const (
	WindowPosUndefined = 0x1FFF0000
	WindowPosCentered  = 0x2FFF0000
)

// Renderer flags (SDL_RENDERER_*).
const (
	RendererSoftware      = 0x00000001
	RendererAccelerated   = 0x00000002
	RendererPresentVSync  = 0x00000004
	RendererTargetTexture = 0x00000008
)

// Texture access patterns (SDL_TEXTUREACCESS_*).
const (
	TextureAccessStatic    = 0
	TextureAccessStreaming = 1
	TextureAccessTarget    = 2
)

// Blend modes (SDL_BLENDMODE_*).
const (
	BlendModeNone  = 0x00000000
	BlendModeBlend = 0x00000001
	BlendModeAdd   = 0x00000002
	BlendModeMod   = 0x00000004
	BlendModeMul   = 0x00000008
)

// Pixel formats (SDL_PIXELFORMAT_*). Only the packed and byte-array formats
// this module knows how to address are listed.
const (
	PixelFormatUnknown  = 0
	PixelFormatRGB332   = 0x14110801
	PixelFormatRGB565   = 0x15151002
	PixelFormatRGB24    = 0x17101803
	PixelFormatBGR24    = 0x17401803
	PixelFormatXRGB8888 = 0x16161804
	PixelFormatXBGR8888 = 0x16561804
	PixelFormatARGB8888 = 0x16362004
	PixelFormatRGBA8888 = 0x16462004
	PixelFormatABGR8888 = 0x16762004
	PixelFormatBGRA8888 = 0x16862004

	// PixelFormatRGBA32 is the format whose bytes in memory are R,G,B,A on the
	// current (little-endian) platforms.
	PixelFormatRGBA32 = PixelFormatABGR8888
)

// IsFourCC reports whether format is a FourCC (planar YUV style) format.
func IsFourCC(format uint32) bool {
	return format != 0 && (format>>28)&0x0F != 1
}

// BytesPerPixel mirrors SDL_BYTESPERPIXEL.
func BytesPerPixel(format uint32) int {
	if IsFourCC(format) {
		switch format {
		case fourCC('Y', 'U', 'Y', '2'), fourCC('U', 'Y', 'V', 'Y'), fourCC('Y', 'V', 'Y', 'U'):
			return 2
		}
		return 1
	}
	return int(format & 0xFF)
}

// BitsPerPixel mirrors SDL_BITSPERPIXEL.
func BitsPerPixel(format uint32) int {
	if IsFourCC(format) {
		return 0
	}
	return int((format >> 8) & 0xFF)
}

func fourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// GL attributes (SDL_GLattr).
const (
	GLRedSize                = 0
	GLGreenSize              = 1
	GLBlueSize               = 2
	GLAlphaSize              = 3
	GLBufferSize             = 4
	GLDoubleBuffer           = 5
	GLDepthSize              = 6
	GLStencilSize            = 7
	GLStereo                 = 12
	GLMultisampleBuffers     = 13
	GLMultisampleSamples     = 14
	GLAcceleratedVisual      = 15
	GLContextMajorVersion    = 17
	GLContextMinorVersion    = 18
	GLContextFlags           = 20
	GLContextProfileMask     = 21
	GLShareWithCurrent       = 22
	GLFramebufferSRGBCapable = 23
)

// GL context profiles (SDL_GL_CONTEXT_PROFILE_*).
const (
	GLProfileCore          = 0x0001
	GLProfileCompatibility = 0x0002
	GLProfileES            = 0x0004
)

// Haptic feature bits (SDL_HAPTIC_*).
const (
	HapticConstant     = 1 << 0
	HapticSine         = 1 << 1
	HapticLeftRight    = 1 << 2
	HapticTriangle     = 1 << 3
	HapticSawtoothUp   = 1 << 4
	HapticSawtoothDown = 1 << 5
	HapticRamp         = 1 << 6
	HapticSpring       = 1 << 7
	HapticDamper       = 1 << 8
	HapticInertia      = 1 << 9
	HapticFriction     = 1 << 10
	HapticCustom       = 1 << 11
	HapticGain         = 1 << 12
	HapticAutocenter   = 1 << 13
	HapticStatus       = 1 << 14
	HapticPause        = 1 << 15

	// HapticInfinity repeats an effect until stopped.
	HapticInfinity = 4294967295
)

// Haptic direction encodings (SDL_HAPTIC_POLAR etc.).
const (
	HapticPolar        = 0
	HapticCartesian    = 1
	HapticSpherical    = 2
	HapticSteeringAxis = 3
)

// Joystick power levels (SDL_JOYSTICK_POWER_*).
const (
	PowerUnknown = -1
	PowerEmpty   = 0
	PowerLow     = 1
	PowerMedium  = 2
	PowerFull    = 3
	PowerWired   = 4
	PowerMax     = 5
)

// Joystick hat positions (SDL_HAT_*).
const (
	HatCentered  = 0x00
	HatUp        = 0x01
	HatRight     = 0x02
	HatDown      = 0x04
	HatLeft      = 0x08
	HatRightUp   = HatRight | HatUp
	HatRightDown = HatRight | HatDown
	HatLeftUp    = HatLeft | HatUp
	HatLeftDown  = HatLeft | HatDown
)

// Game controller axes (SDL_CONTROLLER_AXIS_*).
const (
	ControllerAxisInvalid      = -1
	ControllerAxisLeftX        = 0
	ControllerAxisLeftY        = 1
	ControllerAxisRightX       = 2
	ControllerAxisRightY       = 3
	ControllerAxisTriggerLeft  = 4
	ControllerAxisTriggerRight = 5
)

// Game controller buttons (SDL_CONTROLLER_BUTTON_*).
const (
	ControllerButtonInvalid       = -1
	ControllerButtonA             = 0
	ControllerButtonB             = 1
	ControllerButtonX             = 2
	ControllerButtonY             = 3
	ControllerButtonBack          = 4
	ControllerButtonGuide         = 5
	ControllerButtonStart         = 6
	ControllerButtonLeftStick     = 7
	ControllerButtonRightStick    = 8
	ControllerButtonLeftShoulder  = 9
	ControllerButtonRightShoulder = 10
	ControllerButtonDPadUp        = 11
	ControllerButtonDPadDown      = 12
	ControllerButtonDPadLeft      = 13
	ControllerButtonDPadRight     = 14
)

// System cursors (SDL_SYSTEM_CURSOR_*).
const (
	SystemCursorArrow     = 0
	SystemCursorIBeam     = 1
	SystemCursorWait      = 2
	SystemCursorCrosshair = 3
	SystemCursorWaitArrow = 4
	SystemCursorSizeNWSE  = 5
	SystemCursorSizeNESW  = 6
	SystemCursorSizeWE    = 7
	SystemCursorSizeNS    = 8
	SystemCursorSizeAll   = 9
	SystemCursorNo        = 10
	SystemCursorHand      = 11
)

// ShowCursor toggles (SDL_QUERY / SDL_DISABLE / SDL_ENABLE).
const (
	CursorQuery   = -1
	CursorDisable = 0
	CursorEnable  = 1
)

// Mouse buttons (SDL_BUTTON_*).
const (
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
	ButtonX1     = 4
	ButtonX2     = 5
)

// SDL_ttf font styles (TTF_STYLE_*).
const (
	FontStyleNormal        = 0x00
	FontStyleBold          = 0x01
	FontStyleItalic        = 0x02
	FontStyleUnderline     = 0x04
	FontStyleStrikethrough = 0x08
)
