package native

var (
	sdlLibraryNames = []string{
		"libSDL2-2.0.0.dylib",
		"/opt/homebrew/lib/libSDL2-2.0.0.dylib",
		"/usr/local/lib/libSDL2-2.0.0.dylib",
		"/Library/Frameworks/SDL2.framework/SDL2",
	}
	ttfLibraryNames = []string{
		"libSDL2_ttf-2.0.0.dylib",
		"/opt/homebrew/lib/libSDL2_ttf-2.0.0.dylib",
		"/usr/local/lib/libSDL2_ttf-2.0.0.dylib",
		"/Library/Frameworks/SDL2_ttf.framework/SDL2_ttf",
	}
)
