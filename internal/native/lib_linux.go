package native

var (
	sdlLibraryNames = []string{"libSDL2-2.0.so.0", "libSDL2.so"}
	ttfLibraryNames = []string{"libSDL2_ttf-2.0.so.0", "libSDL2_ttf.so"}
)
