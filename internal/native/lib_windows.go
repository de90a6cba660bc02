package native

import "golang.org/x/sys/windows"

var (
	sdlLibraryNames = []string{"SDL2.dll"}
	ttfLibraryNames = []string{"SDL2_ttf.dll"}
)

func openLibrary(name string) (uintptr, error) {
	h, err := windows.LoadLibrary(name)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func closeLibrary(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}

func symbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}
