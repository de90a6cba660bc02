//go:build !linux && !darwin && !windows

package gl

import (
	"fmt"
	"runtime"

	"github.com/tinyrange/gosdl/internal/resource"
)

func Load(proc func(name string) uintptr) (OpenGL, error) {
	return nil, fmt.Errorf("gl: %s: %w", runtime.GOOS, resource.ErrUnsupported)
}
