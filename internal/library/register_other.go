//go:build !linux && !darwin && !windows

package library

import (
	"fmt"
	"runtime"

	"github.com/tinyrange/gosdl/internal/resource"
)

func register(fptr any, addr uintptr) error {
	return fmt.Errorf("library: binding functions on %s: %w", runtime.GOOS, resource.ErrUnsupported)
}
