//go:build linux || darwin || windows

package library

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// register binds fptr to addr. purego rejects signatures it cannot call by
// panicking; that is reported as an error instead.
func register(fptr any, addr uintptr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("library: bind %T: %v", fptr, r)
		}
	}()
	purego.RegisterFunc(fptr, addr)
	return nil
}
