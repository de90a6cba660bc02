//go:build !linux && !darwin && !windows

package native

import (
	"errors"
	"runtime"
)

var errUnsupported = errors.New("native: SDL loading is not supported on " + runtime.GOOS)

// Load always fails on platforms without a dynamic loader binding.
func Load(path string) (SDL, error) { return nil, errUnsupported }

// LoadTTF always fails on platforms without a dynamic loader binding.
func LoadTTF(path string) (TTF, error) { return nil, errUnsupported }
