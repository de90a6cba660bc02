package resource

import (
	"errors"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		msg  string
		base error
	}{
		{&CreationError{Resource: "window", Op: "SDL_CreateWindow", Diagnostic: "No available video device"},
			"SDL_CreateWindow failed: No available video device", ErrResourceCreation},
		{&OperationError{Op: "SDL_RenderClear"}, "SDL_RenderClear failed", ErrSubsystemOperation},
		{&BoundsError{Op: "At", X: 4, Y: 0, Width: 4, Height: 2}, "At: (4,0) outside 4x2", ErrOutOfBounds},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.msg {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.msg)
		}
		if !errors.Is(tt.err, tt.base) {
			t.Errorf("%T does not match %v", tt.err, tt.base)
		}
	}
}
