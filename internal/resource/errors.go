package resource

import (
	"errors"
	"fmt"
)

var (
	ErrResourceCreation   = errors.New("resource creation failed")
	ErrSubsystemOperation = errors.New("subsystem operation failed")
	ErrUseAfterRelease    = errors.New("use of released resource")
	ErrReentrantLock      = errors.New("resource already locked")
	ErrParentReleased     = errors.New("parent resource released")
	ErrOutOfBounds        = errors.New("access out of bounds")
	ErrUnsupported        = errors.New("operation not supported")
)

func failed(op, diagnostic string) string {
	if diagnostic == "" {
		return op + " failed"
	}
	return op + " failed: " + diagnostic
}

// CreationError reports that the subsystem returned no handle.
type CreationError struct {
	Resource   string
	Op         string
	Diagnostic string
}

func (e *CreationError) Error() string        { return failed(e.Op, e.Diagnostic) }
func (e *CreationError) Is(target error) bool { return target == ErrResourceCreation }

// OperationError reports a failure status from a delegated call.
type OperationError struct {
	Op         string
	Diagnostic string
}

func (e *OperationError) Error() string        { return failed(e.Op, e.Diagnostic) }
func (e *OperationError) Is(target error) bool { return target == ErrSubsystemOperation }

// UseAfterReleaseError is the panic value raised when an empty wrapper is used.
type UseAfterReleaseError struct {
	Resource string
	Op       string
}

func (e *UseAfterReleaseError) Error() string {
	return fmt.Sprintf("%s: %s is empty (moved from or closed)", e.Op, e.Resource)
}

func (e *UseAfterReleaseError) Is(target error) bool { return target == ErrUseAfterRelease }

// ReentrantLockError is returned when a resource is locked twice.
type ReentrantLockError struct {
	Resource string
	Op       string
}

func (e *ReentrantLockError) Error() string {
	return fmt.Sprintf("%s: %s is already locked", e.Op, e.Resource)
}

func (e *ReentrantLockError) Is(target error) bool { return target == ErrReentrantLock }

// ParentReleasedError is the panic value raised when a child is used after its
// parent was closed.
type ParentReleasedError struct {
	Resource string
	Parent   string
	Op       string
}

func (e *ParentReleasedError) Error() string {
	return fmt.Sprintf("%s: %s used after its %s was released", e.Op, e.Resource, e.Parent)
}

func (e *ParentReleasedError) Is(target error) bool { return target == ErrParentReleased }

// BoundsError reports a pixel access outside a locked region.
type BoundsError struct {
	Op            string
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: (%d,%d) outside %dx%d", e.Op, e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Is(target error) bool { return target == ErrOutOfBounds }
