// Package resource implements exclusive ownership of native handles.
//
// A Unique owns at most one handle. It releases the handle exactly once when
// closed, transfers it with Move or Replace, and refuses to forward calls once
// it is empty. Borrowed wrappers never release. Child wrappers can be bound to
// a parent's Lifetime so that using a child after its parent was closed fails
// loudly instead of reaching the native library with a dangling handle.
//
// Wrappers are not safe for concurrent use.
package resource

import "go.uber.org/zap"

// Ownership says whether a wrapper releases its handle.
type Ownership uint8

const (
	Owned Ownership = iota
	Borrowed
)

func (o Ownership) String() string {
	if o == Borrowed {
		return "borrowed"
	}
	return "owned"
}

// State of a wrapper. Empty is terminal for a given wrapper value.
type State uint8

const (
	Empty State = iota
	Held
)

func (s State) String() string {
	if s == Held {
		return "held"
	}
	return "empty"
}

// noCopy lets go vet's copylocks check flag wrappers copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type token struct {
	kind  string
	alive bool
}

// Lifetime observes whether a wrapper still holds its handle. It follows the
// handle across moves and ends when the handle is released or detached.
type Lifetime struct {
	t *token
}

// Alive reports whether the observed handle is still held. The zero Lifetime
// is never alive.
func (l Lifetime) Alive() bool { return l.t != nil && l.t.alive }

// Kind returns the resource kind being observed.
func (l Lifetime) Kind() string {
	if l.t == nil {
		return ""
	}
	return l.t.kind
}

// Unique exclusively owns one native handle of type H.
type Unique[H comparable] struct {
	_ noCopy

	kind    string
	h       H
	held    bool
	own     Ownership
	release func(H)

	life    *token
	parent  *token
	cascade bool
	locked  bool
}

// New takes ownership of a freshly created handle.
func New[H comparable](kind string, h H, release func(H)) *Unique[H] {
	return Adopt(kind, h, Owned, release)
}

// Adopt wraps an existing handle. Borrowed wrappers never call release.
func Adopt[H comparable](kind string, h H, o Ownership, release func(H)) *Unique[H] {
	return &Unique[H]{
		kind:    kind,
		h:       h,
		held:    true,
		own:     o,
		release: release,
		life:    &token{kind: kind, alive: true},
	}
}

// Kind returns the resource kind used in errors and logs.
func (u *Unique[H]) Kind() string { return u.kind }

func (u *Unique[H]) State() State {
	if u != nil && u.held {
		return Held
	}
	return Empty
}

// Valid reports whether the wrapper holds a handle.
func (u *Unique[H]) Valid() bool { return u != nil && u.held }

// Owned reports whether Close will release the handle.
func (u *Unique[H]) Owned() bool { return u.held && u.own == Owned }

// Get returns the handle for forwarding to op. It panics with
// *UseAfterReleaseError when the wrapper is empty, and with
// *ParentReleasedError when debug checks are on and the bound parent is gone.
func (u *Unique[H]) Get(op string) H {
	if u == nil || !u.held {
		kind := "resource"
		if u != nil {
			kind = u.kind
		}
		panic(&UseAfterReleaseError{Resource: kind, Op: op})
	}
	if u.parent != nil && !u.parent.alive && Debug() {
		panic(&ParentReleasedError{Resource: u.kind, Parent: u.parent.kind, Op: op})
	}
	return u.h
}

// Raw returns the handle without checks, or the zero value when empty.
func (u *Unique[H]) Raw() H {
	if u == nil || !u.held {
		var zero H
		return zero
	}
	return u.h
}

// Move transfers the handle to a new wrapper and leaves u empty. No native
// call is made. Moving an empty wrapper yields an empty wrapper.
func (u *Unique[H]) Move() *Unique[H] {
	dst := &Unique[H]{kind: u.kind, release: u.release}
	dst.take(u)
	return dst
}

// Replace releases the handle u currently owns and takes over src's.
// Replacing a wrapper with itself does nothing.
func (u *Unique[H]) Replace(src *Unique[H]) {
	if u == src {
		return
	}
	u.Close()
	u.kind = src.kind
	u.release = src.release
	u.take(src)
}

func (u *Unique[H]) take(src *Unique[H]) {
	u.h, u.held, u.own = src.h, src.held, src.own
	u.life, u.parent, u.cascade, u.locked = src.life, src.parent, src.cascade, src.locked
	src.clear()
}

func (u *Unique[H]) clear() {
	var zero H
	u.h, u.held = zero, false
	u.life, u.parent, u.cascade, u.locked = nil, nil, false, false
}

// Detach gives up the handle without releasing it.
func (u *Unique[H]) Detach() (H, bool) {
	if !u.held {
		var zero H
		return zero, false
	}
	h := u.h
	if u.life != nil {
		u.life.alive = false
	}
	u.clear()
	return h, true
}

// Close releases an owned handle once and empties the wrapper. Panics from the
// release function are logged, not propagated. Closing an empty wrapper is a
// no-op.
//
// A child bound with BindParent whose parent is already gone is not released
// again: the native parent destroyed it. The out-of-order close is logged at
// Warn. Children bound with DependOn are always released.
//
// The lifetime stays alive while release runs so that a parent can close its
// own children from its release function.
func (u *Unique[H]) Close() {
	if u == nil || !u.held {
		return
	}
	h, own, release, life, parent, cascade := u.h, u.own, u.release, u.life, u.parent, u.cascade
	u.clear()
	defer func() {
		if life != nil {
			life.alive = false
		}
	}()

	if own != Owned || release == nil {
		return
	}
	if cascade && parent != nil && !parent.alive {
		Logger().Warn("parent released first, skipping release",
			zap.String("kind", u.kind),
			zap.String("parent", parent.kind),
			zap.Any("handle", h))
		return
	}
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("release failed",
				zap.String("kind", u.kind),
				zap.Any("handle", h),
				zap.Any("panic", r))
		}
	}()
	release(h)
	Logger().Debug("released", zap.String("kind", u.kind), zap.Any("handle", h))
}

// Lifetime returns a token that stays alive while this handle is held,
// including after the handle is moved to another wrapper.
func (u *Unique[H]) Lifetime() Lifetime {
	if u == nil || !u.held {
		return Lifetime{}
	}
	return Lifetime{t: u.life}
}

// BindParent records a parent whose native release also frees this handle.
// Get asserts the parent is alive, and Close skips the release once it is not.
func (u *Unique[H]) BindParent(p Lifetime) {
	u.parent, u.cascade = p.t, true
}

// DependOn records a parent that must outlive this handle for calls to be
// valid but does not free it. Close always releases.
func (u *Unique[H]) DependOn(p Lifetime) {
	u.parent, u.cascade = p.t, false
}

// ParentAlive reports whether the bound parent still holds its handle. A
// wrapper without a parent reports true.
func (u *Unique[H]) ParentAlive() bool {
	return u.parent == nil || u.parent.alive
}

// TryLock marks the resource as locked for op.
func (u *Unique[H]) TryLock(op string) error {
	u.Get(op)
	if u.locked {
		return &ReentrantLockError{Resource: u.kind, Op: op}
	}
	u.locked = true
	return nil
}

// Unlock clears the lock flag.
func (u *Unique[H]) Unlock() {
	u.locked = false
}

// Locked reports whether TryLock succeeded without a matching Unlock.
func (u *Unique[H]) Locked() bool { return u.held && u.locked }
