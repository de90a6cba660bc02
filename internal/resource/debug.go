package resource

import "sync/atomic"

var debug atomic.Bool

func init() {
	debug.Store(debugDefault)
}

// SetDebug toggles the parent-liveness assertions made by Get. They are on by
// default and off in binaries built with the release tag.
func SetDebug(on bool) {
	debug.Store(on)
}

// Debug reports whether parent-liveness assertions are enabled.
func Debug() bool {
	return debug.Load()
}
