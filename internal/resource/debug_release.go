//go:build release

package resource

const debugDefault = false
