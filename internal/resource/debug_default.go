//go:build !release

package resource

const debugDefault = true
