//go:build !debug

package slab

// No-op hooks for ordinary builds. See debug.go for the -tags debug variant.

const debugBuildTagged = false

func debugAssertState(h *blockHeader, want blockState, op string) {}

func debugAssertNotState(h *blockHeader, forbidden blockState, op string) {}
