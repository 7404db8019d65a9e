package slab

import "fmt"

// assertAlways panics unconditionally when cond is false, regardless of
// build mode. spec.md §7 treats misconfiguration and capacity exhaustion
// as programmer bugs that must crash at the point of detection in both
// debug and release builds — unlike the state-transition checks in
// debug.go, which only run under -tags debug.
func assertAlways(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
