//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package slab

// NewMmapMemoryProvider falls back to the heap-backed provider on platforms
// without a wired mmap implementation (e.g. windows). Callers that want an
// mmap-backed allocator unconditionally should check build constraints
// themselves; this keeps slab buildable everywhere.
func NewMmapMemoryProvider() MemoryProvider { return NewHeapMemoryProvider() }
