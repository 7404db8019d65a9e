//go:build linux || darwin || freebsd || netbsd || openbsd

package slab

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mmapMemoryProvider backs each puddle with its own anonymous mmap region
// instead of the Go heap, following the teacher's own preference for
// direct syscalls over libc/cgo (internal/runtime/asyncio used
// golang.org/x/sys/unix the same way for zero-copy I/O). Anonymous mappings
// come back zero-filled, so Alloc needs no extra clear pass.
type mmapMemoryProvider struct{}

// NewMmapMemoryProvider returns a MemoryProvider that backs puddles with
// page-aligned anonymous mmap regions. Available on unix-family platforms;
// see memory_other.go for the portable fallback.
func NewMmapMemoryProvider() MemoryProvider { return mmapMemoryProvider{} }

func (mmapMemoryProvider) Alloc(size uintptr) ([]byte, error) {
	region, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("slab: mmap %d bytes: %w", size, err)
	}
	return region, nil
}

func (mmapMemoryProvider) Free(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	if err := unix.Munmap(region); err != nil {
		return fmt.Errorf("slab: munmap: %w", err)
	}
	return nil
}

func (mmapMemoryProvider) Clear(region []byte) {
	for i := range region {
		region[i] = 0
	}
}
