package slab

import (
	"unsafe"

	"github.com/orizon-lang/slabpool/internal/runtime/concurrency"
)

const (
	// blocksPerPuddle is the fixed number of blocks carved out of each
	// puddle; fits the 8-bit element index in a Handle.
	blocksPerPuddle = 256
	// maxPuddles is the fixed number of puddle slots an allocator owns;
	// fits the 8-bit puddle index in a Handle.
	maxPuddles = 256
	// maxCapacity is the hard ceiling on live blocks per allocator.
	maxCapacity = blocksPerPuddle * maxPuddles
)

// puddle is a contiguous region of blocksPerPuddle blocks at a fixed
// stride. Once published into Allocator.puddles, its region is never moved
// or freed until the allocator is closed — this is what makes a Handle
// (and the *T derived from it) remain valid for the allocator's lifetime.
type puddle struct {
	region []byte
	base   unsafe.Pointer
}

func newPuddle(region []byte) *puddle {
	return &puddle{region: region, base: unsafe.Pointer(unsafe.SliceData(region))}
}

// blockAt returns the address of the block at elemIdx within the puddle.
func (p *puddle) blockAt(elemIdx uint8, elemSize uintptr) unsafe.Pointer {
	return unsafe.Add(p.base, uintptr(elemIdx)*elemSize)
}

// growOne reserves the next puddle slot, requests backing memory from the
// configured MemoryProvider, initializes every block header, and pushes
// all blocksPerPuddle blocks onto the free list. Reserving the slot via a
// relaxed fetch-add (rather than a lock) is safe because publication of
// the blocks — and therefore visibility of the puddle itself — happens
// through the free-list pushes below, not through the slot write.
func (a *Allocator[T]) growOne() {
	idx := concurrency.AddUint32(&a.puddleCount, 1) - 1
	assertAlways(idx < maxPuddles, "slab: capacity exhausted: all %d puddles in use", maxPuddles)

	region, err := a.mem.Alloc(uintptr(blocksPerPuddle) * a.elemSize)
	assertAlways(err == nil, "slab: puddle allocation failed: %v", err)

	p := newPuddle(region)
	a.puddles[idx].Store(p)

	// Iterate in reverse so the lowest element index ends up on top of the
	// free list; purely cosmetic, per spec.
	for e := blocksPerPuddle - 1; e >= 0; e-- {
		blockPtr := p.blockAt(uint8(e), a.elemSize)
		hdr := headerAt(blockPtr)
		hdr.self = newHandle(uint8(idx), uint8(e), 0)
		hdr.next = HandleNone
		hdr.state = stateInitial
		a.push(blockPtr)
	}
}

// blockAddr resolves a handle's (puddle index, element index) to a block
// address. Generation bits are ignored: only the low 16 bits identify a
// block.
func (a *Allocator[T]) blockAddr(h Handle) unsafe.Pointer {
	p := a.puddles[h.puddleIndex()].Load()
	return p.blockAt(h.elemIndex(), a.elemSize)
}
