package slab

import (
	"unsafe"

	"github.com/orizon-lang/slabpool/internal/runtime/concurrency"
)

// push returns a block to the free list. Precondition: the block is in
// stateInitial or stateUsed. The handle stamped into the head on success
// carries a freshly minted generation, so any popper that read the old
// head before this push cannot mistake a resurrected block for the one it
// originally observed (see pop's CAS loop below).
func (a *Allocator[T]) push(blockPtr unsafe.Pointer) {
	hdr := headerAt(blockPtr)

	debugAssertNotState(hdr, stateFree, "push")

	gen := uint16(concurrency.AddUint32(&a.generation, 1))
	hdr.self = hdr.self.withGeneration(gen)

	if a.debug {
		poisonPayload(payloadOf(blockPtr), a.payloadSize, poisonOnPush)
	}

	hdr.state = stateFree

	for {
		old := Handle(concurrency.LoadUint32(&a.head))
		// Plain store: the block is not yet visible as free, so there is
		// no contention on this write.
		hdr.next = old
		if concurrency.CASUint32(&a.head, uint32(old), uint32(hdr.self)) {
			return
		}
	}
}

// pop removes and returns the block at the head of the free list, or nil
// if the list is empty.
func (a *Allocator[T]) pop() unsafe.Pointer {
	for {
		headVal := Handle(concurrency.LoadUint32(&a.head))
		if headVal.isNone() {
			return nil
		}

		blockPtr := a.blockAddr(headVal)
		hdr := headerAt(blockPtr)
		next := hdr.next

		if concurrency.CASUint32(&a.head, uint32(headVal), uint32(next)) {
			debugAssertState(hdr, stateFree, "pop")

			hdr.next = HandleNone
			hdr.state = stateUsed

			if a.debug {
				poisonPayload(payloadOf(blockPtr), a.payloadSize, poisonOnPop)
			}

			return blockPtr
		}
		// Lost the race; another popper (or a push that resurrected this
		// same block with a new generation) won. Retry from a fresh load.
	}
}
