package slab

import "unsafe"

// blockState tags a block's position in its lifecycle. It is not consulted
// by the hot-path correctness logic (membership on the free list is what
// actually matters); it exists so misuse is detectable at the point of
// corruption rather than only at the point of crash.
type blockState uint32

const (
	stateInitial blockState = iota // never allocated
	stateFree                      // reachable from the free-list head
	stateUsed                      // handed out to a caller
)

// headerSize is the fixed size of blockHeader, enforced by its own padding
// so headerSize == 16 regardless of struct layout changes.
const headerSize = 16

// blockHeader sits at the front of every block. next/self are 4 bytes each,
// state is stored as a uint32 (so atomic ops on it are possible if a future
// debug build wants them), and a 4-byte pad rounds the header out to 16.
type blockHeader struct {
	next  Handle
	self  Handle
	state blockState
	_pad  uint32
}

func init() {
	if unsafe.Sizeof(blockHeader{}) != headerSize {
		panic("slab: blockHeader size invariant violated")
	}
}

// roundUp16 rounds n up to the next multiple of 16.
func roundUp16(n uintptr) uintptr {
	return (n + 15) &^ 15
}

// strideFor computes the per-block stride for a payload of size payloadSize:
// round_up(header + payload, 16), with a floor of 2*headerSize as required
// by spec.
func strideFor(payloadSize uintptr) uintptr {
	stride := roundUp16(headerSize + payloadSize)
	if stride < 2*headerSize {
		stride = 2 * headerSize
	}
	return stride
}

// headerAt interprets ptr as a *blockHeader.
func headerAt(ptr unsafe.Pointer) *blockHeader {
	return (*blockHeader)(ptr)
}

// payloadOf returns the address of the T payload following a header at ptr.
func payloadOf(ptr unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(ptr, headerSize)
}

// blockOf recovers the owning block's header address from a payload pointer.
func blockOf(payload unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(payload, -headerSize)
}
