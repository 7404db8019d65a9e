package slab

import "unsafe"

// Poison patterns applied to a block's payload bytes when the allocator's
// runtime debug flag (WithDebug) is set, so that a use-after-free
// or a read of stale payload bytes shows up as an unmistakable pattern
// instead of silently-plausible leftover data.
const (
	poisonOnPush byte = 0xAA
	poisonOnPop  byte = 0xBB
)

func poisonPayload(payload unsafe.Pointer, size uintptr, pattern byte) {
	b := unsafe.Slice((*byte)(payload), size)
	for i := range b {
		b[i] = pattern
	}
}
