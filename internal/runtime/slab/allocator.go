package slab

import (
	"sync/atomic"
	"unsafe"

	"github.com/orizon-lang/slabpool/internal/runtime/concurrency"
)

// Allocator is a fixed-block, thread-safe slab allocator for values of type
// T. Create and Destroy may be called concurrently from any number of
// goroutines without external synchronization: the free list is a
// lock-free, generation-tagged LIFO (see freelist.go), and storage grows
// in fixed puddles that are never relocated (see puddle.go).
//
// The zero Allocator is not usable; construct one with New.
type Allocator[T any] struct {
	elemSize    uintptr
	payloadSize uintptr
	mem         MemoryProvider
	debug       bool
	destroy     func(*T)

	puddles     [maxPuddles]atomic.Pointer[puddle]
	puddleCount uint32 // next unreserved puddle slot; fetch-added in growOne
	head        uint32 // free-list head, as a Handle
	generation  uint32 // monotonic counter stamped into handles on push

	allocCount uint64
	freeCount  uint64
}

// New constructs an Allocator for values of type T.
func New[T any](opts ...Option[T]) *Allocator[T] {
	var zero T
	payloadSize := unsafe.Sizeof(zero)

	cfg := config[T]{mem: NewHeapMemoryProvider()}
	for _, opt := range opts {
		opt(&cfg)
	}

	stride := cfg.stride
	if stride == 0 {
		stride = strideFor(payloadSize)
	} else {
		assertAlways(stride%16 == 0, "slab: configured stride %d is not a multiple of 16", stride)
		assertAlways(stride >= 2*headerSize, "slab: configured stride %d is below the minimum %d", stride, 2*headerSize)
		assertAlways(payloadSize <= stride-headerSize, "slab: T (%d bytes) does not fit in configured stride %d", payloadSize, stride)
	}

	return &Allocator[T]{
		elemSize:    stride,
		payloadSize: payloadSize,
		mem:         cfg.mem,
		debug:       cfg.debug,
		destroy:     cfg.destroy,
		head:        uint32(HandleNone),
	}
}

// Create allocates and constructs a T, applying each init function in order
// to the zeroed payload before returning it — the Go analogue of spec.md's
// "construct a T in place using the forwarded arguments". It is fatal
// (spec.md §7 "Capacity exhausted") if all 65536 blocks are already live.
func (a *Allocator[T]) Create(inits ...func(*T)) *T {
	blockPtr := a.pop()
	if blockPtr == nil {
		a.growOne()
		blockPtr = a.pop()
		assertAlways(blockPtr != nil, "slab: capacity exhausted immediately after growOne")
	}

	payload := payloadOf(blockPtr)
	t := (*T)(payload)
	*t = *new(T) // reset to the zero value; payload may carry a poison pattern from pop

	for _, init := range inits {
		init(t)
	}

	atomic.AddUint64(&a.allocCount, 1)

	return t
}

// Destroy runs the allocator's configured destructor (if any) on t, then
// recovers and recycles its owning block. Calling Destroy twice on the
// same pointer, or on a pointer Create never returned, is a programmer
// error (spec.md §7); in a -tags debug build it panics instead of silently
// corrupting the free list. With the runtime debug flag (WithDebug) set,
// Destroy also panics on a pointer that Contains does not recognize.
func (a *Allocator[T]) Destroy(t *T) {
	if a.debug {
		assertAlways(a.Contains(unsafe.Pointer(t)), "slab: Destroy of a pointer not owned by this allocator")
	}

	if a.destroy != nil {
		a.destroy(t)
	}

	blockPtr := blockOf(unsafe.Pointer(t))
	debugAssertState(headerAt(blockPtr), stateUsed, "destroy")

	a.push(blockPtr)
	atomic.AddUint64(&a.freeCount, 1)
}

// Close releases every puddle back to the configured MemoryProvider.
// Closing an allocator while blocks remain in use is undefined: callers
// must drain outstanding Create results first.
func (a *Allocator[T]) Close() error {
	n := concurrency.LoadUint32(&a.puddleCount)
	for i := uint32(0); i < n; i++ {
		p := a.puddles[i].Load()
		if p == nil {
			continue
		}
		if err := a.mem.Free(p.region); err != nil {
			return err
		}
		a.puddles[i].Store(nil)
	}
	return nil
}

// Contains reports whether ptr falls inside any puddle this allocator
// owns, at the payload address of one of its blocks (a stride multiple
// plus headerSize from the puddle base). It is O(puddles) and is intended for
// debug-time ownership validation (spec.md §4.3 "destroy" debug aid), not
// the release hot path.
func (a *Allocator[T]) Contains(ptr unsafe.Pointer) bool {
	n := concurrency.LoadUint32(&a.puddleCount)
	addr := uintptr(ptr)
	for i := uint32(0); i < n; i++ {
		p := a.puddles[i].Load()
		if p == nil {
			continue
		}
		base := uintptr(p.base)
		size := uintptr(blocksPerPuddle) * a.elemSize
		if addr < base || addr >= base+size {
			continue
		}
		return (addr-base)%a.elemSize == headerSize
	}
	return false
}
