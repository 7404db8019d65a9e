package slab

// Pool pairs an Allocator with Acquire/Release method names more familiar
// to callers using it as a plain object pool rather than a general-purpose
// allocator — a thin convenience wrapper, not a separate implementation.
// It carries no state of its own beyond the embedded Allocator.
type Pool[T any] struct {
	*Allocator[T]
}

// NewPool builds a Pool around a freshly constructed Allocator.
func NewPool[T any](opts ...Option[T]) *Pool[T] {
	return &Pool[T]{Allocator: New[T](opts...)}
}

// Acquire is Create under the name pool callers expect.
func (p *Pool[T]) Acquire(inits ...func(*T)) *T {
	return p.Create(inits...)
}

// Release is Destroy under the name pool callers expect.
func (p *Pool[T]) Release(t *T) {
	p.Destroy(t)
}
