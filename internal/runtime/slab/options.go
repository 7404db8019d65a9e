package slab

// config collects New's constructor-time settings before they are frozen
// into an Allocator. Mirrors the functional-options shape used across the
// pack's generic cache/store constructors (e.g. other_examples' arena-cache
// Option[K, V]).
type config[T any] struct {
	mem     MemoryProvider
	debug   bool
	destroy func(*T)
	stride  uintptr
}

// Option configures an Allocator[T] at construction time.
type Option[T any] func(*config[T])

// WithMemoryProvider overrides the default heap-backed MemoryProvider.
func WithMemoryProvider[T any](mem MemoryProvider) Option[T] {
	return func(c *config[T]) { c.mem = mem }
}

// WithDebug enables the runtime debug flag: payload poisoning on every
// push/pop, and an ownership check (Contains) in Destroy. This is independent of the -tags debug build-time switch
// (debug.go/debug_off.go), which gates state-transition assertions instead;
// the two can be combined.
func WithDebug[T any](enabled bool) Option[T] {
	return func(c *config[T]) { c.debug = enabled }
}

// WithStride overrides the automatically computed per-block stride, e.g.
// to force extra padding for alignment. New validates it against the
// invariants in spec.md §3: a multiple of 16, at least 2*headerSize, and
// large enough to hold T — violations are a construction-time programmer
// error (spec.md §7 "Misconfiguration"), not a recoverable error.
func WithStride[T any](stride uintptr) Option[T] {
	return func(c *config[T]) { c.stride = stride }
}

// WithDestructor registers a cleanup function run on every value just
// before its block is recycled, standing in for "T's destructor" from
// spec.md §4.3 — Go has no destructors, so the allocator calls this
// explicitly instead.
func WithDestructor[T any](fn func(*T)) Option[T] {
	return func(c *config[T]) { c.destroy = fn }
}
