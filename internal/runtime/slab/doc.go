// Package slab implements a fixed-block, thread-safe slab allocator.
//
// It backs high-churn object pools — handle tables, small descriptor
// objects, tagged resource slots — with a single compile-time-fixed value
// type T. Allocation and deallocation are lock-free: a single shared
// free-list head is manipulated with a generation-tagged compare-and-swap
// so that concurrent Create/Destroy calls never need external
// synchronization. Storage grows in fixed "puddles" of 256 blocks each,
// so once a block address is handed out it stays valid until the
// allocator itself is closed.
package slab
