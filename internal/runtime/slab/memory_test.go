package slab

import "testing"

func TestHeapMemoryProviderAllocIsZeroed(t *testing.T) {
	mem := NewHeapMemoryProvider()

	region, err := mem.Alloc(256)
	if err != nil {
		t.Fatalf("Alloc() error = %v", err)
	}
	if len(region) != 256 {
		t.Fatalf("len(region) = %d, want 256", len(region))
	}
	for i, b := range region {
		if b != 0 {
			t.Fatalf("region[%d] = %#x, want 0", i, b)
		}
	}

	if err := mem.Free(region); err != nil {
		t.Fatalf("Free() error = %v", err)
	}
}

func TestHeapMemoryProviderClear(t *testing.T) {
	mem := NewHeapMemoryProvider()
	region, _ := mem.Alloc(16)
	for i := range region {
		region[i] = 0xFF
	}

	mem.Clear(region)

	for i, b := range region {
		if b != 0 {
			t.Fatalf("region[%d] = %#x after Clear, want 0", i, b)
		}
	}
}

func TestMmapMemoryProviderRoundTrip(t *testing.T) {
	mem := NewMmapMemoryProvider()

	region, err := mem.Alloc(4096)
	if err != nil {
		t.Fatalf("Alloc() error = %v", err)
	}
	if len(region) != 4096 {
		t.Fatalf("len(region) = %d, want 4096", len(region))
	}

	region[0] = 42
	if region[0] != 42 {
		t.Fatal("region is not writable")
	}

	if err := mem.Free(region); err != nil {
		t.Fatalf("Free() error = %v", err)
	}
}

func TestAllocatorWithMemoryProviderOption(t *testing.T) {
	a := New[counters](WithMemoryProvider[counters](NewMmapMemoryProvider()))

	c := a.Create(func(c *counters) { c.a = 1 })
	if c.a != 1 {
		t.Fatalf("c.a = %d, want 1", c.a)
	}
	a.Destroy(c)

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
