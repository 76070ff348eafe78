package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := EnsureLen(nil, 16)
	if len(buf) != 16 {
		t.Fatalf("EnsureLen(nil, 16) len = %d, want 16", len(buf))
	}

	// Shrinking the length must reuse the backing array.
	shrunk := EnsureLen(buf, 4)
	if len(shrunk) != 4 {
		t.Fatalf("EnsureLen len = %d, want 4", len(shrunk))
	}
	if cap(shrunk) != cap(buf) {
		t.Fatalf("EnsureLen reallocated on shrink: cap %d != %d", cap(shrunk), cap(buf))
	}

	// Growing within capacity must not allocate.
	regrown := EnsureLen(shrunk, 16)
	if &regrown[0] != &buf[0] {
		t.Fatal("EnsureLen reallocated within existing capacity")
	}

	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Fatalf("EnsureLen(buf, 0) len = %d, want 0", len(got))
	}
	if got := EnsureLen(buf, -3); len(got) != 0 {
		t.Fatalf("EnsureLen(buf, -3) len = %d, want 0", len(got))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, -2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("Zero left buf[%d] = %v", i, v)
		}
	}
}
