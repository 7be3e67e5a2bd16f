package block

import "testing"

func TestBlockFlags(t *testing.T) {
	o, tr := NewOpaque(3), NewTransparent(3)
	if o.Material() != 3 || tr.Material() != 3 {
		t.Fatalf("expected material 3 for both blocks, got %d and %d", o.Material(), tr.Material())
	}
	if o.Transparent() || !tr.Transparent() {
		t.Fatalf("expected only the second block to be transparent")
	}
	if o.Visibility() != Opaque || tr.Visibility() != Translucent || Air.Visibility() != Empty {
		t.Fatalf("unexpected visibility: %v %v %v", o.Visibility(), tr.Visibility(), Air.Visibility())
	}
}

func TestNewOpaqueRejectsAir(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected NewTransparent(0) to panic")
		}
	}()
	NewTransparent(0)
}
