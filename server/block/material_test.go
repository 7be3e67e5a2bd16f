package block_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/df-mc/voxel/server/block"
	"github.com/go-gl/mathgl/mgl32"
)

func TestRegistryAssignsDenseIDs(t *testing.T) {
	r := block.NewRegistry()
	if r.Len() != 1 {
		t.Fatalf("expected registry with only air, got %d materials", r.Len())
	}
	for i, name := range []string{"stone", "custom::glass::blue", "custom::glass"} {
		id, err := r.Register(block.NewMaterial(name, mgl32.Vec4{1, 1, 1, 1}))
		if err != nil {
			t.Fatalf("register %v: %v", name, err)
		}
		if int(id) != i+1 {
			t.Fatalf("expected id %d for %v, got %d", i+1, name, id)
		}
	}
	if id, ok := r.Lookup("voxel::stone"); !ok || id != 1 {
		t.Fatalf("expected voxel::stone to have id 1, got %d (%v)", id, ok)
	}
	if m, ok := r.Material(2); !ok || m.ID != "custom::glass::blue" {
		t.Fatalf("expected material 2 to be custom::glass::blue, got %q", m.ID)
	}
	if _, ok := r.Material(4); ok {
		t.Fatalf("expected material 4 to be absent")
	}
}

func TestRegistryRejectsMalformedIdentifiers(t *testing.T) {
	r := block.NewRegistry()
	for _, name := range []string{"", "a::", "::b", "Stone", "a::b::c::d", "dirt block"} {
		_, err := r.Register(block.NewMaterial(name, mgl32.Vec4{}))
		if !errors.Is(err, block.ErrMalformedIdentifier) {
			t.Fatalf("expected ErrMalformedIdentifier for %q, got %v", name, err)
		}
		var idErr *block.IdentifierError
		if !errors.As(err, &idErr) || idErr.Input != name {
			t.Fatalf("expected IdentifierError for %q, got %v", name, err)
		}
	}
	if r.Len() != 1 {
		t.Fatalf("expected rejected materials not to be registered, got %d materials", r.Len())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := block.NewRegistry()
	if _, err := r.Register(block.NewMaterial("voxel::air", mgl32.Vec4{})); !errors.Is(err, block.ErrDuplicateMaterial) {
		t.Fatalf("expected ErrDuplicateMaterial for air, got %v", err)
	}
	if _, err := r.Register(block.NewMaterial("dirt", mgl32.Vec4{})); err != nil {
		t.Fatalf("register dirt: %v", err)
	}
	if _, err := r.Register(block.NewMaterial("voxel::dirt", mgl32.Vec4{})); !errors.Is(err, block.ErrDuplicateMaterial) {
		t.Fatalf("expected ErrDuplicateMaterial for voxel::dirt, got %v", err)
	}
}

func TestRegistryFull(t *testing.T) {
	r := block.NewRegistry()
	var err error
	for i := 1; err == nil; i++ {
		_, err = r.Register(block.NewMaterial("m"+strings.Repeat("x", i), mgl32.Vec4{}))
	}
	if !errors.Is(err, block.ErrRegistryFull) {
		t.Fatalf("expected ErrRegistryFull, got %v", err)
	}
	if r.Len() != block.MaxMaterials {
		t.Fatalf("expected %d materials, got %d", block.MaxMaterials, r.Len())
	}
}

func TestDefaultBlocks(t *testing.T) {
	r := block.Default()
	if b := r.MustBlock(block.LeavesID); !b.Transparent() {
		t.Fatalf("expected leaves to be transparent")
	}
	if b := r.MustBlock(block.WaterID); !b.Transparent() {
		t.Fatalf("expected water to be transparent")
	}
	if b := r.MustBlock(block.StoneID); b.Transparent() || b.Empty() {
		t.Fatalf("expected stone to be opaque, got %v", b)
	}
	if b, ok := r.Block("voxel::air"); !ok || !b.Empty() {
		t.Fatalf("expected air lookup to return Air, got %v", b)
	}
	m, _ := r.Material(r.MustBlock(block.WaterID).Material())
	if m.Colour[3] < 0.39 || m.Colour[3] > 0.41 {
		t.Fatalf("expected water alpha of 102/255, got %v", m.Colour[3])
	}
	stone, _ := r.Material(r.MustBlock(block.StoneID).Material())
	for i, v := range stone.Colour {
		if want := float32([4]float64{128.0 / 255, 128.0 / 255, 128.0 / 255, 1}[i]); v < want-0.001 || v > want+0.001 {
			t.Fatalf("expected stone colour #808080, got %v", stone.Colour)
		}
	}
}

func TestLoadCatalogue(t *testing.T) {
	const src = `
materials:
  - id: voxel::sand
    colour: "#dbd3a0"
    roughness: 0.9
  - id: glass
    colour: "#ffffff"
    alpha: 60
    flags: [transparent]
  - id: "Bad Name"
    colour: "#000000"
  - id: lava
    colour: "not a colour"
  - id: voxel::magma
    colour: "#ff0000"
    flags: [sticky]
`
	materials, err := block.LoadCatalogue(strings.NewReader(src))
	if err == nil {
		t.Fatalf("expected errors for malformed entries")
	}
	if !errors.Is(err, block.ErrMalformedIdentifier) {
		t.Fatalf("expected joined error to contain ErrMalformedIdentifier, got %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("expected 2 valid materials, got %d", len(materials))
	}
	if materials[0].Roughness != 0.9 || materials[0].Reflectance != 0.5 {
		t.Fatalf("unexpected surface properties for sand: %+v", materials[0])
	}
	if !materials[1].Flags.Has(block.Transparent) {
		t.Fatalf("expected glass to be transparent")
	}

	r := block.NewRegistry()
	if err := r.RegisterAll(materials...); err != nil {
		t.Fatalf("register catalogue: %v", err)
	}
	if b, ok := r.Block("voxel::glass"); !ok || !b.Transparent() {
		t.Fatalf("expected transparent glass block, got %v (%v)", b, ok)
	}
}
