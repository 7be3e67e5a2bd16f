package biome

import (
	"testing"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
	"github.com/df-mc/voxel/server/world/generator/terrain/populate"
)

type named string

func (n named) Name() string                          { return string(n) }
func (named) Carve(*populate.Context, populate.Column) {}
func (named) Populators() []populate.Populator         { return nil }

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry()
	if r.Select(0.5) != nil {
		t.Fatalf("expected nil biome from an empty registry")
	}
	// Register out of order: selection must not depend on it.
	r.Register(0.6, named("c"))
	r.Register(0.2, named("a"))
	r.Register(0.4, named("b"))

	cases := map[float64]string{
		0.0:  "a",
		0.19: "a",
		0.2:  "a",
		0.39: "a",
		0.4:  "b",
		0.59: "b",
		0.6:  "c",
		0.99: "c",
	}
	for score, want := range cases {
		if got := r.Select(score).Name(); got != want {
			t.Fatalf("expected %v for score %v, got %v", want, score, got)
		}
	}

	r.Register(0.4, named("d"))
	if r.Len() != 3 || r.Select(0.5).Name() != "d" {
		t.Fatalf("expected re-registering a threshold to replace its biome")
	}
}

func TestLayeredCarve(t *testing.T) {
	grass, dirt, stone := block.NewOpaque(5), block.NewOpaque(2), block.NewOpaque(3)
	buf := chunk.New(chunk.ChunkShape, block.Air)
	buf.FillRegion(chunk.Extent{Size: [3]int{32, 20, 32}}, stone)
	ctx := &populate.Context{Buf: buf, Min: cube.Pos{0, 64, 0}, SeaLevel: 32}

	l := Layered{Top: grass, Sub: dirt, Depth: 8}
	l.Carve(ctx, populate.Column{X: 3, Z: 4, Surface: 84})

	if got := buf.At(3, 19, 4); got != grass {
		t.Fatalf("expected grass at the surface, got %v", got)
	}
	for y := 12; y < 19; y++ {
		if got := buf.At(3, y, 4); got != dirt {
			t.Fatalf("expected dirt at y=%d, got %v", y, got)
		}
	}
	if got := buf.At(3, 11, 4); got != stone {
		t.Fatalf("expected stone below the strata, got %v", got)
	}

	// A surface in the chunk above still carves the top of this chunk.
	l.Carve(ctx, populate.Column{X: 5, Z: 5, Surface: 98})
	for y := 26; y < 32; y++ {
		if got := buf.At(5, y, 5); got != dirt {
			t.Fatalf("expected dirt at y=%d, got %v", y, got)
		}
	}
	if got := buf.At(5, 25, 5); got != block.Air {
		t.Fatalf("expected the strata to stop at depth 8, got %v", got)
	}
}
