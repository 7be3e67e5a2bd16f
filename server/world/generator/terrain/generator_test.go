package terrain_test

import (
	"testing"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
	"github.com/df-mc/voxel/server/world/generator/terrain"
	"github.com/df-mc/voxel/server/world/generator/terrain/biome"
	"github.com/df-mc/voxel/server/world/generator/terrain/populate"
)

func TestGenerateDeterministic(t *testing.T) {
	conf := terrain.Config{Seed: 1234}
	a, b := conf.New(), conf.New()
	for _, pos := range []cube.ChunkPos{{0, 0, 0}, {-3, 3, 7}, {12, 4, -9}, {-1, 2, -1}} {
		first, second := a.Generate(pos), b.Generate(pos)
		if !first.Equal(second) {
			t.Fatalf("expected identical buffers for chunk %v", pos)
		}
		if chunk.Digest(first) != chunk.Digest(a.Generate(pos)) {
			t.Fatalf("expected regenerating chunk %v on the same generator to yield the same digest", pos)
		}
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	a := terrain.Config{Seed: 1}.New()
	b := terrain.Config{Seed: 2}.New()
	for x := 0; x < 64; x++ {
		if a.HeightAt(x*17, x*31) != b.HeightAt(x*17, x*31) {
			return
		}
	}
	t.Fatalf("expected height fields of different seeds to differ")
}

func TestGenerateBedrockFloor(t *testing.T) {
	g := terrain.Config{Seed: 5}.New()
	bedrock := block.Default().MustBlock(block.BedrockID)

	buf := g.Generate(cube.ChunkPos{3, 0, -2})
	for x := 0; x < chunk.Size; x++ {
		for z := 0; z < chunk.Size; z++ {
			for y := 0; y < 2; y++ {
				if b := buf.At(x, y, z); b != bedrock {
					t.Fatalf("expected bedrock at %v %v %v, got %v", x, y, z, b)
				}
			}
		}
	}
	above := g.Generate(cube.ChunkPos{3, 1, -2})
	for x := 0; x < chunk.Size; x++ {
		for z := 0; z < chunk.Size; z++ {
			if b := above.At(x, 0, z); b == bedrock {
				t.Fatalf("expected no bedrock above the world floor at %v 0 %v", x, z)
			}
		}
	}
}

func TestGenerateWaterBelowSeaLevel(t *testing.T) {
	g := terrain.Config{Seed: 9, BaseHeight: 10, Amplitude: 1}.New()
	water := block.Default().MustBlock(block.WaterID)

	buf := g.Generate(cube.ChunkPos{0, 0, 0})
	for x := 0; x < chunk.Size; x++ {
		for z := 0; z < chunk.Size; z++ {
			h := g.HeightAt(x, z)
			if h < 8 || h > 12 {
				t.Fatalf("expected height near 10 at %v %v, got %v", x, z, h)
			}
			for y := h; y < 32; y++ {
				if b := buf.At(x, y, z); b != water {
					t.Fatalf("expected water at %v %v %v, got %v", x, y, z, b)
				}
			}
			if b := buf.At(x, 2, z); b.Empty() || b == water {
				t.Fatalf("expected ground at %v 2 %v, got %v", x, z, b)
			}
		}
	}
	sky := g.Generate(cube.ChunkPos{0, 1, 0})
	if !sky.Equal(chunk.New(chunk.ChunkShape, block.Air)) {
		t.Fatalf("expected the chunk above sea level to be empty")
	}
}

func TestGenerateHighChunkEmpty(t *testing.T) {
	g := terrain.Config{Seed: 77}.New()
	buf := g.Generate(cube.ChunkPos{4, 10, 4})
	if !buf.Equal(chunk.New(chunk.ChunkShape, block.Air)) {
		t.Fatalf("expected a chunk far above the terrain to be empty")
	}
}

type flat struct{ name string }

func (f flat) Name() string                           { return f.name }
func (flat) Carve(*populate.Context, populate.Column) {}
func (flat) Populators() []populate.Populator         { return nil }

func TestBiomeAtSingleBiome(t *testing.T) {
	reg := biome.NewRegistry()
	reg.Register(0.5, flat{name: "only"})
	g := terrain.Config{Seed: 3, Biomes: reg}.New()
	for _, pos := range []cube.ChunkPos{{0, 0, 0}, {100, 0, -100}, {-5, 2, 8}} {
		if name := g.BiomeAt(pos).Name(); name != "only" {
			t.Fatalf("expected biome only at %v, got %v", pos, name)
		}
	}
}

func TestNewPanicsOnEmptyBiomes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected New to panic with an empty biome registry")
		}
	}()
	terrain.Config{Biomes: biome.NewRegistry()}.New()
}
