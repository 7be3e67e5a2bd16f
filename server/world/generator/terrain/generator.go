// Package terrain implements the procedural terrain generator. Generate is a
// pure function of a chunk position and the Config of the Generator, so
// chunks may be generated in any order, on any goroutine and any number of
// times.
package terrain

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
	"github.com/df-mc/voxel/server/world/generator/terrain/biome"
	"github.com/df-mc/voxel/server/world/generator/terrain/noise"
	"github.com/df-mc/voxel/server/world/generator/terrain/populate"
)

var spawnSalt = noise.Salt{12.989, 78.233}

// Config holds the parameters of a Generator. Zero fields are replaced with
// defaults in New.
type Config struct {
	// Log is the Logger used by the generator. If nil, slog.Default() is used.
	Log *slog.Logger
	// Seed seeds every noise function of the generator.
	Seed int64
	// Octaves, Frequency, Persistence and Lacunarity shape the height field.
	Octaves     int
	Frequency   float64
	Persistence float64
	Lacunarity  float64
	// BaseHeight is the mean height of the terrain and Amplitude the maximum
	// deviation from it.
	BaseHeight float64
	Amplitude  float64
	// SeaLevel is the Y below which air above the terrain is filled with
	// water.
	SeaLevel int
	// BiomeScale scales chunk coordinates before looking up the Voronoi cell
	// deciding the biome. Smaller values give larger biomes.
	BiomeScale float64
	// DecorationFloor is the height at or below which no surface features are
	// placed.
	DecorationFloor int
	// BedrockDepth is the number of bedrock layers at the bottom of the world.
	BedrockDepth int
	// Materials is the registry the generated blocks are looked up in. If
	// nil, block.Default() is used.
	Materials *block.Registry
	// Biomes is the registry biomes are selected from. If nil,
	// biome.Default() is used.
	Biomes *biome.Registry
}

// New creates a Generator using the fields of conf. New panics if the
// materials registry lacks one of the default materials or if the biome
// registry is empty.
func (conf Config) New() *Generator {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Octaves <= 0 {
		conf.Octaves = 5
	}
	if conf.Frequency == 0 {
		conf.Frequency = 1.0 / 256
	}
	if conf.Persistence == 0 {
		conf.Persistence = 0.5
	}
	if conf.Lacunarity == 0 {
		conf.Lacunarity = 2
	}
	if conf.BaseHeight == 0 {
		conf.BaseHeight = 112
	}
	if conf.Amplitude == 0 {
		conf.Amplitude = 80
	}
	if conf.SeaLevel == 0 {
		conf.SeaLevel = 32
	}
	if conf.BiomeScale == 0 {
		conf.BiomeScale = 0.002
	}
	if conf.DecorationFloor == 0 {
		conf.DecorationFloor = 96
	}
	if conf.BedrockDepth == 0 {
		conf.BedrockDepth = 2
	}
	if conf.Materials == nil {
		conf.Materials = block.Default()
	}
	blocks, err := populate.ResolveBlocks(conf.Materials)
	if err != nil {
		panic(fmt.Errorf("terrain: %w", err))
	}
	if conf.Biomes == nil {
		conf.Biomes = biome.Default(blocks)
	}
	if conf.Biomes.Len() == 0 {
		panic("terrain: biome registry is empty")
	}

	g := &Generator{
		conf:   conf,
		blocks: blocks,
		height: noise.NewField(conf.Seed, conf.Octaves, conf.Frequency, conf.Persistence, conf.Lacunarity),
	}
	for _, b := range conf.Biomes.Biomes() {
		for _, p := range b.Populators() {
			h, up := p.Reach()
			g.reach, g.reachUp = max(g.reach, h), max(g.reachUp, up)
		}
	}
	return g
}

// Generator generates chunks of terrain. A Generator is safe for concurrent
// use.
type Generator struct {
	conf   Config
	blocks populate.Blocks
	height *noise.Field

	// reach and reachUp are the largest horizontal and upward reach of any
	// populator of any biome.
	reach, reachUp int
}

// Seed returns the seed of the generator.
func (g *Generator) Seed() int64 {
	return g.conf.Seed
}

// HeightAt returns the world Y of the first voxel above the ground of the
// column at x, z.
func (g *Generator) HeightAt(x, z int) int {
	v := g.height.At(float64(x), float64(z))
	return int(math.Floor(g.conf.BaseHeight + v*g.conf.Amplitude))
}

// BiomeAt returns the biome of the chunk passed. Biomes are selected per chunk
// column, so all chunks sharing X and Z share a biome.
func (g *Generator) BiomeAt(pos cube.ChunkPos) biome.Biome {
	corner := pos.Min(chunk.Size)
	cell := noise.Voronoi(g.conf.Seed, float64(corner[0])*g.conf.BiomeScale, float64(corner[2])*g.conf.BiomeScale)
	return g.conf.Biomes.Select(cell.Score(g.conf.Seed))
}

// Generate returns the blocks of the chunk passed.
func (g *Generator) Generate(pos cube.ChunkPos) *chunk.Buffer[block.Block] {
	buf := chunk.New(chunk.ChunkShape, block.Air)
	ctx := &populate.Context{
		Buf:      buf,
		Min:      pos.Min(chunk.Size),
		Seed:     g.conf.Seed,
		SeaLevel: g.conf.SeaLevel,
		Blocks:   g.blocks,
	}

	var heights [chunk.Size * chunk.Size]int
	for z := 0; z < chunk.Size; z++ {
		for x := 0; x < chunk.Size; x++ {
			heights[z*chunk.Size+x] = g.HeightAt(ctx.Min[0]+x, ctx.Min[2]+z)
		}
	}
	g.carve(ctx, heights[:])

	b := g.BiomeAt(pos)
	for z := 0; z < chunk.Size; z++ {
		for x := 0; x < chunk.Size; x++ {
			b.Carve(ctx, populate.Column{X: ctx.Min[0] + x, Z: ctx.Min[2] + z, Surface: heights[z*chunk.Size+x]})
		}
	}
	g.decorate(ctx)

	if pos[1] == 0 {
		buf.FillRegion(chunk.Extent{Size: [3]int{chunk.Size, min(g.conf.BedrockDepth, chunk.Size), chunk.Size}}, g.blocks.Bedrock)
	}
	return buf
}

// carve fills the chunk with stone below the height field and with water
// between it and sea level.
func (g *Generator) carve(ctx *populate.Context, heights []int) {
	for z := 0; z < chunk.Size; z++ {
		for x := 0; x < chunk.Size; x++ {
			h := heights[z*chunk.Size+x] - ctx.Min[1]
			stone := min(max(h, 0), chunk.Size)
			if stone > 0 {
				ctx.Buf.FillRegion(chunk.Extent{Min: [3]int{x, 0, z}, Size: [3]int{1, stone, 1}}, g.blocks.Stone)
			}
			water := min(max(g.conf.SeaLevel-ctx.Min[1], 0), chunk.Size)
			if water > stone {
				ctx.Buf.FillRegion(chunk.Extent{Min: [3]int{x, stone, z}, Size: [3]int{1, water - stone, 1}}, g.blocks.Water)
			}
		}
	}
}

// decorate runs the populators of every column whose features may reach
// into the chunk, including columns of neighbouring chunks.
func (g *Generator) decorate(ctx *populate.Context) {
	lo, hi := ctx.Min, ctx.Max()
	if hi[1]+g.reach <= g.conf.DecorationFloor {
		return
	}
	biomes := make(map[cube.ChunkPos]biome.Biome, 9)
	for x := lo[0] - g.reach; x < hi[0]+g.reach; x++ {
		for z := lo[2] - g.reach; z < hi[2]+g.reach; z++ {
			surface := g.HeightAt(x, z)
			if surface <= g.conf.DecorationFloor || surface-g.reach >= hi[1] || surface+g.reachUp < lo[1] {
				continue
			}
			colChunk := cube.ChunkOf(cube.Pos{x, 0, z}, chunk.Size)
			b, ok := biomes[colChunk]
			if !ok {
				b = g.BiomeAt(colChunk)
				biomes[colChunk] = b
			}
			col := populate.Column{
				X:       x,
				Z:       z,
				Surface: surface,
				Chance:  noise.Rand2(g.conf.Seed, float64(x)*0.01, float64(z)*0.01, spawnSalt),
			}
			for _, p := range b.Populators() {
				p.Populate(ctx, col)
			}
		}
	}
}
