// Package populate places surface features such as grass, rocks and trees in
// generated chunks.
package populate

import (
	"fmt"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
)

// Blocks holds the blocks placed by the generator, resolved once from a
// material registry.
type Blocks struct {
	Bedrock, Stone, Dirt, Grass, Water, Leaves, Wood block.Block
}

// ResolveBlocks looks up the default materials in r.
func ResolveBlocks(r *block.Registry) (Blocks, error) {
	var b Blocks
	for _, e := range []struct {
		id  string
		dst *block.Block
	}{
		{block.BedrockID, &b.Bedrock},
		{block.StoneID, &b.Stone},
		{block.DirtID, &b.Dirt},
		{block.GrassID, &b.Grass},
		{block.WaterID, &b.Water},
		{block.LeavesID, &b.Leaves},
		{block.WoodID, &b.Wood},
	} {
		v, ok := r.Block(e.id)
		if !ok {
			return Blocks{}, fmt.Errorf("resolve blocks: material %v not registered", e.id)
		}
		*e.dst = v
	}
	return b, nil
}

// Context is the chunk that features are placed in.
type Context struct {
	// Buf holds the blocks of the chunk.
	Buf *chunk.Buffer[block.Block]
	// Min is the world position of voxel (0, 0, 0) of Buf.
	Min      cube.Pos
	Seed     int64
	SeaLevel int
	Blocks   Blocks
}

// Max returns the exclusive maximum world position covered by the chunk.
func (ctx *Context) Max() cube.Pos {
	s := ctx.Buf.Shape()
	return ctx.Min.Add(cube.Pos{s.X, s.Y, s.Z})
}

// Column is a column of terrain that features grow from. Columns may lie
// outside of the chunk being decorated: features of nearby columns that reach
// into the chunk are placed too.
type Column struct {
	// X and Z are the world coordinates of the column.
	X, Z int
	// Surface is the world Y of the first voxel above the ground.
	Surface int
	// Chance is the spawn chance of the column in [0, 1).
	Chance float64
}

// Populator places one kind of feature.
type Populator interface {
	// Reach returns how far the features of a column may extend horizontally
	// and above the surface.
	Reach() (horizontal, up int)
	// Populate places the feature of col, if any, into the chunk of ctx. It
	// must write the same voxels for a column regardless of which chunk is
	// being decorated.
	Populate(ctx *Context, col Column)
}
