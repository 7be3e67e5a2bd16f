package biome

import (
	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/world/generator/terrain/populate"
)

// Layered covers the ground with strata: Top on the surface and Sub in the
// Depth-1 layers below it. Columns whose surface lies below sea level get Sub
// all the way to the top.
type Layered struct {
	Top, Sub block.Block
	Depth    int
}

// Carve ...
func (l Layered) Carve(ctx *populate.Context, col populate.Column) {
	lo, hi := ctx.Min, ctx.Max()
	if col.X < lo[0] || col.X >= hi[0] || col.Z < lo[2] || col.Z >= hi[2] {
		return
	}
	from, to := max(col.Surface-l.Depth, lo[1]), min(col.Surface, hi[1])
	for y := from; y < to; y++ {
		b := l.Sub
		if y == col.Surface-1 && col.Surface >= ctx.SeaLevel {
			b = l.Top
		}
		ctx.Buf.Set(col.X-lo[0], y-lo[1], col.Z-lo[2], b)
	}
}
