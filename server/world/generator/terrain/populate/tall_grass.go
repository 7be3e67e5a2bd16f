package populate

import (
	"github.com/df-mc/voxel/server/world/generator/terrain/noise"
)

var (
	grassHeightSalt  = noise.Salt{42.4782, 8472.243}
	grassDensitySalt = noise.Salt{93.9898, 67.345}
)

// TallGrass grows stalks of grass two or three blocks high.
type TallGrass struct {
	// Density is the fraction of eligible columns that grow grass.
	Density float64
}

// Reach ...
func (TallGrass) Reach() (int, int) {
	return 0, 3
}

// Populate ...
func (g TallGrass) Populate(ctx *Context, col Column) {
	if col.Surface < ctx.SeaLevel {
		return
	}
	x, z := float64(col.X)*0.1, float64(col.Z)*0.1
	height := int(noise.Rand2(ctx.Seed, x, z, grassHeightSalt)*100) % 4
	if height <= 1 || noise.Rand2(ctx.Seed, x, z, grassDensitySalt) >= g.Density {
		return
	}
	lo, hi := ctx.Min, ctx.Max()
	if col.X < lo[0] || col.X >= hi[0] || col.Z < lo[2] || col.Z >= hi[2] {
		return
	}
	for y := col.Surface; y < col.Surface+height; y++ {
		if y < lo[1] || y >= hi[1] {
			continue
		}
		v := ctx.Buf.Ptr(col.X-lo[0], y-lo[1], col.Z-lo[2])
		if v.Empty() {
			*v = ctx.Blocks.Grass
		}
	}
}
