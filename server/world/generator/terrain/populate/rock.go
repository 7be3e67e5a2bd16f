package populate

import (
	"github.com/df-mc/voxel/server/world/generator/terrain/noise"
	"github.com/df-mc/voxel/server/world/generator/terrain/sdf"
	"github.com/go-gl/mathgl/mgl64"
)

var rockSalt = noise.Salt{72845.48, 8472.243}

const maxRockRadius = 5

// Rock places boulders of stone half sunk into the ground.
type Rock struct {
	// Threshold is the value the rock noise of a column must exceed for a
	// rock to spawn. The closer the noise is to the threshold, the larger the
	// rock.
	Threshold float64
}

// Reach ...
func (Rock) Reach() (int, int) {
	return maxRockRadius, maxRockRadius
}

// Populate ...
func (r Rock) Populate(ctx *Context, col Column) {
	chance := noise.Rand2(ctx.Seed, float64(col.X)*0.1, float64(col.Z)*0.1, rockSalt)
	if chance <= r.Threshold {
		return
	}
	radius := min((1-chance)*1000, maxRockRadius)
	if radius < 1 {
		return
	}
	origin := mgl64.Vec3{float64(col.X) + 0.5, float64(col.Surface), float64(col.Z) + 0.5}
	sdf.Stamp(ctx.Buf, ctx.Min, origin, radius+1, sdf.Sphere(radius), ctx.Blocks.Stone, sdf.Fill)
}
