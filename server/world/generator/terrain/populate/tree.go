package populate

import (
	"github.com/df-mc/voxel/server/world/generator/terrain/sdf"
	"github.com/go-gl/mathgl/mgl64"
)

// TreeType is the shape of a tree.
type TreeType uint8

const (
	// OakTree has a round crown on a tall trunk.
	OakTree TreeType = iota
	// PineTree has a conical crown reaching down to the ground.
	PineTree
)

// Tree grows trees on columns with a spawn chance above Threshold.
type Tree struct {
	Type      TreeType
	Threshold float64
}

// Reach ...
func (Tree) Reach() (int, int) {
	return 8, 24
}

// Populate ...
func (t Tree) Populate(ctx *Context, col Column) {
	if col.Chance <= t.Threshold || col.Surface < ctx.SeaLevel {
		return
	}
	base := mgl64.Vec3{float64(col.X) + 0.5, float64(col.Surface), float64(col.Z) + 0.5}
	switch t.Type {
	case OakTree:
		sdf.Stamp(ctx.Buf, ctx.Min, base.Add(mgl64.Vec3{0, 8, 0}), 9, sdf.CappedCylinder(1.5, 8), ctx.Blocks.Wood, sdf.Replace)
		sdf.Stamp(ctx.Buf, ctx.Min, base.Add(mgl64.Vec3{0, 14, 0}), 7, sdf.Sphere(6), ctx.Blocks.Leaves, sdf.Fill)
	case PineTree:
		sdf.Stamp(ctx.Buf, ctx.Min, base.Add(mgl64.Vec3{0, 10, 0}), 11, sdf.CappedCylinder(1, 10), ctx.Blocks.Wood, sdf.Replace)
		sdf.Stamp(ctx.Buf, ctx.Min, base.Add(mgl64.Vec3{0, 6, 0}), 18, sdf.VerticalCone(7, 17), ctx.Blocks.Leaves, sdf.Fill)
	}
}
