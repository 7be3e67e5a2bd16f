package sdf

import (
	"math"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
	"github.com/go-gl/mathgl/mgl64"
)

// Mode controls which voxels a stamp may replace.
type Mode uint8

const (
	// Replace overwrites every voxel inside the shape.
	Replace Mode = iota
	// Fill only writes voxels inside the shape that are still air.
	Fill
)

// Stamp writes b into every voxel of buf whose centre lies inside the shape.
// origin is the world position of the shape origin and corner the world position
// of voxel (0, 0, 0) of buf. reach bounds the shape: only voxels within reach
// of origin along every axis are tested. Voxels of the shape outside of buf
// are skipped, so features spanning several chunks may be stamped into each
// of them independently.
func Stamp(buf *chunk.Buffer[block.Block], corner cube.Pos, origin mgl64.Vec3, reach float64, f Func, b block.Block, mode Mode) int {
	s := buf.Shape()
	box := chunk.Extent{Size: [3]int{s.X, s.Y, s.Z}}
	var want chunk.Extent
	for i := 0; i < 3; i++ {
		lo := int(math.Floor(origin[i]-reach)) - corner[i]
		hi := int(math.Ceil(origin[i]+reach)) - corner[i]
		want.Min[i], want.Size[i] = lo, hi-lo+1
	}
	e := box.Intersect(want)
	if e.Empty() {
		return 0
	}
	n := 0
	m := e.Max()
	for y := e.Min[1]; y < m[1]; y++ {
		for z := e.Min[2]; z < m[2]; z++ {
			for x := e.Min[0]; x < m[0]; x++ {
				p := mgl64.Vec3{
					float64(corner[0]+x) + 0.5 - origin[0],
					float64(corner[1]+y) + 0.5 - origin[1],
					float64(corner[2]+z) + 0.5 - origin[2],
				}
				if f(p) > 0 {
					continue
				}
				v := buf.Ptr(x, y, z)
				if mode == Fill && !v.Empty() {
					continue
				}
				*v = b
				n++
			}
		}
	}
	return n
}
