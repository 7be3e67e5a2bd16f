package cube

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Pos holds the position of a voxel. The position is represented of an array
// with an x, y and z value. Any component may be negative.
type Pos [3]int

// String converts the Pos to a string in the format (1,2,3) and returns it.
func (p Pos) String() string {
	return fmt.Sprintf("(%v,%v,%v)", p[0], p[1], p[2])
}

// X returns the X coordinate of the voxel position.
func (p Pos) X() int { return p[0] }

// Y returns the Y coordinate of the voxel position.
func (p Pos) Y() int { return p[1] }

// Z returns the Z coordinate of the voxel position.
func (p Pos) Z() int { return p[2] }

// Add adds two positions together and returns a new one with the combined
// values.
func (p Pos) Add(pos Pos) Pos {
	return Pos{p[0] + pos[0], p[1] + pos[1], p[2] + pos[2]}
}

// Sub subtracts pos from p and returns a new one with the subtracted values.
func (p Pos) Sub(pos Pos) Pos {
	return Pos{p[0] - pos[0], p[1] - pos[1], p[2] - pos[2]}
}

// ChunkPos holds the position of a chunk, measured in chunks rather than
// voxels. Chunk (1, 0, 0) starts at voxel (size, 0, 0).
type ChunkPos [3]int32

// String implements fmt.Stringer.
func (p ChunkPos) String() string {
	return fmt.Sprintf("(%v,%v,%v)", p[0], p[1], p[2])
}

// Min returns the minimum corner of the chunk in voxel coordinates.
func (p ChunkPos) Min(size int) Pos {
	return Pos{int(p[0]) * size, int(p[1]) * size, int(p[2]) * size}
}

// DistanceSq returns the squared euclidean distance between two chunk
// positions, measured in chunks.
func (p ChunkPos) DistanceSq(o ChunkPos) int64 {
	dx, dy, dz := int64(p[0]-o[0]), int64(p[1]-o[1]), int64(p[2]-o[2])
	return dx*dx + dy*dy + dz*dz
}

// ChunkOf returns the position of the chunk that holds p. Negative
// coordinates round towards negative infinity, so voxel -1 lies in chunk -1.
func ChunkOf(p Pos, size int) ChunkPos {
	return ChunkPos{int32(FloorDiv(p[0], size)), int32(FloorDiv(p[1], size)), int32(FloorDiv(p[2], size))}
}

// LocalOf returns the position of p relative to the minimum corner of the
// chunk holding it. Every component is in [0, size).
func LocalOf(p Pos, size int) Pos {
	return Pos{Mod(p[0], size), Mod(p[1], size), Mod(p[2], size)}
}

// FloorDiv divides a by b, rounding towards negative infinity. b must be
// positive.
func FloorDiv[T constraints.Signed](a, b T) T {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// Mod returns the euclidean remainder of a divided by b, in [0, b). b must
// be positive.
func Mod[T constraints.Signed](a, b T) T {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
