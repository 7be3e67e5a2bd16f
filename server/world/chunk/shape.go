package chunk

import "fmt"

// Size is the edge length of a chunk in voxels.
const Size = 32

// Shape is the extent of a Buffer along every axis. Buffers are laid out row
// major with Y as the outermost and X as the innermost axis, so a horizontal
// row of voxels is contiguous in memory.
type Shape struct {
	X, Y, Z int
}

var (
	// ChunkShape is the shape of every chunk stored in a Map.
	ChunkShape = Shape{Size, Size, Size}
	// PaddedShape is ChunkShape with one voxel of border on each face, the
	// input shape of the mesher.
	PaddedShape = Shape{Size + 2, Size + 2, Size + 2}
)

// Volume returns the number of voxels held by a buffer of the shape.
func (s Shape) Volume() int {
	return s.X * s.Y * s.Z
}

// Contains checks if the position passed lies within the shape.
func (s Shape) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < s.X && y < s.Y && z < s.Z
}

// Linearize returns the index of the position passed in a flat buffer of the
// shape. The position is not checked.
func (s Shape) Linearize(x, y, z int) int {
	return x + s.X*(z+s.Z*y)
}

// Delinearize is the inverse of Linearize.
func (s Shape) Delinearize(i int) (x, y, z int) {
	x = i % s.X
	i /= s.X
	return x, i / s.Z, i % s.Z
}

// Extent returns an Extent covering the whole shape.
func (s Shape) Extent() Extent {
	return Extent{Size: [3]int{s.X, s.Y, s.Z}}
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.X, s.Y, s.Z)
}

// Extent is an axis aligned box of voxels starting at Min and spanning Size
// voxels along every axis.
type Extent struct {
	Min  [3]int
	Size [3]int
}

// Max returns the exclusive maximum corner of the extent.
func (e Extent) Max() [3]int {
	return [3]int{e.Min[0] + e.Size[0], e.Min[1] + e.Size[1], e.Min[2] + e.Size[2]}
}

// Empty checks if the extent holds no voxels.
func (e Extent) Empty() bool {
	return e.Size[0] <= 0 || e.Size[1] <= 0 || e.Size[2] <= 0
}

// Contains checks if the position passed lies within the extent.
func (e Extent) Contains(x, y, z int) bool {
	m := e.Max()
	return x >= e.Min[0] && y >= e.Min[1] && z >= e.Min[2] && x < m[0] && y < m[1] && z < m[2]
}

// Intersect returns the extent covered by both e and o. The result is Empty if
// they do not overlap.
func (e Extent) Intersect(o Extent) Extent {
	em, om := e.Max(), o.Max()
	var r Extent
	for i := 0; i < 3; i++ {
		r.Min[i] = max(e.Min[i], o.Min[i])
		r.Size[i] = max(min(em[i], om[i])-r.Min[i], 0)
	}
	return r
}

// Translate returns the extent moved by the offset passed.
func (e Extent) Translate(dx, dy, dz int) Extent {
	e.Min[0] += dx
	e.Min[1] += dy
	e.Min[2] += dz
	return e
}
