package chunk

import (
	"fmt"
	"slices"
)

// Buffer is a dense 3D array of voxel values with a fixed Shape. Accessing a
// position outside the shape panics, regardless of build mode: an out of
// range position always means a caller broke an invariant.
type Buffer[V comparable] struct {
	shape Shape
	data  []V
}

// New creates a Buffer of the shape passed with every voxel set to fill.
func New[V comparable](shape Shape, fill V) *Buffer[V] {
	if shape.X <= 0 || shape.Y <= 0 || shape.Z <= 0 {
		panic(fmt.Sprintf("chunk: invalid buffer shape %v", shape))
	}
	data := make([]V, shape.Volume())
	var zero V
	if fill != zero {
		for i := range data {
			data[i] = fill
		}
	}
	return &Buffer[V]{shape: shape, data: data}
}

// Shape returns the shape of the buffer.
func (b *Buffer[V]) Shape() Shape {
	return b.shape
}

// At returns the value at the position passed.
func (b *Buffer[V]) At(x, y, z int) V {
	return b.data[b.index(x, y, z)]
}

// Set sets the value at the position passed.
func (b *Buffer[V]) Set(x, y, z int, v V) {
	b.data[b.index(x, y, z)] = v
}

// Ptr returns a pointer to the value at the position passed. The pointer is
// valid for as long as the buffer is.
func (b *Buffer[V]) Ptr(x, y, z int) *V {
	return &b.data[b.index(x, y, z)]
}

// FillRegion sets every voxel of the extent passed to v. The extent must lie
// within the shape of the buffer.
func (b *Buffer[V]) FillRegion(e Extent, v V) {
	if e.Empty() {
		return
	}
	b.checkExtent(e)
	m := e.Max()
	for y := e.Min[1]; y < m[1]; y++ {
		for z := e.Min[2]; z < m[2]; z++ {
			start := b.shape.Linearize(e.Min[0], y, z)
			row := b.data[start : start+e.Size[0]]
			for i := range row {
				row[i] = v
			}
		}
	}
}

// CopyRegion copies the extent src of the buffer from into b, placing its
// minimum corner at dst. Both regions must lie within their buffers.
func (b *Buffer[V]) CopyRegion(dst [3]int, from *Buffer[V], src Extent) {
	if src.Empty() {
		return
	}
	from.checkExtent(src)
	b.checkExtent(Extent{Min: dst, Size: src.Size})
	for y := 0; y < src.Size[1]; y++ {
		for z := 0; z < src.Size[2]; z++ {
			si := from.shape.Linearize(src.Min[0], src.Min[1]+y, src.Min[2]+z)
			di := b.shape.Linearize(dst[0], dst[1]+y, dst[2]+z)
			copy(b.data[di:di+src.Size[0]], from.data[si:si+src.Size[0]])
		}
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer[V]) Clone() *Buffer[V] {
	return &Buffer[V]{shape: b.shape, data: slices.Clone(b.data)}
}

// Equal checks if b and o have the same shape and contents.
func (b *Buffer[V]) Equal(o *Buffer[V]) bool {
	return b.shape == o.shape && slices.Equal(b.data, o.data)
}

// Raw returns the underlying storage of the buffer, indexed with
// Shape.Linearize.
func (b *Buffer[V]) Raw() []V {
	return b.data
}

func (b *Buffer[V]) index(x, y, z int) int {
	if !b.shape.Contains(x, y, z) {
		panic(fmt.Sprintf("chunk: position (%d,%d,%d) out of bounds for shape %v", x, y, z, b.shape))
	}
	return b.shape.Linearize(x, y, z)
}

func (b *Buffer[V]) checkExtent(e Extent) {
	m := e.Max()
	if !b.shape.Contains(e.Min[0], e.Min[1], e.Min[2]) || !b.shape.Contains(m[0]-1, m[1]-1, m[2]-1) {
		panic(fmt.Sprintf("chunk: extent %v out of bounds for shape %v", e, b.shape))
	}
}
