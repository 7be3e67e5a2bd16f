package mesh

import (
	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/world/chunk"
)

// Neighbours returns the buffer of the chunk next to the one being padded in
// the direction of the face passed, or nil if that chunk is not loaded.
type Neighbours func(f Face) *chunk.Buffer[block.Block]

// Pad returns a copy of src with one voxel of border on every face. Border
// voxels are copied from the neighbours passed where available and are air
// otherwise, so faces on the edge of the chunk are culled against loaded
// neighbours only. neighbours may be nil.
//
// The buffer returned is owned by the caller and may be handed back with
// Release once it is no longer used.
func (m *Mesher) Pad(src *chunk.Buffer[block.Block], neighbours Neighbours) *chunk.Buffer[block.Block] {
	s := src.Shape()
	padded := chunk.Shape{X: s.X + 2, Y: s.Y + 2, Z: s.Z + 2}

	dst, _ := m.padding.Get().(*chunk.Buffer[block.Block])
	if dst == nil || dst.Shape() != padded {
		dst = chunk.New(padded, block.Air)
	} else {
		clear(dst.Raw())
	}
	dst.CopyRegion([3]int{1, 1, 1}, src, s.Extent())
	if neighbours == nil {
		return dst
	}

	dims := [3]int{s.X, s.Y, s.Z}
	for _, f := range Faces {
		n := neighbours(f)
		if n == nil || n.Shape() != s {
			continue
		}
		a := f.Axis()
		// The slab of the neighbour touching src, and where it goes in dst.
		from := s.Extent()
		from.Size[a] = 1
		to := [3]int{1, 1, 1}
		if f.Positive() {
			from.Min[a] = 0
			to[a] = dims[a] + 1
		} else {
			from.Min[a] = dims[a] - 1
			to[a] = 0
		}
		dst.CopyRegion(to, n, from)
	}
	return dst
}

// Release hands a buffer returned by Pad back to the Mesher. The buffer must
// not be used after calling Release.
func (m *Mesher) Release(buf *chunk.Buffer[block.Block]) {
	if buf != nil {
		m.padding.Put(buf)
	}
}
