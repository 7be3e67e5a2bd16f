package mesh

import (
	"fmt"
	"sync"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/world/chunk"
)

// Mesher turns padded block buffers into meshes. Scratch memory is pooled
// between calls; every call borrows its own scratch, so a Mesher may be used
// by any number of goroutines at once.
type Mesher struct {
	// Scale is the edge length of a voxel in mesh units. If zero, 1 is used.
	Scale float32

	masks   sync.Pool
	padding sync.Pool
}

type mask struct {
	cells []block.Block
}

// Greedy meshes a padded buffer with a default Mesher. See Mesher.Mesh.
func Greedy(buf *chunk.Buffer[block.Block], scale float32) *Mesh {
	m := &Mesher{Scale: scale}
	return m.Mesh(buf)
}

// Mesh merges the visible faces of buf into quads. buf must hold one voxel of
// border around the voxels to mesh: border voxels are only used to decide if
// the faces of interior voxels are visible and never produce quads
// themselves. The quads are emitted face by face in the order of Faces, slice
// by slice and row by row, so meshing the same buffer always yields the same
// mesh.
func (m *Mesher) Mesh(buf *chunk.Buffer[block.Block]) *Mesh {
	s := buf.Shape()
	if s.X < 3 || s.Y < 3 || s.Z < 3 {
		panic(fmt.Sprintf("mesh: padded buffer shape %v too small", s))
	}
	scale := m.Scale
	if scale == 0 {
		scale = 1
	}
	dims := [3]int{s.X, s.Y, s.Z}
	largest := max(s.X*s.Y, s.Y*s.Z, s.X*s.Z)

	sc, _ := m.masks.Get().(*mask)
	if sc == nil || cap(sc.cells) < largest {
		sc = &mask{cells: make([]block.Block, largest)}
	}
	defer m.masks.Put(sc)

	out := &Mesh{}
	for _, f := range Faces {
		axes := faceAxes[f]
		nu, nv := dims[axes.u]-2, dims[axes.v]-2
		cells := sc.cells[:nu*nv]
		off := f.Offset()
		for d := 1; d < dims[axes.n]-1; d++ {
			var p [3]int
			p[axes.n] = d
			for j := 0; j < nv; j++ {
				p[axes.v] = j + 1
				for i := 0; i < nu; i++ {
					p[axes.u] = i + 1
					v := buf.At(p[0], p[1], p[2])
					if faceVisible(v, buf.At(p[0]+off[0], p[1]+off[1], p[2]+off[2])) {
						cells[j*nu+i] = v
					} else {
						cells[j*nu+i] = block.Air
					}
				}
			}
			mergeSlice(out, cells, nu, nv, f, d, scale)
		}
	}
	return out
}

// mergeSlice greedily merges the face mask of one slice into quads. Runs are
// first grown along u, then the run is grown along v for as long as every
// cell of the next row matches.
func mergeSlice(out *Mesh, cells []block.Block, nu, nv int, f Face, d int, scale float32) {
	axes := faceAxes[f]
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; {
			v := cells[j*nu+i]
			if v == block.Air {
				i++
				continue
			}
			w := 1
			for i+w < nu && cells[j*nu+i+w] == v {
				w++
			}
			h := 1
		grow:
			for j+h < nv {
				row := cells[(j+h)*nu+i : (j+h)*nu+i+w]
				for _, c := range row {
					if c != v {
						break grow
					}
				}
				h++
			}
			for k := j; k < j+h; k++ {
				clear(cells[k*nu+i : k*nu+i+w])
			}

			var corner [3]int
			corner[axes.n], corner[axes.u], corner[axes.v] = d-1, i, j
			out.addQuad(Quad{Face: f, Min: corner, Width: w, Height: h, Block: v}, scale)
			i += w
		}
	}
}

// faceVisible checks if the face of v that looks at neighbour must be meshed.
// Opaque faces show against anything that is not opaque; translucent faces
// only show against air and against translucent blocks of another kind.
func faceVisible(v, neighbour block.Block) bool {
	switch v.Visibility() {
	case block.Opaque:
		return neighbour.Visibility() != block.Opaque
	case block.Translucent:
		return neighbour.Empty() || (neighbour.Transparent() && neighbour != v)
	}
	return false
}
