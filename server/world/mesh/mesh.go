package mesh

import (
	"github.com/df-mc/voxel/server/block"
	"github.com/go-gl/mathgl/mgl32"
)

// Quad is a rectangle of merged voxel faces. Min is the chunk local position
// of the voxel in the corner of the quad with the lowest coordinates; the quad
// spans Width voxels along the first and Height voxels along the second
// tangent axis of Face.
type Quad struct {
	Face          Face
	Min           [3]int
	Width, Height int
	Block         block.Block
}

// Mesh is the geometry of one chunk, ready to be uploaded to the GPU. Every
// quad contributes four vertices and six indices. Vertex i has position
// Positions[i], normal Normals[i] and packed attribute Packed[i].
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	// Packed holds (face << 8) | material for every vertex.
	Packed  []uint32
	Indices []uint32
	Quads   []Quad
}

// Empty checks if the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return len(m.Quads) == 0
}

// PackAttribute packs a face and a material ID into a vertex attribute.
func PackAttribute(f Face, material uint16) uint32 {
	return uint32(f)<<8 | uint32(material&0xff)
}

// UnpackAttribute is the inverse of PackAttribute.
func UnpackAttribute(v uint32) (Face, uint16) {
	return Face(v >> 8 & 0x7), uint16(v & 0xff)
}

// Size returns the approximate number of bytes of vertex data held by the
// mesh.
func (m *Mesh) Size() int {
	return len(m.Positions)*12 + len(m.Normals)*12 + len(m.Packed)*4 + len(m.Indices)*4
}

// addQuad appends the vertices and indices of q.
func (m *Mesh) addQuad(q Quad, scale float32) {
	axes := faceAxes[q.Face]
	origin := q.Min
	if q.Face.Positive() {
		origin[axes.n]++
	}
	var du, dv [3]int
	du[axes.u] = q.Width
	dv[axes.v] = q.Height

	corners := [4][3]int{
		origin,
		{origin[0] + du[0], origin[1] + du[1], origin[2] + du[2]},
		{origin[0] + du[0] + dv[0], origin[1] + du[1] + dv[1], origin[2] + du[2] + dv[2]},
		{origin[0] + dv[0], origin[1] + dv[1], origin[2] + dv[2]},
	}
	start := uint32(len(m.Positions))
	normal, packed := q.Face.Normal(), PackAttribute(q.Face, q.Block.Material())
	for _, c := range corners {
		m.Positions = append(m.Positions, mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}.Mul(scale))
		m.Normals = append(m.Normals, normal)
		m.Packed = append(m.Packed, packed)
	}
	m.Indices = append(m.Indices, start, start+1, start+2, start, start+2, start+3)
	m.Quads = append(m.Quads, q)
}
