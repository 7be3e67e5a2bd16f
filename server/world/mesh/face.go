package mesh

import "github.com/go-gl/mathgl/mgl32"

// Face is one of the six axis aligned directions a quad may face. The order
// of the constants is part of the vertex format: a Face is stored in the
// packed vertex attribute and decoded by the renderer.
type Face uint8

const (
	FaceNegX Face = iota
	FaceNegY
	FaceNegZ
	FacePosX
	FacePosY
	FacePosZ
)

// Faces holds all faces in the order in which the mesher emits them.
var Faces = [...]Face{FaceNegX, FaceNegY, FaceNegZ, FacePosX, FacePosY, FacePosZ}

// faceAxes holds the normal axis and the two tangent axes u and v of every
// face. u × v points along the normal, so corners emitted in u, u+v, v order
// wind counter-clockwise when seen from outside the voxel.
var faceAxes = [...]struct {
	n, u, v int
}{
	FaceNegX: {0, 2, 1},
	FaceNegY: {1, 0, 2},
	FaceNegZ: {2, 1, 0},
	FacePosX: {0, 1, 2},
	FacePosY: {1, 2, 0},
	FacePosZ: {2, 0, 1},
}

// Positive checks if the face points along the positive direction of its
// axis.
func (f Face) Positive() bool {
	return f >= FacePosX
}

// Axis returns the axis the face is perpendicular to: 0 for X, 1 for Y and 2
// for Z.
func (f Face) Axis() int {
	return faceAxes[f].n
}

// Offset returns the offset from a voxel to the neighbour the face looks at.
func (f Face) Offset() [3]int {
	var o [3]int
	if f.Positive() {
		o[f.Axis()] = 1
	} else {
		o[f.Axis()] = -1
	}
	return o
}

// Normal returns the unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	o := f.Offset()
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

// String implements fmt.Stringer.
func (f Face) String() string {
	return [...]string{"-x", "-y", "-z", "+x", "+y", "+z"}[f]
}
