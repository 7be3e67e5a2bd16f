// Package sdf implements signed distance functions of simple shapes and
// stamps them into block buffers. Distances are negative inside a shape,
// zero on its surface and positive outside of it.
package sdf

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Func is a signed distance function. p is relative to the origin of the
// shape.
type Func func(p mgl64.Vec3) float64

// Sphere returns the distance function of a sphere centred at the origin.
func Sphere(radius float64) Func {
	return func(p mgl64.Vec3) float64 {
		return p.Len() - radius
	}
}

// Box returns the distance function of a box centred at the origin with the
// half extents passed.
func Box(half mgl64.Vec3) Func {
	return func(p mgl64.Vec3) float64 {
		q := abs(p).Sub(half)
		return maxVec(q, 0).Len() + math.Min(math.Max(q[0], math.Max(q[1], q[2])), 0)
	}
}

// Torus returns the distance function of a torus lying in the XZ plane.
// major is the distance from the centre to the middle of the tube and minor
// the radius of the tube.
func Torus(major, minor float64) Func {
	return func(p mgl64.Vec3) float64 {
		q := mgl64.Vec2{math.Hypot(p[0], p[2]) - major, p[1]}
		return q.Len() - minor
	}
}

// CappedCylinder returns the distance function of a vertical cylinder
// centred at the origin, with the radius and half height passed.
func CappedCylinder(radius, halfHeight float64) Func {
	return func(p mgl64.Vec3) float64 {
		dx := math.Abs(math.Hypot(p[0], p[2])) - radius
		dy := math.Abs(p[1]) - halfHeight
		outside := mgl64.Vec2{math.Max(dx, 0), math.Max(dy, 0)}.Len()
		return math.Min(math.Max(dx, dy), 0) + outside
	}
}

// VerticalCapsule returns the distance function of a capsule whose bottom
// sphere is centred at the origin and that extends height upwards.
func VerticalCapsule(height, radius float64) Func {
	return func(p mgl64.Vec3) float64 {
		p[1] -= mgl64.Clamp(p[1], 0, height)
		return p.Len() - radius
	}
}

// VerticalCone returns the distance function of a cone with its base of the
// radius passed centred at the origin and its tip height above it.
func VerticalCone(radius, height float64) Func {
	return func(p mgl64.Vec3) float64 {
		// Work in the 2D half plane through the axis: q is the distance to
		// the axis and the height above the base.
		q := mgl64.Vec2{math.Hypot(p[0], p[2]), p[1]}
		tip := mgl64.Vec2{0, height}
		edge := mgl64.Vec2{radius, -height}

		// Closest point on the slanted edge from base rim to tip.
		w := q.Sub(tip)
		t := mgl64.Clamp(w.Dot(edge)/edge.Dot(edge), 0, 1)
		toEdge := w.Sub(edge.Mul(t))
		// Closest point on the base disc.
		toBase := mgl64.Vec2{q[0] - math.Min(q[0], radius), q[1]}
		d := math.Sqrt(math.Min(toEdge.Dot(toEdge), toBase.Dot(toBase)))

		inside := q[1] > 0 && q[1] < height && q[0] < radius*(height-q[1])/height
		if inside {
			return -d
		}
		return d
	}
}

// Translate moves the shape of f so that its origin is at offset.
func Translate(f Func, offset mgl64.Vec3) Func {
	return func(p mgl64.Vec3) float64 {
		return f(p.Sub(offset))
	}
}

// Union returns the distance function of all shapes combined.
func Union(fs ...Func) Func {
	return func(p mgl64.Vec3) float64 {
		d := math.Inf(1)
		for _, f := range fs {
			d = math.Min(d, f(p))
		}
		return d
	}
}

func abs(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])}
}

func maxVec(v mgl64.Vec3, m float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(v[0], m), math.Max(v[1], m), math.Max(v[2], m)}
}
