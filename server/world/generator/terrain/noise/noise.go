// Package noise implements the deterministic noise functions used by the
// terrain generator: a fractal height field, a Voronoi cell lookup and hashed
// pseudo-random values.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/segmentio/fasthash/fnv1a"
)

// Salt separates independent random streams drawn from the same coordinates.
type Salt [2]float64

// Field is a 2D fractal Brownian motion field built from Perlin noise.
// Octaves and frequencies are fixed at construction. A Field is safe for
// concurrent use.
type Field struct {
	p         *perlin.Perlin
	frequency float64
}

// NewField creates a Field with the parameters passed. persistence is the
// amplitude multiplier and lacunarity the frequency multiplier between two
// octaves.
func NewField(seed int64, octaves int, frequency, persistence, lacunarity float64) *Field {
	if persistence <= 0 {
		persistence = 0.5
	}
	return &Field{
		p:         perlin.NewPerlin(1/persistence, lacunarity, int32(octaves), seed),
		frequency: frequency,
	}
}

// At returns the value of the field at x, z, roughly in [-1, 1].
func (f *Field) At(x, z float64) float64 {
	return f.p.Noise2D(x*f.frequency, z*f.frequency)
}

// Rand2 returns a pseudo-random value in [0, 1) for the 2D point passed. The
// same seed, point and salt always produce the same value.
func Rand2(seed int64, x, y float64, salt Salt) float64 {
	h := fnv1a.HashUint64(uint64(seed))
	h = fnv1a.AddUint64(h, math.Float64bits(x))
	h = fnv1a.AddUint64(h, math.Float64bits(y))
	h = fnv1a.AddUint64(h, math.Float64bits(salt[0]))
	h = fnv1a.AddUint64(h, math.Float64bits(salt[1]))
	return unit(mix(h))
}

// Rand2i is Rand2 for integer points.
func Rand2i(seed int64, x, y int64, salt Salt) float64 {
	h := fnv1a.HashUint64(uint64(seed))
	h = fnv1a.AddUint64(h, uint64(x))
	h = fnv1a.AddUint64(h, uint64(y))
	h = fnv1a.AddUint64(h, math.Float64bits(salt[0]))
	h = fnv1a.AddUint64(h, math.Float64bits(salt[1]))
	return unit(mix(h))
}

// mix is the finaliser of SplitMix64. FNV alone leaves the high bits of
// hashes of nearby inputs correlated.
func mix(h uint64) uint64 {
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

func unit(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}
