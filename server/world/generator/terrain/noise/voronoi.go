package noise

import "math"

// Cell identifies a cell of a Voronoi diagram by the integer lattice square
// its feature point was drawn in.
type Cell [2]int64

var (
	featureX = Salt{127.1, 311.7}
	featureZ = Salt{269.5, 183.3}
	score    = Salt{12.9898, 78.233}
)

// Voronoi returns the cell whose feature point is nearest to x, z. Every
// lattice square holds one feature point at a hashed position within it, so
// only the 3x3 squares around x, z need to be checked.
func Voronoi(seed int64, x, z float64) Cell {
	cx, cz := int64(math.Floor(x)), int64(math.Floor(z))
	best, bestDist := Cell{cx, cz}, math.Inf(1)
	for dz := int64(-1); dz <= 1; dz++ {
		for dx := int64(-1); dx <= 1; dx++ {
			nx, nz := cx+dx, cz+dz
			fx := float64(nx) + Rand2i(seed, nx, nz, featureX)
			fz := float64(nz) + Rand2i(seed, nx, nz, featureZ)
			if d := (fx-x)*(fx-x) + (fz-z)*(fz-z); d < bestDist {
				best, bestDist = Cell{nx, nz}, d
			}
		}
	}
	return best
}

// Score returns the pseudo-random score of a cell in [0, 1).
func (c Cell) Score(seed int64) float64 {
	return Rand2i(seed, c[0], c[1], score)
}
