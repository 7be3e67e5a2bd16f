package biome

import "github.com/df-mc/voxel/server/world/generator/terrain/populate"

// Forest is a dense pine forest.
type Forest struct {
	Layered
	populators []populate.Populator
}

// NewForest ...
func NewForest(b populate.Blocks) Forest {
	return Forest{
		Layered: Layered{Top: b.Grass, Sub: b.Dirt, Depth: 6},
		populators: []populate.Populator{
			populate.TallGrass{Density: 0.05},
			populate.Tree{Type: populate.PineTree, Threshold: 0.96},
		},
	}
}

// Name ...
func (Forest) Name() string {
	return "forest"
}

// Populators ...
func (f Forest) Populators() []populate.Populator {
	return f.populators
}
