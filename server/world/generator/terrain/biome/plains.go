package biome

import "github.com/df-mc/voxel/server/world/generator/terrain/populate"

// Plains is a flat grassy biome with the occasional oak tree and boulder.
type Plains struct {
	Layered
	populators []populate.Populator
}

// NewPlains ...
func NewPlains(b populate.Blocks) Plains {
	return Plains{
		Layered: Layered{Top: b.Grass, Sub: b.Dirt, Depth: 8},
		populators: []populate.Populator{
			populate.TallGrass{Density: 0.15},
			populate.Rock{Threshold: 0.995},
			populate.Tree{Type: populate.OakTree, Threshold: 0.981},
		},
	}
}

// Name ...
func (Plains) Name() string {
	return "plains"
}

// Populators ...
func (p Plains) Populators() []populate.Populator {
	return p.populators
}
