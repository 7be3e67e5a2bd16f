// Package biome implements the biomes of the terrain generator and the
// registry used to pick one for a chunk.
package biome

import (
	"slices"

	"github.com/df-mc/voxel/server/world/generator/terrain/populate"
)

// Biome shapes the surface of the terrain and decorates it.
type Biome interface {
	// Name returns a human readable name of the biome.
	Name() string
	// Carve replaces the blocks near the surface of col that lie within the
	// chunk of ctx, such as turning stone into dirt and grass.
	Carve(ctx *populate.Context, col populate.Column)
	// Populators returns the features placed on the surface of the biome.
	Populators() []populate.Populator
}

// Registry maps scores in [0, 1) to biomes. Each biome is registered with a
// threshold and is selected for scores at or above it, up to the next
// threshold. A Registry must not be modified while in use by a generator.
type Registry struct {
	entries []entry
}

type entry struct {
	threshold float64
	biome     Biome
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds b with the threshold passed. A biome previously registered
// with the same threshold is replaced.
func (r *Registry) Register(threshold float64, b Biome) {
	i, found := slices.BinarySearchFunc(r.entries, threshold, func(e entry, t float64) int {
		switch {
		case e.threshold < t:
			return -1
		case e.threshold > t:
			return 1
		}
		return 0
	})
	if found {
		r.entries[i].biome = b
		return
	}
	r.entries = slices.Insert(r.entries, i, entry{threshold: threshold, biome: b})
}

// Select returns the biome with the greatest threshold at or below score. If
// no threshold qualifies, the biome with the lowest threshold is returned, so
// the result does not depend on the order of registration. Select returns nil
// if the registry is empty.
func (r *Registry) Select(score float64) Biome {
	if len(r.entries) == 0 {
		return nil
	}
	i, _ := slices.BinarySearchFunc(r.entries, score, func(e entry, s float64) int {
		if e.threshold <= s {
			return -1
		}
		return 1
	})
	if i == 0 {
		return r.entries[0].biome
	}
	return r.entries[i-1].biome
}

// Len returns the number of registered biomes.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Biomes returns all registered biomes ordered by threshold.
func (r *Registry) Biomes() []Biome {
	out := make([]Biome, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.biome
	}
	return out
}

// Default returns a Registry holding Plains and Forest.
func Default(b populate.Blocks) *Registry {
	r := NewRegistry()
	r.Register(0, NewPlains(b))
	r.Register(0.65, NewForest(b))
	return r
}
