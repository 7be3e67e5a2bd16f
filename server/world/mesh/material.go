package mesh

import (
	"github.com/df-mc/voxel/server/block"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUMaterial is the per-material record uploaded to the renderer, indexed by
// the material ID stored in packed vertex attributes.
type GPUMaterial struct {
	BaseColour  mgl32.Vec4
	Emissive    mgl32.Vec4
	Flags       uint32
	Roughness   float32
	Metallic    float32
	Reflectance float32
}

// MaterialTable builds the material lookup table for the registry passed. The
// table holds at most block.MaxMaterials entries.
func MaterialTable(r *block.Registry) []GPUMaterial {
	all := r.All()
	if len(all) > block.MaxMaterials {
		all = all[:block.MaxMaterials]
	}
	table := make([]GPUMaterial, len(all))
	for i, m := range all {
		table[i] = GPUMaterial{
			BaseColour:  m.Colour,
			Emissive:    m.Emissive,
			Flags:       uint32(m.Flags),
			Roughness:   m.Roughness,
			Metallic:    m.Metallic,
			Reflectance: m.Reflectance,
		}
	}
	return table
}
