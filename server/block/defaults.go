package block

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Identifiers of the materials listed by DefaultMaterials.
const (
	BedrockID = DefaultNamespace + "::bedrock"
	DirtID    = DefaultNamespace + "::dirt"
	StoneID   = DefaultNamespace + "::stone"
	WaterID   = DefaultNamespace + "::water"
	GrassID   = DefaultNamespace + "::grass"
	LeavesID  = DefaultNamespace + "::leaves"
	WoodID    = DefaultNamespace + "::wood"
)

// DefaultMaterials returns the built-in materials used by the terrain
// generator.
func DefaultMaterials() []Material {
	bedrock := NewMaterial(BedrockID, rgba("#404040", 255))
	bedrock.Flags = Unbreakable
	bedrock.Roughness, bedrock.Metallic = 0.9, 1.0

	dirt := NewMaterial(DirtID, rgba("#70615c", 255))
	dirt.Roughness, dirt.Reflectance = 0.75, 0.45

	stone := NewMaterial(StoneID, rgba("#808080", 255))
	stone.Roughness, stone.Metallic = 0.85, 0.6
	stone.Emissive = mgl32.Vec4{0, 0, 0, 1}

	water := NewMaterial(WaterID, rgba("#4ea7d7", 102))
	water.Flags = Liquid
	water.Roughness, water.Metallic = 0.2, 0.47

	grass := NewMaterial(GrassID, rgba("#90ee90", 255))

	leaves := NewMaterial(LeavesID, rgba("#6db138", 255))
	leaves.Flags = Transparent
	leaves.Roughness, leaves.Metallic = 0.73, 1.0

	wood := NewMaterial(WoodID, rgba("#bc9361", 255))
	wood.Roughness, wood.Metallic = 0.7, 0.46

	return []Material{bedrock, dirt, stone, water, grass, leaves, wood}
}

// Default returns a new Registry holding air and the DefaultMaterials.
func Default() *Registry {
	r := NewRegistry()
	if err := r.RegisterAll(DefaultMaterials()...); err != nil {
		panic(err)
	}
	return r
}

func rgba(hex string, alpha uint8) mgl32.Vec4 {
	c, err := parseColour(hex, alpha)
	if err != nil {
		panic(fmt.Errorf("block: default colour %v: %w", hex, err))
	}
	return c
}
