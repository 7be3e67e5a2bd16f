package block

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// catalogue is the YAML representation of a material catalogue.
type catalogue struct {
	Materials []materialEntry `yaml:"materials"`
}

type materialEntry struct {
	ID          string   `yaml:"id"`
	Colour      string   `yaml:"colour"`
	Alpha       *uint8   `yaml:"alpha"`
	Flags       []string `yaml:"flags"`
	Emissive    string   `yaml:"emissive"`
	Roughness   *float32 `yaml:"roughness"`
	Metallic    *float32 `yaml:"metallic"`
	Reflectance *float32 `yaml:"reflectance"`
}

// LoadCatalogue reads a YAML material catalogue from r. Entries that cannot be
// parsed are left out of the returned slice and reported in the joined
// error, so callers may register the valid ones and substitute the rest.
//
//	materials:
//	  - id: voxel::sand
//	    colour: "#dbd3a0"
//	    roughness: 0.9
//	  - id: voxel::glass
//	    colour: "#ffffff"
//	    alpha: 60
//	    flags: [transparent]
func LoadCatalogue(r io.Reader) ([]Material, error) {
	var c catalogue
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode material catalogue: %w", err)
	}
	materials := make([]Material, 0, len(c.Materials))
	var errs []error
	for i, e := range c.Materials {
		m, err := e.material()
		if err != nil {
			errs = append(errs, fmt.Errorf("material %d: %w", i, err))
			continue
		}
		materials = append(materials, m)
	}
	return materials, errors.Join(errs...)
}

func (e materialEntry) material() (Material, error) {
	if _, err := ParseIdentifier(e.ID); err != nil {
		return Material{}, err
	}
	alpha := uint8(255)
	if e.Alpha != nil {
		alpha = *e.Alpha
	}
	colour, err := parseColour(e.Colour, alpha)
	if err != nil {
		return Material{}, fmt.Errorf("%v: colour: %w", e.ID, err)
	}
	m := NewMaterial(e.ID, colour)
	if e.Emissive != "" {
		if m.Emissive, err = parseColour(e.Emissive, 255); err != nil {
			return Material{}, fmt.Errorf("%v: emissive: %w", e.ID, err)
		}
	}
	for _, f := range e.Flags {
		switch strings.ToLower(f) {
		case "solid":
		case "liquid":
			m.Flags |= Liquid
		case "unbreakable":
			m.Flags |= Unbreakable
		case "transparent":
			m.Flags |= Transparent
		default:
			return Material{}, fmt.Errorf("%v: unknown flag %q", e.ID, f)
		}
	}
	if e.Roughness != nil {
		m.Roughness = *e.Roughness
	}
	if e.Metallic != nil {
		m.Metallic = *e.Metallic
	}
	if e.Reflectance != nil {
		m.Reflectance = *e.Reflectance
	}
	return m, nil
}

func parseColour(s string, alpha uint8) (mgl32.Vec4, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return mgl32.Vec4{}, err
	}
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(alpha) / 255}, nil
}
