package block

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxMaterials is the maximum number of materials a Registry holds,
// including air. Packed vertex attributes reserve 8 bits for the material.
const MaxMaterials = 256

var (
	// ErrDuplicateMaterial is returned when a material with the same
	// identifier was already registered.
	ErrDuplicateMaterial = errors.New("block: duplicate material")
	// ErrRegistryFull is returned when registering more than MaxMaterials
	// materials.
	ErrRegistryFull = errors.New("block: material registry full")
)

// Flags holds physical and render properties of a Material.
type Flags uint32

const (
	Solid       Flags = 0
	Liquid      Flags = 1 << 1
	Unbreakable Flags = 1 << 2
	Transparent Flags = 1 << 3
)

// Has checks if all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Material describes how blocks of one kind look and behave.
type Material struct {
	// ID is the identifier of the material, in the format
	// namespace::name[::variant].
	ID string
	// Colour is the linear RGBA base colour of the material.
	Colour mgl32.Vec4
	Flags  Flags
	// Emissive is the RGBA colour the material emits. The zero value emits
	// nothing.
	Emissive    mgl32.Vec4
	Roughness   float32
	Metallic    float32
	Reflectance float32
}

// NewMaterial returns a Material with the identifier and colour passed and
// default surface properties.
func NewMaterial(id string, colour mgl32.Vec4) Material {
	return Material{ID: id, Colour: colour, Roughness: 0.8, Reflectance: 0.5}
}

// Registry holds all materials known to a world. IDs are assigned densely in
// registration order and never change. ID 0 is always air. A Registry is safe
// for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	materials []Material
	ids       map[string]uint16
}

// NewRegistry returns a Registry that only holds air.
func NewRegistry() *Registry {
	r := &Registry{ids: make(map[string]uint16)}
	air := NewMaterial(DefaultNamespace+"::air", mgl32.Vec4{})
	air.Flags = Transparent
	r.materials = append(r.materials, air)
	r.ids[air.ID] = 0
	return r
}

// Register adds m to the registry and returns its ID. The identifier of m is
// normalised, so "stone" registers as "voxel::stone". Materials that fail to
// register are not added.
func (r *Registry) Register(m Material) (uint16, error) {
	id, err := ParseIdentifier(m.ID)
	if err != nil {
		return 0, err
	}
	m.ID = id.String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[m.ID]; ok {
		return 0, fmt.Errorf("register %v: %w", m.ID, ErrDuplicateMaterial)
	}
	if len(r.materials) >= MaxMaterials {
		return 0, fmt.Errorf("register %v: %w", m.ID, ErrRegistryFull)
	}
	n := uint16(len(r.materials))
	r.materials = append(r.materials, m)
	r.ids[m.ID] = n
	return n, nil
}

// RegisterAll registers all materials passed. Materials that fail to register
// are skipped and their errors are joined together.
func (r *Registry) RegisterAll(materials ...Material) error {
	var errs []error
	for _, m := range materials {
		if _, err := r.Register(m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Material looks up the material with the ID passed.
func (r *Registry) Material(id uint16) (Material, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.materials) {
		return Material{}, false
	}
	return r.materials[id], true
}

// Lookup returns the ID of the material with the identifier passed.
func (r *Registry) Lookup(name string) (uint16, bool) {
	id, err := ParseIdentifier(name)
	if err != nil {
		return 0, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.ids[id.String()]
	return n, ok
}

// Block returns a block of the material with the identifier passed. The block
// is transparent if the material has the Transparent or Liquid flag. Looking
// up air returns Air.
func (r *Registry) Block(name string) (Block, bool) {
	n, ok := r.Lookup(name)
	if !ok {
		return Air, false
	}
	if n == 0 {
		return Air, true
	}
	m, _ := r.Material(n)
	if m.Flags&(Transparent|Liquid) != 0 {
		return NewTransparent(n), true
	}
	return NewOpaque(n), true
}

// MustBlock is like Block, but panics if the material is not registered.
func (r *Registry) MustBlock(name string) Block {
	b, ok := r.Block(name)
	if !ok {
		panic("block: unknown material " + name)
	}
	return b
}

// Len returns the number of registered materials, including air.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.materials)
}

// All returns a copy of all registered materials, indexed by ID.
func (r *Registry) All() []Material {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Material(nil), r.materials...)
}
