package block

import "fmt"

// Block is a single voxel. The zero value is Air. The highest bit marks the
// block as transparent and the remaining bits hold the material ID it was
// built from.
type Block uint64

const (
	// Air is the empty block.
	Air Block = 0
	// TransparentFlag is set on blocks that light and neighbouring faces can
	// be seen through.
	TransparentFlag Block = 1 << 63
)

// Visibility describes how a block occludes its neighbours.
type Visibility uint8

const (
	Empty Visibility = iota
	Opaque
	Translucent
)

// NewOpaque returns an opaque block of the material with the ID passed. It
// panics if id is 0, as that ID is reserved for Air.
func NewOpaque(id uint16) Block {
	if id == 0 {
		panic("block: material id 0 is reserved for air")
	}
	return Block(id)
}

// NewTransparent returns a transparent block of the material with the ID
// passed. It panics if id is 0.
func NewTransparent(id uint16) Block {
	return NewOpaque(id) | TransparentFlag
}

// Material returns the material ID of the block. Air has material 0.
func (b Block) Material() uint16 {
	return uint16(b &^ TransparentFlag)
}

// Empty checks if the block is Air.
func (b Block) Empty() bool {
	return b == Air
}

// Transparent checks if the transparency flag of the block is set.
func (b Block) Transparent() bool {
	return b&TransparentFlag != 0
}

// Visibility returns the Visibility of the block.
func (b Block) Visibility() Visibility {
	switch {
	case b.Empty():
		return Empty
	case b.Transparent():
		return Translucent
	}
	return Opaque
}

// String implements fmt.Stringer.
func (b Block) String() string {
	if b.Empty() {
		return "air"
	}
	if b.Transparent() {
		return fmt.Sprintf("transparent(%d)", b.Material())
	}
	return fmt.Sprintf("opaque(%d)", b.Material())
}
