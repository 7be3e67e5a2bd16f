package cube

import (
	"errors"
	"fmt"
)

// Bit layout of a Packed position. X and Z get 21 bits each and Y gets the
// remaining 22, so a Packed covers a world of 2^21 voxels horizontally.
const (
	XBits = 21
	YBits = 22
	ZBits = 21

	XShift = YBits + ZBits
	ZShift = YBits
	YShift = 0

	xMask = 1<<XBits - 1
	yMask = 1<<YBits - 1
	zMask = 1<<ZBits - 1
)

// Bit layout of a LocalPacked position, used for coordinates inside a chunk.
const (
	LocalXBits = 12
	LocalYBits = 8
	LocalZBits = 12

	localXShift = LocalYBits + LocalZBits
	localZShift = LocalYBits

	localXMask = 1<<LocalXBits - 1
	localYMask = 1<<LocalYBits - 1
	localZMask = 1<<LocalZBits - 1
)

// ErrOutOfRange is returned when a coordinate does not fit the bit width of
// its field.
var ErrOutOfRange = errors.New("cube: coordinate out of range")

// Packed is a Pos packed into a single int64. Packed values of neighbouring
// positions are not necessarily close; use it for addressing, not ordering.
type Packed int64

// Encode packs x, y and z into a Packed. An error wrapping ErrOutOfRange is
// returned if any component does not fit its signed field.
func Encode(x, y, z int) (Packed, error) {
	if !fits(x, XBits) || !fits(y, YBits) || !fits(z, ZBits) {
		return 0, fmt.Errorf("encode %v: %w", Pos{x, y, z}, ErrOutOfRange)
	}
	return EncodeMasked(x, y, z), nil
}

// MustEncode packs x, y and z into a Packed and panics if any component is
// out of range.
func MustEncode(x, y, z int) Packed {
	p, err := Encode(x, y, z)
	if err != nil {
		panic(err)
	}
	return p
}

// EncodeMasked packs x, y and z without validating them. Components outside
// of their field silently wrap, so callers must have checked the range.
func EncodeMasked(x, y, z int) Packed {
	return Packed(int64(x&xMask)<<XShift | int64(z&zMask)<<ZShift | int64(y&yMask)<<YShift)
}

// Decode unpacks the Packed into a Pos, restoring the sign of every
// component.
func (p Packed) Decode() Pos {
	v := int64(p)
	return Pos{
		int(signExtend(v>>XShift&xMask, XBits)),
		int(signExtend(v>>YShift&yMask, YBits)),
		int(signExtend(v>>ZShift&zMask, ZBits)),
	}
}

// LocalPacked is a chunk-local position packed into 32 bits with a 12/8/12
// layout. All components are unsigned.
type LocalPacked uint32

// EncodeLocal packs a chunk-local position. An error wrapping ErrOutOfRange
// is returned for negative components or components exceeding the layout.
func EncodeLocal(x, y, z int) (LocalPacked, error) {
	if x < 0 || x > localXMask || y < 0 || y > localYMask || z < 0 || z > localZMask {
		return 0, fmt.Errorf("encode local %v: %w", Pos{x, y, z}, ErrOutOfRange)
	}
	return LocalPacked(uint32(x)<<localXShift | uint32(z)<<localZShift | uint32(y)), nil
}

// Decode unpacks the LocalPacked into a Pos.
func (p LocalPacked) Decode() Pos {
	return Pos{int(p >> localXShift & localXMask), int(p & localYMask), int(p >> localZShift & localZMask)}
}

func fits(v, bits int) bool {
	return v >= -(1<<(bits-1)) && v < 1<<(bits-1)
}

func signExtend(v int64, bits uint) int64 {
	shift := 64 - bits
	return v << shift >> shift
}
