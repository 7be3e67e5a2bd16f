package chunk

// mortonBits is the number of bits of each axis kept in a Morton code.
const mortonBits = 21

// Morton3 interleaves the bits of a chunk coordinate into a single code.
// Chunks close to each other in space get codes close to each other, so
// iterating a Map in Morton order visits neighbouring chunks together.
// Components are offset so that negative coordinates order before positive
// ones; each must fit in 21 signed bits.
func Morton3(x, y, z int32) uint64 {
	return splitBy2(toUnsigned(x)) | splitBy2(toUnsigned(y))<<1 | splitBy2(toUnsigned(z))<<2
}

// FromMorton3 is the inverse of Morton3.
func FromMorton3(code uint64) (x, y, z int32) {
	return fromUnsigned(compactBy2(code)), fromUnsigned(compactBy2(code >> 1)), fromUnsigned(compactBy2(code >> 2))
}

func toUnsigned(v int32) uint32 {
	return (uint32(v) + 1<<(mortonBits-1)) & (1<<mortonBits - 1)
}

func fromUnsigned(v uint32) int32 {
	return int32(v) - 1<<(mortonBits-1)
}

func splitBy2(v uint32) uint64 {
	x := uint64(v) & 0x1fffff
	x = (x | x<<32) & 0x1f00000000ffff
	x = (x | x<<16) & 0x1f0000ff0000ff
	x = (x | x<<8) & 0x100f00f00f00f00f
	x = (x | x<<4) & 0x10c30c30c30c30c3
	x = (x | x<<2) & 0x1249249249249249
	return x
}

func compactBy2(x uint64) uint32 {
	x &= 0x1249249249249249
	x = (x ^ x>>2) & 0x10c30c30c30c30c3
	x = (x ^ x>>4) & 0x100f00f00f00f00f
	x = (x ^ x>>8) & 0x1f0000ff0000ff
	x = (x ^ x>>16) & 0x1f00000000ffff
	x = (x ^ x>>32) & 0x1fffff
	return uint32(x)
}
