package world

import (
	"fmt"
	"math"
	"slices"

	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
	"github.com/go-gl/mathgl/mgl64"
)

// Loader decides which chunks are loaded around a moving reference point. It
// keeps track of the chunks it asked to be created and, every time the
// reference point moves into a different chunk, returns the chunks that
// should be created and destroyed as a result.
//
// A chunk is in range of an anchor chunk if dx²+dz² < rh² and |dy| <= rv.
// Loader is not safe for concurrent use.
type Loader struct {
	rh, rv     int32
	minY, maxY int32

	anchor   cube.ChunkPos
	anchored bool

	resident map[cube.ChunkPos]struct{}
}

// NewLoader creates a Loader with a horizontal radius rh and a vertical radius
// rv, both measured in chunks.
func NewLoader(rh, rv int) *Loader {
	return &Loader{
		rh:       int32(max(rh, 0)),
		rv:       int32(max(rv, 0)),
		minY:     math.MinInt32,
		maxY:     math.MaxInt32,
		resident: make(map[cube.ChunkPos]struct{}),
	}
}

// Bounds limits the chunks loaded to those with a Y in [lo, hi).
func (l *Loader) Bounds(lo, hi int32) {
	l.minY, l.maxY = lo, hi
}

// Anchor returns the chunk the reference point was last in. If Move was never
// called, Anchor returns false.
func (l *Loader) Anchor() (cube.ChunkPos, bool) {
	return l.anchor, l.anchored
}

// Resident checks if the chunk passed was created by the Loader and not yet
// destroyed.
func (l *Loader) Resident(pos cube.ChunkPos) bool {
	_, ok := l.resident[pos]
	return ok
}

// Len returns the number of resident chunks.
func (l *Loader) Len() int {
	return len(l.resident)
}

// Move moves the reference point of the Loader to pos. If the chunk pos is in
// differs from the current anchor, Move returns the chunks that came into
// range, nearest first, and the chunks that went out of range, furthest
// first. The resident set is updated accordingly. If the anchor did not
// change, both slices are nil.
func (l *Loader) Move(pos mgl64.Vec3) (creates, destroys []cube.ChunkPos) {
	anchor := cube.ChunkOf(cube.Pos{
		int(math.Floor(pos[0])),
		int(math.Floor(pos[1])),
		int(math.Floor(pos[2])),
	}, chunk.Size)
	if l.anchored && anchor == l.anchor {
		return nil, nil
	}
	l.anchor, l.anchored = anchor, true

	for _, key := range l.Wanted(anchor) {
		if _, ok := l.resident[key]; !ok {
			l.resident[key] = struct{}{}
			creates = append(creates, key)
		}
	}
	for key := range l.resident {
		if !l.inRange(anchor, key) {
			destroys = append(destroys, key)
		}
	}
	slices.SortStableFunc(destroys, func(a, b cube.ChunkPos) int {
		return compareDistance(anchor, b, a)
	})
	for _, key := range destroys {
		l.Destroy(key)
	}
	return creates, destroys
}

// Destroy removes a chunk from the resident set. Destroy panics if the chunk
// is not resident: only chunks previously returned as creates may be
// destroyed.
func (l *Loader) Destroy(pos cube.ChunkPos) {
	if _, ok := l.resident[pos]; !ok {
		panic(fmt.Sprintf("world: destroy of non-resident chunk %v", pos))
	}
	delete(l.resident, pos)
}

// Wanted returns every chunk in range of anchor, sorted by ascending distance
// to it. Chunks at an equal distance are ordered by Morton code.
func (l *Loader) Wanted(anchor cube.ChunkPos) []cube.ChunkPos {
	lo := max(int64(anchor[1])-int64(l.rv), int64(l.minY))
	hi := min(int64(anchor[1])+int64(l.rv), int64(l.maxY)-1)
	if lo > hi {
		return nil
	}
	keys := make([]cube.ChunkPos, 0, int(hi-lo+1)*int(4*l.rh*l.rh))
	for dx := -l.rh + 1; dx < l.rh; dx++ {
		for dz := -l.rh + 1; dz < l.rh; dz++ {
			if int64(dx)*int64(dx)+int64(dz)*int64(dz) >= int64(l.rh)*int64(l.rh) {
				continue
			}
			for y := lo; y <= hi; y++ {
				keys = append(keys, cube.ChunkPos{anchor[0] + dx, int32(y), anchor[2] + dz})
			}
		}
	}
	slices.SortStableFunc(keys, func(a, b cube.ChunkPos) int {
		return compareDistance(anchor, a, b)
	})
	return keys
}

func (l *Loader) inRange(anchor, pos cube.ChunkPos) bool {
	dx, dy, dz := int64(pos[0])-int64(anchor[0]), int64(pos[1])-int64(anchor[1]), int64(pos[2])-int64(anchor[2])
	if dx*dx+dz*dz >= int64(l.rh)*int64(l.rh) || dy < -int64(l.rv) || dy > int64(l.rv) {
		return false
	}
	return pos[1] >= l.minY && pos[1] < l.maxY
}

// compareDistance orders a and b by their distance to anchor, then by Morton
// code.
func compareDistance(anchor, a, b cube.ChunkPos) int {
	da, db := anchor.DistanceSq(a), anchor.DistanceSq(b)
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	}
	ma, mb := chunk.Morton3(a[0], a[1], a[2]), chunk.Morton3(b[0], b[1], b[2])
	switch {
	case ma < mb:
		return -1
	case ma > mb:
		return 1
	}
	return 0
}
