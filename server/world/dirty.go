package world

import (
	"slices"

	"github.com/brentp/intintmap"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
)

const (
	dirtyInitialSize = 64
	dirtyFillFactor  = 0.6
)

// DirtySet holds the chunks whose blocks changed since they were last queued
// for meshing. Marking a chunk twice before Clear keeps a single entry.
type DirtySet struct {
	m *intintmap.Map
}

// NewDirtySet returns an empty DirtySet.
func NewDirtySet() *DirtySet {
	return &DirtySet{m: intintmap.New(dirtyInitialSize, dirtyFillFactor)}
}

// Mark marks the chunk at pos dirty.
func (d *DirtySet) Mark(pos cube.ChunkPos) {
	d.m.Put(dirtyKey(pos), 1)
}

// Has checks if the chunk at pos is dirty.
func (d *DirtySet) Has(pos cube.ChunkPos) bool {
	_, ok := d.m.Get(dirtyKey(pos))
	return ok
}

// Remove removes the chunk at pos from the set, for example because it was
// unloaded. Removing a chunk that is not dirty does nothing.
func (d *DirtySet) Remove(pos cube.ChunkPos) {
	key := dirtyKey(pos)
	// Deleting key 0, chunk (0, 0, 0), shrinks the map even if it is absent.
	if _, ok := d.m.Get(key); !ok {
		return
	}
	d.m.Del(key)
}

// Len returns the number of dirty chunks.
func (d *DirtySet) Len() int {
	return d.m.Size()
}

// Keys returns every dirty chunk once, ordered by Morton code.
func (d *DirtySet) Keys() []cube.ChunkPos {
	keys := make([]cube.ChunkPos, 0, d.m.Size())
	for k := range d.m.Keys() {
		p := cube.Packed(k).Decode()
		keys = append(keys, cube.ChunkPos{int32(p[0]), int32(p[1]), int32(p[2])})
	}
	slices.SortFunc(keys, func(a, b cube.ChunkPos) int {
		ma, mb := chunk.Morton3(a[0], a[1], a[2]), chunk.Morton3(b[0], b[1], b[2])
		switch {
		case ma < mb:
			return -1
		case ma > mb:
			return 1
		}
		return 0
	})
	return keys
}

// Clear removes every chunk from the set.
func (d *DirtySet) Clear() {
	if d.m.Size() == 0 {
		return
	}
	d.m = intintmap.New(dirtyInitialSize, dirtyFillFactor)
}

// dirtyKey packs a chunk position into a map key. It panics for chunks more
// than 2^20 chunks away from the origin.
func dirtyKey(pos cube.ChunkPos) int64 {
	return int64(cube.MustEncode(int(pos[0]), int(pos[1]), int(pos[2])))
}
