package chunk

import (
	"errors"
	"fmt"

	"github.com/df-mc/voxel/server/block/cube"
	"github.com/google/btree"
)

// ErrShapeMismatch is the panic value wrapped when a buffer of the wrong
// shape is inserted into a Map.
var ErrShapeMismatch = errors.New("chunk: buffer shape mismatch")

// Map is a sparse set of chunk buffers keyed by the minimum corner of their
// chunk. All buffers in a Map share one shape. Entries are kept in Morton
// order of their chunk coordinate, so lookups are O(log n) and ranges of
// neighbouring chunks can be scanned efficiently.
//
// A Map is not safe for concurrent use.
type Map[V comparable] struct {
	shape Shape
	tree  *btree.BTreeG[entry[V]]
}

type entry[V comparable] struct {
	code uint64
	key  cube.Pos
	buf  *Buffer[V]
}

// NewMap creates an empty Map for buffers of the shape passed.
func NewMap[V comparable](shape Shape) *Map[V] {
	return &Map[V]{
		shape: shape,
		tree: btree.NewG[entry[V]](16, entry[V].less),
	}
}

// Shape returns the shape shared by all buffers of the map.
func (m *Map[V]) Shape() Shape {
	return m.shape
}

// Len returns the number of chunks in the map.
func (m *Map[V]) Len() int {
	return m.tree.Len()
}

// KeyOf returns the key of the chunk that holds the world position passed.
func (m *Map[V]) KeyOf(pos cube.Pos) cube.Pos {
	return cube.Pos{
		alignDown(pos[0], m.shape.X),
		alignDown(pos[1], m.shape.Y),
		alignDown(pos[2], m.shape.Z),
	}
}

// Get returns the buffer stored under key.
func (m *Map[V]) Get(key cube.Pos) (*Buffer[V], bool) {
	e, ok := m.tree.Get(m.probe(key))
	if !ok {
		return nil, false
	}
	return e.buf, true
}

// Exists checks if a buffer is stored under key.
func (m *Map[V]) Exists(key cube.Pos) bool {
	return m.tree.Has(m.probe(key))
}

// Insert stores buf under key and returns the buffer it replaced, if any.
// Insert panics if buf does not have the shape of the map or if key is not
// the minimum corner of a chunk.
func (m *Map[V]) Insert(key cube.Pos, buf *Buffer[V]) (*Buffer[V], bool) {
	if buf.Shape() != m.shape {
		panic(fmt.Errorf("insert %v: %w: got %v, want %v", key, ErrShapeMismatch, buf.Shape(), m.shape))
	}
	if m.KeyOf(key) != key {
		panic(fmt.Sprintf("chunk: key %v is not aligned to shape %v", key, m.shape))
	}
	e := m.probe(key)
	e.buf = buf
	old, ok := m.tree.ReplaceOrInsert(e)
	return old.buf, ok
}

// Remove deletes the buffer stored under key and returns it.
func (m *Map[V]) Remove(key cube.Pos) (*Buffer[V], bool) {
	e, ok := m.tree.Delete(m.probe(key))
	return e.buf, ok
}

// BlockAt returns the value at the world position passed. The bool returned
// is false if the chunk holding pos is not in the map.
func (m *Map[V]) BlockAt(pos cube.Pos) (V, bool) {
	key := m.KeyOf(pos)
	buf, ok := m.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return buf.At(pos[0]-key[0], pos[1]-key[1], pos[2]-key[2]), true
}

// Ascend calls f for every chunk in Morton order until f returns false.
func (m *Map[V]) Ascend(f func(key cube.Pos, buf *Buffer[V]) bool) {
	m.tree.Ascend(func(e entry[V]) bool {
		return f(e.key, e.buf)
	})
}

// AscendRange calls f in Morton order for every chunk whose Morton code lies
// between that of from (inclusive) and to (exclusive), until f returns false.
func (m *Map[V]) AscendRange(from, to cube.Pos, f func(key cube.Pos, buf *Buffer[V]) bool) {
	m.tree.AscendRange(m.probe(from), m.probe(to), func(e entry[V]) bool {
		return f(e.key, e.buf)
	})
}

// Keys returns the keys of all chunks in Morton order.
func (m *Map[V]) Keys() []cube.Pos {
	keys := make([]cube.Pos, 0, m.tree.Len())
	m.tree.Ascend(func(e entry[V]) bool {
		keys = append(keys, e.key)
		return true
	})
	return keys
}

// less orders entries by Morton code. Morton codes only keep the low bits of
// chunk coordinates, so chunks far apart may share one and are ordered by key.
func (e entry[V]) less(o entry[V]) bool {
	if e.code != o.code {
		return e.code < o.code
	}
	for i := range e.key {
		if e.key[i] != o.key[i] {
			return e.key[i] < o.key[i]
		}
	}
	return false
}

// probe returns an entry without buffer for looking up key.
func (m *Map[V]) probe(key cube.Pos) entry[V] {
	return entry[V]{
		code: Morton3(
			int32(cube.FloorDiv(key[0], m.shape.X)),
			int32(cube.FloorDiv(key[1], m.shape.Y)),
			int32(cube.FloorDiv(key[2], m.shape.Z)),
		),
		key: key,
	}
}

func alignDown(v, size int) int {
	if size&(size-1) == 0 {
		return v &^ (size - 1)
	}
	return cube.FloorDiv(v, size) * size
}
