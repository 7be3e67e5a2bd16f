package chunk_test

import (
	"errors"
	"testing"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
)

func TestMapInsertRemove(t *testing.T) {
	m := chunk.NewMap[block.Block](chunk.ChunkShape)
	key := cube.Pos{-32, 64, 96}
	buf := chunk.New(chunk.ChunkShape, block.NewOpaque(2))

	if _, ok := m.Get(key); ok {
		t.Fatalf("expected empty map to have no chunk at %v", key)
	}
	if _, replaced := m.Insert(key, buf); replaced {
		t.Fatalf("expected first insert not to replace anything")
	}
	if !m.Exists(key) {
		t.Fatalf("expected chunk at %v to exist after insert", key)
	}
	got, ok := m.Get(key)
	if !ok || !got.Equal(buf) {
		t.Fatalf("expected Get to return the inserted buffer")
	}
	if removed, ok := m.Remove(key); !ok || removed != buf {
		t.Fatalf("expected Remove to return the inserted buffer")
	}
	if m.Exists(key) || m.Len() != 0 {
		t.Fatalf("expected chunk at %v to be gone after remove", key)
	}
	if _, ok := m.Remove(key); ok {
		t.Fatalf("expected second remove to report absence")
	}
}

func TestMapInsertShapeMismatchPanics(t *testing.T) {
	m := chunk.NewMap[block.Block](chunk.ChunkShape)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, chunk.ErrShapeMismatch) {
			t.Fatalf("expected panic with ErrShapeMismatch, got %v", r)
		}
	}()
	m.Insert(cube.Pos{}, chunk.New(chunk.PaddedShape, block.Air))
}

func TestMapInsertUnalignedPanics(t *testing.T) {
	m := chunk.NewMap[block.Block](chunk.ChunkShape)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected unaligned key to panic")
		}
	}()
	m.Insert(cube.Pos{1, 0, 0}, chunk.New(chunk.ChunkShape, block.Air))
}

func TestMapBlockAt(t *testing.T) {
	m := chunk.NewMap[block.Block](chunk.ChunkShape)
	buf := chunk.New(chunk.ChunkShape, block.Air)
	buf.Set(31, 0, 5, block.NewOpaque(3))
	m.Insert(cube.Pos{-32, 0, 0}, buf)

	if b, ok := m.BlockAt(cube.Pos{-1, 0, 5}); !ok || b != block.NewOpaque(3) {
		t.Fatalf("expected opaque(3) at (-1,0,5), got %v (%v)", b, ok)
	}
	if b, ok := m.BlockAt(cube.Pos{-32, 31, 31}); !ok || !b.Empty() {
		t.Fatalf("expected air at (-32,31,31), got %v (%v)", b, ok)
	}
	if _, ok := m.BlockAt(cube.Pos{0, 0, 0}); ok {
		t.Fatalf("expected absent chunk at (0,0,0)")
	}
	if key := m.KeyOf(cube.Pos{-33, 65, 31}); key != (cube.Pos{-64, 64, 0}) {
		t.Fatalf("expected key (-64,64,0), got %v", key)
	}
}

func TestMapAscendMortonOrder(t *testing.T) {
	m := chunk.NewMap[block.Block](chunk.ChunkShape)
	for x := -2; x < 2; x++ {
		for z := -2; z < 2; z++ {
			m.Insert(cube.Pos{x * 32, 0, z * 32}, chunk.New(chunk.ChunkShape, block.Air))
		}
	}
	var prev uint64
	n := 0
	m.Ascend(func(key cube.Pos, _ *chunk.Buffer[block.Block]) bool {
		code := chunk.Morton3(int32(key[0]/32), int32(key[1]/32), int32(key[2]/32))
		if n > 0 && code <= prev {
			t.Fatalf("expected ascending Morton codes, got %d after %d", code, prev)
		}
		prev = code
		n++
		return true
	})
	if n != 16 {
		t.Fatalf("expected 16 chunks, got %d", n)
	}
}

func TestMapFarChunksDoNotAlias(t *testing.T) {
	m := chunk.NewMap[block.Block](chunk.ChunkShape)
	near := chunk.New(chunk.ChunkShape, block.NewOpaque(1))
	m.Insert(cube.Pos{}, near)

	// 2^21 chunks along X wraps around the bits kept by Morton3.
	far := cube.Pos{32 << 21, 0, 0}
	if m.Exists(far) {
		t.Fatalf("expected no chunk at %v", far)
	}
	if b, ok := m.BlockAt(far); ok {
		t.Fatalf("expected no block at %v, got %v", far, b)
	}

	farBuf := chunk.New(chunk.ChunkShape, block.NewOpaque(2))
	if _, replaced := m.Insert(far, farBuf); replaced {
		t.Fatalf("expected inserting %v not to replace the chunk at the origin", far)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 chunks, got %v", m.Len())
	}
	if b, ok := m.BlockAt(cube.Pos{1, 2, 3}); !ok || b != block.NewOpaque(1) {
		t.Fatalf("expected the origin chunk to keep its blocks, got %v (%v)", b, ok)
	}
	if got, ok := m.Get(far); !ok || got != farBuf {
		t.Fatalf("expected Get to return the far chunk")
	}
	if _, ok := m.Remove(far); !ok || !m.Exists(cube.Pos{}) {
		t.Fatalf("expected removing the far chunk to keep the origin chunk")
	}
}
