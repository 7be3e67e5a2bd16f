package world

import (
	"testing"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
)

func TestMemProviderRoundTrip(t *testing.T) {
	p, err := NewMemProvider()
	if err != nil {
		t.Fatalf("open provider: %v", err)
	}
	t.Cleanup(func() {
		if err := p.Close(); err != nil {
			t.Fatalf("close provider: %v", err)
		}
	})

	pos := cube.ChunkPos{-4, 2, 9}
	if _, ok, err := p.Load(pos); ok || err != nil {
		t.Fatalf("expected nothing stored for %v, got %v, %v", pos, ok, err)
	}

	buf := chunk.New(chunk.ChunkShape, block.Air)
	buf.FillRegion(chunk.Extent{Min: [3]int{3, 4, 5}, Size: [3]int{7, 8, 9}}, stone)
	if err := p.Save(pos, buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := p.Load(pos)
	if err != nil || !ok {
		t.Fatalf("expected chunk %v to be stored, got %v, %v", pos, ok, err)
	}
	if !got.Equal(buf) {
		t.Fatalf("expected loaded blocks to equal saved blocks")
	}

	if err := p.Delete(pos); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := p.Load(pos); ok {
		t.Fatalf("expected chunk %v to be deleted", pos)
	}
}
