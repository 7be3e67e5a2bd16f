package world

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/storage"
	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
)

// Provider stores the blocks of chunks that were edited, so that edits
// survive a chunk being unloaded and loaded again. Chunks that were never
// edited are not stored: they are generated again instead.
type Provider interface {
	// Load returns the blocks stored for the chunk at pos. If nothing was
	// stored, Load returns false and a nil error.
	Load(pos cube.ChunkPos) (*chunk.Buffer[block.Block], bool, error)
	// Save stores the blocks of the chunk at pos.
	Save(pos cube.ChunkPos, buf *chunk.Buffer[block.Block]) error
	// Close closes the Provider.
	Close() error
}

// NopProvider implements Provider by storing nothing.
type NopProvider struct{}

func (NopProvider) Load(cube.ChunkPos) (*chunk.Buffer[block.Block], bool, error) {
	return nil, false, nil
}
func (NopProvider) Save(cube.ChunkPos, *chunk.Buffer[block.Block]) error { return nil }
func (NopProvider) Close() error                                         { return nil }

// MemProvider implements Provider using an in-memory LevelDB database. Chunks
// are stored as snapshots encoded with chunk.EncodeSnapshot.
type MemProvider struct {
	db *leveldb.DB
}

// NewMemProvider opens an empty MemProvider.
func NewMemProvider() (*MemProvider, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory provider: %w", err)
	}
	return &MemProvider{db: db}, nil
}

// Load ...
func (p *MemProvider) Load(pos cube.ChunkPos) (*chunk.Buffer[block.Block], bool, error) {
	data, err := p.db.Get(providerKey(pos), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("load chunk %v: %w", pos, err)
	}
	key, buf, err := chunk.DecodeSnapshot(data)
	if err != nil {
		return nil, false, fmt.Errorf("load chunk %v: %w", pos, err)
	}
	if key != pos.Min(chunk.Size) {
		return nil, false, fmt.Errorf("load chunk %v: snapshot holds chunk at %v: %w", pos, key, chunk.ErrCorruptSnapshot)
	}
	return buf, true, nil
}

// Save ...
func (p *MemProvider) Save(pos cube.ChunkPos, buf *chunk.Buffer[block.Block]) error {
	if err := p.db.Put(providerKey(pos), chunk.EncodeSnapshot(pos.Min(chunk.Size), buf), nil); err != nil {
		return fmt.Errorf("save chunk %v: %w", pos, err)
	}
	return nil
}

// Delete removes the chunk at pos from the provider.
func (p *MemProvider) Delete(pos cube.ChunkPos) error {
	return p.db.Delete(providerKey(pos), nil)
}

// Close ...
func (p *MemProvider) Close() error {
	return p.db.Close()
}

// providerKey returns the database key of a chunk: its X, Y and Z as little
// endian int32s.
func providerKey(pos cube.ChunkPos) []byte {
	b := make([]byte, 12)
	binary.LittleEndian.PutUint32(b, uint32(pos[0]))
	binary.LittleEndian.PutUint32(b[4:], uint32(pos[1]))
	binary.LittleEndian.PutUint32(b[8:], uint32(pos[2]))
	return b
}
