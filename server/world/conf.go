package world

import (
	"log/slog"
	"runtime"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
	"github.com/df-mc/voxel/server/world/mesh"
)

// Generator generates the blocks of chunks. Generate is called from worker
// goroutines and must be safe for concurrent use. It must return a buffer of
// chunk.ChunkShape that the caller may modify.
type Generator interface {
	Generate(pos cube.ChunkPos) *chunk.Buffer[block.Block]
}

// NopGenerator implements Generator by returning empty chunks.
type NopGenerator struct{}

func (NopGenerator) Generate(cube.ChunkPos) *chunk.Buffer[block.Block] {
	return chunk.New(chunk.ChunkShape, block.Air)
}

// Config may be used to create a new World. It holds a variety of fields that
// influence the World.
type Config struct {
	// Log is the Logger that will be used to log errors and debug messages to.
	// If set to nil, slog.Default() is set.
	Log *slog.Logger
	// Generator generates the blocks of chunks that are loaded. If nil,
	// NopGenerator is used.
	Generator Generator
	// Materials is the registry blocks of the World refer to. It is used to
	// build the material table handed to the Renderer. If nil, block.Default()
	// is used.
	Materials *block.Registry
	// Renderer is notified of meshes and destroyed chunks. If nil,
	// NopRenderer is used.
	Renderer Renderer
	// Provider stores edited chunks when they are unloaded. If nil,
	// NopProvider is used and edits are lost when a chunk unloads.
	Provider Provider
	// HorizontalRadius and VerticalRadius are the distances in chunks around
	// the viewer within which chunks are loaded. They default to 8 and 4. A
	// negative VerticalRadius loads only the layer of chunks the viewer is in.
	HorizontalRadius, VerticalRadius int
	// MinY and MaxY are the world Y bounds of the terrain. Chunks entirely
	// outside of [MinY, MaxY) are never loaded. They default to 0 and 288.
	MinY, MaxY int
	// Workers is the maximum number of generation tasks and the maximum number
	// of meshing tasks running at once. If 0, runtime.NumCPU() is used.
	Workers int
	// TickRate is the number of ticks per second Run performs. If 0, 20 is
	// used.
	TickRate int
	// MeshScale is the edge length of a voxel in mesh units. If 0, 1 is used.
	MeshScale float32
	// NeighbourCulling makes meshes cull faces against loaded neighbouring
	// chunks instead of treating the border of a chunk as air. Chunks are
	// meshed again when a neighbour is generated or edited.
	NeighbourCulling bool
	// RetryAfter is the number of ticks after which generation of a chunk is
	// retried if it panicked. If 0, 20 is used.
	RetryAfter int
	// BacklogWarn is the number of pending tasks of a pipeline above which a
	// warning is logged, at most once a minute. If 0, 4096 is used.
	BacklogWarn int
}

// New creates a new World using the Config conf. The World must be ticked,
// either by calling Tick or Run, to load chunks.
func (conf Config) New() *World {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Generator == nil {
		conf.Generator = NopGenerator{}
	}
	if conf.Materials == nil {
		conf.Materials = block.Default()
	}
	if conf.Renderer == nil {
		conf.Renderer = NopRenderer{}
	}
	if conf.Provider == nil {
		conf.Provider = NopProvider{}
	}
	if conf.HorizontalRadius <= 0 {
		conf.HorizontalRadius = 8
	}
	if conf.VerticalRadius < 0 {
		conf.VerticalRadius = 0
	} else if conf.VerticalRadius == 0 {
		conf.VerticalRadius = 4
	}
	if conf.MinY == 0 && conf.MaxY == 0 {
		conf.MaxY = 288
	}
	if conf.Workers <= 0 {
		conf.Workers = runtime.NumCPU()
	}
	if conf.TickRate <= 0 {
		conf.TickRate = 20
	}
	if conf.MeshScale == 0 {
		conf.MeshScale = 1
	}
	if conf.RetryAfter <= 0 {
		conf.RetryAfter = 20
	}
	if conf.BacklogWarn == 0 {
		conf.BacklogWarn = 4096
	}

	loader := NewLoader(conf.HorizontalRadius, conf.VerticalRadius)
	loader.Bounds(
		int32(cube.FloorDiv(conf.MinY, chunk.Size)),
		int32(cube.FloorDiv(conf.MaxY+chunk.Size-1, chunk.Size)),
	)
	return &World{
		conf:     conf,
		loader:   loader,
		chunks:   chunk.NewMap[block.Block](chunk.ChunkShape),
		dirty:    NewDirtySet(),
		entities: make(map[cube.ChunkPos]*chunkEntity),
		gen:      newPipeline[*chunk.Buffer[block.Block]]("generation", conf.Workers, conf.BacklogWarn, conf.Log),
		meshes:   newPipeline[meshResult]("meshing", conf.Workers, conf.BacklogWarn, conf.Log),
		mesher:   &mesh.Mesher{Scale: conf.MeshScale},
		metrics:  NewMetrics(),
	}
}
