package world

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/chunk"
	"github.com/df-mc/voxel/server/world/mesh"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// World streams chunks around a viewer. Every tick it loads and unloads chunks
// as the viewer moves, generates the blocks of new chunks in the background
// and meshes chunks whose blocks changed, handing the meshes to a Renderer.
//
// The chunk map and dirty set of a World are only touched by the goroutine
// ticking it: World is not safe for concurrent use, except for Stats and TPS.
// Background tasks work on copies of chunk data and return owned results.
type World struct {
	conf Config

	loader *Loader
	// chunks holds the blocks of every chunk that finished generating, keyed
	// by the world position of its minimum corner.
	chunks *chunk.Map[block.Block]
	dirty  *DirtySet
	// entities holds the state of every chunk the Loader asked to be created.
	entities map[cube.ChunkPos]*chunkEntity

	gen    *pipeline[*chunk.Buffer[block.Block]]
	meshes *pipeline[meshResult]
	mesher *mesh.Mesher

	currentTick int64
	tps         atomic.Uint64
	metrics     *Metrics
	closed      bool
}

// entityState is the lifecycle stage of a chunk entity.
type entityState uint8

const (
	// statePendingGeneration: the blocks of the chunk are being generated or
	// generation is waiting to be retried.
	statePendingGeneration entityState = iota
	// stateGenerated: the chunk has blocks but no mesh yet.
	stateGenerated
	// stateMeshed: a mesh of the chunk was handed to the Renderer.
	stateMeshed
)

// chunkEntity tracks a chunk between its creation and destruction. A new
// entity with a new id is created every time a chunk comes into range, so
// results of tasks submitted for an earlier entity of the same chunk are
// recognised and discarded.
type chunkEntity struct {
	id    uuid.UUID
	pos   cube.ChunkPos
	state entityState

	// generating is true while a generation task is pending. retryAt is the
	// tick at which generation is submitted again after a panic.
	generating bool
	retryAt    int64
	// edited is true if the blocks differ from what the Generator produces,
	// either by SetBlock or because they were loaded from the Provider.
	edited bool

	// meshSeq is the sequence number of the last mesh task submitted. Only the
	// result of that task is integrated.
	meshSeq uint64
	// queued is true if the last mesh task submitted is pending or was
	// integrated. queuedDigest is the digest of the padded blocks it was
	// built from.
	queued       bool
	queuedDigest uint64
	// meshRetry is set when the mesh task of the chunk panicked. The chunk is
	// marked dirty again at tick meshRetryAt.
	meshRetry   bool
	meshRetryAt int64
	// quads is the number of quads of the mesh handed to the Renderer.
	quads int
}

// meshResult is the output of a meshing task.
type meshResult struct {
	mesh *mesh.Mesh
}

// Tick advances the World by one tick with the viewer at pos. The phases of a
// tick run in a fixed order:
//
//  1. Chunks that came into range are created and chunks out of range are
//     destroyed.
//  2. Finished generation tasks are integrated: their blocks are inserted and
//     the chunk is marked dirty.
//  3. A mesh task is queued for every dirty chunk, after which the dirty set
//     is cleared.
//  4. Finished mesh tasks are handed to the Renderer.
func (w *World) Tick(pos mgl64.Vec3) {
	if w.closed {
		return
	}
	w.currentTick++

	creates, destroys := w.loader.Move(pos)
	for _, p := range destroys {
		w.destroyChunk(p)
	}
	for _, p := range creates {
		w.createChunk(p)
	}
	w.retryGeneration()
	w.retryMeshes()

	w.gen.poll(w.integrateGeneration)
	w.queueMeshes()
	w.meshes.poll(w.integrateMesh)

	w.metrics.update(func(s *Stats) {
		s.Tick = w.currentTick
		s.Loaded = len(w.entities)
		s.Resident = w.chunks.Len()
		s.PendingGeneration = w.gen.pending()
		s.PendingMeshes = w.meshes.pending()
	})
}

// createChunk creates the entity of a chunk that came into range. The blocks
// are loaded from the Provider if it has them and generated otherwise.
func (w *World) createChunk(pos cube.ChunkPos) {
	e := &chunkEntity{id: uuid.New(), pos: pos}
	w.entities[pos] = e

	buf, ok, err := w.conf.Provider.Load(pos)
	if err != nil {
		w.conf.Log.Error("load chunk", "error", err, "X", pos[0], "Y", pos[1], "Z", pos[2])
	}
	if ok && err == nil {
		w.chunks.Insert(pos.Min(chunk.Size), buf)
		e.state, e.edited = stateGenerated, true
		w.markDirty(pos)
		w.metrics.update(func(s *Stats) { s.Restored++ })
		return
	}
	w.submitGeneration(e)
}

// submitGeneration queues a generation task for the entity passed.
func (w *World) submitGeneration(e *chunkEntity) {
	e.generating = true
	g, pos := w.conf.Generator, e.pos
	w.gen.submit(e.id, pos, 0, func() *chunk.Buffer[block.Block] {
		return g.Generate(pos)
	})
}

// retryGeneration submits generation again for entities whose previous task
// panicked, once RetryAfter ticks have passed.
func (w *World) retryGeneration() {
	for _, e := range w.entities {
		if e.state == statePendingGeneration && !e.generating && e.retryAt <= w.currentTick {
			w.submitGeneration(e)
		}
	}
}

// retryMeshes marks chunks dirty again whose mesh task panicked, once
// RetryAfter ticks have passed.
func (w *World) retryMeshes() {
	for pos, e := range w.entities {
		if e.meshRetry && e.meshRetryAt <= w.currentTick {
			e.meshRetry = false
			w.dirty.Mark(pos)
		}
	}
}

// destroyChunk removes a chunk that went out of range. Edited blocks are
// saved to the Provider first. destroyChunk panics if the chunk has no
// entity.
func (w *World) destroyChunk(pos cube.ChunkPos) {
	e, ok := w.entities[pos]
	if !ok {
		panic(fmt.Sprintf("world: destroy of chunk %v without entity", pos))
	}
	key := pos.Min(chunk.Size)
	if buf, ok := w.chunks.Get(key); ok && e.edited {
		if err := w.conf.Provider.Save(pos, buf); err != nil {
			w.conf.Log.Error("save chunk", "error", err, "X", pos[0], "Y", pos[1], "Z", pos[2])
		} else {
			w.metrics.update(func(s *Stats) { s.Saved++ })
		}
	}
	w.chunks.Remove(key)
	w.dirty.Remove(pos)
	delete(w.entities, pos)
	w.conf.Renderer.ChunkDestroyed(pos)

	w.metrics.update(func(s *Stats) {
		s.Destroyed++
		s.Quads -= e.quads
	})
}

// integrateGeneration inserts the blocks produced by a generation task.
func (w *World) integrateGeneration(t task[*chunk.Buffer[block.Block]], buf *chunk.Buffer[block.Block], err error) {
	e, ok := w.entities[t.pos]
	if !ok || e.id != t.id {
		w.metrics.update(func(s *Stats) { s.Stale++ })
		return
	}
	e.generating = false
	if err != nil {
		w.conf.Log.Error("generate chunk: panic", "error", err.Error(), "X", t.pos[0], "Y", t.pos[1], "Z", t.pos[2])
		e.retryAt = w.currentTick + int64(w.conf.RetryAfter)
		w.metrics.update(func(s *Stats) { s.Panics++ })
		return
	}
	w.chunks.Insert(t.pos.Min(chunk.Size), buf)
	e.state = stateGenerated
	w.markDirty(t.pos)
	w.metrics.update(func(s *Stats) { s.Generated++ })
}

// queueMeshes queues a mesh task for every dirty chunk with blocks and clears
// the dirty set. Each task gets its own padded copy of the blocks, so the
// chunk may be edited while the task runs.
func (w *World) queueMeshes() {
	if w.dirty.Len() == 0 {
		return
	}
	for _, pos := range w.dirty.Keys() {
		e, ok := w.entities[pos]
		if !ok {
			continue
		}
		buf, ok := w.chunks.Get(pos.Min(chunk.Size))
		if !ok {
			continue
		}
		var neighbours mesh.Neighbours
		if w.conf.NeighbourCulling {
			neighbours = w.neighbours(pos)
		}
		padded := w.mesher.Pad(buf, neighbours)
		digest := chunk.Digest(padded)
		if e.queued && digest == e.queuedDigest {
			w.mesher.Release(padded)
			w.metrics.update(func(s *Stats) { s.Skipped++ })
			continue
		}
		e.meshSeq++
		e.queued, e.queuedDigest = true, digest
		m := w.mesher
		w.meshes.submit(e.id, pos, e.meshSeq, func() meshResult {
			defer m.Release(padded)
			return meshResult{mesh: m.Mesh(padded)}
		})
	}
	w.dirty.Clear()
}

// integrateMesh hands the mesh produced by a mesh task to the Renderer.
func (w *World) integrateMesh(t task[meshResult], r meshResult, err error) {
	e, ok := w.entities[t.pos]
	if !ok || e.id != t.id || e.meshSeq != t.seq {
		w.metrics.update(func(s *Stats) { s.Stale++ })
		return
	}
	if err != nil {
		w.conf.Log.Error("mesh chunk: panic", "error", err.Error(), "X", t.pos[0], "Y", t.pos[1], "Z", t.pos[2])
		e.queued = false
		e.meshRetry, e.meshRetryAt = true, w.currentTick+int64(w.conf.RetryAfter)
		w.metrics.update(func(s *Stats) { s.Panics++ })
		return
	}
	quads := len(r.mesh.Quads)
	w.metrics.update(func(s *Stats) {
		s.Meshed++
		s.Quads += quads - e.quads
	})
	e.state, e.quads = stateMeshed, quads
	w.conf.Renderer.MeshReady(t.pos, r.mesh)
}

// neighbours returns the buffers of the loaded chunks around pos.
func (w *World) neighbours(pos cube.ChunkPos) mesh.Neighbours {
	return func(f mesh.Face) *chunk.Buffer[block.Block] {
		off := f.Offset()
		n := cube.ChunkPos{pos[0] + int32(off[0]), pos[1] + int32(off[1]), pos[2] + int32(off[2])}
		buf, _ := w.chunks.Get(n.Min(chunk.Size))
		return buf
	}
}

// markDirty marks the chunk at pos dirty and, with neighbour culling, also
// the loaded chunks around it, as their borders changed.
func (w *World) markDirty(pos cube.ChunkPos) {
	w.dirty.Mark(pos)
	if !w.conf.NeighbourCulling {
		return
	}
	for _, f := range mesh.Faces {
		off := f.Offset()
		n := cube.ChunkPos{pos[0] + int32(off[0]), pos[1] + int32(off[1]), pos[2] + int32(off[2])}
		if w.chunks.Exists(n.Min(chunk.Size)) {
			w.dirty.Mark(n)
		}
	}
}

// BlockAt returns the block at a world position. If the chunk holding it has
// no blocks loaded, BlockAt returns false.
func (w *World) BlockAt(pos cube.Pos) (block.Block, bool) {
	return w.chunks.BlockAt(pos)
}

// SetBlock sets the block at a world position and marks its chunk dirty. If
// the chunk holding pos has no blocks loaded, nothing happens and false is
// returned.
func (w *World) SetBlock(pos cube.Pos, b block.Block) bool {
	cpos := cube.ChunkOf(pos, chunk.Size)
	buf, ok := w.chunks.Get(cpos.Min(chunk.Size))
	if !ok {
		return false
	}
	local := cube.LocalOf(pos, chunk.Size)
	buf.Set(local[0], local[1], local[2], b)
	if e, ok := w.entities[cpos]; ok {
		e.edited = true
	}
	w.dirty.Mark(cpos)
	if w.conf.NeighbourCulling {
		// Only neighbours sharing the face the block lies on see the change.
		for _, f := range mesh.Faces {
			a, off := f.Axis(), f.Offset()
			if (off[a] < 0 && local[a] != 0) || (off[a] > 0 && local[a] != chunk.Size-1) {
				continue
			}
			n := cube.ChunkPos{cpos[0] + int32(off[0]), cpos[1] + int32(off[1]), cpos[2] + int32(off[2])}
			if w.chunks.Exists(n.Min(chunk.Size)) {
				w.dirty.Mark(n)
			}
		}
	}
	return true
}

// Loaded checks if the chunk at pos was created and not destroyed since.
func (w *World) Loaded(pos cube.ChunkPos) bool {
	_, ok := w.entities[pos]
	return ok
}

// Dirty returns the dirty set of the World.
func (w *World) Dirty() *DirtySet {
	return w.dirty
}

// MaterialTable returns the material table the Renderer should use to shade
// the meshes of the World.
func (w *World) MaterialTable() []mesh.GPUMaterial {
	return mesh.MaterialTable(w.conf.Materials)
}

// CurrentTick returns the number of ticks performed.
func (w *World) CurrentTick() int64 {
	return w.currentTick
}

// TPS returns the tick rate measured by Run, averaged over the last
// tpsSampleSize ticks.
func (w *World) TPS() float64 {
	return math.Float64frombits(w.tps.Load())
}

// Stats returns a snapshot of the counters of the World.
func (w *World) Stats() Stats {
	return w.metrics.Snapshot()
}

// Close stops the worker pools, waiting for running tasks, and saves every
// edited chunk to the Provider before closing it. Close must not be called
// while the World is being ticked.
func (w *World) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.gen.close()
	w.meshes.close()

	var errs []error
	for pos, e := range w.entities {
		if !e.edited {
			continue
		}
		if buf, ok := w.chunks.Get(pos.Min(chunk.Size)); ok {
			errs = append(errs, w.conf.Provider.Save(pos, buf))
		}
	}
	errs = append(errs, w.conf.Provider.Close())
	return errors.Join(errs...)
}
