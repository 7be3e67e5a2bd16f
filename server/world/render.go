package world

import (
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

// Renderer is notified of meshes becoming available and of chunks being
// destroyed. Its methods are called from the goroutine ticking the World.
type Renderer interface {
	// MeshReady is called when a new or updated mesh of the chunk at pos is
	// available. The Renderer takes ownership of m.
	MeshReady(pos cube.ChunkPos, m *mesh.Mesh)
	// ChunkDestroyed is called when the chunk at pos is unloaded. Any
	// resources associated with its mesh should be released. ChunkDestroyed
	// may be called for chunks that never had a mesh.
	ChunkDestroyed(pos cube.ChunkPos)
}

// NopRenderer implements Renderer by discarding everything.
type NopRenderer struct{}

func (NopRenderer) MeshReady(cube.ChunkPos, *mesh.Mesh) {}
func (NopRenderer) ChunkDestroyed(cube.ChunkPos)        {}

// Viewer supplies the reference point chunks are loaded around.
type Viewer interface {
	// Position returns the position of the Viewer in the world.
	Position() mgl64.Vec3
}

// NopViewer implements Viewer by standing still at the origin.
type NopViewer struct{}

func (NopViewer) Position() mgl64.Vec3 { return mgl64.Vec3{} }
