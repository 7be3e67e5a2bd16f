package main

import (
	"context"
	"flag"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df-mc/voxel/server"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/df-mc/voxel/server/world"
	"github.com/df-mc/voxel/server/world/mesh"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	configPath := flag.String("config", "config.toml", "path of the TOML configuration file")
	duration := flag.Duration("duration", 0, "time to run for, 0 runs until interrupted")
	radius := flag.Float64("radius", 256, "radius in voxels of the circle the viewer flies")
	height := flag.Float64("height", 140, "height in voxels the viewer flies at")
	speed := flag.Float64("speed", 8, "speed of the viewer in voxels per tick")
	flag.Parse()

	uc, err := server.ReadConfig(*configPath)
	if err != nil {
		slog.Error("read config: " + err.Error())
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: uc.LogLevel()}))
	conf, err := uc.Config(log)
	if err != nil {
		log.Error("create config: " + err.Error())
		os.Exit(1)
	}
	r := newMeshStore()
	conf.World.Renderer = r
	e := conf.New()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}
	go logStats(ctx, log, e.World(), r)

	v := &circleViewer{radius: *radius, height: *height, step: *speed / math.Max(*radius, 1)}
	if err := e.Run(ctx, v); err != nil {
		log.Error("run engine: " + err.Error())
	}
	if err := e.Close(); err != nil {
		log.Error("close engine: " + err.Error())
	}
	s := e.World().Stats()
	color.New(color.FgGreen, color.Bold).Printf("%v ticks: %v chunks generated, %v meshes built, %v quads alive\n",
		humanize.Comma(s.Tick), humanize.Comma(int64(s.Generated)), humanize.Comma(int64(s.Meshed)), humanize.Comma(int64(s.Quads)))
}

// circleViewer flies in a circle around the origin. Position is only called
// from the goroutine ticking the world.
type circleViewer struct {
	radius, height, step float64
	angle                float64
}

func (v *circleViewer) Position() mgl64.Vec3 {
	v.angle += v.step
	return mgl64.Vec3{math.Cos(v.angle) * v.radius, v.height, math.Sin(v.angle) * v.radius}
}

// meshStore keeps the meshes handed to it like a renderer keeping GPU
// buffers would, tracking the memory they occupy.
type meshStore struct {
	mu     sync.Mutex
	meshes map[cube.ChunkPos]*mesh.Mesh
	bytes  atomic.Int64
}

func newMeshStore() *meshStore {
	return &meshStore{meshes: make(map[cube.ChunkPos]*mesh.Mesh)}
}

func (s *meshStore) MeshReady(pos cube.ChunkPos, m *mesh.Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.meshes[pos]; ok {
		s.bytes.Add(-int64(old.Size()))
	}
	s.meshes[pos] = m
	s.bytes.Add(int64(m.Size()))
}

func (s *meshStore) ChunkDestroyed(pos cube.ChunkPos) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.meshes[pos]; ok {
		s.bytes.Add(-int64(old.Size()))
		delete(s.meshes, pos)
	}
}

var _ world.Renderer = (*meshStore)(nil)

// logStats logs the pipeline statistics of w every five seconds until ctx is
// done.
func logStats(ctx context.Context, log *slog.Logger, w *world.World, r *meshStore) {
	t := time.NewTicker(5 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			s := w.Stats()
			log.Info("World statistics.",
				"tick", s.Tick,
				"tps", humanize.FtoaWithDigits(w.TPS(), 1),
				"loaded", s.Loaded,
				"pending_generation", s.PendingGeneration,
				"pending_meshes", s.PendingMeshes,
				"quads", humanize.Comma(int64(s.Quads)),
				"mesh_memory", humanize.IBytes(uint64(r.bytes.Load())),
				"heap", humanize.IBytes(ms.HeapAlloc),
			)
		case <-ctx.Done():
			return
		}
	}
}
