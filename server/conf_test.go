package server

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/df-mc/voxel/server/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestReadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	c, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), c); diff != "" {
		t.Fatalf("expected default config (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
}

func TestReadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	want := DefaultConfig()
	want.World.Seed = -42
	want.World.HorizontalRadius = 3
	want.Terrain.SeaLevel = 50
	want.Materials.File = "materials.yaml"
	if err := WriteConfig(path, want); err != nil {
		t.Fatalf("write config: %v", err)
	}
	got, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestUserConfigMaterials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	catalogue := `materials:
  - id: voxel::sand
    colour: "#dbd3a0"
  - id: "Not An Id"
    colour: "#ffffff"
  - id: voxel::stone
    colour: "#000000"
`
	if err := os.WriteFile(path, []byte(catalogue), 0644); err != nil {
		t.Fatalf("write catalogue: %v", err)
	}
	uc := DefaultConfig()
	uc.Materials.File = path
	conf, err := uc.Config(discard)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if _, ok := conf.Materials.Lookup("voxel::sand"); !ok {
		t.Fatalf("expected voxel::sand to be registered")
	}
	if n := conf.Materials.Len(); n != block.Default().Len()+1 {
		t.Fatalf("expected only voxel::sand to be added, got %v materials", n)
	}

	uc.Materials.File = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := uc.Config(discard); err == nil {
		t.Fatalf("expected an error for a missing catalogue")
	}
}

func TestUserConfigLogLevel(t *testing.T) {
	uc := DefaultConfig()
	for level, want := range map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "": slog.LevelInfo, "loud": slog.LevelInfo} {
		uc.Log.Level = level
		if got := uc.LogLevel(); got != want {
			t.Fatalf("expected level %v for %q, got %v", want, level, got)
		}
	}
}

func TestEngineMeshesTerrain(t *testing.T) {
	uc := DefaultConfig()
	uc.World.Seed = 11
	uc.World.HorizontalRadius = 1
	uc.World.VerticalRadius = -1
	uc.World.Workers = 1
	conf, err := uc.Config(discard)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	e := conf.New()
	t.Cleanup(func() {
		if err := e.Close(); err != nil {
			t.Fatalf("close engine: %v", err)
		}
	})

	// The bottom chunk always holds bedrock, so it always has a mesh.
	deadline := time.Now().Add(10 * time.Second)
	for e.World().Stats().Meshed == 0 {
		e.World().Tick(mgl64.Vec3{0, 5, 0})
		if time.Now().After(deadline) {
			t.Fatalf("chunk was never meshed, stats: %+v", e.World().Stats())
		}
		time.Sleep(time.Millisecond)
	}
	if q := e.World().Stats().Quads; q == 0 {
		t.Fatalf("expected the bottom chunk to have quads")
	}
	if e.Generator() == nil {
		t.Fatalf("expected the engine to create a terrain generator")
	}
}
