package server

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/world"
	"github.com/df-mc/voxel/server/world/generator/terrain"
)

// Config contains options for starting an Engine.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set to
	// slog.Default().
	Log *slog.Logger
	// Materials is the material registry shared by the terrain generator, the
	// world and the renderer. If nil, block.Default() is used.
	Materials *block.Registry
	// Generator generates the blocks of chunks. If nil, a terrain generator
	// is created from Terrain.
	Generator world.Generator
	// Terrain holds the parameters of the default terrain generator. Its Log
	// and Materials fields are overwritten with those of the Config.
	Terrain terrain.Config
	// World holds the streaming and meshing parameters of the world. Its Log,
	// Generator, Materials and Provider fields are overwritten with those of
	// the Config.
	World world.Config
	// Provider stores edited chunks while they are unloaded. If nil and
	// SaveEdits is true, an in-memory world.MemProvider is used.
	Provider world.Provider
	// SaveEdits specifies if edits made to chunks should survive the chunk
	// being unloaded.
	SaveEdits bool
}

// New creates an Engine using the fields of conf.
func (conf Config) New() *Engine {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Materials == nil {
		conf.Materials = block.Default()
	}
	var gen *terrain.Generator
	if conf.Generator == nil {
		conf.Terrain.Log, conf.Terrain.Materials = conf.Log, conf.Materials
		gen = conf.Terrain.New()
		conf.Generator = gen
	}
	if conf.Provider == nil && conf.SaveEdits {
		p, err := world.NewMemProvider()
		if err != nil {
			conf.Log.Error("create world provider: " + err.Error())
		} else {
			conf.Provider = p
		}
	}
	conf.World.Log = conf.Log
	conf.World.Generator = conf.Generator
	conf.World.Materials = conf.Materials
	conf.World.Provider = conf.Provider

	return &Engine{conf: conf, gen: gen, w: conf.World.New()}
}

// UserConfig is the user configuration of an Engine. It may be serialised to
// and from TOML and can be converted to a Config by calling
// UserConfig.Config().
type UserConfig struct {
	World struct {
		// Seed controls the procedural generation of the terrain.
		Seed int64
		// HorizontalRadius and VerticalRadius are the distances in chunks
		// around the viewer within which chunks are loaded.
		HorizontalRadius int
		VerticalRadius   int
		// MinY and MaxY bound the height of the world in voxels.
		MinY int
		MaxY int
		// Workers is the number of background workers generating and meshing
		// chunks. Set to 0 to select a default based on the CPU count.
		Workers int
		// TickRate is the number of ticks per second.
		TickRate int
		// MeshScale is the edge length of a voxel in mesh units.
		MeshScale float64
		// NeighbourCulling culls faces on chunk borders against loaded
		// neighbouring chunks.
		NeighbourCulling bool
		// SaveEdits keeps edits made to chunks in memory while the chunk is
		// unloaded.
		SaveEdits bool
	}
	Terrain struct {
		// Octaves, Frequency, Persistence and Lacunarity shape the height
		// field.
		Octaves     int
		Frequency   float64
		Persistence float64
		Lacunarity  float64
		// BaseHeight is the mean terrain height and Amplitude the maximum
		// deviation from it.
		BaseHeight float64
		Amplitude  float64
		// SeaLevel is the height below which water fills the terrain.
		SeaLevel int
		// BiomeScale scales the size of biomes. Smaller values give larger
		// biomes.
		BiomeScale float64
		// DecorationFloor is the height at or below which no trees, rocks or
		// grass are placed.
		DecorationFloor int
	}
	Materials struct {
		// File is the path of a YAML material catalogue registered on top of
		// the default materials. Leave empty to use the default materials
		// only.
		File string
	}
	Log struct {
		// Level is the minimum level of messages logged: debug, info, warn or
		// error.
		Level string
	}
}

// Config converts a UserConfig to a Config, so that it may be used for
// creating an Engine. An error is returned if the material catalogue could
// not be read. Catalogue entries that are malformed or clash with registered
// materials are skipped with a warning.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	if log == nil {
		log = slog.Default()
	}
	conf := Config{
		Log: log,
		Terrain: terrain.Config{
			Seed:            uc.World.Seed,
			Octaves:         uc.Terrain.Octaves,
			Frequency:       uc.Terrain.Frequency,
			Persistence:     uc.Terrain.Persistence,
			Lacunarity:      uc.Terrain.Lacunarity,
			BaseHeight:      uc.Terrain.BaseHeight,
			Amplitude:       uc.Terrain.Amplitude,
			SeaLevel:        uc.Terrain.SeaLevel,
			BiomeScale:      uc.Terrain.BiomeScale,
			DecorationFloor: uc.Terrain.DecorationFloor,
		},
		World: world.Config{
			HorizontalRadius: uc.World.HorizontalRadius,
			VerticalRadius:   uc.World.VerticalRadius,
			MinY:             uc.World.MinY,
			MaxY:             uc.World.MaxY,
			Workers:          uc.World.Workers,
			TickRate:         uc.World.TickRate,
			MeshScale:        float32(uc.World.MeshScale),
			NeighbourCulling: uc.World.NeighbourCulling,
		},
		SaveEdits: uc.World.SaveEdits,
	}
	materials, err := loadMaterials(uc.Materials.File, log)
	if err != nil {
		return conf, fmt.Errorf("load materials: %w", err)
	}
	conf.Materials = materials
	return conf, nil
}

// loadMaterials returns the default material registry with the materials of
// the catalogue at path registered on top.
func loadMaterials(path string, log *slog.Logger) (*block.Registry, error) {
	r := block.Default()
	if strings.TrimSpace(path) == "" {
		return r, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()

	materials, err := block.LoadCatalogue(f)
	if err != nil {
		log.Warn("Skipping malformed materials.", "file", path, "error", err)
	}
	if err := r.RegisterAll(materials...); err != nil {
		log.Warn("Skipping materials that could not be registered.", "file", path, "error", err)
	}
	return r, nil
}

// LogLevel returns the slog.Level of the Log.Level field. Unknown levels
// resolve to slog.LevelInfo.
func (uc UserConfig) LogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(uc.Log.Level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.World.Seed = 0
	c.World.HorizontalRadius = 8
	c.World.VerticalRadius = 4
	c.World.MinY = 0
	c.World.MaxY = 288
	c.World.TickRate = 20
	c.World.MeshScale = 1
	c.World.NeighbourCulling = true
	c.World.SaveEdits = true
	c.Terrain.Octaves = 5
	c.Terrain.Frequency = 1.0 / 256
	c.Terrain.Persistence = 0.5
	c.Terrain.Lacunarity = 2
	c.Terrain.BaseHeight = 112
	c.Terrain.Amplitude = 80
	c.Terrain.SeaLevel = 32
	c.Terrain.BiomeScale = 0.002
	c.Terrain.DecorationFloor = 96
	c.Log.Level = "info"
	return c
}
