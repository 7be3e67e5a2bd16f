package server

import (
	"context"
	"errors"

	"github.com/df-mc/voxel/server/world"
	"github.com/df-mc/voxel/server/world/generator/terrain"
)

// Engine ties a terrain generator and a World together. It is created by
// calling Config.New.
type Engine struct {
	conf Config
	gen  *terrain.Generator
	w    *world.World
}

// World returns the World of the Engine.
func (e *Engine) World() *world.World {
	return e.w
}

// Generator returns the terrain generator of the Engine, or nil if a custom
// generator was set in the Config.
func (e *Engine) Generator() *terrain.Generator {
	return e.gen
}

// Run ticks the World with the viewer passed until ctx is cancelled. Run
// returns nil when it stopped because ctx was cancelled.
func (e *Engine) Run(ctx context.Context, viewer world.Viewer) error {
	e.conf.Log.Info("Starting engine.", "seed", e.conf.Terrain.Seed, "materials", e.conf.Materials.Len())
	if err := e.w.Run(ctx, viewer); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// Close closes the World of the Engine.
func (e *Engine) Close() error {
	e.conf.Log.Info("Closing engine.", "ticks", e.w.CurrentTick())
	return e.w.Close()
}
