package main

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelsim/internal/config"
	"github.com/annel0/voxelsim/internal/metrics"
	"github.com/annel0/voxelsim/internal/world"
	"github.com/annel0/voxelsim/internal/world/block"
)

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	cfg := config.Default().World
	cfg.RenderDistance = 1
	return world.NewWorld(cfg, world.Options{})
}

// flatPlatform делает травяную площадку на высоте y с пустотой над ней
func flatPlatform(w *world.World, y int) {
	for x := -2; x <= 10; x++ {
		for z := -2; z <= 2; z++ {
			w.Mutate(x, y, z, block.GrassBlockID)
			for yy := y + 1; yy < world.ChunkHeight; yy++ {
				w.Mutate(x, yy, z, block.AirBlockID)
			}
		}
	}
}

func TestWalkerMovesForward(t *testing.T) {
	w := newTestWorld(t)
	wk := newWalker(w, 0.5, 0.5, 4)
	start := wk.Position()

	for i := 0; i < 100; i++ {
		wk.Advance(0.05)
		w.Step()
	}

	pos := wk.Position()
	assert.Greater(t, pos.X(), start.X(), "игрок продвигается вдоль X")
	assert.True(t, w.IsWithinHeight(int(math.Floor(pos.Y()))))
}

func TestWalkerPlantsOnGrass(t *testing.T) {
	w := newTestWorld(t)
	flatPlatform(w, 40)

	wk := newWalker(w, 0.5, 0.5, 4)
	require.InDelta(t, 41, wk.body.Min().Y(), 0.01, "игрок стоит на площадке")

	require.True(t, wk.Plant())
	assert.Equal(t, block.SaplingBlockID, w.GetBlock(2, 41, 0))
	assert.Equal(t, 1, wk.planted)

	_, ok := w.TickEntry(2, 41, 0)
	assert.True(t, ok, "посаженный саженец попадает в планировщик")

	assert.False(t, wk.Plant(), "на саженец второй не ставится")
}

func TestWalkerDigsThroughWall(t *testing.T) {
	w := newTestWorld(t)
	flatPlatform(w, 40)
	for y := 41; y < 45; y++ {
		w.Mutate(2, y, 0, block.StoneBlockID)
	}

	wk := newWalker(w, 0.5, 0.5, 4)
	for i := 0; i < 60; i++ {
		wk.Advance(0.05)
	}

	assert.Positive(t, wk.dug, "стена на уровне глаз выкопана")
	assert.Equal(t, block.AirBlockID, w.GetBlock(2, 42, 0))
	assert.Greater(t, wk.Position().X(), 2.5, "игрок прошёл стену")
}

func TestRunSimulationStopsAtMaxSteps(t *testing.T) {
	w := newTestWorld(t)
	sim := config.Default().Sim
	sim.TickRate = 1000
	sim.StatsEvery = 0
	sim.MaxSteps = 5

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, runSimulation(ctx, w, sim))
	assert.Equal(t, uint64(5), w.StepCount())
	assert.Len(t, w.ActiveChunks(), 9)
}

func TestRunSimulationStopsOnCancel(t *testing.T) {
	w := newTestWorld(t)
	sim := config.Default().Sim
	sim.StatsEvery = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, runSimulation(ctx, w, sim))
	assert.Zero(t, w.StepCount())
}

func TestRunProcessStatsStopsOnCancel(t *testing.T) {
	reg := metrics.NewSimMetrics("test")
	sampler, err := metrics.NewProcessSampler("test", reg.Registerer())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, runProcessStats(ctx, sampler, 10*time.Millisecond))
}
