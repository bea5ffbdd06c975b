package main

import (
	"context"
	"time"

	"github.com/annel0/voxelsim/internal/config"
	"github.com/annel0/voxelsim/internal/logging"
	"github.com/annel0/voxelsim/internal/metrics"
	"github.com/annel0/voxelsim/internal/world"
)

// plantEvery период посадки саженцев в шагах
const plantEvery = 40

// runSimulation крутит шаги мира с частотой TickRate до отмены ctx
// или до достижения MaxSteps
func runSimulation(ctx context.Context, w *world.World, sim config.SimConfig) error {
	logger := logging.GetSimLogger()
	dt := 1 / float64(sim.TickRate)
	statsEvery := uint64(sim.StatsEvery * sim.TickRate)

	wk := newWalker(w, sim.SpawnX, sim.SpawnZ, sim.WalkSpeed)
	pos := wk.Position()
	w.UpdateStreamingAt(pos.X(), pos.Z())
	logger.Info("🚶 Старт в (%.1f, %.1f, %.1f), скорость %.1f блок/с", pos.X(), pos.Y(), pos.Z(), sim.WalkSpeed)

	ticker := time.NewTicker(time.Second / time.Duration(sim.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("⏹️ Симуляция остановлена на шаге %d", w.StepCount())
			return nil
		case <-ticker.C:
		}

		wk.Advance(dt)
		if (w.StepCount()+1)%plantEvery == 0 {
			wk.Plant()
		}

		pos := wk.Position()
		w.UpdateStreamingAt(pos.X(), pos.Z())
		stats := w.Step()

		if statsEvery > 0 && stats.Step%statsEvery == 0 {
			logStepStats(logger, stats, wk)
		}
		if sim.MaxSteps > 0 && stats.Step >= uint64(sim.MaxSteps) {
			logger.Info("🏁 Достигнут предел в %d шагов", sim.MaxSteps)
			return nil
		}
	}
}

func logStepStats(logger *logging.Logger, s world.StepStats, wk *walker) {
	pos := wk.Position()
	logger.Info("📊 Шаг %d: чанков %d (активных %d), очереди rebuild=%d tick=%d water=%d, шаг %v",
		s.Step, s.Chunks, s.ActiveChunks, s.BuildQueue, s.TickEntries, s.WaterQueue, s.Duration)
	logger.Info("   🚶 позиция (%.1f, %.1f, %.1f), посажено %d, выкопано %d",
		pos.X(), pos.Y(), pos.Z(), wk.planted, wk.dug)
}

// runProcessStats периодически снимает показатели процесса
func runProcessStats(ctx context.Context, sampler *metrics.ProcessSampler, every time.Duration) error {
	logger := logging.GetMetricsLogger()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s, err := sampler.Sample()
			if err != nil {
				logger.Warn("не удалось снять показатели процесса: %v", err)
				continue
			}
			logger.Info("💻 Аптайм %s, CPU %.1f%%, RSS %.1f МБ, куча %.1f МБ, горутин %d",
				sampler.GetUptime(), s.CPUPercent, s.RSSMB, s.HeapMB, s.Goroutines)
		}
	}
}
