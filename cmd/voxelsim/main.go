package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/annel0/voxelsim/internal/config"
	"github.com/annel0/voxelsim/internal/eventbus"
	"github.com/annel0/voxelsim/internal/logging"
	"github.com/annel0/voxelsim/internal/metrics"
	"github.com/annel0/voxelsim/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "путь к YAML-конфигурации (по умолчанию VOXEL_CONFIG)")
		seed       = flag.Int64("seed", 0, "сид мира (0 - из конфигурации)")
		maxSteps   = flag.Int("steps", -1, "число шагов до остановки (0 - без ограничения)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *maxSteps >= 0 {
		cfg.Sim.MaxSteps = *maxSteps
	}

	logging.SetOutputDir(cfg.Log.Dir)
	if err := logging.InitDefaultLogger("voxelsim"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	if level, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		logging.Warn("⚠️ %v, используется INFO", err)
	} else {
		logging.SetConsoleLevel(level)
	}

	logging.Info("🎮 Запуск симуляции воксельного мира...")
	code := 0
	if err := run(cfg); err != nil {
		logging.Error("❌ %v", err)
		code = 1
	}

	logging.Info("👋 Симуляция завершена")
	_ = logging.GetLoggerManager().CloseAll()
	logging.CloseDefaultLogger()
	os.Exit(code)
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === ШИНА СОБЫТИЙ ===
	bus := eventbus.NewMemoryBus(cfg.Sim.EventBuffer)
	eventbus.Init(bus)
	defer bus.Close()

	if _, err := eventbus.StartLoggingListener(ctx, bus); err != nil {
		return fmt.Errorf("подписка логгера событий: %w", err)
	}

	publisher, err := eventbus.NewChunkPublisher(bus)
	if err != nil {
		return err
	}
	defer publisher.Close()

	// === МЕТРИКИ ===
	simMetrics := metrics.NewSimMetrics("voxelsim")
	exporter := eventbus.NewMetricsExporter(bus, simMetrics.Registerer(), time.Second)
	exporter.Start()
	defer exporter.Stop()

	sampler, err := metrics.NewProcessSampler("voxelsim", simMetrics.Registerer())
	if err != nil {
		return err
	}

	// === МИР ===
	w := world.NewWorld(cfg.World, world.Options{Sink: publisher, Observer: simMetrics})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// завершение симуляции останавливает остальные горутины
		defer cancel()
		return runSimulation(gctx, w, cfg.Sim)
	})

	if cfg.Sim.StatsEvery > 0 {
		g.Go(func() error {
			return runProcessStats(gctx, sampler, time.Duration(cfg.Sim.StatsEvery)*time.Second)
		})
	}

	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", simMetrics.Handler())
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Metrics.GetPort()),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			logging.Info("📈 Prometheus /metrics доступен по адресу %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP сервер метрик: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	logging.Info("✅ Все компоненты запущены: seed=%d, render=%d, %d шагов/с",
		w.Seed(), cfg.World.RenderDistance, cfg.Sim.TickRate)
	return g.Wait()
}
