package world

import (
	"time"

	"github.com/annel0/voxelsim/internal/config"
	"github.com/annel0/voxelsim/internal/logging"
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// Options внешние зависимости мира
type Options struct {
	Sink     RebuildSink      // получатель событий перестроения; nil - NopSink
	Observer Observer         // итоги шагов; может быть nil
	Clock    func() time.Time // источник времени для ChangedSince; nil - time.Now
}

// World хранит чанки, очереди и счётчик шагов.
// Все изменения выполняются в одном потоке внутри Step и вызовов
// UpdateStreaming/Place/Dig, поэтому блокировок нет.
//
// Чанки не выгружаются из памяти: неактивный чанк сохраняет блоки.
// Политику вытеснения (с сериализацией) можно встроить в deactivate.
type World struct {
	seed           int64
	seaLevel       int
	renderDistance int
	rebuildBudget  int
	tickBudget     int
	waterBudget    int

	generator *WorldGenerator
	chunks    map[vec.ChunkKey]*Chunk
	active    map[vec.ChunkKey]*Chunk

	buildQueue *BuildQueue
	ticks      *TickScheduler
	water      *WaterSimulator
	api        *worldBlockAPI

	sink      RebuildSink
	observer  Observer
	clock     func() time.Time
	logger    *logging.Logger
	reference vec.Vec2

	step      uint64
	lastDrain time.Time
	pending   StepStats // счётчики, накопленные между шагами
}

// NewWorld создаёт пустой мир; чанки генерируются по требованию
func NewWorld(cfg config.WorldConfig, opts Options) *World {
	w := &World{
		seed:           cfg.GetSeed(),
		seaLevel:       cfg.SeaLevel,
		renderDistance: cfg.RenderDistance,
		rebuildBudget:  cfg.RebuildBudget,
		tickBudget:     cfg.TickBudget,
		waterBudget:    cfg.WaterBudget,
		chunks:         make(map[vec.ChunkKey]*Chunk),
		active:         make(map[vec.ChunkKey]*Chunk),
		buildQueue:     NewBuildQueue(),
		ticks:          NewTickScheduler(cfg.SaplingThreshold, cfg.WheatThreshold),
		water:          NewWaterSimulator(),
		sink:           opts.Sink,
		observer:       opts.Observer,
		clock:          opts.Clock,
		logger:         logging.GetWorldLogger(),
	}
	w.generator = NewWorldGenerator(w.seed, w.seaLevel)
	w.api = &worldBlockAPI{world: w}

	if w.sink == nil {
		w.sink = NopSink{}
	}
	if w.clock == nil {
		w.clock = time.Now
	}

	w.logger.Info("🌍 Мир создан: seed=%d sea=%d render=%d бюджеты rebuild=%d tick=%d water=%d",
		w.seed, w.seaLevel, w.renderDistance, w.rebuildBudget, w.tickBudget, w.waterBudget)
	return w
}

// IsWithinHeight проверяет, лежит ли Y в пределах высоты мира
func IsWithinHeight(y int) bool {
	return y >= 0 && y < ChunkHeight
}

// IsWithinHeight проверяет, лежит ли Y в пределах высоты мира
func (w *World) IsWithinHeight(y int) bool {
	return IsWithinHeight(y)
}

// Seed возвращает сид мира
func (w *World) Seed() int64 { return w.seed }

// SeaLevel возвращает уровень моря
func (w *World) SeaLevel() int { return w.seaLevel }

// StepCount возвращает номер последнего выполненного шага
func (w *World) StepCount() uint64 { return w.step }

// Generator возвращает генератор рельефа
func (w *World) Generator() *WorldGenerator { return w.generator }

// Chunk возвращает существующий чанк или nil
func (w *World) Chunk(coords vec.Vec2) *Chunk {
	return w.chunks[coords.Key()]
}

// ChunkCount возвращает число сгенерированных чанков
func (w *World) ChunkCount() int { return len(w.chunks) }

// ensureChunk возвращает чанк, создавая и генерируя его при отсутствии.
// Соседи нового чанка по граням строились с воздухом на месте шва,
// поэтому помечаются грязными.
func (w *World) ensureChunk(coords vec.Vec2) *Chunk {
	key := coords.Key()
	if c, ok := w.chunks[key]; ok {
		return c
	}

	start := time.Now()
	c, tickable := w.generator.GenerateChunk(coords)
	w.chunks[key] = c
	for _, pos := range tickable {
		l := pos.Local()
		w.ticks.Register(pos, c.GetLocal(l.X, l.Y, l.Z))
	}
	w.pending.Generated++

	for _, off := range faceOffsets {
		if neighbor := w.chunks[coords.Add(off).Key()]; neighbor != nil {
			w.markDirty(neighbor)
		}
	}

	w.logger.Debug("чанк %v сгенерирован за %v, тикаемых блоков %d", coords, time.Since(start), len(tickable))
	return c
}

// GetBlock возвращает блок по мировым координатам.
// Вне высоты мира - воздух; отсутствующий чанк генерируется.
func (w *World) GetBlock(x, y, z int) block.BlockID {
	if !IsWithinHeight(y) {
		return block.AirBlockID
	}
	pos := vec.Vec3{X: x, Y: y, Z: z}
	c := w.ensureChunk(pos.ChunkCoords())
	l := pos.Local()
	return c.GetLocal(l.X, l.Y, l.Z)
}

// peekBlock как GetBlock, но отсутствующий чанк читается как воздух
func (w *World) peekBlock(x, y, z int) block.BlockID {
	if !IsWithinHeight(y) {
		return block.AirBlockID
	}
	pos := vec.Vec3{X: x, Y: y, Z: z}
	c := w.chunks[pos.ChunkCoords().Key()]
	if c == nil {
		return block.AirBlockID
	}
	l := pos.Local()
	return c.GetLocal(l.X, l.Y, l.Z)
}

// IsSolid проверяет твёрдость блока
func (w *World) IsSolid(x, y, z int) bool {
	return w.GetBlock(x, y, z).IsSolid()
}

// GetSurfaceHeight возвращает Y верхнего блока колонки, не являющегося воздухом или водой
func (w *World) GetSurfaceHeight(x, z int) int {
	col := vec.Vec2{X: x, Z: z}
	c := w.ensureChunk(col.ToChunkCoords())
	l := col.LocalInChunk()
	return c.SurfaceHeight(l.X, l.Z)
}

// GetSurfaceBlockKind возвращает вид верхнего блока колонки
func (w *World) GetSurfaceBlockKind(x, z int) block.BlockID {
	return w.GetBlock(x, w.GetSurfaceHeight(x, z), z)
}

// BiomeAt возвращает закэшированный биом колонки
func (w *World) BiomeAt(x, z int) Biome {
	col := vec.Vec2{X: x, Z: z}
	c := w.ensureChunk(col.ToChunkCoords())
	l := col.LocalInChunk()
	return c.Biome(l.X, l.Z)
}

// ChangedSince сообщает, было ли перестроение чанков после t
func (w *World) ChangedSince(t time.Time) bool {
	return w.lastDrain.After(t)
}

// LastChange возвращает время последнего успешного перестроения
func (w *World) LastChange() time.Time {
	return w.lastDrain
}

// TickEntry возвращает запись планировщика для позиции
func (w *World) TickEntry(x, y, z int) (*TickEntry, bool) {
	return w.ticks.Entry(vec.Vec3{X: x, Y: y, Z: z})
}

// WaterPending проверяет, стоит ли клетка в очереди воды
func (w *World) WaterPending(x, y, z int) bool {
	return w.water.Pending(vec.Vec3{X: x, Y: y, Z: z})
}

// BuildQueue возвращает очередь перестроения (только для чтения)
func (w *World) BuildQueue() *BuildQueue {
	return w.buildQueue
}

// Step выполняет один шаг симуляции: тики, вода, перестроение чанков.
// Каждая очередь обрабатывается в пределах своего бюджета, остаток
// переходит на следующий шаг.
func (w *World) Step() StepStats {
	start := time.Now()
	w.step++

	stats := w.pending
	w.pending = StepStats{}

	stats.TickAdvanced, stats.Transitions = w.ticks.Advance(w.api, w.tickBudget)
	stats.WaterEvaluated = w.water.Drain(w.api, w.waterBudget)
	stats.Rebuilt = w.drainBuildQueue(w.rebuildBudget)

	// мутации и генерация внутри шага
	stats.Mutations += w.pending.Mutations
	stats.Generated += w.pending.Generated
	w.pending = StepStats{}

	stats.Step = w.step
	stats.Duration = time.Since(start)
	stats.Chunks = len(w.chunks)
	stats.ActiveChunks = len(w.active)
	stats.BuildQueue = w.buildQueue.Len()
	stats.TickEntries = w.ticks.Len()
	stats.WaterQueue = w.water.Len()

	if w.observer != nil {
		w.observer.StepCompleted(stats)
	}
	if stats.Transitions > 0 {
		w.logger.Debug("шаг %d: переходов роста %d", w.step, stats.Transitions)
	}
	return stats
}
