package world

import (
	"time"

	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// VisibleBlock блок чанка, у которого есть хотя бы одна открытая грань
type VisibleBlock struct {
	X, Y, Z uint8 // локальные координаты
	Kind    block.BlockID
}

// RebuildEvent новое содержимое чанка после снятия флага Dirty
type RebuildEvent struct {
	Coords  vec.Vec2
	Version uint64
	Step    uint64
	Blocks  []block.BlockID // копия блоков в порядке плоского индекса
	Visible []VisibleBlock
}

// RebuildSink получает события перестроения и выгрузки чанков.
// Вызывается синхронно внутри шага симуляции.
type RebuildSink interface {
	ChunkRebuilt(ev RebuildEvent)
	ChunkReleased(coords vec.Vec2)
}

// NopSink игнорирует события
type NopSink struct{}

func (NopSink) ChunkRebuilt(RebuildEvent) {}
func (NopSink) ChunkReleased(vec.Vec2)    {}

// StepStats итоги одного шага симуляции
type StepStats struct {
	Step           uint64
	Duration       time.Duration
	Generated      int // чанков сгенерировано с прошлого шага
	Rebuilt        int
	TickAdvanced   int
	Transitions    int
	WaterEvaluated int
	Mutations      int // изменивших содержимое записей с прошлого шага

	Chunks       int
	ActiveChunks int
	BuildQueue   int
	TickEntries  int
	WaterQueue   int
}

// Observer получает итоги шагов (метрики, логирование)
type Observer interface {
	StepCompleted(stats StepStats)
}
