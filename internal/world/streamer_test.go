package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelsim/internal/config"
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

func squareAround(ref vec.Vec2, r int) []vec.Vec2 {
	var out []vec.Vec2
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			out = append(out, vec.Vec2{X: ref.X + dx, Z: ref.Z + dz})
		}
	}
	return out
}

func TestStreamingActiveSetMatchesNeighbourhood(t *testing.T) {
	w, _ := newTestWorld(t)

	w.UpdateStreaming(vec.Vec2{})
	assert.ElementsMatch(t, squareAround(vec.Vec2{}, 1), w.ActiveChunks())
	assert.Equal(t, 9, w.ChunkCount())
	assert.Equal(t, 9, w.BuildQueue().Len(), "все новые чанки ждут перестроения")
	assert.Equal(t, vec.Vec2{}, w.Reference())

	// ближний чанк первым в очереди
	first, ok := w.BuildQueue().Pop()
	require.True(t, ok)
	assert.Equal(t, vec.Vec2{}, first)
}

func TestStreamingMoveReleasesAndReuses(t *testing.T) {
	w, sink := newTestWorld(t)

	w.UpdateStreaming(vec.Vec2{})
	stepN(w, 10)

	// изменение в чанке, который будет выгружен
	require.True(t, w.Mutate(-10, ChunkHeight-1, 3, block.StoneBlockID))

	w.UpdateStreaming(vec.Vec2{X: 1})
	assert.ElementsMatch(t, squareAround(vec.Vec2{X: 1}, 1), w.ActiveChunks())
	assert.ElementsMatch(t, []vec.Vec2{{X: -1, Z: -1}, {X: -1}, {X: -1, Z: 1}}, sink.released)
	assert.Equal(t, 12, w.ChunkCount())
	assert.False(t, w.BuildQueue().Contains(vec.Vec2{X: -1}), "выгруженный чанк снят с очереди")
	assert.False(t, w.IsActive(vec.Vec2{X: -1}))

	released := w.Chunk(vec.Vec2{X: -1})
	require.NotNil(t, released)
	assert.True(t, released.Dirty, "флаг сохраняется до повторной активации")

	// возврат: чанки не генерируются заново, данные сохранены
	w.UpdateStreaming(vec.Vec2{})
	assert.Equal(t, 12, w.ChunkCount())
	assert.Same(t, released, w.Chunk(vec.Vec2{X: -1}))
	assert.Equal(t, block.StoneBlockID, w.GetBlock(-10, ChunkHeight-1, 3))
	assert.True(t, w.BuildQueue().Contains(vec.Vec2{X: -1}))
}

func TestStreamingAtWorldPosition(t *testing.T) {
	w, _ := newTestWorld(t)

	w.UpdateStreamingAt(-0.5, 33.9)
	assert.Equal(t, vec.Vec2{X: -1, Z: 2}, w.Reference())
	assert.True(t, w.IsActive(vec.Vec2{X: -1, Z: 2}))
}

func TestStreamingRepeatedUpdateIsNoop(t *testing.T) {
	w, _ := newTestWorld(t)

	w.UpdateStreaming(vec.Vec2{})
	stepN(w, 10)
	require.Zero(t, w.BuildQueue().Len())

	w.UpdateStreaming(vec.Vec2{})
	assert.Zero(t, w.BuildQueue().Len(), "повторный вызов не ставит чанки в очередь")
	assert.Equal(t, 9, w.ChunkCount())
}

func TestRebuildBudget(t *testing.T) {
	w, sink := newTestWorld(t, func(cfg *config.WorldConfig) {
		cfg.RenderDistance = 2
		cfg.RebuildBudget = 3
	})

	w.UpdateStreaming(vec.Vec2{})
	require.Equal(t, 25, w.BuildQueue().Len())

	seen := make(map[vec.Vec2]int)
	for i := 0; i < 9; i++ {
		before := len(sink.rebuilt)
		stats := w.Step()
		assert.LessOrEqual(t, stats.Rebuilt, 3, "шаг не превышает бюджет")
		assert.Equal(t, stats.Rebuilt, len(sink.rebuilt)-before)
	}
	for _, ev := range sink.rebuilt {
		seen[ev.Coords]++
	}

	assert.Len(t, seen, 25)
	for coords, n := range seen {
		assert.Equal(t, 1, n, "чанк %v перестроен один раз", coords)
	}
	assert.Zero(t, w.BuildQueue().Len())
}

func TestStreamingRefreshesSeamsOfNewNeighbours(t *testing.T) {
	w, sink := newTestWorld(t)

	w.UpdateStreaming(vec.Vec2{})
	stepN(w, 20)
	w.UpdateStreaming(vec.Vec2{X: 1})
	assert.True(t, w.Chunk(vec.Vec2{X: 1}).Dirty, "появление соседа (2,0) открывает шов заново")
	stepN(w, 20)
	require.Zero(t, w.BuildQueue().Len())

	last := make(map[vec.Vec2]RebuildEvent)
	for _, ev := range sink.rebuilt {
		last[ev.Coords] = ev
	}
	for _, coords := range w.ActiveChunks() {
		ev, ok := last[coords]
		require.True(t, ok, "чанк %v опубликован", coords)
		assert.Equal(t, w.visibleBlocks(w.Chunk(coords)), ev.Visible,
			"видимые блоки чанка %v совпадают с текущим соседством", coords)
	}
}
