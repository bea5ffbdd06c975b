package world

import (
	"math"
	"slices"

	"github.com/annel0/voxelsim/internal/vec"
)

// UpdateStreaming приводит активный набор к квадратной окрестности
// радиуса RenderDistance вокруг ref. Новые чанки генерируются, вышедшие
// из окрестности деактивируются, но сохраняют данные.
func (w *World) UpdateStreaming(ref vec.Vec2) {
	r := w.renderDistance
	needed := make(map[vec.ChunkKey]struct{}, (2*r+1)*(2*r+1))
	coords := make([]vec.Vec2, 0, (2*r+1)*(2*r+1))
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			c := vec.Vec2{X: ref.X + dx, Z: ref.Z + dz}
			needed[c.Key()] = struct{}{}
			coords = append(coords, c)
		}
	}

	// ближние чанки раньше попадают в очередь перестроения
	slices.SortStableFunc(coords, func(a, b vec.Vec2) int {
		return a.ChebyshevTo(ref) - b.ChebyshevTo(ref)
	})

	activated := 0
	for _, c := range coords {
		chunk := w.ensureChunk(c)
		if !chunk.Active {
			w.activate(chunk)
			activated++
		}
	}

	released := make([]vec.Vec2, 0)
	for key, chunk := range w.active {
		if _, ok := needed[key]; !ok {
			released = append(released, chunk.Coords)
		}
	}
	slices.SortFunc(released, func(a, b vec.Vec2) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Z - b.Z
	})
	for _, c := range released {
		w.deactivate(w.chunks[c.Key()])
	}

	if activated > 0 || len(released) > 0 {
		w.logger.Debug("стриминг вокруг %v: активировано %d, выгружено %d, активных %d",
			ref, activated, len(released), len(w.active))
	}
	w.reference = ref
}

// UpdateStreamingAt вычисляет опорный чанк по мировой позиции
func (w *World) UpdateStreamingAt(x, z float64) {
	col := vec.Vec2{X: int(math.Floor(x)), Z: int(math.Floor(z))}
	w.UpdateStreaming(col.ToChunkCoords())
}

func (w *World) activate(c *Chunk) {
	c.Active = true
	w.active[c.Coords.Key()] = c
	c.Dirty = true
	w.buildQueue.Push(c.Coords)
}

func (w *World) deactivate(c *Chunk) {
	c.Active = false
	delete(w.active, c.Coords.Key())
	w.buildQueue.Remove(c.Coords)
	w.sink.ChunkReleased(c.Coords)
}

// ActiveChunks возвращает координаты активных чанков
func (w *World) ActiveChunks() []vec.Vec2 {
	out := make([]vec.Vec2, 0, len(w.active))
	for _, c := range w.active {
		out = append(out, c.Coords)
	}
	return out
}

// IsActive проверяет, активен ли чанк
func (w *World) IsActive(coords vec.Vec2) bool {
	_, ok := w.active[coords.Key()]
	return ok
}

// Reference возвращает последний опорный чанк стриминга
func (w *World) Reference() vec.Vec2 {
	return w.reference
}
