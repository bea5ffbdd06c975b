package world

import (
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// Place ставит блок игрока. Отклоняет невыбираемые виды,
// координаты вне диапазона BlockKey и незаменяемое содержимое клетки
// (заменяемы воздух, вода и листва).
func (w *World) Place(x, y, z int, kind block.BlockID) bool {
	if !kind.IsSelectable() || !IsWithinHeight(y) || !vec.InBlockRange(x, z) {
		return false
	}
	if !w.GetBlock(x, y, z).IsReplaceable() {
		return false
	}
	return w.Mutate(x, y, z, kind)
}

// Dig убирает блок. Отклоняет пустую клетку.
func (w *World) Dig(x, y, z int) bool {
	if w.GetBlock(x, y, z) == block.AirBlockID {
		return false
	}
	return w.Mutate(x, y, z, block.AirBlockID)
}

// Mutate записывает блок. При изменении помечает чанк (и соседей по грани
// на границе чанка) грязными, обновляет регистрацию тиков и очередь воды.
// Отклоняет X и Z вне [-vec.BlockCoordLimit, vec.BlockCoordLimit).
func (w *World) Mutate(x, y, z int, kind block.BlockID) bool {
	if !IsWithinHeight(y) || !vec.InBlockRange(x, z) || !block.IsValidBlockID(kind) {
		return false
	}

	pos := vec.Vec3{X: x, Y: y, Z: z}
	c := w.ensureChunk(pos.ChunkCoords())
	local := pos.Local()

	prev := c.GetLocal(local.X, local.Y, local.Z)
	if !c.SetLocal(local.X, local.Y, local.Z, kind) {
		return false
	}
	w.pending.Mutations++

	w.markDirty(c)
	w.markBoundaryNeighbors(c, local)

	if kind.IsTickable() {
		w.ticks.Register(pos, kind)
	} else if prev.IsTickable() {
		w.ticks.Unregister(pos)
	}

	if kind.IsLiquid() {
		w.water.Enqueue(pos)
	} else if prev.IsLiquid() {
		for _, d := range vec.Neighbors6 {
			n := pos.Add(d)
			if IsWithinHeight(n.Y) {
				w.water.Enqueue(n)
			}
		}
	}

	w.logger.Trace("mutate %v: %s -> %s", pos, prev, kind)
	return true
}

var faceOffsets = [4]vec.Vec2{{X: -1}, {X: 1}, {Z: -1}, {Z: 1}}

// markDirty помечает чанк грязным; активный чанк ставится в очередь перестроения
func (w *World) markDirty(c *Chunk) {
	c.Dirty = true
	if c.Active {
		w.buildQueue.Push(c.Coords)
	}
}

// markBoundaryNeighbors помечает соседние чанки, делящие грань с блоком
func (w *World) markBoundaryNeighbors(c *Chunk, local vec.Vec3) {
	var offsets [2]vec.Vec2
	n := 0
	switch local.X {
	case 0:
		offsets[n] = vec.Vec2{X: -1}
		n++
	case ChunkSize - 1:
		offsets[n] = vec.Vec2{X: 1}
		n++
	}
	switch local.Z {
	case 0:
		offsets[n] = vec.Vec2{Z: -1}
		n++
	case ChunkSize - 1:
		offsets[n] = vec.Vec2{Z: 1}
		n++
	}

	for _, off := range offsets[:n] {
		// отсутствующий сосед будет построен целиком при создании
		if neighbor := w.chunks[c.Coords.Add(off).Key()]; neighbor != nil {
			w.markDirty(neighbor)
		}
	}
}
