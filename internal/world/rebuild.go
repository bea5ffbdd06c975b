package world

import (
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// rebuild перестраивает внешнее представление чанка и снимает флаг Dirty
func (w *World) rebuild(c *Chunk) {
	c.Version++
	c.Dirty = false

	w.sink.ChunkRebuilt(RebuildEvent{
		Coords:  c.Coords,
		Version: c.Version,
		Step:    w.step,
		Blocks:  c.Snapshot(),
		Visible: w.visibleBlocks(c),
	})
}

// visibleBlocks отбирает блоки с открытыми гранями.
// Вода видна на границе с не-водой, прозрачная мелочь видна всегда,
// твёрдый блок виден, если рядом воздух или прозрачный блок.
func (w *World) visibleBlocks(c *Chunk) []VisibleBlock {
	var out []VisibleBlock
	for y := 0; y < ChunkHeight; y++ {
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				id := c.GetLocal(x, y, z)
				if id == block.AirBlockID {
					continue
				}
				if w.shouldRender(c, x, y, z, id) {
					out = append(out, VisibleBlock{X: uint8(x), Y: uint8(y), Z: uint8(z), Kind: id})
				}
			}
		}
	}
	return out
}

func (w *World) shouldRender(c *Chunk, x, y, z int, id block.BlockID) bool {
	desc := block.Describe(id)
	if !desc.Liquid && !desc.Solid {
		return true
	}

	for _, d := range vec.Neighbors6 {
		n := w.neighborOf(c, x+d.X, y+d.Y, z+d.Z)
		if desc.Liquid {
			if !n.IsLiquid() {
				return true
			}
			continue
		}
		if n == block.AirBlockID || n.IsTransparent() {
			return true
		}
	}
	return false
}

// neighborOf читает блок по локальным координатам, которые могут выходить
// за чанк по горизонтали. Отсутствующие соседние чанки не создаются.
func (w *World) neighborOf(c *Chunk, x, y, z int) block.BlockID {
	if inChunk(x, y, z) {
		return c.GetLocal(x, y, z)
	}
	pos := c.WorldPos(x, y, z)
	return w.peekBlock(pos.X, pos.Y, pos.Z)
}

// drainBuildQueue перестраивает не более budget активных чанков.
// Неактивные записи снимаются с очереди, их Dirty сохраняется до активации.
func (w *World) drainBuildQueue(budget int) int {
	rebuilt := 0
	for rebuilt < budget {
		coords, ok := w.buildQueue.Pop()
		if !ok {
			break
		}
		c := w.chunks[coords.Key()]
		if c == nil || !c.Active || !c.Dirty {
			continue
		}
		w.rebuild(c)
		rebuilt++
	}
	if rebuilt > 0 {
		w.lastDrain = w.clock()
	}
	return rebuilt
}
