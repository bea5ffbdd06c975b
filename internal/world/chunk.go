package world

import (
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// Размеры чанка
const (
	ChunkSize   = vec.ChunkSize
	ChunkHeight = 64
	chunkArea   = ChunkSize * ChunkSize
	chunkVolume = chunkArea * ChunkHeight
)

// Chunk представляет участок мира 16x16 блоков по горизонтали и 64 по высоте.
// Чанк создаётся лениво, генерируется сразу при создании и никогда не удаляется.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире

	blocks [chunkVolume]block.BlockID
	biomes [chunkArea]Biome

	Active  bool   // входит в окрестность стриминга
	Dirty   bool   // внешнее представление устарело
	Version uint64 // число выполненных перестроений
}

// NewChunk создаёт пустой (заполненный воздухом) чанк
func NewChunk(coords vec.Vec2) *Chunk {
	return &Chunk{Coords: coords}
}

// blockIndex плоский индекс x + 16*(z + 16*y)
func blockIndex(x, y, z int) int {
	return x + ChunkSize*(z+ChunkSize*y)
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize &&
		y >= 0 && y < ChunkHeight &&
		z >= 0 && z < ChunkSize
}

// GetLocal возвращает блок по локальным координатам; вне чанка - воздух
func (c *Chunk) GetLocal(x, y, z int) block.BlockID {
	if !inChunk(x, y, z) {
		return block.AirBlockID
	}
	return c.blocks[blockIndex(x, y, z)]
}

// SetLocal записывает блок и возвращает true, если содержимое изменилось
func (c *Chunk) SetLocal(x, y, z int, id block.BlockID) bool {
	if !inChunk(x, y, z) {
		return false
	}
	idx := blockIndex(x, y, z)
	if c.blocks[idx] == id {
		return false
	}
	c.blocks[idx] = id
	return true
}

// SetLocalUnconditional записывает блок без сравнения (генерация)
func (c *Chunk) SetLocalUnconditional(x, y, z int, id block.BlockID) {
	if !inChunk(x, y, z) {
		return
	}
	c.blocks[blockIndex(x, y, z)] = id
}

// SetLocalIfReplaceable записывает блок только поверх воздуха или воды
func (c *Chunk) SetLocalIfReplaceable(x, y, z int, id block.BlockID) bool {
	if !inChunk(x, y, z) {
		return false
	}
	idx := blockIndex(x, y, z)
	if !c.blocks[idx].IsAirOrLiquid() {
		return false
	}
	if c.blocks[idx] == id {
		return false
	}
	c.blocks[idx] = id
	return true
}

// Biome возвращает закэшированный биом колонки
func (c *Chunk) Biome(x, z int) Biome {
	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize {
		return BiomePlains
	}
	return c.biomes[x+ChunkSize*z]
}

func (c *Chunk) setBiome(x, z int, b Biome) {
	c.biomes[x+ChunkSize*z] = b
}

// SurfaceHeight возвращает Y верхнего блока колонки, не являющегося воздухом или водой.
// Для пустой колонки возвращает 0.
func (c *Chunk) SurfaceHeight(x, z int) int {
	for y := ChunkHeight - 1; y >= 0; y-- {
		if !c.GetLocal(x, y, z).IsAirOrLiquid() {
			return y
		}
	}
	return 0
}

// WorldPos переводит локальные координаты в мировые
func (c *Chunk) WorldPos(x, y, z int) vec.Vec3 {
	origin := c.Coords.Origin()
	return vec.Vec3{X: origin.X + x, Y: y, Z: origin.Z + z}
}

// Snapshot возвращает копию блоков в порядке плоского индекса
func (c *Chunk) Snapshot() []block.BlockID {
	out := make([]block.BlockID, chunkVolume)
	copy(out, c.blocks[:])
	return out
}

// CountOf считает блоки указанного вида
func (c *Chunk) CountOf(id block.BlockID) int {
	n := 0
	for _, b := range c.blocks {
		if b == id {
			n++
		}
	}
	return n
}
