package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

func TestChunkCreateAndGetBlock(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 5, Z: 10})

	assert.Equal(t, vec.Vec2{X: 5, Z: 10}, chunk.Coords)
	assert.Equal(t, block.AirBlockID, chunk.GetLocal(3, 4, 5), "новый чанк заполнен воздухом")

	assert.True(t, chunk.SetLocal(3, 4, 5, block.StoneBlockID))
	assert.Equal(t, block.StoneBlockID, chunk.GetLocal(3, 4, 5))
	assert.False(t, chunk.SetLocal(3, 4, 5, block.StoneBlockID), "повторная запись того же вида ничего не меняет")
}

func TestChunkOutOfBounds(t *testing.T) {
	chunk := NewChunk(vec.Vec2{})
	assert.False(t, chunk.SetLocal(16, 0, 0, block.StoneBlockID))
	assert.False(t, chunk.SetLocal(0, ChunkHeight, 0, block.StoneBlockID))
	assert.False(t, chunk.SetLocal(0, -1, 0, block.StoneBlockID))
	assert.Equal(t, block.AirBlockID, chunk.GetLocal(-1, 0, 0))
	assert.Equal(t, block.AirBlockID, chunk.GetLocal(0, 64, 0))
	assert.NotPanics(t, func() { chunk.SetLocalUnconditional(0, 99, 0, block.DirtBlockID) })
}

func TestChunkIndexLayout(t *testing.T) {
	assert.Equal(t, 0, blockIndex(0, 0, 0))
	assert.Equal(t, 1, blockIndex(1, 0, 0))
	assert.Equal(t, 16, blockIndex(0, 0, 1))
	assert.Equal(t, 256, blockIndex(0, 1, 0))

	chunk := NewChunk(vec.Vec2{})
	chunk.SetLocalUnconditional(2, 3, 4, block.LogBlockID)
	snap := chunk.Snapshot()
	assert.Len(t, snap, chunkVolume)
	assert.Equal(t, block.LogBlockID, snap[2+16*(4+16*3)])

	snap[0] = block.SnowBlockID
	assert.Equal(t, block.AirBlockID, chunk.GetLocal(0, 0, 0), "снимок - независимая копия")
}

func TestChunkSetIfReplaceable(t *testing.T) {
	chunk := NewChunk(vec.Vec2{})
	chunk.SetLocalUnconditional(0, 0, 0, block.WaterSourceBlockID)
	chunk.SetLocalUnconditional(1, 0, 0, block.StoneBlockID)
	chunk.SetLocalUnconditional(2, 0, 0, block.LeavesBlockID)

	assert.True(t, chunk.SetLocalIfReplaceable(0, 0, 0, block.LogBlockID), "вода замещается")
	assert.False(t, chunk.SetLocalIfReplaceable(1, 0, 0, block.LogBlockID), "камень не замещается")
	assert.False(t, chunk.SetLocalIfReplaceable(2, 0, 0, block.LogBlockID), "листва не замещается при генерации")
	assert.True(t, chunk.SetLocalIfReplaceable(3, 0, 0, block.LeavesBlockID), "воздух замещается")
}

func TestChunkSurfaceHeight(t *testing.T) {
	chunk := NewChunk(vec.Vec2{})
	assert.Equal(t, 0, chunk.SurfaceHeight(0, 0), "пустая колонка")

	for y := 0; y <= 10; y++ {
		chunk.SetLocalUnconditional(1, y, 1, block.StoneBlockID)
	}
	for y := 11; y <= 14; y++ {
		chunk.SetLocalUnconditional(1, y, 1, block.WaterSourceBlockID)
	}
	assert.Equal(t, 10, chunk.SurfaceHeight(1, 1), "вода не считается поверхностью")
}

func TestChunkWorldPos(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: -1, Z: 2})
	assert.Equal(t, vec.Vec3{X: -16, Y: 5, Z: 35}, chunk.WorldPos(0, 5, 3))
}
