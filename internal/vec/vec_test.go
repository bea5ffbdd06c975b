package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkCoordsNegative(t *testing.T) {
	assert.Equal(t, Vec2{X: -1, Z: 0}, Vec2{X: -1, Z: 15}.ToChunkCoords(), "floor-деление для отрицательных координат")
	assert.Equal(t, Vec2{X: -2, Z: 1}, Vec2{X: -17, Z: 16}.ToChunkCoords())
	assert.Equal(t, Vec2{X: 15, Z: 0}, Vec2{X: -1, Z: 16}.LocalInChunk())
}

func TestFromWorldFloors(t *testing.T) {
	assert.Equal(t, Vec3{X: -1, Y: 3, Z: 0}, FromWorld(-0.2, 3.99, 0.0))
	assert.Equal(t, Vec2{X: -1, Z: 0}, FromWorld(-0.2, 10, 15.5).ChunkCoords())
}

func TestChunkKeyRoundTrip(t *testing.T) {
	coords := []Vec2{{0, 0}, {-1, 1}, {123456, -654321}, {-2147483648, 2147483647}}
	for _, c := range coords {
		assert.Equal(t, c, c.Key().Unpack(), "ключ чанка должен однозначно раскладываться")
	}
	assert.NotEqual(t, Vec2{X: 1, Z: 0}.Key(), Vec2{X: 0, Z: 1}.Key())
}

func TestBlockKeyRoundTrip(t *testing.T) {
	coords := []Vec3{
		{0, 0, 0}, {-1, 63, 1}, {1048575, 5, -1048576},
		{1<<21 + 8, 31, -(1<<21 + 8)},
		{BlockCoordLimit - 1, 63, -BlockCoordLimit},
	}
	for _, c := range coords {
		assert.Equal(t, c, c.Key().Unpack(), "ключ блока должен однозначно раскладываться")
	}
	seen := make(map[BlockKey]Vec3)
	for x := -2; x <= 2; x++ {
		for y := 0; y <= 2; y++ {
			for z := -2; z <= 2; z++ {
				v := Vec3{X: x, Y: y, Z: z}
				_, dup := seen[v.Key()]
				assert.False(t, dup, "коллизия ключа для %v", v)
				seen[v.Key()] = v
			}
		}
	}
}

func TestBlockKeyFarCoordsDoNotAlias(t *testing.T) {
	near := Vec3{X: 8, Y: 31, Z: 8}
	for _, far := range []Vec3{
		{X: 8 + 1<<21, Y: 31, Z: 8},
		{X: 8, Y: 31, Z: 8 - 1<<21},
		{X: 8 + 1<<27, Y: 31, Z: 8 + 1<<27},
	} {
		assert.NotEqual(t, near.Key(), far.Key(), "ключи %v и %v совпали", near, far)
	}
}

func TestInBlockRange(t *testing.T) {
	assert.True(t, InBlockRange(0, 0))
	assert.True(t, InBlockRange(BlockCoordLimit-1, -BlockCoordLimit))
	assert.False(t, InBlockRange(BlockCoordLimit, 0))
	assert.False(t, InBlockRange(0, -BlockCoordLimit-1))
}

func TestChebyshev(t *testing.T) {
	assert.Equal(t, 3, Vec2{X: 0, Z: 0}.ChebyshevTo(Vec2{X: -3, Z: 2}))
}
