package implementations

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

const mockHeight = 64

// mockBlockAPI реализует block.BlockAPI для тестирования
type mockBlockAPI struct {
	blocks  map[vec.Vec3]block.BlockID
	mutated []vec.Vec3
	seed    int64
}

func newMockBlockAPI() *mockBlockAPI {
	return &mockBlockAPI{
		blocks: make(map[vec.Vec3]block.BlockID),
		seed:   42,
	}
}

func (m *mockBlockAPI) GetBlockID(pos vec.Vec3) block.BlockID {
	if id, exists := m.blocks[pos]; exists {
		return id
	}
	return block.AirBlockID
}

func (m *mockBlockAPI) Mutate(pos vec.Vec3, id block.BlockID) bool {
	if !m.IsWithinHeight(pos.Y) || m.GetBlockID(pos) == id {
		return false
	}
	m.blocks[pos] = id
	m.mutated = append(m.mutated, pos)
	return true
}

func (m *mockBlockAPI) MutateIfReplaceable(pos vec.Vec3, id block.BlockID) bool {
	if !m.GetBlockID(pos).IsAirOrLiquid() {
		return false
	}
	return m.Mutate(pos, id)
}

func (m *mockBlockAPI) IsWithinHeight(y int) bool {
	return y >= 0 && y < mockHeight
}

func (m *mockBlockAPI) Random(pos vec.Vec3) *rand.Rand {
	return rand.New(rand.NewSource(m.seed + int64(pos.X*31+pos.Z)))
}

func TestPlantTreeShape(t *testing.T) {
	api := newMockBlockAPI()
	base := vec.Vec3{X: 0, Y: 20, Z: 0}

	height := PlantTree(api, rand.New(rand.NewSource(7)), base)
	require.GreaterOrEqual(t, height, 4)
	require.LessOrEqual(t, height, 6)

	for y := 0; y < height; y++ {
		assert.Equal(t, block.LogBlockID, api.GetBlockID(vec.Vec3{X: 0, Y: 20 + y, Z: 0}), "ствол на высоте %d", y)
	}

	leaves := 0
	for pos, id := range api.blocks {
		if id != block.LeavesBlockID {
			continue
		}
		leaves++
		dx, dy, dz := pos.X, pos.Y-(base.Y+height-2), pos.Z
		assert.LessOrEqual(t, canopyDistance(dx, dy, dz), leafRadius+0.8, "лист вне кроны: %v", pos)
	}
	assert.Greater(t, leaves, 20, "крона должна быть заметной")
}

func TestPlantTreeDeterministic(t *testing.T) {
	a := newMockBlockAPI()
	b := newMockBlockAPI()
	PlantTree(a, rand.New(rand.NewSource(99)), vec.Vec3{Y: 10})
	PlantTree(b, rand.New(rand.NewSource(99)), vec.Vec3{Y: 10})
	assert.Equal(t, a.blocks, b.blocks, "одинаковый генератор даёт одинаковое дерево")
}

func TestPlantTreeDoesNotClobberSolid(t *testing.T) {
	api := newMockBlockAPI()
	stone := vec.Vec3{X: 1, Y: 13, Z: 0}
	api.blocks[stone] = block.StoneBlockID

	PlantTree(api, rand.New(rand.NewSource(1)), vec.Vec3{Y: 10})
	assert.Equal(t, block.StoneBlockID, api.GetBlockID(stone))
}

func TestSaplingGrowsWithClearance(t *testing.T) {
	api := newMockBlockAPI()
	pos := vec.Vec3{X: 3, Y: 10, Z: 3}
	api.blocks[pos] = block.SaplingBlockID

	outcome := (&SaplingBehavior{}).OnRipe(api, pos)
	assert.Equal(t, block.TickDone, outcome)
	assert.Equal(t, block.LogBlockID, api.GetBlockID(pos), "саженец заменён стволом")
}

func TestSaplingBlockedByCeiling(t *testing.T) {
	api := newMockBlockAPI()
	pos := vec.Vec3{X: 3, Y: 10, Z: 3}
	api.blocks[pos] = block.SaplingBlockID
	api.blocks[vec.Vec3{X: 3, Y: 15, Z: 3}] = block.StoneBlockID

	outcome := (&SaplingBehavior{}).OnRipe(api, pos)
	assert.Equal(t, block.TickRetry, outcome)
	assert.Equal(t, block.SaplingBlockID, api.GetBlockID(pos))
	assert.Empty(t, api.mutated, "заблокированный саженец ничего не меняет")
}

func TestSaplingLeavesDoNotBlock(t *testing.T) {
	api := newMockBlockAPI()
	pos := vec.Vec3{Y: 10}
	api.blocks[pos] = block.SaplingBlockID
	api.blocks[vec.Vec3{Y: 14}] = block.LeavesBlockID
	assert.True(t, HasClearance(api, pos))
}

func TestSaplingNearWorldTop(t *testing.T) {
	api := newMockBlockAPI()
	assert.False(t, HasClearance(api, vec.Vec3{Y: mockHeight - 3}), "потолок мира блокирует рост")
}

func TestWheatStages(t *testing.T) {
	api := newMockBlockAPI()
	pos := vec.Vec3{X: 1, Y: 5, Z: 1}
	api.blocks[pos] = block.Wheat1BlockID

	b1, ok := block.Get(block.Wheat1BlockID)
	require.True(t, ok)
	assert.Equal(t, block.TickDone, b1.OnRipe(api, pos))
	assert.Equal(t, block.Wheat2BlockID, api.GetBlockID(pos))

	b2, ok := block.Get(block.Wheat2BlockID)
	require.True(t, ok)
	b2.OnRipe(api, pos)
	assert.Equal(t, block.Wheat3BlockID, api.GetBlockID(pos))

	_, ok = block.Get(block.Wheat3BlockID)
	assert.False(t, ok, "у последней стадии нет поведения")
}

func TestWaterFallsDown(t *testing.T) {
	api := newMockBlockAPI()
	w := &WaterBehavior{}
	pos := vec.Vec3{Y: 10}
	api.blocks[pos] = block.WaterSourceBlockID

	assert.False(t, w.Flow(api, pos), "после падения запись снимается")
	assert.Equal(t, block.WaterFlowingBlockID, api.GetBlockID(vec.Vec3{Y: 9}))
	assert.Equal(t, block.AirBlockID, api.GetBlockID(vec.Vec3{X: 1, Y: 10}), "при свободном низе горизонтального растекания нет")
}

func TestWaterSourceSpreadsOneRing(t *testing.T) {
	api := newMockBlockAPI()
	w := &WaterBehavior{}
	pos := vec.Vec3{Y: 10}
	api.blocks[pos] = block.WaterSourceBlockID
	api.blocks[vec.Vec3{Y: 9}] = block.StoneBlockID

	assert.True(t, w.Flow(api, pos), "источник растёкся и возвращается в очередь")
	for _, d := range vec.Horizontal4 {
		assert.Equal(t, block.WaterFlowingBlockID, api.GetBlockID(pos.Add(d)))
	}
	assert.False(t, w.Flow(api, pos), "повторная оценка без изменений снимает запись")

	// текущая вода на твёрдом полу не растекается
	api.blocks[vec.Vec3{X: 1, Y: 9}] = block.StoneBlockID
	assert.False(t, w.Flow(api, vec.Vec3{X: 1, Y: 10}))
	assert.Equal(t, block.AirBlockID, api.GetBlockID(vec.Vec3{X: 2, Y: 10}))
}

func TestWaterStaleEntry(t *testing.T) {
	api := newMockBlockAPI()
	assert.False(t, (&WaterBehavior{}).Flow(api, vec.Vec3{Y: 3}))
	assert.Empty(t, api.mutated)
}

func TestWaterAtWorldBottom(t *testing.T) {
	api := newMockBlockAPI()
	pos := vec.Vec3{Y: 0}
	api.blocks[pos] = block.WaterFlowingBlockID
	assert.False(t, (&WaterBehavior{}).Flow(api, pos))
	assert.Empty(t, api.mutated, "ниже нуля писать нельзя")
}
