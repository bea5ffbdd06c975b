package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorTableComplete(t *testing.T) {
	for _, id := range All() {
		assert.NotEmpty(t, Describe(id).Name, "у вида %d должно быть имя", id)
	}
	assert.False(t, IsValidBlockID(blockCount))
	assert.Equal(t, "Air", Describe(BlockID(250)).Name, "неизвестный ID трактуется как воздух")
}

func TestReplaceableKinds(t *testing.T) {
	replaceable := map[BlockID]bool{
		AirBlockID:          true,
		WaterSourceBlockID:  true,
		WaterFlowingBlockID: true,
		LeavesBlockID:       true,
	}
	for _, id := range All() {
		assert.Equal(t, replaceable[id], id.IsReplaceable(), "replaceable для %s", id)
	}
}

func TestTickableKinds(t *testing.T) {
	assert.True(t, SaplingBlockID.IsTickable())
	assert.True(t, Wheat1BlockID.IsTickable())
	assert.True(t, Wheat2BlockID.IsTickable())
	assert.False(t, Wheat3BlockID.IsTickable(), "последняя стадия пшеницы терминальна")
	assert.False(t, WaterFlowingBlockID.IsTickable(), "вода обрабатывается отдельной очередью")
}

func TestSelectable(t *testing.T) {
	sel := Selectable()
	assert.Contains(t, sel, StoneBlockID)
	assert.Contains(t, sel, SaplingBlockID)
	assert.NotContains(t, sel, AirBlockID)
	assert.NotContains(t, sel, LeavesBlockID)
	assert.NotContains(t, sel, WaterFlowingBlockID)
}
