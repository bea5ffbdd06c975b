package implementations

import (
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// WaterBehavior реализует клеточный автомат воды.
// Источник постоянен, текущая вода растекается только вниз.
type WaterBehavior struct{}

var down = vec.Vec3{Y: -1}

// Flow выполняет одну оценку клетки из очереди воды.
// Возвращает true, если клетку нужно вернуть в очередь.
func (b *WaterBehavior) Flow(api block.BlockAPI, pos vec.Vec3) bool {
	current := api.GetBlockID(pos)
	if !current.IsLiquid() {
		// устаревшая запись
		return false
	}

	below := pos.Add(down)
	if api.IsWithinHeight(below.Y) && api.GetBlockID(below) == block.AirBlockID {
		// новая клетка попадёт в очередь через конвейер мутаций
		api.Mutate(below, block.WaterFlowingBlockID)
		return false
	}

	if current != block.WaterSourceBlockID {
		return false
	}

	spread := false
	for _, d := range vec.Horizontal4 {
		n := pos.Add(d)
		if api.GetBlockID(n) != block.AirBlockID {
			continue
		}
		if api.Mutate(n, block.WaterFlowingBlockID) {
			spread = true
		}
	}
	return spread
}
