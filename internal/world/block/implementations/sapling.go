package implementations

import (
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// SaplingClearance сколько клеток над саженцем должны быть пустыми или листвой
const SaplingClearance = 6

// SaplingBehavior реализует рост саженца в дерево
type SaplingBehavior struct{}

// ID возвращает идентификатор блока
func (b *SaplingBehavior) ID() block.BlockID {
	return block.SaplingBlockID
}

// OnRipe выращивает дерево, если над саженцем достаточно места.
// Иначе счётчик сбрасывается и попытка повторится после нового порога.
func (b *SaplingBehavior) OnRipe(api block.BlockAPI, pos vec.Vec3) block.TickOutcome {
	if !HasClearance(api, pos) {
		return block.TickRetry
	}
	PlantTree(api, api.Random(pos), pos)
	return block.TickDone
}

// HasClearance проверяет свободное пространство над позицией.
// Клетки за пределами высоты мира считаются потолком.
func HasClearance(api block.BlockAPI, pos vec.Vec3) bool {
	for dy := 1; dy <= SaplingClearance; dy++ {
		y := pos.Y + dy
		if !api.IsWithinHeight(y) {
			return false
		}
		if !api.GetBlockID(vec.Vec3{X: pos.X, Y: y, Z: pos.Z}).IsEmptyOrLeaves() {
			return false
		}
	}
	return true
}
