package world

import (
	"math/rand"

	"github.com/annel0/voxelsim/internal/util"
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// chunkBlockAPI реализует block.BlockAPI для генерации одного чанка.
// Записи идут напрямую в массив блоков без побочных эффектов;
// позиции вне чанка игнорируются.
type chunkBlockAPI struct {
	chunk *Chunk
	seed  int64
}

// local переводит мировые координаты в локальные; ok=false вне чанка
func (api *chunkBlockAPI) local(pos vec.Vec3) (vec.Vec3, bool) {
	if pos.ChunkCoords() != api.chunk.Coords {
		return vec.Vec3{}, false
	}
	return pos.Local(), true
}

// GetBlockID возвращает ID блока по мировым координатам
func (api *chunkBlockAPI) GetBlockID(pos vec.Vec3) block.BlockID {
	l, ok := api.local(pos)
	if !ok {
		return block.AirBlockID
	}
	return api.chunk.GetLocal(l.X, l.Y, l.Z)
}

// Mutate записывает блок без сравнения с соседями и очередей
func (api *chunkBlockAPI) Mutate(pos vec.Vec3, id block.BlockID) bool {
	l, ok := api.local(pos)
	if !ok {
		return false
	}
	return api.chunk.SetLocal(l.X, l.Y, l.Z, id)
}

// MutateIfReplaceable записывает блок только поверх воздуха или воды
func (api *chunkBlockAPI) MutateIfReplaceable(pos vec.Vec3, id block.BlockID) bool {
	l, ok := api.local(pos)
	if !ok {
		return false
	}
	return api.chunk.SetLocalIfReplaceable(l.X, l.Y, l.Z, id)
}

// IsWithinHeight проверяет, лежит ли Y в пределах высоты мира
func (api *chunkBlockAPI) IsWithinHeight(y int) bool {
	return IsWithinHeight(y)
}

// Random возвращает генератор, зависящий только от сида и позиции
func (api *chunkBlockAPI) Random(pos vec.Vec3) *rand.Rand {
	return util.PositionRand(api.seed, pos.X, pos.Y, pos.Z, util.SaltTreeShape)
}

// worldBlockAPI реализует block.BlockAPI поверх мира.
// Все записи проходят через конвейер мутаций.
type worldBlockAPI struct {
	world *World
}

// GetBlockID возвращает ID блока по мировым координатам
func (api *worldBlockAPI) GetBlockID(pos vec.Vec3) block.BlockID {
	return api.world.GetBlock(pos.X, pos.Y, pos.Z)
}

// Mutate записывает блок через конвейер мутаций
func (api *worldBlockAPI) Mutate(pos vec.Vec3, id block.BlockID) bool {
	return api.world.Mutate(pos.X, pos.Y, pos.Z, id)
}

// MutateIfReplaceable записывает блок только поверх воздуха или воды
func (api *worldBlockAPI) MutateIfReplaceable(pos vec.Vec3, id block.BlockID) bool {
	if !api.world.GetBlock(pos.X, pos.Y, pos.Z).IsAirOrLiquid() {
		return false
	}
	return api.world.Mutate(pos.X, pos.Y, pos.Z, id)
}

// IsWithinHeight проверяет, лежит ли Y в пределах высоты мира
func (api *worldBlockAPI) IsWithinHeight(y int) bool {
	return IsWithinHeight(y)
}

// Random возвращает генератор, засеянный сидом мира, позицией и номером шага,
// поэтому рост воспроизводим при одинаковой истории мира
func (api *worldBlockAPI) Random(pos vec.Vec3) *rand.Rand {
	salt := util.SaltGrowth | api.world.step<<8
	return util.PositionRand(api.world.seed, pos.X, pos.Y, pos.Z, salt)
}
