package block

import (
	"math/rand"

	"github.com/annel0/voxelsim/internal/vec"
)

// BlockAPI определяет интерфейс для взаимодействия блоков с игровым миром.
// Все записи проходят через конвейер мутаций мира, поэтому побочные
// эффекты (грязные чанки, тики, очередь воды) применяются автоматически.
type BlockAPI interface {
	// GetBlockID возвращает вид блока в позиции (воздух вне высоты мира).
	GetBlockID(pos vec.Vec3) BlockID

	// Mutate записывает блок; возвращает true, если содержимое изменилось.
	Mutate(pos vec.Vec3, id BlockID) bool

	// MutateIfReplaceable записывает блок только поверх воздуха или воды.
	MutateIfReplaceable(pos vec.Vec3, id BlockID) bool

	// IsWithinHeight проверяет, лежит ли Y в пределах высоты мира.
	IsWithinHeight(y int) bool

	// Random возвращает детерминированный генератор для позиции и текущего шага.
	Random(pos vec.Vec3) *rand.Rand
}
