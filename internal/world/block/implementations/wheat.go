package implementations

import (
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// WheatBehavior переводит пшеницу на следующую стадию роста
type WheatBehavior struct {
	Stage block.BlockID
	Next  block.BlockID
}

// ID возвращает идентификатор блока
func (b *WheatBehavior) ID() block.BlockID {
	return b.Stage
}

// OnRipe записывает следующую стадию. Новая стадия, если она тикаемая,
// регистрируется конвейером мутаций заново.
func (b *WheatBehavior) OnRipe(api block.BlockAPI, pos vec.Vec3) block.TickOutcome {
	api.Mutate(pos, b.Next)
	return block.TickDone
}
