package block

import (
	"github.com/annel0/voxelsim/internal/vec"
)

// TickOutcome результат срабатывания тикаемого блока
type TickOutcome uint8

const (
	// TickDone запись планировщика удаляется (переход выполнен)
	TickDone TickOutcome = iota
	// TickRetry счётчик шагов сбрасывается, запись остаётся
	TickRetry
)

// TickBehavior определяет поведение тикаемого блока при достижении порога
type TickBehavior interface {
	ID() BlockID
	// OnRipe вызывается, когда запись набрала порог и блок в позиции
	// всё ещё совпадает с ID().
	OnRipe(api BlockAPI, pos vec.Vec3) TickOutcome
}

var behaviors = make(map[BlockID]TickBehavior)

// Register добавляет поведение блока в регистр
func Register(behavior TickBehavior) {
	behaviors[behavior.ID()] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (TickBehavior, bool) {
	behavior, exists := behaviors[id]
	return behavior, exists
}
