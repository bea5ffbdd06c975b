package world

import (
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
	"github.com/annel0/voxelsim/internal/world/block/implementations"
)

// WaterSimulator очередь клеток воды, ожидающих оценки
type WaterSimulator struct {
	queue    *orderedSet[vec.BlockKey]
	behavior implementations.WaterBehavior
}

// NewWaterSimulator создаёт пустой симулятор
func NewWaterSimulator() *WaterSimulator {
	return &WaterSimulator{queue: newOrderedSet[vec.BlockKey]()}
}

// Enqueue ставит клетку в очередь (без дубликатов)
func (ws *WaterSimulator) Enqueue(pos vec.Vec3) {
	if !vec.InBlockRange(pos.X, pos.Z) {
		return
	}
	ws.queue.Push(pos.Key())
}

// Pending проверяет, стоит ли клетка в очереди
func (ws *WaterSimulator) Pending(pos vec.Vec3) bool {
	return ws.queue.Contains(pos.Key())
}

// Len возвращает длину очереди
func (ws *WaterSimulator) Len() int {
	return ws.queue.Len()
}

// Drain оценивает не более budget клеток из головы очереди
func (ws *WaterSimulator) Drain(api block.BlockAPI, budget int) int {
	keys := ws.queue.Head(budget)
	for _, key := range keys {
		ws.queue.Remove(key)
		pos := key.Unpack()
		if ws.behavior.Flow(api, pos) {
			ws.queue.Push(key)
		}
	}
	return len(keys)
}
