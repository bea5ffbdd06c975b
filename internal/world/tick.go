package world

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// TickEntry отложенный переход состояния одного тикаемого блока
type TickEntry struct {
	Pos       vec.Vec3
	Kind      block.BlockID
	Elapsed   int
	Threshold int
}

// TickScheduler продвигает записи по кругу в порядке очереди
type TickScheduler struct {
	entries    *orderedmap.OrderedMap[vec.BlockKey, *TickEntry]
	thresholds map[block.BlockID]int
}

// NewTickScheduler создаёт планировщик с порогами роста
func NewTickScheduler(saplingThreshold, wheatThreshold int) *TickScheduler {
	return &TickScheduler{
		entries: orderedmap.NewOrderedMap[vec.BlockKey, *TickEntry](),
		thresholds: map[block.BlockID]int{
			block.SaplingBlockID: saplingThreshold,
			block.Wheat1BlockID:  wheatThreshold,
			block.Wheat2BlockID:  wheatThreshold,
		},
	}
}

// Register создаёт запись для позиции, заменяя предыдущую.
// Позиции вне диапазона BlockKey не регистрируются.
func (s *TickScheduler) Register(pos vec.Vec3, kind block.BlockID) {
	if !vec.InBlockRange(pos.X, pos.Z) {
		return
	}
	key := pos.Key()
	s.entries.Delete(key)
	s.entries.Set(key, &TickEntry{
		Pos:       pos,
		Kind:      kind,
		Threshold: s.thresholds[kind],
	})
}

// Unregister удаляет запись позиции, если она есть
func (s *TickScheduler) Unregister(pos vec.Vec3) {
	s.entries.Delete(pos.Key())
}

// Entry возвращает запись позиции
func (s *TickScheduler) Entry(pos vec.Vec3) (*TickEntry, bool) {
	return s.entries.Get(pos.Key())
}

// Len возвращает число зарегистрированных записей
func (s *TickScheduler) Len() int {
	return s.entries.Len()
}

// Advance продвигает не более budget записей.
// Созревшие записи проверяются по сетке и передаются поведению блока.
// Возвращает число продвинутых записей и число выполненных переходов.
func (s *TickScheduler) Advance(api block.BlockAPI, budget int) (advanced, transitions int) {
	keys := make([]vec.BlockKey, 0, minInt(budget, s.entries.Len()))
	for el := s.entries.Front(); el != nil && len(keys) < budget; el = el.Next() {
		keys = append(keys, el.Key)
	}

	for _, key := range keys {
		entry, ok := s.entries.Get(key)
		if !ok {
			continue
		}
		s.entries.Delete(key)

		if api.GetBlockID(entry.Pos) != entry.Kind {
			// устаревшая запись
			continue
		}

		advanced++
		entry.Elapsed++
		if entry.Elapsed < entry.Threshold {
			s.entries.Set(key, entry)
			continue
		}

		behavior, ok := block.Get(entry.Kind)
		if !ok {
			continue
		}

		switch behavior.OnRipe(api, entry.Pos) {
		case block.TickDone:
			transitions++
		case block.TickRetry:
			entry.Elapsed = 0
			if _, exists := s.entries.Get(key); !exists {
				s.entries.Set(key, entry)
			}
		}
	}
	return advanced, transitions
}
