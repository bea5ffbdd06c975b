package world

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/annel0/voxelsim/internal/vec"
)

// orderedSet очередь без дубликатов: порядок вставки и членство в одной структуре
type orderedSet[K comparable] struct {
	m *orderedmap.OrderedMap[K, struct{}]
}

func newOrderedSet[K comparable]() *orderedSet[K] {
	return &orderedSet[K]{m: orderedmap.NewOrderedMap[K, struct{}]()}
}

// Push добавляет ключ в конец; false, если ключ уже в очереди
func (s *orderedSet[K]) Push(key K) bool {
	if _, ok := s.m.Get(key); ok {
		return false
	}
	s.m.Set(key, struct{}{})
	return true
}

// Pop извлекает первый ключ
func (s *orderedSet[K]) Pop() (K, bool) {
	el := s.m.Front()
	if el == nil {
		var zero K
		return zero, false
	}
	key := el.Key
	s.m.Delete(key)
	return key, true
}

// Contains проверяет членство
func (s *orderedSet[K]) Contains(key K) bool {
	_, ok := s.m.Get(key)
	return ok
}

// Remove удаляет ключ из любой позиции
func (s *orderedSet[K]) Remove(key K) bool {
	return s.m.Delete(key)
}

// Len возвращает размер очереди
func (s *orderedSet[K]) Len() int {
	return s.m.Len()
}

// Head возвращает до n первых ключей без извлечения
func (s *orderedSet[K]) Head(n int) []K {
	out := make([]K, 0, minInt(n, s.m.Len()))
	for el := s.m.Front(); el != nil && len(out) < n; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// BuildQueue очередь чанков, ожидающих перестроения внешнего представления
type BuildQueue struct {
	set *orderedSet[vec.ChunkKey]
}

// NewBuildQueue создаёт пустую очередь
func NewBuildQueue() *BuildQueue {
	return &BuildQueue{set: newOrderedSet[vec.ChunkKey]()}
}

// Push ставит чанк в очередь; повторная постановка игнорируется
func (q *BuildQueue) Push(coords vec.Vec2) bool { return q.set.Push(coords.Key()) }

// Pop извлекает следующий чанк
func (q *BuildQueue) Pop() (vec.Vec2, bool) {
	key, ok := q.set.Pop()
	if !ok {
		return vec.Vec2{}, false
	}
	return key.Unpack(), true
}

// Contains проверяет, стоит ли чанк в очереди
func (q *BuildQueue) Contains(coords vec.Vec2) bool { return q.set.Contains(coords.Key()) }

// Remove снимает чанк с очереди
func (q *BuildQueue) Remove(coords vec.Vec2) bool { return q.set.Remove(coords.Key()) }

// Len возвращает длину очереди
func (q *BuildQueue) Len() int { return q.set.Len() }

// Pending возвращает координаты в порядке очереди
func (q *BuildQueue) Pending() []vec.Vec2 {
	keys := q.set.Head(q.set.Len())
	out := make([]vec.Vec2, len(keys))
	for i, k := range keys {
		out[i] = k.Unpack()
	}
	return out
}
