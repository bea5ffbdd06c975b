package implementations

import "github.com/annel0/voxelsim/internal/world/block"

// Регистрируем тикаемые блоки при импорте пакета
func init() {
	block.Register(&SaplingBehavior{})
	block.Register(&WheatBehavior{Stage: block.Wheat1BlockID, Next: block.Wheat2BlockID})
	block.Register(&WheatBehavior{Stage: block.Wheat2BlockID, Next: block.Wheat3BlockID})
}
