package eventbus

import (
	"context"

	"github.com/annel0/voxelsim/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог шины.
// Функция неблокирующая.
func StartLoggingListener(ctx context.Context, bus EventBus) (Subscription, error) {
	logger := logging.GetEventBusLogger()
	sub, err := bus.Subscribe(ctx, Filter{}, func(ctx context.Context, ev *Envelope) {
		switch ev.EventType {
		case TypeChunkRebuilt:
			payload, err := DecodeChunkRebuilt(ev.Payload)
			if err != nil {
				logger.Warn("[EventBus] %s: повреждённая полезная нагрузка: %v", ev.ID, err)
				return
			}
			logger.Trace("[EventBus] %s чанк %v v%d шаг %d видимых %d (%dB)",
				ev.EventType, payload.Coords, payload.Version, payload.Step, len(payload.Visible), len(ev.Payload))
		default:
			logger.Debug("[EventBus] %s %s src=%s prio=%d size=%dB", ev.ID, ev.EventType, ev.Source, ev.Priority, len(ev.Payload))
		}
	})
	if err != nil {
		return nil, err
	}
	logger.Info("🪵 LoggingListener: подписка на все события активирована")
	return sub, nil
}
