package eventbus

import (
	"context"

	"github.com/annel0/rogue-terrain/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог.
// Гибель существ идёт на уровне INFO, остальное на DEBUG.
func StartLoggingListener(ctx context.Context, bus EventBus) (Subscription, error) {
	sub, err := bus.Subscribe(ctx, Filter{}, func(ctx context.Context, ev *Envelope) {
		if ev.EventType == EventCreatureDied {
			logging.Info("☠️ [EventBus] %s src=%s %s", ev.EventType, ev.Source, ev.Payload)
			return
		}
		logging.Debug("[EventBus] %s %s src=%s prio=%d size=%dB", ev.ID, ev.EventType, ev.Source, ev.Priority, len(ev.Payload))
	})
	if err != nil {
		return nil, err
	}
	logging.Info("🪵 LoggingListener: подписка на все события активирована")
	return sub, nil
}
