package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Типы событий, которые публикует слой клеток.
const (
	EventCreatureDied   = "square.creature_died"
	EventItemsDestroyed = "square.items_destroyed"
	EventLevelGenerated = "level.generated"
	EventLevelSaved     = "level.saved"
)

// NewEnvelope создаёт конверт с JSON-полезной нагрузкой и свежим UUID.
func NewEnvelope(source, eventType string, priority int, payload interface{}) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации события %s: %w", eventType, err)
	}
	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: eventType,
		Version:   1,
		Priority:  priority,
		Payload:   data,
		Metadata:  map[string]string{},
	}, nil
}

// Emit собирает конверт и отправляет его в глобальную шину.
// Без инициализированной шины ничего не делает.
func Emit(ctx context.Context, source, eventType string, priority int, payload interface{}) error {
	bus := Global()
	if bus == nil {
		return nil
	}
	ev, err := NewEnvelope(source, eventType, priority, payload)
	if err != nil {
		return err
	}
	return bus.Publish(ctx, ev)
}
