package square

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/annel0/rogue-terrain/internal/eventbus"
	"github.com/annel0/rogue-terrain/internal/item"
	"github.com/annel0/rogue-terrain/internal/logging"
	"github.com/annel0/rogue-terrain/internal/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHazard_PublishesDeath(t *testing.T) {
	bus := eventbus.NewMemoryBus(16)
	eventbus.Init(bus)
	defer eventbus.Init(nil)

	received := make(chan *eventbus.Envelope, 1)
	sub, err := bus.Subscribe(context.Background(), eventbus.Filter{Types: []string{eventbus.EventCreatureDied}},
		func(ctx context.Context, ev *eventbus.Envelope) {
			received <- ev
		})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	c := newMockCreature(&mockPosition{}, movement.NewType(movement.Walk))
	Get(NewSquareType(Magma)).OnEnterSpecial(c)

	select {
	case ev := <-received:
		assert.Equal(t, "square", ev.Source)
		assert.NotEmpty(t, ev.ID)
		var payload creatureDiedEvent
		require.NoError(t, json.Unmarshal(ev.Payload, &payload))
		assert.Equal(t, "the goblin", payload.Creature)
		assert.Equal(t, "MAGMA", payload.Square)
		assert.Equal(t, CauseBurned, payload.Cause)
	case <-time.After(2 * time.Second):
		t.Fatal("событие о гибели не получено")
	}
}

func TestHazard_FullBusDoesNotBlockHooks(t *testing.T) {
	bus := eventbus.NewMemoryBus(1)
	eventbus.Init(bus)
	defer eventbus.Init(nil)

	release := make(chan struct{})
	defer close(release)
	_, err := bus.Subscribe(context.Background(), eventbus.Filter{}, func(context.Context, *eventbus.Envelope) {
		<-release
	})
	require.NoError(t, err)

	magma := Get(NewSquareType(Magma))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			magma.OnEnterSpecial(newMockCreature(&mockPosition{}, movement.NewType(movement.Walk)))
			magma.DropItems(&mockPosition{}, []*item.Item{item.New("scroll")})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("хук клетки заблокирован переполненной шиной")
	}
	assert.NotZero(t, bus.Metrics().Dropped)
}

func TestHazard_LogsPublishFailure(t *testing.T) {
	bus := eventbus.NewMemoryBus(1)
	require.NoError(t, bus.Close())
	eventbus.Init(bus)
	defer eventbus.Init(nil)

	var buf bytes.Buffer
	logging.SetDefaultLogger(logging.NewWriterLogger("test", &buf, logging.WARN))
	defer logging.SetDefaultLogger(nil)

	c := newMockCreature(&mockPosition{}, movement.NewType(movement.Walk))
	Get(NewSquareType(Water)).OnEnterSpecial(c)

	assert.True(t, c.dead)
	assert.Contains(t, buf.String(), "[WARN][square]")
	assert.Contains(t, buf.String(), eventbus.EventCreatureDied)
}
