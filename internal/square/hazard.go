package square

import (
	"context"
	"strings"
	"time"

	"github.com/annel0/rogue-terrain/internal/eventbus"
	"github.com/annel0/rogue-terrain/internal/item"
	"github.com/annel0/rogue-terrain/internal/logging"
)

// hazard общее поведение опасной клетки: проверка моста, реального способа
// передвижения и разрушительное последствие.
type hazard struct {
	medium     string // "magma" в «... burns in the magma.»
	verbSingle string
	verbPlural string
	distant    string // сообщение для дальних наблюдателей, может быть пустым
	kill       func(s *Square, c Creature) (cause string)
}

var hazards = [kindCount]*hazard{
	KindPlain: nil,
	KindMagma: {
		medium:     "magma",
		verbSingle: "burns",
		verbPlural: "burn",
		kill: func(s *Square, c Creature) string {
			c.You(MsgBurn, s.name)
			c.DieWithReason(CauseBurned, DropNothing)
			return CauseBurned
		},
	},
	KindWater: {
		medium:     "water",
		verbSingle: "sinks",
		verbPlural: "sink",
		distant:    "You hear a splash.",
		kill: func(s *Square, c Creature) string {
			if holder := c.HoldingCreature(); holder != nil {
				c.You(MsgAre, "drowned by "+holder.TheName())
				c.DieWithAttacker(holder, DropNothing)
				return "drowned by " + holder.TheName()
			}
			c.You(MsgDrown, s.name)
			c.DieWithReason(CauseDrowned, DropNothing)
			return CauseDrowned
		},
	},
}

// Причины смерти на опасных клетках
const (
	CauseBurned  = "burned to death"
	CauseDrowned = "drowned"
)

func (h *hazard) enter(s *Square, c Creature) {
	if c.Position().HasFurniture() {
		return
	}
	// Вынужденный вход (бросок, толчок) не спасает: важно, чем существо держится само.
	if s.movementSet.CanEnter(c.MovementType().Real(), true) {
		return
	}
	cause := h.kill(s, c)
	hazardDeaths.WithLabelValues(s.name, metricCause(cause)).Inc()
	logging.GetSquareLogger().Debug("%s погиб на клетке %s: %s", c.TheName(), s.name, cause)

	emitFromHook(eventbus.EventCreatureDied, creatureDiedEvent{
		Creature: c.TheName(),
		Square:   s.typ.String(),
		Cause:    cause,
	})
}

func (h *hazard) destroy(s *Square, pos Position, items []*item.Item) {
	for _, stack := range item.Stack(items) {
		msg := capitalize(stack[0].PluralTheNameAndVerb(len(stack), h.verbSingle, h.verbPlural)) +
			" in the " + h.medium + "."
		if h.distant != "" {
			pos.GlobalMessage(msg, h.distant)
		} else {
			pos.GlobalMessage(msg)
		}
	}
	if len(items) == 0 {
		return
	}
	itemsDestroyed.WithLabelValues(s.name).Add(float64(len(items)))
	logging.GetSquareLogger().Trace("%d предметов уничтожено на клетке %s", len(items), s.name)

	emitFromHook(eventbus.EventItemsDestroyed, itemsDestroyedEvent{
		Square: s.typ.String(),
		Count:  len(items),
	})
}

const (
	// hookEventPriority ниже порога backpressure шины: при полном буфере событие отбрасывается
	hookEventPriority = 4
	// hookEmitTimeout предел ожидания внешней шины (JetStream) внутри хука
	hookEmitTimeout = 50 * time.Millisecond
)

// emitFromHook публикует событие хука, не блокируя его дольше hookEmitTimeout.
// Ошибка публикации только логируется.
func emitFromHook(eventType string, payload interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), hookEmitTimeout)
	defer cancel()
	if err := eventbus.Emit(ctx, eventSource, eventType, hookEventPriority, payload); err != nil {
		logging.GetSquareLogger().Warn("Не удалось опубликовать событие %s: %v", eventType, err)
	}
}

// metricCause сворачивает «drowned by <имя>» в одну метку
func metricCause(cause string) string {
	if strings.HasPrefix(cause, "drowned by ") {
		return "drowned by holder"
	}
	return cause
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
