// Package creature содержит простое существо для генератора, демо и тестов уровня.
// Полноценные атрибуты и ИИ живут вне этого модуля.
package creature

import (
	"fmt"

	"github.com/annel0/rogue-terrain/internal/movement"
	"github.com/annel0/rogue-terrain/internal/square"
)

// Creature существо с именем, способом передвижения и журналом повествования
type Creature struct {
	name     string
	player   bool
	movement movement.Type
	pos      square.Position
	holder   *Creature

	dead        bool
	deathReason string
	killer      *Creature
	narration   []string
}

// New создаёт существо; name без артикля ("goblin")
func New(name string, traits ...movement.Trait) *Creature {
	return &Creature{name: name, movement: movement.NewType(traits...)}
}

// NewPlayer создаёт существо игрока: повествование во втором лице
func NewPlayer(traits ...movement.Trait) *Creature {
	c := New("you", traits...)
	c.player = true
	return c
}

func (c *Creature) TheName() string {
	if c.player {
		return "you"
	}
	return "the " + c.name
}

func (c *Creature) Position() square.Position   { return c.pos }
func (c *Creature) MovementType() movement.Type { return c.movement }
func (c *Creature) IsDead() bool                { return c.dead }
func (c *Creature) DeathReason() string         { return c.deathReason }
func (c *Creature) Killer() *Creature           { return c.killer }
func (c *Creature) Narration() []string         { return c.narration }

// Place ставит существо на позицию (вызывается уровнем)
func (c *Creature) Place(pos square.Position) {
	c.pos = pos
}

// SetForced помечает следующее перемещение как вынужденное (бросок, толчок)
func (c *Creature) SetForced(forced bool) {
	c.movement = c.movement.WithForced(forced)
}

// Hold делает holder держателем существа; nil отпускает
func (c *Creature) Hold(holder *Creature) {
	c.holder = holder
}

func (c *Creature) HoldingCreature() square.Creature {
	if c.holder == nil {
		return nil
	}
	return c.holder
}

// You формирует повествование вида «You burn in the magma.» / «The goblin burns in the magma.»
func (c *Creature) You(msg square.MsgType, param string) {
	var text string
	switch msg {
	case square.MsgBurn:
		text = c.verb("burn", "burns") + " in the " + param + "."
	case square.MsgDrown:
		text = c.verb("drown", "drowns") + " in the " + param + "."
	case square.MsgAre:
		text = c.verb("are", "is") + " " + param + "."
	default:
		text = fmt.Sprintf("%s %s.", c.TheName(), param)
	}
	c.narration = append(c.narration, text)
	if c.pos != nil {
		c.pos.GlobalMessage(text)
	}
}

func (c *Creature) verb(second, third string) string {
	if c.player {
		return "You " + second
	}
	return "The " + c.name + " " + third
}

func (c *Creature) DieWithReason(reason string, drop square.DropType) {
	c.dead = true
	c.deathReason = reason
}

func (c *Creature) DieWithAttacker(attacker square.Creature, drop square.DropType) {
	c.dead = true
	if k, ok := attacker.(*Creature); ok {
		c.killer = k
		c.deathReason = "killed by " + k.TheName()
	}
}
