package square

import (
	"github.com/annel0/rogue-terrain/internal/item"
	"github.com/annel0/rogue-terrain/internal/movement"
)

// mockPosition реализует Position для тестирования
type mockPosition struct {
	furniture bool
	messages  [][]string
	stored    []*item.Item
}

func (p *mockPosition) HasFurniture() bool { return p.furniture }

func (p *mockPosition) GlobalMessage(local string, distant ...string) {
	p.messages = append(p.messages, append([]string{local}, distant...))
}

func (p *mockPosition) AddItems(items []*item.Item) {
	p.stored = append(p.stored, items...)
}

// mockCreature реализует Creature для тестирования
type mockCreature struct {
	name     string
	pos      *mockPosition
	mt       movement.Type
	holder   Creature
	dead     bool
	reason   string
	attacker Creature
	drop     DropType
	said     []string
	msgTypes []MsgType
}

func newMockCreature(pos *mockPosition, mt movement.Type) *mockCreature {
	return &mockCreature{name: "the goblin", pos: pos, mt: mt, drop: DropEverything}
}

func (c *mockCreature) TheName() string             { return c.name }
func (c *mockCreature) Position() Position          { return c.pos }
func (c *mockCreature) MovementType() movement.Type { return c.mt }
func (c *mockCreature) HoldingCreature() Creature   { return c.holder }

func (c *mockCreature) You(msg MsgType, param string) {
	c.msgTypes = append(c.msgTypes, msg)
	c.said = append(c.said, param)
}

func (c *mockCreature) DieWithReason(reason string, drop DropType) {
	c.dead = true
	c.reason = reason
	c.drop = drop
}

func (c *mockCreature) DieWithAttacker(attacker Creature, drop DropType) {
	c.dead = true
	c.attacker = attacker
	c.drop = drop
}
