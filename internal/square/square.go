// Package square реализует клетки местности: общее поведение, опасные клетки
// (магма, вода) и фабрику, которой пользуется генератор уровней.
package square

import (
	"github.com/annel0/rogue-terrain/internal/item"
	"github.com/annel0/rogue-terrain/internal/movement"
	"github.com/annel0/rogue-terrain/internal/view"
)

// VisionID тип видимости сквозь клетку. VisionNone: клетка непрозрачна.
type VisionID uint8

const (
	VisionNone VisionID = iota
	VisionNormal
)

func (v VisionID) String() string {
	switch v {
	case VisionNone:
		return "none"
	case VisionNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Kind вариант поведения клетки
type Kind uint8

const (
	KindPlain Kind = iota
	KindMagma
	KindWater

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindMagma:
		return "magma"
	case KindWater:
		return "water"
	default:
		return "unknown"
	}
}

// MsgType вид повествования о существе
type MsgType uint8

const (
	MsgBurn MsgType = iota
	MsgDrown
	MsgAre
)

// DropType что существо роняет при смерти
type DropType uint8

const (
	DropEverything DropType = iota
	DropNothing
)

// Position клетка уровня, как её видит Square
type Position interface {
	// HasFurniture истинно, если на клетке стоит мебель (мост), отменяющая опасность
	HasFurniture() bool
	// GlobalMessage сообщение рядом с клеткой; distant, если задан, слышат дальние наблюдатели
	GlobalMessage(local string, distant ...string)
	// AddItems кладёт предметы на клетку без изменений
	AddItems(items []*item.Item)
}

// Creature существо, входящее на клетку
type Creature interface {
	TheName() string
	Position() Position
	MovementType() movement.Type
	// HoldingCreature возвращает существо, которое держит это, или nil
	HoldingCreature() Creature
	You(msg MsgType, param string)
	DieWithReason(reason string, drop DropType)
	DieWithAttacker(attacker Creature, drop DropType)
}

// Params декларативное описание обычной клетки
type Params struct {
	Name        string
	Vision      VisionID
	MovementSet movement.Set
}

// Square одна клетка местности. Создаётся фабрикой и принадлежит ровно одной позиции уровня.
type Square struct {
	typ         SquareType
	kind        Kind
	view        view.ViewObject
	name        string
	vision      VisionID
	movementSet movement.Set
	depth       float64
}

func newSquare(t SquareType, obj view.ViewObject, p Params) *Square {
	return &Square{
		typ:         t,
		kind:        KindPlain,
		view:        obj,
		name:        p.Name,
		vision:      p.Vision,
		movementSet: p.MovementSet,
	}
}

func newMagma(t SquareType, obj view.ViewObject, name string) *Square {
	s := newSquare(t, obj, Params{
		Name:   name,
		Vision: VisionNormal,
		MovementSet: movement.Set{}.
			AddTrait(movement.Fly).
			AddForcibleTrait(movement.Walk),
	})
	s.kind = KindMagma
	return s
}

func newWater(t SquareType, obj view.ViewObject, name string, depth float64) *Square {
	s := newSquare(t, obj.SetAttribute(view.AttrWaterDepth, depth), Params{
		Name:        name,
		Vision:      VisionNormal,
		MovementSet: waterMovement(depth),
	})
	s.kind = KindWater
	s.depth = depth
	return s
}

// ShallowWaterDepth ниже этой глубины воду можно перейти вброд
const ShallowWaterDepth = 1.5

func waterMovement(depth float64) movement.Set {
	set := movement.Set{}.
		AddTrait(movement.Swim).
		AddTrait(movement.Fly).
		AddForcibleTrait(movement.Walk)
	if depth < ShallowWaterDepth {
		set = set.AddTrait(movement.Wade)
	}
	return set
}

func (s *Square) Type() SquareType            { return s.typ }
func (s *Square) ID() SquareID                { return s.typ.id }
func (s *Square) Kind() Kind                  { return s.kind }
func (s *Square) Name() string                { return s.name }
func (s *Square) Vision() VisionID            { return s.vision }
func (s *Square) ViewObject() view.ViewObject { return s.view }
func (s *Square) MovementSet() movement.Set   { return s.movementSet }
func (s *Square) CanSeeThrough() bool         { return s.vision != VisionNone }
func (s *Square) IsHazard() bool              { return hazards[s.kind] != nil }

// Depth глубина воды; для прочих клеток 0
func (s *Square) Depth() float64 { return s.depth }

// OnEnterSpecial вызывается, когда позиция существа стала этой клеткой.
// Для обычных клеток ничего не делает.
func (s *Square) OnEnterSpecial(c Creature) {
	h := hazards[s.kind]
	if h == nil {
		return
	}
	h.enter(s, c)
}

// DropItems кладёт предметы на позицию. Опасные клетки без моста уничтожают их.
// Список items передаётся во владение клетке.
func (s *Square) DropItems(pos Position, items []*item.Item) {
	h := hazards[s.kind]
	if h == nil || pos.HasFurniture() {
		pos.AddItems(items)
		return
	}
	h.destroy(s, pos, items)
}
