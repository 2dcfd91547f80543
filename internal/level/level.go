// Package level хранит сетку клеток уровня и связывает клетки с существами и предметами.
package level

import (
	"errors"
	"fmt"
	"strings"

	"github.com/annel0/rogue-terrain/internal/item"
	"github.com/annel0/rogue-terrain/internal/square"
	"github.com/annel0/rogue-terrain/internal/vec"
)

var (
	// ErrOutOfBounds позиция вне уровня
	ErrOutOfBounds = errors.New("позиция вне уровня")
	// ErrBlocked существо не может войти на клетку
	ErrBlocked = errors.New("клетка непроходима")
)

// Message сообщение, произнесённое у позиции
type Message struct {
	Pos     vec.Vec2
	Local   string
	Distant string
}

// Level прямоугольная сетка; каждая позиция владеет одной клеткой
type Level struct {
	width, height int
	squares       []*square.Square
	furniture     map[vec.Vec2]string
	items         map[vec.Vec2][]*item.Item
	messages      []Message
}

// New создаёт пустой уровень
func New(width, height int) *Level {
	return &Level{
		width:     width,
		height:    height,
		squares:   make([]*square.Square, width*height),
		furniture: make(map[vec.Vec2]string),
		items:     make(map[vec.Vec2][]*item.Item),
	}
}

func (l *Level) Width() int  { return l.width }
func (l *Level) Height() int { return l.height }

func (l *Level) index(v vec.Vec2) (int, bool) {
	if !v.InBounds(l.width, l.height) {
		return 0, false
	}
	return v.Y*l.width + v.X, true
}

// Set устанавливает клетку; уровень становится её владельцем
func (l *Level) Set(v vec.Vec2, s *square.Square) error {
	i, ok := l.index(v)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, v)
	}
	l.squares[i] = s
	return nil
}

// At возвращает клетку или nil
func (l *Level) At(v vec.Vec2) *square.Square {
	i, ok := l.index(v)
	if !ok {
		return nil
	}
	return l.squares[i]
}

// AddFurniture ставит мебель (например, мост) на позицию
func (l *Level) AddFurniture(v vec.Vec2, name string) error {
	if _, ok := l.index(v); !ok {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, v)
	}
	l.furniture[v] = name
	return nil
}

// RemoveFurniture убирает мебель с позиции
func (l *Level) RemoveFurniture(v vec.Vec2) {
	delete(l.furniture, v)
}

// Furniture возвращает имя мебели на позиции
func (l *Level) Furniture(v vec.Vec2) (string, bool) {
	name, ok := l.furniture[v]
	return name, ok
}

// Items возвращает предметы, лежащие на позиции
func (l *Level) Items(v vec.Vec2) []*item.Item {
	return l.items[v]
}

// FurnitureMap копия всей мебели уровня
func (l *Level) FurnitureMap() map[vec.Vec2]string {
	out := make(map[vec.Vec2]string, len(l.furniture))
	for v, name := range l.furniture {
		out[v] = name
	}
	return out
}

// ItemMap копия раскладки предметов уровня
func (l *Level) ItemMap() map[vec.Vec2][]*item.Item {
	out := make(map[vec.Vec2][]*item.Item, len(l.items))
	for v, items := range l.items {
		out[v] = append([]*item.Item(nil), items...)
	}
	return out
}

// Messages возвращает все сообщения уровня в порядке появления
func (l *Level) Messages() []Message {
	return l.messages
}

// Position возвращает позицию уровня для хуков клетки
func (l *Level) Position(v vec.Vec2) Position {
	return Position{level: l, pos: v}
}

// Mover существо, которое уровень умеет перемещать
type Mover interface {
	square.Creature
	Place(pos square.Position)
}

// CanEnter проверяет, может ли существо войти на клетку.
// Мост делает клетку проходимой для идущих.
func (l *Level) CanEnter(c square.Creature, to vec.Vec2) bool {
	s := l.At(to)
	if s == nil {
		return false
	}
	if _, bridge := l.furniture[to]; bridge && !s.MovementSet().Blocks() {
		return true
	}
	return s.MovementSet().CanEnter(c.MovementType(), true)
}

// MoveCreature переносит существо на клетку и вызывает её хук входа
func (l *Level) MoveCreature(c Mover, to vec.Vec2) error {
	if _, ok := l.index(to); !ok {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, to)
	}
	if !l.CanEnter(c, to) {
		return fmt.Errorf("%w: %s на %s", ErrBlocked, c.TheName(), to)
	}
	c.Place(l.Position(to))
	l.At(to).OnEnterSpecial(c)
	return nil
}

// DropItems роняет предметы на позицию через хук клетки
func (l *Level) DropItems(v vec.Vec2, items []*item.Item) error {
	s := l.At(v)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, v)
	}
	s.DropItems(l.Position(v), items)
	return nil
}

// Count считает клетки по типам
func (l *Level) Count() map[square.SquareID]int {
	counts := make(map[square.SquareID]int)
	for _, s := range l.squares {
		if s != nil {
			counts[s.ID()]++
		}
	}
	return counts
}

// String текстовое изображение уровня
func (l *Level) String() string {
	var sb strings.Builder
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			v := vec.Vec2{X: x, Y: y}
			switch s := l.At(v); {
			case s == nil:
				sb.WriteRune(' ')
			case l.hasFurniture(v):
				sb.WriteRune('=')
			default:
				sb.WriteRune(s.ViewObject().Rune())
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func (l *Level) hasFurniture(v vec.Vec2) bool {
	_, ok := l.furniture[v]
	return ok
}

// Position реализует square.Position поверх уровня
type Position struct {
	level *Level
	pos   vec.Vec2
}

// Vec возвращает координаты позиции
func (p Position) Vec() vec.Vec2 { return p.pos }

func (p Position) HasFurniture() bool {
	return p.level.hasFurniture(p.pos)
}

func (p Position) GlobalMessage(local string, distant ...string) {
	msg := Message{Pos: p.pos, Local: local}
	if len(distant) > 0 {
		msg.Distant = distant[0]
	}
	p.level.messages = append(p.level.messages, msg)
}

func (p Position) AddItems(items []*item.Item) {
	if len(items) == 0 {
		return
	}
	p.level.items[p.pos] = append(p.level.items[p.pos], items...)
}
