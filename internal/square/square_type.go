package square

import (
	"errors"
	"fmt"
	"strings"
)

// SquareID тег типа клетки. Набор закрыт: новый тег требует новой ветки в Get.
type SquareID uint8

const (
	Floor SquareID = iota
	BlackFloor
	Grass
	Mud
	BlackWall
	Hill
	Water
	WaterWithDepth
	Magma
	Sand
	BorderGuard

	squareIDCount
)

func _() {
	// Ошибка компиляции "invalid array index" означает, что значения констант изменились:
	// обновите squareIDNames и Get.
	var x [1]struct{}
	_ = x[BorderGuard-10]
	_ = x[squareIDCount-11]
}

var squareIDNames = [squareIDCount]string{
	Floor:          "FLOOR",
	BlackFloor:     "BLACK_FLOOR",
	Grass:          "GRASS",
	Mud:            "MUD",
	BlackWall:      "BLACK_WALL",
	Hill:           "HILL",
	Water:          "WATER",
	WaterWithDepth: "WATER_WITH_DEPTH",
	Magma:          "MAGMA",
	Sand:           "SAND",
	BorderGuard:    "BORDER_GUARD",
}

// ErrUnknownSquareID возвращается при разборе неизвестного имени типа клетки
var ErrUnknownSquareID = errors.New("неизвестный тип клетки")

func (id SquareID) String() string {
	if id < squareIDCount {
		return squareIDNames[id]
	}
	return fmt.Sprintf("SquareID(%d)", uint8(id))
}

// Valid проверяет, входит ли id в перечисление
func (id SquareID) Valid() bool {
	return id < squareIDCount
}

// ParseSquareID разбирает имя вида "WATER_WITH_DEPTH" (регистр не важен)
func ParseSquareID(name string) (SquareID, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for id, n := range squareIDNames {
		if n == upper {
			return SquareID(id), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSquareID, name)
}

// AllSquareIDs возвращает все теги перечисления
func AllSquareIDs() []SquareID {
	ids := make([]SquareID, 0, squareIDCount)
	for id := SquareID(0); id < squareIDCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// SquareType тег клетки с необязательной полезной нагрузкой (глубина воды).
// Значение неизменяемо.
type SquareType struct {
	id       SquareID
	depth    float64
	hasDepth bool
}

// NewSquareType создаёт тип без полезной нагрузки
func NewSquareType(id SquareID) SquareType {
	return SquareType{id: id}
}

// WithDepth создаёт тип WATER_WITH_DEPTH с указанной глубиной
func WithDepth(depth float64) SquareType {
	return SquareType{id: WaterWithDepth, depth: depth, hasDepth: true}
}

// ID возвращает тег
func (t SquareType) ID() SquareID { return t.id }

// Depth возвращает глубину, если тип её несёт
func (t SquareType) Depth() (float64, bool) { return t.depth, t.hasDepth }

func (t SquareType) String() string {
	if t.hasDepth {
		return fmt.Sprintf("%s(%g)", t.id, t.depth)
	}
	return t.id.String()
}
