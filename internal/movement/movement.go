// Package movement описывает способы передвижения существ и правила входа на клетку.
package movement

import "strings"

// Trait способность к передвижению
type Trait uint8

const (
	Walk Trait = iota
	Fly
	Swim
	Wade

	traitCount
)

var traitNames = [traitCount]string{
	Walk: "walk",
	Fly:  "fly",
	Swim: "swim",
	Wade: "wade",
}

func (t Trait) String() string {
	if t < traitCount {
		return traitNames[t]
	}
	return "unknown"
}

// Traits битовое множество способностей
type Traits uint8

// TraitsOf собирает множество из перечисленных способностей
func TraitsOf(traits ...Trait) Traits {
	var ts Traits
	for _, t := range traits {
		ts = ts.With(t)
	}
	return ts
}

// With возвращает множество с добавленной способностью
func (ts Traits) With(t Trait) Traits { return ts | 1<<t }

// Has проверяет наличие способности
func (ts Traits) Has(t Trait) bool { return ts&(1<<t) != 0 }

// Intersects проверяет, есть ли общие способности
func (ts Traits) Intersects(other Traits) bool { return ts&other != 0 }

// Empty истинно для пустого множества
func (ts Traits) Empty() bool { return ts == 0 }

func (ts Traits) String() string {
	names := make([]string, 0, traitCount)
	for t := Trait(0); t < traitCount; t++ {
		if ts.Has(t) {
			names = append(names, t.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Type способ, которым существо пытается войти на клетку.
// Forced означает, что существо попадает туда не по своей воле (толкнули, бросили).
type Type struct {
	traits Traits
	forced bool
}

// NewType создаёт добровольный способ передвижения
func NewType(traits ...Trait) Type {
	return Type{traits: TraitsOf(traits...)}
}

// Traits возвращает способности
func (mt Type) Traits() Traits { return mt.traits }

// Has проверяет наличие способности
func (mt Type) Has(t Trait) bool { return mt.traits.Has(t) }

// IsForced сообщает, вынужденное ли передвижение
func (mt Type) IsForced() bool { return mt.forced }

// WithForced возвращает копию с изменённым флагом вынужденности.
// Исходное значение не меняется.
func (mt Type) WithForced(forced bool) Type {
	mt.forced = forced
	return mt
}

// Real возвращает способ передвижения без флага вынужденности:
// то, чем существо реально может удержаться на клетке.
func (mt Type) Real() Type {
	return mt.WithForced(false)
}
