package square

import (
	"fmt"
	"math"

	"github.com/annel0/rogue-terrain/internal/movement"
	"github.com/annel0/rogue-terrain/internal/view"
)

// DefaultWaterDepth глубина воды без явной нагрузки: всегда «глубоко»
const DefaultWaterDepth = 100

func walkable(name string) Params {
	return Params{
		Name:        name,
		Vision:      VisionNormal,
		MovementSet: movement.Set{}.AddTrait(movement.Walk),
	}
}

// Get создаёт клетку по типу. Вызывающий получает клетку во владение.
// На теге вне перечисления Get паникует.
func Get(t SquareType) *Square {
	switch t.ID() {
	case Floor:
		return newSquare(t, view.New(view.Floor, view.LayerFloorBackground), walkable("floor"))
	case BlackFloor:
		return newSquare(t, view.NewWithDescription(view.Empty, view.LayerFloorBackground, "Floor"), walkable("floor"))
	case Grass:
		return newSquare(t, view.New(view.Grass, view.LayerFloorBackground), walkable("grass"))
	case Mud:
		return newSquare(t, view.New(view.Mud, view.LayerFloorBackground), walkable("mud"))
	case BlackWall:
		return newSquare(t, view.NewWithDescription(view.Empty, view.LayerFloor, "Wall"), Params{Name: "wall"})
	case Hill:
		return newSquare(t, view.New(view.Hill, view.LayerFloorBackground), walkable("hill"))
	case Water:
		return newWater(t, view.New(view.Water, view.LayerFloorBackground), "water", DefaultWaterDepth)
	case WaterWithDepth:
		depth, ok := t.Depth()
		if !ok {
			depth = DefaultWaterDepth
		}
		return newWater(t, view.New(view.Water, view.LayerFloorBackground), "water", depth)
	case Magma:
		return newMagma(t, view.New(view.Magma, view.LayerFloor), "magma")
	case Sand:
		return newSquare(t, view.New(view.Sand, view.LayerFloorBackground), walkable("sand"))
	case BorderGuard:
		return newSquare(t, view.New(view.BorderGuard, view.LayerFloor), Params{Name: "wall"})
	}
	panic(fmt.Sprintf("square: неизвестный тип клетки %s", t.ID()))
}

// RandomGen источник случайности; *rand.Rand подходит
type RandomGen interface {
	Float64() float64
}

// Factory выбирает типы клеток для генератора: сначала из очереди first
// (с конца), затем взвешенно случайно из squares.
type Factory struct {
	first   []SquareType
	squares []SquareType
	weights []float64
}

// NewFactory создаёт фабрику со взвешенным списком типов
func NewFactory(squares []SquareType, weights []float64) *Factory {
	return NewFactoryWithFirst(nil, squares, weights)
}

// NewFactoryWithFirst создаёт фабрику с очередью обязательных типов.
// Очередь расходуется с конца и не пополняется.
// Несовпадение длин squares и weights, отрицательный или нечисловой вес приводят к панике.
func NewFactoryWithFirst(first, squares []SquareType, weights []float64) *Factory {
	if len(squares) != len(weights) {
		panic(fmt.Sprintf("square: %d типов и %d весов", len(squares), len(weights)))
	}
	for i, w := range weights {
		if !ValidWeight(w) {
			panic(fmt.Sprintf("square: некорректный вес %g у %s", w, squares[i]))
		}
	}
	return &Factory{
		first:   append([]SquareType(nil), first...),
		squares: append([]SquareType(nil), squares...),
		weights: append([]float64(nil), weights...),
	}
}

// ValidWeight вес конечен и неотрицателен
func ValidWeight(w float64) bool {
	return w >= 0 && !math.IsNaN(w) && !math.IsInf(w, 0)
}

// Single фабрика, которая всегда выбирает один тип
func Single(t SquareType) *Factory {
	return NewFactory([]SquareType{t}, []float64{1})
}

// Queued сколько типов осталось в очереди
func (f *Factory) Queued() int {
	return len(f.first)
}

// GetRandom возвращает следующий тип: последний элемент очереди, пока она не пуста,
// иначе взвешенный случайный выбор.
func (f *Factory) GetRandom(r RandomGen) SquareType {
	if n := len(f.first); n > 0 {
		t := f.first[n-1]
		f.first = f.first[:n-1]
		factoryPicks.WithLabelValues("queue", t.ID().String()).Inc()
		return t
	}
	t := f.squares[chooseWeighted(r, f.weights)]
	factoryPicks.WithLabelValues("weighted", t.ID().String()).Inc()
	return t
}

// Get создаёт клетку случайного типа
func (f *Factory) Get(r RandomGen) *Square {
	return Get(f.GetRandom(r))
}

// chooseWeighted индекс с вероятностью, пропорциональной весу
func chooseWeighted(r RandomGen, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic("square: фабрика без положительных весов")
	}

	x := r.Float64() * total
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return i
		}
		x -= w
		last = i
	}
	// x == total из-за округления
	return last
}
