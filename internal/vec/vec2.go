package vec

import "fmt"

// Vec2 представляет 2D координаты клетки уровня
type Vec2 struct {
	X, Y int
}

// Neighbors возвращает четырёх соседей клетки: право, лево, вниз, вверх
func (v Vec2) Neighbors() []Vec2 {
	return []Vec2{
		{X: v.X + 1, Y: v.Y},
		{X: v.X - 1, Y: v.Y},
		{X: v.X, Y: v.Y + 1},
		{X: v.X, Y: v.Y - 1},
	}
}

// InBounds проверяет, лежит ли точка внутри прямоугольника [0,w)x[0,h)
func (v Vec2) InBounds(w, h int) bool {
	return v.X >= 0 && v.Y >= 0 && v.X < w && v.Y < h
}

// Key возвращает упакованные координаты "x:y" (ключ для хранилища)
func (v Vec2) Key() string {
	return fmt.Sprintf("%d:%d", v.X, v.Y)
}

// ParseKey разбирает ключ, созданный Key
func ParseKey(key string) (Vec2, error) {
	var v Vec2
	if _, err := fmt.Sscanf(key, "%d:%d", &v.X, &v.Y); err != nil {
		return Vec2{}, fmt.Errorf("некорректный ключ координат %q: %w", key, err)
	}
	return v, nil
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}
