package square

import (
	"fmt"

	"github.com/annel0/rogue-terrain/internal/movement"
	"github.com/annel0/rogue-terrain/internal/view"
)

// Record сохраняемое состояние клетки: все поля базовой клетки плюс глубина воды
type Record struct {
	Type     string          `json:"type"`
	Depth    *float64        `json:"depth,omitempty"`
	Name     string          `json:"name"`
	Vision   VisionID        `json:"vision"`
	Normal   movement.Traits `json:"normal"`
	Forcible movement.Traits `json:"forcible"`
	View     view.ViewObject `json:"view"`
}

// Record снимает состояние клетки
func (s *Square) Record() Record {
	r := Record{
		Type:     s.typ.id.String(),
		Name:     s.name,
		Vision:   s.vision,
		Normal:   s.movementSet.NormalTraits(),
		Forcible: s.movementSet.ForcibleTraits(),
		View:     s.view,
	}
	if depth, ok := s.typ.Depth(); ok {
		r.Depth = &depth
	}
	return r
}

// FromRecord восстанавливает клетку. Поведение (вариант) определяется типом,
// остальные поля берутся из записи.
func FromRecord(r Record) (*Square, error) {
	id, err := ParseSquareID(r.Type)
	if err != nil {
		return nil, err
	}

	t := NewSquareType(id)
	if r.Depth != nil {
		if id != WaterWithDepth {
			return nil, fmt.Errorf("глубина задана для клетки %s", id)
		}
		t = WithDepth(*r.Depth)
	}

	s := Get(t)
	s.name = r.Name
	s.vision = r.Vision
	s.movementSet = movement.SetFromMasks(r.Normal, r.Forcible)
	s.view = r.View
	return s, nil
}
