package movement

// Set правило входа на клетку. Обычные способности пускают всегда,
// «форсируемые» только при вынужденном передвижении.
type Set struct {
	normal   Traits
	forcible Traits
}

// SetFromMasks восстанавливает Set из сохранённых масок
func SetFromMasks(normal, forcible Traits) Set {
	return Set{normal: normal, forcible: forcible}
}

// AddTrait добавляет обычную способность
func (s Set) AddTrait(t Trait) Set {
	s.normal = s.normal.With(t)
	return s
}

// AddForcibleTrait добавляет способность, которая пускает только при вынужденном входе
func (s Set) AddForcibleTrait(t Trait) Set {
	s.forcible = s.forcible.With(t)
	return s
}

func (s Set) NormalTraits() Traits   { return s.normal }
func (s Set) ForcibleTraits() Traits { return s.forcible }

// CanEnter решает, может ли способ передвижения mt попасть на клетку.
// forcibleAllowed разрешает учитывать форсируемые способности (только для mt.IsForced()).
func (s Set) CanEnter(mt Type, forcibleAllowed bool) bool {
	traits := moverTraits(mt)
	if s.normal.Intersects(traits) {
		return true
	}
	return forcibleAllowed && mt.forced && s.forcible.Intersects(traits)
}

// moverTraits способности существа с учётом того, что идущий переходит вброд
func moverTraits(mt Type) Traits {
	if mt.traits.Has(Walk) {
		return mt.traits.With(Wade)
	}
	return mt.traits
}

// Blocks истинно, если клетку нельзя пройти ни одним способом (стены)
func (s Set) Blocks() bool {
	return s.normal.Empty() && s.forcible.Empty()
}

func (s Set) String() string {
	return "normal=" + s.normal.String() + " forcible=" + s.forcible.String()
}
