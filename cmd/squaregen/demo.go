package main

import (
	"fmt"

	"github.com/annel0/rogue-terrain/internal/creature"
	"github.com/annel0/rogue-terrain/internal/item"
	"github.com/annel0/rogue-terrain/internal/level"
	"github.com/annel0/rogue-terrain/internal/movement"
	"github.com/annel0/rogue-terrain/internal/square"
	"github.com/annel0/rogue-terrain/internal/vec"
)

// findSquare первая клетка без мебели, подходящая под условие
func findSquare(lvl *level.Level, match func(*square.Square) bool) (vec.Vec2, bool) {
	for y := 0; y < lvl.Height(); y++ {
		for x := 0; x < lvl.Width(); x++ {
			v := vec.Vec2{X: x, Y: y}
			s := lvl.At(v)
			if s == nil || !match(s) {
				continue
			}
			if _, furnished := lvl.Furniture(v); furnished {
				continue
			}
			return v, true
		}
	}
	return vec.Vec2{}, false
}

// approach ставит существо на соседнюю проходимую клетку, если такая есть
func approach(lvl *level.Level, c *creature.Creature, target vec.Vec2) (vec.Vec2, bool) {
	for _, n := range target.Neighbors() {
		s := lvl.At(n)
		if s == nil || s.IsHazard() || !lvl.CanEnter(c, n) {
			continue
		}
		if err := lvl.MoveCreature(c, n); err == nil {
			return n, true
		}
	}
	return vec.Vec2{}, false
}

// runHazardDemo проводит существ и предметы через магму и воду уровня.
// Возвращает повествование и сообщения уровня.
func runHazardDemo(lvl *level.Level) []string {
	var lines []string
	enter := func(c *creature.Creature, to vec.Vec2) {
		if err := lvl.MoveCreature(c, to); err != nil {
			lines = append(lines, fmt.Sprintf("%s: %v", c.TheName(), err))
			return
		}
		if c.IsDead() {
			lines = append(lines, fmt.Sprintf("%s на %s: %s", c.TheName(), to, c.DeathReason()))
		} else {
			lines = append(lines, fmt.Sprintf("%s на %s: жив", c.TheName(), to))
		}
	}

	if magma, ok := findSquare(lvl, func(s *square.Square) bool { return s.Kind() == square.KindMagma }); ok {
		goblin := creature.New("goblin", movement.Walk)
		if from, ok := approach(lvl, goblin, magma); ok {
			lines = append(lines, fmt.Sprintf("%s стоит на %s рядом с магмой", goblin.TheName(), from))
		}
		enter(goblin, magma) // без принуждения не войдёт
		goblin.SetForced(true)
		enter(goblin, magma)

		enter(creature.New("bat", movement.Fly), magma)
		_ = lvl.DropItems(magma, []*item.Item{item.New("scroll"), item.New("scroll")})
	}

	deep := func(s *square.Square) bool {
		return s.Kind() == square.KindWater && s.Depth() >= square.ShallowWaterDepth
	}
	if water, ok := findSquare(lvl, deep); ok {
		you := creature.NewPlayer(movement.Walk)
		you.SetForced(true)
		enter(you, water)

		kraken := creature.New("kraken", movement.Swim)
		sailor := creature.New("sailor", movement.Walk)
		sailor.SetForced(true)
		sailor.Hold(kraken)
		enter(sailor, water)

		enter(creature.New("eel", movement.Swim), water)
		_ = lvl.DropItems(water, []*item.Item{item.NewWithPlural("knife", "knives"), item.NewWithPlural("knife", "knives"), item.New("shield")})
	}

	if shallow, ok := findSquare(lvl, func(s *square.Square) bool {
		return s.Kind() == square.KindWater && s.Depth() < square.ShallowWaterDepth
	}); ok {
		enter(creature.New("heron", movement.Walk, movement.Wade), shallow)
	}

	for _, msg := range lvl.Messages() {
		lines = append(lines, fmt.Sprintf("[%s] %s", msg.Pos, msg.Local))
	}
	return lines
}
