// Package item содержит минимальную модель предмета: имя, множественное
// число и группировку одинаковых предметов в стопки.
package item

import "fmt"

// Item предмет, который можно бросить на клетку
type Item struct {
	Name   string `json:"name"`
	Plural string `json:"plural,omitempty"`
}

// New создаёт предмет; множественное число по умолчанию name+"s"
func New(name string) *Item {
	return &Item{Name: name}
}

// NewWithPlural создаёт предмет с нерегулярным множественным числом
func NewWithPlural(name, plural string) *Item {
	return &Item{Name: name, Plural: plural}
}

// PluralName возвращает имя для count предметов
func (it *Item) PluralName(count int) string {
	if count == 1 {
		return it.Name
	}
	if it.Plural != "" {
		return fmt.Sprintf("%d %s", count, it.Plural)
	}
	return fmt.Sprintf("%d %ss", count, it.Name)
}

// PluralTheNameAndVerb формирует «the sword burns» / «3 swords burn»
func (it *Item) PluralTheNameAndVerb(count int, verbSingle, verbPlural string) string {
	if count == 1 {
		return "the " + it.Name + " " + verbSingle
	}
	return it.PluralName(count) + " " + verbPlural
}

// stackKey одинаковые предметы сворачиваются в одну стопку
func (it *Item) stackKey() string {
	return it.Name + "\x00" + it.Plural
}

// Stack группирует одинаковые предметы. Порядок стопок совпадает с порядком
// первого появления предмета во входном списке.
func Stack(items []*Item) [][]*Item {
	index := make(map[string]int)
	var stacks [][]*Item
	for _, it := range items {
		key := it.stackKey()
		i, ok := index[key]
		if !ok {
			i = len(stacks)
			index[key] = i
			stacks = append(stacks, nil)
		}
		stacks[i] = append(stacks[i], it)
	}
	return stacks
}
