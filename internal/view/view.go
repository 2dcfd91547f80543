// Package view содержит визуальную идентичность клеток: что и на каком слое рисовать.
package view

import (
	"github.com/gdamore/tcell/v2"
)

// ViewID идентификатор изображения
type ViewID uint8

const (
	Empty ViewID = iota
	Floor
	Grass
	Mud
	Hill
	Water
	Magma
	Sand
	BorderGuard
)

// ViewLayer слой отрисовки
type ViewLayer uint8

const (
	LayerFloorBackground ViewLayer = iota
	LayerFloor
)

// Attribute числовой атрибут изображения
type Attribute uint8

const (
	AttrWaterDepth Attribute = iota
)

// ViewObject описывает, как клетка выглядит на экране
type ViewObject struct {
	ID          ViewID
	Layer       ViewLayer
	Description string
	Attributes  map[Attribute]float64
}

// New создаёт ViewObject без описания
func New(id ViewID, layer ViewLayer) ViewObject {
	return ViewObject{ID: id, Layer: layer}
}

// NewWithDescription создаёт ViewObject с текстовым описанием
func NewWithDescription(id ViewID, layer ViewLayer, description string) ViewObject {
	return ViewObject{ID: id, Layer: layer, Description: description}
}

// SetAttribute возвращает копию объекта с установленным атрибутом
func (o ViewObject) SetAttribute(attr Attribute, value float64) ViewObject {
	attrs := make(map[Attribute]float64, len(o.Attributes)+1)
	for k, v := range o.Attributes {
		attrs[k] = v
	}
	attrs[attr] = value
	o.Attributes = attrs
	return o
}

// Attribute возвращает значение атрибута
func (o ViewObject) Attribute(attr Attribute) (float64, bool) {
	v, ok := o.Attributes[attr]
	return v, ok
}

type glyph struct {
	r  rune
	fg tcell.Color
	bg tcell.Color
}

var glyphs = map[ViewID]glyph{
	Empty:       {' ', tcell.ColorDefault, tcell.ColorBlack},
	Floor:       {'.', tcell.ColorGray, tcell.ColorBlack},
	Grass:       {'"', tcell.ColorGreen, tcell.ColorBlack},
	Mud:         {',', tcell.ColorSaddleBrown, tcell.ColorBlack},
	Hill:        {'^', tcell.ColorOlive, tcell.ColorBlack},
	Water:       {'~', tcell.ColorAqua, tcell.ColorNavy},
	Magma:       {'~', tcell.ColorYellow, tcell.ColorDarkRed},
	Sand:        {'.', tcell.ColorKhaki, tcell.ColorBlack},
	BorderGuard: {'#', tcell.ColorWhite, tcell.ColorBlack},
}

// Rune возвращает символ для текстового вывода
func (o ViewObject) Rune() rune {
	g, ok := glyphs[o.ID]
	if !ok {
		return '?'
	}
	if o.ID == Water {
		if depth, ok := o.Attribute(AttrWaterDepth); ok && depth < 1.5 {
			return '='
		}
	}
	return g.r
}

// Style возвращает стиль tcell для объекта
func (o ViewObject) Style() tcell.Style {
	g, ok := glyphs[o.ID]
	if !ok {
		return tcell.StyleDefault
	}
	bg := g.bg
	if o.ID == Water {
		if depth, ok := o.Attribute(AttrWaterDepth); ok && depth < 1.5 {
			bg = tcell.ColorTeal
		}
	}
	return tcell.StyleDefault.Foreground(g.fg).Background(bg)
}

// Draw рисует объект в ячейке экрана
func Draw(screen tcell.Screen, x, y int, o ViewObject) {
	screen.SetContent(x, y, o.Rune(), nil, o.Style())
}
