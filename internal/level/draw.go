package level

import (
	"github.com/annel0/rogue-terrain/internal/vec"
	"github.com/annel0/rogue-terrain/internal/view"
	"github.com/gdamore/tcell/v2"
)

var bridgeStyle = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown).Background(tcell.ColorBlack)

// Draw рисует уровень на экране начиная с левого верхнего угла
func (l *Level) Draw(screen tcell.Screen) {
	w, h := screen.Size()
	for y := 0; y < l.height && y < h; y++ {
		for x := 0; x < l.width && x < w; x++ {
			v := vec.Vec2{X: x, Y: y}
			s := l.At(v)
			if s == nil {
				continue
			}
			if l.hasFurniture(v) {
				screen.SetContent(x, y, '=', nil, bridgeStyle)
				continue
			}
			view.Draw(screen, x, y, s.ViewObject())
		}
	}
}
