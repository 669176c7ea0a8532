// Package term shows indexed surfaces on a terminal, two pixels per cell.
package term

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"rctdraw/surface"
)

// halfBlock covers the upper half of a cell; its foreground shows the top
// pixel and the background the bottom one.
const halfBlock = '▀'

type Presenter struct {
	screen tcell.Screen
	colors [256]tcell.Color
}

// NewPresenter maps pal onto true colour cells of screen. Indices beyond the
// palette show as black.
func NewPresenter(screen tcell.Screen, pal color.Palette) *Presenter {
	p := &Presenter{screen: screen}
	for i := range p.colors {
		p.colors[i] = tcell.ColorBlack
		if i < len(pal) {
			r, g, b, _ := pal[i].RGBA()
			p.colors[i] = tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
		}
	}
	return p
}

// Size returns the number of pixels the terminal can show.
func (p *Presenter) Size() (width, height int) {
	cols, rows := p.screen.Size()
	return cols, rows * 2
}

// Present copies the cells covering rects from s to the terminal and shows
// them. Rectangles are in the coordinate space of s.
func (p *Presenter) Present(s *surface.Surface, rects []image.Rectangle) {
	cols, rows := p.screen.Size()
	for _, r := range rects {
		r = r.Intersect(s.Bounds()).Sub(image.Pt(s.X, s.Y))
		if r.Empty() {
			continue
		}
		// widen to whole cells
		for cy := r.Min.Y / 2; cy < (r.Max.Y+1)/2 && cy < rows; cy++ {
			for x := r.Min.X; x < r.Max.X && x < cols; x++ {
				p.setCell(s, x, cy)
			}
		}
	}
	p.screen.Show()
}

// PresentAll redraws every cell from s.
func (p *Presenter) PresentAll(s *surface.Surface) {
	p.Present(s, []image.Rectangle{s.Bounds()})
}

func (p *Presenter) setCell(s *surface.Surface, x, cy int) {
	top := p.colors[s.At(x, cy*2)]
	bottom := p.colors[s.At(x, cy*2+1)]
	style := tcell.StyleDefault.Foreground(top).Background(bottom)
	p.screen.SetContent(x, cy, halfBlock, nil, style)
}
