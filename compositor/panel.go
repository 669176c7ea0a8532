package compositor

import (
	"image"

	"rctdraw/asset"
	"rctdraw/gfx"
	"rctdraw/surface"
)

// Placement puts a sprite at an offset from its panel's top-left corner.
type Placement struct {
	ID asset.ImageID
	At image.Point
}

// Panel is a rectangular window drawn from primitives and sprites.
type Panel struct {
	Rect image.Rectangle
	// Fill paints the panel background. Overlays usually use a remap colour
	// so the windows beneath stay visible.
	Fill gfx.Colour
	// Bevel draws a raised frame with the given light and dark edges.
	Bevel       bool
	Light, Dark uint8
	// Tile repeats a sprite every TileStep pixels across the panel, below
	// the placed sprites.
	Tile     asset.ImageID
	TileStep image.Point
	Sprites  []Placement
	// Zoom draws tiles and sprites zoomed out around the panel's top-left
	// corner, each pixel covering 1<<Zoom units.
	Zoom int
	// Overlay makes the panel transparent.
	Overlay bool

	rd *gfx.Renderer
}

func NewPanel(rd *gfx.Renderer, r image.Rectangle) *Panel {
	return &Panel{Rect: r, rd: rd}
}

func (p *Panel) Bounds() image.Rectangle { return p.Rect }
func (p *Panel) Transparent() bool       { return p.Overlay }

// Move shifts the panel by d and returns the area it covered before and
// after, for invalidation.
func (p *Panel) Move(d image.Point) (before, after image.Rectangle) {
	before = p.Rect
	p.Rect = p.Rect.Add(d)
	return before, p.Rect
}

func (p *Panel) Paint(view *surface.Surface, _ image.Rectangle) {
	if p.Bevel {
		p.rd.FillRectInset(view, p.Rect, p.Light, p.Fill.Index(), p.Dark, false)
	} else {
		p.rd.FillRect(view, p.Rect, p.Fill)
	}

	sv := view
	if p.Zoom > 0 {
		o := p.Rect.Min
		sv = view.Zoomed(p.Zoom, o.X+(view.X-o.X)<<p.Zoom, o.Y+(view.Y-o.Y)<<p.Zoom)
	}

	if p.TileStep.X > 0 && p.TileStep.Y > 0 {
		vb := sv.Bounds()
		// only the tiles whose cell meets the view
		x0 := p.Rect.Min.X + (vb.Min.X-p.Rect.Min.X)/p.TileStep.X*p.TileStep.X
		y0 := p.Rect.Min.Y + (vb.Min.Y-p.Rect.Min.Y)/p.TileStep.Y*p.TileStep.Y
		for y := y0 - p.TileStep.Y; y < vb.Max.Y; y += p.TileStep.Y {
			for x := x0 - p.TileStep.X; x < vb.Max.X; x += p.TileStep.X {
				p.rd.DrawSprite(sv, p.Tile, x, y)
			}
		}
	}

	for _, s := range p.Sprites {
		p.rd.DrawSprite(sv, s.ID, p.Rect.Min.X+s.At.X, p.Rect.Min.Y+s.At.Y)
	}
}
