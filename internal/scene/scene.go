// Package scene builds the demo desktop shown by the render and view
// commands: a tiled background, a few framed windows, a zoomed out viewport
// and a translucent overlay.
package scene

import (
	"image"
	"image/color"
	"math"

	"rctdraw/asset"
	"rctdraw/compositor"
	"rctdraw/gfx"
	"rctdraw/palette"
)

// Selectors of the lookup tables added by NewMaps.
const (
	RemapShadow = iota
	RemapHue
	RemapGlass
)

const BlendHalf = 0

// NewMaps derives the lookup tables used by the scene from pal.
func NewMaps(pal color.Palette) *palette.Maps {
	lab := palette.NewLab(pal)

	var m palette.Maps
	m.AddRemap(lab.ShadeRemap(0.55))
	m.AddRemap(lab.HueRemap(math.Pi/2, 1, len(pal)))
	m.AddRemap(lab.TintRemap(color.RGBA{0x40, 0x80, 0xFF, 0xFF}, 0.35))
	m.AddBlend(lab.BlendTable(0.5))
	return &m
}

type Scene struct {
	Comp       *compositor.Compositor
	Background *compositor.Panel
	// Windows can be moved and focused, back to front in creation order.
	Windows []*compositor.Panel

	focus    int
	velocity image.Point
	sprites  int
}

// New populates comp with the scene windows. Sprites are taken from the
// renderer's table in order, wrapping around.
func New(comp *compositor.Compositor, rd *gfx.Renderer) *Scene {
	b := comp.Screen().Bounds()
	s := &Scene{
		Comp:     comp,
		velocity: image.Pt(3, 2),
		sprites:  rd.Assets.Len(),
	}

	s.Background = compositor.NewPanel(rd, b)
	s.Background.Fill = gfx.Solid(palette.RampIndex(0, 3))
	if s.sprites > 0 {
		s.Background.Tile = s.sprite(0, asset.Plain, 0)
		s.Background.TileStep = image.Pt(48, 32)
	}
	comp.Windows().Push(s.Background)

	w, h := max(b.Dx()/3, 24), max(b.Dy()/3, 16)
	framed := []struct {
		at   image.Point
		ramp int
		mode asset.Mode
		sel  uint8
	}{
		{image.Pt(b.Dx()/10, b.Dy()/8), 5, asset.Plain, 0},
		{image.Pt(b.Dx()/4, b.Dy()/3), 9, asset.UsePalette, RemapHue},
		{image.Pt(b.Dx()/2, b.Dy()/5), 13, asset.MixBackground, BlendHalf},
	}
	for i, f := range framed {
		p := compositor.NewPanel(rd, image.Rectangle{Min: f.at, Max: f.at.Add(image.Pt(w, h))})
		p.Fill = gfx.Solid(palette.RampIndex(f.ramp, 6))
		p.Bevel = true
		p.Light = palette.RampIndex(f.ramp, 11)
		p.Dark = palette.RampIndex(f.ramp, 2)
		if s.sprites > 0 {
			p.Sprites = []compositor.Placement{
				{ID: s.sprite(i+1, f.mode, f.sel), At: image.Pt(w/2, h/2)},
				{ID: s.sprite(i+2, asset.UseAndMix, RemapShadow), At: image.Pt(w/4, h*3/4)},
			}
		}
		s.add(p)
	}

	viewport := compositor.NewPanel(rd, image.Rect(b.Dx()*3/5, b.Dy()*3/5, b.Dx()*3/5+w, b.Dy()*3/5+h))
	viewport.Fill = gfx.Crosshatch(palette.RampIndex(0, 8))
	viewport.Zoom = 1
	if s.sprites > 0 {
		viewport.Tile = s.sprite(0, asset.Plain, 0)
		viewport.TileStep = image.Pt(48, 32)
	}
	s.add(viewport)

	glass := compositor.NewPanel(rd, image.Rect(b.Dx()/6, b.Dy()/2, b.Dx()/6+w*3/2, b.Dy()/2+h))
	glass.Fill = gfx.Remapped(RemapGlass)
	glass.Overlay = true
	s.add(glass)

	comp.InvalidateAll()
	return s
}

func (s *Scene) add(p *compositor.Panel) {
	s.Windows = append(s.Windows, p)
	s.Comp.Windows().Push(p)
}

func (s *Scene) sprite(n int, mode asset.Mode, sel uint8) asset.ImageID {
	return asset.NewImageID(uint32(n%s.sprites), mode, sel)
}

func (s *Scene) Focused() *compositor.Panel {
	return s.Windows[s.focus]
}

// CycleFocus moves the focus to the next window and raises it.
func (s *Scene) CycleFocus() {
	s.focus = (s.focus + 1) % len(s.Windows)
	p := s.Focused()
	s.Comp.Windows().Raise(p)
	s.Comp.InvalidateWindow(p)
}

// Move shifts the focused window by d.
func (s *Scene) Move(d image.Point) {
	before, after := s.Focused().Move(d)
	s.Comp.InvalidateRect(before)
	s.Comp.InvalidateRect(after)
}

// Step advances the animation by one frame: the focused window bounces
// around the screen.
func (s *Scene) Step() {
	screen := s.Comp.Screen().Bounds()
	r := s.Focused().Rect.Add(s.velocity)
	if r.Min.X < screen.Min.X || r.Max.X > screen.Max.X {
		s.velocity.X = -s.velocity.X
	}
	if r.Min.Y < screen.Min.Y || r.Max.Y > screen.Max.Y {
		s.velocity.Y = -s.velocity.Y
	}
	s.Move(s.velocity)
}

// Resize resizes the screen, stretching the background with it.
func (s *Scene) Resize(width, height int) error {
	if err := s.Comp.Resize(width, height); err != nil {
		return err
	}
	s.Background.Rect = s.Comp.Screen().Bounds()
	return nil
}
