package gfx

import (
	"image"
	"math/bits"

	"rctdraw/surface"
)

// Stipples holds 16x16 one bit patterns, one uint16 per row with bit 0 as the
// leftmost column.
var Stipples = [...][16]uint16{
	{0x5555, 0xAAAA, 0x5555, 0xAAAA, 0x5555, 0xAAAA, 0x5555, 0xAAAA,
		0x5555, 0xAAAA, 0x5555, 0xAAAA, 0x5555, 0xAAAA, 0x5555, 0xAAAA},
	{0x1111, 0x0000, 0x4444, 0x0000, 0x1111, 0x0000, 0x4444, 0x0000,
		0x1111, 0x0000, 0x4444, 0x0000, 0x1111, 0x0000, 0x4444, 0x0000},
	{0xFFFF, 0x0000, 0x0000, 0x0000, 0xFFFF, 0x0000, 0x0000, 0x0000,
		0xFFFF, 0x0000, 0x0000, 0x0000, 0xFFFF, 0x0000, 0x0000, 0x0000},
	{0x0101, 0x0202, 0x0404, 0x0808, 0x1010, 0x2020, 0x4040, 0x8080,
		0x0101, 0x0202, 0x0404, 0x0808, 0x1010, 0x2020, 0x4040, 0x8080},
}

// FillRect fills r with c. The mode encoded in c selects a solid fill, a
// crosshatch, a remap of the existing pixels or a stipple pattern.
func (rd *Renderer) FillRect(dst *surface.Surface, r image.Rectangle, c Colour) {
	if dst.Empty() || r.Empty() {
		return
	}

	// rectangle in local pixels, before clamping
	x0 := ceilShift(r.Min.X-dst.X, dst.Zoom)
	x1 := ceilShift(r.Max.X-dst.X, dst.Zoom)
	y0 := ceilShift(r.Min.Y-dst.Y, dst.Zoom)
	y1 := ceilShift(r.Max.Y-dst.Y, dst.Zoom)

	var leftClip, topClip int
	if x0 < 0 {
		leftClip, x0 = -x0, 0
	}
	if y0 < 0 {
		topClip, y0 = -y0, 0
	}
	x1 = min(x1, dst.Width)
	y1 = min(y1, dst.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	switch {
	case c&flagCrosshatch != 0:
		fillCrosshatch(dst, x0, x1, y0, y1, leftClip, topClip, c.Index())
	case c&flagRemap != 0:
		table := rd.Maps.Remap(int(c.Index()))
		if table == nil {
			return
		}
		for y := y0; y < y1; y++ {
			row := dst.Row(y)[x0:x1]
			for i, v := range row {
				row[i] = table[v]
			}
		}
	case c&flagStipple != 0:
		pat := &Stipples[c.pattern()%len(Stipples)]
		ax, ay := dst.X>>dst.Zoom, dst.Y>>dst.Zoom
		for y := y0; y < y1; y++ {
			mask := pat[(ay+y)&15]
			row := dst.Row(y)
			for x := x0; x < x1; x++ {
				if mask>>((ax+x)&15)&1 != 0 {
					row[x] = c.Index()
				}
			}
		}
	default:
		v := c.Index()
		for y := y0; y < y1; y++ {
			row := dst.Row(y)[x0:x1]
			for i := range row {
				row[i] = v
			}
		}
	}
}

// fillCrosshatch writes v on a checkerboard. The phase starts from the parity
// of what was clipped off the top-left corner so the pattern stays anchored
// to the unclipped rectangle; a 32 bit pattern is rotated per row and its top
// bit toggled per pixel, writing where it comes out set.
func fillCrosshatch(dst *surface.Surface, x0, x1, y0, y1, leftClip, topClip int, v uint8) {
	phase := uint32((leftClip ^ topClip) & 1)
	for y := y0; y < y1; y++ {
		row := dst.Row(y)[x0:x1]
		p := bits.RotateLeft32(phase, -1)
		for i := range row {
			p ^= 0x80000000
			if int32(p) < 0 {
				row[i] = v
			}
		}
		phase ^= 1
	}
}

// SetPixel writes a single pixel.
func (rd *Renderer) SetPixel(dst *surface.Surface, x, y int, v uint8) {
	if dst.Empty() {
		return
	}
	col, row := dst.ToLocal(x, y)
	dst.Set(col, row, v)
}

// DrawRectOutline draws the one pixel border just inside r.
func (rd *Renderer) DrawRectOutline(dst *surface.Surface, r image.Rectangle, v uint8) {
	if r.Empty() {
		return
	}
	c := Solid(v)
	rd.FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	rd.FillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	rd.FillRect(dst, image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), c)
	rd.FillRect(dst, image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), c)
}

// FillRectInset draws a bevelled box: face fill with light top and left edges
// and dark bottom and right edges, swapped when pressed.
func (rd *Renderer) FillRectInset(dst *surface.Surface, r image.Rectangle, light, face, dark uint8, pressed bool) {
	if r.Dx() < 2 || r.Dy() < 2 {
		rd.FillRect(dst, r, Solid(face))
		return
	}
	if pressed {
		light, dark = dark, light
	}

	rd.FillRect(dst, r.Inset(1), Solid(face))
	rd.FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X-1, r.Min.Y+1), Solid(light))
	rd.FillRect(dst, image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), Solid(light))
	rd.FillRect(dst, image.Rect(r.Min.X+1, r.Max.Y-1, r.Max.X, r.Max.Y), Solid(dark))
	rd.FillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y-1), Solid(dark))
}
