// Package gfx draws rectangles, lines and sprites into indexed surfaces.
//
// Coordinates passed to drawing functions are in the destination surface's
// coordinate space; anything outside the surface is silently clipped.
package gfx

import (
	"rctdraw/asset"
	"rctdraw/palette"
)

// Renderer resolves sprites and lookup tables for drawing calls. It keeps
// scratch buffers between calls and must not be shared across goroutines.
type Renderer struct {
	Assets *asset.Table
	Maps   *palette.Maps

	scratch []uint8
	samples []uint8
}

func NewRenderer(assets *asset.Table, maps *palette.Maps) *Renderer {
	return &Renderer{
		Assets: assets,
		Maps:   maps,
	}
}

// Colour is a packed fill colour: the low byte holds a palette index (or a
// remap selector), the flag bits select the fill mode.
//
//	bit  24     crosshatch
//	bit  25     remap through table <low byte>
//	bit  26     stipple with pattern <bits 28-31>
type Colour uint32

const (
	colourMask            = 0xFF
	flagCrosshatch Colour = 1 << 24
	flagRemap      Colour = 1 << 25
	flagStipple    Colour = 1 << 26
	patternShift          = 28
)

func Solid(c uint8) Colour {
	return Colour(c)
}

// Crosshatch fills every other pixel in a checkerboard anchored on the
// rectangle's top-left corner.
func Crosshatch(c uint8) Colour {
	return Colour(c) | flagCrosshatch
}

// Remapped replaces every pixel by its entry in remap table selector.
func Remapped(selector uint8) Colour {
	return Colour(selector) | flagRemap
}

// Stippled fills the pixels set in one of the Stipples patterns.
func Stippled(c uint8, pattern int) Colour {
	return Colour(c) | flagStipple | Colour(pattern&0xF)<<patternShift
}

func (c Colour) Index() uint8 {
	return uint8(c & colourMask)
}

func (c Colour) pattern() int {
	return int(c >> patternShift & 0xF)
}

func ceilShift(v, shift int) int {
	return -((-v) >> shift)
}
