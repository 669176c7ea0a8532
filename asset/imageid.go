package asset

import "fmt"

// ImageID packs a sprite id, a table selector and a mix mode:
//
//	bits  0-18  sprite id
//	bits 19-26  selector of the remap or blend table
//	bits 29-30  mix mode
type ImageID uint32

// Mode selects how sprite pixels combine with the destination.
type Mode uint8

const (
	// Plain copies source pixels.
	Plain Mode = iota
	// UsePalette writes remap[src] where the result is non-zero.
	UsePalette
	// MixBackground writes blend[src<<8|dst] for every covered pixel.
	MixBackground
	// UseAndMix uses the source as a mask and writes remap[dst].
	UseAndMix
)

const (
	spriteBits    = 19
	spriteMask    = 1<<spriteBits - 1
	selectorShift = 19
	selectorMask  = 0xFF
	modeShift     = 29
	modeMask      = 0x3

	// MaxSprites is the number of sprite ids an ImageID can address.
	MaxSprites = spriteMask + 1
)

func NewImageID(sprite uint32, mode Mode, selector uint8) ImageID {
	return ImageID(sprite&spriteMask |
		uint32(selector)&selectorMask<<selectorShift |
		uint32(mode)&modeMask<<modeShift)
}

func (id ImageID) Sprite() uint32 {
	return uint32(id) & spriteMask
}

func (id ImageID) Selector() int {
	return int(uint32(id) >> selectorShift & selectorMask)
}

func (id ImageID) Mode() Mode {
	return Mode(uint32(id) >> modeShift & modeMask)
}

// WithSprite returns id pointing at another sprite with the same mode and
// selector.
func (id ImageID) WithSprite(sprite uint32) ImageID {
	return ImageID(uint32(id)&^spriteMask | sprite&spriteMask)
}

func (m Mode) String() string {
	switch m {
	case Plain:
		return "plain"
	case UsePalette:
		return "palette"
	case MixBackground:
		return "mix"
	case UseAndMix:
		return "palette+mix"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

func (id ImageID) String() string {
	return fmt.Sprintf("%d/%s/%d", id.Sprite(), id.Mode(), id.Selector())
}
