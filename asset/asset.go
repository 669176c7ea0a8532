// Package asset holds the immutable sprite table and its on-disk blob format.
package asset

import "errors"

var (
	ErrTruncated     = errors.New("truncated sprite data")
	ErrBadDescriptor = errors.New("invalid sprite descriptor")
	ErrTooWide       = errors.New("sprite too wide for run-length encoding")
)

// Flags of a sprite descriptor.
const (
	FlagBitmap     uint16 = 1 << 0 // raw rows, copied as is
	FlagRLE        uint16 = 1 << 2 // run-length encoded rows
	FlagHasZoomed  uint16 = 1 << 4 // a half size variant sits ZoomedOffset ids before
	FlagNoZoomDraw uint16 = 1 << 5 // skipped on zoomed surfaces
)

type Encoding uint8

const (
	Raw Encoding = iota
	RLE
)

func (e Encoding) String() string {
	if e == RLE {
		return "rle"
	}
	return "raw"
}

// Sprite is one entry of the table. Pixels is shared and read-only.
type Sprite struct {
	Width, Height    int
	XOffset, YOffset int
	Flags            uint16
	ZoomedOffset     uint16
	Pixels           []uint8
}

func (s *Sprite) Encoding() Encoding {
	if s.Flags&FlagRLE != 0 {
		return RLE
	}
	return Raw
}

// Row returns the data of source row y: the raw pixels, or for RLE sprites
// the segment stream of that row.
func (s *Sprite) Row(y int) []uint8 {
	if y < 0 || y >= s.Height {
		return nil
	}
	if s.Encoding() == Raw {
		return s.Pixels[y*s.Width : (y+1)*s.Width]
	}
	off := int(s.Pixels[y*2]) | int(s.Pixels[y*2+1])<<8
	return s.Pixels[off:]
}

// Table is the sprite asset table, indexed by sprite id. It is loaded once
// and never mutated, so it can be shared freely.
type Table struct {
	sprites []Sprite
}

func NewTable(sprites []Sprite) *Table {
	return &Table{sprites: sprites}
}

// Sprite returns the sprite with the given id, or nil if there is none.
func (t *Table) Sprite(id uint32) *Sprite {
	if t == nil || int64(id) >= int64(len(t.sprites)) {
		return nil
	}
	return &t.sprites[id]
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.sprites)
}
