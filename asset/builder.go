package asset

import (
	"fmt"
	"image"
)

// Builder collects sprites into a new Table. Ids are assigned in insertion
// order.
type Builder struct {
	sprites []Sprite
}

func (b *Builder) Add(s Sprite) uint32 {
	b.sprites = append(b.sprites, s)
	return uint32(len(b.sprites) - 1)
}

// AddRaw adds a bitmap sprite. pix must hold width*height indices.
func (b *Builder) AddRaw(pix []uint8, width, height, xOffset, yOffset int) (uint32, error) {
	if width < 0 || height < 0 || len(pix) < width*height {
		return 0, fmt.Errorf("%w: %d bytes for %dx%d", ErrTruncated, len(pix), width, height)
	}

	return b.Add(Sprite{
		Width:   width,
		Height:  height,
		XOffset: xOffset,
		YOffset: yOffset,
		Flags:   FlagBitmap,
		Pixels:  append([]uint8(nil), pix[:width*height]...),
	}), nil
}

// AddRLE run-length encodes pix and adds it as a sprite.
func (b *Builder) AddRLE(pix []uint8, width, height, xOffset, yOffset int) (uint32, error) {
	data, err := EncodeRLE(pix, width, height)
	if err != nil {
		return 0, err
	}

	return b.Add(Sprite{
		Width:   width,
		Height:  height,
		XOffset: xOffset,
		YOffset: yOffset,
		Flags:   FlagRLE,
		Pixels:  data,
	}), nil
}

// AddPaletted adds img with the given encoding. The image's bounds origin
// becomes the sprite's drawing offset.
func (b *Builder) AddPaletted(img *image.Paletted, enc Encoding) (uint32, error) {
	r := img.Bounds()
	pix := make([]uint8, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		start := img.PixOffset(r.Min.X, y)
		pix = append(pix, img.Pix[start:start+r.Dx()]...)
	}

	if enc == RLE {
		return b.AddRLE(pix, r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	}
	return b.AddRaw(pix, r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}

// LinkZoomed marks half as the variant of full drawn on surfaces zoomed out
// by one level. half must have been added before full.
func (b *Builder) LinkZoomed(full, half uint32) error {
	if half >= full || int(full) >= len(b.sprites) || full-half > 0xFFFF {
		return fmt.Errorf("%w: zoomed variant %d of sprite %d", ErrBadDescriptor, half, full)
	}

	s := &b.sprites[full]
	s.Flags |= FlagHasZoomed
	s.ZoomedOffset = uint16(full - half)
	return nil
}

func (b *Builder) Len() int {
	return len(b.sprites)
}

func (b *Builder) Table() *Table {
	return NewTable(append([]Sprite(nil), b.sprites...))
}
