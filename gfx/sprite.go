package gfx

import (
	"rctdraw/asset"
	"rctdraw/surface"
)

// blitFunc combines one run of source pixels into the destination pixels
// below it. Both slices have the same length.
type blitFunc func(dst, src []uint8)

func copyAll(dst, src []uint8) {
	copy(dst, src)
}

func copyOpaque(dst, src []uint8) {
	for i, v := range src {
		if v != 0 {
			dst[i] = v
		}
	}
}

// combiner returns the blit for the mode encoded in id, or nil if the lookup
// table the mode needs is missing.
func (rd *Renderer) combiner(id asset.ImageID, rle bool) blitFunc {
	switch id.Mode() {
	case asset.UsePalette:
		table := rd.Maps.Remap(id.Selector())
		if table == nil {
			return nil
		}
		return func(dst, src []uint8) {
			for i, v := range src {
				if v == 0 {
					continue
				}
				if p := table[v]; p != 0 {
					dst[i] = p
				}
			}
		}
	case asset.MixBackground:
		blend := rd.Maps.Blend(id.Selector())
		if blend == nil {
			return nil
		}
		return func(dst, src []uint8) {
			for i, v := range src {
				if v != 0 {
					dst[i] = blend[int(v)<<8|int(dst[i])]
				}
			}
		}
	case asset.UseAndMix:
		table := rd.Maps.Remap(id.Selector())
		if table == nil {
			return nil
		}
		return func(dst, src []uint8) {
			for i, v := range src {
				if v != 0 {
					dst[i] = table[dst[i]]
				}
			}
		}
	}

	if rle {
		return copyOpaque
	}
	return copyAll
}

// DrawSprite draws sprite id with its origin at (x, y). Unknown sprites and
// modes whose table is missing draw nothing.
func (rd *Renderer) DrawSprite(dst *surface.Surface, id asset.ImageID, x, y int) {
	rd.drawSprite(dst, id, x, y, nil)
}

// DrawSpriteSolid fills the opaque pixels of sprite id with v.
func (rd *Renderer) DrawSpriteSolid(dst *surface.Surface, id asset.ImageID, x, y int, v uint8) {
	rd.drawSprite(dst, id, x, y, func(dst, src []uint8) {
		for i, s := range src {
			if s != 0 {
				dst[i] = v
			}
		}
	})
}

func (rd *Renderer) drawSprite(dst *surface.Surface, id asset.ImageID, x, y int, blit blitFunc) {
	if dst.Empty() {
		return
	}
	s := rd.Assets.Sprite(id.Sprite())
	if s == nil {
		return
	}

	if dst.Zoom > 0 {
		if s.Flags&asset.FlagHasZoomed != 0 && uint32(s.ZoomedOffset) <= id.Sprite() {
			half := id.WithSprite(id.Sprite() - uint32(s.ZoomedOffset))
			rd.drawSprite(dst.Zoomed(dst.Zoom-1, dst.X>>1, dst.Y>>1), half, x>>1, y>>1, blit)
			return
		}
		if s.Flags&asset.FlagNoZoomDraw != 0 {
			return
		}
	}

	rle := s.Encoding() == asset.RLE
	if blit == nil {
		if blit = rd.combiner(id, rle); blit == nil {
			return
		}
	}

	x += s.XOffset
	y += s.YOffset
	if dst.Zoom == 0 {
		blitUnzoomed(dst, s, x, y, rle, blit)
	} else {
		rd.blitZoomed(dst, s, x, y, rle, blit)
	}
}

func blitUnzoomed(dst *surface.Surface, s *asset.Sprite, x, y int, rle bool, blit blitFunc) {
	left, top := x-dst.X, y-dst.Y
	w, h := s.Width, s.Height

	var srcX, srcY int
	if left < 0 {
		srcX, w, left = -left, w+left, 0
	}
	if top < 0 {
		srcY, h, top = -top, h+top, 0
	}
	w = min(w, dst.Width-left)
	h = min(h, dst.Height-top)
	if w <= 0 || h <= 0 {
		return
	}

	for row := range h {
		out := dst.Row(top + row)[left : left+w]
		data := s.Row(srcY + row)
		if !rle {
			blit(out, data[srcX:srcX+w])
			continue
		}

		for off, last := 0, false; !last; {
			var run []uint8
			var gap int
			run, gap, off, last = asset.NextSegment(data, off)

			start := gap - srcX
			if start < 0 {
				run = run[min(-start, len(run)):]
				start = 0
			}
			if start+len(run) > w {
				run = run[:max(w-start, 0)]
			}
			if len(run) == 0 {
				continue
			}
			blit(out[start:start+len(run)], run)
		}
	}
}

// blitZoomed picks the nearest source pixel for every destination pixel the
// sprite covers.
func (rd *Renderer) blitZoomed(dst *surface.Surface, s *asset.Sprite, x, y int, rle bool, blit blitFunc) {
	z := dst.Zoom
	c0 := max(ceilShift(x-dst.X, z), 0)
	c1 := min(ceilShift(x+s.Width-dst.X, z), dst.Width)
	r0 := max(ceilShift(y-dst.Y, z), 0)
	r1 := min(ceilShift(y+s.Height-dst.Y, z), dst.Height)
	if c0 >= c1 || r0 >= r1 {
		return
	}

	samples := grow(&rd.samples, c1-c0)
	var expanded []uint8
	if rle {
		expanded = grow(&rd.scratch, s.Width)
	}

	for r := r0; r < r1; r++ {
		src := s.Row(dst.Y + r<<z - y)
		if rle {
			clear(expanded)
			expandRow(expanded, src)
			src = expanded
		}
		for i := range samples {
			samples[i] = src[dst.X+(c0+i)<<z-x]
		}
		blit(dst.Row(r)[c0:c1], samples)
	}
}

func expandRow(row, data []uint8) {
	for off, last := 0, false; !last; {
		var run []uint8
		var gap int
		run, gap, off, last = asset.NextSegment(data, off)
		copy(row[gap:], run)
	}
}

func grow(buf *[]uint8, n int) []uint8 {
	if cap(*buf) < n {
		*buf = make([]uint8, n)
	}
	return (*buf)[:n]
}
