package pack

import (
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/draw"
)

// opaque is the alpha from which a source pixel is kept in the sprite.
const opaque = 0x8000

// quantize maps img onto pal. Index 0 is reserved for transparent pixels, so
// opaque pixels are matched against pal[1:] only. The returned image keeps the
// bounds origin given by origin.
func quantize(logger *slog.Logger, img image.Image, pal color.Palette, dither bool, origin image.Point) (*image.Paletted, bool) {
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	opaquePal := pal[1:]
	dest := image.NewPaletted(dr, opaquePal)

	logger.Debug("applying palette", "colors", len(pal), "dither", dither)
	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}

	transparent := false
	for y := range dr.Dy() {
		row := dest.Pix[y*dest.Stride : y*dest.Stride+dr.Dx()]
		for x := range row {
			if _, _, _, a := img.At(sr.Min.X+x, sr.Min.Y+y).RGBA(); a < opaque {
				row[x] = 0
				transparent = true
				continue
			}
			row[x]++
		}
	}

	dest.Palette = pal
	dest.Rect = dr.Add(origin)
	return dest, transparent
}

// halve scales img to half its size for the zoomed out variant.
func halve(img image.Image) image.Image {
	sr := img.Bounds()
	dr := image.Rect(0, 0, max(sr.Dx()/2, 1), max(sr.Dy()/2, 1))
	dest := image.NewNRGBA(dr)
	draw.CatmullRom.Scale(dest, dr, img, sr, draw.Src, nil)
	return dest
}

// anchorAt returns the sprite offset placing the anchor of a w x h image at
// the drawing position.
func anchorAt(anchor string, w, h int) image.Point {
	switch anchor {
	case "center":
		return image.Pt(-w/2, -h/2)
	case "bottom":
		return image.Pt(-w/2, -h)
	}
	return image.Point{}
}
