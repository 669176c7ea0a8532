package palette

import (
	"image/color"
	"math"

	"rctdraw/okcolor"
)

// Lab is a palette converted to Oklab for perceptual nearest-color search.
// Index 0 is the transparent sentinel of indexed sprites and is never
// returned by the remap builders for a non-zero input.
type Lab []okcolor.Lab

func NewLab(p color.Palette) Lab {
	pal := make(Lab, 0, len(p))
	for _, col := range p {
		pal = append(pal, okcolor.LabModel.Convert(col).(okcolor.Lab))
	}
	return pal
}

func (p Lab) Convert(lc okcolor.Lab) okcolor.Lab {
	if len(p) == 0 {
		return okcolor.Lab{}
	}
	return p[p.Index(lc)]
}

func (p Lab) Index(lc okcolor.Lab) int {
	return p.IndexFrom(lc, 0)
}

// IndexFrom returns the index of the closest color among p[first:].
func (p Lab) IndexFrom(lc okcolor.Lab, first int) int {
	ret, bestSum := first, math.MaxFloat64
	for i := first; i < len(p); i++ {
		sum := lc.Distance(p[i])
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

func (p Lab) Palette() color.Palette {
	pal := make(color.Palette, len(p))
	for i, lc := range p {
		pal[i] = color.RGBAModel.Convert(lc)
	}
	return pal
}

// ShadeRemap maps every color to the closest match of itself with its
// lightness scaled by f.
func (p Lab) ShadeRemap(f float64) *Remap {
	return p.remap(func(lc okcolor.Lab) okcolor.Lab {
		return lc.Scale(f)
	})
}

// HueRemap rotates the hue of the colors in [from, to) by rad radians and
// leaves the rest of the palette untouched.
func (p Lab) HueRemap(rad float64, from, to int) *Remap {
	r := IdentityRemap()
	for i := max(from, 1); i < min(to, len(p)); i++ {
		r[i] = uint8(p.IndexFrom(p[i].LCh().Rotate(rad).Lab(), 1))
	}
	return r
}

// TintRemap maps every color to the closest match of itself seen through a
// layer of tint with opacity t.
func (p Lab) TintRemap(tint color.Color, t float64) *Remap {
	lt := okcolor.LinearRGBAModel.Convert(tint).(okcolor.LinearRGBA)
	return p.remap(func(lc okcolor.Lab) okcolor.Lab {
		return lc.LinearRGBA().Mix(lt, t).Lab()
	})
}

// BlendTable builds the table indexed by (src<<8)|dst holding the closest
// match of src laid over dst with opacity t. A zero src leaves dst as is.
func (p Lab) BlendTable(t float64) *Blend {
	b := new(Blend)
	lin := make([]okcolor.LinearRGBA, len(p))
	for i, lc := range p {
		lin[i] = lc.LinearRGBA()
	}

	for d := range 256 {
		b[d] = uint8(d)
	}
	for s := 1; s < 256; s++ {
		for d := range 256 {
			if s >= len(p) || d >= len(p) {
				b[s<<8|d] = uint8(s)
				continue
			}
			b[s<<8|d] = uint8(p.IndexFrom(lin[d].Mix(lin[s], t).Lab(), 1))
		}
	}
	return b
}

func (p Lab) remap(fn func(okcolor.Lab) okcolor.Lab) *Remap {
	r := IdentityRemap()
	for i := 1; i < len(p) && i < 256; i++ {
		r[i] = uint8(p.IndexFrom(fn(p[i]), 1))
	}
	return r
}
