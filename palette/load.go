package palette

import (
	"fmt"
	"image/color"
	stdpalette "image/color/palette"
	"math"
	"os"
	"strings"

	"rctdraw/okcolor"
)

// Builtin names accepted by LoadPalette.
var Builtin = []string{"ramps", "gray256", "vga16", "websafe", "plan9"}

// LoadPalette returns a builtin palette by name, or the first palette of a
// RIFF PAL file otherwise.
func LoadPalette(name string) (color.Palette, error) {
	switch strings.ToLower(name) {
	case "", "ramps":
		return Ramps(), nil
	case "gray256":
		pal := make(color.Palette, 256)
		for i := range pal {
			pal[i] = color.Gray{Y: uint8(i)}
		}
		return pal, nil
	case "vga16":
		return vga16(), nil
	case "websafe":
		return withTransparent(stdpalette.WebSafe), nil
	case "plan9":
		return withTransparent(stdpalette.Plan9), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", name, err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette %q: %w", name, err)
	} else if len(pals) == 0 || len(pals[0]) == 0 {
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	} else if len(pals[0]) > 256 {
		return nil, fmt.Errorf("palette %q has %d colors, at most 256 are supported", name, len(pals[0]))
	}
	return pals[0], nil
}

// Ramps is the default 256 color palette: index 0 is the transparent black
// sentinel followed by 17 ramps of 15 shades, one gray and 16 hues.
func Ramps() color.Palette {
	const (
		ramps  = 17
		shades = 15
	)

	pal := make(color.Palette, 1, 256)
	pal[0] = color.RGBA{A: 0xFF}
	for r := range ramps {
		chroma, hue := 0.0, 0.0
		if r > 0 {
			chroma = 0.13
			hue = float64(r-1) * 2 * math.Pi / (ramps - 1)
		}
		for s := range shades {
			lc := okcolor.LCh{
				L:     0.12 + 0.85*float64(s)/(shades-1),
				C:     chroma * math.Sin(math.Pi*(0.15+0.7*float64(s)/(shades-1))),
				H:     hue,
				Alpha: 0xFFFF,
			}
			pal = append(pal, color.RGBAModel.Convert(lc))
		}
	}
	return pal
}

// RampIndex returns the palette index of shade s of ramp r in Ramps.
func RampIndex(r, s int) uint8 {
	return uint8(1 + r*15 + s)
}

func vga16() color.Palette {
	pal := make(color.Palette, 16)
	for i := range pal {
		hi := uint8(0xAA)
		if i&8 != 0 {
			hi = 0xFF
		}
		var lo uint8
		if i&8 != 0 {
			lo = 0x55
		}
		c := color.RGBA{R: lo, G: lo, B: lo, A: 0xFF}
		if i&4 != 0 {
			c.R = hi
		}
		if i&2 != 0 {
			c.G = hi
		}
		if i&1 != 0 {
			c.B = hi
		}
		if i == 6 {
			c.G = 0x55
		}
		pal[i] = c
	}
	return pal
}

// withTransparent prepends the transparent black sentinel, dropping the last
// color if the palette is full.
func withTransparent(p color.Palette) color.Palette {
	n := min(len(p), 255)
	pal := make(color.Palette, 0, n+1)
	pal = append(pal, color.RGBA{A: 0xFF})
	return append(pal, p[:n]...)
}
