package okcolor

import (
	"image/color"
	"math"
)

type LinearRGBA struct {
	R float64
	G float64
	B float64
	A uint16
}

var LinearRGBAModel = color.ModelFunc(linearRGBAConvert)

func linearRGBAConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case LinearRGBA:
		return c
	case Lab:
		return lc.LinearRGBA()
	}

	return sRGBToLinearRGB(color.RGBA64Model.Convert(c).(color.RGBA64))
}

func (lc LinearRGBA) RGBA() (uint32, uint32, uint32, uint32) {
	return linearRGBToSRGB(lc).RGBA()
}

// Mix interpolates towards o by t in linear light, which is how two
// translucent layers combine physically.
func (lc LinearRGBA) Mix(o LinearRGBA, t float64) LinearRGBA {
	t = clamp(t, 0, 1)
	return LinearRGBA{
		R: lc.R + (o.R-lc.R)*t,
		G: lc.G + (o.G-lc.G)*t,
		B: lc.B + (o.B-lc.B)*t,
		A: uint16(float64(lc.A) + (float64(o.A)-float64(lc.A))*t),
	}
}

func (lc LinearRGBA) Lab() Lab {
	var l, m, s float64
	l = math.Cbrt(0.4122214708*lc.R + 0.5363325363*lc.G + 0.0514459929*lc.B)
	m = math.Cbrt(0.2119034982*lc.R + 0.6806995451*lc.G + 0.1073969566*lc.B)
	s = math.Cbrt(0.0883024619*lc.R + 0.2817188376*lc.G + 0.6299787005*lc.B)

	return Lab{
		L:     0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A:     1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B:     0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
		Alpha: lc.A,
	}
}

func linearRGBToSRGB(lc LinearRGBA) color.RGBA64 {
	return color.RGBA64{
		R: uint16(clamp(fromLinear(lc.R), 0, 1) * 65535),
		G: uint16(clamp(fromLinear(lc.G), 0, 1) * 65535),
		B: uint16(clamp(fromLinear(lc.B), 0, 1) * 65535),
		A: lc.A,
	}
}

func sRGBToLinearRGB(c color.RGBA64) LinearRGBA {
	return LinearRGBA{
		R: toLinear(float64(c.R) / 65535),
		G: toLinear(float64(c.G) / 65535),
		B: toLinear(float64(c.B) / 65535),
		A: c.A,
	}
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	} else {
		return x / 12.92
	}
}

const pow float64 = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	} else {
		return x * 12.92
	}
}
