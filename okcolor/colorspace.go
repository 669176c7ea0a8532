// based on:
// https://bottosson.github.io/posts/oklab/

package okcolor

import (
	"image/color"
	"math"
)

type Lab struct {
	L     float64 // perceived lightness
	A     float64 // how green/red the color is
	B     float64 // how blue/yellow the color is
	Alpha uint16  // alpha
}

var LabModel = color.ModelFunc(labConvert)

func labConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case Lab:
		return c
	case LCh:
		return lc.Lab()
	}

	return linearRGBAConvert(c).(LinearRGBA).Lab()
}

func (lc Lab) RGBA() (uint32, uint32, uint32, uint32) {
	return lc.LinearRGBA().RGBA()
}

// LinearRGBA converts back to linear sRGB. Out of gamut results are clamped
// per channel when converted further to sRGB.
func (lc Lab) LinearRGBA() LinearRGBA {
	var l, m, s float64
	l = lc.L + 0.3963377774*lc.A + 0.2158037573*lc.B
	l = l * l * l
	m = lc.L - 0.1055613458*lc.A - 0.0638541728*lc.B
	m = m * m * m
	s = lc.L - 0.0894841775*lc.A - 1.2914855480*lc.B
	s = s * s * s

	return LinearRGBA{
		R: +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		G: -1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		B: -0.0041960863*l - 0.7034186147*m + 1.7076147010*s,
		A: lc.Alpha,
	}
}

// Distance returns the squared euclidean distance between two colors,
// alpha included.
func (lc Lab) Distance(o Lab) float64 {
	dL := lc.L - o.L
	da := lc.A - o.A
	db := lc.B - o.B
	dA := (float64(lc.Alpha) - float64(o.Alpha)) / 0xFFFF
	return dL*dL + da*da + db*db + dA*dA
}

// Scale multiplies the lightness, leaving hue and chroma untouched.
func (lc Lab) Scale(f float64) Lab {
	lc.L = clamp(lc.L*f, 0, 1)
	return lc
}

func (lc Lab) LCh() LCh {
	return LCh{
		L:     lc.L,
		C:     math.Sqrt((lc.A * lc.A) + (lc.B * lc.B)),
		H:     math.Atan2(lc.B, lc.A),
		Alpha: lc.Alpha,
	}
}

type LCh struct {
	L     float64 // perceived lightness
	C     float64 // chroma
	H     float64 // hue
	Alpha uint16  // alpha
}

var LChModel = color.ModelFunc(lchConvert)

func lchConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case LCh:
		return c
	case Lab:
		return lc.LCh()
	}

	return labConvert(c).(Lab).LCh()
}

func (lc LCh) RGBA() (uint32, uint32, uint32, uint32) {
	return lc.Lab().RGBA()
}

// Rotate turns the hue by rad radians.
func (lc LCh) Rotate(rad float64) LCh {
	lc.H = math.Mod(lc.H+rad, 2*math.Pi)
	return lc
}

func (lc LCh) Lab() Lab {
	return Lab{
		L:     lc.L,
		A:     lc.C * math.Cos(lc.H),
		B:     lc.C * math.Sin(lc.H),
		Alpha: lc.Alpha,
	}
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
