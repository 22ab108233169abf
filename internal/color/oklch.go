package color

import "math"

// OKLCH is a color in the perceptually uniform OKLCH space.
// Lightness is in [0, 1], Chroma >= 0 (practically <= ~0.4) and
// Hue is degrees in [0, 360).
type OKLCH struct {
	L float64
	C float64
	H float64
	A float64
}

// Matrices from the Oklab reference implementation (Björn Ottosson).
// Linear sRGB -> LMS cone response, and Oklab <-> non-linear LMS.
var (
	lmsFromLinear = [3][3]float64{
		{0.4122214708, 0.5363325363, 0.0514459929},
		{0.2119034982, 0.6806995451, 0.1073969566},
		{0.0883024619, 0.2817188376, 0.6299787005},
	}
	oklabFromLMS = [3][3]float64{
		{0.2104542553, 0.7936177850, -0.0040720468},
		{1.9779984951, -2.4285922050, 0.4505937099},
		{0.0259040371, 0.7827717662, -0.8086757660},
	}
	lmsFromOklab = [3][3]float64{
		{1.0, 0.3963377774, 0.2158037573},
		{1.0, -0.1055613458, -0.0638541728},
		{1.0, -0.0894841775, -1.2914855480},
	}
	linearFromLMS = [3][3]float64{
		{4.0767416621, -3.3077115913, 0.2309699292},
		{-1.2684380046, 2.6097574011, -0.3413193965},
		{-0.0041960863, -0.7034186147, 1.7076147010},
	}
)

func mul3(m [3][3]float64, a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

// OKLCH converts the color to OKLCH. Alpha is carried through unchanged.
func (c Color) OKLCH() OKLCH {
	lr, lg, lb := c.LinearRGB()

	l, m, s := mul3(lmsFromLinear, lr, lg, lb)
	// Signed cube root keeps out-of-gamut intermediates stable.
	l, m, s = math.Cbrt(l), math.Cbrt(m), math.Cbrt(s)

	lab, a, b := mul3(oklabFromLMS, l, m, s)

	chroma := math.Sqrt(a*a + b*b)
	hue := math.Atan2(b, a) * 180 / math.Pi
	hue = math.Mod(hue+360, 360)

	return OKLCH{L: lab, C: chroma, H: hue, A: c.A}
}

// RGB converts back to an 8-bit sRGB color, clamping each channel to
// the device gamut. Inverse of Color.OKLCH within one integer step
// per channel.
func (o OKLCH) RGB() Color {
	hr := o.H * math.Pi / 180
	a := o.C * math.Cos(hr)
	b := o.C * math.Sin(hr)

	l, m, s := mul3(lmsFromOklab, o.L, a, b)
	l, m, s = l*l*l, m*m*m, s*s*s

	lr, lg, lb := mul3(linearFromLMS, l, m, s)

	return Color{
		R: clampChannel(lr),
		G: clampChannel(lg),
		B: clampChannel(lb),
		A: clamp01(o.A),
	}
}

// WithLightness returns a copy with lightness clamped to [0, 1].
func (o OKLCH) WithLightness(l float64) OKLCH {
	o.L = clamp01(l)
	return o
}

// WithChroma returns a copy with chroma clamped to >= 0.
func (o OKLCH) WithChroma(c float64) OKLCH {
	o.C = math.Max(0, c)
	return o
}

// RotateHue returns a copy with the hue rotated by degrees, wrapped
// into [0, 360). Negative results wrap forward.
func (o OKLCH) RotateHue(degrees float64) OKLCH {
	h := math.Mod(o.H+degrees, 360)
	if h < 0 {
		h += 360
	}
	o.H = h
	return o
}
