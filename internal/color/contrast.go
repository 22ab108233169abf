package color

import "math"

// WCAG 2.1 contrast thresholds.
const (
	AANormal  = 4.5
	AALarge   = 3.0
	AAANormal = 7.0
	AAALarge  = 4.5
)

const (
	repairStep          = 0.02
	repairMaxIterations = 50
)

// ContrastRatio returns the WCAG contrast ratio between two colors.
// Symmetric under argument swap; range [1.0, 21.0].
func ContrastRatio(a, b Color) float64 {
	la, lb := a.Luminance(), b.Luminance()
	lighter, darker := math.Max(la, lb), math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// MeetsAA reports WCAG AA compliance: ratio >= 4.5, or >= 3.0 for large text.
func MeetsAA(fg, bg Color, largeText bool) bool {
	min := AANormal
	if largeText {
		min = AALarge
	}
	return ContrastRatio(fg, bg) >= min
}

// MeetsAAA reports WCAG AAA compliance: ratio >= 7.0, or >= 4.5 for large text.
func MeetsAAA(fg, bg Color, largeText bool) bool {
	min := AAANormal
	if largeText {
		min = AAALarge
	}
	return ContrastRatio(fg, bg) >= min
}

// EnsureContrast returns fg unchanged when it already reaches minRatio
// against bg. Otherwise it nudges fg's OKLCH lightness in fixed steps,
// lightening over dark backgrounds and darkening over light ones, until
// the ratio is met. Hue and chroma are held constant, so the repaired
// color stays within ~15 degrees of the original hue. If 50 steps are
// not enough the result falls back to pure white or pure black,
// whichever suits the background.
func EnsureContrast(fg, bg Color, minRatio float64) Color {
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}

	lighten := bg.Luminance() < 0.5
	cur := fg.OKLCH()

	for i := 0; i < repairMaxIterations; i++ {
		if lighten {
			cur = cur.WithLightness(cur.L + repairStep)
		} else {
			cur = cur.WithLightness(cur.L - repairStep)
		}
		candidate := cur.RGB()
		if ContrastRatio(candidate, bg) >= minRatio {
			return candidate
		}
	}

	if lighten {
		return New(255, 255, 255)
	}
	return New(0, 0, 0)
}
