package color

import (
	"math"
	"testing"
)

func TestContrastRatio_BlackWhite(t *testing.T) {
	ratio := ContrastRatio(New(255, 255, 255), New(0, 0, 0))
	if math.Abs(ratio-21.0) > 0.01 {
		t.Errorf("white/black ratio = %v, want ~21.0", ratio)
	}
}

func TestContrastRatio_Symmetric(t *testing.T) {
	a, b := New(198, 40, 40), New(250, 250, 250)
	if ContrastRatio(a, b) != ContrastRatio(b, a) {
		t.Errorf("contrast ratio is not symmetric under argument swap")
	}
}

func TestContrastRatio_SelfIsOne(t *testing.T) {
	c := New(123, 45, 67)
	if ratio := ContrastRatio(c, c); math.Abs(ratio-1.0) > 1e-9 {
		t.Errorf("self ratio = %v, want 1.0", ratio)
	}
}

func TestMeetsAA(t *testing.T) {
	white, black := New(255, 255, 255), New(0, 0, 0)
	if !MeetsAA(black, white, false) {
		t.Errorf("black on white should meet AA")
	}
	// #949494 on white is ~3.0:1: fails normal text, passes large text.
	gray := New(148, 148, 148)
	if MeetsAA(gray, white, false) {
		t.Errorf("#949494 on white should fail AA for normal text")
	}
	if !MeetsAA(gray, white, true) {
		t.Errorf("#949494 on white should meet AA for large text")
	}
}

func TestMeetsAAA(t *testing.T) {
	white := New(255, 255, 255)
	// #767676 is ~4.54:1 on white: AA yes, AAA no.
	gray := New(118, 118, 118)
	if !MeetsAA(gray, white, false) {
		t.Errorf("#767676 on white should meet AA")
	}
	if MeetsAAA(gray, white, false) {
		t.Errorf("#767676 on white should not meet AAA")
	}
	if !MeetsAAA(gray, white, true) {
		t.Errorf("#767676 on white should meet AAA for large text")
	}
}

func TestEnsureContrast_CompliantUnchanged(t *testing.T) {
	fg, bg := New(0, 0, 0), New(255, 255, 255)
	if got := EnsureContrast(fg, bg, 4.5); got != fg {
		t.Errorf("compliant color should be returned unchanged, got %s", got.Hex())
	}
}

func TestEnsureContrast_Converges(t *testing.T) {
	// A washed-out blue on white: well below 4.5:1, needs darkening.
	fg := New(150, 180, 220)
	bg := New(255, 255, 255)

	fixed := EnsureContrast(fg, bg, 4.5)
	if ratio := ContrastRatio(fixed, bg); ratio < 4.5 {
		t.Fatalf("repaired contrast = %v, want >= 4.5", ratio)
	}

	shift := hueDistance(fg.OKLCH().H, fixed.OKLCH().H)
	if shift > 15 {
		t.Errorf("hue shifted by %v degrees, want <= 15", shift)
	}
}

func TestEnsureContrast_LightensOnDarkBackground(t *testing.T) {
	fg := New(60, 60, 60)
	bg := New(0, 0, 0)

	fixed := EnsureContrast(fg, bg, 4.5)
	if ratio := ContrastRatio(fixed, bg); ratio < 4.5 {
		t.Fatalf("repaired contrast = %v, want >= 4.5", ratio)
	}
	if fixed.Luminance() <= fg.Luminance() {
		t.Errorf("expected a lighter color on a dark background")
	}
}

func TestEnsureContrast_FallbackOnExhaustion(t *testing.T) {
	// A ratio above 21 is unreachable, so the loop must exhaust and
	// fall back to the extreme suited to the background.
	got := EnsureContrast(New(128, 128, 128), New(255, 255, 255), 30)
	if got != New(0, 0, 0) {
		t.Errorf("expected pure black fallback on light background, got %s", got.Hex())
	}

	got = EnsureContrast(New(128, 128, 128), New(0, 0, 0), 30)
	if got != New(255, 255, 255) {
		t.Errorf("expected pure white fallback on dark background, got %s", got.Hex())
	}
}

func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}
