// Package color implements the perceptual color engine: sRGB device colors,
// hex parsing, linear-light conversion, Oklab/OKLCH transforms and the WCAG
// contrast math used by the token validator and the toolkit handlers.
package color

import (
	"fmt"
	"math"
	"strings"
)

// Color is an immutable 8-bit sRGB color with an alpha in [0, 1].
// The R, G, B fields are the source of truth; every other representation
// is derived from them.
type Color struct {
	R, G, B uint8
	A       float64
}

// New returns an opaque Color.
func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// NewAlpha returns a Color with an explicit alpha, clamped to [0, 1].
func NewAlpha(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: clamp01(a)}
}

// ParseHex parses #RGB, #RRGGBB and #RRGGBBAA strings into a Color.
// The 3-digit form expands each nibble by duplication (#abc -> #aabbcc).
func ParseHex(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("invalid hex color %q: must start with #", s)
	}
	hex := s[1:]

	switch len(hex) {
	case 3:
		var n [3]uint8
		for i := 0; i < 3; i++ {
			v, err := nibble(hex[i])
			if err != nil {
				return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
			}
			n[i] = v<<4 | v
		}
		return New(n[0], n[1], n[2]), nil
	case 6, 8:
		var ch [4]uint8
		ch[3] = 0xFF
		for i := 0; i < len(hex)/2; i++ {
			hi, err := nibble(hex[2*i])
			if err != nil {
				return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
			}
			lo, err := nibble(hex[2*i+1])
			if err != nil {
				return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
			}
			ch[i] = hi<<4 | lo
		}
		return NewAlpha(ch[0], ch[1], ch[2], float64(ch[3])/255.0), nil
	}
	return Color{}, fmt.Errorf("invalid hex color %q: must be 3, 6 or 8 hex digits", s)
}

func nibble(b byte) (uint8, error) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', nil
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, nil
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, nil
	}
	return 0, fmt.Errorf("bad hex digit %q", string(b))
}

// Hex returns the color as #rrggbb, or #rrggbbaa when alpha < 1.0.
// The alpha suffix is round(alpha*255).
func (c Color) Hex() string {
	if c.A < 1.0 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, uint8(math.Round(c.A*255)))
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalJSON encodes the color as its hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Hex() + `"`), nil
}

// UnmarshalJSON decodes a hex string into the color.
func (c *Color) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid color JSON: %s", s)
	}
	parsed, err := ParseHex(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// LinearRGB returns the gamma-decoded channels in [0, 1].
func (c Color) LinearRGB() (r, g, b float64) {
	return srgbDecode(float64(c.R) / 255.0),
		srgbDecode(float64(c.G) / 255.0),
		srgbDecode(float64(c.B) / 255.0)
}

// Luminance returns the WCAG relative luminance of the color.
func (c Color) Luminance() float64 {
	r, g, b := c.LinearRGB()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func srgbDecode(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func srgbEncode(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// clampChannel maps a linear-light channel back to a device byte,
// rounding half up and clamping to [0, 255].
func clampChannel(v float64) uint8 {
	scaled := math.Round(srgbEncode(v) * 255)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
