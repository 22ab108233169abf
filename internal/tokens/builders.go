package tokens

import (
	"github.com/phlthy88/unified-theming/internal/color"
	"github.com/phlthy88/unified-theming/internal/model"
)

// Option customizes a default schema builder.
type Option func(*options)

type options struct {
	name   string
	accent *color.Color
}

// WithName overrides the schema name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithAccent overrides the primary accent color.
func WithAccent(c color.Color) Option {
	return func(o *options) { o.accent = &c }
}

// Lightness offsets applied to the primary surface to derive the
// secondary and tertiary surfaces. Light themes step darker, dark
// themes step lighter.
const (
	surfaceStep = 0.03
)

func mustHex(s string) color.Color {
	c, err := color.ParseHex(s)
	if err != nil {
		panic("tokens: bad builtin color " + s + ": " + err.Error())
	}
	return c
}

// Light returns the reference light schema. The secondary and tertiary
// surfaces are derived from the primary surface by OKLCH lightness
// offsets rather than being independently specified.
func Light(opts ...Option) *Schema {
	o := options{name: "default-light"}
	for _, apply := range opts {
		apply(&o)
	}

	accent := mustHex("#1565c0")
	if o.accent != nil {
		accent = *o.accent
	}

	primary := mustHex("#fafafa")
	base := primary.OKLCH()
	focus := accent

	return &Schema{
		Name:    o.name,
		Variant: model.VariantLight,
		Surfaces: Surfaces{
			Primary:   primary,
			Secondary: base.WithLightness(base.L - surfaceStep).RGB(),
			Tertiary:  base.WithLightness(base.L - 2*surfaceStep).RGB(),
			Elevated:  mustHex("#ffffff"),
			Inverse:   mustHex("#2b2b2b"),
		},
		Content: Content{
			Primary:     mustHex("#1a1a1a"),
			Secondary:   mustHex("#4a4a4a"),
			Tertiary:    mustHex("#6e6e6e"),
			Inverse:     mustHex("#f5f5f5"),
			Link:        accent,
			LinkVisited: mustHex("#6a1b9a"),
		},
		Accents: Accents{
			Primary:          accent,
			PrimaryContainer: container(accent, 0.88),
			Secondary:        mustHex("#00897b"),
			Success:          mustHex("#2e7d32"),
			Warning:          mustHex("#e65100"),
			Error:            mustHex("#c62828"),
		},
		States: States{
			HoverOverlay:    0.08,
			PressedOverlay:  0.12,
			FocusRing:       &focus,
			DisabledOpacity: 0.38,
		},
		Borders: Borders{
			Subtle:  mustHex("#e0e0e0"),
			Default: mustHex("#bdbdbd"),
			Strong:  mustHex("#757575"),
		},
	}
}

// Dark returns the reference dark schema.
func Dark(opts ...Option) *Schema {
	o := options{name: "default-dark"}
	for _, apply := range opts {
		apply(&o)
	}

	accent := mustHex("#64b5f6")
	if o.accent != nil {
		accent = *o.accent
	}

	primary := mustHex("#121212")
	base := primary.OKLCH()
	focus := accent

	return &Schema{
		Name:    o.name,
		Variant: model.VariantDark,
		Surfaces: Surfaces{
			Primary:   primary,
			Secondary: base.WithLightness(base.L + surfaceStep).RGB(),
			Tertiary:  base.WithLightness(base.L + 2*surfaceStep).RGB(),
			Elevated:  mustHex("#1e1e1e"),
			Inverse:   mustHex("#f5f5f5"),
		},
		Content: Content{
			Primary:     mustHex("#eeeeee"),
			Secondary:   mustHex("#b0b0b0"),
			Tertiary:    mustHex("#8a8a8a"),
			Inverse:     mustHex("#1a1a1a"),
			Link:        accent,
			LinkVisited: mustHex("#ce93d8"),
		},
		Accents: Accents{
			Primary:          accent,
			PrimaryContainer: container(accent, 0.32),
			Secondary:        mustHex("#4db6ac"),
			Success:          mustHex("#81c784"),
			Warning:          mustHex("#ffb74d"),
			Error:            mustHex("#ef9a9a"),
		},
		States: States{
			HoverOverlay:    0.08,
			PressedOverlay:  0.12,
			FocusRing:       &focus,
			DisabledOpacity: 0.38,
		},
		Borders: Borders{
			Subtle:  mustHex("#2c2c2c"),
			Default: mustHex("#3d3d3d"),
			Strong:  mustHex("#5c5c5c"),
		},
	}
}

// container derives a tonal container from the accent: same hue, muted
// chroma, pinned to the lightness the variant needs.
func container(accent color.Color, lightness float64) color.Color {
	o := accent.OKLCH()
	return o.WithChroma(o.C * 0.4).WithLightness(lightness).RGB()
}
