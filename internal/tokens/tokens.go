// Package tokens defines the universal color-token schema shared by every
// toolkit handler, the default light/dark builders and the accessibility
// audit that checks a schema against WCAG contrast requirements.
package tokens

import (
	"github.com/phlthy88/unified-theming/internal/color"
	"github.com/phlthy88/unified-theming/internal/model"
)

// Surfaces are the background layers of the UI.
type Surfaces struct {
	Primary   color.Color `json:"primary"`
	Secondary color.Color `json:"secondary"`
	Tertiary  color.Color `json:"tertiary"`
	Elevated  color.Color `json:"elevated"`
	Inverse   color.Color `json:"inverse"`
}

// Content are the foreground colors drawn on surfaces.
type Content struct {
	Primary     color.Color `json:"primary"`
	Secondary   color.Color `json:"secondary"`
	Tertiary    color.Color `json:"tertiary"`
	Inverse     color.Color `json:"inverse"`
	Link        color.Color `json:"link"`
	LinkVisited color.Color `json:"link_visited"`
}

// Accents are the brand and semantic signal colors.
type Accents struct {
	Primary          color.Color `json:"primary"`
	PrimaryContainer color.Color `json:"primary_container"`
	Secondary        color.Color `json:"secondary"`
	Success          color.Color `json:"success"`
	Warning          color.Color `json:"warning"`
	Error            color.Color `json:"error"`
}

// States hold interaction-state parameters. Overlay and opacity values
// are fractions in [0, 1].
type States struct {
	HoverOverlay    float64      `json:"hover_overlay"`
	PressedOverlay  float64      `json:"pressed_overlay"`
	FocusRing       *color.Color `json:"focus_ring,omitempty"`
	DisabledOpacity float64      `json:"disabled_opacity"`
}

// Borders are the separator and outline colors.
type Borders struct {
	Subtle  color.Color `json:"subtle"`
	Default color.Color `json:"default"`
	Strong  color.Color `json:"strong"`
}

// Schema is a named, variant-tagged bundle of the five token groups.
// Every color field is required; a valid instance has no missing members.
type Schema struct {
	Name     string        `json:"name"`
	Variant  model.Variant `json:"variant"`
	Surfaces Surfaces      `json:"surfaces"`
	Content  Content       `json:"content"`
	Accents  Accents       `json:"accents"`
	States   States        `json:"states"`
	Borders  Borders       `json:"borders"`
}

// DetectVariant classifies a surface color by perceived lightness.
func DetectVariant(surface color.Color) model.Variant {
	if surface.Luminance() > 0.5 {
		return model.VariantLight
	}
	return model.VariantDark
}
