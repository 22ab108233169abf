// Package handler defines the toolkit handler contract and its concrete
// implementations. A handler knows how to inspect and apply theme state
// for exactly one toolkit; the orchestrator is polymorphic over this
// interface and never depends on a concrete toolkit.
package handler

import (
	"github.com/phlthy88/unified-theming/internal/color"
	"github.com/phlthy88/unified-theming/internal/model"
)

// Handler is the capability set every toolkit collaborator implements.
type Handler interface {
	// Name returns the unique registry name of this handler.
	Name() string

	// Toolkit returns the toolkit this handler manages.
	Toolkit() model.Toolkit

	// IsAvailable reports whether the toolkit is present on this system.
	IsAvailable() bool

	// ValidateCompatibility checks a theme against the toolkit's
	// requirements. Error-level findings are advisory to the
	// orchestrator; they never block an apply.
	ValidateCompatibility(theme *model.Theme) *model.ValidationResult

	// Apply writes the theme into the toolkit's configuration and
	// returns the files it modified.
	Apply(theme *model.Theme) ([]string, error)
}

// Color variables every handler expects a theme to carry.
var requiredColorVars = []string{"background", "foreground", "accent"}

// validateColorVars performs the checks shared by all handlers: required
// variables present and parseable, and a readable foreground/background
// pairing.
func validateColorVars(theme *model.Theme, tk model.Toolkit) *model.ValidationResult {
	res := model.NewValidationResult()

	if !theme.SupportsToolkit(tk) {
		res.AddWarning("theme does not declare support for toolkit " + string(tk))
	}

	for _, name := range requiredColorVars {
		if _, ok := theme.Colors[name]; !ok {
			res.AddError("theme is missing required color " + name)
		}
	}
	if !res.Valid {
		return res
	}

	parsed := make(map[string]color.Color, len(requiredColorVars))
	for _, name := range requiredColorVars {
		c, err := color.ParseHex(theme.Colors[name])
		if err != nil {
			res.AddError("color " + name + " is not a valid hex color: " + theme.Colors[name])
			continue
		}
		parsed[name] = c
	}
	if !res.Valid {
		return res
	}

	if !color.MeetsAA(parsed["foreground"], parsed["background"], false) {
		res.AddWarning("foreground/background contrast is below WCAG AA")
	}
	return res
}
