package tokens

import (
	"fmt"

	"github.com/phlthy88/unified-theming/internal/color"
	"github.com/phlthy88/unified-theming/internal/model"
)

// Contrast floors used by the audit. Primary content must reach AA;
// everything else is held to the large-text / UI-component floor.
const (
	primaryContentFloor   = 4.5
	primaryContentComfort = 7.0
	secondaryContentFloor = 3.0
	accentFloor           = 3.0
	inverseContentFloor   = 4.5
	errorAccentFloor      = 3.0
)

// Validate audits a schema for contrast and variant consistency.
// It is total: malformed colors are prevented structurally by the Color
// type, so the audit never fails, it only reports. Valid is true exactly
// when no error-level message was produced.
func Validate(s *Schema) *model.ValidationResult {
	res := model.NewValidationResult()

	surface := s.Surfaces.Primary

	ratio := color.ContrastRatio(s.Content.Primary, surface)
	switch {
	case ratio < primaryContentFloor:
		res.AddError(fmt.Sprintf(
			"primary content on primary surface: contrast %.2f:1 is below the %.1f:1 AA minimum", ratio, primaryContentFloor))
	case ratio < primaryContentComfort:
		res.AddWarning(fmt.Sprintf(
			"primary content on primary surface: contrast %.2f:1 meets AA but not the %.1f:1 AAA target", ratio, primaryContentComfort))
	}

	if ratio := color.ContrastRatio(s.Content.Secondary, surface); ratio < secondaryContentFloor {
		res.AddError(fmt.Sprintf(
			"secondary content on primary surface: contrast %.2f:1 is below %.1f:1", ratio, secondaryContentFloor))
	}

	if ratio := color.ContrastRatio(s.Accents.Primary, surface); ratio < accentFloor {
		res.AddWarning(fmt.Sprintf(
			"primary accent on primary surface: contrast %.2f:1 is below %.1f:1", ratio, accentFloor))
	}

	if ratio := color.ContrastRatio(s.Content.Inverse, s.Surfaces.Inverse); ratio < inverseContentFloor {
		res.AddWarning(fmt.Sprintf(
			"inverse content on inverse surface: contrast %.2f:1 is below %.1f:1", ratio, inverseContentFloor))
	}

	if ratio := color.ContrastRatio(s.Accents.Error, surface); ratio < errorAccentFloor {
		res.AddWarning(fmt.Sprintf(
			"error accent on primary surface: contrast %.2f:1 is below %.1f:1", ratio, errorAccentFloor))
	}

	if detected := DetectVariant(surface); detected != s.Variant {
		res.AddWarning(fmt.Sprintf(
			"variant %q does not match the perceived lightness of the primary surface (%s)", s.Variant, detected))
	}

	return res
}
