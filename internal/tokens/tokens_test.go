package tokens

import (
	"math"
	"testing"

	"github.com/phlthy88/unified-theming/internal/color"
	"github.com/phlthy88/unified-theming/internal/model"
)

func TestLight_DefaultsValidate(t *testing.T) {
	res := Validate(Light())
	if !res.Valid {
		t.Fatalf("default light schema should be valid, errors: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("expected zero errors, got %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected zero warnings, got %v", res.Warnings)
	}
}

func TestDark_DefaultsValidate(t *testing.T) {
	res := Validate(Dark())
	if !res.Valid {
		t.Fatalf("default dark schema should be valid, errors: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("expected zero errors, got %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected zero warnings, got %v", res.Warnings)
	}
}

func TestBuilders_VariantAgreesWithSurface(t *testing.T) {
	if got := DetectVariant(Light().Surfaces.Primary); got != model.VariantLight {
		t.Errorf("light primary surface detected as %s", got)
	}
	if got := DetectVariant(Dark().Surfaces.Primary); got != model.VariantDark {
		t.Errorf("dark primary surface detected as %s", got)
	}
}

func TestBuilders_SurfaceDerivation(t *testing.T) {
	s := Light()
	base := s.Surfaces.Primary.OKLCH()
	secondary := s.Surfaces.Secondary.OKLCH()
	tertiary := s.Surfaces.Tertiary.OKLCH()

	// Light themes step darker by 0.03 per level. Quantization to 8-bit
	// channels costs a little precision.
	if d := base.L - secondary.L; math.Abs(d-0.03) > 0.01 {
		t.Errorf("secondary surface offset = %v, want ~0.03", d)
	}
	if d := base.L - tertiary.L; math.Abs(d-0.06) > 0.01 {
		t.Errorf("tertiary surface offset = %v, want ~0.06", d)
	}

	d := Dark()
	if d.Surfaces.Secondary.OKLCH().L <= d.Surfaces.Primary.OKLCH().L {
		t.Errorf("dark secondary surface should be lighter than primary")
	}
	if d.Surfaces.Tertiary.OKLCH().L <= d.Surfaces.Secondary.OKLCH().L {
		t.Errorf("dark tertiary surface should be lighter than secondary")
	}
}

func TestBuilders_Overrides(t *testing.T) {
	accent, err := color.ParseHex("#00695c")
	if err != nil {
		t.Fatalf("failed to parse accent: %v", err)
	}

	s := Light(WithName("teal"), WithAccent(accent))
	if s.Name != "teal" {
		t.Errorf("expected name teal, got %s", s.Name)
	}
	if s.Accents.Primary != accent {
		t.Errorf("accent override not applied")
	}
	if s.Content.Link != accent {
		t.Errorf("link color should follow the accent override")
	}
	if s.States.FocusRing == nil || *s.States.FocusRing != accent {
		t.Errorf("focus ring should follow the accent override")
	}
}

func TestValidate_LowContrastIsError(t *testing.T) {
	s := Light()
	// Light gray text on a near-white surface cannot reach 4.5:1.
	s.Content.Primary = color.New(200, 200, 200)

	res := Validate(s)
	if res.Valid {
		t.Fatalf("expected invalid schema")
	}
	if len(res.Errors) != 1 {
		t.Errorf("expected exactly one error, got %v", res.Errors)
	}
}

func TestValidate_MidContrastIsWarning(t *testing.T) {
	s := Light()
	// ~4.7:1 against #fafafa: passes AA, flagged short of AAA.
	s.Content.Primary = color.New(110, 110, 110)

	res := Validate(s)
	if !res.Valid {
		t.Fatalf("AA-passing schema should stay valid, errors: %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Errorf("expected an AAA warning")
	}
}

func TestValidate_VariantMismatchIsWarning(t *testing.T) {
	s := Light()
	s.Variant = model.VariantDark

	res := Validate(s)
	if !res.Valid {
		t.Fatalf("variant mismatch must not invalidate the schema")
	}
	if len(res.Warnings) == 0 {
		t.Errorf("expected a variant mismatch warning")
	}
}
