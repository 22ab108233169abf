package handler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phlthy88/unified-theming/internal/model"
)

type stubHandler struct {
	name string
}

func (s *stubHandler) Name() string           { return s.name }
func (s *stubHandler) Toolkit() model.Toolkit { return model.ToolkitGTK }
func (s *stubHandler) IsAvailable() bool      { return true }
func (s *stubHandler) ValidateCompatibility(theme *model.Theme) *model.ValidationResult {
	return model.NewValidationResult()
}
func (s *stubHandler) Apply(theme *model.Theme) ([]string, error) { return nil, nil }

func testTheme() *model.Theme {
	return &model.Theme{
		Name:    "nord",
		Variant: model.VariantDark,
		Colors: map[string]string{
			"background": "#2e3440",
			"foreground": "#eceff4",
			"accent":     "#88c0d0",
		},
	}
}

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"gamma", "alpha", "beta"} {
		if err := r.Register(&stubHandler{name: name}); err != nil {
			t.Fatalf("failed to register %s: %v", name, err)
		}
	}

	got := r.Names()
	want := []string{"gamma", "alpha", "beta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubHandler{name: "gtk"}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(&stubHandler{name: "gtk"}); err == nil {
		t.Errorf("expected duplicate registration to fail")
	}
}

func TestRegistry_Select(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"gtk", "gnome", "flatpak"} {
		if err := r.Register(&stubHandler{name: name}); err != nil {
			t.Fatalf("failed to register: %v", err)
		}
	}

	// Subset keeps registration order regardless of request order.
	selected := r.Select([]string{"flatpak", "gtk"})
	if len(selected) != 2 || selected[0].Name() != "gtk" || selected[1].Name() != "flatpak" {
		t.Errorf("unexpected selection: %v", names(selected))
	}

	// Unknown names are dropped silently.
	selected = r.Select([]string{"qt", "gnome"})
	if len(selected) != 1 || selected[0].Name() != "gnome" {
		t.Errorf("unexpected selection: %v", names(selected))
	}

	// Empty request selects everything.
	if got := r.Select(nil); len(got) != 3 {
		t.Errorf("expected all handlers, got %v", names(got))
	}
}

func names(hs []Handler) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Name()
	}
	return out
}

func TestValidateColorVars(t *testing.T) {
	theme := testTheme()
	res := validateColorVars(theme, model.ToolkitGTK)
	if !res.Valid {
		t.Fatalf("expected valid theme, errors: %v", res.Errors)
	}

	delete(theme.Colors, "accent")
	res = validateColorVars(theme, model.ToolkitGTK)
	if res.Valid {
		t.Errorf("missing required color should be an error")
	}

	theme = testTheme()
	theme.Colors["foreground"] = "#3b4252" // barely darker than the background
	res = validateColorVars(theme, model.ToolkitGTK)
	if !res.Valid {
		t.Fatalf("low contrast must stay advisory, errors: %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Errorf("expected a contrast warning")
	}
}

func TestGTK_Apply(t *testing.T) {
	configDir := t.TempDir()
	g := NewGTK(configDir)

	if !g.IsAvailable() {
		t.Fatalf("handler should be available with an existing config dir")
	}

	files, err := g.Apply(testTheme())
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 stylesheets, got %v", files)
	}

	data, err := os.ReadFile(filepath.Join(configDir, "gtk-3.0", "gtk.css"))
	if err != nil {
		t.Fatalf("failed to read stylesheet: %v", err)
	}
	css := string(data)
	if !strings.Contains(css, "@define-color background #2e3440;") {
		t.Errorf("stylesheet missing background definition:\n%s", css)
	}
	if !strings.Contains(css, "@define-color accent #88c0d0;") {
		t.Errorf("stylesheet missing accent definition:\n%s", css)
	}
}

func TestGTK_NotAvailableWithoutConfigDir(t *testing.T) {
	g := NewGTK(filepath.Join(t.TempDir(), "missing"))
	if g.IsAvailable() {
		t.Errorf("handler should be unavailable without a config dir")
	}
}

func TestFlatpak_Apply(t *testing.T) {
	dir := t.TempDir()
	f := NewFlatpak(filepath.Join(dir, "overrides"))
	f.lookPath = func(string) (string, error) { return "/usr/bin/flatpak", nil }

	if !f.IsAvailable() {
		t.Fatalf("stubbed lookPath should make the handler available")
	}

	files, err := f.Apply(testTheme())
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("failed to read override: %v", err)
	}
	if !strings.Contains(string(data), "GTK_THEME=nord") {
		t.Errorf("override missing GTK_THEME:\n%s", data)
	}
}

func TestGNOME_Apply(t *testing.T) {
	var calls [][]string
	g := NewGNOME()
	g.runGSettings = func(args ...string) error {
		calls = append(calls, args)
		return nil
	}

	if _, err := g.Apply(testTheme()); err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 gsettings calls, got %d", len(calls))
	}
	if calls[0][2] != "color-scheme" || calls[0][3] != "prefer-dark" {
		t.Errorf("unexpected first call: %v", calls[0])
	}
	if calls[1][2] != "gtk-theme" || calls[1][3] != "nord" {
		t.Errorf("unexpected second call: %v", calls[1])
	}
}
