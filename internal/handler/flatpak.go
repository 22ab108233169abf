package handler

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/phlthy88/unified-theming/internal/model"
)

// Flatpak pushes the active theme into sandboxed applications by writing
// a global override that exports GTK_THEME into every sandbox.
type Flatpak struct {
	// overridesDir is normally ~/.local/share/flatpak/overrides.
	overridesDir string
	lookPath     func(string) (string, error)
}

// NewFlatpak creates the Flatpak handler writing into overridesDir.
func NewFlatpak(overridesDir string) *Flatpak {
	return &Flatpak{
		overridesDir: overridesDir,
		lookPath:     exec.LookPath,
	}
}

func (f *Flatpak) Name() string { return "flatpak" }

func (f *Flatpak) Toolkit() model.Toolkit { return model.ToolkitFlatpak }

// IsAvailable reports whether the flatpak binary resolves.
func (f *Flatpak) IsAvailable() bool {
	_, err := f.lookPath("flatpak")
	return err == nil
}

func (f *Flatpak) ValidateCompatibility(theme *model.Theme) *model.ValidationResult {
	return validateColorVars(theme, model.ToolkitFlatpak)
}

// Apply writes the global override file and returns its path.
func (f *Flatpak) Apply(theme *model.Theme) ([]string, error) {
	if err := os.MkdirAll(f.overridesDir, 0o755); err != nil {
		return nil, fmt.Errorf("flatpak: create overrides dir: %w", err)
	}

	target := filepath.Join(f.overridesDir, "global")
	content := fmt.Sprintf("[Context]\nfilesystems=xdg-config/gtk-3.0:ro;xdg-config/gtk-4.0:ro;\n\n[Environment]\nGTK_THEME=%s\n", theme.Name)
	if err := writeFileAtomic(target, []byte(content)); err != nil {
		return nil, fmt.Errorf("flatpak: write override: %w", err)
	}
	return []string{target}, nil
}
