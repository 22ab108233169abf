package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phlthy88/unified-theming/internal/model"
)

// GTK applies themes to GTK 3 and GTK 4 applications by writing a
// user-level stylesheet of @define-color variables.
type GTK struct {
	// configDir is the user configuration root, normally ~/.config.
	// Injected so tests never touch a real home directory.
	configDir string
}

// NewGTK creates the GTK handler rooted at configDir.
func NewGTK(configDir string) *GTK {
	return &GTK{configDir: configDir}
}

func (g *GTK) Name() string { return "gtk" }

func (g *GTK) Toolkit() model.Toolkit { return model.ToolkitGTK }

// IsAvailable reports whether the configuration root exists. GTK needs
// no running service, only a place to write its stylesheet.
func (g *GTK) IsAvailable() bool {
	info, err := os.Stat(g.configDir)
	return err == nil && info.IsDir()
}

func (g *GTK) ValidateCompatibility(theme *model.Theme) *model.ValidationResult {
	return validateColorVars(theme, model.ToolkitGTK)
}

// Apply renders the theme's color variables into gtk.css for both GTK 3
// and GTK 4 and returns the stylesheet paths written.
func (g *GTK) Apply(theme *model.Theme) ([]string, error) {
	css := renderGTKCSS(theme)

	var written []string
	for _, dir := range []string{"gtk-3.0", "gtk-4.0"} {
		target := filepath.Join(g.configDir, dir, "gtk.css")
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fmt.Errorf("gtk: create %s: %w", filepath.Dir(target), err)
		}
		if err := writeFileAtomic(target, []byte(css)); err != nil {
			return written, fmt.Errorf("gtk: write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}

// renderGTKCSS dumps the variables as a flat @define-color sheet in
// sorted order. Deliberately not a template system.
func renderGTKCSS(theme *model.Theme) string {
	names := make([]string, 0, len(theme.Colors))
	for name := range theme.Colors {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "/* Generated by unitheme for theme %q. Do not edit. */\n", theme.Name)
	for _, name := range names {
		fmt.Fprintf(&b, "@define-color %s %s;\n", cssIdentifier(name), theme.Colors[name])
	}
	return b.String()
}

func cssIdentifier(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
