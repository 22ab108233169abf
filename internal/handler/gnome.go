package handler

import (
	"fmt"
	"os/exec"

	"github.com/godbus/dbus/v5"

	"github.com/phlthy88/unified-theming/internal/model"
)

const (
	portalBusName   = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalSettings  = "org.freedesktop.portal.Settings"
	appearanceNS    = "org.freedesktop.appearance"
	interfaceSchema = "org.gnome.desktop.interface"
)

// GNOME applies themes through the desktop's own settings machinery:
// gsettings keys under org.gnome.desktop.interface, with the current
// preference read back over the settings portal on the session bus.
type GNOME struct {
	// connectBus and runGSettings are swappable for tests.
	connectBus   func() (*dbus.Conn, error)
	runGSettings func(args ...string) error
}

// NewGNOME creates the GNOME handler.
func NewGNOME() *GNOME {
	return &GNOME{
		connectBus: func() (*dbus.Conn, error) { return dbus.ConnectSessionBus() },
		runGSettings: func(args ...string) error {
			out, err := exec.Command("gsettings", args...).CombinedOutput()
			if err != nil {
				return fmt.Errorf("gsettings %v: %v: %s", args, err, out)
			}
			return nil
		},
	}
}

func (g *GNOME) Name() string { return "gnome" }

func (g *GNOME) Toolkit() model.Toolkit { return model.ToolkitGNOME }

// IsAvailable needs both the gsettings binary and a reachable session bus.
func (g *GNOME) IsAvailable() bool {
	if _, err := exec.LookPath("gsettings"); err != nil {
		return false
	}
	conn, err := g.connectBus()
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// ValidateCompatibility runs the shared color checks and warns when the
// theme's variant conflicts with the user's current system preference.
func (g *GNOME) ValidateCompatibility(theme *model.Theme) *model.ValidationResult {
	res := validateColorVars(theme, model.ToolkitGNOME)

	if scheme, err := g.currentColorScheme(); err == nil {
		if scheme == "prefer-dark" && theme.Variant == model.VariantLight {
			res.AddWarning("system prefers dark but theme is light")
		}
		if scheme == "prefer-light" && theme.Variant == model.VariantDark {
			res.AddWarning("system prefers light but theme is dark")
		}
	}
	return res
}

// Apply sets the interface color-scheme and gtk-theme keys. GNOME keeps
// its settings in dconf, so no files are reported as modified.
func (g *GNOME) Apply(theme *model.Theme) ([]string, error) {
	scheme := "default"
	if theme.Variant == model.VariantDark {
		scheme = "prefer-dark"
	}

	if err := g.runGSettings("set", interfaceSchema, "color-scheme", scheme); err != nil {
		return nil, fmt.Errorf("gnome: set color-scheme: %w", err)
	}
	if err := g.runGSettings("set", interfaceSchema, "gtk-theme", theme.Name); err != nil {
		return nil, fmt.Errorf("gnome: set gtk-theme: %w", err)
	}
	return nil, nil
}

// currentColorScheme reads the appearance preference from the settings
// portal. Values map to "prefer-dark", "prefer-light" or "default".
func (g *GNOME) currentColorScheme() (string, error) {
	conn, err := g.connectBus()
	if err != nil {
		return "", fmt.Errorf("gnome: session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(portalBusName, dbus.ObjectPath(portalPath))
	var value dbus.Variant
	call := obj.Call(portalSettings+".Read", 0, appearanceNS, "color-scheme")
	if call.Err != nil {
		return "", fmt.Errorf("gnome: settings portal read: %w", call.Err)
	}
	if err := call.Store(&value); err != nil {
		return "", fmt.Errorf("gnome: settings portal response: %w", err)
	}

	// Read wraps the value in a double variant.
	inner, ok := value.Value().(dbus.Variant)
	if ok {
		switch v := inner.Value().(type) {
		case uint32:
			switch v {
			case 1:
				return "prefer-dark", nil
			case 2:
				return "prefer-light", nil
			}
			return "default", nil
		}
	}
	return "default", nil
}
