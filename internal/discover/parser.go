package discover

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phlthy88/unified-theming/internal/color"
	"github.com/phlthy88/unified-theming/internal/model"
)

// Parse reads a theme definition. The format is one key/value pair per
// line: the Name, Variant and Toolkits headers, then variable: #hex
// color lines. Blank lines and lines starting with // are ignored.
func Parse(r io.Reader) (*model.Theme, error) {
	theme := &model.Theme{
		Variant: model.VariantLight,
		Colors:  make(map[string]string),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			theme.Name = value
		case "Variant":
			switch value {
			case string(model.VariantLight), string(model.VariantDark):
				theme.Variant = model.Variant(value)
			default:
				return nil, fmt.Errorf("unknown variant %q", value)
			}
		case "Toolkits":
			for _, part := range strings.Split(value, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				theme.Toolkits = append(theme.Toolkits, model.Toolkit(part))
			}
		default:
			if _, err := color.ParseHex(value); err != nil {
				return nil, fmt.Errorf("color %s: %w", key, err)
			}
			theme.Colors[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if theme.Name == "" {
		return nil, fmt.Errorf("theme has no Name header")
	}
	if len(theme.Colors) == 0 {
		return nil, fmt.Errorf("theme %s defines no colors", theme.Name)
	}
	return theme, nil
}

// ParseFile parses a theme file and records its source path.
func ParseFile(path string) (*model.Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	theme, err := Parse(f)
	if err != nil {
		return nil, err
	}
	theme.Path = filepath.Clean(path)
	return theme, nil
}
