// Package discover finds installable themes on disk. Themes are plain
// key/value .theme files collected from an ordered list of search
// directories; earlier directories win on name collisions.
package discover

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/phlthy88/unified-theming/internal/model"
)

// Discoverer supplies the orchestrator with the set of known themes.
type Discoverer interface {
	// Discover returns all themes by name.
	Discover() map[string]*model.Theme

	// SearchPaths returns the locations scanned, for error messages.
	SearchPaths() []string
}

// DirDiscoverer scans a fixed list of directories for *.theme files.
type DirDiscoverer struct {
	paths []string
}

// NewDirDiscoverer creates a discoverer over the given directories, in
// priority order.
func NewDirDiscoverer(paths ...string) *DirDiscoverer {
	return &DirDiscoverer{paths: paths}
}

// Discover loads every parseable theme. Unreadable or malformed files
// are skipped with a warning, never propagated.
func (d *DirDiscoverer) Discover() map[string]*model.Theme {
	themes := make(map[string]*model.Theme)

	for _, dir := range d.paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("Warning: reading theme directory %s: %v", dir, err)
			}
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".theme") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			theme, err := ParseFile(path)
			if err != nil {
				log.Printf("Warning: skipping theme %s: %v", path, err)
				continue
			}
			if _, exists := themes[theme.Name]; exists {
				// Earlier search paths shadow later ones.
				continue
			}
			themes[theme.Name] = theme
		}
	}
	return themes
}

// SearchPaths returns the scanned directories.
func (d *DirDiscoverer) SearchPaths() []string {
	return append([]string(nil), d.paths...)
}
