// Package cli provides the engine wiring for the unitheme CLI.
package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/phlthy88/unified-theming/internal/backup"
	"github.com/phlthy88/unified-theming/internal/core"
	"github.com/phlthy88/unified-theming/internal/discover"
	"github.com/phlthy88/unified-theming/internal/handler"
	"github.com/phlthy88/unified-theming/internal/history"
	"github.com/phlthy88/unified-theming/internal/model"
)

// Engine holds the assembled collaborators behind the CLI commands.
type Engine struct {
	Themes       *discover.DirDiscoverer
	Handlers     *handler.Registry
	Backups      *backup.Manager
	History      *history.Store
	Orchestrator *core.Orchestrator
	ConfigDir    string
}

var engine *Engine

// GetEngine returns the engine, initializing it on first use.
func GetEngine() (*Engine, error) {
	if engine != nil {
		return engine, nil
	}

	cfgDir := getConfigDir()
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	userConfig := filepath.Join(home, ".config")

	themes := discover.NewDirDiscoverer(
		filepath.Join(cfgDir, "themes"),
		"/usr/share/unitheme/themes",
	)

	backups, err := backup.NewManager(filepath.Join(cfgDir, "backups"), defaultConfigPaths(home))
	if err != nil {
		return nil, fmt.Errorf("initialize backup manager: %w", err)
	}

	registry := handler.NewRegistry()
	for _, h := range []handler.Handler{
		handler.NewGTK(userConfig),
		handler.NewGNOME(),
		handler.NewFlatpak(filepath.Join(home, ".local", "share", "flatpak", "overrides")),
	} {
		if err := registry.Register(h); err != nil {
			return nil, fmt.Errorf("register handler: %w", err)
		}
	}

	// The journal is optional: a broken database degrades to an
	// unrecorded run, not a failed command.
	store, err := history.Open(filepath.Join(cfgDir, "history.db"), os.Getenv("UNITHEME_PASSPHRASE"))
	if err != nil {
		log.Printf("Warning: history journal unavailable: %v", err)
		store = nil
	}

	var recorder core.Recorder
	if store != nil {
		recorder = store
	}

	engine = &Engine{
		Themes:       themes,
		Handlers:     registry,
		Backups:      backups,
		History:      store,
		Orchestrator: core.NewOrchestrator(themes, registry, backups, recorder),
		ConfigDir:    cfgDir,
	}
	return engine, nil
}

// defaultConfigPaths lists, per toolkit, the configuration worth
// snapshotting before an apply.
func defaultConfigPaths(home string) map[model.Toolkit][]string {
	userConfig := filepath.Join(home, ".config")
	return map[model.Toolkit][]string{
		model.ToolkitGTK: {
			filepath.Join(userConfig, "gtk-3.0", "gtk.css"),
			filepath.Join(userConfig, "gtk-4.0", "gtk.css"),
		},
		model.ToolkitGNOME: {
			filepath.Join(userConfig, "dconf", "user"),
		},
		model.ToolkitFlatpak: {
			filepath.Join(home, ".local", "share", "flatpak", "overrides"),
		},
	}
}
