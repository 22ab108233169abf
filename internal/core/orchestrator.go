// Package core contains the application orchestrator: it resolves a
// theme, snapshots the current configuration, dispatches the theme to
// every selected handler, aggregates the partial outcomes and rolls the
// snapshot back when the apply fails overall.
//
// The orchestrator is single-threaded and fully synchronous. Handlers
// run strictly sequentially in registry registration order; that order
// is not semantically significant but is stable, and log output and
// tests rely on it.
package core

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phlthy88/unified-theming/internal/discover"
	"github.com/phlthy88/unified-theming/internal/handler"
	"github.com/phlthy88/unified-theming/internal/model"
)

// ErrThemeNotFound reports an apply against a theme name discovery does
// not know. It is the only error ApplyTheme surfaces.
var ErrThemeNotFound = errors.New("theme not found")

// Snapshotter is the slice of the backup manager the orchestrator needs.
type Snapshotter interface {
	Create(themeName string) (*model.Backup, error)
	Restore(id string) ([]string, error)
	Latest() (*model.Backup, bool)
}

// Recorder journals completed apply runs. Recording is best-effort.
type Recorder interface {
	Record(result *model.ApplicationResult) error
}

// Orchestrator coordinates theme application across all handlers.
type Orchestrator struct {
	themes   discover.Discoverer
	handlers *handler.Registry
	backups  Snapshotter
	history  Recorder
}

// NewOrchestrator wires the orchestrator's collaborators. history may be
// nil when no journal is configured.
func NewOrchestrator(themes discover.Discoverer, handlers *handler.Registry, backups Snapshotter, history Recorder) *Orchestrator {
	return &Orchestrator{
		themes:   themes,
		handlers: handlers,
		backups:  backups,
		history:  history,
	}
}

// ApplyTheme resolves name against the discovered themes and dispatches
// it to the selected handlers. targets narrows dispatch to the named
// handlers; nil means all.
//
// An unknown theme fails fast with ErrThemeNotFound and no side effects.
// Everything after that point produces a structured ApplicationResult:
// a failed backup downgrades to a run without rollback, handler faults
// are isolated into failure results, and overall success requires a
// strict majority of attempted handlers to succeed. When the run fails
// overall and a backup exists, the snapshot is restored; the rollback
// outcome is logged but deliberately not folded back into the returned
// result.
func (o *Orchestrator) ApplyTheme(name string, targets []string) (*model.ApplicationResult, error) {
	themes := o.themes.Discover()
	theme, ok := themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (searched %s)",
			ErrThemeNotFound, name, strings.Join(o.themes.SearchPaths(), ", "))
	}

	result := &model.ApplicationResult{
		RunID:          uuid.New().String(),
		ThemeName:      name,
		HandlerResults: make(map[string]*model.HandlerResult),
		Timestamp:      time.Now(),
	}

	if b, err := o.backups.Create(name); err != nil {
		// Non-fatal: the run continues without rollback protection.
		log.Printf("Warning: backup failed, continuing without rollback: %v", err)
	} else {
		result.BackupID = b.BackupID
	}

	selected := o.handlers.Select(targets)
	for _, h := range selected {
		hr := o.dispatch(h, theme)
		result.HandlerResults[h.Name()] = hr
		if hr.Success {
			log.Printf("%s: %s", h.Name(), hr.Message)
		} else {
			log.Printf("%s failed: %s", h.Name(), hr.Message)
		}
	}

	attempted := len(selected)
	failed := result.Failed()
	result.SuccessRatio = 1.0
	if attempted > 0 {
		result.SuccessRatio = float64(attempted-failed) / float64(attempted)
	}
	// Strict majority: an exact 50/50 split is a failure.
	result.OverallSuccess = result.SuccessRatio > 0.5

	if !result.OverallSuccess && result.BackupID != "" {
		warnings, err := o.backups.Restore(result.BackupID)
		if err != nil {
			log.Printf("Warning: rollback of backup %s failed: %v", result.BackupID, err)
		} else {
			log.Printf("rolled back to backup %s", result.BackupID)
			for _, w := range warnings {
				log.Printf("Warning: rollback: %s", w)
			}
		}
	}

	if o.history != nil {
		if err := o.history.Record(result); err != nil {
			log.Printf("Warning: recording run %s failed: %v", result.RunID, err)
		}
	}

	return result, nil
}

// dispatch runs one handler and converts every kind of fault into a
// failure HandlerResult. Nothing a handler does aborts the loop.
func (o *Orchestrator) dispatch(h handler.Handler, theme *model.Theme) (hr *model.HandlerResult) {
	hr = &model.HandlerResult{
		HandlerName: h.Name(),
		Toolkit:     h.Toolkit(),
	}
	defer func() {
		if r := recover(); r != nil {
			hr.Success = false
			hr.Message = fmt.Sprintf("handler panicked: %v", r)
			hr.Details = fmt.Sprintf("%v", r)
		}
	}()

	if !h.IsAvailable() {
		hr.Message = "not available"
		return hr
	}

	// Compatibility findings are advisory: errors are logged, never block.
	if vres := h.ValidateCompatibility(theme); vres != nil {
		hr.Warnings = append(hr.Warnings, vres.Warnings...)
		for _, e := range vres.Errors {
			log.Printf("%s compatibility: %s", h.Name(), e)
		}
	}

	files, err := h.Apply(theme)
	hr.FilesModified = files
	if err != nil {
		hr.Message = err.Error()
		return hr
	}

	hr.Success = true
	hr.Message = "applied"
	return hr
}

// Rollback restores a backup by id, or the most recent one when id is
// empty. It returns false, not an error, when no backup exists or the
// restore fails.
func (o *Orchestrator) Rollback(id string) bool {
	if id == "" {
		latest, ok := o.backups.Latest()
		if !ok {
			log.Printf("rollback requested but no backups exist")
			return false
		}
		id = latest.BackupID
	}

	warnings, err := o.backups.Restore(id)
	if err != nil {
		log.Printf("Warning: rollback of backup %s failed: %v", id, err)
		return false
	}
	for _, w := range warnings {
		log.Printf("Warning: rollback: %s", w)
	}
	return true
}

// Themes returns the currently discoverable themes.
func (o *Orchestrator) Themes() map[string]*model.Theme {
	return o.themes.Discover()
}

// SearchPaths exposes the discovery locations for error reporting.
func (o *Orchestrator) SearchPaths() []string {
	return o.themes.SearchPaths()
}
