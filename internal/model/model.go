// Package model defines the core domain models shared across the theming engine.
package model

import (
	"time"
)

// Toolkit identifies a theming target managed by one handler.
type Toolkit string

const (
	ToolkitGTK     Toolkit = "gtk"
	ToolkitGNOME   Toolkit = "gnome"
	ToolkitFlatpak Toolkit = "flatpak"
)

// Toolkits returns every known toolkit in a fixed order.
func Toolkits() []Toolkit {
	return []Toolkit{ToolkitGTK, ToolkitGNOME, ToolkitFlatpak}
}

// Variant tags a theme or token schema as light or dark.
type Variant string

const (
	VariantLight Variant = "light"
	VariantDark  Variant = "dark"
)

// Theme is the discovered description of one installable theme.
// Colors maps variable names to hex color strings.
type Theme struct {
	Name     string            `json:"name"`
	Variant  Variant           `json:"variant"`
	Colors   map[string]string `json:"colors"`
	Toolkits []Toolkit         `json:"toolkits"`
	Path     string            `json:"path,omitempty"`
}

// SupportsToolkit reports whether the theme declares support for tk.
// A theme with no toolkit list supports everything.
func (t *Theme) SupportsToolkit(tk Toolkit) bool {
	if len(t.Toolkits) == 0 {
		return true
	}
	for _, have := range t.Toolkits {
		if have == tk {
			return true
		}
	}
	return false
}

// ValidationResult carries leveled messages from a validation pass.
// Valid mirrors "no errors recorded".
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewValidationResult returns a passing result with no messages.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{Valid: true}
}

// AddError records an error-level message and forces Valid false.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

// AddWarning records a warning-level message. Warnings never affect Valid.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// HandlerResult records the outcome of one handler during one apply attempt.
// Results are never mutated after the dispatch loop constructs them.
type HandlerResult struct {
	HandlerName   string   `json:"handler_name"`
	Toolkit       Toolkit  `json:"toolkit"`
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	Details       string   `json:"details,omitempty"`
	FilesModified []string `json:"files_modified,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ApplicationResult is the single return value of an apply operation.
// It fully describes the outcome, including failures that were later rolled back.
type ApplicationResult struct {
	RunID          string                    `json:"run_id"`
	ThemeName      string                    `json:"theme_name"`
	OverallSuccess bool                      `json:"overall_success"`
	SuccessRatio   float64                   `json:"success_ratio"`
	HandlerResults map[string]*HandlerResult `json:"handler_results"`
	BackupID       string                    `json:"backup_id,omitempty"`
	Timestamp      time.Time                 `json:"timestamp"`
}

// Attempted returns the number of handlers that were dispatched.
func (r *ApplicationResult) Attempted() int {
	return len(r.HandlerResults)
}

// Failed returns the number of handler results that did not succeed.
func (r *ApplicationResult) Failed() int {
	n := 0
	for _, hr := range r.HandlerResults {
		if !hr.Success {
			n++
		}
	}
	return n
}

// Backup describes one configuration snapshot on disk.
// Created only by the backup manager; immutable afterwards except deletion
// by retention pruning.
type Backup struct {
	BackupID   string            `json:"backup_id"`
	Timestamp  time.Time         `json:"timestamp"`
	ThemeName  string            `json:"theme_name"`
	BackupPath string            `json:"backup_path"`
	Toolkits   []Toolkit         `json:"toolkits"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
