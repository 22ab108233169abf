package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/phlthy88/unified-theming/internal/backup"
	"github.com/phlthy88/unified-theming/internal/color"
	"github.com/phlthy88/unified-theming/internal/tokens"
)

// RunApply applies the named theme through the orchestrator and prints
// the per-handler outcome. A failed apply is reported through the result,
// not as a command error, so the handler breakdown is always shown.
func RunApply(themeName string, targets []string) error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	res, err := eng.Orchestrator.ApplyTheme(themeName, targets)
	if err != nil {
		return err
	}

	printApplicationResult(res)
	if !res.OverallSuccess {
		return fmt.Errorf("theme application failed")
	}
	return nil
}

// RunThemes lists every discovered theme, sorted by name.
func RunThemes() error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	themes := eng.Orchestrator.Themes()
	if len(themes) == 0 {
		fmt.Println("No themes found.")
		fmt.Println(styleMuted.Render("Searched: " + strings.Join(eng.Orchestrator.SearchPaths(), ", ")))
		return nil
	}

	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println(styleHeading.Render(fmt.Sprintf("Themes (%d)", len(names))))
	for _, name := range names {
		th := themes[name]
		toolkits := make([]string, len(th.Toolkits))
		for i, tk := range th.Toolkits {
			toolkits[i] = string(tk)
		}
		fmt.Printf("  %-20s %-6s %s\n", th.Name, th.Variant,
			styleMuted.Render(strings.Join(toolkits, ", ")))
		if verbose {
			fmt.Printf("      %s\n", styleMuted.Render(th.Path))
		}
	}
	return nil
}

// RunValidate checks a theme against every registered handler without
// touching any configuration.
func RunValidate(themeName string) error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	theme, ok := eng.Orchestrator.Themes()[themeName]
	if !ok {
		return fmt.Errorf("theme not found: %s", themeName)
	}

	fmt.Println(styleHeading.Render(fmt.Sprintf("Validating %q", theme.Name)))
	valid := true
	for _, h := range eng.Handlers.All() {
		res := h.ValidateCompatibility(theme)
		printValidationResult(h.Name(), res)
		if !res.Valid {
			valid = false
		}
	}

	if !valid {
		return fmt.Errorf("theme %q failed validation", themeName)
	}
	return nil
}

// RunTokens prints the reference token schema and its accessibility audit.
func RunTokens(dark bool, accent string) error {
	var opts []tokens.Option
	if accent != "" {
		c, err := color.ParseHex(accent)
		if err != nil {
			return fmt.Errorf("invalid accent color: %w", err)
		}
		opts = append(opts, tokens.WithAccent(c))
	}

	schema := tokens.Light(opts...)
	if dark {
		schema = tokens.Dark(opts...)
	}

	fmt.Println(styleHeading.Render(fmt.Sprintf("%s (%s)", schema.Name, schema.Variant)))
	printTokenGroup("surfaces", [][2]string{
		{"primary", schema.Surfaces.Primary.Hex()},
		{"secondary", schema.Surfaces.Secondary.Hex()},
		{"tertiary", schema.Surfaces.Tertiary.Hex()},
		{"elevated", schema.Surfaces.Elevated.Hex()},
		{"inverse", schema.Surfaces.Inverse.Hex()},
	})
	printTokenGroup("content", [][2]string{
		{"primary", schema.Content.Primary.Hex()},
		{"secondary", schema.Content.Secondary.Hex()},
		{"tertiary", schema.Content.Tertiary.Hex()},
		{"inverse", schema.Content.Inverse.Hex()},
		{"link", schema.Content.Link.Hex()},
		{"link-visited", schema.Content.LinkVisited.Hex()},
	})
	printTokenGroup("accents", [][2]string{
		{"primary", schema.Accents.Primary.Hex()},
		{"primary-container", schema.Accents.PrimaryContainer.Hex()},
		{"secondary", schema.Accents.Secondary.Hex()},
		{"success", schema.Accents.Success.Hex()},
		{"warning", schema.Accents.Warning.Hex()},
		{"error", schema.Accents.Error.Hex()},
	})
	printTokenGroup("borders", [][2]string{
		{"subtle", schema.Borders.Subtle.Hex()},
		{"default", schema.Borders.Default.Hex()},
		{"strong", schema.Borders.Strong.Hex()},
	})
	fmt.Printf("  %s\n", styleMuted.Render("states"))
	fmt.Printf("    %-20s %.2f\n", "hover-overlay", schema.States.HoverOverlay)
	fmt.Printf("    %-20s %.2f\n", "pressed-overlay", schema.States.PressedOverlay)
	if schema.States.FocusRing != nil {
		fmt.Printf("    %-20s %s\n", "focus-ring", schema.States.FocusRing.Hex())
	}
	fmt.Printf("    %-20s %.2f\n", "disabled-opacity", schema.States.DisabledOpacity)

	fmt.Println(styleHeading.Render("Audit"))
	printValidationResult("contrast", tokens.Validate(schema))
	return nil
}

func printTokenGroup(name string, pairs [][2]string) {
	fmt.Printf("  %s\n", styleMuted.Render(name))
	for _, p := range pairs {
		fmt.Printf("    %-20s %s\n", p[0], p[1])
	}
}

// RunStatus reports handler availability and the backup state.
func RunStatus() error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	fmt.Println(styleHeading.Render("Handlers"))
	for _, h := range eng.Handlers.All() {
		mark := okMark()
		note := "available"
		if !h.IsAvailable() {
			mark = failMark()
			note = "not available"
		}
		fmt.Printf("  %s %-10s %s\n", mark, h.Name(), styleMuted.Render(note))
	}

	fmt.Println(styleHeading.Render("Backups"))
	backups := eng.Backups.List()
	fmt.Printf("  %d stored\n", len(backups))
	if latest, ok := eng.Backups.Latest(); ok {
		fmt.Printf("  latest: %s (%s)\n", latest.BackupID, latest.ThemeName)
	}

	fmt.Println(styleHeading.Render("History"))
	if eng.History == nil {
		fmt.Printf("  %s\n", styleWarn.Render("journal unavailable"))
	} else {
		runs, err := eng.History.List(1)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("  no runs recorded")
		} else {
			fmt.Printf("  last run: %s applied %q at %s\n",
				runs[0].RunID, runs[0].ThemeName, runs[0].AppliedAt.Local().Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

// RunBackupCreate snapshots the current toolkit configuration.
func RunBackupCreate() error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	b, err := eng.Backups.Create("manual")
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	fmt.Printf("%s created backup %s\n", okMark(), b.BackupID)
	return nil
}

// RunBackupList prints stored backups, newest first.
func RunBackupList() error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	backups := eng.Backups.List()
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Println(styleHeading.Render(fmt.Sprintf("Backups (%d)", len(backups))))
	for _, b := range backups {
		toolkits := make([]string, len(b.Toolkits))
		for i, tk := range b.Toolkits {
			toolkits[i] = string(tk)
		}
		fmt.Printf("  %-26s %-20s %s\n", b.BackupID, b.ThemeName,
			styleMuted.Render(strings.Join(toolkits, ", ")))
	}
	return nil
}

// RunBackupRestore restores a backup by id, reporting any per-file
// warnings from a partial restore.
func RunBackupRestore(id string) error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	warnings, err := eng.Backups.Restore(id)
	if errors.Is(err, backup.ErrNotFound) {
		return fmt.Errorf("backup not found: %s", id)
	}
	if err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}

	for _, w := range warnings {
		fmt.Printf("  %s %s\n", styleWarn.Render("warning:"), w)
	}
	fmt.Printf("%s restored backup %s\n", okMark(), id)
	return nil
}

// RunBackupPrune deletes all but the most recent backups.
func RunBackupPrune(keep int) error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	removed, err := eng.Backups.Prune(keep)
	if err != nil {
		return fmt.Errorf("prune backups: %w", err)
	}
	fmt.Printf("%s removed %d backup(s), kept %d\n", okMark(), removed, keep)
	return nil
}

// RunBackupDelete deletes a single backup by id.
func RunBackupDelete(id string) error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	if err := eng.Backups.Delete(id); err != nil {
		if errors.Is(err, backup.ErrNotFound) {
			return fmt.Errorf("backup not found: %s", id)
		}
		return fmt.Errorf("delete backup: %w", err)
	}
	fmt.Printf("%s deleted backup %s\n", okMark(), id)
	return nil
}

// RunRollback restores the most recent backup, or a named one.
func RunRollback(id string) error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}

	if !eng.Orchestrator.Rollback(id) {
		if id == "" {
			return fmt.Errorf("no backup available to roll back to")
		}
		return fmt.Errorf("rollback of backup %s failed", id)
	}
	fmt.Printf("%s rollback complete\n", okMark())
	return nil
}

// RunHistory prints journaled apply runs, newest first.
func RunHistory(limit int) error {
	eng, err := GetEngine()
	if err != nil {
		return err
	}
	if eng.History == nil {
		return fmt.Errorf("history journal unavailable")
	}

	runs, err := eng.History.List(limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Println(styleHeading.Render(fmt.Sprintf("History (%d)", len(runs))))
	for _, r := range runs {
		mark := okMark()
		if !r.OverallSuccess {
			mark = failMark()
		}
		fmt.Printf("  %s %s  %-20s %s\n", mark,
			r.AppliedAt.Local().Format("2006-01-02 15:04:05"), r.ThemeName,
			styleMuted.Render(r.RunID))
		if verbose {
			for name, hr := range r.HandlerResults {
				sub := okMark()
				if !hr.Success {
					sub = failMark()
				}
				fmt.Printf("      %s %-10s %s\n", sub, name, hr.Message)
			}
		}
	}
	return nil
}
