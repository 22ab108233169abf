package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/phlthy88/unified-theming/internal/model"
)

var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFail    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func okMark() string   { return styleOK.Render("✓") }
func failMark() string { return styleFail.Render("✗") }

func printApplicationResult(res *model.ApplicationResult) {
	fmt.Println(styleHeading.Render(fmt.Sprintf("Applying %q", res.ThemeName)))
	if res.BackupID != "" {
		fmt.Printf("  backup: %s\n", styleMuted.Render(res.BackupID))
	} else {
		fmt.Printf("  backup: %s\n", styleWarn.Render("unavailable"))
	}

	for _, hr := range orderedResults(res) {
		mark := okMark()
		if !hr.Success {
			mark = failMark()
		}
		fmt.Printf("  %s %-10s %s\n", mark, hr.HandlerName, hr.Message)
		for _, w := range hr.Warnings {
			fmt.Printf("      %s %s\n", styleWarn.Render("warning:"), w)
		}
		if verbose {
			for _, f := range hr.FilesModified {
				fmt.Printf("      %s\n", styleMuted.Render(f))
			}
		}
	}

	if res.OverallSuccess {
		fmt.Printf("%s applied to %d/%d handlers\n",
			okMark(), res.Attempted()-res.Failed(), res.Attempted())
	} else {
		fmt.Printf("%s failed (%d/%d handlers succeeded)\n",
			failMark(), res.Attempted()-res.Failed(), res.Attempted())
	}
}

// orderedResults lists handler results in a stable name order so output
// does not depend on map iteration.
func orderedResults(res *model.ApplicationResult) []*model.HandlerResult {
	eng, err := GetEngine()
	if err != nil {
		out := make([]*model.HandlerResult, 0, len(res.HandlerResults))
		for _, hr := range res.HandlerResults {
			out = append(out, hr)
		}
		return out
	}

	var out []*model.HandlerResult
	for _, name := range eng.Handlers.Names() {
		if hr, ok := res.HandlerResults[name]; ok {
			out = append(out, hr)
		}
	}
	return out
}

func printValidationResult(label string, res *model.ValidationResult) {
	mark := okMark()
	if !res.Valid {
		mark = failMark()
	}
	fmt.Printf("  %s %s\n", mark, label)
	for _, e := range res.Errors {
		fmt.Printf("      %s %s\n", styleFail.Render("error:"), e)
	}
	for _, w := range res.Warnings {
		fmt.Printf("      %s %s\n", styleWarn.Render("warning:"), w)
	}
}
