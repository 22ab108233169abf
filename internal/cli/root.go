// Package cli implements the unitheme command-line interface.
package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose   bool
	configDir string
)

// rootCmd is the base command for unitheme.
var rootCmd = &cobra.Command{
	Use:   "unitheme",
	Short: "Coordinated theming across desktop toolkits",
	Long: `unitheme applies a color theme across independent desktop toolkits
(GTK, GNOME, Flatpak) as one operation.

Before dispatching, the current configuration is snapshotted; if a
majority of the toolkit handlers fail, the snapshot is restored.
Every apply is journaled and can be rolled back explicitly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Use alternate config directory")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(historyCmd)
}

// getConfigDir returns the configuration directory path, preferring the
// --config flag over the user default.
func getConfigDir() string {
	if configDir != "" {
		return configDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".unitheme"
	}
	return filepath.Join(home, ".config", "unitheme")
}

var applyCmd = &cobra.Command{
	Use:   "apply <theme>",
	Short: "Apply a theme to all (or selected) toolkits",
	Long: `Apply a discovered theme.

The current toolkit configuration is backed up first. Handlers run
sequentially in registration order; if more than half of them fail,
the backup is restored automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, _ := cmd.Flags().GetString("targets")
		var names []string
		if targets != "" {
			for _, n := range strings.Split(targets, ",") {
				names = append(names, strings.TrimSpace(n))
			}
		}
		return RunApply(args[0], names)
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List discovered themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunThemes()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <theme>",
	Short: "Check a theme against every handler without applying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunValidate(args[0])
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Show and audit the default token schema",
	Long: `Print the reference token schema and its accessibility audit.

Use --dark for the dark variant and --accent to substitute the primary
accent color before auditing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dark, _ := cmd.Flags().GetBool("dark")
		accent, _ := cmd.Flags().GetString("accent")
		return RunTokens(dark, accent)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show handler availability and backup state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus()
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup management commands",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the current toolkit configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunBackupCreate()
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunBackupList()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a backup by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunBackupRestore(args[0])
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		return RunBackupPrune(keep)
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a single backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunBackupDelete(args[0])
	},
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback [id]",
	Short: "Restore the most recent (or a named) backup",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		return RunRollback(id)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled apply runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return RunHistory(limit)
	},
}

func init() {
	applyCmd.Flags().String("targets", "", "Comma-separated handler names to apply to")

	tokensCmd.Flags().Bool("dark", false, "Audit the dark variant")
	tokensCmd.Flags().String("accent", "", "Override the primary accent (hex)")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupPruneCmd)
	backupCmd.AddCommand(backupDeleteCmd)
	backupPruneCmd.Flags().Int("keep", 10, "Number of backups to retain")

	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
}
