package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ynabsplit/internal/buildinfo"
	"github.com/cleared-dev/ynabsplit/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Invoked without a subcommand it runs the split workflow.
func NewRootCommand() *cobra.Command {
	var gf globalFlags
	var ro runOptions

	rootCmd := &cobra.Command{
		Use:     "ynabsplit",
		Short:   "Post selected CSV rows to YNAB as one split transaction",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, &gf, ro)
		},
	}

	rootCmd.PersistentFlags().StringVar(&gf.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&gf.logLevel, "log-level", "", "log level (debug, info, warn, error, off)")
	ro.addFlags(rootCmd)

	rootCmd.AddCommand(
		newRunCommand(&gf),
		newBudgetsCommand(&gf),
		newAccountsCommand(&gf),
		newPreviewCommand(&gf),
		newInitCommand(),
	)

	return rootCmd
}
