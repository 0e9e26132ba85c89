package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ynabsplit/internal/importer"
	"github.com/cleared-dev/ynabsplit/internal/tui"
)

func newPreviewCommand(gf *globalFlags) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the CSV rows and their split amounts without contacting YNAB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, gf)
			if err != nil {
				return err
			}

			path := e.csvPath(csvPath)
			rows, err := importer.Load(path)
			if err != nil {
				return err
			}
			e.log.Info().Str("path", path).Int("rows", len(rows)).Msg("CSV loaded")
			return tui.NewReporter(cmd.OutOrStdout(), e.cfg.Display).Preview(rows)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "transactions CSV (default from config, transactions.csv)")

	return cmd
}
