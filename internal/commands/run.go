package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ynabsplit/internal/config"
	"github.com/cleared-dev/ynabsplit/internal/flow"
	"github.com/cleared-dev/ynabsplit/internal/importer"
	"github.com/cleared-dev/ynabsplit/internal/tui"
	"github.com/cleared-dev/ynabsplit/internal/ynab"
)

type runOptions struct {
	csvPath  string
	budgetID string
	dryRun   bool
}

func (o *runOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.csvPath, "csv", "", "transactions CSV (default from config, transactions.csv)")
	cmd.Flags().StringVar(&o.budgetID, "budget", "", "budget ID to use without prompting")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "print the transaction instead of posting it")
}

// newPrompter builds the interactive prompter for a command's streams.
var newPrompter = func(cmd *cobra.Command, display config.DisplayConfig) flow.Prompter {
	in, out := promptIO(cmd)
	return tui.NewPrompter(in, out, display)
}

func newRunCommand(gf *globalFlags) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Choose CSV rows and post them as one split transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, gf, opts)
		},
	}
	opts.addFlags(cmd)

	return cmd
}

func runWorkflow(cmd *cobra.Command, gf *globalFlags, opts runOptions) error {
	e, err := setup(cmd, gf)
	if err != nil {
		return err
	}

	client, err := e.client()
	if err != nil {
		return err
	}

	path := e.csvPath(opts.csvPath)
	rows, err := importer.Load(path)
	if err != nil {
		return err
	}
	e.log.Info().Str("path", path).Int("rows", len(rows)).Msg("CSV loaded")

	out := cmd.OutOrStdout()
	runner := &flow.Runner{
		Budgets:  client,
		Prompt:   newPrompter(cmd, e.cfg.Display),
		Report:   tui.NewReporter(out, e.cfg.Display),
		Log:      e.log,
		BudgetID: opts.budgetID,
		DryRun:   opts.dryRun,
	}

	res, err := runner.Run(cmd.Context(), rows)
	if err != nil {
		return err
	}
	e.log.Debug().Stringer("outcome", res.Outcome).Stringer("stage", res.Stage).Msg("Run finished")

	switch res.Outcome {
	case flow.OutcomeCancelled:
		return &ExitError{Code: ExitCancelled}
	case flow.OutcomePostFailed:
		return &ExitError{Code: ExitPostFailed}
	case flow.OutcomeDryRun:
		body, err := ynab.MarshalTransaction(res.Transaction)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Dry run, not posted. POST /budgets/%s/transactions\n%s\n", res.Budget.ID, body)
	}
	return nil
}
