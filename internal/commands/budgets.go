package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ynabsplit/internal/accounts"
	"github.com/cleared-dev/ynabsplit/internal/model"
	"github.com/cleared-dev/ynabsplit/internal/tui"
)

func newBudgetsCommand(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "budgets",
		Short: "List budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, gf)
			if err != nil {
				return err
			}
			client, err := e.client()
			if err != nil {
				return err
			}

			budgets, err := client.ListBudgets(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing budgets: %w", err)
			}
			tui.NewReporter(cmd.OutOrStdout(), e.cfg.Display).Budgets(budgets)
			return nil
		},
	}
}

func newAccountsCommand(gf *globalFlags) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "accounts <budget-id>",
		Short: "List the open accounts of a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, gf)
			if err != nil {
				return err
			}
			client, err := e.client()
			if err != nil {
				return err
			}

			budgetID := args[0]
			budgets, err := client.ListBudgets(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing budgets: %w", err)
			}
			budget, ok := findBudget(budgets, budgetID)
			if !ok {
				return fmt.Errorf("budget %s not found", budgetID)
			}

			listed, err := client.ListAccounts(cmd.Context(), budgetID)
			if err != nil {
				return fmt.Errorf("listing accounts for budget %s: %w", budgetID, err)
			}
			shown := accounts.Active(listed)
			if all {
				shown = listed
			}
			tui.NewReporter(cmd.OutOrStdout(), e.cfg.Display).Accounts(budget, shown)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include closed and deleted accounts")

	return cmd
}

func findBudget(budgets []model.Budget, id string) (model.Budget, bool) {
	for _, b := range budgets {
		if b.ID == id {
			return b, true
		}
	}
	return model.Budget{}, false
}
