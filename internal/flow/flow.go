// Package flow runs the interactive split workflow: choose a budget, an account and
// a set of CSV rows, enter a memo, then post one split transaction.
package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/ynabsplit/internal/accounts"
	"github.com/cleared-dev/ynabsplit/internal/model"
	"github.com/cleared-dev/ynabsplit/internal/split"
	"github.com/cleared-dev/ynabsplit/internal/ynab"
)

// ErrCancelled is returned by a Prompter when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled by user")

// BudgetService is the remote budgeting API.
type BudgetService interface {
	ListBudgets(ctx context.Context) ([]model.Budget, error)
	ListAccounts(ctx context.Context, budgetID string) ([]model.Account, error)
	CreateTransaction(ctx context.Context, budgetID string, txn model.ParentTransaction) (ynab.Receipt, error)
}

// Prompter asks the user for each choice. Every method blocks until the user
// answers and returns ErrCancelled if they abort.
type Prompter interface {
	SelectBudget(budgets []model.Budget) (model.Budget, error)
	SelectAccount(budget model.Budget, accounts []model.Account) (model.Account, error)
	SelectRows(budget model.Budget, rows []model.CSVRow) ([]model.CSVRow, error)
	InputMemo(defaultMemo string) (string, error)
}

// Reporter shows progress to the user.
type Reporter interface {
	Progress(msg string)
	Done(msg string)
	Warn(msg string)
	Failure(msg string, err error)
	Selected(budget model.Budget, rows []model.CSVRow)
	Posted(res Result)
}

// Stage is the last step the workflow completed.
type Stage int

const (
	StageStart Stage = iota
	StageBudgetChosen
	StageAccountChosen
	StageRowsChosen
	StageMemoEntered
	StagePosted
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageBudgetChosen:
		return "budget-chosen"
	case StageAccountChosen:
		return "account-chosen"
	case StageRowsChosen:
		return "rows-chosen"
	case StageMemoEntered:
		return "memo-entered"
	case StagePosted:
		return "posted"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Outcome is how a run ended.
type Outcome int

const (
	OutcomePosted Outcome = iota
	OutcomeNoBudgets
	OutcomeNoActiveAccounts
	OutcomeCancelled
	OutcomePostFailed
	OutcomeDryRun
)

func (o Outcome) String() string {
	switch o {
	case OutcomePosted:
		return "posted"
	case OutcomeNoBudgets:
		return "no-budgets"
	case OutcomeNoActiveAccounts:
		return "no-active-accounts"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomePostFailed:
		return "post-failed"
	case OutcomeDryRun:
		return "dry-run"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result records what a run chose and produced.
type Result struct {
	Outcome     Outcome
	Stage       Stage
	Budget      model.Budget
	Account     model.Account
	Rows        []model.CSVRow
	Memo        string
	Transaction model.ParentTransaction
	Receipt     ynab.Receipt
	PostErr     error // set when Outcome is OutcomePostFailed
}

// Runner drives one workflow run.
type Runner struct {
	Budgets  BudgetService
	Prompt   Prompter
	Report   Reporter
	Log      zerolog.Logger
	Now      func() time.Time
	BudgetID string // skips the budget prompt when it names a listed budget
	DryRun   bool   // build the transaction but do not post it
}

// Run executes the workflow over the loaded rows. Listing failures and prompt
// failures other than cancellation are returned as errors. A failed post is
// reported and recorded in the Result, not returned.
func (r *Runner) Run(ctx context.Context, rows []model.CSVRow) (Result, error) {
	res := Result{Stage: StageStart}

	// Budget.
	r.Report.Progress("Fetching your YNAB budgets...")
	budgets, err := r.Budgets.ListBudgets(ctx)
	if err != nil {
		return res, fmt.Errorf("listing budgets: %w", err)
	}
	if len(budgets) == 0 {
		r.Report.Warn("No budgets found in your YNAB account.")
		res.Outcome = OutcomeNoBudgets
		return res, nil
	}

	budget, err := r.chooseBudget(budgets)
	if err != nil {
		return r.stop(res, err)
	}
	res.Budget = budget
	res.Stage = StageBudgetChosen
	r.Log.Info().Str("budget_id", budget.ID).Msg("Budget chosen")
	r.Report.Done("Selected budget: " + budget.Name)

	// Account.
	r.Report.Progress("Fetching accounts from selected budget...")
	all, err := r.Budgets.ListAccounts(ctx, budget.ID)
	if err != nil {
		return res, fmt.Errorf("listing accounts for budget %s: %w", budget.ID, err)
	}
	active := accounts.NewService(all)
	r.Log.Debug().Int("listed", len(all)).Int("active", active.Len()).Msg("Accounts filtered")
	if active.Len() == 0 {
		r.Report.Warn("No active accounts found in this budget.")
		res.Outcome = OutcomeNoActiveAccounts
		return res, nil
	}

	picked, err := r.Prompt.SelectAccount(budget, active.All())
	if err != nil {
		return r.stop(res, err)
	}
	account, ok := active.Get(picked.ID)
	if !ok {
		return res, fmt.Errorf("account %s is not an active account of budget %s", picked.ID, budget.ID)
	}
	res.Account = account
	res.Stage = StageAccountChosen
	r.Log.Info().Str("account_id", account.ID).Msg("Account chosen")
	r.Report.Done("Selected account: " + account.Name)

	// Rows.
	selected, err := r.Prompt.SelectRows(budget, rows)
	if err != nil {
		return r.stop(res, err)
	}
	res.Rows = selected
	res.Stage = StageRowsChosen
	r.Report.Done(fmt.Sprintf("Selected %d transactions", len(selected)))
	r.Report.Selected(budget, selected)

	// Memo.
	memo, err := r.Prompt.InputMemo(split.DefaultMemo(len(selected)))
	if err != nil {
		return r.stop(res, err)
	}
	res.Memo = memo
	res.Stage = StageMemoEntered

	txn, err := split.Build(selected, account.ID, memo, r.now(), active)
	if err != nil {
		return res, fmt.Errorf("building transaction: %w", err)
	}
	res.Transaction = txn

	if r.DryRun {
		res.Outcome = OutcomeDryRun
		return res, nil
	}

	// Post exactly once.
	r.Report.Progress("Posting transactions as subtransactions to YNAB...")
	receipt, err := r.Budgets.CreateTransaction(ctx, budget.ID, txn)
	if err != nil {
		r.Log.Error().Err(err).Str("budget_id", budget.ID).Int("subtransactions", len(txn.Subtransactions)).Msg("Posting transaction failed")
		r.Report.Failure("Error posting transactions to YNAB", err)
		res.Outcome = OutcomePostFailed
		res.PostErr = err
		return res, nil
	}
	res.Receipt = receipt
	res.Stage = StagePosted
	res.Outcome = OutcomePosted
	r.Log.Info().Str("transaction_id", receipt.TransactionID).Msg("Transaction posted")
	r.Report.Posted(res)
	return res, nil
}

func (r *Runner) chooseBudget(budgets []model.Budget) (model.Budget, error) {
	if r.BudgetID != "" {
		for _, b := range budgets {
			if b.ID == r.BudgetID {
				return b, nil
			}
		}
		r.Report.Warn(fmt.Sprintf("Budget %s not found, choose one instead.", r.BudgetID))
	}
	return r.Prompt.SelectBudget(budgets)
}

// stop ends the run after a prompt error, turning cancellation into an outcome.
func (r *Runner) stop(res Result, err error) (Result, error) {
	if errors.Is(err, ErrCancelled) {
		r.Log.Info().Stringer("stage", res.Stage).Msg("Cancelled")
		r.Report.Warn("Cancelled, nothing was posted.")
		res.Outcome = OutcomeCancelled
		return res, nil
	}
	return res, fmt.Errorf("prompt after %s: %w", res.Stage, err)
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
