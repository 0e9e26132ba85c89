package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cleared-dev/ynabsplit/internal/config"
	"github.com/cleared-dev/ynabsplit/internal/flow"
	"github.com/cleared-dev/ynabsplit/internal/model"
	"github.com/cleared-dev/ynabsplit/internal/split"
)

// Reporter writes progress lines and summary tables.
type Reporter struct {
	out     io.Writer
	display config.DisplayConfig
	styles  Styles
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer, display config.DisplayConfig) *Reporter {
	return &Reporter{out: out, display: display, styles: NewStyles(out, Default)}
}

var _ flow.Reporter = (*Reporter)(nil)

func (r *Reporter) Progress(msg string) {
	fmt.Fprintln(r.out, r.styles.Info.Render("…")+" "+msg)
}

func (r *Reporter) Done(msg string) {
	fmt.Fprintln(r.out, r.styles.Success.Render("✓")+" "+msg)
}

func (r *Reporter) Warn(msg string) {
	fmt.Fprintln(r.out, r.styles.Warning.Render("! "+msg))
}

func (r *Reporter) Failure(msg string, err error) {
	fmt.Fprintln(r.out, r.styles.Error.Render("✗ "+msg))
	if err != nil {
		fmt.Fprintln(r.out, r.styles.Error.Render("  "+err.Error()))
	}
}

// Selected prints the chosen rows.
func (r *Reporter) Selected(budget model.Budget, rows []model.CSVRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(r.out, r.styles.Bold.Render("Selected transactions:"))
	t := r.table("Date", "Payee", "Memo", "Amount")
	for _, row := range rows {
		t.Row(row.Date, row.Payee, Clip(row.Memo, r.display.SummaryMemoWidth), OutflowLabel(row.Outflow, budget.CurrencyFormat))
	}
	fmt.Fprintln(r.out, t.Render())
}

// Posted prints the created split transaction.
func (r *Reporter) Posted(res flow.Result) {
	cf := res.Budget.CurrencyFormat
	txn := res.Transaction
	fmt.Fprintln(r.out, r.styles.Success.Render("✓ Successfully created split transaction"))
	fmt.Fprintf(r.out, "  Total:           %s\n", FormatMoney(txn.Amount.Negate(), cf))
	fmt.Fprintf(r.out, "  Memo:            %s\n", txn.Memo)
	fmt.Fprintf(r.out, "  Account:         %s\n", res.Account.Name)
	fmt.Fprintf(r.out, "  Budget:          %s\n", res.Budget.Name)
	fmt.Fprintf(r.out, "  Subtransactions: %d\n", len(txn.Subtransactions))
	if res.Receipt.TransactionID != "" {
		fmt.Fprintf(r.out, "  Transaction ID:  %s\n", r.styles.Muted.Render(res.Receipt.TransactionID))
	}
}

// Preview prints every row with its split amount and the resulting total.
func (r *Reporter) Preview(rows []model.CSVRow) error {
	t := r.table("#", "Date", "Payee", "Memo", "Outflow", "Amount")
	var total model.Milliunits
	for _, row := range rows {
		amount, err := split.RowAmount(row)
		if err != nil {
			return err
		}
		if total, err = split.AddAmount(total, amount); err != nil {
			return fmt.Errorf("row %d (%s %s): %w", row.Index+1, row.Date, row.Payee, err)
		}
		t.Row(fmt.Sprint(row.Index+1), row.Date, row.Payee, Clip(row.Memo, r.display.SummaryMemoWidth), row.Outflow, amount.String())
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintf(r.out, "%d rows, total %s (%s)\n", len(rows), FormatMoney(total.Negate(), nil), total)
	return nil
}

// Budgets prints the budget list.
func (r *Reporter) Budgets(budgets []model.Budget) {
	if len(budgets) == 0 {
		r.Warn("No budgets found in your YNAB account.")
		return
	}
	t := r.table("ID", "Name", "Currency", "Last modified")
	for _, b := range budgets {
		t.Row(b.ID, b.Name, CurrencyCode(b), LastModified(b.LastModifiedOn))
	}
	fmt.Fprintln(r.out, t.Render())
}

// Accounts prints the active accounts of a budget.
func (r *Reporter) Accounts(budget model.Budget, accounts []model.Account) {
	if len(accounts) == 0 {
		r.Warn("No active accounts found in this budget.")
		return
	}
	t := r.table("ID", "Name", "Type", "Balance")
	for _, a := range accounts {
		t.Row(a.ID, a.Name, string(a.Type), FormatMoney(a.Balance, budget.CurrencyFormat))
	}
	fmt.Fprintln(r.out, t.Render())
}

func (r *Reporter) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Muted).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Bold.Padding(0, 1)
			}
			return r.styles.Muted.UnsetForeground().Padding(0, 1)
		})
}
