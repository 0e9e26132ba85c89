// Package tui renders the interactive prompts and the terminal report.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cleared-dev/ynabsplit/internal/config"
	"github.com/cleared-dev/ynabsplit/internal/flow"
	"github.com/cleared-dev/ynabsplit/internal/model"
)

// Prompter asks the user each question with a bubbletea program.
type Prompter struct {
	in      io.Reader
	out     io.Writer
	display config.DisplayConfig
	styles  Styles
}

// NewPrompter creates a prompter. A nil in or out uses the terminal.
func NewPrompter(in io.Reader, out io.Writer, display config.DisplayConfig) *Prompter {
	return &Prompter{in: in, out: out, display: display, styles: NewStyles(styleTarget(out), Default)}
}

// styleTarget is the writer whose color profile the prompts use. Bubble Tea
// draws to stdout when no output is given.
func styleTarget(out io.Writer) io.Writer {
	if out == nil {
		return os.Stdout
	}
	return out
}

var _ flow.Prompter = (*Prompter)(nil)

// SelectBudget asks which budget to use.
func (p *Prompter) SelectBudget(budgets []model.Budget) (model.Budget, error) {
	labels := make([]string, len(budgets))
	for i, b := range budgets {
		labels[i] = BudgetLabel(b)
	}
	final, err := p.run(newSelectModel("Select a budget:", labels, p.display.BudgetPageSize, p.styles))
	if err != nil {
		return model.Budget{}, err
	}
	m := final.(selectModel)
	if m.cancelled || m.chosen < 0 {
		return model.Budget{}, flow.ErrCancelled
	}
	return budgets[m.chosen], nil
}

// SelectAccount asks which account receives the split transaction.
func (p *Prompter) SelectAccount(budget model.Budget, accounts []model.Account) (model.Account, error) {
	labels := make([]string, len(accounts))
	for i, a := range accounts {
		labels[i] = AccountLabel(a, budget.CurrencyFormat)
	}
	final, err := p.run(newSelectModel("Select an account:", labels, p.display.BudgetPageSize, p.styles))
	if err != nil {
		return model.Account{}, err
	}
	m := final.(selectModel)
	if m.cancelled || m.chosen < 0 {
		return model.Account{}, flow.ErrCancelled
	}
	return accounts[m.chosen], nil
}

// SelectRows asks which CSV rows to include. Choosing none is allowed.
func (p *Prompter) SelectRows(budget model.Budget, rows []model.CSVRow) ([]model.CSVRow, error) {
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = RowLabel(r, budget.CurrencyFormat, p.display)
	}
	final, err := p.run(newChecklistModel("Select transactions to include:", labels, p.display.RowPageSize, p.styles))
	if err != nil {
		return nil, err
	}
	m := final.(checklistModel)
	if m.cancelled {
		return nil, flow.ErrCancelled
	}
	selected := make([]model.CSVRow, 0, len(rows))
	for _, i := range m.Selected() {
		selected = append(selected, rows[i])
	}
	return selected, nil
}

// InputMemo asks for the parent memo, offering defaultMemo.
func (p *Prompter) InputMemo(defaultMemo string) (string, error) {
	final, err := p.run(newMemoModel("Enter a memo for the split transaction:", defaultMemo, p.styles))
	if err != nil {
		return "", err
	}
	m := final.(memoModel)
	if m.cancelled {
		return "", flow.ErrCancelled
	}
	return m.Value(), nil
}

func (p *Prompter) run(m tea.Model) (tea.Model, error) {
	var opts []tea.ProgramOption
	if p.in != nil {
		opts = append(opts, tea.WithInput(p.in))
	}
	if p.out != nil {
		opts = append(opts, tea.WithOutput(p.out))
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return nil, programError(err)
	}
	return final, nil
}

// programError turns a killed or interrupted program into a cancellation.
func programError(err error) error {
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return flow.ErrCancelled
	}
	return fmt.Errorf("running prompt: %w", err)
}

// BudgetLabel renders "{name} ({currency}) - Last modified: {date}".
func BudgetLabel(b model.Budget) string {
	return fmt.Sprintf("%s (%s) - Last modified: %s", b.Name, CurrencyCode(b), LastModified(b.LastModifiedOn))
}

// AccountLabel renders "{name} ({type}) - {balance}".
func AccountLabel(a model.Account, cf *model.CurrencyFormat) string {
	return fmt.Sprintf("%s (%s) - %s", a.Name, a.Type, FormatMoney(a.Balance, cf))
}

// RowLabel renders one CSV row as fixed-width columns.
func RowLabel(r model.CSVRow, cf *model.CurrencyFormat, display config.DisplayConfig) string {
	return fmt.Sprintf("%s | %s | %s | %s",
		r.Date,
		Fit(r.Payee, display.PayeeWidth),
		Fit(r.Memo, display.MemoWidth),
		OutflowLabel(r.Outflow, cf),
	)
}
