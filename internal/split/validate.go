package split

import (
	"fmt"
	"time"

	"github.com/cleared-dev/ynabsplit/internal/model"
)

// Rule identifies the check a ValidationError failed.
type Rule string

const (
	RuleBalanced Rule = "balanced"
	RuleOutflow  Rule = "outflow"
	RuleAccount  Rule = "account"
	RuleDate     Rule = "date"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        Rule
	Subject     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.Subject, e.Description)
}

// AccountChecker tests whether an account ID refers to an active account.
type AccountChecker interface {
	Exists(id string) bool
}

// Validate checks a split transaction before it is posted. A nil accounts checker
// only requires a non-empty account ID.
func Validate(txn model.ParentTransaction, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	if total := txn.SubtransactionTotal(); total != txn.Amount {
		errs = append(errs, ValidationError{
			Rule:        RuleBalanced,
			Subject:     "parent",
			Description: fmt.Sprintf("amount %s != subtransaction total %s", txn.Amount, total),
		})
	}

	if txn.Amount > 0 {
		errs = append(errs, ValidationError{
			Rule:        RuleOutflow,
			Subject:     "parent",
			Description: fmt.Sprintf("amount %s is positive", txn.Amount),
		})
	}
	for i, sub := range txn.Subtransactions {
		if sub.Amount > 0 {
			errs = append(errs, ValidationError{
				Rule:        RuleOutflow,
				Subject:     fmt.Sprintf("subtransaction %d", i+1),
				Description: fmt.Sprintf("amount %s is positive", sub.Amount),
			})
		}
	}

	switch {
	case txn.AccountID == "":
		errs = append(errs, ValidationError{
			Rule:        RuleAccount,
			Subject:     "parent",
			Description: "account ID is empty",
		})
	case accounts != nil && !accounts.Exists(txn.AccountID):
		errs = append(errs, ValidationError{
			Rule:        RuleAccount,
			Subject:     "parent",
			Description: fmt.Sprintf("unknown or inactive account %s", txn.AccountID),
		})
	}

	if _, err := time.Parse(DateFormat, txn.Date); err != nil {
		errs = append(errs, ValidationError{
			Rule:        RuleDate,
			Subject:     "parent",
			Description: fmt.Sprintf("date %q is not YYYY-MM-DD", txn.Date),
		})
	}

	return errs
}
