package split

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cleared-dev/ynabsplit/internal/model"
)

// DateFormat is the ISO date layout the API expects.
const DateFormat = "2006-01-02"

// DefaultMemo is the parent memo offered when n rows are selected.
func DefaultMemo(n int) string {
	return fmt.Sprintf("Split transaction with %d items", n)
}

// SubtransactionMemo returns "{Date} - {Memo}" for a row.
func SubtransactionMemo(row model.CSVRow) string {
	return row.Date + " - " + row.Memo
}

// AddAmount adds a row amount to a running total of outflows, failing if the
// total would no longer fit in Milliunits.
func AddAmount(total, amount model.Milliunits) (model.Milliunits, error) {
	if amount < 0 && total < math.MinInt64-amount || amount > 0 && total > math.MaxInt64-amount {
		return 0, errors.New("total out of range")
	}
	return total + amount, nil
}

// Build turns the selected rows into one uncleared, unapproved split transaction
// dated date. The parent amount is the sum of the rounded row amounts.
func Build(rows []model.CSVRow, accountID, memo string, date time.Time, accounts AccountChecker) (model.ParentTransaction, error) {
	subs := make([]model.Subtransaction, 0, len(rows))
	var total model.Milliunits
	for _, row := range rows {
		amount, err := RowAmount(row)
		if err != nil {
			return model.ParentTransaction{}, err
		}
		subs = append(subs, model.Subtransaction{
			Memo:   SubtransactionMemo(row),
			Amount: amount,
		})
		if total, err = AddAmount(total, amount); err != nil {
			return model.ParentTransaction{}, fmt.Errorf("row %d (%s %s): %w", row.Index+1, row.Date, row.Payee, err)
		}
	}

	txn := model.ParentTransaction{
		AccountID:       accountID,
		Memo:            memo,
		Amount:          total,
		Date:            date.Format(DateFormat),
		Cleared:         model.ClearedUncleared,
		Approved:        false,
		Subtransactions: subs,
	}

	if verrs := Validate(txn, accounts); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return model.ParentTransaction{}, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}
	return txn, nil
}
