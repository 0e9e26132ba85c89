package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Milliunits is 1/1000 of a currency unit, the integer amount the YNAB API uses.
type Milliunits int64

// Negate changes the sign of m to the opposite.
func (m Milliunits) Negate() Milliunits {
	return -m
}

func (m Milliunits) String() string {
	return strconv.FormatInt(int64(m), 10)
}

// Decimal returns m in major currency units.
func (m Milliunits) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -3)
}

// CSVRow is one data line of the transactions export.
type CSVRow struct {
	Index   int // 0-based position among data rows
	Date    string
	Payee   string
	Memo    string
	Outflow string // decimal string as exported, e.g. "12.50"
}

// ClearedStatus is the reconciliation state of a posted transaction.
type ClearedStatus string

// ClearedUncleared is the status new split transactions are posted with.
const ClearedUncleared ClearedStatus = "uncleared"

// Subtransaction is one itemized line of a split transaction.
type Subtransaction struct {
	Memo       string     `json:"memo"`
	Amount     Milliunits `json:"amount"`
	CategoryID *string    `json:"category_id"`
}

// ParentTransaction is a split transaction whose amount is the sum of its subtransactions.
type ParentTransaction struct {
	AccountID       string           `json:"account_id"`
	Memo            string           `json:"memo"`
	Amount          Milliunits       `json:"amount"`
	Date            string           `json:"date"` // YYYY-MM-DD
	Cleared         ClearedStatus    `json:"cleared"`
	Approved        bool             `json:"approved"`
	Subtransactions []Subtransaction `json:"subtransactions"`
}

// SubtransactionTotal sums the amounts of all subtransactions.
func (p ParentTransaction) SubtransactionTotal() Milliunits {
	var total Milliunits
	for _, s := range p.Subtransactions {
		total += s.Amount
	}
	return total
}
