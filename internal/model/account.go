package model

// AccountType is the YNAB account type, e.g. "checking" or "creditCard".
type AccountType string

// Account is a YNAB account as returned by the accounts endpoint.
type Account struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	Balance Milliunits  `json:"balance"`
	Deleted bool        `json:"deleted"`
	Closed  bool        `json:"closed"`
}

// Active reports whether the account can receive new transactions.
func (a Account) Active() bool {
	return !a.Deleted && !a.Closed
}
