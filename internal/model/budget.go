package model

// CurrencyFormat describes how a budget displays money.
type CurrencyFormat struct {
	ISOCode          string `json:"iso_code"`
	ExampleFormat    string `json:"example_format"`
	DecimalDigits    int    `json:"decimal_digits"`
	DecimalSeparator string `json:"decimal_separator"`
	SymbolFirst      bool   `json:"symbol_first"`
	GroupSeparator   string `json:"group_separator"`
	CurrencySymbol   string `json:"currency_symbol"`
	DisplaySymbol    bool   `json:"display_symbol"`
}

// Budget is a YNAB budget summary.
type Budget struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	LastModifiedOn string          `json:"last_modified_on"` // RFC 3339
	CurrencyFormat *CurrencyFormat `json:"currency_format"`
}

// ISOCode returns the budget currency code, or "" when the budget has no format.
func (b Budget) ISOCode() string {
	if b.CurrencyFormat == nil {
		return ""
	}
	return b.CurrencyFormat.ISOCode
}
