package tui

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/currency"

	"github.com/cleared-dev/ynabsplit/internal/model"
	"github.com/cleared-dev/ynabsplit/internal/split"
)

const ellipsis = "..."

// Fit truncates s to width columns with a trailing "...", or pads it with spaces.
func Fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, ellipsis)
	}
	return runewidth.FillRight(s, width)
}

// Clip keeps the first width columns of s and appends "..." when anything was cut.
func Clip(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "") + ellipsis
}

// CurrencyCode returns the budget's ISO 4217 code, or "Unknown" if it has none
// or it is not a known currency.
func CurrencyCode(b model.Budget) string {
	unit, err := currency.ParseISO(b.ISOCode())
	if err != nil {
		return "Unknown"
	}
	return unit.String()
}

// FormatMoney renders m using the budget's currency format. Without a format it
// falls back to "$1234.56".
func FormatMoney(m model.Milliunits, cf *model.CurrencyFormat) string {
	neg := m < 0
	abs := m.Decimal().Abs()

	if cf == nil {
		s := "$" + abs.StringFixed(2)
		if neg {
			s = "-" + s
		}
		return s
	}

	digits := cf.DecimalDigits
	if digits < 0 {
		digits = 0
	}
	fixed := abs.StringFixed(int32(digits))
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	symbol := cf.DisplaySymbol && cf.CurrencySymbol != ""
	if symbol && cf.SymbolFirst {
		b.WriteString(cf.CurrencySymbol)
	}
	b.WriteString(group(intPart, cf.GroupSeparator))
	if frac != "" {
		sep := cf.DecimalSeparator
		if sep == "" {
			sep = "."
		}
		b.WriteString(sep)
		b.WriteString(frac)
	}
	if symbol && !cf.SymbolFirst {
		b.WriteString(cf.CurrencySymbol)
	}
	return b.String()
}

func group(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// OutflowLabel formats a row's outflow in the budget currency, or returns it
// unchanged if it does not parse.
func OutflowLabel(outflow string, cf *model.CurrencyFormat) string {
	d, err := split.ParseOutflow(outflow)
	if err != nil {
		return outflow
	}
	return FormatMoney(split.ToMilliunits(d).Negate(), cf)
}

// LastModified renders an RFC 3339 timestamp as a date.
func LastModified(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format(split.DateFormat)
}
