package split

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ynabsplit/internal/model"
)

var (
	thousand = decimal.NewFromInt(1000)
	// maxMilliunits is the largest magnitude a Milliunits value can hold.
	maxMilliunits = decimal.NewFromInt(math.MaxInt64)
)

// ParseOutflow parses an exported outflow such as "12.50", "$1,234.00" or "€ 3.10".
// Currency symbols and whitespace are dropped and commas are accepted only as
// thousands separators. The result is the absolute value.
func ParseOutflow(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r), unicode.Is(unicode.Sc, r):
		case r >= '0' && r <= '9', r == '.', r == '-', r == ',':
			b.WriteRune(r)
		default:
			return decimal.Decimal{}, fmt.Errorf("parsing amount %q: unexpected character %q", s, r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Decimal{}, errors.New("empty amount")
	}

	cleaned, err := stripGrouping(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	d = d.Abs()
	if d.Mul(thousand).Round(0).GreaterThan(maxMilliunits) {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: out of range", s)
	}
	return d, nil
}

// stripGrouping removes thousands separators. Each comma must sit in the
// integer part and be followed by exactly three digits.
func stripGrouping(s string) (string, error) {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if strings.Contains(frac, ",") {
		return "", errors.New("comma after the decimal point")
	}
	groups := strings.Split(intPart, ",")
	for _, g := range groups[1:] {
		if len(g) != 3 || strings.Trim(g, "0123456789") != "" {
			return "", errors.New("comma is not a thousands separator")
		}
	}
	if len(groups) > 1 && strings.TrimLeft(groups[0], "-") == "" {
		return "", errors.New("comma is not a thousands separator")
	}
	out := strings.Join(groups, "")
	if hasFrac {
		out += "." + frac
	}
	return out, nil
}

// ToMilliunits converts an outflow to a negative milliunit amount, rounding half
// away from zero. d must come from ParseOutflow, which bounds its magnitude.
func ToMilliunits(d decimal.Decimal) model.Milliunits {
	return model.Milliunits(d.Abs().Mul(thousand).Round(0).IntPart()).Negate()
}

// RowAmount is ParseOutflow followed by ToMilliunits.
func RowAmount(row model.CSVRow) (model.Milliunits, error) {
	d, err := ParseOutflow(row.Outflow)
	if err != nil {
		return 0, fmt.Errorf("row %d (%s %s): %w", row.Index+1, row.Date, row.Payee, err)
	}
	return ToMilliunits(d), nil
}
