package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	minorMax = decimal.NewFromInt(math.MaxInt64)
	minorMin = decimal.NewFromInt(math.MinInt64 + 1)
)

// FormatMoney renders an amount as a currency string, e.g. "A$60,667.00".
// Unknown currency codes fall back to "60667.00 XYZ".
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(minorMax) || minor.LessThan(minorMin) {
		return formatLarge(amount, cur.Formatter())
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

// formatLarge lays out amounts whose minor units overflow int64 using the
// same template, grapheme and separators go-money would.
func formatLarge(amount decimal.Decimal, f *money.Formatter) string {
	digits := amount.Abs().StringFixed(int32(f.Fraction))
	whole, frac, _ := strings.Cut(digits, ".")

	if f.Thousand != "" {
		for i := len(whole) - 3; i > 0; i -= 3 {
			whole = whole[:i] + f.Thousand + whole[i:]
		}
	}
	sa := whole
	if f.Fraction > 0 {
		sa += f.Decimal + frac
	}
	sa = strings.Replace(f.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", f.Grapheme, 1)

	if amount.Round(int32(f.Fraction)).IsNegative() {
		sa = "-" + sa
	}
	return sa
}

// FormatSignedMoney prefixes positive amounts with "+"
func FormatSignedMoney(amount decimal.Decimal, currency string) string {
	if amount.IsPositive() {
		return "+" + FormatMoney(amount, currency)
	}
	return FormatMoney(amount, currency)
}

// FormatRate renders a fraction as a percentage, e.g. 0.325 -> "32.5%"
func FormatRate(rate decimal.Decimal) string {
	pct := rate.Shift(2).Round(3)
	return pct.String() + "%"
}

// FormatBand renders a bracket range in the given currency
func FormatBand(lower decimal.Decimal, upper *decimal.Decimal, currency string) string {
	if upper == nil {
		return fmt.Sprintf("over %s", FormatMoney(lower, currency))
	}
	return fmt.Sprintf("%s - %s", FormatMoney(lower, currency), FormatMoney(*upper, currency))
}
