package tax

import (
	"math"

	"github.com/shopspring/decimal"

	"tax-dashboard/internal/errors"
)

// Calculate returns the total tax owed on income under the table.
//
// Brackets are walked in ascending order. A bracket whose ceiling is below
// the income contributes its full width at its rate; the bracket containing
// the income contributes the remaining slice and ends the walk. An income equal
// to a ceiling belongs to the lower bracket.
func Calculate(income decimal.Decimal, table Table) (decimal.Decimal, error) {
	if err := checkIncome(income); err != nil {
		return decimal.Zero, err
	}
	if err := table.Validate(); err != nil {
		return decimal.Zero, err
	}

	return table.walk(income, nil), nil
}

// CalculateFloat is Calculate for callers holding float amounts
func CalculateFloat(income float64, table Table) (float64, error) {
	if math.IsNaN(income) || math.IsInf(income, 0) {
		return 0, errors.InvalidInputf("income must be a finite number, got %v", income)
	}

	tax, err := Calculate(decimal.NewFromFloat(income), table)
	if err != nil {
		return 0, err
	}
	return tax.InexactFloat64(), nil
}

func checkIncome(income decimal.Decimal) error {
	if income.IsNegative() {
		return errors.InvalidInputf("income must not be negative, got %s", income).
			WithContext("income", income.String())
	}
	return nil
}

// bandVisit is called once per bracket that taxes part of the income
type bandVisit func(index int, lower, taxable, tax decimal.Decimal)

// walk assumes a validated table and non-negative income
func (t Table) walk(income decimal.Decimal, visit bandVisit) decimal.Decimal {
	total := decimal.Zero
	lower := decimal.Zero

	for i, b := range t {
		if !lower.LessThan(income) {
			break
		}

		if !b.Unbounded() && income.GreaterThan(*b.UpTo) {
			width := b.UpTo.Sub(lower)
			slice := width.Mul(b.Rate)
			total = total.Add(slice)
			if visit != nil {
				visit(i, lower, width, slice)
			}
			lower = *b.UpTo
			continue
		}

		taxable := income.Sub(lower)
		slice := taxable.Mul(b.Rate)
		total = total.Add(slice)
		if visit != nil {
			visit(i, lower, taxable, slice)
		}
		break
	}

	return total
}
