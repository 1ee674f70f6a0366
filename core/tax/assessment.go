package tax

import (
	"github.com/shopspring/decimal"

	"tax-dashboard/internal/errors"
)

// rateScale is the number of decimal places kept for derived rates
const rateScale = 6

// Slice is the part of an income taxed inside one bracket
type Slice struct {
	Index   int              `json:"index"`
	Lower   decimal.Decimal  `json:"lower"`
	Upper   *decimal.Decimal `json:"upper,omitempty"`
	Rate    decimal.Decimal  `json:"rate"`
	Taxable decimal.Decimal  `json:"taxable"`
	Tax     decimal.Decimal  `json:"tax"`
}

// Assessment is a calculated tax with its per-bracket breakdown
type Assessment struct {
	Schedule      string          `json:"schedule,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	Income        decimal.Decimal `json:"income"`
	Tax           decimal.Decimal `json:"tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	MarginalRate  decimal.Decimal `json:"marginal_rate"`
	Slices        []Slice         `json:"slices"`
}

// NetIncome is the income left after tax
func (a *Assessment) NetIncome() decimal.Decimal {
	return a.Income.Sub(a.Tax)
}

// Assess calculates the tax on income and records how each bracket contributed.
// Assessment.Tax is always equal to Calculate(income, table).
func Assess(income decimal.Decimal, table Table) (*Assessment, error) {
	if err := checkIncome(income); err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	a := &Assessment{
		Income:       income,
		MarginalRate: table[0].Rate,
		Slices:       make([]Slice, 0, len(table)),
	}

	a.Tax = table.walk(income, func(i int, lower, taxable, tax decimal.Decimal) {
		a.Slices = append(a.Slices, Slice{
			Index:   i,
			Lower:   lower,
			Upper:   table[i].UpTo,
			Rate:    table[i].Rate,
			Taxable: taxable,
			Tax:     tax,
		})
		a.MarginalRate = table[i].Rate
	})

	if income.IsPositive() {
		a.EffectiveRate = a.Tax.DivRound(income, rateScale)
	}

	return a, nil
}

// Assess calculates the tax on income under the schedule
func (s Schedule) Assess(income decimal.Decimal) (*Assessment, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	a, err := Assess(income, s.Brackets)
	if err != nil {
		return nil, err
	}
	a.Schedule = s.Name
	a.Currency = s.Currency
	return a, nil
}

// Comparison puts the same income through two schedules
type Comparison struct {
	Income   decimal.Decimal `json:"income"`
	Base     *Assessment     `json:"base"`
	Proposed *Assessment     `json:"proposed"`

	// Delta is proposed tax minus base tax; negative means the proposal taxes less
	Delta decimal.Decimal `json:"delta"`
}

// Compare assesses income under a base and a proposed schedule
func Compare(income decimal.Decimal, base, proposed Schedule) (*Comparison, error) {
	if base.Currency != proposed.Currency {
		return nil, errors.InvalidInputf("cannot compare %s schedule %q with %s schedule %q",
			base.Currency, base.Name, proposed.Currency, proposed.Name)
	}

	b, err := base.Assess(income)
	if err != nil {
		return nil, err
	}
	p, err := proposed.Assess(income)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Income:   income,
		Base:     b,
		Proposed: p,
		Delta:    p.Tax.Sub(b.Tax),
	}, nil
}
