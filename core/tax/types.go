// Package tax - Progressive bracket tax calculation
// Income is split across ordered bands; each band's slice is taxed at its own rate.
package tax

import (
	"github.com/shopspring/decimal"

	"tax-dashboard/internal/errors"
)

// Bracket is one progressive band
type Bracket struct {
	// UpTo is the ceiling of the band (nil = unbounded)
	UpTo *decimal.Decimal `json:"up_to,omitempty"`

	// Rate is the marginal rate for income inside the band, a fraction in [0, 1]
	Rate decimal.Decimal `json:"rate"`
}

// Band creates a bounded bracket
func Band(upTo, rate float64) Bracket {
	ceiling := decimal.NewFromFloat(upTo)
	return Bracket{UpTo: &ceiling, Rate: decimal.NewFromFloat(rate)}
}

// Top creates the unbounded final bracket
func Top(rate float64) Bracket {
	return Bracket{Rate: decimal.NewFromFloat(rate)}
}

// Unbounded reports whether the bracket has no ceiling
func (b Bracket) Unbounded() bool {
	return b.UpTo == nil
}

// Table is an ordered schedule of brackets covering income from 0 to infinity
type Table []Bracket

var one = decimal.NewFromInt(1)

// Validate checks the table invariant: non-empty, strictly increasing
// ceilings, rates in [0, 1] and exactly one unbounded bracket in last position.
func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.InvalidInput("bracket table is empty")
	}

	previous := decimal.Zero
	last := len(t) - 1
	for i, b := range t {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return errors.InvalidInputf("bracket %d rate %s is outside [0, 1]", i, b.Rate).
				WithContext("index", i)
		}

		if i == last {
			if !b.Unbounded() {
				return errors.InvalidInputf("final bracket must be unbounded, has ceiling %s", b.UpTo).
					WithContext("index", i)
			}
			break
		}

		if b.Unbounded() {
			return errors.InvalidInputf("bracket %d is unbounded but is not the final bracket", i).
				WithContext("index", i)
		}
		if !b.UpTo.GreaterThan(previous) {
			return errors.InvalidInputf("bracket %d ceiling %s does not exceed %s", i, b.UpTo, previous).
				WithContext("index", i)
		}
		previous = *b.UpTo
	}

	return nil
}

// Schedule is a named bracket table
type Schedule struct {
	// Name identifies the schedule (e.g. "current", "proposed")
	Name string `json:"name"`

	// Description is a human-readable label
	Description string `json:"description,omitempty"`

	// Currency is the ISO 4217 code amounts are expressed in
	Currency string `json:"currency"`

	// Brackets is the progressive table
	Brackets Table `json:"brackets"`
}

// Validate checks the schedule and its table
func (s Schedule) Validate() error {
	if s.Name == "" {
		return errors.InvalidInput("schedule name is required")
	}
	if err := s.Brackets.Validate(); err != nil {
		if e, ok := err.(*errors.Error); ok {
			return e.WithContext("schedule", s.Name)
		}
		return err
	}
	return nil
}
