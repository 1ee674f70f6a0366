package tax

import (
	"testing"

	"github.com/shopspring/decimal"

	"tax-dashboard/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// exampleTable is the 2023-24 resident schedule
func exampleTable() Table {
	return Table{
		Band(18200, 0),
		Band(45000, 0.19),
		Band(120000, 0.325),
		Band(180000, 0.37),
		Top(0.45),
	}
}

// TestCalculateWorkedExamples checks the published figures for each boundary
func TestCalculateWorkedExamples(t *testing.T) {
	cases := []struct {
		income string
		want   string
	}{
		{"0", "0"},
		{"18200", "0"},
		{"30000", "2242"},
		{"45000", "5092"},
		{"120000", "29467"},
		{"180000", "51667"},
		{"200000", "60667"},
	}

	for _, tc := range cases {
		got, err := Calculate(d(tc.income), exampleTable())
		if err != nil {
			t.Fatalf("Calculate(%s) returned error: %v", tc.income, err)
		}
		if !got.Equal(d(tc.want)) {
			t.Errorf("Calculate(%s) = %s, want %s", tc.income, got, tc.want)
		}
	}
}

// TestNegativeIncomeIsInvalidInput proves negative income never yields a tax
func TestNegativeIncomeIsInvalidInput(t *testing.T) {
	got, err := Calculate(d("-100"), exampleTable())
	if err == nil {
		t.Fatalf("Expected error for negative income, got tax %s", got)
	}
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("Expected INPUT_ERROR, got %v", err)
	}
}

func TestCalculateRejectsInvalidTables(t *testing.T) {
	cases := map[string]Table{
		"empty":           {},
		"bounded final":   {Band(18200, 0), Band(45000, 0.19)},
		"non-increasing":  {Band(45000, 0), Band(18200, 0.19), Top(0.45)},
		"equal ceilings":  {Band(18200, 0), Band(18200, 0.19), Top(0.45)},
		"unbounded early": {Top(0), Band(45000, 0.19), Top(0.45)},
		"rate above one":  {Band(18200, 0), Top(1.5)},
		"negative rate":   {Band(18200, -0.1), Top(0.45)},
		"zero ceiling":    {Band(0, 0), Top(0.45)},
	}

	for name, table := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Calculate(d("50000"), table)
			if err == nil {
				t.Fatal("Expected error for invalid table")
			}
			if !errors.IsType(err, errors.TypeInput) {
				t.Errorf("Expected INPUT_ERROR, got %v", err)
			}
		})
	}
}

func TestSingleUnboundedBracket(t *testing.T) {
	got, err := Calculate(d("1000"), Table{Top(0.1)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.Equal(d("100")) {
		t.Errorf("Expected 100, got %s", got)
	}
}

// TestTaxIsNonNegativeAndMonotonic walks incomes in ascending order
func TestTaxIsNonNegativeAndMonotonic(t *testing.T) {
	table := exampleTable()
	previous := decimal.Zero

	for income := int64(0); income <= 300000; income += 997 {
		got, err := Calculate(decimal.NewFromInt(income), table)
		if err != nil {
			t.Fatalf("Calculate(%d) returned error: %v", income, err)
		}
		if got.IsNegative() {
			t.Fatalf("Calculate(%d) = %s, expected non-negative", income, got)
		}
		if got.LessThan(previous) {
			t.Fatalf("Tax decreased at income %d: %s < %s", income, got, previous)
		}
		previous = got
	}
}

// TestBoundaryContinuity proves there is no jump at a ceiling beyond the marginal rate change
func TestBoundaryContinuity(t *testing.T) {
	table := exampleTable()
	cent := d("0.01")

	fullBands := decimal.Zero
	lower := decimal.Zero
	for i, b := range table[:len(table)-1] {
		fullBands = fullBands.Add(b.UpTo.Sub(lower).Mul(b.Rate))
		lower = *b.UpTo

		atCeiling, err := Calculate(*b.UpTo, table)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !atCeiling.Equal(fullBands) {
			t.Errorf("Bracket %d: tax at ceiling %s = %s, want sum of full bands %s", i, b.UpTo, atCeiling, fullBands)
		}

		above, err := Calculate(b.UpTo.Add(cent), table)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		step := above.Sub(atCeiling)
		want := cent.Mul(table[i+1].Rate)
		if !step.Equal(want) {
			t.Errorf("Bracket %d: one cent above ceiling adds %s, want %s", i, step, want)
		}
	}
}

func TestCalculateFloat(t *testing.T) {
	got, err := CalculateFloat(200000, exampleTable())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != 60667 {
		t.Errorf("Expected 60667, got %v", got)
	}

	if _, err := CalculateFloat(-1, exampleTable()); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("Expected INPUT_ERROR for negative income, got %v", err)
	}
}
