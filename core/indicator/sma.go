// Package indicator - Moving-average indicators over close prices
package indicator

import (
	"github.com/shopspring/decimal"

	"tax-dashboard/internal/errors"
)

// Default windows for the short and long averages
const (
	DefaultShortWindow = 40
	DefaultLongWindow  = 100
)

// SMA is a streaming simple moving average
type SMA struct {
	period int
	values []decimal.Decimal
	sum    decimal.Decimal
}

// NewSMA creates a new SMA calculator with the given period
func NewSMA(period int) (*SMA, error) {
	if period < 1 {
		return nil, errors.InvalidInputf("moving average period must be at least 1, got %d", period)
	}
	return &SMA{
		period: period,
		values: make([]decimal.Decimal, 0, period),
		sum:    decimal.Zero,
	}, nil
}

// Update adds a value and returns the current average.
// Returns zero until period values have been seen.
func (s *SMA) Update(value decimal.Decimal) decimal.Decimal {
	s.values = append(s.values, value)
	s.sum = s.sum.Add(value)

	if len(s.values) > s.period {
		s.sum = s.sum.Sub(s.values[0])
		s.values = s.values[1:]
	}

	return s.Current()
}

// Current returns the current average without adding data
func (s *SMA) Current() decimal.Decimal {
	if !s.Ready() {
		return decimal.Zero
	}
	return s.sum.Div(decimal.NewFromInt(int64(s.period)))
}

// Ready reports whether period values have been seen
func (s *SMA) Ready() bool {
	return len(s.values) >= s.period
}

// Period returns the window size
func (s *SMA) Period() int {
	return s.period
}

// Reset discards all values
func (s *SMA) Reset() {
	s.values = s.values[:0]
	s.sum = decimal.Zero
}

// Point is one entry of a rolling series, aligned with its input
type Point struct {
	Value decimal.Decimal `json:"value"`
	Ready bool            `json:"ready"`
}

// RollingMean computes the window mean at every position of values.
// The first window-1 points are not ready.
func RollingMean(values []decimal.Decimal, window int) ([]Point, error) {
	sma, err := NewSMA(window)
	if err != nil {
		return nil, err
	}

	out := make([]Point, len(values))
	for i, v := range values {
		mean := sma.Update(v)
		out[i] = Point{Value: mean, Ready: sma.Ready()}
	}
	return out, nil
}
