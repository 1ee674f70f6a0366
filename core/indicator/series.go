package indicator

import (
	"time"

	"github.com/shopspring/decimal"

	"tax-dashboard/internal/errors"
)

// Close is a dated closing price
type Close struct {
	Date  time.Time       `json:"date"`
	Price decimal.Decimal `json:"close"`
}

// Analysis is a close series with its short and long averages
type Analysis struct {
	Closes     []Close     `json:"closes"`
	Short      []Point     `json:"short"`
	Long       []Point     `json:"long"`
	ShortWin   int         `json:"short_window"`
	LongWin    int         `json:"long_window"`
	Crossovers []Crossover `json:"crossovers"`
}

// Analyze computes the short and long averages of closes and where they cross
func Analyze(closes []Close, shortWindow, longWindow int) (*Analysis, error) {
	if shortWindow >= longWindow {
		return nil, errors.InvalidInputf("short window %d must be smaller than long window %d", shortWindow, longWindow)
	}
	for i := 1; i < len(closes); i++ {
		if !closes[i].Date.After(closes[i-1].Date) {
			return nil, errors.InvalidInputf("closes are not in ascending date order at %s",
				closes[i].Date.Format(time.DateOnly))
		}
	}

	prices := make([]decimal.Decimal, len(closes))
	for i, c := range closes {
		prices[i] = c.Price
	}

	short, err := RollingMean(prices, shortWindow)
	if err != nil {
		return nil, err
	}
	long, err := RollingMean(prices, longWindow)
	if err != nil {
		return nil, err
	}
	crosses, err := Crossovers(short, long)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Closes:     closes,
		Short:      short,
		Long:       long,
		ShortWin:   shortWindow,
		LongWin:    longWindow,
		Crossovers: crosses,
	}, nil
}
