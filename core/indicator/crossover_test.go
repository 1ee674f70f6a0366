package indicator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tax-dashboard/internal/errors"
)

func series(values ...int64) []Point {
	out := make([]Point, len(values))
	for i, v := range values {
		out[i] = Point{Value: decimal.NewFromInt(v), Ready: v >= 0}
	}
	return out
}

func TestCrossoversDetectsBothDirections(t *testing.T) {
	short := series(-1, 9, 11, 12, 10, 8)
	long := series(-1, 10, 10, 10, 10, 10)

	crosses, err := Crossovers(short, long)
	require.NoError(t, err)
	assert.Equal(t, []Crossover{
		{Index: 2, Kind: GoldenCross},
		{Index: 5, Kind: DeathCross},
	}, crosses)
}

func TestCrossoversTouchWithoutChangingSide(t *testing.T) {
	long := series(10, 10, 10, 10, 10, 10)

	// below, touch, back below, touch twice, back below
	crosses, err := Crossovers(series(9, 10, 8, 10, 10, 9), long)
	require.NoError(t, err)
	assert.Empty(t, crosses)

	// above, touch, back above
	crosses, err = Crossovers(series(11, 12, 10, 11, 13, 12), long)
	require.NoError(t, err)
	assert.Empty(t, crosses)

	// starting on the line is not a cross either
	crosses, err = Crossovers(series(10, 10, 11, 12, 11, 11), long)
	require.NoError(t, err)
	assert.Empty(t, crosses)
}

func TestCrossoversTouchThenCross(t *testing.T) {
	crosses, err := Crossovers(series(9, 10, 10, 11), series(10, 10, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, []Crossover{{Index: 3, Kind: GoldenCross}}, crosses)
}

func TestCrossoversIgnoresUnreadyPoints(t *testing.T) {
	short := series(20, 5, 20)
	long := series(10, -1, 10)

	crosses, err := Crossovers(short, long)
	require.NoError(t, err)
	assert.Empty(t, crosses)
}

func TestCrossoversLengthMismatch(t *testing.T) {
	_, err := Crossovers(series(1, 2), series(1))
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func closesFrom(start time.Time, prices ...int64) []Close {
	out := make([]Close, len(prices))
	for i, p := range prices {
		out[i] = Close{Date: start.AddDate(0, 0, i), Price: decimal.NewFromInt(p)}
	}
	return out
}

func TestAnalyzeFindsGoldenCross(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := closesFrom(start, 10, 9, 8, 7, 6, 8, 12, 16)

	a, err := Analyze(closes, 2, 4)
	require.NoError(t, err)
	require.Len(t, a.Short, len(closes))
	require.Len(t, a.Long, len(closes))
	require.NotEmpty(t, a.Crossovers)
	assert.Equal(t, GoldenCross, a.Crossovers[0].Kind)
	assert.Equal(t, 6, a.Crossovers[0].Index)
}

func TestAnalyzeValidatesInput(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := Analyze(closesFrom(start, 1, 2, 3), 4, 2)
	assert.True(t, errors.IsType(err, errors.TypeInput))

	unordered := closesFrom(start, 1, 2, 3)
	unordered[2].Date = start
	_, err = Analyze(unordered, 1, 2)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}
