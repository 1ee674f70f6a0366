package indicator

import (
	"tax-dashboard/internal/errors"
)

// CrossKind tells which way the short average crossed the long one
type CrossKind string

const (
	// GoldenCross is the short average moving above the long average
	GoldenCross CrossKind = "golden"

	// DeathCross is the short average moving below the long average
	DeathCross CrossKind = "death"
)

// Crossover marks the index where the short average changed side
type Crossover struct {
	Index int       `json:"index"`
	Kind  CrossKind `json:"kind"`
}

// Crossovers finds the positions where short crosses long.
// Only positions where both series are ready are considered; touching
// without changing side is not a cross.
func Crossovers(short, long []Point) ([]Crossover, error) {
	if len(short) != len(long) {
		return nil, errors.InvalidInputf("series lengths differ: %d and %d", len(short), len(long))
	}

	var out []Crossover
	side := 0
	for i := range short {
		if !short[i].Ready || !long[i].Ready {
			continue
		}

		current := short[i].Value.Cmp(long[i].Value)
		if current == 0 {
			continue
		}
		if side != 0 && current != side {
			kind := GoldenCross
			if current < 0 {
				kind = DeathCross
			}
			out = append(out, Crossover{Index: i, Kind: kind})
		}
		side = current
	}
	return out, nil
}
