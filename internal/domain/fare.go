package domain

import "strconv"

// Fare is a fare breakdown. Total is fixed when the fare is built.
type Fare struct {
	BaseFare        float64
	DistanceFare    float64
	TimeFare        float64
	SurgeMultiplier float64 // never below 1.0
	Total           float64
}

// NewFare computes the total from its components:
// round((base + distance + time) * surge, 2).
func NewFare(base, distanceFare, timeFare, surge float64) Fare {
	if surge < 1.0 {
		surge = 1.0
	}
	return Fare{
		BaseFare:        base,
		DistanceFare:    distanceFare,
		TimeFare:        timeFare,
		SurgeMultiplier: surge,
		Total:           RoundTo((base+distanceFare+timeFare)*surge, 2),
	}
}

// Subtotal is the fare before surge.
func (f Fare) Subtotal() float64 {
	return f.BaseFare + f.DistanceFare + f.TimeFare
}

// SurgeActive reports whether a surge multiplier above 1.0 applies.
func (f Fare) SurgeActive() bool {
	return f.SurgeMultiplier > 1.0
}

// RoundTo rounds v to the given number of decimals using the exact binary
// value of v, with ties to even. 2.675 is stored just below the tie and rounds
// to 2.67.
func RoundTo(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}
