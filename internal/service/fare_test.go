package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabbooking/internal/domain"
)

func TestEstimateTrip(t *testing.T) {
	distance, duration := NewFareCalculator().EstimateTrip(mgRoad, koramangala)
	assert.InDelta(t, 5.22876, distance, 1e-5)
	assert.InDelta(t, 10.45752, duration, 1e-5)
}

func TestEstimate_PerClass(t *testing.T) {
	testCases := []struct {
		class     domain.CabClass
		surge     float64
		wantTotal float64
	}{
		{domain.CabClassEconomy, 1.0, 133.66},
		{domain.CabClassEconomy, 1.5, 200.49},
		{domain.CabClassSedan, 1.0, 184.58},
		{domain.CabClassSedan, 1.5, 276.86},
		{domain.CabClassSUV, 1.0, 255.95},
		{domain.CabClassSUV, 1.5, 383.92},
		{domain.CabClassLuxury, 1.0, 409.15},
		{domain.CabClassLuxury, 1.5, 613.73},
	}

	calc := NewFareCalculator()
	for _, tc := range testCases {
		t.Run(string(tc.class), func(t *testing.T) {
			fare, err := calc.Estimate(mgRoad, koramangala, tc.class, tc.surge)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, fare.Total)
			assert.Equal(t, tc.surge, fare.SurgeMultiplier)
		})
	}
}

func TestEstimate_SedanBreakdown(t *testing.T) {
	fare, err := NewFareCalculator().Estimate(mgRoad, koramangala, domain.CabClassSedan, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 80.0, fare.BaseFare)
	assert.InDelta(t, 78.4314, fare.DistanceFare, 1e-4)
	assert.InDelta(t, 26.1438, fare.TimeFare, 1e-4)
	assert.InDelta(t, 184.5752, fare.Subtotal(), 1e-4)
}

func TestEstimate_SamePointIsBaseFare(t *testing.T) {
	fare, err := NewFareCalculator().Estimate(mgRoad, mgRoad, domain.CabClassLuxury, 1.2)
	require.NoError(t, err)
	assert.Equal(t, 240.0, fare.Total)
}

func TestEstimate_UnknownClass(t *testing.T) {
	_, err := NewFareCalculator().Estimate(mgRoad, koramangala, domain.CabClass("ROCKET"), 1.0)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}
