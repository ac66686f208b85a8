package service

import (
	"cabbooking/internal/domain"
)

// AverageSpeedKmph is the assumed city speed used to derive trip duration.
const AverageSpeedKmph = 30.0

// FareCalculator prices trips from the static cab rate table. It holds no state.
type FareCalculator struct{}

// NewFareCalculator creates a new FareCalculator.
func NewFareCalculator() *FareCalculator {
	return &FareCalculator{}
}

// EstimateTrip returns the approximate distance in km and duration in minutes.
func (c *FareCalculator) EstimateTrip(pickup, dropoff domain.GeoPoint) (distanceKm, durationMinutes float64) {
	distanceKm = pickup.DistanceTo(dropoff)
	durationMinutes = distanceKm / AverageSpeedKmph * 60
	return distanceKm, durationMinutes
}

// Estimate computes the fare for a trip. Components are kept unrounded; only
// the total is rounded to two decimals.
func (c *FareCalculator) Estimate(pickup, dropoff domain.GeoPoint, class domain.CabClass, surge float64) (domain.Fare, error) {
	rates, err := class.Rates()
	if err != nil {
		return domain.Fare{}, err
	}

	distanceKm, durationMinutes := c.EstimateTrip(pickup, dropoff)
	return domain.NewFare(
		rates.BaseFare,
		distanceKm*rates.PerKm,
		durationMinutes*rates.PerMinute,
		surge,
	), nil
}
