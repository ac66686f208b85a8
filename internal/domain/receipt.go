package domain

import "time"

// Receipt summarises a completed ride.
type Receipt struct {
	ID              string
	RideID          string
	CabClass        CabClass
	DriverName      string
	Pickup          GeoPoint
	Dropoff         GeoPoint
	DistanceKm      float64
	DurationMinutes int
	BaseFare        float64
	DistanceFare    float64
	TimeFare        float64
	SurgeMultiplier float64
	SurgeAmount     float64
	TotalFare       float64
	StartedAt       time.Time
	CompletedAt     time.Time
	GeneratedAt     time.Time
}
