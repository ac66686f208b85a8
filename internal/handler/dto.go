package handler

import (
	"time"

	"cabbooking/internal/domain"
	"cabbooking/internal/service"
)

// LocationPayload is a location in a request body. Coordinates are pointers so
// that a missing field is told apart from 0.
type LocationPayload struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Address   string   `json:"address" binding:"required"`
}

func (p LocationPayload) toGeoPoint() (domain.GeoPoint, error) {
	return domain.NewGeoPoint(*p.Latitude, *p.Longitude, p.Address)
}

// LocationResponse is a location in a response body.
type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

func newLocationResponse(p domain.GeoPoint) LocationResponse {
	return LocationResponse{Latitude: p.Lat(), Longitude: p.Lng(), Address: p.Label()}
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Phone           string           `json:"phone"`
	Rating          float64          `json:"rating"`
	TotalTrips      int              `json:"total_trips"`
	VehicleNumber   string           `json:"vehicle_number"`
	VehicleModel    string           `json:"vehicle_model"`
	VehicleColor    string           `json:"vehicle_color"`
	CurrentLocation LocationResponse `json:"current_location"`
}

func newDriverResponse(d *domain.Driver) *DriverResponse {
	if d == nil {
		return nil
	}
	return &DriverResponse{
		ID:              d.ID,
		Name:            d.Name,
		Phone:           d.Phone,
		Rating:          d.Rating,
		TotalTrips:      d.TotalTrips,
		VehicleNumber:   d.VehicleNumber,
		VehicleModel:    d.VehicleModel,
		VehicleColor:    d.VehicleColor,
		CurrentLocation: newLocationResponse(d.Location),
	}
}

// FareResponse is a fare breakdown.
type FareResponse struct {
	BaseFare        float64 `json:"base_fare"`
	DistanceFare    float64 `json:"distance_fare"`
	TimeFare        float64 `json:"time_fare"`
	SurgeMultiplier float64 `json:"surge_multiplier"`
	Total           float64 `json:"total"`
}

func newFareResponse(f domain.Fare) FareResponse {
	return FareResponse{
		BaseFare:        f.BaseFare,
		DistanceFare:    f.DistanceFare,
		TimeFare:        f.TimeFare,
		SurgeMultiplier: f.SurgeMultiplier,
		Total:           f.Total,
	}
}

// RideResponse is the HTTP response for a ride.
type RideResponse struct {
	RideID          string           `json:"ride_id"`
	CabType         string           `json:"cab_type"`
	Pickup          LocationResponse `json:"pickup"`
	Dropoff         LocationResponse `json:"dropoff"`
	Status          string           `json:"status"`
	Driver          *DriverResponse  `json:"driver"`
	Fare            FareResponse     `json:"fare"`
	CreatedAt       time.Time        `json:"created_at"`
	AcceptedAt      *time.Time       `json:"accepted_at"`
	StartedAt       *time.Time       `json:"started_at"`
	CompletedAt     *time.Time       `json:"completed_at"`
	CancelledAt     *time.Time       `json:"cancelled_at,omitempty"`
	CancelReason    string           `json:"cancel_reason,omitempty"`
	CancellationFee float64          `json:"cancellation_fee,omitempty"`
	ETAMinutes      int              `json:"eta_minutes"`
	DistanceKm      float64          `json:"distance_km"`
	DurationMinutes int              `json:"duration_minutes"`
}

func newRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		RideID:          r.ID,
		CabType:         string(r.CabClass),
		Pickup:          newLocationResponse(r.Pickup),
		Dropoff:         newLocationResponse(r.Dropoff),
		Status:          string(r.Status),
		Driver:          newDriverResponse(r.Driver),
		Fare:            newFareResponse(r.Fare),
		CreatedAt:       r.CreatedAt,
		AcceptedAt:      optionalTime(r.AcceptedAt),
		StartedAt:       optionalTime(r.StartedAt),
		CompletedAt:     optionalTime(r.CompletedAt),
		CancelledAt:     optionalTime(r.CancelledAt),
		CancelReason:    r.CancelReason,
		CancellationFee: r.CancellationFee,
		ETAMinutes:      r.ETAMinutes,
		DistanceKm:      r.DistanceKm,
		DurationMinutes: r.DurationMinutes,
	}
}

func newRideResponses(rides []*domain.Ride) []RideResponse {
	out := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		out = append(out, newRideResponse(r))
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// AvailableCabResponse describes nearby supply for one cab class.
type AvailableCabResponse struct {
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	Capacity        int     `json:"capacity"`
	AvailableCount  int     `json:"available_count"`
	ETAMinutes      int     `json:"eta_minutes"`
	SurgeMultiplier float64 `json:"surge_multiplier"`
}

func newAvailableCabResponse(a service.CabAvailability) AvailableCabResponse {
	return AvailableCabResponse{
		Type:            string(a.Class),
		Name:            a.DisplayName,
		Capacity:        a.Capacity,
		AvailableCount:  a.AvailableCount,
		ETAMinutes:      a.ETAMinutes,
		SurgeMultiplier: a.SurgeMultiplier,
	}
}

// CancelRideResponse is the HTTP response for cancelling a ride.
type CancelRideResponse struct {
	RideID          string  `json:"ride_id"`
	Status          string  `json:"status"`
	Reason          string  `json:"reason"`
	CancellationFee float64 `json:"cancellation_fee"`
}

// ReceiptResponse is the HTTP response for a ride receipt.
type ReceiptResponse struct {
	ReceiptID       string           `json:"receipt_id"`
	RideID          string           `json:"ride_id"`
	CabType         string           `json:"cab_type"`
	DriverName      string           `json:"driver_name,omitempty"`
	Pickup          LocationResponse `json:"pickup"`
	Dropoff         LocationResponse `json:"dropoff"`
	DistanceKm      float64          `json:"distance_km"`
	DurationMinutes int              `json:"duration_minutes"`
	BaseFare        float64          `json:"base_fare"`
	DistanceFare    float64          `json:"distance_fare"`
	TimeFare        float64          `json:"time_fare"`
	SurgeMultiplier float64          `json:"surge_multiplier"`
	SurgeAmount     float64          `json:"surge_amount"`
	Total           float64          `json:"total"`
	StartedAt       time.Time        `json:"started_at"`
	CompletedAt     time.Time        `json:"completed_at"`
}

func newReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:       r.ID,
		RideID:          r.RideID,
		CabType:         string(r.CabClass),
		DriverName:      r.DriverName,
		Pickup:          newLocationResponse(r.Pickup),
		Dropoff:         newLocationResponse(r.Dropoff),
		DistanceKm:      r.DistanceKm,
		DurationMinutes: r.DurationMinutes,
		BaseFare:        r.BaseFare,
		DistanceFare:    r.DistanceFare,
		TimeFare:        r.TimeFare,
		SurgeMultiplier: r.SurgeMultiplier,
		SurgeAmount:     r.SurgeAmount,
		Total:           r.TotalFare,
		StartedAt:       r.StartedAt,
		CompletedAt:     r.CompletedAt,
	}
}
