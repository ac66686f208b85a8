package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabbooking/internal/domain"
	"cabbooking/internal/service"
)

// FareHandler handles cab availability and fare quotes.
type FareHandler struct {
	rideService *service.RideService
}

// NewFareHandler creates a new FareHandler.
func NewFareHandler(rideService *service.RideService) *FareHandler {
	return &FareHandler{rideService: rideService}
}

// AvailableCabsRequest is the HTTP request body for listing nearby cabs.
type AvailableCabsRequest struct {
	Location LocationPayload `json:"location" binding:"required"`
}

// TripRequest is shared by fare estimates and bookings.
type TripRequest struct {
	Pickup  LocationPayload `json:"pickup" binding:"required"`
	Dropoff LocationPayload `json:"dropoff" binding:"required"`
	CabType string          `json:"cab_type" binding:"required"`
}

type trip struct {
	pickup  domain.GeoPoint
	dropoff domain.GeoPoint
	class   domain.CabClass
}

func (r TripRequest) parse() (trip, error) {
	pickup, err := r.Pickup.toGeoPoint()
	if err != nil {
		return trip{}, err
	}
	dropoff, err := r.Dropoff.toGeoPoint()
	if err != nil {
		return trip{}, err
	}
	class, err := domain.ParseCabClass(r.CabType)
	if err != nil {
		return trip{}, err
	}
	return trip{pickup: pickup, dropoff: dropoff, class: class}, nil
}

// FareEstimateResponse is the HTTP response for a fare quote.
type FareEstimateResponse struct {
	CabType    string       `json:"cab_type"`
	DistanceKm float64      `json:"distance_km"`
	Fare       FareResponse `json:"fare"`
}

// AvailableCabs handles POST /api/v1/cabs/available
func (h *FareHandler) AvailableCabs(c *gin.Context) {
	var req AvailableCabsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	location, err := req.Location.toGeoPoint()
	if err != nil {
		respondError(c, err)
		return
	}

	cabs, err := h.rideService.AvailableCabs(c.Request.Context(), location)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AvailableCabResponse, 0, len(cabs))
	for _, cab := range cabs {
		response = append(response, newAvailableCabResponse(cab))
	}
	respondJSON(c, http.StatusOK, response)
}

// Estimate handles POST /api/v1/fare/estimate
func (h *FareHandler) Estimate(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	t, err := req.parse()
	if err != nil {
		respondError(c, err)
		return
	}

	fare, err := h.rideService.QuoteFare(c.Request.Context(), t.pickup, t.dropoff, t.class)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, FareEstimateResponse{
		CabType:    string(t.class),
		DistanceKm: domain.RoundTo(t.pickup.DistanceTo(t.dropoff), 2),
		Fare:       newFareResponse(fare),
	})
}
