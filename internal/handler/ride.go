package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabbooking/internal/domain"
	"cabbooking/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// UpdateRideStatusRequest is the HTTP request body for moving a ride along.
type UpdateRideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelRideRequest is the HTTP request body for cancelling a ride. The body is optional.
type CancelRideRequest struct {
	Reason string `json:"reason"`
}

// HistoryResponse is the HTTP response for the ride history.
type HistoryResponse struct {
	Count int            `json:"count"`
	Rides []RideResponse `json:"rides"`
}

// BookRide handles POST /api/v1/rides/book
func (h *RideHandler) BookRide(c *gin.Context) {
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

	ride, err := h.rideService.BookRide(c.Request.Context(), t.pickup, t.dropoff, t.class)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newRideResponse(ride))
}

// GetRide handles GET /api/v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRideResponse(ride))
}

// GetAll handles GET /api/v1/rides with an optional ?status= filter.
func (h *RideHandler) GetAll(c *gin.Context) {
	var status *domain.RideStatus
	if raw := c.Query("status"); raw != "" {
		s, err := domain.ParseRideStatus(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		status = &s
	}

	rides, err := h.rideService.ListRides(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRideResponses(rides))
}

// AssignDriver handles POST /api/v1/rides/:id/assign-driver
func (h *RideHandler) AssignDriver(c *gin.Context) {
	ride, err := h.rideService.AssignDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRideResponse(ride))
}

// UpdateStatus handles PATCH /api/v1/rides/:id/status
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	var req UpdateRideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	status, err := domain.ParseRideStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	ride, err := h.rideService.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRideResponse(ride))
}

// CancelRide handles POST /api/v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	var req CancelRideRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	result, err := h.rideService.CancelRide(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CancelRideResponse{
		RideID:          result.RideID,
		Status:          string(result.Status),
		Reason:          result.Reason,
		CancellationFee: result.Fee,
	})
}

// Receipt handles GET /api/v1/rides/:id/receipt
func (h *RideHandler) Receipt(c *gin.Context) {
	receipt, err := h.rideService.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newReceiptResponse(receipt))
}

// History handles GET /api/v1/history
func (h *RideHandler) History(c *gin.Context) {
	rides, err := h.rideService.ListCompleted(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, HistoryResponse{
		Count: len(rides),
		Rides: newRideResponses(rides),
	})
}
