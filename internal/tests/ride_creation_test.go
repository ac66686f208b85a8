package tests

import (
	"context"
	"errors"
	"testing"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
	"cabbooking/internal/service"
)

// ──────────────────────────────────────────────
// 1. RIDE BOOKING EDGE CASES
// ──────────────────────────────────────────────

func TestRideBooking_ValidInput_Succeeds(t *testing.T) {
	t.Parallel()

	registry := NewMockRideRegistry()
	rideService := newTestRideService(registry)

	ride, err := rideService.BookRide(context.Background(), mgRoad, koramangala, domain.CabClassSedan)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if ride.ID == "" {
		t.Error("expected ride ID to be set")
	}
	if ride.Status != domain.RideStatusSearching {
		t.Errorf("expected status %s, got %s", domain.RideStatusSearching, ride.Status)
	}
	if ride.Driver != nil {
		t.Error("expected no driver on a new ride")
	}
	if ride.Fare.Total <= 0 {
		t.Errorf("expected a positive fare, got %.2f", ride.Fare.Total)
	}
	if registry.CountRides() != 1 {
		t.Errorf("expected 1 stored ride, got %d", registry.CountRides())
	}
}

func TestRideBooking_ZeroCoordinatesAccepted(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		pickup  domain.GeoPoint
		dropoff domain.GeoPoint
	}{
		{
			name:    "pickup on the equator",
			pickup:  domain.MustGeoPoint(0, 77.5946, "Equator"),
			dropoff: koramangala,
		},
		{
			name:    "dropoff on the prime meridian",
			pickup:  mgRoad,
			dropoff: domain.MustGeoPoint(12.9352, 0, "Meridian"),
		},
		{
			name:    "pickup equals dropoff",
			pickup:  mgRoad,
			dropoff: mgRoad,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rideService := newTestRideService(NewMockRideRegistry())
			if _, err := rideService.BookRide(context.Background(), tc.pickup, tc.dropoff, domain.CabClassEconomy); err != nil {
				t.Errorf("expected booking to succeed, got: %v", err)
			}
		})
	}
}

func TestRideBooking_InvalidCabClass_NothingStored(t *testing.T) {
	t.Parallel()

	registry := NewMockRideRegistry()
	rideService := newTestRideService(registry)

	_, err := rideService.BookRide(context.Background(), mgRoad, koramangala, domain.CabClass("ROCKET"))
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got: %v", err)
	}
	if registry.InsertCallCount != 0 {
		t.Errorf("expected no insert attempts, got %d", registry.InsertCallCount)
	}
}

func TestRideBooking_IDCollision_Retries(t *testing.T) {
	t.Parallel()

	registry := NewMockRideRegistry()
	registry.Reserve("AAAA0001")
	registry.Reserve("AAAA0002")
	rideService := newTestRideService(registry,
		service.WithRideIDGenerator(sequentialIDs("AAAA0001", "AAAA0002", "AAAA0003")))

	ride, err := rideService.BookRide(context.Background(), mgRoad, koramangala, domain.CabClassSUV)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ride.ID != "AAAA0003" {
		t.Errorf("expected ride ID AAAA0003, got %s", ride.ID)
	}
	if registry.InsertCallCount != 3 {
		t.Errorf("expected 3 insert attempts, got %d", registry.InsertCallCount)
	}
}

func TestRideBooking_IDSpaceExhausted_Fails(t *testing.T) {
	t.Parallel()

	registry := NewMockRideRegistry()
	registry.Reserve("DEADBEEF")
	rideService := newTestRideService(registry, service.WithRideIDGenerator(sequentialIDs("DEADBEEF")))

	_, err := rideService.BookRide(context.Background(), mgRoad, koramangala, domain.CabClassSUV)
	if !errors.Is(err, service.ErrRideIDExhausted) {
		t.Fatalf("expected ErrRideIDExhausted, got: %v", err)
	}
	if registry.CountRides() != 0 {
		t.Errorf("expected no stored rides, got %d", registry.CountRides())
	}
}

func TestRideBooking_RegistryFailure_Propagates(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("registry unavailable")
	registry := NewMockRideRegistry()
	registry.InsertError = storeErr
	rideService := newTestRideService(registry)

	_, err := rideService.BookRide(context.Background(), mgRoad, koramangala, domain.CabClassSedan)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected registry error, got: %v", err)
	}
	if registry.InsertCallCount != 1 {
		t.Errorf("expected a single insert attempt, got %d", registry.InsertCallCount)
	}
}

func TestRideBooking_FareFixedAtBooking(t *testing.T) {
	t.Parallel()

	registry := NewMockRideRegistry()
	rideService := newTestRideService(registry)
	ctx := context.Background()

	ride, err := rideService.BookRide(ctx, mgRoad, koramangala, domain.CabClassLuxury)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	booked := ride.Fare

	for _, status := range []domain.RideStatus{
		domain.RideStatusAccepted,
		domain.RideStatusArriving,
		domain.RideStatusInProgress,
		domain.RideStatusCompleted,
	} {
		if ride, err = rideService.SetStatus(ctx, ride.ID, status); err != nil {
			t.Fatalf("set %s: %v", status, err)
		}
		if ride.Fare != booked {
			t.Fatalf("fare changed after %s: %+v != %+v", status, ride.Fare, booked)
		}
	}

	if ride.Fare.SurgeMultiplier < 1.0 {
		t.Errorf("expected surge >= 1.0, got %.2f", ride.Fare.SurgeMultiplier)
	}
}

func TestRideLookup_Unknown_NotFound(t *testing.T) {
	t.Parallel()

	rideService := newTestRideService(NewMockRideRegistry())

	_, err := rideService.GetRide(context.Background(), "NOPE1234")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}

	_, err = rideService.GetRide(context.Background(), "")
	if !errors.Is(err, service.ErrInvalidRideID) {
		t.Errorf("expected ErrInvalidRideID, got: %v", err)
	}
}
