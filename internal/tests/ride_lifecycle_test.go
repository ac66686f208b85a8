package tests

import (
	"context"
	"errors"
	"testing"

	"cabbooking/internal/domain"
	"cabbooking/internal/service"
)

// ──────────────────────────────────────────────
// 2. RIDE LIFECYCLE EDGE CASES
// ──────────────────────────────────────────────

func bookedRide(t *testing.T, rideService *service.RideService, advanceTo ...domain.RideStatus) *domain.Ride {
	t.Helper()

	ctx := context.Background()
	ride, err := rideService.BookRide(ctx, mgRoad, koramangala, domain.CabClassSedan)
	if err != nil {
		t.Fatalf("book ride: %v", err)
	}
	for _, status := range advanceTo {
		if ride, err = rideService.SetStatus(ctx, ride.ID, status); err != nil {
			t.Fatalf("set %s: %v", status, err)
		}
	}
	return ride
}

func TestLifecycle_HappyPath_TimestampsOrdered(t *testing.T) {
	t.Parallel()

	rideService := newTestRideService(NewMockRideRegistry())
	ride := bookedRide(t, rideService,
		domain.RideStatusAccepted,
		domain.RideStatusArriving,
		domain.RideStatusInProgress,
		domain.RideStatusCompleted,
	)

	if ride.Status != domain.RideStatusCompleted {
		t.Fatalf("expected completed, got %s", ride.Status)
	}
	if ride.Driver == nil {
		t.Fatal("expected a driver on a completed ride")
	}
	if !ride.CreatedAt.Before(ride.AcceptedAt) || !ride.AcceptedAt.Before(ride.StartedAt) || !ride.StartedAt.Before(ride.CompletedAt) {
		t.Errorf("timestamps out of order: created=%v accepted=%v started=%v completed=%v",
			ride.CreatedAt, ride.AcceptedAt, ride.StartedAt, ride.CompletedAt)
	}
}

func TestLifecycle_SkippedStates_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		reached []domain.RideStatus
		target  domain.RideStatus
	}{
		{"searching to arriving", nil, domain.RideStatusArriving},
		{"searching to in progress", nil, domain.RideStatusInProgress},
		{"accepted to in progress", []domain.RideStatus{domain.RideStatusAccepted}, domain.RideStatusInProgress},
		{"arriving to completed", []domain.RideStatus{domain.RideStatusAccepted, domain.RideStatusArriving}, domain.RideStatusCompleted},
		{"accepted twice", []domain.RideStatus{domain.RideStatusAccepted}, domain.RideStatusAccepted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rideService := newTestRideService(NewMockRideRegistry())
			ride := bookedRide(t, rideService, tc.reached...)

			_, err := rideService.SetStatus(context.Background(), ride.ID, tc.target)
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got: %v", err)
			}

			after, err := rideService.GetRide(context.Background(), ride.ID)
			if err != nil {
				t.Fatalf("get ride: %v", err)
			}
			if after.Status != ride.Status {
				t.Errorf("status changed on rejected transition: %s -> %s", ride.Status, after.Status)
			}
		})
	}
}

func TestLifecycle_TerminalStates_Final(t *testing.T) {
	t.Parallel()

	rideService := newTestRideService(NewMockRideRegistry())
	ctx := context.Background()

	completed := bookedRide(t, rideService,
		domain.RideStatusAccepted, domain.RideStatusArriving,
		domain.RideStatusInProgress, domain.RideStatusCompleted)
	cancelled := bookedRide(t, rideService, domain.RideStatusCancelled)

	for _, ride := range []*domain.Ride{completed, cancelled} {
		if _, err := rideService.CancelRide(ctx, ride.ID, "too late"); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("%s ride: expected ErrInvalidTransition on cancel, got: %v", ride.Status, err)
		}
		if _, err := rideService.SetStatus(ctx, ride.ID, domain.RideStatusArriving); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("%s ride: expected ErrInvalidTransition on advance, got: %v", ride.Status, err)
		}
	}
}

// ──────────────────────────────────────────────
// 3. CANCELLATION
// ──────────────────────────────────────────────

func TestCancellation_FeeByPriorStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		reached []domain.RideStatus
		wantFee float64
	}{
		{"while searching", nil, 0},
		{"after acceptance", []domain.RideStatus{domain.RideStatusAccepted}, domain.CancellationFee},
		{"while arriving", []domain.RideStatus{domain.RideStatusAccepted, domain.RideStatusArriving}, domain.CancellationFee},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rideService := newTestRideService(NewMockRideRegistry())
			ride := bookedRide(t, rideService, tc.reached...)

			result, err := rideService.CancelRide(context.Background(), ride.ID, "")
			if err != nil {
				t.Fatalf("cancel: %v", err)
			}
			if result.Fee != tc.wantFee {
				t.Errorf("expected fee %.2f, got %.2f", tc.wantFee, result.Fee)
			}
			if result.Reason != domain.DefaultCancelReason {
				t.Errorf("expected default reason, got %q", result.Reason)
			}
			if result.Status != domain.RideStatusCancelled {
				t.Errorf("expected cancelled, got %s", result.Status)
			}
		})
	}
}

func TestCancellation_InProgress_Rejected(t *testing.T) {
	t.Parallel()

	rideService := newTestRideService(NewMockRideRegistry())
	ride := bookedRide(t, rideService,
		domain.RideStatusAccepted, domain.RideStatusArriving, domain.RideStatusInProgress)

	if _, err := rideService.CancelRide(context.Background(), ride.ID, "changed my mind"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got: %v", err)
	}
}

func TestCancellation_RegistryFailure_Propagates(t *testing.T) {
	t.Parallel()

	registry := NewMockRideRegistry()
	rideService := newTestRideService(registry)
	ride := bookedRide(t, rideService)

	storeErr := errors.New("registry unavailable")
	registry.MutateError = storeErr

	if _, err := rideService.CancelRide(context.Background(), ride.ID, "busy"); !errors.Is(err, storeErr) {
		t.Fatalf("expected registry error, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 4. RECEIPTS AND HISTORY
// ──────────────────────────────────────────────

func TestReceipt_OnlyForCompletedRides(t *testing.T) {
	t.Parallel()

	rideService := newTestRideService(NewMockRideRegistry())
	ctx := context.Background()

	open := bookedRide(t, rideService, domain.RideStatusAccepted)
	if _, err := rideService.Receipt(ctx, open.ID); !errors.Is(err, service.ErrRideNotCompleted) {
		t.Fatalf("expected ErrRideNotCompleted, got: %v", err)
	}

	done := bookedRide(t, rideService,
		domain.RideStatusAccepted, domain.RideStatusArriving,
		domain.RideStatusInProgress, domain.RideStatusCompleted)
	receipt, err := rideService.Receipt(ctx, done.ID)
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if receipt.RideID != done.ID {
		t.Errorf("expected receipt for %s, got %s", done.ID, receipt.RideID)
	}
	if receipt.TotalFare != done.Fare.Total {
		t.Errorf("expected total %.2f, got %.2f", done.Fare.Total, receipt.TotalFare)
	}
	if receipt.DriverName != done.Driver.Name {
		t.Errorf("expected driver %s, got %s", done.Driver.Name, receipt.DriverName)
	}
}

func TestHistory_OnlyCompletedRides(t *testing.T) {
	t.Parallel()

	registry := NewMockRideRegistry()
	rideService := newTestRideService(registry)
	ctx := context.Background()

	done := bookedRide(t, rideService,
		domain.RideStatusAccepted, domain.RideStatusArriving,
		domain.RideStatusInProgress, domain.RideStatusCompleted)
	bookedRide(t, rideService, domain.RideStatusCancelled)
	bookedRide(t, rideService, domain.RideStatusAccepted)

	history, err := rideService.ListCompleted(ctx)
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(history) != 1 || history[0].ID != done.ID {
		t.Fatalf("expected only %s in history, got %d rides", done.ID, len(history))
	}

	all, err := rideService.ListRides(ctx, nil)
	if err != nil {
		t.Fatalf("list rides: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 rides, got %d", len(all))
	}
}

func TestHistory_RegistryFailure_Propagates(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("registry unavailable")
	registry := NewMockRideRegistry()
	registry.ListError = storeErr
	rideService := newTestRideService(registry)

	if _, err := rideService.ListCompleted(context.Background()); !errors.Is(err, storeErr) {
		t.Fatalf("expected registry error, got: %v", err)
	}
}
