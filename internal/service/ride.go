package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// maxRideIDAttempts bounds retries when a generated ride ID is already taken.
const maxRideIDAttempts = 5

// RideService is the entry point for quoting, booking and progressing rides.
// It is safe for concurrent use; all shared state lives in the registry.
type RideService struct {
	rides               repository.RideRegistry
	fares               *FareCalculator
	surge               *SurgePolicy
	drivers             *DriverPool
	notificationService *NotificationService
	now                 Clock
	newRideID           func() string
}

// RideServiceOption customises a RideService.
type RideServiceOption func(*RideService)

// WithRideIDGenerator replaces the default ride ID generator.
func WithRideIDGenerator(fn func() string) RideServiceOption {
	return func(s *RideService) { s.newRideID = fn }
}

// NewRideService creates a new RideService. notificationService may be nil.
func NewRideService(
	rides repository.RideRegistry,
	fares *FareCalculator,
	surge *SurgePolicy,
	drivers *DriverPool,
	notificationService *NotificationService,
	now Clock,
	opts ...RideServiceOption,
) *RideService {
	s := &RideService{
		rides:               rides,
		fares:               fares,
		surge:               surge,
		drivers:             drivers,
		notificationService: notificationService,
		now:                 now,
		newRideID:           newRideID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newRideID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// CancellationResult is the outcome of a cancellation.
type CancellationResult struct {
	RideID string
	Status domain.RideStatus
	Reason string
	Fee    float64
}

// CabAvailability describes nearby supply for one cab class.
type CabAvailability struct {
	Class           domain.CabClass
	DisplayName     string
	Capacity        int
	AvailableCount  int
	ETAMinutes      int
	SurgeMultiplier float64
}

// QuoteFare prices a trip with the current surge at the pickup point.
func (s *RideService) QuoteFare(ctx context.Context, pickup, dropoff domain.GeoPoint, class domain.CabClass) (domain.Fare, error) {
	defer newrelic.FromContext(ctx).StartSegment("RideService/QuoteFare").End()

	return s.fares.Estimate(pickup, dropoff, class, s.surge.MultiplierFor(pickup))
}

// BookRide creates a SEARCHING ride with its fare fixed at booking time.
func (s *RideService) BookRide(ctx context.Context, pickup, dropoff domain.GeoPoint, class domain.CabClass) (*domain.Ride, error) {
	defer newrelic.FromContext(ctx).StartSegment("RideService/BookRide").End()

	fare, err := s.QuoteFare(ctx, pickup, dropoff, class)
	if err != nil {
		return nil, err
	}
	distanceKm, durationMinutes := s.fares.EstimateTrip(pickup, dropoff)

	for attempt := 0; attempt < maxRideIDAttempts; attempt++ {
		ride := domain.NewRide(
			s.newRideID(),
			class,
			pickup,
			dropoff,
			fare,
			domain.RoundTo(distanceKm, 2),
			int(durationMinutes),
			s.now(),
		)

		err := s.rides.Insert(ctx, ride)
		if errors.Is(err, repository.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if s.notificationService != nil {
			s.notificationService.NotifyRideBooked(ctx, ride)
		}
		return ride, nil
	}
	return nil, ErrRideIDExhausted
}

// GetRide returns a snapshot of a ride.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rides.Get(ctx, rideID)
}

// ListRides returns every ride, or only those in status when it is non-nil.
func (s *RideService) ListRides(ctx context.Context, status *domain.RideStatus) ([]*domain.Ride, error) {
	var filter repository.RideFilter
	if status != nil {
		want := *status
		filter = func(r *domain.Ride) bool { return r.Status == want }
	}
	return s.rides.List(ctx, filter)
}

// ListCompleted returns the ride history: rides that reached COMPLETED.
func (s *RideService) ListCompleted(ctx context.Context) ([]*domain.Ride, error) {
	completed := domain.RideStatusCompleted
	return s.ListRides(ctx, &completed)
}

// AssignDriver dispatches a synthetic driver to a SEARCHING ride. Of several
// concurrent calls on the same ride exactly one succeeds.
func (s *RideService) AssignDriver(ctx context.Context, rideID string) (*domain.Ride, error) {
	defer newrelic.FromContext(ctx).StartSegment("RideService/AssignDriver").End()

	current, err := s.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(domain.RideStatusAccepted) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, domain.RideStatusAccepted)
	}

	// generated outside the ride lock
	driver, eta := s.drivers.Dispatch(current.Pickup)

	ride, err := s.rides.Mutate(ctx, rideID, func(r *domain.Ride) error {
		return r.AssignDriver(driver, eta, s.now())
	})
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		s.notificationService.NotifyDriverAssigned(ctx, ride)
	}
	return ride, nil
}

// SetStatus moves a ride to target. ACCEPTED dispatches a driver and CANCELLED
// cancels with the default reason; SEARCHING can never be requested.
func (s *RideService) SetStatus(ctx context.Context, rideID string, target domain.RideStatus) (*domain.Ride, error) {
	defer newrelic.FromContext(ctx).StartSegment("RideService/SetStatus").End()

	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	switch target {
	case domain.RideStatusAccepted:
		return s.AssignDriver(ctx, rideID)
	case domain.RideStatusCancelled:
		return s.cancel(ctx, rideID, domain.DefaultCancelReason)
	case domain.RideStatusSearching:
		if _, err := s.rides.Get(ctx, rideID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", target, ErrStatusNotSettable)
	}

	ride, err := s.rides.Mutate(ctx, rideID, func(r *domain.Ride) error {
		return r.Advance(target, s.now())
	})
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		s.notificationService.NotifyStatusChanged(ctx, ride)
	}
	return ride, nil
}

// CancelRide cancels a ride that has not started. A fee applies when a driver
// had already accepted.
func (s *RideService) CancelRide(ctx context.Context, rideID, reason string) (*CancellationResult, error) {
	defer newrelic.FromContext(ctx).StartSegment("RideService/CancelRide").End()

	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.cancel(ctx, rideID, reason)
	if err != nil {
		return nil, err
	}
	return &CancellationResult{
		RideID: ride.ID,
		Status: ride.Status,
		Reason: ride.CancelReason,
		Fee:    ride.CancellationFee,
	}, nil
}

func (s *RideService) cancel(ctx context.Context, rideID, reason string) (*domain.Ride, error) {
	ride, err := s.rides.Mutate(ctx, rideID, func(r *domain.Ride) error {
		_, err := r.Cancel(reason, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		s.notificationService.NotifyRideCancelled(ctx, ride)
	}
	return ride, nil
}

// AvailableCabs lists nearby supply for every cab class.
func (s *RideService) AvailableCabs(ctx context.Context, location domain.GeoPoint) ([]CabAvailability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classes := domain.CabClasses()
	cabs := make([]CabAvailability, 0, len(classes))
	for _, class := range classes {
		rates, err := class.Rates()
		if err != nil {
			return nil, err
		}
		count, eta := s.drivers.Availability()
		cabs = append(cabs, CabAvailability{
			Class:           class,
			DisplayName:     rates.DisplayName,
			Capacity:        rates.Capacity,
			AvailableCount:  count,
			ETAMinutes:      eta,
			SurgeMultiplier: s.surge.MultiplierFor(location),
		})
	}
	return cabs, nil
}

// Receipt builds the receipt of a completed ride.
func (s *RideService) Receipt(ctx context.Context, rideID string) (*domain.Receipt, error) {
	ride, err := s.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	receipt, err := BuildReceipt(ride, s.now())
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		s.notificationService.NotifyReceiptReady(ctx, receipt)
	}
	return receipt, nil
}
