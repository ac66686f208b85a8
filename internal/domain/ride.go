package domain

import (
	"fmt"
	"strings"
	"time"
)

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusSearching  RideStatus = "searching"
	RideStatusAccepted   RideStatus = "accepted"
	RideStatusArriving   RideStatus = "arriving"
	RideStatusInProgress RideStatus = "in_progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// CancellationFee is charged when a ride is cancelled after a driver was engaged.
const CancellationFee = 50.0

// DefaultCancelReason is used when a cancellation carries no reason.
const DefaultCancelReason = "User cancelled"

// rideTransitions is the lifecycle graph. Statuses missing from the map are terminal.
var rideTransitions = map[RideStatus][]RideStatus{
	RideStatusSearching:  {RideStatusAccepted, RideStatusCancelled},
	RideStatusAccepted:   {RideStatusArriving, RideStatusCancelled},
	RideStatusArriving:   {RideStatusInProgress, RideStatusCancelled},
	RideStatusInProgress: {RideStatusCompleted},
}

var rideStatuses = []RideStatus{
	RideStatusSearching,
	RideStatusAccepted,
	RideStatusArriving,
	RideStatusInProgress,
	RideStatusCompleted,
	RideStatusCancelled,
}

// ParseRideStatus resolves a case-insensitive status name such as "IN_PROGRESS".
func ParseRideStatus(name string) (RideStatus, error) {
	s := RideStatus(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range rideStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}

// CanTransitionTo reports whether the lifecycle allows s -> next.
func (s RideStatus) CanTransitionTo(next RideStatus) bool {
	for _, allowed := range rideTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s RideStatus) IsTerminal() bool {
	return len(rideTransitions[s]) == 0
}

// Ride is one booking from pickup to dropoff.
type Ride struct {
	ID              string
	CabClass        CabClass
	Pickup          GeoPoint
	Dropoff         GeoPoint
	Status          RideStatus
	Driver          *Driver
	Fare            Fare
	CreatedAt       time.Time
	AcceptedAt      time.Time
	StartedAt       time.Time
	CompletedAt     time.Time
	CancelledAt     time.Time
	CancelReason    string
	CancellationFee float64
	ETAMinutes      int
	DistanceKm      float64
	DurationMinutes int
}

// NewRide creates a ride in SEARCHING.
func NewRide(id string, class CabClass, pickup, dropoff GeoPoint, fare Fare, distanceKm float64, durationMinutes int, createdAt time.Time) *Ride {
	return &Ride{
		ID:              id,
		CabClass:        class,
		Pickup:          pickup,
		Dropoff:         dropoff,
		Status:          RideStatusSearching,
		Fare:            fare,
		CreatedAt:       createdAt,
		DistanceKm:      distanceKm,
		DurationMinutes: durationMinutes,
	}
}

// Clone returns a deep copy of r.
func (r *Ride) Clone() *Ride {
	c := *r
	if r.Driver != nil {
		d := *r.Driver
		c.Driver = &d
	}
	return &c
}

// AssignDriver moves a SEARCHING ride to ACCEPTED with the given driver.
func (r *Ride) AssignDriver(driver Driver, etaMinutes int, at time.Time) error {
	if err := r.checkTransition(RideStatusAccepted); err != nil {
		return err
	}
	r.Driver = &driver
	r.Status = RideStatusAccepted
	r.AcceptedAt = r.notBefore(at)
	r.ETAMinutes = etaMinutes
	return nil
}

// Advance moves the ride to ARRIVING, IN_PROGRESS or COMPLETED. Acceptance and
// cancellation have their own methods because they carry extra data.
func (r *Ride) Advance(to RideStatus, at time.Time) error {
	switch to {
	case RideStatusArriving, RideStatusInProgress, RideStatusCompleted:
	default:
		return fmt.Errorf("%w: %s cannot be reached by advancing", ErrInvalidTransition, to)
	}
	if err := r.checkTransition(to); err != nil {
		return err
	}

	at = r.notBefore(at)
	r.Status = to
	switch to {
	case RideStatusInProgress:
		r.StartedAt = at
	case RideStatusCompleted:
		r.CompletedAt = at
	}
	return nil
}

// Cancel moves the ride to CANCELLED and returns the fee owed. The fee depends on
// the status the ride was in before cancelling.
func (r *Ride) Cancel(reason string, at time.Time) (float64, error) {
	if err := r.checkTransition(RideStatusCancelled); err != nil {
		return 0, err
	}
	if reason == "" {
		reason = DefaultCancelReason
	}

	fee := 0.0
	if r.Status == RideStatusAccepted || r.Status == RideStatusArriving {
		fee = CancellationFee
	}

	r.Status = RideStatusCancelled
	r.CancelledAt = r.notBefore(at)
	r.CancelReason = reason
	r.CancellationFee = fee
	return fee, nil
}

func (r *Ride) checkTransition(to RideStatus) error {
	if !r.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, to)
	}
	return nil
}

// notBefore keeps lifecycle timestamps non-decreasing when the clock steps back.
func (r *Ride) notBefore(at time.Time) time.Time {
	latest := r.CreatedAt
	for _, t := range []time.Time{r.AcceptedAt, r.StartedAt} {
		if t.After(latest) {
			latest = t
		}
	}
	if at.Before(latest) {
		return latest
	}
	return at
}
