package repository

import (
	"context"

	"cabbooking/internal/domain"
)

// RideFilter selects rides in List. A nil filter selects every ride.
type RideFilter func(*domain.Ride) bool

// RideMutation changes a ride in place. Returning an error discards the change.
type RideMutation func(*domain.Ride) error

// RideRegistry is the authoritative store of rides. Implementations must be safe
// for concurrent use and must never hand out their internal copies.
type RideRegistry interface {
	// Insert stores a new ride.
	Insert(ctx context.Context, ride *domain.Ride) error

	// Get retrieves a copy of a ride by ID.
	Get(ctx context.Context, id string) (*domain.Ride, error)

	// List returns copies of the rides matching filter, oldest first.
	List(ctx context.Context, filter RideFilter) ([]*domain.Ride, error)

	// Mutate applies fn to the ride under its exclusive lock and returns the
	// committed copy.
	Mutate(ctx context.Context, id string, fn RideMutation) (*domain.Ride, error)
}
