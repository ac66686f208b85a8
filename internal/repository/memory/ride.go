// Package memory holds process-local implementations of the repository interfaces.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

var _ repository.RideRegistry = (*RideRegistry)(nil)

// rideEntry guards one ride. Transitions on different rides never share a lock.
type rideEntry struct {
	mu   sync.Mutex
	ride *domain.Ride
}

// RideRegistry is an in-memory repository.RideRegistry.
type RideRegistry struct {
	mu      sync.RWMutex // guards entries only, never held with an entry lock
	entries map[string]*rideEntry
}

// NewRideRegistry creates an empty registry.
func NewRideRegistry() *RideRegistry {
	return &RideRegistry{entries: make(map[string]*rideEntry)}
}

// Insert stores a copy of ride.
func (r *RideRegistry) Insert(ctx context.Context, ride *domain.Ride) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[ride.ID]; exists {
		return fmt.Errorf("ride %s: %w", ride.ID, repository.ErrAlreadyExists)
	}
	r.entries[ride.ID] = &rideEntry{ride: ride.Clone()}
	return nil
}

// Get returns a copy of the ride.
func (r *RideRegistry) Get(ctx context.Context, id string) (*domain.Ride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ride.Clone(), nil
}

// List returns copies of the rides accepted by filter ordered by creation time.
// Each ride is read under its own lock, so the result is not a global snapshot.
func (r *RideRegistry) List(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	entries := make([]*rideEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	rides := make([]*domain.Ride, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if filter == nil || filter(e.ride) {
			rides = append(rides, e.ride.Clone())
		}
		e.mu.Unlock()
	}

	sort.Slice(rides, func(i, j int) bool {
		if rides[i].CreatedAt.Equal(rides[j].CreatedAt) {
			return rides[i].ID < rides[j].ID
		}
		return rides[i].CreatedAt.Before(rides[j].CreatedAt)
	})
	return rides, nil
}

// Mutate runs fn on a working copy while holding the ride's lock. The copy
// replaces the stored ride only when fn succeeds.
func (r *RideRegistry) Mutate(ctx context.Context, id string, fn repository.RideMutation) (*domain.Ride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.ride.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	e.ride = working
	return working.Clone(), nil
}

// Len returns the number of stored rides.
func (r *RideRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *RideRegistry) entry(id string) (*rideEntry, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("ride %s: %w", id, repository.ErrNotFound)
	}
	return e, nil
}
