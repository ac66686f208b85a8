package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
	"cabbooking/internal/repository/memory"
	"cabbooking/internal/service"
)

// ──────────────────────────────────────────────
// MOCK RIDE REGISTRY
// ──────────────────────────────────────────────

// MockRideRegistry wraps the in-memory registry with call counters and error
// injection.
type MockRideRegistry struct {
	inner *memory.RideRegistry

	mu    sync.Mutex
	taken map[string]bool

	// Counters for verification
	InsertCallCount int32
	GetCallCount    int32
	ListCallCount   int32
	MutateCallCount int32

	// Error injection
	InsertError error
	GetError    error
	ListError   error
	MutateError error
}

var _ repository.RideRegistry = (*MockRideRegistry)(nil)

// NewMockRideRegistry creates a new mock ride registry.
func NewMockRideRegistry() *MockRideRegistry {
	return &MockRideRegistry{
		inner: memory.NewRideRegistry(),
		taken: make(map[string]bool),
	}
}

// Reserve makes Insert report a collision for id without storing anything.
func (m *MockRideRegistry) Reserve(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taken[id] = true
}

// AddRide stores a ride directly, bypassing counters.
func (m *MockRideRegistry) AddRide(ride *domain.Ride) {
	_ = m.inner.Insert(context.Background(), ride)
}

func (m *MockRideRegistry) Insert(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.InsertCallCount, 1)
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	taken := m.taken[ride.ID]
	m.mu.Unlock()
	if taken {
		return repository.ErrAlreadyExists
	}
	return m.inner.Insert(ctx, ride)
}

func (m *MockRideRegistry) Get(ctx context.Context, id string) (*domain.Ride, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.inner.Get(ctx, id)
}

func (m *MockRideRegistry) List(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.inner.List(ctx, filter)
}

func (m *MockRideRegistry) Mutate(ctx context.Context, id string, fn repository.RideMutation) (*domain.Ride, error) {
	atomic.AddInt32(&m.MutateCallCount, 1)
	if m.MutateError != nil {
		return nil, m.MutateError
	}
	return m.inner.Mutate(ctx, id, fn)
}

// CountRides returns the number of stored rides.
func (m *MockRideRegistry) CountRides() int {
	return m.inner.Len()
}

// ──────────────────────────────────────────────
// DETERMINISTIC RANDOMNESS
// ──────────────────────────────────────────────

// midRandom always draws the middle of every range.
type midRandom struct{}

func (midRandom) Float64() float64 { return 0.5 }
func (midRandom) IntN(n int) int   { return n / 2 }

// steppingClock advances by step on every call.
type steppingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// noon is outside every rush-hour window.
var noon = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

// sequentialIDs hands out the given IDs in order, then repeats the last one.
func sequentialIDs(ids ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[i]
		if i < len(ids)-1 {
			i++
		}
		return id
	}
}

// newTestRideService builds a RideService over registry with fixed randomness.
func newTestRideService(registry repository.RideRegistry, opts ...service.RideServiceOption) *service.RideService {
	var rnd service.Random = midRandom{}
	clock := &steppingClock{now: noon, step: time.Minute}
	return service.NewRideService(
		registry,
		service.NewFareCalculator(),
		service.NewSurgePolicy(rnd, clock.Now),
		service.NewDriverPool(rnd),
		nil,
		clock.Now,
		opts...,
	)
}

var (
	mgRoad      = domain.MustGeoPoint(12.9716, 77.5946, "MG Road")
	koramangala = domain.MustGeoPoint(12.9352, 77.6245, "Koramangala")
)
