package service

import (
	"sync"
	"time"

	"cabbooking/internal/domain"
)

// stubRandom replays fixed values, cycling when a list runs out. IntN clamps to n-1.
type stubRandom struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
	fi, ii int
}

func (r *stubRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *stubRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	if v >= n {
		v = n - 1
	}
	return v
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

var (
	noon        = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	rushHour    = time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	mgRoad      = domain.MustGeoPoint(12.9716, 77.5946, "MG Road")
	koramangala = domain.MustGeoPoint(12.9352, 77.6245, "Koramangala")
)
