package service

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random is the source of randomness behind surge, driver and availability
// generation. Implementations must be safe for concurrent use.
type Random interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
	// IntN returns a number in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// Clock returns the current time.
type Clock func() time.Time

// lockedRandom serialises access to a *rand.Rand, which is not goroutine safe.
type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom wraps src for concurrent use. Pass a seeded source such as
// rand.NewPCG(1, 2) for reproducible runs.
func NewRandom(src rand.Source) Random {
	return &lockedRandom{r: rand.New(src)}
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRandom) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

// DefaultRandom uses the runtime-seeded global generator.
func DefaultRandom() Random {
	return globalRandom{}
}

// uniform returns a number in [lo, hi].
func uniform(r Random, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// intBetween returns an integer in [lo, hi], both inclusive.
func intBetween(r Random, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func pick[T any](r Random, items []T) T {
	return items[r.IntN(len(items))]
}
