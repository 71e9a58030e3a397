package kernel

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Clock supplies the wall-clock instant used by time-gated rules (discount and
// free-delivery cooldowns, the holiday window) and by timestamps on status history.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// RandomSource is the subset of math/rand/v2 used by delay injection, estimated
// delivery windows and tracking code suffixes.
type RandomSource interface {
	// IntN returns a value in [0, n). Panics if n <= 0.
	IntN(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// NewRandomSource returns a RandomSource backed by a PCG generator. A zero seed
// pair draws the seeds from the runtime's global source. The result is safe for
// concurrent use.
func NewRandomSource(seed1, seed2 uint64) RandomSource {
	if seed1 == 0 && seed2 == 0 {
		seed1, seed2 = rand.Uint64(), rand.Uint64() //nolint:gosec // not used for security
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed1, seed2))} //nolint:gosec // not used for security
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// IntInRange returns a value in the half-open interval [lo, hi).
func IntInRange(r RandomSource, lo, hi int) int {
	return lo + r.IntN(hi-lo)
}
