package forecast

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// lockedSource makes a *rand.Rand safe for concurrent callers.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Float64()
}

// NewSeededSource returns a deterministic source. The same seed always yields the same sequence.
func NewSeededSource(seed uint64) RandomSource {
	return &lockedSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewTimeSource returns a source seeded from the wall clock.
func NewTimeSource() RandomSource {
	return NewSeededSource(uint64(time.Now().UnixNano()))
}
