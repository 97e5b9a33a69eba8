package quiz

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies the random draws used by Shuffle. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// lockedSource makes a *rand.Rand safe for use by concurrent HTTP handlers
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// NewSource returns a goroutine-safe Source seeded with seed
func NewSource(seed int64) Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

// NewTimeSource returns a Source seeded from the current time
func NewTimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

// Shuffle returns a uniformly random permutation of in using Fisher-Yates.
// The input slice is never modified.
func Shuffle[T any](src Source, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
