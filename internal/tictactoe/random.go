package tictactoe

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Randomizer is the source of random choices used by the easy and medium bots.
type Randomizer interface {
	// IntN returns a number in [0, n).
	IntN(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomizer returns a Randomizer safe for concurrent use. A zero seed
// seeds it from the clock.
func NewRandomizer(seed uint64) Randomizer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint: gosec // not security sensitive
	}

	return &lockedRand{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint: gosec // it's ok
	}
}

func (that *lockedRand) IntN(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.IntN(n)
}
