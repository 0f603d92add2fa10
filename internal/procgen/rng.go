package procgen

import "sync"

// Source supplies uniform random floats in [0, 1).
type Source interface {
	Float64() float64
}

// RNG is a deterministic xorshift64 generator. It is safe for concurrent
// use; every draw is serialized by a mutex.
type RNG struct {
	mu    sync.Mutex
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &RNG{state: seed}
}

// next returns the next random uint64. Caller holds mu.
func (r *RNG) next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return float64(r.next()>>11) / float64(1<<53)
}
