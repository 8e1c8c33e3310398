package core

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// Rand is the single seeded generator a session draws from. Its state
// round-trips through JSON so a restored session continues the same sequence.
type Rand struct {
	src *rand.PCG
	r   *rand.Rand
}

// NewRand returns a generator seeded with seed.
func NewRand(seed int64) *Rand {
	src := rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	return &Rand{src: src, r: rand.New(src)}
}

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Shuffle randomizes the order of n elements using swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.r.Shuffle(n, swap)
}

// MarshalJSON encodes the generator state.
func (r *Rand) MarshalJSON() ([]byte, error) {
	state, err := r.src.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal rng state: %w", err)
	}
	return json.Marshal(state)
}

// UnmarshalJSON restores a generator from encoded state.
func (r *Rand) UnmarshalJSON(data []byte) error {
	var state []byte
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode rng state: %w", err)
	}
	src := &rand.PCG{}
	if err := src.UnmarshalBinary(state); err != nil {
		return fmt.Errorf("restore rng state: %w", err)
	}
	r.src = src
	r.r = rand.New(src)
	return nil
}
