package generate

import (
	"math/rand/v2"
)

// Rand is the only source of randomness the generator uses.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Uint64() uint64
	Uint64N(n uint64) uint64
	IntN(n int) int
}

// NewRand returns a deterministic PCG source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
