package starfield

import "math/rand/v2"

// Source supplies uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a seeded PCG generator. The same seed always yields
// the same starfield.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// RandomSeed returns a non-zero seed from the runtime generator.
// Zero is reserved to mean "no seed chosen".
func RandomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
