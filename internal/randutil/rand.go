package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Use it for tests and simulations where a shoe must be reproducible.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewSecure returns a *rand.Rand backed by ChaCha8 and seeded from the
// operating system's CSPRNG. Live shoes use it so observed cards reveal
// nothing about the rest of the shuffle.
func NewSecure() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic("failed to seed rng: " + err.Error())
	}
	return rand.New(rand.NewChaCha8(seed))
}

// SeedFromEntropy returns a random int64 suitable for passing to New when a
// caller wants a reproducible run but has no seed of its own.
func SeedFromEntropy() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("failed to read entropy: " + err.Error())
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
