package selector

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is the uniform random source used for random picks.
type Source interface {
	IntN(n int) int
}

// NewSource returns a seeded PRNG. A zero seed is replaced by one read
// from crypto/rand; the seed actually used is returned so it can be logged
// and the run reproduced.
func NewSource(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		var err error
		seed, err = NewSeed()
		if err != nil {
			return nil, 0, err
		}
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)), seed, nil
}

// NewSeed generates a non-zero random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}
