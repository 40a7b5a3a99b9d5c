// Package prng provides the small deterministic generator used when serving
// the ball. It is cosmetic and must never be used for anything secret.
package prng

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// LCG constants (Knuth, MMIX). multiplier ≡ 1 mod 4 and increment is odd,
// which gives the full 2^64 period.
const (
	multiplier = 6364136223846793005
	increment  = 1442695040888963407
)

// FallbackSeed is used when no entropy can be read.
const FallbackSeed uint64 = 12345678901234567

// LCG is a 64-bit linear congruential generator.
type LCG struct {
	state uint64
}

// New creates a generator starting from seed.
func New(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Uint64 advances the generator and returns the new state.
func (g *LCG) Uint64() uint64 {
	g.state = g.state*multiplier + increment
	return g.state
}

// Float64 returns a value in [0, 1). Only the top 53 bits of the state are
// used so the conversion is exact and never rounds up to 1.
func (g *LCG) Float64() float64 {
	return float64(g.Uint64()>>11) / (1 << 53)
}

// Range returns a value in [min, max).
func (g *LCG) Range(min, max float64) float64 {
	return min + (max-min)*g.Float64()
}

// Bool returns true with probability p.
func (g *LCG) Bool(p float64) bool {
	return g.Float64() < p
}

// ReadSeed reads a little-endian seed from r. When r fails it returns
// FallbackSeed together with the error, so the caller can log it and carry on.
func ReadSeed(r io.Reader) (uint64, error) {
	if r == nil {
		return FallbackSeed, errors.New("no entropy source")
	}

	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return FallbackSeed, errors.Wrap(err, "read entropy")
	}

	seed := binary.LittleEndian.Uint64(buf[:])
	if seed == 0 {
		return FallbackSeed, errors.New("entropy source returned a zero seed")
	}
	return seed, nil
}
