package domain

import (
	"io"
	"math/rand"
)

// Generator is the source of randomness used to fill a roster with synthetic
// participants. Seeding it makes roster creation reproducible.
type Generator interface {
	io.Reader
	Intn(n int) int
	Float64() float64
}

var _ Generator = (*rand.Rand)(nil)

func NewSeededGenerator(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
