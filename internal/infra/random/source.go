// Package random provides the production randomness source for the prize
// wheel. Tests inject a fixed source instead.
package random

import (
	"math/rand/v2"

	"tsmarket/internal/domain/service"
)

type mathRandomSource struct{}

// New returns a RandomSource backed by math/rand/v2's shared generator,
// which is safe for concurrent use.
func New() service.RandomSource {
	return mathRandomSource{}
}

// Float64 returns a uniformly distributed draw in [0, 1).
func (mathRandomSource) Float64() float64 {
	return rand.Float64()
}
