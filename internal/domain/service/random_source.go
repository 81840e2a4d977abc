// Package service defines interfaces for infrastructure capabilities the use
// cases depend on, keeping the application layer free of concrete providers.
package service

// RandomSource supplies the uniform draw for the weighted wheel selection.
// Abstracting it lets tests pin the draw and assert exact prize selection;
// production wiring uses a seeded pseudo-random generator.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}
