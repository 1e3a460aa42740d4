package scenario

import (
	"fmt"
	"math/rand"
)

// Range bounds a uniformly sampled scalar.
type Range struct {
	Min, Max float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// VectorRange bounds the two coordinates of a sampled vector independently.
type VectorRange struct {
	X, Y Range
}

// Randomizer generates schema-valid records with uniformly sampled initial
// conditions. Zero value is not usable; construct with NewRandomizer.
type Randomizer struct {
	rng *rand.Rand

	MinBodies, MaxBodies int
	Positions            VectorRange
	Velocities           VectorRange
	Masses               Range
}

// NewRandomizer returns a seeded generator with the default ranges:
// 1-10 bodies, positions in ±200, velocities in ±100, masses in 1e10-1e17.
func NewRandomizer(seed int64) *Randomizer {
	return &Randomizer{
		rng:        rand.New(rand.NewSource(seed)),
		MinBodies:  1,
		MaxBodies:  10,
		Positions:  VectorRange{X: Range{-200, 200}, Y: Range{-200, 200}},
		Velocities: VectorRange{X: Range{-100, 100}, Y: Range{-100, 100}},
		Masses:     Range{1e10, 1e17},
	}
}

// Record samples a new record. Bodies are labeled body0..bodyN-1.
func (r *Randomizer) Record() Record {
	n := r.MinBodies
	if r.MaxBodies > r.MinBodies {
		n += r.rng.Intn(r.MaxBodies - r.MinBodies + 1)
	}

	rec := make(Record, n)
	for i := 0; i < n; i++ {
		rec[fmt.Sprintf("body%d", i)] = Body{
			Position: []float64{r.Positions.X.sample(r.rng), r.Positions.Y.sample(r.rng)},
			Velocity: []float64{r.Velocities.X.sample(r.rng), r.Velocities.Y.sample(r.rng)},
			Mass:     r.Masses.sample(r.rng),
		}
	}
	return rec
}
