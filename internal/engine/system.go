// Package engine advances systems of gravitating point bodies in fixed time
// steps. A System stores per-body state column-wise in index-aligned slices;
// one step is the ordered triad UpdateAccelerations, UpdatePositions,
// UpdateVelocities, normally driven through a StepSequence.
package engine

import (
	"fmt"
	"sort"

	"github.com/san-kum/planetary/internal/scenario"
	"github.com/san-kum/planetary/internal/units"
)

// G is the gravitational constant [m^3 kg^-1 s^-2].
const G = 6.674e-11

// Options configures system construction.
type Options struct {
	// Dt is the step size, in TimeUnits.
	Dt float64
	// Unit names; see the units package for the recognized sets.
	TimeUnits  string
	SpaceUnits string
	MassUnits  string
	// Limit caps the number of advances a StepSequence over this system
	// will perform.
	Limit int
	// TrackHistory enables recording one position snapshot per step plus
	// the initial snapshot.
	TrackHistory bool
}

// DefaultOptions mirrors the conventional run setup: unit step in seconds,
// meters and kilograms, 100 steps, history on.
func DefaultOptions() Options {
	return Options{
		Dt:           1,
		TimeUnits:    "secs",
		SpaceUnits:   "m",
		MassUnits:    "kg",
		Limit:        100,
		TrackHistory: true,
	}
}

// System is an index-aligned ensemble of bodies: slot i means the same body
// in Labels, Pos, Vel, Mass and Acc for the system's lifetime. Masses are
// validated nonzero at construction and never mutated afterwards.
type System struct {
	Labels []string
	Pos    []Vec2
	Vel    []Vec2
	Mass   []float64
	Acc    []Vec2

	Dt     float64
	Scales units.Scales
	Limit  int

	// History holds one position snapshot per elapsed step plus the
	// initial one, never aliasing Pos. Nil when tracking is disabled.
	History [][]Vec2

	// geff is G with the unit scales folded in, cached at construction.
	geff float64
}

// New builds a System from a validated record and unit selections. Bodies
// are indexed by sorted label so that construction is deterministic
// regardless of record iteration order.
func New(rec scenario.Record, opt Options) (*System, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if opt.Dt <= 0 {
		return nil, fmt.Errorf("%w, got %v", ErrBadStep, opt.Dt)
	}
	if opt.Limit <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrBadLimit, opt.Limit)
	}

	scales, err := units.For(opt.TimeUnits, opt.SpaceUnits, opt.MassUnits)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(rec))
	for label := range rec {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	n := len(labels)
	s := &System{
		Labels: labels,
		Pos:    make([]Vec2, n),
		Vel:    make([]Vec2, n),
		Mass:   make([]float64, n),
		Acc:    make([]Vec2, n),
		Dt:     opt.Dt,
		Scales: scales,
		Limit:  opt.Limit,
		geff:   G * scales.Mass * scales.Time * scales.Time / (scales.Space * scales.Space * scales.Space),
	}

	for i, label := range labels {
		b := rec[label]
		s.Pos[i] = Vec2{b.Position[0], b.Position[1]}
		s.Vel[i] = Vec2{b.Velocity[0], b.Velocity[1]}
		s.Mass[i] = b.Mass
	}

	if opt.TrackHistory {
		s.History = make([][]Vec2, 0, opt.Limit+1)
		s.snapshot()
	}
	return s, nil
}

// N returns the number of bodies.
func (s *System) N() int {
	return len(s.Labels)
}

// Clone deep-copies the system, including its history.
func (s *System) Clone() *System {
	c := &System{
		Labels: append([]string(nil), s.Labels...),
		Pos:    append([]Vec2(nil), s.Pos...),
		Vel:    append([]Vec2(nil), s.Vel...),
		Mass:   append([]float64(nil), s.Mass...),
		Acc:    append([]Vec2(nil), s.Acc...),
		Dt:     s.Dt,
		Scales: s.Scales,
		Limit:  s.Limit,
		geff:   s.geff,
	}
	if s.History != nil {
		c.History = make([][]Vec2, len(s.History), cap(s.History))
		for i, snap := range s.History {
			c.History[i] = append([]Vec2(nil), snap...)
		}
	}
	return c
}

// snapshot appends an independent copy of the current positions.
func (s *System) snapshot() {
	s.History = append(s.History, append([]Vec2(nil), s.Pos...))
}
