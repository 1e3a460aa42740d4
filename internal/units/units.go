// Package units maps unit names onto SI scale factors. The tables are
// package-level constants in all but declaration and must never be mutated;
// they are read concurrently without synchronization.
package units

import (
	"errors"
	"fmt"
	"sort"
)

// Kind selects one of the three unit tables.
type Kind int

const (
	Time Kind = iota
	Space
	Mass
)

func (k Kind) String() string {
	switch k {
	case Time:
		return "time"
	case Space:
		return "space"
	case Mass:
		return "mass"
	}
	return "unknown"
}

// ErrUnknownUnit indicates a unit name outside the recognized set.
var ErrUnknownUnit = errors.New("units: unknown unit name")

// Multipliers to seconds.
var timeScales = map[string]float64{
	"millisecs": 0.001,
	"secs":      1,
	"mins":      60,
	"hrs":       3600,
	"days":      86_400,
	"wks":       604_800,
	"months":    2_592_000,
	"yrs":       31_536_000,
}

// Multipliers to meters.
var spaceScales = map[string]float64{
	"mm": 0.001,
	"cm": 0.01,
	"m":  1,
	"km": 1000,
}

// Multipliers to kilograms.
var massScales = map[string]float64{
	"mg": 0.000_1,
	"g":  0.001,
	"kg": 1,
	"t":  1,
}

func table(kind Kind) map[string]float64 {
	switch kind {
	case Time:
		return timeScales
	case Space:
		return spaceScales
	case Mass:
		return massScales
	}
	return nil
}

// ScaleFor returns the SI multiplier for the named unit of the given kind.
func ScaleFor(kind Kind, name string) (float64, error) {
	t := table(kind)
	if t == nil {
		return 0, fmt.Errorf("%w: unknown kind %d", ErrUnknownUnit, int(kind))
	}
	s, ok := t[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a %s unit (recognized: %v)",
			ErrUnknownUnit, name, kind, Names(kind))
	}
	return s, nil
}

// Names lists the recognized unit names for a kind, sorted.
func Names(kind Kind) []string {
	t := table(kind)
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scales caches one multiplier per kind for a configured system.
type Scales struct {
	Time  float64
	Space float64
	Mass  float64
}

// For resolves all three unit selections at once.
func For(timeUnit, spaceUnit, massUnit string) (Scales, error) {
	var s Scales
	var err error
	if s.Time, err = ScaleFor(Time, timeUnit); err != nil {
		return Scales{}, err
	}
	if s.Space, err = ScaleFor(Space, spaceUnit); err != nil {
		return Scales{}, err
	}
	if s.Mass, err = ScaleFor(Mass, massUnit); err != nil {
		return Scales{}, err
	}
	return s, nil
}
