package scenario

import (
	"math"
	"sort"
)

// Gravitational constant [m^3 kg^-1 s^-2], used here only to seed circular
// orbital velocities for the built-in scenarios (SI units assumed).
const gSI = 6.674e-11

// Presets returns one of the built-in scenarios, or nil when the name is
// unknown. Preset records assume secs/m/kg units.
func Preset(name string) Record {
	switch name {
	case "binary":
		return Record{
			"primary": {
				Position: []float64{0, 0},
				Velocity: []float64{0, 0},
				Mass:     7e11,
			},
			"secondary": {
				Position: []float64{0, 10},
				Velocity: []float64{0, 0},
				Mass:     5e11,
			},
		}
	case "orbit":
		return orbitPreset()
	}
	return nil
}

// PresetNames lists the built-in scenario names, sorted.
func PresetNames() []string {
	names := []string{"binary", "orbit"}
	sort.Strings(names)
	return names
}

// orbitPreset places a heavy central body with four light satellites started
// on circular orbits, velocity perpendicular to the radius vector.
func orbitPreset() Record {
	const central = 1e15

	rec := Record{
		"core": {
			Position: []float64{0, 0},
			Velocity: []float64{0, 0},
			Mass:     central,
		},
	}

	satellites := []struct {
		label  string
		radius float64
	}{
		{"inner", 100},
		{"mid", 150},
		{"outer", 225},
		{"far", 330},
	}
	for i, sat := range satellites {
		angle := float64(i) * math.Pi / 2
		x, y := sat.radius*math.Cos(angle), sat.radius*math.Sin(angle)
		v := math.Sqrt(gSI * central / sat.radius)
		rec[sat.label] = Body{
			Position: []float64{x, y},
			Velocity: []float64{-y / sat.radius * v, x / sat.radius * v},
			Mass:     1e3,
		}
	}
	return rec
}
