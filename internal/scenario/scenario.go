// Package scenario defines the initial-condition record consumed by the
// engine, plus the JSON loader, random generator and built-in presets that
// produce such records. Validation happens here, at the boundary; the engine
// only ever sees records that already satisfy the schema.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidRecord indicates a record that does not satisfy the schema:
// missing field, wrong arity, non-finite value, or zero mass.
var ErrInvalidRecord = errors.New("scenario: invalid initial-condition record")

// Body holds the initial conditions of a single point mass. Position and
// velocity are decoded as slices so that wrong arity is detectable and
// rejected rather than silently truncated.
type Body struct {
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity"`
	Mass     float64   `json:"mass"`
}

// Record maps body labels to their initial conditions. Labels are unique by
// construction (JSON object keys, map keys).
type Record map[string]Body

func checkVec(label, field string, v []float64) error {
	if v == nil {
		return fmt.Errorf("%w: body %q is missing %s", ErrInvalidRecord, label, field)
	}
	if len(v) != 2 {
		return fmt.Errorf("%w: body %q: %s must have 2 components, has %d",
			ErrInvalidRecord, label, field, len(v))
	}
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: body %q: %s has a non-finite component",
				ErrInvalidRecord, label, field)
		}
	}
	return nil
}

// Validate checks every body against the schema: 2-component finite position
// and velocity, finite nonzero mass.
func (r Record) Validate() error {
	for label, b := range r {
		if err := checkVec(label, "position", b.Position); err != nil {
			return err
		}
		if err := checkVec(label, "velocity", b.Velocity); err != nil {
			return err
		}
		if math.IsNaN(b.Mass) || math.IsInf(b.Mass, 0) {
			return fmt.Errorf("%w: body %q: mass is not finite", ErrInvalidRecord, label)
		}
		if b.Mass == 0 {
			return fmt.Errorf("%w: body %q: mass cannot be zero", ErrInvalidRecord, label)
		}
	}
	return nil
}

// Parse decodes a record from raw JSON and validates it. Fields other than
// position, velocity and mass are ignored.
func Parse(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Load reads and validates a record from a JSON file.
//
// The expected structure:
//
//	{
//	  "sun":   {"position": [0, 0],   "velocity": [0, 0],  "mass": 1.9e30},
//	  "earth": {"position": [1.5e11, 0], "velocity": [0, 29780], "mass": 6e24}
//	}
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Save writes a record as indented JSON.
func Save(path string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
