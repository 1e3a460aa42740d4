package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt    = 1.0
	DefaultLimit = 100
)

// Config is the yaml run configuration. CLI flags override file values.
type Config struct {
	Scenario   string       `yaml:"scenario"` // path to a scenario JSON file
	Preset     string       `yaml:"preset"`   // built-in scenario name
	Dt         float64      `yaml:"dt"`
	TimeUnits  string       `yaml:"time_units"`
	SpaceUnits string       `yaml:"space_units"`
	MassUnits  string       `yaml:"mass_units"`
	Limit      int          `yaml:"limit"`
	NoHistory  bool         `yaml:"no_history"`
	Random     RandomConfig `yaml:"random"`
}

// RandomConfig bounds the random scenario generator. Two-element arrays are
// [min, max].
type RandomConfig struct {
	Seed      int64      `yaml:"seed"`
	MinBodies int        `yaml:"min_bodies"`
	MaxBodies int        `yaml:"max_bodies"`
	PosX      [2]float64 `yaml:"pos_x"`
	PosY      [2]float64 `yaml:"pos_y"`
	VelX      [2]float64 `yaml:"vel_x"`
	VelY      [2]float64 `yaml:"vel_y"`
	Mass      [2]float64 `yaml:"mass"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:         DefaultDt,
		TimeUnits:  "secs",
		SpaceUnits: "m",
		MassUnits:  "kg",
		Limit:      DefaultLimit,
		Random: RandomConfig{
			MinBodies: 1,
			MaxBodies: 10,
			PosX:      [2]float64{-200, 200},
			PosY:      [2]float64{-200, 200},
			VelX:      [2]float64{-100, 100},
			VelY:      [2]float64{-100, 100},
			Mass:      [2]float64{1e10, 1e17},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
