// Package config loads and saves YAML crystal descriptions and provides
// the named example structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ewald/internal/ewald"
	"github.com/san-kum/ewald/internal/lattice"
)

// Config describes a periodic charge/dipole system as it appears in a
// crystal YAML file. Charges and Dipoles are optional; omitted arrays
// default to all-zero at evaluation time.
type Config struct {
	Name      string      `yaml:"name,omitempty"`
	Lattice   [][]float64 `yaml:"lattice"`
	Positions [][]float64 `yaml:"positions"`
	Charges   []float64   `yaml:"charges,omitempty"`
	Dipoles   [][]float64 `yaml:"dipoles,omitempty"`
	C0        float64     `yaml:"c0"`
	C1        float64     `yaml:"c1"`

	// RefDistance, when set, is the nearest-neighbor distance used to
	// report the Madelung product energy * distance.
	RefDistance float64 `yaml:"ref_distance,omitempty"`
}

// Load reads and validates a crystal config from a YAML file. Missing
// c0/c1 take the engine defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{C0: ewald.DefaultC0, C1: ewald.DefaultC1}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a crystal config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the shape of the arrays: exactly three 3-component
// lattice vectors, 3-component positions and dipoles, and charge/dipole
// lengths matching the site count when present.
func (c *Config) Validate() error {
	if len(c.Lattice) != 3 {
		return fmt.Errorf("config: want 3 lattice vectors, got %d", len(c.Lattice))
	}
	for i, v := range c.Lattice {
		if len(v) != 3 {
			return fmt.Errorf("config: lattice vector %d has %d components, want 3", i, len(v))
		}
	}
	if len(c.Positions) == 0 {
		return fmt.Errorf("config: no positions")
	}
	for i, p := range c.Positions {
		if len(p) != 3 {
			return fmt.Errorf("config: position %d has %d components, want 3", i, len(p))
		}
	}
	if c.Charges != nil && len(c.Charges) != len(c.Positions) {
		return fmt.Errorf("config: %d charges for %d positions", len(c.Charges), len(c.Positions))
	}
	if c.Dipoles != nil {
		if len(c.Dipoles) != len(c.Positions) {
			return fmt.Errorf("config: %d dipoles for %d positions", len(c.Dipoles), len(c.Positions))
		}
		for i, d := range c.Dipoles {
			if len(d) != 3 {
				return fmt.Errorf("config: dipole %d has %d components, want 3", i, len(d))
			}
		}
	}
	return nil
}

// System builds the Ewald system described by the config.
func (c *Config) System() (*ewald.System, error) {
	var latvecs [3]lattice.Vec3
	for i, v := range c.Lattice {
		latvecs[i] = lattice.Vec3{v[0], v[1], v[2]}
	}
	positions := make([]lattice.Vec3, len(c.Positions))
	for i, p := range c.Positions {
		positions[i] = lattice.Vec3{p[0], p[1], p[2]}
	}
	c0, c1 := c.C0, c.C1
	if c0 == 0 {
		c0 = ewald.DefaultC0
	}
	if c1 == 0 {
		c1 = ewald.DefaultC1
	}
	return ewald.NewSystemWithParams(latvecs, positions, c0, c1)
}

// ChargeArray returns the per-site charges, or nil when unset.
func (c *Config) ChargeArray() []float64 {
	if c.Charges == nil {
		return nil
	}
	return append([]float64(nil), c.Charges...)
}

// DipoleArray returns the per-site dipoles as vectors, or nil when unset.
func (c *Config) DipoleArray() []lattice.Vec3 {
	if c.Dipoles == nil {
		return nil
	}
	dipoles := make([]lattice.Vec3, len(c.Dipoles))
	for i, d := range c.Dipoles {
		dipoles[i] = lattice.Vec3{d[0], d[1], d[2]}
	}
	return dipoles
}
