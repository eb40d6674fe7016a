package config

import "math"

// Presets are ready-made crystal structures used by the CLI and as
// validation references. RefDistance is the nearest-neighbor separation
// for the Madelung product.
var Presets = map[string]*Config{
	"cscl": {
		Name:        "CsCl (cubic cell, corner + body center)",
		Lattice:     [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Positions:   [][]float64{{0, 0, 0}, {0.5, 0.5, 0.5}},
		Charges:     []float64{1, -1},
		C0:          6.0,
		C1:          2.0,
		RefDistance: math.Sqrt(3) / 2,
	},
	"cscl-sheared": {
		Name:        "CsCl in a sheared (non-orthogonal) cell, same geometry",
		Lattice:     [][]float64{{1, 0, 0}, {1, 1, 0}, {0, 0, 1}},
		Positions:   [][]float64{{0.5, 0.5, 0.5}, {1, 1, 1}},
		Charges:     []float64{1, -1},
		C0:          6.0,
		C1:          2.0,
		RefDistance: math.Sqrt(3) / 2,
	},
	"nacl": {
		Name:      "NaCl primitive cell (fcc basis)",
		Lattice:   [][]float64{{1, 1, 0}, {1, 0, 1}, {0, 1, 1}},
		Positions: [][]float64{{0, 0, 0}, {1, 1, 1}},
		Charges:   []float64{1, -1},
		C0:        6.0,
		C1:        2.0,
	},
	"dipole": {
		Name:      "single point dipole in a cubic cell",
		Lattice:   [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Positions: [][]float64{{0, 0, 0}},
		Dipoles:   [][]float64{{0, 0, 1}},
		C0:        6.0,
		C1:        2.0,
	},
}
