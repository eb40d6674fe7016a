package ewald

import (
	"fmt"
	"math"

	"github.com/san-kum/ewald/internal/lattice"
)

const (
	// DefaultC0 gives roughly 1e-12 relative truncation error.
	DefaultC0 = 6.0
	// DefaultC1 balances real- and Fourier-space work for typical cells.
	DefaultC1 = 2.0

	neutralityTol   = 1e-12
	minPairDistance = 1e-12
)

// System is an immutable-after-construction description of a periodic
// crystal: the supercell basis, the site positions (wrapped into the
// fundamental cell), and the summation tuning parameters.
type System struct {
	Latvecs   [3]lattice.Vec3
	Positions []lattice.Vec3
	C0        float64
	C1        float64

	recip  [3]lattice.Vec3
	volume float64
	events []WrapEvent
}

// WrapEvent records a site whose supplied position lay outside the
// fundamental cell and was wrapped during construction. Position is the
// original Cartesian position, Fractional its lattice coordinates before
// reduction into [0,1).
type WrapEvent struct {
	Site       int
	Position   lattice.Vec3
	Fractional lattice.Vec3
}

// NewSystem constructs a System with the default c0 and c1.
func NewSystem(latvecs [3]lattice.Vec3, positions []lattice.Vec3) (*System, error) {
	return NewSystemWithParams(latvecs, positions, DefaultC0, DefaultC1)
}

// NewSystemWithParams constructs a System with explicit tuning parameters.
// The lattice vectors must be linearly independent, positions non-empty,
// and c0, c1 positive. Positions are copied and wrapped into the
// fundamental cell; WrapEvents reports the sites that needed it.
func NewSystemWithParams(latvecs [3]lattice.Vec3, positions []lattice.Vec3, c0, c1 float64) (*System, error) {
	if len(positions) == 0 {
		return nil, ErrEmptySystem
	}
	if c0 <= 0 || c1 <= 0 {
		return nil, fmt.Errorf("%w: c0=%g c1=%g", ErrBadParameter, c0, c1)
	}
	recip, err := lattice.Reciprocal(latvecs)
	if err != nil {
		return nil, ErrDegenerateLattice
	}
	s := &System{
		Latvecs:   latvecs,
		Positions: append([]lattice.Vec3(nil), positions...),
		C0:        c0,
		C1:        c1,
		recip:     recip,
		volume:    lattice.Volume(latvecs),
	}
	s.events = s.wrap()
	return s, nil
}

// wrap reduces every position into the fundamental parallelepiped.
// Already-wrapped positions are left untouched, so re-wrapping is a no-op.
func (s *System) wrap() []WrapEvent {
	var events []WrapEvent
	for i, p := range s.Positions {
		f := lattice.FractionalIn(s.recip, p)
		outside := false
		var g lattice.Vec3
		for k := 0; k < 3; k++ {
			g[k] = f[k] - math.Floor(f[k])
			if f[k] < 0 || f[k] >= 1 {
				outside = true
			}
		}
		if outside {
			events = append(events, WrapEvent{Site: i, Position: p, Fractional: f})
			s.Positions[i] = lattice.Cartesian(s.Latvecs, g)
		}
	}
	return events
}

// WrapEvents reports the sites that were outside the fundamental cell
// when the system was constructed. Advisory only; the positions have
// already been corrected.
func (s *System) WrapEvents() []WrapEvent { return s.events }

// NumSites returns the number of sites in the cell.
func (s *System) NumSites() int { return len(s.Positions) }

// Volume returns the supercell volume.
func (s *System) Volume() float64 { return s.volume }

// ReciprocalVectors returns the dual basis b with Latvecs[i] . b[j] = 2*pi*delta_ij.
func (s *System) ReciprocalVectors() [3]lattice.Vec3 { return s.recip }
