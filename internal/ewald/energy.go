package ewald

import (
	"fmt"
	"math"

	"github.com/san-kum/ewald/internal/lattice"
)

// EnergyOptions holds the optional inputs to Energy. Nil fields take
// their defaults: all-zero charges, all-zero dipoles, and a neighbor
// list computed internally. Supplying Neighbors avoids repeating the
// O(N^2) search when evaluating many charge/dipole assignments on the
// same geometry.
type EnergyOptions struct {
	Charges   []float64
	Dipoles   []lattice.Vec3
	Neighbors NeighborList
}

// Energy returns the Ewald electrostatic energy of the system in units
// where 4*pi*eps0 = 1: the real-space sum over neighbor pairs, plus the
// Fourier-space sum over reciprocal modes, minus the self-energy of each
// Gaussian-screened site.
//
// The charge array must sum to zero within 1e-12; the tiny residual is
// subtracted from every charge to suppress floating-point drift, never
// to repair a genuinely non-neutral input.
func (s *System) Energy(opts EnergyOptions) (float64, error) {
	n := len(s.Positions)

	charges := opts.Charges
	if charges == nil {
		charges = make([]float64, n)
	} else if len(charges) != n {
		return 0, fmt.Errorf("%w: %d charges for %d sites", ErrLengthMismatch, len(charges), n)
	}
	dipoles := opts.Dipoles
	if dipoles == nil {
		dipoles = make([]lattice.Vec3, n)
	} else if len(dipoles) != n {
		return 0, fmt.Errorf("%w: %d dipoles for %d sites", ErrLengthMismatch, len(dipoles), n)
	}

	var net float64
	for _, q := range charges {
		net += q
	}
	if math.Abs(net) >= neutralityTol {
		return 0, fmt.Errorf("%w: net charge %g", ErrNonNeutral, net)
	}
	if net != 0 {
		centered := make([]float64, n)
		mean := net / float64(n)
		for i, q := range charges {
			centered[i] = q - mean
		}
		charges = centered
	}

	neighbors := opts.Neighbors
	if neighbors == nil {
		var err error
		neighbors, err = s.Neighbors()
		if err != nil {
			return 0, err
		}
	}

	sigma := s.Sigma()
	e := 0.0

	if err := s.realSpaceSum(&e, neighbors, charges, dipoles, sigma); err != nil {
		return 0, err
	}
	if err := s.fourierSpaceSum(&e, charges, dipoles, sigma); err != nil {
		return 0, err
	}
	s.selfEnergy(&e, charges, dipoles, sigma)

	return e, nil
}

// realSpaceSum accumulates the short-ranged pair contributions. Each
// directed neighbor entry carries half the pair interaction; its reverse
// entry carries the other half, so no explicit double-count division is
// needed.
func (s *System) realSpaceSum(e *float64, neighbors NeighborList, charges []float64, dipoles []lattice.Vec3, sigma float64) error {
	sigma2 := sigma * sigma
	for _, group := range neighbors {
		for _, nb := range group {
			rvec := s.Displacement(nb)
			r2 := rvec.Norm2()
			r := math.Sqrt(r2)
			if r <= minPairDistance {
				return fmt.Errorf("%w: sites %d and %d at offset %v", ErrZeroDistance, nb.I, nb.J, nb.Offset)
			}
			qi, qj := charges[nb.I], charges[nb.J]
			pi, pj := dipoles[nb.I], dipoles[nb.J]

			erfc0 := math.Erfc(r / (math.Sqrt2 * sigma))
			gauss0 := math.Sqrt(2/math.Pi) * (r / sigma) * math.Exp(-r2/(2*sigma2))
			rhat := rvec.Scale(1 / r)

			// charge-charge
			*e += 0.5 * qi * qj * erfc0 / r

			// charge-dipole cross term, antisymmetric in (i, j)
			cross := qi*pj.Dot(rhat) - pi.Dot(rhat)*qj
			*e += 0.5 * cross / r2 * (erfc0 + gauss0)

			// dipole-dipole
			r3 := r2 * r
			pir := pi.Dot(rhat)
			pjr := pj.Dot(rhat)
			*e += 0.5 * (pi.Dot(pj)/r3*(erfc0+gauss0) -
				3*pir*pjr/r3*(erfc0+(1+r2/(3*sigma2))*gauss0))
		}
	}
	return nil
}

// fourierSpaceSum accumulates the long-ranged contributions from every
// reciprocal mode within the Fourier cutoff, excluding the origin. The
// structure factor collects charges and dipole projections in a single
// complex amplitude per site.
func (s *System) fourierSpaceSum(e *float64, charges []float64, dipoles []lattice.Vec3, sigma float64) error {
	kc := s.FourierSpaceCutoff()
	bounds, err := lattice.SearchBounds(s.recip, kc)
	if err != nil {
		return ErrDegenerateLattice
	}
	kc2 := kc * kc
	sigma2 := sigma * sigma

	for m1 := -bounds[0]; m1 <= bounds[0]; m1++ {
		for m2 := -bounds[1]; m2 <= bounds[1]; m2++ {
			for m3 := -bounds[2]; m3 <= bounds[2]; m3++ {
				if m1 == 0 && m2 == 0 && m3 == 0 {
					continue
				}
				k := s.recip[0].Scale(float64(m1)).
					Add(s.recip[1].Scale(float64(m2))).
					Add(s.recip[2].Scale(float64(m3)))
				k2 := k.Norm2()
				if k2 > kc2 {
					continue
				}

				var rho complex128
				for i, p := range s.Positions {
					phase := k.Dot(p)
					amp := complex(charges[i], dipoles[i].Dot(k))
					rho += amp * complex(math.Cos(phase), -math.Sin(phase))
				}
				norm2 := real(rho)*real(rho) + imag(rho)*imag(rho)
				*e += 4 * math.Pi / (2 * s.volume) * math.Exp(-sigma2*k2/2) / k2 * norm2
			}
		}
	}
	return nil
}

// selfEnergy removes the spurious interaction of each point charge and
// dipole with its own Gaussian screening cloud.
func (s *System) selfEnergy(e *float64, charges []float64, dipoles []lattice.Vec3, sigma float64) {
	root2pi := math.Sqrt(2 * math.Pi)
	sigma3 := sigma * sigma * sigma
	for i := range s.Positions {
		q := charges[i]
		*e -= q*q/(root2pi*sigma) + dipoles[i].Norm2()/(3*root2pi*sigma3)
	}
}
