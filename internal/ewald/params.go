package ewald

import "math"

// Sigma returns the Gaussian screening width, L / (c1 * N^(1/6)) with
// L the cube root of the cell volume. Larger c1 shrinks sigma, shifting
// work from the real-space sum to the Fourier-space sum.
func (s *System) Sigma() float64 {
	l := math.Cbrt(s.volume)
	return l / (s.C1 * math.Pow(float64(len(s.Positions)), 1.0/6.0))
}

// RealSpaceCutoff bounds the periodic-image separations that contribute
// non-negligibly to the real-space sum at accuracy c0.
func (s *System) RealSpaceCutoff() float64 {
	return math.Sqrt2 * s.C0 * s.Sigma()
}

// FourierSpaceCutoff bounds the reciprocal-mode magnitudes that contribute
// non-negligibly to the Fourier-space sum at accuracy c0.
func (s *System) FourierSpaceCutoff() float64 {
	return math.Sqrt2 * s.C0 / s.Sigma()
}
