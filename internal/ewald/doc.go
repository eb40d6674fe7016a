// Package ewald computes the electrostatic energy of a periodic array of
// point charges and point dipoles by Ewald summation.
//
// A [System] describes the supercell: three lattice vectors, the site
// positions, and two tuning parameters. c0 sets the truncation accuracy
// (the default 6.0 gives roughly 1e-12 relative error) and c1 balances
// work between the real-space and Fourier-space sums. The split is a
// computational device only; the energy is independent of c1 up to
// truncation error.
//
// The sum is evaluated in three parts: a short-ranged real-space sum over
// periodic-image neighbors within [System.RealSpaceCutoff], a Fourier-space
// sum over reciprocal modes within [System.FourierSpaceCutoff], and a
// self-energy correction removing the interaction of each Gaussian-screened
// site with itself. Results are in units where 4*pi*eps0 = 1.
//
// Neighbor enumeration is a brute-force O(N^2) search over candidate image
// offsets. [System.Neighbors] can be reused across [System.Energy] calls
// with different charge or dipole assignments on the same geometry.
//
// Charge neutrality is a precondition: a charge array whose sum exceeds
// 1e-12 in magnitude is rejected, never renormalized.
package ewald
