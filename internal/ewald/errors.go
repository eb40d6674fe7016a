package ewald

import "errors"

// Domain errors for system construction and energy evaluation.
var (
	// ErrDegenerateLattice indicates linearly dependent lattice vectors.
	ErrDegenerateLattice = errors.New("ewald: degenerate lattice (linearly dependent vectors)")

	// ErrEmptySystem indicates a system with no sites.
	ErrEmptySystem = errors.New("ewald: system has no sites")

	// ErrBadParameter indicates a non-positive c0 or c1.
	ErrBadParameter = errors.New("ewald: accuracy parameters must be positive")

	// ErrLengthMismatch indicates a charge or dipole array whose length
	// does not match the site count.
	ErrLengthMismatch = errors.New("ewald: array length does not match site count")

	// ErrNonNeutral indicates a charge array with nonzero net charge.
	ErrNonNeutral = errors.New("ewald: system is not charge neutral")

	// ErrZeroDistance indicates a neighbor pair at zero separation,
	// meaning overlapping sites or a faulty externally supplied list.
	ErrZeroDistance = errors.New("ewald: zero-distance neighbor pair")
)
