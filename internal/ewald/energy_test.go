package ewald

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ewald/internal/lattice"
)

// CsCl Madelung constant referenced to the nearest-neighbor distance.
const madelungCsCl = -1.76267477307099

func TestMadelungCsCl(t *testing.T) {
	sys := csclSystem(t)
	e, err := sys.Energy(EnergyOptions{Charges: []float64{1, -1}})
	if err != nil {
		t.Fatalf("Energy: %v", err)
	}
	d := math.Sqrt(3) / 2
	if got := e * d; math.Abs(got-madelungCsCl) > 1e-13 {
		t.Errorf("e*d = %.15f, want %.15f", got, madelungCsCl)
	}
}

func TestMadelungCsClRescaled(t *testing.T) {
	// Isotropic rescaling: energy scales as 1/k, the Madelung product
	// is invariant.
	k := 2.31
	latvecs := [3]lattice.Vec3{{k, 0, 0}, {0, k, 0}, {0, 0, k}}
	sys, err := NewSystem(latvecs, []lattice.Vec3{
		{0, 0, 0},
		{0.5 * k, 0.5 * k, 0.5 * k},
	})
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	e, err := sys.Energy(EnergyOptions{Charges: []float64{1, -1}})
	if err != nil {
		t.Fatalf("Energy: %v", err)
	}
	d := k * math.Sqrt(3) / 2
	if got := e * d; math.Abs(got-madelungCsCl) > 1e-13 {
		t.Errorf("rescaled e*d = %.15f, want %.15f", got, madelungCsCl)
	}
}

func TestMadelungCsClSheared(t *testing.T) {
	// Same physical lattice expressed in a non-orthogonal basis
	// (a2 replaced by a1+a2). One position lands outside the sheared
	// cell and exercises wrapping on the way in.
	latvecs := [3]lattice.Vec3{{1, 0, 0}, {1, 1, 0}, {0, 0, 1}}
	sys, err := NewSystem(latvecs, []lattice.Vec3{
		{0.5, 0.5, 0.5},
		{1, 1, 1},
	})
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	e, err := sys.Energy(EnergyOptions{Charges: []float64{1, -1}})
	if err != nil {
		t.Fatalf("Energy: %v", err)
	}
	d := math.Sqrt(3) / 2
	if got := e * d; math.Abs(got-madelungCsCl) > 1e-13 {
		t.Errorf("sheared e*d = %.15f, want %.15f", got, madelungCsCl)
	}
}

func TestNaClPrimitiveCell(t *testing.T) {
	latvecs := [3]lattice.Vec3{{1, 1, 0}, {1, 0, 1}, {0, 1, 1}}
	sys, err := NewSystem(latvecs, []lattice.Vec3{{0, 0, 0}, {1, 1, 1}})
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	e, err := sys.Energy(EnergyOptions{Charges: []float64{1, -1}})
	if err != nil {
		t.Fatalf("Energy: %v", err)
	}
	const want = -1.7475645946331822
	if math.Abs(e-want) > 1e-13 {
		t.Errorf("energy = %.16f, want %.16f", e, want)
	}
}

func TestSigmaIndependence(t *testing.T) {
	// The real/Fourier split is a computational device: for fixed c0 the
	// energy must not depend on the balance parameter c1.
	positions := []lattice.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}
	charges := []float64{1, -1}
	dipoles := []lattice.Vec3{{0.3, -0.2, 0.1}, {-0.1, 0.4, 0.2}}

	var energies []float64
	for _, c1 := range []float64{0.4, 2, 10} {
		sys, err := NewSystemWithParams(cubicCell, positions, 6.0, c1)
		if err != nil {
			t.Fatalf("c1=%g: NewSystem: %v", c1, err)
		}
		e, err := sys.Energy(EnergyOptions{Charges: charges, Dipoles: dipoles})
		if err != nil {
			t.Fatalf("c1=%g: Energy: %v", c1, err)
		}
		energies = append(energies, e)
	}
	for i := 1; i < len(energies); i++ {
		if math.Abs(energies[i]-energies[0]) > 1e-11 {
			t.Errorf("energy varies with c1: %v", energies)
		}
	}
}

func TestAccuracyAcrossCellShapes(t *testing.T) {
	// The cutoff derivation must generalize to non-orthogonal cells:
	// the truncation error at c0=6 stays at the same order of magnitude
	// regardless of shear or balance.
	cases := []struct {
		name    string
		latvecs [3]lattice.Vec3
		pos     []lattice.Vec3
		c1      float64
	}{
		{"orthogonal", cubicCell, []lattice.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, 2},
		{"orthogonal-c1-1", cubicCell, []lattice.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, 1},
		{"orthogonal-c1-4", cubicCell, []lattice.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, 4},
		{"sheared", [3]lattice.Vec3{{1, 0, 0}, {1, 1, 0}, {0, 0, 1}},
			[]lattice.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, 2},
	}
	d := math.Sqrt(3) / 2
	for _, tc := range cases {
		sys, err := NewSystemWithParams(tc.latvecs, tc.pos, 6.0, tc.c1)
		if err != nil {
			t.Fatalf("%s: NewSystem: %v", tc.name, err)
		}
		e, err := sys.Energy(EnergyOptions{Charges: []float64{1, -1}})
		if err != nil {
			t.Fatalf("%s: Energy: %v", tc.name, err)
		}
		if diff := math.Abs(e*d - madelungCsCl); diff > 1e-11 {
			t.Errorf("%s: truncation error %.3e exceeds 1e-11", tc.name, diff)
		}
	}
}

func TestSingleDipoleEnergy(t *testing.T) {
	// A unit dipole on a simple cubic lattice under tin-foil boundary
	// conditions has energy -2*pi/3 per unit volume.
	sys, err := NewSystem(cubicCell, []lattice.Vec3{{0, 0, 0}})
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	e, err := sys.Energy(EnergyOptions{Dipoles: []lattice.Vec3{{0, 0, 1}}})
	if err != nil {
		t.Fatalf("Energy: %v", err)
	}
	if want := -2 * math.Pi / 3; math.Abs(e-want) > 1e-10 {
		t.Errorf("dipole energy = %.12f, want %.12f", e, want)
	}
}

func TestDipoleAsChargePairLimit(t *testing.T) {
	// Replace a unit dipole by charges -1/eps and +1/eps separated by
	// eps along z. After removing the exactly known internal pair energy
	// q1*q2/dr the periodic energies agree to O(eps^2).
	const eps = 0.005

	dipSys, err := NewSystem(cubicCell, []lattice.Vec3{{0, 0, 0}})
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	eDip, err := dipSys.Energy(EnergyOptions{Dipoles: []lattice.Vec3{{0, 0, 1}}})
	if err != nil {
		t.Fatalf("dipole Energy: %v", err)
	}

	pairSys, err := NewSystem(cubicCell, []lattice.Vec3{{0, 0, 0}, {0, 0, eps}})
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	ePair, err := pairSys.Energy(EnergyOptions{Charges: []float64{-1 / eps, 1 / eps}})
	if err != nil {
		t.Fatalf("pair Energy: %v", err)
	}

	internal := (-1 / eps) * (1 / eps) / eps
	corrected := ePair - internal
	if rel := math.Abs(corrected-eDip) / math.Abs(eDip); rel > 5e-4 {
		t.Errorf("pair limit %.8f vs dipole %.8f (rel %.2e)", corrected, eDip, rel)
	}
}

func TestNeutralityEnforced(t *testing.T) {
	sys := csclSystem(t)

	_, err := sys.Energy(EnergyOptions{Charges: []float64{1, -0.999}})
	if !errors.Is(err, ErrNonNeutral) {
		t.Fatalf("expected ErrNonNeutral, got %v", err)
	}
	_, err = sys.Energy(EnergyOptions{Charges: []float64{1, -1 + 2e-12}})
	if !errors.Is(err, ErrNonNeutral) {
		t.Fatalf("expected ErrNonNeutral at 2e-12 imbalance, got %v", err)
	}

	// Residual floating-point drift below the tolerance is corrected.
	if _, err = sys.Energy(EnergyOptions{Charges: []float64{1, -1 + 1e-13}}); err != nil {
		t.Fatalf("tiny drift rejected: %v", err)
	}
}

func TestLengthMismatch(t *testing.T) {
	sys := csclSystem(t)

	_, err := sys.Energy(EnergyOptions{Charges: []float64{1, -1, 0}})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch for charges, got %v", err)
	}
	_, err = sys.Energy(EnergyOptions{Dipoles: []lattice.Vec3{{0, 0, 1}}})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch for dipoles, got %v", err)
	}
}

func TestZeroDistanceNeighborFatal(t *testing.T) {
	// Overlapping sites never appear in an internally computed list, but
	// a faulty external list must be rejected, not summed.
	sys, err := NewSystem(cubicCell, []lattice.Vec3{{0, 0, 0}, {0, 0, 0}})
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	bad := NeighborList{
		{{I: 0, J: 1, Offset: [3]int{0, 0, 0}}},
		nil,
	}
	_, err = sys.Energy(EnergyOptions{
		Charges:   []float64{1, -1},
		Neighbors: bad,
	})
	if !errors.Is(err, ErrZeroDistance) {
		t.Fatalf("expected ErrZeroDistance, got %v", err)
	}
}

func TestNeighborListReuse(t *testing.T) {
	sys := csclSystem(t)
	nbrs, err := sys.Neighbors()
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}

	e1, err := sys.Energy(EnergyOptions{Charges: []float64{1, -1}})
	if err != nil {
		t.Fatalf("Energy: %v", err)
	}
	e2, err := sys.Energy(EnergyOptions{Charges: []float64{1, -1}, Neighbors: nbrs})
	if err != nil {
		t.Fatalf("Energy with reused neighbors: %v", err)
	}
	if e1 != e2 {
		t.Errorf("reused neighbor list changed energy: %v vs %v", e1, e2)
	}

	// Same geometry, different assignment.
	e3, err := sys.Energy(EnergyOptions{Charges: []float64{2, -2}, Neighbors: nbrs})
	if err != nil {
		t.Fatalf("Energy with rescaled charges: %v", err)
	}
	if math.Abs(e3-4*e1) > 1e-10*math.Abs(e1) {
		t.Errorf("doubling charges: %v, want %v", e3, 4*e1)
	}
}

func TestDefaultsGiveZeroEnergy(t *testing.T) {
	sys := csclSystem(t)
	e, err := sys.Energy(EnergyOptions{})
	if err != nil {
		t.Fatalf("Energy: %v", err)
	}
	if e != 0 {
		t.Errorf("all-zero charges and dipoles: energy %v, want 0", e)
	}
}
