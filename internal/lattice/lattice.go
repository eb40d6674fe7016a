// Package lattice provides the vector and cell algebra for periodic
// crystals: reciprocal bases, cell volumes, fractional coordinates and
// the image-search bounds used by both direct- and Fourier-space sums.
package lattice

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerate indicates linearly dependent lattice vectors.
var ErrDegenerate = errors.New("lattice: degenerate basis (linearly dependent vectors)")

type Vec3 [3]float64

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

func (v Vec3) Norm2() float64 { return v.Dot(v) }

func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Volume returns the volume of the parallelepiped spanned by the basis,
// |a1 . (a2 x a3)|. Zero means the basis is degenerate.
func Volume(basis [3]Vec3) float64 {
	return math.Abs(basis[0].Dot(basis[1].Cross(basis[2])))
}

// Reciprocal returns the dual basis b such that basis[i] . b[j] = 2*pi
// when i == j and 0 otherwise. It inverts the 3x3 matrix whose columns
// are the basis vectors; a degenerate basis yields ErrDegenerate.
func Reciprocal(basis [3]Vec3) ([3]Vec3, error) {
	a := mat.NewDense(3, 3, nil)
	for col, v := range basis {
		for row := 0; row < 3; row++ {
			a.Set(row, col, v[row])
		}
	}
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return [3]Vec3{}, ErrDegenerate
	}
	var recip [3]Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			recip[i][j] = 2 * math.Pi * inv.At(i, j)
		}
	}
	return recip, nil
}

// Fractional expresses v in lattice coordinates: the returned f satisfies
// v = f[0]*basis[0] + f[1]*basis[1] + f[2]*basis[2].
func Fractional(basis [3]Vec3, v Vec3) (Vec3, error) {
	recip, err := Reciprocal(basis)
	if err != nil {
		return Vec3{}, err
	}
	return FractionalIn(recip, v), nil
}

// FractionalIn is Fractional with the reciprocal basis precomputed, for
// callers converting many points against the same cell.
func FractionalIn(recip [3]Vec3, v Vec3) Vec3 {
	var f Vec3
	for i := 0; i < 3; i++ {
		f[i] = recip[i].Dot(v) / (2 * math.Pi)
	}
	return f
}

// Cartesian converts lattice coordinates back to Cartesian.
func Cartesian(basis [3]Vec3, f Vec3) Vec3 {
	return basis[0].Scale(f[0]).Add(basis[1].Scale(f[1])).Add(basis[2].Scale(f[2]))
}

// SearchBounds returns, per basis direction, the largest integer multiple
// of that vector needed so that tiling the (possibly non-orthogonal) cell
// covers a sphere of the given radius. The perpendicular spacing along
// direction i is basis[i] projected onto the normalized matching
// reciprocal vector; a small epsilon guards against truncation right at
// the boundary.
func SearchBounds(basis [3]Vec3, cutoff float64) ([3]int, error) {
	recip, err := Reciprocal(basis)
	if err != nil {
		return [3]int{}, err
	}
	var bounds [3]int
	for i := 0; i < 3; i++ {
		unit := recip[i].Scale(1 / recip[i].Norm())
		spacing := basis[i].Dot(unit)
		bounds[i] = int(math.Round(cutoff/spacing + 1e-9))
	}
	return bounds, nil
}
