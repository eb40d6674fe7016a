package ewald

import "github.com/san-kum/ewald/internal/lattice"

// Neighbor is a directed pairwise interaction candidate: site J in the
// periodic image identified by Offset, as seen from site I. The directed
// counterpart (J, I, -Offset) appears elsewhere in the full enumeration.
type Neighbor struct {
	I      int
	J      int
	Offset [3]int
}

// NeighborList holds, per owning site index, the neighbors within the
// real-space cutoff.
type NeighborList [][]Neighbor

// Displacement returns the separation vector for a neighbor entry:
// position of J minus position of I, plus the offset's integer
// combination of lattice vectors.
func (s *System) Displacement(n Neighbor) lattice.Vec3 {
	d := s.Positions[n.J].Sub(s.Positions[n.I])
	for k := 0; k < 3; k++ {
		if n.Offset[k] != 0 {
			d = d.Add(s.Latvecs[k].Scale(float64(n.Offset[k])))
		}
	}
	return d
}

// Neighbors enumerates, for every site, the periodic images of every site
// within the real-space cutoff. The search is brute force over all
// candidate offsets; cost grows as O(N^2) times the cutoff volume. A
// candidate is kept iff 0 < d^2 <= cutoff^2, which excludes a site's own
// zero-offset image. The list may be reused across Energy calls as long
// as the geometry is unchanged.
func (s *System) Neighbors() (NeighborList, error) {
	rc := s.RealSpaceCutoff()
	bounds, err := lattice.SearchBounds(s.Latvecs, rc)
	if err != nil {
		return nil, ErrDegenerateLattice
	}
	// One extra cell per axis covers sites sitting near cell boundaries.
	for k := range bounds {
		bounds[k]++
	}
	rc2 := rc * rc

	list := make(NeighborList, len(s.Positions))
	for i := range s.Positions {
		var nbrs []Neighbor
		for j := range s.Positions {
			for n1 := -bounds[0]; n1 <= bounds[0]; n1++ {
				for n2 := -bounds[1]; n2 <= bounds[1]; n2++ {
					for n3 := -bounds[2]; n3 <= bounds[2]; n3++ {
						nb := Neighbor{I: i, J: j, Offset: [3]int{n1, n2, n3}}
						d2 := s.Displacement(nb).Norm2()
						if d2 > 0 && d2 <= rc2 {
							nbrs = append(nbrs, nb)
						}
					}
				}
			}
		}
		list[i] = nbrs
	}
	return list, nil
}
