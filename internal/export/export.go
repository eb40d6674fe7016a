// Package export writes energy results as JSON or CSV and renders a
// simple SVG projection of the unit cell.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// Result is one energy evaluation, with the derived summation parameters
// that produced it.
type Result struct {
	Source        string  `json:"source"`
	Sites         int     `json:"sites"`
	C0            float64 `json:"c0"`
	C1            float64 `json:"c1"`
	Sigma         float64 `json:"sigma"`
	RealCutoff    float64 `json:"real_cutoff"`
	FourierCutoff float64 `json:"fourier_cutoff"`
	NeighborCount int     `json:"neighbor_count"`
	Energy        float64 `json:"energy"`

	// MadelungProduct is energy times the reference distance, when the
	// source config carries one. Nil otherwise.
	MadelungProduct *float64 `json:"madelung_product,omitempty"`
}

// WriteJSON writes a single result as indented JSON.
func WriteJSON(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes results as CSV with a header row.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	header := []string{"source", "sites", "c0", "c1", "sigma", "real_cutoff", "fourier_cutoff", "neighbor_count", "energy"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Source,
			fmt.Sprintf("%d", r.Sites),
			fmt.Sprintf("%g", r.C0),
			fmt.Sprintf("%g", r.C1),
			fmt.Sprintf("%.12g", r.Sigma),
			fmt.Sprintf("%.12g", r.RealCutoff),
			fmt.Sprintf("%.12g", r.FourierCutoff),
			fmt.Sprintf("%d", r.NeighborCount),
			fmt.Sprintf("%.16g", r.Energy),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
