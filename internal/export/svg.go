package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/ewald/internal/ewald"
)

// CellSVG renders the unit cell projected onto the a1-a2 plane: the cell
// outline as a parallelogram and one circle per site, red for positive
// charge, blue for negative, grey for neutral. Radius scales with charge
// magnitude. Charges may be nil.
func CellSVG(sys *ewald.System, charges []float64, size float64) string {
	a1 := sys.Latvecs[0]
	a2 := sys.Latvecs[1]

	// Orthonormal frame in the a1-a2 plane.
	e1 := a1.Scale(1 / a1.Norm())
	normal := a1.Cross(a2)
	e2 := normal.Cross(a1)
	e2 = e2.Scale(1 / e2.Norm())

	project := func(i int) (float64, float64) {
		p := sys.Positions[i]
		return p.Dot(e1), p.Dot(e2)
	}

	corners := [][2]float64{
		{0, 0},
		{a1.Dot(e1), a1.Dot(e2)},
		{a1.Add(a2).Dot(e1), a1.Add(a2).Dot(e2)},
		{a2.Dot(e1), a2.Dot(e2)},
	}

	minX, maxX := corners[0][0], corners[0][0]
	minY, maxY := corners[0][1], corners[0][1]
	for _, c := range corners {
		minX = math.Min(minX, c[0])
		maxX = math.Max(maxX, c[0])
		minY = math.Min(minY, c[1])
		maxY = math.Max(maxY, c[1])
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	pad := span * 0.1
	scale := size / (span + 2*pad)

	toPx := func(x, y float64) (float64, float64) {
		// SVG y grows downward.
		return (x - minX + pad) * scale, size - (y-minY+pad)*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	sb.WriteString(`<polygon points="`)
	for i, c := range corners {
		x, y := toPx(c[0], c[1])
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}
	sb.WriteString(`" fill="none" stroke="#444444" stroke-width="1"/>
`)

	maxQ := 0.0
	for _, q := range charges {
		maxQ = math.Max(maxQ, math.Abs(q))
	}

	for i := range sys.Positions {
		px, py := project(i)
		x, y := toPx(px, py)
		fill := "#999999"
		r := size * 0.02
		if charges != nil && maxQ > 0 {
			q := charges[i]
			if q > 0 {
				fill = "#ff5555"
			} else if q < 0 {
				fill = "#5588ff"
			}
			r = size * (0.012 + 0.02*math.Abs(q)/maxQ)
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
