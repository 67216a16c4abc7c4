package pattern

import (
	"math"

	"github.com/soypat/roller"
)

// ringStep is the axial quantization of the ring lookup table in
// millimetres. Finer steps were indistinguishable in printed output.
const ringStep = 0.5

// tangent lays numWraps rope rings perpendicular to the roller axis.
// Every ring shares the same angular profile and differs only in its
// axial center, so the profile is computed once per Generate call as a
// lookup table over (angular column, quantized distance to ring center)
// and reused for every ring and row. Recomputing the full strand math per
// ring made the original prototype unusably slow.
type tangent struct {
	rope
	zStep float64
	wraps int
	grid  roller.Grid

	// table[j][q] is the ring height at angular column j and axial
	// distance q*ringStep from a ring center. Populated fully before any
	// cell reads it and read-only afterwards.
	table [][]float64
}

func newTangent(p roller.RollerParams, specs roller.Specs, grid roller.Grid) *tangent {
	t := &tangent{
		rope: rope{
			width:        p.RopeWidth,
			depth:        p.RopeDepth,
			orbit:        p.StrandOrbit(),
			strandRadius: specs.StrandRadius,
			strands:      p.NumStrands,
			smoothing:    p.Smoothing,
		},
		zStep: p.Width / float64(p.NumWraps),
		wraps: p.NumWraps,
		grid:  grid,
	}
	radius, circ := specs.Radius(), specs.Circumference
	steps := int(math.Round(p.RopeWidth/ringStep)) + 1
	t.table = make([][]float64, grid.AngularSteps)
	for j := range t.table {
		theta := grid.Theta(j)
		row := make([]float64, steps)
		for q := range row {
			row[q] = t.ringValue(theta, float64(q)*ringStep, radius, circ, p.TwistRate)
		}
		t.table[j] = row
	}
	return t
}

// ringValue is the uncached ring profile: the rope height at a given
// angle and non-negative axial distance from the ring center.
func (t *tangent) ringValue(theta, dist, radius, circumference float64, twistRate int) float64 {
	if dist >= t.rope.width {
		return 0
	}
	twist := twistAngle(theta, radius, circumference, twistRate)
	return t.contribution(dist, twist, true)
}

func (t *tangent) at(z, theta float64) (float64, bool) {
	j := int(math.Round(theta/(2*math.Pi)*float64(t.grid.AngularSteps))) % t.grid.AngularSteps
	row := t.table[j]
	best := math.Inf(-1)
	hit := false
	for k := 0; k < t.wraps; k++ {
		center := (float64(k) + 0.5) * t.zStep
		dist := math.Abs(z - center)
		if dist >= t.rope.width {
			continue
		}
		q := int(math.Round(dist / ringStep))
		if q >= len(row) {
			continue
		}
		if v := row[q]; v > best {
			best = v
		}
		hit = true
	}
	return best, hit
}
