// Package pattern computes rope-relief displacement fields on a cylindrical
// sampling grid. A field starts as the recessed purl background texture and
// rope contributions are layered on top with a running maximum, so ropes
// only ever raise the surface. Generation is a pure function of its inputs;
// the tangent layout builds a ring lookup table scoped to a single Generate
// call and discards it on return.
package pattern

import (
	"math"

	"github.com/soypat/roller"
)

// generator is the closed set of rope layouts. at reports the rope height
// at a surface position and whether any rope reaches it at all; positions
// outside every rope band keep the background value.
type generator interface {
	at(z, theta float64) (height float64, ok bool)
}

// Generate computes the displacement field for p over the sampling grid
// specs assigns to p.Mode. It validates p first and computes nothing on
// failure. Repeated calls with equal inputs produce bit-identical fields.
func Generate(p roller.RollerParams, specs roller.Specs) (*roller.Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	grid := specs.GridFor(p.Mode, p.Width)
	var gen generator
	if p.Mode == roller.Tangent {
		gen = newTangent(p, specs, grid)
	} else {
		gen = newSpiral(p, specs)
	}
	f := roller.NewField(grid)
	for i := 0; i < grid.AxialSteps; i++ {
		z := grid.Z(i)
		for j := 0; j < grid.AngularSteps; j++ {
			theta := grid.Theta(j)
			d := background(z, theta, specs.BackgroundDepth)
			if h, ok := gen.at(z, theta); ok && h > d {
				d = h
			}
			f.Set(i, j, d)
		}
	}
	return f, nil
}

// background is the purl (knit) texture filling the areas between ropes:
// a 2.5mm axial wavelength crossed with 50 lobes around the circumference,
// recessed below the base radius by depth.
func background(z, theta, depth float64) float64 {
	purlX := math.Sin(z * 2 * math.Pi / 2.5)
	purlY := math.Sin(theta * 50)
	return -depth + 0.3*purlX*purlY
}

// rope holds the braid parameters shared by both layouts.
type rope struct {
	width        float64 // band thickness
	depth        float64 // relief height
	orbit        float64 // strand orbit radius about the centerline
	strandRadius float64
	strands      int
	smoothing    float64
}

// contribution returns the enveloped rope height at signed axial distance
// dz from the rope centerline, given the local twist angle. folded selects
// the ring convention where dz and the strand offset both collapse onto the
// non-negative distance axis.
func (r rope) contribution(dz, twist float64, folded bool) float64 {
	var (
		maxHeight float64 = math.Inf(-1)
		totalInfl float64
		weighted  float64
	)
	sigma := r.strandRadius * 0.8
	for s := 0; s < r.strands; s++ {
		base := float64(s) * (2 * math.Pi / float64(r.strands))
		angle := base + twist
		offsetZ := r.orbit * math.Sin(angle)
		offsetRadial := r.orbit * math.Cos(angle)
		var dist float64
		if folded {
			dist = math.Abs(math.Abs(dz) - math.Abs(offsetZ))
		} else {
			dist = math.Abs(dz - offsetZ)
		}
		influence := math.Exp(-(dist * dist) / (sigma * sigma))
		height := r.depth + offsetRadial + r.strandRadius*influence
		if height > maxHeight {
			maxHeight = height
		}
		totalInfl += influence
		weighted += height * influence
	}
	// The small constant keeps the weighted average finite when every
	// strand's influence has decayed to nothing.
	weightedAvg := weighted / (totalInfl + 0.001)
	blended := roller.Mix(maxHeight, weightedAvg, r.smoothing)
	envelope := math.Exp(-(dz * dz) / ((r.width / 3) * (r.width / 3)))
	contribution := blended * envelope
	if base := r.depth * envelope; base > contribution {
		// Minimum rounded base profile where strand influence is weak.
		contribution = base
	}
	return contribution
}

// twistAngle maps a circumferential position to the braid's helical phase.
func twistAngle(theta, radius, circumference float64, twistRate int) float64 {
	return (theta * radius / circumference) * float64(twistRate) * 2 * math.Pi
}
