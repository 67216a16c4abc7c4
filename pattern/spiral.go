package pattern

import (
	"math"

	"github.com/soypat/roller"
)

// spiral winds numWraps rope bands diagonally around the cylinder, each
// advancing one pitch in z per revolution so the pattern is continuous
// across the roller ends.
type spiral struct {
	rope
	length        float64
	pitch         float64
	wraps         int
	twistRate     int
	radius        float64
	circumference float64
}

func newSpiral(p roller.RollerParams, specs roller.Specs) *spiral {
	return &spiral{
		rope: rope{
			width:        p.RopeWidth,
			depth:        p.RopeDepth,
			orbit:        p.StrandOrbit(),
			strandRadius: specs.StrandRadius,
			strands:      p.NumStrands,
			smoothing:    p.Smoothing,
		},
		length:        p.Width,
		pitch:         p.Pitch(),
		wraps:         p.NumWraps,
		twistRate:     p.TwistRate,
		radius:        specs.Radius(),
		circumference: specs.Circumference,
	}
}

func (sp *spiral) at(z, theta float64) (float64, bool) {
	twist := twistAngle(theta, sp.radius, sp.circumference, sp.twistRate)
	best := math.Inf(-1)
	hit := false
	for s := 0; s < sp.wraps; s++ {
		// Where this wrap's centerline crosses the current angle.
		zCenter := math.Mod((theta/(2*math.Pi))*sp.pitch+float64(s)*sp.pitch, sp.length)
		dz := z - zCenter
		// Toroidal wrap so bands stay continuous across the roller ends.
		if dz > sp.length/2 {
			dz -= sp.length
		} else if dz < -sp.length/2 {
			dz += sp.length
		}
		if math.Abs(dz) >= sp.rope.width {
			continue
		}
		if c := sp.contribution(dz, twist, false); c > best {
			best = c
		}
		hit = true
	}
	return best, hit
}
