package roller

// Fixed roller specifications. These are not user-adjustable: the
// circumference is fixed for clay work and the mesh resolutions are the
// values proven to work in the web prototype. They live on a settings
// struct rather than as scattered literals so tests can drop the grid
// resolution without touching production defaults.
type Specs struct {
	// Circumference of the base cylinder in millimetres.
	Circumference float64
	// BackgroundDepth is the recessed purl texture depth in millimetres.
	BackgroundDepth float64
	// StrandRadius sizes individual strands in millimetres.
	StrandRadius float64

	// Per-mode sampling resolutions. Spiral needs the denser grid to keep
	// diagonal bands smooth; tangent rings get away with less.
	SpiralAxialSteps   int
	SpiralAngularSteps int

	TangentAxialSteps   int
	TangentAngularSteps int
}

// DefaultSpecs returns the production roller specification.
func DefaultSpecs() Specs {
	return Specs{
		Circumference:   200,
		BackgroundDepth: 1.0,
		StrandRadius:    1.4,

		SpiralAxialSteps:   150,
		SpiralAngularSteps: 200,

		TangentAxialSteps:   100,
		TangentAngularSteps: 150,
	}
}

// Radius is the base cylinder radius derived from the fixed circumference,
// about 31.83mm for the default 200mm.
func (s Specs) Radius() float64 {
	return s.Circumference / tau
}

// GridFor returns the sampling grid for a mode at the given roller width.
func (s Specs) GridFor(m Mode, width float64) Grid {
	if m == Tangent {
		return Grid{AxialSteps: s.TangentAxialSteps, AngularSteps: s.TangentAngularSteps, Width: width}
	}
	return Grid{AxialSteps: s.SpiralAxialSteps, AngularSteps: s.SpiralAngularSteps, Width: width}
}

// Grid is the cylindrical sampling lattice a displacement field is computed
// over. Axial rows include both roller ends; angular columns cover [0, 2π)
// without the periodic endpoint, which the mesh seam closes by index reuse.
type Grid struct {
	AxialSteps   int
	AngularSteps int
	// Width is the axial length spanned by the rows, in millimetres.
	Width float64
}

// Z returns the axial position of row i.
func (g Grid) Z(i int) float64 {
	return float64(i) / float64(g.AxialSteps-1) * g.Width
}

// Theta returns the angle of column j in radians.
func (g Grid) Theta(j int) float64 {
	return float64(j) / float64(g.AngularSteps) * tau
}
