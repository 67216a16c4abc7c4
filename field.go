package roller

// Field is a displacement map over a sampling Grid. Values are millimetre
// offsets from the base cylinder radius: positive is raised rope relief,
// negative is recessed background texture. Storage is row-major, one row
// per axial step.
type Field struct {
	grid Grid
	data []float64
}

// NewField returns a zero-displacement field over g.
func NewField(g Grid) *Field {
	return &Field{
		grid: g,
		data: make([]float64, g.AxialSteps*g.AngularSteps),
	}
}

// Grid returns the sampling grid the field is defined over.
func (f *Field) Grid() Grid { return f.grid }

// Dims returns the (axial, angular) step counts.
func (f *Field) Dims() (axial, angular int) {
	return f.grid.AxialSteps, f.grid.AngularSteps
}

// At returns the displacement at axial row i, angular column j.
func (f *Field) At(i, j int) float64 {
	return f.data[i*f.grid.AngularSteps+j]
}

// Set stores the displacement at axial row i, angular column j.
func (f *Field) Set(i, j int, v float64) {
	f.data[i*f.grid.AngularSteps+j] = v
}

// MinMax returns the extreme displacement values of the field.
func (f *Field) MinMax() (min, max float64) {
	min, max = f.data[0], f.data[0]
	for _, v := range f.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
