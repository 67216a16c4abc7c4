package roller

import "fmt"

// ValidationError reports a RollerParams field outside its documented bound.
// It is returned before any pattern or mesh computation starts so the caller
// never receives a partial result alongside it.
type ValidationError struct {
	Field    string
	Value    float64
	Min, Max float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("roller: %s=%g outside [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}
