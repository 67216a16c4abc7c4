// Package roller generates parametric rope-relief patterns for cylindrical
// clay rollers and turns them into watertight triangle meshes for 3D
// printing.
//
// The pipeline is a straight line: a validated RollerParams bundle feeds the
// pattern package which produces a displacement Field over a cylindrical
// sampling Grid; the render package wraps the field around the base cylinder,
// triangulates it seam-correct and serializes binary STL. Nothing in the
// pipeline holds state between exports.
package roller

import (
	"math"
	"strconv"
)

// Mode selects the rope layout on the roller surface.
type Mode int

const (
	// Spiral winds ropes diagonally around the roller like a barber pole.
	Spiral Mode = iota
	// Tangent lays ropes as discrete rings perpendicular to the roller axis.
	Tangent
)

func (m Mode) String() string {
	switch m {
	case Spiral:
		return "Spiral"
	case Tangent:
		return "Tangent"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// RollerParams are the adjustable roller generation parameters. The zero
// value is not usable; start from DefaultParams. Functions taking
// RollerParams receive a copy, so a validated value cannot be mutated
// behind the pipeline's back.
type RollerParams struct {
	// Width is the axial length of the roller in millimetres.
	Width float64
	// RopeWidth is the thickness of each rope band in millimetres.
	RopeWidth float64
	// RopeDepth is the relief height (impression depth) in millimetres.
	RopeDepth float64
	// NumWraps is how many ropes wrap around the roller.
	NumWraps int
	// TwistRate is how tightly the rope strands braid.
	TwistRate int
	// NumStrands is the strand count per rope.
	NumStrands int
	// Smoothing blends between sharp strand edges (0) and smooth
	// influence-averaged curves (1).
	Smoothing float64
	// WeaveDensity scales how far strands orbit the rope centerline.
	WeaveDensity float64
	// Mode is the rope layout.
	Mode Mode
}

// DefaultParams returns the stock roller configuration.
func DefaultParams() RollerParams {
	return RollerParams{
		Width:        200,
		RopeWidth:    40,
		RopeDepth:    4,
		NumWraps:     10,
		TwistRate:    6,
		NumStrands:   3,
		Smoothing:    0.5,
		WeaveDensity: 0.65,
		Mode:         Spiral,
	}
}

// Validate checks every parameter against its documented bound and returns
// a *ValidationError for the first violation. Out-of-range values are never
// clamped; a wrap or strand count below the minimum would divide by zero in
// the generators, so the bounds here are what keeps the pattern math total.
func (p RollerParams) Validate() error {
	switch {
	case p.Width < 100 || p.Width > 300:
		return &ValidationError{Field: "Width", Value: p.Width, Min: 100, Max: 300}
	case p.RopeWidth < 20 || p.RopeWidth > 60:
		return &ValidationError{Field: "RopeWidth", Value: p.RopeWidth, Min: 20, Max: 60}
	case p.RopeDepth < 2 || p.RopeDepth > 8:
		return &ValidationError{Field: "RopeDepth", Value: p.RopeDepth, Min: 2, Max: 8}
	case p.NumWraps < 1 || p.NumWraps > 25:
		return &ValidationError{Field: "NumWraps", Value: float64(p.NumWraps), Min: 1, Max: 25}
	case p.TwistRate < 2 || p.TwistRate > 16:
		return &ValidationError{Field: "TwistRate", Value: float64(p.TwistRate), Min: 2, Max: 16}
	case p.NumStrands < 2 || p.NumStrands > 5:
		return &ValidationError{Field: "NumStrands", Value: float64(p.NumStrands), Min: 2, Max: 5}
	case p.Smoothing < 0 || p.Smoothing > 1:
		return &ValidationError{Field: "Smoothing", Value: p.Smoothing, Min: 0, Max: 1}
	case p.WeaveDensity < 0.3 || p.WeaveDensity > 1:
		return &ValidationError{Field: "WeaveDensity", Value: p.WeaveDensity, Min: 0.3, Max: 1}
	case p.Mode != Spiral && p.Mode != Tangent:
		return &ValidationError{Field: "Mode", Value: float64(p.Mode), Min: float64(Spiral), Max: float64(Tangent)}
	}
	return nil
}

// Pitch is the axial distance between spiral wraps.
func (p RollerParams) Pitch() float64 {
	return p.Width / float64(p.NumWraps)
}

// StrandOrbit is how far strands orbit from the rope centerline.
func (p RollerParams) StrandOrbit() float64 {
	return p.RopeDepth * p.WeaveDensity
}

const (
	pi  = math.Pi
	tau = 2 * pi
)
