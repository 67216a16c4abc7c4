package roller_test

import (
	"errors"
	"testing"

	"github.com/soypat/roller"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := roller.DefaultParams().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateBounds(t *testing.T) {
	mutations := []struct {
		field string
		apply func(*roller.RollerParams)
	}{
		{"Width", func(p *roller.RollerParams) { p.Width = 99 }},
		{"Width", func(p *roller.RollerParams) { p.Width = 301 }},
		{"RopeWidth", func(p *roller.RollerParams) { p.RopeWidth = 19 }},
		{"RopeWidth", func(p *roller.RollerParams) { p.RopeWidth = 61 }},
		{"RopeDepth", func(p *roller.RollerParams) { p.RopeDepth = 1.5 }},
		{"RopeDepth", func(p *roller.RollerParams) { p.RopeDepth = 8.5 }},
		{"NumWraps", func(p *roller.RollerParams) { p.NumWraps = 0 }},
		{"NumWraps", func(p *roller.RollerParams) { p.NumWraps = 26 }},
		{"TwistRate", func(p *roller.RollerParams) { p.TwistRate = 1 }},
		{"TwistRate", func(p *roller.RollerParams) { p.TwistRate = 17 }},
		{"NumStrands", func(p *roller.RollerParams) { p.NumStrands = 1 }},
		{"NumStrands", func(p *roller.RollerParams) { p.NumStrands = 6 }},
		{"Smoothing", func(p *roller.RollerParams) { p.Smoothing = -0.1 }},
		{"Smoothing", func(p *roller.RollerParams) { p.Smoothing = 1.1 }},
		{"WeaveDensity", func(p *roller.RollerParams) { p.WeaveDensity = 0.2 }},
		{"WeaveDensity", func(p *roller.RollerParams) { p.WeaveDensity = 1.1 }},
		{"Mode", func(p *roller.RollerParams) { p.Mode = roller.Mode(3) }},
	}
	for _, mut := range mutations {
		p := roller.DefaultParams()
		mut.apply(&p)
		err := p.Validate()
		var verr *roller.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s mutation: got %v, want ValidationError", mut.field, err)
		}
		if verr.Field != mut.field {
			t.Errorf("got field %q, want %q", verr.Field, mut.field)
		}
	}
}

func TestHeaderString(t *testing.T) {
	p := roller.DefaultParams()
	const want = "Roller:W200-RW40-D4-N10-T6-S3-Spiral"
	if got := p.HeaderString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	p.Mode = roller.Tangent
	p.RopeDepth = 4.5
	const wantTangent = "Roller:W200-RW40-D45-N10-T6-S3-Tangent"
	if got := p.HeaderString(); got != wantTangent {
		t.Errorf("got %q, want %q", got, wantTangent)
	}
}

func TestFilename(t *testing.T) {
	p := roller.DefaultParams()
	const want = "Roller_W200-RW40-RD4-SN10-TW6-ST3-SM50-WD65.stl"
	if got := p.Filename(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	p.Mode = roller.Tangent
	p.RopeDepth = 5.5
	const wantTangent = "Roller_W200-RW40-RD55-TN10-TW6-ST3-SM50-WD65.stl"
	if got := p.Filename(); got != wantTangent {
		t.Errorf("got %q, want %q", got, wantTangent)
	}
}

func TestSpecsDerived(t *testing.T) {
	s := roller.DefaultSpecs()
	if r := s.Radius(); r < 31.8 || r > 31.9 {
		t.Errorf("radius %g outside expected ~31.83mm", r)
	}
	g := s.GridFor(roller.Spiral, 200)
	if g.AxialSteps != 150 || g.AngularSteps != 200 {
		t.Errorf("spiral grid %dx%d, want 150x200", g.AxialSteps, g.AngularSteps)
	}
	g = s.GridFor(roller.Tangent, 200)
	if g.AxialSteps != 100 || g.AngularSteps != 150 {
		t.Errorf("tangent grid %dx%d, want 100x150", g.AxialSteps, g.AngularSteps)
	}
	// Axial rows include both ends, angular columns exclude the periodic
	// endpoint.
	if z := g.Z(g.AxialSteps - 1); z != 200 {
		t.Errorf("last row z=%g, want width", z)
	}
	if th := g.Theta(g.AngularSteps - 1); th >= 6.2831853 {
		t.Errorf("last column theta=%g reaches 2pi", th)
	}
}

func TestPitchAndOrbit(t *testing.T) {
	p := roller.DefaultParams()
	if got := p.Pitch(); got != 20 {
		t.Errorf("pitch %g, want 20", got)
	}
	if got := p.StrandOrbit(); got != 4*0.65 {
		t.Errorf("orbit %g, want 2.6", got)
	}
}
