package roller

import (
	"fmt"
	"math"
)

// HeaderString is the parameter summary embedded in the 80-byte STL header,
// e.g. "Roller:W200-RW40-D4-N10-T6-S3-Spiral". The serializer truncates it
// if a future parameter pushes it past the header budget.
func (p RollerParams) HeaderString() string {
	return fmt.Sprintf("Roller:W%d-RW%d-D%d-N%d-T%d-S%d-%s",
		int(p.Width), int(p.RopeWidth), depthCode(p.RopeDepth),
		p.NumWraps, p.TwistRate, p.NumStrands, p.Mode)
}

// Filename is the standardized STL filename for the parameter set, e.g.
// "Roller_W200-RW40-RD4-SN10-TW6-ST3-SM50-WD65.stl". Spiral rollers carry
// the SN prefix on the wrap count, tangent rollers TN.
func (p RollerParams) Filename() string {
	prefix := "SN"
	if p.Mode == Tangent {
		prefix = "TN"
	}
	return fmt.Sprintf("Roller_W%d-RW%d-RD%d-%s%d-TW%d-ST%d-SM%d-WD%d.stl",
		int(p.Width), int(p.RopeWidth), depthCode(p.RopeDepth),
		prefix, p.NumWraps, p.TwistRate, p.NumStrands,
		int(math.Round(p.Smoothing*100)), int(math.Round(p.WeaveDensity*100)))
}

// depthCode encodes rope depth without a decimal point: whole depths keep
// their value, fractional depths are scaled by ten. 4.0 → 4, 4.5 → 45,
// 5.5 → 55. Operators read the latter as 4.5 and 5.5.
func depthCode(d float64) int {
	if d != math.Trunc(d) {
		return int(d * 10)
	}
	return int(d)
}
