// Package heightmap imports grayscale images as roller displacement fields.
// An imported field plugs into render.Build exactly like the generated rope
// patterns, so any image can become a roller relief.
package heightmap

import (
	"errors"
	"image"
	"math"

	"github.com/nfnt/resize"
	"github.com/soypat/roller"
)

// FromImage resamples img onto g and maps luminance linearly to
// displacement: black pixels to lo, white pixels to hi. Image rows run
// along the roller axis, columns around the circumference. lo is typically
// negative (recessed) and hi positive (raised); hi must stay below the base
// radius or the mesh build will reject the field.
func FromImage(img image.Image, g roller.Grid, lo, hi float64) (*roller.Field, error) {
	if lo >= hi {
		return nil, errors.New("heightmap: lo must be below hi")
	}
	resized := resize.Resize(uint(g.AngularSteps), uint(g.AxialSteps), img, resize.Bilinear)
	bounds := resized.Bounds()
	f := roller.NewField(g)
	for i := 0; i < g.AxialSteps; i++ {
		for j := 0; j < g.AngularSteps; j++ {
			c := resized.At(bounds.Min.X+j, bounds.Min.Y+i)
			r, gr, b, _ := c.RGBA()
			lum := float64(r+gr+b) / (3 * math.MaxUint16)
			f.Set(i, j, lo+(hi-lo)*lum)
		}
	}
	return f, nil
}
