// Package preview renders roller output for visual inspection: displacement
// fields as 2D heatmaps and exported STL files as shaded snapshots.
package preview

import (
	"github.com/soypat/roller"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// fieldGrid adapts a displacement field to plotter.GridXYZ. Columns map to
// angle, rows to axial position, so the heatmap reads like the unrolled
// roller surface.
type fieldGrid struct {
	f *roller.Field
}

func (g fieldGrid) Dims() (c, r int) {
	axial, angular := g.f.Dims()
	return angular, axial
}

func (g fieldGrid) Z(c, r int) float64 { return g.f.At(r, c) }
func (g fieldGrid) X(c int) float64    { return g.f.Grid().Theta(c) }
func (g fieldGrid) Y(r int) float64    { return g.f.Grid().Z(r) }

// Heatmap writes a PNG heatmap of the displacement field to path. Raised
// rope relief plots warm, recessed background cold.
func Heatmap(path string, f *roller.Field) error {
	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(fieldGrid{f: f}, pal)
	p := plot.New()
	p.Title.Text = "roller displacement (mm)"
	p.X.Label.Text = "theta (rad)"
	p.Y.Label.Text = "z (mm)"
	p.Add(hm)
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
