package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/example/surveylab/pkg/stats"
)

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Row 0 is drawn
// at the bottom of the heatmap.
type corrGrid struct {
	m *stats.CorrelationMatrix
}

func (g corrGrid) Dims() (c, r int) { n := len(g.m.Names); return n, n }
func (g corrGrid) Z(c, r int) float64 {
	return g.m.R[r][c]
}
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// CorrelationHeatmap renders the Pearson correlation matrix with a
// diverging blue-red palette centered on zero.
func (r *Renderer) CorrelationHeatmap(m *stats.CorrelationMatrix, title, file string) (string, error) {
	if m == nil || len(m.Names) == 0 {
		return "", fmt.Errorf("heatmap needs a non-empty correlation matrix")
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(255))
	hm.Min = -1
	hm.Max = 1

	p := plot.New()
	p.Title.Text = title
	p.Add(hm)
	p.NominalX(m.Names...)
	p.NominalY(m.Names...)

	return r.save(p, 7*vg.Inch, 6*vg.Inch, file)
}
