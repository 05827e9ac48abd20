package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/example/surveylab/pkg/stats"
)

// coefPoints places one coefficient per horizontal row, with the CI as
// horizontal error bars.
type coefPoints struct {
	coefs []stats.Coefficient
}

func (c coefPoints) Len() int { return len(c.coefs) }

func (c coefPoints) XY(i int) (x, y float64) {
	return c.coefs[i].Estimate, float64(i)
}

func (c coefPoints) XError(i int) (low, high float64) {
	return c.coefs[i].Estimate - c.coefs[i].Lower, c.coefs[i].Upper - c.coefs[i].Estimate
}

// CoefficientPlot renders the regression drivers with their confidence
// intervals. The intercept is omitted; it dwarfs the driver scale.
func (r *Renderer) CoefficientPlot(res *stats.OLSResult, title, file string) (string, error) {
	if res == nil || len(res.Coefficients) < 2 {
		return "", fmt.Errorf("coefficient plot needs a fitted model with predictors")
	}

	drivers := res.Coefficients[1:]
	names := make([]string, len(drivers))
	for i, c := range drivers {
		names[i] = c.Name
	}
	pts := coefPoints{coefs: drivers}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Estimate"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", fmt.Errorf("failed to build coefficient scatter: %w", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 139, G: 0, B: 0, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	bars, err := plotter.NewXErrorBars(pts)
	if err != nil {
		return "", fmt.Errorf("failed to build error bars: %w", err)
	}

	zero := plotter.XYs{{X: 0, Y: -0.5}, {X: 0, Y: float64(len(drivers)) - 0.5}}
	zeroLine, err := plotter.NewLine(zero)
	if err != nil {
		return "", fmt.Errorf("failed to build zero line: %w", err)
	}
	zeroLine.Color = color.Gray{Y: 128}
	zeroLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(zeroLine, bars, scatter)
	p.NominalY(names...)

	return r.save(p, 8*vg.Inch, 5*vg.Inch, file)
}
