package render

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Histogram renders the distribution of a single numeric column.
func (r *Renderer) Histogram(values []float64, title, xLabel, file string) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("histogram needs at least one value")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Responses"

	h, err := plotter.NewHist(plotter.Values(values), 16)
	if err != nil {
		return "", fmt.Errorf("failed to build histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	p.Add(h)
	p.Add(plotter.NewGrid())

	return r.save(p, 8*vg.Inch, 6*vg.Inch, file)
}

// BoxPlot renders one box per group, ordered by group label.
func (r *Renderer) BoxPlot(groups map[string][]float64, title, yLabel, file string) (string, error) {
	if len(groups) == 0 {
		return "", fmt.Errorf("boxplot needs at least one group")
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	for i, name := range names {
		box, err := plotter.NewBoxPlot(vg.Points(36), float64(i), plotter.Values(groups[name]))
		if err != nil {
			return "", fmt.Errorf("failed to build box for group %s: %w", name, err)
		}
		p.Add(box)
	}
	p.NominalX(names...)

	return r.save(p, 8*vg.Inch, 6*vg.Inch, file)
}
