package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Printer renders summary tables to a terminal writer.
type Printer struct {
	w io.Writer
}

// NewPrinter wraps w, usually os.Stdout.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintDescriptives prints the per-store descriptive table.
func (p *Printer) PrintDescriptives(s *Summary) {
	fmt.Fprintln(p.w, "Satisfaction by store")
	table := tablewriter.NewWriter(p.w)
	table.SetHeader([]string{"Store", "N", "Mean", "SD", "Min", "Median", "Max"})
	for _, g := range s.ByStore {
		d := g.Stats
		table.Append([]string{
			g.Group,
			fmt.Sprintf("%d", d.Count),
			fmt.Sprintf("%.2f", d.Mean),
			fmt.Sprintf("%.2f", d.StdDev),
			fmt.Sprintf("%.1f", d.Min),
			fmt.Sprintf("%.1f", d.Median),
			fmt.Sprintf("%.1f", d.Max),
		})
	}
	d := s.Overall
	table.SetFooter([]string{
		"all",
		fmt.Sprintf("%d", d.Count),
		fmt.Sprintf("%.2f", d.Mean),
		fmt.Sprintf("%.2f", d.StdDev),
		fmt.Sprintf("%.1f", d.Min),
		fmt.Sprintf("%.1f", d.Median),
		fmt.Sprintf("%.1f", d.Max),
	})
	table.Render()
}

// PrintInference prints the t-test, ANOVA and Tukey results.
func (p *Printer) PrintInference(s *Summary) {
	if s.TTest != nil {
		t := s.TTest
		fmt.Fprintf(p.w, "\nWelch t-test (%s vs %s): t=%.3f df=%.1f p=%.4f d=%.3f (%s)\n",
			t.GroupA, t.GroupB, t.T, t.DF, t.P, t.CohensD, significance(t.Significant))
	}
	if s.ANOVA != nil {
		a := s.ANOVA
		fmt.Fprintf(p.w, "ANOVA across stores: F(%d,%d)=%.3f p=%.4f eta2=%.3f (%s)\n",
			a.DFBetween, a.DFWithin, a.F, a.P, a.EtaSquared, significance(a.Significant))
	}
	if s.Tukey != nil {
		table := tablewriter.NewWriter(p.w)
		table.SetHeader([]string{"Pair", "Diff", "Q", "P", "Sig"})
		for _, c := range s.Tukey.Comparisons {
			table.Append([]string{
				fmt.Sprintf("%s - %s", c.GroupA, c.GroupB),
				fmt.Sprintf("%.3f", c.MeanDiff),
				fmt.Sprintf("%.3f", c.Q),
				fmt.Sprintf("%.4f", c.P),
				yesNo(c.Significant),
			})
		}
		table.Render()
	}
}

// PrintRegression prints the OLS coefficient table.
func (p *Printer) PrintRegression(s *Summary) {
	if s.OLS == nil {
		return
	}
	o := s.OLS
	fmt.Fprintf(p.w, "\nOLS: R2=%.3f adjR2=%.3f F(%d,%d)=%.2f p=%.4f\n",
		o.R2, o.AdjR2, o.DFModel, o.DFResidual, o.F, o.FP)
	table := tablewriter.NewWriter(p.w)
	table.SetHeader([]string{"Term", "Estimate", "SE", "T", "P"})
	for _, c := range o.Coefficients {
		table.Append([]string{
			c.Name,
			fmt.Sprintf("%.4f", c.Estimate),
			fmt.Sprintf("%.4f", c.StdErr),
			fmt.Sprintf("%.3f", c.T),
			fmt.Sprintf("%.4f", c.P),
		})
	}
	table.Render()
}
