// Package report turns analysis results into human-readable artifacts: a
// markdown report, an Excel workbook, terminal tables and a JSON document
// stored through the artifact store.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/surveylab/pkg/stats"
	"github.com/example/surveylab/pkg/survey"
)

// Summary collects everything a report needs from one analysis run.
type Summary struct {
	RunID        string                    `json:"runId"`
	GeneratedAt  time.Time                 `json:"generatedAt"`
	SourcePath   string                    `json:"sourcePath"`
	Alpha        float64                   `json:"alpha"`
	Quality      survey.Quality            `json:"quality"`
	Overall      stats.Descriptives        `json:"overall"`
	ByStore      []stats.GroupDescriptives `json:"byStore"`
	TTest        *stats.TTestResult        `json:"tTest,omitempty"`
	ANOVA        *stats.ANOVAResult        `json:"anova,omitempty"`
	Tukey        *stats.TukeyResult        `json:"tukey,omitempty"`
	OLS          *stats.OLSResult          `json:"ols,omitempty"`
	Correlations *stats.CorrelationMatrix  `json:"correlations,omitempty"`
	Charts       []string                  `json:"charts,omitempty"`
	KeyFindings  []string                  `json:"keyFindings,omitempty"`
}

// WriteMarkdown renders the summary as a markdown report at path.
func WriteMarkdown(path string, s *Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Customer Satisfaction Survey Analysis\n\n")
	fmt.Fprintf(&b, "- **Run**: %s\n", s.RunID)
	fmt.Fprintf(&b, "- **Generated**: %s\n", s.GeneratedAt.Format("2 January 2006 15:04"))
	fmt.Fprintf(&b, "- **Source**: %s\n", s.SourcePath)
	fmt.Fprintf(&b, "- **Responses**: %d kept of %d read (%d dropped)\n\n",
		s.Quality.RowsKept, s.Quality.RowsRead, s.Quality.RowsDropped)

	if len(s.KeyFindings) > 0 {
		b.WriteString("## Key findings\n\n")
		for _, f := range s.KeyFindings {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Satisfaction by store\n\n")
	b.WriteString("| Store | N | Mean | SD | Min | Median | Max |\n")
	b.WriteString("|-------|---|------|-----|-----|--------|-----|\n")
	for _, g := range s.ByStore {
		d := g.Stats
		fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.1f | %.1f | %.1f |\n",
			g.Group, d.Count, d.Mean, d.StdDev, d.Min, d.Median, d.Max)
	}
	d := s.Overall
	fmt.Fprintf(&b, "| **all** | %d | %.2f | %.2f | %.1f | %.1f | %.1f |\n\n",
		d.Count, d.Mean, d.StdDev, d.Min, d.Median, d.Max)

	if s.TTest != nil {
		t := s.TTest
		b.WriteString("## Two-group comparison\n\n")
		fmt.Fprintf(&b, "Welch t-test of overall satisfaction, %s (n=%d, mean=%.2f) vs %s (n=%d, mean=%.2f):\n\n",
			t.GroupA, t.NA, t.MeanA, t.GroupB, t.NB, t.MeanB)
		fmt.Fprintf(&b, "- t = %.3f, df = %.1f, p = %.4f (%s at alpha=%.2f)\n",
			t.T, t.DF, t.P, significance(t.Significant), t.Alpha)
		fmt.Fprintf(&b, "- Cohen's d = %.3f (%s effect)\n\n", t.CohensD, stats.EffectMagnitude(t.CohensD))
	}

	if s.ANOVA != nil {
		a := s.ANOVA
		b.WriteString("## One-way ANOVA across stores\n\n")
		fmt.Fprintf(&b, "- F(%d, %d) = %.3f, p = %.4f (%s at alpha=%.2f)\n",
			a.DFBetween, a.DFWithin, a.F, a.P, significance(a.Significant), a.Alpha)
		fmt.Fprintf(&b, "- eta-squared = %.3f\n\n", a.EtaSquared)
	}

	if s.Tukey != nil {
		b.WriteString("### Tukey HSD pairwise comparisons\n\n")
		b.WriteString("| Pair | Diff | q | p | 95% CI | Significant |\n")
		b.WriteString("|------|------|---|---|--------|-------------|\n")
		for _, c := range s.Tukey.Comparisons {
			fmt.Fprintf(&b, "| %s - %s | %.3f | %.3f | %.4f | [%.3f, %.3f] | %s |\n",
				c.GroupA, c.GroupB, c.MeanDiff, c.Q, c.P, c.Lower, c.Upper, yesNo(c.Significant))
		}
		b.WriteString("\n")
	} else if s.ANOVA != nil && !s.ANOVA.Significant {
		b.WriteString("Post-hoc comparison skipped: the omnibus test was not significant.\n\n")
	}

	if s.OLS != nil {
		o := s.OLS
		b.WriteString("## Drivers of overall satisfaction (OLS)\n\n")
		fmt.Fprintf(&b, "R² = %.3f, adjusted R² = %.3f, F(%d, %d) = %.2f, p = %.4f\n\n",
			o.R2, o.AdjR2, o.DFModel, o.DFResidual, o.F, o.FP)
		b.WriteString("| Term | Estimate | SE | t | p | 95% CI |\n")
		b.WriteString("|------|----------|----|---|---|--------|\n")
		for _, c := range o.Coefficients {
			fmt.Fprintf(&b, "| %s | %.4f | %.4f | %.3f | %.4f | [%.3f, %.3f] |\n",
				c.Name, c.Estimate, c.StdErr, c.T, c.P, c.Lower, c.Upper)
		}
		b.WriteString("\n")
	}

	if s.Correlations != nil {
		b.WriteString("## Correlation matrix\n\n")
		b.WriteString("| |")
		for _, n := range s.Correlations.Names {
			fmt.Fprintf(&b, " %s |", n)
		}
		b.WriteString("\n|---|")
		for range s.Correlations.Names {
			b.WriteString("---|")
		}
		b.WriteString("\n")
		for i, n := range s.Correlations.Names {
			fmt.Fprintf(&b, "| **%s** |", n)
			for j := range s.Correlations.Names {
				fmt.Fprintf(&b, " %.3f |", s.Correlations.R[i][j])
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.Charts) > 0 {
		b.WriteString("## Charts\n\n")
		for _, c := range s.Charts {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

func significance(s bool) string {
	if s {
		return "significant"
	}
	return "not significant"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
