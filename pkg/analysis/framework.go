// Package analysis orchestrates the survey analysis battery: load the CSV,
// compute descriptives, run the inferential tests, render charts and write
// report artifacts.
package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/surveylab/pkg/render"
	"github.com/example/surveylab/pkg/report"
	"github.com/example/surveylab/pkg/stats"
	"github.com/example/surveylab/pkg/survey"
)

// Analyzer runs the full battery for one survey file.
type Analyzer struct {
	cfg    Config
	logger *zap.Logger
}

// New constructs an Analyzer. A nil logger falls back to a no-op logger.
func New(cfg Config, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{cfg: cfg, logger: logger}
}

// Run executes the analysis end to end and returns the report summary.
// Artifacts are written under cfg.OutputDir.
func (a *Analyzer) Run(ctx context.Context) (*report.Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	a.logger.Info("starting survey analysis",
		zap.String("runId", runID),
		zap.String("input", a.cfg.Input))

	ds, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	summary := &report.Summary{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		SourcePath:  a.cfg.Input,
		Alpha:       a.cfg.Alpha,
		Quality:     ds.Quality,
	}

	a.describe(ds, summary)
	a.compareGenders(ds, summary)
	a.compareStores(ds, summary)
	a.correlate(ds, summary)
	a.regress(ds, summary)
	summary.KeyFindings = a.findings(summary)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if a.cfg.Charts {
		if err := a.renderCharts(ds, summary); err != nil {
			return nil, err
		}
	}
	if err := a.writeArtifacts(summary); err != nil {
		return nil, err
	}

	a.logger.Info("survey analysis completed",
		zap.String("runId", runID),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("findings", len(summary.KeyFindings)))
	return summary, nil
}

func (a *Analyzer) load(ctx context.Context) (*survey.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := survey.NewLoader(a.cfg.Schema, a.logger)
	ds, err := loader.Load(a.cfg.Input)
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(a.cfg.MinPerStore); err != nil {
		return nil, fmt.Errorf("survey does not support the analysis: %w", err)
	}
	return ds, nil
}

func (a *Analyzer) describe(ds *survey.Dataset, s *report.Summary) {
	s.Overall = stats.Describe(ds.Overall())
	s.ByStore = stats.DescribeGroups(ds.OverallByStore())
}

// compareGenders runs the two-group comparison. It is skipped with a
// warning when the survey does not have exactly two gender levels.
func (a *Analyzer) compareGenders(ds *survey.Dataset, s *report.Summary) {
	if len(ds.Genders) != 2 {
		a.logger.Warn("skipping t-test, need exactly two gender levels",
			zap.Strings("levels", ds.Genders))
		return
	}
	groups := ds.OverallByGender()
	ga, gb := ds.Genders[0], ds.Genders[1]
	res, err := stats.WelchTTest(ga, groups[ga], gb, groups[gb], a.cfg.Alpha)
	if err != nil {
		a.logger.Warn("t-test failed", zap.Error(err))
		return
	}
	s.TTest = res
}

// compareStores runs the one-way ANOVA and, when the omnibus test is
// significant, the Tukey HSD post-hoc comparison.
func (a *Analyzer) compareStores(ds *survey.Dataset, s *report.Summary) {
	if len(ds.Stores) < 3 {
		a.logger.Warn("skipping ANOVA, need at least three stores",
			zap.Strings("stores", ds.Stores))
		return
	}
	groups := ds.OverallByStore()
	anova, err := stats.OneWayANOVA(groups, a.cfg.Alpha)
	if err != nil {
		a.logger.Warn("ANOVA failed", zap.Error(err))
		return
	}
	s.ANOVA = anova

	if !anova.Significant {
		a.logger.Info("omnibus test not significant, skipping post-hoc",
			zap.Float64("p", anova.P))
		return
	}
	tukey, err := stats.TukeyHSD(groups, a.cfg.Alpha)
	if err != nil {
		a.logger.Warn("Tukey HSD failed", zap.Error(err))
		return
	}
	s.Tukey = tukey
}

func (a *Analyzer) correlate(ds *survey.Dataset, s *report.Summary) {
	names := []string{"overall"}
	columns := [][]float64{ds.Overall()}
	for _, driver := range survey.Drivers {
		names = append(names, string(driver))
		columns = append(columns, ds.Column(driver))
	}
	corr, err := stats.Correlations(names, columns)
	if err != nil {
		a.logger.Warn("correlation analysis failed", zap.Error(err))
		return
	}
	s.Correlations = corr
}

func (a *Analyzer) regress(ds *survey.Dataset, s *report.Summary) {
	names := make([]string, len(survey.Drivers))
	columns := make([][]float64, len(survey.Drivers))
	for i, driver := range survey.Drivers {
		names[i] = string(driver)
		columns[i] = ds.Column(driver)
	}
	ols, err := stats.FitOLS("overall", ds.Overall(), names, columns, a.cfg.Alpha)
	if err != nil {
		a.logger.Warn("regression failed", zap.Error(err))
		return
	}
	s.OLS = ols
}

func (a *Analyzer) renderCharts(ds *survey.Dataset, s *report.Summary) error {
	renderer, err := render.NewRenderer(a.cfg.OutputDir, a.logger)
	if err != nil {
		return err
	}

	path, err := renderer.Histogram(ds.Overall(), "Overall satisfaction", "Score", "overall_hist.png")
	if err != nil {
		return err
	}
	s.Charts = append(s.Charts, path)

	path, err = renderer.BoxPlot(ds.OverallByStore(), "Overall satisfaction by store", "Score", "store_boxplot.png")
	if err != nil {
		return err
	}
	s.Charts = append(s.Charts, path)

	if s.Correlations != nil {
		path, err = renderer.CorrelationHeatmap(s.Correlations, "Attribute correlations", "correlation_heatmap.png")
		if err != nil {
			return err
		}
		s.Charts = append(s.Charts, path)
	}
	if s.OLS != nil {
		path, err = renderer.CoefficientPlot(s.OLS, "Drivers of overall satisfaction", "coefficients.png")
		if err != nil {
			return err
		}
		s.Charts = append(s.Charts, path)
	}
	return nil
}

func (a *Analyzer) writeArtifacts(s *report.Summary) error {
	store, err := report.NewStore(a.cfg.OutputDir, a.logger)
	if err != nil {
		return err
	}

	if _, err := store.StoreJSON("analysis.json", s); err != nil {
		return err
	}

	mdPath := filepath.Join(a.cfg.OutputDir, "analysis_report.md")
	if err := report.WriteMarkdown(mdPath, s); err != nil {
		return err
	}
	if _, err := store.Track("markdown", "analysis_report.md", mdPath); err != nil {
		return err
	}

	if a.cfg.Excel {
		xlsxPath := filepath.Join(a.cfg.OutputDir, "analysis.xlsx")
		if err := report.WriteWorkbook(xlsxPath, s); err != nil {
			return err
		}
		if _, err := store.Track("xlsx", "analysis.xlsx", xlsxPath); err != nil {
			return err
		}
	}

	for _, chart := range s.Charts {
		if _, err := store.Track("png", filepath.Base(chart), chart); err != nil {
			return err
		}
	}
	return nil
}

// findings condenses the significant results into report bullet points.
func (a *Analyzer) findings(s *report.Summary) []string {
	var out []string

	if s.TTest != nil && s.TTest.Significant {
		out = append(out, fmt.Sprintf(
			"Overall satisfaction differs between %s and %s (p=%.4f, d=%.2f, %s effect)",
			s.TTest.GroupA, s.TTest.GroupB, s.TTest.P, s.TTest.CohensD,
			stats.EffectMagnitude(s.TTest.CohensD)))
	}
	if s.ANOVA != nil && s.ANOVA.Significant {
		out = append(out, fmt.Sprintf(
			"Stores differ in mean satisfaction, F(%d,%d)=%.2f, p=%.4f",
			s.ANOVA.DFBetween, s.ANOVA.DFWithin, s.ANOVA.F, s.ANOVA.P))
	}
	if s.Tukey != nil {
		for _, c := range s.Tukey.Comparisons {
			if c.Significant {
				out = append(out, fmt.Sprintf(
					"Store %s vs %s: mean difference %.2f (p=%.4f)",
					c.GroupA, c.GroupB, c.MeanDiff, c.P))
			}
		}
	}
	if s.OLS != nil {
		for _, c := range s.OLS.Coefficients[1:] {
			if c.Significant {
				out = append(out, fmt.Sprintf(
					"%s drives overall satisfaction (b=%.3f, p=%.4f)", c.Name, c.Estimate, c.P))
			}
		}
	}
	if s.Correlations != nil {
		if x, y, r := s.Correlations.Strongest(); x != "" {
			out = append(out, fmt.Sprintf("Strongest correlation: %s and %s (r=%.2f)", x, y, r))
		}
	}
	return out
}
