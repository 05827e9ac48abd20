package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/surveylab/pkg/stats"
	"github.com/example/surveylab/pkg/survey"
)

func testSummary(t *testing.T) *Summary {
	t.Helper()

	groups := map[string][]float64{
		"A": {3, 4, 3, 4, 3},
		"B": {4, 5, 4, 5, 4},
		"C": {2, 3, 2, 3, 2},
	}
	anova, err := stats.OneWayANOVA(groups, 0.05)
	require.NoError(t, err)
	tukey, err := stats.TukeyHSD(groups, 0.05)
	require.NoError(t, err)

	tt, err := stats.WelchTTest("F", []float64{3, 4, 5, 4, 3}, "M", []float64{2, 3, 3, 4, 2}, 0.05)
	require.NoError(t, err)

	x1 := []float64{3, 4, 5, 2, 3, 4, 5}
	x2 := []float64{4, 4, 5, 3, 3, 4, 4}
	y := []float64{3.2, 4.1, 4.9, 2.4, 3.1, 4.0, 4.8}
	ols, err := stats.FitOLS("overall", y, []string{"food", "service"}, [][]float64{x1, x2}, 0.05)
	require.NoError(t, err)

	corr, err := stats.Correlations([]string{"overall", "food", "service"}, [][]float64{y, x1, x2})
	require.NoError(t, err)

	return &Summary{
		RunID:       "test-run",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		SourcePath:  "survey.csv",
		Alpha:       0.05,
		Quality:     survey.Quality{RowsRead: 15, RowsKept: 15},
		Overall:     stats.Describe(y),
		ByStore:     stats.DescribeGroups(groups),
		TTest:       tt,
		ANOVA:       anova,
		Tukey:       tukey,
		OLS:         ols,
		Correlations: corr,
		KeyFindings: []string{"stores differ in mean satisfaction"},
	}
}

func TestWriteMarkdown(t *testing.T) {
	s := testSummary(t)
	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, WriteMarkdown(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Customer Satisfaction Survey Analysis")
	assert.Contains(t, content, "Welch t-test")
	assert.Contains(t, content, "Tukey HSD")
	assert.Contains(t, content, "OLS")
	assert.Contains(t, content, "| A |")
}

func TestWriteWorkbook(t *testing.T) {
	s := testSummary(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, s))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSetRowMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	err := setRow(f, "NoSuchSheet", 1, []interface{}{"a", 1})
	require.Error(t, err)
}

func TestPrinter(t *testing.T) {
	s := testSummary(t)
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDescriptives(s)
	p.PrintInference(s)
	p.PrintRegression(s)

	out := buf.String()
	assert.Contains(t, out, "Satisfaction by store")
	assert.Contains(t, out, "ANOVA")
	assert.Contains(t, out, "OLS")
}

func TestStore(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	a, err := store.StoreJSON("result.json", map[string]int{"rows": 10})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.FileExists(t, a.Path)

	_, err = store.Track("png", "hist.png", filepath.Join(store.Dir(), "hist.png"))
	require.NoError(t, err)

	artifacts, err := store.List()
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "result.json", artifacts[0].Name)
}
