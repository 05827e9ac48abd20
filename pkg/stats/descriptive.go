// Package stats implements the inferential battery for the satisfaction
// survey: descriptive aggregation, Welch's t-test, one-way ANOVA with
// Tukey HSD post-hoc comparison, Pearson correlation and OLS regression.
package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Descriptives summarizes a single numeric sample.
type Descriptives struct {
	Count  int     `json:"count"`  // Sample size
	Mean   float64 `json:"mean"`   // Arithmetic mean
	StdDev float64 `json:"stdDev"` // Sample standard deviation (n-1)
	Min    float64 `json:"min"`    // Minimum
	Q1     float64 `json:"q1"`     // First quartile
	Median float64 `json:"median"` // Median
	Q3     float64 `json:"q3"`     // Third quartile
	Max    float64 `json:"max"`    // Maximum
}

// Describe computes descriptive statistics for values. An empty sample
// yields a zero Descriptives.
func Describe(values []float64) Descriptives {
	if len(values) == 0 {
		return Descriptives{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Descriptives{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Min:    sorted[0],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(values) > 1 {
		d.StdDev = stat.StdDev(values, nil)
	}
	return d
}

// GroupDescriptives pairs a group label with its summary.
type GroupDescriptives struct {
	Group string       `json:"group"`
	Stats Descriptives `json:"stats"`
}

// DescribeGroups summarizes each group, ordered by group label so the
// output is stable across runs.
func DescribeGroups(groups map[string][]float64) []GroupDescriptives {
	names := sortedKeys(groups)
	out := make([]GroupDescriptives, 0, len(names))
	for _, name := range names {
		out = append(out, GroupDescriptives{Group: name, Stats: Describe(groups[name])})
	}
	return out
}

func sortedKeys(groups map[string][]float64) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func requireGroups(groups map[string][]float64, min int) error {
	if len(groups) < min {
		return fmt.Errorf("need at least %d groups, got %d", min, len(groups))
	}
	for name, values := range groups {
		if len(values) < 2 {
			return fmt.Errorf("group %q has %d observations, need at least 2", name, len(values))
		}
	}
	return nil
}
