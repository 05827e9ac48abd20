package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference quantiles from published studentized range tables.
func TestStudentizedRangeQuantile(t *testing.T) {
	cases := []struct {
		k    int
		df   float64
		want float64
	}{
		{3, 6, 4.339},
		{3, 12, 3.773},
		{3, 20, 3.578},
		{4, 20, 3.958},
		{5, 30, 4.102},
	}
	for _, c := range cases {
		got := studentizedRangeQuantile(0.95, c.k, c.df)
		assert.InDelta(t, c.want, got, 0.05, "q_0.05(k=%d, df=%v)", c.k, c.df)
	}
}

func TestStudentizedRangeCDFMonotone(t *testing.T) {
	prev := 0.0
	for q := 0.5; q <= 8; q += 0.5 {
		v := studentizedRangeCDF(q, 4, 20)
		assert.GreaterOrEqual(t, v, prev)
		assert.LessOrEqual(t, v, 1.0)
		prev = v
	}
	assert.Equal(t, 0.0, studentizedRangeCDF(0, 4, 20))
}

func TestTukeyHSD(t *testing.T) {
	groups := map[string][]float64{
		"A": {1, 2, 3},
		"B": {2, 3, 4},
		"C": {3, 4, 5},
	}

	res, err := TukeyHSD(groups, 0.05)
	require.NoError(t, err)

	assert.Equal(t, 3, res.K)
	assert.Equal(t, 6, res.DF)
	assert.InDelta(t, 1.0, res.MSWithin, 1e-9)
	assert.InDelta(t, 4.339, res.QCritical, 0.05)
	require.Len(t, res.Comparisons, 3)

	// A vs C has the largest separation: |diff| = 2, se = sqrt(1/3).
	var ac TukeyComparison
	for _, c := range res.Comparisons {
		if c.GroupA == "A" && c.GroupB == "C" {
			ac = c
		}
	}
	assert.InDelta(t, -2.0, ac.MeanDiff, 1e-9)
	assert.InDelta(t, 3.464, ac.Q, 1e-3)
	assert.InDelta(t, 0.115, ac.P, 0.04)
	assert.False(t, ac.Significant)
	assert.Less(t, ac.Lower, ac.MeanDiff)
	assert.Greater(t, ac.Upper, ac.MeanDiff)
}

func TestTukeyHSDSignificantPair(t *testing.T) {
	groups := map[string][]float64{
		"A": {1.0, 1.2, 0.8, 1.1, 0.9},
		"B": {1.1, 1.3, 0.9, 1.2, 1.0},
		"C": {9.0, 9.2, 8.8, 9.1, 8.9},
	}

	res, err := TukeyHSD(groups, 0.05)
	require.NoError(t, err)

	sig := 0
	for _, c := range res.Comparisons {
		if c.Significant {
			sig++
			assert.Less(t, c.P, 0.05)
		}
	}
	// A-C and B-C differ, A-B does not.
	assert.Equal(t, 2, sig)
}

func TestTukeyHSDUnequalSizes(t *testing.T) {
	groups := map[string][]float64{
		"A": {1, 2, 3, 4},
		"B": {2, 3, 4},
		"C": {3, 4, 5, 6, 7},
	}
	res, err := TukeyHSD(groups, 0.05)
	require.NoError(t, err)
	require.Len(t, res.Comparisons, 3)
	for _, c := range res.Comparisons {
		assert.Greater(t, c.SE, 0.0)
		assert.GreaterOrEqual(t, c.P, 0.0)
		assert.LessOrEqual(t, c.P, 1.0)
	}
}
