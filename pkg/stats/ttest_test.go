package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelchTTest(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 3, 4, 5, 6}

	res, err := WelchTTest("F", a, "M", b, 0.05)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, res.T, 1e-12)
	assert.InDelta(t, 8.0, res.DF, 1e-9) // equal variances, equal n
	assert.InDelta(t, 0.3466, res.P, 1e-3)
	assert.InDelta(t, -1.0, res.MeanDiff, 1e-12)
	assert.InDelta(t, 0.6325, res.CohensD, 1e-3)
	assert.False(t, res.Significant)
}

func TestWelchTTestSignificant(t *testing.T) {
	a := []float64{1, 1.1, 0.9, 1.05, 0.95, 1.02}
	b := []float64{3, 3.1, 2.9, 3.05, 2.95, 3.02}

	res, err := WelchTTest("A", a, "B", b, 0.05)
	require.NoError(t, err)

	assert.Less(t, res.P, 0.001)
	assert.True(t, res.Significant)
	assert.Equal(t, "large", EffectMagnitude(res.CohensD))
}

func TestWelchTTestTooFewObservations(t *testing.T) {
	_, err := WelchTTest("A", []float64{1}, "B", []float64{2, 3}, 0.05)
	require.Error(t, err)
}

func TestWelchTTestZeroVariance(t *testing.T) {
	_, err := WelchTTest("A", []float64{2, 2, 2}, "B", []float64{2, 2, 2}, 0.05)
	require.Error(t, err)
}

func TestEffectMagnitude(t *testing.T) {
	assert.Equal(t, "negligible", EffectMagnitude(0.1))
	assert.Equal(t, "small", EffectMagnitude(-0.3))
	assert.Equal(t, "medium", EffectMagnitude(0.6))
	assert.Equal(t, "large", EffectMagnitude(1.2))
}
