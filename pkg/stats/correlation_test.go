package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelations(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 5, 4, 5}
	z := []float64{5, 4, 3, 2, 1} // perfectly anti-correlated with x

	m, err := Correlations([]string{"x", "y", "z"}, [][]float64{x, y, z})
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.R[0][0])
	assert.InDelta(t, 0.7746, m.R[0][1], 1e-3)
	assert.InDelta(t, -1.0, m.R[0][2], 1e-9)
	assert.Equal(t, m.R[0][1], m.R[1][0])
	assert.InDelta(t, 0.1239, m.P[0][1], 5e-3)
	assert.Equal(t, 0.0, m.P[0][2]) // |r| = 1 pins the p-value at 0
}

func TestCorrelationsStrongest(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 5, 4, 5}
	z := []float64{5, 4, 3, 2, 1}

	m, err := Correlations([]string{"x", "y", "z"}, [][]float64{x, y, z})
	require.NoError(t, err)

	a, b, r := m.Strongest()
	assert.Equal(t, "x", a)
	assert.Equal(t, "z", b)
	assert.InDelta(t, -1.0, r, 1e-9)
}

func TestCorrelationsErrors(t *testing.T) {
	_, err := Correlations([]string{"x"}, [][]float64{{1, 2, 3}})
	require.Error(t, err)

	_, err = Correlations([]string{"x", "y"}, [][]float64{{1, 2}, {3, 4}})
	require.Error(t, err)

	_, err = Correlations([]string{"x", "y"}, [][]float64{{1, 2, 3}, {3, 4}})
	require.Error(t, err)
}
