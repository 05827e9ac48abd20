package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneWayANOVA(t *testing.T) {
	groups := map[string][]float64{
		"A": {1, 2, 3},
		"B": {2, 3, 4},
		"C": {3, 4, 5},
	}

	res, err := OneWayANOVA(groups, 0.05)
	require.NoError(t, err)

	assert.Equal(t, 2, res.DFBetween)
	assert.Equal(t, 6, res.DFWithin)
	assert.InDelta(t, 6.0, res.SSBetween, 1e-9)
	assert.InDelta(t, 6.0, res.SSWithin, 1e-9)
	assert.InDelta(t, 3.0, res.F, 1e-9)
	assert.InDelta(t, 0.125, res.P, 5e-3)
	assert.InDelta(t, 0.5, res.EtaSquared, 1e-9)
	assert.False(t, res.Significant)

	require.Len(t, res.Groups, 3)
	assert.Equal(t, "A", res.Groups[0].Name)
	assert.InDelta(t, 2.0, res.Groups[0].Mean, 1e-12)
}

func TestOneWayANOVASignificant(t *testing.T) {
	groups := map[string][]float64{
		"A": {1.0, 1.2, 0.8, 1.1, 0.9},
		"B": {5.0, 5.2, 4.8, 5.1, 4.9},
		"C": {9.0, 9.2, 8.8, 9.1, 8.9},
	}

	res, err := OneWayANOVA(groups, 0.05)
	require.NoError(t, err)

	assert.True(t, res.Significant)
	assert.Less(t, res.P, 1e-6)
	assert.Greater(t, res.EtaSquared, 0.95)
}

func TestOneWayANOVATooFewGroups(t *testing.T) {
	groups := map[string][]float64{
		"A": {1, 2, 3},
		"B": {2, 3, 4},
	}
	_, err := OneWayANOVA(groups, 0.05)
	require.Error(t, err)
}

func TestOneWayANOVATinyGroup(t *testing.T) {
	groups := map[string][]float64{
		"A": {1, 2, 3},
		"B": {2, 3, 4},
		"C": {3},
	}
	_, err := OneWayANOVA(groups, 0.05)
	require.Error(t, err)
}
