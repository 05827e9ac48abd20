package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CorrelationMatrix holds pairwise Pearson correlations with p-values.
type CorrelationMatrix struct {
	Names []string    `json:"names"` // Variable names, matrix order
	R     [][]float64 `json:"r"`     // Correlation coefficients
	P     [][]float64 `json:"p"`     // Two-sided p-values (diagonal is 0)
}

// Correlations computes the Pearson correlation matrix over the named
// columns. All columns must share the same length, at least 3.
func Correlations(names []string, columns [][]float64) (*CorrelationMatrix, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("got %d names for %d columns", len(names), len(columns))
	}
	if len(columns) < 2 {
		return nil, fmt.Errorf("need at least 2 columns, got %d", len(columns))
	}
	n := len(columns[0])
	if n < 3 {
		return nil, fmt.Errorf("need at least 3 observations, got %d", n)
	}
	for i, col := range columns {
		if len(col) != n {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", names[i], len(col), n)
		}
	}

	k := len(columns)
	m := &CorrelationMatrix{
		Names: append([]string(nil), names...),
		R:     make([][]float64, k),
		P:     make([][]float64, k),
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	for i := 0; i < k; i++ {
		m.R[i] = make([]float64, k)
		m.P[i] = make([]float64, k)
		m.R[i][i] = 1
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			r := stat.Correlation(columns[i], columns[j], nil)
			p := 0.0
			if math.Abs(r) < 1 {
				t := r * math.Sqrt(float64(n-2)/(1-r*r))
				p = 2 * tDist.CDF(-math.Abs(t))
			}
			m.R[i][j], m.R[j][i] = r, r
			m.P[i][j], m.P[j][i] = p, p
		}
	}
	return m, nil
}

// Strongest returns the variable pair with the largest absolute
// off-diagonal correlation.
func (m *CorrelationMatrix) Strongest() (a, b string, r float64) {
	best := -1.0
	for i := range m.Names {
		for j := i + 1; j < len(m.Names); j++ {
			if abs := math.Abs(m.R[i][j]); abs > best {
				best = abs
				a, b, r = m.Names[i], m.Names[j], m.R[i][j]
			}
		}
	}
	return a, b, r
}
