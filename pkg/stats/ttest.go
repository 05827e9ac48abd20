package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult holds a Welch two-sample comparison of means.
type TTestResult struct {
	GroupA      string  `json:"groupA"`      // First group label
	GroupB      string  `json:"groupB"`      // Second group label
	NA          int     `json:"nA"`          // First group size
	NB          int     `json:"nB"`          // Second group size
	MeanA       float64 `json:"meanA"`       // First group mean
	MeanB       float64 `json:"meanB"`       // Second group mean
	MeanDiff    float64 `json:"meanDiff"`    // MeanA - MeanB
	T           float64 `json:"t"`           // Test statistic
	DF          float64 `json:"df"`          // Welch-Satterthwaite degrees of freedom
	P           float64 `json:"p"`           // Two-sided p-value
	CohensD     float64 `json:"cohensD"`     // Effect size (pooled SD)
	Alpha       float64 `json:"alpha"`       // Significance level
	Significant bool    `json:"significant"` // P < Alpha
}

// WelchTTest compares the means of two independent samples without
// assuming equal variances.
func WelchTTest(nameA string, a []float64, nameB string, b []float64, alpha float64) (*TTestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return nil, fmt.Errorf("t-test needs at least 2 observations per group, got %d and %d", len(a), len(b))
	}

	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)
	na, nb := float64(len(a)), float64(len(b))

	seA := varA / na
	seB := varB / nb
	se := math.Sqrt(seA + seB)
	if se == 0 {
		return nil, fmt.Errorf("both groups have zero variance")
	}

	t := (meanA - meanB) / se
	df := (seA + seB) * (seA + seB) / (seA*seA/(na-1) + seB*seB/(nb-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))

	pooled := math.Sqrt(((na-1)*varA + (nb-1)*varB) / (na + nb - 2))
	d := 0.0
	if pooled > 0 {
		d = math.Abs(meanA-meanB) / pooled
	}

	return &TTestResult{
		GroupA:      nameA,
		GroupB:      nameB,
		NA:          len(a),
		NB:          len(b),
		MeanA:       meanA,
		MeanB:       meanB,
		MeanDiff:    meanA - meanB,
		T:           t,
		DF:          df,
		P:           p,
		CohensD:     d,
		Alpha:       alpha,
		Significant: p < alpha,
	}, nil
}

// EffectMagnitude maps Cohen's d onto the conventional labels.
func EffectMagnitude(d float64) string {
	d = math.Abs(d)
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}
