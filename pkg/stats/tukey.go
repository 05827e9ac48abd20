package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TukeyComparison is one pairwise mean comparison from the HSD procedure.
type TukeyComparison struct {
	GroupA      string  `json:"groupA"`      // First group label
	GroupB      string  `json:"groupB"`      // Second group label
	MeanDiff    float64 `json:"meanDiff"`    // Mean(A) - Mean(B)
	SE          float64 `json:"se"`          // Standard error of the comparison
	Q           float64 `json:"q"`           // Studentized range statistic
	P           float64 `json:"p"`           // Adjusted p-value
	Lower       float64 `json:"lower"`       // Simultaneous CI lower bound
	Upper       float64 `json:"upper"`       // Simultaneous CI upper bound
	Significant bool    `json:"significant"` // P < Alpha
}

// TukeyResult holds the full set of HSD pairwise comparisons.
type TukeyResult struct {
	Comparisons []TukeyComparison `json:"comparisons"` // All pairs, label-ordered
	K           int               `json:"k"`           // Number of groups
	DF          int               `json:"df"`          // Error degrees of freedom
	MSWithin    float64           `json:"msWithin"`    // Pooled error mean square
	QCritical   float64           `json:"qCritical"`   // Critical studentized range value
	Alpha       float64           `json:"alpha"`       // Family-wise significance level
}

// TukeyHSD runs Tukey's honestly significant difference procedure over all
// group pairs. Unequal group sizes use the Tukey-Kramer standard error.
func TukeyHSD(groups map[string][]float64, alpha float64) (*TukeyResult, error) {
	if err := requireGroups(groups, 3); err != nil {
		return nil, err
	}

	names := sortedKeys(groups)
	k := len(names)

	totalN := 0
	ssWithin := 0.0
	means := make(map[string]float64, k)
	for _, name := range names {
		values := groups[name]
		mean, variance := stat.MeanVariance(values, nil)
		means[name] = mean
		ssWithin += float64(len(values)-1) * variance
		totalN += len(values)
	}
	df := totalN - k
	msWithin := ssWithin / float64(df)
	if msWithin <= 0 {
		return nil, fmt.Errorf("within-group variance is zero, comparisons are degenerate")
	}

	qCrit := studentizedRangeQuantile(1-alpha, k, float64(df))

	result := &TukeyResult{
		K:         k,
		DF:        df,
		MSWithin:  msWithin,
		QCritical: qCrit,
		Alpha:     alpha,
	}

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			a, b := names[i], names[j]
			na, nb := float64(len(groups[a])), float64(len(groups[b]))
			se := math.Sqrt(msWithin / 2 * (1/na + 1/nb))
			diff := means[a] - means[b]
			q := math.Abs(diff) / se
			p := 1 - studentizedRangeCDF(q, k, float64(df))

			result.Comparisons = append(result.Comparisons, TukeyComparison{
				GroupA:      a,
				GroupB:      b,
				MeanDiff:    diff,
				SE:          se,
				Q:           q,
				P:           p,
				Lower:       diff - qCrit*se,
				Upper:       diff + qCrit*se,
				Significant: p < alpha,
			})
		}
	}
	return result, nil
}

// studentizedRangeCDF returns P(Q <= q) for the studentized range
// distribution with k groups and df error degrees of freedom. The outer
// integral is over the distribution of the pooled standard deviation
// estimate, the inner one is the CDF of the range of k standard normals.
func studentizedRangeCDF(q float64, k int, df float64) float64 {
	if q <= 0 {
		return 0
	}
	if df > 2000 {
		// The scale estimate is effectively exact at this df.
		return normalRangeCDF(q, k)
	}

	// Density of s = sqrt(chi2_df / df), in log form for stability.
	logConst := math.Ln2 + 0.5*df*math.Log(df) - 0.5*df*math.Ln2
	lg, _ := math.Lgamma(df / 2)
	logConst -= lg
	density := func(s float64) float64 {
		return math.Exp(logConst + (df-1)*math.Log(s) - df*s*s/2)
	}

	hi := 1 + 12/math.Sqrt(df)
	if hi > 10 {
		hi = 10
	}
	integrand := func(s float64) float64 {
		return density(s) * normalRangeCDF(q*s, k)
	}
	return simpson(integrand, 1e-8, hi, 800)
}

// normalRangeCDF is the CDF of the range of k iid standard normals:
// k * Integral phi(z) * (Phi(z) - Phi(z-q))^(k-1) dz.
func normalRangeCDF(q float64, k int) float64 {
	norm := distuv.UnitNormal
	integrand := func(z float64) float64 {
		return norm.Prob(z) * math.Pow(norm.CDF(z)-norm.CDF(z-q), float64(k-1))
	}
	v := float64(k) * simpson(integrand, -8, 8, 400)
	if v > 1 {
		return 1
	}
	return v
}

// studentizedRangeQuantile inverts the CDF by bisection.
func studentizedRangeQuantile(p float64, k int, df float64) float64 {
	lo, hi := 0.0, 50.0
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if studentizedRangeCDF(mid, k, df) < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// simpson integrates f over [a, b] with n subintervals (n is rounded up to
// even).
func simpson(f func(float64) float64, a, b float64, n int) float64 {
	if n%2 != 0 {
		n++
	}
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 0 {
			sum += 2 * f(x)
		} else {
			sum += 4 * f(x)
		}
	}
	return sum * h / 3
}
