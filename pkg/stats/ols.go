package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Coefficient is one row of the regression inference table.
type Coefficient struct {
	Name        string  `json:"name"`        // Predictor name ("intercept" for the constant)
	Estimate    float64 `json:"estimate"`    // Point estimate
	StdErr      float64 `json:"stdErr"`      // Standard error
	T           float64 `json:"t"`           // T statistic
	P           float64 `json:"p"`           // Two-sided p-value
	Lower       float64 `json:"lower"`       // CI lower bound
	Upper       float64 `json:"upper"`       // CI upper bound
	Significant bool    `json:"significant"` // P < Alpha
}

// OLSResult holds an ordinary least squares fit with inference.
type OLSResult struct {
	Response       string        `json:"response"`       // Dependent variable name
	Coefficients   []Coefficient `json:"coefficients"`   // Intercept first, predictors in input order
	N              int           `json:"n"`              // Observations
	DFModel        int           `json:"dfModel"`        // Model degrees of freedom
	DFResidual     int           `json:"dfResidual"`     // Residual degrees of freedom
	R2             float64       `json:"r2"`             // Coefficient of determination
	AdjR2          float64       `json:"adjR2"`          // Adjusted R-squared
	F              float64       `json:"f"`              // Model F statistic
	FP             float64       `json:"fp"`             // Model F p-value
	ResidualStdErr float64       `json:"residualStdErr"` // sqrt(RSS / dfResidual)
	Alpha          float64       `json:"alpha"`          // Significance level
}

// FitOLS regresses y on the named predictor columns with an intercept and
// returns the full inference table. Predictors are column slices of the
// same length as y.
func FitOLS(response string, y []float64, names []string, predictors [][]float64, alpha float64) (*OLSResult, error) {
	n := len(y)
	if len(names) != len(predictors) {
		return nil, fmt.Errorf("got %d predictor names for %d columns", len(names), len(predictors))
	}
	p := len(predictors) + 1 // intercept
	if n <= p {
		return nil, fmt.Errorf("need more than %d observations to fit %d parameters, got %d", p, p, n)
	}
	for i, col := range predictors {
		if len(col) != n {
			return nil, fmt.Errorf("predictor %q has %d rows, response has %d", names[i], len(col), n)
		}
	}

	x := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, col := range predictors {
		for i := 0; i < n; i++ {
			x.Set(i, j+1, col[i])
		}
	}
	yVec := mat.NewVecDense(n, append([]float64(nil), y...))

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	sym := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			sym.SetSym(i, j, xtx.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, fmt.Errorf("design matrix is singular, predictors are collinear")
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return nil, fmt.Errorf("failed to solve normal equations: %w", err)
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, fmt.Errorf("failed to invert normal matrix: %w", err)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	rss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		rss += r * r
	}
	yMean := stat.Mean(y, nil)
	tss := 0.0
	for _, v := range y {
		d := v - yMean
		tss += d * d
	}

	dfModel := p - 1
	dfResid := n - p
	sigma2 := rss / float64(dfResid)

	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}
	adjR2 := 1 - (1-r2)*float64(n-1)/float64(dfResid)

	fStat := 0.0
	fp := 1.0
	if rss > 0 && tss > rss {
		fStat = ((tss - rss) / float64(dfModel)) / sigma2
		fDist := distuv.F{D1: float64(dfModel), D2: float64(dfResid)}
		fp = fDist.Survival(fStat)
	} else if rss == 0 {
		fStat = math.Inf(1)
		fp = 0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResid)}
	tCrit := tDist.Quantile(1 - alpha/2)

	coefNames := append([]string{"intercept"}, names...)
	coefs := make([]Coefficient, p)
	for j := 0; j < p; j++ {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * inv.At(j, j))
		c := Coefficient{Name: coefNames[j], Estimate: est, StdErr: se}
		if se > 0 {
			c.T = est / se
			c.P = 2 * tDist.CDF(-math.Abs(c.T))
		} else {
			c.T = math.Inf(1)
			c.P = 0
		}
		c.Lower = est - tCrit*se
		c.Upper = est + tCrit*se
		c.Significant = c.P < alpha
		coefs[j] = c
	}

	return &OLSResult{
		Response:       response,
		Coefficients:   coefs,
		N:              n,
		DFModel:        dfModel,
		DFResidual:     dfResid,
		R2:             r2,
		AdjR2:          adjR2,
		F:              fStat,
		FP:             fp,
		ResidualStdErr: math.Sqrt(sigma2),
		Alpha:          alpha,
	}, nil
}
