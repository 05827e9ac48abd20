package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// GroupSummary is a per-group slice of the ANOVA decomposition.
type GroupSummary struct {
	Name     string  `json:"name"`     // Group label
	N        int     `json:"n"`        // Group size
	Mean     float64 `json:"mean"`     // Group mean
	Variance float64 `json:"variance"` // Sample variance (n-1)
}

// ANOVAResult holds a one-way analysis of variance.
type ANOVAResult struct {
	Groups      []GroupSummary `json:"groups"`      // Per-group summaries, sorted by label
	DFBetween   int            `json:"dfBetween"`   // Between-groups degrees of freedom
	DFWithin    int            `json:"dfWithin"`    // Within-groups degrees of freedom
	SSBetween   float64        `json:"ssBetween"`   // Between-groups sum of squares
	SSWithin    float64        `json:"ssWithin"`    // Within-groups sum of squares
	MSBetween   float64        `json:"msBetween"`   // Between-groups mean square
	MSWithin    float64        `json:"msWithin"`    // Within-groups mean square
	F           float64        `json:"f"`           // Omnibus F statistic
	P           float64        `json:"p"`           // P-value
	EtaSquared  float64        `json:"etaSquared"`  // Effect size SSB / SST
	Alpha       float64        `json:"alpha"`       // Significance level
	Significant bool           `json:"significant"` // P < Alpha
}

// OneWayANOVA tests whether the group means differ across three or more
// independent groups.
func OneWayANOVA(groups map[string][]float64, alpha float64) (*ANOVAResult, error) {
	if err := requireGroups(groups, 3); err != nil {
		return nil, err
	}

	names := sortedKeys(groups)
	summaries := make([]GroupSummary, 0, len(names))

	totalN := 0
	grandSum := 0.0
	for _, name := range names {
		values := groups[name]
		mean, variance := stat.MeanVariance(values, nil)
		summaries = append(summaries, GroupSummary{
			Name:     name,
			N:        len(values),
			Mean:     mean,
			Variance: variance,
		})
		totalN += len(values)
		grandSum += mean * float64(len(values))
	}
	grandMean := grandSum / float64(totalN)

	ssBetween := 0.0
	ssWithin := 0.0
	for _, s := range summaries {
		diff := s.Mean - grandMean
		ssBetween += float64(s.N) * diff * diff
		ssWithin += float64(s.N-1) * s.Variance
	}

	dfBetween := len(names) - 1
	dfWithin := totalN - len(names)
	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)

	f := 0.0
	p := 1.0
	if msWithin > 0 {
		f = msBetween / msWithin
		dist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
		p = dist.Survival(f)
	}

	eta := 0.0
	if ssBetween+ssWithin > 0 {
		eta = ssBetween / (ssBetween + ssWithin)
	}

	return &ANOVAResult{
		Groups:      summaries,
		DFBetween:   dfBetween,
		DFWithin:    dfWithin,
		SSBetween:   ssBetween,
		SSWithin:    ssWithin,
		MSBetween:   msBetween,
		MSWithin:    msWithin,
		F:           f,
		P:           p,
		EtaSquared:  eta,
		Alpha:       alpha,
		Significant: p < alpha,
	}, nil
}
