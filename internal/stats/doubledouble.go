package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hooplytics/fantasy-nba/internal/types"
)

// DoubleDoubleCategories are the five stats that can contribute to a
// double-double (10+ in at least two of them in one game).
var DoubleDoubleCategories = []types.Category{
	types.CatPoints, types.CatRebounds, types.CatAssists,
	types.CatSteals, types.CatBlocks,
}

// ddThreshold is evaluated at 9.5 as a continuity correction for P(X >= 10).
const ddThreshold = 9.5

// DoubleDoubleModel estimates expected double-doubles per game from per-game
// averages. Each contributing category is modeled as an independent normal
// variable with std dev equal to a fixed fraction of the player's average.
// The independence assumption between categories is a deliberate
// simplification.
type DoubleDoubleModel struct {
	ratios       map[types.Category]float64
	defaultRatio float64
	norm         distuv.Normal
}

// NewDoubleDoubleModel builds a model from per-category variance ratios.
// Categories without a configured ratio (or with a non-positive one) use
// defaultRatio.
func NewDoubleDoubleModel(ratios map[types.Category]float64, defaultRatio float64) *DoubleDoubleModel {
	if defaultRatio <= 0 {
		defaultRatio = 0.40
	}
	return &DoubleDoubleModel{
		ratios:       ratios,
		defaultRatio: defaultRatio,
		norm:         distuv.Normal{Mu: 0, Sigma: 1},
	}
}

// Expect returns the probability that the player records 10+ in at least two
// contributing categories in a game, treated as expected double-doubles per
// game. Always in [0, 1]. An absent or zero average contributes probability 0.
func (m *DoubleDoubleModel) Expect(line types.StatLine) float64 {
	probs := make([]float64, 0, len(DoubleDoubleCategories))
	for _, cat := range DoubleDoubleCategories {
		avg, ok := line.Get(cat)
		if !ok || avg == 0 {
			probs = append(probs, 0)
			continue
		}

		stdDev := avg * m.ratio(cat)
		z := (ddThreshold - avg) / stdDev
		probs = append(probs, 1-m.norm.CDF(z))
	}

	// P(at least 2) = 1 - P(0 successes) - P(exactly 1 success)
	pZero := 1.0
	for _, p := range probs {
		pZero *= 1 - p
	}

	pOne := 0.0
	for i, pi := range probs {
		term := pi
		for j, pj := range probs {
			if j != i {
				term *= 1 - pj
			}
		}
		pOne += term
	}

	return math.Min(1, math.Max(0, 1-pZero-pOne))
}

func (m *DoubleDoubleModel) ratio(cat types.Category) float64 {
	if r, ok := m.ratios[cat]; ok && r > 0 {
		return r
	}
	return m.defaultRatio
}

// Inject adds the expected double-double estimate as the DD category on a
// copy of the line, leaving the measured categories untouched.
func (m *DoubleDoubleModel) Inject(line types.StatLine) types.StatLine {
	out := line.Clone()
	out[types.CatDoubleDoubles] = m.Expect(line)
	return out
}
