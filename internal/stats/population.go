package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/hooplytics/fantasy-nba/internal/types"
)

// Population holds per-category mean and population standard deviation over a
// player pool for one time period.
type Population struct {
	Mean   map[types.Category]float64 `json:"mean"`
	StdDev map[types.Category]float64 `json:"std_dev"`
}

// ComputePopulation computes mean and population standard deviation for each
// category across the given stat lines. Filtering is per category: a player
// missing a value for one category is excluded from that category only.
// A category with no eligible values gets (0, 1) so that downstream
// normalization stays inert instead of dividing by zero.
func ComputePopulation(lines []types.StatLine, cats []types.Category) Population {
	pop := Population{
		Mean:   make(map[types.Category]float64, len(cats)),
		StdDev: make(map[types.Category]float64, len(cats)),
	}

	for _, cat := range cats {
		values := make([]float64, 0, len(lines))
		for _, line := range lines {
			if v, ok := line.Get(cat); ok {
				values = append(values, v)
			}
		}

		if len(values) == 0 {
			pop.Mean[cat] = 0
			pop.StdDev[cat] = 1
			continue
		}

		pop.Mean[cat] = stat.Mean(values, nil)
		pop.StdDev[cat] = stat.PopStdDev(values, nil)
	}

	return pop
}
