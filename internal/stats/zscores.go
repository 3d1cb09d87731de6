package stats

import (
	"math"

	"github.com/hooplytics/fantasy-nba/internal/types"
)

// FullSeasonGames is the length of a full NBA season.
const FullSeasonGames = 82

// PlayerLine is one player's input to score computation: the effective stat
// line for the period (double-double estimate already injected) and expected
// games played for season weighting.
type PlayerLine struct {
	Line        types.StatLine
	GamesPlayed float64 // 0 when unknown; defaults to a full season
}

// Scores is a player's normalized output: per-category z-scores plus the two
// derived power scores.
type Scores struct {
	Z            map[types.Category]float64 `json:"zscores"`
	PerGamePower float64                    `json:"per_game_power"`
	SeasonPower  float64                    `json:"season_power"`
	GamesPlayed  float64                    `json:"games_played"`
}

// ComputeScores converts raw averages into z-score vectors and power scores
// for every player in the pool. A z-score is 0 when the value is absent or
// the population std dev is 0. per_game_power is the unweighted sum of all
// category z-scores, shifted so the weakest player in the pool stays strictly
// positive; season_power scales the shifted power by games played over a full
// season. The shift keeps the games-played weighting from inverting the
// ranking of players with negative raw power.
func ComputeScores(players map[string]PlayerLine, pop Population, cats []types.Category) map[string]*Scores {
	scores := make(map[string]*Scores, len(players))

	// First pass: z-scores and raw per-game power.
	for name, pl := range players {
		z := make(map[types.Category]float64, len(cats))
		power := 0.0
		for _, cat := range cats {
			v, ok := pl.Line.Get(cat)
			std := pop.StdDev[cat]
			if !ok || std == 0 {
				z[cat] = 0
				continue
			}
			z[cat] = (v - pop.Mean[cat]) / std
			power += z[cat]
		}

		gp := pl.GamesPlayed
		if gp <= 0 {
			gp = FullSeasonGames
		}

		scores[name] = &Scores{
			Z:            z,
			PerGamePower: power,
			GamesPlayed:  gp,
		}
	}

	if len(scores) == 0 {
		return scores
	}

	// Find the pool minimum to establish a positive baseline.
	minPower := math.Inf(1)
	for _, s := range scores {
		if s.PerGamePower < minPower {
			minPower = s.PerGamePower
		}
	}
	baseline := 0.0
	if minPower < 0 {
		baseline = math.Abs(minPower) + 1
	}

	// Second pass: shift and apply the games-played weight.
	for _, s := range scores {
		s.PerGamePower += baseline
		s.SeasonPower = s.PerGamePower * (s.GamesPlayed / FullSeasonGames)
	}

	return scores
}
