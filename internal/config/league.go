package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hooplytics/fantasy-nba/internal/types"
)

// ErrUnknownPeriod is returned for a stat-period key outside the supported set.
type ErrUnknownPeriod struct {
	Key string
}

func (e *ErrUnknownPeriod) Error() string {
	return fmt.Sprintf("invalid stat period %q (valid: total, last_30, last_15, last_7, projected)", e.Key)
}

// League holds the immutable league-level settings the analysis core runs
// against: category set, variance ratios for the double-double model, the
// matchup schedule, and season framing. Built once at startup, never mutated.
type League struct {
	LeagueID int
	Year     int

	Categories []types.Category

	// Standard deviation assumptions (as a fraction of the mean) for the
	// double-double probability model.
	VarianceRatios       map[types.Category]float64
	DefaultVarianceRatio float64

	// Matchup id -> scoring periods (days) in that matchup window.
	MatchupSchedule map[int][]int

	SeasonStart time.Time
}

// NewLeague builds the league settings for the configured season.
func NewLeague(cfg *Config) *League {
	return &League{
		LeagueID:   cfg.LeagueID,
		Year:       cfg.SeasonYear,
		Categories: types.ScoringCategories,
		VarianceRatios: map[types.Category]float64{
			types.CatPoints:   0.35,
			types.CatRebounds: 0.40,
			types.CatAssists:  0.45,
			types.CatBlocks:   0.60,
			types.CatSteals:   0.60,
		},
		DefaultVarianceRatio: 0.40,
		MatchupSchedule:      buildMatchupSchedule(),
		SeasonStart:          time.Date(cfg.SeasonYear-1, time.October, 21, 0, 0, 0, 0, time.UTC),
	}
}

// buildMatchupSchedule lays out the 20-matchup season. Matchup 1 is a short
// opening window, matchup 17 spans the All-Star break, the rest are 7 days.
func buildMatchupSchedule() map[int][]int {
	schedule := make(map[int][]int, 20)
	schedule[1] = periodRange(1, 7) // Oct 21 - 26 (6 days)
	start := 7
	for id := 2; id <= 20; id++ {
		length := 7
		if id == 17 {
			length = 14 // All-Star break
		}
		schedule[id] = periodRange(start, start+length)
		start += length
	}
	return schedule
}

func periodRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for sp := from; sp < to; sp++ {
		out = append(out, sp)
	}
	return out
}

// Window returns the scoring periods for a matchup id.
func (l *League) Window(matchupID int) ([]int, bool) {
	sps, ok := l.MatchupSchedule[matchupID]
	return sps, ok
}

// PeriodKey converts a short stat-period key ("total", "last_30", ...) to the
// season-qualified key used in player stat maps ("2026_total", ...).
func (l *League) PeriodKey(short string) (string, error) {
	prefix := fmt.Sprintf("%d_", l.Year)
	if strings.HasPrefix(short, prefix) {
		return short, nil
	}
	switch strings.ToLower(strings.TrimSpace(short)) {
	case "total":
		return prefix + "total", nil
	case "last_30", "last30":
		return prefix + "last_30", nil
	case "last_15", "last15":
		return prefix + "last_15", nil
	case "last_7", "last7":
		return prefix + "last_7", nil
	case "projected", "projection":
		return prefix + "projected", nil
	default:
		return "", &ErrUnknownPeriod{Key: short}
	}
}

// ProjectedKey is the fallback period when a player has no stats for the
// requested one (typically players who have not played yet).
func (l *League) ProjectedKey() string {
	return fmt.Sprintf("%d_projected", l.Year)
}

// CurrentMatchupID determines which matchup window contains the given date,
// clamping to the first matchup before the season and the last one after it.
func (l *League) CurrentMatchupID(now time.Time) int {
	if now.Before(l.SeasonStart) {
		return 1
	}

	// Each scoring period is one day; period 1 is the season start date.
	daysSinceStart := int(now.Sub(l.SeasonStart).Hours() / 24)

	ids := make([]int, 0, len(l.MatchupSchedule))
	for id := range l.MatchupSchedule {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	last := 1
	for _, id := range ids {
		sps := l.MatchupSchedule[id]
		if len(sps) == 0 {
			continue
		}
		if daysSinceStart+1 >= sps[0] && daysSinceStart+1 <= sps[len(sps)-1] {
			return id
		}
		last = id
	}
	return last
}
