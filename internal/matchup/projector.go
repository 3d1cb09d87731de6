package matchup

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hooplytics/fantasy-nba/internal/config"
	"github.com/hooplytics/fantasy-nba/internal/lineup"
	"github.com/hooplytics/fantasy-nba/internal/stats"
	"github.com/hooplytics/fantasy-nba/internal/types"
)

// ErrUnknownMatchup is returned for a matchup id outside the season schedule.
type ErrUnknownMatchup struct {
	MatchupID int
}

func (e *ErrUnknownMatchup) Error() string {
	return fmt.Sprintf("invalid matchup_id %d (must be between 1 and 20)", e.MatchupID)
}

// Totals is a team's accumulated projection over one matchup window: summed
// counting stats for every filled lineup slot on every day, plus the derived
// free-throw percentage.
type Totals struct {
	Stats       map[types.Category]float64 `json:"stats"`
	GamesPlayed int                        `json:"games_played"`
}

// Projector drives the lineup optimizer across every day of a matchup window
// and accumulates the results. It is a pure function of its immutable inputs;
// one projector may be shared across goroutines.
type Projector struct {
	league   *config.League
	schedule types.ProSchedule
	scores   map[string]*stats.Scores
	lines    map[string]types.StatLine
	log      *logrus.Entry
}

// NewProjector builds a projector over a pre-computed score set. scores and
// lines are keyed by player name and must come from the same period; the
// score computation is the dominant cost at scale, so callers compute it once
// per (period, pool) and share it across projections.
func NewProjector(league *config.League, schedule types.ProSchedule, scores map[string]*stats.Scores, lines map[string]types.StatLine, log *logrus.Entry) *Projector {
	return &Projector{
		league:   league,
		schedule: schedule,
		scores:   scores,
		lines:    lines,
		log:      log,
	}
}

// ProjectTeam accumulates a team's projected totals across all scoring
// periods of the matchup. Each day, players with a scheduled game who are not
// out with injury feed the lineup optimizer; every filled slot adds its
// counting stats and one game played. Days with no eligible players are
// skipped. FT% is derived as total makes over total attempts, never as an
// average of daily percentages.
func (p *Projector) ProjectTeam(team *types.Team, matchupID int) (*Totals, error) {
	scoringPeriods, ok := p.league.Window(matchupID)
	if !ok {
		return nil, &ErrUnknownMatchup{MatchupID: matchupID}
	}

	totals := &Totals{Stats: make(map[types.Category]float64)}
	for _, cat := range types.CountingCategories {
		totals.Stats[cat] = 0
	}
	totals.Stats[types.CatDoubleDoubles] = 0

	for _, sp := range scoringPeriods {
		available := p.availableOn(team.Roster, sp)
		if len(available) == 0 {
			continue
		}

		assignments := lineup.Optimize(available, p.scores, p.lines, p.log)
		filled := 0
		for _, a := range assignments {
			if a.Player == nil {
				continue
			}
			for cat, v := range a.Stats {
				totals.Stats[cat] += v
			}
			totals.GamesPlayed++
			filled++
		}

		if p.log != nil {
			p.log.WithFields(logrus.Fields{
				"team":           team.Name,
				"scoring_period": sp,
				"available":      len(available),
				"filled_slots":   filled,
			}).Debug("Projected daily lineup")
		}
	}

	if attempts := totals.Stats[types.CatFTAttempted]; attempts > 0 {
		totals.Stats[types.CatFTPct] = totals.Stats[types.CatFTMade] / attempts
	} else {
		totals.Stats[types.CatFTPct] = 0
	}

	return totals, nil
}

// availableOn filters the roster to players with a scheduled game on the
// scoring period who are not ruled out by injury.
func (p *Projector) availableOn(roster []types.Player, scoringPeriod int) []types.Player {
	available := make([]types.Player, 0, len(roster))
	for _, player := range roster {
		if player.OutOfLineup() {
			continue
		}
		if !p.schedule.PlaysOn(player.ProTeamID, scoringPeriod) {
			continue
		}
		available = append(available, player)
	}
	return available
}
