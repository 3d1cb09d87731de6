package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hooplytics/fantasy-nba/internal/config"
	"github.com/hooplytics/fantasy-nba/internal/matchup"
	"github.com/hooplytics/fantasy-nba/internal/provider"
	"github.com/hooplytics/fantasy-nba/internal/stats"
	"github.com/hooplytics/fantasy-nba/internal/types"
	"github.com/hooplytics/fantasy-nba/pkg/logger"
)

// LeagueProvider supplies league snapshots. Satisfied by provider.Client.
type LeagueProvider interface {
	FetchLeague(ctx context.Context) (*types.LeagueData, error)
}

// Analyzer is the analysis facade: it fetches the league snapshot, computes
// normalized score sets per stat period, and answers player, ranking, and
// matchup projection queries on top of them.
type Analyzer struct {
	provider LeagueProvider
	league   *config.League
	cache    provider.Cache
	ddModel  *stats.DoubleDoubleModel
	cacheTTL time.Duration
	log      *logrus.Entry
}

// NewAnalyzer wires the analysis facade.
func NewAnalyzer(p LeagueProvider, league *config.League, cache provider.Cache, cacheTTL time.Duration, log *logrus.Entry) *Analyzer {
	return &Analyzer{
		provider: p,
		league:   league,
		cache:    cache,
		ddModel:  stats.NewDoubleDoubleModel(league.VarianceRatios, league.DefaultVarianceRatio),
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// ScoreSet is one period's normalized view of the full player pool: effective
// stat lines (double-double estimate injected), the pool population, and the
// resulting score for every player with data.
type ScoreSet struct {
	PeriodKey  string                    `json:"period_key"`
	Lines      map[string]types.StatLine `json:"lines"`
	Population stats.Population          `json:"population"`
	Scores     map[string]*stats.Scores  `json:"scores"`
}

// PlayerStats is the full analytical view of one player for one period.
type PlayerStats struct {
	Name         string                     `json:"name"`
	ProTeam      string                     `json:"pro_team"`
	Position     string                     `json:"position"`
	InjuryStatus string                     `json:"injury_status,omitempty"`
	Period       string                     `json:"period"`
	Averages     types.StatLine             `json:"averages"`
	ZScores      map[types.Category]float64 `json:"zscores"`
	PerGamePower float64                    `json:"per_game_power"`
	SeasonPower  float64                    `json:"season_power"`
	GamesPlayed  float64                    `json:"games_played"`
}

// FreeAgent is one free-agent pool entry with upcoming schedule context.
type FreeAgent struct {
	PlayerStats
	GamesThisMatchup int `json:"games_this_matchup"`
}

// RosterEntry is one rostered player in a team view. Players with no stats
// for the period still appear, with zero scores.
type RosterEntry struct {
	Name         string  `json:"name"`
	Position     string  `json:"position"`
	ProTeam      string  `json:"pro_team"`
	InjuryStatus string  `json:"injury_status,omitempty"`
	PerGamePower float64 `json:"per_game_power"`
	SeasonPower  float64 `json:"season_power"`
	GamesPlayed  float64 `json:"games_played"`
}

// TeamRoster is a team's roster sorted by per-game power.
type TeamRoster struct {
	Team   string        `json:"team"`
	Period string        `json:"period"`
	Roster []RosterEntry `json:"roster"`
}

// TeamTotals pairs a team name with its projected matchup totals.
type TeamTotals struct {
	Team   string          `json:"team"`
	Totals *matchup.Totals `json:"totals"`
}

// MatchupProjection is a projected head-to-head: both teams' totals and the
// per-category comparison.
type MatchupProjection struct {
	MatchupID  int                `json:"matchup_id"`
	Period     string             `json:"period"`
	TeamA      TeamTotals         `json:"team_a"`
	TeamB      TeamTotals         `json:"team_b"`
	Comparison matchup.Comparison `json:"comparison"`
}

// TeamAverages summarizes a team's roster strength: mean z-score per category
// across scored players plus roster size.
type TeamAverages struct {
	Team       string                     `json:"team"`
	RosterSize int                        `json:"roster_size"`
	AvgZ       map[types.Category]float64 `json:"avg_zscores"`
}

// League exposes the league settings the analyzer runs against.
func (a *Analyzer) League() *config.League {
	return a.league
}

// CurrentMatchupID returns the matchup window containing today.
func (a *Analyzer) CurrentMatchupID() int {
	return a.league.CurrentMatchupID(time.Now().UTC())
}

func (a *Analyzer) fetchLeague(ctx context.Context) (*types.LeagueData, error) {
	return a.provider.FetchLeague(ctx)
}

// scoreSet computes (or loads from cache) the normalized score set for a
// period over the full pool: rostered players plus free agents. A player
// missing stats for the requested period falls back to the projected line,
// which covers players who have not played yet.
func (a *Analyzer) scoreSet(ctx context.Context, data *types.LeagueData, period string) (*ScoreSet, error) {
	periodKey, err := a.league.PeriodKey(period)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("scores:%d:%s", a.league.LeagueID, periodKey)
	var cached ScoreSet
	if err := a.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	pool := data.AllPlayers()
	lines := make(map[string]types.StatLine, len(pool))
	players := make(map[string]stats.PlayerLine, len(pool))
	poolLines := make([]types.StatLine, 0, len(pool))

	for i := range pool {
		p := &pool[i]
		key := periodKey
		ps, ok := p.Stats[key]
		if !ok || ps.Averages == nil {
			key = a.league.ProjectedKey()
			ps, ok = p.Stats[key]
		}
		if !ok || ps.Averages == nil {
			continue
		}

		line := a.ddModel.Inject(ps.Averages)
		lines[p.Name] = line
		players[p.Name] = stats.PlayerLine{Line: line, GamesPlayed: ps.GamesPlayed}
		poolLines = append(poolLines, line)
	}

	set := &ScoreSet{
		PeriodKey:  periodKey,
		Lines:      lines,
		Population: stats.ComputePopulation(poolLines, a.league.Categories),
	}
	set.Scores = stats.ComputeScores(players, set.Population, a.league.Categories)

	if err := a.cache.Set(ctx, cacheKey, set, a.cacheTTL); err != nil {
		a.log.WithError(err).Warn("Failed to cache score set")
	}

	logger.WithPeriod(periodKey).WithField("pool_size", len(set.Scores)).
		Debug("Computed score set")

	return set, nil
}

// PlayerSummary resolves a player by (fuzzy) name and returns the full
// analytical view for the period.
func (a *Analyzer) PlayerSummary(ctx context.Context, name, period string) (*PlayerStats, error) {
	data, err := a.fetchLeague(ctx)
	if err != nil {
		return nil, err
	}

	pool := data.AllPlayers()
	player, err := ResolvePlayer(pool, name)
	if err != nil {
		return nil, err
	}

	set, err := a.scoreSet(ctx, data, period)
	if err != nil {
		return nil, err
	}

	out := &PlayerStats{
		Name:         player.Name,
		ProTeam:      player.ProTeam,
		Position:     player.Position,
		InjuryStatus: player.InjuryStatus,
		Period:       set.PeriodKey,
	}
	if score, ok := set.Scores[player.Name]; ok {
		out.Averages = set.Lines[player.Name]
		out.ZScores = score.Z
		out.PerGamePower = score.PerGamePower
		out.SeasonPower = score.SeasonPower
		out.GamesPlayed = score.GamesPlayed
	}
	return out, nil
}

// TopFreeAgents ranks the free-agent pool by per-game power and returns the
// top entries with their game count in the current matchup window.
func (a *Analyzer) TopFreeAgents(ctx context.Context, period string, limit int) ([]FreeAgent, error) {
	if limit <= 0 {
		limit = 10
	}

	data, err := a.fetchLeague(ctx)
	if err != nil {
		return nil, err
	}
	set, err := a.scoreSet(ctx, data, period)
	if err != nil {
		return nil, err
	}

	window, _ := a.league.Window(a.CurrentMatchupID())

	agents := make([]FreeAgent, 0, len(data.FreeAgents))
	for i := range data.FreeAgents {
		p := &data.FreeAgents[i]
		score, ok := set.Scores[p.Name]
		if !ok {
			continue
		}
		agents = append(agents, FreeAgent{
			PlayerStats: PlayerStats{
				Name:         p.Name,
				ProTeam:      p.ProTeam,
				Position:     p.Position,
				InjuryStatus: p.InjuryStatus,
				Period:       set.PeriodKey,
				Averages:     set.Lines[p.Name],
				ZScores:      score.Z,
				PerGamePower: score.PerGamePower,
				SeasonPower:  score.SeasonPower,
				GamesPlayed:  score.GamesPlayed,
			},
			GamesThisMatchup: data.Schedule.GamesIn(p.ProTeamID, window),
		})
	}

	sort.SliceStable(agents, func(i, j int) bool {
		return agents[i].PerGamePower > agents[j].PerGamePower
	})
	if len(agents) > limit {
		agents = agents[:limit]
	}
	return agents, nil
}

// ProjectTeam projects one team's totals over the matchup window.
func (a *Analyzer) ProjectTeam(ctx context.Context, teamName string, matchupID int, period string) (*TeamTotals, error) {
	data, err := a.fetchLeague(ctx)
	if err != nil {
		return nil, err
	}
	team, err := ResolveTeam(data.Teams, teamName)
	if err != nil {
		return nil, err
	}
	set, err := a.scoreSet(ctx, data, period)
	if err != nil {
		return nil, err
	}

	proj := matchup.NewProjector(a.league, data.Schedule, set.Scores, set.Lines,
		logger.WithMatchupContext(matchupID, team.Name))
	totals, err := proj.ProjectTeam(team, matchupID)
	if err != nil {
		return nil, err
	}
	return &TeamTotals{Team: team.Name, Totals: totals}, nil
}

// ProjectMatchup projects both teams over the matchup window and compares
// them category by category.
func (a *Analyzer) ProjectMatchup(ctx context.Context, teamA, teamB string, matchupID int, period string) (*MatchupProjection, error) {
	data, err := a.fetchLeague(ctx)
	if err != nil {
		return nil, err
	}
	ta, err := ResolveTeam(data.Teams, teamA)
	if err != nil {
		return nil, err
	}
	tb, err := ResolveTeam(data.Teams, teamB)
	if err != nil {
		return nil, err
	}
	set, err := a.scoreSet(ctx, data, period)
	if err != nil {
		return nil, err
	}

	proj := matchup.NewProjector(a.league, data.Schedule, set.Scores, set.Lines,
		logger.WithMatchupContext(matchupID, ""))
	totalsA, err := proj.ProjectTeam(ta, matchupID)
	if err != nil {
		return nil, err
	}
	totalsB, err := proj.ProjectTeam(tb, matchupID)
	if err != nil {
		return nil, err
	}

	return &MatchupProjection{
		MatchupID:  matchupID,
		Period:     set.PeriodKey,
		TeamA:      TeamTotals{Team: ta.Name, Totals: totalsA},
		TeamB:      TeamTotals{Team: tb.Name, Totals: totalsB},
		Comparison: matchup.Compare(ta.Name, totalsA, tb.Name, totalsB, a.league.Categories),
	}, nil
}

// ProjectAllMatchups pairs the league's teams sequentially (first with
// second, third with fourth, ...) and projects each pairing. League schedule
// data is not exposed by the snapshot, so the pairing is positional.
func (a *Analyzer) ProjectAllMatchups(ctx context.Context, matchupID int, period string) ([]MatchupProjection, error) {
	data, err := a.fetchLeague(ctx)
	if err != nil {
		return nil, err
	}
	set, err := a.scoreSet(ctx, data, period)
	if err != nil {
		return nil, err
	}

	proj := matchup.NewProjector(a.league, data.Schedule, set.Scores, set.Lines,
		logger.WithMatchupContext(matchupID, ""))

	projections := make([]MatchupProjection, 0, len(data.Teams)/2)
	for i := 0; i+1 < len(data.Teams); i += 2 {
		ta, tb := &data.Teams[i], &data.Teams[i+1]
		totalsA, err := proj.ProjectTeam(ta, matchupID)
		if err != nil {
			return nil, err
		}
		totalsB, err := proj.ProjectTeam(tb, matchupID)
		if err != nil {
			return nil, err
		}
		projections = append(projections, MatchupProjection{
			MatchupID:  matchupID,
			Period:     set.PeriodKey,
			TeamA:      TeamTotals{Team: ta.Name, Totals: totalsA},
			TeamB:      TeamTotals{Team: tb.Name, Totals: totalsB},
			Comparison: matchup.Compare(ta.Name, totalsA, tb.Name, totalsB, a.league.Categories),
		})
	}
	return projections, nil
}

// Roster returns a team's roster sorted by per-game power. Players without
// stats for the period appear at the bottom with zero scores.
func (a *Analyzer) Roster(ctx context.Context, teamName, period string) (*TeamRoster, error) {
	data, err := a.fetchLeague(ctx)
	if err != nil {
		return nil, err
	}
	team, err := ResolveTeam(data.Teams, teamName)
	if err != nil {
		return nil, err
	}
	set, err := a.scoreSet(ctx, data, period)
	if err != nil {
		return nil, err
	}

	entries := make([]RosterEntry, 0, len(team.Roster))
	for i := range team.Roster {
		p := &team.Roster[i]
		entry := RosterEntry{
			Name:         p.Name,
			Position:     p.Position,
			ProTeam:      p.ProTeam,
			InjuryStatus: p.InjuryStatus,
		}
		if score, ok := set.Scores[p.Name]; ok {
			entry.PerGamePower = score.PerGamePower
			entry.SeasonPower = score.SeasonPower
			entry.GamesPlayed = score.GamesPlayed
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PerGamePower > entries[j].PerGamePower
	})

	return &TeamRoster{Team: team.Name, Period: set.PeriodKey, Roster: entries}, nil
}

// Rankings returns the full pool sorted by season power.
func (a *Analyzer) Rankings(ctx context.Context, period string, limit int) ([]PlayerStats, error) {
	data, err := a.fetchLeague(ctx)
	if err != nil {
		return nil, err
	}
	set, err := a.scoreSet(ctx, data, period)
	if err != nil {
		return nil, err
	}

	pool := data.AllPlayers()
	ranked := make([]PlayerStats, 0, len(pool))
	seen := make(map[string]bool, len(pool))
	for i := range pool {
		p := &pool[i]
		score, ok := set.Scores[p.Name]
		if !ok || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		ranked = append(ranked, PlayerStats{
			Name:         p.Name,
			ProTeam:      p.ProTeam,
			Position:     p.Position,
			InjuryStatus: p.InjuryStatus,
			Period:       set.PeriodKey,
			Averages:     set.Lines[p.Name],
			ZScores:      score.Z,
			PerGamePower: score.PerGamePower,
			SeasonPower:  score.SeasonPower,
			GamesPlayed:  score.GamesPlayed,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SeasonPower > ranked[j].SeasonPower
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// LeagueAverages computes each team's mean z-score per category over its
// scored roster, a coarse view of category strengths across the league.
func (a *Analyzer) LeagueAverages(ctx context.Context, period string) ([]TeamAverages, error) {
	data, err := a.fetchLeague(ctx)
	if err != nil {
		return nil, err
	}
	set, err := a.scoreSet(ctx, data, period)
	if err != nil {
		return nil, err
	}

	out := make([]TeamAverages, 0, len(data.Teams))
	for i := range data.Teams {
		team := &data.Teams[i]
		sums := make(map[types.Category]float64, len(a.league.Categories))
		scored := 0
		for j := range team.Roster {
			score, ok := set.Scores[team.Roster[j].Name]
			if !ok {
				continue
			}
			scored++
			for cat, z := range score.Z {
				sums[cat] += z
			}
		}

		avg := make(map[types.Category]float64, len(sums))
		if scored > 0 {
			for cat, sum := range sums {
				avg[cat] = sum / float64(scored)
			}
		}
		out = append(out, TeamAverages{
			Team:       team.Name,
			RosterSize: len(team.Roster),
			AvgZ:       avg,
		})
	}
	return out, nil
}
