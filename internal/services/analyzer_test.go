package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooplytics/fantasy-nba/internal/config"
	"github.com/hooplytics/fantasy-nba/internal/provider"
	"github.com/hooplytics/fantasy-nba/internal/types"
	"github.com/hooplytics/fantasy-nba/pkg/logger"
)

type staticProvider struct {
	data *types.LeagueData
}

func (p *staticProvider) FetchLeague(ctx context.Context) (*types.LeagueData, error) {
	return p.data, nil
}

func totalStats(pts, reb, ast, gp float64) map[string]types.PeriodStats {
	return map[string]types.PeriodStats{
		"2026_total": {
			Averages: types.StatLine{
				types.CatPoints:   pts,
				types.CatRebounds: reb,
				types.CatAssists:  ast,
			},
			GamesPlayed: gp,
		},
	}
}

func testLeagueData() *types.LeagueData {
	return &types.LeagueData{
		Teams: []types.Team{
			{
				TeamID: 1,
				Name:   "Ball Hogs",
				Abbrev: "BH",
				Roster: []types.Player{
					{PlayerID: 1, Name: "Alpha Star", Position: "PG", ProTeamID: 10, Stats: totalStats(30, 8, 9, 70)},
					{PlayerID: 2, Name: "Beta Role", Position: "C", ProTeamID: 11, Stats: totalStats(12, 10, 1, 75)},
				},
			},
			{
				TeamID: 2,
				Name:   "Dunk Dynasty",
				Abbrev: "DD",
				Roster: []types.Player{
					{PlayerID: 3, Name: "Gamma Wing", Position: "SF", ProTeamID: 12, Stats: totalStats(22, 6, 4, 80)},
					{
						PlayerID: 4, Name: "Delta Rookie", Position: "SG", ProTeamID: 13,
						// No real stats yet; only a projection exists.
						Stats: map[string]types.PeriodStats{
							"2026_projected": {
								Averages:    types.StatLine{types.CatPoints: 14, types.CatAssists: 3},
								GamesPlayed: 0,
							},
						},
					},
				},
			},
		},
		FreeAgents: []types.Player{
			{PlayerID: 5, Name: "Epsilon FA", Position: "PF", ProTeamID: 14, Stats: totalStats(18, 7, 2, 78)},
			{PlayerID: 6, Name: "Zeta Bench", Position: "PG", ProTeamID: 15, Stats: totalStats(6, 2, 3, 40)},
		},
		Schedule: types.ProSchedule{
			10: {1: true, 2: true, 3: true},
			11: {1: true, 3: true},
			12: {2: true},
			13: {1: true, 2: true},
			14: {1: true, 2: true, 3: true},
			15: {3: true},
		},
	}
}

func testAnalyzer(data *types.LeagueData) *Analyzer {
	cfg := &config.Config{LeagueID: 1, SeasonYear: 2026}
	logger.InitLogger("panic", false)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewAnalyzer(
		&staticProvider{data: data},
		config.NewLeague(cfg),
		provider.NoopCache{},
		time.Minute,
		log.WithField("service", "test"),
	)
}

func TestPlayerSummary(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	summary, err := analyzer.PlayerSummary(context.Background(), "alpha star", "total")
	require.NoError(t, err)

	assert.Equal(t, "Alpha Star", summary.Name)
	assert.Equal(t, "2026_total", summary.Period)
	assert.Equal(t, 70.0, summary.GamesPlayed)
	assert.Greater(t, summary.PerGamePower, 0.0)
	// The pool's best scorer should carry a positive points z-score.
	assert.Greater(t, summary.ZScores[types.CatPoints], 0.0)
	// The double-double estimate is injected into the effective averages.
	_, hasDD := summary.Averages.Get(types.CatDoubleDoubles)
	assert.True(t, hasDD)
}

func TestPlayerSummaryProjectedFallback(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	// The rookie has no totals; the projected line is used instead.
	summary, err := analyzer.PlayerSummary(context.Background(), "Delta Rookie", "total")
	require.NoError(t, err)

	require.NotNil(t, summary.Averages)
	assert.Equal(t, 14.0, summary.Averages[types.CatPoints])
	// Unknown games played defaults to a full season.
	assert.Equal(t, 82.0, summary.GamesPlayed)
}

func TestPlayerSummaryUnknownPeriod(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	_, err := analyzer.PlayerSummary(context.Background(), "Alpha Star", "last_90")
	var unknown *config.ErrUnknownPeriod
	require.ErrorAs(t, err, &unknown)
}

func TestTopFreeAgents(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	agents, err := analyzer.TopFreeAgents(context.Background(), "total", 10)
	require.NoError(t, err)
	require.Len(t, agents, 2)

	// Sorted by per-game power, strongest first.
	assert.Equal(t, "Epsilon FA", agents[0].Name)
	assert.Equal(t, "Zeta Bench", agents[1].Name)
	assert.Greater(t, agents[0].PerGamePower, agents[1].PerGamePower)

	limited, err := analyzer.TopFreeAgents(context.Background(), "total", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRoster(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	roster, err := analyzer.Roster(context.Background(), "Ball Hogs", "total")
	require.NoError(t, err)
	require.Len(t, roster.Roster, 2)

	assert.Equal(t, "Alpha Star", roster.Roster[0].Name)
	assert.GreaterOrEqual(t, roster.Roster[0].PerGamePower, roster.Roster[1].PerGamePower)
}

func TestProjectMatchup(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	projection, err := analyzer.ProjectMatchup(context.Background(), "Ball Hogs", "Dunk Dynasty", 1, "total")
	require.NoError(t, err)

	assert.Equal(t, 1, projection.MatchupID)
	assert.Equal(t, "Ball Hogs", projection.TeamA.Team)
	assert.Equal(t, "Dunk Dynasty", projection.TeamB.Team)
	// Alpha Star and Beta Role play 5 games combined in days 1-3.
	assert.Greater(t, projection.TeamA.Totals.GamesPlayed, 0)
	assert.Greater(t, projection.TeamA.Totals.Stats[types.CatPoints], 0.0)
	assert.Len(t, projection.Comparison.Winners, len(types.ScoringCategories))
}

func TestProjectMatchupUnknownID(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	_, err := analyzer.ProjectMatchup(context.Background(), "Ball Hogs", "Dunk Dynasty", 99, "total")
	assert.Error(t, err)
}

func TestProjectAllMatchupsPairsSequentially(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	projections, err := analyzer.ProjectAllMatchups(context.Background(), 1, "total")
	require.NoError(t, err)
	require.Len(t, projections, 1)

	assert.Equal(t, "Ball Hogs", projections[0].TeamA.Team)
	assert.Equal(t, "Dunk Dynasty", projections[0].TeamB.Team)
}

func TestLeagueAverages(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	averages, err := analyzer.LeagueAverages(context.Background(), "total")
	require.NoError(t, err)
	require.Len(t, averages, 2)

	assert.Equal(t, 2, averages[0].RosterSize)
	assert.NotEmpty(t, averages[0].AvgZ)
}

func TestRankings(t *testing.T) {
	analyzer := testAnalyzer(testLeagueData())

	ranked, err := analyzer.Rankings(context.Background(), "total", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 6)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].SeasonPower, ranked[i].SeasonPower)
	}
}
