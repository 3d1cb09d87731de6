package matchup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooplytics/fantasy-nba/internal/config"
	"github.com/hooplytics/fantasy-nba/internal/stats"
	"github.com/hooplytics/fantasy-nba/internal/types"
)

func testLeague() *config.League {
	return config.NewLeague(&config.Config{LeagueID: 1, SeasonYear: 2026})
}

func TestProjectTeamAccumulatesAcrossDays(t *testing.T) {
	league := testLeague()
	league.MatchupSchedule = map[int][]int{1: {1, 2}}

	team := &types.Team{
		Name: "Testers",
		Roster: []types.Player{
			{Name: "starter", Position: "PG", ProTeamID: 10},
		},
	}
	// A game on day 1 only; day 2 has no eligible players and is skipped.
	schedule := types.ProSchedule{10: {1: true}}

	scores := map[string]*stats.Scores{"starter": {PerGamePower: 5}}
	lines := map[string]types.StatLine{"starter": {
		types.CatPoints:        10,
		types.CatFTMade:        4,
		types.CatFTAttempted:   5,
		types.CatDoubleDoubles: 0.2,
	}}

	proj := NewProjector(league, schedule, scores, lines, nil)
	totals, err := proj.ProjectTeam(team, 1)
	require.NoError(t, err)

	assert.Equal(t, 10.0, totals.Stats[types.CatPoints])
	assert.Equal(t, 0.2, totals.Stats[types.CatDoubleDoubles])
	assert.Equal(t, 1, totals.GamesPlayed)
	assert.InDelta(t, 0.8, totals.Stats[types.CatFTPct], 1e-9)
}

func TestProjectTeamFTPctIsRatioOfSums(t *testing.T) {
	league := testLeague()
	league.MatchupSchedule = map[int][]int{1: {1}}

	team := &types.Team{
		Name: "Testers",
		Roster: []types.Player{
			{Name: "efficient", Position: "PG", ProTeamID: 10},
			{Name: "volume", Position: "SG", ProTeamID: 10},
		},
	}
	schedule := types.ProSchedule{10: {1: true}}

	scores := map[string]*stats.Scores{
		"efficient": {PerGamePower: 5},
		"volume":    {PerGamePower: 4},
	}
	lines := map[string]types.StatLine{
		// 1/1 from the line and 5/10 in volume: pooled FT% is 6/11, not the
		// 0.75 a mean of the two percentages would give.
		"efficient": {types.CatFTMade: 1, types.CatFTAttempted: 1},
		"volume":    {types.CatFTMade: 5, types.CatFTAttempted: 10},
	}

	proj := NewProjector(league, schedule, scores, lines, nil)
	totals, err := proj.ProjectTeam(team, 1)
	require.NoError(t, err)

	assert.InDelta(t, 6.0/11.0, totals.Stats[types.CatFTPct], 1e-9)
}

func TestProjectTeamZeroAttempts(t *testing.T) {
	league := testLeague()
	league.MatchupSchedule = map[int][]int{1: {1}}

	team := &types.Team{
		Name: "Testers",
		Roster: []types.Player{
			{Name: "noft", Position: "C", ProTeamID: 10},
		},
	}
	schedule := types.ProSchedule{10: {1: true}}

	scores := map[string]*stats.Scores{"noft": {PerGamePower: 2}}
	lines := map[string]types.StatLine{"noft": {types.CatPoints: 8}}

	proj := NewProjector(league, schedule, scores, lines, nil)
	totals, err := proj.ProjectTeam(team, 1)
	require.NoError(t, err)

	assert.Equal(t, 0.0, totals.Stats[types.CatFTPct])
}

func TestProjectTeamExcludesInjuredPlayers(t *testing.T) {
	league := testLeague()
	league.MatchupSchedule = map[int][]int{1: {1}}

	team := &types.Team{
		Name: "Testers",
		Roster: []types.Player{
			{Name: "healthy", Position: "PG", ProTeamID: 10},
			{Name: "out", Position: "PG", ProTeamID: 10, InjuryStatus: "OUT"},
			{Name: "hurt", Position: "PG", ProTeamID: 10, Injured: true},
		},
	}
	schedule := types.ProSchedule{10: {1: true}}

	scores := map[string]*stats.Scores{
		"healthy": {PerGamePower: 1},
		"out":     {PerGamePower: 9},
		"hurt":    {PerGamePower: 8},
	}
	lines := map[string]types.StatLine{
		"healthy": {types.CatPoints: 10},
		"out":     {types.CatPoints: 30},
		"hurt":    {types.CatPoints: 28},
	}

	proj := NewProjector(league, schedule, scores, lines, nil)
	totals, err := proj.ProjectTeam(team, 1)
	require.NoError(t, err)

	// Only the healthy player contributes, despite the lower power score.
	assert.Equal(t, 10.0, totals.Stats[types.CatPoints])
	assert.Equal(t, 1, totals.GamesPlayed)
}

func TestProjectTeamUnknownMatchup(t *testing.T) {
	league := testLeague()
	team := &types.Team{Name: "Testers"}

	proj := NewProjector(league, types.ProSchedule{}, nil, nil, nil)

	_, err := proj.ProjectTeam(team, 21)
	var unknown *ErrUnknownMatchup
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 21, unknown.MatchupID)

	_, err = proj.ProjectTeam(team, 0)
	assert.Error(t, err)
}
