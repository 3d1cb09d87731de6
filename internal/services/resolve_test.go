package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooplytics/fantasy-nba/internal/types"
)

func TestResolvePlayerExactAndCaseInsensitive(t *testing.T) {
	players := []types.Player{
		{Name: "LeBron James"},
		{Name: "Nikola Jokic"},
	}

	p, err := ResolvePlayer(players, "LeBron James")
	require.NoError(t, err)
	assert.Equal(t, "LeBron James", p.Name)

	p, err = ResolvePlayer(players, "lebron james")
	require.NoError(t, err)
	assert.Equal(t, "LeBron James", p.Name)
}

func TestResolvePlayerFuzzy(t *testing.T) {
	players := []types.Player{
		{Name: "LeBron James"},
		{Name: "Nikola Jokic"},
		{Name: "Jayson Tatum"},
	}

	p, err := ResolvePlayer(players, "Lebron Jmaes")
	require.NoError(t, err)
	assert.Equal(t, "LeBron James", p.Name)

	p, err = ResolvePlayer(players, "nikola jokich")
	require.NoError(t, err)
	assert.Equal(t, "Nikola Jokic", p.Name)
}

func TestResolvePlayerNotFound(t *testing.T) {
	players := []types.Player{{Name: "LeBron James"}}

	_, err := ResolvePlayer(players, "xqzv")
	var notFound *ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "player", notFound.Kind)
}

func TestResolveTeamByNameAndAbbrev(t *testing.T) {
	teams := []types.Team{
		{Name: "Ball Hogs", Abbrev: "BH"},
		{Name: "Dunk Dynasty", Abbrev: "DD"},
	}

	team, err := ResolveTeam(teams, "ball hogs")
	require.NoError(t, err)
	assert.Equal(t, "Ball Hogs", team.Name)

	team, err = ResolveTeam(teams, "dd")
	require.NoError(t, err)
	assert.Equal(t, "Dunk Dynasty", team.Name)

	team, err = ResolveTeam(teams, "Dunk Dinasty")
	require.NoError(t, err)
	assert.Equal(t, "Dunk Dynasty", team.Name)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("abc", "abc"))
	assert.Equal(t, 0.0, similarity("", "abc"))
	assert.InDelta(t, 0.75, similarity("abcd", "abcx"), 1e-9)
	assert.Less(t, similarity("abcd", "wxyz"), matchCutoff)
}
