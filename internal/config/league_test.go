package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeague() *League {
	return NewLeague(&Config{LeagueID: 1, SeasonYear: 2026})
}

func TestPeriodKey(t *testing.T) {
	league := newTestLeague()

	cases := map[string]string{
		"total":      "2026_total",
		"last_30":    "2026_last_30",
		"last30":     "2026_last_30",
		"last_15":    "2026_last_15",
		"last15":     "2026_last_15",
		"last_7":     "2026_last_7",
		"last7":      "2026_last_7",
		"projected":  "2026_projected",
		"projection": "2026_projected",
		"Total":      "2026_total",
		" last_7 ":   "2026_last_7",
	}
	for input, want := range cases {
		got, err := league.PeriodKey(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	// Already qualified keys pass through untouched.
	got, err := league.PeriodKey("2026_total")
	require.NoError(t, err)
	assert.Equal(t, "2026_total", got)
}

func TestPeriodKeyUnknown(t *testing.T) {
	league := newTestLeague()

	_, err := league.PeriodKey("last_90")
	var unknown *ErrUnknownPeriod
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "last_90", unknown.Key)
}

func TestMatchupScheduleShape(t *testing.T) {
	league := newTestLeague()

	require.Len(t, league.MatchupSchedule, 20)

	// Opening matchup is the short window; the All-Star matchup is doubled.
	assert.Len(t, league.MatchupSchedule[1], 6)
	assert.Len(t, league.MatchupSchedule[17], 14)
	assert.Len(t, league.MatchupSchedule[2], 7)
	assert.Len(t, league.MatchupSchedule[20], 7)

	// Windows are contiguous: each matchup starts where the last ended.
	next := 1
	for id := 1; id <= 20; id++ {
		sps, ok := league.Window(id)
		require.True(t, ok)
		require.NotEmpty(t, sps)
		assert.Equal(t, next, sps[0], "matchup %d", id)
		next = sps[len(sps)-1] + 1
	}
}

func TestWindowUnknownMatchup(t *testing.T) {
	league := newTestLeague()

	_, ok := league.Window(0)
	assert.False(t, ok)
	_, ok = league.Window(21)
	assert.False(t, ok)
}

func TestCurrentMatchupID(t *testing.T) {
	league := newTestLeague()

	// Before the season.
	assert.Equal(t, 1, league.CurrentMatchupID(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)))

	// Opening day.
	assert.Equal(t, 1, league.CurrentMatchupID(time.Date(2025, time.October, 21, 12, 0, 0, 0, time.UTC)))

	// Day 7 of the season is the first day of matchup 2.
	assert.Equal(t, 2, league.CurrentMatchupID(time.Date(2025, time.October, 27, 0, 0, 0, 0, time.UTC)))

	// After the season ends, clamp to the final matchup.
	assert.Equal(t, 20, league.CurrentMatchupID(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)))
}

func TestVarianceRatios(t *testing.T) {
	league := newTestLeague()

	assert.Equal(t, 0.35, league.VarianceRatios["PTS"])
	assert.Equal(t, 0.60, league.VarianceRatios["BLK"])
	assert.Equal(t, 0.40, league.DefaultVarianceRatio)
	assert.Equal(t, time.Date(2025, time.October, 21, 0, 0, 0, 0, time.UTC), league.SeasonStart)
}
