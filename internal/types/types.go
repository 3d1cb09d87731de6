package types

import "strings"

// Category identifies one statistical category tracked by the league.
type Category string

const (
	CatPoints        Category = "PTS"
	CatBlocks        Category = "BLK"
	CatSteals        Category = "STL"
	CatAssists       Category = "AST"
	CatRebounds      Category = "REB"
	CatThrees        Category = "3PM"
	CatFTPct         Category = "FT%"
	CatDoubleDoubles Category = "DD"

	// Free-throw makes/attempts are not scored directly but are accumulated
	// so FT% can be derived as a ratio of sums.
	CatFTMade      Category = "FTM"
	CatFTAttempted Category = "FTA"
)

// ScoringCategories is the fixed category set, in display order.
var ScoringCategories = []Category{
	CatPoints, CatBlocks, CatSteals, CatAssists,
	CatRebounds, CatThrees, CatFTPct, CatDoubleDoubles,
}

// CountingCategories are the per-game stats recorded for each filled lineup
// slot during matchup projection.
var CountingCategories = []Category{
	CatPoints, CatAssists, CatBlocks, CatRebounds, CatSteals,
	CatThrees, CatFTMade, CatFTAttempted,
}

// StatLine maps a category to a per-game average. A category with no
// available value is simply absent from the map; it is never coerced to zero.
type StatLine map[Category]float64

// Get returns the value for cat and whether it is present.
func (s StatLine) Get(cat Category) (float64, bool) {
	v, ok := s[cat]
	return v, ok
}

// Clone returns a shallow copy of the line.
func (s StatLine) Clone() StatLine {
	out := make(StatLine, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// PeriodStats holds a player's per-game averages for one time period.
type PeriodStats struct {
	Averages    StatLine `json:"averages"`
	GamesPlayed float64  `json:"games_played"`
}

// Player is a league player, rostered or free agent. Players are identified
// by PlayerID (and name for display); object identity is never used as a key.
type Player struct {
	PlayerID     int                    `json:"player_id"`
	Name         string                 `json:"name"`
	Position     string                 `json:"position"` // comma separated, e.g. "PG,SG"
	ProTeamID    int                    `json:"pro_team_id"`
	ProTeam      string                 `json:"pro_team"`
	Injured      bool                   `json:"injured"`
	InjuryStatus string                 `json:"injury_status"`
	Stats        map[string]PeriodStats `json:"stats"` // keyed by season-qualified period key
}

// Positions splits the player's eligible positions.
func (p *Player) Positions() []string {
	parts := strings.Split(p.Position, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// PeriodAverages returns the player's averages for the given period key.
func (p *Player) PeriodAverages(key string) (StatLine, bool) {
	ps, ok := p.Stats[key]
	if !ok || ps.Averages == nil {
		return nil, false
	}
	return ps.Averages, true
}

// OutOfLineup reports whether the player must be excluded from daily lineups.
func (p *Player) OutOfLineup() bool {
	return p.Injured || p.InjuryStatus == "OUT"
}

// Team is a fantasy team with its current roster.
type Team struct {
	TeamID int      `json:"team_id"`
	Name   string   `json:"name"`
	Abbrev string   `json:"abbrev"`
	Roster []Player `json:"roster"`
}

// ProSchedule maps an NBA team id to the set of scoring periods on which it
// has a scheduled game.
type ProSchedule map[int]map[int]bool

// PlaysOn reports whether the pro team has a game in the scoring period.
func (s ProSchedule) PlaysOn(proTeamID, scoringPeriod int) bool {
	periods, ok := s[proTeamID]
	if !ok {
		return false
	}
	return periods[scoringPeriod]
}

// GamesIn counts the pro team's games within the given scoring periods.
func (s ProSchedule) GamesIn(proTeamID int, scoringPeriods []int) int {
	count := 0
	for _, sp := range scoringPeriods {
		if s.PlaysOn(proTeamID, sp) {
			count++
		}
	}
	return count
}

// LeagueData is one fetched snapshot of the league: teams with rosters, the
// free-agent pool, and the NBA schedule for the season.
type LeagueData struct {
	Teams      []Team      `json:"teams"`
	FreeAgents []Player    `json:"free_agents"`
	Schedule   ProSchedule `json:"schedule"`
}

// AllPlayers returns every rostered player plus the free-agent pool.
func (d *LeagueData) AllPlayers() []Player {
	var out []Player
	for _, t := range d.Teams {
		out = append(out, t.Roster...)
	}
	out = append(out, d.FreeAgents...)
	return out
}

// TeamByName returns the team with the exact given name.
func (d *LeagueData) TeamByName(name string) (*Team, bool) {
	for i := range d.Teams {
		if d.Teams[i].Name == name {
			return &d.Teams[i], true
		}
	}
	return nil, false
}
