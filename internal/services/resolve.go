package services

import (
	"fmt"
	"strings"

	"github.com/hooplytics/fantasy-nba/internal/types"
)

// matchCutoff is the minimum similarity for a fuzzy name match.
const matchCutoff = 0.6

// ErrNotFound is returned when a player or team name cannot be resolved.
type ErrNotFound struct {
	Kind string
	Name string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("no %s matching %q", e.Kind, e.Name)
}

// ResolvePlayer finds the player best matching the given name. Exact matches
// (case insensitive) win; otherwise the closest fuzzy match above the cutoff
// is used, so "lebron james" and "Lebron Jmaes" both resolve.
func ResolvePlayer(players []types.Player, name string) (*types.Player, error) {
	query := normalizeName(name)

	for i := range players {
		if normalizeName(players[i].Name) == query {
			return &players[i], nil
		}
	}

	bestScore := 0.0
	bestIdx := -1
	for i := range players {
		score := similarity(query, normalizeName(players[i].Name))
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestScore >= matchCutoff {
		return &players[bestIdx], nil
	}

	return nil, &ErrNotFound{Kind: "player", Name: name}
}

// ResolveTeam finds the fantasy team best matching the given name or
// abbreviation.
func ResolveTeam(teams []types.Team, name string) (*types.Team, error) {
	query := normalizeName(name)

	for i := range teams {
		if normalizeName(teams[i].Name) == query || normalizeName(teams[i].Abbrev) == query {
			return &teams[i], nil
		}
	}

	bestScore := 0.0
	bestIdx := -1
	for i := range teams {
		score := similarity(query, normalizeName(teams[i].Name))
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestScore >= matchCutoff {
		return &teams[bestIdx], nil
	}

	return nil, &ErrNotFound{Kind: "team", Name: name}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// similarity scores two strings in [0, 1] as one minus the normalized
// Levenshtein distance.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 1 - float64(prev[len(rb)])/float64(maxLen)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
