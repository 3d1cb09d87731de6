package lineup

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/hooplytics/fantasy-nba/internal/stats"
	"github.com/hooplytics/fantasy-nba/internal/types"
)

// slotCategories are the per-game stats recorded for each filled slot.
var slotCategories = append(append([]types.Category{}, types.CountingCategories...), types.CatDoubleDoubles)

// Assignment is one slot of a daily lineup. Player is nil when no eligible
// player was left for the slot.
type Assignment struct {
	Slot   Slot           `json:"slot"`
	Player *types.Player  `json:"player,omitempty"`
	Stats  types.StatLine `json:"stats,omitempty"`
}

// Optimize greedily fills the fixed slot order with the available players.
// Players are sorted once by per-game power (descending, stable on ties);
// each slot takes the first unused eligible player, recording the player's
// counting stats for the day. A slot with no eligible player left stays
// empty. This is a locally greedy heuristic, not an optimal assignment under
// position constraints: a strong multi-position player taken early can leave
// a later, more constrained slot unfillable. That behavior is intentional.
//
// scores and lines are keyed by player name; lines carry the effective
// per-period averages with the double-double estimate already injected.
// Players missing from either map are skipped.
func Optimize(available []types.Player, scores map[string]*stats.Scores, lines map[string]types.StatLine, log *logrus.Entry) []Assignment {
	ranked := make([]*types.Player, 0, len(available))
	for i := range available {
		if _, ok := scores[available[i].Name]; ok {
			ranked = append(ranked, &available[i])
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].Name].PerGamePower > scores[ranked[j].Name].PerGamePower
	})

	assignments := make([]Assignment, 0, len(DefaultSlots))
	used := make(map[string]bool, len(DefaultSlots))

	for _, slot := range DefaultSlots {
		assignment := Assignment{Slot: slot}
		for _, player := range ranked {
			if used[player.Name] {
				continue
			}
			if !CanFill(player, slot) {
				continue
			}
			line, ok := lines[player.Name]
			if !ok {
				continue
			}

			assignment.Player = player
			assignment.Stats = slotStats(line)
			used[player.Name] = true
			break
		}

		if assignment.Player == nil && log != nil {
			log.WithField("slot", slot).Debug("No eligible player left for slot")
		}
		assignments = append(assignments, assignment)
	}

	return assignments
}

// slotStats extracts the recorded counting stats for a filled slot. Missing
// averages count as zero here: the player is playing, so an unavailable
// category contributes nothing rather than invalidating the slot.
func slotStats(line types.StatLine) types.StatLine {
	out := make(types.StatLine, len(slotCategories))
	for _, cat := range slotCategories {
		if v, ok := line.Get(cat); ok {
			out[cat] = v
		} else {
			out[cat] = 0
		}
	}
	return out
}
