package matchup

import "github.com/hooplytics/fantasy-nba/internal/types"

// TieResult marks a category neither team wins.
const TieResult = "TIE"

// Comparison is the head-to-head result of two accumulated totals: the
// winning team name (or TIE) per category and the category counts won by each
// side. No overall winner is derived; the category count is the terminal
// output.
type Comparison struct {
	Winners map[types.Category]string `json:"category_winners"`
	WinsA   int                       `json:"team_a_wins"`
	WinsB   int                       `json:"team_b_wins"`
}

// Compare evaluates each category independently: the strictly greater value
// wins, equal values tie and count for neither side. A category missing from
// a totals map counts as zero.
func Compare(nameA string, a *Totals, nameB string, b *Totals, cats []types.Category) Comparison {
	result := Comparison{Winners: make(map[types.Category]string, len(cats))}

	for _, cat := range cats {
		valA := a.Stats[cat]
		valB := b.Stats[cat]

		switch {
		case valA > valB:
			result.Winners[cat] = nameA
			result.WinsA++
		case valB > valA:
			result.Winners[cat] = nameB
			result.WinsB++
		default:
			result.Winners[cat] = TieResult
		}
	}

	return result
}
