package lineup

import "github.com/hooplytics/fantasy-nba/internal/types"

// Slot is one position in the daily lineup template.
type Slot string

const (
	SlotPG   Slot = "PG"
	SlotSG   Slot = "SG"
	SlotSF   Slot = "SF"
	SlotPF   Slot = "PF"
	SlotC    Slot = "C"
	SlotG    Slot = "G"    // PG or SG
	SlotF    Slot = "F"    // SF or PF
	SlotUtil Slot = "UTIL" // any position
)

// DefaultSlots is the fixed slot order: specific positions first, then flex,
// then utility. Order matters for the greedy optimizer.
var DefaultSlots = []Slot{
	SlotPG, SlotSG, SlotSF, SlotPF, SlotC,
	SlotG, SlotF, SlotUtil, SlotUtil, SlotUtil,
}

// CanFill reports whether a player with the given eligible positions can
// occupy the slot. Flex slots accept either of their two related positions;
// the utility slot accepts anyone.
func CanFill(player *types.Player, slot Slot) bool {
	if slot == SlotUtil {
		return true
	}

	for _, pos := range player.Positions() {
		if pos == string(slot) {
			return true
		}
		if slot == SlotG && (pos == "PG" || pos == "SG") {
			return true
		}
		if slot == SlotF && (pos == "SF" || pos == "PF") {
			return true
		}
	}

	return false
}
