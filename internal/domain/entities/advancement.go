package entities

// AdvancementTable maps a facility category to a level-indexed schedule
// of cumulative slot counts. The effective count at level L is the
// value of the greatest key <= L, or 0 when no key qualifies.
type AdvancementTable map[FacilityCategory]map[int]int

// SlotsAt returns the cumulative slot count for a category at the given
// level. Missing categories and levels below every threshold yield 0.
func (t AdvancementTable) SlotsAt(category FacilityCategory, level int) int {
	schedule, ok := t[category]
	if !ok {
		return 0
	}

	best := -1
	slots := 0
	for minLevel, count := range schedule {
		if minLevel <= level && minLevel > best {
			best = minLevel
			slots = count
		}
	}
	return slots
}

// DefaultAdvancement is the standard bastion facility schedule: both
// pools open at level 5, special slots keep growing at 9, 13 and 17.
func DefaultAdvancement() AdvancementTable {
	return AdvancementTable{
		CategoryBasic: {5: 2},
		CategorySpecial: {
			5:  2,
			9:  4,
			13: 5,
			17: 6,
		},
	}
}
