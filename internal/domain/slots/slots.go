// Package slots implements bastion slot arithmetic: how many facility
// slots an actor's level unlocks per category, which are taken, and how
// a facility's occupancy maps onto a fixed-capacity slot array.
package slots

import "github.com/AzureCamel/Bastion-Manager/internal/domain/entities"

// Placeholder marks an open build slot for a category.
type Placeholder struct {
	Category entities.FacilityCategory `json:"category"`
}

// Availability describes the slot state of one facility category.
type Availability struct {
	// Value is the number of slots currently consumed.
	Value int `json:"value"`
	// Max is the schedule lookup plus any override.
	Max int `json:"max"`
	// Available holds one placeholder per open build slot.
	Available []Placeholder `json:"available"`
}

// ComputeAvailable computes slot availability for a category given the
// actor's level, the advancement schedule, the GM override and the
// facilities currently attached to the actor.
//
// Basic facilities always consume a slot; special facilities marked
// free do not. The basic category always offers at least one open
// build slot so a construction option is always presented.
func ComputeAvailable(category entities.FacilityCategory, level int, table entities.AdvancementTable, override entities.SlotOverride, facilities []entities.Facility) Availability {
	max := table.SlotsAt(category, level) + override.ForCategory(category)

	value := 0
	for _, f := range facilities {
		if f.Category != category {
			continue
		}
		if category == entities.CategorySpecial && f.Free {
			continue
		}
		value++
	}

	open := max - value
	if open < 0 {
		open = 0
	}
	if category == entities.CategoryBasic && open == 0 {
		open = 1
	}

	available := make([]Placeholder, open)
	for i := range available {
		available[i] = Placeholder{Category: category}
	}

	return Availability{
		Value:     value,
		Max:       max,
		Available: available,
	}
}

// OccupancySlot is one position in a facility's fixed-capacity
// occupancy array.
type OccupancySlot struct {
	Index    int                `json:"index"`
	Ref      string             `json:"ref,omitempty"`
	Occupant *entities.Occupant `json:"occupant,omitempty"`
	Empty    bool               `json:"empty"`
}

// Resolver looks up an occupant by reference. A false return means the
// underlying record is gone and the slot renders empty.
type Resolver func(ref string) (*entities.Occupant, bool)

// BuildOccupancySlots produces exactly capacity slots. Slot i is bound
// to refs[i] when that ref is present and resolves; otherwise the slot
// is empty. Refs beyond capacity are ignored.
func BuildOccupancySlots(refs []string, capacity int, resolve Resolver) []OccupancySlot {
	if capacity <= 0 {
		return []OccupancySlot{}
	}

	result := make([]OccupancySlot, capacity)
	for i := range result {
		result[i] = OccupancySlot{Index: i, Empty: true}

		if i >= len(refs) || refs[i] == "" {
			continue
		}

		occupant, ok := resolve(refs[i])
		if !ok {
			continue
		}

		result[i].Ref = refs[i]
		result[i].Occupant = occupant
		result[i].Empty = false
	}

	return result
}
