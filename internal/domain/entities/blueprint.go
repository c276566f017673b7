package entities

import "time"

// FacilityBlueprint is a catalog entry describing a buildable facility.
// Blueprints play the role of a compendium: the defaults are seeded on
// world creation and custom entries can be added alongside them.
type FacilityBlueprint struct {
	Name             string           `json:"name"`
	Category         FacilityCategory `json:"category"`
	MinLevel         int              `json:"min_level"`
	BuildDays        int              `json:"build_days"`
	DefenderCapacity int              `json:"defender_capacity"`
	HirelingCapacity int              `json:"hireling_capacity"`
	Description      string           `json:"description,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// DefaultBlueprints are the built-in facility blueprints seeded on world
// creation. These cannot be deleted by users.
var DefaultBlueprints = []FacilityBlueprint{
	{Name: "bedroom", Category: CategoryBasic, MinLevel: 5, BuildDays: 0, HirelingCapacity: 0, Description: "Sleeping quarters for the bastion's owner or guests"},
	{Name: "dining_room", Category: CategoryBasic, MinLevel: 5, BuildDays: 0, Description: "A hall for meals and hosted gatherings"},
	{Name: "courtyard", Category: CategoryBasic, MinLevel: 5, BuildDays: 0, Description: "An open space within the bastion walls"},
	{Name: "kitchen", Category: CategoryBasic, MinLevel: 5, BuildDays: 0, Description: "Food preparation for residents and hirelings"},
	{Name: "parlor", Category: CategoryBasic, MinLevel: 5, BuildDays: 0, Description: "A receiving room for visitors"},
	{Name: "storage", Category: CategoryBasic, MinLevel: 5, BuildDays: 0, Description: "Secure storage for goods and equipment"},
	{Name: "arcane_study", Category: CategorySpecial, MinLevel: 5, BuildDays: 20, HirelingCapacity: 1, Description: "A workspace for crafting arcane focuses and books"},
	{Name: "armory", Category: CategorySpecial, MinLevel: 5, BuildDays: 20, HirelingCapacity: 1, Description: "Stockpiles armaments and outfits the bastion's defenders"},
	{Name: "barrack", Category: CategorySpecial, MinLevel: 5, BuildDays: 20, DefenderCapacity: 12, HirelingCapacity: 1, Description: "Houses and trains bastion defenders"},
	{Name: "garden", Category: CategorySpecial, MinLevel: 5, BuildDays: 20, HirelingCapacity: 1, Description: "Grows food, herbs, poisons or decorative plants"},
	{Name: "library", Category: CategorySpecial, MinLevel: 5, BuildDays: 20, HirelingCapacity: 1, Description: "A research collection tended by a lore-wise hireling"},
	{Name: "sanctuary", Category: CategorySpecial, MinLevel: 5, BuildDays: 20, HirelingCapacity: 1, Description: "A shrine for crafting sacred focuses"},
	{Name: "smithy", Category: CategorySpecial, MinLevel: 5, BuildDays: 20, HirelingCapacity: 2, Description: "Forges weapons, armor and metal goods"},
	{Name: "storehouse", Category: CategorySpecial, MinLevel: 5, BuildDays: 20, HirelingCapacity: 1, Description: "Buys and sells trade goods for a profit"},
	{Name: "workshop", Category: CategorySpecial, MinLevel: 5, BuildDays: 20, HirelingCapacity: 3, Description: "Crafts adventuring gear and mundane items"},
	{Name: "gaming_hall", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 4, Description: "Hosts games of chance that generate revenue"},
	{Name: "greenhouse", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 1, Description: "Grows rare plants and healing herbs year-round"},
	{Name: "laboratory", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 1, Description: "Brews alchemical concoctions and poisons"},
	{Name: "sacristy", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 1, Description: "Prepares holy water and spell scrolls"},
	{Name: "scriptorium", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 1, Description: "Copies books and scribes spell scrolls"},
	{Name: "stable", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 1, Description: "Houses and trains mounts"},
	{Name: "teleportation_circle", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 1, Description: "A permanent circle linked to distant destinations"},
	{Name: "theater", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 4, Description: "Stages productions that inspire the bastion's allies"},
	{Name: "training_area", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 4, Description: "Drills combatants under an expert trainer"},
	{Name: "trophy_room", Category: CategorySpecial, MinLevel: 9, BuildDays: 30, HirelingCapacity: 1, Description: "Displays mementos and aids research into past exploits"},
	{Name: "archive", Category: CategorySpecial, MinLevel: 13, BuildDays: 45, HirelingCapacity: 1, Description: "A vault of rare records and reference works"},
	{Name: "meditation_chamber", Category: CategorySpecial, MinLevel: 13, BuildDays: 45, HirelingCapacity: 1, Description: "A quiet space that fortifies mind and spirit"},
	{Name: "menagerie", Category: CategorySpecial, MinLevel: 13, BuildDays: 45, DefenderCapacity: 2, HirelingCapacity: 2, Description: "Keeps exotic creatures that can defend the bastion"},
	{Name: "observatory", Category: CategorySpecial, MinLevel: 13, BuildDays: 45, HirelingCapacity: 1, Description: "Charts the heavens and yields arcane insight"},
	{Name: "pub", Category: CategorySpecial, MinLevel: 13, BuildDays: 45, HirelingCapacity: 5, Description: "A gathering place with an ear for local rumor"},
	{Name: "reliquary", Category: CategorySpecial, MinLevel: 13, BuildDays: 45, HirelingCapacity: 1, Description: "Safeguards relics and holy artifacts"},
	{Name: "demiplane", Category: CategorySpecial, MinLevel: 17, BuildDays: 60, HirelingCapacity: 1, Description: "An extradimensional annex to the bastion"},
	{Name: "guildhall", Category: CategorySpecial, MinLevel: 17, BuildDays: 60, HirelingCapacity: 1, Description: "Headquarters of a guild sworn to the bastion's owner"},
	{Name: "sanctum", Category: CategorySpecial, MinLevel: 17, BuildDays: 60, HirelingCapacity: 4, Description: "A warded refuge reachable by word of recall"},
	{Name: "war_room", Category: CategorySpecial, MinLevel: 17, BuildDays: 60, DefenderCapacity: 10, HirelingCapacity: 2, Description: "Musters lieutenants and soldiers for campaigns"},
}

// DefaultBlueprintNames returns just the names of default blueprints for
// quick lookup.
func DefaultBlueprintNames() []string {
	names := make([]string, len(DefaultBlueprints))
	for i, b := range DefaultBlueprints {
		names[i] = b.Name
	}
	return names
}

// IsDefaultBlueprint checks if a blueprint name is a built-in default.
func IsDefaultBlueprint(name string) bool {
	for _, b := range DefaultBlueprints {
		if b.Name == name {
			return true
		}
	}
	return false
}
