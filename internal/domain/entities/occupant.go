package entities

import "time"

// OccupantKind distinguishes the two occupancy pools of a facility.
type OccupantKind string

const (
	OccupantDefender OccupantKind = "defender"
	OccupantHireling OccupantKind = "hireling"
)

// ValidOccupantKind reports whether s names a known occupant kind.
func ValidOccupantKind(s string) bool {
	return OccupantKind(s) == OccupantDefender || OccupantKind(s) == OccupantHireling
}

// Occupant represents a creature stationed in a facility. CreatureRef
// points at an external creature record; a ref that no longer resolves
// renders as an empty slot rather than an error.
type Occupant struct {
	ID          string       `json:"id"`
	FacilityID  string       `json:"facility_id"`
	Kind        OccupantKind `json:"kind"`
	CreatureRef string       `json:"creature_ref"`
	Name        string       `json:"name"`
	CreatedAt   time.Time    `json:"created_at"`
}
