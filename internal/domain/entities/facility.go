package entities

import "time"

// FacilityCategory represents the slot pool a facility draws from.
type FacilityCategory string

const (
	CategoryBasic   FacilityCategory = "basic"
	CategorySpecial FacilityCategory = "special"
)

// ValidCategory reports whether s names a known facility category.
func ValidCategory(s string) bool {
	return FacilityCategory(s) == CategoryBasic || FacilityCategory(s) == CategorySpecial
}

// FacilitySize represents the physical footprint of a facility.
type FacilitySize string

const (
	SizeCramped FacilitySize = "cramped"
	SizeRoomy   FacilitySize = "roomy"
	SizeVast    FacilitySize = "vast"
)

// ValidFacilitySize reports whether s names a known facility size.
func ValidFacilitySize(s string) bool {
	switch FacilitySize(s) {
	case SizeCramped, SizeRoomy, SizeVast:
		return true
	}
	return false
}

// OrderType represents the order a facility is currently executing.
type OrderType string

const (
	OrderNone     OrderType = ""
	OrderBuild    OrderType = "build"
	OrderCraft    OrderType = "craft"
	OrderEmpower  OrderType = "empower"
	OrderHarvest  OrderType = "harvest"
	OrderMaintain OrderType = "maintain"
	OrderRecruit  OrderType = "recruit"
	OrderResearch OrderType = "research"
	OrderTrade    OrderType = "trade"
	OrderRepair   OrderType = "repair"
)

// Facility represents a building inside an actor's bastion.
//
// A facility is created by attaching a blueprint to an actor, destroyed
// by explicit deletion, and mutated by order and progress updates. A
// facility marked Free does not consume a special slot.
type Facility struct {
	ID                string           `json:"id"`
	ActorID           string           `json:"actor_id"`
	Blueprint         string           `json:"blueprint"`
	Name              string           `json:"name"`
	Category          FacilityCategory `json:"category"`
	Size              FacilitySize     `json:"size"`
	Free              bool             `json:"free"`
	UnderConstruction bool             `json:"under_construction"`
	BuildDaysLeft     int              `json:"build_days_left,omitempty"`
	Order             OrderType        `json:"order,omitempty"`
	OrderDaysLeft     int              `json:"order_days_left,omitempty"`
	DefenderCapacity  int              `json:"defender_capacity"`
	HirelingCapacity  int              `json:"hireling_capacity"`
	CreatedAt         time.Time        `json:"created_at"`
}

// Busy reports whether the facility is under construction or mid-order
// and therefore cannot accept a new order.
func (f *Facility) Busy() bool {
	return f.UnderConstruction || (f.Order != OrderNone && f.OrderDaysLeft > 0)
}
