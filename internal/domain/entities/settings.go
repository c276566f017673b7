package entities

// SettingsScope names one of the four independent per-world,
// actor-keyed settings mappings.
type SettingsScope string

const (
	ScopeDisplay    SettingsScope = "display"
	ScopeSlots      SettingsScope = "slots"
	ScopeVisibility SettingsScope = "visibility"
	ScopeEnabled    SettingsScope = "enabled"
)

// DisplaySettings overrides how a bastion is presented on the overview
// grid. Zero values fall back to the actor's own name and image.
type DisplaySettings struct {
	Name    string `json:"name,omitempty"`
	Image   string `json:"image,omitempty"`
	Color   string `json:"color,omitempty"`
	Fade    bool   `json:"fade,omitempty"`
	Outline bool   `json:"outline,omitempty"`
}

// SlotOverride is a GM-granted addition to each category's slot count,
// on top of the advancement schedule.
type SlotOverride struct {
	Basic   int `json:"basic"`
	Special int `json:"special"`
}

// ForCategory returns the override value for the given category.
func (o SlotOverride) ForCategory(category FacilityCategory) int {
	switch category {
	case CategoryBasic:
		return o.Basic
	case CategorySpecial:
		return o.Special
	}
	return 0
}

// VisibilityRule controls which users may view a bastion beyond its
// owner and the GM.
type VisibilityRule struct {
	Public bool     `json:"public"`
	Users  []string `json:"users,omitempty"`
}

// Allows reports whether the rule explicitly grants view access to the
// given user.
func (r VisibilityRule) Allows(userID string) bool {
	if r.Public {
		return true
	}
	for _, u := range r.Users {
		if u == userID {
			return true
		}
	}
	return false
}
