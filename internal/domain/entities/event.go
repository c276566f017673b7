package entities

// BastionEvent is an entry in the random event table rolled when a
// bastion executes a maintain order.
type BastionEvent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Weight      int    `json:"weight"`
}

// DefaultEventTable is the standard bastion event table. Weights are
// out of 100; "all is well" dominates.
var DefaultEventTable = []BastionEvent{
	{Name: "all_is_well", Description: "Nothing of note happens; the bastion hums along", Weight: 50},
	{Name: "attack", Description: "Hostile forces assault the bastion and its defenders", Weight: 8},
	{Name: "criminal_hireling", Description: "A hireling is revealed to be a wanted criminal", Weight: 4},
	{Name: "extraordinary_opportunity", Description: "A costly but lucrative venture presents itself", Weight: 4},
	{Name: "friendly_visitors", Description: "Travelers request hospitality and pay for their stay", Weight: 8},
	{Name: "guest", Description: "A notable guest arrives and leaves a token of gratitude", Weight: 8},
	{Name: "lost_hirelings", Description: "Hirelings depart or vanish; a facility sits idle", Weight: 4},
	{Name: "magical_discovery", Description: "A hireling uncovers a minor magic item in the bastion", Weight: 4},
	{Name: "refugees", Description: "Displaced folk seek shelter within the walls", Weight: 4},
	{Name: "request_for_aid", Description: "A neighboring power asks to borrow the bastion's defenders", Weight: 4},
	{Name: "treasure", Description: "A trove is unearthed during routine upkeep", Weight: 2},
}
