package entities

import "time"

// ChronicleKind represents the category of a chronicle entry.
type ChronicleKind string

const (
	ChronicleNote  ChronicleKind = "note"
	ChronicleEvent ChronicleKind = "event"
	ChronicleOrder ChronicleKind = "order"
)

// ValidChronicleKind reports whether s names a known chronicle kind.
func ValidChronicleKind(s string) bool {
	switch ChronicleKind(s) {
	case ChronicleNote, ChronicleEvent, ChronicleOrder:
		return true
	}
	return false
}

// ChronicleEntry is a piece of descriptive text attached to a bastion:
// free-form notes, rolled events and completed orders. Entries are
// embedded and indexed for semantic search.
type ChronicleEntry struct {
	ID        string        `json:"id"`
	ActorID   string        `json:"actor_id"`
	Kind      ChronicleKind `json:"kind"`
	Text      string        `json:"text"`
	Embedding []float32     `json:"embedding,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
