// Package entities contains core domain data structures.
package entities

import (
	"strings"
	"time"
)

// Actor represents a player character that owns a bastion. The actor's
// level drives how many facility slots are unlocked.
type Actor struct {
	ID             string    `json:"id"`
	WorldID        string    `json:"world_id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"` // Lowercase for matching
	Level          int       `json:"level"`
	OwnerUserID    string    `json:"owner_user_id"`
	Image          string    `json:"image,omitempty"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
