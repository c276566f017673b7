package ports

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

// VectorDB defines the interface for vector database operations over
// chronicle entries.
type VectorDB interface {
	// Save stores a chronicle entry with its embedding.
	Save(ctx context.Context, entry entities.ChronicleEntry) error

	// SaveBatch stores multiple chronicle entries.
	SaveBatch(ctx context.Context, entries []entities.ChronicleEntry) error

	// Search performs a semantic search and returns similar entries.
	Search(ctx context.Context, embedding []float32, limit int) ([]entities.ChronicleEntry, error)

	// SearchByKind performs a semantic search filtered by entry kind.
	SearchByKind(ctx context.Context, embedding []float32, kind entities.ChronicleKind, limit int) ([]entities.ChronicleEntry, error)

	// DeleteByActor removes all chronicle entries for an actor.
	DeleteByActor(ctx context.Context, actorID string) error
}
