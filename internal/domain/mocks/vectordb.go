package mocks

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

// VectorDB is an in-memory mock implementation of ports.VectorDB.
// Search returns stored entries in insertion order, ignoring distance.
type VectorDB struct {
	Entries []entities.ChronicleEntry
	Err     error
}

// NewVectorDB creates a new mock VectorDB.
func NewVectorDB() *VectorDB {
	return &VectorDB{}
}

// Save stores a chronicle entry with its embedding.
func (m *VectorDB) Save(_ context.Context, entry entities.ChronicleEntry) error {
	if m.Err != nil {
		return m.Err
	}
	for i, e := range m.Entries {
		if e.ID == entry.ID {
			m.Entries[i] = entry
			return nil
		}
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// SaveBatch stores multiple chronicle entries.
func (m *VectorDB) SaveBatch(ctx context.Context, entries []entities.ChronicleEntry) error {
	for _, entry := range entries {
		if err := m.Save(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// Search performs a semantic search and returns similar entries.
func (m *VectorDB) Search(_ context.Context, _ []float32, limit int) ([]entities.ChronicleEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Entries) {
		return m.Entries[:limit], nil
	}
	return m.Entries, nil
}

// SearchByKind performs a semantic search filtered by entry kind.
func (m *VectorDB) SearchByKind(_ context.Context, _ []float32, kind entities.ChronicleKind, limit int) ([]entities.ChronicleEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.ChronicleEntry
	for _, e := range m.Entries {
		if e.Kind == kind {
			result = append(result, e)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// DeleteByActor removes all chronicle entries for an actor.
func (m *VectorDB) DeleteByActor(_ context.Context, actorID string) error {
	if m.Err != nil {
		return m.Err
	}
	entries := m.Entries[:0]
	for _, e := range m.Entries {
		if e.ActorID != actorID {
			entries = append(entries, e)
		}
	}
	m.Entries = entries
	return nil
}
