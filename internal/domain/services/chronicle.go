package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
)

// DefaultSearchLimit is the default number of search results to return.
const DefaultSearchLimit = 10

// ErrSearchUnavailable is returned when semantic search is requested
// without an embedder and vector index configured.
var ErrSearchUnavailable = errors.New("semantic search requires an embedder and vector index")

// ChronicleService records and searches bastion chronicle entries.
// Entries always land in the relational store; they are additionally
// embedded and indexed when an embedder and vector index are wired.
type ChronicleService struct {
	relationalDB ports.RelationalDB
	embedder     ports.Embedder
	vectorDB     ports.VectorDB
}

// NewChronicleService creates a new ChronicleService. embedder and
// vectorDB may be nil; recording then skips the semantic index.
func NewChronicleService(relationalDB ports.RelationalDB, embedder ports.Embedder, vectorDB ports.VectorDB) *ChronicleService {
	return &ChronicleService{
		relationalDB: relationalDB,
		embedder:     embedder,
		vectorDB:     vectorDB,
	}
}

// Record stores a chronicle entry for an actor.
func (s *ChronicleService) Record(ctx context.Context, actorID string, kind entities.ChronicleKind, text string) (*entities.ChronicleEntry, error) {
	actor, err := s.relationalDB.FindActorByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("finding actor: %w", err)
	}
	if actor == nil {
		return nil, ErrActorNotFound
	}

	entry := &entities.ChronicleEntry{
		ID:      uuid.New().String(),
		ActorID: actorID,
		Kind:    kind,
		Text:    text,
	}

	if s.embedder != nil && s.vectorDB != nil {
		embedding, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding chronicle entry: %w", err)
		}
		entry.Embedding = embedding
	}

	if err := s.relationalDB.SaveChronicleEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving chronicle entry: %w", err)
	}

	if entry.Embedding != nil {
		if err := s.vectorDB.Save(ctx, *entry); err != nil {
			return nil, fmt.Errorf("indexing chronicle entry: %w", err)
		}
	}

	return entry, nil
}

// List returns an actor's chronicle entries, newest first.
func (s *ChronicleService) List(ctx context.Context, actorID string, limit int) ([]entities.ChronicleEntry, error) {
	return s.relationalDB.ListChronicle(ctx, actorID, limit)
}

// Search finds chronicle entries semantically similar to the query,
// optionally filtered by kind.
func (s *ChronicleService) Search(ctx context.Context, query string, kind entities.ChronicleKind, limit int) ([]entities.ChronicleEntry, error) {
	if s.embedder == nil || s.vectorDB == nil {
		return nil, ErrSearchUnavailable
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	if kind != "" {
		entries, err := s.vectorDB.SearchByKind(ctx, embedding, kind, limit)
		if err != nil {
			return nil, fmt.Errorf("searching chronicle by kind: %w", err)
		}
		return entries, nil
	}

	entries, err := s.vectorDB.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching chronicle: %w", err)
	}
	return entries, nil
}
