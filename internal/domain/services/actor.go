package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
)

// MaxActorLevel caps character levels.
const MaxActorLevel = 20

// ErrDuplicateActor is returned when an actor name is already taken in
// the world.
var ErrDuplicateActor = errors.New("an actor with this name already exists")

// ActorService manages the actor roster of a world.
type ActorService struct {
	relationalDB ports.RelationalDB
	vectorDB     ports.VectorDB
}

// NewActorService creates a new ActorService. vectorDB may be nil;
// removal then skips the semantic index.
func NewActorService(relationalDB ports.RelationalDB, vectorDB ports.VectorDB) *ActorService {
	return &ActorService{
		relationalDB: relationalDB,
		vectorDB:     vectorDB,
	}
}

// Add registers a new actor in the world.
func (s *ActorService) Add(ctx context.Context, worldID, name string, level int, ownerUserID string) (*entities.Actor, error) {
	if name == "" {
		return nil, errors.New("actor name is required")
	}
	if level < 1 {
		level = 1
	}
	if level > MaxActorLevel {
		level = MaxActorLevel
	}

	existing, err := s.relationalDB.FindActorByName(ctx, worldID, name)
	if err != nil {
		return nil, fmt.Errorf("checking actor name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateActor, name)
	}

	actor := &entities.Actor{
		ID:             uuid.New().String(),
		WorldID:        worldID,
		Name:           name,
		NormalizedName: entities.NormalizeName(name),
		Level:          level,
		OwnerUserID:    ownerUserID,
	}
	if err := s.relationalDB.SaveActor(ctx, actor); err != nil {
		return nil, fmt.Errorf("saving actor: %w", err)
	}

	if err := s.relationalDB.LogAction(ctx, "actor.add", actor.ID, map[string]any{
		"name":  name,
		"level": level,
	}); err != nil {
		return nil, fmt.Errorf("logging action: %w", err)
	}

	return actor, nil
}

// Find resolves an actor by name within a world.
func (s *ActorService) Find(ctx context.Context, worldID, name string) (*entities.Actor, error) {
	actor, err := s.relationalDB.FindActorByName(ctx, worldID, name)
	if err != nil {
		return nil, fmt.Errorf("finding actor: %w", err)
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: %s", ErrActorNotFound, name)
	}
	return actor, nil
}

// List returns all actors for a world with pagination.
func (s *ActorService) List(ctx context.Context, worldID string, limit, offset int) ([]*entities.Actor, error) {
	return s.relationalDB.ListActors(ctx, worldID, limit, offset)
}

// SetLevel updates an actor's level. Slot availability follows the
// advancement schedule automatically.
func (s *ActorService) SetLevel(ctx context.Context, worldID, name string, level int) (*entities.Actor, error) {
	actor, err := s.Find(ctx, worldID, name)
	if err != nil {
		return nil, err
	}
	if level < 1 || level > MaxActorLevel {
		return nil, fmt.Errorf("level must be between 1 and %d", MaxActorLevel)
	}

	actor.Level = level
	if err := s.relationalDB.SaveActor(ctx, actor); err != nil {
		return nil, fmt.Errorf("saving actor: %w", err)
	}

	if err := s.relationalDB.LogAction(ctx, "actor.level", actor.ID, map[string]any{
		"level": level,
	}); err != nil {
		return nil, fmt.Errorf("logging action: %w", err)
	}

	return actor, nil
}

// Remove deletes an actor and everything hanging off it.
func (s *ActorService) Remove(ctx context.Context, worldID, name string) error {
	actor, err := s.Find(ctx, worldID, name)
	if err != nil {
		return err
	}

	if err := s.relationalDB.DeleteActor(ctx, actor.ID); err != nil {
		return fmt.Errorf("deleting actor: %w", err)
	}

	// The semantic index rebuilds search results from its own payloads,
	// so the actor's chronicle points must be purged here too.
	if s.vectorDB != nil {
		if err := s.vectorDB.DeleteByActor(ctx, actor.ID); err != nil {
			return fmt.Errorf("deleting indexed chronicle entries: %w", err)
		}
	}

	return s.relationalDB.LogAction(ctx, "actor.remove", actor.ID, map[string]any{
		"name": actor.Name,
	})
}

// Count returns the number of actors in a world.
func (s *ActorService) Count(ctx context.Context, worldID string) (int, error) {
	return s.relationalDB.CountActors(ctx, worldID)
}
