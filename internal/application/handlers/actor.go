package handlers

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

// ActorHandler handles actor roster operations at the application layer.
type ActorHandler struct {
	actorService *services.ActorService
}

// NewActorHandler creates a new ActorHandler.
func NewActorHandler(actorService *services.ActorService) *ActorHandler {
	return &ActorHandler{
		actorService: actorService,
	}
}

// ActorListResult contains the result of listing actors.
type ActorListResult struct {
	Actors []*entities.Actor `json:"actors"`
	Total  int               `json:"total"`
}

// HandleAdd registers a new actor in the world.
func (h *ActorHandler) HandleAdd(ctx context.Context, worldID, name string, level int, ownerUserID string) (*entities.Actor, error) {
	return h.actorService.Add(ctx, worldID, name, level, ownerUserID)
}

// HandleList returns all actors for a world with pagination.
func (h *ActorHandler) HandleList(ctx context.Context, worldID string, limit, offset int) (*ActorListResult, error) {
	actors, err := h.actorService.List(ctx, worldID, limit, offset)
	if err != nil {
		return nil, err
	}

	count, err := h.actorService.Count(ctx, worldID)
	if err != nil {
		return nil, err
	}

	return &ActorListResult{
		Actors: actors,
		Total:  count,
	}, nil
}

// HandleSetLevel updates an actor's level.
func (h *ActorHandler) HandleSetLevel(ctx context.Context, worldID, name string, level int) (*entities.Actor, error) {
	return h.actorService.SetLevel(ctx, worldID, name, level)
}

// HandleRemove deletes an actor and everything attached to it.
func (h *ActorHandler) HandleRemove(ctx context.Context, worldID, name string) error {
	return h.actorService.Remove(ctx, worldID, name)
}
