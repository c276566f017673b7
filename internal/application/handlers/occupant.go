package handlers

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

// OccupantHandler handles defender and hireling assignment.
type OccupantHandler struct {
	occupantService *services.OccupantService
	actorService    *services.ActorService
}

// NewOccupantHandler creates a new OccupantHandler.
func NewOccupantHandler(occupantService *services.OccupantService, actorService *services.ActorService) *OccupantHandler {
	return &OccupantHandler{
		occupantService: occupantService,
		actorService:    actorService,
	}
}

// HandleAssign stations a creature in a facility.
func (h *OccupantHandler) HandleAssign(ctx context.Context, worldID, actorName, facilityName string, kind entities.OccupantKind, creatureRef, name string) (*entities.Occupant, error) {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return nil, err
	}
	return h.occupantService.Assign(ctx, actor.ID, facilityName, kind, creatureRef, name)
}

// HandleDismiss removes an occupant by creature ref or name.
func (h *OccupantHandler) HandleDismiss(ctx context.Context, worldID, actorName, facilityName, refOrName string) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.occupantService.Dismiss(ctx, actor.ID, facilityName, refOrName)
}

// HandleList returns occupants of the named actor, optionally filtered
// by facility and kind.
func (h *OccupantHandler) HandleList(ctx context.Context, worldID, actorName, facilityName string, kind entities.OccupantKind) ([]entities.Occupant, error) {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return nil, err
	}
	return h.occupantService.List(ctx, actor.ID, facilityName, kind)
}
