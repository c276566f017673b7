package handlers

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

// FacilityHandler handles facility construction, orders and progress.
// Actors are addressed by name; resolution to IDs happens here.
type FacilityHandler struct {
	facilityService *services.FacilityService
	actorService    *services.ActorService
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(facilityService *services.FacilityService, actorService *services.ActorService) *FacilityHandler {
	return &FacilityHandler{
		facilityService: facilityService,
		actorService:    actorService,
	}
}

// HandleAdd attaches a new facility to the named actor.
func (h *FacilityHandler) HandleAdd(ctx context.Context, worldID, actorName, blueprintName string, opts services.AddOptions) (*entities.Facility, error) {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return nil, err
	}
	return h.facilityService.Add(ctx, actor.ID, blueprintName, opts)
}

// HandleRemove deletes a facility and its occupants.
func (h *FacilityHandler) HandleRemove(ctx context.Context, worldID, actorName, facilityName string) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.facilityService.Remove(ctx, actor.ID, facilityName)
}

// HandleList returns all facilities of the named actor.
func (h *FacilityHandler) HandleList(ctx context.Context, worldID, actorName string) ([]entities.Facility, error) {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return nil, err
	}
	return h.facilityService.List(ctx, actor.ID)
}

// HandleRename changes a facility's display name.
func (h *FacilityHandler) HandleRename(ctx context.Context, worldID, actorName, facilityName, newName string) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.facilityService.Rename(ctx, actor.ID, facilityName, newName)
}

// HandleResize changes a facility's physical footprint.
func (h *FacilityHandler) HandleResize(ctx context.Context, worldID, actorName, facilityName string, size entities.FacilitySize) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.facilityService.Resize(ctx, actor.ID, facilityName, size)
}

// HandleSetOrder issues an order to a facility.
func (h *FacilityHandler) HandleSetOrder(ctx context.Context, worldID, actorName, facilityName string, order entities.OrderType, days int) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.facilityService.SetOrder(ctx, actor.ID, facilityName, order, days)
}

// HandleProgress advances construction and orders by the given number
// of days and returns what completed.
func (h *FacilityHandler) HandleProgress(ctx context.Context, worldID, actorName string, days int) ([]services.Completion, error) {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return nil, err
	}
	return h.facilityService.Progress(ctx, actor.ID, days)
}
