package handlers

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

// BastionHandler handles the overview grid and detail view surfaces.
type BastionHandler struct {
	bastionService *services.BastionService
	actorService   *services.ActorService
}

// NewBastionHandler creates a new BastionHandler.
func NewBastionHandler(bastionService *services.BastionService, actorService *services.ActorService) *BastionHandler {
	return &BastionHandler{
		bastionService: bastionService,
		actorService:   actorService,
	}
}

// OverviewResult contains the result of the overview query.
type OverviewResult struct {
	Rows  []services.OverviewRow `json:"rows"`
	Total int                    `json:"total"`
}

// HandleOverview returns the overview grid for the viewer: one row per
// visible, enabled bastion.
func (h *BastionHandler) HandleOverview(ctx context.Context, worldID string, viewer services.Viewer) (*OverviewResult, error) {
	rows, err := h.bastionService.Overview(ctx, worldID, viewer)
	if err != nil {
		return nil, err
	}

	return &OverviewResult{
		Rows:  rows,
		Total: len(rows),
	}, nil
}

// HandleDetail returns the detail view for one actor's bastion.
func (h *BastionHandler) HandleDetail(ctx context.Context, worldID, actorName string, viewer services.Viewer) (*services.Detail, error) {
	return h.bastionService.Detail(ctx, worldID, actorName, viewer)
}

// HandleDescribe updates the free-form description of an actor's
// bastion.
func (h *BastionHandler) HandleDescribe(ctx context.Context, worldID, actorName, description string) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.bastionService.SetDescription(ctx, actor.ID, description)
}
