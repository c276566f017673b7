package handlers

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

// CatalogHandler handles blueprint catalog operations.
type CatalogHandler struct {
	service *services.BlueprintService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.BlueprintService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// HandleList returns all blueprints in the catalog.
func (h *CatalogHandler) HandleList(ctx context.Context) ([]entities.FacilityBlueprint, error) {
	return h.service.List(ctx)
}

// HandleAdd registers a new custom blueprint.
func (h *CatalogHandler) HandleAdd(ctx context.Context, blueprint entities.FacilityBlueprint) error {
	return h.service.Add(ctx, blueprint)
}

// HandleRemove deletes a custom blueprint. Default blueprints cannot be
// removed.
func (h *CatalogHandler) HandleRemove(ctx context.Context, name string) error {
	return h.service.Remove(ctx, name)
}

// HandleDescribe returns details about a specific blueprint.
func (h *CatalogHandler) HandleDescribe(ctx context.Context, name string) (*entities.FacilityBlueprint, error) {
	return h.service.Get(ctx, name)
}
