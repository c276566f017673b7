package handlers

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

// SettingsHandler handles the per-actor settings mappings: display
// overrides, slot overrides, visibility rules and enabled flags.
type SettingsHandler struct {
	settingsService *services.SettingsService
	actorService    *services.ActorService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService *services.SettingsService, actorService *services.ActorService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		actorService:    actorService,
	}
}

// ActorSettings bundles every settings scope for one actor.
type ActorSettings struct {
	Display    entities.DisplaySettings `json:"display"`
	Override   entities.SlotOverride    `json:"override"`
	Visibility entities.VisibilityRule  `json:"visibility"`
	Enabled    bool                     `json:"enabled"`
}

// HandleShow returns all settings for the named actor.
func (h *SettingsHandler) HandleShow(ctx context.Context, worldID, actorName string) (*ActorSettings, error) {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return nil, err
	}

	display, err := h.settingsService.Display(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	override, err := h.settingsService.SlotOverride(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	visibility, err := h.settingsService.Visibility(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	enabled, err := h.settingsService.Enabled(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return &ActorSettings{
		Display:    display,
		Override:   override,
		Visibility: visibility,
		Enabled:    enabled,
	}, nil
}

// HandleSetDisplay stores display overrides for the named actor.
func (h *SettingsHandler) HandleSetDisplay(ctx context.Context, worldID, actorName string, d entities.DisplaySettings) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.settingsService.SetDisplay(ctx, actor.ID, d)
}

// HandleClearDisplay removes display overrides for the named actor.
func (h *SettingsHandler) HandleClearDisplay(ctx context.Context, worldID, actorName string) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.settingsService.ClearDisplay(ctx, actor.ID)
}

// HandleSetOverride stores a GM slot override.
func (h *SettingsHandler) HandleSetOverride(ctx context.Context, worldID, actorName string, o entities.SlotOverride, gm bool) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.settingsService.SetSlotOverride(ctx, actor.ID, o, gm)
}

// HandleClearOverride removes a GM slot override.
func (h *SettingsHandler) HandleClearOverride(ctx context.Context, worldID, actorName string, gm bool) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.settingsService.ClearSlotOverride(ctx, actor.ID, gm)
}

// HandleSetPublic toggles the public visibility flag.
func (h *SettingsHandler) HandleSetPublic(ctx context.Context, worldID, actorName string, public bool) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}

	rule, err := h.settingsService.Visibility(ctx, actor.ID)
	if err != nil {
		return err
	}
	rule.Public = public

	return h.settingsService.SetVisibility(ctx, actor.ID, rule)
}

// HandleShare grants a user view access to the named actor's bastion.
func (h *SettingsHandler) HandleShare(ctx context.Context, worldID, actorName, userID string) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.settingsService.Share(ctx, actor.ID, userID)
}

// HandleUnshare revokes a user's view access.
func (h *SettingsHandler) HandleUnshare(ctx context.Context, worldID, actorName, userID string) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.settingsService.Unshare(ctx, actor.ID, userID)
}

// HandleSetEnabled toggles whether the bastion shows on the overview.
func (h *SettingsHandler) HandleSetEnabled(ctx context.Context, worldID, actorName string, enabled bool) error {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return err
	}
	return h.settingsService.SetEnabled(ctx, actor.ID, enabled)
}
