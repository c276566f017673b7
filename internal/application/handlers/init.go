// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/config"
	embedder "github.com/AzureCamel/Bastion-Manager/internal/infrastructure/embedder/openai"
)

// InitHandler provisions a new world: config file, worlds registry
// entry, qdrant collection and the default blueprint catalog.
type InitHandler struct {
	collectionManager ports.CollectionManager
	blueprints        *services.BlueprintService
}

// NewInitHandler creates a new init handler. collectionManager and
// blueprints may be nil; the corresponding provisioning step is
// skipped.
func NewInitHandler(collectionManager ports.CollectionManager, blueprints *services.BlueprintService) *InitHandler {
	return &InitHandler{
		collectionManager: collectionManager,
		blueprints:        blueprints,
	}
}

// InitResult contains the result of world provisioning.
type InitResult struct {
	ConfigPath     string
	CollectionName string
	DatabasePath   string
	Initialized    bool // true when the config file was created fresh
}

// Handle provisions the named world under basePath.
func (h *InitHandler) Handle(ctx context.Context, basePath, worldName, description string) (*InitResult, error) {
	result := &InitResult{
		ConfigPath:     config.ConfigFilePath(basePath),
		CollectionName: config.GenerateCollectionName(worldName),
		DatabasePath:   config.SQLitePathForWorld(basePath, worldName),
	}

	if !config.Exists(basePath) {
		if err := config.WriteDefault(basePath); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
		result.Initialized = true
	}

	worlds, err := config.LoadWorlds(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading worlds: %w", err)
	}

	if worlds.Exists(worldName) {
		return nil, fmt.Errorf("world %q already exists", worldName)
	}

	// Provision the collection and catalog before touching the
	// registry: a failed step must not leave the world half-registered.
	if h.collectionManager != nil {
		if err := h.collectionManager.EnsureCollection(ctx, embedder.VectorSize); err != nil {
			return nil, fmt.Errorf("creating collection: %w", err)
		}
	}

	if h.blueprints != nil {
		if err := h.blueprints.LoadDefaults(ctx); err != nil {
			return nil, fmt.Errorf("seeding blueprints: %w", err)
		}
	}

	worlds.Add(worldName, config.WorldEntry{
		Collection:  result.CollectionName,
		Description: description,
	})
	if err := worlds.Save(basePath); err != nil {
		return nil, fmt.Errorf("saving worlds: %w", err)
	}

	return result, nil
}
