package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AzureCamel/Bastion-Manager/internal/application/handlers"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/config"
	embedder "github.com/AzureCamel/Bastion-Manager/internal/infrastructure/embedder/openai"
	llm "github.com/AzureCamel/Bastion-Manager/internal/infrastructure/llm/openai"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/relationaldb/sqlite"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config     *config.Config
	Worlds     *config.WorldsConfig
	Bastion    *handlers.BastionHandler
	Actors     *handlers.ActorHandler
	Facilities *handlers.FacilityHandler
	Occupants  *handlers.OccupantHandler
	Catalog    *handlers.CatalogHandler
	Settings   *handlers.SettingsHandler
	Chronicle  *handlers.ChronicleHandler
	Import     *handlers.ImportHandler
	Export     *handlers.ExportHandler
}

// internalDeps holds all dependencies including low-level components.
// Used internally by helper functions.
type internalDeps struct {
	Deps
	relationalDB     *sqlite.Repository
	vectorDB         ports.VectorDB
	actorService     *services.ActorService
	blueprintService *services.BlueprintService
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
//
// The sqlite stack is mandatory. The vector stack (embedder + qdrant)
// and the narrator are built only when their API keys are configured;
// chronicle search and event narration return advisory errors without
// them.
func withInternalDeps(fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	worlds, err := config.LoadWorlds(cwd)
	if err != nil {
		return fmt.Errorf("loading worlds: %w", err)
	}

	if globalWorld == "" {
		return errors.New("world is required (use --world flag)")
	}

	collection, err := worlds.GetCollection(globalWorld)
	if err != nil {
		return err
	}

	sqlitePath := config.SQLitePathForWorld(cwd, globalWorld)
	relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{Path: sqlitePath})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	ctx := context.Background()
	if err := relationalDB.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	blueprintService := services.NewBlueprintService(relationalDB)
	if err := blueprintService.LoadDefaults(ctx); err != nil {
		return fmt.Errorf("seeding blueprints: %w", err)
	}

	// Vector stack is optional: without an embedder key, chronicle
	// entries are stored unindexed and search is unavailable.
	var emb ports.Embedder
	var vectorDB ports.VectorDB
	if cfg.Embedder.APIKey != "" {
		e, err := embedder.NewEmbedder(cfg.Embedder)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		qdrantCfg := cfg.Qdrant
		qdrantCfg.Collection = collection
		repo, err := qdrant.NewRepository(qdrantCfg)
		if err != nil {
			return fmt.Errorf("creating qdrant repository: %w", err)
		}
		defer repo.Close()

		emb = e
		vectorDB = repo
	}

	var narrator ports.Narrator
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewClient(cfg.LLM)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}
		narrator = client
	}

	table := cfg.Advancement.Table()

	actorService := services.NewActorService(relationalDB, vectorDB)
	settingsService := services.NewSettingsService(relationalDB)
	facilityService := services.NewFacilityService(relationalDB, blueprintService, settingsService, table)
	occupantService := services.NewOccupantService(relationalDB)
	bastionService := services.NewBastionService(relationalDB, settingsService, table)
	chronicleService := services.NewChronicleService(relationalDB, emb, vectorDB)
	eventService := services.NewEventService(nil, narrator, chronicleService, time.Now().UnixNano())
	importService := services.NewImportService(relationalDB)

	deps := &internalDeps{
		Deps: Deps{
			Config:     cfg,
			Worlds:     worlds,
			Bastion:    handlers.NewBastionHandler(bastionService, actorService),
			Actors:     handlers.NewActorHandler(actorService),
			Facilities: handlers.NewFacilityHandler(facilityService, actorService),
			Occupants:  handlers.NewOccupantHandler(occupantService, actorService),
			Catalog:    handlers.NewCatalogHandler(blueprintService),
			Settings:   handlers.NewSettingsHandler(settingsService, actorService),
			Chronicle:  handlers.NewChronicleHandler(chronicleService, eventService, actorService),
			Import:     handlers.NewImportHandler(importService),
			Export:     handlers.NewExportHandler(actorService),
		},
		relationalDB:     relationalDB,
		vectorDB:         vectorDB,
		actorService:     actorService,
		blueprintService: blueprintService,
	}

	return fn(deps)
}
