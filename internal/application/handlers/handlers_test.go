package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/mocks"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

const testWorld = "test-world"

// handlerEnv wires the full service stack over in-memory mocks.
type handlerEnv struct {
	db         *mocks.RelationalDB
	actors     *services.ActorService
	blueprints *services.BlueprintService
	settings   *services.SettingsService
	facilities *services.FacilityService
	occupants  *services.OccupantService
	bastion    *services.BastionService
	chronicle  *services.ChronicleService
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()

	db := mocks.NewRelationalDB()
	blueprints := services.NewBlueprintService(db)
	require.NoError(t, blueprints.LoadDefaults(context.Background()))

	settings := services.NewSettingsService(db)
	table := entities.DefaultAdvancement()

	return &handlerEnv{
		db:         db,
		actors:     services.NewActorService(db, nil),
		blueprints: blueprints,
		settings:   settings,
		facilities: services.NewFacilityService(db, blueprints, settings, table),
		occupants:  services.NewOccupantService(db),
		bastion:    services.NewBastionService(db, settings, table),
		chronicle:  services.NewChronicleService(db, nil, nil),
	}
}

func (e *handlerEnv) addActor(t *testing.T, name string, level int) *entities.Actor {
	t.Helper()
	actor, err := e.actors.Add(context.Background(), testWorld, name, level, "user-"+name)
	require.NoError(t, err)
	return actor
}
