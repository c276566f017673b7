package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/mocks"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/config"
)

func TestInitHandler_Handle(t *testing.T) {
	dir := t.TempDir()
	db := mocks.NewRelationalDB()
	cm := &mocks.CollectionManager{}
	handler := NewInitHandler(cm, services.NewBlueprintService(db))

	result, err := handler.Handle(context.Background(), dir, "Middle Earth", "the third age")
	require.NoError(t, err)

	assert.True(t, result.Initialized)
	assert.Equal(t, "bastion_middle_earth", result.CollectionName)
	assert.True(t, config.Exists(dir))
	assert.True(t, cm.Ensured)

	worlds, err := config.LoadWorlds(dir)
	require.NoError(t, err)
	entry, err := worlds.Get("Middle Earth")
	require.NoError(t, err)
	assert.Equal(t, "bastion_middle_earth", entry.Collection)
	assert.Equal(t, "the third age", entry.Description)

	// Default catalog was seeded
	assert.Len(t, db.Blueprints, len(entities.DefaultBlueprints))
}

func TestInitHandler_Handle_CollectionFailureLeavesNoEntry(t *testing.T) {
	dir := t.TempDir()
	db := mocks.NewRelationalDB()
	cm := &mocks.CollectionManager{Err: errors.New("connection refused")}
	handler := NewInitHandler(cm, services.NewBlueprintService(db))

	_, err := handler.Handle(context.Background(), dir, "ravenloft", "")
	require.Error(t, err)

	// Provisioning failed, so the world must not be registered.
	worlds, err := config.LoadWorlds(dir)
	require.NoError(t, err)
	assert.False(t, worlds.Exists("ravenloft"))

	// A retry with a working collection manager succeeds.
	cm.Err = nil
	result, err := handler.Handle(context.Background(), dir, "ravenloft", "")
	require.NoError(t, err)
	assert.True(t, cm.Ensured)
	assert.Equal(t, "bastion_ravenloft", result.CollectionName)

	worlds, err = config.LoadWorlds(dir)
	require.NoError(t, err)
	assert.True(t, worlds.Exists("ravenloft"))
}

func TestInitHandler_Handle_DuplicateWorld(t *testing.T) {
	dir := t.TempDir()
	handler := NewInitHandler(nil, nil)

	_, err := handler.Handle(context.Background(), dir, "asgard", "")
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), dir, "asgard", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitHandler_Handle_SecondWorldKeepsConfig(t *testing.T) {
	dir := t.TempDir()
	handler := NewInitHandler(nil, nil)

	first, err := handler.Handle(context.Background(), dir, "asgard", "")
	require.NoError(t, err)
	assert.True(t, first.Initialized)

	second, err := handler.Handle(context.Background(), dir, "midgard", "")
	require.NoError(t, err)
	assert.False(t, second.Initialized)

	worlds, err := config.LoadWorlds(dir)
	require.NoError(t, err)
	assert.True(t, worlds.Exists("asgard"))
	assert.True(t, worlds.Exists("midgard"))
}
