package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/mocks"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

func TestChronicleHandler_HandleAdd_And_List(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewChronicleHandler(env.chronicle, nil, env.actors)
	env.addActor(t, "Ezra", 5)

	entry, err := handler.HandleAdd(context.Background(), testWorld, "Ezra", entities.ChronicleNote, "The walls are raised")
	require.NoError(t, err)
	assert.Equal(t, entities.ChronicleNote, entry.Kind)

	_, err = handler.HandleAdd(context.Background(), testWorld, "Ezra", entities.ChronicleNote, "First defenders arrive")
	require.NoError(t, err)

	entries, err := handler.HandleList(context.Background(), testWorld, "Ezra", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "First defenders arrive", entries[0].Text)
}

func TestChronicleHandler_HandleSearch_Unavailable(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewChronicleHandler(env.chronicle, nil, env.actors)

	_, err := handler.HandleSearch(context.Background(), "walls", "", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrSearchUnavailable)
}

func TestChronicleHandler_HandleSearch(t *testing.T) {
	env := newHandlerEnv(t)
	env.addActor(t, "Ezra", 5)

	emb := mocks.NewEmbedder([]float32{0.1, 0.2})
	vec := &mocks.VectorDB{}
	chronicle := services.NewChronicleService(env.db, emb, vec)
	handler := NewChronicleHandler(chronicle, nil, env.actors)

	_, err := handler.HandleAdd(context.Background(), testWorld, "Ezra", entities.ChronicleNote, "The walls are raised")
	require.NoError(t, err)

	result, err := handler.HandleSearch(context.Background(), "walls", "", 10)
	require.NoError(t, err)
	assert.Equal(t, "walls", result.Query)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "The walls are raised", result.Entries[0].Text)
}

func TestChronicleHandler_HandleEvent(t *testing.T) {
	env := newHandlerEnv(t)
	env.addActor(t, "Ezra", 5)

	events := services.NewEventService(nil, nil, env.chronicle, 42)
	handler := NewChronicleHandler(env.chronicle, events, env.actors)

	result, err := handler.HandleEvent(context.Background(), testWorld, "Ezra", false)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Event.Name)
	require.NotNil(t, result.Entry)
	assert.True(t, strings.HasPrefix(result.Entry.Text, "["+result.Event.Name+"]"))
}

func TestChronicleHandler_HandleEvent_NotConfigured(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewChronicleHandler(env.chronicle, nil, env.actors)
	env.addActor(t, "Ezra", 5)

	_, err := handler.HandleEvent(context.Background(), testWorld, "Ezra", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
