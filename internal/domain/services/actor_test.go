package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/mocks"
)

func TestActorAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("add actor", func(t *testing.T) {
		svc := NewActorService(mocks.NewRelationalDB(), nil)

		actor, err := svc.Add(ctx, "test-world", "Ezra Whitlock", 5, "user-1")
		require.NoError(t, err)
		assert.NotEmpty(t, actor.ID)
		assert.Equal(t, "Ezra Whitlock", actor.Name)
		assert.Equal(t, "ezra whitlock", actor.NormalizedName)
		assert.Equal(t, 5, actor.Level)
		assert.Equal(t, "user-1", actor.OwnerUserID)
	})

	t.Run("level clamps to range", func(t *testing.T) {
		svc := NewActorService(mocks.NewRelationalDB(), nil)

		low, err := svc.Add(ctx, "test-world", "Low", 0, "")
		require.NoError(t, err)
		assert.Equal(t, 1, low.Level)

		high, err := svc.Add(ctx, "test-world", "High", 99, "")
		require.NoError(t, err)
		assert.Equal(t, MaxActorLevel, high.Level)
	})

	t.Run("missing name", func(t *testing.T) {
		svc := NewActorService(mocks.NewRelationalDB(), nil)
		_, err := svc.Add(ctx, "test-world", "", 1, "")
		assert.Error(t, err)
	})

	t.Run("duplicate name is case-insensitive", func(t *testing.T) {
		svc := NewActorService(mocks.NewRelationalDB(), nil)
		_, err := svc.Add(ctx, "test-world", "Ezra", 5, "")
		require.NoError(t, err)
		_, err = svc.Add(ctx, "test-world", "EZRA", 5, "")
		assert.ErrorIs(t, err, ErrDuplicateActor)
	})
}

func TestActorFind(t *testing.T) {
	ctx := context.Background()
	svc := NewActorService(mocks.NewRelationalDB(), nil)
	_, err := svc.Add(ctx, "test-world", "Ezra", 5, "")
	require.NoError(t, err)

	actor, err := svc.Find(ctx, "test-world", "ezra")
	require.NoError(t, err)
	assert.Equal(t, "Ezra", actor.Name)

	_, err = svc.Find(ctx, "test-world", "Nobody")
	assert.ErrorIs(t, err, ErrActorNotFound)
}

func TestActorSetLevel(t *testing.T) {
	ctx := context.Background()
	svc := NewActorService(mocks.NewRelationalDB(), nil)
	_, err := svc.Add(ctx, "test-world", "Ezra", 5, "")
	require.NoError(t, err)

	actor, err := svc.SetLevel(ctx, "test-world", "Ezra", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, actor.Level)

	_, err = svc.SetLevel(ctx, "test-world", "Ezra", 0)
	assert.Error(t, err)
	_, err = svc.SetLevel(ctx, "test-world", "Ezra", 21)
	assert.Error(t, err)
}

func TestActorRemove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewActorService(env.db, nil)

	actor, err := svc.Add(ctx, "test-world", "Ezra", 5, "")
	require.NoError(t, err)
	_, err = env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{Free: true})
	require.NoError(t, err)
	_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantDefender, "", "Guard")
	require.NoError(t, err)
	require.NoError(t, env.settings.SetEnabled(ctx, actor.ID, false))

	require.NoError(t, svc.Remove(ctx, "test-world", "Ezra"))

	count, err := svc.Count(ctx, "test-world")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, env.db.Facilities)
	assert.Empty(t, env.db.Occupants)

	// Settings for the actor are gone too: a future actor with the
	// same ID would start enabled.
	enabled, err := env.settings.Enabled(ctx, actor.ID)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestActorRemove_PurgesSemanticIndex(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	vectorDB := mocks.NewVectorDB()
	chronicle := NewChronicleService(db, mocks.NewEmbedder([]float32{0.1, 0.2}), vectorDB)
	svc := NewActorService(db, vectorDB)

	actor, err := svc.Add(ctx, "test-world", "Ezra", 5, "")
	require.NoError(t, err)
	other, err := svc.Add(ctx, "test-world", "Mira", 5, "")
	require.NoError(t, err)

	_, err = chronicle.Record(ctx, actor.ID, entities.ChronicleNote, "Hired a gardener.")
	require.NoError(t, err)
	_, err = chronicle.Record(ctx, other.ID, entities.ChronicleNote, "Repaired the wall.")
	require.NoError(t, err)
	require.Len(t, vectorDB.Entries, 2)

	require.NoError(t, svc.Remove(ctx, "test-world", "Ezra"))

	// Search rebuilds results from the index alone, so the removed
	// actor's entries must be gone from it.
	require.Len(t, vectorDB.Entries, 1)
	assert.Equal(t, other.ID, vectorDB.Entries[0].ActorID)
}

func TestActorList(t *testing.T) {
	ctx := context.Background()
	svc := NewActorService(mocks.NewRelationalDB(), nil)
	for _, name := range []string{"Mira", "Ezra", "Jorn"} {
		_, err := svc.Add(ctx, "test-world", name, 3, "")
		require.NoError(t, err)
	}

	actors, err := svc.List(ctx, "test-world", 0, 0)
	require.NoError(t, err)
	require.Len(t, actors, 3)
	assert.Equal(t, "Ezra", actors[0].Name, "sorted by name")

	actors, err = svc.List(ctx, "test-world", 2, 1)
	require.NoError(t, err)
	require.Len(t, actors, 2)
	assert.Equal(t, "Jorn", actors[0].Name)
}
