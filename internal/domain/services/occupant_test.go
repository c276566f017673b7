package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

func TestOccupantAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("assign defender", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		_, err := env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{Free: true})
		require.NoError(t, err)

		occupant, err := env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantDefender, "guard-1", "Tobias")
		require.NoError(t, err)
		assert.Equal(t, "guard-1", occupant.CreatureRef)
		assert.Equal(t, entities.OccupantDefender, occupant.Kind)
	})

	t.Run("blank creature ref gets generated", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		_, err := env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{Free: true})
		require.NoError(t, err)

		occupant, err := env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantHireling, "", "Mira")
		require.NoError(t, err)
		assert.NotEmpty(t, occupant.CreatureRef)
	})

	t.Run("capacity enforced per kind", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		// barrack: 12 defenders, 1 hireling
		_, err := env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{Free: true})
		require.NoError(t, err)

		_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantHireling, "", "Mira")
		require.NoError(t, err)
		_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantHireling, "", "Jorn")
		assert.ErrorIs(t, err, ErrOccupancyFull)

		// Defender pool is independent of the full hireling pool.
		_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantDefender, "", "Guard")
		require.NoError(t, err)
	})

	t.Run("under construction rejects occupants", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		_, err := env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{})
		require.NoError(t, err)

		_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantDefender, "", "Guard")
		assert.ErrorIs(t, err, ErrUnderConstruction)
	})

	t.Run("unknown facility", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)

		_, err := env.occupants.Assign(ctx, actor.ID, "moat", entities.OccupantDefender, "", "Guard")
		assert.ErrorIs(t, err, ErrFacilityNotFound)
	})
}

func TestOccupantDismiss(t *testing.T) {
	ctx := context.Background()

	t.Run("dismiss by ref", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		_, err := env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{Free: true})
		require.NoError(t, err)
		_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantDefender, "guard-1", "Tobias")
		require.NoError(t, err)

		require.NoError(t, env.occupants.Dismiss(ctx, actor.ID, "barrack", "guard-1"))

		remaining, err := env.occupants.List(ctx, actor.ID, "barrack", "")
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("dismiss by name", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		_, err := env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{Free: true})
		require.NoError(t, err)
		_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantDefender, "guard-1", "Tobias")
		require.NoError(t, err)

		require.NoError(t, env.occupants.Dismiss(ctx, actor.ID, "barrack", "Tobias"))

		remaining, err := env.occupants.List(ctx, actor.ID, "barrack", "")
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("unknown occupant", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		_, err := env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{Free: true})
		require.NoError(t, err)

		err = env.occupants.Dismiss(ctx, actor.ID, "barrack", "nobody")
		assert.ErrorIs(t, err, ErrOccupantNotFound)
	})
}

func TestOccupantList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	actor := env.addActor(t, "Ezra", 5)
	_, err := env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{Free: true})
	require.NoError(t, err)

	_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantDefender, "", "Guard")
	require.NoError(t, err)
	_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantHireling, "", "Mira")
	require.NoError(t, err)

	all, err := env.occupants.List(ctx, actor.ID, "barrack", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	defenders, err := env.occupants.List(ctx, actor.ID, "barrack", entities.OccupantDefender)
	require.NoError(t, err)
	require.Len(t, defenders, 1)
	assert.Equal(t, "Guard", defenders[0].Name)
}
