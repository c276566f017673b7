package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

func newBastionService(env *testEnv) *BastionService {
	return NewBastionService(env.db, env.settings, entities.DefaultAdvancement())
}

func TestBastionOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("gm sees every enabled bastion", func(t *testing.T) {
		env := newTestEnv(t)
		env.addActor(t, "Ezra", 5)
		env.addActor(t, "Mira", 3)
		bastion := newBastionService(env)

		rows, err := bastion.Overview(ctx, "test-world", Viewer{GM: true})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("players see owned, public and listed only", func(t *testing.T) {
		env := newTestEnv(t)
		owned := env.addActor(t, "Ezra", 5)
		owned.OwnerUserID = "user-1"
		require.NoError(t, env.db.SaveActor(ctx, owned))

		public := env.addActor(t, "Mira", 3)
		require.NoError(t, env.settings.SetVisibility(ctx, public.ID, entities.VisibilityRule{Public: true}))

		listed := env.addActor(t, "Jorn", 4)
		require.NoError(t, env.settings.Share(ctx, listed.ID, "user-1"))

		env.addActor(t, "Hidden", 2)

		bastion := newBastionService(env)
		rows, err := bastion.Overview(ctx, "test-world", Viewer{UserID: "user-1"})
		require.NoError(t, err)
		require.Len(t, rows, 3)

		names := make([]string, len(rows))
		for i, row := range rows {
			names[i] = row.Actor.Name
		}
		assert.ElementsMatch(t, []string{"Ezra", "Mira", "Jorn"}, names)
	})

	t.Run("anonymous viewer sees nothing", func(t *testing.T) {
		env := newTestEnv(t)
		public := env.addActor(t, "Mira", 3)
		require.NoError(t, env.settings.SetVisibility(ctx, public.ID, entities.VisibilityRule{Public: true}))

		bastion := newBastionService(env)
		rows, err := bastion.Overview(ctx, "test-world", Viewer{})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("disabled bastions are dropped", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		require.NoError(t, env.settings.SetEnabled(ctx, actor.ID, false))

		bastion := newBastionService(env)
		rows, err := bastion.Overview(ctx, "test-world", Viewer{GM: true})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("display overrides apply", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		require.NoError(t, env.settings.SetDisplay(ctx, actor.ID, entities.DisplaySettings{
			Name:    "Castle Evernight",
			Color:   "#aa3300",
			Fade:    true,
			Outline: true,
		}))
		_, err := env.facilities.Add(ctx, actor.ID, "kitchen", AddOptions{})
		require.NoError(t, err)
		_, err = env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{})
		require.NoError(t, err)

		bastion := newBastionService(env)
		rows, err := bastion.Overview(ctx, "test-world", Viewer{GM: true})
		require.NoError(t, err)
		require.Len(t, rows, 1)

		row := rows[0]
		assert.Equal(t, "Castle Evernight", row.DisplayName)
		assert.Equal(t, "#aa3300", row.Color)
		assert.True(t, row.Fade)
		assert.True(t, row.Outline)
		assert.Equal(t, 1, row.BasicCount)
		assert.Equal(t, 1, row.SpecialCount)
	})
}

func TestBastionDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("detail with availability and occupancy", func(t *testing.T) {
		env := newTestEnv(t)
		actor := env.addActor(t, "Ezra", 5)
		_, err := env.facilities.Add(ctx, actor.ID, "barrack", AddOptions{Free: true})
		require.NoError(t, err)
		_, err = env.occupants.Assign(ctx, actor.ID, "barrack", entities.OccupantDefender, "guard-1", "Tobias")
		require.NoError(t, err)

		bastion := newBastionService(env)
		detail, err := bastion.Detail(ctx, "test-world", "Ezra", Viewer{GM: true})
		require.NoError(t, err)

		assert.Equal(t, 2, detail.Basic.Max)
		assert.Equal(t, 2, detail.Special.Max)
		// Free special facilities don't count against the slots.
		assert.Equal(t, 0, detail.Special.Value)
		assert.Len(t, detail.Special.Available, 2)

		require.Len(t, detail.Facilities, 1)
		view := detail.Facilities[0]
		require.Len(t, view.Defenders, 12)
		assert.False(t, view.Defenders[0].Empty)
		assert.Equal(t, "guard-1", view.Defenders[0].Ref)
		assert.True(t, view.Defenders[1].Empty)
		require.Len(t, view.Hirelings, 1)
		assert.True(t, view.Hirelings[0].Empty)
	})

	t.Run("case-insensitive actor lookup", func(t *testing.T) {
		env := newTestEnv(t)
		env.addActor(t, "Ezra", 5)

		bastion := newBastionService(env)
		detail, err := bastion.Detail(ctx, "test-world", "ezra", Viewer{GM: true})
		require.NoError(t, err)
		assert.Equal(t, "Ezra", detail.Actor.Name)
	})

	t.Run("invisible bastion reads as not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.addActor(t, "Ezra", 5)

		bastion := newBastionService(env)
		_, err := bastion.Detail(ctx, "test-world", "Ezra", Viewer{UserID: "stranger"})
		assert.ErrorIs(t, err, ErrActorNotFound)

		_, err = bastion.Detail(ctx, "test-world", "Nobody", Viewer{UserID: "stranger"})
		assert.ErrorIs(t, err, ErrActorNotFound)
	})
}

func TestBastionSetDescription(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	actor := env.addActor(t, "Ezra", 5)
	bastion := newBastionService(env)

	require.NoError(t, bastion.SetDescription(ctx, actor.ID, "A tower on the cliffs."))

	detail, err := bastion.Detail(ctx, "test-world", "Ezra", Viewer{GM: true})
	require.NoError(t, err)
	assert.Equal(t, "A tower on the cliffs.", detail.Description)

	err = bastion.SetDescription(ctx, "nobody", "x")
	assert.ErrorIs(t, err, ErrActorNotFound)
}
