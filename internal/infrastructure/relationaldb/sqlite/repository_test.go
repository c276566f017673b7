package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func saveTestActor(t *testing.T, repo *Repository, name string, level int) *entities.Actor {
	t.Helper()
	actor := &entities.Actor{
		ID:             "actor-" + entities.NormalizeName(name),
		WorldID:        "test-world",
		Name:           name,
		NormalizedName: entities.NormalizeName(name),
		Level:          level,
	}
	require.NoError(t, repo.SaveActor(context.Background(), actor))
	return actor
}

func saveTestFacility(t *testing.T, repo *Repository, actorID, name string) *entities.Facility {
	t.Helper()
	facility := &entities.Facility{
		ID:               "facility-" + name,
		ActorID:          actorID,
		Blueprint:        "barrack",
		Name:             name,
		Category:         entities.CategorySpecial,
		Size:             entities.SizeRoomy,
		DefenderCapacity: 12,
		HirelingCapacity: 1,
	}
	require.NoError(t, repo.SaveFacility(context.Background(), facility))
	return facility
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	// Verify tables exist
	tables := []string{"actors", "facilities", "occupants", "blueprints", "settings", "chronicle", "audit_log"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	// Should not error when called again
	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_Actors(t *testing.T) {
	ctx := context.Background()

	t.Run("save and find by id", func(t *testing.T) {
		repo := setupTestRepo(t)
		actor := saveTestActor(t, repo, "Ezra", 5)

		found, err := repo.FindActorByID(ctx, actor.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Ezra", found.Name)
		assert.Equal(t, 5, found.Level)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("find by name is case-insensitive", func(t *testing.T) {
		repo := setupTestRepo(t)
		saveTestActor(t, repo, "Ezra", 5)

		found, err := repo.FindActorByName(ctx, "test-world", "EZRA")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Ezra", found.Name)
	})

	t.Run("find missing returns nil", func(t *testing.T) {
		repo := setupTestRepo(t)

		found, err := repo.FindActorByID(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("save twice updates in place", func(t *testing.T) {
		repo := setupTestRepo(t)
		actor := saveTestActor(t, repo, "Ezra", 5)

		actor.Level = 9
		actor.Description = "A tower on the cliffs."
		require.NoError(t, repo.SaveActor(ctx, actor))

		found, err := repo.FindActorByID(ctx, actor.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, found.Level)
		assert.Equal(t, "A tower on the cliffs.", found.Description)

		count, err := repo.CountActors(ctx, "test-world")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("list sorts by name and paginates", func(t *testing.T) {
		repo := setupTestRepo(t)
		saveTestActor(t, repo, "Mira", 3)
		saveTestActor(t, repo, "Ezra", 5)
		saveTestActor(t, repo, "Jorn", 4)

		all, err := repo.ListActors(ctx, "test-world", 0, 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Ezra", all[0].Name)

		page, err := repo.ListActors(ctx, "test-world", 2, 1)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "Jorn", page[0].Name)
	})

	t.Run("delete cascades", func(t *testing.T) {
		repo := setupTestRepo(t)
		actor := saveTestActor(t, repo, "Ezra", 5)
		facility := saveTestFacility(t, repo, actor.ID, "barrack")
		require.NoError(t, repo.SaveOccupant(ctx, &entities.Occupant{
			ID:          "occ-1",
			FacilityID:  facility.ID,
			Kind:        entities.OccupantDefender,
			CreatureRef: "guard-1",
		}))
		require.NoError(t, repo.PutSetting(ctx, entities.ScopeEnabled, actor.ID, []byte("false")))
		require.NoError(t, repo.SaveChronicleEntry(ctx, &entities.ChronicleEntry{
			ID:      "chr-1",
			ActorID: actor.ID,
			Kind:    entities.ChronicleNote,
			Text:    "x",
		}))

		require.NoError(t, repo.DeleteActor(ctx, actor.ID))

		facilities, err := repo.ListFacilities(ctx, actor.ID)
		require.NoError(t, err)
		assert.Empty(t, facilities)

		occupants, err := repo.ListOccupants(ctx, facility.ID)
		require.NoError(t, err)
		assert.Empty(t, occupants)

		raw, err := repo.GetSetting(ctx, entities.ScopeEnabled, actor.ID)
		require.NoError(t, err)
		assert.Nil(t, raw)

		chronicle, err := repo.ListChronicle(ctx, actor.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, chronicle)
	})

	t.Run("delete missing actor errors", func(t *testing.T) {
		repo := setupTestRepo(t)
		assert.Error(t, repo.DeleteActor(ctx, "nobody"))
	})
}

func TestRepository_Facilities(t *testing.T) {
	ctx := context.Background()

	t.Run("save and find", func(t *testing.T) {
		repo := setupTestRepo(t)
		actor := saveTestActor(t, repo, "Ezra", 5)
		facility := saveTestFacility(t, repo, actor.ID, "barrack")

		found, err := repo.FindFacilityByID(ctx, facility.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, entities.CategorySpecial, found.Category)
		assert.Equal(t, entities.SizeRoomy, found.Size)
		assert.Equal(t, 12, found.DefenderCapacity)

		byName, err := repo.FindFacilityByName(ctx, actor.ID, "barrack")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, facility.ID, byName.ID)
	})

	t.Run("update preserves identity", func(t *testing.T) {
		repo := setupTestRepo(t)
		actor := saveTestActor(t, repo, "Ezra", 5)
		facility := saveTestFacility(t, repo, actor.ID, "barrack")

		facility.Order = entities.OrderRecruit
		facility.OrderDaysLeft = 7
		require.NoError(t, repo.SaveFacility(ctx, facility))

		found, err := repo.FindFacilityByID(ctx, facility.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderRecruit, found.Order)
		assert.Equal(t, 7, found.OrderDaysLeft)
	})

	t.Run("delete removes occupants", func(t *testing.T) {
		repo := setupTestRepo(t)
		actor := saveTestActor(t, repo, "Ezra", 5)
		facility := saveTestFacility(t, repo, actor.ID, "barrack")
		require.NoError(t, repo.SaveOccupant(ctx, &entities.Occupant{
			ID:          "occ-1",
			FacilityID:  facility.ID,
			Kind:        entities.OccupantDefender,
			CreatureRef: "guard-1",
		}))

		require.NoError(t, repo.DeleteFacility(ctx, facility.ID))

		occupants, err := repo.ListOccupants(ctx, facility.ID)
		require.NoError(t, err)
		assert.Empty(t, occupants)
	})
}

func TestRepository_Occupants(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	actor := saveTestActor(t, repo, "Ezra", 5)
	facility := saveTestFacility(t, repo, actor.ID, "barrack")

	base := time.Now().Add(-time.Hour)
	for i, ref := range []string{"guard-1", "guard-2"} {
		require.NoError(t, repo.SaveOccupant(ctx, &entities.Occupant{
			ID:          ref,
			FacilityID:  facility.ID,
			Kind:        entities.OccupantDefender,
			CreatureRef: ref,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.SaveOccupant(ctx, &entities.Occupant{
		ID:          "hire-1",
		FacilityID:  facility.ID,
		Kind:        entities.OccupantHireling,
		CreatureRef: "hire-1",
		Name:        "Mira",
	}))

	t.Run("list preserves insertion order", func(t *testing.T) {
		occupants, err := repo.ListOccupants(ctx, facility.ID)
		require.NoError(t, err)
		require.Len(t, occupants, 3)
		assert.Equal(t, "guard-1", occupants[0].CreatureRef)
		assert.Equal(t, "guard-2", occupants[1].CreatureRef)
	})

	t.Run("list and count by kind", func(t *testing.T) {
		defenders, err := repo.ListOccupantsByKind(ctx, facility.ID, entities.OccupantDefender)
		require.NoError(t, err)
		assert.Len(t, defenders, 2)

		count, err := repo.CountOccupants(ctx, facility.ID, entities.OccupantHireling)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("find by ref", func(t *testing.T) {
		found, err := repo.FindOccupantByRef(ctx, facility.ID, "guard-2")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "guard-2", found.ID)

		missing, err := repo.FindOccupantByRef(ctx, facility.ID, "nobody")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteOccupant(ctx, "guard-1"))
		count, err := repo.CountOccupants(ctx, facility.ID, entities.OccupantDefender)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		assert.Error(t, repo.DeleteOccupant(ctx, "guard-1"))
	})
}

func TestRepository_Blueprints(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	blueprint := &entities.FacilityBlueprint{
		Name:             "wizard_tower",
		Category:         entities.CategorySpecial,
		MinLevel:         9,
		BuildDays:        30,
		HirelingCapacity: 2,
		Description:      "A tower for arcane research",
	}
	require.NoError(t, repo.SaveBlueprint(ctx, blueprint))

	found, err := repo.FindBlueprint(ctx, "wizard_tower")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 9, found.MinLevel)
	assert.Equal(t, "A tower for arcane research", found.Description)

	missing, err := repo.FindBlueprint(ctx, "moon_base")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.SaveBlueprint(ctx, &entities.FacilityBlueprint{
		Name:     "armory",
		Category: entities.CategorySpecial,
		MinLevel: 5,
	}))

	list, err := repo.ListBlueprints(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "armory", list[0].Name, "sorted by name")

	require.NoError(t, repo.DeleteBlueprint(ctx, "wizard_tower"))
	assert.Error(t, repo.DeleteBlueprint(ctx, "wizard_tower"))
}

func TestRepository_Settings(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	raw, err := repo.GetSetting(ctx, entities.ScopeDisplay, "actor-1")
	require.NoError(t, err)
	assert.Nil(t, raw, "unset reads as nil")

	require.NoError(t, repo.PutSetting(ctx, entities.ScopeDisplay, "actor-1", []byte(`{"name":"Evernight"}`)))
	require.NoError(t, repo.PutSetting(ctx, entities.ScopeDisplay, "actor-2", []byte(`{"name":"Hold"}`)))
	// Same actor under another scope is an independent entry.
	require.NoError(t, repo.PutSetting(ctx, entities.ScopeEnabled, "actor-1", []byte(`false`)))

	raw, err = repo.GetSetting(ctx, entities.ScopeDisplay, "actor-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Evernight"}`, string(raw))

	// Upsert replaces the value.
	require.NoError(t, repo.PutSetting(ctx, entities.ScopeDisplay, "actor-1", []byte(`{"name":"Dawnkeep"}`)))
	raw, err = repo.GetSetting(ctx, entities.ScopeDisplay, "actor-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Dawnkeep"}`, string(raw))

	all, err := repo.ListSettings(ctx, entities.ScopeDisplay)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.DeleteSetting(ctx, entities.ScopeDisplay, "actor-1"))
	raw, err = repo.GetSetting(ctx, entities.ScopeDisplay, "actor-1")
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = repo.GetSetting(ctx, entities.ScopeEnabled, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, "false", string(raw), "other scopes untouched")
}

func TestRepository_Chronicle(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	actor := saveTestActor(t, repo, "Ezra", 5)

	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"first", "second", "third"} {
		require.NoError(t, repo.SaveChronicleEntry(ctx, &entities.ChronicleEntry{
			ID:        text,
			ActorID:   actor.ID,
			Kind:      entities.ChronicleNote,
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := repo.ListChronicle(ctx, actor.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Text, "newest first")

	entries, err = repo.ListChronicle(ctx, actor.ID, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, repo.DeleteChronicleByActor(ctx, actor.ID))
	entries, err = repo.ListChronicle(ctx, actor.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRepository_AuditLog(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	require.NoError(t, repo.LogAction(ctx, "facility.add", "actor-1", map[string]any{"blueprint": "barrack"}))
	require.NoError(t, repo.LogAction(ctx, "facility.remove", "actor-1", nil))
	require.NoError(t, repo.LogAction(ctx, "facility.add", "actor-2", map[string]any{"blueprint": "smithy"}))

	byActor, err := repo.FindAuditLog(ctx, "actor-1")
	require.NoError(t, err)
	assert.Len(t, byActor, 2)

	byAction, err := repo.FindAuditLogByAction(ctx, "facility.add", 0)
	require.NoError(t, err)
	require.Len(t, byAction, 2)
	blueprints := []string{
		byAction[0].Details["blueprint"].(string),
		byAction[1].Details["blueprint"].(string),
	}
	assert.ElementsMatch(t, []string{"barrack", "smithy"}, blueprints)

	limited, err := repo.FindAuditLogByAction(ctx, "facility.add", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
