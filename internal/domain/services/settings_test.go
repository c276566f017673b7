package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/mocks"
)

func TestSettingsDisplay(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(mocks.NewRelationalDB())

	// Unset reads as the zero value.
	display, err := svc.Display(ctx, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, entities.DisplaySettings{}, display)

	want := entities.DisplaySettings{Name: "Evernight", Color: "#aa3300", Fade: true}
	require.NoError(t, svc.SetDisplay(ctx, "actor-1", want))

	display, err = svc.Display(ctx, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, want, display)

	// Other actors are unaffected.
	other, err := svc.Display(ctx, "actor-2")
	require.NoError(t, err)
	assert.Equal(t, entities.DisplaySettings{}, other)

	require.NoError(t, svc.ClearDisplay(ctx, "actor-1"))
	display, err = svc.Display(ctx, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, entities.DisplaySettings{}, display)
}

func TestSettingsSlotOverride(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(mocks.NewRelationalDB())

	err := svc.SetSlotOverride(ctx, "actor-1", entities.SlotOverride{Basic: 1}, false)
	assert.ErrorIs(t, err, ErrGMOnly)
	err = svc.ClearSlotOverride(ctx, "actor-1", false)
	assert.ErrorIs(t, err, ErrGMOnly)

	want := entities.SlotOverride{Basic: 1, Special: 2}
	require.NoError(t, svc.SetSlotOverride(ctx, "actor-1", want, true))

	override, err := svc.SlotOverride(ctx, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, want, override)

	require.NoError(t, svc.ClearSlotOverride(ctx, "actor-1", true))
	override, err = svc.SlotOverride(ctx, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, entities.SlotOverride{}, override)
}

func TestSettingsVisibility(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(mocks.NewRelationalDB())

	rule, err := svc.Visibility(ctx, "actor-1")
	require.NoError(t, err)
	assert.False(t, rule.Public)
	assert.Empty(t, rule.Users)

	require.NoError(t, svc.Share(ctx, "actor-1", "user-1"))
	require.NoError(t, svc.Share(ctx, "actor-1", "user-2"))
	// Sharing twice is a no-op.
	require.NoError(t, svc.Share(ctx, "actor-1", "user-1"))

	rule, err = svc.Visibility(ctx, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1", "user-2"}, rule.Users)

	require.NoError(t, svc.Unshare(ctx, "actor-1", "user-1"))
	rule, err = svc.Visibility(ctx, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-2"}, rule.Users)
}

func TestSettingsEnabled(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(mocks.NewRelationalDB())

	// Enabled until explicitly disabled.
	enabled, err := svc.Enabled(ctx, "actor-1")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, svc.SetEnabled(ctx, "actor-1", false))
	enabled, err = svc.Enabled(ctx, "actor-1")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, svc.SetEnabled(ctx, "actor-1", true))
	enabled, err = svc.Enabled(ctx, "actor-1")
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestSettingsStoreError(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	db.Err = assert.AnError
	svc := NewSettingsService(db)

	_, err := svc.Display(ctx, "actor-1")
	assert.ErrorIs(t, err, assert.AnError)
	err = svc.SetDisplay(ctx, "actor-1", entities.DisplaySettings{})
	assert.ErrorIs(t, err, assert.AnError)
	_, err = svc.Enabled(ctx, "actor-1")
	assert.ErrorIs(t, err, assert.AnError)
}
