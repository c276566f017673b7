package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
)

// ErrGMOnly is returned when a privileged mutation is attempted without
// the GM role.
var ErrGMOnly = errors.New("only the GM can change slot overrides")

// SettingsService manages the four per-world, actor-keyed settings
// mappings: display overrides, slot overrides, visibility rules and
// enabled flags. Values are stored as JSON documents behind the
// relational settings store.
type SettingsService struct {
	relationalDB ports.RelationalDB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(relationalDB ports.RelationalDB) *SettingsService {
	return &SettingsService{
		relationalDB: relationalDB,
	}
}

// Display returns an actor's display overrides; zero value when unset.
func (s *SettingsService) Display(ctx context.Context, actorID string) (entities.DisplaySettings, error) {
	var d entities.DisplaySettings
	if err := s.get(ctx, entities.ScopeDisplay, actorID, &d); err != nil {
		return entities.DisplaySettings{}, err
	}
	return d, nil
}

// SetDisplay stores an actor's display overrides.
func (s *SettingsService) SetDisplay(ctx context.Context, actorID string, d entities.DisplaySettings) error {
	return s.put(ctx, entities.ScopeDisplay, actorID, d)
}

// ClearDisplay removes an actor's display overrides.
func (s *SettingsService) ClearDisplay(ctx context.Context, actorID string) error {
	return s.relationalDB.DeleteSetting(ctx, entities.ScopeDisplay, actorID)
}

// SlotOverride returns an actor's slot override; zero value when unset.
func (s *SettingsService) SlotOverride(ctx context.Context, actorID string) (entities.SlotOverride, error) {
	var o entities.SlotOverride
	if err := s.get(ctx, entities.ScopeSlots, actorID, &o); err != nil {
		return entities.SlotOverride{}, err
	}
	return o, nil
}

// SetSlotOverride stores an actor's slot override. GM only.
func (s *SettingsService) SetSlotOverride(ctx context.Context, actorID string, o entities.SlotOverride, gm bool) error {
	if !gm {
		return ErrGMOnly
	}
	return s.put(ctx, entities.ScopeSlots, actorID, o)
}

// ClearSlotOverride removes an actor's slot override. GM only.
func (s *SettingsService) ClearSlotOverride(ctx context.Context, actorID string, gm bool) error {
	if !gm {
		return ErrGMOnly
	}
	return s.relationalDB.DeleteSetting(ctx, entities.ScopeSlots, actorID)
}

// Visibility returns an actor's visibility rule; zero value when unset.
func (s *SettingsService) Visibility(ctx context.Context, actorID string) (entities.VisibilityRule, error) {
	var r entities.VisibilityRule
	if err := s.get(ctx, entities.ScopeVisibility, actorID, &r); err != nil {
		return entities.VisibilityRule{}, err
	}
	return r, nil
}

// SetVisibility stores an actor's visibility rule.
func (s *SettingsService) SetVisibility(ctx context.Context, actorID string, r entities.VisibilityRule) error {
	return s.put(ctx, entities.ScopeVisibility, actorID, r)
}

// Share adds a user to an actor's visibility list.
func (s *SettingsService) Share(ctx context.Context, actorID, userID string) error {
	rule, err := s.Visibility(ctx, actorID)
	if err != nil {
		return err
	}
	for _, u := range rule.Users {
		if u == userID {
			return nil
		}
	}
	rule.Users = append(rule.Users, userID)
	return s.SetVisibility(ctx, actorID, rule)
}

// Unshare removes a user from an actor's visibility list.
func (s *SettingsService) Unshare(ctx context.Context, actorID, userID string) error {
	rule, err := s.Visibility(ctx, actorID)
	if err != nil {
		return err
	}
	users := rule.Users[:0]
	for _, u := range rule.Users {
		if u != userID {
			users = append(users, u)
		}
	}
	rule.Users = users
	return s.SetVisibility(ctx, actorID, rule)
}

// Enabled reports whether an actor's bastion is enabled. Bastions are
// enabled until explicitly disabled.
func (s *SettingsService) Enabled(ctx context.Context, actorID string) (bool, error) {
	raw, err := s.relationalDB.GetSetting(ctx, entities.ScopeEnabled, actorID)
	if err != nil {
		return false, fmt.Errorf("reading %s setting: %w", entities.ScopeEnabled, err)
	}
	if raw == nil {
		return true, nil
	}
	var enabled bool
	if err := json.Unmarshal(raw, &enabled); err != nil {
		return false, fmt.Errorf("decoding %s setting: %w", entities.ScopeEnabled, err)
	}
	return enabled, nil
}

// SetEnabled stores an actor's enabled flag.
func (s *SettingsService) SetEnabled(ctx context.Context, actorID string, enabled bool) error {
	return s.put(ctx, entities.ScopeEnabled, actorID, enabled)
}

func (s *SettingsService) get(ctx context.Context, scope entities.SettingsScope, actorID string, out any) error {
	raw, err := s.relationalDB.GetSetting(ctx, scope, actorID)
	if err != nil {
		return fmt.Errorf("reading %s setting: %w", scope, err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s setting: %w", scope, err)
	}
	return nil
}

func (s *SettingsService) put(ctx context.Context, scope entities.SettingsScope, actorID string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s setting: %w", scope, err)
	}
	if err := s.relationalDB.PutSetting(ctx, scope, actorID, raw); err != nil {
		return fmt.Errorf("writing %s setting: %w", scope, err)
	}
	return nil
}
