package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
)

// validBlueprintNameRegex allows alphanumeric and underscores only.
var validBlueprintNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// BlueprintService manages the facility blueprint catalog.
type BlueprintService struct {
	relationalDB ports.RelationalDB
	cache        map[string]*entities.FacilityBlueprint
	sortedNames  []string // cached sorted names, populated with cache
	cacheMu      sync.RWMutex
}

// NewBlueprintService creates a new BlueprintService.
func NewBlueprintService(relationalDB ports.RelationalDB) *BlueprintService {
	return &BlueprintService{
		relationalDB: relationalDB,
		cache:        make(map[string]*entities.FacilityBlueprint),
	}
}

// LoadDefaults seeds the default blueprints into the database.
// Lists once then inserts the missing ones.
func (s *BlueprintService) LoadDefaults(ctx context.Context) error {
	existing, err := s.relationalDB.ListBlueprints(ctx)
	if err != nil {
		return fmt.Errorf("listing blueprints: %w", err)
	}

	existingSet := make(map[string]bool, len(existing))
	for _, b := range existing {
		existingSet[b.Name] = true
	}

	for _, b := range entities.DefaultBlueprints {
		if !existingSet[b.Name] {
			bCopy := b
			if err := s.relationalDB.SaveBlueprint(ctx, &bCopy); err != nil {
				return fmt.Errorf("seeding blueprint %s: %w", b.Name, err)
			}
		}
	}
	s.invalidateCache()
	return nil
}

// List returns all blueprints.
func (s *BlueprintService) List(ctx context.Context) ([]entities.FacilityBlueprint, error) {
	return s.relationalDB.ListBlueprints(ctx)
}

// Get returns a specific blueprint by name, or nil if not found. The
// catalog is small and read often, so lookups go through the cache.
func (s *BlueprintService) Get(ctx context.Context, name string) (*entities.FacilityBlueprint, error) {
	// Fast path: check cache with read lock
	s.cacheMu.RLock()
	if len(s.cache) > 0 {
		cached := s.cache[name]
		s.cacheMu.RUnlock()
		return copyBlueprint(cached), nil
	}
	s.cacheMu.RUnlock()

	// Slow path: need to populate cache
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	// Double-check: another goroutine may have populated the cache
	if len(s.cache) > 0 {
		return copyBlueprint(s.cache[name]), nil
	}

	blueprints, err := s.relationalDB.ListBlueprints(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing blueprints: %w", err)
	}

	s.populateCacheFromBlueprints(blueprints)
	return copyBlueprint(s.cache[name]), nil
}

// copyBlueprint clones a cached blueprint so callers cannot mutate the
// shared cache entry. Returns nil for a cache miss.
func copyBlueprint(b *entities.FacilityBlueprint) *entities.FacilityBlueprint {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

// Add creates a new custom blueprint.
func (s *BlueprintService) Add(ctx context.Context, blueprint entities.FacilityBlueprint) error {
	blueprint.Name = strings.ToLower(strings.TrimSpace(blueprint.Name))

	if !validBlueprintNameRegex.MatchString(blueprint.Name) {
		return errors.New("invalid blueprint name: must be lowercase alphanumeric with underscores, starting with a letter")
	}
	if !entities.ValidCategory(string(blueprint.Category)) {
		return fmt.Errorf("invalid category %q (valid: basic, special)", blueprint.Category)
	}
	if blueprint.MinLevel < 1 {
		blueprint.MinLevel = 1
	}

	existing, err := s.relationalDB.FindBlueprint(ctx, blueprint.Name)
	if err != nil {
		return fmt.Errorf("checking blueprint: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("blueprint '%s' already exists", blueprint.Name)
	}

	if err := s.relationalDB.SaveBlueprint(ctx, &blueprint); err != nil {
		return fmt.Errorf("saving blueprint: %w", err)
	}

	s.invalidateCache()
	return nil
}

// Remove deletes a custom blueprint.
func (s *BlueprintService) Remove(ctx context.Context, name string) error {
	if entities.IsDefaultBlueprint(name) {
		return fmt.Errorf("cannot remove default blueprint '%s'", name)
	}

	existing, err := s.relationalDB.FindBlueprint(ctx, name)
	if err != nil {
		return fmt.Errorf("checking blueprint: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("blueprint '%s' not found", name)
	}

	if err := s.relationalDB.DeleteBlueprint(ctx, name); err != nil {
		return fmt.Errorf("deleting blueprint: %w", err)
	}

	s.invalidateCache()
	return nil
}

// ValidNames returns all valid blueprint names, sorted.
// The returned slice is shared and must not be modified by callers.
func (s *BlueprintService) ValidNames(ctx context.Context) ([]string, error) {
	// Fast path: check cache with read lock
	s.cacheMu.RLock()
	if len(s.cache) > 0 {
		names := s.sortedNames
		s.cacheMu.RUnlock()
		return names, nil
	}
	s.cacheMu.RUnlock()

	// Slow path: need to populate cache
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if len(s.cache) > 0 {
		return s.sortedNames, nil
	}

	blueprints, err := s.relationalDB.ListBlueprints(ctx)
	if err != nil {
		return nil, err
	}

	s.populateCacheFromBlueprints(blueprints)
	return s.sortedNames, nil
}

// populateCacheFromBlueprints fills the cache and sortedNames.
// Caller must hold cacheMu write lock.
func (s *BlueprintService) populateCacheFromBlueprints(blueprints []entities.FacilityBlueprint) {
	s.cache = make(map[string]*entities.FacilityBlueprint, len(blueprints))
	s.sortedNames = make([]string, len(blueprints))
	for i := range blueprints {
		s.cache[blueprints[i].Name] = &blueprints[i]
		s.sortedNames[i] = blueprints[i].Name
	}
	sort.Strings(s.sortedNames)
}

func (s *BlueprintService) invalidateCache() {
	s.cacheMu.Lock()
	s.cache = make(map[string]*entities.FacilityBlueprint)
	s.sortedNames = nil
	s.cacheMu.Unlock()
}
