package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/slots"
)

// Advisory errors: each aborts the single action without writing.
var (
	ErrActorNotFound    = errors.New("actor not found")
	ErrFacilityNotFound = errors.New("facility not found")
	ErrUnknownBlueprint = errors.New("unknown facility blueprint")
	ErrLevelTooLow      = errors.New("actor level is too low for this facility")
	ErrNoFreeSlots      = errors.New("no free facility slots of this category")
	ErrFacilityBusy     = errors.New("facility is busy with construction or an order")
	ErrDuplicateName    = errors.New("a facility with this name already exists")
)

// FacilityService manages facility construction, orders and progress.
type FacilityService struct {
	relationalDB ports.RelationalDB
	blueprints   *BlueprintService
	settings     *SettingsService
	table        entities.AdvancementTable
}

// NewFacilityService creates a new FacilityService.
func NewFacilityService(relationalDB ports.RelationalDB, blueprints *BlueprintService, settings *SettingsService, table entities.AdvancementTable) *FacilityService {
	return &FacilityService{
		relationalDB: relationalDB,
		blueprints:   blueprints,
		settings:     settings,
		table:        table,
	}
}

// AddOptions controls facility creation.
type AddOptions struct {
	// Name overrides the blueprint name for display.
	Name string
	// Size of the new facility; defaults to roomy.
	Size entities.FacilitySize
	// Free marks the facility as GM-granted: it skips the level and
	// slot checks and does not consume a special slot.
	Free bool
}

// Add attaches a new facility to an actor. Special facilities require
// sufficient actor level and an open special slot; basic facilities can
// always be built.
func (s *FacilityService) Add(ctx context.Context, actorID, blueprintName string, opts AddOptions) (*entities.Facility, error) {
	actor, err := s.relationalDB.FindActorByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("finding actor: %w", err)
	}
	if actor == nil {
		return nil, ErrActorNotFound
	}

	blueprint, err := s.blueprints.Get(ctx, blueprintName)
	if err != nil {
		return nil, fmt.Errorf("finding blueprint: %w", err)
	}
	if blueprint == nil {
		names, err := s.blueprints.ValidNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBlueprint, blueprintName)
		}
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownBlueprint, blueprintName, strings.Join(names, ", "))
	}

	name := opts.Name
	if name == "" {
		name = blueprint.Name
	}

	existing, err := s.relationalDB.FindFacilityByName(ctx, actorID, name)
	if err != nil {
		return nil, fmt.Errorf("checking facility name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	if blueprint.Category == entities.CategorySpecial && !opts.Free {
		if actor.Level < blueprint.MinLevel {
			return nil, fmt.Errorf("%w: %s requires level %d, actor is level %d",
				ErrLevelTooLow, blueprint.Name, blueprint.MinLevel, actor.Level)
		}
		if err := s.requireOpenSlot(ctx, actor); err != nil {
			return nil, err
		}
	}

	size := opts.Size
	if size == "" {
		size = entities.SizeRoomy
	}

	facility := &entities.Facility{
		ID:               uuid.New().String(),
		ActorID:          actorID,
		Blueprint:        blueprint.Name,
		Name:             name,
		Category:         blueprint.Category,
		Size:             size,
		Free:             opts.Free,
		DefenderCapacity: blueprint.DefenderCapacity,
		HirelingCapacity: blueprint.HirelingCapacity,
	}
	if blueprint.BuildDays > 0 && !opts.Free {
		facility.UnderConstruction = true
		facility.BuildDaysLeft = blueprint.BuildDays
		facility.Order = entities.OrderBuild
	}

	if err := s.relationalDB.SaveFacility(ctx, facility); err != nil {
		return nil, fmt.Errorf("saving facility: %w", err)
	}

	if err := s.relationalDB.LogAction(ctx, "facility.add", actorID, map[string]any{
		"facility":  facility.ID,
		"blueprint": blueprint.Name,
		"free":      opts.Free,
	}); err != nil {
		return nil, fmt.Errorf("logging action: %w", err)
	}

	return facility, nil
}

// requireOpenSlot verifies the actor has a free special slot left.
func (s *FacilityService) requireOpenSlot(ctx context.Context, actor *entities.Actor) error {
	facilities, err := s.relationalDB.ListFacilities(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("listing facilities: %w", err)
	}

	override, err := s.settings.SlotOverride(ctx, actor.ID)
	if err != nil {
		return err
	}

	availability := slots.ComputeAvailable(entities.CategorySpecial, actor.Level, s.table, override, facilities)
	if len(availability.Available) == 0 {
		return fmt.Errorf("%w: %d of %d special slots used", ErrNoFreeSlots, availability.Value, availability.Max)
	}
	return nil
}

// Remove deletes a facility and its occupants.
func (s *FacilityService) Remove(ctx context.Context, actorID, name string) error {
	facility, err := s.find(ctx, actorID, name)
	if err != nil {
		return err
	}

	if err := s.relationalDB.DeleteFacility(ctx, facility.ID); err != nil {
		return fmt.Errorf("deleting facility: %w", err)
	}

	return s.relationalDB.LogAction(ctx, "facility.remove", actorID, map[string]any{
		"facility": facility.ID,
		"name":     facility.Name,
	})
}

// Rename changes a facility's display name. The new name must be
// unique among the actor's facilities.
func (s *FacilityService) Rename(ctx context.Context, actorID, name, newName string) error {
	facility, err := s.find(ctx, actorID, name)
	if err != nil {
		return err
	}

	existing, err := s.relationalDB.FindFacilityByName(ctx, actorID, newName)
	if err != nil {
		return fmt.Errorf("checking facility name: %w", err)
	}
	if existing != nil && existing.ID != facility.ID {
		return fmt.Errorf("%w: %s", ErrDuplicateName, newName)
	}

	oldName := facility.Name
	facility.Name = newName
	if err := s.relationalDB.SaveFacility(ctx, facility); err != nil {
		return fmt.Errorf("saving facility: %w", err)
	}

	return s.relationalDB.LogAction(ctx, "facility.rename", actorID, map[string]any{
		"facility": facility.ID,
		"from":     oldName,
		"to":       newName,
	})
}

// Resize changes a facility's physical footprint.
func (s *FacilityService) Resize(ctx context.Context, actorID, name string, size entities.FacilitySize) error {
	facility, err := s.find(ctx, actorID, name)
	if err != nil {
		return err
	}

	facility.Size = size
	if err := s.relationalDB.SaveFacility(ctx, facility); err != nil {
		return fmt.Errorf("saving facility: %w", err)
	}

	return s.relationalDB.LogAction(ctx, "facility.resize", actorID, map[string]any{
		"facility": facility.ID,
		"size":     string(size),
	})
}

// List returns all facilities attached to an actor.
func (s *FacilityService) List(ctx context.Context, actorID string) ([]entities.Facility, error) {
	return s.relationalDB.ListFacilities(ctx, actorID)
}

// SetOrder assigns an order to a facility for the given number of days.
// A facility that is under construction or mid-order rejects new orders.
func (s *FacilityService) SetOrder(ctx context.Context, actorID, name string, order entities.OrderType, days int) error {
	facility, err := s.find(ctx, actorID, name)
	if err != nil {
		return err
	}
	if facility.Busy() {
		return fmt.Errorf("%w: %s", ErrFacilityBusy, facility.Name)
	}
	if days < 1 {
		days = 1
	}

	facility.Order = order
	facility.OrderDaysLeft = days
	if err := s.relationalDB.SaveFacility(ctx, facility); err != nil {
		return fmt.Errorf("saving facility: %w", err)
	}

	return s.relationalDB.LogAction(ctx, "facility.order", actorID, map[string]any{
		"facility": facility.ID,
		"order":    string(order),
		"days":     days,
	})
}

// Completion describes a facility that finished construction or an
// order during a progress pass.
type Completion struct {
	Facility entities.Facility
	Order    entities.OrderType
}

// Progress advances all of an actor's facilities by the given number of
// days and returns the completions. Callers record chronicle entries
// for completions.
func (s *FacilityService) Progress(ctx context.Context, actorID string, days int) ([]Completion, error) {
	if days < 1 {
		days = 1
	}

	facilities, err := s.relationalDB.ListFacilities(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("listing facilities: %w", err)
	}

	var completions []Completion
	for i := range facilities {
		f := &facilities[i]

		changed := false
		if f.UnderConstruction {
			f.BuildDaysLeft -= days
			changed = true
			if f.BuildDaysLeft <= 0 {
				f.BuildDaysLeft = 0
				f.UnderConstruction = false
				f.Order = entities.OrderNone
				completions = append(completions, Completion{Facility: *f, Order: entities.OrderBuild})
			}
		} else if f.Order != entities.OrderNone && f.OrderDaysLeft > 0 {
			f.OrderDaysLeft -= days
			changed = true
			if f.OrderDaysLeft <= 0 {
				f.OrderDaysLeft = 0
				completions = append(completions, Completion{Facility: *f, Order: f.Order})
				f.Order = entities.OrderNone
			}
		}

		if changed {
			if err := s.relationalDB.SaveFacility(ctx, f); err != nil {
				return nil, fmt.Errorf("saving facility %s: %w", f.Name, err)
			}
		}
	}

	if err := s.relationalDB.LogAction(ctx, "facility.progress", actorID, map[string]any{
		"days":        days,
		"completions": len(completions),
	}); err != nil {
		return nil, fmt.Errorf("logging action: %w", err)
	}

	return completions, nil
}

// find resolves a facility of an actor by name.
func (s *FacilityService) find(ctx context.Context, actorID, name string) (*entities.Facility, error) {
	facility, err := s.relationalDB.FindFacilityByName(ctx, actorID, name)
	if err != nil {
		return nil, fmt.Errorf("finding facility: %w", err)
	}
	if facility == nil {
		return nil, fmt.Errorf("%w: %s", ErrFacilityNotFound, name)
	}
	return facility, nil
}
