package services

import (
	"context"
	"fmt"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/policy"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/slots"
)

// Viewer identifies who is looking at a bastion surface.
type Viewer struct {
	UserID string
	GM     bool
}

// BastionService composes the two read surfaces: the overview grid and
// the per-bastion detail view. All visibility filtering happens here.
type BastionService struct {
	relationalDB ports.RelationalDB
	settings     *SettingsService
	table        entities.AdvancementTable
}

// NewBastionService creates a new BastionService.
func NewBastionService(relationalDB ports.RelationalDB, settings *SettingsService, table entities.AdvancementTable) *BastionService {
	return &BastionService{
		relationalDB: relationalDB,
		settings:     settings,
		table:        table,
	}
}

// OverviewRow is one tile of the overview grid.
type OverviewRow struct {
	Actor        *entities.Actor
	DisplayName  string
	Image        string
	Color        string
	Fade         bool
	Outline      bool
	BasicCount   int
	SpecialCount int
}

// Overview returns one row per enabled bastion the viewer may see,
// with display overrides applied.
func (s *BastionService) Overview(ctx context.Context, worldID string, viewer Viewer) ([]OverviewRow, error) {
	actors, err := s.relationalDB.ListActors(ctx, worldID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("listing actors: %w", err)
	}

	rows := make([]OverviewRow, 0, len(actors))
	for _, actor := range actors {
		visible, err := s.canView(ctx, actor, viewer)
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}

		enabled, err := s.settings.Enabled(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if !enabled {
			continue
		}

		row, err := s.buildRow(ctx, actor)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *BastionService) buildRow(ctx context.Context, actor *entities.Actor) (OverviewRow, error) {
	display, err := s.settings.Display(ctx, actor.ID)
	if err != nil {
		return OverviewRow{}, err
	}

	facilities, err := s.relationalDB.ListFacilities(ctx, actor.ID)
	if err != nil {
		return OverviewRow{}, fmt.Errorf("listing facilities: %w", err)
	}

	row := OverviewRow{
		Actor:       actor,
		DisplayName: actor.Name,
		Image:       actor.Image,
		Color:       display.Color,
		Fade:        display.Fade,
		Outline:     display.Outline,
	}
	if display.Name != "" {
		row.DisplayName = display.Name
	}
	if display.Image != "" {
		row.Image = display.Image
	}
	for _, f := range facilities {
		switch f.Category {
		case entities.CategoryBasic:
			row.BasicCount++
		case entities.CategorySpecial:
			row.SpecialCount++
		}
	}

	return row, nil
}

// FacilityView is one facility on the detail view, with its occupancy
// pools expanded to fixed-capacity slot arrays.
type FacilityView struct {
	Facility  entities.Facility
	Defenders []slots.OccupancySlot
	Hirelings []slots.OccupancySlot
}

// Detail is the per-bastion detail view.
type Detail struct {
	Actor       *entities.Actor
	DisplayName string
	Description string
	Basic       slots.Availability
	Special     slots.Availability
	Facilities  []FacilityView
}

// Detail composes the detail view for one actor's bastion. Viewers
// without access get ErrActorNotFound rather than a hint the bastion
// exists.
func (s *BastionService) Detail(ctx context.Context, worldID, actorName string, viewer Viewer) (*Detail, error) {
	actor, err := s.relationalDB.FindActorByName(ctx, worldID, actorName)
	if err != nil {
		return nil, fmt.Errorf("finding actor: %w", err)
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: %s", ErrActorNotFound, actorName)
	}

	visible, err := s.canView(ctx, actor, viewer)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, fmt.Errorf("%w: %s", ErrActorNotFound, actorName)
	}

	facilities, err := s.relationalDB.ListFacilities(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("listing facilities: %w", err)
	}

	override, err := s.settings.SlotOverride(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	display, err := s.settings.Display(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		Actor:       actor,
		DisplayName: actor.Name,
		Description: actor.Description,
		Basic:       slots.ComputeAvailable(entities.CategoryBasic, actor.Level, s.table, override, facilities),
		Special:     slots.ComputeAvailable(entities.CategorySpecial, actor.Level, s.table, override, facilities),
	}
	if display.Name != "" {
		detail.DisplayName = display.Name
	}

	for _, f := range facilities {
		view, err := s.buildFacilityView(ctx, f)
		if err != nil {
			return nil, err
		}
		detail.Facilities = append(detail.Facilities, view)
	}

	return detail, nil
}

// buildFacilityView expands a facility's occupants into fixed-capacity
// slot arrays. Refs whose occupant record is gone render empty.
func (s *BastionService) buildFacilityView(ctx context.Context, facility entities.Facility) (FacilityView, error) {
	occupants, err := s.relationalDB.ListOccupants(ctx, facility.ID)
	if err != nil {
		return FacilityView{}, fmt.Errorf("listing occupants: %w", err)
	}

	byRef := make(map[string]*entities.Occupant, len(occupants))
	var defenderRefs, hirelingRefs []string
	for i := range occupants {
		o := &occupants[i]
		byRef[o.CreatureRef] = o
		switch o.Kind {
		case entities.OccupantDefender:
			defenderRefs = append(defenderRefs, o.CreatureRef)
		case entities.OccupantHireling:
			hirelingRefs = append(hirelingRefs, o.CreatureRef)
		}
	}

	resolve := func(ref string) (*entities.Occupant, bool) {
		o, ok := byRef[ref]
		return o, ok
	}

	return FacilityView{
		Facility:  facility,
		Defenders: slots.BuildOccupancySlots(defenderRefs, facility.DefenderCapacity, resolve),
		Hirelings: slots.BuildOccupancySlots(hirelingRefs, facility.HirelingCapacity, resolve),
	}, nil
}

// SetDescription updates the free-form description of an actor's
// bastion.
func (s *BastionService) SetDescription(ctx context.Context, actorID, description string) error {
	actor, err := s.relationalDB.FindActorByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("finding actor: %w", err)
	}
	if actor == nil {
		return ErrActorNotFound
	}

	actor.Description = description
	if err := s.relationalDB.SaveActor(ctx, actor); err != nil {
		return fmt.Errorf("saving actor: %w", err)
	}

	return s.relationalDB.LogAction(ctx, "bastion.describe", actor.ID, nil)
}

func (s *BastionService) canView(ctx context.Context, actor *entities.Actor, viewer Viewer) (bool, error) {
	if viewer.GM {
		return true, nil
	}

	rule, err := s.settings.Visibility(ctx, actor.ID)
	if err != nil {
		return false, err
	}

	isGM := func(string) bool { return viewer.GM }
	owns := func(userID, actorID string) bool {
		return actorID == actor.ID && userID != "" && userID == actor.OwnerUserID
	}
	return policy.CanView(actor.ID, viewer.UserID, isGM, owns, rule), nil
}
