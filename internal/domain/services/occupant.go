package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
)

var (
	ErrOccupancyFull     = errors.New("facility occupancy is full")
	ErrOccupantNotFound  = errors.New("occupant not found")
	ErrUnderConstruction = errors.New("facility is still under construction")
)

// OccupantService manages creatures stationed in facilities.
type OccupantService struct {
	relationalDB ports.RelationalDB
}

// NewOccupantService creates a new OccupantService.
func NewOccupantService(relationalDB ports.RelationalDB) *OccupantService {
	return &OccupantService{
		relationalDB: relationalDB,
	}
}

// Assign stations a creature in a facility. The facility must be built
// and have room in the occupancy pool for the given kind.
func (s *OccupantService) Assign(ctx context.Context, actorID, facilityName string, kind entities.OccupantKind, creatureRef, name string) (*entities.Occupant, error) {
	facility, err := s.findFacility(ctx, actorID, facilityName)
	if err != nil {
		return nil, err
	}
	if facility.UnderConstruction {
		return nil, fmt.Errorf("%w: %s", ErrUnderConstruction, facility.Name)
	}

	capacity := facility.HirelingCapacity
	if kind == entities.OccupantDefender {
		capacity = facility.DefenderCapacity
	}

	count, err := s.relationalDB.CountOccupants(ctx, facility.ID, kind)
	if err != nil {
		return nil, fmt.Errorf("counting occupants: %w", err)
	}
	if count >= capacity {
		return nil, fmt.Errorf("%w: %s holds %d of %d %ss", ErrOccupancyFull, facility.Name, count, capacity, kind)
	}

	if creatureRef == "" {
		creatureRef = uuid.New().String()
	}

	occupant := &entities.Occupant{
		ID:          uuid.New().String(),
		FacilityID:  facility.ID,
		Kind:        kind,
		CreatureRef: creatureRef,
		Name:        name,
	}
	if err := s.relationalDB.SaveOccupant(ctx, occupant); err != nil {
		return nil, fmt.Errorf("saving occupant: %w", err)
	}

	if err := s.relationalDB.LogAction(ctx, "occupant.assign", actorID, map[string]any{
		"facility": facility.ID,
		"kind":     string(kind),
		"ref":      creatureRef,
	}); err != nil {
		return nil, fmt.Errorf("logging action: %w", err)
	}

	return occupant, nil
}

// Dismiss removes a creature from a facility, matched by creature ref
// or by name.
func (s *OccupantService) Dismiss(ctx context.Context, actorID, facilityName, refOrName string) error {
	facility, err := s.findFacility(ctx, actorID, facilityName)
	if err != nil {
		return err
	}

	occupant, err := s.relationalDB.FindOccupantByRef(ctx, facility.ID, refOrName)
	if err != nil {
		return fmt.Errorf("finding occupant: %w", err)
	}
	if occupant == nil {
		occupant, err = s.findByName(ctx, facility.ID, refOrName)
		if err != nil {
			return err
		}
	}
	if occupant == nil {
		return fmt.Errorf("%w: %s", ErrOccupantNotFound, refOrName)
	}

	if err := s.relationalDB.DeleteOccupant(ctx, occupant.ID); err != nil {
		return fmt.Errorf("deleting occupant: %w", err)
	}

	return s.relationalDB.LogAction(ctx, "occupant.dismiss", actorID, map[string]any{
		"facility": facility.ID,
		"ref":      occupant.CreatureRef,
	})
}

// List returns a facility's occupants, optionally filtered by kind.
func (s *OccupantService) List(ctx context.Context, actorID, facilityName string, kind entities.OccupantKind) ([]entities.Occupant, error) {
	facility, err := s.findFacility(ctx, actorID, facilityName)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return s.relationalDB.ListOccupants(ctx, facility.ID)
	}
	return s.relationalDB.ListOccupantsByKind(ctx, facility.ID, kind)
}

func (s *OccupantService) findFacility(ctx context.Context, actorID, name string) (*entities.Facility, error) {
	facility, err := s.relationalDB.FindFacilityByName(ctx, actorID, name)
	if err != nil {
		return nil, fmt.Errorf("finding facility: %w", err)
	}
	if facility == nil {
		return nil, fmt.Errorf("%w: %s", ErrFacilityNotFound, name)
	}
	return facility, nil
}

func (s *OccupantService) findByName(ctx context.Context, facilityID, name string) (*entities.Occupant, error) {
	occupants, err := s.relationalDB.ListOccupants(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("listing occupants: %w", err)
	}
	for i := range occupants {
		if occupants[i].Name == name {
			return &occupants[i], nil
		}
	}
	return nil, nil
}
