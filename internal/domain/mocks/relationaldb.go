// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sort"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

// RelationalDB is an in-memory mock implementation of ports.RelationalDB.
// Setting Err makes every method fail with it.
type RelationalDB struct {
	Actors     []*entities.Actor
	Facilities []*entities.Facility
	Occupants  []*entities.Occupant
	Blueprints map[string]*entities.FacilityBlueprint
	Settings   map[entities.SettingsScope]map[string][]byte
	Chronicle  []*entities.ChronicleEntry
	Audit      []entities.AuditEntry
	Err        error
}

// NewRelationalDB creates a new mock RelationalDB.
func NewRelationalDB() *RelationalDB {
	return &RelationalDB{
		Blueprints: make(map[string]*entities.FacilityBlueprint),
		Settings:   make(map[entities.SettingsScope]map[string][]byte),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RelationalDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RelationalDB) Close() error {
	return nil
}

// Actor methods.

// SaveActor saves or updates an actor.
func (m *RelationalDB) SaveActor(_ context.Context, actor *entities.Actor) error {
	if m.Err != nil {
		return m.Err
	}
	for i, a := range m.Actors {
		if a.ID == actor.ID {
			m.Actors[i] = actor
			return nil
		}
	}
	m.Actors = append(m.Actors, actor)
	return nil
}

// FindActorByID finds an actor by its ID.
func (m *RelationalDB) FindActorByID(_ context.Context, actorID string) (*entities.Actor, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Actors {
		if a.ID == actorID {
			return a, nil
		}
	}
	return nil, nil
}

// FindActorByName finds an actor by its normalized name.
func (m *RelationalDB) FindActorByName(_ context.Context, worldID, name string) (*entities.Actor, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	normalized := entities.NormalizeName(name)
	for _, a := range m.Actors {
		if a.WorldID == worldID && a.NormalizedName == normalized {
			return a, nil
		}
	}
	return nil, nil
}

// ListActors lists all actors for a world, sorted by name.
func (m *RelationalDB) ListActors(_ context.Context, worldID string, limit, offset int) ([]*entities.Actor, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []*entities.Actor
	for _, a := range m.Actors {
		if a.WorldID == worldID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].NormalizedName < result[j].NormalizedName
	})
	if offset > 0 {
		if offset >= len(result) {
			return nil, nil
		}
		result = result[offset:]
	}
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// DeleteActor deletes an actor and everything hanging off it.
func (m *RelationalDB) DeleteActor(_ context.Context, actorID string) error {
	if m.Err != nil {
		return m.Err
	}
	facilityIDs := make(map[string]bool)
	for _, f := range m.Facilities {
		if f.ActorID == actorID {
			facilityIDs[f.ID] = true
		}
	}

	actors := m.Actors[:0]
	for _, a := range m.Actors {
		if a.ID != actorID {
			actors = append(actors, a)
		}
	}
	m.Actors = actors

	facilities := m.Facilities[:0]
	for _, f := range m.Facilities {
		if f.ActorID != actorID {
			facilities = append(facilities, f)
		}
	}
	m.Facilities = facilities

	occupants := m.Occupants[:0]
	for _, o := range m.Occupants {
		if !facilityIDs[o.FacilityID] {
			occupants = append(occupants, o)
		}
	}
	m.Occupants = occupants

	for _, scoped := range m.Settings {
		delete(scoped, actorID)
	}

	chronicle := m.Chronicle[:0]
	for _, c := range m.Chronicle {
		if c.ActorID != actorID {
			chronicle = append(chronicle, c)
		}
	}
	m.Chronicle = chronicle
	return nil
}

// CountActors returns the total number of actors for a world.
func (m *RelationalDB) CountActors(_ context.Context, worldID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, a := range m.Actors {
		if a.WorldID == worldID {
			count++
		}
	}
	return count, nil
}

// Facility methods.

// SaveFacility saves or updates a facility.
func (m *RelationalDB) SaveFacility(_ context.Context, facility *entities.Facility) error {
	if m.Err != nil {
		return m.Err
	}
	for i, f := range m.Facilities {
		if f.ID == facility.ID {
			m.Facilities[i] = facility
			return nil
		}
	}
	copied := *facility
	m.Facilities = append(m.Facilities, &copied)
	return nil
}

// FindFacilityByID finds a facility by its ID.
func (m *RelationalDB) FindFacilityByID(_ context.Context, facilityID string) (*entities.Facility, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, f := range m.Facilities {
		if f.ID == facilityID {
			copied := *f
			return &copied, nil
		}
	}
	return nil, nil
}

// FindFacilityByName finds a facility of an actor by name.
func (m *RelationalDB) FindFacilityByName(_ context.Context, actorID, name string) (*entities.Facility, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, f := range m.Facilities {
		if f.ActorID == actorID && f.Name == name {
			copied := *f
			return &copied, nil
		}
	}
	return nil, nil
}

// ListFacilities lists all facilities attached to an actor.
func (m *RelationalDB) ListFacilities(_ context.Context, actorID string) ([]entities.Facility, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Facility
	for _, f := range m.Facilities {
		if f.ActorID == actorID {
			result = append(result, *f)
		}
	}
	return result, nil
}

// DeleteFacility deletes a facility and its occupants.
func (m *RelationalDB) DeleteFacility(_ context.Context, facilityID string) error {
	if m.Err != nil {
		return m.Err
	}
	facilities := m.Facilities[:0]
	for _, f := range m.Facilities {
		if f.ID != facilityID {
			facilities = append(facilities, f)
		}
	}
	m.Facilities = facilities

	occupants := m.Occupants[:0]
	for _, o := range m.Occupants {
		if o.FacilityID != facilityID {
			occupants = append(occupants, o)
		}
	}
	m.Occupants = occupants
	return nil
}

// Occupant methods.

// SaveOccupant saves or updates an occupant.
func (m *RelationalDB) SaveOccupant(_ context.Context, occupant *entities.Occupant) error {
	if m.Err != nil {
		return m.Err
	}
	for i, o := range m.Occupants {
		if o.ID == occupant.ID {
			m.Occupants[i] = occupant
			return nil
		}
	}
	copied := *occupant
	m.Occupants = append(m.Occupants, &copied)
	return nil
}

// FindOccupantByID finds an occupant by its ID.
func (m *RelationalDB) FindOccupantByID(_ context.Context, occupantID string) (*entities.Occupant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, o := range m.Occupants {
		if o.ID == occupantID {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

// FindOccupantByRef finds an occupant of a facility by creature ref.
func (m *RelationalDB) FindOccupantByRef(_ context.Context, facilityID, creatureRef string) (*entities.Occupant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, o := range m.Occupants {
		if o.FacilityID == facilityID && o.CreatureRef == creatureRef {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

// ListOccupants lists all occupants of a facility in insertion order.
func (m *RelationalDB) ListOccupants(_ context.Context, facilityID string) ([]entities.Occupant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Occupant
	for _, o := range m.Occupants {
		if o.FacilityID == facilityID {
			result = append(result, *o)
		}
	}
	return result, nil
}

// ListOccupantsByKind lists a facility's occupants of one kind.
func (m *RelationalDB) ListOccupantsByKind(_ context.Context, facilityID string, kind entities.OccupantKind) ([]entities.Occupant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Occupant
	for _, o := range m.Occupants {
		if o.FacilityID == facilityID && o.Kind == kind {
			result = append(result, *o)
		}
	}
	return result, nil
}

// DeleteOccupant deletes an occupant by ID.
func (m *RelationalDB) DeleteOccupant(_ context.Context, occupantID string) error {
	if m.Err != nil {
		return m.Err
	}
	occupants := m.Occupants[:0]
	for _, o := range m.Occupants {
		if o.ID != occupantID {
			occupants = append(occupants, o)
		}
	}
	m.Occupants = occupants
	return nil
}

// CountOccupants counts a facility's occupants of one kind.
func (m *RelationalDB) CountOccupants(_ context.Context, facilityID string, kind entities.OccupantKind) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, o := range m.Occupants {
		if o.FacilityID == facilityID && o.Kind == kind {
			count++
		}
	}
	return count, nil
}

// Blueprint methods.

// SaveBlueprint saves or updates a facility blueprint.
func (m *RelationalDB) SaveBlueprint(_ context.Context, blueprint *entities.FacilityBlueprint) error {
	if m.Err != nil {
		return m.Err
	}
	copied := *blueprint
	m.Blueprints[blueprint.Name] = &copied
	return nil
}

// FindBlueprint finds a blueprint by name.
func (m *RelationalDB) FindBlueprint(_ context.Context, name string) (*entities.FacilityBlueprint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Blueprints[name], nil
}

// ListBlueprints lists all blueprints, sorted by name.
func (m *RelationalDB) ListBlueprints(_ context.Context) ([]entities.FacilityBlueprint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.FacilityBlueprint, 0, len(m.Blueprints))
	for _, b := range m.Blueprints {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// DeleteBlueprint deletes a blueprint by name.
func (m *RelationalDB) DeleteBlueprint(_ context.Context, name string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Blueprints, name)
	return nil
}

// Settings methods.

// GetSetting returns the raw value stored for an actor under a scope.
func (m *RelationalDB) GetSetting(_ context.Context, scope entities.SettingsScope, actorID string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	scoped, ok := m.Settings[scope]
	if !ok {
		return nil, nil
	}
	return scoped[actorID], nil
}

// PutSetting stores a value for an actor under a scope.
func (m *RelationalDB) PutSetting(_ context.Context, scope entities.SettingsScope, actorID string, value []byte) error {
	if m.Err != nil {
		return m.Err
	}
	if m.Settings[scope] == nil {
		m.Settings[scope] = make(map[string][]byte)
	}
	m.Settings[scope][actorID] = value
	return nil
}

// DeleteSetting removes an actor's value under a scope.
func (m *RelationalDB) DeleteSetting(_ context.Context, scope entities.SettingsScope, actorID string) error {
	if m.Err != nil {
		return m.Err
	}
	if scoped, ok := m.Settings[scope]; ok {
		delete(scoped, actorID)
	}
	return nil
}

// ListSettings returns the full actor-keyed mapping for a scope.
func (m *RelationalDB) ListSettings(_ context.Context, scope entities.SettingsScope) (map[string][]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make(map[string][]byte, len(m.Settings[scope]))
	for k, v := range m.Settings[scope] {
		result[k] = v
	}
	return result, nil
}

// Chronicle methods.

// SaveChronicleEntry saves a chronicle entry.
func (m *RelationalDB) SaveChronicleEntry(_ context.Context, entry *entities.ChronicleEntry) error {
	if m.Err != nil {
		return m.Err
	}
	copied := *entry
	m.Chronicle = append(m.Chronicle, &copied)
	return nil
}

// ListChronicle lists an actor's chronicle entries, newest first.
func (m *RelationalDB) ListChronicle(_ context.Context, actorID string, limit int) ([]entities.ChronicleEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.ChronicleEntry
	for i := len(m.Chronicle) - 1; i >= 0; i-- {
		if m.Chronicle[i].ActorID == actorID {
			result = append(result, *m.Chronicle[i])
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// DeleteChronicleByActor deletes all chronicle entries for an actor.
func (m *RelationalDB) DeleteChronicleByActor(_ context.Context, actorID string) error {
	if m.Err != nil {
		return m.Err
	}
	chronicle := m.Chronicle[:0]
	for _, c := range m.Chronicle {
		if c.ActorID != actorID {
			chronicle = append(chronicle, c)
		}
	}
	m.Chronicle = chronicle
	return nil
}

// Audit methods.

// LogAction logs an action to the audit log.
func (m *RelationalDB) LogAction(_ context.Context, action string, actorID string, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:      int64(len(m.Audit) + 1),
		Action:  action,
		ActorID: actorID,
		Details: details,
	})
	return nil
}

// FindAuditLog finds audit log entries for a specific actor.
func (m *RelationalDB) FindAuditLog(_ context.Context, actorID string) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for _, e := range m.Audit {
		if e.ActorID == actorID {
			result = append(result, e)
		}
	}
	return result, nil
}

// FindAuditLogByAction finds audit log entries by action type.
func (m *RelationalDB) FindAuditLogByAction(_ context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for _, e := range m.Audit {
		if e.Action == action {
			result = append(result, e)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}
