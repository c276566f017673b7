package ports

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

// RelationalDB defines the interface for relational database operations.
// One database holds all bastion state for a single world: actors,
// their facilities and occupants, the blueprint catalog, the per-actor
// settings mappings, chronicle rows and the audit log.
type RelationalDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Actor operations

	// SaveActor saves or updates an actor.
	SaveActor(ctx context.Context, actor *entities.Actor) error

	// FindActorByID finds an actor by its ID.
	FindActorByID(ctx context.Context, actorID string) (*entities.Actor, error)

	// FindActorByName finds an actor by its normalized name (case-insensitive).
	FindActorByName(ctx context.Context, worldID, name string) (*entities.Actor, error)

	// ListActors lists all actors for a world with pagination.
	ListActors(ctx context.Context, worldID string, limit, offset int) ([]*entities.Actor, error)

	// DeleteActor deletes an actor by ID. Facilities, occupants,
	// settings and chronicle rows belonging to the actor go with it.
	DeleteActor(ctx context.Context, actorID string) error

	// CountActors returns the total number of actors for a world.
	CountActors(ctx context.Context, worldID string) (int, error)

	// Facility operations

	// SaveFacility saves or updates a facility.
	SaveFacility(ctx context.Context, facility *entities.Facility) error

	// FindFacilityByID finds a facility by its ID.
	FindFacilityByID(ctx context.Context, facilityID string) (*entities.Facility, error)

	// FindFacilityByName finds a facility of an actor by name.
	FindFacilityByName(ctx context.Context, actorID, name string) (*entities.Facility, error)

	// ListFacilities lists all facilities attached to an actor.
	ListFacilities(ctx context.Context, actorID string) ([]entities.Facility, error)

	// DeleteFacility deletes a facility and its occupants.
	DeleteFacility(ctx context.Context, facilityID string) error

	// Occupant operations

	// SaveOccupant saves or updates an occupant.
	SaveOccupant(ctx context.Context, occupant *entities.Occupant) error

	// FindOccupantByID finds an occupant by its ID.
	FindOccupantByID(ctx context.Context, occupantID string) (*entities.Occupant, error)

	// FindOccupantByRef finds an occupant of a facility by creature ref.
	FindOccupantByRef(ctx context.Context, facilityID, creatureRef string) (*entities.Occupant, error)

	// ListOccupants lists all occupants of a facility, ordered by creation.
	ListOccupants(ctx context.Context, facilityID string) ([]entities.Occupant, error)

	// ListOccupantsByKind lists a facility's occupants of one kind.
	ListOccupantsByKind(ctx context.Context, facilityID string, kind entities.OccupantKind) ([]entities.Occupant, error)

	// DeleteOccupant deletes an occupant by ID.
	DeleteOccupant(ctx context.Context, occupantID string) error

	// CountOccupants counts a facility's occupants of one kind.
	CountOccupants(ctx context.Context, facilityID string, kind entities.OccupantKind) (int, error)

	// Blueprint catalog operations

	// SaveBlueprint saves or updates a facility blueprint.
	SaveBlueprint(ctx context.Context, blueprint *entities.FacilityBlueprint) error

	// FindBlueprint finds a blueprint by name.
	FindBlueprint(ctx context.Context, name string) (*entities.FacilityBlueprint, error)

	// ListBlueprints lists all blueprints.
	ListBlueprints(ctx context.Context) ([]entities.FacilityBlueprint, error)

	// DeleteBlueprint deletes a blueprint by name.
	DeleteBlueprint(ctx context.Context, name string) error

	// Settings operations. Each scope is an independent actor-keyed
	// mapping; values are opaque JSON documents.

	// GetSetting returns the raw value stored for an actor under a
	// scope, or nil when unset.
	GetSetting(ctx context.Context, scope entities.SettingsScope, actorID string) ([]byte, error)

	// PutSetting stores a value for an actor under a scope.
	PutSetting(ctx context.Context, scope entities.SettingsScope, actorID string, value []byte) error

	// DeleteSetting removes an actor's value under a scope.
	DeleteSetting(ctx context.Context, scope entities.SettingsScope, actorID string) error

	// ListSettings returns the full actor-keyed mapping for a scope.
	ListSettings(ctx context.Context, scope entities.SettingsScope) (map[string][]byte, error)

	// Chronicle operations

	// SaveChronicleEntry saves a chronicle entry.
	SaveChronicleEntry(ctx context.Context, entry *entities.ChronicleEntry) error

	// ListChronicle lists an actor's chronicle entries, newest first.
	ListChronicle(ctx context.Context, actorID string, limit int) ([]entities.ChronicleEntry, error)

	// DeleteChronicleByActor deletes all chronicle entries for an actor.
	DeleteChronicleByActor(ctx context.Context, actorID string) error

	// Audit operations

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, actorID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a specific actor.
	FindAuditLog(ctx context.Context, actorID string) ([]entities.AuditEntry, error)

	// FindAuditLogByAction finds audit log entries by action type.
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
