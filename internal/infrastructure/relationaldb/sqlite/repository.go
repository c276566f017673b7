// Package sqlite provides a SQLite implementation of the RelationalDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.RelationalDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Actors (bastion owners)
	CREATE TABLE IF NOT EXISTS actors (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		level INTEGER NOT NULL DEFAULT 1,
		owner_user_id TEXT,
		image TEXT,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(world_id, normalized_name)
	);
	CREATE INDEX IF NOT EXISTS idx_actors_world ON actors(world_id);
	CREATE INDEX IF NOT EXISTS idx_actors_normalized ON actors(world_id, normalized_name);

	-- Facilities attached to an actor's bastion
	CREATE TABLE IF NOT EXISTS facilities (
		id TEXT PRIMARY KEY,
		actor_id TEXT NOT NULL REFERENCES actors(id) ON DELETE CASCADE,
		blueprint TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		size TEXT NOT NULL,
		free INTEGER NOT NULL DEFAULT 0,
		under_construction INTEGER NOT NULL DEFAULT 0,
		build_days_left INTEGER NOT NULL DEFAULT 0,
		facility_order TEXT NOT NULL DEFAULT '',
		order_days_left INTEGER NOT NULL DEFAULT 0,
		defender_capacity INTEGER NOT NULL DEFAULT 0,
		hireling_capacity INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(actor_id, name)
	);
	CREATE INDEX IF NOT EXISTS idx_facilities_actor ON facilities(actor_id);
	CREATE INDEX IF NOT EXISTS idx_facilities_category ON facilities(actor_id, category);

	-- Occupants stationed in facilities
	CREATE TABLE IF NOT EXISTS occupants (
		id TEXT PRIMARY KEY,
		facility_id TEXT NOT NULL REFERENCES facilities(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		creature_ref TEXT NOT NULL,
		name TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_occupants_facility ON occupants(facility_id);
	CREATE INDEX IF NOT EXISTS idx_occupants_kind ON occupants(facility_id, kind);

	-- Facility blueprint catalog (defaults plus custom additions)
	CREATE TABLE IF NOT EXISTS blueprints (
		name TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		min_level INTEGER NOT NULL DEFAULT 1,
		build_days INTEGER NOT NULL DEFAULT 0,
		defender_capacity INTEGER NOT NULL DEFAULT 0,
		hireling_capacity INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Per-actor settings, one independent mapping per scope
	CREATE TABLE IF NOT EXISTS settings (
		scope TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		value TEXT NOT NULL,
		UNIQUE(scope, actor_id)
	);
	CREATE INDEX IF NOT EXISTS idx_settings_scope ON settings(scope);

	-- Chronicle entries (bastion history)
	CREATE TABLE IF NOT EXISTS chronicle (
		id TEXT PRIMARY KEY,
		actor_id TEXT NOT NULL REFERENCES actors(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_chronicle_actor ON chronicle(actor_id);
	CREATE INDEX IF NOT EXISTS idx_chronicle_kind ON chronicle(actor_id, kind);

	-- Audit log (tracks all actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		actor_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_actor ON audit_log(actor_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveActor saves or updates an actor.
func (r *Repository) SaveActor(ctx context.Context, actor *entities.Actor) error {
	if actor.CreatedAt.IsZero() {
		actor.CreatedAt = timeNow()
	}
	query := `
		INSERT INTO actors (id, world_id, name, normalized_name, level, owner_user_id, image, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			normalized_name = excluded.normalized_name,
			level = excluded.level,
			owner_user_id = excluded.owner_user_id,
			image = excluded.image,
			description = excluded.description
	`
	_, err := r.db.ExecContext(ctx, query,
		actor.ID,
		actor.WorldID,
		actor.Name,
		actor.NormalizedName,
		actor.Level,
		actor.OwnerUserID,
		actor.Image,
		actor.Description,
		actor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving actor: %w", err)
	}
	return nil
}

// FindActorByID finds an actor by its ID.
func (r *Repository) FindActorByID(ctx context.Context, actorID string) (*entities.Actor, error) {
	query := `
		SELECT id, world_id, name, normalized_name, level, owner_user_id, image, description, created_at
		FROM actors
		WHERE id = ?
	`
	return r.scanActorRow(r.db.QueryRowContext(ctx, query, actorID))
}

// FindActorByName finds an actor by its normalized name (case-insensitive).
func (r *Repository) FindActorByName(ctx context.Context, worldID, name string) (*entities.Actor, error) {
	query := `
		SELECT id, world_id, name, normalized_name, level, owner_user_id, image, description, created_at
		FROM actors
		WHERE world_id = ? AND normalized_name = ?
	`
	return r.scanActorRow(r.db.QueryRowContext(ctx, query, worldID, entities.NormalizeName(name)))
}

// ListActors lists all actors for a world, sorted by name. A limit of
// zero or less returns everything.
func (r *Repository) ListActors(ctx context.Context, worldID string, limit, offset int) ([]*entities.Actor, error) {
	query := `
		SELECT id, world_id, name, normalized_name, level, owner_user_id, image, description, created_at
		FROM actors
		WHERE world_id = ?
		ORDER BY normalized_name ASC
	`
	args := []any{worldID}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	} else if offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying actors: %w", err)
	}
	defer rows.Close()

	var result []*entities.Actor
	for rows.Next() {
		actor, err := scanActor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, actor)
	}
	return result, rows.Err()
}

// DeleteActor deletes an actor by ID. Facilities, occupants and
// chronicle rows cascade through foreign keys; settings rows are
// removed in the same transaction.
func (r *Repository) DeleteActor(ctx context.Context, actorID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM actors WHERE id = ?`, actorID)
	if err != nil {
		return fmt.Errorf("deleting actor: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("actor not found: %s", actorID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE actor_id = ?`, actorID); err != nil {
		return fmt.Errorf("deleting actor settings: %w", err)
	}

	return tx.Commit()
}

// CountActors returns the total number of actors for a world.
func (r *Repository) CountActors(ctx context.Context, worldID string) (int, error) {
	query := `SELECT COUNT(*) FROM actors WHERE world_id = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, worldID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting actors: %w", err)
	}
	return count, nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanActor(row rowScanner) (*entities.Actor, error) {
	var actor entities.Actor
	var owner, image, description sql.NullString
	err := row.Scan(
		&actor.ID,
		&actor.WorldID,
		&actor.Name,
		&actor.NormalizedName,
		&actor.Level,
		&owner,
		&image,
		&description,
		&actor.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning actor: %w", err)
	}
	actor.OwnerUserID = owner.String
	actor.Image = image.String
	actor.Description = description.String
	return &actor, nil
}

func (r *Repository) scanActorRow(row *sql.Row) (*entities.Actor, error) {
	actor, err := scanActor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return actor, nil
}

// SaveFacility saves or updates a facility.
func (r *Repository) SaveFacility(ctx context.Context, facility *entities.Facility) error {
	if facility.CreatedAt.IsZero() {
		facility.CreatedAt = timeNow()
	}
	query := `
		INSERT INTO facilities (id, actor_id, blueprint, name, category, size, free,
			under_construction, build_days_left, facility_order, order_days_left,
			defender_capacity, hireling_capacity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			size = excluded.size,
			free = excluded.free,
			under_construction = excluded.under_construction,
			build_days_left = excluded.build_days_left,
			facility_order = excluded.facility_order,
			order_days_left = excluded.order_days_left,
			defender_capacity = excluded.defender_capacity,
			hireling_capacity = excluded.hireling_capacity
	`
	_, err := r.db.ExecContext(ctx, query,
		facility.ID,
		facility.ActorID,
		facility.Blueprint,
		facility.Name,
		string(facility.Category),
		string(facility.Size),
		facility.Free,
		facility.UnderConstruction,
		facility.BuildDaysLeft,
		string(facility.Order),
		facility.OrderDaysLeft,
		facility.DefenderCapacity,
		facility.HirelingCapacity,
		facility.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving facility: %w", err)
	}
	return nil
}

const facilityColumns = `id, actor_id, blueprint, name, category, size, free,
	under_construction, build_days_left, facility_order, order_days_left,
	defender_capacity, hireling_capacity, created_at`

// FindFacilityByID finds a facility by its ID.
func (r *Repository) FindFacilityByID(ctx context.Context, facilityID string) (*entities.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE id = ?`
	return r.scanFacilityRow(r.db.QueryRowContext(ctx, query, facilityID))
}

// FindFacilityByName finds a facility of an actor by name.
func (r *Repository) FindFacilityByName(ctx context.Context, actorID, name string) (*entities.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE actor_id = ? AND name = ?`
	return r.scanFacilityRow(r.db.QueryRowContext(ctx, query, actorID, name))
}

// ListFacilities lists all facilities attached to an actor, oldest first.
func (r *Repository) ListFacilities(ctx context.Context, actorID string) ([]entities.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE actor_id = ? ORDER BY created_at ASC, name ASC`
	rows, err := r.db.QueryContext(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("querying facilities: %w", err)
	}
	defer rows.Close()

	var result []entities.Facility
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *facility)
	}
	return result, rows.Err()
}

// DeleteFacility deletes a facility; its occupants cascade.
func (r *Repository) DeleteFacility(ctx context.Context, facilityID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM facilities WHERE id = ?`, facilityID)
	if err != nil {
		return fmt.Errorf("deleting facility: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("facility not found: %s", facilityID)
	}
	return nil
}

func scanFacility(row rowScanner) (*entities.Facility, error) {
	var f entities.Facility
	var category, size, order string
	err := row.Scan(
		&f.ID,
		&f.ActorID,
		&f.Blueprint,
		&f.Name,
		&category,
		&size,
		&f.Free,
		&f.UnderConstruction,
		&f.BuildDaysLeft,
		&order,
		&f.OrderDaysLeft,
		&f.DefenderCapacity,
		&f.HirelingCapacity,
		&f.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning facility: %w", err)
	}
	f.Category = entities.FacilityCategory(category)
	f.Size = entities.FacilitySize(size)
	f.Order = entities.OrderType(order)
	return &f, nil
}

func (r *Repository) scanFacilityRow(row *sql.Row) (*entities.Facility, error) {
	facility, err := scanFacility(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return facility, nil
}

// SaveOccupant saves or updates an occupant.
func (r *Repository) SaveOccupant(ctx context.Context, occupant *entities.Occupant) error {
	if occupant.CreatedAt.IsZero() {
		occupant.CreatedAt = timeNow()
	}
	query := `
		INSERT INTO occupants (id, facility_id, kind, creature_ref, name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			creature_ref = excluded.creature_ref,
			name = excluded.name
	`
	_, err := r.db.ExecContext(ctx, query,
		occupant.ID,
		occupant.FacilityID,
		string(occupant.Kind),
		occupant.CreatureRef,
		occupant.Name,
		occupant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving occupant: %w", err)
	}
	return nil
}

// FindOccupantByID finds an occupant by its ID.
func (r *Repository) FindOccupantByID(ctx context.Context, occupantID string) (*entities.Occupant, error) {
	query := `SELECT id, facility_id, kind, creature_ref, name, created_at FROM occupants WHERE id = ?`
	return r.scanOccupantRow(r.db.QueryRowContext(ctx, query, occupantID))
}

// FindOccupantByRef finds an occupant of a facility by creature ref.
func (r *Repository) FindOccupantByRef(ctx context.Context, facilityID, creatureRef string) (*entities.Occupant, error) {
	query := `SELECT id, facility_id, kind, creature_ref, name, created_at FROM occupants WHERE facility_id = ? AND creature_ref = ?`
	return r.scanOccupantRow(r.db.QueryRowContext(ctx, query, facilityID, creatureRef))
}

// ListOccupants lists all occupants of a facility, ordered by creation.
func (r *Repository) ListOccupants(ctx context.Context, facilityID string) ([]entities.Occupant, error) {
	query := `
		SELECT id, facility_id, kind, creature_ref, name, created_at
		FROM occupants
		WHERE facility_id = ?
		ORDER BY created_at ASC, id ASC
	`
	return r.queryOccupants(ctx, query, facilityID)
}

// ListOccupantsByKind lists a facility's occupants of one kind.
func (r *Repository) ListOccupantsByKind(ctx context.Context, facilityID string, kind entities.OccupantKind) ([]entities.Occupant, error) {
	query := `
		SELECT id, facility_id, kind, creature_ref, name, created_at
		FROM occupants
		WHERE facility_id = ? AND kind = ?
		ORDER BY created_at ASC, id ASC
	`
	return r.queryOccupants(ctx, query, facilityID, string(kind))
}

// DeleteOccupant deletes an occupant by ID.
func (r *Repository) DeleteOccupant(ctx context.Context, occupantID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM occupants WHERE id = ?`, occupantID)
	if err != nil {
		return fmt.Errorf("deleting occupant: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("occupant not found: %s", occupantID)
	}
	return nil
}

// CountOccupants counts a facility's occupants of one kind.
func (r *Repository) CountOccupants(ctx context.Context, facilityID string, kind entities.OccupantKind) (int, error) {
	query := `SELECT COUNT(*) FROM occupants WHERE facility_id = ? AND kind = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, facilityID, string(kind)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting occupants: %w", err)
	}
	return count, nil
}

func scanOccupant(row rowScanner) (*entities.Occupant, error) {
	var o entities.Occupant
	var kind string
	var name sql.NullString
	err := row.Scan(
		&o.ID,
		&o.FacilityID,
		&kind,
		&o.CreatureRef,
		&name,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning occupant: %w", err)
	}
	o.Kind = entities.OccupantKind(kind)
	o.Name = name.String
	return &o, nil
}

func (r *Repository) scanOccupantRow(row *sql.Row) (*entities.Occupant, error) {
	occupant, err := scanOccupant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return occupant, nil
}

func (r *Repository) queryOccupants(ctx context.Context, query string, args ...any) ([]entities.Occupant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying occupants: %w", err)
	}
	defer rows.Close()

	var result []entities.Occupant
	for rows.Next() {
		occupant, err := scanOccupant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *occupant)
	}
	return result, rows.Err()
}

// SaveBlueprint saves or updates a facility blueprint.
func (r *Repository) SaveBlueprint(ctx context.Context, blueprint *entities.FacilityBlueprint) error {
	if blueprint.CreatedAt.IsZero() {
		blueprint.CreatedAt = timeNow()
	}
	query := `
		INSERT INTO blueprints (name, category, min_level, build_days, defender_capacity, hireling_capacity, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			category = excluded.category,
			min_level = excluded.min_level,
			build_days = excluded.build_days,
			defender_capacity = excluded.defender_capacity,
			hireling_capacity = excluded.hireling_capacity,
			description = excluded.description
	`
	_, err := r.db.ExecContext(ctx, query,
		blueprint.Name,
		string(blueprint.Category),
		blueprint.MinLevel,
		blueprint.BuildDays,
		blueprint.DefenderCapacity,
		blueprint.HirelingCapacity,
		blueprint.Description,
		blueprint.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving blueprint: %w", err)
	}
	return nil
}

// FindBlueprint finds a blueprint by name.
func (r *Repository) FindBlueprint(ctx context.Context, name string) (*entities.FacilityBlueprint, error) {
	query := `
		SELECT name, category, min_level, build_days, defender_capacity, hireling_capacity, description, created_at
		FROM blueprints
		WHERE name = ?
	`
	row := r.db.QueryRowContext(ctx, query, name)

	blueprint, err := scanBlueprint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blueprint, nil
}

// ListBlueprints lists all blueprints, sorted by name.
func (r *Repository) ListBlueprints(ctx context.Context) ([]entities.FacilityBlueprint, error) {
	query := `
		SELECT name, category, min_level, build_days, defender_capacity, hireling_capacity, description, created_at
		FROM blueprints
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying blueprints: %w", err)
	}
	defer rows.Close()

	var result []entities.FacilityBlueprint
	for rows.Next() {
		blueprint, err := scanBlueprint(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *blueprint)
	}
	return result, rows.Err()
}

// DeleteBlueprint deletes a blueprint by name.
func (r *Repository) DeleteBlueprint(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blueprints WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting blueprint: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("blueprint not found: %s", name)
	}
	return nil
}

func scanBlueprint(row rowScanner) (*entities.FacilityBlueprint, error) {
	var b entities.FacilityBlueprint
	var category string
	var description sql.NullString
	err := row.Scan(
		&b.Name,
		&category,
		&b.MinLevel,
		&b.BuildDays,
		&b.DefenderCapacity,
		&b.HirelingCapacity,
		&description,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning blueprint: %w", err)
	}
	b.Category = entities.FacilityCategory(category)
	b.Description = description.String
	return &b, nil
}

// GetSetting returns the raw value stored for an actor under a scope,
// or nil when unset.
func (r *Repository) GetSetting(ctx context.Context, scope entities.SettingsScope, actorID string) ([]byte, error) {
	query := `SELECT value FROM settings WHERE scope = ? AND actor_id = ?`
	var value string
	err := r.db.QueryRowContext(ctx, query, string(scope), actorID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading setting: %w", err)
	}
	return []byte(value), nil
}

// PutSetting stores a value for an actor under a scope.
func (r *Repository) PutSetting(ctx context.Context, scope entities.SettingsScope, actorID string, value []byte) error {
	query := `
		INSERT INTO settings (scope, actor_id, value)
		VALUES (?, ?, ?)
		ON CONFLICT(scope, actor_id) DO UPDATE SET
			value = excluded.value
	`
	_, err := r.db.ExecContext(ctx, query, string(scope), actorID, string(value))
	if err != nil {
		return fmt.Errorf("writing setting: %w", err)
	}
	return nil
}

// DeleteSetting removes an actor's value under a scope.
func (r *Repository) DeleteSetting(ctx context.Context, scope entities.SettingsScope, actorID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE scope = ? AND actor_id = ?`, string(scope), actorID)
	if err != nil {
		return fmt.Errorf("deleting setting: %w", err)
	}
	return nil
}

// ListSettings returns the full actor-keyed mapping for a scope.
func (r *Repository) ListSettings(ctx context.Context, scope entities.SettingsScope) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT actor_id, value FROM settings WHERE scope = ?`, string(scope))
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var actorID, value string
		if err := rows.Scan(&actorID, &value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		result[actorID] = []byte(value)
	}
	return result, rows.Err()
}

// SaveChronicleEntry saves a chronicle entry. The embedding lives in
// the vector index, not here.
func (r *Repository) SaveChronicleEntry(ctx context.Context, entry *entities.ChronicleEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = timeNow()
	}
	query := `
		INSERT INTO chronicle (id, actor_id, kind, text, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			text = excluded.text
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ActorID,
		string(entry.Kind),
		entry.Text,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving chronicle entry: %w", err)
	}
	return nil
}

// ListChronicle lists an actor's chronicle entries, newest first. A
// limit of zero or less returns everything.
func (r *Repository) ListChronicle(ctx context.Context, actorID string, limit int) ([]entities.ChronicleEntry, error) {
	query := `
		SELECT id, actor_id, kind, text, created_at
		FROM chronicle
		WHERE actor_id = ?
		ORDER BY created_at DESC, id DESC
	`
	args := []any{actorID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chronicle: %w", err)
	}
	defer rows.Close()

	var result []entities.ChronicleEntry
	for rows.Next() {
		var entry entities.ChronicleEntry
		var kind string
		if err := rows.Scan(&entry.ID, &entry.ActorID, &kind, &entry.Text, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chronicle entry: %w", err)
		}
		entry.Kind = entities.ChronicleKind(kind)
		result = append(result, entry)
	}
	return result, rows.Err()
}

// DeleteChronicleByActor deletes all chronicle entries for an actor.
func (r *Repository) DeleteChronicleByActor(ctx context.Context, actorID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chronicle WHERE actor_id = ?`, actorID)
	if err != nil {
		return fmt.Errorf("deleting chronicle entries: %w", err)
	}
	return nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, actorID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var actorIDPtr sql.NullString
	if actorID != "" {
		actorIDPtr = sql.NullString{String: actorID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, actor_id, details) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, actorIDPtr, detailsJSON)
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific actor.
func (r *Repository) FindAuditLog(ctx context.Context, actorID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, actor_id, details, created_at
		FROM audit_log
		WHERE actor_id = ?
		ORDER BY created_at DESC
	`
	return r.queryAuditLog(ctx, query, actorID)
}

// FindAuditLogByAction finds audit log entries by action type.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, action, actor_id, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, action, limit)
}

// queryAuditLog is a helper to execute audit log queries.
func (r *Repository) queryAuditLog(ctx context.Context, query string, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var actorID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&actorID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.ActorID = actorID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
