package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle existing actors during import.
type ConflictStrategy string

const (
	// ConflictSkip skips actors that already exist (by name).
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite overwrites existing actors with new data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing actors
}

// ImportError represents an error for a specific record during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService handles importing actors from external files.
type ImportService struct {
	relationalDB ports.RelationalDB
}

// NewImportService creates a new import service.
func NewImportService(relationalDB ports.RelationalDB) *ImportService {
	return &ImportService{
		relationalDB: relationalDB,
	}
}

// Import validates and imports raw actor records into a world.
func (s *ImportService) Import(ctx context.Context, worldID string, rawActors []parsers.RawActor, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	valid, validationErrors := s.validate(rawActors)
	result.Errors = validationErrors

	if len(valid) == 0 {
		return result, nil
	}

	if opts.DryRun {
		result.Imported = len(valid)
		return result, nil
	}

	for _, raw := range valid {
		imported, err := s.importOne(ctx, worldID, raw, opts.OnConflict)
		if err != nil {
			return nil, fmt.Errorf("importing actor %q: %w", raw.Name, err)
		}
		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

// validate checks raw records and returns valid ones with any errors.
func (s *ImportService) validate(rawActors []parsers.RawActor) ([]parsers.RawActor, []ImportError) {
	valid := make([]parsers.RawActor, 0, len(rawActors))
	var errs []ImportError

	for i := range rawActors {
		raw := &rawActors[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		if err := validateRawActor(raw, lineNum); err != nil {
			errs = append(errs, *err)
			continue
		}

		valid = append(valid, *raw)
	}

	return valid, errs
}

// validateRawActor validates a single record and returns an error if invalid.
func validateRawActor(raw *parsers.RawActor, lineNum int) *ImportError {
	if raw.Name == "" {
		return &ImportError{Line: lineNum, Field: "name", Message: "missing required field: name"}
	}
	if raw.Level != nil && (*raw.Level < 1 || *raw.Level > MaxActorLevel) {
		return &ImportError{
			Line:    lineNum,
			Field:   "level",
			Value:   fmt.Sprintf("%d", *raw.Level),
			Message: fmt.Sprintf("level must be between 1 and %d", MaxActorLevel),
		}
	}
	return nil
}

// importOne saves one record, honoring the conflict strategy. Returns
// whether the record was written.
func (s *ImportService) importOne(ctx context.Context, worldID string, raw parsers.RawActor, onConflict ConflictStrategy) (bool, error) {
	existing, err := s.relationalDB.FindActorByName(ctx, worldID, raw.Name)
	if err != nil {
		return false, fmt.Errorf("checking existing actor: %w", err)
	}

	if existing != nil && onConflict != ConflictOverwrite {
		return false, nil
	}

	actor := &entities.Actor{
		ID:             uuid.New().String(),
		WorldID:        worldID,
		Name:           raw.Name,
		NormalizedName: entities.NormalizeName(raw.Name),
		Level:          1,
		OwnerUserID:    raw.Owner,
		Image:          raw.Image,
		Description:    raw.Description,
	}
	if existing != nil {
		actor.ID = existing.ID
		actor.CreatedAt = existing.CreatedAt
	}
	if raw.Level != nil {
		actor.Level = *raw.Level
	}

	if err := s.relationalDB.SaveActor(ctx, actor); err != nil {
		return false, fmt.Errorf("saving actor: %w", err)
	}
	return true, nil
}
