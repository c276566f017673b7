package handlers

import (
	"context"
	"fmt"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

// ChronicleHandler handles chronicle entries, semantic search and
// bastion event rolls.
type ChronicleHandler struct {
	chronicleService *services.ChronicleService
	eventService     *services.EventService
	actorService     *services.ActorService
}

// NewChronicleHandler creates a new ChronicleHandler. eventService may
// be nil when event rolling is not wired.
func NewChronicleHandler(chronicleService *services.ChronicleService, eventService *services.EventService, actorService *services.ActorService) *ChronicleHandler {
	return &ChronicleHandler{
		chronicleService: chronicleService,
		eventService:     eventService,
		actorService:     actorService,
	}
}

// SearchResult contains the result of a semantic search.
type SearchResult struct {
	Query   string                    `json:"query"`
	Entries []entities.ChronicleEntry `json:"entries"`
}

// HandleAdd records a chronicle entry for the named actor.
func (h *ChronicleHandler) HandleAdd(ctx context.Context, worldID, actorName string, kind entities.ChronicleKind, text string) (*entities.ChronicleEntry, error) {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return nil, err
	}
	return h.chronicleService.Record(ctx, actor.ID, kind, text)
}

// HandleList returns the most recent chronicle entries for the named
// actor, newest first.
func (h *ChronicleHandler) HandleList(ctx context.Context, worldID, actorName string, limit int) ([]entities.ChronicleEntry, error) {
	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return nil, err
	}
	return h.chronicleService.List(ctx, actor.ID, limit)
}

// HandleSearch searches chronicle entries semantically, optionally
// filtered by kind.
func (h *ChronicleHandler) HandleSearch(ctx context.Context, query string, kind entities.ChronicleKind, limit int) (*SearchResult, error) {
	entries, err := h.chronicleService.Search(ctx, query, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("searching chronicle: %w", err)
	}

	return &SearchResult{
		Query:   query,
		Entries: entries,
	}, nil
}

// HandleEvent rolls a random bastion event for the named actor and
// records it in the chronicle.
func (h *ChronicleHandler) HandleEvent(ctx context.Context, worldID, actorName string, narrate bool) (*services.EventResult, error) {
	if h.eventService == nil {
		return nil, fmt.Errorf("event rolling is not configured")
	}

	actor, err := h.actorService.Find(ctx, worldID, actorName)
	if err != nil {
		return nil, err
	}
	return h.eventService.Roll(ctx, actor, narrate)
}
