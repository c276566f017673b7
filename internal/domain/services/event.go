package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/ports"
)

// ErrNarrationUnavailable is returned when narration is requested
// without an LLM configured.
var ErrNarrationUnavailable = errors.New("narration requires an LLM client")

// EventService rolls random bastion events and records them in the
// chronicle, optionally narrated by an LLM.
type EventService struct {
	table     []entities.BastionEvent
	narrator  ports.Narrator
	chronicle *ChronicleService
	rng       *rand.Rand
}

// NewEventService creates a new EventService. narrator may be nil;
// rolling then records the event's stock description.
func NewEventService(table []entities.BastionEvent, narrator ports.Narrator, chronicle *ChronicleService, seed int64) *EventService {
	if len(table) == 0 {
		table = entities.DefaultEventTable
	}
	return &EventService{
		table:     table,
		narrator:  narrator,
		chronicle: chronicle,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// EventResult is the outcome of one event roll.
type EventResult struct {
	Event     entities.BastionEvent
	Narration string
	Entry     *entities.ChronicleEntry
}

// Roll draws a weighted random event for the actor's bastion and
// records it as a chronicle entry.
func (s *EventService) Roll(ctx context.Context, actor *entities.Actor, narrate bool) (*EventResult, error) {
	if narrate && s.narrator == nil {
		return nil, ErrNarrationUnavailable
	}

	event := s.draw()
	text := event.Description

	var narration string
	if narrate {
		var err error
		narration, err = s.narrator.NarrateEvent(ctx, *actor, event)
		if err != nil {
			return nil, fmt.Errorf("narrating event: %w", err)
		}
		if narration != "" {
			text = narration
		}
	}

	entry, err := s.chronicle.Record(ctx, actor.ID, entities.ChronicleEvent, fmt.Sprintf("[%s] %s", event.Name, text))
	if err != nil {
		return nil, err
	}

	return &EventResult{
		Event:     event,
		Narration: narration,
		Entry:     entry,
	}, nil
}

// draw picks an event proportionally to its weight.
func (s *EventService) draw() entities.BastionEvent {
	total := 0
	for _, e := range s.table {
		total += e.Weight
	}
	if total <= 0 {
		return s.table[0]
	}

	roll := s.rng.Intn(total)
	for _, e := range s.table {
		roll -= e.Weight
		if roll < 0 {
			return e
		}
	}
	return s.table[len(s.table)-1]
}
