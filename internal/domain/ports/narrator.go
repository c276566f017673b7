package ports

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

// Narrator defines the interface for LLM-generated prose.
type Narrator interface {
	// NarrateEvent turns a rolled bastion event into a short piece of
	// in-world narration for the actor's chronicle.
	NarrateEvent(ctx context.Context, actor entities.Actor, event entities.BastionEvent) (string, error)
}
