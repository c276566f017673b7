package mocks

import (
	"context"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

// Narrator is a mock implementation of ports.Narrator.
type Narrator struct {
	Narration string
	Events    []entities.BastionEvent
	Err       error
}

// NarrateEvent returns the configured narration.
func (m *Narrator) NarrateEvent(_ context.Context, _ entities.Actor, event entities.BastionEvent) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Events = append(m.Events, event)
	return m.Narration, nil
}
