// Package dto carries event data across the application boundary.
package dto

import (
	"time"

	"vigil/internal/domain/access"
	"vigil/internal/domain/event"
)

type EventDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func FromEvent(e *event.Event) *EventDTO {
	return &EventDTO{
		ID:        e.ID(),
		Name:      e.Name(),
		CreatedAt: e.CreatedAt(),
	}
}

type AccessEntryDTO struct {
	Expression string `json:"expression"`
	Validity   string `json:"validity"`
}

func FromAccessEntry(e access.AccessEntry) AccessEntryDTO {
	return AccessEntryDTO{
		Expression: e.Expression.String(),
		Validity:   e.Validity.String(),
	}
}
