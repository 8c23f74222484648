// Package event defines the Event aggregate. An Event is a tenant: a named,
// isolated namespace scoping incidents, field reports, incident types, and
// access entries. Events are created administratively and never merged or
// deleted.
package event

import (
	"context"
	"fmt"
	"time"
)

type Event struct {
	id        uint
	name      string
	createdAt time.Time
}

// NewEvent creates an event with the given unique name.
func NewEvent(name string) (*Event, error) {
	if name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("event name exceeds maximum length of 100 characters")
	}
	return &Event{
		name:      name,
		createdAt: time.Now(),
	}, nil
}

// ReconstructEvent rebuilds an event from persistence.
func ReconstructEvent(id uint, name string, createdAt time.Time) (*Event, error) {
	if id == 0 {
		return nil, fmt.Errorf("event ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	return &Event{
		id:        id,
		name:      name,
		createdAt: createdAt,
	}, nil
}

func (e *Event) ID() uint             { return e.id }
func (e *Event) Name() string         { return e.name }
func (e *Event) CreatedAt() time.Time { return e.createdAt }

// SetID assigns the persistence identity after the initial insert.
func (e *Event) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("event ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("event ID cannot be zero")
	}
	e.id = id
	return nil
}

// Repository is the event store.
type Repository interface {
	Save(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id uint) (*Event, error)
	FindByName(ctx context.Context, name string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
}
