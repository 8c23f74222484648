// Package incidenttype defines the per-event incident type catalogue. Types
// are soft-removed with a hidden flag: hidden types are excluded from
// suggestions but stay valid on incidents that already carry them.
package incidenttype

import (
	"context"
	"fmt"
	"time"
)

type IncidentType struct {
	id        uint
	eventID   uint
	name      string
	hidden    bool
	createdAt time.Time
}

// NewIncidentType creates a visible type. Names are unique per event.
func NewIncidentType(eventID uint, name string) (*IncidentType, error) {
	if eventID == 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("incident type name is required")
	}
	return &IncidentType{
		eventID:   eventID,
		name:      name,
		createdAt: time.Now(),
	}, nil
}

// ReconstructIncidentType rebuilds a type from persistence.
func ReconstructIncidentType(id, eventID uint, name string, hidden bool, createdAt time.Time) (*IncidentType, error) {
	if id == 0 {
		return nil, fmt.Errorf("incident type ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("incident type name is required")
	}
	return &IncidentType{
		id:        id,
		eventID:   eventID,
		name:      name,
		hidden:    hidden,
		createdAt: createdAt,
	}, nil
}

func (t *IncidentType) ID() uint             { return t.id }
func (t *IncidentType) EventID() uint        { return t.eventID }
func (t *IncidentType) Name() string         { return t.name }
func (t *IncidentType) IsHidden() bool       { return t.hidden }
func (t *IncidentType) CreatedAt() time.Time { return t.createdAt }

// SetID assigns the persistence identity after the initial insert.
func (t *IncidentType) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("incident type ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("incident type ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetHidden toggles soft removal. The row is never deleted.
func (t *IncidentType) SetHidden(hidden bool) {
	t.hidden = hidden
}

// Repository is the incident type store, keyed by (event, name).
type Repository interface {
	Save(ctx context.Context, it *IncidentType) error
	Update(ctx context.Context, it *IncidentType) error
	FindByName(ctx context.Context, eventID uint, name string) (*IncidentType, error)
	// List returns the event's types; visibleOnly excludes hidden ones.
	List(ctx context.Context, eventID uint, visibleOnly bool) ([]*IncidentType, error)
}
