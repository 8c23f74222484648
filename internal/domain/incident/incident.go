// Package incident defines the Incident aggregate: a numbered, tenant-scoped
// record of something happening during an event, with state, priority,
// location, assigned ranger handles, incident types, and an append-only
// entry log.
package incident

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vigil/internal/domain/report"
)

// State is the incident workflow state. The transition graph is deliberately
// unconstrained: any state is reachable from any other. The progression
// new -> dispatched -> on_scene -> closed is a UX convention, not a server
// rule.
type State string

const (
	StateNew        State = "new"
	StateOnHold     State = "on_hold"
	StateDispatched State = "dispatched"
	StateOnScene    State = "on_scene"
	StateClosed     State = "closed"
)

// NewState validates a raw state string.
func NewState(raw string) (State, error) {
	switch State(raw) {
	case StateNew, StateOnHold, StateDispatched, StateOnScene, StateClosed:
		return State(raw), nil
	}
	return "", fmt.Errorf("invalid incident state: %q", raw)
}

func (s State) String() string { return string(s) }

const (
	// MinPriority and MaxPriority bound the priority scale; 1 is most urgent.
	MinPriority = 1
	MaxPriority = 5
)

type Incident struct {
	id            uint
	eventID       uint
	number        int
	state         State
	priority      int
	summary       string
	location      Location
	rangers       []string
	incidentTypes []string
	entries       []*report.Entry
	createdAt     time.Time
	updatedAt     time.Time
}

// NewIncident creates an incident in the new state. The tenant-scoped number
// is assigned by the repository at insert time, atomically with the insert.
func NewIncident(eventID uint, priority int, summary string) (*Incident, error) {
	if eventID == 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	if priority < MinPriority || priority > MaxPriority {
		return nil, fmt.Errorf("priority must be between %d and %d, got %d", MinPriority, MaxPriority, priority)
	}

	now := time.Now()
	return &Incident{
		eventID:   eventID,
		state:     StateNew,
		priority:  priority,
		summary:   summary,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructIncident rebuilds an incident from persistence.
func ReconstructIncident(
	id uint,
	eventID uint,
	number int,
	state State,
	priority int,
	summary string,
	location Location,
	rangers []string,
	incidentTypes []string,
	createdAt, updatedAt time.Time,
) (*Incident, error) {
	if id == 0 {
		return nil, fmt.Errorf("incident ID cannot be zero")
	}
	if number <= 0 {
		return nil, fmt.Errorf("incident number must be positive")
	}
	if _, err := NewState(string(state)); err != nil {
		return nil, err
	}
	if rangers == nil {
		rangers = []string{}
	}
	if incidentTypes == nil {
		incidentTypes = []string{}
	}
	return &Incident{
		id:            id,
		eventID:       eventID,
		number:        number,
		state:         state,
		priority:      priority,
		summary:       summary,
		location:      location,
		rangers:       rangers,
		incidentTypes: incidentTypes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (i *Incident) ID() uint             { return i.id }
func (i *Incident) EventID() uint        { return i.eventID }
func (i *Incident) Number() int          { return i.number }
func (i *Incident) State() State         { return i.state }
func (i *Incident) Priority() int        { return i.priority }
func (i *Incident) Summary() string      { return i.summary }
func (i *Incident) Location() Location   { return i.location }
func (i *Incident) CreatedAt() time.Time { return i.createdAt }
func (i *Incident) UpdatedAt() time.Time { return i.updatedAt }

func (i *Incident) Rangers() []string {
	out := make([]string, len(i.rangers))
	copy(out, i.rangers)
	return out
}

func (i *Incident) IncidentTypes() []string {
	out := make([]string, len(i.incidentTypes))
	copy(out, i.incidentTypes)
	return out
}

func (i *Incident) Entries() []*report.Entry {
	out := make([]*report.Entry, len(i.entries))
	copy(out, i.entries)
	return out
}

// SetID assigns the persistence identity after the initial insert.
func (i *Incident) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("incident ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("incident ID cannot be zero")
	}
	i.id = id
	return nil
}

// SetNumber assigns the tenant-scoped number. Numbers are never reassigned.
func (i *Incident) SetNumber(number int) error {
	if i.number != 0 {
		return fmt.Errorf("incident number is already set")
	}
	if number <= 0 {
		return fmt.Errorf("incident number must be positive")
	}
	i.number = number
	return nil
}

// SetEntries attaches the loaded entry log. Used by repositories.
func (i *Incident) SetEntries(entries []*report.Entry) {
	i.entries = entries
}

// DisplaySummary returns the summary, deriving one from the first line of
// the first non-system entry when the summary field is empty.
func (i *Incident) DisplaySummary() string {
	if i.summary != "" {
		return i.summary
	}
	return report.FirstUserLine(i.entries)
}

// Update is a partial-field edit. Nil fields are untouched; location
// sub-fields are edited individually. Conflicting concurrent updates
// resolve last-write-wins per submitted field set.
type Update struct {
	State               *State
	Priority            *int
	Summary             *string
	LocationName        *string
	LocationDescription *string
	RadialHour          *int
	RadialMinute        *int
	Concentric          *string
	Rangers             []string
	IncidentTypes       []string
}

// Apply mutates only the submitted fields and returns one description per
// changed field, used to append system audit entries. Radial minutes are
// rounded to the nearest multiple of five; the radial hour must be 1-12.
func (i *Incident) Apply(u Update) ([]string, error) {
	var changes []string

	if u.State != nil {
		if _, err := NewState(string(*u.State)); err != nil {
			return nil, err
		}
		if *u.State != i.state {
			changes = append(changes, fmt.Sprintf("Changed state: %s", *u.State))
			i.state = *u.State
		}
	}

	if u.Priority != nil {
		if *u.Priority < MinPriority || *u.Priority > MaxPriority {
			return nil, fmt.Errorf("priority must be between %d and %d, got %d", MinPriority, MaxPriority, *u.Priority)
		}
		if *u.Priority != i.priority {
			changes = append(changes, fmt.Sprintf("Changed priority: %d", *u.Priority))
			i.priority = *u.Priority
		}
	}

	if u.Summary != nil && *u.Summary != i.summary {
		changes = append(changes, fmt.Sprintf("Changed summary: %s", *u.Summary))
		i.summary = *u.Summary
	}

	if u.LocationName != nil && *u.LocationName != i.location.name {
		changes = append(changes, fmt.Sprintf("Changed location name: %s", *u.LocationName))
		i.location.name = *u.LocationName
	}

	if u.LocationDescription != nil && *u.LocationDescription != i.location.description {
		changes = append(changes, fmt.Sprintf("Changed location description: %s", *u.LocationDescription))
		i.location.description = *u.LocationDescription
	}

	if u.RadialHour != nil {
		if err := validateRadialHour(*u.RadialHour); err != nil {
			return nil, err
		}
		hour := *u.RadialHour
		changes = append(changes, fmt.Sprintf("Changed location radial hour: %d", hour))
		i.location.radialHour = &hour
	}

	if u.RadialMinute != nil {
		minute := RoundRadialMinute(*u.RadialMinute)
		changes = append(changes, fmt.Sprintf("Changed location radial minute: %d", minute))
		i.location.radialMinute = &minute
	}

	if u.Concentric != nil {
		concentric := *u.Concentric
		changes = append(changes, fmt.Sprintf("Changed location concentric street: %s", concentric))
		i.location.concentric = &concentric
	}

	if u.Rangers != nil {
		changes = append(changes, fmt.Sprintf("Changed rangers: %s", strings.Join(u.Rangers, ", ")))
		i.rangers = append([]string{}, u.Rangers...)
	}

	if u.IncidentTypes != nil {
		changes = append(changes, fmt.Sprintf("Changed incident types: %s", strings.Join(u.IncidentTypes, ", ")))
		i.incidentTypes = append([]string{}, u.IncidentTypes...)
	}

	if len(changes) > 0 {
		i.updatedAt = time.Now()
	}

	return changes, nil
}

// Repository is the incident store. Incidents are keyed by (event, number)
// and are never physically deleted.
type Repository interface {
	// Save inserts the incident, assigning the next number in the event's
	// incident sequence atomically with the insert when none is set.
	Save(ctx context.Context, inc *Incident) error
	// Update persists the incident's current field values.
	Update(ctx context.Context, inc *Incident) error
	// FindByNumber loads an incident with its own entry log.
	FindByNumber(ctx context.Context, eventID uint, number int) (*Incident, error)
	// List returns all incidents for the event, without entry logs.
	List(ctx context.Context, eventID uint) ([]*Incident, error)
}
