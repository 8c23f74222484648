// Package fieldreport defines the FieldReport aggregate: a standalone,
// numbered report filed during an event, optionally attached to a single
// incident. Its entries merge into the incident's timeline while attached.
package fieldreport

import (
	"context"
	"fmt"
	"time"

	"vigil/internal/domain/report"
)

type FieldReport struct {
	id               uint
	eventID          uint
	number           int
	summary          string
	attachedIncident *int
	entries          []*report.Entry
	createdAt        time.Time
	updatedAt        time.Time
}

// NewFieldReport creates an unattached field report. The tenant-scoped
// number is assigned by the repository at insert time, from a sequence
// independent of the incident sequence.
func NewFieldReport(eventID uint, summary string) (*FieldReport, error) {
	if eventID == 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	now := time.Now()
	return &FieldReport{
		eventID:   eventID,
		summary:   summary,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructFieldReport rebuilds a field report from persistence.
func ReconstructFieldReport(
	id uint,
	eventID uint,
	number int,
	summary string,
	attachedIncident *int,
	createdAt, updatedAt time.Time,
) (*FieldReport, error) {
	if id == 0 {
		return nil, fmt.Errorf("field report ID cannot be zero")
	}
	if number <= 0 {
		return nil, fmt.Errorf("field report number must be positive")
	}
	return &FieldReport{
		id:               id,
		eventID:          eventID,
		number:           number,
		summary:          summary,
		attachedIncident: attachedIncident,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (f *FieldReport) ID() uint             { return f.id }
func (f *FieldReport) EventID() uint        { return f.eventID }
func (f *FieldReport) Number() int          { return f.number }
func (f *FieldReport) Summary() string      { return f.summary }
func (f *FieldReport) CreatedAt() time.Time { return f.createdAt }
func (f *FieldReport) UpdatedAt() time.Time { return f.updatedAt }

// AttachedIncident returns the attached incident number, or nil.
func (f *FieldReport) AttachedIncident() *int {
	if f.attachedIncident == nil {
		return nil
	}
	n := *f.attachedIncident
	return &n
}

func (f *FieldReport) Entries() []*report.Entry {
	out := make([]*report.Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// SetID assigns the persistence identity after the initial insert.
func (f *FieldReport) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("field report ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("field report ID cannot be zero")
	}
	f.id = id
	return nil
}

// SetNumber assigns the tenant-scoped number. Numbers are never reassigned.
func (f *FieldReport) SetNumber(number int) error {
	if f.number != 0 {
		return fmt.Errorf("field report number is already set")
	}
	if number <= 0 {
		return fmt.Errorf("field report number must be positive")
	}
	f.number = number
	return nil
}

// SetEntries attaches the loaded entry log. Used by repositories.
func (f *FieldReport) SetEntries(entries []*report.Entry) {
	f.entries = entries
}

// SetSummary replaces the summary.
func (f *FieldReport) SetSummary(summary string) {
	if summary == f.summary {
		return
	}
	f.summary = summary
	f.updatedAt = time.Now()
}

// DisplaySummary returns the summary, deriving one from the first line of
// the first non-system entry when the summary field is empty.
func (f *FieldReport) DisplaySummary() string {
	if f.summary != "" {
		return f.summary
	}
	return report.FirstUserLine(f.entries)
}

// AttachTo points the report at the given incident number. Attaching to the
// incident it is already attached to is a no-op; attaching while attached
// elsewhere silently supersedes the prior attachment (last-write-wins).
// Returns true if the attachment changed.
func (f *FieldReport) AttachTo(incidentNumber int) (bool, error) {
	if incidentNumber <= 0 {
		return false, fmt.Errorf("incident number must be positive")
	}
	if f.attachedIncident != nil && *f.attachedIncident == incidentNumber {
		return false, nil
	}
	f.attachedIncident = &incidentNumber
	f.updatedAt = time.Now()
	return true, nil
}

// Detach clears the attachment if the report is currently attached to the
// given incident. Detaching an unattached report, or one attached to a
// different incident, is a no-op. Returns true if the attachment changed.
func (f *FieldReport) Detach(incidentNumber int) bool {
	if f.attachedIncident == nil || *f.attachedIncident != incidentNumber {
		return false
	}
	f.attachedIncident = nil
	f.updatedAt = time.Now()
	return true
}

// Repository is the field report store, keyed by (event, number).
type Repository interface {
	// Save inserts the report, assigning the next number in the event's
	// field report sequence atomically with the insert when none is set.
	Save(ctx context.Context, fr *FieldReport) error
	// Update persists the report's current field values.
	Update(ctx context.Context, fr *FieldReport) error
	// FindByNumber loads a field report with its entry log.
	FindByNumber(ctx context.Context, eventID uint, number int) (*FieldReport, error)
	// List returns all field reports for the event, without entry logs.
	List(ctx context.Context, eventID uint) ([]*FieldReport, error)
	// ListAttachedTo returns reports currently attached to the incident,
	// with their entry logs loaded for timeline merging.
	ListAttachedTo(ctx context.Context, eventID uint, incidentNumber int) ([]*FieldReport, error)
}
