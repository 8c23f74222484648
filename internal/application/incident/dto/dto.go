package dto

import (
	"time"

	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
)

type LocationDTO struct {
	Name         string  `json:"name,omitempty"`
	Description  string  `json:"description,omitempty"`
	RadialHour   *int    `json:"radial_hour,omitempty"`
	RadialMinute *int    `json:"radial_minute,omitempty"`
	Concentric   *string `json:"concentric,omitempty"`
}

type ReportEntryDTO struct {
	ID          uint      `json:"id"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	SystemEntry bool      `json:"system_entry"`
	Stricken    bool      `json:"stricken"`
	Attachment  string    `json:"attachment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type IncidentDTO struct {
	Number        int              `json:"number"`
	State         string           `json:"state"`
	Priority      int              `json:"priority"`
	Summary       string           `json:"summary"`
	Location      LocationDTO      `json:"location"`
	Rangers       []string         `json:"rangers"`
	IncidentTypes []string         `json:"incident_types"`
	Entries       []ReportEntryDTO `json:"entries,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// FromIncident maps an incident and a merged timeline to the wire DTO.
func FromIncident(inc *incident.Incident, timeline []*report.Entry) *IncidentDTO {
	loc := inc.Location()
	d := &IncidentDTO{
		Number:        inc.Number(),
		State:         inc.State().String(),
		Priority:      inc.Priority(),
		Summary:       inc.DisplaySummary(),
		Location: LocationDTO{
			Name:         loc.Name(),
			Description:  loc.Description(),
			RadialHour:   loc.RadialHour(),
			RadialMinute: loc.RadialMinute(),
			Concentric:   loc.Concentric(),
		},
		Rangers:       inc.Rangers(),
		IncidentTypes: inc.IncidentTypes(),
		CreatedAt:     inc.CreatedAt(),
		UpdatedAt:     inc.UpdatedAt(),
	}
	for _, e := range timeline {
		d.Entries = append(d.Entries, FromEntry(e))
	}
	return d
}

// FromEntry maps a report entry to the wire DTO.
func FromEntry(e *report.Entry) ReportEntryDTO {
	return ReportEntryDTO{
		ID:          e.ID(),
		Author:      e.Author(),
		Text:        e.Text(),
		SystemEntry: e.IsSystem(),
		Stricken:    e.IsStricken(),
		Attachment:  e.Attachment(),
		CreatedAt:   e.CreatedAt(),
	}
}
