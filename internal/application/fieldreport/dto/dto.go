package dto

import (
	"time"

	incidentdto "vigil/internal/application/incident/dto"
	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/report"
)

type FieldReportDTO struct {
	Number           int                          `json:"number"`
	Summary          string                       `json:"summary"`
	AttachedIncident *int                         `json:"attached_incident,omitempty"`
	Entries          []incidentdto.ReportEntryDTO `json:"entries,omitempty"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// FromFieldReport maps a field report and its entries to the wire DTO.
func FromFieldReport(fr *fieldreport.FieldReport, entries []*report.Entry) *FieldReportDTO {
	d := &FieldReportDTO{
		Number:           fr.Number(),
		Summary:          fr.DisplaySummary(),
		AttachedIncident: fr.AttachedIncident(),
		CreatedAt:        fr.CreatedAt(),
		UpdatedAt:        fr.UpdatedAt(),
	}
	for _, e := range entries {
		d.Entries = append(d.Entries, incidentdto.FromEntry(e))
	}
	return d
}
