package usecases

import (
	"context"

	"vigil/internal/application/incident/dto"
	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
	"vigil/internal/shared/logger"
)

type GetIncidentQuery struct {
	EventID uint
	Number  int
	// ShowHistory keeps stricken entries in the timeline.
	ShowHistory bool
}

type GetIncidentUseCase struct {
	incidentRepo    incident.Repository
	fieldReportRepo fieldreport.Repository
	logger          logger.Interface
}

func NewGetIncidentUseCase(
	incidentRepo incident.Repository,
	fieldReportRepo fieldreport.Repository,
	log logger.Interface,
) *GetIncidentUseCase {
	return &GetIncidentUseCase{
		incidentRepo:    incidentRepo,
		fieldReportRepo: fieldReportRepo,
		logger:          log,
	}
}

// Execute loads an incident with its merged timeline: the incident's own
// entries unioned with the entries of every currently attached field
// report. The merge is a view-time projection; detached reports drop out
// of the view while their entries stay stored.
func (uc *GetIncidentUseCase) Execute(ctx context.Context, query GetIncidentQuery) (*dto.IncidentDTO, error) {
	inc, err := uc.incidentRepo.FindByNumber(ctx, query.EventID, query.Number)
	if err != nil {
		return nil, err
	}

	attached, err := uc.fieldReportRepo.ListAttachedTo(ctx, query.EventID, query.Number)
	if err != nil {
		return nil, err
	}

	lists := make([][]*report.Entry, 0, len(attached)+1)
	lists = append(lists, inc.Entries())
	for _, fr := range attached {
		lists = append(lists, fr.Entries())
	}

	timeline := report.MergeTimelines(lists...)
	timeline = report.VisibleEntries(timeline, query.ShowHistory)

	return dto.FromIncident(inc, timeline), nil
}
