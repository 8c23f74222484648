package usecases

import (
	"context"

	"vigil/internal/application/incident/dto"
	"vigil/internal/domain/incident"
	"vigil/internal/shared/logger"
)

type ListIncidentsQuery struct {
	EventID uint
}

type ListIncidentsResult struct {
	Incidents []*dto.IncidentDTO
	Total     int64
}

type ListIncidentsUseCase struct {
	incidentRepo incident.Repository
	logger       logger.Interface
}

func NewListIncidentsUseCase(incidentRepo incident.Repository, log logger.Interface) *ListIncidentsUseCase {
	return &ListIncidentsUseCase{
		incidentRepo: incidentRepo,
		logger:       log,
	}
}

// Execute lists the event's incidents without entry logs.
func (uc *ListIncidentsUseCase) Execute(ctx context.Context, query ListIncidentsQuery) (*ListIncidentsResult, error) {
	incidents, err := uc.incidentRepo.List(ctx, query.EventID)
	if err != nil {
		return nil, err
	}

	result := &ListIncidentsResult{
		Incidents: make([]*dto.IncidentDTO, 0, len(incidents)),
		Total:     int64(len(incidents)),
	}
	for _, inc := range incidents {
		result.Incidents = append(result.Incidents, dto.FromIncident(inc, nil))
	}
	return result, nil
}
