package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"vigil/internal/domain/incident"
	"vigil/internal/infrastructure/persistence/models"
)

// IncidentMapper handles the conversion between Incident domain entities
// and persistence models.
type IncidentMapper interface {
	ToModel(inc *incident.Incident) (*models.IncidentModel, error)
	ToDomain(model *models.IncidentModel) (*incident.Incident, error)
}

type IncidentMapperImpl struct{}

func NewIncidentMapper() IncidentMapper {
	return &IncidentMapperImpl{}
}

func (m *IncidentMapperImpl) ToModel(inc *incident.Incident) (*models.IncidentModel, error) {
	loc := inc.Location()
	model := &models.IncidentModel{
		ID:                  inc.ID(),
		EventID:             inc.EventID(),
		Number:              inc.Number(),
		Summary:             inc.Summary(),
		State:               inc.State().String(),
		Priority:            inc.Priority(),
		LocationName:        loc.Name(),
		LocationDescription: loc.Description(),
		RadialHour:          loc.RadialHour(),
		RadialMinute:        loc.RadialMinute(),
		Concentric:          loc.Concentric(),
		CreatedAt:           inc.CreatedAt().UnixMilli(),
		UpdatedAt:           inc.UpdatedAt().UnixMilli(),
	}

	if rangers := inc.Rangers(); len(rangers) > 0 {
		data, err := json.Marshal(rangers)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal rangers: %w", err)
		}
		model.Rangers = data
	}
	if types := inc.IncidentTypes(); len(types) > 0 {
		data, err := json.Marshal(types)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal incident types: %w", err)
		}
		model.IncidentTypes = data
	}

	return model, nil
}

func (m *IncidentMapperImpl) ToDomain(model *models.IncidentModel) (*incident.Incident, error) {
	state, err := incident.NewState(model.State)
	if err != nil {
		return nil, err
	}

	var rangers []string
	if len(model.Rangers) > 0 {
		if err := json.Unmarshal(model.Rangers, &rangers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rangers: %w", err)
		}
	}
	var types []string
	if len(model.IncidentTypes) > 0 {
		if err := json.Unmarshal(model.IncidentTypes, &types); err != nil {
			return nil, fmt.Errorf("failed to unmarshal incident types: %w", err)
		}
	}

	loc := incident.ReconstructLocation(
		model.LocationName,
		model.LocationDescription,
		model.RadialHour,
		model.RadialMinute,
		model.Concentric,
	)

	return incident.ReconstructIncident(
		model.ID,
		model.EventID,
		model.Number,
		state,
		model.Priority,
		model.Summary,
		loc,
		rangers,
		types,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
	)
}
